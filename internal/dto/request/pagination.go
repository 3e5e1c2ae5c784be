package request

const (
	DefaultPage     = 1
	DefaultPageSize = 20
)
