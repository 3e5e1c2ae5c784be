package usecase

import (
	"errors"
	"fmt"
)

// Error kinds. Handlers map them to status codes with errors.Is.
var (
	ErrNotFound   = errors.New("not found")
	ErrValidation = errors.New("validation failed")
	ErrConflict   = errors.New("conflict")
	ErrForbidden  = errors.New("forbidden")
	ErrProvider   = errors.New("provider request failed")
)

// serviceError carries a client-facing message and its kind.
type serviceError struct {
	kind  error
	msg   string
	cause error
}

func (e *serviceError) Error() string {
	return e.msg
}

func (e *serviceError) Unwrap() []error {
	if e.cause != nil {
		return []error{e.kind, e.cause}
	}
	return []error{e.kind}
}

func newError(kind error, format string, args ...any) error {
	return &serviceError{kind: kind, msg: fmt.Sprintf(format, args...)}
}

func notFound(format string, args ...any) error {
	return newError(ErrNotFound, format, args...)
}

func invalid(format string, args ...any) error {
	return newError(ErrValidation, format, args...)
}

func conflict(format string, args ...any) error {
	return newError(ErrConflict, format, args...)
}

func forbidden(format string, args ...any) error {
	return newError(ErrForbidden, format, args...)
}

// providerError keeps the provider's message visible to the client.
func providerError(op string, cause error) error {
	return &serviceError{
		kind:  ErrProvider,
		msg:   fmt.Sprintf("%s: %v", op, cause),
		cause: cause,
	}
}
