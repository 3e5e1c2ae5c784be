package utils

import (
	"strconv"
	"strings"
)

// ParseOptionalInt returns nil for empty input and an error for anything
// that is not a whole number.
func ParseOptionalInt(value string) (*int, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, nil
	}

	result, err := strconv.Atoi(value)
	if err != nil {
		return nil, err
	}

	return &result, nil
}

// ParseBool accepts true/1/yes in any case.
func ParseBool(value string) bool {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "true", "1", "yes":
		return true
	default:
		return false
	}
}
