package validation

import (
	"errors"
	"strings"
)

// FieldError is a validation failure for a single field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Error lists every field that failed validation.
type Error struct {
	Fields []FieldError `json:"fields"`
}

// Error implements the error interface.
func (e *Error) Error() string {
	messages := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		messages[i] = f.Field + ": " + f.Message
	}
	return "validation failed: " + strings.Join(messages, "; ")
}

// IsValidationError reports whether err is or wraps a *Error.
func IsValidationError(err error) bool {
	var e *Error
	return errors.As(err, &e)
}
