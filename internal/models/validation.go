package models

import (
	"errors"
	"fmt"
)

// ErrInvalidInput is the sentinel every ValidationError unwraps to.
var ErrInvalidInput = errors.New("InvalidInput")

// ValidationError reports a caller-supplied value that violates a documented precondition.
// It is returned before any computation takes place.
type ValidationError struct {
	Field  string
	Reason string
}

// NewValidationError builds a ValidationError for field with a formatted reason.
func NewValidationError(field, format string, args ...interface{}) *ValidationError {
	return &ValidationError{
		Field:  field,
		Reason: fmt.Sprintf(format, args...),
	}
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s %s", ErrInvalidInput, e.Field, e.Reason)
}

// Unwrap lets errors.Is match ErrInvalidInput.
func (e *ValidationError) Unwrap() error {
	return ErrInvalidInput
}
