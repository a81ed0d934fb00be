// Package domain holds the error vocabulary shared by entities, value objects
// and domain services.
package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrDomain is the root of every domain failure.
	ErrDomain = errors.New("domain error")

	ErrEntityNotFound        = fmt.Errorf("%w: entity not found", ErrDomain)
	ErrDuplicateEntity       = fmt.Errorf("%w: duplicate entity", ErrDomain)
	ErrBusinessRuleViolation = fmt.Errorf("%w: business rule violation", ErrDomain)
)

// ValidationError reports input rejected by a value object. Message is shown
// to API clients as-is.
type ValidationError struct {
	Message string
}

func NewValidationError(msg string) *ValidationError {
	return &ValidationError{Message: msg}
}

func (e *ValidationError) Error() string { return e.Message }

func (e *ValidationError) Unwrap() error { return ErrDomain }

// IsValidation reports whether err carries a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
