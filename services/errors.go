package services

import (
	"errors"
	"fmt"
)

// Sentinel errors for the core operations. Handlers translate these to HTTP
// statuses; anything else coming out of the store is wrapped as
// ErrServiceUnavailable so internal detail never reaches the client.
var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrProfileNotFound    = errors.New("user profile not found")
	ErrEmailTaken         = errors.New("email is already registered")
	ErrRegistrationFailed = errors.New("registration failed")
	ErrNotFound           = errors.New("record not found")
	ErrForbidden          = errors.New("not allowed")
	ErrServiceUnavailable = errors.New("service unavailable")
)

// ValidationError carries a user-facing message about a malformed request
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// NewValidationError builds a ValidationError for a field
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// IsValidation reports whether err is a ValidationError
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
