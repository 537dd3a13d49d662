package core

import (
	"fmt"
	"strings"
)

// ValidEmail reports whether v looks like an email address. The check is
// intentionally loose: it only requires an "@" character. Full RFC
// validation is the server's job.
func ValidEmail(v string) bool {
	return strings.Contains(v, "@")
}

// AssertEmail returns a ValidationError naming field when email does not
// pass ValidEmail.
func AssertEmail(email, field string) error {
	if ValidEmail(email) {
		return nil
	}
	return &ValidationError{Field: field, Message: "invalid email address"}
}

// ValidationError represents structurally invalid caller input. It is always
// returned before any network call is made.
type ValidationError struct {
	// Field is the name of the field that failed validation.
	Field string

	// Message is the validation error message.
	Message string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error in %s: %s", e.Field, e.Message)
}

// Is implements error matching for errors.Is.
func (e *ValidationError) Is(target error) bool {
	_, ok := target.(*ValidationError)
	return ok
}

// NewValidationError creates a new validation error.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}
