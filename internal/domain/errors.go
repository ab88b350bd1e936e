package domain

import (
	"errors"
	"fmt"
)

// Common domain errors used across the application.
var (
	// ErrValidation is returned when a domain entity fails validation.
	// It is wrapped by ValidationError with the offending field.
	ErrValidation = errors.New("validation failed")

	// ErrInvalidID is returned when an ID is malformed or out of range.
	ErrInvalidID = errors.New("invalid ID")

	// ErrInvalidEmail is returned when an email address is malformed.
	ErrInvalidEmail = errors.New("invalid email format")

	// ErrInvalidPhone is returned when a phone number is malformed.
	ErrInvalidPhone = errors.New("invalid phone number")

	// ErrInvalidPassword is returned when a password doesn't meet requirements.
	ErrInvalidPassword = errors.New("invalid password")

	// ErrInvalidRole is returned when an account role is outside the known range.
	ErrInvalidRole = errors.New("invalid account role")

	// ErrInvalidISBN is returned when an ISBN is not a 13 digit number.
	ErrInvalidISBN = errors.New("ISBN must be a 13-digit number")

	// ErrInvalidYear is returned when a publication year is out of range.
	ErrInvalidYear = errors.New("invalid publication year")

	// ErrInvalidRating is returned for negative star counts or ratings outside 1..5.
	ErrInvalidRating = errors.New("invalid rating")

	// ErrEmptyContent is returned when required text is empty.
	ErrEmptyContent = errors.New("content cannot be empty")

	// ErrContentTooLong is returned when text exceeds its column size.
	ErrContentTooLong = errors.New("content too long")
)

// ValidationError describes a validation failure for a single field.
type ValidationError struct {
	Field   string
	Message string
	Err     error
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s %s", e.Field, e.Message)
}

// Unwrap exposes the underlying sentinel so callers can use errors.Is.
func (e *ValidationError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrValidation}
	}
	return []error{ErrValidation, e.Err}
}

// NewValidationError creates a ValidationError for field. err may be nil;
// the result always matches ErrValidation.
func NewValidationError(field, message string, err error) *ValidationError {
	return &ValidationError{Field: field, Message: message, Err: err}
}
