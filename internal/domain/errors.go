// internal/domain/errors.go
package domain

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// General errors
	ErrNotFound          = errors.New("not found")
	ErrInvalidInput      = errors.New("invalid input")
	ErrValidation        = errors.New("validation failed")
	ErrConflict          = errors.New("conflict")
	ErrInvalidTransition = errors.New("invalid status transition")

	// Authentication errors
	ErrUnauthenticated    = errors.New("unauthenticated")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrForbidden          = errors.New("forbidden")

	// User and organization errors
	ErrUserNotFound         = fmt.Errorf("user %w", ErrNotFound)
	ErrEmailAlreadyExists   = fmt.Errorf("email already exists: %w", ErrConflict)
	ErrOrganizationNotFound = fmt.Errorf("organization %w", ErrNotFound)

	// Tenant resource errors
	ErrApplicationNotFound = fmt.Errorf("application %w", ErrNotFound)
	ErrPersonaNotFound     = fmt.Errorf("persona %w", ErrNotFound)
	ErrCampaignNotFound    = fmt.Errorf("campaign %w", ErrNotFound)
	ErrContentNotFound     = fmt.Errorf("content %w", ErrNotFound)
	ErrInvalidAppKey       = fmt.Errorf("invalid application key: %w", ErrForbidden)

	// Generation errors
	ErrInsufficientData = errors.New("insufficient data")
	ErrGeneration       = errors.New("generation failed")
	ErrSchemaMismatch   = fmt.Errorf("output does not match schema: %w", ErrGeneration)
)

// FieldError describes one rejected input field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError carries field-level detail and matches ErrValidation with errors.Is.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return ErrValidation.Error()
	}
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.Field+": "+f.Message)
	}
	return ErrValidation.Error() + ": " + strings.Join(parts, "; ")
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// NewValidationError builds a ValidationError for a single field.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Fields: []FieldError{{Field: field, Message: message}}}
}

// Error pairs an error kind with a message that is safe to show the client.
type Error struct {
	Kind    error
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Kind
}

// Errorf builds an Error of the given kind with a formatted client message.
func Errorf(kind error, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// PublicMessage returns the client message carried by err, if any.
func PublicMessage(err error) (string, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Message, true
	}
	return "", false
}
