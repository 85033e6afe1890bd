package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors used across all layers.
var (
	ErrNotFound          = errors.New("not found")
	ErrAlreadyExists     = errors.New("already exists")
	ErrValidation        = errors.New("validation error")
	ErrUnauthorized      = errors.New("unauthorized")
	ErrForbidden         = errors.New("forbidden")
	ErrConflict          = errors.New("conflict")
	ErrInvalidProvenance = errors.New("invalid provenance")
	ErrUnavailable       = errors.New("store unavailable")
	ErrGeneratorFailed   = errors.New("generator failed")
)

// FieldError describes a validation error for a specific field.
type FieldError struct {
	Field   string
	Message string
}

// ValidationError contains a list of field-level validation errors.
type ValidationError struct {
	Errors []FieldError
}

func (e *ValidationError) Error() string {
	if len(e.Errors) == 1 {
		return fmt.Sprintf("validation: %s: %s", e.Errors[0].Field, e.Errors[0].Message)
	}
	return fmt.Sprintf("validation: %d errors", len(e.Errors))
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// NewValidationError creates a ValidationError for a single field.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{
		Errors: []FieldError{{Field: field, Message: message}},
	}
}

// NewValidationErrors creates a ValidationError from multiple field errors.
func NewValidationErrors(errs []FieldError) *ValidationError {
	return &ValidationError{Errors: errs}
}

// ProvenanceError explains why an AI-attributed change was rejected.
type ProvenanceError struct {
	Reason string
}

func (e *ProvenanceError) Error() string {
	return "invalid provenance: " + e.Reason
}

func (e *ProvenanceError) Unwrap() error { return ErrInvalidProvenance }

// NewProvenanceError creates a ProvenanceError with the given reason.
func NewProvenanceError(format string, args ...any) *ProvenanceError {
	return &ProvenanceError{Reason: fmt.Sprintf(format, args...)}
}
