package client

import (
	"strings"

	"github.com/google/uuid"

	"github.com/heartmarshall/coaching-backend/internal/domain"
)

// CreateClientInput holds the parameters for registering a client.
type CreateClientInput struct {
	Name   string
	Status domain.ClientStatus // empty = ACTIVE
}

// Validate checks all fields and collects all errors.
func (i CreateClientInput) Validate() error {
	var errs []domain.FieldError

	name := strings.TrimSpace(i.Name)
	if name == "" {
		errs = append(errs, domain.FieldError{Field: "name", Message: "required"})
	}
	if len(name) > 200 {
		errs = append(errs, domain.FieldError{Field: "name", Message: "max 200 characters"})
	}
	if i.Status != "" && !i.Status.IsValid() {
		errs = append(errs, domain.FieldError{Field: "status", Message: "invalid status"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// SetStatusInput holds the parameters for changing a client's status flag.
type SetStatusInput struct {
	ClientID uuid.UUID
	Status   domain.ClientStatus
}

// Validate checks all fields and collects all errors.
func (i SetStatusInput) Validate() error {
	var errs []domain.FieldError
	if i.ClientID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "client_id", Message: "required"})
	}
	if !i.Status.IsValid() {
		errs = append(errs, domain.FieldError{Field: "status", Message: "invalid status"})
	}
	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}
