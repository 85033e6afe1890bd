package generation

import (
	"encoding/json"
	"strings"

	"github.com/google/uuid"

	"github.com/heartmarshall/coaching-backend/internal/domain"
)

// AppendInput holds an externally produced generator output.
type AppendInput struct {
	ClientID       uuid.UUID
	GenerationType domain.GenerationType
	Result         json.RawMessage
	Meta           domain.GenerationMeta
}

// Validate checks all fields and collects all errors.
func (i AppendInput) Validate() error {
	var errs []domain.FieldError

	if i.ClientID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "client_id", Message: "required"})
	}
	if !i.GenerationType.IsValid() {
		errs = append(errs, domain.FieldError{Field: "generationType", Message: "invalid generation type"})
	}
	if len(i.Result) == 0 {
		errs = append(errs, domain.FieldError{Field: "result", Message: "required"})
	}
	if strings.TrimSpace(i.Meta.Model) == "" {
		errs = append(errs, domain.FieldError{Field: "model", Message: "required"})
	}
	if i.Meta.TokensUsed < 0 {
		errs = append(errs, domain.FieldError{Field: "tokensUsed", Message: "must be >= 0"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// GenerateInput asks the generator for a new result.
type GenerateInput struct {
	ClientID       uuid.UUID
	GenerationType domain.GenerationType
	// ClientContext is free-form context handed to the generator.
	ClientContext string
}

// Validate checks all fields and collects all errors.
func (i GenerateInput) Validate() error {
	var errs []domain.FieldError

	if i.ClientID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "client_id", Message: "required"})
	}
	if !i.GenerationType.IsValid() {
		errs = append(errs, domain.FieldError{Field: "generationType", Message: "invalid generation type"})
	}
	if len(i.ClientContext) > 20000 {
		errs = append(errs, domain.FieldError{Field: "clientContext", Message: "max 20000 characters"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// ListInput holds the parameters for listing a client's generation logs.
type ListInput struct {
	ClientID uuid.UUID
	Type     *domain.GenerationType
	Limit    int
}

// Validate checks all fields and collects all errors.
func (i ListInput) Validate() error {
	var errs []domain.FieldError
	if i.ClientID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "client_id", Message: "required"})
	}
	if i.Type != nil && !i.Type.IsValid() {
		errs = append(errs, domain.FieldError{Field: "type", Message: "invalid generation type"})
	}
	if i.Limit < 0 || i.Limit > 200 {
		errs = append(errs, domain.FieldError{Field: "limit", Message: "must be between 0 and 200"})
	}
	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}
