package artifact

import (
	"encoding/json"
	"strings"

	"github.com/google/uuid"

	"github.com/heartmarshall/coaching-backend/internal/domain"
)

const maxRationaleLen = 4000

// ApplyInput is a request to change one artifact of a client.
type ApplyInput struct {
	ClientID        uuid.UUID
	Kind            domain.ArtifactKind
	Values          json.RawMessage
	Source          domain.Source
	Rationale       *string
	GenerationLogID *uuid.UUID
}

// Validate checks identifiers and enums and collects all errors.
func (i ApplyInput) Validate() error {
	var errs []domain.FieldError

	if i.ClientID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "client_id", Message: "required"})
	}
	if !i.Kind.IsValid() {
		errs = append(errs, domain.FieldError{Field: "artifactKind", Message: "invalid artifact kind"})
	}
	if !i.Source.IsValid() {
		errs = append(errs, domain.FieldError{Field: "source", Message: "invalid source"})
	}
	if i.GenerationLogID != nil && *i.GenerationLogID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "generationLogId", Message: "must not be nil uuid"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// validateRationale requires a non-blank rationale for every non-manual change.
func (i ApplyInput) validateRationale() error {
	if i.Rationale != nil && len(*i.Rationale) > maxRationaleLen {
		return domain.NewValidationError("rationale", "max 4000 characters")
	}
	if i.Source == domain.SourceManual {
		return nil
	}
	if i.Rationale == nil || strings.TrimSpace(*i.Rationale) == "" {
		return domain.NewValidationError("rationale", "required for source "+i.Source.String())
	}
	return nil
}

// normalizedRationale trims the rationale and drops it when blank.
func (i ApplyInput) normalizedRationale() *string {
	if i.Rationale == nil {
		return nil
	}
	r := strings.TrimSpace(*i.Rationale)
	if r == "" {
		return nil
	}
	return &r
}
