package timeline

import (
	"strings"

	"github.com/google/uuid"

	"github.com/heartmarshall/coaching-backend/internal/domain"
)

// AppendEventInput is a timeline entry with no backing artifact change.
type AppendEventInput struct {
	ClientID          uuid.UUID
	EventType         domain.EventType
	Area              domain.Area
	Title             string
	Description       string
	Source            domain.Source
	AIGenerationLogID *uuid.UUID
	RelatedEntityType *string
	RelatedEntityID   *uuid.UUID
	EventData         map[string]any
}

// Validate checks all fields and collects all errors.
func (i AppendEventInput) Validate() error {
	var errs []domain.FieldError

	if i.ClientID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "client_id", Message: "required"})
	}
	switch {
	case !i.EventType.IsValid():
		errs = append(errs, domain.FieldError{Field: "eventType", Message: "unknown event type"})
	case !i.EventType.IsDirectAppendable():
		errs = append(errs, domain.FieldError{Field: "eventType", Message: "artifact events are recorded by applying a change"})
	}
	if !i.Area.IsValid() {
		errs = append(errs, domain.FieldError{Field: "area", Message: "invalid area"})
	}
	title := strings.TrimSpace(i.Title)
	if title == "" {
		errs = append(errs, domain.FieldError{Field: "title", Message: "required"})
	} else if len(title) > 200 {
		errs = append(errs, domain.FieldError{Field: "title", Message: "max 200 characters"})
	}
	if len(i.Description) > 10000 {
		errs = append(errs, domain.FieldError{Field: "description", Message: "max 10000 characters"})
	}
	if !i.Source.IsValid() {
		errs = append(errs, domain.FieldError{Field: "source", Message: "invalid source"})
	}
	if (i.RelatedEntityType == nil) != (i.RelatedEntityID == nil) {
		errs = append(errs, domain.FieldError{Field: "relatedEntity", Message: "type and id must be set together"})
	}
	if i.RelatedEntityType != nil && *i.RelatedEntityType == domain.RelatedEntityArtifactVersion {
		errs = append(errs, domain.FieldError{Field: "relatedEntityType", Message: "reserved"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// ListInput holds the parameters for reading a client's timeline.
type ListInput struct {
	ClientID uuid.UUID
	Area     *domain.Area
	Limit    int
}

// Validate checks all fields and collects all errors.
func (i ListInput) Validate() error {
	var errs []domain.FieldError
	if i.ClientID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "client_id", Message: "required"})
	}
	if i.Area != nil && !i.Area.IsValid() {
		errs = append(errs, domain.FieldError{Field: "area", Message: "invalid area"})
	}
	if i.Limit < 0 || i.Limit > 200 {
		errs = append(errs, domain.FieldError{Field: "limit", Message: "must be between 0 and 200"})
	}
	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}
