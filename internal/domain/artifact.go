package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ArtifactValues is the kind-specific payload of an artifact version.
// Implementations are plain value types so two decodes of the same JSON
// compare equal with reflect.DeepEqual.
type ArtifactValues interface {
	Kind() ArtifactKind
	Validate() error
	Summary() string
}

// ArtifactVersion is an immutable provenance record: one per artifact change.
type ArtifactVersion struct {
	ID              uuid.UUID
	ClientID        uuid.UUID
	Kind            ArtifactKind
	Seq             int
	Values          ArtifactValues
	PreviousValues  ArtifactValues // nil for the first version
	Source          Source
	Rationale       *string
	GenerationLogID *uuid.UUID
	CreatedAt       time.Time
	CreatedBy       uuid.UUID
}

// ArtifactPointer identifies the current version of one (client, kind) pair.
type ArtifactPointer struct {
	ClientID         uuid.UUID
	Kind             ArtifactKind
	CurrentVersionID uuid.UUID
	UpdatedAt        time.Time
}

// CurrentArtifact is the current version joined with its generation log.
type CurrentArtifact struct {
	Version       ArtifactVersion
	GenerationLog *GenerationLog
	// LogDeleted is true when the version references a generation log that
	// no longer exists.
	LogDeleted bool
}

// ---------------------------------------------------------------------------
// Nutrition targets
// ---------------------------------------------------------------------------

// NutritionTargets are daily calorie and macro targets.
type NutritionTargets struct {
	Calories float64 `json:"calories"`
	ProteinG float64 `json:"proteinG"`
	CarbsG   float64 `json:"carbsG"`
	FatG     float64 `json:"fatG"`
}

func (NutritionTargets) Kind() ArtifactKind { return ArtifactKindNutritionTargets }

func (n NutritionTargets) Validate() error {
	var errs []FieldError
	check := func(field string, v float64) {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			errs = append(errs, FieldError{Field: field, Message: "must be a finite number"})
		} else if v < 0 {
			errs = append(errs, FieldError{Field: field, Message: "must be >= 0"})
		}
	}
	check("calories", n.Calories)
	check("proteinG", n.ProteinG)
	check("carbsG", n.CarbsG)
	check("fatG", n.FatG)
	if len(errs) > 0 {
		return NewValidationErrors(errs)
	}
	return nil
}

func (n NutritionTargets) Summary() string {
	return fmt.Sprintf("%g kcal, protein %gg, carbs %gg, fat %gg", n.Calories, n.ProteinG, n.CarbsG, n.FatG)
}

// ---------------------------------------------------------------------------
// Training program assignment
// ---------------------------------------------------------------------------

// ProgramAssignment assigns a program template to a client.
type ProgramAssignment struct {
	ProgramID uuid.UUID `json:"programId"`
	StartDate string    `json:"startDate,omitempty"` // YYYY-MM-DD
	Notes     string    `json:"notes,omitempty"`
}

const dateLayout = "2006-01-02"

func (ProgramAssignment) Kind() ArtifactKind { return ArtifactKindTrainingProgramAssignment }

func (p ProgramAssignment) Validate() error {
	var errs []FieldError
	if p.ProgramID == uuid.Nil {
		errs = append(errs, FieldError{Field: "programId", Message: "required"})
	}
	if p.StartDate != "" {
		if _, err := time.Parse(dateLayout, p.StartDate); err != nil {
			errs = append(errs, FieldError{Field: "startDate", Message: "must be YYYY-MM-DD"})
		}
	}
	if len(p.Notes) > 2000 {
		errs = append(errs, FieldError{Field: "notes", Message: "max 2000 characters"})
	}
	if len(errs) > 0 {
		return NewValidationErrors(errs)
	}
	return nil
}

func (p ProgramAssignment) Summary() string {
	if p.StartDate != "" {
		return fmt.Sprintf("program %s starting %s", p.ProgramID, p.StartDate)
	}
	return fmt.Sprintf("program %s", p.ProgramID)
}

// ---------------------------------------------------------------------------
// Supplement set
// ---------------------------------------------------------------------------

// Supplement is one entry of a client's active supplement regimen.
type Supplement struct {
	Name   string `json:"name"`
	Dosage string `json:"dosage,omitempty"`
	Timing string `json:"timing,omitempty"`
	Notes  string `json:"notes,omitempty"`
}

// SupplementSet is the full active supplement regimen of a client.
// An empty set means the client takes nothing.
type SupplementSet struct {
	Supplements []Supplement `json:"supplements"`
}

func (SupplementSet) Kind() ArtifactKind { return ArtifactKindSupplementSet }

func (s SupplementSet) Validate() error {
	var errs []FieldError
	seen := make(map[string]bool, len(s.Supplements))
	for i, sup := range s.Supplements {
		name := strings.ToLower(strings.TrimSpace(sup.Name))
		field := fmt.Sprintf("supplements[%d].name", i)
		if name == "" {
			errs = append(errs, FieldError{Field: field, Message: "required"})
			continue
		}
		if seen[name] {
			errs = append(errs, FieldError{Field: field, Message: "duplicate supplement"})
		}
		seen[name] = true
	}
	if len(errs) > 0 {
		return NewValidationErrors(errs)
	}
	return nil
}

func (s SupplementSet) Summary() string {
	if len(s.Supplements) == 0 {
		return "no supplements"
	}
	names := make([]string, len(s.Supplements))
	for i, sup := range s.Supplements {
		names[i] = sup.Name
	}
	return strings.Join(names, ", ")
}

// ---------------------------------------------------------------------------
// Decoding
// ---------------------------------------------------------------------------

// DecodeArtifactValues parses raw JSON into the schema of the given kind.
// Unknown fields are rejected. The result is not validated.
func DecodeArtifactValues(kind ArtifactKind, raw []byte) (ArtifactValues, error) {
	if len(bytes.TrimSpace(raw)) == 0 || bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
		return nil, NewValidationError("values", "required")
	}

	switch kind {
	case ArtifactKindNutritionTargets:
		var in struct {
			Calories *float64 `json:"calories"`
			ProteinG *float64 `json:"proteinG"`
			CarbsG   *float64 `json:"carbsG"`
			FatG     *float64 `json:"fatG"`
		}
		if err := strictUnmarshal(raw, &in); err != nil {
			return nil, err
		}
		var errs []FieldError
		for _, f := range []struct {
			name string
			v    *float64
		}{{"calories", in.Calories}, {"proteinG", in.ProteinG}, {"carbsG", in.CarbsG}, {"fatG", in.FatG}} {
			if f.v == nil {
				errs = append(errs, FieldError{Field: f.name, Message: "required"})
			}
		}
		if len(errs) > 0 {
			return nil, NewValidationErrors(errs)
		}
		return NutritionTargets{Calories: *in.Calories, ProteinG: *in.ProteinG, CarbsG: *in.CarbsG, FatG: *in.FatG}, nil

	case ArtifactKindTrainingProgramAssignment:
		var v ProgramAssignment
		if err := strictUnmarshal(raw, &v); err != nil {
			return nil, err
		}
		return v, nil

	case ArtifactKindSupplementSet:
		var v SupplementSet
		if err := strictUnmarshal(raw, &v); err != nil {
			return nil, err
		}
		if v.Supplements == nil {
			v.Supplements = []Supplement{}
		}
		return v, nil
	}

	return nil, NewValidationError("artifactKind", "unknown artifact kind")
}

func strictUnmarshal(raw []byte, dst any) error {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return NewValidationError("values", "malformed: "+err.Error())
	}
	if _, err := dec.Token(); err != io.EOF {
		return NewValidationError("values", "malformed: trailing data after top-level value")
	}
	return nil
}
