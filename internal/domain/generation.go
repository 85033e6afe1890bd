package domain

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// GenerationLog is an immutable record of one AI generator output, kept
// whether or not it is ever applied.
type GenerationLog struct {
	ID             uuid.UUID
	ClientID       uuid.UUID
	CoachID        uuid.UUID
	GenerationType GenerationType
	Result         GenerationResult
	Model          string
	TokensUsed     int
	RAGUsed        bool
	CreatedAt      time.Time
}

// GenerationMeta describes the model call that produced a result.
type GenerationMeta struct {
	Model      string
	TokensUsed int
	RAGUsed    bool
}

// GeneratorOutput is the raw answer of the generative model. Result is
// untrusted JSON until decoded and validated for its generation type.
type GeneratorOutput struct {
	Result json.RawMessage
	Meta   GenerationMeta
}

// GenerationResult is the typed payload of a generation log. Exactly one
// concrete type exists per GenerationType.
type GenerationResult interface {
	GenerationType() GenerationType
	Validate() error
}

// ---------------------------------------------------------------------------
// Result variants
// ---------------------------------------------------------------------------

// ProgramExercise is one prescribed exercise inside a generated session.
type ProgramExercise struct {
	Name  string `json:"name"`
	Sets  int    `json:"sets"`
	Reps  string `json:"reps"`
	Notes string `json:"notes,omitempty"`
}

// ProgramSession is one training day of a generated program.
type ProgramSession struct {
	Day       string            `json:"day"`
	Focus     string            `json:"focus"`
	Exercises []ProgramExercise `json:"exercises"`
}

// TrainingProgramResult is the output of a TRAINING_PROGRAM generation.
type TrainingProgramResult struct {
	ProgramName     string           `json:"programName"`
	Weeks           int              `json:"weeks"`
	SessionsPerWeek int              `json:"sessionsPerWeek"`
	Sessions        []ProgramSession `json:"sessions"`
	Rationale       string           `json:"rationale"`
}

func (TrainingProgramResult) GenerationType() GenerationType { return GenerationTypeTrainingProgram }

func (r TrainingProgramResult) Validate() error {
	var errs []FieldError
	if strings.TrimSpace(r.ProgramName) == "" {
		errs = append(errs, FieldError{Field: "programName", Message: "required"})
	}
	if r.Weeks < 1 {
		errs = append(errs, FieldError{Field: "weeks", Message: "must be >= 1"})
	}
	if r.SessionsPerWeek < 1 || r.SessionsPerWeek > 14 {
		errs = append(errs, FieldError{Field: "sessionsPerWeek", Message: "must be between 1 and 14"})
	}
	for i, s := range r.Sessions {
		for j, ex := range s.Exercises {
			if strings.TrimSpace(ex.Name) == "" {
				errs = append(errs, FieldError{Field: fmt.Sprintf("sessions[%d].exercises[%d].name", i, j), Message: "required"})
			}
			if ex.Sets < 0 {
				errs = append(errs, FieldError{Field: fmt.Sprintf("sessions[%d].exercises[%d].sets", i, j), Message: "must be >= 0"})
			}
		}
	}
	if len(errs) > 0 {
		return NewValidationErrors(errs)
	}
	return nil
}

// NutritionPlanResult is the output of a NUTRITION_PLAN generation.
type NutritionPlanResult struct {
	Calories  float64  `json:"calories"`
	ProteinG  float64  `json:"proteinG"`
	CarbsG    float64  `json:"carbsG"`
	FatG      float64  `json:"fatG"`
	Rationale string   `json:"rationale"`
	Meals     []string `json:"meals,omitempty"`
}

func (NutritionPlanResult) GenerationType() GenerationType { return GenerationTypeNutritionPlan }

func (r NutritionPlanResult) Validate() error {
	return r.Targets().Validate()
}

// Targets returns the plan's macros in the shape of the nutrition targets artifact.
func (r NutritionPlanResult) Targets() NutritionTargets {
	return NutritionTargets{Calories: r.Calories, ProteinG: r.ProteinG, CarbsG: r.CarbsG, FatG: r.FatG}
}

// ReviewAction is one suggested follow-up from a weekly review.
type ReviewAction struct {
	Area        Area   `json:"area"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
}

// WeeklyReviewResult is the output of a WEEKLY_REVIEW generation.
type WeeklyReviewResult struct {
	Summary  string         `json:"summary"`
	Wins     []string       `json:"wins,omitempty"`
	Concerns []string       `json:"concerns,omitempty"`
	Actions  []ReviewAction `json:"actions,omitempty"`
}

func (WeeklyReviewResult) GenerationType() GenerationType { return GenerationTypeWeeklyReview }

func (r WeeklyReviewResult) Validate() error {
	var errs []FieldError
	if strings.TrimSpace(r.Summary) == "" {
		errs = append(errs, FieldError{Field: "summary", Message: "required"})
	}
	for i, a := range r.Actions {
		if !a.Area.IsValid() {
			errs = append(errs, FieldError{Field: fmt.Sprintf("actions[%d].area", i), Message: "invalid area"})
		}
		if strings.TrimSpace(a.Title) == "" {
			errs = append(errs, FieldError{Field: fmt.Sprintf("actions[%d].title", i), Message: "required"})
		}
	}
	if len(errs) > 0 {
		return NewValidationErrors(errs)
	}
	return nil
}

// SupplementAnalysisResult is the output of a SUPPLEMENT_ANALYSIS generation.
type SupplementAnalysisResult struct {
	Supplements []Supplement `json:"supplements"`
	Rationale   string       `json:"rationale"`
}

func (SupplementAnalysisResult) GenerationType() GenerationType {
	return GenerationTypeSupplementAnalysis
}

func (r SupplementAnalysisResult) Validate() error {
	return r.Set().Validate()
}

// Set returns the recommended supplements in the shape of the supplement set artifact.
func (r SupplementAnalysisResult) Set() SupplementSet {
	sups := r.Supplements
	if sups == nil {
		sups = []Supplement{}
	}
	return SupplementSet{Supplements: sups}
}

// ClientSummaryResult is the output of a CLIENT_SUMMARY generation.
type ClientSummaryResult struct {
	Summary    string   `json:"summary"`
	Highlights []string `json:"highlights,omitempty"`
}

func (ClientSummaryResult) GenerationType() GenerationType { return GenerationTypeClientSummary }

func (r ClientSummaryResult) Validate() error {
	if strings.TrimSpace(r.Summary) == "" {
		return NewValidationError("summary", "required")
	}
	return nil
}

// ---------------------------------------------------------------------------
// Decoding
// ---------------------------------------------------------------------------

// DecodeGenerationResult parses raw JSON into the result variant of the
// given generation type. The result is not validated.
func DecodeGenerationResult(genType GenerationType, raw []byte) (GenerationResult, error) {
	var (
		result GenerationResult
		err    error
	)

	switch genType {
	case GenerationTypeTrainingProgram:
		var v TrainingProgramResult
		err = json.Unmarshal(raw, &v)
		result = v
	case GenerationTypeNutritionPlan:
		var v NutritionPlanResult
		err = json.Unmarshal(raw, &v)
		result = v
	case GenerationTypeWeeklyReview:
		var v WeeklyReviewResult
		err = json.Unmarshal(raw, &v)
		result = v
	case GenerationTypeSupplementAnalysis:
		var v SupplementAnalysisResult
		err = json.Unmarshal(raw, &v)
		result = v
	case GenerationTypeClientSummary:
		var v ClientSummaryResult
		err = json.Unmarshal(raw, &v)
		result = v
	default:
		return nil, NewValidationError("generationType", "unknown generation type")
	}

	if err != nil {
		return nil, NewValidationError("result", "malformed: "+err.Error())
	}
	return result, nil
}
