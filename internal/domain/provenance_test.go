package domain

import (
	"errors"
	"testing"

	"github.com/google/uuid"
)

func TestDeriveEventType_Total(t *testing.T) {
	t.Parallel()

	seen := make(map[EventType]bool)
	for _, kind := range ArtifactKinds {
		for _, source := range Sources {
			et, err := DeriveEventType(kind, source)
			if err != nil {
				t.Fatalf("DeriveEventType(%s, %s): unexpected error: %v", kind, source, err)
			}
			if !et.IsValid() || !et.IsArtifactEvent() {
				t.Errorf("DeriveEventType(%s, %s) = %q, not an artifact event", kind, source, et)
			}
			if et.IsDirectAppendable() {
				t.Errorf("DeriveEventType(%s, %s) = %q is direct-appendable", kind, source, et)
			}
			if seen[et] {
				t.Errorf("event type %q derived for more than one pair", et)
			}
			seen[et] = true
		}
	}
	if len(seen) != len(ArtifactKinds)*len(Sources) {
		t.Errorf("derived %d event types, want %d", len(seen), len(ArtifactKinds)*len(Sources))
	}
}

func TestDeriveEventType_Known(t *testing.T) {
	t.Parallel()

	tests := []struct {
		kind   ArtifactKind
		source Source
		want   EventType
	}{
		{ArtifactKindNutritionTargets, SourceManual, EventNutritionTargetsSet},
		{ArtifactKindNutritionTargets, SourceAIApplied, EventNutritionTargetsAdjusted},
		{ArtifactKindTrainingProgramAssignment, SourceAIApplied, EventTrainingProgramApplied},
		{ArtifactKindTrainingProgramAssignment, SourceSystem, EventTrainingProgramInitialized},
		{ArtifactKindSupplementSet, SourceAIApplied, EventSupplementRecommendationApplied},
		{ArtifactKindSupplementSet, SourceManual, EventSupplementsUpdated},
	}
	for _, tt := range tests {
		got, err := DeriveEventType(tt.kind, tt.source)
		if err != nil {
			t.Fatalf("DeriveEventType(%s, %s): %v", tt.kind, tt.source, err)
		}
		if got != tt.want {
			t.Errorf("DeriveEventType(%s, %s) = %q, want %q", tt.kind, tt.source, got, tt.want)
		}
	}
}

func TestDeriveEventType_InvalidPair(t *testing.T) {
	t.Parallel()

	if _, err := DeriveEventType(ArtifactKind("MEAL_PLAN"), SourceManual); !errors.Is(err, ErrValidation) {
		t.Errorf("unknown kind: expected ErrValidation, got %v", err)
	}
	if _, err := DeriveEventType(ArtifactKindNutritionTargets, Source("IMPORT")); !errors.Is(err, ErrValidation) {
		t.Errorf("unknown source: expected ErrValidation, got %v", err)
	}
}

func TestAreaForKind(t *testing.T) {
	t.Parallel()

	if got := AreaForKind(ArtifactKindSupplementSet); got != AreaSupplements {
		t.Errorf("AreaForKind(SUPPLEMENT_SET) = %s", got)
	}
	if got := AreaForKind(ArtifactKind("X")); got != AreaGeneral {
		t.Errorf("AreaForKind(unknown) = %s, want GENERAL", got)
	}
}

func TestCheckProvenance(t *testing.T) {
	t.Parallel()

	clientID := uuid.New()
	nutritionLog := &GenerationLog{ID: uuid.New(), ClientID: clientID, GenerationType: GenerationTypeNutritionPlan}
	otherClientLog := &GenerationLog{ID: uuid.New(), ClientID: uuid.New(), GenerationType: GenerationTypeNutritionPlan}

	tests := []struct {
		name    string
		kind    ArtifactKind
		source  Source
		log     *GenerationLog
		wantErr bool
	}{
		{"manual without log", ArtifactKindNutritionTargets, SourceManual, nil, false},
		{"system without log", ArtifactKindNutritionTargets, SourceSystem, nil, false},
		{"manual with log", ArtifactKindNutritionTargets, SourceManual, nutritionLog, true},
		{"system with log", ArtifactKindNutritionTargets, SourceSystem, nutritionLog, true},
		{"ai applied matching", ArtifactKindNutritionTargets, SourceAIApplied, nutritionLog, false},
		{"ai matching", ArtifactKindNutritionTargets, SourceAI, nutritionLog, false},
		{"ai applied missing log", ArtifactKindNutritionTargets, SourceAIApplied, nil, true},
		{"ai applied other client", ArtifactKindNutritionTargets, SourceAIApplied, otherClientLog, true},
		{"ai applied wrong type", ArtifactKindSupplementSet, SourceAIApplied, nutritionLog, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := CheckProvenance(tt.kind, tt.source, clientID, tt.log)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidProvenance) {
					t.Fatalf("expected ErrInvalidProvenance, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}
