package domain

import (
	"fmt"

	"github.com/google/uuid"
)

// kindGeneration maps each artifact kind to the only generation type whose
// output may back it.
var kindGeneration = map[ArtifactKind]GenerationType{
	ArtifactKindNutritionTargets:          GenerationTypeNutritionPlan,
	ArtifactKindTrainingProgramAssignment: GenerationTypeTrainingProgram,
	ArtifactKindSupplementSet:             GenerationTypeSupplementAnalysis,
}

// kindArea maps each artifact kind to its timeline area.
var kindArea = map[ArtifactKind]Area{
	ArtifactKindNutritionTargets:          AreaNutrition,
	ArtifactKindTrainingProgramAssignment: AreaTraining,
	ArtifactKindSupplementSet:             AreaSupplements,
}

type eventTypeRow struct {
	kind      ArtifactKind
	source    Source
	eventType EventType
	title     string
}

// eventTypeTable has exactly one row per valid (kind, source) pair.
var eventTypeTable = []eventTypeRow{
	{ArtifactKindNutritionTargets, SourceManual, EventNutritionTargetsSet, "Nutrition targets set"},
	{ArtifactKindNutritionTargets, SourceAI, EventNutritionTargetsGenerated, "AI nutrition targets set"},
	{ArtifactKindNutritionTargets, SourceAIApplied, EventNutritionTargetsAdjusted, "Nutrition targets adjusted from AI plan"},
	{ArtifactKindNutritionTargets, SourceSystem, EventNutritionTargetsInitialized, "Nutrition targets initialized"},

	{ArtifactKindTrainingProgramAssignment, SourceManual, EventTrainingProgramAssigned, "Training program assigned"},
	{ArtifactKindTrainingProgramAssignment, SourceAI, EventTrainingProgramGenerated, "AI training program assigned"},
	{ArtifactKindTrainingProgramAssignment, SourceAIApplied, EventTrainingProgramApplied, "AI training program applied"},
	{ArtifactKindTrainingProgramAssignment, SourceSystem, EventTrainingProgramInitialized, "Training program initialized"},

	{ArtifactKindSupplementSet, SourceManual, EventSupplementsUpdated, "Supplements updated"},
	{ArtifactKindSupplementSet, SourceAI, EventSupplementsRecommended, "AI supplements set"},
	{ArtifactKindSupplementSet, SourceAIApplied, EventSupplementRecommendationApplied, "Supplement recommendation applied"},
	{ArtifactKindSupplementSet, SourceSystem, EventSupplementsInitialized, "Supplements initialized"},
}

func lookupEventRow(kind ArtifactKind, source Source) (eventTypeRow, error) {
	for _, row := range eventTypeTable {
		if row.kind == kind && row.source == source {
			return row, nil
		}
	}
	return eventTypeRow{}, fmt.Errorf("no event type for %s/%s: %w", kind, source, ErrValidation)
}

// DeriveEventType returns the timeline event type recorded when an artifact
// of the given kind changes from the given source.
func DeriveEventType(kind ArtifactKind, source Source) (EventType, error) {
	row, err := lookupEventRow(kind, source)
	if err != nil {
		return "", err
	}
	return row.eventType, nil
}

// EventTitle returns the human-readable timeline title for a (kind, source) change.
func EventTitle(kind ArtifactKind, source Source) string {
	row, err := lookupEventRow(kind, source)
	if err != nil {
		return string(kind)
	}
	return row.title
}

// ExpectedGenerationType returns the generation type that may back the kind.
func ExpectedGenerationType(kind ArtifactKind) (GenerationType, bool) {
	g, ok := kindGeneration[kind]
	return g, ok
}

// AreaForKind returns the timeline area of the kind.
func AreaForKind(kind ArtifactKind) Area {
	if a, ok := kindArea[kind]; ok {
		return a
	}
	return AreaGeneral
}

// CheckProvenance verifies that a change of the given kind and source is
// backed (or not backed) by the given generation log as required.
// log is nil when no generation log id was supplied; a supplied id whose log
// could not be found must be reported by the caller before calling this.
func CheckProvenance(kind ArtifactKind, source Source, clientID uuid.UUID, log *GenerationLog) error {
	if !source.IsAI() {
		if log != nil {
			return NewProvenanceError("source %s must not reference a generation log", source)
		}
		return nil
	}

	if log == nil {
		return NewProvenanceError("source %s requires a generation log", source)
	}
	if log.ClientID != clientID {
		return NewProvenanceError("generation log %s belongs to another client", log.ID)
	}
	want, ok := ExpectedGenerationType(kind)
	if !ok || log.GenerationType != want {
		return NewProvenanceError("generation log %s has type %s, %s requires %s", log.ID, log.GenerationType, kind, want)
	}
	return nil
}
