package domain

import (
	"time"

	"github.com/google/uuid"
)

// EventType is the closed set of coaching timeline occurrences.
type EventType string

// Artifact-mutating events. Only the application engine emits these.
const (
	EventNutritionTargetsSet         EventType = "nutrition_targets_set"
	EventNutritionTargetsGenerated   EventType = "nutrition_targets_generated"
	EventNutritionTargetsAdjusted    EventType = "nutrition_targets_adjusted"
	EventNutritionTargetsInitialized EventType = "nutrition_targets_initialized"

	EventTrainingProgramAssigned    EventType = "training_program_assigned"
	EventTrainingProgramGenerated   EventType = "training_program_generated"
	EventTrainingProgramApplied     EventType = "training_program_applied"
	EventTrainingProgramInitialized EventType = "training_program_initialized"

	EventSupplementsUpdated              EventType = "supplements_updated"
	EventSupplementsRecommended          EventType = "supplements_recommended"
	EventSupplementRecommendationApplied EventType = "supplement_recommendation_applied"
	EventSupplementsInitialized          EventType = "supplements_initialized"
)

// Events with no backing artifact change. These may be appended directly.
const (
	EventCoachNoteAdded            EventType = "coach_note_added"
	EventIntakeCompleted           EventType = "intake_completed"
	EventCheckInReviewed           EventType = "check_in_reviewed"
	EventWeeklyReviewActionApplied EventType = "weekly_review_action_applied"
	EventClientSummaryReviewed     EventType = "client_summary_reviewed"
)

func (e EventType) String() string { return string(e) }

func (e EventType) IsValid() bool {
	return e.IsArtifactEvent() || e.IsDirectAppendable()
}

// IsArtifactEvent reports whether the event type records an artifact change.
func (e EventType) IsArtifactEvent() bool {
	for _, row := range eventTypeTable {
		if row.eventType == e {
			return true
		}
	}
	return false
}

// IsDirectAppendable reports whether the event type may be appended to the
// timeline without going through the application engine.
func (e EventType) IsDirectAppendable() bool {
	switch e {
	case EventCoachNoteAdded, EventIntakeCompleted, EventCheckInReviewed,
		EventWeeklyReviewActionApplied, EventClientSummaryReviewed:
		return true
	}
	return false
}

// RelatedEntityArtifactVersion is the related entity type of engine events.
const RelatedEntityArtifactVersion = "artifact_version"

// CoachingEvent is one append-only entry of a client's coaching timeline.
type CoachingEvent struct {
	ID                uuid.UUID
	ClientID          uuid.UUID
	CoachID           uuid.UUID
	EventType         EventType
	Area              Area
	Title             string
	Description       string
	Source            Source
	AIGenerationLogID *uuid.UUID
	RelatedEntityType *string
	RelatedEntityID   *uuid.UUID
	EventData         map[string]any
	CreatedAt         time.Time
}
