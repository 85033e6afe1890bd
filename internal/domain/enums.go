package domain

// GenerationType identifies what an AI generator was asked to produce.
type GenerationType string

const (
	GenerationTypeTrainingProgram    GenerationType = "TRAINING_PROGRAM"
	GenerationTypeNutritionPlan      GenerationType = "NUTRITION_PLAN"
	GenerationTypeWeeklyReview       GenerationType = "WEEKLY_REVIEW"
	GenerationTypeSupplementAnalysis GenerationType = "SUPPLEMENT_ANALYSIS"
	GenerationTypeClientSummary      GenerationType = "CLIENT_SUMMARY"
)

func (g GenerationType) String() string { return string(g) }

func (g GenerationType) IsValid() bool {
	switch g {
	case GenerationTypeTrainingProgram, GenerationTypeNutritionPlan, GenerationTypeWeeklyReview,
		GenerationTypeSupplementAnalysis, GenerationTypeClientSummary:
		return true
	}
	return false
}

// ArtifactKind identifies a mutable coaching directive with history.
type ArtifactKind string

const (
	ArtifactKindNutritionTargets          ArtifactKind = "NUTRITION_TARGETS"
	ArtifactKindTrainingProgramAssignment ArtifactKind = "TRAINING_PROGRAM_ASSIGNMENT"
	ArtifactKindSupplementSet             ArtifactKind = "SUPPLEMENT_SET"
)

// ArtifactKinds lists every artifact kind in a stable order.
var ArtifactKinds = []ArtifactKind{
	ArtifactKindNutritionTargets,
	ArtifactKindTrainingProgramAssignment,
	ArtifactKindSupplementSet,
}

func (k ArtifactKind) String() string { return string(k) }

func (k ArtifactKind) IsValid() bool {
	switch k {
	case ArtifactKindNutritionTargets, ArtifactKindTrainingProgramAssignment, ArtifactKindSupplementSet:
		return true
	}
	return false
}

// Source records where an artifact version or event came from.
type Source string

const (
	SourceManual    Source = "MANUAL"
	SourceAI        Source = "AI"
	SourceAIApplied Source = "AI_APPLIED"
	SourceSystem    Source = "SYSTEM"
)

// Sources lists every source in a stable order.
var Sources = []Source{SourceManual, SourceAI, SourceAIApplied, SourceSystem}

func (s Source) String() string { return string(s) }

func (s Source) IsValid() bool {
	switch s {
	case SourceManual, SourceAI, SourceAIApplied, SourceSystem:
		return true
	}
	return false
}

// IsAI reports whether the source must be backed by a generation log.
func (s Source) IsAI() bool {
	return s == SourceAI || s == SourceAIApplied
}

// Area groups coaching events for timeline filtering.
type Area string

const (
	AreaTraining    Area = "TRAINING"
	AreaNutrition   Area = "NUTRITION"
	AreaSupplements Area = "SUPPLEMENTS"
	AreaRecovery    Area = "RECOVERY"
	AreaGeneral     Area = "GENERAL"
)

func (a Area) String() string { return string(a) }

func (a Area) IsValid() bool {
	switch a {
	case AreaTraining, AreaNutrition, AreaSupplements, AreaRecovery, AreaGeneral:
		return true
	}
	return false
}

// ClientStatus is a plain account flag. There is no approval workflow behind it.
type ClientStatus string

const (
	ClientStatusPending  ClientStatus = "PENDING"
	ClientStatusActive   ClientStatus = "ACTIVE"
	ClientStatusArchived ClientStatus = "ARCHIVED"
)

func (s ClientStatus) String() string { return string(s) }

func (s ClientStatus) IsValid() bool {
	switch s {
	case ClientStatusPending, ClientStatusActive, ClientStatusArchived:
		return true
	}
	return false
}

// UserRole represents the authorization level of an actor.
type UserRole string

const (
	UserRoleCoach UserRole = "coach"
	UserRoleAdmin UserRole = "admin"
)

func (r UserRole) String() string { return string(r) }

func (r UserRole) IsValid() bool {
	switch r {
	case UserRoleCoach, UserRoleAdmin:
		return true
	}
	return false
}

func (r UserRole) IsAdmin() bool { return r == UserRoleAdmin }
