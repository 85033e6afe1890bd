package testhelper

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/heartmarshall/coaching-backend/internal/domain"
)

// uniqueSuffix returns a short unique string for generating non-conflicting test data.
func uniqueSuffix() string {
	return uuid.New().String()[:8]
}

// SeedClient creates an ACTIVE client owned by coachID.
func SeedClient(t *testing.T, pool *pgxpool.Pool, coachID uuid.UUID) domain.Client {
	t.Helper()

	client := domain.Client{
		ID:        uuid.New(),
		CoachID:   coachID,
		Name:      "Client " + uniqueSuffix(),
		Status:    domain.ClientStatusActive,
		CreatedAt: time.Now().UTC().Truncate(time.Microsecond),
	}

	_, err := pool.Exec(context.Background(),
		`INSERT INTO clients (id, coach_id, name, status, created_at)
		 VALUES ($1, $2, $3, $4, $5)`,
		client.ID, client.CoachID, client.Name, string(client.Status), client.CreatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedClient: %v", err)
	}

	return client
}

// SeedProgram creates a 4-week program template owned by coachID.
func SeedProgram(t *testing.T, pool *pgxpool.Pool, coachID uuid.UUID) domain.ProgramTemplate {
	t.Helper()

	program := domain.ProgramTemplate{
		ID:        uuid.New(),
		CoachID:   coachID,
		Name:      "Program " + uniqueSuffix(),
		Weeks:     4,
		CreatedAt: time.Now().UTC().Truncate(time.Microsecond),
	}

	_, err := pool.Exec(context.Background(),
		`INSERT INTO program_templates (id, coach_id, name, weeks, created_at)
		 VALUES ($1, $2, $3, $4, $5)`,
		program.ID, program.CoachID, program.Name, program.Weeks, program.CreatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedProgram: %v", err)
	}

	return program
}

// SeedGenerationLog inserts a generation log for the client with the given result.
func SeedGenerationLog(t *testing.T, pool *pgxpool.Pool, client domain.Client, result domain.GenerationResult) domain.GenerationLog {
	t.Helper()

	raw, err := json.Marshal(result)
	if err != nil {
		t.Fatalf("testhelper: SeedGenerationLog marshal: %v", err)
	}

	log := domain.GenerationLog{
		ID:             uuid.New(),
		ClientID:       client.ID,
		CoachID:        client.CoachID,
		GenerationType: result.GenerationType(),
		Result:         result,
		Model:          "test-model",
		TokensUsed:     1200,
		CreatedAt:      time.Now().UTC().Truncate(time.Microsecond),
	}

	_, err = pool.Exec(context.Background(),
		`INSERT INTO generation_logs (id, client_id, coach_id, generation_type, result, model, tokens_used, rag_used, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		log.ID, log.ClientID, log.CoachID, string(log.GenerationType), raw, log.Model, log.TokensUsed, log.RAGUsed, log.CreatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedGenerationLog: %v", err)
	}

	return log
}

// NutritionPlan returns a valid NUTRITION_PLAN result.
func NutritionPlan() domain.NutritionPlanResult {
	return domain.NutritionPlanResult{
		Calories:  2200,
		ProteinG:  160,
		CarbsG:    240,
		FatG:      70,
		Rationale: "moderate deficit with high protein",
	}
}

// SupplementAnalysis returns a valid SUPPLEMENT_ANALYSIS result.
func SupplementAnalysis() domain.SupplementAnalysisResult {
	return domain.SupplementAnalysisResult{
		Supplements: []domain.Supplement{
			{Name: "Creatine", Dosage: "5g", Timing: "daily"},
			{Name: "Vitamin D", Dosage: "2000 IU", Timing: "morning"},
		},
		Rationale: "baseline support",
	}
}

// TrainingProgram returns a valid TRAINING_PROGRAM result.
func TrainingProgram() domain.TrainingProgramResult {
	return domain.TrainingProgramResult{
		ProgramName:     "Upper/Lower",
		Weeks:           8,
		SessionsPerWeek: 4,
		Sessions: []domain.ProgramSession{
			{Day: "Mon", Focus: "Upper", Exercises: []domain.ProgramExercise{{Name: "Bench press", Sets: 4, Reps: "6-8"}}},
		},
		Rationale: "four day split",
	}
}
