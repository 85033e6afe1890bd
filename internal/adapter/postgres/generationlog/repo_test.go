package generationlog_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/coaching-backend/internal/adapter/postgres/generationlog"
	"github.com/heartmarshall/coaching-backend/internal/adapter/postgres/testhelper"
	"github.com/heartmarshall/coaching-backend/internal/domain"
)

func TestRepo_CreateAndGet_RoundTripsResult(t *testing.T) {
	pool := testhelper.SetupTestDB(t)
	repo := generationlog.New(pool)
	ctx := context.Background()

	client := testhelper.SeedClient(t, pool, uuid.New())
	plan := testhelper.NutritionPlan()

	created, err := repo.Create(ctx, &domain.GenerationLog{
		ClientID:       client.ID,
		CoachID:        client.CoachID,
		GenerationType: domain.GenerationTypeNutritionPlan,
		Result:         plan,
		Model:          "claude-test",
		TokensUsed:     900,
		RAGUsed:        true,
	})
	if err != nil {
		t.Fatalf("Create: unexpected error: %v", err)
	}

	got, err := repo.GetByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("GetByID: unexpected error: %v", err)
	}

	result, ok := got.Result.(domain.NutritionPlanResult)
	if !ok {
		t.Fatalf("Result type: got %T, want NutritionPlanResult", got.Result)
	}
	if result.Calories != plan.Calories || result.Rationale != plan.Rationale {
		t.Errorf("Result: got %+v, want %+v", result, plan)
	}
	if !got.RAGUsed || got.TokensUsed != 900 || got.Model != "claude-test" {
		t.Errorf("meta: got model=%q tokens=%d rag=%v", got.Model, got.TokensUsed, got.RAGUsed)
	}
}

func TestRepo_Create_UnknownClient(t *testing.T) {
	pool := testhelper.SetupTestDB(t)
	repo := generationlog.New(pool)

	_, err := repo.Create(context.Background(), &domain.GenerationLog{
		ClientID:       uuid.New(),
		CoachID:        uuid.New(),
		GenerationType: domain.GenerationTypeClientSummary,
		Result:         domain.ClientSummaryResult{Summary: "x"},
		Model:          "m",
	})
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound from FK violation, got: %v", err)
	}
}

func TestRepo_List_NewestFirstWithTypeFilter(t *testing.T) {
	pool := testhelper.SetupTestDB(t)
	repo := generationlog.New(pool)
	ctx := context.Background()

	client := testhelper.SeedClient(t, pool, uuid.New())
	base := time.Now().UTC().Truncate(time.Microsecond)

	var ids []uuid.UUID
	for i, result := range []domain.GenerationResult{
		testhelper.NutritionPlan(),
		testhelper.SupplementAnalysis(),
		testhelper.NutritionPlan(),
	} {
		created, err := repo.Create(ctx, &domain.GenerationLog{
			ClientID:       client.ID,
			CoachID:        client.CoachID,
			GenerationType: result.GenerationType(),
			Result:         result,
			Model:          "m",
			CreatedAt:      base.Add(time.Duration(i) * time.Second),
		})
		if err != nil {
			t.Fatalf("Create #%d: %v", i, err)
		}
		ids = append(ids, created.ID)
	}

	all, err := repo.List(ctx, client.ID, domain.GenerationLogFilter{})
	if err != nil {
		t.Fatalf("List: unexpected error: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("List: got %d logs, want 3", len(all))
	}
	if all[0].ID != ids[2] || all[2].ID != ids[0] {
		t.Errorf("List order: got first=%v last=%v, want newest first", all[0].ID, all[2].ID)
	}

	nutrition := domain.GenerationTypeNutritionPlan
	filtered, err := repo.List(ctx, client.ID, domain.GenerationLogFilter{Type: &nutrition, Limit: 1})
	if err != nil {
		t.Fatalf("List filtered: unexpected error: %v", err)
	}
	if len(filtered) != 1 || filtered[0].ID != ids[2] {
		t.Errorf("List filtered: got %+v", filtered)
	}
}

func TestRepo_GetByIDs_SkipsMissing(t *testing.T) {
	pool := testhelper.SetupTestDB(t)
	repo := generationlog.New(pool)

	client := testhelper.SeedClient(t, pool, uuid.New())
	log := testhelper.SeedGenerationLog(t, pool, client, testhelper.TrainingProgram())

	got, err := repo.GetByIDs(context.Background(), []uuid.UUID{log.ID, uuid.New()})
	if err != nil {
		t.Fatalf("GetByIDs: unexpected error: %v", err)
	}
	if len(got) != 1 || got[0].ID != log.ID {
		t.Errorf("GetByIDs: got %+v", got)
	}
}

func TestRepo_Delete(t *testing.T) {
	pool := testhelper.SetupTestDB(t)
	repo := generationlog.New(pool)
	ctx := context.Background()

	client := testhelper.SeedClient(t, pool, uuid.New())
	log := testhelper.SeedGenerationLog(t, pool, client, testhelper.NutritionPlan())

	if err := repo.Delete(ctx, log.ID); err != nil {
		t.Fatalf("Delete: unexpected error: %v", err)
	}
	if _, err := repo.GetByID(ctx, log.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("GetByID after delete: expected ErrNotFound, got: %v", err)
	}
	if err := repo.Delete(ctx, log.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("second Delete: expected ErrNotFound, got: %v", err)
	}
}
