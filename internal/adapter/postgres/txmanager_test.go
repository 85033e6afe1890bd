package postgres_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/heartmarshall/coaching-backend/internal/adapter/postgres"
	"github.com/heartmarshall/coaching-backend/internal/adapter/postgres/testhelper"
)

// clientExists checks whether a client row with the given ID exists in the database.
func clientExists(t *testing.T, pool *pgxpool.Pool, clientID uuid.UUID) bool {
	t.Helper()
	var exists bool
	err := pool.QueryRow(
		context.Background(),
		`SELECT EXISTS(SELECT 1 FROM clients WHERE id = $1)`,
		clientID,
	).Scan(&exists)
	if err != nil {
		t.Fatalf("clientExists query: %v", err)
	}
	return exists
}

func insertClient(ctx context.Context, q postgres.Querier, clientID uuid.UUID, name string) error {
	_, err := q.Exec(ctx,
		`INSERT INTO clients (id, coach_id, name, status, created_at)
		 VALUES ($1, $2, $3, 'ACTIVE', now())`,
		clientID, uuid.New(), name,
	)
	return err
}

func TestRunInTx_Commit(t *testing.T) {
	pool := testhelper.SetupTestDB(t)
	tm := postgres.NewTxManager(pool)

	clientID := uuid.New()

	err := tm.RunInTx(context.Background(), func(ctx context.Context) error {
		return insertClient(ctx, postgres.QuerierFromCtx(ctx, pool), clientID, "Commit Test")
	})
	if err != nil {
		t.Fatalf("RunInTx returned error: %v", err)
	}

	if !clientExists(t, pool, clientID) {
		t.Fatal("expected client to exist after committed transaction")
	}
}

func TestRunInTx_RollbackOnError(t *testing.T) {
	pool := testhelper.SetupTestDB(t)
	tm := postgres.NewTxManager(pool)

	clientID := uuid.New()
	sentinel := errors.New("business logic error")

	err := tm.RunInTx(context.Background(), func(ctx context.Context) error {
		if execErr := insertClient(ctx, postgres.QuerierFromCtx(ctx, pool), clientID, "Rollback Test"); execErr != nil {
			t.Fatalf("insert inside tx failed: %v", execErr)
		}
		return sentinel
	})

	if !errors.Is(err, sentinel) {
		t.Fatalf("expected sentinel error, got: %v", err)
	}

	if clientExists(t, pool, clientID) {
		t.Fatal("expected client NOT to exist after rolled-back transaction")
	}
}

func TestRunInTx_RollbackOnPanic(t *testing.T) {
	pool := testhelper.SetupTestDB(t)
	tm := postgres.NewTxManager(pool)

	clientID := uuid.New()

	defer func() {
		r := recover()
		if r == nil {
			t.Fatal("expected panic to be re-raised")
		}
		if r != "test panic" {
			t.Fatalf("expected panic value %q, got %v", "test panic", r)
		}

		if clientExists(t, pool, clientID) {
			t.Fatal("expected client NOT to exist after panic-rolled-back transaction")
		}
	}()

	_ = tm.RunInTx(context.Background(), func(ctx context.Context) error {
		if err := insertClient(ctx, postgres.QuerierFromCtx(ctx, pool), clientID, "Panic Test"); err != nil {
			t.Fatalf("insert inside tx failed: %v", err)
		}
		panic("test panic")
	})
}

func TestRunInTx_QuerierFromCtx_UsesTx(t *testing.T) {
	pool := testhelper.SetupTestDB(t)
	tm := postgres.NewTxManager(pool)

	clientID := uuid.New()

	err := tm.RunInTx(context.Background(), func(ctx context.Context) error {
		if !postgres.InTx(ctx) {
			t.Fatal("expected InTx to report the transaction")
		}

		q := postgres.QuerierFromCtx(ctx, pool)
		if err := insertClient(ctx, q, clientID, "Ctx Test"); err != nil {
			return err
		}

		// Should be visible within the transaction.
		var exists bool
		err := q.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM clients WHERE id = $1)`, clientID).Scan(&exists)
		if err != nil {
			return err
		}
		if !exists {
			t.Fatal("expected client to be visible within the transaction")
		}
		return nil
	})
	if err != nil {
		t.Fatalf("RunInTx returned error: %v", err)
	}

	if postgres.InTx(context.Background()) {
		t.Fatal("expected InTx to be false outside a transaction")
	}
	if !clientExists(t, pool, clientID) {
		t.Fatal("expected client to exist after committed transaction")
	}
}

func TestRunInTx_NestedJoinsOuter(t *testing.T) {
	pool := testhelper.SetupTestDB(t)
	tm := postgres.NewTxManager(pool)

	outerID, innerID := uuid.New(), uuid.New()
	sentinel := errors.New("outer fails after inner succeeded")

	err := tm.RunInTx(context.Background(), func(ctx context.Context) error {
		if err := insertClient(ctx, postgres.QuerierFromCtx(ctx, pool), outerID, "Outer"); err != nil {
			return err
		}
		if err := tm.RunInTx(ctx, func(ctx context.Context) error {
			return insertClient(ctx, postgres.QuerierFromCtx(ctx, pool), innerID, "Inner")
		}); err != nil {
			return err
		}
		return sentinel
	})
	if !errors.Is(err, sentinel) {
		t.Fatalf("expected sentinel error, got: %v", err)
	}

	if clientExists(t, pool, outerID) || clientExists(t, pool, innerID) {
		t.Fatal("expected the joined inner work to roll back with the outer transaction")
	}
}

func TestRunInTx_CanceledContextRollsBack(t *testing.T) {
	pool := testhelper.SetupTestDB(t)
	tm := postgres.NewTxManager(pool)

	clientID := uuid.New()
	ctx, cancel := context.WithCancel(context.Background())

	err := tm.RunInTx(ctx, func(ctx context.Context) error {
		if err := insertClient(ctx, postgres.QuerierFromCtx(ctx, pool), clientID, "Canceled"); err != nil {
			return err
		}
		cancel()
		return nil
	})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got: %v", err)
	}

	if clientExists(t, pool, clientID) {
		t.Fatal("expected client NOT to exist after canceled transaction")
	}
}
