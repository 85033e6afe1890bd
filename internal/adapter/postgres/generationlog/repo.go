// Package generationlog implements the append-only GenerationLog repository
// using PostgreSQL. Results are stored as JSONB and decoded into the typed
// variant of their generation type on read.
package generationlog

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/heartmarshall/coaching-backend/internal/adapter/postgres"
	"github.com/heartmarshall/coaching-backend/internal/domain"
)

// Repo provides generation log persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new generation log repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

var logColumns = []string{
	"id", "client_id", "coach_id", "generation_type", "result", "model", "tokens_used", "rag_used", "created_at",
}

const insertLogSQL = `
INSERT INTO generation_logs (id, client_id, coach_id, generation_type, result, model, tokens_used, rag_used, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

const getLogByIDSQL = `
SELECT id, client_id, coach_id, generation_type, result, model, tokens_used, rag_used, created_at
FROM generation_logs
WHERE id = $1`

const getLogsByIDsSQL = `
SELECT id, client_id, coach_id, generation_type, result, model, tokens_used, rag_used, created_at
FROM generation_logs
WHERE id = ANY($1::uuid[])`

const deleteLogSQL = `DELETE FROM generation_logs WHERE id = $1`

// Create inserts a generation log. The result is stored as given; structural
// validation belongs to the caller. ID and CreatedAt are assigned when zero.
func (r *Repo) Create(ctx context.Context, log *domain.GenerationLog) (*domain.GenerationLog, error) {
	if log.Result == nil {
		return nil, domain.NewValidationError("result", "required")
	}

	raw, err := json.Marshal(log.Result)
	if err != nil {
		return nil, fmt.Errorf("marshal generation result: %w", err)
	}

	out := *log
	if out.ID == uuid.Nil {
		out.ID = uuid.New()
	}
	if out.CreatedAt.IsZero() {
		out.CreatedAt = time.Now().UTC().Truncate(time.Microsecond)
	}

	_, err = postgres.QuerierFromCtx(ctx, r.pool).Exec(ctx, insertLogSQL,
		out.ID, out.ClientID, out.CoachID, string(out.GenerationType), raw,
		out.Model, out.TokensUsed, out.RAGUsed, out.CreatedAt,
	)
	if err != nil {
		return nil, postgres.MapError(err, "generation_log", out.ID)
	}

	return &out, nil
}

// GetByID returns a generation log. Returns domain.ErrNotFound if it does not exist.
func (r *Repo) GetByID(ctx context.Context, logID uuid.UUID) (*domain.GenerationLog, error) {
	row := postgres.QuerierFromCtx(ctx, r.pool).QueryRow(ctx, getLogByIDSQL, logID)

	log, err := scanLog(row)
	if err != nil {
		return nil, postgres.MapError(err, "generation_log", logID)
	}
	return log, nil
}

// GetByIDs returns the logs that exist among ids, in no particular order
// (batch for DataLoader). Missing ids are simply absent from the result.
func (r *Repo) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]domain.GenerationLog, error) {
	if len(ids) == 0 {
		return []domain.GenerationLog{}, nil
	}

	rows, err := postgres.QuerierFromCtx(ctx, r.pool).Query(ctx, getLogsByIDsSQL, ids)
	if err != nil {
		return nil, postgres.MapError(err, "generation_logs", uuid.Nil)
	}
	defer rows.Close()

	return collectLogs(rows)
}

// List returns a client's generation logs, newest first.
func (r *Repo) List(ctx context.Context, clientID uuid.UUID, filter domain.GenerationLogFilter) ([]domain.GenerationLog, error) {
	query := postgres.Builder().
		Select(logColumns...).
		From("generation_logs").
		Where(sq.Eq{"client_id": clientID}).
		OrderBy("created_at DESC", "id DESC").
		Limit(uint64(postgres.ClampLimit(filter.Limit)))

	if filter.Type != nil {
		query = query.Where(sq.Eq{"generation_type": string(*filter.Type)})
	}

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list generation_logs query: %w", err)
	}

	rows, err := postgres.QuerierFromCtx(ctx, r.pool).Query(ctx, sql, args...)
	if err != nil {
		return nil, postgres.MapError(err, "generation_logs of client", clientID)
	}
	defer rows.Close()

	return collectLogs(rows)
}

// Delete hard-deletes a generation log. Artifact versions that reference it
// are left untouched. Returns domain.ErrNotFound if the log does not exist.
func (r *Repo) Delete(ctx context.Context, logID uuid.UUID) error {
	tag, err := postgres.QuerierFromCtx(ctx, r.pool).Exec(ctx, deleteLogSQL, logID)
	if err != nil {
		return postgres.MapError(err, "generation_log", logID)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("generation_log %s: %w", logID, domain.ErrNotFound)
	}
	return nil
}

// ---------------------------------------------------------------------------
// Row scanning helpers
// ---------------------------------------------------------------------------

func collectLogs(rows pgx.Rows) ([]domain.GenerationLog, error) {
	result := []domain.GenerationLog{}
	for rows.Next() {
		log, err := scanLog(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *log)
	}
	if err := rows.Err(); err != nil {
		return nil, postgres.MapError(err, "generation_logs", uuid.Nil)
	}
	return result, nil
}

func scanLog(row pgx.Row) (*domain.GenerationLog, error) {
	var (
		log     domain.GenerationLog
		genType string
		raw     []byte
	)
	if err := row.Scan(&log.ID, &log.ClientID, &log.CoachID, &genType, &raw,
		&log.Model, &log.TokensUsed, &log.RAGUsed, &log.CreatedAt); err != nil {
		return nil, err
	}

	log.GenerationType = domain.GenerationType(genType)
	result, err := domain.DecodeGenerationResult(log.GenerationType, raw)
	if err != nil {
		return nil, fmt.Errorf("decode generation_log %s result: %w", log.ID, err)
	}
	log.Result = result

	return &log, nil
}
