// Package pgstore persists artifact versions and the current-version pointer.
//
// It lives under the artifact service so that the application engine is the
// only code able to import it. Write methods must run inside a transaction
// started by postgres.TxManager.
package pgstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/heartmarshall/coaching-backend/internal/adapter/postgres"
	"github.com/heartmarshall/coaching-backend/internal/domain"
)

// ErrNoTx is returned by write methods called outside a transaction.
var ErrNoTx = errors.New("pgstore: write outside transaction")

// Store provides artifact version and pointer persistence.
type Store struct {
	pool *pgxpool.Pool
}

// New creates a new Store.
func New(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

const versionColumns = `v.id, v.client_id, v.artifact_kind, v.seq, v.values, v.previous_values,
       v.source, v.rationale, v.generation_log_id, v.created_at, v.created_by`

const advisoryLockSQL = `SELECT pg_advisory_xact_lock(hashtextextended($1, 0))`

const lockCurrentSQL = `
SELECT ` + versionColumns + `
FROM artifact_pointers p
JOIN artifact_versions v ON v.id = p.current_version_id
WHERE p.client_id = $1 AND p.artifact_kind = $2
FOR UPDATE OF p`

const insertVersionSQL = `
INSERT INTO artifact_versions (
    id, client_id, artifact_kind, seq, values, previous_values,
    source, rationale, generation_log_id, created_at, created_by
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`

const upsertPointerSQL = `
INSERT INTO artifact_pointers (client_id, artifact_kind, current_version_id, updated_at)
VALUES ($1, $2, $3, $4)
ON CONFLICT (client_id, artifact_kind)
DO UPDATE SET current_version_id = EXCLUDED.current_version_id, updated_at = EXCLUDED.updated_at`

const getCurrentSQL = `
SELECT ` + versionColumns + `,
       g.id, g.client_id, g.coach_id, g.generation_type, g.result,
       g.model, g.tokens_used, g.rag_used, g.created_at
FROM artifact_pointers p
JOIN artifact_versions v ON v.id = p.current_version_id
LEFT JOIN generation_logs g ON g.id = v.generation_log_id
WHERE p.client_id = $1 AND p.artifact_kind = $2`

const historySQL = `
SELECT ` + versionColumns + `
FROM artifact_versions v
WHERE v.client_id = $1 AND v.artifact_kind = $2
ORDER BY v.seq ASC`

// ---------------------------------------------------------------------------
// Write operations (transaction required)
// ---------------------------------------------------------------------------

// LockCurrent serializes writers of one (client, kind) pair for the rest of
// the transaction and returns the current version, or nil when unset.
func (s *Store) LockCurrent(ctx context.Context, clientID uuid.UUID, kind domain.ArtifactKind) (*domain.ArtifactVersion, error) {
	if !postgres.InTx(ctx) {
		return nil, ErrNoTx
	}
	q := postgres.QuerierFromCtx(ctx, s.pool)

	if _, err := q.Exec(ctx, advisoryLockSQL, lockKey(clientID, kind)); err != nil {
		return nil, postgres.MapError(err, "artifact lock", clientID)
	}

	v, err := scanVersion(q.QueryRow(ctx, lockCurrentSQL, clientID, string(kind)))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, postgres.MapError(err, "artifact_pointer", clientID)
	}
	return v, nil
}

// InsertVersion inserts an immutable version row.
func (s *Store) InsertVersion(ctx context.Context, v *domain.ArtifactVersion) error {
	if !postgres.InTx(ctx) {
		return ErrNoTx
	}

	values, err := json.Marshal(v.Values)
	if err != nil {
		return fmt.Errorf("marshal values: %w", err)
	}
	var previous []byte
	if v.PreviousValues != nil {
		if previous, err = json.Marshal(v.PreviousValues); err != nil {
			return fmt.Errorf("marshal previous values: %w", err)
		}
	}

	_, err = postgres.QuerierFromCtx(ctx, s.pool).Exec(ctx, insertVersionSQL,
		v.ID, v.ClientID, string(v.Kind), v.Seq, values, previous,
		string(v.Source), ptrStringToPgText(v.Rationale), uuidToPgUUID(v.GenerationLogID),
		v.CreatedAt, v.CreatedBy,
	)
	if err != nil {
		return postgres.MapError(err, "artifact_version", v.ID)
	}
	return nil
}

// SetCurrent points (client, kind) at versionID.
func (s *Store) SetCurrent(ctx context.Context, clientID uuid.UUID, kind domain.ArtifactKind, versionID uuid.UUID, at time.Time) error {
	if !postgres.InTx(ctx) {
		return ErrNoTx
	}

	_, err := postgres.QuerierFromCtx(ctx, s.pool).Exec(ctx, upsertPointerSQL, clientID, string(kind), versionID, at)
	if err != nil {
		return postgres.MapError(err, "artifact_pointer", clientID)
	}
	return nil
}

// ---------------------------------------------------------------------------
// Read operations
// ---------------------------------------------------------------------------

// GetCurrent returns the current version joined with its generation log.
// Returns domain.ErrNotFound when the artifact was never set.
func (s *Store) GetCurrent(ctx context.Context, clientID uuid.UUID, kind domain.ArtifactKind) (*domain.CurrentArtifact, error) {
	row := postgres.QuerierFromCtx(ctx, s.pool).QueryRow(ctx, getCurrentSQL, clientID, string(kind))

	var (
		vr  versionRow
		lr  logRow
		log *domain.GenerationLog
	)
	dest := append(vr.dest(), lr.dest()...)
	if err := row.Scan(dest...); err != nil {
		return nil, postgres.MapError(err, "current "+string(kind)+" of client", clientID)
	}

	v, err := vr.toDomain()
	if err != nil {
		return nil, err
	}
	if log, err = lr.toDomain(); err != nil {
		return nil, err
	}

	return &domain.CurrentArtifact{
		Version:       *v,
		GenerationLog: log,
		LogDeleted:    v.GenerationLogID != nil && log == nil,
	}, nil
}

// History returns every version of (client, kind), oldest first.
// Returns an empty slice when the artifact was never set.
func (s *Store) History(ctx context.Context, clientID uuid.UUID, kind domain.ArtifactKind) ([]domain.ArtifactVersion, error) {
	rows, err := postgres.QuerierFromCtx(ctx, s.pool).Query(ctx, historySQL, clientID, string(kind))
	if err != nil {
		return nil, postgres.MapError(err, "artifact_versions of client", clientID)
	}
	defer rows.Close()

	result := []domain.ArtifactVersion{}
	for rows.Next() {
		v, err := scanVersion(rows)
		if err != nil {
			return nil, fmt.Errorf("scan artifact_version: %w", err)
		}
		result = append(result, *v)
	}
	if err := rows.Err(); err != nil {
		return nil, postgres.MapError(err, "artifact_versions of client", clientID)
	}

	return result, nil
}

// ---------------------------------------------------------------------------
// Row scanning helpers
// ---------------------------------------------------------------------------

type versionRow struct {
	id, clientID    uuid.UUID
	kind            string
	seq             int
	values          []byte
	previous        []byte
	source          string
	rationale       pgtype.Text
	generationLogID pgtype.UUID
	createdAt       time.Time
	createdBy       uuid.UUID
}

func (r *versionRow) dest() []any {
	return []any{&r.id, &r.clientID, &r.kind, &r.seq, &r.values, &r.previous,
		&r.source, &r.rationale, &r.generationLogID, &r.createdAt, &r.createdBy}
}

func (r *versionRow) toDomain() (*domain.ArtifactVersion, error) {
	v := &domain.ArtifactVersion{
		ID:        r.id,
		ClientID:  r.clientID,
		Kind:      domain.ArtifactKind(r.kind),
		Seq:       r.seq,
		Source:    domain.Source(r.source),
		CreatedAt: r.createdAt,
		CreatedBy: r.createdBy,
	}
	if r.rationale.Valid {
		v.Rationale = &r.rationale.String
	}
	if r.generationLogID.Valid {
		id := uuid.UUID(r.generationLogID.Bytes)
		v.GenerationLogID = &id
	}

	values, err := domain.DecodeArtifactValues(v.Kind, r.values)
	if err != nil {
		return nil, fmt.Errorf("decode artifact_version %s values: %w", v.ID, err)
	}
	v.Values = values

	if r.previous != nil {
		previous, err := domain.DecodeArtifactValues(v.Kind, r.previous)
		if err != nil {
			return nil, fmt.Errorf("decode artifact_version %s previous values: %w", v.ID, err)
		}
		v.PreviousValues = previous
	}

	return v, nil
}

func scanVersion(row pgx.Row) (*domain.ArtifactVersion, error) {
	var vr versionRow
	if err := row.Scan(vr.dest()...); err != nil {
		return nil, err
	}
	return vr.toDomain()
}

// logRow holds the LEFT JOINed generation log columns; all are NULL when the
// version has no log or the log was deleted.
type logRow struct {
	id, clientID, coachID pgtype.UUID
	genType               pgtype.Text
	result                []byte
	model                 pgtype.Text
	tokensUsed            pgtype.Int4
	ragUsed               pgtype.Bool
	createdAt             pgtype.Timestamptz
}

func (r *logRow) dest() []any {
	return []any{&r.id, &r.clientID, &r.coachID, &r.genType, &r.result,
		&r.model, &r.tokensUsed, &r.ragUsed, &r.createdAt}
}

func (r *logRow) toDomain() (*domain.GenerationLog, error) {
	if !r.id.Valid {
		return nil, nil
	}
	log := &domain.GenerationLog{
		ID:             uuid.UUID(r.id.Bytes),
		ClientID:       uuid.UUID(r.clientID.Bytes),
		CoachID:        uuid.UUID(r.coachID.Bytes),
		GenerationType: domain.GenerationType(r.genType.String),
		Model:          r.model.String,
		TokensUsed:     int(r.tokensUsed.Int32),
		RAGUsed:        r.ragUsed.Bool,
		CreatedAt:      r.createdAt.Time,
	}
	result, err := domain.DecodeGenerationResult(log.GenerationType, r.result)
	if err != nil {
		return nil, fmt.Errorf("decode generation_log %s result: %w", log.ID, err)
	}
	log.Result = result
	return log, nil
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

func lockKey(clientID uuid.UUID, kind domain.ArtifactKind) string {
	return clientID.String() + ":" + string(kind)
}

func uuidToPgUUID(id *uuid.UUID) pgtype.UUID {
	if id == nil {
		return pgtype.UUID{}
	}
	return pgtype.UUID{Bytes: *id, Valid: true}
}

// ptrStringToPgText converts a *string to pgtype.Text (nil -> NULL).
func ptrStringToPgText(s *string) pgtype.Text {
	if s == nil {
		return pgtype.Text{}
	}
	return pgtype.Text{String: *s, Valid: true}
}
