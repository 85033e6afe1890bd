// Package event implements the append-only coaching timeline repository using
// PostgreSQL.
package event

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/heartmarshall/coaching-backend/internal/adapter/postgres"
	"github.com/heartmarshall/coaching-backend/internal/domain"
)

// Repo provides coaching event persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new coaching event repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

var eventColumns = []string{
	"id", "client_id", "coach_id", "event_type", "area", "title", "description", "source",
	"ai_generation_log_id", "related_entity_type", "related_entity_id", "event_data", "created_at",
}

const insertEventSQL = `
INSERT INTO coaching_events (
    id, client_id, coach_id, event_type, area, title, description, source,
    ai_generation_log_id, related_entity_type, related_entity_id, event_data, created_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`

const getEventByIDSQL = `
SELECT id, client_id, coach_id, event_type, area, title, description, source,
       ai_generation_log_id, related_entity_type, related_entity_id, event_data, created_at
FROM coaching_events
WHERE id = $1`

const deleteEventSQL = `DELETE FROM coaching_events WHERE id = $1`

// Create appends an event. ID and CreatedAt are assigned when zero.
func (r *Repo) Create(ctx context.Context, e *domain.CoachingEvent) (*domain.CoachingEvent, error) {
	out := *e
	if out.ID == uuid.Nil {
		out.ID = uuid.New()
	}
	if out.CreatedAt.IsZero() {
		out.CreatedAt = time.Now().UTC().Truncate(time.Microsecond)
	}
	if out.EventData == nil {
		out.EventData = map[string]any{}
	}

	data, err := json.Marshal(out.EventData)
	if err != nil {
		return nil, fmt.Errorf("marshal event data: %w", err)
	}

	_, err = postgres.QuerierFromCtx(ctx, r.pool).Exec(ctx, insertEventSQL,
		out.ID, out.ClientID, out.CoachID, string(out.EventType), string(out.Area),
		out.Title, out.Description, string(out.Source),
		uuidToPgUUID(out.AIGenerationLogID), ptrStringToPgText(out.RelatedEntityType), uuidToPgUUID(out.RelatedEntityID),
		data, out.CreatedAt,
	)
	if err != nil {
		return nil, postgres.MapError(err, "coaching_event", out.ID)
	}

	return &out, nil
}

// GetByID returns an event. Returns domain.ErrNotFound if it does not exist.
func (r *Repo) GetByID(ctx context.Context, eventID uuid.UUID) (*domain.CoachingEvent, error) {
	row := postgres.QuerierFromCtx(ctx, r.pool).QueryRow(ctx, getEventByIDSQL, eventID)

	e, err := scanEvent(row)
	if err != nil {
		return nil, postgres.MapError(err, "coaching_event", eventID)
	}
	return e, nil
}

// List returns a client's timeline, newest first.
func (r *Repo) List(ctx context.Context, clientID uuid.UUID, filter domain.EventFilter) ([]domain.CoachingEvent, error) {
	query := postgres.Builder().
		Select(eventColumns...).
		From("coaching_events").
		Where(sq.Eq{"client_id": clientID}).
		OrderBy("created_at DESC", "id DESC").
		Limit(uint64(postgres.ClampLimit(filter.Limit)))

	if filter.Area != nil {
		query = query.Where(sq.Eq{"area": string(*filter.Area)})
	}

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list coaching_events query: %w", err)
	}

	rows, err := postgres.QuerierFromCtx(ctx, r.pool).Query(ctx, sql, args...)
	if err != nil {
		return nil, postgres.MapError(err, "coaching_events of client", clientID)
	}
	defer rows.Close()

	result := []domain.CoachingEvent{}
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, fmt.Errorf("scan coaching_event: %w", err)
		}
		result = append(result, *e)
	}
	if err := rows.Err(); err != nil {
		return nil, postgres.MapError(err, "coaching_events of client", clientID)
	}

	return result, nil
}

// Delete hard-deletes one event. Returns domain.ErrNotFound if it does not exist.
func (r *Repo) Delete(ctx context.Context, eventID uuid.UUID) error {
	tag, err := postgres.QuerierFromCtx(ctx, r.pool).Exec(ctx, deleteEventSQL, eventID)
	if err != nil {
		return postgres.MapError(err, "coaching_event", eventID)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("coaching_event %s: %w", eventID, domain.ErrNotFound)
	}
	return nil
}

// ---------------------------------------------------------------------------
// Row scanning helpers
// ---------------------------------------------------------------------------

func scanEvent(row pgx.Row) (*domain.CoachingEvent, error) {
	var (
		e             domain.CoachingEvent
		eventType     string
		area          string
		source        string
		logID         pgtype.UUID
		relatedType   pgtype.Text
		relatedID     pgtype.UUID
		eventDataJSON []byte
	)
	if err := row.Scan(&e.ID, &e.ClientID, &e.CoachID, &eventType, &area, &e.Title, &e.Description, &source,
		&logID, &relatedType, &relatedID, &eventDataJSON, &e.CreatedAt); err != nil {
		return nil, err
	}

	e.EventType = domain.EventType(eventType)
	e.Area = domain.Area(area)
	e.Source = domain.Source(source)
	e.AIGenerationLogID = pgUUIDToPtr(logID)
	e.RelatedEntityID = pgUUIDToPtr(relatedID)
	if relatedType.Valid {
		e.RelatedEntityType = &relatedType.String
	}

	e.EventData = map[string]any{}
	if len(eventDataJSON) > 0 {
		if err := json.Unmarshal(eventDataJSON, &e.EventData); err != nil {
			return nil, fmt.Errorf("unmarshal event_data: %w", err)
		}
	}

	return &e, nil
}

// ---------------------------------------------------------------------------
// pgtype helpers
// ---------------------------------------------------------------------------

func uuidToPgUUID(id *uuid.UUID) pgtype.UUID {
	if id == nil {
		return pgtype.UUID{}
	}
	return pgtype.UUID{Bytes: *id, Valid: true}
}

func pgUUIDToPtr(id pgtype.UUID) *uuid.UUID {
	if !id.Valid {
		return nil
	}
	u := uuid.UUID(id.Bytes)
	return &u
}

// ptrStringToPgText converts a *string to pgtype.Text (nil -> NULL).
func ptrStringToPgText(s *string) pgtype.Text {
	if s == nil {
		return pgtype.Text{}
	}
	return pgtype.Text{String: *s, Valid: true}
}
