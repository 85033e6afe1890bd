// Package client implements the Client repository using PostgreSQL.
package client

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/heartmarshall/coaching-backend/internal/adapter/postgres"
	"github.com/heartmarshall/coaching-backend/internal/domain"
)

// Repo provides client persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new client repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

const clientColumns = `id, coach_id, name, status, created_at`

const createClientSQL = `
INSERT INTO clients (id, coach_id, name, status, created_at)
VALUES ($1, $2, $3, $4, $5)
RETURNING ` + clientColumns

const getClientByIDSQL = `SELECT ` + clientColumns + ` FROM clients WHERE id = $1`

const listClientsByCoachSQL = `
SELECT ` + clientColumns + `
FROM clients
WHERE coach_id = $1
ORDER BY created_at DESC, id DESC
LIMIT $2`

const updateClientStatusSQL = `
UPDATE clients SET status = $2
WHERE id = $1
RETURNING ` + clientColumns

// Create inserts a new client. ID and CreatedAt are assigned when zero.
func (r *Repo) Create(ctx context.Context, c *domain.Client) (*domain.Client, error) {
	id := c.ID
	if id == uuid.Nil {
		id = uuid.New()
	}
	createdAt := c.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	row := postgres.QuerierFromCtx(ctx, r.pool).QueryRow(ctx, createClientSQL,
		id, c.CoachID, c.Name, string(c.Status), createdAt,
	)

	result, err := scanClient(row)
	if err != nil {
		return nil, postgres.MapError(err, "client", id)
	}
	return result, nil
}

// GetByID returns a client regardless of owner; ownership is checked by the caller.
// Returns domain.ErrNotFound if the client does not exist.
func (r *Repo) GetByID(ctx context.Context, clientID uuid.UUID) (*domain.Client, error) {
	row := postgres.QuerierFromCtx(ctx, r.pool).QueryRow(ctx, getClientByIDSQL, clientID)

	result, err := scanClient(row)
	if err != nil {
		return nil, postgres.MapError(err, "client", clientID)
	}
	return result, nil
}

// ListByCoach returns the coach's clients, newest first.
// Returns an empty slice (not nil) when the coach has no clients.
func (r *Repo) ListByCoach(ctx context.Context, coachID uuid.UUID, limit int) ([]domain.Client, error) {
	rows, err := postgres.QuerierFromCtx(ctx, r.pool).Query(ctx, listClientsByCoachSQL, coachID, limit)
	if err != nil {
		return nil, postgres.MapError(err, "clients of coach", coachID)
	}
	defer rows.Close()

	result := []domain.Client{}
	for rows.Next() {
		c, err := scanClient(rows)
		if err != nil {
			return nil, fmt.Errorf("scan client: %w", err)
		}
		result = append(result, *c)
	}
	if err := rows.Err(); err != nil {
		return nil, postgres.MapError(err, "clients of coach", coachID)
	}

	return result, nil
}

// UpdateStatus sets the client's status flag.
func (r *Repo) UpdateStatus(ctx context.Context, clientID uuid.UUID, status domain.ClientStatus) (*domain.Client, error) {
	row := postgres.QuerierFromCtx(ctx, r.pool).QueryRow(ctx, updateClientStatusSQL, clientID, string(status))

	result, err := scanClient(row)
	if err != nil {
		return nil, postgres.MapError(err, "client", clientID)
	}
	return result, nil
}

func scanClient(row pgx.Row) (*domain.Client, error) {
	var (
		c      domain.Client
		status string
	)
	if err := row.Scan(&c.ID, &c.CoachID, &c.Name, &status, &c.CreatedAt); err != nil {
		return nil, err
	}
	c.Status = domain.ClientStatus(status)
	return &c, nil
}
