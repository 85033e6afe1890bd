// Package program implements the ProgramTemplate repository using PostgreSQL.
package program

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/heartmarshall/coaching-backend/internal/adapter/postgres"
	"github.com/heartmarshall/coaching-backend/internal/domain"
)

// Repo provides program template persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new program template repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

const programColumns = `id, coach_id, name, description, weeks, created_at`

const createProgramSQL = `
INSERT INTO program_templates (id, coach_id, name, description, weeks, created_at)
VALUES ($1, $2, $3, $4, $5, $6)
RETURNING ` + programColumns

const getProgramSQL = `SELECT ` + programColumns + ` FROM program_templates WHERE id = $1 AND coach_id = $2`

const listProgramsSQL = `
SELECT ` + programColumns + `
FROM program_templates
WHERE coach_id = $1
ORDER BY name, id`

// Create inserts a new program template.
func (r *Repo) Create(ctx context.Context, p *domain.ProgramTemplate) (*domain.ProgramTemplate, error) {
	id := p.ID
	if id == uuid.Nil {
		id = uuid.New()
	}
	createdAt := p.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	row := postgres.QuerierFromCtx(ctx, r.pool).QueryRow(ctx, createProgramSQL,
		id, p.CoachID, p.Name, ptrStringToPgText(p.Description), p.Weeks, createdAt,
	)

	result, err := scanProgram(row)
	if err != nil {
		return nil, postgres.MapError(err, "program_template", id)
	}
	return result, nil
}

// GetByID returns a program template owned by coachID.
// Returns domain.ErrNotFound if it does not exist or belongs to another coach.
func (r *Repo) GetByID(ctx context.Context, coachID, programID uuid.UUID) (*domain.ProgramTemplate, error) {
	row := postgres.QuerierFromCtx(ctx, r.pool).QueryRow(ctx, getProgramSQL, programID, coachID)

	result, err := scanProgram(row)
	if err != nil {
		return nil, postgres.MapError(err, "program_template", programID)
	}
	return result, nil
}

// List returns all program templates of a coach ordered by name.
func (r *Repo) List(ctx context.Context, coachID uuid.UUID) ([]domain.ProgramTemplate, error) {
	rows, err := postgres.QuerierFromCtx(ctx, r.pool).Query(ctx, listProgramsSQL, coachID)
	if err != nil {
		return nil, postgres.MapError(err, "program_templates of coach", coachID)
	}
	defer rows.Close()

	result := []domain.ProgramTemplate{}
	for rows.Next() {
		p, err := scanProgram(rows)
		if err != nil {
			return nil, fmt.Errorf("scan program_template: %w", err)
		}
		result = append(result, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, postgres.MapError(err, "program_templates of coach", coachID)
	}

	return result, nil
}

func scanProgram(row pgx.Row) (*domain.ProgramTemplate, error) {
	var (
		p           domain.ProgramTemplate
		description pgtype.Text
	)
	if err := row.Scan(&p.ID, &p.CoachID, &p.Name, &description, &p.Weeks, &p.CreatedAt); err != nil {
		return nil, err
	}
	if description.Valid {
		p.Description = &description.String
	}
	return &p, nil
}

// ptrStringToPgText converts a *string to pgtype.Text (nil -> NULL).
func ptrStringToPgText(s *string) pgtype.Text {
	if s == nil {
		return pgtype.Text{}
	}
	return pgtype.Text{String: *s, Valid: true}
}
