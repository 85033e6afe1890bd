package program

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/heartmarshall/coaching-backend/internal/domain"
)

type programRepo interface {
	Create(ctx context.Context, p *domain.ProgramTemplate) (*domain.ProgramTemplate, error)
	List(ctx context.Context, coachID uuid.UUID) ([]domain.ProgramTemplate, error)
}

// Service manages a coach's catalog of program templates.
type Service struct {
	programs programRepo
	log      *slog.Logger
}

// NewService creates a new Program service.
func NewService(log *slog.Logger, programs programRepo) *Service {
	return &Service{
		programs: programs,
		log:      log.With("service", "program"),
	}
}

// CreateProgramInput holds the parameters for creating a program template.
type CreateProgramInput struct {
	Name        string
	Description *string
	Weeks       int
}

// Validate checks all fields and collects all errors.
func (i CreateProgramInput) Validate() error {
	var errs []domain.FieldError

	name := strings.TrimSpace(i.Name)
	if name == "" {
		errs = append(errs, domain.FieldError{Field: "name", Message: "required"})
	}
	if len(name) > 200 {
		errs = append(errs, domain.FieldError{Field: "name", Message: "max 200 characters"})
	}
	if i.Description != nil && len(*i.Description) > 2000 {
		errs = append(errs, domain.FieldError{Field: "description", Message: "max 2000 characters"})
	}
	if i.Weeks < 1 || i.Weeks > 104 {
		errs = append(errs, domain.FieldError{Field: "weeks", Message: "must be between 1 and 104"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// CreateProgram adds a program template to the caller's catalog.
func (s *Service) CreateProgram(ctx context.Context, input CreateProgramInput) (*domain.ProgramTemplate, error) {
	actor, ok := domain.ActorFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	if err := input.Validate(); err != nil {
		return nil, err
	}

	var description *string
	if input.Description != nil {
		if d := strings.TrimSpace(*input.Description); d != "" {
			description = &d
		}
	}

	p, err := s.programs.Create(ctx, &domain.ProgramTemplate{
		CoachID:     actor.ID,
		Name:        strings.TrimSpace(input.Name),
		Description: description,
		Weeks:       input.Weeks,
	})
	if err != nil {
		return nil, fmt.Errorf("create program: %w", err)
	}

	s.log.InfoContext(ctx, "program template created",
		slog.String("coach_id", actor.ID.String()),
		slog.String("program_id", p.ID.String()),
	)

	return p, nil
}

// ListPrograms returns the caller's program templates.
func (s *Service) ListPrograms(ctx context.Context) ([]domain.ProgramTemplate, error) {
	actor, ok := domain.ActorFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}
	return s.programs.List(ctx, actor.ID)
}
