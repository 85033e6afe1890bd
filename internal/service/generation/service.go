// Package generation records AI generator output as immutable generation logs.
// Nothing in this package changes live client state.
package generation

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/heartmarshall/coaching-backend/internal/domain"
)

type clientRepo interface {
	GetByID(ctx context.Context, clientID uuid.UUID) (*domain.Client, error)
}

type logRepo interface {
	Create(ctx context.Context, log *domain.GenerationLog) (*domain.GenerationLog, error)
	GetByID(ctx context.Context, logID uuid.UUID) (*domain.GenerationLog, error)
	List(ctx context.Context, clientID uuid.UUID, filter domain.GenerationLogFilter) ([]domain.GenerationLog, error)
	Delete(ctx context.Context, logID uuid.UUID) error
}

// Generator is the generative model collaborator.
type Generator interface {
	Generate(ctx context.Context, genType domain.GenerationType, clientContext string) (*domain.GeneratorOutput, error)
}

type recorder interface {
	GenerationAppended(genType domain.GenerationType, tokens int)
	GeneratorFailed(genType domain.GenerationType)
}

// Service provides generation log operations.
type Service struct {
	clients   clientRepo
	logs      logRepo
	generator Generator
	metrics   recorder
	log       *slog.Logger
}

// NewService creates a new Generation service. generator may be nil, in which
// case Generate fails with domain.ErrGeneratorFailed.
func NewService(
	log *slog.Logger,
	clients clientRepo,
	logs logRepo,
	generator Generator,
	metrics recorder,
) *Service {
	return &Service{
		clients:   clients,
		logs:      logs,
		generator: generator,
		metrics:   metrics,
		log:       log.With("service", "generation"),
	}
}

// authorizeClient loads the client and checks the actor may act on it.
func (s *Service) authorizeClient(ctx context.Context, clientID uuid.UUID) (domain.Actor, *domain.Client, error) {
	actor, ok := domain.ActorFromCtx(ctx)
	if !ok {
		return domain.Actor{}, nil, domain.ErrUnauthorized
	}

	c, err := s.clients.GetByID(ctx, clientID)
	if err != nil {
		return actor, nil, err
	}
	if !c.OwnedBy(actor) {
		return actor, nil, domain.ErrForbidden
	}
	return actor, c, nil
}

// authorizeLog loads the log and checks the actor owns it.
func (s *Service) authorizeLog(ctx context.Context, logID uuid.UUID) (domain.Actor, *domain.GenerationLog, error) {
	actor, ok := domain.ActorFromCtx(ctx)
	if !ok {
		return domain.Actor{}, nil, domain.ErrUnauthorized
	}

	gl, err := s.logs.GetByID(ctx, logID)
	if err != nil {
		return actor, nil, err
	}
	if !actor.Role.IsAdmin() && gl.CoachID != actor.ID {
		return actor, nil, domain.ErrForbidden
	}
	return actor, gl, nil
}
