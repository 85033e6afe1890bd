package client

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/heartmarshall/coaching-backend/internal/domain"
)

type clientRepo interface {
	Create(ctx context.Context, c *domain.Client) (*domain.Client, error)
	GetByID(ctx context.Context, clientID uuid.UUID) (*domain.Client, error)
	ListByCoach(ctx context.Context, coachID uuid.UUID, limit int) ([]domain.Client, error)
	UpdateStatus(ctx context.Context, clientID uuid.UUID, status domain.ClientStatus) (*domain.Client, error)
}

// Service manages the client registry of a coach.
type Service struct {
	clients clientRepo
	log     *slog.Logger
}

// NewService creates a new Client service.
func NewService(log *slog.Logger, clients clientRepo) *Service {
	return &Service{
		clients: clients,
		log:     log.With("service", "client"),
	}
}

// authorize loads the client and checks that the actor may act on it.
func (s *Service) authorize(ctx context.Context, clientID uuid.UUID) (domain.Actor, *domain.Client, error) {
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
