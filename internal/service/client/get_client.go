package client

import (
	"context"

	"github.com/google/uuid"

	"github.com/heartmarshall/coaching-backend/internal/domain"
)

// GetClient returns a client owned by the caller.
func (s *Service) GetClient(ctx context.Context, clientID uuid.UUID) (*domain.Client, error) {
	_, c, err := s.authorize(ctx, clientID)
	if err != nil {
		return nil, err
	}
	return c, nil
}

// ListClients returns the caller's clients, newest first.
func (s *Service) ListClients(ctx context.Context, limit int) ([]domain.Client, error) {
	actor, ok := domain.ActorFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}
	if limit < 0 {
		return nil, domain.NewValidationError("limit", "must be >= 0")
	}
	return s.clients.ListByCoach(ctx, actor.ID, limit)
}
