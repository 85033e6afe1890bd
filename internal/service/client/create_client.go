package client

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/heartmarshall/coaching-backend/internal/domain"
)

// CreateClient registers a client owned by the calling coach.
func (s *Service) CreateClient(ctx context.Context, input CreateClientInput) (*domain.Client, error) {
	actor, ok := domain.ActorFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	if err := input.Validate(); err != nil {
		return nil, err
	}

	status := input.Status
	if status == "" {
		status = domain.ClientStatusActive
	}

	c, err := s.clients.Create(ctx, &domain.Client{
		CoachID: actor.ID,
		Name:    strings.TrimSpace(input.Name),
		Status:  status,
	})
	if err != nil {
		return nil, fmt.Errorf("create client: %w", err)
	}

	s.log.InfoContext(ctx, "client created",
		slog.String("coach_id", actor.ID.String()),
		slog.String("client_id", c.ID.String()),
	)

	return c, nil
}
