package client

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/heartmarshall/coaching-backend/internal/domain"
)

// SetStatus changes the client's status flag. No workflow is attached to it.
func (s *Service) SetStatus(ctx context.Context, input SetStatusInput) (*domain.Client, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	actor, current, err := s.authorize(ctx, input.ClientID)
	if err != nil {
		return nil, err
	}
	if current.Status == input.Status {
		return current, nil
	}

	c, err := s.clients.UpdateStatus(ctx, input.ClientID, input.Status)
	if err != nil {
		return nil, fmt.Errorf("update client status: %w", err)
	}

	s.log.InfoContext(ctx, "client status changed",
		slog.String("actor_id", actor.ID.String()),
		slog.String("client_id", c.ID.String()),
		slog.String("from", current.Status.String()),
		slog.String("to", c.Status.String()),
	)

	return c, nil
}
