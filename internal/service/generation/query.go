package generation

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/heartmarshall/coaching-backend/internal/domain"
)

// Get returns a generation log owned by the caller.
func (s *Service) Get(ctx context.Context, logID uuid.UUID) (*domain.GenerationLog, error) {
	_, gl, err := s.authorizeLog(ctx, logID)
	if err != nil {
		return nil, err
	}
	return gl, nil
}

// List returns a client's generation logs, newest first.
func (s *Service) List(ctx context.Context, input ListInput) ([]domain.GenerationLog, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}
	if _, _, err := s.authorizeClient(ctx, input.ClientID); err != nil {
		return nil, err
	}

	return s.logs.List(ctx, input.ClientID, domain.GenerationLogFilter{
		Type:  input.Type,
		Limit: input.Limit,
	})
}

// Delete hard-deletes a generation log. Artifact versions applied from it keep
// their dangling reference.
func (s *Service) Delete(ctx context.Context, logID uuid.UUID) error {
	actor, gl, err := s.authorizeLog(ctx, logID)
	if err != nil {
		return err
	}

	if err := s.logs.Delete(ctx, gl.ID); err != nil {
		return fmt.Errorf("delete generation log: %w", err)
	}

	s.log.InfoContext(ctx, "generation log deleted",
		slog.String("actor_id", actor.ID.String()),
		slog.String("log_id", gl.ID.String()),
		slog.String("client_id", gl.ClientID.String()),
	)
	return nil
}
