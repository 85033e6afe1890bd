package timeline

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/heartmarshall/coaching-backend/internal/domain"
)

// List returns a client's timeline, newest first.
func (s *Service) List(ctx context.Context, input ListInput) ([]domain.CoachingEvent, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}
	if _, _, err := s.authorize(ctx, input.ClientID); err != nil {
		return nil, err
	}

	return s.events.List(ctx, input.ClientID, domain.EventFilter{
		Area:  input.Area,
		Limit: input.Limit,
	})
}

// Delete hard-deletes a timeline event. Only the owning coach may delete.
func (s *Service) Delete(ctx context.Context, eventID uuid.UUID) error {
	actor, ok := domain.ActorFromCtx(ctx)
	if !ok {
		return domain.ErrUnauthorized
	}

	e, err := s.events.GetByID(ctx, eventID)
	if err != nil {
		return err
	}
	if !actor.Role.IsAdmin() && e.CoachID != actor.ID {
		return domain.ErrForbidden
	}

	if err := s.events.Delete(ctx, e.ID); err != nil {
		return fmt.Errorf("delete event: %w", err)
	}

	s.log.InfoContext(ctx, "timeline event deleted",
		slog.String("actor_id", actor.ID.String()),
		slog.String("event_id", e.ID.String()),
		slog.String("event_type", e.EventType.String()),
	)
	return nil
}
