package timeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/heartmarshall/coaching-backend/internal/domain"
)

// AppendNote appends a direct timeline entry for a client.
func (s *Service) AppendNote(ctx context.Context, input AppendEventInput) (*domain.CoachingEvent, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	actor, c, err := s.authorize(ctx, input.ClientID)
	if err != nil {
		return nil, err
	}

	if err := s.checkProvenance(ctx, input); err != nil {
		return nil, err
	}

	e, err := s.events.Create(ctx, &domain.CoachingEvent{
		ClientID:          c.ID,
		CoachID:           c.CoachID,
		EventType:         input.EventType,
		Area:              input.Area,
		Title:             strings.TrimSpace(input.Title),
		Description:       input.Description,
		Source:            input.Source,
		AIGenerationLogID: input.AIGenerationLogID,
		RelatedEntityType: input.RelatedEntityType,
		RelatedEntityID:   input.RelatedEntityID,
		EventData:         input.EventData,
	})
	if err != nil {
		return nil, fmt.Errorf("append event: %w", err)
	}

	s.metrics.EventAppended(e.EventType)
	s.log.InfoContext(ctx, "timeline event appended",
		slog.String("actor_id", actor.ID.String()),
		slog.String("client_id", c.ID.String()),
		slog.String("event_id", e.ID.String()),
		slog.String("event_type", e.EventType.String()),
	)
	return e, nil
}

// checkProvenance requires AI-sourced entries to reference a log of the same
// client. Other sources may still link a log for context.
func (s *Service) checkProvenance(ctx context.Context, input AppendEventInput) error {
	if input.AIGenerationLogID == nil {
		if input.Source.IsAI() {
			return domain.NewProvenanceError("source %s requires a generation log", input.Source)
		}
		return nil
	}

	gl, err := s.logs.GetByID(ctx, *input.AIGenerationLogID)
	if errors.Is(err, domain.ErrNotFound) {
		return domain.NewProvenanceError("generation log %s not found", *input.AIGenerationLogID)
	}
	if err != nil {
		return fmt.Errorf("get generation log: %w", err)
	}
	if gl.ClientID != input.ClientID {
		return domain.NewProvenanceError("generation log %s belongs to another client", gl.ID)
	}
	return nil
}
