package artifact

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/coaching-backend/internal/domain"
)

// Apply validates and commits one artifact change. The new version, the
// pointer move and the timeline event are written in a single transaction;
// any failure leaves nothing behind.
func (s *Service) Apply(ctx context.Context, input ApplyInput) (*domain.ArtifactVersion, error) {
	start := s.now()

	v, err := s.apply(ctx, input)
	if err != nil {
		s.metrics.ApplyRejected(input.Kind, input.Source, rejectReason(err))
		return nil, err
	}

	s.metrics.ApplyCommitted(v.Kind, v.Source, s.now().Sub(start))
	return v, nil
}

func (s *Service) apply(ctx context.Context, input ApplyInput) (*domain.ArtifactVersion, error) {
	actor, ok := domain.ActorFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	if err := input.Validate(); err != nil {
		return nil, err
	}

	values, err := domain.DecodeArtifactValues(input.Kind, input.Values)
	if err != nil {
		return nil, err
	}
	if err := values.Validate(); err != nil {
		return nil, err
	}

	if err := input.validateRationale(); err != nil {
		return nil, err
	}

	client, err := s.authorize(ctx, actor, input.ClientID)
	if err != nil {
		return nil, err
	}

	if err := s.checkProvenance(ctx, input); err != nil {
		return nil, err
	}

	if assignment, ok := values.(domain.ProgramAssignment); ok {
		if err := s.checkProgram(ctx, client, assignment.ProgramID); err != nil {
			return nil, err
		}
	}

	var (
		version *domain.ArtifactVersion
		event   *domain.CoachingEvent
	)
	err = s.tx.RunInTx(ctx, func(ctx context.Context) error {
		prev, err := s.store.LockCurrent(ctx, client.ID, input.Kind)
		if err != nil {
			return fmt.Errorf("lock current: %w", err)
		}

		version = s.nextVersion(prev, client, actor, input, values)
		if err := s.store.InsertVersion(ctx, version); err != nil {
			return fmt.Errorf("insert version: %w", err)
		}
		if err := s.store.SetCurrent(ctx, client.ID, input.Kind, version.ID, version.CreatedAt); err != nil {
			return fmt.Errorf("set current: %w", err)
		}

		eventType, err := domain.DeriveEventType(input.Kind, input.Source)
		if err != nil {
			return err
		}
		event, err = s.events.Create(ctx, versionEvent(client, version, eventType))
		if err != nil {
			return fmt.Errorf("append event: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "artifact applied",
		slog.String("actor_id", actor.ID.String()),
		slog.String("client_id", client.ID.String()),
		slog.String("kind", version.Kind.String()),
		slog.String("source", version.Source.String()),
		slog.String("version_id", version.ID.String()),
		slog.Int("seq", version.Seq),
	)
	s.metrics.EventAppended(event.EventType)
	s.publish(ctx, event)

	return version, nil
}

// checkProvenance resolves the referenced generation log and checks it may
// back the change.
func (s *Service) checkProvenance(ctx context.Context, input ApplyInput) error {
	if input.GenerationLogID == nil {
		return domain.CheckProvenance(input.Kind, input.Source, input.ClientID, nil)
	}
	if !input.Source.IsAI() {
		return domain.NewProvenanceError("source %s must not reference a generation log", input.Source)
	}

	gl, err := s.logs.GetByID(ctx, *input.GenerationLogID)
	if errors.Is(err, domain.ErrNotFound) {
		return domain.NewProvenanceError("generation log %s not found", *input.GenerationLogID)
	}
	if err != nil {
		return fmt.Errorf("get generation log: %w", err)
	}
	return domain.CheckProvenance(input.Kind, input.Source, input.ClientID, gl)
}

// checkProgram requires the assigned template to belong to the client's coach.
func (s *Service) checkProgram(ctx context.Context, client *domain.Client, programID uuid.UUID) error {
	_, err := s.programs.GetByID(ctx, client.CoachID, programID)
	if errors.Is(err, domain.ErrNotFound) {
		return domain.NewValidationError("programId", "program template not found")
	}
	if err != nil {
		return fmt.Errorf("get program: %w", err)
	}
	return nil
}

// nextVersion builds the version that follows prev. created_at is strictly
// increasing per (client, kind) even when the clock does not advance.
func (s *Service) nextVersion(
	prev *domain.ArtifactVersion,
	client *domain.Client,
	actor domain.Actor,
	input ApplyInput,
	values domain.ArtifactValues,
) *domain.ArtifactVersion {
	now := s.now().UTC().Truncate(time.Microsecond)

	v := &domain.ArtifactVersion{
		ID:              uuid.New(),
		ClientID:        client.ID,
		Kind:            input.Kind,
		Seq:             1,
		Values:          values,
		Source:          input.Source,
		Rationale:       input.normalizedRationale(),
		GenerationLogID: input.GenerationLogID,
		CreatedAt:       now,
		CreatedBy:       actor.ID,
	}
	if prev != nil {
		v.Seq = prev.Seq + 1
		v.PreviousValues = prev.Values
		if floor := prev.CreatedAt.Add(time.Microsecond); v.CreatedAt.Before(floor) {
			v.CreatedAt = floor
		}
	}
	return v
}

func versionEvent(client *domain.Client, v *domain.ArtifactVersion, eventType domain.EventType) *domain.CoachingEvent {
	entityType := domain.RelatedEntityArtifactVersion
	versionID := v.ID

	data := map[string]any{
		"version_id":      v.ID.String(),
		"seq":             v.Seq,
		"values":          v.Values,
		"previous_values": v.PreviousValues,
	}
	if v.Rationale != nil {
		data["rationale"] = *v.Rationale
	}

	return &domain.CoachingEvent{
		ClientID:          client.ID,
		CoachID:           client.CoachID,
		EventType:         eventType,
		Area:              domain.AreaForKind(v.Kind),
		Title:             domain.EventTitle(v.Kind, v.Source),
		Description:       v.Values.Summary(),
		Source:            v.Source,
		AIGenerationLogID: v.GenerationLogID,
		RelatedEntityType: &entityType,
		RelatedEntityID:   &versionID,
		EventData:         data,
		CreatedAt:         v.CreatedAt,
	}
}

// publish hands the committed event to the notifier. Failures are logged.
func (s *Service) publish(ctx context.Context, event *domain.CoachingEvent) {
	if s.notifier == nil || event == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), publishTimeout)
	defer cancel()

	if err := s.notifier.Publish(ctx, event); err != nil {
		s.metrics.NotifyFailed()
		s.log.WarnContext(ctx, "publish artifact event failed",
			slog.String("event_id", event.ID.String()),
			slog.String("client_id", event.ClientID.String()),
			slog.String("error", err.Error()),
		)
	}
}

func rejectReason(err error) string {
	switch {
	case errors.Is(err, domain.ErrValidation):
		return "validation"
	case errors.Is(err, domain.ErrInvalidProvenance):
		return "provenance"
	case errors.Is(err, domain.ErrUnauthorized):
		return "unauthorized"
	case errors.Is(err, domain.ErrForbidden):
		return "forbidden"
	case errors.Is(err, domain.ErrNotFound):
		return "not_found"
	case errors.Is(err, domain.ErrUnavailable):
		return "unavailable"
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return "canceled"
	}
	return "internal"
}
