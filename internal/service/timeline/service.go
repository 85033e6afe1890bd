// Package timeline manages the append-only coaching event timeline.
// Artifact change events are written by the artifact engine, never here.
package timeline

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/heartmarshall/coaching-backend/internal/domain"
)

type clientRepo interface {
	GetByID(ctx context.Context, clientID uuid.UUID) (*domain.Client, error)
}

type eventRepo interface {
	Create(ctx context.Context, e *domain.CoachingEvent) (*domain.CoachingEvent, error)
	GetByID(ctx context.Context, eventID uuid.UUID) (*domain.CoachingEvent, error)
	List(ctx context.Context, clientID uuid.UUID, filter domain.EventFilter) ([]domain.CoachingEvent, error)
	Delete(ctx context.Context, eventID uuid.UUID) error
}

type logRepo interface {
	GetByID(ctx context.Context, logID uuid.UUID) (*domain.GenerationLog, error)
}

type recorder interface {
	EventAppended(eventType domain.EventType)
}

// Service provides timeline operations.
type Service struct {
	log     *slog.Logger
	clients clientRepo
	events  eventRepo
	logs    logRepo
	metrics recorder
}

// NewService creates a new Timeline service.
func NewService(log *slog.Logger, clients clientRepo, events eventRepo, logs logRepo, metrics recorder) *Service {
	return &Service{
		log:     log.With("service", "timeline"),
		clients: clients,
		events:  events,
		logs:    logs,
		metrics: metrics,
	}
}

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
