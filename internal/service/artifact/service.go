// Package artifact is the application engine: the only writer of artifact
// versions and current-version pointers.
package artifact

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/heartmarshall/coaching-backend/internal/domain"
	"github.com/heartmarshall/coaching-backend/internal/service/artifact/internal/pgstore"
)

// ---------------------------------------------------------------------------
// Consumer-defined interfaces (private)
// ---------------------------------------------------------------------------

type versionStore interface {
	LockCurrent(ctx context.Context, clientID uuid.UUID, kind domain.ArtifactKind) (*domain.ArtifactVersion, error)
	InsertVersion(ctx context.Context, v *domain.ArtifactVersion) error
	SetCurrent(ctx context.Context, clientID uuid.UUID, kind domain.ArtifactKind, versionID uuid.UUID, at time.Time) error
	GetCurrent(ctx context.Context, clientID uuid.UUID, kind domain.ArtifactKind) (*domain.CurrentArtifact, error)
	History(ctx context.Context, clientID uuid.UUID, kind domain.ArtifactKind) ([]domain.ArtifactVersion, error)
}

type clientRepo interface {
	GetByID(ctx context.Context, clientID uuid.UUID) (*domain.Client, error)
}

type programRepo interface {
	GetByID(ctx context.Context, coachID, programID uuid.UUID) (*domain.ProgramTemplate, error)
}

type logRepo interface {
	GetByID(ctx context.Context, logID uuid.UUID) (*domain.GenerationLog, error)
}

type eventRepo interface {
	Create(ctx context.Context, e *domain.CoachingEvent) (*domain.CoachingEvent, error)
}

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// Notifier receives committed artifact events.
type Notifier interface {
	Publish(ctx context.Context, event *domain.CoachingEvent) error
}

type recorder interface {
	ApplyCommitted(kind domain.ArtifactKind, source domain.Source, d time.Duration)
	ApplyRejected(kind domain.ArtifactKind, source domain.Source, reason string)
	EventAppended(eventType domain.EventType)
	NotifyFailed()
}

// ---------------------------------------------------------------------------
// Service
// ---------------------------------------------------------------------------

const publishTimeout = 2 * time.Second

// Service applies artifact changes and answers current-state and history queries.
type Service struct {
	log      *slog.Logger
	store    versionStore
	tx       txManager
	clients  clientRepo
	programs programRepo
	logs     logRepo
	events   eventRepo
	notifier Notifier
	metrics  recorder
	now      func() time.Time
}

// NewService creates the application engine over pool. notifier may be nil.
func NewService(
	log *slog.Logger,
	pool *pgxpool.Pool,
	tx txManager,
	clients clientRepo,
	programs programRepo,
	logs logRepo,
	events eventRepo,
	notifier Notifier,
	metrics recorder,
) *Service {
	return newService(log, pgstore.New(pool), tx, clients, programs, logs, events, notifier, metrics)
}

func newService(
	log *slog.Logger,
	store versionStore,
	tx txManager,
	clients clientRepo,
	programs programRepo,
	logs logRepo,
	events eventRepo,
	notifier Notifier,
	metrics recorder,
) *Service {
	return &Service{
		log:      log.With("service", "artifact"),
		store:    store,
		tx:       tx,
		clients:  clients,
		programs: programs,
		logs:     logs,
		events:   events,
		notifier: notifier,
		metrics:  metrics,
		now:      time.Now,
	}
}

// authorize loads the client and checks the actor may act on it.
func (s *Service) authorize(ctx context.Context, actor domain.Actor, clientID uuid.UUID) (*domain.Client, error) {
	c, err := s.clients.GetByID(ctx, clientID)
	if err != nil {
		return nil, err
	}
	if !c.OwnedBy(actor) {
		return nil, domain.ErrForbidden
	}
	return c, nil
}
