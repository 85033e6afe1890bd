package artifact

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/coaching-backend/internal/domain"
)

// ===========================================================================
// In-memory version store with transaction rollback
// ===========================================================================

type pointerKey struct {
	clientID uuid.UUID
	kind     domain.ArtifactKind
}

type memStore struct {
	mu       sync.Mutex
	versions map[uuid.UUID]domain.ArtifactVersion
	pointers map[pointerKey]uuid.UUID
	logs     map[uuid.UUID]*domain.GenerationLog

	InsertVersionErr error
}

func newMemStore() *memStore {
	return &memStore{
		versions: make(map[uuid.UUID]domain.ArtifactVersion),
		pointers: make(map[pointerKey]uuid.UUID),
		logs:     make(map[uuid.UUID]*domain.GenerationLog),
	}
}

func (m *memStore) snapshot() (map[uuid.UUID]domain.ArtifactVersion, map[pointerKey]uuid.UUID) {
	m.mu.Lock()
	defer m.mu.Unlock()
	vs := make(map[uuid.UUID]domain.ArtifactVersion, len(m.versions))
	for k, v := range m.versions {
		vs[k] = v
	}
	ps := make(map[pointerKey]uuid.UUID, len(m.pointers))
	for k, v := range m.pointers {
		ps[k] = v
	}
	return vs, ps
}

func (m *memStore) restore(vs map[uuid.UUID]domain.ArtifactVersion, ps map[pointerKey]uuid.UUID) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.versions, m.pointers = vs, ps
}

func (m *memStore) LockCurrent(ctx context.Context, clientID uuid.UUID, kind domain.ArtifactKind) (*domain.ArtifactVersion, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	id, ok := m.pointers[pointerKey{clientID, kind}]
	if !ok {
		return nil, nil
	}
	v := m.versions[id]
	return &v, nil
}

func (m *memStore) InsertVersion(ctx context.Context, v *domain.ArtifactVersion) error {
	if m.InsertVersionErr != nil {
		return m.InsertVersionErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.versions {
		if existing.ClientID == v.ClientID && existing.Kind == v.Kind && existing.Seq == v.Seq {
			return domain.ErrAlreadyExists
		}
	}
	m.versions[v.ID] = *v
	return nil
}

func (m *memStore) SetCurrent(ctx context.Context, clientID uuid.UUID, kind domain.ArtifactKind, versionID uuid.UUID, at time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pointers[pointerKey{clientID, kind}] = versionID
	return nil
}

func (m *memStore) GetCurrent(ctx context.Context, clientID uuid.UUID, kind domain.ArtifactKind) (*domain.CurrentArtifact, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	id, ok := m.pointers[pointerKey{clientID, kind}]
	if !ok {
		return nil, domain.ErrNotFound
	}
	out := &domain.CurrentArtifact{Version: m.versions[id]}
	if lid := out.Version.GenerationLogID; lid != nil {
		out.GenerationLog = m.logs[*lid]
		out.LogDeleted = out.GenerationLog == nil
	}
	return out, nil
}

func (m *memStore) History(ctx context.Context, clientID uuid.UUID, kind domain.ArtifactKind) ([]domain.ArtifactVersion, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []domain.ArtifactVersion
	for _, v := range m.versions {
		if v.ClientID == clientID && v.Kind == kind {
			out = append(out, v)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Seq < out[j].Seq })
	return out, nil
}

func (m *memStore) versionCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.versions)
}

// ===========================================================================
// Manual mocks (moq-style with func fields)
// ===========================================================================

// mockTx serializes transactions and rolls the store back when fn fails.
type mockTx struct {
	mu    sync.Mutex
	store *memStore
	calls int
}

func (m *mockTx) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++

	vs, ps := m.store.snapshot()
	if err := fn(ctx); err != nil {
		m.store.restore(vs, ps)
		return err
	}
	return nil
}

type mockClientRepo struct {
	GetByIDFunc func(ctx context.Context, clientID uuid.UUID) (*domain.Client, error)
}

func (m *mockClientRepo) GetByID(ctx context.Context, clientID uuid.UUID) (*domain.Client, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, clientID)
	}
	return nil, domain.ErrNotFound
}

type mockProgramRepo struct {
	GetByIDFunc func(ctx context.Context, coachID, programID uuid.UUID) (*domain.ProgramTemplate, error)
}

func (m *mockProgramRepo) GetByID(ctx context.Context, coachID, programID uuid.UUID) (*domain.ProgramTemplate, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, coachID, programID)
	}
	return nil, domain.ErrNotFound
}

type mockLogRepo struct {
	store *memStore
}

func (m *mockLogRepo) GetByID(ctx context.Context, logID uuid.UUID) (*domain.GenerationLog, error) {
	m.store.mu.Lock()
	defer m.store.mu.Unlock()
	gl, ok := m.store.logs[logID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return gl, nil
}

type mockEventRepo struct {
	CreateFunc func(ctx context.Context, e *domain.CoachingEvent) (*domain.CoachingEvent, error)

	mu     sync.Mutex
	events []domain.CoachingEvent
}

func (m *mockEventRepo) Create(ctx context.Context, e *domain.CoachingEvent) (*domain.CoachingEvent, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, e)
	}
	out := *e
	out.ID = uuid.New()
	m.mu.Lock()
	m.events = append(m.events, out)
	m.mu.Unlock()
	return &out, nil
}

func (m *mockEventRepo) Events() []domain.CoachingEvent {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]domain.CoachingEvent(nil), m.events...)
}

type mockNotifier struct {
	PublishFunc func(ctx context.Context, event *domain.CoachingEvent) error

	mu        sync.Mutex
	published []*domain.CoachingEvent
}

func (m *mockNotifier) Publish(ctx context.Context, event *domain.CoachingEvent) error {
	m.mu.Lock()
	m.published = append(m.published, event)
	m.mu.Unlock()
	if m.PublishFunc != nil {
		return m.PublishFunc(ctx, event)
	}
	return nil
}

func (m *mockNotifier) PublishCalls() []*domain.CoachingEvent {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.published
}

type mockRecorder struct {
	mu        sync.Mutex
	committed int
	rejected  []string
	notifyErr int
	appended  []domain.EventType
}

func (m *mockRecorder) ApplyCommitted(kind domain.ArtifactKind, source domain.Source, d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.committed++
}

func (m *mockRecorder) ApplyRejected(kind domain.ArtifactKind, source domain.Source, reason string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rejected = append(m.rejected, reason)
}

func (m *mockRecorder) EventAppended(eventType domain.EventType) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.appended = append(m.appended, eventType)
}

func (m *mockRecorder) NotifyFailed() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.notifyErr++
}
