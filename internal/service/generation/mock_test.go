package generation

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/heartmarshall/coaching-backend/internal/domain"
)

type clientRepoMock struct {
	GetByIDFunc func(ctx context.Context, clientID uuid.UUID) (*domain.Client, error)
}

func (m *clientRepoMock) GetByID(ctx context.Context, clientID uuid.UUID) (*domain.Client, error) {
	if m.GetByIDFunc == nil {
		panic("clientRepoMock.GetByIDFunc: method is nil but clientRepo.GetByID was just called")
	}
	return m.GetByIDFunc(ctx, clientID)
}

type logRepoMock struct {
	CreateFunc  func(ctx context.Context, log *domain.GenerationLog) (*domain.GenerationLog, error)
	GetByIDFunc func(ctx context.Context, logID uuid.UUID) (*domain.GenerationLog, error)
	ListFunc    func(ctx context.Context, clientID uuid.UUID, filter domain.GenerationLogFilter) ([]domain.GenerationLog, error)
	DeleteFunc  func(ctx context.Context, logID uuid.UUID) error

	mu          sync.Mutex
	createCalls []*domain.GenerationLog
	deleteCalls []uuid.UUID
}

func (m *logRepoMock) Create(ctx context.Context, log *domain.GenerationLog) (*domain.GenerationLog, error) {
	if m.CreateFunc == nil {
		panic("logRepoMock.CreateFunc: method is nil but logRepo.Create was just called")
	}
	m.mu.Lock()
	m.createCalls = append(m.createCalls, log)
	m.mu.Unlock()
	return m.CreateFunc(ctx, log)
}

func (m *logRepoMock) GetByID(ctx context.Context, logID uuid.UUID) (*domain.GenerationLog, error) {
	if m.GetByIDFunc == nil {
		panic("logRepoMock.GetByIDFunc: method is nil but logRepo.GetByID was just called")
	}
	return m.GetByIDFunc(ctx, logID)
}

func (m *logRepoMock) List(ctx context.Context, clientID uuid.UUID, filter domain.GenerationLogFilter) ([]domain.GenerationLog, error) {
	if m.ListFunc == nil {
		panic("logRepoMock.ListFunc: method is nil but logRepo.List was just called")
	}
	return m.ListFunc(ctx, clientID, filter)
}

func (m *logRepoMock) Delete(ctx context.Context, logID uuid.UUID) error {
	if m.DeleteFunc == nil {
		panic("logRepoMock.DeleteFunc: method is nil but logRepo.Delete was just called")
	}
	m.mu.Lock()
	m.deleteCalls = append(m.deleteCalls, logID)
	m.mu.Unlock()
	return m.DeleteFunc(ctx, logID)
}

func (m *logRepoMock) CreateCalls() []*domain.GenerationLog {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.createCalls
}

func (m *logRepoMock) DeleteCalls() []uuid.UUID {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.deleteCalls
}

type generatorMock struct {
	GenerateFunc func(ctx context.Context, genType domain.GenerationType, clientContext string) (*domain.GeneratorOutput, error)
}

func (m *generatorMock) Generate(ctx context.Context, genType domain.GenerationType, clientContext string) (*domain.GeneratorOutput, error) {
	return m.GenerateFunc(ctx, genType, clientContext)
}

type recorderMock struct {
	mu       sync.Mutex
	appended []domain.GenerationType
	failed   []domain.GenerationType
}

func (m *recorderMock) GenerationAppended(genType domain.GenerationType, tokens int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.appended = append(m.appended, genType)
}

func (m *recorderMock) GeneratorFailed(genType domain.GenerationType) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failed = append(m.failed, genType)
}
