package client

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/heartmarshall/coaching-backend/internal/domain"
)

// clientRepoMock is a hand-written moq-style mock of clientRepo.
type clientRepoMock struct {
	CreateFunc       func(ctx context.Context, c *domain.Client) (*domain.Client, error)
	GetByIDFunc      func(ctx context.Context, clientID uuid.UUID) (*domain.Client, error)
	ListByCoachFunc  func(ctx context.Context, coachID uuid.UUID, limit int) ([]domain.Client, error)
	UpdateStatusFunc func(ctx context.Context, clientID uuid.UUID, status domain.ClientStatus) (*domain.Client, error)

	mu           sync.Mutex
	createCalls  []*domain.Client
	updateCalls  []domain.ClientStatus
	listCoachIDs []uuid.UUID
}

func (m *clientRepoMock) Create(ctx context.Context, c *domain.Client) (*domain.Client, error) {
	if m.CreateFunc == nil {
		panic("clientRepoMock.CreateFunc: method is nil but clientRepo.Create was just called")
	}
	m.mu.Lock()
	m.createCalls = append(m.createCalls, c)
	m.mu.Unlock()
	return m.CreateFunc(ctx, c)
}

func (m *clientRepoMock) GetByID(ctx context.Context, clientID uuid.UUID) (*domain.Client, error) {
	if m.GetByIDFunc == nil {
		panic("clientRepoMock.GetByIDFunc: method is nil but clientRepo.GetByID was just called")
	}
	return m.GetByIDFunc(ctx, clientID)
}

func (m *clientRepoMock) ListByCoach(ctx context.Context, coachID uuid.UUID, limit int) ([]domain.Client, error) {
	if m.ListByCoachFunc == nil {
		panic("clientRepoMock.ListByCoachFunc: method is nil but clientRepo.ListByCoach was just called")
	}
	m.mu.Lock()
	m.listCoachIDs = append(m.listCoachIDs, coachID)
	m.mu.Unlock()
	return m.ListByCoachFunc(ctx, coachID, limit)
}

func (m *clientRepoMock) UpdateStatus(ctx context.Context, clientID uuid.UUID, status domain.ClientStatus) (*domain.Client, error) {
	if m.UpdateStatusFunc == nil {
		panic("clientRepoMock.UpdateStatusFunc: method is nil but clientRepo.UpdateStatus was just called")
	}
	m.mu.Lock()
	m.updateCalls = append(m.updateCalls, status)
	m.mu.Unlock()
	return m.UpdateStatusFunc(ctx, clientID, status)
}

func (m *clientRepoMock) CreateCalls() []*domain.Client {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.createCalls
}

func (m *clientRepoMock) UpdateStatusCalls() []domain.ClientStatus {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.updateCalls
}

func (m *clientRepoMock) ListByCoachCalls() []uuid.UUID {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.listCoachIDs
}
