package rest

import (
	"context"

	"github.com/google/uuid"

	"github.com/heartmarshall/coaching-backend/internal/domain"
	"github.com/heartmarshall/coaching-backend/internal/service/artifact"
	"github.com/heartmarshall/coaching-backend/internal/service/client"
	"github.com/heartmarshall/coaching-backend/internal/service/generation"
	"github.com/heartmarshall/coaching-backend/internal/service/program"
	"github.com/heartmarshall/coaching-backend/internal/service/timeline"
)

type clientServiceMock struct {
	CreateClientFunc func(ctx context.Context, input client.CreateClientInput) (*domain.Client, error)
	GetClientFunc    func(ctx context.Context, clientID uuid.UUID) (*domain.Client, error)
	ListClientsFunc  func(ctx context.Context, limit int) ([]domain.Client, error)
	SetStatusFunc    func(ctx context.Context, input client.SetStatusInput) (*domain.Client, error)
}

func (m *clientServiceMock) CreateClient(ctx context.Context, input client.CreateClientInput) (*domain.Client, error) {
	if m.CreateClientFunc == nil {
		panic("clientServiceMock.CreateClientFunc: method is nil but CreateClient was just called")
	}
	return m.CreateClientFunc(ctx, input)
}

func (m *clientServiceMock) GetClient(ctx context.Context, clientID uuid.UUID) (*domain.Client, error) {
	if m.GetClientFunc == nil {
		panic("clientServiceMock.GetClientFunc: method is nil but GetClient was just called")
	}
	return m.GetClientFunc(ctx, clientID)
}

func (m *clientServiceMock) ListClients(ctx context.Context, limit int) ([]domain.Client, error) {
	if m.ListClientsFunc == nil {
		panic("clientServiceMock.ListClientsFunc: method is nil but ListClients was just called")
	}
	return m.ListClientsFunc(ctx, limit)
}

func (m *clientServiceMock) SetStatus(ctx context.Context, input client.SetStatusInput) (*domain.Client, error) {
	if m.SetStatusFunc == nil {
		panic("clientServiceMock.SetStatusFunc: method is nil but SetStatus was just called")
	}
	return m.SetStatusFunc(ctx, input)
}

type programServiceMock struct {
	CreateProgramFunc func(ctx context.Context, input program.CreateProgramInput) (*domain.ProgramTemplate, error)
	ListProgramsFunc  func(ctx context.Context) ([]domain.ProgramTemplate, error)
}

func (m *programServiceMock) CreateProgram(ctx context.Context, input program.CreateProgramInput) (*domain.ProgramTemplate, error) {
	if m.CreateProgramFunc == nil {
		panic("programServiceMock.CreateProgramFunc: method is nil but CreateProgram was just called")
	}
	return m.CreateProgramFunc(ctx, input)
}

func (m *programServiceMock) ListPrograms(ctx context.Context) ([]domain.ProgramTemplate, error) {
	if m.ListProgramsFunc == nil {
		panic("programServiceMock.ListProgramsFunc: method is nil but ListPrograms was just called")
	}
	return m.ListProgramsFunc(ctx)
}

type artifactServiceMock struct {
	ApplyFunc      func(ctx context.Context, input artifact.ApplyInput) (*domain.ArtifactVersion, error)
	GetCurrentFunc func(ctx context.Context, clientID uuid.UUID, kind domain.ArtifactKind) (*domain.CurrentArtifact, error)
	GetHistoryFunc func(ctx context.Context, clientID uuid.UUID, kind domain.ArtifactKind) ([]domain.ArtifactVersion, error)
}

func (m *artifactServiceMock) Apply(ctx context.Context, input artifact.ApplyInput) (*domain.ArtifactVersion, error) {
	if m.ApplyFunc == nil {
		panic("artifactServiceMock.ApplyFunc: method is nil but Apply was just called")
	}
	return m.ApplyFunc(ctx, input)
}

func (m *artifactServiceMock) GetCurrent(ctx context.Context, clientID uuid.UUID, kind domain.ArtifactKind) (*domain.CurrentArtifact, error) {
	if m.GetCurrentFunc == nil {
		panic("artifactServiceMock.GetCurrentFunc: method is nil but GetCurrent was just called")
	}
	return m.GetCurrentFunc(ctx, clientID, kind)
}

func (m *artifactServiceMock) GetHistory(ctx context.Context, clientID uuid.UUID, kind domain.ArtifactKind) ([]domain.ArtifactVersion, error) {
	if m.GetHistoryFunc == nil {
		panic("artifactServiceMock.GetHistoryFunc: method is nil but GetHistory was just called")
	}
	return m.GetHistoryFunc(ctx, clientID, kind)
}

type generationServiceMock struct {
	AppendFunc   func(ctx context.Context, input generation.AppendInput) (*domain.GenerationLog, error)
	GenerateFunc func(ctx context.Context, input generation.GenerateInput) (*domain.GenerationLog, error)
	GetFunc      func(ctx context.Context, logID uuid.UUID) (*domain.GenerationLog, error)
	ListFunc     func(ctx context.Context, input generation.ListInput) ([]domain.GenerationLog, error)
	DeleteFunc   func(ctx context.Context, logID uuid.UUID) error
}

func (m *generationServiceMock) Append(ctx context.Context, input generation.AppendInput) (*domain.GenerationLog, error) {
	if m.AppendFunc == nil {
		panic("generationServiceMock.AppendFunc: method is nil but Append was just called")
	}
	return m.AppendFunc(ctx, input)
}

func (m *generationServiceMock) Generate(ctx context.Context, input generation.GenerateInput) (*domain.GenerationLog, error) {
	if m.GenerateFunc == nil {
		panic("generationServiceMock.GenerateFunc: method is nil but Generate was just called")
	}
	return m.GenerateFunc(ctx, input)
}

func (m *generationServiceMock) Get(ctx context.Context, logID uuid.UUID) (*domain.GenerationLog, error) {
	if m.GetFunc == nil {
		panic("generationServiceMock.GetFunc: method is nil but Get was just called")
	}
	return m.GetFunc(ctx, logID)
}

func (m *generationServiceMock) List(ctx context.Context, input generation.ListInput) ([]domain.GenerationLog, error) {
	if m.ListFunc == nil {
		panic("generationServiceMock.ListFunc: method is nil but List was just called")
	}
	return m.ListFunc(ctx, input)
}

func (m *generationServiceMock) Delete(ctx context.Context, logID uuid.UUID) error {
	if m.DeleteFunc == nil {
		panic("generationServiceMock.DeleteFunc: method is nil but Delete was just called")
	}
	return m.DeleteFunc(ctx, logID)
}

type timelineServiceMock struct {
	AppendNoteFunc func(ctx context.Context, input timeline.AppendEventInput) (*domain.CoachingEvent, error)
	ListFunc       func(ctx context.Context, input timeline.ListInput) ([]domain.CoachingEvent, error)
	DeleteFunc     func(ctx context.Context, eventID uuid.UUID) error
}

func (m *timelineServiceMock) AppendNote(ctx context.Context, input timeline.AppendEventInput) (*domain.CoachingEvent, error) {
	if m.AppendNoteFunc == nil {
		panic("timelineServiceMock.AppendNoteFunc: method is nil but AppendNote was just called")
	}
	return m.AppendNoteFunc(ctx, input)
}

func (m *timelineServiceMock) List(ctx context.Context, input timeline.ListInput) ([]domain.CoachingEvent, error) {
	if m.ListFunc == nil {
		panic("timelineServiceMock.ListFunc: method is nil but List was just called")
	}
	return m.ListFunc(ctx, input)
}

func (m *timelineServiceMock) Delete(ctx context.Context, eventID uuid.UUID) error {
	if m.DeleteFunc == nil {
		panic("timelineServiceMock.DeleteFunc: method is nil but Delete was just called")
	}
	return m.DeleteFunc(ctx, eventID)
}

type generationLogRepoStub struct {
	logs  map[uuid.UUID]domain.GenerationLog
	calls int
}

func (s *generationLogRepoStub) GetByIDs(_ context.Context, ids []uuid.UUID) ([]domain.GenerationLog, error) {
	s.calls++
	var out []domain.GenerationLog
	for _, id := range ids {
		if l, ok := s.logs[id]; ok {
			out = append(out, l)
		}
	}
	return out, nil
}
