package artifact

import (
	"context"

	"github.com/google/uuid"

	"github.com/heartmarshall/coaching-backend/internal/domain"
)

// GetCurrent returns the current version of a client's artifact with its
// generation log. Returns domain.ErrNotFound when the artifact is unset.
func (s *Service) GetCurrent(ctx context.Context, clientID uuid.UUID, kind domain.ArtifactKind) (*domain.CurrentArtifact, error) {
	if err := s.authorizeRead(ctx, clientID, kind); err != nil {
		return nil, err
	}
	return s.store.GetCurrent(ctx, clientID, kind)
}

// GetHistory returns every version of a client's artifact, oldest first.
func (s *Service) GetHistory(ctx context.Context, clientID uuid.UUID, kind domain.ArtifactKind) ([]domain.ArtifactVersion, error) {
	if err := s.authorizeRead(ctx, clientID, kind); err != nil {
		return nil, err
	}
	return s.store.History(ctx, clientID, kind)
}

func (s *Service) authorizeRead(ctx context.Context, clientID uuid.UUID, kind domain.ArtifactKind) error {
	actor, ok := domain.ActorFromCtx(ctx)
	if !ok {
		return domain.ErrUnauthorized
	}
	if !kind.IsValid() {
		return domain.NewValidationError("artifactKind", "invalid artifact kind")
	}
	_, err := s.authorize(ctx, actor, clientID)
	return err
}
