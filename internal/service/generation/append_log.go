package generation

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/heartmarshall/coaching-backend/internal/domain"
)

// Append validates an externally produced result and records it as a
// generation log for the client.
func (s *Service) Append(ctx context.Context, input AppendInput) (*domain.GenerationLog, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	actor, c, err := s.authorizeClient(ctx, input.ClientID)
	if err != nil {
		return nil, err
	}

	result, err := decodeResult(input.GenerationType, input.Result)
	if err != nil {
		return nil, err
	}

	return s.record(ctx, actor, c, result, input.Meta)
}

// decodeResult parses and structurally validates a result of genType.
func decodeResult(genType domain.GenerationType, raw []byte) (domain.GenerationResult, error) {
	result, err := domain.DecodeGenerationResult(genType, raw)
	if err != nil {
		return nil, err
	}
	if err := result.Validate(); err != nil {
		return nil, err
	}
	return result, nil
}

func (s *Service) record(ctx context.Context, actor domain.Actor, c *domain.Client, result domain.GenerationResult, meta domain.GenerationMeta) (*domain.GenerationLog, error) {
	gl, err := s.logs.Create(ctx, &domain.GenerationLog{
		ClientID:       c.ID,
		CoachID:        c.CoachID,
		GenerationType: result.GenerationType(),
		Result:         result,
		Model:          meta.Model,
		TokensUsed:     meta.TokensUsed,
		RAGUsed:        meta.RAGUsed,
	})
	if err != nil {
		return nil, fmt.Errorf("create generation log: %w", err)
	}

	s.metrics.GenerationAppended(gl.GenerationType, gl.TokensUsed)
	s.log.InfoContext(ctx, "generation log appended",
		slog.String("actor_id", actor.ID.String()),
		slog.String("client_id", c.ID.String()),
		slog.String("log_id", gl.ID.String()),
		slog.String("generation_type", gl.GenerationType.String()),
		slog.Int("tokens_used", gl.TokensUsed),
	)

	return gl, nil
}
