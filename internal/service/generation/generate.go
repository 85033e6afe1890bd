package generation

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/heartmarshall/coaching-backend/internal/domain"
)

// Generate calls the generator for the client and records its output as a
// generation log. The result is never applied. A generator failure or an
// invalid result leaves nothing behind.
func (s *Service) Generate(ctx context.Context, input GenerateInput) (*domain.GenerationLog, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	actor, c, err := s.authorizeClient(ctx, input.ClientID)
	if err != nil {
		return nil, err
	}

	if s.generator == nil {
		return nil, fmt.Errorf("generator not configured: %w", domain.ErrGeneratorFailed)
	}

	out, err := s.generator.Generate(ctx, input.GenerationType, input.ClientContext)
	if err != nil {
		s.metrics.GeneratorFailed(input.GenerationType)
		s.log.WarnContext(ctx, "generator call failed",
			slog.String("client_id", c.ID.String()),
			slog.String("generation_type", input.GenerationType.String()),
			slog.String("error", err.Error()),
		)
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return nil, err
		}
		if errors.Is(err, domain.ErrGeneratorFailed) {
			return nil, err
		}
		return nil, fmt.Errorf("generate %s: %w: %v", input.GenerationType, domain.ErrGeneratorFailed, err)
	}

	result, err := decodeResult(input.GenerationType, out.Result)
	if err != nil {
		s.metrics.GeneratorFailed(input.GenerationType)
		return nil, fmt.Errorf("generator returned invalid %s result: %w: %v", input.GenerationType, domain.ErrGeneratorFailed, err)
	}

	return s.record(ctx, actor, c, result, out.Meta)
}
