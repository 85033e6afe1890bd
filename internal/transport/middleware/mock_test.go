package middleware

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

var _ tokenValidator = (*tokenValidatorMock)(nil)

type tokenValidatorMock struct {
	ValidateTokenFunc func(ctx context.Context, token string) (uuid.UUID, string, error)

	mu     sync.Mutex
	tokens []string
}

func (m *tokenValidatorMock) ValidateToken(ctx context.Context, token string) (uuid.UUID, string, error) {
	if m.ValidateTokenFunc == nil {
		panic("tokenValidatorMock.ValidateTokenFunc: method is nil but ValidateToken was just called")
	}
	m.mu.Lock()
	m.tokens = append(m.tokens, token)
	m.mu.Unlock()
	return m.ValidateTokenFunc(ctx, token)
}

// ValidateTokenCalls returns the tokens passed to ValidateToken, in order.
func (m *tokenValidatorMock) ValidateTokenCalls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.tokens...)
}
