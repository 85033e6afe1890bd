// Package dataloader provides per-request DataLoaders that batch lookups
// made while rendering REST responses into single SQL calls. Loaders call
// repositories directly; callers authorize the parent resource first.
package dataloader

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/graph-gophers/dataloader/v7"

	"github.com/heartmarshall/coaching-backend/internal/domain"
)

const (
	maxBatch = 100
	wait     = 2 * time.Millisecond
)

type generationLogRepo interface {
	GetByIDs(ctx context.Context, ids []uuid.UUID) ([]domain.GenerationLog, error)
}

// Repos holds all repositories required by DataLoaders.
type Repos struct {
	GenerationLog generationLogRepo
}

// Loaders contains the per-request DataLoaders. Created via NewLoaders.
type Loaders struct {
	// GenerationLogByID resolves to nil for ids whose log no longer exists.
	GenerationLogByID *dataloader.Loader[uuid.UUID, *domain.GenerationLog]
}

// NewLoaders creates a new set of DataLoaders backed by the given repositories.
// Must be called per-request (loaders cache results within a single request).
func NewLoaders(repos *Repos) *Loaders {
	return &Loaders{
		GenerationLogByID: newLoader(newGenerationLogBatchFn(repos.GenerationLog)),
	}
}

func newLoader[V any](batchFn dataloader.BatchFunc[uuid.UUID, V]) *dataloader.Loader[uuid.UUID, V] {
	return dataloader.NewBatchedLoader(
		batchFn,
		dataloader.WithWait[uuid.UUID, V](wait),
		dataloader.WithBatchCapacity[uuid.UUID, V](maxBatch),
	)
}

func newGenerationLogBatchFn(repo generationLogRepo) dataloader.BatchFunc[uuid.UUID, *domain.GenerationLog] {
	return func(ctx context.Context, keys []uuid.UUID) []*dataloader.Result[*domain.GenerationLog] {
		logs, err := repo.GetByIDs(ctx, keys)
		if err != nil {
			return errorResults[*domain.GenerationLog](len(keys), err)
		}

		byID := make(map[uuid.UUID]*domain.GenerationLog, len(logs))
		for i := range logs {
			byID[logs[i].ID] = &logs[i]
		}

		results := make([]*dataloader.Result[*domain.GenerationLog], len(keys))
		for i, key := range keys {
			results[i] = &dataloader.Result[*domain.GenerationLog]{Data: byID[key]}
		}
		return results
	}
}

func errorResults[V any](n int, err error) []*dataloader.Result[V] {
	results := make([]*dataloader.Result[V], n)
	for i := range results {
		results[i] = &dataloader.Result[V]{Error: err}
	}
	return results
}

// LoadGenerationLogs resolves many ids in one batch. Missing logs map to nil.
func (l *Loaders) LoadGenerationLogs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]*domain.GenerationLog, error) {
	thunks := make([]dataloader.Thunk[*domain.GenerationLog], len(ids))
	for i, id := range ids {
		thunks[i] = l.GenerationLogByID.Load(ctx, id)
	}

	out := make(map[uuid.UUID]*domain.GenerationLog, len(ids))
	for i, thunk := range thunks {
		log, err := thunk()
		if err != nil {
			return nil, err
		}
		out[ids[i]] = log
	}
	return out, nil
}

// ---------------------------------------------------------------------------
// Context helpers
// ---------------------------------------------------------------------------

type contextKey string

const loadersKey contextKey = "dataloaders"

// WithLoaders stores Loaders in the context.
func WithLoaders(ctx context.Context, l *Loaders) context.Context {
	return context.WithValue(ctx, loadersKey, l)
}

// FromContext retrieves Loaders from the context.
// Panics if loaders are not present (indicates middleware misconfiguration).
func FromContext(ctx context.Context) *Loaders {
	l, ok := ctx.Value(loadersKey).(*Loaders)
	if !ok || l == nil {
		panic("dataloader: loaders not found in context, is middleware configured?")
	}
	return l
}

// Middleware creates an HTTP middleware that instantiates per-request
// DataLoaders and stores them in the request context.
func Middleware(repos *Repos) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := WithLoaders(r.Context(), NewLoaders(repos))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
