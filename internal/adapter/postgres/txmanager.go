package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// TxManager runs units of work in a transaction carried by the context.
type TxManager struct {
	pool *pgxpool.Pool
}

// NewTxManager creates a new TxManager.
func NewTxManager(pool *pgxpool.Pool) *TxManager {
	return &TxManager{pool: pool}
}

// RunInTx executes fn within a Read Committed transaction.
//
// A ctx that already carries a transaction is joined: fn runs in the outer
// transaction and the outermost RunInTx decides commit or rollback.
// An error or panic from fn rolls back; panics are re-raised. Rollback runs
// on a context detached from cancellation so an aborted request still
// releases its locks. Begin and commit failures caused by an unreachable
// store map to domain.ErrUnavailable.
func (m *TxManager) RunInTx(ctx context.Context, fn func(ctx context.Context) error) (err error) {
	if InTx(ctx) {
		return fn(ctx)
	}

	tx, err := m.pool.Begin(ctx)
	if err != nil {
		if isConnectionError(err) {
			return MapError(err, "begin transaction", uuid.Nil)
		}
		return fmt.Errorf("begin transaction: %w", err)
	}

	rollbackCtx := context.WithoutCancel(ctx)

	defer func() {
		if r := recover(); r != nil {
			_ = tx.Rollback(rollbackCtx)
			panic(r)
		}
	}()

	if err := fn(withTx(ctx, tx)); err != nil {
		if rbErr := tx.Rollback(rollbackCtx); rbErr != nil {
			return fmt.Errorf("rollback failed: %w (original error: %v)", rbErr, err)
		}
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		_ = tx.Rollback(rollbackCtx)
		if ctxErr := ctx.Err(); ctxErr != nil {
			return fmt.Errorf("commit transaction: %w", ctxErr)
		}
		if isConnectionError(err) {
			return MapError(err, "commit transaction", uuid.Nil)
		}
		return fmt.Errorf("commit transaction: %w", err)
	}

	return nil
}
