package postgres

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"

	"cookshelf/internal/domain/repositories"
)

// TxStarter begins transactions. *pgxpool.Pool and pgxmock pools implement it.
type TxStarter interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}

// TransactionManager implements the repositories.TransactionManager interface
type TransactionManager struct {
	db     TxStarter
	logger *slog.Logger
}

// NewTransactionManager creates a new transaction manager
func NewTransactionManager(db TxStarter, logger *slog.Logger) repositories.TransactionManager {
	return &TransactionManager{db: db, logger: logger}
}

// ExecTx executes a function within a transaction
func (tm *TransactionManager) ExecTx(ctx context.Context, fn repositories.TxFn) error {
	tx, err := tm.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}

	// Deferred rollback is a no-op after a successful commit
	defer func() {
		if err := tx.Rollback(ctx); err != nil && err != pgx.ErrTxClosed {
			tm.logger.Error("transaction rollback failed", "error", err)
		}
	}()

	// Store transaction in context so repositories can access it
	txCtx := repositories.SetTx(ctx, tx)

	if err := fn(txCtx); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}

	return nil
}
