// package service contains the business logic of the task assigner. The
// assignment engine lives here; repositories and the notifier are injected
// as interfaces.
package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/complyops/task-assigner/pkg/logger/sl"
	"github.com/jmoiron/sqlx"
)

// Transactor starts database transactions for the services.
type Transactor interface {
	BeginTxx(ctx context.Context, opts *sql.TxOptions) (*sqlx.Tx, error)
}

// runInTx executes fn inside a transaction, committing on success and rolling
// back on error.
func runInTx(ctx context.Context, db Transactor, log *slog.Logger, op string, fn func(tx *sqlx.Tx) error) error {
	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%s: failed to begin transaction: %w", op, err)
	}

	defer func() {
		if err := tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
			log.Error("failed to rollback transaction", sl.Err(err))
		}
	}()

	if err := fn(tx); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%s: failed to commit transaction: %w", op, err)
	}

	return nil
}
