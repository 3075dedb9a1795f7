package storage

import (
	"context"
	"database/sql"
	"fmt"
)

// WithTx opens a transaction, runs fn, and commits. Any error out of fn rolls
// the transaction back and is returned unchanged; the deferred rollback after
// a successful commit is a no-op.
func WithTx(ctx context.Context, db *sql.DB, fn func(tx *sql.Tx) error) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("tx begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("tx commit: %w", err)
	}
	return nil
}
