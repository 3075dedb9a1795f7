package storage

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := Open(context.Background(), filepath.Join(t.TempDir(), "tx.db"))
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestWithTxCommitsOnSuccess(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	settings := NewSettingsRepo(db)

	err := WithTx(ctx, db, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx, `INSERT INTO settings (key, value) VALUES ('a', '1')`)
		return err
	})
	if err != nil {
		t.Fatalf("with tx: %v", err)
	}

	v, ok, err := settings.Get(ctx, "a")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if !ok || v != "1" {
		t.Fatalf("got %q (present=%v), want committed value 1", v, ok)
	}
}

func TestWithTxRollsBackOnError(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	settings := NewSettingsRepo(db)

	boom := errors.New("boom")
	err := WithTx(ctx, db, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `INSERT INTO settings (key, value) VALUES ('b', '2')`); err != nil {
			return err
		}
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("err=%v, want the callback's error unchanged", err)
	}

	_, ok, err := settings.Get(ctx, "b")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if ok {
		t.Fatalf("write survived a rolled-back transaction")
	}
}
