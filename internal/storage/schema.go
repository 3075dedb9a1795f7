package storage

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
)

func Migrate(ctx context.Context, db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS activities (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT NOT NULL,
			category TEXT NOT NULL DEFAULT '',
			mental_cost INTEGER NOT NULL DEFAULT 0,
			physical_cost INTEGER NOT NULL DEFAULT 0,

			target_frequency TEXT NOT NULL,
			cooldown_hours REAL,
			priority_curve TEXT,
			hour_tiers TEXT NOT NULL,
			hourly_curve TEXT,

			is_active INTEGER NOT NULL DEFAULT 1,
			is_temporary INTEGER NOT NULL DEFAULT 0,
			paused_until DATETIME,
			notes TEXT NOT NULL DEFAULT '',
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);`,
		`CREATE TABLE IF NOT EXISTS sessions (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			activity_id INTEGER NOT NULL,
			started_at DATETIME NOT NULL,
			mental_cost_at_time INTEGER NOT NULL,
			physical_cost_at_time INTEGER NOT NULL,
			note TEXT,
			duration_ms INTEGER,
			FOREIGN KEY(activity_id) REFERENCES activities(id)
		);`,
		// Audit trail for energy cost edits; read on the activity detail view.
		`CREATE TABLE IF NOT EXISTS energy_cost_changes (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			activity_id INTEGER NOT NULL,
			changed_at DATETIME NOT NULL,
			previous_mental_cost INTEGER NOT NULL,
			new_mental_cost INTEGER NOT NULL,
			previous_physical_cost INTEGER NOT NULL,
			new_physical_cost INTEGER NOT NULL,
			reason TEXT,
			FOREIGN KEY(activity_id) REFERENCES activities(id)
		);`,
		`CREATE TABLE IF NOT EXISTS settings (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_sessions_activity_id_started_at ON sessions(activity_id, started_at);`,
		`CREATE INDEX IF NOT EXISTS idx_sessions_started_at ON sessions(started_at);`,
		`CREATE INDEX IF NOT EXISTS idx_activities_is_active ON activities(is_active);`,
		`CREATE INDEX IF NOT EXISTS idx_energy_cost_changes_activity_id ON energy_cost_changes(activity_id);`,
	}

	for _, stmt := range stmts {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}

	// Columns added after the initial release (ignore if already present).
	alterStmts := []string{
		`ALTER TABLE activities ADD COLUMN hourly_curve TEXT;`,
		`ALTER TABLE sessions ADD COLUMN duration_ms INTEGER;`,
	}
	for _, stmt := range alterStmts {
		_, err := db.ExecContext(ctx, stmt)
		if err != nil && !strings.Contains(err.Error(), "duplicate column") {
			return fmt.Errorf("migrate alter: %w", err)
		}
	}

	return nil
}
