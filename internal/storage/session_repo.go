package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

type SessionRepo struct {
	db *sql.DB
}

func NewSessionRepo(db *sql.DB) *SessionRepo {
	return &SessionRepo{db: db}
}

type SessionInsert struct {
	ActivityID         int64
	StartedAt          time.Time
	MentalCostAtTime   int
	PhysicalCostAtTime int
	Note               *string
	DurationMs         *int64
}

func (r *SessionRepo) Insert(ctx context.Context, in SessionInsert) (int64, error) {
	res, err := r.db.ExecContext(ctx, `
		INSERT INTO sessions (activity_id, started_at, mental_cost_at_time, physical_cost_at_time, note, duration_ms)
		VALUES (?, ?, ?, ?, ?, ?)
	`, in.ActivityID, in.StartedAt, in.MentalCostAtTime, in.PhysicalCostAtTime, in.Note, in.DurationMs)
	if err != nil {
		return 0, fmt.Errorf("session insert: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("session last insert id: %w", err)
	}
	return id, nil
}

// Delete removes a logged session. Sessions are never updated in place.
func (r *SessionRepo) Delete(ctx context.Context, id int64) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM sessions WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("session delete: %w", err)
	}
	return nil
}

const sessionColumns = `id, activity_id, started_at, mental_cost_at_time, physical_cost_at_time, note, duration_ms`

// ListRecent returns the most recent sessions across all activities,
// newest first.
func (r *SessionRepo) ListRecent(ctx context.Context, limit int) ([]Session, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+sessionColumns+`
		FROM sessions
		ORDER BY started_at DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("session list recent: %w", err)
	}
	return collectSessions(rows)
}

func (r *SessionRepo) ListByActivity(ctx context.Context, activityID int64, limit int) ([]Session, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+sessionColumns+`
		FROM sessions
		WHERE activity_id = ?
		ORDER BY started_at DESC
		LIMIT ?
	`, activityID, limit)
	if err != nil {
		return nil, fmt.Errorf("session list by activity: %w", err)
	}
	return collectSessions(rows)
}

func (r *SessionRepo) Last(ctx context.Context, activityID int64) (*Session, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT `+sessionColumns+`
		FROM sessions
		WHERE activity_id = ?
		ORDER BY started_at DESC
		LIMIT 1
	`, activityID)
	var s Session
	if err := row.Scan(&s.ID, &s.ActivityID, &s.StartedAt, &s.MentalCostAtTime, &s.PhysicalCostAtTime, &s.Note, &s.DurationMs); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("session last: %w", err)
	}
	return &s, nil
}

func (r *SessionRepo) CountByActivity(ctx context.Context, activityID int64) (int, error) {
	row := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM sessions WHERE activity_id = ?`, activityID)
	var n int
	if err := row.Scan(&n); err != nil {
		return 0, fmt.Errorf("session count: %w", err)
	}
	return n, nil
}

func collectSessions(rows *sql.Rows) ([]Session, error) {
	defer rows.Close()
	var out []Session
	for rows.Next() {
		var s Session
		if err := rows.Scan(&s.ID, &s.ActivityID, &s.StartedAt, &s.MentalCostAtTime, &s.PhysicalCostAtTime, &s.Note, &s.DurationMs); err != nil {
			return nil, fmt.Errorf("session scan: %w", err)
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("session rows: %w", err)
	}
	return out, nil
}
