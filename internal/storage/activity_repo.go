package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

type ActivityRepo struct {
	db *sql.DB
}

func NewActivityRepo(db *sql.DB) *ActivityRepo {
	return &ActivityRepo{db: db}
}

type ActivityInsert struct {
	Name               string
	Category           string
	MentalEnergyCost   int
	PhysicalEnergyCost int
	TargetFrequency    TargetFrequency
	CooldownHours      *float64
	PriorityCurve      []CurvePoint
	HourTiers          []string
	HourlyCurve        []HourlyPoint
	IsTemporary        bool
	Notes              string
}

const activityColumns = `id, name, category, mental_cost, physical_cost,
	target_frequency, cooldown_hours, priority_curve, hour_tiers, hourly_curve,
	is_active, is_temporary, paused_until, notes, created_at`

func (r *ActivityRepo) Insert(ctx context.Context, in ActivityInsert) (int64, error) {
	freqJSON, err := json.Marshal(in.TargetFrequency)
	if err != nil {
		return 0, fmt.Errorf("marshal target frequency: %w", err)
	}
	tiersJSON, err := json.Marshal(in.HourTiers)
	if err != nil {
		return 0, fmt.Errorf("marshal hour tiers: %w", err)
	}
	curveJSON, err := marshalOptional(in.PriorityCurve)
	if err != nil {
		return 0, fmt.Errorf("marshal priority curve: %w", err)
	}
	hourlyJSON, err := marshalOptional(in.HourlyCurve)
	if err != nil {
		return 0, fmt.Errorf("marshal hourly curve: %w", err)
	}

	res, err := r.db.ExecContext(ctx, `
		INSERT INTO activities (
			name, category, mental_cost, physical_cost,
			target_frequency, cooldown_hours, priority_curve, hour_tiers, hourly_curve,
			is_active, is_temporary, notes, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, 1, ?, ?, ?)
	`, in.Name, in.Category, in.MentalEnergyCost, in.PhysicalEnergyCost,
		string(freqJSON), in.CooldownHours, curveJSON, string(tiersJSON), hourlyJSON,
		boolToInt(in.IsTemporary), in.Notes, time.Now().UTC())
	if err != nil {
		return 0, fmt.Errorf("activity insert: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("activity last insert id: %w", err)
	}
	return id, nil
}

func (r *ActivityRepo) Get(ctx context.Context, id int64) (*Activity, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT `+activityColumns+`
		FROM activities
		WHERE id = ?
	`, id)
	return scanActivityRow(row)
}

// ListActive returns activities with is_active = 1. Archived activities are
// excluded here, before the scoring engine ever sees them.
func (r *ActivityRepo) ListActive(ctx context.Context) ([]Activity, error) {
	return r.list(ctx, `SELECT `+activityColumns+` FROM activities WHERE is_active = 1 ORDER BY id ASC`)
}

func (r *ActivityRepo) ListArchived(ctx context.Context) ([]Activity, error) {
	return r.list(ctx, `SELECT `+activityColumns+` FROM activities WHERE is_active = 0 ORDER BY id ASC`)
}

func (r *ActivityRepo) list(ctx context.Context, query string) ([]Activity, error) {
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("activity list: %w", err)
	}
	defer rows.Close()

	var out []Activity
	for rows.Next() {
		a, err := scanActivityRows(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("activity list rows: %w", err)
	}
	return out, nil
}

type ActivityUpdate struct {
	Name               *string
	Category           *string
	MentalEnergyCost   *int
	PhysicalEnergyCost *int
	TargetFrequency    *TargetFrequency
	CooldownHours      *float64
	PriorityCurve      []CurvePoint
	HourTiers          []string
	HourlyCurve        []HourlyPoint
	IsTemporary        *bool
	Notes              *string
}

// Update patches only the fields set on the update struct.
func (r *ActivityRepo) Update(ctx context.Context, id int64, in ActivityUpdate) error {
	sets := []string{}
	args := []any{}
	add := func(col string, v any) {
		sets = append(sets, col+" = ?")
		args = append(args, v)
	}

	if in.Name != nil {
		add("name", *in.Name)
	}
	if in.Category != nil {
		add("category", *in.Category)
	}
	if in.MentalEnergyCost != nil {
		add("mental_cost", *in.MentalEnergyCost)
	}
	if in.PhysicalEnergyCost != nil {
		add("physical_cost", *in.PhysicalEnergyCost)
	}
	if in.TargetFrequency != nil {
		data, err := json.Marshal(*in.TargetFrequency)
		if err != nil {
			return fmt.Errorf("marshal target frequency: %w", err)
		}
		add("target_frequency", string(data))
	}
	if in.CooldownHours != nil {
		add("cooldown_hours", *in.CooldownHours)
	}
	if in.PriorityCurve != nil {
		data, err := json.Marshal(in.PriorityCurve)
		if err != nil {
			return fmt.Errorf("marshal priority curve: %w", err)
		}
		add("priority_curve", string(data))
	}
	if in.HourTiers != nil {
		data, err := json.Marshal(in.HourTiers)
		if err != nil {
			return fmt.Errorf("marshal hour tiers: %w", err)
		}
		add("hour_tiers", string(data))
	}
	if in.HourlyCurve != nil {
		data, err := json.Marshal(in.HourlyCurve)
		if err != nil {
			return fmt.Errorf("marshal hourly curve: %w", err)
		}
		add("hourly_curve", string(data))
	}
	if in.IsTemporary != nil {
		add("is_temporary", boolToInt(*in.IsTemporary))
	}
	if in.Notes != nil {
		add("notes", *in.Notes)
	}

	if len(sets) == 0 {
		return nil
	}
	args = append(args, id)
	query := "UPDATE activities SET " + strings.Join(sets, ", ") + " WHERE id = ?"
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("activity update: %w", err)
	}
	return nil
}

func (r *ActivityRepo) SetActive(ctx context.Context, id int64, active bool) error {
	_, err := r.db.ExecContext(ctx, `UPDATE activities SET is_active = ? WHERE id = ?`, boolToInt(active), id)
	if err != nil {
		return fmt.Errorf("activity set active: %w", err)
	}
	return nil
}

func (r *ActivityRepo) SetPausedUntil(ctx context.Context, id int64, until *time.Time) error {
	_, err := r.db.ExecContext(ctx, `UPDATE activities SET paused_until = ? WHERE id = ?`, until, id)
	if err != nil {
		return fmt.Errorf("activity set paused: %w", err)
	}
	return nil
}

func (r *ActivityRepo) Count(ctx context.Context) (int, error) {
	row := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM activities`)
	var n int
	if err := row.Scan(&n); err != nil {
		return 0, fmt.Errorf("activity count: %w", err)
	}
	return n, nil
}

type activityScanner interface {
	Scan(dest ...any) error
}

func scanActivityRow(row *sql.Row) (*Activity, error) {
	a, err := scanActivity(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return a, err
}

func scanActivityRows(rows *sql.Rows) (*Activity, error) {
	return scanActivity(rows)
}

func scanActivity(s activityScanner) (*Activity, error) {
	var a Activity
	var freqJSON, tiersJSON string
	var curveJSON, hourlyJSON sql.NullString
	var isActive, isTemporary int

	err := s.Scan(
		&a.ID, &a.Name, &a.Category, &a.MentalEnergyCost, &a.PhysicalEnergyCost,
		&freqJSON, &a.CooldownHours, &curveJSON, &tiersJSON, &hourlyJSON,
		&isActive, &isTemporary, &a.PausedUntil, &a.Notes, &a.CreatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("activity scan: %w", err)
	}

	if err := json.Unmarshal([]byte(freqJSON), &a.TargetFrequency); err != nil {
		return nil, fmt.Errorf("unmarshal target frequency: %w", err)
	}
	if err := json.Unmarshal([]byte(tiersJSON), &a.HourTiers); err != nil {
		return nil, fmt.Errorf("unmarshal hour tiers: %w", err)
	}
	if curveJSON.Valid && curveJSON.String != "" {
		if err := json.Unmarshal([]byte(curveJSON.String), &a.PriorityCurve); err != nil {
			return nil, fmt.Errorf("unmarshal priority curve: %w", err)
		}
	}
	if hourlyJSON.Valid && hourlyJSON.String != "" {
		if err := json.Unmarshal([]byte(hourlyJSON.String), &a.HourlyCurve); err != nil {
			return nil, fmt.Errorf("unmarshal hourly curve: %w", err)
		}
	}
	a.IsActive = isActive != 0
	a.IsTemporary = isTemporary != 0
	return &a, nil
}

func marshalOptional(v any) (*string, error) {
	switch t := v.(type) {
	case []CurvePoint:
		if len(t) == 0 {
			return nil, nil
		}
	case []HourlyPoint:
		if len(t) == 0 {
			return nil, nil
		}
	}
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	s := string(data)
	return &s, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
