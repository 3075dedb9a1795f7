package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

type CostChangeRepo struct {
	db *sql.DB
}

func NewCostChangeRepo(db *sql.DB) *CostChangeRepo {
	return &CostChangeRepo{db: db}
}

func (r *CostChangeRepo) Insert(ctx context.Context, c EnergyCostChange) (int64, error) {
	if c.ChangedAt.IsZero() {
		c.ChangedAt = time.Now().UTC()
	}
	res, err := r.db.ExecContext(ctx, `
		INSERT INTO energy_cost_changes (
			activity_id, changed_at,
			previous_mental_cost, new_mental_cost,
			previous_physical_cost, new_physical_cost,
			reason
		) VALUES (?, ?, ?, ?, ?, ?, ?)
	`, c.ActivityID, c.ChangedAt, c.PreviousMentalCost, c.NewMentalCost, c.PreviousPhysicalCost, c.NewPhysicalCost, c.Reason)
	if err != nil {
		return 0, fmt.Errorf("cost change insert: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("cost change last insert id: %w", err)
	}
	return id, nil
}

func (r *CostChangeRepo) ListByActivity(ctx context.Context, activityID int64) ([]EnergyCostChange, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, activity_id, changed_at,
			previous_mental_cost, new_mental_cost,
			previous_physical_cost, new_physical_cost,
			reason
		FROM energy_cost_changes
		WHERE activity_id = ?
		ORDER BY changed_at DESC
	`, activityID)
	if err != nil {
		return nil, fmt.Errorf("cost change list: %w", err)
	}
	defer rows.Close()

	var out []EnergyCostChange
	for rows.Next() {
		var c EnergyCostChange
		if err := rows.Scan(&c.ID, &c.ActivityID, &c.ChangedAt,
			&c.PreviousMentalCost, &c.NewMentalCost,
			&c.PreviousPhysicalCost, &c.NewPhysicalCost,
			&c.Reason); err != nil {
			return nil, fmt.Errorf("cost change scan: %w", err)
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("cost change rows: %w", err)
	}
	return out, nil
}
