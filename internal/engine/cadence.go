package engine

import (
	"fmt"
	"math"
	"time"

	"github.com/octagorm/priorities/internal/storage"
)

const (
	weekMs = 7 * 24 * 3600_000

	// cadenceHalfLife is the half-life of the recency weighting: an interval
	// observed 10 days ago counts half as much as one observed just now.
	cadenceHalfLife = 10 * 24 * time.Hour
)

// RecentFrequency renders an activity's actual observed cadence ("3/week")
// from its sessions, newest first. Intervals between consecutive sessions are
// averaged with exponential recency weighting so that the estimate tracks the
// user's current rhythm rather than their lifetime average.
func RecentFrequency(sessions []storage.Session, now time.Time) string {
	switch {
	case len(sessions) == 0:
		return "Never done"
	case len(sessions) == 1:
		return "Need more data"
	}

	if len(sessions) == 2 {
		interval := sessions[0].StartedAt.Sub(sessions[1].StartedAt)
		if interval <= 0 {
			return "Need more data"
		}
		rate := float64(weekMs) / float64(interval.Milliseconds())
		return formatWeeklyRate(rate)
	}

	decay := math.Ln2 / float64(cadenceHalfLife.Milliseconds())

	var weightedSum, weightTotal float64
	for i := 0; i < len(sessions)-1; i++ {
		newer, older := sessions[i], sessions[i+1]
		interval := newer.StartedAt.Sub(older.StartedAt)
		if interval <= 0 {
			continue
		}
		age := now.Sub(newer.StartedAt)
		if age < 0 {
			age = 0
		}
		w := math.Exp(-decay * float64(age.Milliseconds()))
		weightedSum += w * float64(interval.Milliseconds())
		weightTotal += w
	}
	if weightTotal <= 0 || weightedSum <= 0 {
		return "Need more data"
	}

	avgIntervalMs := weightedSum / weightTotal
	rate := float64(weekMs) / avgIntervalMs
	return formatWeeklyRate(rate)
}

// formatWeeklyRate converts a per-week rate into the coarsest unit that still
// reads naturally.
func formatWeeklyRate(perWeek float64) string {
	if perWeek >= 6.5 {
		n := int(math.Round(perWeek / 7))
		if n <= 1 {
			return "Daily"
		}
		return fmt.Sprintf("%d/day", n)
	}
	if perWeek >= 0.95 {
		n := int(math.Round(perWeek))
		if n == 1 {
			return "Weekly"
		}
		return fmt.Sprintf("%d/week", n)
	}
	perMonth := perWeek * 30 / 7
	if perMonth >= 0.95 {
		n := int(math.Round(perMonth))
		if n == 1 {
			return "Monthly"
		}
		return fmt.Sprintf("%d/month", n)
	}
	perYear := perWeek * 365 / 7
	if perYear >= 0.95 {
		n := int(math.Round(perYear))
		if n == 1 {
			return "Yearly"
		}
		return fmt.Sprintf("%d/year", n)
	}
	return "Rarely"
}
