package engine

import (
	"testing"
	"time"

	"github.com/octagorm/priorities/internal/storage"
)

func sessionsAt(now time.Time, agos ...time.Duration) []storage.Session {
	out := make([]storage.Session, len(agos))
	for i, ago := range agos {
		out[i] = storage.Session{ID: int64(i + 1), ActivityID: 1, StartedAt: now.Add(-ago)}
	}
	return out
}

func TestRecentFrequencySparseHistory(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	if got := RecentFrequency(nil, now); got != "Never done" {
		t.Fatalf("no sessions = %q, want Never done", got)
	}
	if got := RecentFrequency(sessionsAt(now, 0), now); got != "Need more data" {
		t.Fatalf("one session = %q, want Need more data", got)
	}
	// Two sessions with identical timestamps must not divide by zero.
	if got := RecentFrequency(sessionsAt(now, time.Hour, time.Hour), now); got != "Need more data" {
		t.Fatalf("identical timestamps = %q, want Need more data", got)
	}
}

func TestRecentFrequencyTwoSessions(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	week := 7 * 24 * time.Hour

	if got := RecentFrequency(sessionsAt(now, 0, week), now); got != "Weekly" {
		t.Fatalf("7d apart = %q, want Weekly", got)
	}
	if got := RecentFrequency(sessionsAt(now, 0, 24*time.Hour), now); got != "Daily" {
		t.Fatalf("1d apart = %q, want Daily", got)
	}
}

func TestRecentFrequencyWeightedAverage(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	halfWeek := 3*24*time.Hour + 12*time.Hour

	// Both intervals are exactly 3.5 days, so the weighted average is 3.5
	// days regardless of the decay weights: 2 per week.
	got := RecentFrequency(sessionsAt(now, 0, halfWeek, 2*halfWeek), now)
	if got != "2/week" {
		t.Fatalf("3.5d cadence = %q, want 2/week", got)
	}
}

func TestRecentFrequencyWeightingFavorsRecent(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	day := 24 * time.Hour

	// Intervals of 1d (fresh) and 14d (a day older). The plain average is
	// 7.5d (0.93/week, below the weekly band); the recency weighting pulls
	// the estimate to ~7.27d (0.96/week), which lands in the weekly band.
	sessions := sessionsAt(now, 0, day, 15*day)
	got := RecentFrequency(sessions, now)
	if got != "Weekly" {
		t.Fatalf("recency-weighted estimate = %q, want Weekly", got)
	}
}

func TestFormatWeeklyRateBands(t *testing.T) {
	tests := []struct {
		rate float64
		want string
	}{
		{14, "2/day"},
		{7, "Daily"},
		{6.5, "Daily"},
		{3, "3/week"},
		{1, "Weekly"},
		{0.25, "Monthly"}, // ~1.07/month
		{0.5, "2/month"},
		{0.04, "2/year"},
		{0.002, "Rarely"},
	}
	for _, tc := range tests {
		if got := formatWeeklyRate(tc.rate); got != tc.want {
			t.Fatalf("formatWeeklyRate(%v)=%q, want %q", tc.rate, got, tc.want)
		}
	}
}
