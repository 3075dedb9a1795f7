package storage

import "time"

// CurvePoint maps days-since-last-done to an urgency value. Stored as JSON on
// the activity row; not guaranteed sorted.
type CurvePoint struct {
	Days     float64 `json:"days"`
	Priority float64 `json:"priority"`
}

// HourlyPoint maps an hour of day (0-23) to a multiplicative suitability factor.
type HourlyPoint struct {
	Hour       float64 `json:"hour"`
	Multiplier float64 `json:"multiplier"`
}

// TargetFrequency is the coarse legacy frequency spec. Superseded by the
// priority curve when one is present, but kept forever for older activities.
type TargetFrequency struct {
	Type           string `json:"type"` // daily | weekly | per_period | freeform
	TimesPerPeriod int    `json:"timesPerPeriod,omitempty"`
	PeriodDays     int    `json:"periodDays,omitempty"`
}

type Activity struct {
	ID                 int64
	Name               string
	Category           string
	MentalEnergyCost   int
	PhysicalEnergyCost int
	TargetFrequency    TargetFrequency
	CooldownHours      *float64
	PriorityCurve      []CurvePoint  // nil or <2 points means "use legacy scoring"
	HourTiers          []string      // 24 entries: preferred | possible | impossible
	HourlyCurve        []HourlyPoint // supersedes HourTiers when >=2 points
	IsActive           bool
	IsTemporary        bool
	PausedUntil        *time.Time
	Notes              string
	CreatedAt          time.Time
}

// Session is an immutable completion record. The energy costs are snapshots
// taken at logging time and may differ from the activity's current costs.
type Session struct {
	ID                 int64
	ActivityID         int64
	StartedAt          time.Time
	MentalCostAtTime   int
	PhysicalCostAtTime int
	Note               *string
	DurationMs         *int64
}

// EnergyCostChange records an edit to an activity's energy costs.
type EnergyCostChange struct {
	ID                   int64
	ActivityID           int64
	ChangedAt            time.Time
	PreviousMentalCost   int
	NewMentalCost        int
	PreviousPhysicalCost int
	NewPhysicalCost      int
	Reason               *string
}
