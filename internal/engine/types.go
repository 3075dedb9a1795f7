package engine

import (
	"strings"

	"github.com/octagorm/priorities/internal/storage"
)

// MaxEnergy is the top of the 0-3 scale used for both energy levels and costs.
const MaxEnergy = 3

// MinCurvePoints is the threshold below which a stored curve is treated as
// unusable and the activity falls back to legacy frequency scoring.
const MinCurvePoints = 2

type HourTier string

const (
	TierPreferred  HourTier = "preferred"
	TierPossible   HourTier = "possible"
	TierImpossible HourTier = "impossible"
)

func (t HourTier) IsValid() bool {
	switch t {
	case TierPreferred, TierPossible, TierImpossible:
		return true
	default:
		return false
	}
}

// ParseHourTier parses a stored tier string. Unknown values degrade to
// "possible" rather than failing.
func ParseHourTier(input string) HourTier {
	t := HourTier(strings.TrimSpace(strings.ToLower(input)))
	if t.IsValid() {
		return t
	}
	return TierPossible
}

// TierAt returns the tier for the given hour, defaulting to "possible" when
// the stored array is short or malformed.
func TierAt(a *storage.Activity, hour int) HourTier {
	if hour < 0 || hour >= len(a.HourTiers) {
		return TierPossible
	}
	return ParseHourTier(a.HourTiers[hour])
}

// HasPreferredHour reports whether the activity defines any preferred window.
func HasPreferredHour(a *storage.Activity) bool {
	for _, t := range a.HourTiers {
		if ParseHourTier(t) == TierPreferred {
			return true
		}
	}
	return false
}

// DefaultHourTiers returns a 24-entry all-"possible" tier array.
func DefaultHourTiers() []string {
	tiers := make([]string, 24)
	for i := range tiers {
		tiers[i] = string(TierPossible)
	}
	return tiers
}

// Frequency types for the legacy model.
const (
	FreqDaily     = "daily"
	FreqWeekly    = "weekly"
	FreqPerPeriod = "per_period"
	FreqFreeform  = "freeform"
)

func ValidFrequencyType(t string) bool {
	switch t {
	case FreqDaily, FreqWeekly, FreqPerPeriod, FreqFreeform:
		return true
	default:
		return false
	}
}

// ScoringPolicy is the closed set of scoring models. An activity is
// curve-based iff its priority curve has at least MinCurvePoints points;
// everything else scores through the legacy frequency/cooldown model.
type ScoringPolicy interface {
	scoringPolicy()
}

type CurvePolicy struct {
	Points []storage.CurvePoint
}

type LegacyPolicy struct {
	Frequency     storage.TargetFrequency
	CooldownHours float64 // 0 when unset
}

func (CurvePolicy) scoringPolicy()  {}
func (LegacyPolicy) scoringPolicy() {}

// PolicyFor dispatches an activity onto one of the two scoring models. Both
// models coexist indefinitely; older activities only carry the legacy fields.
func PolicyFor(a *storage.Activity) ScoringPolicy {
	if len(a.PriorityCurve) >= MinCurvePoints {
		return CurvePolicy{Points: a.PriorityCurve}
	}
	cd := 0.0
	if a.CooldownHours != nil {
		cd = *a.CooldownHours
	}
	return LegacyPolicy{Frequency: a.TargetFrequency, CooldownHours: cd}
}
