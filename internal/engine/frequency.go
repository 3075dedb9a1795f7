package engine

import (
	"math"

	"github.com/octagorm/priorities/internal/storage"
)

// FrequencyToCurve derives a default priority curve from a coarse frequency
// spec. Used when seeding activities that have not been given an explicit
// curve. A cooldown shifts every point right by cooldownHours/24 days,
// creating a zero-priority dead zone before the curve becomes active.
func FrequencyToCurve(freq storage.TargetFrequency, cooldownHours float64) []storage.CurvePoint {
	var base []storage.CurvePoint
	switch freq.Type {
	case FreqDaily:
		base = []storage.CurvePoint{{Days: 0, Priority: 0}, {Days: 1, Priority: 1}}
	case FreqWeekly:
		base = []storage.CurvePoint{{Days: 0, Priority: 0}, {Days: 7, Priority: 1}}
	case FreqPerPeriod:
		period := freq.PeriodDays
		times := freq.TimesPerPeriod
		if period <= 0 {
			period = 7
		}
		if times <= 0 {
			times = 1
		}
		interval := round1(float64(period) / float64(times))
		base = []storage.CurvePoint{{Days: 0, Priority: 0}, {Days: interval, Priority: 1}}
	default:
		// freeform (and anything unrecognized): open-ended encouragement curve.
		base = []storage.CurvePoint{
			{Days: 0, Priority: 0},
			{Days: 14, Priority: 0.5},
			{Days: 30, Priority: 1},
		}
	}

	cooldownDays := cooldownHours / 24
	if cooldownDays > 0 {
		shifted := make([]storage.CurvePoint, len(base))
		for i, p := range base {
			shifted[i] = storage.CurvePoint{Days: round1(p.Days + cooldownDays), Priority: p.Priority}
		}
		return shifted
	}
	return base
}

func round1(x float64) float64 {
	return math.Round(x*10) / 10
}
