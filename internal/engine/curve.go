package engine

import (
	"sort"

	"github.com/octagorm/priorities/internal/storage"
)

// InterpolateCurve evaluates a priority curve at daysSinceLast using
// piecewise-linear interpolation. Outside the control points the curve is
// flat (first/last point's priority). An empty curve evaluates to 0.
// Sorting is handled here; callers may pass points in any order.
func InterpolateCurve(daysSinceLast float64, points []storage.CurvePoint) float64 {
	if len(points) == 0 {
		return 0
	}
	sorted := make([]storage.CurvePoint, len(points))
	copy(sorted, points)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Days < sorted[j].Days })

	if daysSinceLast <= sorted[0].Days {
		return sorted[0].Priority
	}
	last := sorted[len(sorted)-1]
	if daysSinceLast >= last.Days {
		return last.Priority
	}

	for i := 0; i < len(sorted)-1; i++ {
		p0, p1 := sorted[i], sorted[i+1]
		if daysSinceLast >= p0.Days && daysSinceLast <= p1.Days {
			t := (daysSinceLast - p0.Days) / (p1.Days - p0.Days)
			return p0.Priority + t*(p1.Priority-p0.Priority)
		}
	}
	return last.Priority
}

// InterpolateHourly evaluates an hour-of-day multiplier curve. Same algorithm
// as InterpolateCurve; an empty curve evaluates to the neutral multiplier 1.
func InterpolateHourly(hour float64, points []storage.HourlyPoint) float64 {
	if len(points) == 0 {
		return 1
	}
	sorted := make([]storage.HourlyPoint, len(points))
	copy(sorted, points)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Hour < sorted[j].Hour })

	if hour <= sorted[0].Hour {
		return sorted[0].Multiplier
	}
	last := sorted[len(sorted)-1]
	if hour >= last.Hour {
		return last.Multiplier
	}

	for i := 0; i < len(sorted)-1; i++ {
		p0, p1 := sorted[i], sorted[i+1]
		if hour >= p0.Hour && hour <= p1.Hour {
			t := (hour - p0.Hour) / (p1.Hour - p0.Hour)
			return p0.Multiplier + t*(p1.Multiplier-p0.Multiplier)
		}
	}
	return last.Multiplier
}

// curveMax returns the highest priority across all control points. Used for
// never-done activities, which are treated as maximally due.
func curveMax(points []storage.CurvePoint) float64 {
	max := 0.0
	for i, p := range points {
		if i == 0 || p.Priority > max {
			max = p.Priority
		}
	}
	return max
}
