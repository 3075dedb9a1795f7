package engine

import (
	"math"
	"testing"

	"github.com/octagorm/priorities/internal/storage"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestInterpolateCurveBasics(t *testing.T) {
	curve := []storage.CurvePoint{{Days: 0, Priority: 0}, {Days: 10, Priority: 1}}

	if got := InterpolateCurve(5, curve); !almostEqual(got, 0.5) {
		t.Fatalf("InterpolateCurve(5)=%v, want 0.5", got)
	}
	if got := InterpolateCurve(-1, curve); !almostEqual(got, InterpolateCurve(0, curve)) {
		t.Fatalf("left extrapolation=%v, want value at x=0", got)
	}
	if got := InterpolateCurve(100, curve); !almostEqual(got, InterpolateCurve(10, curve)) {
		t.Fatalf("right extrapolation=%v, want value at x=10", got)
	}
}

func TestInterpolateCurveUnsortedInput(t *testing.T) {
	// Storage does not guarantee point order.
	curve := []storage.CurvePoint{{Days: 10, Priority: 1}, {Days: 0, Priority: 0}, {Days: 4, Priority: 2}}

	if got := InterpolateCurve(2, curve); !almostEqual(got, 1) {
		t.Fatalf("InterpolateCurve(2)=%v, want 1", got)
	}
	if got := InterpolateCurve(7, curve); !almostEqual(got, 1.5) {
		t.Fatalf("InterpolateCurve(7)=%v, want 1.5", got)
	}
}

func TestInterpolateCurveDegenerate(t *testing.T) {
	if got := InterpolateCurve(5, nil); got != 0 {
		t.Fatalf("empty priority curve=%v, want 0", got)
	}
	single := []storage.CurvePoint{{Days: 3, Priority: 2}}
	if got := InterpolateCurve(100, single); !almostEqual(got, 2) {
		t.Fatalf("single-point curve=%v, want 2", got)
	}
}

func TestInterpolateHourly(t *testing.T) {
	if got := InterpolateHourly(12, nil); got != 1 {
		t.Fatalf("empty hourly curve=%v, want neutral 1", got)
	}

	points := []storage.HourlyPoint{{Hour: 8, Multiplier: 0}, {Hour: 12, Multiplier: 2}}
	if got := InterpolateHourly(10, points); !almostEqual(got, 1) {
		t.Fatalf("InterpolateHourly(10)=%v, want 1", got)
	}
	if got := InterpolateHourly(0, points); !almostEqual(got, 0) {
		t.Fatalf("InterpolateHourly(0)=%v, want 0", got)
	}
	if got := InterpolateHourly(23, points); !almostEqual(got, 2) {
		t.Fatalf("InterpolateHourly(23)=%v, want 2", got)
	}
}

func TestCurveMax(t *testing.T) {
	curve := []storage.CurvePoint{{Days: 0, Priority: 0}, {Days: 1, Priority: 1}, {Days: 30, Priority: 1}}
	if got := curveMax(curve); !almostEqual(got, 1) {
		t.Fatalf("curveMax=%v, want 1", got)
	}
}
