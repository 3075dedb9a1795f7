package engine

import (
	"sort"
	"time"
)

// DaySeed derives the tiebreaker seed from the local calendar date, so
// equal-priority activities keep a stable order across a day's many renders
// and reshuffle the next day.
func DaySeed(t time.Time) uint32 {
	y, m, d := t.Date()
	return uint32(y*10000 + int(m)*100 + d)
}

// mulberry32 is a small deterministic PRNG producing values in [0,1).
// Cheap enough to call once per available activity per render.
func mulberry32(seed uint32) func() float64 {
	state := seed
	return func() float64 {
		state += 0x6D2B79F5
		z := state
		z = (z ^ (z >> 15)) * (z | 1)
		z ^= z + (z^(z>>7))*(z|61)
		return float64(z^(z>>14)) / 4294967296.0
	}
}

// dailyJitter assigns each activity id a value in [0,1), stable for a given
// seed. Ids are visited in sorted order so the assignment does not depend on
// input ordering.
func dailyJitter(seed uint32, ids []int64) map[int64]float64 {
	sorted := make([]int64, len(ids))
	copy(sorted, ids)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })

	next := mulberry32(seed)
	out := make(map[int64]float64, len(sorted))
	for _, id := range sorted {
		if _, ok := out[id]; ok {
			continue
		}
		out[id] = next()
	}
	return out
}
