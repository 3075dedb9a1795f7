package engine

import (
	"math"
	"sort"
	"time"

	"github.com/octagorm/priorities/internal/storage"
)

type Section string

const (
	SectionAvailable Section = "available"
	SectionCooldown  Section = "cooldown"
	SectionWrongTime Section = "wrong_time"
	SectionTooTired  Section = "too_tired"
)

// scoreEpsilon is the band inside which two scores count as tied and the
// daily jitter decides their order.
const scoreEpsilon = 0.001

// energyWasteBase is the per-point penalty for spending high energy on a
// low-cost activity.
const energyWasteBase = 0.75

// possibleHourDampening applies when an activity has preferred hours defined
// but the current hour is merely possible.
const possibleHourDampening = 0.5

// PrioritizedActivity wraps an activity with its computed placement. Derived
// on every pass, never persisted.
type PrioritizedActivity struct {
	Activity          storage.Activity
	Section           Section
	Score             float64
	LastSession       *storage.Session
	TimeSinceLast     *time.Duration
	CooldownRemaining time.Duration // set only by PrioritizeWithCooldown
	SessionCount      int
	RecentFrequency   string
}

// Input carries everything the engine needs. Now and Hour are explicit so the
// computation stays deterministic under test; the engine never reads a clock.
type Input struct {
	Activities     []storage.Activity
	Sessions       []storage.Session
	MentalEnergy   int
	PhysicalEnergy int
	Hour           int
	Now            time.Time
}

// Result is the canonical three-bucket partition. Cooldowns surface as the
// zero-priority region of the day curve, so a cooled-down activity sits at
// the bottom of Available rather than in a bucket of its own.
type Result struct {
	Available []PrioritizedActivity
	WrongTime []PrioritizedActivity
	TooTired  []PrioritizedActivity
}

// LegacyResult is the older four-bucket partition that splits cooldowns out.
type LegacyResult struct {
	Available []PrioritizedActivity
	Cooldown  []PrioritizedActivity
	WrongTime []PrioritizedActivity
	TooTired  []PrioritizedActivity
}

// Prioritize partitions and ranks the catalog. Pure and synchronous: same
// inputs always yield the same output (the daily tiebreaker depends only on
// Now's calendar date).
func Prioritize(in Input) Result {
	hour := clampHour(in.Hour)
	byActivity := groupSessions(in.Sessions)

	var res Result
	for i := range in.Activities {
		item := evaluate(&in.Activities[i], byActivity[in.Activities[i].ID], in, hour, false)
		switch item.Section {
		case SectionTooTired:
			res.TooTired = append(res.TooTired, item)
		case SectionWrongTime:
			res.WrongTime = append(res.WrongTime, item)
		default:
			res.Available = append(res.Available, item)
		}
	}

	sortAvailable(res.Available, in.Now)
	return res
}

// PrioritizeWithCooldown is the legacy engine, retained for consumers that
// still render a separate "on cooldown" section. New callers should use
// Prioritize.
func PrioritizeWithCooldown(in Input) LegacyResult {
	hour := clampHour(in.Hour)
	byActivity := groupSessions(in.Sessions)

	var res LegacyResult
	for i := range in.Activities {
		item := evaluate(&in.Activities[i], byActivity[in.Activities[i].ID], in, hour, true)
		switch item.Section {
		case SectionTooTired:
			res.TooTired = append(res.TooTired, item)
		case SectionWrongTime:
			res.WrongTime = append(res.WrongTime, item)
		case SectionCooldown:
			res.Cooldown = append(res.Cooldown, item)
		default:
			res.Available = append(res.Available, item)
		}
	}

	sort.SliceStable(res.Available, func(i, j int) bool {
		return res.Available[i].Score > res.Available[j].Score
	})
	return res
}

// evaluate runs the per-activity decision sequence and lands the activity in
// exactly one section. cooldownBucket selects the legacy routing where
// cooled-down activities get their own section instead of a zero score.
func evaluate(a *storage.Activity, group []storage.Session, in Input, hour int, cooldownBucket bool) PrioritizedActivity {
	item := PrioritizedActivity{
		Activity:        *a,
		Section:         SectionAvailable,
		SessionCount:    len(group),
		RecentFrequency: RecentFrequency(group, in.Now),
	}
	if len(group) > 0 {
		last := group[0]
		item.LastSession = &last
		since := in.Now.Sub(last.StartedAt)
		item.TimeSinceLast = &since
	}

	// 1. Energy filter: hard, absolute.
	if in.MentalEnergy < a.MentalEnergyCost || in.PhysicalEnergy < a.PhysicalEnergyCost {
		item.Section = SectionTooTired
		return item
	}

	// 2. Time-of-day filter. A valid hourly curve supersedes the tier array.
	hourlyCurveActive := len(a.HourlyCurve) >= MinCurvePoints
	hourMultiplier := 1.0
	tier := TierAt(a, hour)
	if hourlyCurveActive {
		hourMultiplier = InterpolateHourly(float64(hour), a.HourlyCurve)
		if hourMultiplier <= 0 {
			item.Section = SectionWrongTime
			return item
		}
	} else if tier == TierImpossible {
		item.Section = SectionWrongTime
		return item
	}

	// 3. Energy-match multiplier: bias toward activities that use the
	// available energy instead of banking it.
	energyWaste := (in.MentalEnergy - a.MentalEnergyCost) + (in.PhysicalEnergy - a.PhysicalEnergyCost)
	energyMatch := math.Pow(energyWasteBase, float64(energyWaste))

	// 4. Base score, per scoring policy.
	var score float64
	switch p := PolicyFor(a).(type) {
	case CurvePolicy:
		if item.TimeSinceLast == nil {
			// Never done: maximally due.
			score = curveMax(p.Points)
		} else {
			days := item.TimeSinceLast.Hours() / 24
			if cooldownBucket {
				if remaining, ok := curveCooldownRemaining(p.Points, days); ok {
					item.Section = SectionCooldown
					item.CooldownRemaining = remaining
					return item
				}
			}
			score = InterpolateCurve(days, p.Points)
		}
	case LegacyPolicy:
		if p.CooldownHours > 0 && item.TimeSinceLast != nil {
			cooldown := time.Duration(p.CooldownHours * float64(time.Hour))
			if *item.TimeSinceLast < cooldown {
				if cooldownBucket {
					item.Section = SectionCooldown
					item.CooldownRemaining = cooldown - *item.TimeSinceLast
					return item
				}
				// Three-bucket model: on cooldown means available but
				// currently worthless.
				item.Score = 0
				return item
			}
		}
		score = legacyScore(p, item.TimeSinceLast, len(group))
	}

	// 5. Time-of-day dampening.
	if hourlyCurveActive {
		score *= hourMultiplier
	} else if HasPreferredHour(a) && tier == TierPossible {
		score *= possibleHourDampening
	}

	// 6. Energy-match multiplier.
	score *= energyMatch

	item.Score = score
	return item
}

// legacyScore implements the frequency/cooldown scoring model used by
// activities without a usable priority curve.
func legacyScore(p LegacyPolicy, timeSinceLast *time.Duration, sessionCount int) float64 {
	score := 0.0
	expected := expectedInterval(p.Frequency)

	if timeSinceLast != nil {
		since := *timeSinceLast
		if expected > 0 {
			score += float64(since) / float64(expected) * 10
		} else {
			// Freeform: gentle open-ended drift upward.
			score += since.Hours() / 24 * 0.5
		}

		decay := decayConstant(expected)
		score -= math.Exp(-float64(since)/float64(decay)) * 5
	}

	if sessionCount == 0 {
		score += 5
	}
	return score
}

// expectedInterval maps a legacy frequency spec to its target gap. Freeform
// has no target and returns 0; unknown types are treated as weekly.
func expectedInterval(freq storage.TargetFrequency) time.Duration {
	switch freq.Type {
	case FreqDaily:
		return 24 * time.Hour
	case FreqWeekly:
		return 7 * 24 * time.Hour
	case FreqPerPeriod:
		if freq.TimesPerPeriod > 0 && freq.PeriodDays > 0 {
			return time.Duration(float64(freq.PeriodDays) * 24 * float64(time.Hour) / float64(freq.TimesPerPeriod))
		}
		return 7 * 24 * time.Hour
	case FreqFreeform:
		return 0
	default:
		return 7 * 24 * time.Hour
	}
}

func decayConstant(expected time.Duration) time.Duration {
	if expected <= 0 {
		expected = 7 * 24 * time.Hour
	}
	return time.Duration(float64(expected) * 0.8)
}

// curveCooldownRemaining reports whether the curve currently sits in its
// zero-priority lead-in, and if so how long until it climbs above zero.
func curveCooldownRemaining(points []storage.CurvePoint, daysSinceLast float64) (time.Duration, bool) {
	if InterpolateCurve(daysSinceLast, points) > 0 {
		return 0, false
	}
	sorted := make([]storage.CurvePoint, len(points))
	copy(sorted, points)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Days < sorted[j].Days })
	for _, p := range sorted {
		if p.Priority > 0 && p.Days > daysSinceLast {
			remainingDays := p.Days - daysSinceLast
			return time.Duration(remainingDays * 24 * float64(time.Hour)), true
		}
	}
	return 0, false
}

// sortAvailable orders by descending score, breaking near-ties (<0.001 apart)
// with the seeded daily jitter so equal-priority activities rotate day to day
// but hold still within one.
func sortAvailable(items []PrioritizedActivity, now time.Time) {
	ids := make([]int64, len(items))
	for i := range items {
		ids[i] = items[i].Activity.ID
	}
	jitter := dailyJitter(DaySeed(now), ids)

	sort.SliceStable(items, func(i, j int) bool {
		if math.Abs(items[i].Score-items[j].Score) < scoreEpsilon {
			return jitter[items[i].Activity.ID] > jitter[items[j].Activity.ID]
		}
		return items[i].Score > items[j].Score
	})
}

func clampHour(h int) int {
	if h < 0 {
		return 0
	}
	if h > 23 {
		return 23
	}
	return h
}

// groupSessions buckets sessions by activity id, newest first within each
// bucket.
func groupSessions(sessions []storage.Session) map[int64][]storage.Session {
	byActivity := make(map[int64][]storage.Session)
	for _, s := range sessions {
		byActivity[s.ActivityID] = append(byActivity[s.ActivityID], s)
	}
	for id := range byActivity {
		group := byActivity[id]
		sort.Slice(group, func(i, j int) bool { return group[i].StartedAt.After(group[j].StartedAt) })
	}
	return byActivity
}
