package engine

import (
	"context"

	"github.com/octagorm/priorities/internal/storage"
)

type seedActivity struct {
	Name          string
	Category      string
	Mental        int
	Physical      int
	Frequency     storage.TargetFrequency
	CooldownHours float64
	Notes         string
}

var defaultActivities = []seedActivity{
	{Name: "Deep work block", Category: "Projects", Mental: 3, Physical: 0, Frequency: storage.TargetFrequency{Type: FreqFreeform}, Notes: "Main project, full focus"},
	{Name: "Journaling", Category: "Writing", Mental: 2, Physical: 0, Frequency: storage.TargetFrequency{Type: FreqPerPeriod, TimesPerPeriod: 3, PeriodDays: 7}},
	{Name: "Reading", Category: "Reading", Mental: 1, Physical: 0, Frequency: storage.TargetFrequency{Type: FreqDaily}},
	{Name: "Instrument practice", Category: "Skills", Mental: 2, Physical: 0, Frequency: storage.TargetFrequency{Type: FreqDaily}},
	{Name: "Sketching", Category: "Skills", Mental: 2, Physical: 0, Frequency: storage.TargetFrequency{Type: FreqPerPeriod, TimesPerPeriod: 3, PeriodDays: 7}},
	{Name: "Meditation", Category: "Habits", Mental: 1, Physical: 0, Frequency: storage.TargetFrequency{Type: FreqDaily}},
	{Name: "Walk", Category: "Habits", Mental: 0, Physical: 2, Frequency: storage.TargetFrequency{Type: FreqDaily}},
	{Name: "Run", Category: "Exercise", Mental: 0, Physical: 3, Frequency: storage.TargetFrequency{Type: FreqPerPeriod, TimesPerPeriod: 3, PeriodDays: 7}, CooldownHours: 48},
	{Name: "Strength training", Category: "Exercise", Mental: 0, Physical: 3, Frequency: storage.TargetFrequency{Type: FreqPerPeriod, TimesPerPeriod: 2, PeriodDays: 7}, CooldownHours: 24},
	{Name: "Vacuuming", Category: "Chores", Mental: 0, Physical: 1, Frequency: storage.TargetFrequency{Type: FreqWeekly}, CooldownHours: 168},
}

// SeedDefaults inserts the starter catalog on an empty database. Each
// activity gets a priority curve derived from its frequency spec, so all of
// them score on the curve path.
func (s *Service) SeedDefaults(ctx context.Context) (int, error) {
	n, err := s.activities.Count(ctx)
	if err != nil {
		return 0, err
	}
	if n > 0 {
		return 0, nil
	}

	inserted := 0
	for _, sa := range defaultActivities {
		var cd *float64
		if sa.CooldownHours > 0 {
			hours := sa.CooldownHours
			cd = &hours
		}
		_, err := s.CreateActivity(ctx, CreateActivityInput{
			Name:               sa.Name,
			Category:           sa.Category,
			MentalEnergyCost:   sa.Mental,
			PhysicalEnergyCost: sa.Physical,
			Frequency:          sa.Frequency,
			CooldownHours:      cd,
			Notes:              sa.Notes,
		})
		if err != nil {
			return inserted, err
		}
		inserted++
	}
	return inserted, nil
}
