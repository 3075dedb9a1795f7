package engine

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/octagorm/priorities/internal/storage"
)

// recentSessionLimit bounds how much history feeds a scoring pass. Plenty for
// a catalog of tens of activities.
const recentSessionLimit = 100

const (
	settingMentalEnergy   = "mental_energy"
	settingPhysicalEnergy = "physical_energy"

	defaultMentalEnergy   = 2
	defaultPhysicalEnergy = 1
)

type Service struct {
	db          *sql.DB
	activities  *storage.ActivityRepo
	sessions    *storage.SessionRepo
	costChanges *storage.CostChangeRepo
	settings    *storage.SettingsRepo
}

func NewService(db *sql.DB) *Service {
	return &Service{
		db:          db,
		activities:  storage.NewActivityRepo(db),
		sessions:    storage.NewSessionRepo(db),
		costChanges: storage.NewCostChangeRepo(db),
		settings:    storage.NewSettingsRepo(db),
	}
}

func (s *Service) ActivityRepo() *storage.ActivityRepo     { return s.activities }
func (s *Service) SessionRepo() *storage.SessionRepo       { return s.sessions }
func (s *Service) CostChangeRepo() *storage.CostChangeRepo { return s.costChanges }

func normalizeName(name string) (string, error) {
	n := strings.TrimSpace(name)
	if n == "" {
		return "", errors.New("name is required")
	}
	return n, nil
}

func validateCost(label string, cost int) error {
	if cost < 0 || cost > MaxEnergy {
		return fmt.Errorf("%s cost must be between 0 and %d", label, MaxEnergy)
	}
	return nil
}

type CreateActivityInput struct {
	Name               string
	Category           string
	MentalEnergyCost   int
	PhysicalEnergyCost int
	Frequency          storage.TargetFrequency
	CooldownHours      *float64
	PriorityCurve      []storage.CurvePoint
	HourTiers          []string
	HourlyCurve        []storage.HourlyPoint
	IsTemporary        bool
	Notes              string
}

// CreateActivity stores a new activity. When no explicit priority curve is
// given, a default one is derived from the frequency spec so new activities
// score on the curve path from day one.
func (s *Service) CreateActivity(ctx context.Context, in CreateActivityInput) (int64, error) {
	name, err := normalizeName(in.Name)
	if err != nil {
		return 0, err
	}
	if err := validateCost("mental", in.MentalEnergyCost); err != nil {
		return 0, err
	}
	if err := validateCost("physical", in.PhysicalEnergyCost); err != nil {
		return 0, err
	}
	if !ValidFrequencyType(in.Frequency.Type) {
		return 0, fmt.Errorf("invalid frequency type: %q", in.Frequency.Type)
	}

	curve := in.PriorityCurve
	if len(curve) < MinCurvePoints {
		cd := 0.0
		if in.CooldownHours != nil {
			cd = *in.CooldownHours
		}
		curve = FrequencyToCurve(in.Frequency, cd)
	}
	tiers := in.HourTiers
	if len(tiers) != 24 {
		tiers = DefaultHourTiers()
	}

	return s.activities.Insert(ctx, storage.ActivityInsert{
		Name:               name,
		Category:           in.Category,
		MentalEnergyCost:   in.MentalEnergyCost,
		PhysicalEnergyCost: in.PhysicalEnergyCost,
		TargetFrequency:    in.Frequency,
		CooldownHours:      in.CooldownHours,
		PriorityCurve:      curve,
		HourTiers:          tiers,
		HourlyCurve:        in.HourlyCurve,
		IsTemporary:        in.IsTemporary,
		Notes:              in.Notes,
	})
}

// UpdateActivity patches an activity. Cost changes are recorded in the audit
// table before the patch lands.
func (s *Service) UpdateActivity(ctx context.Context, id int64, in storage.ActivityUpdate, reason *string) error {
	existing, err := s.activities.Get(ctx, id)
	if err != nil {
		return err
	}
	if existing == nil {
		return fmt.Errorf("activity %d not found", id)
	}

	if in.MentalEnergyCost != nil {
		if err := validateCost("mental", *in.MentalEnergyCost); err != nil {
			return err
		}
	}
	if in.PhysicalEnergyCost != nil {
		if err := validateCost("physical", *in.PhysicalEnergyCost); err != nil {
			return err
		}
	}

	newMental := existing.MentalEnergyCost
	newPhysical := existing.PhysicalEnergyCost
	if in.MentalEnergyCost != nil {
		newMental = *in.MentalEnergyCost
	}
	if in.PhysicalEnergyCost != nil {
		newPhysical = *in.PhysicalEnergyCost
	}
	if newMental != existing.MentalEnergyCost || newPhysical != existing.PhysicalEnergyCost {
		_, err := s.costChanges.Insert(ctx, storage.EnergyCostChange{
			ActivityID:           id,
			PreviousMentalCost:   existing.MentalEnergyCost,
			NewMentalCost:        newMental,
			PreviousPhysicalCost: existing.PhysicalEnergyCost,
			NewPhysicalCost:      newPhysical,
			Reason:               reason,
		})
		if err != nil {
			return err
		}
	}

	return s.activities.Update(ctx, id, in)
}

func (s *Service) Archive(ctx context.Context, id int64) error {
	return s.setActive(ctx, id, false)
}

func (s *Service) Unarchive(ctx context.Context, id int64) error {
	return s.setActive(ctx, id, true)
}

func (s *Service) setActive(ctx context.Context, id int64, active bool) error {
	a, err := s.activities.Get(ctx, id)
	if err != nil {
		return err
	}
	if a == nil {
		return fmt.Errorf("activity %d not found", id)
	}
	return s.activities.SetActive(ctx, id, active)
}

func (s *Service) Pause(ctx context.Context, id int64, weeks int, now time.Time) error {
	if weeks < 1 {
		return errors.New("pause requires at least one week")
	}
	a, err := s.activities.Get(ctx, id)
	if err != nil {
		return err
	}
	if a == nil {
		return fmt.Errorf("activity %d not found", id)
	}
	until := now.Add(time.Duration(weeks) * 7 * 24 * time.Hour)
	return s.activities.SetPausedUntil(ctx, id, &until)
}

func (s *Service) Unpause(ctx context.Context, id int64) error {
	return s.activities.SetPausedUntil(ctx, id, nil)
}

// LogSession records a completion, snapshotting the activity's current costs.
func (s *Service) LogSession(ctx context.Context, activityID int64, note *string, durationMs *int64, at time.Time) (int64, error) {
	a, err := s.activities.Get(ctx, activityID)
	if err != nil {
		return 0, err
	}
	if a == nil {
		return 0, fmt.Errorf("activity %d not found", activityID)
	}

	return s.sessions.Insert(ctx, storage.SessionInsert{
		ActivityID:         activityID,
		StartedAt:          at,
		MentalCostAtTime:   a.MentalEnergyCost,
		PhysicalCostAtTime: a.PhysicalEnergyCost,
		Note:               note,
		DurationMs:         durationMs,
	})
}

func (s *Service) DeleteSession(ctx context.Context, id int64) error {
	return s.sessions.Delete(ctx, id)
}

// Energy returns the persisted energy levels, defaulting when unset.
func (s *Service) Energy(ctx context.Context) (mental, physical int, err error) {
	mental, err = s.energySetting(ctx, settingMentalEnergy, defaultMentalEnergy)
	if err != nil {
		return 0, 0, err
	}
	physical, err = s.energySetting(ctx, settingPhysicalEnergy, defaultPhysicalEnergy)
	if err != nil {
		return 0, 0, err
	}
	return mental, physical, nil
}

func (s *Service) energySetting(ctx context.Context, key string, fallback int) (int, error) {
	v, ok, err := s.settings.Get(ctx, key)
	if err != nil {
		return 0, err
	}
	if !ok {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 || n > MaxEnergy {
		return fallback, nil
	}
	return n, nil
}

// SetEnergy persists both levels atomically.
func (s *Service) SetEnergy(ctx context.Context, mental, physical int) error {
	if err := validateCost("mental", mental); err != nil {
		return err
	}
	if err := validateCost("physical", physical); err != nil {
		return err
	}
	return storage.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		for key, v := range map[string]int{
			settingMentalEnergy:   mental,
			settingPhysicalEnergy: physical,
		} {
			_, err := tx.ExecContext(ctx, `
				INSERT INTO settings (key, value) VALUES (?, ?)
				ON CONFLICT(key) DO UPDATE SET value = excluded.value
			`, key, strconv.Itoa(v))
			if err != nil {
				return fmt.Errorf("settings set: %w", err)
			}
		}
		return nil
	})
}

// Snapshot is one full scoring pass plus the activities excluded from it
// because they are paused.
type Snapshot struct {
	Result
	Paused []storage.Activity
}

// PrioritizeNow loads the active catalog and recent history and runs the pure
// engine. Paused activities are filtered out before scoring and reported
// separately.
func (s *Service) PrioritizeNow(ctx context.Context, mental, physical, hour int, now time.Time) (*Snapshot, error) {
	all, err := s.activities.ListActive(ctx)
	if err != nil {
		return nil, err
	}
	sessions, err := s.sessions.ListRecent(ctx, recentSessionLimit)
	if err != nil {
		return nil, err
	}

	var active, paused []storage.Activity
	for _, a := range all {
		if a.PausedUntil != nil && a.PausedUntil.After(now) {
			paused = append(paused, a)
			continue
		}
		active = append(active, a)
	}

	res := Prioritize(Input{
		Activities:     active,
		Sessions:       sessions,
		MentalEnergy:   mental,
		PhysicalEnergy: physical,
		Hour:           hour,
		Now:            now,
	})

	return &Snapshot{Result: res, Paused: paused}, nil
}
