package engine

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/octagorm/priorities/internal/storage"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	db, err := storage.Open(context.Background(), filepath.Join(t.TempDir(), "priorities.db"))
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return NewService(db)
}

func TestCreateActivityDerivesCurve(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	id, err := svc.CreateActivity(ctx, CreateActivityInput{
		Name:      "  Reading  ",
		Category:  "Reading",
		Frequency: storage.TargetFrequency{Type: FreqWeekly},
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	a, err := svc.ActivityRepo().Get(ctx, id)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if a == nil {
		t.Fatalf("activity not found after insert")
	}
	if a.Name != "Reading" {
		t.Fatalf("name=%q, want trimmed Reading", a.Name)
	}
	want := []storage.CurvePoint{{Days: 0, Priority: 0}, {Days: 7, Priority: 1}}
	if len(a.PriorityCurve) != len(want) {
		t.Fatalf("curve has %d points, want %d", len(a.PriorityCurve), len(want))
	}
	for i := range want {
		if !almostEqual(a.PriorityCurve[i].Days, want[i].Days) || !almostEqual(a.PriorityCurve[i].Priority, want[i].Priority) {
			t.Fatalf("curve point %d = %+v, want %+v", i, a.PriorityCurve[i], want[i])
		}
	}
	if len(a.HourTiers) != 24 {
		t.Fatalf("hour tiers length=%d, want 24", len(a.HourTiers))
	}
	if !a.IsActive {
		t.Fatalf("new activity should be active")
	}
}

func TestCreateActivityValidation(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	cases := []CreateActivityInput{
		{Name: "   ", Frequency: storage.TargetFrequency{Type: FreqDaily}},
		{Name: "x", MentalEnergyCost: 4, Frequency: storage.TargetFrequency{Type: FreqDaily}},
		{Name: "x", PhysicalEnergyCost: -1, Frequency: storage.TargetFrequency{Type: FreqDaily}},
		{Name: "x", Frequency: storage.TargetFrequency{Type: "hourly"}},
	}
	for i, in := range cases {
		if _, err := svc.CreateActivity(ctx, in); err == nil {
			t.Fatalf("case %d: expected error, got none", i)
		}
	}
}

func TestLogSessionAndPrioritizeNow(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	id, err := svc.CreateActivity(ctx, CreateActivityInput{
		Name:             "Journaling",
		MentalEnergyCost: 2,
		Frequency:        storage.TargetFrequency{Type: FreqDaily},
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if _, err := svc.LogSession(ctx, id, nil, nil, now.Add(-12*time.Hour)); err != nil {
		t.Fatalf("log session: %v", err)
	}

	snap, err := svc.PrioritizeNow(ctx, 3, 3, 12, now)
	if err != nil {
		t.Fatalf("prioritize: %v", err)
	}
	if len(snap.Available) != 1 {
		t.Fatalf("expected one available activity, got %+v", snap.Result)
	}
	got := snap.Available[0]
	if got.SessionCount != 1 {
		t.Fatalf("session count=%d, want 1", got.SessionCount)
	}
	if got.TimeSinceLast == nil || *got.TimeSinceLast != 12*time.Hour {
		t.Fatalf("time since last=%v, want 12h", got.TimeSinceLast)
	}
}

func TestLogSessionSnapshotsCosts(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	id, err := svc.CreateActivity(ctx, CreateActivityInput{
		Name:               "Run",
		PhysicalEnergyCost: 3,
		Frequency:          storage.TargetFrequency{Type: FreqWeekly},
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := svc.LogSession(ctx, id, nil, nil, time.Now().UTC()); err != nil {
		t.Fatalf("log session: %v", err)
	}

	last, err := svc.SessionRepo().Last(ctx, id)
	if err != nil {
		t.Fatalf("last session: %v", err)
	}
	if last == nil {
		t.Fatalf("no session recorded")
	}
	if last.MentalCostAtTime != 0 || last.PhysicalCostAtTime != 3 {
		t.Fatalf("snapshot costs=%d/%d, want 0/3", last.MentalCostAtTime, last.PhysicalCostAtTime)
	}
}

func TestLogSessionUnknownActivity(t *testing.T) {
	svc := newTestService(t)
	if _, err := svc.LogSession(context.Background(), 999, nil, nil, time.Now().UTC()); err == nil {
		t.Fatalf("expected error for unknown activity")
	}
}

func TestEnergyDefaultsAndPersistence(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	mental, physical, err := svc.Energy(ctx)
	if err != nil {
		t.Fatalf("energy: %v", err)
	}
	if mental != defaultMentalEnergy || physical != defaultPhysicalEnergy {
		t.Fatalf("defaults=%d/%d, want %d/%d", mental, physical, defaultMentalEnergy, defaultPhysicalEnergy)
	}

	if err := svc.SetEnergy(ctx, 3, 2); err != nil {
		t.Fatalf("set energy: %v", err)
	}
	mental, physical, err = svc.Energy(ctx)
	if err != nil {
		t.Fatalf("energy after set: %v", err)
	}
	if mental != 3 || physical != 2 {
		t.Fatalf("energy=%d/%d, want 3/2", mental, physical)
	}

	if err := svc.SetEnergy(ctx, 5, 0); err == nil {
		t.Fatalf("expected error for out-of-range energy")
	}
}

func TestUpdateActivityRecordsCostChange(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	id, err := svc.CreateActivity(ctx, CreateActivityInput{
		Name:             "Deep work",
		MentalEnergyCost: 2,
		Frequency:        storage.TargetFrequency{Type: FreqFreeform},
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	// A rename alone must not produce an audit row.
	name := "Deep work block"
	if err := svc.UpdateActivity(ctx, id, storage.ActivityUpdate{Name: &name}, nil); err != nil {
		t.Fatalf("rename: %v", err)
	}
	changes, err := svc.CostChangeRepo().ListByActivity(ctx, id)
	if err != nil {
		t.Fatalf("list changes: %v", err)
	}
	if len(changes) != 0 {
		t.Fatalf("rename produced %d audit rows", len(changes))
	}

	newCost := 3
	reason := "harder than it used to be"
	if err := svc.UpdateActivity(ctx, id, storage.ActivityUpdate{MentalEnergyCost: &newCost}, &reason); err != nil {
		t.Fatalf("update cost: %v", err)
	}
	changes, err = svc.CostChangeRepo().ListByActivity(ctx, id)
	if err != nil {
		t.Fatalf("list changes: %v", err)
	}
	if len(changes) != 1 {
		t.Fatalf("got %d audit rows, want 1", len(changes))
	}
	c := changes[0]
	if c.PreviousMentalCost != 2 || c.NewMentalCost != 3 {
		t.Fatalf("mental change %d->%d, want 2->3", c.PreviousMentalCost, c.NewMentalCost)
	}
	if c.Reason == nil || *c.Reason != reason {
		t.Fatalf("reason=%v, want %q", c.Reason, reason)
	}
}

func TestPauseExcludesFromScoring(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	keep, err := svc.CreateActivity(ctx, CreateActivityInput{Name: "Reading", Frequency: storage.TargetFrequency{Type: FreqDaily}})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	paused, err := svc.CreateActivity(ctx, CreateActivityInput{Name: "Sketching", Frequency: storage.TargetFrequency{Type: FreqDaily}})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if err := svc.Pause(ctx, paused, 2, now); err != nil {
		t.Fatalf("pause: %v", err)
	}

	snap, err := svc.PrioritizeNow(ctx, 3, 3, 12, now)
	if err != nil {
		t.Fatalf("prioritize: %v", err)
	}
	if len(snap.Paused) != 1 || snap.Paused[0].ID != paused {
		t.Fatalf("paused bucket=%+v, want activity %d", snap.Paused, paused)
	}
	if len(snap.Available) != 1 || snap.Available[0].Activity.ID != keep {
		t.Fatalf("available=%+v, want only activity %d", snap.Available, keep)
	}

	// Past the pause window the activity scores again.
	snap, err = svc.PrioritizeNow(ctx, 3, 3, 12, now.Add(15*24*time.Hour))
	if err != nil {
		t.Fatalf("prioritize after window: %v", err)
	}
	if len(snap.Paused) != 0 || len(snap.Available) != 2 {
		t.Fatalf("expected pause to expire, got paused=%d available=%d", len(snap.Paused), len(snap.Available))
	}

	if err := svc.Unpause(ctx, paused); err != nil {
		t.Fatalf("unpause: %v", err)
	}
	snap, err = svc.PrioritizeNow(ctx, 3, 3, 12, now)
	if err != nil {
		t.Fatalf("prioritize after unpause: %v", err)
	}
	if len(snap.Paused) != 0 {
		t.Fatalf("still paused after unpause: %+v", snap.Paused)
	}
}

func TestArchiveHidesActivity(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	id, err := svc.CreateActivity(ctx, CreateActivityInput{Name: "Vacuuming", Frequency: storage.TargetFrequency{Type: FreqWeekly}})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if err := svc.Archive(ctx, id); err != nil {
		t.Fatalf("archive: %v", err)
	}
	active, err := svc.ActivityRepo().ListActive(ctx)
	if err != nil {
		t.Fatalf("list active: %v", err)
	}
	if len(active) != 0 {
		t.Fatalf("archived activity still listed active")
	}
	archived, err := svc.ActivityRepo().ListArchived(ctx)
	if err != nil {
		t.Fatalf("list archived: %v", err)
	}
	if len(archived) != 1 {
		t.Fatalf("archived list has %d entries, want 1", len(archived))
	}

	if err := svc.Unarchive(ctx, id); err != nil {
		t.Fatalf("unarchive: %v", err)
	}
	active, err = svc.ActivityRepo().ListActive(ctx)
	if err != nil {
		t.Fatalf("list active: %v", err)
	}
	if len(active) != 1 {
		t.Fatalf("unarchived activity missing from active list")
	}
}

func TestSeedDefaults(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	n, err := svc.SeedDefaults(ctx)
	if err != nil {
		t.Fatalf("seed: %v", err)
	}
	if n != len(defaultActivities) {
		t.Fatalf("seeded %d, want %d", n, len(defaultActivities))
	}

	// Idempotent on a non-empty catalog.
	n, err = svc.SeedDefaults(ctx)
	if err != nil {
		t.Fatalf("reseed: %v", err)
	}
	if n != 0 {
		t.Fatalf("reseed inserted %d, want 0", n)
	}

	all, err := svc.ActivityRepo().ListActive(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	for _, a := range all {
		if len(a.PriorityCurve) < MinCurvePoints {
			t.Fatalf("seeded activity %q has no usable curve", a.Name)
		}
	}
}
