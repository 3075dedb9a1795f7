package root

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
)

func setTestHome(t *testing.T) {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("PRIORITIES_DB", filepath.Join(dir, "test.db"))
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "config"))
}

func runCommand(t *testing.T, cmd *cobra.Command, args ...string) string {
	t.Helper()
	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetErr(&buf)
	cmd.SetArgs(args)
	if err := cmd.Execute(); err != nil {
		t.Fatalf("%s %v: %v", cmd.Name(), args, err)
	}
	return buf.String()
}

func TestEditUpdatesCostsWithAudit(t *testing.T) {
	setTestHome(t)

	runCommand(t, newAddCmd(), "Reading", "--mental", "1", "--freq", "daily")
	runCommand(t, newEditCmd(), "1", "--mental", "3", "--reason", "denser material")

	out := runCommand(t, newShowCmd(), "1")
	if !strings.Contains(out, "Reading") {
		t.Fatalf("missing activity name:\n%s", out)
	}
	if !strings.Contains(out, "1→3") {
		t.Fatalf("missing cost change entry:\n%s", out)
	}
	if !strings.Contains(out, "denser material") {
		t.Fatalf("missing cost change reason:\n%s", out)
	}
}

func TestEditChangesFrequencyAndNotes(t *testing.T) {
	setTestHome(t)

	runCommand(t, newAddCmd(), "Sketching")
	runCommand(t, newEditCmd(), "1",
		"--freq", "per_period", "--times", "3", "--period", "7",
		"--notes", "loose studies only")

	out := runCommand(t, newShowCmd(), "1")
	if !strings.Contains(out, "3x per 7d") {
		t.Fatalf("missing updated frequency:\n%s", out)
	}
	if !strings.Contains(out, "loose studies only") {
		t.Fatalf("missing updated notes:\n%s", out)
	}
}

func TestEditRequiresAChange(t *testing.T) {
	setTestHome(t)
	runCommand(t, newAddCmd(), "Reading")

	var buf bytes.Buffer
	cmd := newEditCmd()
	cmd.SetOut(&buf)
	cmd.SetErr(&buf)
	cmd.SetArgs([]string{"1"})
	if err := cmd.Execute(); err == nil {
		t.Fatalf("expected error when no flags are passed")
	}
}

func TestParseCurvePoints(t *testing.T) {
	points, err := parseCurvePoints("0:0, 7:1")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(points) != 2 || points[1].Days != 7 || points[1].Priority != 1 {
		t.Fatalf("parsed %+v", points)
	}

	if _, err := parseCurvePoints("0:0"); err == nil {
		t.Fatalf("expected error for a single point")
	}
	if _, err := parseCurvePoints("x:1,2:3"); err == nil {
		t.Fatalf("expected error for a non-numeric point")
	}
}

func TestParseHourlyPoints(t *testing.T) {
	if _, err := parseHourlyPoints("8:0,25:2"); err == nil {
		t.Fatalf("expected error for an out-of-range hour")
	}
	points, err := parseHourlyPoints("8:0,12:2")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(points) != 2 || points[1].Multiplier != 2 {
		t.Fatalf("parsed %+v", points)
	}
}

func TestParseTiers(t *testing.T) {
	if _, err := parseTiers("preferred,possible"); err == nil {
		t.Fatalf("expected error for a short tier list")
	}
	spec := strings.TrimSuffix(strings.Repeat("possible,", 24), ",")
	tiers, err := parseTiers(spec)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(tiers) != 24 {
		t.Fatalf("got %d tiers", len(tiers))
	}
}
