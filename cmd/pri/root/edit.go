package root

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/octagorm/priorities/internal/engine"
	"github.com/octagorm/priorities/internal/storage"
	"github.com/octagorm/priorities/internal/ui"
)

func newEditCmd() *cobra.Command {
	var (
		name      string
		category  string
		mental    int
		physical  int
		freq      string
		times     int
		period    int
		cooldown  float64
		temporary bool
		notes     string
		curveSpec string
		hourly    string
		tiersSpec string
		reason    string
	)

	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Edit an activity (only the flags you pass change)",
		Args: func(cmd *cobra.Command, args []string) error {
			_, err := idArg(args)
			return err
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, _, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			id, _ := idArg(args)
			flags := cmd.Flags()

			var upd storage.ActivityUpdate
			changed := false
			if flags.Changed("name") {
				upd.Name = &name
				changed = true
			}
			if flags.Changed("category") {
				upd.Category = &category
				changed = true
			}
			if flags.Changed("mental") {
				upd.MentalEnergyCost = &mental
				changed = true
			}
			if flags.Changed("physical") {
				upd.PhysicalEnergyCost = &physical
				changed = true
			}
			if flags.Changed("cooldown") {
				upd.CooldownHours = &cooldown
				changed = true
			}
			if flags.Changed("temporary") {
				upd.IsTemporary = &temporary
				changed = true
			}
			if flags.Changed("notes") {
				upd.Notes = &notes
				changed = true
			}

			if flags.Changed("freq") || flags.Changed("times") || flags.Changed("period") {
				a, err := svc.ActivityRepo().Get(ctx, id)
				if err != nil {
					return err
				}
				if a == nil {
					return fmt.Errorf("activity %d not found", id)
				}
				tf := a.TargetFrequency
				if flags.Changed("freq") {
					tf.Type = freq
				}
				if flags.Changed("times") {
					tf.TimesPerPeriod = times
				}
				if flags.Changed("period") {
					tf.PeriodDays = period
				}
				if !engine.ValidFrequencyType(tf.Type) {
					return fmt.Errorf("invalid frequency %q (daily|weekly|per_period|freeform)", tf.Type)
				}
				upd.TargetFrequency = &tf
				changed = true
			}

			if flags.Changed("curve") {
				points, err := parseCurvePoints(curveSpec)
				if err != nil {
					return err
				}
				upd.PriorityCurve = points
				changed = true
			}
			if flags.Changed("hourly") {
				points, err := parseHourlyPoints(hourly)
				if err != nil {
					return err
				}
				upd.HourlyCurve = points
				changed = true
			}
			if flags.Changed("tiers") {
				tiers, err := parseTiers(tiersSpec)
				if err != nil {
					return err
				}
				upd.HourTiers = tiers
				changed = true
			}

			if !changed {
				return errors.New("nothing to change; pass at least one flag")
			}

			var reasonPtr *string
			if reason != "" {
				reasonPtr = &reason
			}

			if err := svc.UpdateActivity(ctx, id, upd, reasonPtr); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s Updated #%d\n", ui.Good.Render(ui.IconDone), id)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "New name")
	cmd.Flags().StringVarP(&category, "category", "c", "", "New category label")
	cmd.Flags().IntVarP(&mental, "mental", "m", 0, "New mental energy cost (0-3)")
	cmd.Flags().IntVarP(&physical, "physical", "p", 0, "New physical energy cost (0-3)")
	cmd.Flags().StringVarP(&freq, "freq", "f", "", "New target frequency (daily|weekly|per_period|freeform)")
	cmd.Flags().IntVar(&times, "times", 0, "Times per period (per_period only)")
	cmd.Flags().IntVar(&period, "period", 0, "Period length in days (per_period only)")
	cmd.Flags().Float64Var(&cooldown, "cooldown", 0, "Minimum gap between repeats, in hours")
	cmd.Flags().BoolVar(&temporary, "temporary", false, "Mark as a temporary activity")
	cmd.Flags().StringVar(&notes, "notes", "", "New free-form notes")
	cmd.Flags().StringVar(&curveSpec, "curve", "", "Priority curve points as days:priority pairs, e.g. 0:0,7:1")
	cmd.Flags().StringVar(&hourly, "hourly", "", "Hourly multiplier curve as hour:multiplier pairs, e.g. 8:0,12:2")
	cmd.Flags().StringVar(&tiersSpec, "tiers", "", "24 comma-separated hour tiers (preferred|possible|impossible)")
	cmd.Flags().StringVar(&reason, "reason", "", "Why the energy costs changed (recorded in history)")

	return cmd
}

func parseCurvePoints(s string) ([]storage.CurvePoint, error) {
	var out []storage.CurvePoint
	for _, part := range strings.Split(s, ",") {
		x, y, err := parsePair(part)
		if err != nil {
			return nil, fmt.Errorf("curve point %q: %w", strings.TrimSpace(part), err)
		}
		out = append(out, storage.CurvePoint{Days: x, Priority: y})
	}
	if len(out) < engine.MinCurvePoints {
		return nil, errors.New("priority curve needs at least two points")
	}
	return out, nil
}

func parseHourlyPoints(s string) ([]storage.HourlyPoint, error) {
	var out []storage.HourlyPoint
	for _, part := range strings.Split(s, ",") {
		x, y, err := parsePair(part)
		if err != nil {
			return nil, fmt.Errorf("hourly point %q: %w", strings.TrimSpace(part), err)
		}
		if x < 0 || x > 23 {
			return nil, fmt.Errorf("hourly point %q: hour must be 0-23", strings.TrimSpace(part))
		}
		out = append(out, storage.HourlyPoint{Hour: x, Multiplier: y})
	}
	if len(out) < engine.MinCurvePoints {
		return nil, errors.New("hourly curve needs at least two points")
	}
	return out, nil
}

func parsePair(part string) (float64, float64, error) {
	fields := strings.SplitN(strings.TrimSpace(part), ":", 2)
	if len(fields) != 2 {
		return 0, 0, errors.New("want x:y")
	}
	x, err := strconv.ParseFloat(strings.TrimSpace(fields[0]), 64)
	if err != nil {
		return 0, 0, errors.New("x is not a number")
	}
	y, err := strconv.ParseFloat(strings.TrimSpace(fields[1]), 64)
	if err != nil {
		return 0, 0, errors.New("y is not a number")
	}
	return x, y, nil
}

func parseTiers(s string) ([]string, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 24 {
		return nil, fmt.Errorf("hour tiers need 24 entries, got %d", len(parts))
	}
	out := make([]string, 24)
	for i, p := range parts {
		out[i] = string(engine.ParseHourTier(p))
	}
	return out, nil
}
