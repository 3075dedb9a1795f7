package root

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/octagorm/priorities/internal/engine"
	"github.com/octagorm/priorities/internal/storage"
	"github.com/octagorm/priorities/internal/ui"
)

func newAddCmd() *cobra.Command {
	var category string
	var mental, physical int
	var freq string
	var times, period int
	var cooldown float64
	var temporary bool
	var notes string

	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Add an activity",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("name is required")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, _, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			if !engine.ValidFrequencyType(freq) {
				return fmt.Errorf("invalid frequency %q (daily|weekly|per_period|freeform)", freq)
			}

			var cd *float64
			if cooldown > 0 {
				cd = &cooldown
			}

			id, err := svc.CreateActivity(ctx, engine.CreateActivityInput{
				Name:               args[0],
				Category:           category,
				MentalEnergyCost:   mental,
				PhysicalEnergyCost: physical,
				Frequency: storage.TargetFrequency{
					Type:           freq,
					TimesPerPeriod: times,
					PeriodDays:     period,
				},
				CooldownHours: cd,
				IsTemporary:   temporary,
				Notes:         notes,
			})
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s Added %s %s\n", ui.Good.Render(ui.IconDone), args[0], ui.Muted.Render(fmt.Sprintf("(#%d)", id)))
			return nil
		},
	}

	cmd.Flags().StringVarP(&category, "category", "c", "", "Category label")
	cmd.Flags().IntVarP(&mental, "mental", "m", 0, "Mental energy cost (0-3)")
	cmd.Flags().IntVarP(&physical, "physical", "p", 0, "Physical energy cost (0-3)")
	cmd.Flags().StringVarP(&freq, "freq", "f", "weekly", "Target frequency (daily|weekly|per_period|freeform)")
	cmd.Flags().IntVar(&times, "times", 0, "Times per period (per_period only)")
	cmd.Flags().IntVar(&period, "period", 0, "Period length in days (per_period only)")
	cmd.Flags().Float64Var(&cooldown, "cooldown", 0, "Minimum gap between repeats, in hours")
	cmd.Flags().BoolVar(&temporary, "temporary", false, "Mark as a temporary activity")
	cmd.Flags().StringVar(&notes, "notes", "", "Free-form notes")

	return cmd
}
