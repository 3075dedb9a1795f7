package root

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/octagorm/priorities/internal/ui"
)

func newListCmd() *cobra.Command {
	var archived bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List activities",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, _, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			list := svc.ActivityRepo().ListActive
			if archived {
				list = svc.ActivityRepo().ListArchived
			}
			activities, err := list(ctx)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(activities) == 0 {
				fmt.Fprintln(out, ui.Muted.Render("No activities. Try `pri seed` or `pri add`."))
				return nil
			}

			for _, a := range activities {
				freq := a.TargetFrequency.Type
				if freq == "per_period" && a.TargetFrequency.TimesPerPeriod > 0 {
					freq = fmt.Sprintf("%dx/%dd", a.TargetFrequency.TimesPerPeriod, a.TargetFrequency.PeriodDays)
				}
				curve := ""
				if len(a.PriorityCurve) >= 2 {
					curve = ui.Muted.Render(fmt.Sprintf(" curve(%d)", len(a.PriorityCurve)))
				}
				fmt.Fprintf(out, "%s %s  %s %s %s%s\n",
					ui.Muted.Render(fmt.Sprintf("#%d", a.ID)),
					a.Name,
					ui.Muted.Render(ui.EnergyDots(a.MentalEnergyCost)+"/"+ui.EnergyDots(a.PhysicalEnergyCost)),
					ui.Dim.Render(a.Category),
					ui.Dim.Render(freq),
					curve)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&archived, "archived", false, "Show archived activities instead")

	return cmd
}
