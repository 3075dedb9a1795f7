package root

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/octagorm/priorities/internal/ui"
)

func newShowCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Show an activity's details and cost-change history",
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
			a, err := svc.ActivityRepo().Get(ctx, id)
			if err != nil {
				return err
			}
			if a == nil {
				return fmt.Errorf("activity %d not found", id)
			}

			count, err := svc.SessionRepo().CountByActivity(ctx, id)
			if err != nil {
				return err
			}
			last, err := svc.SessionRepo().Last(ctx, id)
			if err != nil {
				return err
			}
			changes, err := svc.CostChangeRepo().ListByActivity(ctx, id)
			if err != nil {
				return err
			}

			now := time.Now()
			var since *time.Duration
			if last != nil {
				d := now.Sub(last.StartedAt)
				since = &d
			}

			freq := a.TargetFrequency.Type
			if freq == "per_period" && a.TargetFrequency.TimesPerPeriod > 0 {
				freq = fmt.Sprintf("%dx per %dd", a.TargetFrequency.TimesPerPeriod, a.TargetFrequency.PeriodDays)
			}

			lines := []string{
				ui.Title.Render(a.Name) + "  " + ui.Muted.Render(fmt.Sprintf("#%d", a.ID)),
				ui.LabelValue("Energy", ui.EnergyDots(a.MentalEnergyCost)+" / "+ui.EnergyDots(a.PhysicalEnergyCost)),
				ui.LabelValue("Frequency", freq),
			}
			if a.Category != "" {
				lines = append(lines, ui.LabelValue("Category", a.Category))
			}
			if a.CooldownHours != nil && *a.CooldownHours > 0 {
				lines = append(lines, ui.LabelValue("Cooldown", fmt.Sprintf("%.0fh", *a.CooldownHours)))
			}
			if len(a.PriorityCurve) > 0 {
				lines = append(lines, ui.LabelValue("Curve", fmt.Sprintf("%d points", len(a.PriorityCurve))))
			}
			if len(a.HourlyCurve) > 0 {
				lines = append(lines, ui.LabelValue("Hourly curve", fmt.Sprintf("%d points", len(a.HourlyCurve))))
			}
			lines = append(lines, ui.LabelValue("Sessions", fmt.Sprintf("%d (%s)", count, ui.FormatTimeSince(since))))
			lines = append(lines, ui.IconCalendar+" "+ui.Muted.Render("Added "+a.CreatedAt.Local().Format("Jan 02 2006")))
			if a.PausedUntil != nil && a.PausedUntil.After(now) {
				lines = append(lines, ui.IconMoon+" "+ui.Warn.Render("Paused for "+ui.FormatTimeRemaining(a.PausedUntil.Sub(now))))
			}
			if !a.IsActive {
				lines = append(lines, ui.IconArchive+" "+ui.Muted.Render("Archived"))
			}
			if a.Notes != "" {
				lines = append(lines, ui.Dim.Render(a.Notes))
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, ui.Panel.Render(strings.Join(lines, "\n")))

			if len(changes) > 0 {
				fmt.Fprintln(out, ui.H2.Render(ui.IconBolt+" Cost changes"))
				for _, c := range changes {
					reason := ""
					if c.Reason != nil && *c.Reason != "" {
						reason = ui.Dim.Render(" — " + *c.Reason)
					}
					fmt.Fprintf(out, "  %s %s %d→%d %s %d→%d%s\n",
						ui.Muted.Render(c.ChangedAt.Local().Format("Jan 02 15:04")),
						ui.IconBrain, c.PreviousMentalCost, c.NewMentalCost,
						ui.IconMuscle, c.PreviousPhysicalCost, c.NewPhysicalCost,
						reason)
				}
			}
			return nil
		},
	}

	return cmd
}
