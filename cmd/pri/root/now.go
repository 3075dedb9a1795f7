package root

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/octagorm/priorities/internal/engine"
	"github.com/octagorm/priorities/internal/ui"
)

func newNowCmd() *cobra.Command {
	var mental, physical, hour int
	var all bool

	cmd := &cobra.Command{
		Use:   "now",
		Short: "Show what to do now, ranked by urgency",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, cfg, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			now := time.Now()
			m, p, err := svc.Energy(ctx)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("mental") {
				m = mental
			}
			if cmd.Flags().Changed("physical") {
				p = physical
			}
			h := now.Hour()
			if cmd.Flags().Changed("hour") {
				h = hour
			}

			snap, err := svc.PrioritizeNow(ctx, m, p, h, now)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s  %s %s %s  %s %s\n\n",
				ui.Heading(ui.IconNow, "Priorities"),
				ui.IconBrain, ui.EnergyDots(m),
				ui.IconMuscle, ui.EnergyDots(p),
				ui.Muted.Render(fmt.Sprintf("%02d:00", h)))

			topN := cfg.Display.TopN
			if all {
				topN = len(snap.Available)
			}
			printAvailable(out, snap.Available, topN, now)

			if len(snap.WrongTime) > 0 {
				fmt.Fprintln(out, ui.H2.Render(ui.IconClock+" "+ui.SectionTitle("wrong_time")))
				for _, item := range snap.WrongTime {
					printItem(out, item, false)
				}
				fmt.Fprintln(out)
			}
			if len(snap.TooTired) > 0 {
				fmt.Fprintln(out, ui.H2.Render(ui.IconSnooze+" "+ui.SectionTitle("too_tired")))
				for _, item := range snap.TooTired {
					printItem(out, item, false)
				}
				fmt.Fprintln(out)
			}
			if len(snap.Paused) > 0 {
				fmt.Fprintln(out, ui.H2.Render(ui.IconPause+" Paused"))
				for _, a := range snap.Paused {
					remaining := ""
					if a.PausedUntil != nil {
						remaining = ui.Muted.Render(" (" + ui.FormatTimeRemaining(a.PausedUntil.Sub(now)) + ")")
					}
					fmt.Fprintf(out, "  %s %s%s\n", ui.Muted.Render(fmt.Sprintf("#%d", a.ID)), ui.Dim.Render(a.Name), remaining)
				}
				fmt.Fprintln(out)
			}

			return nil
		},
	}

	cmd.Flags().IntVarP(&mental, "mental", "m", 0, "Override mental energy (0-3)")
	cmd.Flags().IntVarP(&physical, "physical", "p", 0, "Override physical energy (0-3)")
	cmd.Flags().IntVar(&hour, "hour", 0, "Override current hour (0-23)")
	cmd.Flags().BoolVarP(&all, "all", "a", false, "Show every available activity, not just the top few")

	return cmd
}

func printAvailable(out io.Writer, available []engine.PrioritizedActivity, topN int, now time.Time) {
	if len(available) == 0 {
		fmt.Fprintln(out, ui.Muted.Render("Nothing to suggest right now."))
		fmt.Fprintln(out)
		return
	}

	fmt.Fprintln(out, ui.H2.Render(ui.IconSparkle+" "+ui.SectionTitle("available")))
	shown := len(available)
	if topN < shown {
		shown = topN
	}
	for _, item := range available[:shown] {
		printItem(out, item, true)
	}
	if rest := len(available) - shown; rest > 0 {
		fmt.Fprintln(out, ui.Muted.Render(fmt.Sprintf("  … %d more (use --all)", rest)))
	}
	fmt.Fprintln(out)
}

func printItem(out io.Writer, item engine.PrioritizedActivity, withScore bool) {
	a := item.Activity
	score := ""
	if withScore {
		score = ui.Good.Render(fmt.Sprintf(" %.2f", item.Score))
	}
	fmt.Fprintf(out, "  %s %s%s  %s %s %s %s\n",
		ui.Muted.Render(fmt.Sprintf("#%d", a.ID)),
		a.Name,
		score,
		ui.Muted.Render(ui.EnergyDots(a.MentalEnergyCost)+"/"+ui.EnergyDots(a.PhysicalEnergyCost)),
		ui.Dim.Render(ui.FormatTimeSince(item.TimeSinceLast)),
		ui.Muted.Render("·"),
		ui.Dim.Render(item.RecentFrequency))
}
