package root

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/octagorm/priorities/internal/storage"
	"github.com/octagorm/priorities/internal/ui"
)

func newHistoryCmd() *cobra.Command {
	var limit int
	var activityID int64

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recently logged sessions",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, _, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			var sessions []storage.Session
			if activityID > 0 {
				sessions, err = svc.SessionRepo().ListByActivity(ctx, activityID, limit)
			} else {
				sessions, err = svc.SessionRepo().ListRecent(ctx, limit)
			}
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(sessions) == 0 {
				fmt.Fprintln(out, ui.Muted.Render("No sessions logged yet."))
				return nil
			}

			names := map[int64]string{}
			for _, s := range sessions {
				if _, ok := names[s.ActivityID]; ok {
					continue
				}
				a, err := svc.ActivityRepo().Get(ctx, s.ActivityID)
				if err != nil {
					return err
				}
				if a != nil {
					names[s.ActivityID] = a.Name
				} else {
					names[s.ActivityID] = fmt.Sprintf("activity %d", s.ActivityID)
				}
			}

			for _, s := range sessions {
				duration := ""
				if s.DurationMs != nil {
					duration = ui.Muted.Render(" (" + ui.FormatDuration(time.Duration(*s.DurationMs)*time.Millisecond) + ")")
				}
				note := ""
				if s.Note != nil && *s.Note != "" {
					note = ui.Dim.Render(" — " + *s.Note)
				}
				fmt.Fprintf(out, "%s %s  %s%s%s\n",
					ui.Muted.Render(s.StartedAt.Local().Format("Jan 02 15:04")),
					names[s.ActivityID],
					ui.Muted.Render(fmt.Sprintf("#%d", s.ID)),
					duration,
					note)
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Max sessions to show")
	cmd.Flags().Int64Var(&activityID, "activity", 0, "Only show sessions for this activity id")

	return cmd
}
