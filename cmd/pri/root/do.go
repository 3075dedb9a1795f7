package root

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/octagorm/priorities/internal/ui"
)

func newDoCmd() *cobra.Command {
	var note string
	var minutes int

	cmd := &cobra.Command{
		Use:   "do <id>",
		Short: "Log a completed session for an activity",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("id is required")
			}
			if _, err := strconv.ParseInt(args[0], 10, 64); err != nil {
				return errors.New("id must be an integer")
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

			id, _ := strconv.ParseInt(args[0], 10, 64)

			var notePtr *string
			if note != "" {
				notePtr = &note
			}
			var durationPtr *int64
			if minutes > 0 {
				ms := int64(minutes) * 60_000
				durationPtr = &ms
			}

			a, err := svc.ActivityRepo().Get(ctx, id)
			if err != nil {
				return err
			}
			if a == nil {
				return fmt.Errorf("activity %d not found", id)
			}

			if _, err := svc.LogSession(ctx, id, notePtr, durationPtr, time.Now()); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s Logged %s\n", ui.Good.Render(ui.IconDone), a.Name)
			return nil
		},
	}

	cmd.Flags().StringVarP(&note, "note", "n", "", "Optional note for the session")
	cmd.Flags().IntVar(&minutes, "minutes", 0, "Session duration in minutes")

	return cmd
}
