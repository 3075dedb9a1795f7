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

func idArg(args []string) (int64, error) {
	if len(args) != 1 {
		return 0, errors.New("id is required")
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return 0, errors.New("id must be an integer")
	}
	return id, nil
}

func newPauseCmd() *cobra.Command {
	var weeks int

	cmd := &cobra.Command{
		Use:   "pause <id>",
		Short: "Pause an activity for a number of weeks",
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
			if err := svc.Pause(ctx, id, weeks, time.Now()); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s Paused #%d for %dw\n", ui.Warn.Render(ui.IconPause), id, weeks)
			return nil
		},
	}

	cmd.Flags().IntVarP(&weeks, "weeks", "w", 1, "How many weeks to pause")

	return cmd
}

func newResumeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "resume <id>",
		Short: "Resume a paused activity",
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
			if err := svc.Unpause(ctx, id); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s Resumed #%d\n", ui.Good.Render(ui.IconDone), id)
			return nil
		},
	}

	return cmd
}
