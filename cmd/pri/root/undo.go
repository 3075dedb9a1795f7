package root

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/octagorm/priorities/internal/ui"
)

func newUndoCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "undo [session-id]",
		Short: "Delete a logged session (the most recent one by default)",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) > 1 {
				return errors.New("pass at most one session id")
			}
			if len(args) == 1 {
				if _, err := strconv.ParseInt(args[0], 10, 64); err != nil {
					return errors.New("session id must be an integer")
				}
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

			var id int64
			if len(args) == 1 {
				id, _ = strconv.ParseInt(args[0], 10, 64)
			} else {
				recent, err := svc.SessionRepo().ListRecent(ctx, 1)
				if err != nil {
					return err
				}
				if len(recent) == 0 {
					return errors.New("no sessions to undo")
				}
				id = recent[0].ID
			}

			if err := svc.DeleteSession(ctx, id); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s Deleted session #%d\n", ui.Warn.Render(ui.IconError), id)
			return nil
		},
	}

	return cmd
}
