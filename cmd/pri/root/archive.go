package root

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/octagorm/priorities/internal/ui"
)

func newArchiveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "archive <id>",
		Short: "Archive an activity (hidden from scoring)",
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
			if err := svc.Archive(ctx, id); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s Archived #%d\n", ui.Muted.Render(ui.IconArchive), id)
			return nil
		},
	}

	return cmd
}

func newRestoreCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "restore <id>",
		Short: "Restore an archived activity",
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
			if err := svc.Unarchive(ctx, id); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s Restored #%d\n", ui.Good.Render(ui.IconDone), id)
			return nil
		},
	}

	return cmd
}
