package root

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/octagorm/priorities/internal/ui"
)

func newSeedCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Seed the starter catalog (no-op if activities exist)",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, _, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			n, err := svc.SeedDefaults(ctx)
			if err != nil {
				return err
			}
			if n == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), ui.Muted.Render("Catalog not empty; nothing seeded."))
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s Seeded %d activities\n", ui.Good.Render(ui.IconDone), n)
			return nil
		},
	}

	return cmd
}
