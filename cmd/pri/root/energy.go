package root

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/octagorm/priorities/internal/ui"
)

func newEnergyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "energy [mental physical]",
		Short: "Show or set current energy levels (0-3)",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 0 && len(args) != 2 {
				return errors.New("pass no arguments to show, or <mental> <physical> to set")
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

			out := cmd.OutOrStdout()

			if len(args) == 2 {
				m, err := strconv.Atoi(args[0])
				if err != nil {
					return errors.New("mental energy must be an integer")
				}
				p, err := strconv.Atoi(args[1])
				if err != nil {
					return errors.New("physical energy must be an integer")
				}
				if err := svc.SetEnergy(ctx, m, p); err != nil {
					return err
				}
			}

			m, p, err := svc.Energy(ctx)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "%s %s  %s %s\n",
				ui.IconBrain, ui.EnergyDots(m),
				ui.IconMuscle, ui.EnergyDots(p))
			return nil
		},
	}

	return cmd
}
