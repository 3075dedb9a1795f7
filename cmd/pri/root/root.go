package root

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/octagorm/priorities/internal/ui"
)

const Version = "0.2.0"

var rootCmd = &cobra.Command{
	Use:           "pri",
	Short:         "Priorities — local-first activity prioritizer",
	Long:          "Priorities ranks your recurring activities by urgency, given your current energy and the time of day.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() {
	rootCmd.Version = Version
	rootCmd.SetVersionTemplate("{{.Name}} v{{.Version}}\n")

	rootCmd.AddCommand(
		newNowCmd(),
		newAddCmd(),
		newEditCmd(),
		newShowCmd(),
		newDoCmd(),
		newUndoCmd(),
		newListCmd(),
		newHistoryCmd(),
		newEnergyCmd(),
		newPauseCmd(),
		newResumeCmd(),
		newArchiveCmd(),
		newRestoreCmd(),
		newSeedCmd(),
		newBoardCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, ui.Bad.Render(ui.IconError+" "+err.Error()))
		os.Exit(1)
	}
}
