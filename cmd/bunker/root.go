package main

import (
	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "bunker",
		Short:         "Bunker runs crash-isolated test routines",
		Long:          "Bunker executes test routines in isolated child processes so that a crash in one test cannot terminate the run. Without a subcommand it runs the harness self-tests.",
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE:          runSelftest,
	}

	persistent := cmd.PersistentFlags()
	persistent.BoolP("verbose", "v", false, "emit group banners and test descriptions")
	persistent.Bool("debug", false, "log runner internals to stderr")
	persistent.Bool("no-color", false, "disable color in the status line")
	persistent.Int("name-width", 0, "minimum width of the test name column")
	persistent.StringArray("disable", nil, "test name to disable (repeatable)")

	cmd.AddCommand(newSelftestCmd())
	cmd.AddCommand(newExamplesCmd())

	return cmd
}
