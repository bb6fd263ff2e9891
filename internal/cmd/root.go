package cmd

import (
	"github.com/spf13/cobra"
)

// Version is injected at build time via -ldflags
var Version = "dev"

// NewRootCommand creates and returns the root cobra command for sandman
func NewRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sandman",
		Short: "Shift file modification times forward in bulk",
		Long: `Sandman moves the modification times of old files forward by a number of
months and days, so that files recovered from backup survive age-based
scratch purges.

Runs are dry runs unless --apply is given. Applied runs are journaled and
can be undone with "sandman restore".`,
		Version: Version,
		// Silence usage on errors to avoid duplicate help text
		SilenceUsage: true,
		// main prints errors itself so it can pick the exit status
		SilenceErrors: true,
	}

	cmd.SetFlagErrorFunc(func(c *cobra.Command, err error) error {
		return usageError(err)
	})

	// Add subcommands
	cmd.AddCommand(NewShiftCommand())
	cmd.AddCommand(NewLaunchCommand())
	cmd.AddCommand(NewHistoryCommand())
	cmd.AddCommand(NewRestoreCommand())

	return cmd
}
