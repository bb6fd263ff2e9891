package cmd

import (
	"github.com/harrison/sandman/internal/launcher"
	"github.com/spf13/cobra"
)

// NewLaunchCommand creates the launch command
func NewLaunchCommand() *cobra.Command {
	return newLaunchCommand(nil)
}

// newLaunchCommand builds the launch command; a nil runner executes the
// program on the command's streams.
func newLaunchCommand(runner launcher.Runner) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "launch",
		Short: "Run the compiled-in shift invocation",
		Long: `Clear the terminal and run ` + launcher.DefaultProgram + ` with the
compiled-in input directory, offsets and cutoff:

  ` + launcher.DefaultProgram + ` ` + launcher.DefaultInputDir + ` ` +
			launcher.DefaultShiftAddMonths + ` ` + launcher.DefaultShiftAddDays + ` ` +
			launcher.DefaultShiftOlderThanCutoff + `

No flags, arguments or configuration are read. The exit status is the
program's own.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			l := launcher.NewLauncher()
			l.Terminal = cmd.OutOrStdout()
			l.Runner = runner
			if l.Runner == nil {
				l.Runner = &launcher.ExecRunner{
					Stdin:  cmd.InOrStdin(),
					Stdout: cmd.OutOrStdout(),
					Stderr: cmd.ErrOrStderr(),
				}
			}

			// The root context is cancelled on SIGINT, which the child
			// already receives from the terminal.
			ctx, stop := launcher.SignalContext(cmd.Context())
			defer stop()

			if status := l.Run(ctx); status != 0 {
				return &ExitError{Code: status}
			}
			return nil
		},
	}

	return cmd
}
