package cmd

import (
	"fmt"

	"github.com/harrison/sandman/internal/shift"
	"github.com/spf13/cobra"
)

// NewRestoreCommand creates the restore command
func NewRestoreCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "restore <run-id>",
		Short: "Undo an applied shift run",
		Long: `Set every file changed by an applied run back to the access and
modification times recorded in the journal. A unique prefix of the run id
is enough.

Files that no longer exist are reported and skipped. Without --apply the
restore is only printed.`,
		Args: exactArgs(1),
		RunE: runRestoreCommand,
	}

	addConfigFlags(cmd)
	addLogFlags(cmd)
	cmd.Flags().Bool("apply", false, "Rewrite timestamps instead of only printing them")

	return cmd
}

func runRestoreCommand(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	log, closeLog, err := newRunLogger(cmd.ErrOrStderr(), cfg)
	if err != nil {
		return err
	}
	defer closeLog()

	store, err := openJournal(cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	run, err := store.GetRun(cmd.Context(), args[0])
	if err != nil {
		return err
	}

	if cfg.Apply {
		lock, err := lockTarget(run.InputDir)
		if err != nil {
			return err
		}
		defer lock.Unlock()
	}

	shifter := shift.NewShifter(shift.Options{
		Workers: cfg.Workers,
		Logger:  log,
		Out:     cmd.OutOrStdout(),
	})

	result, err := shifter.Restore(cmd.Context(), store, run.ID, cfg.Apply)
	if err != nil {
		return fmt.Errorf("restore failed: %w", err)
	}

	return finishResult(cmd, result)
}
