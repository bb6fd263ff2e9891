package cmd

import (
	"fmt"

	"github.com/harrison/sandman/internal/config"
	"github.com/harrison/sandman/internal/display"
	"github.com/harrison/sandman/internal/filelock"
	"github.com/harrison/sandman/internal/journal"
	"github.com/harrison/sandman/internal/models"
	"github.com/harrison/sandman/internal/shift"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// runReport is the document written by --report.
type runReport struct {
	Summary     models.RunSummary   `yaml:"summary"`
	Entries     []models.ShiftEntry `yaml:"entries"`
	FailedPaths []string            `yaml:"failed_paths,omitempty"`
}

// NewShiftCommand creates the shift command
func NewShiftCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "shift <input_dir> <shift_add_months> <shift_add_days> <shift_older_than_cutoff>",
		Short: "Move the mtimes of old files forward",
		Long: `Select every regular file below input_dir whose modification time is
before shift_older_than_cutoff (YYYY-MM-DD, local midnight) and compute a new
time: the later of its mtime and ctime, plus shift_add_months months, plus
shift_add_days days.

Symbolic links are ignored. Months and days must be between 0 and 1000.

Without --apply nothing is modified; the selected files and their new dates
are only printed. With --apply the access and modification times of each
selected file are set to the new time, and the old times are journaled so
the run can be undone with "sandman restore".

Examples:
  sandman shift /scratch/recover 27 4 2022-03-29
  sandman shift --apply --report shifted.yaml /scratch/recover 27 4 2022-03-29`,
		Args: exactArgs(4),
		RunE: runShiftCommand,
	}

	addConfigFlags(cmd)
	addLogFlags(cmd)
	cmd.Flags().Bool("apply", false, "Rewrite timestamps instead of only printing them")
	cmd.Flags().Int("workers", shift.DefaultWorkers, "Number of concurrent stat calls")
	cmd.Flags().String("report", "", "Write a YAML report of the run to this file")

	return cmd
}

func runShiftCommand(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	params, err := shift.ValidateArgs(args[0], args[1], args[2], args[3])
	if err != nil {
		return usageError(err)
	}
	params.Apply = cfg.Apply

	log, closeLog, err := newRunLogger(cmd.ErrOrStderr(), cfg)
	if err != nil {
		return err
	}
	defer closeLog()

	if params.Apply {
		lock, err := lockTarget(params.InputDir)
		if err != nil {
			return err
		}
		defer lock.Unlock()
	}

	store, err := openJournal(cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	shifter := shift.NewShifter(shift.Options{
		Workers:  cfg.Workers,
		Logger:   log,
		Recorder: store,
		Out:      cmd.OutOrStdout(),
	})

	result, err := shifter.Run(cmd.Context(), params)
	if err != nil {
		return fmt.Errorf("shift failed: %w", err)
	}

	if reportPath, _ := cmd.Flags().GetString("report"); reportPath != "" {
		if err := writeReport(reportPath, result); err != nil {
			return err
		}
	}

	return finishResult(cmd, result)
}

// finishResult prints the closing warnings of a shift or restore and maps
// failures to exit status 1.
func finishResult(cmd *cobra.Command, result *shift.Result) error {
	if len(result.MissingPaths) > 0 {
		display.WarnMissingPaths(result.MissingPaths).Display(cmd.ErrOrStderr())
	}
	if !result.Summary.Applied {
		display.DryRunNotice().Display(cmd.ErrOrStderr())
	}
	if len(result.FailedPaths) > 0 {
		display.WarnFailedPaths(result.FailedPaths).Display(cmd.ErrOrStderr())
		return &ExitError{Code: 1, Err: fmt.Errorf("%d path(s) could not be processed", len(result.FailedPaths))}
	}
	return nil
}

// lockTarget takes the per-directory lock held while timestamps are rewritten.
func lockTarget(dir string) (*filelock.FileLock, error) {
	lockDir, err := config.GetLockDir()
	if err != nil {
		return nil, err
	}
	return filelock.LockDirectory(lockDir, dir)
}

func openJournal(cfg *config.Config) (*journal.Store, error) {
	path, err := cfg.ResolveJournalPath()
	if err != nil {
		return nil, err
	}
	store, err := journal.NewStore(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open journal %s: %w", path, err)
	}
	return store, nil
}

func writeReport(path string, result *shift.Result) error {
	data, err := yaml.Marshal(runReport{
		Summary:     result.Summary,
		Entries:     result.Entries,
		FailedPaths: result.FailedPaths,
	})
	if err != nil {
		return fmt.Errorf("failed to encode report: %w", err)
	}
	if err := filelock.AtomicWrite(path, data); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	return nil
}
