package cmd

import (
	"fmt"
	"io"

	"github.com/harrison/sandman/internal/journal"
	"github.com/spf13/cobra"
)

// NewHistoryCommand creates the history command
func NewHistoryCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recorded shift and restore runs",
		Long: `List the runs recorded in the journal, most recent first.

The first column is the run id prefix accepted by "sandman restore".`,
		Args: cobra.NoArgs,
		RunE: runHistoryCommand,
	}

	addConfigFlags(cmd)
	cmd.Flags().Int("limit", 20, "Maximum number of runs to show (0 = all)")

	return cmd
}

func runHistoryCommand(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	store, err := openJournal(cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	limit, _ := cmd.Flags().GetInt("limit")
	runs, err := store.ListRuns(cmd.Context(), limit)
	if err != nil {
		return fmt.Errorf("failed to list runs: %w", err)
	}

	displayRuns(cmd.OutOrStdout(), runs)
	return nil
}

// displayRuns prints one line per run.
func displayRuns(w io.Writer, runs []*journal.Run) {
	if len(runs) == 0 {
		fmt.Fprintln(w, "No runs recorded.")
		return
	}

	fmt.Fprintf(w, "%-8s  %-7s  %-7s  %-19s  %-10s  %8s  %7s  %6s  %s\n",
		"RUN", "KIND", "MODE", "STARTED", "CUTOFF", "SELECTED", "SHIFTED", "FAILED", "INPUT DIR")
	for _, run := range runs {
		mode := "dry-run"
		if run.Applied {
			mode = "apply"
		}
		status := ""
		if run.FinishedAt == nil {
			status = " (unfinished)"
		}
		if run.RestoredFrom != "" {
			status += fmt.Sprintf(" (restores %s)", shortID(run.RestoredFrom))
		}
		fmt.Fprintf(w, "%-8s  %-7s  %-7s  %-19s  %-10s  %8d  %7d  %6d  %s%s\n",
			shortID(run.ID), run.Kind, mode, run.StartedAt.Format("2006-01-02 15:04:05"),
			run.Cutoff, run.Selected, run.Shifted, run.Failed, run.InputDir, status)
	}
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
