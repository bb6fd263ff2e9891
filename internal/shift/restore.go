package shift

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/harrison/sandman/internal/journal"
	"github.com/harrison/sandman/internal/models"
)

// ErrRunNotApplied is returned when restoring a run that changed nothing.
var ErrRunNotApplied = errors.New("run was a dry run")

// Journal is the part of the journal store a restore needs.
type Journal interface {
	Recorder
	GetRun(ctx context.Context, id string) (*journal.Run, error)
	ListShifts(ctx context.Context, runID string) ([]*journal.ShiftRecord, error)
	BeginRestore(ctx context.Context, source *journal.Run, apply bool) (string, error)
}

// Restore sets every file journaled by run runID back to its recorded atime
// and mtime, including files the run was stopped before confirming. Files that no longer exist are reported and skipped. With apply
// false the restore is only printed.
func (s *Shifter) Restore(ctx context.Context, j Journal, runID string, apply bool) (*Result, error) {
	start := time.Now()

	run, err := j.GetRun(ctx, runID)
	if err != nil {
		return nil, err
	}
	if !run.Applied {
		return nil, fmt.Errorf("%w: %s", ErrRunNotApplied, run.ID)
	}

	records, err := j.ListShifts(ctx, run.ID)
	if err != nil {
		return nil, err
	}

	restoreID, err := j.BeginRestore(ctx, run, apply)
	if err != nil {
		return nil, fmt.Errorf("journal restore: %w", err)
	}

	result := &Result{
		Summary: models.RunSummary{
			RunID:    restoreID,
			InputDir: run.InputDir,
			Months:   run.Months,
			Days:     run.Days,
			Cutoff:   run.Cutoff,
			Applied:  apply,
			Scanned:  len(records),
		},
	}

	fmt.Fprintf(s.out, "restoring run: %s\n", run.ID)
	fmt.Fprintln(s.out, "processing files...")

	for _, rec := range records {
		if err := ctx.Err(); err != nil {
			return result, s.abort(ctx, j, result, start, err)
		}
		// A planned record of an applied run may have been changed by a
		// run that stopped before marking it.
		if rec.Status != models.StatusShifted && rec.Status != models.StatusPlanned {
			continue
		}

		times, err := statTimes(rec.Path)
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				s.warn(fmt.Sprintf("%s: no longer exists, skipped", rec.Path))
				result.MissingPaths = append(result.MissingPaths, rec.Path)
				continue
			}
			s.fail(result, models.ShiftEntry{Path: rec.Path, Status: models.StatusFailed, Error: err.Error()})
			continue
		}

		entry := models.ShiftEntry{
			Path:    rec.Path,
			Atime:   times.atime,
			Mtime:   times.mtime,
			Ctime:   times.ctime,
			Base:    times.mtime,
			NewTime: rec.OldMtime,
			Status:  models.StatusPlanned,
		}
		result.Summary.Selected++
		fmt.Fprintln(s.out, entry.Line())

		if apply {
			if err := s.apply(ctx, j, &entry, restoreID, rec.OldAtime, rec.OldMtime); err != nil {
				return result, s.abort(ctx, j, result, start, err)
			}
			if entry.Status == models.StatusFailed {
				s.fail(result, entry)
				continue
			}
			result.Summary.Shifted++
		}

		s.logger.LogShift(entry)
		result.Entries = append(result.Entries, entry)
	}

	fmt.Fprintln(s.out, "done processing files...")

	result.Summary.Duration = time.Since(start)
	if err := s.finish(ctx, j, result); err != nil {
		return result, err
	}
	return result, nil
}
