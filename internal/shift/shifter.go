// Package shift selects files older than a cutoff date and moves their
// modification times forward by a number of months and days.
//
// A run echoes its inputs, walks the input directory, and prints one
// "file:<path>,new_mtime:<date>" line per selected file. Nothing is modified
// unless the parameters ask for it; applied changes are journaled first so
// they can be restored.
package shift

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/harrison/sandman/internal/fileutil"
	"github.com/harrison/sandman/internal/logger"
	"github.com/harrison/sandman/internal/models"
	"golang.org/x/sync/errgroup"
)

// DefaultWorkers is the stat concurrency used when Options.Workers is unset.
const DefaultWorkers = 8

// progressInterval is how many files are statted between progress reports.
const progressInterval = 1000

// Logger defines the interface for logging run progress and results.
type Logger interface {
	LogWarn(message string)
	LogRunStart(params models.ShiftParams)
	LogShift(entry models.ShiftEntry)
	LogProgress(done, total int)
	LogSummary(summary models.RunSummary)
}

// Recorder journals runs. Each entry is recorded before the file it
// describes is modified.
type Recorder interface {
	BeginRun(ctx context.Context, params models.ShiftParams) (string, error)
	RecordShift(ctx context.Context, runID string, entry models.ShiftEntry) (int64, error)
	SetShiftStatus(ctx context.Context, shiftID int64, status string, errMsg string) error
	FinishRun(ctx context.Context, runID string, summary models.RunSummary) error
}

// Options configures a Shifter. Every field is optional.
type Options struct {
	Workers  int
	Logger   Logger
	Recorder Recorder
	Out      io.Writer // Echo and entry lines; defaults to os.Stdout
}

// Shifter runs shifts and restores.
type Shifter struct {
	workers  int
	logger   Logger
	recorder Recorder
	out      io.Writer
}

// Result is the outcome of a run.
type Result struct {
	Summary models.RunSummary
	Entries []models.ShiftEntry
	// FailedPaths are files and directories that could not be processed.
	FailedPaths []string
	// MissingPaths are journaled files that no longer exist (restore only).
	MissingPaths []string
}

// NewShifter creates a Shifter from opts.
func NewShifter(opts Options) *Shifter {
	s := &Shifter{
		workers:  opts.Workers,
		logger:   opts.Logger,
		recorder: opts.Recorder,
		out:      opts.Out,
	}
	if s.workers < 1 {
		s.workers = DefaultWorkers
	}
	if s.logger == nil {
		s.logger = logger.NewNoOpLogger()
	}
	if s.out == nil {
		s.out = os.Stdout
	}
	return s
}

// statResult pairs a scanned path with its timestamps.
type statResult struct {
	path  string
	times fileTimes
	err   error
}

// Run shifts the files below params.InputDir whose mtime is before
// params.Cutoff. Per-file failures are collected in the result; the
// returned error is reserved for failures that stop the run (an unreadable
// root, a journal error, or ctx cancellation).
func (s *Shifter) Run(ctx context.Context, params models.ShiftParams) (*Result, error) {
	start := time.Now()

	s.logger.LogRunStart(params)
	s.echo(params)

	scan, err := fileutil.ScanFiles(params.InputDir)
	if err != nil {
		return nil, fmt.Errorf("scan %s: %w", params.InputDir, err)
	}

	result := &Result{
		Summary: models.RunSummary{
			InputDir: params.InputDir,
			Months:   params.Months,
			Days:     params.Days,
			Cutoff:   params.Cutoff.Format(models.DateLayout),
			Applied:  params.Apply,
			Scanned:  len(scan.Files),
		},
	}

	if s.recorder != nil {
		runID, err := s.recorder.BeginRun(ctx, params)
		if err != nil {
			return nil, fmt.Errorf("journal run: %w", err)
		}
		result.Summary.RunID = runID
	}

	for _, scanErr := range scan.Errors {
		s.warn(fmt.Sprintf("scan error: %v", scanErr))
		result.Summary.Errors = append(result.Summary.Errors, scanErr.Error())
		result.FailedPaths = append(result.FailedPaths, errorPath(scanErr))
	}

	fmt.Fprintln(s.out, "processing files...")

	total := len(scan.Files)
	for offset := 0; offset < total; offset += progressInterval {
		end := min(offset+progressInterval, total)
		batch, err := s.statBatch(ctx, scan.Files[offset:end])
		if err != nil {
			return result, s.abort(ctx, s.recorder, result, start, err)
		}
		for _, st := range batch {
			if err := s.process(ctx, params, st, result); err != nil {
				return result, s.abort(ctx, s.recorder, result, start, err)
			}
		}
		s.logger.LogProgress(end, total)
	}

	fmt.Fprintln(s.out, "done processing files...")

	result.Summary.Duration = time.Since(start)
	if err := s.finish(ctx, s.recorder, result); err != nil {
		return result, err
	}
	return result, nil
}

// statBatch stats paths concurrently and returns the results in input order.
func (s *Shifter) statBatch(ctx context.Context, paths []string) ([]statResult, error) {
	results := make([]statResult, len(paths))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.workers)
	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			times, err := statTimes(path)
			results[i] = statResult{path: path, times: times, err: err}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	// Workers stop early on cancellation without reporting it
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return results, nil
}

// process handles one statted file.
func (s *Shifter) process(ctx context.Context, params models.ShiftParams, st statResult, result *Result) error {
	if st.err != nil {
		s.fail(result, models.ShiftEntry{Path: st.path, Status: models.StatusFailed, Error: st.err.Error()})
		return nil
	}
	if !st.times.mtime.Before(params.Cutoff) {
		return nil
	}

	base := BaseTime(st.times.mtime, st.times.ctime)
	entry := models.ShiftEntry{
		Path:    st.path,
		Atime:   st.times.atime,
		Mtime:   st.times.mtime,
		Ctime:   st.times.ctime,
		Base:    base,
		NewTime: AddMonthsDays(base, params.Months, params.Days),
		Status:  models.StatusPlanned,
	}
	result.Summary.Selected++
	fmt.Fprintln(s.out, entry.Line())

	if params.Apply {
		if err := s.apply(ctx, s.recorder, &entry, result.Summary.RunID, entry.NewTime, entry.NewTime); err != nil {
			return err
		}
		if entry.Status == models.StatusFailed {
			s.fail(result, entry)
			return nil
		}
		result.Summary.Shifted++
	}

	s.logger.LogShift(entry)
	result.Entries = append(result.Entries, entry)
	return nil
}

// apply journals entry and then sets the file's times. A failed change is
// reported through entry.Status; the returned error means the journal
// could not be written and nothing was changed.
func (s *Shifter) apply(ctx context.Context, rec Recorder, entry *models.ShiftEntry, runID string, atime, mtime time.Time) error {
	var shiftID int64
	if rec != nil {
		id, err := rec.RecordShift(ctx, runID, *entry)
		if err != nil {
			return fmt.Errorf("journal %s: %w", entry.Path, err)
		}
		shiftID = id
	}

	entry.Status = models.StatusShifted
	if err := os.Chtimes(entry.Path, atime, mtime); err != nil {
		entry.Status = models.StatusFailed
		entry.Error = err.Error()
	}

	// The file may already have changed, so its status is written even if
	// the run is being cancelled.
	if rec != nil {
		if err := rec.SetShiftStatus(context.WithoutCancel(ctx), shiftID, entry.Status, entry.Error); err != nil {
			return fmt.Errorf("journal %s: %w", entry.Path, err)
		}
	}
	return nil
}

func (s *Shifter) fail(result *Result, entry models.ShiftEntry) {
	result.Summary.Failed++
	result.FailedPaths = append(result.FailedPaths, entry.Path)
	result.Entries = append(result.Entries, entry)
	s.logger.LogShift(entry)
}

// finish closes the journaled run and logs the summary.
func (s *Shifter) finish(ctx context.Context, rec Recorder, result *Result) error {
	if rec != nil && result.Summary.RunID != "" {
		if err := rec.FinishRun(ctx, result.Summary.RunID, result.Summary); err != nil {
			return fmt.Errorf("journal run: %w", err)
		}
	}
	s.logger.LogSummary(result.Summary)
	return nil
}

// abort closes the journaled run after err stopped it, so the counts of
// what was changed before the stop are kept. It runs even when ctx is done.
func (s *Shifter) abort(ctx context.Context, rec Recorder, result *Result, start time.Time, err error) error {
	result.Summary.Duration = time.Since(start)
	result.Summary.Errors = append(result.Summary.Errors, err.Error())
	if finishErr := s.finish(context.WithoutCancel(ctx), rec, result); finishErr != nil {
		return errors.Join(err, finishErr)
	}
	return err
}

func (s *Shifter) echo(params models.ShiftParams) {
	fmt.Fprintf(s.out, "input dir: %s\n", params.InputDir)
	fmt.Fprintf(s.out, "input shift_add_months: %d\n", params.Months)
	fmt.Fprintf(s.out, "input shift_add_days: %d\n", params.Days)
	fmt.Fprintf(s.out, "input shift_older_than_cutoff: %s\n", params.Cutoff.Format(EchoLayout))
}

func (s *Shifter) warn(message string) {
	s.logger.LogWarn(message)
}

// errorPath extracts the path an error refers to, or its text.
func errorPath(err error) string {
	var pathErr *os.PathError
	if errors.As(err, &pathErr) {
		return pathErr.Path
	}
	return err.Error()
}
