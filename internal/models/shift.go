// Package models defines the data types shared between the shifter, the journal
// and the loggers.
package models

import (
	"fmt"
	"time"
)

// DateLayout is the calendar date format used for cutoffs and new mtimes.
const DateLayout = "2006-01-02"

// Entry outcome constants
const (
	StatusPlanned = "PLANNED" // Computed only (dry run)
	StatusShifted = "SHIFTED" // atime/mtime rewritten
	StatusFailed  = "FAILED"  // stat or chtimes failed
)

// ShiftParams holds the validated inputs of a shift run.
type ShiftParams struct {
	InputDir string    // Absolute, symlink-resolved directory
	Months   int       // Months added to the base time
	Days     int       // Days added after the months
	Cutoff   time.Time // Local midnight; files with mtime strictly before it qualify
	Apply    bool      // When false, nothing is modified
}

// ShiftEntry describes one selected file.
type ShiftEntry struct {
	Path    string    `yaml:"path"`
	Atime   time.Time `yaml:"atime"`
	Mtime   time.Time `yaml:"mtime"`
	Ctime   time.Time `yaml:"ctime"`
	Base    time.Time `yaml:"base"`
	NewTime time.Time `yaml:"new_time"`
	Status  string    `yaml:"status"`
	Error   string    `yaml:"error,omitempty"`
}

// Line renders the entry the way it is echoed on stdout.
func (e ShiftEntry) Line() string {
	return fmt.Sprintf("file:%s,new_mtime:%s", e.Path, e.NewTime.Format(DateLayout))
}

// RunSummary is the aggregate result of a shift or restore run.
type RunSummary struct {
	RunID    string        `yaml:"run_id,omitempty"`
	InputDir string        `yaml:"input_dir"`
	Months   int           `yaml:"months"`
	Days     int           `yaml:"days"`
	Cutoff   string        `yaml:"cutoff"`
	Applied  bool          `yaml:"applied"`
	Scanned  int           `yaml:"scanned"`
	Selected int           `yaml:"selected"`
	Shifted  int           `yaml:"shifted"`
	Failed   int           `yaml:"failed"`
	Duration time.Duration `yaml:"duration"`
	Errors   []string      `yaml:"errors,omitempty"`
}

// HasFailures reports whether any file or directory could not be processed.
func (s RunSummary) HasFailures() bool {
	return s.Failed > 0 || len(s.Errors) > 0
}
