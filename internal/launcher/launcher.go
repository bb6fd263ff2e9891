// Package launcher runs the external mtime-shifting program with a fixed,
// compiled-in set of arguments.
//
// The launcher reads no flags, arguments or environment variables. It clears
// the terminal when attached to one, runs the program with the input
// directory, month offset, day offset and cutoff date as positional
// arguments, and exits with the program's own status.
package launcher

import (
	"context"
	"io"
	"os"

	"github.com/mattn/go-isatty"
)

// Compiled-in invocation. The values are forwarded verbatim and are never
// parsed or validated here.
const (
	DefaultProgram              = "sandman_shift_mtimes.py"
	DefaultInputDir             = "/lustre/scratch123/hgi/projects/ukbb_scrna/recover"
	DefaultShiftAddMonths       = "27"
	DefaultShiftAddDays         = "4"
	DefaultShiftOlderThanCutoff = "2022-03-29"
)

// clearSequence homes the cursor, clears the screen and drops the scrollback,
// matching what clear(1) emits on common terminals.
const clearSequence = "\033[H\033[2J\033[3J"

// Invocation is the program plus its four positional arguments.
type Invocation struct {
	Program              string
	InputDir             string
	ShiftAddMonths       string
	ShiftAddDays         string
	ShiftOlderThanCutoff string
}

// Defaults returns the compiled-in invocation.
func Defaults() Invocation {
	return Invocation{
		Program:              DefaultProgram,
		InputDir:             DefaultInputDir,
		ShiftAddMonths:       DefaultShiftAddMonths,
		ShiftAddDays:         DefaultShiftAddDays,
		ShiftOlderThanCutoff: DefaultShiftOlderThanCutoff,
	}
}

// Args returns the positional arguments in their fixed order:
// input_dir, shift_add_months, shift_add_days, shift_older_than_cutoff.
func (inv Invocation) Args() []string {
	return []string{
		inv.InputDir,
		inv.ShiftAddMonths,
		inv.ShiftAddDays,
		inv.ShiftOlderThanCutoff,
	}
}

// Command returns the full command line, program first.
func (inv Invocation) Command() []string {
	return append([]string{inv.Program}, inv.Args()...)
}

// Runner starts a program, waits for it and returns its exit status.
type Runner interface {
	Run(ctx context.Context, program string, args []string) int
}

// Launcher is a reusable launcher for one fixed invocation.
// It follows the http.Client pattern: zero-valued fields fall back to defaults.
type Launcher struct {
	// Invocation is the command to run.
	Invocation Invocation

	// Runner executes the command. Defaults to an ExecRunner on the
	// process's own standard streams.
	Runner Runner

	// Terminal receives the clear-screen sequence when it is a TTY.
	// Defaults to os.Stdout.
	Terminal io.Writer
}

// NewLauncher creates a Launcher for the compiled-in invocation.
func NewLauncher() *Launcher {
	return &Launcher{
		Invocation: Defaults(),
		Runner:     &ExecRunner{},
		Terminal:   os.Stdout,
	}
}

// Run clears the terminal and runs the invocation, returning the program's
// exit status unchanged.
func (l *Launcher) Run(ctx context.Context) int {
	terminal := l.Terminal
	if terminal == nil {
		terminal = os.Stdout
	}
	ClearScreen(terminal)

	runner := l.Runner
	if runner == nil {
		runner = &ExecRunner{}
	}

	return runner.Run(ctx, l.Invocation.Program, l.Invocation.Args())
}

// ClearScreen clears w when it is a terminal and reports whether it did.
// Anything that is not a TTY is left untouched.
func ClearScreen(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	fd := f.Fd()
	if !isatty.IsTerminal(fd) && !isatty.IsCygwinTerminal(fd) {
		return false
	}

	_, err := io.WriteString(f, clearSequence)
	return err == nil
}
