package launcher

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"os/exec"
	"time"
)

// Shell-compatible statuses for programs that could not be started.
const (
	ExitCannotExecute = 126
	ExitNotFound      = 127
)

// cancelGrace is how long a child gets to exit after cancelSignal before it
// is killed.
const cancelGrace = 10 * time.Second

// ExecRunner runs programs with os/exec. Nil streams default to the
// process's own stdin, stdout and stderr.
type ExecRunner struct {
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// Run starts program with args and blocks until it exits.
//
// The child's exit status is returned as is. A child killed by a signal
// yields 128+signal. A program that cannot be started is reported on
// stderr the way a POSIX shell reports it, with status 127 when it is not
// found and 126 when it is not executable.
//
// Cancelling ctx sends the child cancelSignal (SIGTERM on unix) and kills
// it only if it is still running after a grace period.
func (r *ExecRunner) Run(ctx context.Context, program string, args []string) int {
	cmd := exec.CommandContext(ctx, program, args...)
	cmd.Stdin = r.Stdin
	if cmd.Stdin == nil {
		cmd.Stdin = os.Stdin
	}
	cmd.Stdout = r.Stdout
	if cmd.Stdout == nil {
		cmd.Stdout = os.Stdout
	}
	stderr := r.Stderr
	if stderr == nil {
		stderr = os.Stderr
	}
	cmd.Stderr = stderr
	cmd.Cancel = func() error {
		return cmd.Process.Signal(cancelSignal)
	}
	cmd.WaitDelay = cancelGrace

	err := cmd.Run()
	if err == nil {
		return 0
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return exitStatus(exitErr)
	}

	return startFailure(stderr, program, err)
}

// startFailure reports a program that never ran.
func startFailure(stderr io.Writer, program string, err error) int {
	switch {
	case errors.Is(err, exec.ErrNotFound), errors.Is(err, fs.ErrNotExist):
		fmt.Fprintf(stderr, "%s: command not found\n", program)
		return ExitNotFound
	case errors.Is(err, fs.ErrPermission):
		fmt.Fprintf(stderr, "%s: Permission denied\n", program)
		return ExitCannotExecute
	default:
		fmt.Fprintf(stderr, "%s: %v\n", program, err)
		return 1
	}
}
