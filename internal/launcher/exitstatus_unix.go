//go:build unix

package launcher

import (
	"os"
	"os/exec"
	"syscall"
)

var cancelSignal os.Signal = syscall.SIGTERM

// exitStatus converts a finished child's status the way a shell does:
// the exit code, or 128+signal when the child was killed by a signal.
func exitStatus(exitErr *exec.ExitError) int {
	if ws, ok := exitErr.Sys().(syscall.WaitStatus); ok && ws.Signaled() {
		return 128 + int(ws.Signal())
	}
	return exitErr.ExitCode()
}
