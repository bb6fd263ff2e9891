//go:build !unix

package launcher

import (
	"os"
	"os/exec"
)

// Only Kill can be delivered to a process here.
var cancelSignal os.Signal = os.Kill

func exitStatus(exitErr *exec.ExitError) int {
	return exitErr.ExitCode()
}
