//go:build linux || darwin

package shift

import (
	"os"

	"golang.org/x/sys/unix"
)

// checkAccess reports whether the caller may read and write dir.
func checkAccess(dir string) error {
	if err := unix.Access(dir, unix.R_OK|unix.W_OK); err != nil {
		return &os.PathError{Op: "access", Path: dir, Err: err}
	}
	return nil
}
