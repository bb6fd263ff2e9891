//go:build linux || darwin

package shift

import (
	"os"
	"time"

	"golang.org/x/sys/unix"
)

func statTimes(path string) (fileTimes, error) {
	var st unix.Stat_t
	if err := unix.Stat(path, &st); err != nil {
		return fileTimes{}, &os.PathError{Op: "stat", Path: path, Err: err}
	}
	return fileTimes{
		atime: time.Unix(st.Atim.Unix()),
		mtime: time.Unix(st.Mtim.Unix()),
		ctime: time.Unix(st.Ctim.Unix()),
	}, nil
}
