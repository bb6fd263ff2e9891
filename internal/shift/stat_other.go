//go:build !linux && !darwin

package shift

import "os"

// statTimes falls back to the modification time where the platform's change
// and access times are not portable.
func statTimes(path string) (fileTimes, error) {
	info, err := os.Stat(path)
	if err != nil {
		return fileTimes{}, err
	}
	mtime := info.ModTime()
	return fileTimes{atime: mtime, mtime: mtime, ctime: mtime}, nil
}
