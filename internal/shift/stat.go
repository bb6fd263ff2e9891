package shift

import "time"

// fileTimes are the timestamps read from one file.
type fileTimes struct {
	atime time.Time
	mtime time.Time
	ctime time.Time
}
