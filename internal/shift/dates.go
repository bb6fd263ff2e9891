package shift

import (
	"fmt"
	"time"

	"github.com/harrison/sandman/internal/models"
)

// EchoLayout is how the cutoff is echoed before processing.
const EchoLayout = "2006-01-02 15:04:05"

// ParseCutoff parses a YYYY-MM-DD date as local midnight.
func ParseCutoff(s string) (time.Time, error) {
	t, err := time.ParseInLocation(models.DateLayout, s, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: shift_older_than_cutoff %q is not a YYYY-MM-DD date", ErrInvalidArgument, s)
	}
	return t, nil
}

// AddMonthsDays adds months and then days to t, keeping the wall clock time.
// When the day of month does not exist in the target month it is clamped to
// the month's last day, so Jan 31 + 1 month is Feb 28 (or 29).
func AddMonthsDays(t time.Time, months, days int) time.Time {
	year, month, day := t.Date()
	hour, minute, sec := t.Clock()

	total := int(month) - 1 + months
	yearDelta, monthIndex := total/12, total%12
	if monthIndex < 0 {
		monthIndex += 12
		yearDelta--
	}
	year += yearDelta
	month = time.Month(monthIndex + 1)

	if last := daysIn(year, month, t.Location()); day > last {
		day = last
	}

	shifted := time.Date(year, month, day, hour, minute, sec, t.Nanosecond(), t.Location())
	return shifted.AddDate(0, 0, days)
}

func daysIn(year int, month time.Month, loc *time.Location) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, loc).Day()
}

// BaseTime is the later of a file's modification and change times.
func BaseTime(mtime, ctime time.Time) time.Time {
	if ctime.After(mtime) {
		return ctime
	}
	return mtime
}
