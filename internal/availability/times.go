package availability

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidClockTime indicates an "HH:MM" string could not be parsed.
var ErrInvalidClockTime = errors.New("availability: invalid clock time")

// Date identifies a calendar day independent of timezone or instant.
//
// Operating on date components rather than instants keeps day enumeration
// immune to DST transitions: every calendar day in a range yields exactly
// one entry.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// ParseDate parses a date in "YYYY-MM-DD" form.
func ParseDate(value string) (Date, error) {
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		return Date{}, fmt.Errorf("availability: invalid date %q: %w", value, err)
	}
	return Date{Year: t.Year(), Month: t.Month(), Day: t.Day()}, nil
}

// DateOf extracts the calendar day of an instant in the given location.
func DateOf(t time.Time, loc *time.Location) Date {
	if loc == nil {
		loc = time.Local
	}
	local := t.In(loc)
	return Date{Year: local.Year(), Month: local.Month(), Day: local.Day()}
}

// String renders the date as "YYYY-MM-DD".
func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, int(d.Month), d.Day)
}

// IsZero reports whether the date is unset.
func (d Date) IsZero() bool {
	return d.Year == 0 && d.Month == 0 && d.Day == 0
}

// Next returns the following calendar day.
func (d Date) Next() Date {
	t := time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC).AddDate(0, 0, 1)
	return Date{Year: t.Year(), Month: t.Month(), Day: t.Day()}
}

// Compare orders dates chronologically, returning -1, 0 or 1.
func (d Date) Compare(other Date) int {
	switch {
	case d.Year != other.Year:
		return compareInt(d.Year, other.Year)
	case d.Month != other.Month:
		return compareInt(int(d.Month), int(other.Month))
	default:
		return compareInt(d.Day, other.Day)
	}
}

// At converts the date plus a minute-of-day offset into an absolute instant
// in the provided location.
func (d Date) At(minuteOfDay int, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.Local
	}
	return time.Date(d.Year, d.Month, d.Day, minuteOfDay/60, minuteOfDay%60, 0, 0, loc)
}

func compareInt(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// EnumerateDates lists every calendar day from start through end inclusive,
// ascending. An inverted range yields an empty slice.
func EnumerateDates(start, end Date) []Date {
	if start.Compare(end) > 0 {
		return nil
	}
	dates := make([]Date, 0, 8)
	for d := start; d.Compare(end) <= 0; d = d.Next() {
		dates = append(dates, d)
	}
	return dates
}

// TimeToMinutes converts an "HH:MM" 24-hour clock string to minute-of-day.
func TimeToMinutes(value string) (int, error) {
	var hours, minutes int
	if _, err := fmt.Sscanf(value, "%d:%d", &hours, &minutes); err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidClockTime, value)
	}
	if hours < 0 || hours > 23 || minutes < 0 || minutes > 59 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidClockTime, value)
	}
	return hours*60 + minutes, nil
}

// MinutesToTime renders a minute-of-day as a zero-padded "HH:MM" string.
// It is the inverse of TimeToMinutes for values in [0, 1439].
func MinutesToTime(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}
