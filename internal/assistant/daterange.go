package assistant

import (
	"time"

	"github.com/example/group-scheduler/internal/availability"
)

// defaultRangeDays is the search horizon when no date preference is given.
const defaultRangeDays = 7

// DateRange converts a parsed date preference into an inclusive calendar
// range relative to an explicit reference instant. Unknown or empty
// preferences yield the next seven days.
func DateRange(preference string, reference time.Time, loc *time.Location) (availability.Date, availability.Date) {
	if loc == nil {
		loc = time.Local
	}
	today := availability.DateOf(reference, loc)

	switch preference {
	case "today":
		return today, today
	case "tomorrow":
		tomorrow := today.Next()
		return tomorrow, tomorrow
	case "this_week":
		return today, addDays(today, daysUntilSunday(weekdayOf(today)))
	case "next_week":
		monday := addDays(today, daysUntilNextMonday(weekdayOf(today)))
		return monday, addDays(monday, 6)
	case "weekend":
		saturday := addDays(today, daysUntilWeekday(weekdayOf(today), time.Saturday))
		return saturday, saturday.Next()
	case "monday", "tuesday", "wednesday", "thursday", "friday", "saturday", "sunday":
		target := addDays(today, daysUntilNamedDay(weekdayOf(today), preference))
		return target, target
	default:
		return today, addDays(today, defaultRangeDays-1)
	}
}

func weekdayOf(d availability.Date) time.Weekday {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC).Weekday()
}

func addDays(d availability.Date, days int) availability.Date {
	for i := 0; i < days; i++ {
		d = d.Next()
	}
	return d
}

func daysUntilSunday(current time.Weekday) int {
	if current == time.Sunday {
		return 0
	}
	return 7 - int(current)
}

func daysUntilNextMonday(current time.Weekday) int {
	if current == time.Sunday {
		return 1
	}
	return 8 - int(current)
}

// daysUntilWeekday returns the offset to the next occurrence of target,
// counting today as a match.
func daysUntilWeekday(current, target time.Weekday) int {
	diff := int(target) - int(current)
	if diff < 0 {
		diff += 7
	}
	return diff
}

// daysUntilNamedDay finds the next strictly future occurrence of the named
// weekday: asking for "monday" on a Monday means next week's.
func daysUntilNamedDay(current time.Weekday, name string) int {
	targets := map[string]time.Weekday{
		"sunday":    time.Sunday,
		"monday":    time.Monday,
		"tuesday":   time.Tuesday,
		"wednesday": time.Wednesday,
		"thursday":  time.Thursday,
		"friday":    time.Friday,
		"saturday":  time.Saturday,
	}
	target := targets[name]
	diff := int(target) - int(current)
	if diff <= 0 {
		diff += 7
	}
	return diff
}
