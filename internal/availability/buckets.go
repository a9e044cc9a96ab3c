// Package availability computes viable meeting slots for a group from
// member unavailability records and already scheduled events.
//
// The package is pure computation: callers supply a pre-fetched snapshot of
// members, busy intervals and events, plus an explicit reference time for
// past-slot filtering. Nothing here reads a clock, mutates shared state or
// touches persistence.
package availability

import "time"

const (
	// BucketMinutes is the discretization unit for availability scanning.
	BucketMinutes = 30
	// DayStartMinute is the first scannable bucket of a day (06:00).
	DayStartMinute = 6 * 60
	// DayEndMinute is the last scannable bucket start of a day (23:00).
	DayEndMinute = 23 * 60
	// BufferMinutes is appended after busy intervals and around events so
	// that people are not treated as instantly free when a conflict ends.
	BufferMinutes = 30

	bucketCount = (DayEndMinute-DayStartMinute)/BucketMinutes + 1
)

// Member identifies a group participant in an availability computation.
type Member struct {
	UserID      string
	DisplayName string
}

// BusyInterval is a user-declared period of unavailability on one calendar
// day. Start and End are "HH:MM" times-of-day with Start < End. Intervals
// for the same user may overlap; the aggregator does not require pre-merged
// input.
type BusyInterval struct {
	UserID string
	Date   Date
	Start  string
	End    string
}

// Event is a scheduled commitment with absolute start and end instants.
// Unlike a BusyInterval it occupies every member of the group, not just its
// creator.
type Event struct {
	ID      string
	GroupID string
	Start   time.Time
	End     time.Time
}

// DayBuckets holds, for a single calendar day, the set of busy user IDs per
// fixed 30-minute bucket between 06:00 and 23:00. It is derived state built
// fresh per query and never persisted.
type DayBuckets struct {
	Date Date
	busy [bucketCount]map[string]struct{}
}

// BuildDayBuckets aggregates busy intervals and events for one day into
// per-bucket busy sets.
//
// Busy intervals mark their own user across [start, end+buffer). Events mark
// every supplied member across [start-buffer, end+buffer), clamped to the
// scannable window; an event is a group-wide commitment and conservatively
// blocks the whole group. Intervals with malformed times are skipped, as are
// events whose local date does not match. The location resolves event
// instants to local times-of-day; nil means time.Local.
func BuildDayBuckets(date Date, intervals []BusyInterval, events []Event, members []Member, loc *time.Location) DayBuckets {
	if loc == nil {
		loc = time.Local
	}

	buckets := DayBuckets{Date: date}
	for i := range buckets.busy {
		buckets.busy[i] = make(map[string]struct{})
	}

	for _, interval := range intervals {
		if interval.Date != date {
			continue
		}
		start, err := TimeToMinutes(interval.Start)
		if err != nil {
			continue
		}
		end, err := TimeToMinutes(interval.End)
		if err != nil {
			continue
		}
		buckets.mark(interval.UserID, start, end+BufferMinutes)
	}

	for _, event := range events {
		if DateOf(event.Start, loc) != date {
			continue
		}
		localStart := event.Start.In(loc)
		localEnd := event.End.In(loc)

		start := localStart.Hour()*60 + localStart.Minute() - BufferMinutes
		end := localEnd.Hour()*60 + localEnd.Minute() + BufferMinutes
		if start < DayStartMinute {
			start = DayStartMinute
		}
		if end > DayEndMinute {
			end = DayEndMinute
		}
		for _, member := range members {
			buckets.mark(member.UserID, start, end)
		}
	}

	return buckets
}

// mark flags the user busy in every bucket whose start falls within the
// half-open minute range [from, to).
func (b *DayBuckets) mark(userID string, from, to int) {
	for i := range b.busy {
		minute := DayStartMinute + i*BucketMinutes
		if minute >= from && minute < to {
			b.busy[i][userID] = struct{}{}
		}
	}
}

// BusyAt returns the busy user IDs for the bucket starting at the given
// minute-of-day, or nil when the minute is outside the scannable window.
func (b *DayBuckets) BusyAt(minuteOfDay int) map[string]struct{} {
	index, ok := bucketIndex(minuteOfDay)
	if !ok {
		return nil
	}
	return b.busy[index]
}

func bucketIndex(minuteOfDay int) (int, bool) {
	if minuteOfDay < DayStartMinute || minuteOfDay > DayEndMinute {
		return 0, false
	}
	offset := minuteOfDay - DayStartMinute
	if offset%BucketMinutes != 0 {
		return 0, false
	}
	return offset / BucketMinutes, true
}
