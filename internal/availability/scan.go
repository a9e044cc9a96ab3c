package availability

import "time"

// CandidateSlot is a scanner-produced viable time window for one day.
// AvailableMembers and ConflictingMembers partition the full member set.
type CandidateSlot struct {
	Date               Date
	StartMinute        int
	EndMinute          int
	AvailableMembers   []Member
	ConflictingMembers []Member
}

// StartTime renders the slot start as "HH:MM".
func (s CandidateSlot) StartTime() string {
	return MinutesToTime(s.StartMinute)
}

// EndTime renders the slot end as "HH:MM".
func (s CandidateSlot) EndTime() string {
	return MinutesToTime(s.EndMinute)
}

// StartAt converts the slot start to an absolute instant in the location.
func (s CandidateSlot) StartAt(loc *time.Location) time.Time {
	return s.Date.At(s.StartMinute, loc)
}

// EndAt converts the slot end to an absolute instant in the location.
func (s CandidateSlot) EndAt(loc *time.Location) time.Time {
	return s.Date.At(s.EndMinute, loc)
}

// Quorum is the minimum number of members that must be free for a slot to
// be viable: at least half the group, rounded up. The 50% floor is a
// deliberate threshold so that larger groups still get suggestions instead
// of zero results from requiring unanimity.
func Quorum(totalMembers int) int {
	return (totalMembers + 1) / 2
}

// ScanDay slides a duration-sized window across the day's buckets and
// returns one CandidateSlot per viable start position, in start order.
//
// Overlapping windows are all produced; selection is a separate concern.
// A position is viable when the union of busy users across the window
// leaves at least Quorum(len(members)) members free. Durations that are
// not positive multiples of the bucket width, and windows that would run
// past the last bucket, produce no candidates.
func ScanDay(buckets DayBuckets, members []Member, durationMinutes int) []CandidateSlot {
	if len(members) == 0 {
		return nil
	}
	if durationMinutes <= 0 || durationMinutes%BucketMinutes != 0 {
		return nil
	}

	windowBuckets := durationMinutes / BucketMinutes
	need := Quorum(len(members))

	var slots []CandidateSlot
	for i := 0; i+windowBuckets <= bucketCount; i++ {
		busy := make(map[string]struct{})
		for j := 0; j < windowBuckets; j++ {
			for userID := range buckets.busy[i+j] {
				busy[userID] = struct{}{}
			}
		}

		if len(members)-len(busy) < need {
			continue
		}

		slot := CandidateSlot{
			Date:        buckets.Date,
			StartMinute: DayStartMinute + i*BucketMinutes,
			EndMinute:   DayStartMinute + i*BucketMinutes + durationMinutes,
		}
		for _, member := range members {
			if _, conflicted := busy[member.UserID]; conflicted {
				slot.ConflictingMembers = append(slot.ConflictingMembers, member)
			} else {
				slot.AvailableMembers = append(slot.AvailableMembers, member)
			}
		}
		slots = append(slots, slot)
	}

	return slots
}

// ScanRange builds buckets and scans each date in [start, end] inclusive,
// concatenating the per-day candidates in date order.
func ScanRange(start, end Date, intervals []BusyInterval, events []Event, members []Member, durationMinutes int, loc *time.Location) []CandidateSlot {
	var slots []CandidateSlot
	for _, date := range EnumerateDates(start, end) {
		buckets := BuildDayBuckets(date, intervals, events, members, loc)
		slots = append(slots, ScanDay(buckets, members, durationMinutes)...)
	}
	return slots
}
