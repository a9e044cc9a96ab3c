package availability

import (
	"testing"
	"time"
)

func scanEmptyDay(t *testing.T, members []Member, durationMinutes int) []CandidateSlot {
	t.Helper()
	buckets := BuildDayBuckets(testDate(), nil, nil, members, testLoc)
	return ScanDay(buckets, members, durationMinutes)
}

func TestScanDay_FullyFreeDayProducesEveryPosition(t *testing.T) {
	t.Parallel()

	slots := scanEmptyDay(t, fourMembers(), 60)

	// A 60-minute window occupies two buckets, so start positions run from
	// 06:00 through 22:30 inclusive.
	if len(slots) != 34 {
		t.Fatalf("expected 34 candidate slots, got %d", len(slots))
	}
	if slots[0].StartTime() != "06:00" {
		t.Fatalf("first slot starts at %s, want 06:00", slots[0].StartTime())
	}
	if last := slots[len(slots)-1]; last.StartTime() != "22:30" {
		t.Fatalf("last slot starts at %s, want 22:30", last.StartTime())
	}
	for _, slot := range slots {
		if len(slot.AvailableMembers) != 4 || len(slot.ConflictingMembers) != 0 {
			t.Fatalf("slot %s: expected all 4 members available, got %d/%d",
				slot.StartTime(), len(slot.AvailableMembers), len(slot.ConflictingMembers))
		}
		if got := Confidence(len(slot.AvailableMembers), 4); got != 100 {
			t.Fatalf("slot %s: confidence = %d, want 100", slot.StartTime(), got)
		}
	}
}

func TestScanDay_PartialConflictStaysViable(t *testing.T) {
	t.Parallel()

	members := fourMembers()
	intervals := []BusyInterval{{UserID: "u2", Date: testDate(), Start: "09:00", End: "10:00"}}
	buckets := BuildDayBuckets(testDate(), intervals, nil, members, testLoc)
	slots := ScanDay(buckets, members, 60)

	var at0930 *CandidateSlot
	for i := range slots {
		if slots[i].StartTime() == "09:30" {
			at0930 = &slots[i]
			break
		}
	}
	if at0930 == nil {
		t.Fatal("expected a viable slot at 09:30; 3 of 4 meets the quorum")
	}
	if len(at0930.AvailableMembers) != 3 {
		t.Fatalf("slot 09:30: %d available, want 3", len(at0930.AvailableMembers))
	}
	if got := Confidence(3, 4); got != 75 {
		t.Fatalf("confidence = %d, want 75", got)
	}
	if len(at0930.ConflictingMembers) != 1 || at0930.ConflictingMembers[0].DisplayName != "Bob" {
		t.Fatalf("unexpected conflicting members: %+v", at0930.ConflictingMembers)
	}
}

func TestScanDay_ExactQuorumIsViable(t *testing.T) {
	t.Parallel()

	members := []Member{
		{UserID: "u1", DisplayName: "Alice"},
		{UserID: "u2", DisplayName: "Bob"},
	}
	intervals := []BusyInterval{{UserID: "u2", Date: testDate(), Start: "06:00", End: "23:00"}}
	buckets := BuildDayBuckets(testDate(), intervals, nil, members, testLoc)
	slots := ScanDay(buckets, members, 60)

	// 1 of 2 available is exactly ceil(2*0.5); slots must not be rejected.
	if len(slots) == 0 {
		t.Fatal("expected viable slots at exact 50% quorum")
	}
	for _, slot := range slots {
		if len(slot.AvailableMembers) != 1 {
			t.Fatalf("slot %s: %d available, want 1", slot.StartTime(), len(slot.AvailableMembers))
		}
	}
}

func TestScanDay_EventBlocksSlotForEveryone(t *testing.T) {
	t.Parallel()

	members := fourMembers()
	events := []Event{{
		ID:      "e1",
		GroupID: "g1",
		Start:   time.Date(2024, time.March, 14, 14, 0, 0, 0, testLoc),
		End:     time.Date(2024, time.March, 14, 15, 0, 0, 0, testLoc),
	}}
	buckets := BuildDayBuckets(testDate(), nil, events, members, testLoc)
	slots := ScanDay(buckets, members, 30)

	for _, slot := range slots {
		if slot.StartMinute >= 13*60+30 && slot.StartMinute < 15*60+30 {
			t.Fatalf("slot %s must not be viable during the event block", slot.StartTime())
		}
	}
}

func TestScanDay_QuorumAndPartitionProperties(t *testing.T) {
	t.Parallel()

	members := fourMembers()
	intervals := []BusyInterval{
		{UserID: "u1", Date: testDate(), Start: "08:00", End: "12:00"},
		{UserID: "u2", Date: testDate(), Start: "10:00", End: "14:00"},
		{UserID: "u3", Date: testDate(), Start: "18:00", End: "20:00"},
	}
	buckets := BuildDayBuckets(testDate(), intervals, nil, members, testLoc)
	slots := ScanDay(buckets, members, 90)

	need := Quorum(len(members))
	for _, slot := range slots {
		if len(slot.AvailableMembers) < need {
			t.Fatalf("slot %s violates quorum: %d < %d", slot.StartTime(), len(slot.AvailableMembers), need)
		}
		if len(slot.AvailableMembers)+len(slot.ConflictingMembers) != len(members) {
			t.Fatalf("slot %s violates partition: %d + %d != %d", slot.StartTime(),
				len(slot.AvailableMembers), len(slot.ConflictingMembers), len(members))
		}
	}
}

func TestScanDay_DegenerateInputs(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name     string
		members  []Member
		duration int
	}{
		{name: "zero members", members: nil, duration: 60},
		{name: "duration not a bucket multiple", members: fourMembers(), duration: 45},
		{name: "zero duration", members: fourMembers(), duration: 0},
		{name: "negative duration", members: fourMembers(), duration: -30},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if slots := scanEmptyDay(t, tc.members, tc.duration); len(slots) != 0 {
				t.Fatalf("expected no candidates, got %d", len(slots))
			}
		})
	}
}

func TestScanDay_WindowLongerThanDay(t *testing.T) {
	t.Parallel()

	// 18 hours of buckets exist; a 20-hour request cannot fit anywhere.
	if slots := scanEmptyDay(t, fourMembers(), 20*60); len(slots) != 0 {
		t.Fatalf("expected no candidates for an oversized window, got %d", len(slots))
	}
}

func TestScanRange_CoversEachDateIndependently(t *testing.T) {
	t.Parallel()

	members := fourMembers()
	start := testDate()
	end := start.Next()
	intervals := []BusyInterval{{UserID: "u1", Date: start, Start: "06:00", End: "23:00"}}

	slots := ScanRange(start, end, intervals, nil, members, 60, testLoc)

	firstDay := 0
	secondDay := 0
	for _, slot := range slots {
		switch slot.Date {
		case start:
			firstDay++
			if len(slot.AvailableMembers) != 3 {
				t.Fatalf("day one slot %s: %d available, want 3", slot.StartTime(), len(slot.AvailableMembers))
			}
		case end:
			secondDay++
			if len(slot.AvailableMembers) != 4 {
				t.Fatalf("day two slot %s: %d available, want 4", slot.StartTime(), len(slot.AvailableMembers))
			}
		}
	}
	if firstDay == 0 || secondDay == 0 {
		t.Fatalf("expected candidates on both days, got %d and %d", firstDay, secondDay)
	}
}

func TestScanDay_Idempotent(t *testing.T) {
	t.Parallel()

	members := fourMembers()
	intervals := []BusyInterval{{UserID: "u3", Date: testDate(), Start: "09:00", End: "11:00"}}

	first := ScanRange(testDate(), testDate(), intervals, nil, members, 60, testLoc)
	second := ScanRange(testDate(), testDate(), intervals, nil, members, 60, testLoc)

	if len(first) != len(second) {
		t.Fatalf("repeated scans differ in length: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i].StartMinute != second[i].StartMinute || len(first[i].AvailableMembers) != len(second[i].AvailableMembers) {
			t.Fatalf("repeated scans differ at index %d", i)
		}
	}
}
