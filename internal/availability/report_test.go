package availability

import (
	"sort"
	"testing"
)

func TestBuildDayReports_GroupsAndSortsByDate(t *testing.T) {
	t.Parallel()

	members := fourMembers()
	dayOne := testDate()
	dayTwo := dayOne.Next()

	slots := ScanRange(dayOne, dayTwo, nil, nil, members, ReportDurationMinutes, testLoc)
	reports := BuildDayReports(slots, TimePreferenceNone)

	if len(reports) != 2 {
		t.Fatalf("expected 2 day reports, got %d", len(reports))
	}
	if reports[0].Date != dayOne || reports[1].Date != dayTwo {
		t.Fatalf("reports out of date order: %s, %s", reports[0].Date, reports[1].Date)
	}

	for _, report := range reports {
		if !sort.StringsAreSorted(report.TimeSlots) {
			t.Fatalf("slots for %s are not time-sorted: %v", report.Date, report.TimeSlots)
		}
		if report.TimeSlots[0] != "06:00-07:00" {
			t.Fatalf("first slot = %s, want 06:00-07:00", report.TimeSlots[0])
		}
	}
}

func TestBuildDayReports_UnionsAvailableMembers(t *testing.T) {
	t.Parallel()

	members := fourMembers()
	// Alice is busy mornings, Dave evenings; both still appear in the day's
	// union because each is free in some slot.
	intervals := []BusyInterval{
		{UserID: "u1", Date: testDate(), Start: "06:00", End: "12:00"},
		{UserID: "u4", Date: testDate(), Start: "17:00", End: "23:00"},
	}
	slots := ScanRange(testDate(), testDate(), intervals, nil, members, ReportDurationMinutes, testLoc)
	reports := BuildDayReports(slots, TimePreferenceNone)

	if len(reports) != 1 {
		t.Fatalf("expected 1 day report, got %d", len(reports))
	}
	if got := len(reports[0].AvailableMembers); got != 4 {
		t.Fatalf("expected union of 4 member names, got %d: %v", got, reports[0].AvailableMembers)
	}
}

func TestBuildDayReports_AppliesPreferenceFilter(t *testing.T) {
	t.Parallel()

	members := fourMembers()
	slots := ScanRange(testDate(), testDate(), nil, nil, members, ReportDurationMinutes, testLoc)
	reports := BuildDayReports(slots, TimePreferenceMorning)

	if len(reports) != 1 {
		t.Fatalf("expected 1 day report, got %d", len(reports))
	}
	for _, window := range reports[0].TimeSlots {
		start, err := TimeToMinutes(window[:5])
		if err != nil {
			t.Fatalf("malformed window %q: %v", window, err)
		}
		if hour := start / 60; hour < 6 || hour >= 12 {
			t.Fatalf("window %q is outside the morning band", window)
		}
	}
}

func TestBuildDayReports_NoViableSlots(t *testing.T) {
	t.Parallel()

	if reports := BuildDayReports(nil, TimePreferenceNone); len(reports) != 0 {
		t.Fatalf("expected no reports, got %d", len(reports))
	}
}
