package assistant

import (
	"testing"
	"time"

	"github.com/example/group-scheduler/internal/availability"
)

// Thursday, 14 March 2024.
func referenceTime() time.Time {
	return time.Date(2024, time.March, 14, 10, 0, 0, 0, time.UTC)
}

func TestDateRange(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name       string
		preference string
		wantStart  string
		wantEnd    string
	}{
		{name: "today", preference: "today", wantStart: "2024-03-14", wantEnd: "2024-03-14"},
		{name: "tomorrow", preference: "tomorrow", wantStart: "2024-03-15", wantEnd: "2024-03-15"},
		{name: "this week runs to sunday", preference: "this_week", wantStart: "2024-03-14", wantEnd: "2024-03-17"},
		{name: "next week is monday to sunday", preference: "next_week", wantStart: "2024-03-18", wantEnd: "2024-03-24"},
		{name: "weekend is saturday and sunday", preference: "weekend", wantStart: "2024-03-16", wantEnd: "2024-03-17"},
		{name: "named weekday ahead", preference: "friday", wantStart: "2024-03-15", wantEnd: "2024-03-15"},
		{name: "named weekday behind wraps a week", preference: "monday", wantStart: "2024-03-18", wantEnd: "2024-03-18"},
		{name: "same weekday means next week", preference: "thursday", wantStart: "2024-03-21", wantEnd: "2024-03-21"},
		{name: "default is the next seven days", preference: "", wantStart: "2024-03-14", wantEnd: "2024-03-20"},
		{name: "unknown preference uses the default", preference: "someday", wantStart: "2024-03-14", wantEnd: "2024-03-20"},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			start, end := DateRange(tc.preference, referenceTime(), time.UTC)
			if start.String() != tc.wantStart || end.String() != tc.wantEnd {
				t.Fatalf("DateRange(%q) = %s..%s, want %s..%s",
					tc.preference, start, end, tc.wantStart, tc.wantEnd)
			}
		})
	}
}

func TestDateRange_SundayEdgeCases(t *testing.T) {
	t.Parallel()

	sunday := time.Date(2024, time.March, 17, 9, 0, 0, 0, time.UTC)

	start, end := DateRange("this_week", sunday, time.UTC)
	if start.String() != "2024-03-17" || end.String() != "2024-03-17" {
		t.Fatalf("this_week on sunday = %s..%s, want the single day", start, end)
	}

	start, end = DateRange("next_week", sunday, time.UTC)
	if start.String() != "2024-03-18" || end.String() != "2024-03-24" {
		t.Fatalf("next_week on sunday = %s..%s", start, end)
	}

	start, _ = DateRange("weekend", sunday, time.UTC)
	if start.String() != "2024-03-23" {
		t.Fatalf("weekend on sunday starts %s, want 2024-03-23", start)
	}
}

func TestDateRange_UsesCalendarDays(t *testing.T) {
	t.Parallel()

	// A late-evening reference still anchors to the local calendar day.
	loc := time.FixedZone("UTC-8", -8*60*60)
	late := time.Date(2024, time.March, 15, 6, 30, 0, 0, time.UTC) // 22:30 on the 14th locally

	start, _ := DateRange("today", late, loc)
	want := availability.Date{Year: 2024, Month: time.March, Day: 14}
	if start != want {
		t.Fatalf("today = %s, want %s", start, want)
	}
}
