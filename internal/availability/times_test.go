package availability

import (
	"testing"
	"time"
)

func TestTimeToMinutes(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name    string
		input   string
		want    int
		wantErr bool
	}{
		{name: "midnight", input: "00:00", want: 0},
		{name: "morning", input: "09:30", want: 570},
		{name: "end of day", input: "23:59", want: 1439},
		{name: "hour out of range", input: "24:00", wantErr: true},
		{name: "minute out of range", input: "12:60", wantErr: true},
		{name: "not a time", input: "soon", wantErr: true},
		{name: "empty", input: "", wantErr: true},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			got, err := TimeToMinutes(tc.input)
			if tc.wantErr {
				if err == nil {
					t.Fatalf("expected error for %q, got %d", tc.input, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tc.want {
				t.Fatalf("TimeToMinutes(%q) = %d, want %d", tc.input, got, tc.want)
			}
		})
	}
}

func TestMinutesToTime_InvertsTimeToMinutes(t *testing.T) {
	t.Parallel()

	for _, input := range []string{"00:00", "06:00", "09:30", "13:05", "23:30"} {
		minutes, err := TimeToMinutes(input)
		if err != nil {
			t.Fatalf("unexpected error parsing %q: %v", input, err)
		}
		if got := MinutesToTime(minutes); got != input {
			t.Fatalf("MinutesToTime(%d) = %q, want %q", minutes, got, input)
		}
	}
}

func TestEnumerateDates(t *testing.T) {
	t.Parallel()

	start := Date{Year: 2024, Month: time.March, Day: 30}
	end := Date{Year: 2024, Month: time.April, Day: 2}

	dates := EnumerateDates(start, end)
	want := []string{"2024-03-30", "2024-03-31", "2024-04-01", "2024-04-02"}
	if len(dates) != len(want) {
		t.Fatalf("expected %d dates, got %d", len(want), len(dates))
	}
	for i, date := range dates {
		if date.String() != want[i] {
			t.Fatalf("date %d = %s, want %s", i, date, want[i])
		}
	}
}

func TestEnumerateDates_SingleDayAndInverted(t *testing.T) {
	t.Parallel()

	day := Date{Year: 2024, Month: time.March, Day: 14}
	if got := EnumerateDates(day, day); len(got) != 1 || got[0] != day {
		t.Fatalf("single-day range = %v, want [%s]", got, day)
	}
	if got := EnumerateDates(day.Next(), day); got != nil {
		t.Fatalf("inverted range = %v, want nil", got)
	}
}

func TestParseDate(t *testing.T) {
	t.Parallel()

	date, err := ParseDate("2024-03-14")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if date.Year != 2024 || date.Month != time.March || date.Day != 14 {
		t.Fatalf("unexpected date: %+v", date)
	}

	if _, err := ParseDate("14/03/2024"); err == nil {
		t.Fatal("expected error for malformed date")
	}
}

func TestDateAt_UsesLocation(t *testing.T) {
	t.Parallel()

	loc := time.FixedZone("UTC+2", 2*60*60)
	date := Date{Year: 2024, Month: time.March, Day: 14}

	instant := date.At(9*60+30, loc)
	if instant.Hour() != 9 || instant.Minute() != 30 {
		t.Fatalf("unexpected local time: %v", instant)
	}
	if _, offset := instant.Zone(); offset != 2*60*60 {
		t.Fatalf("unexpected zone offset: %d", offset)
	}
}
