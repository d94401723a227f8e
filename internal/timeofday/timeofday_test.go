package timeofday_test

import (
	"testing"

	"cultural_planner/internal/domain"
	"cultural_planner/internal/timeofday"
)

func TestParse(t *testing.T) {
	cases := []struct {
		in      string
		display string
		minute  int
	}{
		{"09:00 AM", "09:00 AM", 540},
		{"9:00 AM", "09:00 AM", 540},
		{"9:05am", "09:05 AM", 545},
		{"12:00 AM", "12:00 AM", 0},
		{"12:30 PM", "12:30 PM", 750},
		{"3:00 PM", "03:00 PM", 900},
		{"07:15 pm", "07:15 PM", 1155},
		{"14:15", "02:15 PM", 855},
		{"12:00", "12:00 PM", 720},
		{"08:45", "08:45 AM", 525},
		{"0:30", "12:30 AM", 30},
		{"13:00 PM", "01:00 PM", 780},
		{"  10:00 AM  ", "10:00 AM", 600},
	}
	for _, c := range cases {
		got, ok := timeofday.Parse(c.in)
		if !ok {
			t.Fatalf("Parse(%q) not ok", c.in)
		}
		if got.Display != c.display || got.Minute != c.minute {
			t.Fatalf("Parse(%q) = %+v, want %s/%d", c.in, got, c.display, c.minute)
		}
	}
}

func TestParse_Unreadable(t *testing.T) {
	for _, in := range []string{"", "9", "noon", "9:5", "24:00", "10:60", "123:00", "1:2:3", ":30", "ab:cd PM"} {
		if _, ok := timeofday.Parse(in); ok {
			t.Fatalf("Parse(%q) should fail", in)
		}
		if got := timeofday.Format(in); got != in {
			t.Fatalf("Format(%q) = %q, want unchanged", in, got)
		}
		if got := timeofday.Minute(in); got != domain.UnknownMinute {
			t.Fatalf("Minute(%q) = %d, want %d", in, got, domain.UnknownMinute)
		}
	}
}

func TestFormatRoundTrip(t *testing.T) {
	for m := 0; m < 24*60; m++ {
		canon := timeofday.FormatMinute(m)
		if got := timeofday.Minute(canon); got != m {
			t.Fatalf("Minute(%q) = %d, want %d", canon, got, m)
		}
		if again := timeofday.Format(canon); again != canon {
			t.Fatalf("Format not idempotent: %q -> %q", canon, again)
		}
	}
}
