package fallback_test

import (
	"reflect"
	"strings"
	"testing"

	"cultural_planner/internal/fallback"
)

func TestItinerary_CuratedCycles(t *testing.T) {
	p := fallback.Default()
	it := p.Itinerary(5, "Agra")

	if err := it.Validate(5); err != nil {
		t.Fatalf("invalid fallback: %v", err)
	}
	if got := it.Days[0].TimeSlots[0].Title; got != "Taj Mahal Sunrise Visit" {
		t.Fatalf("day 1 first title = %q", got)
	}
	if got := it.Days[0].TimeSlots[0].Time; got != "09:00 AM" {
		t.Fatalf("day 1 first time = %q", got)
	}
	// bank length is 3: day 4 repeats day 1, day 5 repeats day 2
	if !reflect.DeepEqual(it.Days[3].TimeSlots, it.Days[0].TimeSlots) {
		t.Fatalf("day 4 should repeat day 1")
	}
	if !reflect.DeepEqual(it.Days[4].TimeSlots, it.Days[1].TimeSlots) {
		t.Fatalf("day 5 should repeat day 2")
	}
	if reflect.DeepEqual(it.Days[0].TimeSlots, it.Days[1].TimeSlots) {
		t.Fatalf("days 1 and 2 should differ")
	}
}

func TestItinerary_GenericSubstitutesDestination(t *testing.T) {
	p := fallback.Default()
	if p.Curated("Unknown City") {
		t.Fatalf("Unknown City should not be curated")
	}
	it := p.Itinerary(3, "Unknown City")
	if err := it.Validate(3); err != nil {
		t.Fatalf("invalid fallback: %v", err)
	}
	for _, d := range it.Days {
		if len(d.TimeSlots) != 4 {
			t.Fatalf("day %d has %d slots, want 4", d.Day, len(d.TimeSlots))
		}
		for _, s := range d.TimeSlots {
			if !strings.Contains(s.Title, "Unknown City") || !strings.Contains(s.Location, "Unknown City") {
				t.Fatalf("day %d slot %q / %q misses destination", d.Day, s.Title, s.Location)
			}
			if strings.Contains(s.Title+s.Location+s.Description, "{destination}") {
				t.Fatalf("unsubstituted token in %+v", s)
			}
			if s.Tips == "" || s.WeatherAlternative == "" || s.PracticalInfo.Cost == "" {
				t.Fatalf("slot not fully populated: %+v", s)
			}
		}
	}
}

func TestItinerary_ExactMatchOnly(t *testing.T) {
	p := fallback.Default()
	if p.Curated("agra") {
		t.Fatalf("lookup must be exact")
	}
	it := p.Itinerary(1, "agra")
	if !strings.Contains(it.Days[0].TimeSlots[0].Title, "agra") {
		t.Fatalf("expected generic bank for %q, got %q", "agra", it.Days[0].TimeSlots[0].Title)
	}
}

func TestDay_AnchorsAndRotation(t *testing.T) {
	p := fallback.Default()
	day1 := p.Day(1, "Pune")
	if len(day1) != 4 {
		t.Fatalf("want 4 slots, got %d", len(day1))
	}
	wantTimes := []string{"09:00 AM", "12:00 PM", "03:00 PM", "07:00 PM"}
	for i, s := range day1 {
		if s.Time != wantTimes[i] {
			t.Fatalf("slot %d time %q, want %q", i, s.Time, wantTimes[i])
		}
		if s.PracticalInfo.Duration == "" || s.PracticalInfo.Transport == "" || s.Description == "" {
			t.Fatalf("slot %d not fully populated: %+v", i, s)
		}
	}
	// (9+1)%4=2, (12+1)%4=1
	if day1[0].Title != "Artisan Workshop Visit" || day1[1].Title != "Local Cuisine Experience" {
		t.Fatalf("unexpected rotation: %q, %q", day1[0].Title, day1[1].Title)
	}
	day2 := p.Day(2, "Pune")
	if day2[0].Title == day1[0].Title {
		t.Fatalf("consecutive days should rotate templates")
	}
	if !reflect.DeepEqual(day1, p.Day(1, "Pune")) {
		t.Fatalf("Day must be deterministic")
	}
	if !strings.Contains(p.Slot("09:00", 4, "Pune").Location, "Pune") {
		t.Fatalf("slot location should name the destination")
	}
}

func TestPlaceholder(t *testing.T) {
	if got := fallback.Default().Placeholder("Goa"); got != "Explore Goa at your own pace." {
		t.Fatalf("placeholder = %q", got)
	}
}

func TestLoad_RejectsBadBank(t *testing.T) {
	cases := map[string]string{
		"no slots":   "placeholder: x\ngeneric:\n  - - {time: '9:00', title: a, location: b}\n",
		"no generic": "placeholder: x\nslots:\n  - {title: a, location: b}\n",
		"bad time":   "placeholder: x\nslots:\n  - {title: a, location: b}\ngeneric:\n  - - {time: 'soon', title: a, location: b}\n",
		"not yaml":   "slots: [",
	}
	for name, doc := range cases {
		if _, err := fallback.Load(strings.NewReader(doc)); err == nil {
			t.Fatalf("%s: expected error", name)
		}
	}
}
