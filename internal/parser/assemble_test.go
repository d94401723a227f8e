package parser_test

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"testing"

	"cultural_planner/internal/domain"
	"cultural_planner/internal/parser"
)

func checkTotal(t *testing.T, it domain.Itinerary, n int) {
	t.Helper()
	if err := it.Validate(n); err != nil {
		t.Fatalf("invalid itinerary: %v", err)
	}
}

func TestAssemble_TwoDayScenario(t *testing.T) {
	text := "Day 1:\n[09:00 AM] Visit Temple | City Temple\nDescription: A peaceful morning visit.\nDay 2:\n[10:00 AM] Local Market | Old Bazaar\n"
	res := parser.New(nil).Assemble(text, 2, "Madurai")
	if res.Fallback {
		t.Fatalf("unexpected fallback: %v", res.Issues)
	}
	checkTotal(t, res.Itinerary, 2)

	first := res.Itinerary.Days[0].TimeSlots[0]
	if first.Title != "Visit Temple" || first.Time != "09:00 AM" || first.Description != "A peaceful morning visit." {
		t.Fatalf("day 1 first slot: %+v", first)
	}
	if got := res.Itinerary.Days[1].TimeSlots[0].Title; got != "Local Market" {
		t.Fatalf("day 2 first title = %q", got)
	}
}

func TestAssemble_EmptyTextUsesGenericBank(t *testing.T) {
	for _, text := range []string{"", "  \n\t "} {
		res := parser.New(nil).Assemble(text, 3, "Unknown City")
		if !res.Fallback {
			t.Fatalf("%q: expected itinerary fallback", text)
		}
		if len(res.Issues) != 1 || !errors.Is(res.Issues[0], domain.ErrEmptyResponseText) {
			t.Fatalf("issues = %v", res.Issues)
		}
		checkTotal(t, res.Itinerary, 3)
		for _, d := range res.Itinerary.Days {
			if len(d.TimeSlots) != 4 {
				t.Fatalf("day %d: %d slots", d.Day, len(d.TimeSlots))
			}
			for _, s := range d.TimeSlots {
				if !strings.Contains(s.Title, "Unknown City") || !strings.Contains(s.Location, "Unknown City") {
					t.Fatalf("slot misses destination: %+v", s)
				}
			}
		}
	}
}

func TestAssemble_SortsSlotsStably(t *testing.T) {
	text := "Day 1:\n[07:00 PM] Dinner | Hall\n[09:00 AM] Breakfast | Cafe\n[09:00] Walk | Park\n[3:00 PM] Museum | Gallery\n[later] Stargazing | Roof"
	it := parser.New(nil).Parse(text, 1, "X")
	checkTotal(t, it, 1)
	var titles []string
	for _, s := range it.Days[0].TimeSlots {
		titles = append(titles, s.Title)
	}
	// "[later]" is not a time tag: "Stargazing | Roof" stays in Museum's detail
	want := []string{"Breakfast", "Walk", "Museum", "Dinner"}
	if !reflect.DeepEqual(titles, want) {
		t.Fatalf("order = %v, want %v", titles, want)
	}

	it = parser.New(nil).Parse("Day 1:\n[99:99] Unknown | A\n[08:00 AM] Early | B", 1, "X")
	if it.Days[0].TimeSlots[0].Title != "Early" || it.Days[0].TimeSlots[1].MinuteOfDay != domain.UnknownMinute {
		t.Fatalf("unreadable time should sort last: %+v", it.Days[0].TimeSlots)
	}
}

func TestAssemble_MarkerFidelity(t *testing.T) {
	var b strings.Builder
	for k := 1; k <= 4; k++ {
		fmt.Fprintf(&b, "Day %d:\n[0%d:00 AM] Title %d | Place %d\nDescription: text %d\n\n", k, k+5, k, k, k)
	}
	res := parser.New(nil).Assemble(b.String(), 4, "X")
	checkTotal(t, res.Itinerary, 4)
	if len(res.DefaultedDays) != 0 {
		t.Fatalf("no day should be defaulted: %v", res.DefaultedDays)
	}
	for i, d := range res.Itinerary.Days {
		k := i + 1
		if len(d.TimeSlots) != 1 {
			t.Fatalf("day %d: %d slots", k, len(d.TimeSlots))
		}
		s := d.TimeSlots[0]
		if s.Title != fmt.Sprintf("Title %d", k) || s.Description != fmt.Sprintf("text %d", k) {
			t.Fatalf("day %d took foreign content: %+v", k, s)
		}
	}
}

func TestAssemble_DayWithoutActivitiesGetsDefaults(t *testing.T) {
	res := parser.New(nil).Assemble("Day 1:\nJust wander around.\nDay 2:\n[10:00 AM] Fort | Hill", 2, "Gwalior")
	checkTotal(t, res.Itinerary, 2)
	if !reflect.DeepEqual(res.DefaultedDays, []int{1}) {
		t.Fatalf("defaulted = %v", res.DefaultedDays)
	}
	if len(res.Itinerary.Days[0].TimeSlots) != 4 {
		t.Fatalf("day 1 should hold 4 default slots")
	}
}

func TestAssemble_UnderflowPadded(t *testing.T) {
	res := parser.New(nil).Assemble("Day 1:\n[10:00 AM] Fort | Hill", 3, "Gwalior")
	checkTotal(t, res.Itinerary, 3)
	if res.Fallback || !hasIssue(res.Issues, domain.ErrSegmentationUnderflow) {
		t.Fatalf("fallback=%v issues=%v", res.Fallback, res.Issues)
	}
	if !reflect.DeepEqual(res.DefaultedDays, []int{2, 3}) {
		t.Fatalf("defaulted = %v", res.DefaultedDays)
	}
}

func TestAssemble_ClampsDuration(t *testing.T) {
	it := parser.New(nil).Parse("Day 1:\n[10:00 AM] Fort | Hill", 0, "X")
	checkTotal(t, it, 1)
}

func TestAssemble_Idempotent(t *testing.T) {
	p := parser.New(nil)
	text := "Day 2: [9:00] B | b\nDay 1: [8:00] A | a\nrandom\n\nmore"
	a := p.Assemble(text, 3, "Agra")
	b := p.Assemble(text, 3, "Agra")
	if !reflect.DeepEqual(a.Itinerary, b.Itinerary) {
		t.Fatalf("identical inputs gave different itineraries")
	}
}

func TestAssemble_ResultsAreIndependent(t *testing.T) {
	p := parser.New(nil)
	a := p.Parse("", 2, "Agra")
	a.Days[0].TimeSlots[0].Title = "mutated"
	b := p.Parse("", 2, "Agra")
	if b.Days[0].TimeSlots[0].Title == "mutated" {
		t.Fatalf("fallback bank shared state with a previous result")
	}
}

func FuzzAssemble(f *testing.F) {
	seeds := []string{
		"",
		"Day 1:",
		"Day 1:\n[09:00 AM] Visit Temple | City Temple\nDescription: A peaceful morning visit.\nDay 2:\n[10:00 AM] Local Market | Old Bazaar\n",
		"[[[[[[9:00]]]] | | |",
		"Day 3: Day 2: Day 1:",
		"Day 99999999999999999999: x",
		"[12:00] a | b\r\n[12:00 AM] c | d",
		"Practical Info:\n- Cost:\nTips:",
		"\n\n\n\n",
		"day\tday 1:day 2:|[1:00 PM]|",
	}
	for _, s := range seeds {
		f.Add(s, 3)
	}
	p := parser.New(nil)
	f.Fuzz(func(t *testing.T, text string, n int) {
		if n < 1 || n > 30 {
			n = 1 + (n%30+30)%30
		}
		it := p.Parse(text, n, "Fuzz City")
		checkTotal(t, it, n)
	})
}
