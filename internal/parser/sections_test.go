package parser_test

import (
	"testing"

	"cultural_planner/internal/domain"
	"cultural_planner/internal/parser"
)

const fullDetail = `Description: Morning prayers and a walk around the sanctum.

Cultural Context: Built in the 12th century by the Chola kings.
Practical Info:
- Duration: 2 hours
- Cost: ₹200
- Booking: Not required
- dress code: Cover shoulders and knees
- Photography: • Not allowed inside
- Transport: Auto-rickshaw from the station
Tips: Go early to avoid crowds.
Weather Alternative: The temple museum next door.`

func TestParseSections_AllLabels(t *testing.T) {
	got := parser.ParseSections(fullDetail)
	want := parser.Sections{
		Description:     "Morning prayers and a walk around the sanctum.",
		CulturalContext: "Built in the 12th century by the Chola kings.",
		PracticalInfo: domain.PracticalInfo{
			Duration:    "2 hours",
			Cost:        "₹200",
			Booking:     "Not required",
			DressCode:   "Cover shoulders and knees",
			Photography: "Not allowed inside",
			Transport:   "Auto-rickshaw from the station",
		},
		Tips:               "Go early to avoid crowds.",
		WeatherAlternative: "The temple museum next door.",
	}
	if got != want {
		t.Fatalf("unexpected sections:\n got %+v\nwant %+v", got, want)
	}
}

func TestParseSections_EndMarkerPriority(t *testing.T) {
	// no Cultural Context: Description stops at Practical Info
	got := parser.ParseSections("Description: Short visit.\nPractical Info:\n- Cost: Free\nTips: Bring water.")
	if got.Description != "Short visit." {
		t.Fatalf("description = %q", got.Description)
	}
	if got.PracticalInfo.Cost != "Free" {
		t.Fatalf("cost = %q", got.PracticalInfo.Cost)
	}
	if got.CulturalContext != "" || got.WeatherAlternative != "" {
		t.Fatalf("absent labels should be empty: %+v", got)
	}
	if got.Tips != "Bring water." {
		t.Fatalf("tips = %q", got.Tips)
	}

	// only Weather Alternative after Tips
	got = parser.ParseSections("Tips: Carry cash.\nWeather Alternative: Indoor bazaar.")
	if got.Tips != "Carry cash." || got.WeatherAlternative != "Indoor bazaar." {
		t.Fatalf("unexpected: %+v", got)
	}
}

func TestParseSections_Empty(t *testing.T) {
	for _, in := range []string{"", "   \n\n  ", "no labels at all"} {
		if got := parser.ParseSections(in); got != (parser.Sections{}) {
			t.Fatalf("ParseSections(%q) = %+v, want zero", in, got)
		}
	}
}

func TestParseSections_BulletsOnlyInsidePracticalInfo(t *testing.T) {
	got := parser.ParseSections("Description: Cost: mentioned here\nPractical Info:\n- Duration: 1 hour")
	if got.PracticalInfo.Cost != "" {
		t.Fatalf("cost should come from Practical Info only, got %q", got.PracticalInfo.Cost)
	}
	if got.PracticalInfo.Duration != "1 hour" {
		t.Fatalf("duration = %q", got.PracticalInfo.Duration)
	}
}
