package app

import (
	"fmt"
	"strings"

	"cultural_planner/internal/domain"
)

const systemInstruction = `You are a cultural travel expert specializing in Indian tourism and cultural experiences.
Create detailed, authentic, and culturally immersive travel itineraries with:
1. Specific timings and durations for each activity
2. Exact locations with addresses
3. Cultural and historical context
4. Practical information (costs, bookings, dress code)
5. Local insights and tips
6. Weather alternatives

Start every day with a line "Day N:" and format each activity exactly as:
[Time] Activity Name | Location
Description: (activity details)
Cultural Context: (historical/cultural significance)
Practical Info:
- Duration: X hours
- Cost: ₹XXX
- Booking: (requirements)
- Dress Code: (requirements)
- Photography: (rules)
- Transport: (how to reach)
Tips: (special advice)
Weather Alternative: (backup plan)`

var interestPhrases = map[string]string{
	"food":      "Culinary Arts and Local Cuisine",
	"history":   "Historical Sites and Heritage",
	"arts":      "Traditional Arts and Performances",
	"festivals": "Cultural Festivals and Ceremonies",
	"crafts":    "Traditional Crafts and Artisans",
	"spiritual": "Spiritual and Religious Experiences",
}

var styleGuides = map[string]string{
	"relaxed":   "Focus on leisurely paced activities, ample rest time, and easily accessible locations. Include longer breaks between activities.",
	"balanced":  "Mix of active and relaxed experiences, moderate walking distances, and well-timed breaks.",
	"intensive": "Pack more activities per day, include early morning starts, and cover more ground. Minimize downtime.",
}

// BuildPrompt returns the system instruction and user prompt for req.
func BuildPrompt(req domain.TripRequest) (system, user string) {
	style := strings.ToLower(strings.TrimSpace(req.TravelStyle))
	guide, ok := styleGuides[style]
	if !ok {
		style, guide = "balanced", styleGuides["balanced"]
	}
	lang := req.Language
	if strings.TrimSpace(lang) == "" {
		lang = "English"
	}
	where := req.Destination
	if req.State != "" {
		where += ", " + req.State
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Create a detailed %d-day cultural journey in %s, India, focusing on authentic experiences and specific locations. ", req.Duration, where)
	fmt.Fprintf(&b, "The itinerary should be in %s and follow a %s pace (%s).\n\n", lang, style, guide)
	b.WriteString("Key Requirements:\n")
	fmt.Fprintf(&b, "1. Focus specifically on these cultural interests: %s\n", formatInterests(req.Interests))
	fmt.Fprintf(&b, "2. Ensure activities match the %s travel style\n", style)
	b.WriteString("3. Include both iconic sites and hidden local experiences\n")
	b.WriteString("4. Consider local festivals and events during the visit\n")
	fmt.Fprintf(&b, "5. Provide language support in %s\n\n", lang)
	b.WriteString("Cover early morning, morning, afternoon and evening for each day, and account for travel time, meals at authentic local venues, prayer times and religious customs.\n\n")
	b.WriteString("Please maintain consistent formatting throughout the itinerary, using the exact structure provided in the system message.")
	return systemInstruction, b.String()
}

func formatInterests(ids []string) string {
	if len(ids) == 0 {
		return "general cultural highlights"
	}
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if p, ok := interestPhrases[id]; ok {
			out = append(out, p)
		} else {
			out = append(out, id)
		}
	}
	return strings.Join(out, ", ")
}
