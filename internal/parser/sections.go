package parser

import (
	"strings"

	"cultural_planner/internal/domain"
)

const (
	markDescription = "Description:"
	markCultural    = "Cultural Context:"
	markPractical   = "Practical Info:"
	markTips        = "Tips:"
	markWeather     = "Weather Alternative:"
)

// sectionEnds lists, per label, the markers that may close its span, in
// priority order. The first one present after the label wins.
var sectionEnds = map[string][]string{
	markDescription: {markCultural, markPractical, markTips, markWeather},
	markCultural:    {markPractical, markTips, markWeather},
	markPractical:   {markTips, markWeather},
	markTips:        {markWeather},
	markWeather:     nil,
}

// Practical Info bullet fields.
const (
	markDuration    = "Duration:"
	markCost        = "Cost:"
	markBooking     = "Booking:"
	markDressCode   = "Dress Code:"
	markPhotography = "Photography:"
	markTransport   = "Transport:"
)

// Sections is the labeled content of one activity's detail text.
type Sections struct {
	Description        string
	CulturalContext    string
	PracticalInfo      domain.PracticalInfo
	Tips               string
	WeatherAlternative string
}

// ParseSections splits detail into its labeled spans. A missing label gives
// an empty span.
func ParseSections(detail string) Sections {
	text := collapseBlankLines(detail)
	if text == "" {
		return Sections{}
	}
	practical := span(text, markPractical)
	return Sections{
		Description:     span(text, markDescription),
		CulturalContext: span(text, markCultural),
		PracticalInfo: domain.PracticalInfo{
			Duration:    bullet(practical, markDuration),
			Cost:        bullet(practical, markCost),
			Booking:     bullet(practical, markBooking),
			DressCode:   bullet(practical, markDressCode),
			Photography: bullet(practical, markPhotography),
			Transport:   bullet(practical, markTransport),
		},
		Tips:               span(text, markTips),
		WeatherAlternative: span(text, markWeather),
	}
}

func span(text, mark string) string {
	i := strings.Index(text, mark)
	if i < 0 {
		return ""
	}
	from := i + len(mark)
	end := len(text)
	for _, next := range sectionEnds[mark] {
		if j := strings.Index(text[from:], next); j >= 0 {
			end = from + j
			break
		}
	}
	return strings.TrimSpace(text[from:end])
}

// bullet returns the rest of the line after mark (matched case-insensitively)
// with leading bullet glyphs removed.
func bullet(text, mark string) string {
	i := indexFold(text, mark)
	if i < 0 {
		return ""
	}
	line, _, _ := strings.Cut(text[i+len(mark):], "\n")
	line = strings.TrimLeft(strings.TrimSpace(line), "-•*")
	return strings.TrimSpace(line)
}

// indexFold is strings.Index with ASCII case folding; byte offsets stay valid
// for the original string.
func indexFold(s, sub string) int {
	n := len(sub)
	for i := 0; i+n <= len(s); i++ {
		if strings.EqualFold(s[i:i+n], sub) {
			return i
		}
	}
	return -1
}

func collapseBlankLines(s string) string {
	lines := strings.Split(s, "\n")
	kept := lines[:0]
	for _, l := range lines {
		if strings.TrimSpace(l) != "" {
			kept = append(kept, l)
		}
	}
	return strings.TrimSpace(strings.Join(kept, "\n"))
}
