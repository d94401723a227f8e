// Package parser turns free-form generated itinerary text into a complete,
// day-ordered domain.Itinerary. It never fails: whatever cannot be extracted
// is filled from the fallback bank. The package does no I/O and keeps no
// state between calls.
package parser

import (
	"fmt"
	"sort"
	"strings"

	"cultural_planner/internal/domain"
	"cultural_planner/internal/fallback"
)

// Result is an itinerary plus what was absorbed while building it.
type Result struct {
	Itinerary domain.Itinerary
	// Fallback is set when the whole itinerary came from the fallback bank.
	Fallback bool
	// DefaultedDays lists days whose slots are defaults because no activity
	// was found in their text.
	DefaultedDays []int
	Issues        []error
}

type Parser struct {
	defaults *fallback.Provider
}

func New(defaults *fallback.Provider) *Parser {
	if defaults == nil {
		defaults = fallback.Default()
	}
	return &Parser{defaults: defaults}
}

// Parse returns an itinerary of exactly max(days, 1) days for any input.
func (p *Parser) Parse(text string, days int, destination string) domain.Itinerary {
	return p.Assemble(text, days, destination).Itinerary
}

// Assemble runs segmentation, extraction and ordering. Any failure along the
// way, including a panic or a result that does not validate, discards the
// partial work and substitutes the destination's fallback itinerary.
func (p *Parser) Assemble(text string, days int, destination string) Result {
	n := max(days, 1)
	text = strings.ReplaceAll(text, "\r\n", "\n")
	if strings.TrimSpace(text) == "" {
		return p.Fallback(n, destination, domain.ErrEmptyResponseText)
	}

	res, err := p.run(text, n, destination)
	if err == nil {
		err = res.Itinerary.Validate(n)
	}
	if err != nil {
		return p.Fallback(n, destination, append(res.Issues, err)...)
	}
	return res
}

// Fallback returns the itinerary-tier result carrying the given issues.
func (p *Parser) Fallback(days int, destination string, issues ...error) Result {
	n := max(days, 1)
	return Result{
		Itinerary: p.defaults.Itinerary(n, destination),
		Fallback:  true,
		Issues:    issues,
	}
}

func (p *Parser) run(text string, n int, destination string) (res Result, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: panic while parsing: %v", domain.ErrInconsistentItinerary, r)
		}
	}()

	segs, issues := SplitDays(text, n, destination, p.defaults)
	res.Issues = issues

	plans := make([]domain.DayPlan, 0, len(segs))
	for _, sg := range segs {
		slots, defaulted := ExtractActivities(sg.Content, sg.Day, destination, p.defaults)
		if defaulted {
			res.DefaultedDays = append(res.DefaultedDays, sg.Day)
		}
		sort.SliceStable(slots, func(a, b int) bool { return slots[a].MinuteOfDay < slots[b].MinuteOfDay })
		plans = append(plans, domain.DayPlan{Day: sg.Day, TimeSlots: slots})
	}
	sort.SliceStable(plans, func(a, b int) bool { return plans[a].Day < plans[b].Day })

	res.Itinerary = domain.Itinerary{Days: plans}
	return res, nil
}
