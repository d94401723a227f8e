// Package fallback supplies deterministic itinerary content for when the
// generated text cannot be used: single activity slots for days the parser
// found nothing in, and whole itineraries for when the pipeline gives up.
package fallback

import (
	_ "embed"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"cultural_planner/internal/domain"
	"cultural_planner/internal/timeofday"
)

//go:embed bank.yaml
var bankYAML string

const destinationToken = "{destination}"

// SlotAnchors are the fixed times of a defaulted day.
var SlotAnchors = []string{"09:00", "12:00", "15:00", "19:00"}

type template struct {
	Time               string               `yaml:"time"`
	Title              string               `yaml:"title"`
	Location           string               `yaml:"location"`
	Description        string               `yaml:"description"`
	CulturalContext    string               `yaml:"cultural_context"`
	PracticalInfo      domain.PracticalInfo `yaml:"practical_info"`
	Tips               string               `yaml:"tips"`
	WeatherAlternative string               `yaml:"weather_alternative"`
}

type defaults struct {
	PracticalInfo      domain.PracticalInfo `yaml:"practical_info"`
	Tips               string               `yaml:"tips"`
	WeatherAlternative string               `yaml:"weather_alternative"`
}

type bank struct {
	Version     int                     `yaml:"version"`
	Placeholder string                  `yaml:"placeholder"`
	Defaults    defaults                `yaml:"defaults"`
	Slots       []template              `yaml:"slots"`
	Curated     map[string][][]template `yaml:"curated"`
	Generic     [][]template            `yaml:"generic"`
}

// Provider is read-only after Load and safe for concurrent use.
type Provider struct {
	b bank
}

var defaultProvider = mustLoad(bankYAML)

// Default returns the provider built from the embedded bank.
func Default() *Provider { return defaultProvider }

func mustLoad(src string) *Provider {
	p, err := Load(strings.NewReader(src))
	if err != nil {
		panic(fmt.Sprintf("fallback: embedded bank: %v", err))
	}
	return p
}

// Load decodes and checks a bank document.
func Load(r io.Reader) (*Provider, error) {
	var b bank
	if err := yaml.NewDecoder(r).Decode(&b); err != nil {
		return nil, fmt.Errorf("decode bank: %w", err)
	}
	if err := b.check(); err != nil {
		return nil, err
	}
	return &Provider{b: b}, nil
}

func (b *bank) check() error {
	if len(b.Slots) == 0 {
		return errors.New("bank: no slot templates")
	}
	if len(b.Generic) == 0 {
		return errors.New("bank: no generic days")
	}
	if strings.TrimSpace(b.Placeholder) == "" {
		return errors.New("bank: empty placeholder")
	}
	for i, t := range b.Slots {
		if t.Title == "" || t.Location == "" {
			return fmt.Errorf("bank: slot template %d needs title and location", i)
		}
	}
	days := map[string][][]template{"generic": b.Generic}
	for name, d := range b.Curated {
		days[name] = d
	}
	for name, d := range days {
		if len(d) == 0 {
			return fmt.Errorf("bank %q: no days", name)
		}
		for i, day := range d {
			if len(day) == 0 {
				return fmt.Errorf("bank %q: day %d is empty", name, i+1)
			}
			for j, t := range day {
				if _, ok := timeofday.Parse(t.Time); !ok {
					return fmt.Errorf("bank %q: day %d activity %d: bad time %q", name, i+1, j, t.Time)
				}
				if t.Title == "" || t.Location == "" {
					return fmt.Errorf("bank %q: day %d activity %d needs title and location", name, i+1, j)
				}
			}
		}
	}
	return nil
}

// Placeholder is the text of a self-guided day.
func (p *Provider) Placeholder(destination string) string {
	return substitute(p.b.Placeholder, displayName(destination))
}

// Slot builds one fully populated activity at anchor (a clock token) for the
// given day. The template is picked by (anchor hour + day) mod bank size so
// consecutive days rotate through the bank.
func (p *Provider) Slot(anchor string, day int, destination string) domain.ActivitySlot {
	ind, ok := timeofday.Parse(anchor)
	if !ok {
		ind = timeofday.Indicator{Display: anchor, Minute: domain.UnknownMinute}
	}
	n := len(p.b.Slots)
	idx := ((ind.Minute/60+day)%n + n) % n
	return p.render(p.b.Slots[idx], ind, displayName(destination))
}

// Day returns the four anchored default slots for a day with no usable
// activities.
func (p *Provider) Day(day int, destination string) []domain.ActivitySlot {
	out := make([]domain.ActivitySlot, 0, len(SlotAnchors))
	for _, a := range SlotAnchors {
		out = append(out, p.Slot(a, day, destination))
	}
	return out
}

// Curated reports whether destination has its own bank.
func (p *Provider) Curated(destination string) bool {
	_, ok := p.b.Curated[destination]
	return ok
}

// Itinerary builds a complete n-day plan from the destination's curated bank,
// or from the generic bank with the name substituted. Banks shorter than n
// are cycled.
func (p *Provider) Itinerary(n int, destination string) domain.Itinerary {
	if n < 1 {
		n = 1
	}
	days, ok := p.b.Curated[destination]
	if !ok {
		days = p.b.Generic
	}
	name := displayName(destination)

	it := domain.Itinerary{Days: make([]domain.DayPlan, 0, n)}
	for i := 0; i < n; i++ {
		src := days[i%len(days)]
		slots := make([]domain.ActivitySlot, 0, len(src))
		for _, t := range src {
			ind, _ := timeofday.Parse(t.Time)
			slots = append(slots, p.render(t, ind, name))
		}
		sort.SliceStable(slots, func(a, b int) bool { return slots[a].MinuteOfDay < slots[b].MinuteOfDay })
		it.Days = append(it.Days, domain.DayPlan{Day: i + 1, TimeSlots: slots})
	}
	return it
}

func (p *Provider) render(t template, at timeofday.Indicator, name string) domain.ActivitySlot {
	d := p.b.Defaults
	pi := t.PracticalInfo
	pi.Duration = orDefault(pi.Duration, d.PracticalInfo.Duration)
	pi.Cost = orDefault(pi.Cost, d.PracticalInfo.Cost)
	pi.Booking = orDefault(pi.Booking, d.PracticalInfo.Booking)
	pi.DressCode = orDefault(pi.DressCode, d.PracticalInfo.DressCode)
	pi.Photography = orDefault(pi.Photography, d.PracticalInfo.Photography)
	pi.Transport = orDefault(pi.Transport, d.PracticalInfo.Transport)

	return domain.ActivitySlot{
		Time:               at.Display,
		MinuteOfDay:        at.Minute,
		Title:              substitute(t.Title, name),
		Location:           substitute(t.Location, name),
		Description:        substitute(t.Description, name),
		CulturalContext:    substitute(t.CulturalContext, name),
		PracticalInfo:      pi,
		Tips:               substitute(orDefault(t.Tips, d.Tips), name),
		WeatherAlternative: substitute(orDefault(t.WeatherAlternative, d.WeatherAlternative), name),
	}
}

func displayName(destination string) string {
	if s := strings.TrimSpace(destination); s != "" {
		return s
	}
	return "Local"
}

func substitute(s, name string) string {
	return strings.TrimSpace(strings.ReplaceAll(s, destinationToken, name))
}

func orDefault(v, def string) string {
	if strings.TrimSpace(v) == "" {
		return def
	}
	return v
}
