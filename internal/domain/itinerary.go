package domain

import "fmt"

// UnknownMinute is the ordering key for a time token that could not be read.
// It sorts after every real minute of the day.
const UnknownMinute = 24 * 60

type PracticalInfo struct {
	Duration    string `json:"duration" yaml:"duration"`
	Cost        string `json:"cost" yaml:"cost"`
	Booking     string `json:"booking" yaml:"booking"`
	DressCode   string `json:"dressCode" yaml:"dress_code"`
	Photography string `json:"photography" yaml:"photography"`
	Transport   string `json:"transport" yaml:"transport"`
}

type ActivitySlot struct {
	Time               string        `json:"time"`
	MinuteOfDay        int           `json:"-"`
	Title              string        `json:"title"`
	Location           string        `json:"location"`
	Description        string        `json:"description"`
	CulturalContext    string        `json:"culturalContext"`
	PracticalInfo      PracticalInfo `json:"practicalInfo"`
	Tips               string        `json:"tips"`
	WeatherAlternative string        `json:"weatherAlternative"`
}

type DayPlan struct {
	Day       int            `json:"day"`
	TimeSlots []ActivitySlot `json:"timeSlots"`
}

// Itinerary is a day-ordered plan. A fresh value is built for every parse.
type Itinerary struct {
	Days []DayPlan `json:"days"`
}

// Validate checks the structural contract: days 1..n in order, at least one
// slot per day, slots ordered by minute, time/title/location populated.
func (it Itinerary) Validate(n int) error {
	if len(it.Days) != n {
		return fmt.Errorf("%w: %d days, want %d", ErrInconsistentItinerary, len(it.Days), n)
	}
	for i, d := range it.Days {
		if d.Day != i+1 {
			return fmt.Errorf("%w: position %d holds day %d", ErrInconsistentItinerary, i, d.Day)
		}
		if len(d.TimeSlots) == 0 {
			return fmt.Errorf("%w: day %d has no slots", ErrInconsistentItinerary, d.Day)
		}
		for j, s := range d.TimeSlots {
			if s.Time == "" || s.Title == "" || s.Location == "" {
				return fmt.Errorf("%w: day %d slot %d missing time/title/location", ErrInconsistentItinerary, d.Day, j)
			}
			if j > 0 && d.TimeSlots[j-1].MinuteOfDay > s.MinuteOfDay {
				return fmt.Errorf("%w: day %d slots out of order at %d", ErrInconsistentItinerary, d.Day, j)
			}
		}
	}
	return nil
}

// TripRequest carries the traveller's preferences for one plan.
type TripRequest struct {
	Destination string   `json:"destination" yaml:"destination"`
	State       string   `json:"state" yaml:"state"`
	Interests   []string `json:"interests" yaml:"interests"`
	Duration    int      `json:"duration" yaml:"duration"`
	Language    string   `json:"language" yaml:"language"`
	TravelStyle string   `json:"travelStyle" yaml:"travel_style"`
}
