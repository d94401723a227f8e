package domain

import "context"

// Generator produces free-form itinerary text from a system instruction and
// a user prompt. Implementations return one of the upstream sentinel errors
// (wrapped) when the exchange does not yield usable text.
type Generator interface {
	Generate(ctx context.Context, system, user string) (string, error)
}

// Read models for the HTTP surface

type PlanView struct {
	PlanID      string    `json:"planId,omitempty"`
	Destination string    `json:"destination"`
	Duration    int       `json:"duration"`
	Fallback    bool      `json:"fallback"`
	Issues      []string  `json:"issues,omitempty"`
	Days        []DayPlan `json:"days"`
}

type ParseQuery struct {
	Text        string `json:"text"`
	Duration    int    `json:"duration"`
	Destination string `json:"destination"`
}
