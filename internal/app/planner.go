package app

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"

	"cultural_planner/internal/adapters/observability"
	"cultural_planner/internal/domain"
	"cultural_planner/internal/parser"
)

type PlannerService struct {
	gen    domain.Generator
	parser *parser.Parser
}

// NewPlannerService wires the upstream generator and the parser. A nil
// generator means no credential is configured: every plan is a fallback.
func NewPlannerService(g domain.Generator, p *parser.Parser) *PlannerService {
	if p == nil {
		p = parser.New(nil)
	}
	return &PlannerService{gen: g, parser: p}
}

// Plan asks the generator for an itinerary and parses it. It never returns
// an error: upstream failures yield the destination's fallback itinerary,
// and the absorbed conditions are reported in Result.Issues.
func (s *PlannerService) Plan(ctx context.Context, req domain.TripRequest) parser.Result {
	var res parser.Result
	if s.gen == nil {
		res = s.parser.Fallback(req.Duration, req.Destination, domain.ErrMissingUpstreamCredential)
	} else {
		system, user := BuildPrompt(req)
		text, err := s.gen.Generate(ctx, system, user)
		switch {
		case err != nil:
			res = s.parser.Fallback(req.Duration, req.Destination, err)
		case strings.TrimSpace(text) == "":
			res = s.parser.Fallback(req.Duration, req.Destination, domain.ErrEmptyResponseText)
		default:
			res = s.parser.Assemble(text, req.Duration, req.Destination)
		}
	}
	s.report(req.Destination, req.Duration, res)
	return res
}

// Parse runs the parser over caller-supplied text.
func (s *PlannerService) Parse(q domain.ParseQuery) parser.Result {
	res := s.parser.Assemble(q.Text, q.Duration, q.Destination)
	s.report(q.Destination, q.Duration, res)
	return res
}

func (s *PlannerService) report(destination string, days int, res parser.Result) {
	for _, issue := range res.Issues {
		kind := domain.IssueKind(issue)
		observability.ObserveParseIssue(kind)
		log.Warn().
			Str("destination", destination).
			Int("days", days).
			Str("kind", kind).
			Err(issue).
			Msg("itinerary issue absorbed")
	}
	if res.Fallback {
		reason := "unknown"
		if len(res.Issues) > 0 {
			reason = domain.IssueKind(res.Issues[len(res.Issues)-1])
		}
		observability.ObserveFallback("itinerary", reason)
	}
	for range res.DefaultedDays {
		observability.ObserveFallback("slot", "no_activities")
	}
	if len(res.DefaultedDays) > 0 {
		log.Debug().Str("destination", destination).Ints("days", res.DefaultedDays).Msg("days filled with default slots")
	}
}

// View converts a result into the HTTP read model.
func View(destination string, res parser.Result) domain.PlanView {
	v := domain.PlanView{
		Destination: destination,
		Duration:    len(res.Itinerary.Days),
		Fallback:    res.Fallback,
		Days:        res.Itinerary.Days,
	}
	for _, issue := range res.Issues {
		v.Issues = append(v.Issues, fmt.Sprintf("%s: %v", domain.IssueKind(issue), issue))
	}
	return v
}
