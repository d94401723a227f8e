package domain

import "errors"

// Absorbed failures. None of these reach a caller of the planner; they are
// reported as issues next to a complete itinerary.
var (
	ErrMissingUpstreamCredential = errors.New("upstream credential missing")
	ErrUpstreamRequestFailed     = errors.New("upstream request failed")
	ErrMalformedUpstreamPayload  = errors.New("malformed upstream payload")
	ErrEmptyResponseText         = errors.New("empty or invalid response text")
	ErrSegmentationUnderflow     = errors.New("fewer day segments than requested")
	ErrSegmentationOverflow      = errors.New("more day segments than requested")
	ErrInconsistentItinerary     = errors.New("inconsistent itinerary")
)

// IssueKind returns a short label for err, suitable for metrics.
func IssueKind(err error) string {
	switch {
	case err == nil:
		return "none"
	case errors.Is(err, ErrMissingUpstreamCredential):
		return "missing_credential"
	case errors.Is(err, ErrUpstreamRequestFailed):
		return "upstream_failed"
	case errors.Is(err, ErrMalformedUpstreamPayload):
		return "malformed_payload"
	case errors.Is(err, ErrEmptyResponseText):
		return "empty_text"
	case errors.Is(err, ErrSegmentationUnderflow):
		return "segment_underflow"
	case errors.Is(err, ErrSegmentationOverflow):
		return "segment_overflow"
	case errors.Is(err, ErrInconsistentItinerary):
		return "inconsistent"
	default:
		return "internal"
	}
}
