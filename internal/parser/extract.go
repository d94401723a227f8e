package parser

import (
	"strings"

	"cultural_planner/internal/domain"
	"cultural_planner/internal/fallback"
	"cultural_planner/internal/timeofday"
)

type scanState int

const (
	awaitingMarker scanState = iota
	inActivityHeader
	inDetailBlob
)

// rawActivity is one "[time] title | location" header and the detail text
// that follows it up to the next time tag.
type rawActivity struct {
	time     string
	title    string
	location string
	detail   string
}

// scanActivities runs the extraction grammar over a day's tokens:
//
//	awaitingMarker   --time-->            inActivityHeader
//	inActivityHeader --newline/EOF-->     inDetailBlob (valid header) | awaitingMarker
//	inActivityHeader --time-->            inActivityHeader (new header)
//	inDetailBlob     --time-->            inActivityHeader
//
// A header is valid when it has a pipe with non-empty text on both sides.
// The title may wrap onto one further line before the pipe; the location
// ends at the first newline after it.
func scanActivities(toks []token) []rawActivity {
	var (
		out    []rawActivity
		state  = awaitingMarker
		cur    rawActivity
		header strings.Builder
		detail strings.Builder
		wraps  int // newlines absorbed into the current header
	)

	// closeHeader reports whether the collected header starts an activity.
	closeHeader := func() bool {
		title, location, ok := strings.Cut(header.String(), "|")
		header.Reset()
		wraps = 0
		title, location = strings.TrimSpace(title), strings.TrimSpace(location)
		if !ok || title == "" || location == "" {
			return false
		}
		cur.title, cur.location = title, location
		return true
	}
	emit := func() {
		cur.detail = detail.String()
		detail.Reset()
		out = append(out, cur)
	}

	for _, t := range toks {
		switch state {
		case awaitingMarker:
			if t.kind == tokTime {
				cur = rawActivity{time: t.val}
				state = inActivityHeader
			}
		case inActivityHeader:
			switch t.kind {
			case tokTime:
				if closeHeader() {
					emit()
				}
				cur = rawActivity{time: t.val}
			case tokNewline:
				if h := header.String(); wraps == 0 && !strings.Contains(h, "|") && strings.TrimSpace(h) != "" {
					header.WriteString(" ")
					wraps++
					continue
				}
				if closeHeader() {
					state = inDetailBlob
				} else {
					state = awaitingMarker
				}
			default:
				header.WriteString(t.val)
			}
		case inDetailBlob:
			if t.kind == tokTime {
				emit()
				cur = rawActivity{time: t.val}
				state = inActivityHeader
				continue
			}
			detail.WriteString(t.val)
		}
	}

	switch state {
	case inActivityHeader:
		if closeHeader() {
			emit()
		}
	case inDetailBlob:
		emit()
	}
	return out
}

// ExtractActivities finds the time-anchored activities in one day's text.
// When none are found it returns the four default slots for the day, and
// defaulted is true. Slots come back in extraction order.
func ExtractActivities(text string, day int, destination string, defaults *fallback.Provider) (slots []domain.ActivitySlot, defaulted bool) {
	raws := scanActivities(lex(text))
	if len(raws) == 0 {
		return defaults.Day(day, destination), true
	}
	slots = make([]domain.ActivitySlot, 0, len(raws))
	for _, r := range raws {
		slots = append(slots, buildSlot(r))
	}
	return slots, false
}

func buildSlot(r rawActivity) domain.ActivitySlot {
	ind, ok := timeofday.Parse(r.time)
	if !ok {
		ind = timeofday.Indicator{Display: r.time, Minute: domain.UnknownMinute}
	}
	sec := ParseSections(r.detail)
	return domain.ActivitySlot{
		Time:               ind.Display,
		MinuteOfDay:        ind.Minute,
		Title:              r.title,
		Location:           r.location,
		Description:        sec.Description,
		CulturalContext:    sec.CulturalContext,
		PracticalInfo:      sec.PracticalInfo,
		Tips:               sec.Tips,
		WeatherAlternative: sec.WeatherAlternative,
	}
}
