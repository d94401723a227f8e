package parser

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"cultural_planner/internal/domain"
	"cultural_planner/internal/fallback"
)

// Segment is the text attributed to one day before activity extraction.
type Segment struct {
	Day         int
	Content     string
	Placeholder bool
}

type dayMarker struct {
	day        int
	start, end int // byte offsets of "Day N:" in the text
}

// findDayMarkers returns every "Day <n>:" in textual order, matched
// case-insensitively wherever it occurs ("Holiday 1:" included).
func findDayMarkers(s string) []dayMarker {
	var out []dayMarker
	for i := 0; i+3 <= len(s); i++ {
		if !strings.EqualFold(s[i:i+3], "day") {
			continue
		}
		j := i + 3
		ws := j
		for j < len(s) && isSpace(s[j]) {
			j++
		}
		if j == ws {
			continue
		}
		num := j
		for j < len(s) && isDigit(s[j]) {
			j++
		}
		if j == num || j >= len(s) || s[j] != ':' {
			continue
		}
		n, err := strconv.Atoi(s[num:j])
		if err != nil {
			n = -1
		}
		out = append(out, dayMarker{day: n, start: i, end: j + 1})
		i = j
	}
	return out
}

// SplitDays attributes the response text to days 1..n. It returns exactly n
// segments sorted by day, plus the underflow/overflow conditions it absorbed.
func SplitDays(text string, n int, destination string, defaults *fallback.Provider) ([]Segment, []error) {
	var issues []error

	segs := splitOnMarkers(text, n)
	if len(segs) == 0 {
		segs = splitOnBlankLines(text, n)
	}

	seen := make(map[int]bool, n)
	kept := segs[:0]
	dropped := 0
	for _, sg := range segs {
		if seen[sg.Day] {
			dropped++
			continue
		}
		seen[sg.Day] = true
		kept = append(kept, sg)
	}
	segs = kept
	if dropped > 0 {
		issues = append(issues, fmt.Errorf("%w: %d repeated day segments dropped", domain.ErrSegmentationOverflow, dropped))
	}

	if len(segs) < n {
		missing := n - len(segs)
		for d := 1; d <= n; d++ {
			if !seen[d] {
				segs = append(segs, Segment{Day: d, Content: defaults.Placeholder(destination), Placeholder: true})
			}
		}
		issues = append(issues, fmt.Errorf("%w: %d of %d days padded", domain.ErrSegmentationUnderflow, missing, n))
	}

	sort.SliceStable(segs, func(a, b int) bool { return segs[a].Day < segs[b].Day })
	return segs, issues
}

func splitOnMarkers(text string, n int) []Segment {
	marks := findDayMarkers(text)
	var out []Segment
	for i, m := range marks {
		if m.day < 1 || m.day > n {
			continue
		}
		end := len(text)
		if i+1 < len(marks) {
			end = marks[i+1].start
		}
		if c := strings.TrimSpace(text[m.end:end]); c != "" {
			out = append(out, Segment{Day: m.day, Content: c})
		}
	}
	return out
}

// splitOnBlankLines deals blank-line separated chunks out to the days in
// order, ceil(chunks/n) per day. Trailing days may get nothing.
func splitOnBlankLines(text string, n int) []Segment {
	var (
		chunks []string
		cur    []string
	)
	flush := func() {
		if c := strings.TrimSpace(strings.Join(cur, "\n")); c != "" {
			chunks = append(chunks, c)
		}
		cur = cur[:0]
	}
	for _, line := range strings.Split(text, "\n") {
		if strings.TrimSpace(line) == "" {
			flush()
			continue
		}
		cur = append(cur, line)
	}
	flush()

	if len(chunks) == 0 {
		return nil
	}
	per := max(1, (len(chunks)+n-1)/n)
	var out []Segment
	for d := 0; d < n; d++ {
		lo := d * per
		if lo >= len(chunks) {
			break
		}
		hi := min(lo+per, len(chunks))
		out = append(out, Segment{Day: d + 1, Content: strings.Join(chunks[lo:hi], "\n\n")})
	}
	return out
}

func isSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r' || b == '\f' || b == '\v'
}
