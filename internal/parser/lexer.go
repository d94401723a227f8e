package parser

import "strings"

type tokenKind int

const (
	tokText tokenKind = iota
	tokTime           // "[09:00 AM]"; val is the inner clock token
	tokPipe
	tokNewline
)

type token struct {
	kind tokenKind
	val  string
}

// maxTimeTag bounds how far a '[' may look ahead for its closing ']'.
const maxTimeTag = 16

// lex splits day text into time tags, pipes, newlines and runs of other text.
// It makes one pass; each '[' inspects at most maxTimeTag bytes.
func lex(s string) []token {
	var (
		out   []token
		start int
	)
	flush := func(end int) {
		if end > start {
			out = append(out, token{kind: tokText, val: s[start:end]})
		}
	}
	for i := 0; i < len(s); {
		switch s[i] {
		case '[':
			if inner, end, ok := scanTimeTag(s, i); ok {
				flush(i)
				out = append(out, token{kind: tokTime, val: inner})
				i, start = end, end
				continue
			}
		case '|':
			flush(i)
			out = append(out, token{kind: tokPipe, val: "|"})
			start = i + 1
		case '\n':
			flush(i)
			out = append(out, token{kind: tokNewline, val: "\n"})
			start = i + 1
		}
		i++
	}
	flush(len(s))
	return out
}

// scanTimeTag matches "[" digits-and-colons [spaces] [AM|PM] "]" at s[i].
// It returns the trimmed inner token and the offset just past ']'.
func scanTimeTag(s string, i int) (string, int, bool) {
	j := i + 1
	limit := min(len(s), i+maxTimeTag)
	for j < limit && s[j] == ' ' {
		j++
	}
	digitsSeen := false
	for j < limit && (isDigit(s[j]) || s[j] == ':') {
		digitsSeen = digitsSeen || isDigit(s[j])
		j++
	}
	if !digitsSeen {
		return "", 0, false
	}
	for j < limit && s[j] == ' ' {
		j++
	}
	if j+2 <= limit {
		if p := strings.ToUpper(s[j : j+2]); p == "AM" || p == "PM" {
			j += 2
		}
	}
	for j < limit && s[j] == ' ' {
		j++
	}
	if j >= limit || s[j] != ']' {
		return "", 0, false
	}
	return strings.TrimSpace(s[i+1 : j]), j + 1, true
}

func isDigit(b byte) bool { return b >= '0' && b <= '9' }
