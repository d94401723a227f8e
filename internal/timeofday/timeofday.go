// Package timeofday reads the loose clock tokens found in generated text
// ("9:00", "09:30 am", "14:15") and renders them as "HH:MM AM/PM".
package timeofday

import (
	"fmt"
	"strconv"
	"strings"

	"cultural_planner/internal/domain"
)

// Indicator is a canonical display string plus its minute-of-day. Two
// indicators compare only through Minute.
type Indicator struct {
	Display string
	Minute  int
}

// Parse accepts "H:MM" and "HH:MM" with an optional AM/PM suffix.
//
// With a period, 12-hour arithmetic applies (12 AM is midnight, 12 PM is
// noon); an hour above 12 is read as 24-hour time and the period ignored.
// Without a period the hour is read as 24-hour time, so hours from 12 up are
// afternoon. A bare "12:00" therefore means noon.
func Parse(token string) (Indicator, bool) {
	s := strings.TrimSpace(token)
	period := ""
	if n := len(s); n >= 2 {
		if p := strings.ToUpper(s[n-2:]); p == "AM" || p == "PM" {
			period = p
			s = strings.TrimSpace(s[:n-2])
		}
	}

	hh, mm, ok := strings.Cut(s, ":")
	if !ok || len(hh) < 1 || len(hh) > 2 || len(mm) != 2 || !digits(hh) || !digits(mm) {
		return Indicator{}, false
	}
	h, _ := strconv.Atoi(hh)
	m, _ := strconv.Atoi(mm)
	if h > 23 || m > 59 {
		return Indicator{}, false
	}

	minute := h*60 + m
	switch period {
	case "AM":
		if h == 12 {
			minute = m
		}
	case "PM":
		if h < 12 {
			minute = (h+12)*60 + m
		}
	}
	return Indicator{Display: FormatMinute(minute), Minute: minute}, true
}

// Minute returns the minute-of-day for token, or domain.UnknownMinute.
func Minute(token string) int {
	if ind, ok := Parse(token); ok {
		return ind.Minute
	}
	return domain.UnknownMinute
}

// Format returns the canonical form of token. Unreadable tokens come back
// unchanged.
func Format(token string) string {
	if ind, ok := Parse(token); ok {
		return ind.Display
	}
	return token
}

// FormatMinute renders a minute-of-day (0..1439) as "HH:MM AM/PM".
func FormatMinute(minute int) string {
	h, m := minute/60, minute%60
	period := "AM"
	if h >= 12 {
		period = "PM"
	}
	h %= 12
	if h == 0 {
		h = 12
	}
	return fmt.Sprintf("%02d:%02d %s", h, m, period)
}

func digits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
