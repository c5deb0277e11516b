package scheduling

import (
	"strings"
	"time"
)

const (
	// SessionDuration is the fixed length of every generated slot, in minutes.
	SessionDuration = 60

	// Midday break excluded from slot generation, minutes from midnight.
	BreakStart = 12 * 60 // 12:00 PM
	BreakEnd   = 14 * 60 // 2:00 PM

	clockLayout = "3:04 PM"

	// DateLayout is the wire format for calendar dates.
	DateLayout = "2006-01-02"
)

// ParseClock converts a 12-hour label such as "9:00 AM" to minutes since
// midnight. Parsing is case-insensitive; "12:00 AM" maps to 0 and
// "12:00 PM" to 720.
func ParseClock(label string) (int, error) {
	t, err := time.Parse(clockLayout, strings.ToUpper(strings.TrimSpace(label)))
	if err != nil {
		return 0, NewValidationError("invalid time format %q, expected h:mm AM/PM", label)
	}
	return t.Hour()*60 + t.Minute(), nil
}

// FormatClock is the exact inverse of ParseClock for minutes in [0, 1439].
func FormatClock(minutes int) string {
	t := time.Date(0, time.January, 1, minutes/60, minutes%60, 0, 0, time.UTC)
	return t.Format(clockLayout)
}

// canonicalClock normalizes a label to FormatClock's spelling so lookups by
// start time are case- and whitespace-insensitive.
func canonicalClock(label string) (string, error) {
	m, err := ParseClock(label)
	if err != nil {
		return "", err
	}
	return FormatClock(m), nil
}

// EnumerateSlots walks [start, end) in SessionDuration steps and returns the
// start label of every block that clears the midday break: a block is kept
// only when it ends by BreakStart or starts at or after BreakEnd. A block
// straddling the break pushes the walk forward to BreakEnd.
func EnumerateSlots(start, end string) ([]string, error) {
	s, err := ParseClock(start)
	if err != nil {
		return nil, err
	}
	e, err := ParseClock(end)
	if err != nil {
		return nil, err
	}

	var starts []string
	for cur := s; cur+SessionDuration <= e; {
		if cur+SessionDuration <= BreakStart || cur >= BreakEnd {
			starts = append(starts, FormatClock(cur))
			cur += SessionDuration
			continue
		}
		cur = BreakEnd
	}
	return starts, nil
}
