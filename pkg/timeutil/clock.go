// Package timeutil converts between "HH:MM" clock strings and minutes past
// midnight.
package timeutil

import (
	"fmt"
	"regexp"
	"strconv"
	"time"
)

const (
	// MinutesPerDay is 24 hours * 60 minutes.
	MinutesPerDay = 24 * 60

	// EndOfDay is the latest representable clock value. Additions that would
	// land on or past midnight are clamped to it.
	EndOfDay = "23:59"
)

var clockPattern = regexp.MustCompile(`^\s*(\d{1,2}):(\d{2})`)

// ParseClock parses "H:MM" or "HH:MM" (anything after the minutes, like
// seconds, is ignored) and returns minutes past midnight. "24:00" is accepted
// as the exclusive end of a day.
func ParseClock(s string) (int, error) {
	m := clockPattern.FindStringSubmatch(s)
	if len(m) != 3 {
		return 0, fmt.Errorf("invalid clock value %q", s)
	}
	h, _ := strconv.Atoi(m[1])
	mins, _ := strconv.Atoi(m[2])
	if mins > 59 || h > 24 || (h == 24 && mins != 0) {
		return 0, fmt.Errorf("clock value out of range %q", s)
	}
	return h*60 + mins, nil
}

// FormatClock renders minutes past midnight as zero-padded "HH:MM".
func FormatClock(mins int) string {
	if mins < 0 {
		mins = 0
	}
	return fmt.Sprintf("%02d:%02d", mins/60, mins%60)
}

// FromTime truncates t to "HH:MM" in its own location.
func FromTime(t time.Time) string {
	return FormatClock(t.Hour()*60 + t.Minute())
}

// AddMinutes advances the clock string by mins. A result that reaches the
// next day (including exactly "00:00") is reported as EndOfDay rather than
// wrapping to the start of the map.
func AddMinutes(clock string, mins int) (string, error) {
	start, err := ParseClock(clock)
	if err != nil {
		return "", err
	}
	total := start + mins
	if total >= MinutesPerDay {
		return EndOfDay, nil
	}
	return FormatClock(total), nil
}

// Diff returns end minus start in minutes, never negative.
func Diff(start, end string) (int, error) {
	s, err := ParseClock(start)
	if err != nil {
		return 0, err
	}
	e, err := ParseClock(end)
	if err != nil {
		return 0, err
	}
	if e < s {
		return 0, nil
	}
	return e - s, nil
}
