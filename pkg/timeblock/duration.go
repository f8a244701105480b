package timeblock

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

const durationUnits = `(?:(\d+\.?\d*|\.\d+)(?:hours|hour|hrs|hr|h))?(?:(\d+\.?\d*|\.\d+)(?:minutes|mins|min|m))?`

var spaces = regexp.MustCompile(` {2,}`)

func durationPattern(marker string) *regexp.Regexp {
	return regexp.MustCompile(regexp.QuoteMeta(marker) + durationUnits)
}

// findDuration returns the byte range and the two captured amounts of the
// first marker that is followed by an hour or minute amount.
func findDuration(text, marker string) (loc []int, hours, mins string, ok bool) {
	if marker == "" {
		return nil, "", "", false
	}
	for _, m := range durationPattern(marker).FindAllStringSubmatchIndex(text, -1) {
		if m[2] < 0 && m[4] < 0 {
			continue
		}
		if m[2] >= 0 {
			hours = text[m[2]:m[3]]
		}
		if m[4] >= 0 {
			mins = text[m[4]:m[5]]
		}
		return m[:2], hours, mins, true
	}
	return nil, "", "", false
}

// ParseDurationMinutes reads the first duration expression introduced by
// marker, such as '2h5m or '2.5h, and returns it in whole minutes rounded up.
// Text without one yields 0.
func ParseDurationMinutes(text, marker string) int {
	_, hours, mins, ok := findDuration(text, marker)
	if !ok {
		return 0
	}
	var total float64
	if hours != "" {
		h, _ := strconv.ParseFloat(hours, 64)
		total += h * 60
	}
	if mins != "" {
		m, _ := strconv.ParseFloat(mins, 64)
		total += m
	}
	return int(math.Ceil(total))
}

// RemoveDurationMarker strips the duration expression ParseDurationMinutes
// would read and tidies the surrounding whitespace.
func RemoveDurationMarker(text, marker string) string {
	loc, _, _, ok := findDuration(text, marker)
	if !ok {
		return strings.TrimSpace(text)
	}
	out := text[:loc[0]] + text[loc[1]:]
	return strings.TrimSpace(spaces.ReplaceAllString(out, " "))
}

// ParsePriority maps the host's priority markers to a number: "!", "!!" and
// "!!!" are 1 to 3 and ">>" (working on) is 4. Unmarked text is 0.
func ParsePriority(text string) int {
	t := strings.TrimSpace(text)
	if strings.HasPrefix(t, ">>") {
		return 4
	}
	n := 0
	for n < len(t) && n < 3 && t[n] == '!' {
		n++
	}
	if n == 0 || (n < len(t) && t[n] != ' ') {
		return 0
	}
	return n
}

// EnrichTasks returns copies of tasks with Duration filled in when unset:
// from the duration marker in the content, or cfg.DefaultDuration when there
// is none (a parsed zero also falls back). An explicit Duration is kept.
// Priority is parsed from the content when unset.
func EnrichTasks(tasks []Task, cfg Config) []Task {
	out := make([]Task, len(tasks))
	for i, t := range tasks {
		if t.Duration <= 0 {
			t.Duration = ParseDurationMinutes(t.Content, cfg.DurationMarker)
		}
		if t.Duration == 0 {
			t.Duration = cfg.DefaultDuration
		}
		if t.Priority == 0 {
			t.Priority = ParsePriority(t.Content)
		}
		out[i] = t
	}
	return out
}

// taskDuration is the enriched duration, else whatever the content says, else
// the default.
func taskDuration(t Task, cfg Config) int {
	if t.Duration > 0 {
		return t.Duration
	}
	if d := ParseDurationMinutes(t.Content, cfg.DurationMarker); d > 0 {
		return d
	}
	return cfg.DefaultDuration
}
