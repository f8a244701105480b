package timeblock

import (
	"strings"
	"testing"
	"time"
)

func at(hhmm string) time.Time {
	t, err := time.Parse("15:04", hhmm)
	if err != nil {
		panic(err)
	}
	return time.Date(2026, 10, 19, t.Hour(), t.Minute(), 0, 0, time.UTC)
}

func atPtr(hhmm string) *time.Time {
	t := at(hhmm)
	return &t
}

func testConfig() Config {
	return Config{
		TodoChar:           "*",
		TimeBlockTag:       "#🕑",
		WorkDayStart:       "08:00",
		WorkDayEnd:         "17:00",
		DurationMarker:     "'",
		IntervalMins:       5,
		RemoveDuration:     true,
		DefaultDuration:    20,
		Mode:               ModePriorityFirst,
		NowStrOverride:     "00:00",
		OrphanTagggedTasks: OrphansOutputForInfo,
	}
}

func tagConfig() Config {
	cfg := testConfig()
	cfg.Mode = ModeByTimeblockTag
	cfg.TimeBlockTag = "#tb"
	cfg.TimeblockTextMustContainString = "#tb"
	return cfg
}

func slotAt(t *testing.T, m IntervalMap, start string) TimeSlot {
	t.Helper()
	for _, s := range m {
		if s.Start == start {
			return s
		}
	}
	t.Fatalf("no slot at %s", start)
	return TimeSlot{}
}

func expectLines(t *testing.T, got []string, want ...string) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("expected %d lines, got %d:\n%s", len(want), len(got), strings.Join(got, "\n"))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("line %d: expected %q, got %q", i, want[i], got[i])
		}
	}
}
