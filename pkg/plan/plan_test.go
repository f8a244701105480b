package plan

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"tableflip.dev/timeblock/pkg/timeblock"
)

const sample = `
day: 2026-10-19
tasks:
  - content: "!! write report '1h #work"
    filename: 20261019.md
    line: 3
  - content: email
events:
  - title: Standup
    start: "09:00"
    end: "09:15"
  - title: Focus
    start: "13:00"
    end: "24:00"
    availability: 1
  - title: Birthday
    start: "00:00"
`

func TestDecode(t *testing.T) {
	p, err := Decode(strings.NewReader(sample))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}

	tasks := p.Tasks()
	if len(tasks) != 2 || tasks[0].Filename != "20261019.md" || tasks[0].LineIndex != 3 {
		t.Fatalf("unexpected tasks %+v", tasks)
	}

	day := p.Date(time.UTC, time.Now())
	if day.Day() != 19 || day.Month() != time.October {
		t.Fatalf("unexpected day %v", day)
	}

	events := p.Events(day)
	if len(events) != 3 {
		t.Fatalf("expected 3 events, got %d", len(events))
	}
	if events[0].Date.Hour() != 9 || events[0].EndDate.Minute() != 15 {
		t.Fatalf("unexpected standup %+v", events[0])
	}
	if events[1].EndDate.Day() != 20 || events[1].Availability != timeblock.AvailabilityFree {
		t.Fatalf("24:00 should end at the next midnight, got %+v", events[1])
	}
	if events[2].EndDate != nil {
		t.Fatalf("an event without an end has no EndDate")
	}
}

func TestDecodeErrors(t *testing.T) {
	tests := map[string]string{
		"bad day":     "day: someday\n",
		"bad start":   "events:\n  - {title: x, start: soon}\n",
		"bad end":     "events:\n  - {title: x, start: \"09:00\", end: later}\n",
		"unknown key": "chores: []\n",
	}
	for name, body := range tests {
		if _, err := Decode(strings.NewReader(body)); err == nil {
			t.Errorf("%s: expected an error", name)
		}
	}
}

func TestDecodeEmpty(t *testing.T) {
	p, err := Decode(strings.NewReader(""))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	now := time.Date(2026, 10, 19, 15, 0, 0, 0, time.UTC)
	if d := p.Date(time.UTC, now); d.Day() != 19 || d.Hour() != 0 {
		t.Fatalf("expected today at midnight, got %v", d)
	}
}

func TestLoadAndEntries(t *testing.T) {
	file := filepath.Join(t.TempDir(), "day.yaml")
	if err := os.WriteFile(file, []byte(sample), 0o644); err != nil {
		t.Fatal(err)
	}
	p, err := Load(file)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	entries := p.Entries(p.Date(time.UTC, time.Now()))
	if len(entries) != 5 {
		t.Fatalf("expected 5 entries, got %d", len(entries))
	}
	for _, e := range entries {
		if e.Day != "2026-10-19" {
			t.Fatalf("unexpected day %q", e.Day)
		}
	}
	if ev := entries[4]; ev.Content != "Birthday" || ev.End != nil {
		t.Fatalf("unexpected last entry %+v", ev)
	}
}

func TestEntriesKeepDurationAndPriority(t *testing.T) {
	p, err := Decode(strings.NewReader(`
day: 2026-10-19
tasks:
  - {content: review, duration: 45, priority: 2}
`))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	entries := p.Entries(p.Date(time.UTC, time.Now()))
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
	task := entries[0].ToTask()
	if task.Duration != 45 || task.Priority != 2 {
		t.Fatalf("unexpected task %+v", task)
	}
}

func TestEncodeResult(t *testing.T) {
	cfg := timeblock.Config{TodoChar: "*", IntervalMins: 5, WorkDayStart: "09:00", WorkDayEnd: "10:00", Mode: timeblock.ModePriorityFirst, NowStrOverride: "00:00"}
	res := timeblock.ScheduleDay(timeblock.BlankDayMap(5), []timeblock.Task{{Content: "a", Duration: 30}}, cfg)

	var buf bytes.Buffer
	if err := Encode(&buf, res); err != nil {
		t.Fatalf("encode: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"timeBlockTextList:", "* 09:00-09:30 a", "busy: false", "noTimeForTasks: []"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in output", want)
		}
	}
}
