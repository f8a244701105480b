// Package plan reads self-contained day plans from YAML and writes schedule
// results back out as YAML.
package plan

import (
	"fmt"
	"io"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"tableflip.dev/timeblock/pkg/entry"
	"tableflip.dev/timeblock/pkg/timeblock"
	"tableflip.dev/timeblock/pkg/timeutil"
)

// Plan is one day's worth of tasks and calendar events.
//
//	day: 2026-10-19
//	tasks:
//	  - content: "write report '1h #work"
//	    filename: 20261019.md
//	    line: 3
//	events:
//	  - {title: Standup, start: "09:00", end: "09:15"}
type Plan struct {
	Day      string      `yaml:"day"`
	Todo     []TaskSpec  `yaml:"tasks"`
	Calendar []EventSpec `yaml:"events"`
}

type TaskSpec struct {
	Content  string `yaml:"content"`
	Filename string `yaml:"filename,omitempty"`
	Line     int    `yaml:"line,omitempty"`
	Duration int    `yaml:"duration,omitempty"`
	Priority int    `yaml:"priority,omitempty"`
}

type EventSpec struct {
	Title        string `yaml:"title"`
	Start        string `yaml:"start"`
	End          string `yaml:"end,omitempty"`
	Availability int    `yaml:"availability,omitempty"`
}

// Load reads a plan file.
func Load(path string) (Plan, error) {
	f, err := os.Open(path)
	if err != nil {
		return Plan{}, fmt.Errorf("plan: %w", err)
	}
	defer f.Close()
	return Decode(f)
}

// Decode reads a plan and checks its day and clock times.
func Decode(r io.Reader) (Plan, error) {
	p := Plan{}
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&p); err != nil && err != io.EOF {
		return Plan{}, fmt.Errorf("plan: decode: %w", err)
	}
	if p.Day != "" {
		if _, err := entry.ParseDay(p.Day, time.Local); err != nil {
			return Plan{}, fmt.Errorf("plan: day %q: %w", p.Day, err)
		}
	}
	for i, ev := range p.Calendar {
		if _, err := timeutil.ParseClock(ev.Start); err != nil {
			return Plan{}, fmt.Errorf("plan: event %d (%s) start: %w", i, ev.Title, err)
		}
		if ev.End == "" {
			continue
		}
		if _, err := timeutil.ParseClock(ev.End); err != nil {
			return Plan{}, fmt.Errorf("plan: event %d (%s) end: %w", i, ev.Title, err)
		}
	}
	return p, nil
}

// Date is the plan's day in loc, or today when the plan names none.
func (p Plan) Date(loc *time.Location, now time.Time) time.Time {
	if p.Day != "" {
		if d, err := entry.ParseDay(p.Day, loc); err == nil {
			return d
		}
	}
	y, m, d := now.In(loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, loc)
}

// Tasks returns the plan's tasks in file order.
func (p Plan) Tasks() []timeblock.Task {
	out := make([]timeblock.Task, 0, len(p.Todo))
	for _, t := range p.Todo {
		out = append(out, timeblock.Task{
			Content:   t.Content,
			Duration:  t.Duration,
			Priority:  t.Priority,
			Filename:  t.Filename,
			LineIndex: t.Line,
		})
	}
	return out
}

// Events returns the plan's events placed on day. An end of "24:00" is
// midnight of the following day.
func (p Plan) Events(day time.Time) []timeblock.Event {
	out := make([]timeblock.Event, 0, len(p.Calendar))
	for _, ev := range p.Calendar {
		start, err := timeutil.ParseClock(ev.Start)
		if err != nil {
			continue
		}
		e := timeblock.Event{
			Title:        ev.Title,
			Date:         at(day, start),
			Availability: ev.Availability,
		}
		if end, err := timeutil.ParseClock(ev.End); err == nil {
			t := at(day, end)
			e.EndDate = &t
		}
		out = append(out, e)
	}
	return out
}

// Entries converts the plan into store entries for its day.
func (p Plan) Entries(day time.Time) []*entry.Entry {
	key := entry.DayKey(day)
	out := make([]*entry.Entry, 0, len(p.Todo)+len(p.Calendar))
	for _, t := range p.Todo {
		e := entry.NewTask(key, t.Content)
		e.Filename = t.Filename
		e.LineIndex = t.Line
		e.Duration = t.Duration
		e.Priority = t.Priority
		out = append(out, e)
	}
	for _, ev := range p.Events(day) {
		e := entry.NewEvent(key, ev.Title, ev.Date, ev.Date)
		e.End = nil
		if ev.EndDate != nil {
			e.End = &entry.Timestamp{Time: *ev.EndDate}
		}
		e.Availability = ev.Availability
		out = append(out, e)
	}
	return out
}

func at(day time.Time, mins int) time.Time {
	y, m, d := day.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, day.Location()).Add(time.Duration(mins) * time.Minute)
}

// Encode writes v as YAML.
func Encode(w io.Writer, v interface{}) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("plan: encode: %w", err)
	}
	return enc.Close()
}
