package entry

import (
	"fmt"
	"time"

	"tableflip.dev/timeblock/pkg/glyph"
	"tableflip.dev/timeblock/pkg/timeblock"
	"tableflip.dev/timeblock/pkg/timeutil"
)

// Kind says whether an entry is a task to schedule or an event that blocks
// time.
type Kind string

const (
	KindTask  Kind = "task"
	KindEvent Kind = "event"
)

const layoutDay = "2006-01-02"

// DayKey formats t as the day an entry belongs to.
func DayKey(t time.Time) string {
	return t.Format(layoutDay)
}

// ParseDay parses a day key in loc.
func ParseDay(day string, loc *time.Location) (time.Time, error) {
	return time.ParseInLocation(layoutDay, day, loc)
}

func NewTask(day, content string) *Entry {
	return &Entry{
		Day:     day,
		Kind:    KindTask,
		Content: content,
		Created: Timestamp{Time: time.Now()},
	}
}

func NewEvent(day, title string, start, end time.Time) *Entry {
	return &Entry{
		Day:     day,
		Kind:    KindEvent,
		Content: title,
		Start:   &Timestamp{Time: start},
		End:     &Timestamp{Time: end},
		Created: Timestamp{Time: time.Now()},
	}
}

type Entry struct {
	ID           string     `json:"id,omitempty"`
	Day          string     `json:"day"`
	Kind         Kind       `json:"kind"`
	Content      string     `json:"content"`
	Filename     string     `json:"filename,omitempty"`
	LineIndex    int        `json:"lineIndex,omitempty"`
	Duration     int        `json:"duration,omitempty"`
	Priority     int        `json:"priority,omitempty"`
	Start        *Timestamp `json:"start,omitempty"`
	End          *Timestamp `json:"end,omitempty"`
	Availability int        `json:"availability,omitempty"`
	Created      Timestamp  `json:"created"`
}

// ToTask converts a task entry for the scheduler.
func (e *Entry) ToTask() timeblock.Task {
	return timeblock.Task{
		Content:   e.Content,
		Duration:  e.Duration,
		Priority:  e.Priority,
		Filename:  e.Filename,
		LineIndex: e.LineIndex,
	}
}

// ToEvent converts an event entry for the scheduler, with times in loc. It
// reports false for tasks and for events with no start.
func (e *Entry) ToEvent(loc *time.Location) (timeblock.Event, bool) {
	if e.Kind != KindEvent || e.Start == nil || e.Start.IsZero() {
		return timeblock.Event{}, false
	}
	ev := timeblock.Event{
		Title:        e.Content,
		Date:         e.Start.In(loc),
		Availability: e.Availability,
	}
	if e.End != nil && !e.End.IsZero() {
		end := e.End.In(loc)
		ev.EndDate = &end
	}
	return ev, true
}

func (e *Entry) Bullet() glyph.Bullet {
	if e.Kind == KindEvent {
		return glyph.Event
	}
	return glyph.Task
}

// When is the event's clock range, or "" for tasks.
func (e *Entry) When() string {
	if e.Kind != KindEvent || e.Start == nil {
		return ""
	}
	start := timeutil.FromTime(e.Start.Local())
	if e.End == nil || e.End.IsZero() {
		return start
	}
	return fmt.Sprintf("%s-%s", start, timeutil.FromTime(e.End.Local()))
}

func (e *Entry) Row() (string, string, string) {
	return e.Bullet().String(), e.When(), e.Content
}

func (e *Entry) String() string {
	if when := e.When(); when != "" {
		return fmt.Sprintf("%s %s  %s", e.Bullet(), when, e.Content)
	}
	return fmt.Sprintf("%s  %s", e.Bullet(), e.Content)
}
