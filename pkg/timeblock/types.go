// Package timeblock computes a day's time-block schedule: it lays the day out
// as fixed-width slots, paints calendar events busy, finds the open blocks
// that remain and packs prioritized tasks into them.
//
// Everything here is synchronous and free of I/O. Functions take their inputs
// by value and return new values; an IntervalMap or Result passed in is never
// modified.
package timeblock

import (
	"encoding/json"
	"fmt"
	"time"
)

type busyKind uint8

const (
	kindFree busyKind = iota
	kindBusy
	kindLabel
	kindScheduled
)

// Busy is the occupancy of one slot: free, busy, or busy under a label.
// Labels painted from calendar entries can act as named blocks; labels
// painted by the matcher for placed tasks never do.
type Busy struct {
	kind  busyKind
	label string
}

var (
	// Free marks an open slot.
	Free = Busy{}
	// Occupied marks a busy slot with no label.
	Occupied = Busy{kind: kindBusy}
)

// Labeled returns a busy marker carrying label. An empty label is plain
// Occupied.
func Labeled(label string) Busy {
	if label == "" {
		return Occupied
	}
	return Busy{kind: kindLabel, label: label}
}

func scheduled(label string) Busy {
	return Busy{kind: kindScheduled, label: label}
}

// IsBusy reports whether the slot is taken.
func (b Busy) IsBusy() bool { return b.kind != kindFree }

// Label is the slot's label, or "" when it has none.
func (b Busy) Label() string { return b.label }

// IsNamedBlock reports whether the label came from a calendar entry rather
// than from a task placement.
func (b Busy) IsNamedBlock() bool { return b.kind == kindLabel }

func (b Busy) String() string {
	switch b.kind {
	case kindFree:
		return "false"
	case kindBusy:
		return "true"
	default:
		return b.label
	}
}

// MarshalJSON writes false, true or the label string.
func (b Busy) MarshalJSON() ([]byte, error) {
	switch b.kind {
	case kindFree:
		return []byte("false"), nil
	case kindBusy:
		return []byte("true"), nil
	default:
		return json.Marshal(b.label)
	}
}

// UnmarshalJSON accepts false, true or a label string.
func (b *Busy) UnmarshalJSON(data []byte) error {
	var v interface{}
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	switch x := v.(type) {
	case nil:
		*b = Free
	case bool:
		if x {
			*b = Occupied
		} else {
			*b = Free
		}
	case string:
		if x == "" {
			*b = Free
		} else {
			*b = Labeled(x)
		}
	default:
		return fmt.Errorf("timeblock: invalid busy value %s", string(data))
	}
	return nil
}

// MarshalYAML mirrors MarshalJSON.
func (b Busy) MarshalYAML() (interface{}, error) {
	switch b.kind {
	case kindFree:
		return false, nil
	case kindBusy:
		return true, nil
	default:
		return b.label, nil
	}
}

// TimeSlot is one step of an IntervalMap. Index is the slot's ordinal within
// the map it was built in and is what contiguity is judged by.
type TimeSlot struct {
	Start string `json:"start" yaml:"start"`
	Busy  Busy   `json:"busy" yaml:"busy"`
	Index int    `json:"index" yaml:"index"`
}

// IntervalMap is a day laid out as slots of equal width, ascending by Index.
type IntervalMap []TimeSlot

// Clone returns an independent copy.
func (m IntervalMap) Clone() IntervalMap {
	if m == nil {
		return nil
	}
	out := make(IntervalMap, len(m))
	copy(out, m)
	return out
}

// OpenBlock is a maximal run of contiguous slots sharing the same state.
// Title is set when the run is a named block.
type OpenBlock struct {
	Start         string `json:"start" yaml:"start"`
	End           string `json:"end" yaml:"end"`
	MinsAvailable int    `json:"minsAvailable" yaml:"minsAvailable"`
	Title         string `json:"title,omitempty" yaml:"title,omitempty"`
}

// Task is one schedulable item. Duration and Priority may be set by the
// caller; EnrichTasks fills them in when zero.
type Task struct {
	Content   string `json:"content" yaml:"content"`
	Duration  int    `json:"duration,omitempty" yaml:"duration,omitempty"`
	Priority  int    `json:"priority,omitempty" yaml:"priority,omitempty"`
	Filename  string `json:"filename,omitempty" yaml:"filename,omitempty"`
	LineIndex int    `json:"lineIndex,omitempty" yaml:"lineIndex,omitempty"`
}

// Availability values reported by calendars.
const (
	AvailabilityBusy = 0
	AvailabilityFree = 1
)

// Event is a calendar entry for the day. Events without an EndDate, or whose
// Availability is AvailabilityFree, do not block time.
type Event struct {
	Title        string     `json:"title" yaml:"title"`
	Date         time.Time  `json:"date" yaml:"date"`
	EndDate      *time.Time `json:"endDate,omitempty" yaml:"endDate,omitempty"`
	Availability int        `json:"availability,omitempty" yaml:"availability,omitempty"`
}

// Range is a [Start, End) span of "HH:MM" clock times, optionally titled.
type Range struct {
	Start string `json:"start" yaml:"start"`
	End   string `json:"end" yaml:"end"`
	Title string `json:"title,omitempty" yaml:"title,omitempty"`
}

// Placement is one emitted schedule line together with the range it covers.
// Split is the 1-based segment number when a task was split across blocks.
type Placement struct {
	Start string `json:"start" yaml:"start"`
	End   string `json:"end" yaml:"end"`
	Title string `json:"title" yaml:"title"`
	Split int    `json:"split,omitempty" yaml:"split,omitempty"`
	Line  string `json:"line" yaml:"line"`
}

// Result is the state threaded through a scheduling run. Each step returns a
// new Result; the TimeMap reflects every range consumed so far.
type Result struct {
	TimeMap           IntervalMap `json:"timeMap" yaml:"timeMap"`
	BlockList         []OpenBlock `json:"blockList" yaml:"blockList"`
	Placements        []Placement `json:"placements" yaml:"placements"`
	TimeBlockTextList []string    `json:"timeBlockTextList" yaml:"timeBlockTextList"`
	NoTimeForTasks    Unscheduled `json:"noTimeForTasks" yaml:"noTimeForTasks"`
}

// NewResult starts a run over m.
func NewResult(m IntervalMap) Result {
	return Result{TimeMap: m.Clone()}
}

func (r Result) clone() Result {
	out := Result{
		TimeMap:        r.TimeMap.Clone(),
		NoTimeForTasks: r.NoTimeForTasks.clone(),
	}
	if r.BlockList != nil {
		out.BlockList = append([]OpenBlock(nil), r.BlockList...)
	}
	if r.Placements != nil {
		out.Placements = append([]Placement(nil), r.Placements...)
	}
	if r.TimeBlockTextList != nil {
		out.TimeBlockTextList = append([]string(nil), r.TimeBlockTextList...)
	}
	return out
}
