package timeblock

import (
	"time"

	"tableflip.dev/timeblock/pkg/timeutil"
)

// PaintRange marks every slot starting in [r.Start, r.End) busy, labeled with
// r.Title when one is given. The returned line is the schedule line for r, or
// "" when r has no title. m is left untouched; an unparseable range paints
// nothing.
func PaintRange(m IntervalMap, r Range, cfg Config) (IntervalMap, string) {
	out := paint(m, r.Start, r.End, Labeled(r.Title))
	if r.Title == "" {
		return out, ""
	}
	return out, CreateTimeBlockLine(r, cfg)
}

// PaintEvents folds every blocking event into the map in order, so later
// events overwrite the labels of earlier overlapping ones. Events marked free
// and events without an end are skipped.
func PaintEvents(events []Event, m IntervalMap, cfg Config) IntervalMap {
	out := m.Clone()
	for _, e := range events {
		if e.Availability == AvailabilityFree || e.EndDate == nil {
			continue
		}
		r := Range{
			Start: timeutil.FromTime(e.Date),
			End:   timeutil.FromTime(*e.EndDate),
			Title: e.Title,
		}
		if laterDay(*e.EndDate, e.Date) {
			r.End = "24:00"
		}
		out, _ = PaintRange(out, r, cfg)
	}
	return out
}

func laterDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	if ay != by {
		return ay > by
	}
	if am != bm {
		return am > bm
	}
	return ad > bd
}

func paint(m IntervalMap, start, end string, busy Busy) IntervalMap {
	out := m.Clone()
	from, err := timeutil.ParseClock(start)
	if err != nil {
		return out
	}
	to, err := timeutil.ParseClock(end)
	if err != nil {
		return out
	}
	for i := range out {
		at, err := timeutil.ParseClock(out[i].Start)
		if err != nil {
			continue
		}
		if at >= from && at < to {
			out[i].Busy = busy
		}
	}
	return out
}
