package add

import (
	"context"
	"errors"
	"io"
	"time"

	"tableflip.dev/timeblock/pkg/entry"
	"tableflip.dev/timeblock/pkg/plan"
	"tableflip.dev/timeblock/pkg/printers"
	"tableflip.dev/timeblock/pkg/store"
	"tableflip.dev/timeblock/pkg/timeblock"
	"tableflip.dev/timeblock/pkg/timeutil"
)

type Add struct {
	Kind    entry.Kind
	Day     time.Time
	Content string

	// Start and End are "HH:MM" clock times on Day, for events.
	Start string
	End   string
	Free  bool

	Filename  string
	LineIndex int

	Persistence store.Persistence
	Out         io.Writer
}

func (n *Add) Do(ctx context.Context) error {
	if n.Persistence == nil {
		return errors.New("can not add, no persistence")
	}
	e, err := n.entry()
	if err != nil {
		return err
	}
	if err := n.Persistence.Store(e); err != nil {
		return err
	}

	pp := printers.PrettyPrint{Out: n.Out}
	pp.Title(e.Day)
	pp.Entries(n.Persistence.List(ctx, e.Day)...)
	return nil
}

func (n *Add) entry() (*entry.Entry, error) {
	day := entry.DayKey(n.Day)
	switch n.Kind {
	case entry.KindTask:
		e := entry.NewTask(day, n.Content)
		e.Filename = n.Filename
		e.LineIndex = n.LineIndex
		return e, nil
	case entry.KindEvent:
		start, err := timeutil.ParseClock(n.Start)
		if err != nil {
			return nil, err
		}
		end, err := timeutil.ParseClock(n.End)
		if err != nil {
			return nil, err
		}
		if end <= start {
			return nil, errors.New("event must end after it starts")
		}
		e := entry.NewEvent(day, n.Content, clockOn(n.Day, start), clockOn(n.Day, end))
		if n.Free {
			e.Availability = timeblock.AvailabilityFree
		}
		return e, nil
	default:
		return nil, errors.New("can not add, unknown kind " + string(n.Kind))
	}
}

func clockOn(day time.Time, mins int) time.Time {
	y, m, d := day.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, day.Location()).Add(time.Duration(mins) * time.Minute)
}

// Import stores every task and event of a day plan.
type Import struct {
	Plan        plan.Plan
	Day         time.Time
	Persistence store.Persistence
	Out         io.Writer
}

func (n *Import) Do(ctx context.Context) error {
	if n.Persistence == nil {
		return errors.New("can not import, no persistence")
	}
	entries := n.Plan.Entries(n.Day)
	for _, e := range entries {
		if err := n.Persistence.Store(e); err != nil {
			return err
		}
	}

	day := entry.DayKey(n.Day)
	pp := printers.PrettyPrint{Out: n.Out}
	pp.TitleWithCount(day, len(entries))
	pp.Entries(n.Persistence.List(ctx, day)...)
	return nil
}
