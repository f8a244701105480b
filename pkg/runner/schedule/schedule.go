// Package schedule runs the scheduler over one day of stored or planned
// tasks and events and prints the result.
package schedule

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/fatih/color"
	"github.com/rs/zerolog"

	"tableflip.dev/timeblock/pkg/config"
	"tableflip.dev/timeblock/pkg/entry"
	"tableflip.dev/timeblock/pkg/plan"
	"tableflip.dev/timeblock/pkg/printers"
	"tableflip.dev/timeblock/pkg/store"
	"tableflip.dev/timeblock/pkg/timeblock"
)

// Format selects how the result is written.
type Format string

const (
	FormatText Format = ""
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

type Schedule struct {
	Config config.Config
	// Day is the day to schedule; its date is what matters.
	Day time.Time

	// Plan, when set, supplies the inputs instead of Persistence.
	Plan        *plan.Plan
	Persistence store.Persistence

	Watch    bool
	Timeline bool
	Format   Format

	// Now defaults to time.Now.
	Now    func() time.Time
	Out    io.Writer
	Logger zerolog.Logger
}

func (s *Schedule) Do(ctx context.Context) error {
	if err := s.runOnce(ctx); err != nil {
		return err
	}
	if !s.Watch {
		return nil
	}
	if s.Persistence == nil {
		return errors.New("schedule: watching needs the store")
	}

	events, err := s.Persistence.Watch(ctx)
	if err != nil {
		return err
	}
	day := entry.DayKey(s.Day)
	s.Logger.Info().Str("day", day).Msg("watching for changes")
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			if !ev.Affects(day) {
				continue
			}
			s.Logger.Debug().Str("day", day).Msg("store changed, rescheduling")
			if err := s.runOnce(ctx); err != nil {
				return err
			}
		}
	}
}

func (s *Schedule) runOnce(ctx context.Context) error {
	res, err := s.Compute(ctx)
	if err != nil {
		return err
	}
	return s.write(res)
}

// Compute schedules the day and returns the result without printing it.
func (s *Schedule) Compute(ctx context.Context) (timeblock.Result, error) {
	tasks, events, err := s.inputs(ctx)
	if err != nil {
		return timeblock.Result{}, err
	}

	cfg := s.Config.Config
	cfg.Now = s.clock()

	m := timeblock.BlankDayMap(cfg.IntervalMins)
	m = timeblock.PaintEvents(events, m, cfg)
	tasks = timeblock.EnrichTasks(tasks, cfg)
	res := timeblock.ScheduleDay(m, tasks, cfg)

	s.Logger.Debug().
		Str("day", entry.DayKey(s.Day)).
		Str("mode", string(cfg.Mode)).
		Int("tasks", len(tasks)).
		Int("events", len(events)).
		Int("placed", len(res.Placements)).
		Int("unscheduled", res.NoTimeForTasks.Len()).
		Msg("scheduled day")
	return res, nil
}

func (s *Schedule) inputs(ctx context.Context) ([]timeblock.Task, []timeblock.Event, error) {
	loc := s.Day.Location()
	if s.Plan != nil {
		return s.Plan.Tasks(), s.Plan.Events(s.Day), nil
	}
	if s.Persistence == nil {
		return nil, nil, errors.New("schedule: no plan and no store")
	}

	var tasks []timeblock.Task
	var events []timeblock.Event
	for _, e := range s.Persistence.List(ctx, entry.DayKey(s.Day)) {
		switch e.Kind {
		case entry.KindTask:
			tasks = append(tasks, e.ToTask())
		case entry.KindEvent:
			if ev, ok := e.ToEvent(loc); ok {
				events = append(events, ev)
			}
		default:
			s.Logger.Warn().Str("id", e.ID).Str("kind", string(e.Kind)).Msg("skipping entry of unknown kind")
		}
	}
	return tasks, events, nil
}

// clock reports the current time on the scheduled day, and midnight for any
// other day so the whole of it is open.
func (s *Schedule) clock() func() time.Time {
	now := time.Now
	if s.Now != nil {
		now = s.Now
	}
	return func() time.Time {
		n := now().In(s.Day.Location())
		if entry.DayKey(n) == entry.DayKey(s.Day) {
			return n
		}
		y, m, d := s.Day.Date()
		return time.Date(y, m, d, 0, 0, 0, 0, s.Day.Location())
	}
}

func (s *Schedule) out() io.Writer {
	if s.Out != nil {
		return s.Out
	}
	return color.Output
}

func (s *Schedule) write(res timeblock.Result) error {
	switch s.Format {
	case FormatJSON:
		b, err := json.MarshalIndent(res, "", "  ")
		if err != nil {
			return fmt.Errorf("schedule: encode: %w", err)
		}
		_, err = fmt.Fprintln(s.out(), string(b))
		return err
	case FormatYAML:
		return plan.Encode(s.out(), res)
	}

	pp := printers.PrettyPrint{Out: s.out()}
	heading := s.Config.TimeBlockHeading
	if heading == "" {
		heading = "Time Blocks"
	}
	pp.Schedule(fmt.Sprintf("%s for %s", heading, entry.DayKey(s.Day)), res)
	if s.Timeline {
		pp.Timeline(res.TimeMap)
	}
	return nil
}
