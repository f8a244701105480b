package timeblock

import (
	"time"

	"tableflip.dev/timeblock/pkg/timeutil"
)

// DefaultIntervalMins is the slot width used when none is configured.
const DefaultIntervalMins = 5

// BuildIntervalMap lays out one slot every stepMins from start through end
// (inclusive), all marked initial. Seconds are truncated and slots never run
// past midnight of start's day. A non-positive step yields an empty map.
func BuildIntervalMap(start, end time.Time, initial Busy, stepMins int) IntervalMap {
	if stepMins <= 0 || end.Before(start) {
		return IntervalMap{}
	}
	first := start.Hour()*60 + start.Minute()
	last := first + int(end.Sub(start.Truncate(time.Minute))/time.Minute)
	return buildSlots(first, last, initial, stepMins)
}

// BlankDayMap covers 00:00 up to (not including) 24:00 with free slots. The
// slots are laid out on the wall clock, so DST transitions do not shift them.
func BlankDayMap(stepMins int) IntervalMap {
	if stepMins <= 0 {
		return IntervalMap{}
	}
	return buildSlots(0, timeutil.MinutesPerDay-1, Free, stepMins)
}

func buildSlots(first, last int, initial Busy, stepMins int) IntervalMap {
	if last >= timeutil.MinutesPerDay {
		last = timeutil.MinutesPerDay - 1
	}
	m := make(IntervalMap, 0, (last-first)/stepMins+1)
	for mins, i := first, 0; mins <= last; mins, i = mins+stepMins, i+1 {
		m = append(m, TimeSlot{
			Start: timeutil.FormatClock(mins),
			Busy:  initial,
			Index: i,
		})
	}
	return m
}
