package timeblock

import (
	"fmt"

	"tableflip.dev/timeblock/pkg/timeutil"
)

type matchOptions struct {
	mode    Mode
	hasMode bool
}

// MatchOption adjusts a single MatchTasksToSlots call.
type MatchOption func(*matchOptions)

// WithMode matches as if cfg.Mode were m, without touching cfg.
func WithMode(m Mode) MatchOption {
	return func(o *matchOptions) {
		o.mode = m
		o.hasMode = true
	}
}

// MatchTasksToSlots places tasks, in the order given, into the open blocks of
// state.TimeMap. Each task goes into the first block that holds it whole;
// with cfg.AllowEventSplits a task instead fills blocks in order, one
// numbered segment per block, until its duration is met. Open blocks are
// derived afresh from the time map before every placement, so state.BlockList
// is not consulted.
//
// Tasks, or the unplaced remainder of split tasks, that find no room are
// added to the DefaultBucket of NoTimeForTasks with Duration set to the
// minutes still missing. Placements and lines are appended to those already
// in state.
func MatchTasksToSlots(tasks []Task, state Result, cfg Config, opts ...MatchOption) Result {
	o := matchOptions{}
	for _, opt := range opts {
		opt(&o)
	}
	if o.hasMode {
		cfg.Mode = o.mode
	}

	res := state.clone()
	for _, task := range tasks {
		remaining := taskDuration(task, cfg)
		split := 0
		for remaining > 0 {
			block, ok := pickBlock(openBlocks(res.TimeMap, cfg), remaining, cfg.AllowEventSplits)
			if !ok {
				break
			}
			take := remaining
			if block.MinsAvailable < take {
				take = block.MinsAvailable
			}
			if take < remaining || split > 0 {
				split++
			}
			res = place(res, task, block.Start, take, split, cfg)
			remaining -= take
		}
		if remaining > 0 {
			left := task
			left.Duration = remaining
			res.NoTimeForTasks = res.NoTimeForTasks.Add(DefaultBucket, left)
		}
	}
	res.BlockList = openBlocks(res.TimeMap, cfg)
	return res
}

func openBlocks(m IntervalMap, cfg Config) []OpenBlock {
	return FindOpenBlocks(FilterToOpenSlots(m, cfg), cfg)
}

func pickBlock(blocks []OpenBlock, need int, allowSplits bool) (OpenBlock, bool) {
	for _, b := range blocks {
		if b.MinsAvailable <= 0 {
			continue
		}
		if need <= b.MinsAvailable || allowSplits {
			return b, true
		}
	}
	return OpenBlock{}, false
}

// place consumes mins from start for task and records the line.
func place(res Result, task Task, start string, mins, split int, cfg Config) Result {
	end, err := timeutil.AddMinutes(start, mins)
	if err != nil {
		return res
	}
	title := task.Content
	if split > 0 {
		title = fmt.Sprintf("%s (%d)", title, split)
	}
	line := CreateTimeBlockLine(Range{Start: start, End: end, Title: title}, cfg)
	res.TimeMap = paint(res.TimeMap, start, end, scheduled(title))
	res.Placements = append(res.Placements, Placement{
		Start: start,
		End:   end,
		Title: title,
		Split: split,
		Line:  line,
	})
	res.TimeBlockTextList = append(res.TimeBlockTextList, line)
	return res
}
