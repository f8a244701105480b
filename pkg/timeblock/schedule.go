package timeblock

import (
	"sort"
)

// ScheduleDay orders tasks for cfg.Mode and matches them into the open
// blocks of m:
//
//   - PRIORITY_FIRST: priority descending, then duration ascending.
//   - LARGEST_FIRST: duration descending, then priority descending.
//   - BY_TIMEBLOCK_TAG: priority descending, filename, duration descending,
//     then ScheduleByTimeblockTag.
//   - MANUAL_ORDERING: line index ascending.
//
// With no tasks, no open blocks, or an unknown mode nothing is scheduled and
// the returned Result only carries the map and its open blocks.
func ScheduleDay(m IntervalMap, tasks []Task, cfg Config) Result {
	res := NewResult(m)
	res.BlockList = openBlocks(m, cfg)
	if len(m) == 0 || len(tasks) == 0 || len(res.BlockList) == 0 {
		return res
	}

	switch cfg.Mode {
	case ModePriorityFirst:
		return MatchTasksToSlots(sortTasks(tasks, cfg, byPriorityDesc, byDurationAsc), res, cfg)
	case ModeLargestFirst:
		return MatchTasksToSlots(sortTasks(tasks, cfg, byDurationDesc, byPriorityDesc), res, cfg)
	case ModeByTimeblockTag:
		return ScheduleByTimeblockTag(sortTasks(tasks, cfg, byPriorityDesc, byFilename, byDurationDesc), res, cfg)
	case ModeManualOrdering:
		return MatchTasksToSlots(sortTasks(tasks, cfg, byLineIndex), res, cfg)
	default:
		return res
	}
}

// taskOrder compares two tasks: negative when a sorts first, zero for a tie.
type taskOrder func(a, b Task, cfg Config) int

func byPriorityDesc(a, b Task, _ Config) int { return b.Priority - a.Priority }

func byDurationAsc(a, b Task, cfg Config) int { return taskDuration(a, cfg) - taskDuration(b, cfg) }

func byDurationDesc(a, b Task, cfg Config) int { return taskDuration(b, cfg) - taskDuration(a, cfg) }

func byLineIndex(a, b Task, _ Config) int { return a.LineIndex - b.LineIndex }

func byFilename(a, b Task, _ Config) int {
	switch {
	case a.Filename < b.Filename:
		return -1
	case a.Filename > b.Filename:
		return 1
	}
	return 0
}

// sortTasks returns a stably sorted copy of tasks.
func sortTasks(tasks []Task, cfg Config, orders ...taskOrder) []Task {
	out := append([]Task(nil), tasks...)
	sort.SliceStable(out, func(i, j int) bool {
		for _, order := range orders {
			if c := order(out[i], out[j], cfg); c != 0 {
				return c < 0
			}
		}
		return false
	})
	return out
}
