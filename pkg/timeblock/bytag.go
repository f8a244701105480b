package timeblock

import (
	"regexp"
	"sort"

	"tableflip.dev/timeblock/pkg/tags"
	"tableflip.dev/timeblock/pkg/timeutil"
)

// ScheduleByTimeblockTag schedules tasks that are already sorted, in three
// passes over one master time map:
//
//  1. Timeframes. A task whose hashtags include a cfg.Timeframes label is
//     matched inside that timeframe's window only (once per matching
//     timeframe).
//  2. Named blocks. For each named block, in block order, the remaining tasks
//     mentioning the block title are matched inside that block only. Each
//     named block is tried once.
//  3. The rest, together with the orphans of passes 1 and 2 as
//     cfg.OrphanTagggedTasks directs, is matched against what is left of the
//     day as in PRIORITY_FIRST mode, which keeps it out of named blocks.
//
// Orphans are recorded under TimeframeBucket or NamedBlockBucket keys.
// Placements from every pass are merged in start-time order.
func ScheduleByTimeblockTag(sorted []Task, state Result, cfg Config) Result {
	master := state.TimeMap.Clone()
	placements := append([]Placement(nil), state.Placements...)
	var orphans Unscheduled

	record := func(r Result) {
		for _, p := range r.Placements {
			master = paint(master, p.Start, p.End, scheduled(p.Title))
		}
		placements = append(placements, r.Placements...)
	}

	// Timeframes.
	framed, pending := splitItemsByTags(sorted, cfg.Timeframes)
	for _, label := range sortedKeys(framed) {
		window := cfg.Timeframes[label]
		frameMap := outsideWindowBusy(master, window[0], window[1])
		for _, task := range sortTasks(framed[label], cfg, byPriorityDesc, byDurationAsc) {
			r := MatchTasksToSlots([]Task{task}, NewResult(frameMap), cfg)
			frameMap = r.TimeMap
			record(r)
			if left := r.NoTimeForTasks.Tasks(DefaultBucket); len(left) > 0 {
				orphans = orphans.Add(TimeframeBucket(label), left...)
			}
		}
	}

	// Named blocks.
	for _, block := range openBlocks(master, cfg) {
		if block.Title == "" {
			continue
		}
		title := regexp.MustCompile("(?i)" + regexp.QuoteMeta(block.Title))
		rest := make([]Task, 0, len(pending))
		for _, task := range pending {
			if !title.MatchString(task.Content) {
				rest = append(rest, task)
				continue
			}
			r := MatchTasksToSlots([]Task{task}, NewResult(namedBlockSlots(master, block, cfg)), cfg)
			record(r)
			if left := r.NoTimeForTasks.Tasks(DefaultBucket); len(left) > 0 {
				orphans = orphans.Add(NamedBlockBucket(block.Title), left...)
			}
		}
		pending = rest
	}

	// Everything else.
	keep := state.NoTimeForTasks.clone()
	switch cfg.OrphanTagggedTasks {
	case OrphansIgnore:
	case OrphansScheduleElsewhereLast:
		pending = append(pending, orphans.All()...)
	case OrphansScheduleElsewhereFirst:
		pending = append(orphans.All(), pending...)
	default:
		keep = keep.Merge(orphans)
	}
	final := MatchTasksToSlots(pending, NewResult(master), cfg, WithMode(ModePriorityFirst))
	master = final.TimeMap
	placements = append(placements, final.Placements...)

	sortPlacements(placements)
	lines := make([]string, len(placements))
	for i, p := range placements {
		lines[i] = p.Line
	}
	return Result{
		TimeMap:           master,
		BlockList:         openBlocks(master, cfg),
		Placements:        placements,
		TimeBlockTextList: lines,
		NoTimeForTasks:    keep.Merge(final.NoTimeForTasks),
	}
}

// splitItemsByTags files each task under every timeframe label found among
// its hashtags, ignoring case since config loading may lowercase labels.
// Tasks matching none are returned in order as rest. Timeframes with
// malformed windows are ignored.
func splitItemsByTags(tasks []Task, timeframes map[string][]string) (map[string][]Task, []Task) {
	framed := make(map[string][]Task)
	rest := make([]Task, 0, len(tasks))
	for _, task := range tasks {
		matched := false
		for label, window := range timeframes {
			if !validWindow(window) {
				continue
			}
			if tags.HasHashtag(task.Content, label) {
				framed[label] = append(framed[label], task)
				matched = true
			}
		}
		if !matched {
			rest = append(rest, task)
		}
	}
	return framed, rest
}

func validWindow(window []string) bool {
	if len(window) != 2 {
		return false
	}
	start, err := timeutil.ParseClock(window[0])
	if err != nil {
		return false
	}
	end, err := timeutil.ParseClock(window[1])
	return err == nil && start < end
}

// outsideWindowBusy marks every slot outside [start, end) busy.
func outsideWindowBusy(m IntervalMap, start, end string) IntervalMap {
	out := paint(m, "00:00", start, Occupied)
	return paint(out, end, "24:00", Occupied)
}

// namedBlockSlots keeps the slots inside block whose timeblock label
// normalizes to the block's title.
func namedBlockSlots(m IntervalMap, block OpenBlock, cfg Config) IntervalMap {
	from, _ := timeutil.ParseClock(block.Start)
	to, _ := timeutil.ParseClock(block.End)
	out := make(IntervalMap, 0)
	for _, slot := range m {
		at, err := timeutil.ParseClock(slot.Start)
		if err != nil || at < from || at >= to {
			continue
		}
		if isTimeblockLabel(slot.Busy, cfg) && blockTitle(slot.Busy, cfg) == block.Title {
			out = append(out, slot)
		}
	}
	return out
}

func sortedKeys(m map[string][]Task) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// sortPlacements orders placements by start time, keeping placement order for
// equal starts.
func sortPlacements(ps []Placement) {
	sort.SliceStable(ps, func(i, j int) bool {
		a, _ := timeutil.ParseClock(ps[i].Start)
		b, _ := timeutil.ParseClock(ps[j].Start)
		return a < b
	})
}
