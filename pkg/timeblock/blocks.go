package timeblock

import (
	"strings"

	"tableflip.dev/timeblock/pkg/timeutil"
)

// FilterToOpenSlots keeps the slots that can still be scheduled: those at or
// after now, inside the working day, and free. In BY_TIMEBLOCK_TAG mode a
// slot labeled by a calendar entry carrying the timeblock marker (or the
// timeblock tag) is kept too, which is how named blocks reach the matcher.
func FilterToOpenSlots(m IntervalMap, cfg Config) IntervalMap {
	now := cfg.nowMins()
	dayStart, dayEnd := cfg.workDay()

	out := make(IntervalMap, 0, len(m))
	for _, slot := range m {
		at, err := timeutil.ParseClock(slot.Start)
		if err != nil {
			continue
		}
		if at < now || at < dayStart || at >= dayEnd {
			continue
		}
		if !slot.Busy.IsBusy() || (cfg.byTagMode() && isTimeblockLabel(slot.Busy, cfg)) {
			out = append(out, slot)
		}
	}
	return out
}

func isTimeblockLabel(b Busy, cfg Config) bool {
	if !b.IsNamedBlock() {
		return false
	}
	if mc := cfg.TimeblockTextMustContainString; mc != "" && strings.Contains(b.Label(), mc) {
		return true
	}
	if tag := cfg.TimeBlockTag; tag != "" && strings.Contains(b.Label(), tag) {
		return true
	}
	return false
}

// FindOpenBlocks groups an open-only map into runs of slots with consecutive
// indexes and identical state. A run of slots sharing one label becomes a
// named block titled with that label.
func FindOpenBlocks(m IntervalMap, cfg Config) []OpenBlock {
	if len(m) == 0 {
		return []OpenBlock{}
	}
	blocks := make([]OpenBlock, 0)
	first, last := m[0], m[0]
	for _, slot := range m[1:] {
		if slot.Index == last.Index+1 && slot.Busy == last.Busy {
			last = slot
			continue
		}
		if b, ok := newBlock(first, last, cfg); ok {
			blocks = append(blocks, b)
		}
		first, last = slot, slot
	}
	if b, ok := newBlock(first, last, cfg); ok {
		blocks = append(blocks, b)
	}
	return blocks
}

func newBlock(first, last TimeSlot, cfg Config) (OpenBlock, bool) {
	step := cfg.IntervalMins
	if step <= 0 {
		step = DefaultIntervalMins
	}
	end, err := timeutil.AddMinutes(last.Start, step)
	if err != nil {
		return OpenBlock{}, false
	}
	mins, err := timeutil.Diff(first.Start, end)
	if err != nil {
		return OpenBlock{}, false
	}
	return OpenBlock{
		Start:         first.Start,
		End:           end,
		MinsAvailable: mins,
		Title:         blockTitle(last.Busy, cfg),
	}, true
}

func blockTitle(b Busy, cfg Config) string {
	title := b.Label()
	if title == "" {
		return ""
	}
	if mc := cfg.TimeblockTextMustContainString; mc != "" {
		title = strings.ReplaceAll(title, mc, "")
	}
	return strings.TrimSpace(spaces.ReplaceAllString(title, " "))
}
