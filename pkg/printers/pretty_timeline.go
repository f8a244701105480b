package printers

import (
	"fmt"
	"strings"

	"github.com/fatih/color"

	"tableflip.dev/timeblock/pkg/timeblock"
	"tableflip.dev/timeblock/pkg/timeutil"
)

// Timeline prints one row per hour of m, one cell per slot:
//
//	08 ····██▒▒▒▒▒▒
//
// "·" is free, "█" busy, "▒" a named block and "▓" a placed task.
func (pp *PrettyPrint) Timeline(m timeblock.IntervalMap) {
	if len(m) == 0 {
		return
	}
	pp.Title("Day")

	h := color.New(color.Faint)
	hour := -1
	var row strings.Builder
	flush := func() {
		if hour < 0 {
			return
		}
		_, _ = h.Fprintf(pp.out(), "%02d ", hour)
		_, _ = fmt.Fprintln(pp.out(), row.String())
		row.Reset()
	}
	for _, slot := range m {
		mins, err := timeutil.ParseClock(slot.Start)
		if err != nil {
			continue
		}
		if mins/60 != hour {
			flush()
			hour = mins / 60
		}
		row.WriteString(cell(slot.Busy))
	}
	flush()
	pp.NewLine()
}

func cell(b timeblock.Busy) string {
	switch {
	case !b.IsBusy():
		return "·"
	case b.Label() == "":
		return "█"
	case b.IsNamedBlock():
		return "▒"
	default:
		return "▓"
	}
}
