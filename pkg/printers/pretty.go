package printers

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"

	"tableflip.dev/timeblock/pkg/entry"
	"tableflip.dev/timeblock/pkg/glyph"
	"tableflip.dev/timeblock/pkg/timeblock"
)

type PrettyPrint struct {
	ShowID bool
	// Out defaults to color.Output.
	Out io.Writer
}

var (
	spacing = strings.Repeat(" ", len("171dff69f8b99dca  "))
)

func (pp *PrettyPrint) out() io.Writer {
	if pp.Out != nil {
		return pp.Out
	}
	return color.Output
}

func (pp *PrettyPrint) NewLine() {
	_, _ = fmt.Fprintln(pp.out(), "")
}

func (pp *PrettyPrint) Title(title string) {
	t := color.New(color.Bold, color.Underline)

	if pp.ShowID {
		_, _ = t.Fprint(pp.out(), spacing)
	}
	_, _ = t.Fprintln(pp.out(), title)
}

func (pp *PrettyPrint) TitleWithCount(title string, count int) {
	t := color.New(color.Bold, color.Underline)
	c := color.New(color.Faint)

	if pp.ShowID {
		_, _ = t.Fprint(pp.out(), spacing)
	}
	_, _ = t.Fprint(pp.out(), title)
	_, _ = c.Fprintf(pp.out(), " - %d", count)

	switch count {
	case 1:
		_, _ = c.Fprintln(pp.out(), " entry")
	default:
		_, _ = c.Fprintln(pp.out(), " entries")
	}
}

func (pp *PrettyPrint) none() {
	f := color.New(color.Faint, color.Italic)
	if pp.ShowID {
		_, _ = f.Fprint(pp.out(), spacing)
	}
	_, _ = f.Fprint(pp.out(), " none\n\n")
}

// Entries prints stored tasks and events, one per row.
func (pp *PrettyPrint) Entries(entries ...*entry.Entry) {
	if len(entries) == 0 {
		pp.none()
		return
	}

	y := color.New(color.FgHiYellow, color.Italic, color.Faint)

	tbl := uitable.New()
	tbl.Separator = " "
	for _, e := range entries {
		b, when, content := e.Row()
		if pp.ShowID {
			tbl.AddRow(y.Sprint(e.ID), b, when, content)
		} else {
			tbl.AddRow(b, when, content)
		}
	}
	_, _ = fmt.Fprintln(pp.out(), tbl)
	_, _ = fmt.Fprintln(pp.out(), "")
}

// Schedule prints the time block lines, the open time left over and the
// tasks that found no room.
func (pp *PrettyPrint) Schedule(heading string, res timeblock.Result) {
	pp.TitleWithCount(heading, len(res.Placements))
	if len(res.Placements) == 0 {
		pp.none()
	} else {
		s := color.New(color.FgGreen)
		tbl := uitable.New()
		tbl.Separator = " "
		for _, p := range res.Placements {
			tbl.AddRow(glyph.Scheduled.String(), s.Sprintf("%s-%s", p.Start, p.End), p.Line)
		}
		_, _ = fmt.Fprintln(pp.out(), tbl)
		pp.NewLine()
	}

	pp.OpenBlocks(res.BlockList)
	pp.Unscheduled(res.NoTimeForTasks)
}

// OpenBlocks prints the blocks still free.
func (pp *PrettyPrint) OpenBlocks(blocks []timeblock.OpenBlock) {
	if len(blocks) == 0 {
		return
	}
	pp.Title("Open")
	f := color.New(color.Faint)
	tbl := uitable.New()
	tbl.Separator = " "
	for _, b := range blocks {
		tbl.AddRow(glyph.Open.String(), fmt.Sprintf("%s-%s", b.Start, b.End), f.Sprintf("%dm", b.MinsAvailable), b.Title)
	}
	_, _ = fmt.Fprintln(pp.out(), tbl)
	pp.NewLine()
}

// Unscheduled prints each bucket of tasks that could not be placed.
func (pp *PrettyPrint) Unscheduled(u timeblock.Unscheduled) {
	if u.Len() == 0 {
		return
	}
	r := color.New(color.FgRed)
	for _, b := range u {
		switch b.Key.Kind {
		case timeblock.BucketDefault:
			pp.Title("No time for")
		case timeblock.BucketTimeframe:
			pp.Title(fmt.Sprintf("No time in timeframe %q for", b.Key.Label))
		case timeblock.BucketNamedBlock:
			pp.Title(fmt.Sprintf("No time in block %q for", b.Key.Label))
		}
		tbl := uitable.New()
		tbl.Separator = " "
		for _, t := range b.Tasks {
			tbl.AddRow(r.Sprint(glyph.Unscheduled.String()), fmt.Sprintf("%dm", t.Duration), t.Content)
		}
		_, _ = fmt.Fprintln(pp.out(), tbl)
		pp.NewLine()
	}
}
