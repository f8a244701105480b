// Package key provides CLI helpers to display the symbol legend.
package key

import (
	"context"
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"

	"tableflip.dev/timeblock/pkg/glyph"
)

// Key prints a legend of the row and timeline symbols.
type Key struct {
	Out io.Writer
}

func (k *Key) out() io.Writer {
	if k.Out != nil {
		return k.Out
	}
	return color.Output
}

// Do renders the legend.
func (k *Key) Do(_ context.Context) error {
	bold := color.New(color.Bold)

	_, _ = fmt.Fprintln(k.out(), "")
	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow(bold.Sprint("Rows"), bold.Sprint("Meaning"))
	for _, g := range glyph.DefaultGlyphs() {
		if g.Symbol == "" {
			continue
		}
		tbl.AddRow(g.Symbol, g.Meaning)
	}
	tbl.RightAlign(0)
	_, _ = fmt.Fprintln(k.out(), tbl)
	_, _ = fmt.Fprintln(k.out(), "")

	tbl = uitable.New()
	tbl.Separator = "  "
	tbl.AddRow(bold.Sprint("Timeline"), bold.Sprint("Meaning"))
	tbl.AddRow("·", "free")
	tbl.AddRow("█", "busy")
	tbl.AddRow("▒", "named block")
	tbl.AddRow("▓", "placed task")
	tbl.RightAlign(0)
	_, _ = fmt.Fprintln(k.out(), tbl)
	_, _ = fmt.Fprintln(k.out(), "")
	return nil
}
