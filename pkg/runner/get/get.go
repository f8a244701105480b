package get

import (
	"context"
	"errors"
	"io"

	"tableflip.dev/timeblock/pkg/entry"
	"tableflip.dev/timeblock/pkg/glyph"
	"tableflip.dev/timeblock/pkg/printers"
	"tableflip.dev/timeblock/pkg/store"
)

type Get struct {
	ShowID bool
	Bullet glyph.Bullet
	// Day limits the listing to one day; empty lists every day.
	Day         string
	Persistence store.Persistence
	Out         io.Writer
}

func (n *Get) Do(ctx context.Context) error {
	pp := printers.PrettyPrint{ShowID: n.ShowID, Out: n.Out}

	if n.Persistence == nil {
		return errors.New("can not get, no persistence")
	}
	pp.NewLine()

	days := []string{n.Day}
	if n.Day == "" {
		days = n.Persistence.Days(ctx)
	}
	for _, day := range days {
		all := n.filtered(n.Persistence.List(ctx, day))
		pp.TitleWithCount(day, len(all))
		pp.Entries(all...)
	}

	return nil
}

func (n *Get) filtered(all []*entry.Entry) []*entry.Entry {
	c := make([]*entry.Entry, 0, len(all))
	for _, a := range all {
		if n.Bullet == glyph.Any || n.Bullet == a.Bullet() {
			c = append(c, a)
		}
	}
	return c
}
