package remove

import (
	"context"
	"errors"
	"fmt"
	"io"

	"tableflip.dev/timeblock/pkg/printers"
	"tableflip.dev/timeblock/pkg/store"
)

// Remove deletes one stored task or event by id.
type Remove struct {
	ID string
	// Day narrows the search; empty searches every day.
	Day         string
	Persistence store.Persistence
	Out         io.Writer
}

func (n *Remove) Do(ctx context.Context) error {
	pp := printers.PrettyPrint{ShowID: true, Out: n.Out}

	if n.Persistence == nil {
		return errors.New("can not remove, no persistence")
	}

	days := []string{n.Day}
	if n.Day == "" {
		days = n.Persistence.Days(ctx)
	}
	for _, day := range days {
		for _, e := range n.Persistence.List(ctx, day) {
			if e.ID != n.ID {
				continue
			}
			if err := n.Persistence.Delete(e); err != nil {
				return err
			}
			pp.NewLine()
			pp.Title(day)
			pp.Entries(n.Persistence.List(ctx, day)...)
			return nil
		}
	}
	return fmt.Errorf("no entry with id %q", n.ID)
}
