package info

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"

	"tableflip.dev/timeblock/pkg/config"
	"tableflip.dev/timeblock/pkg/plan"
	"tableflip.dev/timeblock/pkg/store"
)

// Info prints where configuration and data come from, and the effective
// configuration.
type Info struct {
	Config      config.Config
	Persistence store.Persistence
	Out         io.Writer
}

func (n *Info) Do(ctx context.Context) error {
	out := n.Out
	if out == nil {
		out = color.Output
	}

	if override := os.Getenv(config.PathEnv); override != "" {
		_, _ = fmt.Fprintf(out, "%s found on env, using %s\n", config.PathEnv, override)
	} else {
		_, _ = fmt.Fprintf(out, "%s env var not set\n", config.PathEnv)
	}
	_, _ = fmt.Fprintf(out, "Store path: %s\n", n.Config.BasePath())

	if err := config.Validate(n.Config); err != nil {
		_, _ = fmt.Fprintf(out, "Config problems:\n%v\n", err)
	}

	if n.Persistence != nil {
		days := n.Persistence.Days(ctx)
		_, _ = fmt.Fprintf(out, "Days stored: %d\n", len(days))
		for _, d := range days {
			_, _ = fmt.Fprintf(out, "  %s (%d)\n", d, len(n.Persistence.List(ctx, d)))
		}
	}

	_, _ = fmt.Fprintln(out, "\nConfig:")
	return plan.Encode(out, n.Config)
}
