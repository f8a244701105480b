package commands

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"tableflip.dev/timeblock/pkg/commands/options"
	"tableflip.dev/timeblock/pkg/entry"
	"tableflip.dev/timeblock/pkg/glyph"
	"tableflip.dev/timeblock/pkg/runner/get"
)

type getOptions struct {
	All bool
}

func addGet(topLevel *cobra.Command) {
	long := strings.Builder{}
	long.WriteString("Get the stored tasks and events of a day.\n\n")
	long.WriteString("Bullet and aliases:\n")

	validArgs := make([]string, 0)

	for _, g := range glyph.DefaultGlyphs() {
		if g.Symbol == "" || g.Noun == "" {
			continue
		}
		long.WriteString(fmt.Sprintf("%s: %s\n", g.Symbol, strings.Join(append([]string{g.Noun}, g.Aliases...), ", ")))
		validArgs = append(validArgs, g.Noun)
	}

	cmd := newGetCommand("get [bullet]", glyph.Any)
	cmd.Short = "get [bullet] --day today"
	cmd.Long = long.String()
	cmd.Example = `
timeblock get
timeblock get tasks --day tomorrow
timeblock get events --all
`
	cmd.ValidArgs = validArgs

	for _, b := range []glyph.Bullet{glyph.Task, glyph.Event} {
		g := b.Glyph()
		sub := newGetCommand(g.Noun, b)
		sub.Short = g.Noun
		sub.Aliases = g.Aliases
		sub.Long = fmt.Sprintf("%s (%s), %s\nAliases: %s", g.Symbol, g.Noun, g.Meaning, g.Aliases)
		cmd.AddCommand(sub)
	}

	topLevel.AddCommand(cmd)
}

func newGetCommand(use string, bullet glyph.Bullet) *cobra.Command {
	io := &options.IDOptions{}
	do := &options.DayOptions{}
	gao := &getOptions{}

	cmd := &cobra.Command{
		Use: use,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			b := bullet
			if len(args) > 0 {
				var err error
				if b, err = glyph.BulletForAlias(args[0]); err != nil {
					return output.HandleError(err)
				}
			}
			cfg, _, err := setup()
			if err != nil {
				return output.HandleError(err)
			}
			p, err := loadStore(cfg)
			if err != nil {
				return output.HandleError(err)
			}
			day, err := do.GetDay(time.Now())
			if err != nil {
				return output.HandleError(err)
			}

			s := get.Get{
				ShowID:      io.ShowID,
				Bullet:      b,
				Day:         entry.DayKey(day),
				Persistence: p,
			}
			if gao.All {
				s.Day = ""
			}
			err = s.Do(context.Background())
			return output.HandleError(err)
		},
	}

	options.AddDayArgs(cmd, do)
	_ = cmd.RegisterFlagCompletionFunc("day", dayCompletions)
	cmd.Flags().BoolVar(&gao.All, "all", false, "Get every stored day.")
	options.AddShowIDArgs(cmd, io)
	return cmd
}
