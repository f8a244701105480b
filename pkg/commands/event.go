package commands

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"tableflip.dev/timeblock/pkg/commands/options"
	"tableflip.dev/timeblock/pkg/entry"
	"tableflip.dev/timeblock/pkg/runner/add"
)

func addEvent(topLevel *cobra.Command) {
	eo := &options.EventOptions{}
	do := &options.DayOptions{}

	cmd := &cobra.Command{
		Use:   "event",
		Short: "Add an event",
		Example: `
timeblock add event standup --start 09:00 --end 09:15
timeblock add event "Deep work #tb" --start 13:00 --end 15:00 --day tomorrow
`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) < 1 {
				return errors.New("requires an event title")
			}
			eo.Message = strings.Join(args, " ")

			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
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

			s := add.Add{
				Kind:        entry.KindEvent,
				Day:         day,
				Content:     eo.Message,
				Start:       eo.Start,
				End:         eo.End,
				Free:        eo.Free,
				Persistence: p,
			}
			err = s.Do(context.Background())
			return output.HandleError(err)
		},
	}

	options.AddEventArgs(cmd, eo)
	options.AddDayArgs(cmd, do)
	_ = cmd.RegisterFlagCompletionFunc("day", dayCompletions)

	options.AddOutputArg(cmd, output)
	topLevel.AddCommand(cmd)
}
