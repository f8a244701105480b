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

func addTask(topLevel *cobra.Command) {
	to := &options.TaskOptions{}
	do := &options.DayOptions{}

	cmd := &cobra.Command{
		Use:   "task",
		Short: "Add a task",
		Example: `
timeblock add task !! write the report \'1h30m
timeblock add task call the bank --day tomorrow
`,
		Args: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			if len(args) < 1 {
				return errors.New("requires a task")
			}
			to.Message = strings.Join(args, " ")

			return nil
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
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
				Kind:        entry.KindTask,
				Day:         day,
				Content:     to.Message,
				Filename:    to.Filename,
				LineIndex:   to.Line,
				Persistence: p,
			}
			err = s.Do(context.Background())
			return output.HandleError(err)
		},
	}

	options.AddTaskArgs(cmd, to)
	options.AddDayArgs(cmd, do)
	_ = cmd.RegisterFlagCompletionFunc("day", dayCompletions)

	options.AddOutputArg(cmd, output)
	topLevel.AddCommand(cmd)
}
