package commands

import (
	"context"
	"errors"
	"time"

	"github.com/spf13/cobra"

	"tableflip.dev/timeblock/pkg/commands/options"
	"tableflip.dev/timeblock/pkg/plan"
	"tableflip.dev/timeblock/pkg/runner/add"
)

func addImport(topLevel *cobra.Command) {
	do := &options.DayOptions{}

	cmd := &cobra.Command{
		Use:   "import <plan.yaml>",
		Short: "Store the tasks and events of a day plan file",
		Example: `
timeblock import day.yaml
timeblock import day.yaml --day tomorrow
`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("requires one plan file")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			cfg, _, err := setup()
			if err != nil {
				return output.HandleError(err)
			}
			p, err := plan.Load(args[0])
			if err != nil {
				return output.HandleError(err)
			}
			day := p.Date(time.Local, time.Now())
			if cmd.Flags().Changed("day") || p.Day == "" {
				if day, err = do.GetDay(time.Now()); err != nil {
					return output.HandleError(err)
				}
			}
			ps, err := loadStore(cfg)
			if err != nil {
				return output.HandleError(err)
			}

			s := add.Import{
				Plan:        p,
				Day:         day,
				Persistence: ps,
			}
			err = s.Do(context.Background())
			return output.HandleError(err)
		},
	}

	options.AddDayArgs(cmd, do)
	options.AddOutputArg(cmd, output)
	topLevel.AddCommand(cmd)
}
