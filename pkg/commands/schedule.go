package commands

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"

	"tableflip.dev/timeblock/pkg/commands/options"
	"tableflip.dev/timeblock/pkg/plan"
	"tableflip.dev/timeblock/pkg/runner/schedule"
)

func addSchedule(topLevel *cobra.Command) {
	so := &options.ScheduleOptions{}
	do := &options.DayOptions{}

	cmd := &cobra.Command{
		Use:     "schedule",
		Aliases: []string{"plan", "blocks"},
		Short:   "Place the day's tasks into open time blocks",
		Example: `
timeblock schedule
timeblock schedule --day tomorrow --mode LARGEST_FIRST
timeblock schedule --from day.yaml --now 13:00 --yaml
timeblock schedule --watch
`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			cfg, logger, err := setup()
			if err != nil {
				return output.HandleError(err)
			}
			if err := so.Apply(&cfg); err != nil {
				return output.HandleError(err)
			}
			format, err := output.Format()
			if err != nil {
				return output.HandleError(err)
			}
			day, err := do.GetDay(time.Now())
			if err != nil {
				return output.HandleError(err)
			}

			s := schedule.Schedule{
				Config:   cfg,
				Day:      day,
				Watch:    so.Watch,
				Timeline: so.Timeline,
				Format:   schedule.Format(format),
				Logger:   logger,
			}
			if so.From != "" {
				if so.Watch {
					return output.HandleError(errors.New("--watch follows the store and can not be combined with --from"))
				}
				p, err := plan.Load(so.From)
				if err != nil {
					return output.HandleError(err)
				}
				if p.Day != "" && !cmd.Flags().Changed("day") {
					s.Day = p.Date(time.Local, time.Now())
				}
				s.Plan = &p
			}
			if s.Plan == nil {
				if s.Persistence, err = loadStore(cfg); err != nil {
					return output.HandleError(err)
				}
			}

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
			defer stop()
			err = s.Do(ctx)
			return output.HandleError(err)
		},
	}

	options.AddScheduleArgs(cmd, so)
	options.AddDayArgs(cmd, do)
	options.AddStructuredOutputArgs(cmd, output)
	_ = cmd.RegisterFlagCompletionFunc("day", dayCompletions)
	_ = cmd.RegisterFlagCompletionFunc("mode", modeCompletions)

	topLevel.AddCommand(cmd)
}
