package options

import (
	"fmt"

	"github.com/spf13/cobra"

	"tableflip.dev/timeblock/pkg/config"
	"tableflip.dev/timeblock/pkg/timeblock"
	"tableflip.dev/timeblock/pkg/timeutil"
)

// ScheduleOptions
type ScheduleOptions struct {
	From     string
	Mode     string
	Now      string
	Split    bool
	Watch    bool
	Timeline bool
}

func AddScheduleArgs(cmd *cobra.Command, o *ScheduleOptions) {
	cmd.Flags().StringVar(&o.From, "from", "",
		"Read tasks and events from a day plan YAML file instead of the store.")
	cmd.Flags().StringVar(&o.Mode, "mode", "",
		fmt.Sprintf("Override the scheduling mode, one of %v.", timeblock.Modes()))
	cmd.Flags().StringVar(&o.Now, "now", "",
		`Schedule as if it were this time, example: --now="13:00".`)
	cmd.Flags().BoolVar(&o.Split, "split", false,
		"Allow tasks to be split across blocks.")
	cmd.Flags().BoolVarP(&o.Watch, "watch", "w", false,
		"Reschedule whenever the store changes.")
	cmd.Flags().BoolVar(&o.Timeline, "timeline", false,
		"Also print the day as a timeline.")
}

// Apply overrides cfg with any flags that were set.
func (o *ScheduleOptions) Apply(cfg *config.Config) error {
	if o.Mode != "" {
		m := timeblock.Mode(o.Mode)
		if !m.Valid() {
			return fmt.Errorf("unknown mode %q, want one of %v", o.Mode, timeblock.Modes())
		}
		cfg.Mode = m
	}
	if o.Now != "" {
		if _, err := timeutil.ParseClock(o.Now); err != nil {
			return fmt.Errorf("--now: %w", err)
		}
		cfg.NowStrOverride = o.Now
	}
	if o.Split {
		cfg.AllowEventSplits = true
	}
	return nil
}
