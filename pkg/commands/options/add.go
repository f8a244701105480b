package options

import (
	"github.com/spf13/cobra"
)

// TaskOptions
type TaskOptions struct {
	Message  string
	Filename string
	Line     int
}

func AddTaskArgs(cmd *cobra.Command, o *TaskOptions) {
	cmd.Flags().StringVar(&o.Filename, "file", "",
		"Note the task came from.")
	cmd.Flags().IntVar(&o.Line, "line", 0,
		"Line of the task in its note, used by manual ordering.")
}

// EventOptions
type EventOptions struct {
	Message string
	Start   string
	End     string
	Free    bool
}

func AddEventArgs(cmd *cobra.Command, o *EventOptions) {
	cmd.Flags().StringVar(&o.Start, "start", "",
		`Start time of the event, example: --start="09:30".`)
	cmd.Flags().StringVar(&o.End, "end", "",
		`End time of the event, example: --end="10:00".`)
	cmd.Flags().BoolVar(&o.Free, "free", false,
		"The event does not block time.")
	_ = cmd.MarkFlagRequired("start")
	_ = cmd.MarkFlagRequired("end")
}
