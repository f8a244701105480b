package commands

import (
	"github.com/spf13/cobra"
)

func addAdd(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a task or event",
		Example: `
timeblock add task write the report \'1h
timeblock add event standup --start 09:00 --end 09:15
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	addTask(cmd)
	addEvent(cmd)

	topLevel.AddCommand(cmd)
}
