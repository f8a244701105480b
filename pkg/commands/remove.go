package commands

import (
	"context"
	"errors"
	"strings"

	"github.com/spf13/cobra"

	"tableflip.dev/timeblock/pkg/commands/options"
	"tableflip.dev/timeblock/pkg/runner/remove"
)

func addRemove(topLevel *cobra.Command) {
	io := &options.IDOptions{}

	cmd := &cobra.Command{
		Use:     "remove",
		Aliases: []string{"rm", "delete"},
		Short:   "Remove a stored task or event",
		Example: `
timeblock remove <entry id>
`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) < 1 {
				return errors.New("requires a entry id")
			}
			io.ID = strings.Join(args, " ")

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
			s := remove.Remove{
				ID:          io.ID,
				Persistence: p,
			}
			err = s.Do(context.Background())
			return output.HandleError(err)
		},
	}

	options.AddOutputArg(cmd, output)
	topLevel.AddCommand(cmd)
}
