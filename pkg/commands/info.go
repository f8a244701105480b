package commands

import (
	"context"

	"github.com/spf13/cobra"

	"tableflip.dev/timeblock/pkg/runner/info"
)

func addInfo(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:     "info",
		Aliases: []string{"config"},
		Short:   "Show the effective configuration and where days are stored.",
		Example: `
timeblock info
`,
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
			s := info.Info{
				Config:      cfg,
				Persistence: p,
			}
			err = s.Do(context.Background())
			return output.HandleError(err)
		},
	}

	topLevel.AddCommand(cmd)
}
