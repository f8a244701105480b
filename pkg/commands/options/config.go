package options

import (
	"github.com/spf13/cobra"
)

// ConfigOptions
type ConfigOptions struct {
	File string
}

func AddConfigArgs(cmd *cobra.Command, o *ConfigOptions) {
	cmd.PersistentFlags().StringVar(&o.File, "config", "",
		"Config file, default is .timeblock.yaml in $TIMEBLOCK_CONFIG_PATH, the working directory or home.")
}
