package commands

import (
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"tableflip.dev/timeblock/pkg/commands/options"
	"tableflip.dev/timeblock/pkg/config"
	"tableflip.dev/timeblock/pkg/logging"
	"tableflip.dev/timeblock/pkg/store"
)

var (
	output = &options.OutputOptions{}
	co     = &options.ConfigOptions{}
)

func New() *cobra.Command {

	cmd := &cobra.Command{
		Use:   "timeblock",
		Short: options.Wrap80("Pack the day's tasks into the time left between calendar events."),
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}
	options.AddConfigArgs(cmd, co)

	AddCommands(cmd)
	return cmd
}

func AddCommands(topLevel *cobra.Command) {
	addSchedule(topLevel)
	addAdd(topLevel)
	addImport(topLevel)
	addGet(topLevel)
	addRemove(topLevel)
	addKey(topLevel)
	addInfo(topLevel)
	addVersion(topLevel)
	addCompletions(topLevel)
}

// setup loads the configuration and logger for a command run. An invalid
// configuration is reported and replaced by the defaults, keeping the store
// path.
func setup() (config.Config, zerolog.Logger, error) {
	cfg, err := config.Load(co.File)
	if err != nil {
		return config.Config{}, zerolog.Nop(), err
	}
	logger := logging.Setup(cfg.Environment)
	if err := config.Validate(cfg); err != nil {
		logger.Warn().Err(err).Msg("invalid configuration, using defaults")
		fallback := config.Defaults()
		fallback.Path = cfg.Path
		fallback.Environment = cfg.Environment
		cfg = fallback
	}
	return cfg, logger, nil
}

func loadStore(cfg config.Config) (store.Persistence, error) {
	return store.Load(cfg)
}
