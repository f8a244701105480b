// Package config loads the scheduler settings from .timeblock.yaml, the
// environment and built-in defaults.
package config

import (
	"errors"
	"fmt"
	"os"

	homedir "github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"

	"tableflip.dev/timeblock/pkg/timeblock"
	"tableflip.dev/timeblock/pkg/timeutil"
)

const (
	fileName  = ".timeblock" // .yaml is implicit
	envPrefix = "TIMEBLOCK"
	// PathEnv names a directory searched first for the config file.
	PathEnv = "TIMEBLOCK_CONFIG_PATH"
)

// Config is the scheduling configuration plus the settings of the tool
// itself.
type Config struct {
	timeblock.Config `mapstructure:",squash" yaml:",inline"`

	// Path is the directory of the day store.
	Path string `mapstructure:"path" yaml:"path"`
	// Environment is "development" for debug logging.
	Environment string `mapstructure:"environment" yaml:"environment"`
}

// BasePath implements store.Config.
func (c Config) BasePath() string {
	return c.Path
}

// Defaults returns the configuration used when no file sets a value.
func Defaults() Config {
	return Config{
		Config: timeblock.Config{
			TodoChar:                       "*",
			TimeBlockTag:                   "#🕑",
			TimeBlockHeading:               "Time Blocks",
			WorkDayStart:                   "00:00",
			WorkDayEnd:                     "23:59",
			DurationMarker:                 "'",
			IntervalMins:                   timeblock.DefaultIntervalMins,
			RemoveDuration:                 true,
			DefaultDuration:                20,
			Mode:                           timeblock.ModePriorityFirst,
			AllowEventSplits:               false,
			TimeblockTextMustContainString: "",
			OrphanTagggedTasks:             timeblock.OrphansOutputForInfo,
		},
		Path:        "~/.timeblock.db",
		Environment: "production",
	}
}

func setDefaults(v *viper.Viper) {
	d := Defaults()
	v.SetDefault("todoChar", d.TodoChar)
	v.SetDefault("timeBlockTag", d.TimeBlockTag)
	v.SetDefault("timeBlockHeading", d.TimeBlockHeading)
	v.SetDefault("workDayStart", d.WorkDayStart)
	v.SetDefault("workDayEnd", d.WorkDayEnd)
	v.SetDefault("durationMarker", d.DurationMarker)
	v.SetDefault("intervalMins", d.IntervalMins)
	v.SetDefault("removeDuration", d.RemoveDuration)
	v.SetDefault("defaultDuration", d.DefaultDuration)
	v.SetDefault("mode", string(d.Mode))
	v.SetDefault("allowEventSplits", d.AllowEventSplits)
	v.SetDefault("nowStrOverride", "")
	v.SetDefault("timeblockTextMustContainString", d.TimeblockTextMustContainString)
	v.SetDefault("orphanTagggedTasks", string(d.OrphanTagggedTasks))
	v.SetDefault("path", d.Path)
	v.SetDefault("environment", d.Environment)
}

// Load reads the configuration. A non-empty file is read directly;
// otherwise .timeblock.yaml is looked up in $TIMEBLOCK_CONFIG_PATH, the
// working directory and the home directory, and a missing file is not an
// error. Environment variables prefixed TIMEBLOCK_ override file values.
func Load(file string) (Config, error) {
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()

	if file != "" {
		v.SetConfigFile(file)
	} else {
		v.SetConfigName(fileName)
		if override := os.Getenv(PathEnv); override != "" {
			v.AddConfigPath(override)
		}
		v.AddConfigPath("./")
		if home, err := homedir.Dir(); err == nil {
			v.AddConfigPath(home)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if file != "" || !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("config: read: %w", err)
		}
	}

	cfg := Config{}
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("config: decode: %w", err)
	}
	if p, err := homedir.Expand(cfg.Path); err == nil {
		cfg.Path = p
	}
	return cfg, nil
}

// Validate reports every problem with cfg, joined into one error.
func Validate(cfg Config) error {
	var errs []error
	required := func(name, value string) {
		if value == "" {
			errs = append(errs, fmt.Errorf("config required field: %s is missing", name))
		}
	}
	clock := func(name, value string) {
		if value == "" {
			return
		}
		if _, err := timeutil.ParseClock(value); err != nil {
			errs = append(errs, fmt.Errorf("config field %s: %w", name, err))
		}
	}

	required("todoChar", cfg.TodoChar)
	required("workDayStart", cfg.WorkDayStart)
	required("workDayEnd", cfg.WorkDayEnd)
	required("durationMarker", cfg.DurationMarker)
	required("mode", string(cfg.Mode))
	clock("workDayStart", cfg.WorkDayStart)
	clock("workDayEnd", cfg.WorkDayEnd)
	clock("nowStrOverride", cfg.NowStrOverride)

	if cfg.IntervalMins <= 0 {
		errs = append(errs, fmt.Errorf("config field intervalMins: must be positive, got %d", cfg.IntervalMins))
	}
	if cfg.DefaultDuration < 0 {
		errs = append(errs, fmt.Errorf("config field defaultDuration: must not be negative, got %d", cfg.DefaultDuration))
	}
	if cfg.Mode != "" && !cfg.Mode.Valid() {
		errs = append(errs, fmt.Errorf("config field mode: unknown mode %q, want one of %v", cfg.Mode, timeblock.Modes()))
	}
	if cfg.OrphanTagggedTasks != "" && !cfg.OrphanTagggedTasks.Valid() {
		errs = append(errs, fmt.Errorf("config field orphanTagggedTasks: unknown policy %q, want one of %v",
			cfg.OrphanTagggedTasks, timeblock.OrphanPolicies()))
	}
	for label, window := range cfg.Timeframes {
		if len(window) != 2 {
			errs = append(errs, fmt.Errorf("config field timeframes.%s: want [start, end], got %v", label, window))
			continue
		}
		start, err1 := timeutil.ParseClock(window[0])
		end, err2 := timeutil.ParseClock(window[1])
		if err1 != nil || err2 != nil || start >= end {
			errs = append(errs, fmt.Errorf("config field timeframes.%s: invalid window %v", label, window))
		}
	}
	return errors.Join(errs...)
}
