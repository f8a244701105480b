package commands

import (
	"context"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"tableflip.dev/timeblock/pkg/config"
	"tableflip.dev/timeblock/pkg/store"
	"tableflip.dev/timeblock/pkg/timeblock"
)

func addCompletions(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "completion",
		Short: "Generates bash completion scripts",
		Long: `To load completion run

. <(timeblock completion)

To configure your bash shell to load completions for each session add to your bashrc

# ~/.bashrc or ~/.profile
. <(timeblock completion)
`,
		Run: func(cmd *cobra.Command, args []string) {
			_ = topLevel.GenBashCompletion(os.Stdout)
		},
	}

	topLevel.AddCommand(cmd)
}

func dayCompletions(_ *cobra.Command, _ []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	days := []string{"today", "tomorrow", "yesterday"}
	if cfg, err := config.Load(co.File); err == nil {
		if p, err := store.Load(cfg); err == nil {
			days = append(days, p.Days(context.Background())...)
		}
	}
	return filterPrefix(days, toComplete), cobra.ShellCompDirectiveNoFileComp
}

func modeCompletions(_ *cobra.Command, _ []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	modes := make([]string, 0, len(timeblock.Modes()))
	for _, m := range timeblock.Modes() {
		modes = append(modes, string(m))
	}
	return filterPrefix(modes, toComplete), cobra.ShellCompDirectiveNoFileComp
}

func filterPrefix(in []string, prefix string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if strings.HasPrefix(s, prefix) {
			out = append(out, s)
		}
	}
	return out
}
