package cmd

import "github.com/spf13/cobra"

func Execute() error {
	return newRootCmd().Execute()
}

type rootOptions struct {
	configPath string
}

// appLoader defers wiring until flags are parsed, so --config applies.
type appLoader func(cmd *cobra.Command) (*app, error)

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:           "growthbot",
		Short:         "growthbot: scheduled engagement with a status and reconnect surface",
		Long:          "growthbot runs randomized engagement sessions against the platform gateway within daily budgets, keeps counters on disk, and exposes /health, /status, /reconnect and /metrics for operators.",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	rootCmd.PersistentFlags().StringVar(&opts.configPath, "config", "", "Config file (default $HOME/.growthbot/config.toml)")

	load := func(cmd *cobra.Command) (*app, error) {
		return wireApp(opts.configPath, cmd.ErrOrStderr())
	}

	rootCmd.AddCommand(
		newVersionCmd(),
		newRunCmd(load),
		newStatusCmd(load),
		newReconnectCmd(load),
		newConfigCmd(load, opts),
	)

	return rootCmd
}
