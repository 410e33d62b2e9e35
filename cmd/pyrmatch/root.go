package main

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/soocke/pyrmatch"
	"github.com/soocke/pyrmatch/config"
)

// runtimeState is shared by every subcommand, built once in the root
// command's PersistentPreRunE so --config/--debug are resolved exactly
// once per invocation.
type runtimeState struct {
	cfg    config.Config
	logger *slog.Logger
}

func newRootCmd() *cobra.Command {
	var configPath string
	var debug bool
	state := &runtimeState{}

	root := &cobra.Command{
		Use:           "pyrmatch",
		Short:         "Coarse-to-fine grayscale template matching",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			path := configPath
			if path == "" {
				p, err := config.DefaultPath()
				if err == nil {
					path = p
				}
			}
			cfg, err := config.Load(path)
			if err != nil {
				return err
			}
			if debug {
				cfg.Debug = true
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			level := slog.LevelInfo
			if cfg.Debug {
				level = slog.LevelDebug
			}
			state.cfg = cfg
			state.logger = pyrmatch.NewLogger(level)
			return nil
		},
	}

	root.PersistentFlags().StringVar(&configPath, "config", "", "path to config.yaml (default: XDG config dir)")
	root.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging and instrumentation")

	root.AddCommand(newMatchCmd(state))
	root.AddCommand(newWatchCmd(state))
	root.AddCommand(newConfigCmd(state))
	return root
}
