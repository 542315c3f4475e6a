package main

import (
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/fbkclanna/wg/internal/config"
)

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "wg",
		Short:         "Generate Cargo workspaces with library and binary members",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().String("config", "", "Config file (default $XDG_CONFIG_HOME/wg/config.toml)")
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Log each step to stderr")

	cmd.AddCommand(
		newNewCmd(),
		newAddCmd(),
		newDoctorCmd(),
	)

	return cmd
}

// newLogger returns a stderr logger that only shows warnings unless verbose
// is set.
func newLogger(w io.Writer, verbose bool) *log.Logger {
	logger := log.NewWithOptions(w, log.Options{
		Prefix: "wg",
		Level:  log.WarnLevel,
	})
	if verbose {
		logger.SetLevel(log.DebugLevel)
	}
	return logger
}

// loadSettings reads the config selected by --config and builds the logger
// selected by --verbose.
func loadSettings(cmd *cobra.Command) (*config.Config, *log.Logger, error) {
	path, _ := cmd.Flags().GetString("config")
	verbose, _ := cmd.Flags().GetBool("verbose")

	logger := newLogger(cmd.ErrOrStderr(), verbose)
	cfg, err := config.Load(path)
	if err != nil {
		return nil, nil, err
	}
	logger.Debug("loaded config", "cargo", cfg.Cargo, "edition", cfg.Edition)
	return cfg, logger, nil
}
