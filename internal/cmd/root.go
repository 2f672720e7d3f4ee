// Package cmd wires up the pycleaner command line interface.
package cmd

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/k0nxt3d/pycleaner/internal/config"
	"github.com/k0nxt3d/pycleaner/internal/version"
)

// NewRootCommand creates and returns the root cobra command for pycleaner.
func NewRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pycleaner",
		Short: "Find and delete Python venv directories",
		Long: `PyCleaner locates directories named exactly "venv" beneath a base path
and deletes the ones you select, with guardrails against symlinks and
misnamed targets.

Running pycleaner without a subcommand starts the local web interface.`,
		Version: version.Version,
		// Silence usage on errors to avoid duplicate help text
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			configPath, _ := cmd.Flags().GetString("config")
			return runServe(configPath)
		},
	}

	cmd.PersistentFlags().String("config", "", "path to config file (default: $PC_CONFIG_PATH or pycleaner.yaml)")

	cmd.AddCommand(NewServeCommand())
	cmd.AddCommand(NewScanCommand())
	cmd.AddCommand(NewCleanCommand())
	cmd.AddCommand(NewVersionCommand())

	return cmd
}

// loadConfig resolves the config file path (flag > env > default) and loads it.
func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		path = os.Getenv("PC_CONFIG_PATH")
	}
	if path == "" {
		path = "pycleaner.yaml"
	}
	return config.Load(path)
}

// cliLogger returns a quiet stderr logger for the one-shot subcommands, which
// report through their own output rather than structured logs.
func cliLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
}
