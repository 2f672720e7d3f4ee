package cmd

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/k0nxt3d/pycleaner/internal/scanner"
)

// NewScanCommand creates the scan subcommand.
func NewScanCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scan <path>",
		Short: "List venv directories beneath a path",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			configPath, _ := cmd.Flags().GetString("config")
			limit, _ := cmd.Flags().GetInt("limit")
			return runScan(cmd, args[0], configPath, limit)
		},
	}
	cmd.Flags().Int("limit", 0, "cap the number of results (default: from config)")
	return cmd
}

func runScan(cmd *cobra.Command, path, configPath string, limit int) error {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if limit <= 0 {
		limit = cfg.Scanner.MaxResults
	}

	setupColor()

	svc := scanner.NewService(cliLogger(), limit)
	result := svc.Scan(cmd.Context(), path)
	if result.Error != "" {
		return fmt.Errorf("%s", result.Error)
	}

	out := cmd.OutOrStdout()
	if len(result.Found) == 0 {
		fmt.Fprintln(out, "No venv directories found.")
		return nil
	}

	green := color.New(color.FgGreen)
	for _, p := range result.Found {
		green.Fprintln(out, p)
	}
	fmt.Fprintf(out, "\n%d venv director%s found.\n", len(result.Found), plural(len(result.Found), "y", "ies"))

	if result.Truncated {
		color.New(color.FgYellow).Fprintf(out,
			"Result limit reached (%d); narrow the scan path to see everything.\n", limit)
	}
	return nil
}

// setupColor disables colored output when stdout is not a terminal.
func setupColor() {
	if !isatty.IsTerminal(os.Stdout.Fd()) && !isatty.IsCygwinTerminal(os.Stdout.Fd()) {
		color.NoColor = true
	}
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
