package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/k0nxt3d/pycleaner/internal/version"
)

// NewVersionCommand creates the version subcommand.
func NewVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "pycleaner %s (%s)\n", version.Version, version.Commit)
		},
	}
}
