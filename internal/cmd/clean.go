package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/k0nxt3d/pycleaner/internal/cleaner"
)

// NewCleanCommand creates the clean subcommand.
func NewCleanCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "clean <path>...",
		Short: "Delete the given venv directories",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			yes, _ := cmd.Flags().GetBool("yes")
			return runClean(cmd, args, yes)
		},
	}
	cmd.Flags().BoolP("yes", "y", false, "delete without asking for confirmation")
	return cmd
}

func runClean(cmd *cobra.Command, paths []string, yes bool) error {
	setupColor()
	out := cmd.OutOrStdout()

	if !yes {
		if !isatty.IsTerminal(os.Stdin.Fd()) {
			return fmt.Errorf("refusing to delete without --yes when not running interactively")
		}
		fmt.Fprintf(out, "About to delete %d director%s:\n", len(paths), plural(len(paths), "y", "ies"))
		for _, p := range paths {
			fmt.Fprintf(out, "  %s\n", p)
		}
		fmt.Fprint(out, "Proceed? [y/N] ")
		answer, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
		if err != nil {
			return fmt.Errorf("reading confirmation: %w", err)
		}
		answer = strings.ToLower(strings.TrimSpace(answer))
		if answer != "y" && answer != "yes" {
			fmt.Fprintln(out, "Aborted.")
			return nil
		}
	}

	svc := cleaner.NewService(cliLogger())
	outcome := svc.Clean(paths)

	red := color.New(color.FgRed)
	for _, f := range outcome.Failures {
		red.Fprintf(out, "%s: %s\n", f.Path, f.Reason)
	}
	color.New(color.FgGreen).Fprintf(out, "Deleted %d venv folder(s).\n", outcome.DeletedCount)

	if len(outcome.Failures) > 0 {
		return fmt.Errorf("%d of %d paths were not deleted", len(outcome.Failures), len(paths))
	}
	return nil
}
