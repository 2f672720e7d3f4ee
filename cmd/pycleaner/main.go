package main

import (
	"fmt"
	"os"

	"github.com/k0nxt3d/pycleaner/internal/cmd"
)

func main() {
	if err := cmd.NewRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
