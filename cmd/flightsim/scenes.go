package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/flightsim/internal/scenes"
)

var scenesCmd = &cobra.Command{
	Use:   "scenes",
	Short: "List built-in starter scenes",
	Long:  `Shows the starter logic modules that 'flightsim init' can write.`,
	Run:   runScenes,
}

func runScenes(cmd *cobra.Command, _ []string) {
	list := scenes.List()
	out := cmd.OutOrStdout()

	fmt.Fprintln(out, "Available scenes:")
	fmt.Fprintln(out)

	// Calculate column widths
	maxIDLen := 2 // "ID" header
	for _, s := range list {
		maxIDLen = max(maxIDLen, len(s.ID))
	}

	fmt.Fprintf(out, "  %-*s  %s\n", maxIDLen, "ID", "Title")
	fmt.Fprintf(out, "  %-*s  %s\n", maxIDLen, "--", "-----")
	for _, s := range list {
		fmt.Fprintf(out, "  %-*s  %s\n", maxIDLen, s.ID, s.Title)
	}

	fmt.Fprintln(out)
	fmt.Fprintln(out, "Run 'flightsim init <id> [path]' to start from a scene.")
}
