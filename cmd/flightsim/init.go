package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/flightsim/internal/scenes"
)

var initCmd = &cobra.Command{
	Use:   "init <scene> [path]",
	Short: "Write a starter scene to disk",
	Long: `Write the source of a built-in scene as a logic module. Existing files
are never overwritten. The path defaults to --script.

Examples:
  flightsim init flight
  flightsim init tilemap ./tilemap.lua`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runInit,
}

func runInit(cmd *cobra.Command, args []string) error {
	id := args[0]
	if !scenes.Exists(id) {
		return fmt.Errorf("unknown scene %q (run 'flightsim scenes' to see available scenes)", id)
	}

	path := flagScript
	if len(args) == 2 {
		path = args[1]
	}

	if err := scenes.Install(id, path); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s scene to %s\n", id, path)
	fmt.Fprintf(cmd.OutOrStdout(), "Run 'flightsim --script %s' and edit the file while it runs.\n", path)
	return nil
}
