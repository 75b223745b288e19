package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/flightsim/internal/script"
)

var flagFrames int

var checkCmd = &cobra.Command{
	Use:   "check [script]",
	Short: "Load a logic module and step it headless",
	Long: `Load the logic module, verify it defines update_and_render, and run
it for a few frames against an off-screen renderer. Reports the same
diagnostic the sandbox would show.

Examples:
  flightsim check
  flightsim check ./tilemap.lua --frames 120`,
	Args: cobra.MaximumNArgs(1),
	RunE: runCheck,
}

func init() {
	checkCmd.Flags().IntVar(&flagFrames, "frames", 60, "Number of frames to step")
}

func runCheck(cmd *cobra.Command, args []string) error {
	path := flagScript
	if len(args) == 1 {
		path = args[0]
	}

	if err := script.Check(path, flagFrames); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%s: ok (%d frames)\n", path, flagFrames)
	return nil
}
