// flightsim is a hot-reload sandbox: it steps a Lua logic module once per
// frame in the terminal and swaps in a new version whenever the file changes,
// keeping the module's state across reloads.
//
// Usage:
//
//	flightsim                    - Run the sandbox on --script
//	flightsim check [script]     - Load a module and step it headless
//	flightsim scenes             - List built-in starter scenes
//	flightsim init <scene> [path] - Write a starter scene to disk
//	flightsim serve              - Start SSH server for remote sessions
//	flightsim history            - Show recent reloads and failures
//
// Global flags:
//
//	--script <path>   - Logic module (default: g_update_and_render.lua)
//	--config <path>   - Config YAML (default: search order)
//	--journal <path>  - Event journal (default: ~/.flightsim/journal.db)
//	--log <path>      - Log file (default: ~/.flightsim/flightsim.log)
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

var (
	// Global flags
	flagScript  string
	flagConfig  string
	flagJournal string
	flagLog     string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "flightsim",
	Short: "Horror Flightsim - hot-reload sandbox in your terminal",
	Long: `Horror Flightsim steps a Lua logic module once per frame and reloads it
whenever the file changes on disk. State kept in the arena survives reloads;
a failing module is shown as a red diagnostic and retried.

Host keys:
  F4     - Check for changes and reload now
  F5     - Reset state and reload
  ?      - Toggle help
  Ctrl+C - Quit

Examples:
  flightsim
  flightsim --script ./scenes/flight.lua
  flightsim init tilemap ./tilemap.lua
  flightsim check ./tilemap.lua
  flightsim serve --ssh :2222`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runSandbox,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagScript, "script", "g_update_and_render.lua", "Path to the logic module")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom config YAML")
	rootCmd.PersistentFlags().StringVar(&flagJournal, "journal", "~/.flightsim/journal.db", "Path to event journal database")
	rootCmd.PersistentFlags().StringVar(&flagLog, "log", "~/.flightsim/flightsim.log", "Path to log file")

	// Add subcommands
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(scenesCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(historyCmd)
}

// expandHome replaces a leading ~ with the user's home directory.
func expandHome(path string) string {
	if path == "" || path[0] != '~' {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[1:])
}

// openLogger creates the file logger. The terminal belongs to the sandbox,
// so logs never go to stdout or stderr while it runs.
func openLogger(path string) (*log.Logger, func(), error) {
	path = expandHome(path)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, nil, fmt.Errorf("cannot create log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("cannot open log file: %w", err)
	}
	logger := log.NewWithOptions(f, log.Options{
		ReportTimestamp: true,
		Prefix:          "flightsim",
	})
	return logger, func() { f.Close() }, nil
}
