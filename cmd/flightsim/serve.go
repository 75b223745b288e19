package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/flightsim/internal/config"
	"github.com/vovakirdan/flightsim/internal/platform/tui"
)

var (
	flagSSHAddr     string
	flagHostKey     string
	flagIdleTimeout int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the sandbox SSH server",
	Long: `Start an SSH server that runs the sandbox for every connection.

Each SSH connection gets its own session with its own state, stepping the
same logic module. Editing the module reloads it in every session.
Reloads and failures are journaled per SSH user.

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.flightsim/host_key

Examples:
  flightsim serve                           # Listen on :23234 with auto-generated key
  flightsim serve --ssh :2222               # Listen on port 2222
  flightsim serve --script ./tilemap.lua    # Serve a specific module

Users can connect with:
  ssh localhost -p 23234`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", ":23234", "SSH server address (host:port)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", 30, "Idle timeout in minutes before disconnecting")
}

func runServe(cmd *cobra.Command, _ []string) error {
	sandboxCfg, err := config.Load(flagConfig)
	if err != nil {
		return err
	}

	cfg := tui.SSHServerConfig{
		Address:     flagSSHAddr,
		HostKeyPath: flagHostKey,
		ScriptPath:  flagScript,
		JournalPath: flagJournal,
		IdleTimeout: time.Duration(flagIdleTimeout) * time.Minute,
		Config:      sandboxCfg,
	}

	server, err := tui.NewSSHServer(cfg)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Starting flightsim SSH server on %s\n", server.Addr())
	fmt.Fprintf(out, "Serving %s\n", cfg.ScriptPath)
	fmt.Fprintln(out, "Press Ctrl+C to stop")

	return server.ListenAndServe()
}
