package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/flightsim/internal/config"
	"github.com/vovakirdan/flightsim/internal/core"
	"github.com/vovakirdan/flightsim/internal/host"
	"github.com/vovakirdan/flightsim/internal/journal"
	"github.com/vovakirdan/flightsim/internal/platform/tui"
	"github.com/vovakirdan/flightsim/internal/scenes"
)

func runSandbox(_ *cobra.Command, _ []string) error {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return err
	}

	logger, closeLog, err := openLogger(flagLog)
	if err != nil {
		return err
	}
	defer closeLog()

	// Seed a missing module so a first run has something to fly
	if _, statErr := os.Stat(flagScript); os.IsNotExist(statErr) {
		if err := scenes.Install(scenes.Default, flagScript); err != nil {
			return fmt.Errorf("cannot create %s: %w", flagScript, err)
		}
		logger.Info("seeded module", "path", flagScript, "scene", scenes.Default)
	}

	// A configured size is kept; otherwise follow the terminal, leaving a
	// row for the status line
	vp := core.DefaultViewport()
	fixed := cfg.Window.Width > 0 && cfg.Window.Height > 0
	if fixed {
		vp = core.Viewport{Width: cfg.Window.Width, Height: cfg.Window.Height}
	} else if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		vp = core.Viewport{Width: w, Height: max(h-1, 1)}
	}

	// Open the journal; the sandbox works without it
	var recorder host.Recorder
	store, err := journal.Open(flagJournal)
	if err != nil {
		logger.Warn("could not open journal", "error", err)
	} else {
		defer store.Close()
		recorder = store.Session(journal.LocalSession)
	}

	sb := tui.NewSandbox(tui.SandboxConfig{
		Script:   flagScript,
		Config:   cfg,
		Viewport: vp,
		Logger:   logger,
		Recorder: recorder,
	})

	if err := tui.Run(sb, cfg, fixed); err != nil {
		return fmt.Errorf("sandbox: %w", err)
	}
	return nil
}
