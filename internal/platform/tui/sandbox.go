package tui

import (
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/flightsim/internal/config"
	"github.com/vovakirdan/flightsim/internal/core"
	"github.com/vovakirdan/flightsim/internal/host"
	"github.com/vovakirdan/flightsim/internal/hotreload"
	"github.com/vovakirdan/flightsim/internal/script"
)

// SandboxConfig describes one sandbox session.
type SandboxConfig struct {
	Script   string        // Path of the reloadable logic module
	Config   config.Config // Loaded sandbox configuration
	Viewport core.Viewport // Initial drawable area
	Logger   *log.Logger   // Optional
	Recorder host.Recorder // Optional event journal
}

// Sandbox wires the screen, input, script loader, reload supervisor and
// host loop of one session. All of it is driven from a single goroutine.
type Sandbox struct {
	Screen     *core.Screen
	Input      *core.Input
	Clock      *core.Clock
	Supervisor *hotreload.Supervisor
	Loop       *host.Loop

	module  string
	loadErr error
}

// NewSandbox creates a session and performs the initial module load.
// A failed initial load does not fail the session: the loop shows the
// failure until a reload succeeds. LoadErr reports it.
func NewSandbox(cfg SandboxConfig) *Sandbox {
	logger := cfg.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	vp := cfg.Viewport
	if vp.Width <= 0 || vp.Height <= 0 {
		vp = core.DefaultViewport()
	}

	dir, module, ext := SplitScript(cfg.Script)
	screen := core.NewScreen(vp.Width, vp.Height)
	env := &script.Env{
		Renderer: screen,
		Input:    core.NewInput(cfg.Config.Input.HoldWindow),
		Clock:    &core.Clock{},
		Logger:   logger.WithPrefix("lua"),
	}

	sup := hotreload.New(script.NewLoader(env), hotreload.Options{
		Interval: cfg.Config.Reload.Interval,
		Dir:      dir,
		Ext:      ext,
		Logger:   logger,
	})
	loadErr := sup.Register(module)
	if loadErr != nil {
		logger.Error("initial load failed", "module", module, "error", loadErr)
	}

	loop := host.New(screen, sup, host.Options{
		Module:         module,
		Viewport:       vp,
		AutoReload:     cfg.Config.Reload.AutoReload,
		RetryInterval:  cfg.Config.Host.RetryInterval,
		MinFrameTime:   cfg.Config.Host.MinFrameTime,
		NoticeDuration: cfg.Config.Host.NoticeDuration,
		Logger:         logger,
		Recorder:       cfg.Recorder,
	})

	return &Sandbox{
		Screen:     screen,
		Input:      env.Input,
		Clock:      env.Clock,
		Supervisor: sup,
		Loop:       loop,
		module:     module,
		loadErr:    loadErr,
	}
}

// Module returns the name of the stepped module.
func (s *Sandbox) Module() string {
	return s.module
}

// LoadErr returns the error of the initial load, if any.
func (s *Sandbox) LoadErr() error {
	return s.loadErr
}

// Frame advances the session by dt seconds at wall time now.
func (s *Sandbox) Frame(now time.Time, dt float64, in host.Input) host.Report {
	s.Input.Sync(now)
	s.Clock.Advance(dt)
	rep := s.Loop.Frame(dt, in)
	s.Input.EndFrame()
	return rep
}

// Resize changes the drawable area.
func (s *Sandbox) Resize(vp core.Viewport) {
	s.Screen.Resize(vp.Width, vp.Height)
	s.Loop.Resize(vp)
}

// SplitScript splits a script path into the supervisor's directory, module
// name and extension. Paths without an extension get hotreload.DefaultExt.
func SplitScript(path string) (dir, module, ext string) {
	dir = filepath.Dir(path)
	base := filepath.Base(path)
	ext = filepath.Ext(base)
	if ext == "" {
		ext = hotreload.DefaultExt
	}
	module = strings.TrimSuffix(base, filepath.Ext(base))
	return dir, module, ext
}
