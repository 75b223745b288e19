// Package host drives the per-frame sandbox loop.
//
// Each frame the Loop polls the reload supervisor, handles a manual full
// reset, and then either steps the active logic module inside a failure
// boundary or, while suspended after a failure, shows the diagnostic overlay
// until the retry interval elapses.
package host

import (
	"fmt"
	"io"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/flightsim/internal/arena"
	"github.com/vovakirdan/flightsim/internal/core"
	"github.com/vovakirdan/flightsim/internal/hotreload"
)

// Defaults for Options.
const (
	DefaultRetryInterval  = 2.0   // Seconds suspended before the entry point is retried
	DefaultMinFrameTime   = 0.016 // Floor for the suspended timer per frame
	DefaultNoticeDuration = 2.0   // Seconds a notice stays visible
)

// ReloadedNotice is shown after a successful reload.
const ReloadedNotice = "reloaded module!"

// Reloader is the reload capability the loop polls every frame.
type Reloader interface {
	Poll(dt float64, force, autoReload bool) hotreload.Outcome
	ForceReloadAll() hotreload.Outcome
	Logic(name string) hotreload.Logic
}

var _ Reloader = (*hotreload.Supervisor)(nil)

// Recorder receives reload and failure events. Errors are logged, never
// propagated into the frame.
type Recorder interface {
	RecordReload(module, outcome, message string) error
	RecordFailure(module, kind, line, message string) error
}

// Options configures a Loop.
type Options struct {
	Module         string        // Name of the module whose entry point is stepped
	Viewport       core.Viewport // Initial bootstrap size
	AutoReload     bool          // Whether timed reload checks start armed
	RetryInterval  float64
	MinFrameTime   float64
	NoticeDuration float64
	Logger         *log.Logger // Optional
	Recorder       Recorder    // Optional
}

// SkipState tracks suspension after an entry-point failure.
type SkipState struct {
	Skipping  bool
	Elapsed   float64 // Suspended time since the failure or last retry
	LastError string  // Diagnostic shown while suspended
}

// Input is the per-frame control input the platform derives from keys.
type Input struct {
	ForceReload bool
	Reset       bool
}

// Report describes what happened in one frame.
type Report struct {
	Outcome hotreload.Outcome // Result of the poll in step 1
	Reset   bool              // A full reset ran this frame
	Ran     bool              // The entry point was invoked
	Failure *Failure          // Set when the entry point failed this frame
	Resumed bool              // The retry interval elapsed this frame
}

// Notice is a transient status message.
type Notice struct {
	Text  string
	Alert bool
}

// Loop is the per-frame driver. It owns the arena.
// It is not safe for concurrent use.
type Loop struct {
	renderer core.Renderer
	reloader Reloader
	opts     Options
	logger   *log.Logger

	viewport   core.Viewport
	arena      *arena.Arena
	autoReload bool
	skip       SkipState

	notice     Notice
	noticeLeft float64
}

// New creates a loop that draws diagnostics through r and steps the module
// named in opts through rl.
func New(r core.Renderer, rl Reloader, opts Options) *Loop {
	if opts.RetryInterval <= 0 {
		opts.RetryInterval = DefaultRetryInterval
	}
	if opts.MinFrameTime <= 0 {
		opts.MinFrameTime = DefaultMinFrameTime
	}
	if opts.NoticeDuration <= 0 {
		opts.NoticeDuration = DefaultNoticeDuration
	}
	if opts.Viewport.Width <= 0 || opts.Viewport.Height <= 0 {
		opts.Viewport = core.DefaultViewport()
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	return &Loop{
		renderer:   r,
		reloader:   rl,
		opts:       opts,
		logger:     logger,
		viewport:   opts.Viewport,
		arena:      arena.NewBootstrap(opts.Viewport),
		autoReload: opts.AutoReload,
	}
}

// Arena returns the current state container.
func (l *Loop) Arena() *arena.Arena {
	return l.arena
}

// Skip returns the current suspension state.
func (l *Loop) Skip() SkipState {
	return l.skip
}

// AutoReload reports whether timed reload checks are armed.
func (l *Loop) AutoReload() bool {
	return l.autoReload
}

// Notice returns the active notice, if any.
func (l *Loop) Notice() (Notice, bool) {
	if l.noticeLeft <= 0 {
		return Notice{}, false
	}
	return l.notice, true
}

// Resize updates the viewport and the bootstrap keys of the live arena.
func (l *Loop) Resize(vp core.Viewport) {
	l.viewport = vp
	l.arena.SetViewport(vp)
}

// Reset replaces the arena with a fresh bootstrap arena, resumes stepping,
// and forces a reload check of every module.
func (l *Loop) Reset() hotreload.Outcome {
	l.arena = arena.NewBootstrap(l.viewport)
	l.resume()
	l.logger.Info("arena reset", "module", l.opts.Module)

	out := l.reloader.ForceReloadAll()
	l.handleOutcome(out)
	return out
}

// Frame runs one iteration: poll, optional reset, then step or suspend.
func (l *Loop) Frame(dt float64, in Input) Report {
	if dt < 0 {
		dt = 0
	}
	l.noticeLeft -= dt

	var rep Report
	rep.Outcome = l.reloader.Poll(dt, in.ForceReload, l.autoReload)
	l.handleOutcome(rep.Outcome)

	if in.Reset {
		rep.Reset = true
		if out := l.Reset(); out.Kind != hotreload.Unchanged {
			rep.Outcome = out
		}
	}

	if !l.skip.Skipping {
		rep.Ran = true
		if f := l.step(); f != nil {
			rep.Failure = f
			l.suspend(*f)
			l.drawDiagnostic()
		} else if enabled, ok := l.arena.AutoReload(); ok {
			l.autoReload = enabled
		}
		return rep
	}

	l.skip.Elapsed += max(dt, l.opts.MinFrameTime)
	l.drawDiagnostic()
	if l.skip.Elapsed >= l.opts.RetryInterval {
		l.skip.Skipping = false
		l.skip.Elapsed = 0
		rep.Resumed = true
	}
	return rep
}

// handleOutcome applies a poll result. Any module swapped in resumes a
// suspended loop, even when other modules of the same check failed.
func (l *Loop) handleOutcome(out hotreload.Outcome) {
	if len(out.Reloaded) > 0 {
		l.resume()
		l.show(Notice{Text: ReloadedNotice})
		for _, name := range out.Reloaded {
			l.record(func(r Recorder) error {
				return r.RecordReload(name, hotreload.Reloaded.String(), "")
			})
		}
	}

	if out.Kind != hotreload.ReloadFailed {
		return
	}
	l.show(Notice{Text: out.Diagnostic(), Alert: true})
	l.logger.Warn("reload failed", "error", out.Err)

	failures := out.Failures()
	if len(failures) == 0 {
		l.record(func(r Recorder) error {
			return r.RecordReload(l.opts.Module, out.Kind.String(), out.Err.Error())
		})
		return
	}
	for _, f := range failures {
		l.record(func(r Recorder) error {
			return r.RecordReload(f.Module, out.Kind.String(), f.Err.Error())
		})
	}
}

// step invokes the entry point. Errors and panics raised by the logic are
// returned as a classified Failure; nil means the step succeeded.
func (l *Loop) step() (failure *Failure) {
	logic := l.reloader.Logic(l.opts.Module)
	if logic == nil {
		return &Failure{
			Kind:    KindModuleNotLoaded,
			Line:    UnknownLine,
			Message: fmt.Sprintf("module %s is not loaded", l.opts.Module),
		}
	}

	defer func() {
		if r := recover(); r != nil {
			f := panicFailure(l.opts.Module, r)
			failure = &f
		}
	}()

	if err := logic.UpdateAndRender(l.arena); err != nil {
		f := Classify(err, l.opts.Module)
		return &f
	}
	return nil
}

func (l *Loop) suspend(f Failure) {
	l.skip = SkipState{Skipping: true, LastError: f.Diagnostic()}
	l.logger.Error("update and render failed",
		"module", l.opts.Module,
		"kind", f.Kind,
		"line", f.Line,
		"message", f.Message,
	)
	l.record(func(r Recorder) error {
		return r.RecordFailure(l.opts.Module, f.Kind, f.Line, f.Message)
	})
}

func (l *Loop) resume() {
	l.skip.Skipping = false
	l.skip.Elapsed = 0
}

func (l *Loop) show(n Notice) {
	l.notice = n
	l.noticeLeft = l.opts.NoticeDuration
}

func (l *Loop) record(fn func(Recorder) error) {
	if l.opts.Recorder == nil {
		return
	}
	if err := fn(l.opts.Recorder); err != nil {
		l.logger.Warn("cannot journal event", "error", err)
	}
}

// drawDiagnostic renders the last failure as the whole frame.
func (l *Loop) drawDiagnostic() {
	DrawAlert(l.renderer, l.skip.LastError)
}
