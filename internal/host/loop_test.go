package host

import (
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/vovakirdan/flightsim/internal/arena"
	"github.com/vovakirdan/flightsim/internal/core"
	"github.com/vovakirdan/flightsim/internal/hotreload"
)

// fakeReloader returns queued outcomes and serves a swappable logic.
type fakeReloader struct {
	logic      hotreload.Logic
	outcomes   []hotreload.Outcome
	polls      int
	forced     int
	lastAuto   bool
	lastForce  bool
	onReloaded func()
}

func (f *fakeReloader) Poll(dt float64, force, autoReload bool) hotreload.Outcome {
	f.polls++
	f.lastAuto = autoReload
	f.lastForce = force
	if len(f.outcomes) == 0 {
		return hotreload.Outcome{Kind: hotreload.Unchanged}
	}
	out := f.outcomes[0]
	f.outcomes = f.outcomes[1:]
	if out.Kind == hotreload.Reloaded && f.onReloaded != nil {
		f.onReloaded()
	}
	return out
}

func (f *fakeReloader) ForceReloadAll() hotreload.Outcome {
	f.forced++
	return hotreload.Outcome{Kind: hotreload.Unchanged, Checked: true}
}

func (f *fakeReloader) Logic(string) hotreload.Logic {
	return f.logic
}

// stepLogic counts calls and fails while err is set.
type stepLogic struct {
	calls int
	err   error
	seen  []string // Arena keys at the most recent call
}

func (s *stepLogic) UpdateAndRender(a *arena.Arena) error {
	s.calls++
	s.seen = a.Keys()
	return s.err
}

type fakeRecorder struct {
	reloads  []string
	failures []string
}

func (r *fakeRecorder) RecordReload(module, outcome, message string) error {
	r.reloads = append(r.reloads, module+":"+outcome)
	return nil
}

func (r *fakeRecorder) RecordFailure(module, kind, line, message string) error {
	r.failures = append(r.failures, kind+"@"+line)
	return nil
}

func newTestLoop(logic hotreload.Logic) (*Loop, *fakeReloader, *core.Screen) {
	screen := core.NewScreen(60, 12)
	rl := &fakeReloader{logic: logic}
	l := New(screen, rl, Options{
		Module:     "g_update_and_render",
		Viewport:   core.Viewport{Width: 60, Height: 12},
		AutoReload: true,
	})
	return l, rl, screen
}

var reloadedOutcome = hotreload.Outcome{Kind: hotreload.Reloaded, Checked: true, Reloaded: []string{"g_update_and_render"}}

func TestFrameRunsEntryPoint(t *testing.T) {
	logic := &stepLogic{}
	l, rl, _ := newTestLoop(logic)

	for i := 0; i < 3; i++ {
		rep := l.Frame(0.016, Input{})
		if !rep.Ran || rep.Failure != nil {
			t.Fatalf("Frame %d = %+v, expected a successful step", i, rep)
		}
	}
	if logic.calls != 3 || rl.polls != 3 {
		t.Errorf("calls = %d, polls = %d, expected 3 each", logic.calls, rl.polls)
	}
}

func TestFailureSuspendsAndRetriesOnTimer(t *testing.T) {
	logic := &stepLogic{err: errors.New("boom")}
	l, _, screen := newTestLoop(logic)

	rep := l.Frame(0.5, Input{})
	if rep.Failure == nil || !l.Skip().Skipping {
		t.Fatalf("First frame = %+v, expected a failure and suspension", rep)
	}
	if got := screen.GetCell(0, 0).Bg; got != AlertBackground {
		t.Errorf("Failure frame background = %v, expected %v", got, AlertBackground)
	}
	if !strings.Contains(screen.String(), "boom") {
		t.Errorf("Failure frame should show the diagnostic, got:\n%s", screen.String())
	}

	// 0.5, 1.0, 1.5 suspended: overlay only
	for i := 0; i < 3; i++ {
		rep := l.Frame(0.5, Input{})
		if rep.Ran || rep.Resumed {
			t.Fatalf("Suspended frame %d = %+v, expected no step", i, rep)
		}
	}
	if logic.calls != 1 {
		t.Errorf("calls = %d while suspended, expected 1", logic.calls)
	}

	// Reaches 2.0: resumes, retry happens on the following frame
	if rep := l.Frame(0.5, Input{}); rep.Ran || !rep.Resumed {
		t.Fatalf("Frame reaching the retry interval = %+v, expected Resumed without step", rep)
	}
	logic.err = nil
	if rep := l.Frame(0.5, Input{}); !rep.Ran || rep.Failure != nil {
		t.Errorf("Frame after resume = %+v, expected a successful retry", rep)
	}
	if logic.calls != 2 {
		t.Errorf("calls = %d, expected 2", logic.calls)
	}
}

func TestSuspendedTimerHasFloor(t *testing.T) {
	l, _, _ := newTestLoop(&stepLogic{err: errors.New("boom")})
	l.Frame(0, Input{})

	l.Frame(0, Input{})
	if got := l.Skip().Elapsed; got != DefaultMinFrameTime {
		t.Errorf("Elapsed after zero-length frame = %v, expected floor %v", got, DefaultMinFrameTime)
	}
}

func TestReloadClearsSuspension(t *testing.T) {
	logic := &stepLogic{err: errors.New("boom")}
	l, rl, _ := newTestLoop(logic)
	l.Frame(0.1, Input{})

	rl.outcomes = []hotreload.Outcome{reloadedOutcome}
	rl.onReloaded = func() { logic.err = nil }

	rep := l.Frame(0.1, Input{})
	if rep.Outcome.Kind != hotreload.Reloaded || !rep.Ran || rep.Failure != nil {
		t.Fatalf("Frame with reload = %+v, expected an immediate successful retry", rep)
	}
	if n, ok := l.Notice(); !ok || n.Text != ReloadedNotice || n.Alert {
		t.Errorf("Notice() = %+v, %v, expected reloaded notice", n, ok)
	}
}

func TestReloadFailedShowsAlertNotice(t *testing.T) {
	logic := &stepLogic{}
	l, rl, _ := newTestLoop(logic)
	rl.outcomes = []hotreload.Outcome{{
		Kind:    hotreload.ReloadFailed,
		Checked: true,
		Err:     &hotreload.ReloadError{Module: "g_update_and_render", Err: errors.New("unexpected symbol")},
	}}

	rep := l.Frame(0.1, Input{})
	if !rep.Ran {
		t.Error("Last good logic should keep running after a failed reload")
	}
	n, ok := l.Notice()
	if !ok || !n.Alert || !strings.Contains(n.Text, "unexpected symbol") {
		t.Errorf("Notice() = %+v, %v, expected alert with diagnostic", n, ok)
	}

	// Notice expires
	l.Frame(DefaultNoticeDuration, Input{})
	if _, ok := l.Notice(); ok {
		t.Error("Notice should expire after its duration")
	}
}

func TestResetWhileSuspended(t *testing.T) {
	logic := &stepLogic{err: errors.New("boom")}
	l, rl, _ := newTestLoop(logic)
	l.Frame(0.1, Input{})
	l.Arena().Set("player_position", core.Vec3{X: 1})
	logic.err = nil

	rep := l.Frame(0.1, Input{Reset: true})
	if !rep.Reset || !rep.Ran || rep.Failure != nil {
		t.Fatalf("Reset frame = %+v, expected reset and a successful step", rep)
	}
	if rl.forced != 1 {
		t.Errorf("ForceReloadAll called %d times, expected 1", rl.forced)
	}
	expected := []string{arena.KeyScreenHeight, arena.KeyScreenWidth}
	if !reflect.DeepEqual(logic.seen, expected) {
		t.Errorf("Entry point saw keys %v, expected a fresh arena %v", logic.seen, expected)
	}
}

func TestResetYieldsBootstrapKeysOnly(t *testing.T) {
	l, _, _ := newTestLoop(&stepLogic{})
	old := l.Arena()
	old.Set("camera_3d", &core.Camera{})
	old.Set("time_elapsed", 4.2)

	l.Reset()

	if l.Arena() == old {
		t.Error("Reset should replace the arena instance")
	}
	if got := l.Arena().Keys(); !reflect.DeepEqual(got, []string{arena.KeyScreenHeight, arena.KeyScreenWidth}) {
		t.Errorf("Keys() after reset = %v", got)
	}
}

func TestArenaIdentitySurvivesReload(t *testing.T) {
	logic := &stepLogic{}
	l, rl, _ := newTestLoop(logic)
	before := l.Arena()
	before.Set("time_elapsed", 1.5)

	rl.outcomes = []hotreload.Outcome{reloadedOutcome}
	l.Frame(0.1, Input{})

	if l.Arena() != before {
		t.Error("Reload must keep the same arena instance")
	}
	if n, _ := l.Arena().Number("time_elapsed"); n != 1.5 {
		t.Errorf("time_elapsed = %v after reload, expected 1.5", n)
	}
}

func TestAutoReloadReadBack(t *testing.T) {
	logic := hotreload.LogicFunc(func(a *arena.Arena) error {
		a.Set(arena.KeyAutoReload, false)
		return nil
	})
	l, rl, _ := newTestLoop(logic)

	l.Frame(0.1, Input{})
	if l.AutoReload() {
		t.Error("AutoReload() should follow the arena flag after a successful step")
	}
	l.Frame(0.1, Input{ForceReload: true})
	if rl.lastAuto || !rl.lastForce {
		t.Errorf("Poll got auto=%v force=%v, expected auto=false force=true", rl.lastAuto, rl.lastForce)
	}
}

func TestMissingLogicIsAFailure(t *testing.T) {
	l, _, _ := newTestLoop(nil)

	rep := l.Frame(0.1, Input{})
	if rep.Failure == nil || rep.Failure.Kind != KindModuleNotLoaded {
		t.Fatalf("Frame = %+v, expected %s failure", rep, KindModuleNotLoaded)
	}
	if rep.Failure.Line != UnknownLine {
		t.Errorf("Line = %q, expected %q", rep.Failure.Line, UnknownLine)
	}
}

func TestPanicIsRecovered(t *testing.T) {
	logic := hotreload.LogicFunc(func(a *arena.Arena) error {
		var tiles map[string]int
		tiles["carpet"]++
		return nil
	})
	l, _, _ := newTestLoop(logic)

	rep := l.Frame(0.1, Input{})
	if rep.Failure == nil || rep.Failure.Kind != KindPanic {
		t.Fatalf("Frame = %+v, expected a recovered panic", rep)
	}
	if rep.Failure.Line == UnknownLine || len(rep.Failure.Frames) == 0 {
		t.Errorf("Panic failure should carry frames, got %+v", rep.Failure)
	}
	if !strings.Contains(l.Skip().LastError, "nil map") {
		t.Errorf("LastError = %q, expected the panic message", l.Skip().LastError)
	}
}

func TestResizeUpdatesBootstrapKeys(t *testing.T) {
	l, _, _ := newTestLoop(&stepLogic{})
	l.Resize(core.Viewport{Width: 100, Height: 30})

	if w, _ := l.Arena().Number(arena.KeyScreenWidth); w != 100 {
		t.Errorf("screen_width = %v, expected 100", w)
	}
	l.Reset()
	if h, _ := l.Arena().Number(arena.KeyScreenHeight); h != 30 {
		t.Errorf("screen_height after reset = %v, expected 30", h)
	}
}

func TestRecorderReceivesEvents(t *testing.T) {
	logic := &stepLogic{err: errors.New("boom")}
	rec := &fakeRecorder{}
	screen := core.NewScreen(40, 10)
	rl := &fakeReloader{logic: logic, outcomes: []hotreload.Outcome{reloadedOutcome}}
	l := New(screen, rl, Options{Module: "g_update_and_render", Recorder: rec})

	l.Frame(0.1, Input{})

	if !reflect.DeepEqual(rec.reloads, []string{"g_update_and_render:reloaded"}) {
		t.Errorf("reloads = %v", rec.reloads)
	}
	if !reflect.DeepEqual(rec.failures, []string{"Error@unknown"}) {
		t.Errorf("failures = %v", rec.failures)
	}
}

func TestPartialReloadResumesAndJournalsEachModule(t *testing.T) {
	logic := &stepLogic{err: errors.New("boom")}
	rec := &fakeRecorder{}
	screen := core.NewScreen(40, 10)
	rl := &fakeReloader{logic: logic}
	l := New(screen, rl, Options{Module: "g_update_and_render", Recorder: rec})

	l.Frame(0.1, Input{})
	if !l.Skip().Skipping {
		t.Fatal("expected the loop to be suspended")
	}

	rl.outcomes = []hotreload.Outcome{{
		Kind:     hotreload.ReloadFailed,
		Checked:  true,
		Reloaded: []string{"g_update_and_render"},
		Err: errors.Join(
			&hotreload.ReloadError{Module: "g_camera", Err: errors.New("unexpected symbol")},
			&hotreload.ReloadError{Module: "g_tiles", Err: errors.New("no such file")},
		),
	}}
	logic.err = nil

	rep := l.Frame(0.1, Input{})
	if !rep.Ran || rep.Failure != nil {
		t.Fatalf("Frame with a partial reload = %+v, expected a successful retry", rep)
	}
	if n, ok := l.Notice(); !ok || !n.Alert {
		t.Errorf("Notice() = %+v, %v, expected the failure alert", n, ok)
	}

	expected := []string{
		"g_update_and_render:reloaded",
		"g_camera:reload_failed",
		"g_tiles:reload_failed",
	}
	if !reflect.DeepEqual(rec.reloads, expected) {
		t.Errorf("reloads = %v, expected %v", rec.reloads, expected)
	}
}
