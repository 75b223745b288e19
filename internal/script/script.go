// Package script runs reloadable simulation logic written in Lua.
//
// Every Load builds a fresh interpreter, so a reload never sees globals left
// by the previous version; durable state lives in the arena the host passes
// to update_and_render each frame. Scripts reach the host through the rl
// table (drawing, input, time, vectors) and the get_or_set/get_or_invoke
// globals.
package script

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/Shopify/go-lua"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/flightsim/internal/arena"
	"github.com/vovakirdan/flightsim/internal/core"
	"github.com/vovakirdan/flightsim/internal/hotreload"
)

// EntryPoint is the global function every module must define.
const EntryPoint = "update_and_render"

// Env is what a script can touch besides the arena.
type Env struct {
	Renderer core.Renderer
	Input    *core.Input
	Clock    *core.Clock
	Logger   *log.Logger // Receives print() output; nil discards it
}

// NewHeadlessEnv returns an env backed by an off-screen buffer.
func NewHeadlessEnv(vp core.Viewport) *Env {
	return &Env{
		Renderer: core.NewScreen(vp.Width, vp.Height),
		Input:    core.NewInput(0),
		Clock:    &core.Clock{},
	}
}

// Loader compiles Lua modules against one Env.
type Loader struct {
	env *Env
}

var _ hotreload.Loader = (*Loader)(nil)

// NewLoader creates a loader for env.
func NewLoader(env *Env) *Loader {
	if env.Logger == nil {
		env.Logger = log.New(io.Discard)
	}
	return &Loader{env: env}
}

// Module is one loaded version of a logic module.
type Module struct {
	name  string
	path  string
	state *lua.State
}

// Name returns the module name.
func (m *Module) Name() string {
	return m.name
}

// Load compiles and runs the file at path and returns its entry point.
func (ld *Loader) Load(name, path string) (hotreload.Logic, error) {
	state := lua.NewState()
	lua.OpenLibraries(state)
	registerArena(state)
	registerVectors(state)
	(&bindings{env: ld.env}).register(state)
	ld.registerPrint(state, name)

	if err := lua.LoadFile(state, path, ""); err != nil {
		kind := KindFile
		if errors.Is(err, lua.SyntaxError) {
			kind = KindSyntax
		}
		return nil, &LoadError{Module: name, Path: path, Kind: kind, Message: stackMessage(state, err), Err: err}
	}

	state.PushGoFunction(messageHandler)
	state.Insert(-2)
	if err := state.ProtectedCall(0, 0, state.AbsIndex(-2)); err != nil {
		message, _ := parseTraceback(stackMessage(state, err))
		return nil, &LoadError{Module: name, Path: path, Kind: KindImport, Message: message, Err: err}
	}
	state.Pop(1)

	state.Global(EntryPoint)
	defined := state.IsFunction(-1)
	state.Pop(1)
	if !defined {
		return nil, &LoadError{
			Module:  name,
			Path:    path,
			Kind:    KindEntryPoint,
			Message: fmt.Sprintf("module does not define function %s", EntryPoint),
		}
	}

	return &Module{name: name, path: path, state: state}, nil
}

// UpdateAndRender calls the module's entry point with a.
func (m *Module) UpdateAndRender(a *arena.Arena) error {
	state := m.state
	base := state.Top()
	defer state.SetTop(base)

	state.PushGoFunction(messageHandler)
	state.Global(EntryPoint)
	pushArena(state, a)
	if err := state.ProtectedCall(1, 0, base+1); err != nil {
		return newRuntimeError(err, stackMessage(state, err))
	}
	return nil
}

// registerPrint routes print() to the env logger; stdout belongs to the
// terminal UI.
func (ld *Loader) registerPrint(state *lua.State, name string) {
	logger := ld.env.Logger.With("module", name)
	state.PushGoFunction(func(state *lua.State) int {
		n := state.Top()
		parts := make([]string, 0, n)
		for i := 1; i <= n; i++ {
			parts = append(parts, printable(state, i))
		}
		logger.Info(strings.Join(parts, "\t"))
		return 0
	})
	state.SetGlobal("print")
}

func printable(state *lua.State, index int) string {
	switch state.TypeOf(index) {
	case lua.TypeNil:
		return "nil"
	case lua.TypeBoolean:
		if state.ToBoolean(index) {
			return "true"
		}
		return "false"
	case lua.TypeNumber:
		n, _ := state.ToNumber(index)
		return fmt.Sprintf("%g", n)
	case lua.TypeString:
		s, _ := state.ToString(index)
		return s
	default:
		return lua.TypeNameOf(state, index)
	}
}

// Check loads the module at path headless. With frames > 0 it also steps
// the entry point that many times against a bootstrap arena and returns the
// first failure.
func Check(path string, frames int) error {
	vp := core.DefaultViewport()
	env := NewHeadlessEnv(vp)
	logic, err := NewLoader(env).Load(moduleName(path), path)
	if err != nil {
		return err
	}
	a := arena.NewBootstrap(vp)
	for i := 0; i < frames; i++ {
		env.Clock.Advance(1.0 / 60)
		if err := logic.UpdateAndRender(a); err != nil {
			return fmt.Errorf("frame %d: %w", i+1, err)
		}
		env.Input.EndFrame()
	}
	return nil
}

// moduleName derives a module name from a file path.
func moduleName(path string) string {
	base := path
	if i := strings.LastIndexAny(base, `/\`); i >= 0 {
		base = base[i+1:]
	}
	return strings.TrimSuffix(base, hotreload.DefaultExt)
}
