// Package hotreload swaps simulation logic modules in place while the host
// keeps running.
//
// A Supervisor polls the modification time of each registered module's
// source file once per frame (on a timer, or when forced), reloads changed
// modules through a Loader, and keeps the last good version active when a
// reload fails.
package hotreload

import (
	"github.com/vovakirdan/flightsim/internal/arena"
)

// Logic is one loaded version of a module: the reloadable step capability.
// UpdateAndRender advances and draws one frame using the state in a.
type Logic interface {
	UpdateAndRender(a *arena.Arena) error
}

// LogicFunc adapts a function to the Logic interface.
type LogicFunc func(a *arena.Arena) error

// UpdateAndRender calls f(a).
func (f LogicFunc) UpdateAndRender(a *arena.Arena) error {
	return f(a)
}

// Loader loads a fresh version of a module from its source file.
// Errors are load-time failures (syntax, missing entry point, a module body
// that raises while executing), as distinct from failures while stepping.
type Loader interface {
	Load(name, path string) (Logic, error)
}

// StackFrame is one frame of a failure's stack.
type StackFrame struct {
	Source   string // Source file or chunk name
	Line     int    // Line number, 0 when unknown
	Function string // Function name, may be empty
}

// Traced is implemented by step failures that carry a classified stack.
// Frames are ordered outermost first.
type Traced interface {
	error
	Kind() string
	Message() string
	Frames() []StackFrame
}
