package script

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/Shopify/go-lua"

	"github.com/vovakirdan/flightsim/internal/hotreload"
)

// Load failure kinds.
const (
	KindSyntax     = "SyntaxError"
	KindFile       = "FileError"
	KindImport     = "ImportError"
	KindEntryPoint = "EntryPointError"
)

// Step failure kinds.
const (
	KindRuntime = "RuntimeError"
	KindMemory  = "MemoryError"
)

// LoadError reports a module that could not be loaded.
type LoadError struct {
	Module  string
	Path    string
	Kind    string
	Message string
	Err     error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("%s in %s: %s", e.Kind, e.Module, e.Message)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// RuntimeError reports a failure raised while a module was stepping.
type RuntimeError struct {
	kind    string
	message string
	frames  []hotreload.StackFrame
	err     error
}

var _ hotreload.Traced = (*RuntimeError)(nil)

func (e *RuntimeError) Error() string {
	return e.message
}

// Kind returns the failure class (RuntimeError, MemoryError).
func (e *RuntimeError) Kind() string {
	return e.kind
}

// Message returns the error text raised by the script.
func (e *RuntimeError) Message() string {
	return e.message
}

// Frames returns the stack at the point of failure, outermost first.
func (e *RuntimeError) Frames() []hotreload.StackFrame {
	return e.frames
}

func (e *RuntimeError) Unwrap() error {
	return e.err
}

// newRuntimeError classifies a failed protected call. raw is the value left
// on the stack by the message handler (message plus traceback).
func newRuntimeError(err error, raw string) *RuntimeError {
	kind := KindRuntime
	if errors.Is(err, lua.MemoryError) {
		kind = KindMemory
	}
	message, frames := parseTraceback(raw)
	return &RuntimeError{kind: kind, message: message, frames: frames, err: err}
}

const tracebackHeader = "\nstack traceback:"

var (
	// tracebackLine matches "\tsource:line: in function 'name'".
	tracebackLine = regexp.MustCompile(`^(.+?):(\d+): in (.+)$`)
	// locationPrefix matches the "source:line: " prefix of an error message.
	locationPrefix = regexp.MustCompile(`^(.+?):(\d+): `)
)

// parseTraceback splits a traceback string into the error message and the
// stack frames, outermost first. Frames without a line (Go functions) are
// dropped. The message's "source:line: " prefix is removed; when there is no
// traceback it becomes the only frame.
func parseTraceback(raw string) (string, []hotreload.StackFrame) {
	message, trace, _ := strings.Cut(raw, tracebackHeader)
	message = strings.TrimSpace(strings.TrimPrefix(message, "runtime error: "))

	var innermostFirst []hotreload.StackFrame
	for _, line := range strings.Split(trace, "\n") {
		m := tracebackLine.FindStringSubmatch(strings.TrimSpace(line))
		if m == nil {
			continue
		}
		n, err := strconv.Atoi(m[2])
		if err != nil || n <= 0 {
			continue
		}
		innermostFirst = append(innermostFirst, hotreload.StackFrame{
			Source:   m[1],
			Line:     n,
			Function: functionName(m[3]),
		})
	}

	// The location is carried by the frames, so the message keeps only the
	// description
	var located *hotreload.StackFrame
	if m := locationPrefix.FindStringSubmatch(message); m != nil {
		if n, err := strconv.Atoi(m[2]); err == nil {
			located = &hotreload.StackFrame{Source: m[1], Line: n}
			message = strings.TrimPrefix(message, m[0])
		}
	}

	if len(innermostFirst) == 0 {
		if located != nil {
			return message, []hotreload.StackFrame{*located}
		}
		return message, nil
	}

	frames := make([]hotreload.StackFrame, len(innermostFirst))
	for i, f := range innermostFirst {
		frames[len(frames)-1-i] = f
	}
	return message, frames
}

// functionName extracts "name" from "function 'name'".
func functionName(where string) string {
	where = strings.TrimPrefix(where, "function ")
	return strings.Trim(where, "'")
}

// stackMessage returns the string at the top of the stack, falling back to
// the error text.
func stackMessage(l *lua.State, err error) string {
	if l.Top() > 0 && l.TypeOf(-1) == lua.TypeString {
		if s, ok := l.ToString(-1); ok {
			return s
		}
	}
	return err.Error()
}

// messageHandler appends a traceback to the error message.
func messageHandler(l *lua.State) int {
	msg, ok := l.ToString(1)
	if !ok || l.TypeOf(1) != lua.TypeString {
		msg = fmt.Sprintf("(error object is a %s value)", lua.TypeNameOf(l, 1))
	}
	lua.Traceback(l, l, msg, 1)
	return 1
}
