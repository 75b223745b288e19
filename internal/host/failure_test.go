package host

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/vovakirdan/flightsim/internal/core"
	"github.com/vovakirdan/flightsim/internal/hotreload"
)

type tracedError struct {
	kind   string
	msg    string
	frames []hotreload.StackFrame
}

func (e *tracedError) Error() string { return e.msg }
func (e *tracedError) Kind() string { return e.kind }
func (e *tracedError) Message() string { return e.msg }
func (e *tracedError) Frames() []hotreload.StackFrame { return e.frames }

func TestClassifyLine(t *testing.T) {
	tests := []struct {
		name   string
		frames []hotreload.StackFrame
		line   string
	}{
		{
			name: "innermost module frame",
			frames: []hotreload.StackFrame{
				{Source: "main.lua", Line: 3},
				{Source: "scripts/g_update_and_render.lua", Line: 180},
				{Source: "scripts/g_update_and_render.lua", Line: 57},
				{Source: "helpers.lua", Line: 9},
			},
			line: "57",
		},
		{
			name: "no module frame falls back to outermost",
			frames: []hotreload.StackFrame{
				{Source: "main.lua", Line: 3},
				{Source: "helpers.lua", Line: 9},
			},
			line: "3",
		},
		{
			name: "no frames",
			line: UnknownLine,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := &tracedError{kind: "RuntimeError", msg: "attempt to index a nil value", frames: tt.frames}
			f := Classify(fmt.Errorf("step: %w", err), "g_update_and_render")
			if f.Line != tt.line {
				t.Errorf("Line = %q, expected %q", f.Line, tt.line)
			}
			if f.Kind != "RuntimeError" || f.Message != "attempt to index a nil value" {
				t.Errorf("Classify() = %+v", f)
			}
		})
	}
}

func TestClassifyPlainError(t *testing.T) {
	f := Classify(errors.New("division by zero"), "g_update_and_render")

	expected := "Issue with update and render: Error at line unknown: division by zero"
	if got := f.Diagnostic(); got != expected {
		t.Errorf("Diagnostic() = %q, expected %q", got, expected)
	}
}

func TestWrapText(t *testing.T) {
	lines := WrapText("Issue with update and render: RuntimeError at line 12: boom", 20)
	if len(lines) < 3 {
		t.Fatalf("WrapText() = %q, expected several lines", lines)
	}
	for _, line := range lines {
		if len([]rune(line)) > 20 {
			t.Errorf("Line %q exceeds the width", line)
		}
	}
	if joined := strings.Join(lines, " "); !strings.Contains(joined, "RuntimeError") {
		t.Errorf("Wrapped text lost content: %q", joined)
	}
}

func TestDrawAlert(t *testing.T) {
	screen := core.NewScreen(30, 5)
	DrawAlert(screen, "reloaded module!")

	if got := screen.GetCell(29, 4).Bg; got != AlertBackground {
		t.Errorf("Corner background = %v, expected %v", got, AlertBackground)
	}
	if !strings.Contains(screen.String(), "reloaded module!") {
		t.Errorf("Alert text missing:\n%s", screen.String())
	}
	if screen.Frames() != 1 {
		t.Errorf("Frames() = %d, expected one presented frame", screen.Frames())
	}
}
