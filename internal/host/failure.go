package host

import (
	"errors"
	"fmt"
	"runtime"
	"strconv"
	"strings"

	"github.com/vovakirdan/flightsim/internal/hotreload"
)

// UnknownLine is reported when no stack frame carries a line.
const UnknownLine = "unknown"

// Failure kinds produced by the host itself.
const (
	KindModuleNotLoaded = "ModuleNotLoaded"
	KindPanic           = "panic"
	KindError           = "Error"
)

// Failure is a classified entry-point failure.
type Failure struct {
	Kind    string
	Line    string
	Message string
	Frames  []hotreload.StackFrame // Outermost first
}

// Diagnostic returns the text shown on the overlay.
func (f Failure) Diagnostic() string {
	return fmt.Sprintf("Issue with update and render: %s at line %s: %s", f.Kind, f.Line, f.Message)
}

// Classify turns an entry-point error into a Failure. The line is taken from
// the innermost frame whose source belongs to module, else from the
// outermost frame, else it is UnknownLine.
func Classify(err error, module string) Failure {
	var traced hotreload.Traced
	if errors.As(err, &traced) {
		frames := traced.Frames()
		return Failure{
			Kind:    traced.Kind(),
			Line:    failureLine(frames, module),
			Message: traced.Message(),
			Frames:  frames,
		}
	}
	return Failure{Kind: KindError, Line: UnknownLine, Message: err.Error()}
}

func failureLine(frames []hotreload.StackFrame, module string) string {
	for i := len(frames) - 1; i >= 0; i-- {
		if module != "" && strings.Contains(frames[i].Source, module) {
			return strconv.Itoa(frames[i].Line)
		}
	}
	if len(frames) > 0 {
		return strconv.Itoa(frames[0].Line)
	}
	return UnknownLine
}

// panicFailure classifies a recovered panic. Frames run from the host's
// failure boundary down to the panic site.
func panicFailure(module string, v any) Failure {
	pcs := make([]uintptr, 64)
	// Skip runtime.Callers, this function, the deferred closure and gopanic.
	n := runtime.Callers(4, pcs)
	it := runtime.CallersFrames(pcs[:n])

	var innermostFirst []hotreload.StackFrame
	for {
		frame, more := it.Next()
		if strings.Contains(frame.Function, "host.(*Loop).step") {
			break
		}
		innermostFirst = append(innermostFirst, hotreload.StackFrame{
			Source:   frame.File,
			Line:     frame.Line,
			Function: frame.Function,
		})
		if !more {
			break
		}
	}

	frames := make([]hotreload.StackFrame, len(innermostFirst))
	for i, f := range innermostFirst {
		frames[len(frames)-1-i] = f
	}
	return Failure{
		Kind:    KindPanic,
		Line:    failureLine(frames, module),
		Message: fmt.Sprint(v),
		Frames:  frames,
	}
}
