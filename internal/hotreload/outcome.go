package hotreload

import (
	"errors"
	"fmt"
)

// OutcomeKind is the result of one poll.
type OutcomeKind int

const (
	Unchanged OutcomeKind = iota
	Reloaded
	ReloadFailed
)

// String returns a human-readable name for the outcome.
func (k OutcomeKind) String() string {
	switch k {
	case Unchanged:
		return "unchanged"
	case Reloaded:
		return "reloaded"
	case ReloadFailed:
		return "reload_failed"
	default:
		return "unknown"
	}
}

// Outcome is produced by every poll and consumed immediately by the host.
type Outcome struct {
	Kind     OutcomeKind
	Checked  bool     // Whether a check ran this poll
	Reloaded []string // Modules swapped for a fresh version
	Err      error    // Set when Kind is ReloadFailed
}

// Diagnostic returns the human-readable failure message, or "" on success.
func (o Outcome) Diagnostic() string {
	if o.Err == nil {
		return ""
	}
	return fmt.Sprintf("An error occurred while reloading the logic module: %v", o.Err)
}

// Failures returns the per-module errors of a failed check.
// Errors that name no module are skipped.
func (o Outcome) Failures() []*ReloadError {
	if o.Err == nil {
		return nil
	}
	errs := []error{o.Err}
	if joined, ok := o.Err.(interface{ Unwrap() []error }); ok {
		errs = joined.Unwrap()
	}

	var failures []*ReloadError
	for _, err := range errs {
		var re *ReloadError
		if errors.As(err, &re) {
			failures = append(failures, re)
		}
	}
	return failures
}

// ReloadError reports a failed reload of one module.
type ReloadError struct {
	Module string
	Path   string
	Err    error
}

func (e *ReloadError) Error() string {
	return fmt.Sprintf("reload %s: %v", e.Module, e.Err)
}

func (e *ReloadError) Unwrap() error {
	return e.Err
}
