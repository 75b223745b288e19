package hotreload

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
)

// Defaults for Options.
const (
	DefaultInterval = 1.0 // Seconds between automatic checks
	DefaultExt      = ".lua"
)

// StatFunc returns the last-modified time of a file.
type StatFunc func(path string) (time.Time, error)

// FileModTime is the StatFunc backed by the filesystem.
func FileModTime(path string) (time.Time, error) {
	info, err := os.Stat(path)
	if err != nil {
		return time.Time{}, err
	}
	return info.ModTime(), nil
}

// Options configures a Supervisor.
type Options struct {
	Interval float64     // Seconds between automatic checks (default 1.0)
	Dir      string      // Directory holding module sources
	Ext      string      // Source file extension (default ".lua")
	Stat     StatFunc    // Modification time source (default FileModTime)
	Logger   *log.Logger // Optional
}

// ModuleRecord is the last observed modification time of one module.
// A zero LastModified means the time was unknown when observed.
type ModuleRecord struct {
	Name         string
	LastModified time.Time
}

// Known reports whether the recorded time was readable.
func (r ModuleRecord) Known() bool {
	return !r.LastModified.IsZero()
}

type module struct {
	name  string
	path  string
	logic Logic // Last good version, nil until a load succeeds
}

// Supervisor decides once per frame whether registered modules need to be
// swapped for freshly loaded versions, and performs the swap.
// It is not safe for concurrent use.
type Supervisor struct {
	loader   Loader
	interval float64
	dir      string
	ext      string
	stat     StatFunc
	logger   *log.Logger

	elapsed float64 // Time accumulated since the last check
	modules []*module
	records map[string]*ModuleRecord
}

// New creates a supervisor that loads modules through loader.
func New(loader Loader, opts Options) *Supervisor {
	if opts.Interval <= 0 {
		opts.Interval = DefaultInterval
	}
	if opts.Ext == "" {
		opts.Ext = DefaultExt
	}
	if opts.Stat == nil {
		opts.Stat = FileModTime
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	return &Supervisor{
		loader:   loader,
		interval: opts.Interval,
		dir:      opts.Dir,
		ext:      opts.Ext,
		stat:     opts.Stat,
		logger:   opts.Logger,
		records:  make(map[string]*ModuleRecord),
	}
}

// Register adds a module and performs its initial load.
// A failed initial load is returned but leaves the module registered without
// active logic; a later successful reload activates it.
func (s *Supervisor) Register(name string) error {
	for _, m := range s.modules {
		if m.name == name {
			return fmt.Errorf("hotreload: module %q already registered", name)
		}
	}

	m := &module{name: name, path: s.Path(name)}
	s.modules = append(s.modules, m)

	logic, err := s.loader.Load(m.name, m.path)
	if err != nil {
		return &ReloadError{Module: m.name, Path: m.path, Err: err}
	}
	m.logic = logic
	s.logger.Info("module loaded", "module", name, "path", m.path)
	return nil
}

// Path returns the source file of a module by the naming convention
// <dir>/<name><ext>.
func (s *Supervisor) Path(name string) string {
	return filepath.Join(s.dir, name+s.ext)
}

// Logic returns the active version of a module, or nil if none loaded.
func (s *Supervisor) Logic(name string) Logic {
	for _, m := range s.modules {
		if m.name == name {
			return m.logic
		}
	}
	return nil
}

// Record returns the observation record of a module.
// ok is false until the first check has observed the module.
func (s *Supervisor) Record(name string) (ModuleRecord, bool) {
	r, ok := s.records[name]
	if !ok {
		return ModuleRecord{}, false
	}
	return *r, true
}

// Modules returns the registered module names in registration order.
func (s *Supervisor) Modules() []string {
	names := make([]string, len(s.modules))
	for i, m := range s.modules {
		names[i] = m.name
	}
	return names
}

// Elapsed returns the time accumulated toward the next automatic check.
func (s *Supervisor) Elapsed() float64 {
	return s.elapsed
}

// Poll advances the reload timer by dt and runs a check when the interval has
// elapsed with autoReload enabled, or when force is set. Any check resets the
// timer regardless of its outcome.
func (s *Supervisor) Poll(dt float64, force, autoReload bool) Outcome {
	if dt > 0 {
		s.elapsed += dt
	}
	if !force && !(autoReload && s.elapsed >= s.interval) {
		return Outcome{Kind: Unchanged}
	}
	return s.check()
}

// ForceReloadAll runs the check procedure for every module now.
func (s *Supervisor) ForceReloadAll() Outcome {
	return s.check()
}

// check compares each module's current modification time with its record and
// reloads the ones that changed.
func (s *Supervisor) check() Outcome {
	s.elapsed = 0
	out := Outcome{Kind: Unchanged, Checked: true}
	var errs []error

	for _, m := range s.modules {
		mtime := s.modTime(m.path)

		rec, seen := s.records[m.name]
		if !seen {
			// First observation establishes the baseline
			rec = &ModuleRecord{Name: m.name, LastModified: mtime}
			s.records[m.name] = rec
			// A module whose initial load failed gets one attempt here, so
			// a fix made before the baseline is not missed
			if m.logic != nil || mtime.IsZero() {
				continue
			}
		} else if mtime.IsZero() || mtime.Equal(rec.LastModified) {
			continue
		}

		logic, err := s.loader.Load(m.name, m.path)
		if err != nil {
			// Keep the record so the next check retries the same change
			s.logger.Warn("reload failed", "module", m.name, "error", err)
			errs = append(errs, &ReloadError{Module: m.name, Path: m.path, Err: err})
			continue
		}

		m.logic = logic
		rec.LastModified = mtime
		out.Reloaded = append(out.Reloaded, m.name)
		s.logger.Info("module reloaded", "module", m.name, "modified", mtime.Format(time.RFC3339))
	}

	switch {
	case len(errs) > 0:
		out.Kind = ReloadFailed
		out.Err = errors.Join(errs...)
	case len(out.Reloaded) > 0:
		out.Kind = Reloaded
	}
	return out
}

// modTime returns the module file's modification time, or zero if unreadable.
func (s *Supervisor) modTime(path string) time.Time {
	t, err := s.stat(path)
	if err != nil {
		s.logger.Debug("cannot read modification time", "path", path, "error", err)
		return time.Time{}
	}
	return t
}
