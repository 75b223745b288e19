// Package scenes provides a registry of sample logic modules.
// Each scene is an embedded Lua script that can be installed as the
// reloadable module a sandbox session runs and edits.
package scenes

import (
	"embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
)

//go:embed lua/*.lua
var sources embed.FS

// Default is the scene installed when no script exists yet.
const Default = "flight"

// Info contains metadata about a registered scene.
type Info struct {
	ID    string
	Title string
}

type scene struct {
	title string
	file  string
}

var (
	scenes = make(map[string]scene)
	mu     sync.RWMutex
)

func init() {
	Register("flight", "Flight camera over a plane", "lua/flight.lua")
	Register("tilemap", "Tile map painter with edge scrolling", "lua/tilemap.lua")
}

// Register adds an embedded scene to the registry.
// Panics if a scene with the same ID is already registered.
func Register(id, title, file string) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := scenes[id]; exists {
		panic(fmt.Sprintf("scenes: scene %q already registered", id))
	}
	scenes[id] = scene{title: title, file: file}
}

// List returns information about all registered scenes, sorted by ID.
func List() []Info {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]Info, 0, len(scenes))
	for id, s := range scenes {
		result = append(result, Info{ID: id, Title: s.title})
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})

	return result
}

// Exists checks if a scene with the given ID is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := scenes[id]
	return ok
}

// Source returns the Lua source of a scene.
func Source(id string) ([]byte, error) {
	mu.RLock()
	s, ok := scenes[id]
	mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("scenes: unknown scene %q", id)
	}
	data, err := sources.ReadFile(s.file)
	if err != nil {
		return nil, fmt.Errorf("scenes: cannot read %s: %w", s.file, err)
	}
	return data, nil
}

// ErrExists is returned by Install when the target file already exists.
var ErrExists = errors.New("scenes: file already exists")

// Install writes a scene's source to path, creating parent directories.
// An existing file is never overwritten.
func Install(id, path string) error {
	data, err := Source(id)
	if err != nil {
		return err
	}

	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("scenes: cannot create directory %s: %w", dir, err)
		}
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		if errors.Is(err, os.ErrExist) {
			return fmt.Errorf("%w: %s", ErrExists, path)
		}
		return fmt.Errorf("scenes: cannot create %s: %w", path, err)
	}
	if _, err := f.Write(data); err != nil {
		f.Close()
		return fmt.Errorf("scenes: cannot write %s: %w", path, err)
	}
	return f.Close()
}
