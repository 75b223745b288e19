// Package arena provides the long-lived state container that simulation
// logic reads and writes every frame.
//
// An Arena is an open-ended mapping from string keys to heterogeneous values
// (numbers, booleans, strings, vectors, cameras, nested arenas). The host owns
// one Arena for the lifetime of a session; reloading the logic module keeps
// the same instance, so state computed by one version of the logic is visible
// to the next. Keys are created lazily through the get-or-initialize accessors.
//
// Reloaded logic must not change the meaning of existing keys, only add new
// ones. The typed accessors treat a value of an unexpected type as absent and
// re-initialize it.
//
// An Arena is not safe for concurrent use; it belongs to one frame loop.
package arena

import (
	"sort"

	"github.com/vovakirdan/flightsim/internal/core"
)

// Bootstrap keys present in every fresh arena.
const (
	KeyScreenWidth  = "screen_width"
	KeyScreenHeight = "screen_height"
)

// KeyAutoReload holds the auto-reload flag the host reads back after each
// successful frame.
const KeyAutoReload = "auto_reload"

// Arena is a string-keyed state container.
type Arena struct {
	values map[string]any
}

// New creates an empty arena.
func New() *Arena {
	return &Arena{values: make(map[string]any)}
}

// NewBootstrap creates an arena with only the bootstrap keys set from vp.
func NewBootstrap(vp core.Viewport) *Arena {
	a := New()
	a.SetViewport(vp)
	return a
}

// SetViewport updates the bootstrap keys in place.
func (a *Arena) SetViewport(vp core.Viewport) {
	a.values[KeyScreenWidth] = vp.Width
	a.values[KeyScreenHeight] = vp.Height
}

// Get returns the value stored under key.
func (a *Arena) Get(key string) (any, bool) {
	v, ok := a.values[key]
	return v, ok
}

// Has reports whether key is present.
func (a *Arena) Has(key string) bool {
	_, ok := a.values[key]
	return ok
}

// Set stores v under key. Storing nil deletes the key.
func (a *Arena) Set(key string, v any) {
	if v == nil {
		delete(a.values, key)
		return
	}
	a.values[key] = v
}

// Delete removes key.
func (a *Arena) Delete(key string) {
	delete(a.values, key)
}

// Len returns the number of keys.
func (a *Arena) Len() int {
	return len(a.values)
}

// Keys returns all keys in sorted order.
func (a *Arena) Keys() []string {
	keys := make([]string, 0, len(a.values))
	for k := range a.values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// GetOrSet returns the value under key, storing def first if key is absent.
func (a *Arena) GetOrSet(key string, def any) any {
	if v, ok := a.values[key]; ok {
		return v
	}
	a.Set(key, def)
	return def
}

// GetOrInvoke returns the value under key, storing init() first if key is
// absent. init is not called when the key exists.
func (a *Arena) GetOrInvoke(key string, init func() any) any {
	if v, ok := a.values[key]; ok {
		return v
	}
	v := init()
	a.Set(key, v)
	return v
}

// Child returns the nested arena under key, creating it if absent.
func (a *Arena) Child(key string) *Arena {
	return GetOrInit(a, key, New)
}

// AutoReload returns the auto-reload flag and whether it is set.
func (a *Arena) AutoReload() (enabled, ok bool) {
	return Lookup[bool](a, KeyAutoReload)
}

// Lookup returns the value under key if it holds a T.
func Lookup[T any](a *Arena, key string) (T, bool) {
	v, ok := a.values[key].(T)
	return v, ok
}

// GetOrInit returns the T under key. When the key is absent or holds a value
// of another type, init() is stored and returned.
func GetOrInit[T any](a *Arena, key string, init func() T) T {
	if v, ok := a.values[key].(T); ok {
		return v
	}
	v := init()
	a.values[key] = v
	return v
}

// Number returns a numeric value as float64, accepting any stored numeric type.
func (a *Arena) Number(key string) (float64, bool) {
	switch v := a.values[key].(type) {
	case float64:
		return v, true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	default:
		return 0, false
	}
}
