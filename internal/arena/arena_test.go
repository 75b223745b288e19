package arena

import (
	"reflect"
	"testing"

	"github.com/vovakirdan/flightsim/internal/core"
)

func TestNewBootstrapHasOnlyViewportKeys(t *testing.T) {
	a := NewBootstrap(core.Viewport{Width: 120, Height: 40})

	if got := a.Keys(); !reflect.DeepEqual(got, []string{KeyScreenHeight, KeyScreenWidth}) {
		t.Fatalf("Keys() = %v, expected only the bootstrap keys", got)
	}
	if w, _ := a.Number(KeyScreenWidth); w != 120 {
		t.Errorf("screen_width = %v, expected 120", w)
	}
	if h, _ := a.Number(KeyScreenHeight); h != 40 {
		t.Errorf("screen_height = %v, expected 40", h)
	}
}

func TestGetOrSet(t *testing.T) {
	a := New()

	if got := a.GetOrSet("time_elapsed", 0.0); got != 0.0 {
		t.Errorf("GetOrSet() on absent key = %v, expected default", got)
	}
	a.Set("time_elapsed", 3.5)
	if got := a.GetOrSet("time_elapsed", 0.0); got != 3.5 {
		t.Errorf("GetOrSet() on present key = %v, expected stored value", got)
	}
}

func TestGetOrInvokeCallsInitOnce(t *testing.T) {
	a := New()
	calls := 0
	init := func() any {
		calls++
		return &core.Camera{FovY: 45}
	}

	first := a.GetOrInvoke("camera_3d", init)
	second := a.GetOrInvoke("camera_3d", init)

	if calls != 1 {
		t.Errorf("init called %d times, expected 1", calls)
	}
	if first != second {
		t.Error("GetOrInvoke should return the same handle on later calls")
	}
}

func TestSetNilDeletes(t *testing.T) {
	a := New()
	a.Set("flag", true)
	a.Set("flag", nil)

	if a.Has("flag") {
		t.Error("Set(nil) should delete the key")
	}
	if a.Len() != 0 {
		t.Errorf("Len() = %d, expected 0", a.Len())
	}
}

func TestGetOrInitReinitializesOnTypeChange(t *testing.T) {
	a := New()
	a.Set("player_heading", "north")

	v := GetOrInit(a, "player_heading", func() *core.Vec3 { return &core.Vec3{Z: 1} })
	if v.Z != 1 {
		t.Errorf("GetOrInit() = %v, expected fresh value", v)
	}
	if got, ok := Lookup[*core.Vec3](a, "player_heading"); !ok || got != v {
		t.Error("GetOrInit() should store the initialized value")
	}
}

func TestChildPersists(t *testing.T) {
	a := New()
	a.Child("ui_button_states").Set("use_mouse_screen_navigation", true)

	v, ok := a.Child("ui_button_states").Get("use_mouse_screen_navigation")
	if !ok || v != true {
		t.Error("Child() should return the same nested arena")
	}
}

func TestAutoReload(t *testing.T) {
	a := New()
	if _, ok := a.AutoReload(); ok {
		t.Error("AutoReload() should be unset on a new arena")
	}

	a.Set(KeyAutoReload, false)
	enabled, ok := a.AutoReload()
	if !ok || enabled {
		t.Errorf("AutoReload() = %v, %v, expected false, true", enabled, ok)
	}

	a.Set(KeyAutoReload, 1.0)
	if _, ok := a.AutoReload(); ok {
		t.Error("AutoReload() should ignore non-boolean values")
	}
}

func TestSetViewportInPlace(t *testing.T) {
	a := NewBootstrap(core.DefaultViewport())
	a.Set("player_position", &core.Vec3{X: 1})
	a.SetViewport(core.Viewport{Width: 100, Height: 30})

	if w, _ := a.Number(KeyScreenWidth); w != 100 {
		t.Errorf("screen_width = %v, expected 100", w)
	}
	if !a.Has("player_position") {
		t.Error("SetViewport should keep other keys")
	}
}
