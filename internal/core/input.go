package core

import (
	"strings"
	"time"
)

// MouseButton identifies a mouse button.
type MouseButton int

const (
	MouseLeft MouseButton = iota
	MouseRight
	MouseMiddle
)

// String returns a human-readable name for the button.
func (b MouseButton) String() string {
	switch b {
	case MouseLeft:
		return "Left"
	case MouseRight:
		return "Right"
	case MouseMiddle:
		return "Middle"
	default:
		return "Unknown"
	}
}

// DefaultHoldWindow is how long a key counts as held after its last press.
// Terminals only report presses (and auto-repeat), never releases, so "down"
// is emulated: a key is down while repeats keep arriving within the window and
// is reported released on the first frame after they stop.
const DefaultHoldWindow = 150 * time.Millisecond

// Input is the keyboard and mouse state for one frame.
// The platform feeds events in between frames; Sync is called at the start of
// a frame and EndFrame after it.
type Input struct {
	holdWindow time.Duration
	now        time.Time

	pressed  map[string]bool      // Keys pressed since the last frame
	seen     map[string]time.Time // Last press time of held keys
	released map[string]bool      // Keys whose hold expired this frame

	mouse   Vec2
	down    map[MouseButton]bool
	clicked map[MouseButton]bool
}

// NewInput creates an empty input state.
// A non-positive hold window selects DefaultHoldWindow.
func NewInput(holdWindow time.Duration) *Input {
	if holdWindow <= 0 {
		holdWindow = DefaultHoldWindow
	}
	return &Input{
		holdWindow: holdWindow,
		pressed:    make(map[string]bool),
		seen:       make(map[string]time.Time),
		released:   make(map[string]bool),
		down:       make(map[MouseButton]bool),
		clicked:    make(map[MouseButton]bool),
	}
}

// NormalizeKey maps platform key names to the names scripts use.
func NormalizeKey(key string) string {
	if key == " " {
		return "space"
	}
	return strings.ToLower(key)
}

// PressKey records a key press at the given time.
func (in *Input) PressKey(key string, at time.Time) {
	key = NormalizeKey(key)
	in.pressed[key] = true
	in.seen[key] = at
	delete(in.released, key)
}

// MoveMouse records the pointer position in cells.
func (in *Input) MoveMouse(x, y int) {
	in.mouse = Vec2{X: float64(x), Y: float64(y)}
}

// PressButton records a mouse button going down.
func (in *Input) PressButton(b MouseButton) {
	if !in.down[b] {
		in.clicked[b] = true
	}
	in.down[b] = true
}

// ReleaseButton records a mouse button going up.
func (in *Input) ReleaseButton(b MouseButton) {
	delete(in.down, b)
}

// Sync starts a frame at now, expiring held keys whose repeats stopped.
func (in *Input) Sync(now time.Time) {
	in.now = now
	for key, at := range in.seen {
		if now.Sub(at) > in.holdWindow {
			delete(in.seen, key)
			in.released[key] = true
		}
	}
}

// EndFrame clears the per-frame edges (presses, releases, clicks).
func (in *Input) EndFrame() {
	clear(in.pressed)
	clear(in.released)
	clear(in.clicked)
}

// IsKeyPressed returns true if the key was pressed since the last frame.
func (in *Input) IsKeyPressed(key string) bool {
	return in.pressed[NormalizeKey(key)]
}

// AnyPressed returns true if any of the keys was pressed this frame.
func (in *Input) AnyPressed(keys ...string) bool {
	for _, k := range keys {
		if in.IsKeyPressed(k) {
			return true
		}
	}
	return false
}

// IsKeyDown returns true while the key is held.
func (in *Input) IsKeyDown(key string) bool {
	key = NormalizeKey(key)
	if in.pressed[key] {
		return true
	}
	_, held := in.seen[key]
	return held
}

// IsKeyReleased returns true on the frame a held key was let go.
func (in *Input) IsKeyReleased(key string) bool {
	return in.released[NormalizeKey(key)]
}

// MousePosition returns the pointer position in cells.
func (in *Input) MousePosition() Vec2 {
	return in.mouse
}

// IsMouseButtonDown returns true while the button is held.
func (in *Input) IsMouseButtonDown(b MouseButton) bool {
	return in.down[b]
}

// IsMouseButtonPressed returns true on the frame the button went down.
func (in *Input) IsMouseButtonPressed(b MouseButton) bool {
	return in.clicked[b]
}
