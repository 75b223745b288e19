package tui

import (
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/flightsim/internal/config"
	"github.com/vovakirdan/flightsim/internal/core"
)

// KeyMap defines the host key bindings. Every other key is forwarded to the
// logic module through core.Input.
type KeyMap struct {
	ForceReload key.Binding
	Reset       key.Binding
	Help        key.Binding
	Quit        key.Binding
}

// ShortHelp returns keybindings to show in the mini help view.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.ForceReload, k.Reset, k.Help, k.Quit}
}

// FullHelp returns keybindings for the expanded help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.ForceReload, k.Reset},
		{k.Help, k.Quit},
	}
}

// NewKeyMap builds the bindings from configuration.
func NewKeyMap(cfg config.KeysConfig) KeyMap {
	return KeyMap{
		ForceReload: binding(cfg.ForceReload, "reload now"),
		Reset:       binding(cfg.Reset, "reset state"),
		Help:        binding(cfg.Help, "help"),
		Quit:        binding(cfg.Quit, "quit"),
	}
}

func binding(keys []string, desc string) key.Binding {
	return key.NewBinding(
		key.WithKeys(keys...),
		key.WithHelp(strings.Join(keys, "/"), desc),
	)
}

// KeyMapper translates Bubble Tea messages into sandbox input.
type KeyMapper struct {
	keys KeyMap
}

// NewKeyMapper creates a mapper for the given bindings.
func NewKeyMapper(keys KeyMap) *KeyMapper {
	return &KeyMapper{keys: keys}
}

// Action is a host-level action derived from a key.
type Action int

const (
	ActionNone Action = iota
	ActionForceReload
	ActionReset
	ActionHelp
	ActionQuit
)

// MapKey translates a key message to a host action. Keys without a host
// binding return ActionNone.
func (km *KeyMapper) MapKey(msg tea.KeyMsg) Action {
	switch {
	case key.Matches(msg, km.keys.Quit):
		return ActionQuit
	case key.Matches(msg, km.keys.ForceReload):
		return ActionForceReload
	case key.Matches(msg, km.keys.Reset):
		return ActionReset
	case key.Matches(msg, km.keys.Help):
		return ActionHelp
	}
	return ActionNone
}

// MapMouse records a mouse message into in. Coordinates are cells.
func (km *KeyMapper) MapMouse(msg tea.MouseMsg, in *core.Input) {
	in.MoveMouse(msg.X, msg.Y)

	button, ok := mouseButton(msg.Button)
	if !ok {
		// Some terminals report releases without the button
		if msg.Action == tea.MouseActionRelease {
			in.ReleaseButton(core.MouseLeft)
			in.ReleaseButton(core.MouseRight)
			in.ReleaseButton(core.MouseMiddle)
		}
		return
	}
	switch msg.Action {
	case tea.MouseActionPress:
		in.PressButton(button)
	case tea.MouseActionRelease:
		in.ReleaseButton(button)
	}
}

// MapKeyToInput forwards a key message to the logic module's input state.
func (km *KeyMapper) MapKeyToInput(msg tea.KeyMsg, in *core.Input, at time.Time) {
	in.PressKey(msg.String(), at)
}

func mouseButton(b tea.MouseButton) (core.MouseButton, bool) {
	switch b {
	case tea.MouseButtonLeft:
		return core.MouseLeft, true
	case tea.MouseButtonRight:
		return core.MouseRight, true
	case tea.MouseButtonMiddle:
		return core.MouseMiddle, true
	default:
		return 0, false
	}
}
