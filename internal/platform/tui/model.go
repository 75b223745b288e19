package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/flightsim/internal/config"
	"github.com/vovakirdan/flightsim/internal/core"
	"github.com/vovakirdan/flightsim/internal/host"
)

// statusRows is the number of terminal rows below the sandbox screen.
const statusRows = 1

var (
	noticeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("0")).
			Background(lipgloss.Color("10"))
	alertStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("15")).
			Background(lipgloss.Color("1"))
	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))
)

// Model is the Bubble Tea model running one sandbox session.
type Model struct {
	sandbox  *Sandbox
	keys     KeyMap
	mapper   *KeyMapper
	help     help.Model
	tickRate int
	fixed    bool // Window size comes from configuration, ignore resizes
	width    int

	lastTick time.Time
	pending  host.Input // Host actions requested since the last frame
	quitting bool
}

// NewModel creates a model for the sandbox. With fixedSize the screen keeps
// its size when the terminal is resized.
func NewModel(sb *Sandbox, cfg config.Config, fixedSize bool) *Model {
	keys := NewKeyMap(cfg.Keys)
	h := help.New()
	h.ShowAll = false

	return &Model{
		sandbox:  sb,
		keys:     keys,
		mapper:   NewKeyMapper(keys),
		help:     h,
		tickRate: cfg.Window.TickRate,
		fixed:    fixedSize,
		width:    sb.Screen.Width(),
	}
}

// Init starts the frame loop.
func (m *Model) Init() tea.Cmd {
	return tickCmd(m.tickRate)
}

// Update handles messages and advances the sandbox on ticks.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		m.mapper.MapMouse(msg, m.sandbox.Input)
		return m, nil

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick(time.Time(msg))
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.mapper.MapKey(msg) {
	case ActionQuit:
		m.quitting = true
		return m, tea.Quit
	case ActionForceReload:
		m.pending.ForceReload = true
	case ActionReset:
		m.pending.Reset = true
	case ActionHelp:
		m.help.ShowAll = !m.help.ShowAll
	default:
		m.mapper.MapKeyToInput(msg, m.sandbox.Input, time.Now())
	}
	return m, nil
}

// handleResize processes window resize events. The arena keeps its state;
// only the bootstrap keys follow the new size.
func (m *Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.width = msg.Width
	m.help.Width = msg.Width
	if m.fixed {
		return m, nil
	}
	m.sandbox.Resize(core.Viewport{
		Width:  msg.Width,
		Height: max(msg.Height-statusRows, 1),
	})
	return m, nil
}

// handleTick runs one sandbox frame.
func (m *Model) handleTick(now time.Time) (tea.Model, tea.Cmd) {
	dt := 0.0
	if !m.lastTick.IsZero() {
		dt = now.Sub(m.lastTick).Seconds()
	}
	m.lastTick = now

	m.sandbox.Frame(now, dt, m.pending)
	m.pending = host.Input{}

	return m, tickCmd(m.tickRate)
}

// View renders the presented frame and the status line.
func (m *Model) View() string {
	if m.quitting {
		return ""
	}
	return RenderScreen(m.sandbox.Screen) + "\n" + m.statusLine()
}

func (m *Model) statusLine() string {
	if n, ok := m.sandbox.Loop.Notice(); ok {
		style := noticeStyle
		if n.Alert {
			style = alertStyle
		}
		return style.MaxWidth(m.width).Render(n.Text)
	}
	if m.help.ShowAll {
		return m.help.View(m.keys)
	}

	auto := "off"
	if m.sandbox.Loop.AutoReload() {
		auto = "on"
	}
	status := m.sandbox.Module() + " | auto reload " + auto + " | "
	return statusStyle.MaxWidth(m.width).Render(status) + m.help.View(m.keys)
}

// Run starts the Bubble Tea program for the sandbox.
func Run(sb *Sandbox, cfg config.Config, fixedSize bool) error {
	model := NewModel(sb, cfg, fixedSize)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),       // Use alternate screen buffer
		tea.WithMouseCellMotion(), // Mouse drives logic input
	)

	_, err := p.Run()
	return err
}
