package host

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/flightsim/internal/core"
)

// Overlay layout in cells.
const (
	overlayMarginX = 2
	overlayMarginY = 1
)

// AlertBackground is the frame color while the loop is suspended.
const AlertBackground = core.ColorRed

// DrawAlert presents msg as a full frame on the alert background, wrapped
// to the renderer width.
func DrawAlert(r core.Renderer, msg string) {
	r.BeginFrame()
	r.Clear(AlertBackground)
	for i, line := range WrapText(msg, r.Width()-2*overlayMarginX) {
		y := overlayMarginY + i
		if y >= r.Height() {
			break
		}
		r.DrawText(line, overlayMarginX, y, 20, core.ColorBrightWhite)
	}
	r.EndFrame()
}

// WrapText word-wraps text to width columns and returns the lines without
// trailing padding.
func WrapText(text string, width int) []string {
	if width < 1 {
		width = 1
	}
	wrapped := lipgloss.NewStyle().Width(width).Render(text)
	lines := strings.Split(wrapped, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " ")
	}
	return lines
}
