package tui

import (
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/flightsim/internal/core"
)

// ansiCodes maps core.Color to ANSI 256-color codes.
var ansiCodes = map[core.Color]string{
	core.ColorRed:           "1",
	core.ColorGreen:         "2",
	core.ColorYellow:        "3",
	core.ColorBlue:          "4",
	core.ColorMagenta:       "5",
	core.ColorCyan:          "6",
	core.ColorWhite:         "7",
	core.ColorBrightRed:     "9",
	core.ColorBrightGreen:   "10",
	core.ColorBrightYellow:  "11",
	core.ColorBrightBlue:    "12",
	core.ColorBrightMagenta: "13",
	core.ColorBrightCyan:    "14",
	core.ColorBrightWhite:   "15",
	core.ColorOrange:        "208",
	core.ColorGray:          "245",
	core.ColorBlack:         "0",
	core.ColorBrown:         "94",
	core.ColorPurple:        "93",
	core.ColorSky:           "117",
	core.ColorDarkGray:      "238",
}

// cellColors is the styling key of a cell.
type cellColors struct {
	fg, bg core.Color
}

// styles caches one lipgloss style per foreground/background pair.
// SSH sessions render concurrently.
var (
	styles   = make(map[cellColors]lipgloss.Style)
	stylesMu sync.Mutex
)

func styleFor(c cellColors) lipgloss.Style {
	stylesMu.Lock()
	defer stylesMu.Unlock()

	if style, ok := styles[c]; ok {
		return style
	}
	style := lipgloss.NewStyle()
	if code, ok := ansiCodes[c.fg]; ok {
		style = style.Foreground(lipgloss.Color(code))
	}
	if code, ok := ansiCodes[c.bg]; ok {
		style = style.Background(lipgloss.Color(code))
	}
	styles[c] = style
	return style
}

// RenderScreen converts the presented Screen frame to a styled string.
// Groups adjacent cells with the same colors to minimize ANSI escape sequences.
func RenderScreen(s *core.Screen) string {
	var sb strings.Builder
	// Pre-allocate with extra space for ANSI codes
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	for y, ny := 0, s.Height(); y < ny; y++ {
		if y > 0 {
			sb.WriteRune('\n')
		}

		// Group consecutive cells with the same colors for efficiency
		x := 0
		for x < s.Width() {
			cell := s.GetCell(x, y)
			start := cellColors{fg: cell.Fg, bg: cell.Bg}

			var run strings.Builder
			for x < s.Width() {
				cell = s.GetCell(x, y)
				if (cellColors{fg: cell.Fg, bg: cell.Bg}) != start {
					break
				}
				run.WriteRune(cell.Rune)
				x++
			}

			sb.WriteString(styleFor(start).Render(run.String()))
		}
	}
	return sb.String()
}
