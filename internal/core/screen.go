package core

import (
	"strings"
)

// Cell is a single character position on the screen.
type Cell struct {
	Rune rune
	Fg   Color
	Bg   Color
}

// blankCell is what Clear writes when no background is given.
var blankCell = Cell{Rune: ' '}

// Screen is a double-buffered 2D cell buffer.
// Drawing goes to the back buffer; EndFrame presents it, copying it to the
// front buffer that the platform displays. A frame that is abandoned halfway
// (for example because a script failed) never reaches the front buffer.
type Screen struct {
	width  int
	height int
	back   [][]Cell
	front  [][]Cell

	camera *Camera // Active camera between BeginMode3D and EndMode3D
	frames int     // Number of presented frames
}

// NewScreen creates a new screen buffer with the given dimensions.
func NewScreen(width, height int) *Screen {
	s := &Screen{
		width:  width,
		height: height,
	}
	s.back = allocate(width, height)
	s.front = allocate(width, height)
	return s
}

// allocate creates blank cell storage.
func allocate(width, height int) [][]Cell {
	cells := make([][]Cell, height)
	for y := range cells {
		cells[y] = make([]Cell, width)
		for x := range cells[y] {
			cells[y][x] = blankCell
		}
	}
	return cells
}

// Width returns the screen width in characters.
func (s *Screen) Width() int {
	return s.width
}

// Height returns the screen height in characters.
func (s *Screen) Height() int {
	return s.height
}

// Frames returns how many frames have been presented.
func (s *Screen) Frames() int {
	return s.frames
}

// Resize changes the screen dimensions, preserving content where possible.
func (s *Screen) Resize(width, height int) {
	if width == s.width && height == s.height {
		return
	}

	s.back = resized(s.back, width, height)
	s.front = resized(s.front, width, height)
	s.width = width
	s.height = height
}

func resized(old [][]Cell, width, height int) [][]Cell {
	cells := allocate(width, height)
	for y, ny := 0, min(len(old), height); y < ny; y++ {
		for x, nx := 0, min(len(old[y]), width); x < nx; x++ {
			cells[y][x] = old[y][x]
		}
	}
	return cells
}

// BeginFrame starts drawing a new frame into the back buffer.
// Content from the previous frame is kept until Clear is called.
func (s *Screen) BeginFrame() {
	s.camera = nil
}

// EndFrame presents the back buffer.
func (s *Screen) EndFrame() {
	for y := range s.back {
		copy(s.front[y], s.back[y])
	}
	s.camera = nil
	s.frames++
}

// Clear fills the back buffer with spaces on the given background.
func (s *Screen) Clear(bg Color) {
	for y := range s.back {
		for x := range s.back[y] {
			s.back[y][x] = Cell{Rune: ' ', Bg: bg}
		}
	}
}

// Set places a rune at the given position, keeping the cell background.
// Out-of-bounds coordinates are silently ignored.
func (s *Screen) Set(x, y int, r rune, fg Color) {
	if x < 0 || x >= s.width || y < 0 || y >= s.height {
		return
	}
	s.back[y][x].Rune = r
	s.back[y][x].Fg = fg
}

// Get returns the rune at the given position of the frame being drawn.
// Returns space for out-of-bounds coordinates.
func (s *Screen) Get(x, y int) rune {
	if x < 0 || x >= s.width || y < 0 || y >= s.height {
		return ' '
	}
	return s.back[y][x].Rune
}

// GetCell returns the presented cell at the given position.
// Returns a blank cell for out-of-bounds coordinates.
func (s *Screen) GetCell(x, y int) Cell {
	if x < 0 || x >= s.width || y < 0 || y >= s.height {
		return blankCell
	}
	return s.front[y][x]
}

// DrawText writes a string horizontally starting at (x, y).
// Terminal cells have a fixed size, so size is accepted for API parity with
// pixel renderers and otherwise ignored. Characters beyond the screen bounds
// are clipped.
func (s *Screen) DrawText(text string, x, y, size int, fg Color) {
	i := 0
	for _, r := range text {
		s.Set(x+i, y, r, fg)
		i++
	}
}

// DrawTextCentered draws text centered horizontally at the given y position.
func (s *Screen) DrawTextCentered(y int, text string, fg Color) {
	x := (s.width - len([]rune(text))) / 2
	s.DrawText(text, x, y, 1, fg)
}

// FillRect paints a rectangular area with a solid background color.
func (s *Screen) FillRect(r Rect, c Color) {
	r = r.Clip(s.width, s.height)
	for y := r.Y; y < r.Bottom(); y++ {
		for x := r.X; x < r.Right(); x++ {
			s.back[y][x] = Cell{Rune: ' ', Bg: c}
		}
	}
}

// DrawBox draws a box outline using box-drawing characters.
func (s *Screen) DrawBox(r Rect, fg Color) {
	// Corners
	s.Set(r.X, r.Y, '┌', fg)
	s.Set(r.Right()-1, r.Y, '┐', fg)
	s.Set(r.X, r.Bottom()-1, '└', fg)
	s.Set(r.Right()-1, r.Bottom()-1, '┘', fg)

	// Horizontal edges
	for x := r.X + 1; x < r.Right()-1; x++ {
		s.Set(x, r.Y, '─', fg)
		s.Set(x, r.Bottom()-1, '─', fg)
	}

	// Vertical edges
	for y := r.Y + 1; y < r.Bottom()-1; y++ {
		s.Set(r.X, y, '│', fg)
		s.Set(r.Right()-1, y, '│', fg)
	}
}

// DrawLine draws a straight line between two cells using Bresenham's algorithm.
func (s *Screen) DrawLine(x0, y0, x1, y1 int, r rune, fg Color) {
	dx := Abs(x1 - x0)
	dy := -Abs(y1 - y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	err := dx + dy
	for {
		s.Set(x0, y0, r, fg)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

// String converts the presented frame to plain text.
// Each row is joined with newlines.
func (s *Screen) String() string {
	var sb strings.Builder
	sb.Grow(s.width*s.height + s.height) // Pre-allocate for efficiency

	for y := 0; y < s.height; y++ {
		if y > 0 {
			sb.WriteRune('\n')
		}
		for x := 0; x < s.width; x++ {
			sb.WriteRune(s.front[y][x].Rune)
		}
	}
	return sb.String()
}

// Row returns the specified row of the frame being drawn as a string.
func (s *Screen) Row(y int) string {
	if y < 0 || y >= s.height {
		return strings.Repeat(" ", s.width)
	}
	var sb strings.Builder
	for _, c := range s.back[y] {
		sb.WriteRune(c.Rune)
	}
	return sb.String()
}
