package core

import (
	"strings"
	"testing"
)

func TestNewScreen(t *testing.T) {
	s := NewScreen(80, 24)

	if s.Width() != 80 {
		t.Errorf("Width() = %d, expected 80", s.Width())
	}
	if s.Height() != 24 {
		t.Errorf("Height() = %d, expected 24", s.Height())
	}

	// Check that it's initialized with spaces
	for y := 0; y < s.Height(); y++ {
		for x := 0; x < s.Width(); x++ {
			if s.Get(x, y) != ' ' {
				t.Errorf("New screen should be filled with spaces, got %q at (%d, %d)", s.Get(x, y), x, y)
			}
		}
	}
}

func TestScreenSetGet(t *testing.T) {
	s := NewScreen(10, 10)

	s.Set(5, 5, 'X', ColorRed)
	if s.Get(5, 5) != 'X' {
		t.Errorf("Get(5, 5) = %q, expected 'X'", s.Get(5, 5))
	}

	// Out of bounds should be silent
	s.Set(-1, 0, 'A', ColorRed)  // Should not panic
	s.Set(100, 0, 'A', ColorRed) // Should not panic
	s.Set(0, -1, 'A', ColorRed)  // Should not panic
	s.Set(0, 100, 'A', ColorRed) // Should not panic

	// Out of bounds get should return space
	if s.Get(-1, 0) != ' ' {
		t.Error("Out of bounds Get should return space")
	}
	if s.Get(100, 0) != ' ' {
		t.Error("Out of bounds Get should return space")
	}
}

func TestScreenClear(t *testing.T) {
	s := NewScreen(10, 10)

	for y := 0; y < 10; y++ {
		for x := 0; x < 10; x++ {
			s.Set(x, y, 'X', ColorDefault)
		}
	}

	s.Clear(ColorRed)
	s.EndFrame()

	for y := 0; y < 10; y++ {
		for x := 0; x < 10; x++ {
			cell := s.GetCell(x, y)
			if cell.Rune != ' ' || cell.Bg != ColorRed {
				t.Errorf("After Clear, expected red space at (%d, %d), got %+v", x, y, cell)
			}
		}
	}
}

func TestScreenPresent(t *testing.T) {
	s := NewScreen(10, 2)
	s.BeginFrame()
	s.DrawText("draft", 0, 0, 20, ColorWhite)

	// Nothing is visible until the frame ends
	if s.GetCell(0, 0).Rune != ' ' {
		t.Error("Back buffer should not be visible before EndFrame")
	}

	s.EndFrame()
	if s.GetCell(0, 0).Rune != 'd' {
		t.Errorf("After EndFrame, expected 'd' at (0, 0), got %q", s.GetCell(0, 0).Rune)
	}
	if s.Frames() != 1 {
		t.Errorf("Frames() = %d, expected 1", s.Frames())
	}

	// An abandoned frame leaves the presented one untouched
	s.BeginFrame()
	s.Clear(ColorBlue)
	if s.GetCell(0, 0).Rune != 'd' {
		t.Error("Abandoned frame should not replace the presented frame")
	}
}

func TestScreenDrawText(t *testing.T) {
	s := NewScreen(20, 5)
	s.DrawText("Hello", 2, 1, 20, ColorWhite)

	expected := "Hello"
	for i, ch := range expected {
		if s.Get(2+i, 1) != ch {
			t.Errorf("DrawText: expected %q at (%d, 1), got %q", ch, 2+i, s.Get(2+i, 1))
		}
	}

	// Text should be clipped at boundaries
	s.DrawText("Hello", 18, 0, 20, ColorWhite) // Only "He" should fit
	if s.Get(18, 0) != 'H' || s.Get(19, 0) != 'e' {
		t.Error("Text should be clipped at right boundary")
	}
}

func TestScreenDrawTextCentered(t *testing.T) {
	s := NewScreen(20, 5)
	text := "Hi"
	s.DrawTextCentered(2, text, ColorWhite)

	// "Hi" is 2 chars, centered in 20 chars should start at position 9
	x := (20 - 2) / 2
	if s.Get(x, 2) != 'H' || s.Get(x+1, 2) != 'i' {
		t.Errorf("DrawTextCentered failed, text not at expected position")
	}
}

func TestScreenFillRect(t *testing.T) {
	s := NewScreen(10, 10)
	s.FillRect(NewRect(2, 2, 3, 3), ColorGreen)
	s.EndFrame()

	// Check filled area
	for y := 2; y < 5; y++ {
		for x := 2; x < 5; x++ {
			if s.GetCell(x, y).Bg != ColorGreen {
				t.Errorf("FillRect: expected green at (%d, %d), got %v", x, y, s.GetCell(x, y).Bg)
			}
		}
	}

	// Check outside is untouched
	if s.GetCell(1, 1).Bg != ColorDefault {
		t.Error("FillRect should not affect outside area")
	}
	if s.GetCell(5, 5).Bg != ColorDefault {
		t.Error("FillRect should not affect outside area")
	}

	// Rects hanging off the screen are clipped
	s.FillRect(NewRect(-5, -5, 100, 100), ColorRed)
}

func TestScreenDrawBox(t *testing.T) {
	s := NewScreen(10, 10)
	r := NewRect(1, 1, 5, 4)
	s.DrawBox(r, ColorWhite)

	// Check corners
	if s.Get(1, 1) != '┌' {
		t.Errorf("Top-left corner should be '┌', got %q", s.Get(1, 1))
	}
	if s.Get(5, 1) != '┐' {
		t.Errorf("Top-right corner should be '┐', got %q", s.Get(5, 1))
	}
	if s.Get(1, 4) != '└' {
		t.Errorf("Bottom-left corner should be '└', got %q", s.Get(1, 4))
	}
	if s.Get(5, 4) != '┘' {
		t.Errorf("Bottom-right corner should be '┘', got %q", s.Get(5, 4))
	}

	// Check horizontal edges
	for x := 2; x < 5; x++ {
		if s.Get(x, 1) != '─' {
			t.Errorf("Top edge should be '─' at x=%d, got %q", x, s.Get(x, 1))
		}
		if s.Get(x, 4) != '─' {
			t.Errorf("Bottom edge should be '─' at x=%d, got %q", x, s.Get(x, 4))
		}
	}

	// Check vertical edges
	for y := 2; y < 4; y++ {
		if s.Get(1, y) != '│' {
			t.Errorf("Left edge should be '│' at y=%d, got %q", y, s.Get(1, y))
		}
		if s.Get(5, y) != '│' {
			t.Errorf("Right edge should be '│' at y=%d, got %q", y, s.Get(5, y))
		}
	}
}

func TestScreenDrawLine(t *testing.T) {
	s := NewScreen(10, 10)
	s.DrawLine(0, 0, 9, 9, '*', ColorWhite)

	for i := 0; i < 10; i++ {
		if s.Get(i, i) != '*' {
			t.Errorf("DrawLine: expected '*' at (%d, %d), got %q", i, i, s.Get(i, i))
		}
	}

	s.DrawLine(8, 2, 2, 2, '-', ColorWhite)
	for x := 2; x <= 8; x++ {
		if s.Get(x, 2) != '-' {
			t.Errorf("DrawLine: expected '-' at (%d, 2), got %q", x, s.Get(x, 2))
		}
	}
}

func TestScreenString(t *testing.T) {
	s := NewScreen(5, 3)
	s.DrawText("AAAAA", 0, 0, 1, ColorWhite)
	s.DrawText("BBBBB", 0, 1, 1, ColorWhite)
	s.DrawText("CCCCC", 0, 2, 1, ColorWhite)
	s.EndFrame()

	result := s.String()
	expected := "AAAAA\nBBBBB\nCCCCC"

	if result != expected {
		t.Errorf("String() = %q, expected %q", result, expected)
	}
}

func TestScreenResize(t *testing.T) {
	s := NewScreen(10, 10)
	s.DrawText("Hello", 0, 0, 1, ColorWhite)
	s.DrawText("World", 0, 5, 1, ColorWhite)

	// Resize smaller - should preserve top-left content
	s.Resize(8, 4)
	if s.Width() != 8 || s.Height() != 4 {
		t.Errorf("After resize, dimensions should be 8x4, got %dx%d", s.Width(), s.Height())
	}

	row0 := s.Row(0)
	if !strings.HasPrefix(row0, "Hello") {
		t.Errorf("Content should be preserved, row 0 = %q", row0)
	}

	// Resize larger - old content should still be there
	s.Resize(15, 8)
	row0 = s.Row(0)
	if !strings.HasPrefix(row0, "Hello") {
		t.Errorf("Content should be preserved after enlarging, row 0 = %q", row0)
	}
	if len(s.String()) != 15*8+7 {
		t.Errorf("Presented buffer should follow resize, got %d bytes", len(s.String()))
	}
}

func TestScreenRow(t *testing.T) {
	s := NewScreen(10, 5)
	s.DrawText("Test", 0, 2, 1, ColorWhite)

	row := s.Row(2)
	if !strings.HasPrefix(row, "Test") {
		t.Errorf("Row(2) should start with 'Test', got %q", row)
	}
	if len(row) != 10 {
		t.Errorf("Row length should be 10, got %d", len(row))
	}

	// Out of bounds row
	outOfBounds := s.Row(-1)
	if outOfBounds != "          " {
		t.Errorf("Out of bounds row should be spaces, got %q", outOfBounds)
	}
}
