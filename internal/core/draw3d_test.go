package core

import (
	"strings"
	"testing"
)

func lookAtOrigin() Camera {
	return Camera{
		Position: Vec3{0, 0, 10},
		Target:   Vec3{0, 0, 0},
		Up:       Vec3{0, 1, 0},
		FovY:     45,
	}
}

func TestDrawLine3DProjectsThroughCenter(t *testing.T) {
	s := NewScreen(40, 20)
	s.BeginMode3D(lookAtOrigin())
	s.DrawLine3D(Vec3{-1, 0, 0}, Vec3{1, 0, 0}, ColorWhite)
	s.EndMode3D()

	// The world origin sits at the screen center
	if s.Get(20, 10) != '#' {
		t.Errorf("Expected '#' at screen center, got %q", s.Get(20, 10))
	}
	// A horizontal world line stays on one row
	if strings.TrimSpace(s.Row(9)) != "" || strings.TrimSpace(s.Row(11)) != "" {
		t.Error("Horizontal line should not leave its row")
	}
}

func TestDrawLine3DRequiresMode3D(t *testing.T) {
	s := NewScreen(40, 20)
	s.DrawLine3D(Vec3{-1, 0, 0}, Vec3{1, 0, 0}, ColorWhite)

	if s.Get(20, 10) != ' ' {
		t.Error("Lines outside 3D mode should be ignored")
	}
}

func TestDrawLine3DClipsBehindCamera(t *testing.T) {
	s := NewScreen(40, 20)
	s.BeginMode3D(lookAtOrigin())
	s.DrawLine3D(Vec3{-1, 0, 20}, Vec3{1, 0, 20}, ColorWhite)
	s.EndMode3D()

	for y := 0; y < s.Height(); y++ {
		if strings.TrimSpace(s.Row(y)) != "" {
			t.Fatalf("Geometry behind the camera should not be drawn, row %d = %q", y, s.Row(y))
		}
	}
}

func TestDrawLine3DDegenerateCamera(t *testing.T) {
	s := NewScreen(40, 20)
	cam := lookAtOrigin()
	cam.Target = cam.Position
	s.BeginMode3D(cam)
	s.DrawLine3D(Vec3{-1, 0, 0}, Vec3{1, 0, 0}, ColorWhite) // Should not panic
	s.EndMode3D()
}

func TestDrawCubeVisible(t *testing.T) {
	s := NewScreen(40, 20)
	s.BeginMode3D(lookAtOrigin())
	s.DrawCube(Vec3{0, 0, 0}, 2, 2, 2, ColorRed)
	s.EndMode3D()

	drawn := 0
	for y := 0; y < s.Height(); y++ {
		drawn += len(strings.TrimSpace(s.Row(y)))
	}
	if drawn == 0 {
		t.Error("Cube in front of the camera should be drawn")
	}
}

func TestClipSegment(t *testing.T) {
	tests := []struct {
		name           string
		x0, y0, x1, y1 float64
		ok             bool
	}{
		{"inside", 1, 1, 5, 5, true},
		{"crossing", -100, 5, 100, 5, true},
		{"crossing diagonal", -37.3, -91.1, 113.7, 77.9, true},
		{"crossing vertical", 3, 250, 3, -250, true},
		{"outside", -10, -10, -5, -5, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			x0, y0, x1, y1, ok := clipSegment(tc.x0, tc.y0, tc.x1, tc.y1, 0, 0, 10, 10)
			if ok != tc.ok {
				t.Fatalf("clipSegment() ok = %v, expected %v", ok, tc.ok)
			}
			if !ok {
				return
			}
			for _, v := range []float64{x0, y0, x1, y1} {
				if v < 0 || v > 10 {
					t.Errorf("clipSegment() = (%v, %v)-(%v, %v), expected within [0, 10]", x0, y0, x1, y1)
				}
			}
		})
	}
}
