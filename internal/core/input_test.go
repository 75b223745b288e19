package core

import (
	"testing"
	"time"
)

func TestInputPressedIsPerFrame(t *testing.T) {
	in := NewInput(100 * time.Millisecond)
	start := time.Unix(0, 0)

	in.PressKey("f5", start)
	in.Sync(start)
	if !in.IsKeyPressed("f5") {
		t.Error("Key should be pressed on the frame it arrived")
	}
	if !in.AnyPressed("f4", "f5") {
		t.Error("AnyPressed should match any listed key")
	}

	in.EndFrame()
	in.Sync(start.Add(16 * time.Millisecond))
	if in.IsKeyPressed("f5") {
		t.Error("Pressed state should clear after EndFrame")
	}
}

func TestInputHoldAndRelease(t *testing.T) {
	in := NewInput(100 * time.Millisecond)
	start := time.Unix(0, 0)

	in.PressKey("w", start)
	in.Sync(start)
	in.EndFrame()

	in.Sync(start.Add(50 * time.Millisecond))
	if !in.IsKeyDown("w") {
		t.Error("Key should be held within the hold window")
	}
	if in.IsKeyReleased("w") {
		t.Error("Key should not be released while held")
	}
	in.EndFrame()

	in.Sync(start.Add(200 * time.Millisecond))
	if in.IsKeyDown("w") {
		t.Error("Key should not be held after the hold window")
	}
	if !in.IsKeyReleased("w") {
		t.Error("Key should be released on the frame its hold expired")
	}
	in.EndFrame()

	in.Sync(start.Add(216 * time.Millisecond))
	if in.IsKeyReleased("w") {
		t.Error("Release should only be reported once")
	}
}

func TestNormalizeKey(t *testing.T) {
	tests := []struct {
		in, expected string
	}{
		{" ", "space"},
		{"F1", "f1"},
		{"ctrl+c", "ctrl+c"},
	}

	for _, tc := range tests {
		if got := NormalizeKey(tc.in); got != tc.expected {
			t.Errorf("NormalizeKey(%q) = %q, expected %q", tc.in, got, tc.expected)
		}
	}
}

func TestInputMouse(t *testing.T) {
	in := NewInput(0)
	in.MoveMouse(12, 7)
	in.PressButton(MouseLeft)

	if in.MousePosition() != (Vec2{12, 7}) {
		t.Errorf("MousePosition() = %v, expected {12 7}", in.MousePosition())
	}
	if !in.IsMouseButtonPressed(MouseLeft) || !in.IsMouseButtonDown(MouseLeft) {
		t.Error("Left button should be pressed and down")
	}

	in.EndFrame()
	if in.IsMouseButtonPressed(MouseLeft) {
		t.Error("Click should only last one frame")
	}
	if !in.IsMouseButtonDown(MouseLeft) {
		t.Error("Button should stay down until released")
	}

	in.ReleaseButton(MouseLeft)
	if in.IsMouseButtonDown(MouseLeft) {
		t.Error("Button should be up after release")
	}
}

func TestClockAdvance(t *testing.T) {
	var c Clock
	c.Advance(0.5)
	c.Advance(-1)
	c.Advance(0.25)

	if c.Elapsed != 0.75 {
		t.Errorf("Elapsed = %v, expected 0.75", c.Elapsed)
	}
	if c.Delta != 0.25 || c.Frames != 3 {
		t.Errorf("Delta = %v, Frames = %d, expected 0.25 and 3", c.Delta, c.Frames)
	}
}
