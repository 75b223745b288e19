package core

// Viewport is the drawable area in terminal cells.
// It replaces the screen-size globals of a windowed program: constructed once
// at startup, updated on resize, and passed down explicitly.
type Viewport struct {
	Width  int
	Height int
}

// DefaultViewport returns the size used when the terminal size is unknown.
func DefaultViewport() Viewport {
	return Viewport{Width: 80, Height: 24}
}

// Clock tracks frame timing in seconds.
type Clock struct {
	Delta   float64 // Duration of the last frame
	Elapsed float64 // Total time since the clock started
	Frames  int     // Number of frames advanced
}

// Advance records the passing of one frame of the given duration.
// Negative durations are treated as zero.
func (c *Clock) Advance(dt float64) {
	if dt < 0 {
		dt = 0
	}
	c.Delta = dt
	c.Elapsed += dt
	c.Frames++
}
