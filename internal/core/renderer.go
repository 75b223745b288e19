package core

// Renderer is the drawing capability exposed to the host loop and to scripts.
// It follows the immediate-mode shape of a windowed graphics library: a frame
// is bracketed by BeginFrame and EndFrame, and 3D primitives are only drawn
// between BeginMode3D and EndMode3D.
type Renderer interface {
	Width() int
	Height() int

	BeginFrame()
	Clear(bg Color)
	DrawText(text string, x, y, size int, fg Color)
	FillRect(r Rect, c Color)
	DrawBox(r Rect, fg Color)
	EndFrame()

	BeginMode3D(cam Camera)
	EndMode3D()
	DrawLine3D(a, b Vec3, c Color)
	DrawTriangle3D(a, b, c Vec3, col Color)
	DrawCube(center Vec3, width, height, length float64, c Color)
	DrawPlane(center Vec3, size Vec2, c Color)
	DrawGrid(slices int, spacing float64)
}

var _ Renderer = (*Screen)(nil)
