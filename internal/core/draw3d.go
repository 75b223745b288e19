package core

import "math"

// Camera is a perspective camera in world space.
type Camera struct {
	Position Vec3
	Target   Vec3
	Up       Vec3
	FovY     float64 // Vertical field of view in degrees
}

// DefaultCamera returns the camera scenes start with.
func DefaultCamera() Camera {
	return Camera{
		Position: Vec3{0, 0, 10},
		Target:   Vec3{0, 1, 0},
		Up:       Vec3{0, 1, 0},
		FovY:     45,
	}
}

const (
	// cellAspect is the width/height ratio of a terminal cell.
	cellAspect = 0.5
	// nearPlane is the closest view depth that is still drawn.
	nearPlane = 0.05
)

// viewPoint is a point in camera space; Z is depth along the view direction.
type viewPoint struct {
	X, Y, Z float64
}

// toView transforms a world position into camera space.
// ok is false when the camera is degenerate (target equals position, or up is
// parallel to the view direction).
func (c Camera) toView(p Vec3) (viewPoint, bool) {
	forward := c.Target.Sub(c.Position).Normalize()
	right := forward.Cross(c.Up).Normalize()
	if forward.Length() == 0 || right.Length() == 0 {
		return viewPoint{}, false
	}
	up := right.Cross(forward)
	d := p.Sub(c.Position)
	return viewPoint{X: d.Dot(right), Y: d.Dot(up), Z: d.Dot(forward)}, true
}

// project maps a camera-space point with Z >= nearPlane to screen cells.
func (c Camera) project(v viewPoint, width, height int) (float64, float64) {
	fov := c.FovY
	if fov <= 0 || fov >= 180 {
		fov = 45
	}
	f := 1 / math.Tan(fov*math.Pi/360)
	aspect := float64(width) * cellAspect / float64(height)
	sx := (v.X*f/aspect/v.Z + 1) * 0.5 * float64(width)
	sy := (1 - v.Y*f/v.Z) * 0.5 * float64(height)
	return sx, sy
}

// BeginMode3D makes cam the active camera for 3D primitives.
func (s *Screen) BeginMode3D(cam Camera) {
	s.camera = &cam
}

// EndMode3D leaves 3D mode.
func (s *Screen) EndMode3D() {
	s.camera = nil
}

// DrawLine3D draws a world-space segment as seen by the active camera.
// Outside 3D mode the call is ignored.
func (s *Screen) DrawLine3D(a, b Vec3, c Color) {
	if s.camera == nil || s.width == 0 || s.height == 0 {
		return
	}
	va, okA := s.camera.toView(a)
	vb, okB := s.camera.toView(b)
	if !okA || !okB {
		return
	}

	// Clip against the near plane
	if va.Z < nearPlane && vb.Z < nearPlane {
		return
	}
	if va.Z < nearPlane {
		va = clipNear(vb, va)
	} else if vb.Z < nearPlane {
		vb = clipNear(va, vb)
	}

	x0, y0 := s.camera.project(va, s.width, s.height)
	x1, y1 := s.camera.project(vb, s.width, s.height)
	margin := 1.0
	x0, y0, x1, y1, ok := clipSegment(x0, y0, x1, y1, -margin, -margin, float64(s.width)+margin, float64(s.height)+margin)
	if !ok {
		return
	}
	s.DrawLine(int(math.Floor(x0)), int(math.Floor(y0)), int(math.Floor(x1)), int(math.Floor(y1)), depthRune((va.Z+vb.Z)/2), c)
}

// clipNear moves the outside point along the segment onto the near plane.
func clipNear(inside, outside viewPoint) viewPoint {
	t := (nearPlane - inside.Z) / (outside.Z - inside.Z)
	return viewPoint{
		X: inside.X + (outside.X-inside.X)*t,
		Y: inside.Y + (outside.Y-inside.Y)*t,
		Z: nearPlane,
	}
}

// clipSegment clips a 2D segment to a rectangle (Liang-Barsky).
func clipSegment(x0, y0, x1, y1, minX, minY, maxX, maxY float64) (float64, float64, float64, float64, bool) {
	dx, dy := x1-x0, y1-y0
	t0, t1 := 0.0, 1.0
	edges := [4][2]float64{
		{-dx, x0 - minX},
		{dx, maxX - x0},
		{-dy, y0 - minY},
		{dy, maxY - y0},
	}
	for _, e := range edges {
		p, q := e[0], e[1]
		if p == 0 {
			if q < 0 {
				return 0, 0, 0, 0, false
			}
			continue
		}
		r := q / p
		if p < 0 {
			if r > t1 {
				return 0, 0, 0, 0, false
			}
			if r > t0 {
				t0 = r
			}
		} else {
			if r < t0 {
				return 0, 0, 0, 0, false
			}
			if r < t1 {
				t1 = r
			}
		}
	}
	// Rounding can leave an endpoint just past the rectangle
	cx := func(v float64) float64 { return min(max(v, minX), maxX) }
	cy := func(v float64) float64 { return min(max(v, minY), maxY) }
	return cx(x0 + t0*dx), cy(y0 + t0*dy), cx(x0 + t1*dx), cy(y0 + t1*dy), true
}

// depthRune picks a denser glyph for nearer geometry.
func depthRune(depth float64) rune {
	switch {
	case depth < 15:
		return '#'
	case depth < 40:
		return '+'
	default:
		return '.'
	}
}

// DrawTriangle3D draws the outline of a triangle.
func (s *Screen) DrawTriangle3D(a, b, c Vec3, col Color) {
	s.DrawLine3D(a, b, col)
	s.DrawLine3D(b, c, col)
	s.DrawLine3D(c, a, col)
}

// DrawCube draws the wireframe of an axis-aligned box centered at center.
func (s *Screen) DrawCube(center Vec3, width, height, length float64, c Color) {
	hw, hh, hl := width/2, height/2, length/2
	var corners [8]Vec3
	for i := range corners {
		dx, dy, dz := -hw, -hh, -hl
		if i&1 != 0 {
			dx = hw
		}
		if i&2 != 0 {
			dy = hh
		}
		if i&4 != 0 {
			dz = hl
		}
		corners[i] = center.Add(Vec3{dx, dy, dz})
	}
	// Corners differing in exactly one bit share an edge
	for i := range corners {
		for _, bit := range []int{1, 2, 4} {
			if i&bit == 0 {
				s.DrawLine3D(corners[i], corners[i|bit], c)
			}
		}
	}
}

// DrawPlane draws a subdivided XZ plane centered at center.
func (s *Screen) DrawPlane(center Vec3, size Vec2, c Color) {
	const divisions = 10
	hx, hz := size.X/2, size.Y/2
	for i := 0; i <= divisions; i++ {
		t := float64(i) / divisions
		x := center.X - hx + size.X*t
		z := center.Z - hz + size.Y*t
		s.DrawLine3D(Vec3{x, center.Y, center.Z - hz}, Vec3{x, center.Y, center.Z + hz}, c)
		s.DrawLine3D(Vec3{center.X - hx, center.Y, z}, Vec3{center.X + hx, center.Y, z}, c)
	}
}

// DrawGrid draws a grid of slices x slices squares on the XZ plane at the origin.
func (s *Screen) DrawGrid(slices int, spacing float64) {
	if slices <= 0 {
		return
	}
	half := float64(slices) * spacing / 2
	for i := 0; i <= slices; i++ {
		p := -half + float64(i)*spacing
		s.DrawLine3D(Vec3{p, 0, -half}, Vec3{p, 0, half}, ColorGray)
		s.DrawLine3D(Vec3{-half, 0, p}, Vec3{half, 0, p}, ColorGray)
	}
}
