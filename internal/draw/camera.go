package draw

import "github.com/tomz197/spacerunner/internal/physics"

// Camera is a pinhole camera looking down +Z, the direction the field
// scrolls from.
type Camera struct {
	Pos    physics.Vec3
	Focal  float64 // Logical units per world unit at distance 1
	Near   float64 // Points closer than this are not drawn
	Width  float64 // Logical viewport width
	Height float64 // Logical viewport height
}

// Project maps a world point to the viewport. scale is the number of
// logical units one world unit covers at that depth. ok is false for points
// behind the near plane.
func (c Camera) Project(p physics.Vec3) (pt Point, scale float64, ok bool) {
	dz := p.Z - c.Pos.Z
	if dz < c.Near {
		return Point{}, 0, false
	}
	scale = c.Focal / dz
	pt = Point{
		X: c.Width/2 + (p.X-c.Pos.X)*scale,
		Y: c.Height/2 - (p.Y-c.Pos.Y)*scale,
	}
	return pt, scale, true
}

// Visible reports whether pt lies inside the viewport.
func (c Camera) Visible(pt Point) bool {
	return pt.X >= 0 && pt.X <= c.Width && pt.Y >= 0 && pt.Y <= c.Height
}
