// Package physics provides 3D vectors and box intersection utilities.
package physics

import "math"

// Vec3 is a point or direction in world space.
// Z is the scroll axis: entities approach the ship by decreasing Z.
type Vec3 struct {
	X, Y, Z float64
}

// Add returns v + o.
func (v Vec3) Add(o Vec3) Vec3 {
	return Vec3{X: v.X + o.X, Y: v.Y + o.Y, Z: v.Z + o.Z}
}

// Scale returns v multiplied by s.
func (v Vec3) Scale(s float64) Vec3 {
	return Vec3{X: v.X * s, Y: v.Y * s, Z: v.Z * s}
}

// Box is an axis-aligned bounding box described by its center and half extents.
type Box struct {
	Center Vec3
	Half   Vec3
}

// BoxesOverlap checks if two boxes intersect. Touching faces count as overlap.
func BoxesOverlap(a, b Box) bool {
	return math.Abs(a.Center.X-b.Center.X) <= a.Half.X+b.Half.X &&
		math.Abs(a.Center.Y-b.Center.Y) <= a.Half.Y+b.Half.Y &&
		math.Abs(a.Center.Z-b.Center.Z) <= a.Half.Z+b.Half.Z
}

// Clamp limits v to the range [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
