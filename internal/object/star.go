package object

import (
	"math/rand"

	"github.com/tomz197/spacerunner/internal/physics"
)

// Star field extents and parallax layers.
const (
	StarLayers   = 3
	StarFieldX   = 100.0 // Width of the field, centered on x=0
	StarFieldY   = 50.0  // Height of the field, centered on y=0
	StarFieldZ   = 100.0 // Depth; stars respawn at this z after wrapping
	starDiameter = 0.1
)

// Star is a background point of light. Stars wrap around instead of being
// destroyed.
type Star struct {
	Body
	Layer int // Parallax layer, 0 is the slowest
}

// NewStar creates a star at pos on the given parallax layer.
func NewStar(pos physics.Vec3, layer int) *Star {
	h := starDiameter / 2
	return &Star{
		Body:  Body{Pos: pos, Half: physics.Vec3{X: h, Y: h, Z: h}},
		Layer: layer,
	}
}

func newRandomStar(rng *rand.Rand) *Star {
	pos := physics.Vec3{
		X: (rng.Float64() - 0.5) * StarFieldX,
		Y: (rng.Float64() - 0.5) * StarFieldY,
		Z: rng.Float64() * StarFieldZ,
	}
	return NewStar(pos, rng.Intn(StarLayers))
}

// Recycle moves the star back to the far end of the field at a fresh
// random lateral position.
func (s *Star) Recycle(rng *rand.Rand) {
	s.Pos = physics.Vec3{
		X: (rng.Float64() - 0.5) * StarFieldX,
		Y: (rng.Float64() - 0.5) * StarFieldY,
		Z: StarFieldZ,
	}
}
