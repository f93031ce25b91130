package object

import "github.com/tomz197/spacerunner/internal/physics"

// TrailLength is the number of cosmetic segments following the ship.
const TrailLength = 8

// Ship spawn point and collision proxy (width x height x depth = 1.0 x 0.6 x 1.6).
var (
	ShipStart = physics.Vec3{Y: 2}
	shipHalf  = physics.Vec3{X: 0.5, Y: 0.3, Z: 0.8}
)

// TrailSegment is one glowing dot of the engine trail.
type TrailSegment struct {
	Body
	Scale float64
}

// Ship is the player-controlled craft.
type Ship struct {
	Body
	Trail [TrailLength]TrailSegment
	Tilt  float64 // Roll in radians, eased toward the steering direction
}

// NewShip creates a ship at the start position with its trail attached.
func NewShip() *Ship {
	s := &Ship{
		Body: Body{Pos: ShipStart, Half: shipHalf},
	}
	for i := range s.Trail {
		s.Trail[i].Half = physics.Vec3{X: 0.05, Y: 0.05, Z: 0.05}
		s.Trail[i].Scale = 1 - float64(i)*0.1
	}
	s.SyncTrail()
	return s
}

// SyncTrail places every trail segment at its fixed slot behind the ship.
func (s *Ship) SyncTrail() {
	for i := range s.Trail {
		s.Trail[i].Pos = s.Pos.Add(physics.Vec3{
			Y: -0.1,
			Z: -0.8 - float64(i)*0.3,
		})
	}
}

// Dispose releases the trail and the ship itself.
func (s *Ship) Dispose() {
	for i := range s.Trail {
		s.Trail[i].Dispose()
	}
	s.Body.Dispose()
}
