package game

import (
	"math/rand"

	"github.com/tomz197/spacerunner/internal/physics"
)

// Ship roll easing.
const (
	maxTilt   = 0.3
	tiltStep  = 0.05
	tiltDecay = 0.9
)

// scroll is the per-tick z step of asteroids, collectibles and power-ups.
func scroll(speed float64) float64 {
	return -(speed + speed*0.3)
}

// moveShip steers the ship, eases its roll, moves the trail and counts down
// invulnerability.
func moveShip(s *State, c Controls) {
	ship := s.Ship
	if ship == nil {
		return
	}
	cfg := s.cfg

	switch {
	case c.Left && !c.Right:
		ship.Pos.X -= cfg.ShipMoveSpeed
		ship.Tilt = min(ship.Tilt+tiltStep, maxTilt)
	case c.Right && !c.Left:
		ship.Pos.X += cfg.ShipMoveSpeed
		ship.Tilt = max(ship.Tilt-tiltStep, -maxTilt)
	default:
		ship.Tilt *= tiltDecay
	}
	if c.Up {
		ship.Pos.Y += cfg.ShipMoveSpeed
	}
	if c.Down {
		ship.Pos.Y -= cfg.ShipMoveSpeed
	}
	ship.Pos.X = physics.Clamp(ship.Pos.X, -cfg.ShipMaxX, cfg.ShipMaxX)
	ship.Pos.Y = physics.Clamp(ship.Pos.Y, cfg.ShipMinY, cfg.ShipMaxY)
	ship.Rot.Z = ship.Tilt
	ship.SyncTrail()

	if s.Run.Invulnerable {
		s.Run.InvulnerableTimer++
		if s.Run.InvulnerableTimer > cfg.InvulnerableDuration {
			s.Run.Invulnerable = false
			s.Run.InvulnerableTimer = 0
		}
	}
}

// updateStars drifts the background. Stars that pass the trailing boundary
// wrap to the far end.
func updateStars(s *State, rng *rand.Rand) {
	for _, st := range s.Stars {
		st.Pos.Z -= s.Run.Speed * float64(st.Layer+1) * 0.5
		if st.Pos.Z < TrailingBoundary {
			st.Recycle(rng)
		}
	}
}

// updateParticles ages explosion debris and releases dead particles.
func updateParticles(s *State) {
	kept := s.Particles[:0]
	for _, p := range s.Particles {
		if p.Step() {
			kept = append(kept, p)
		} else {
			p.Dispose()
		}
	}
	clear(s.Particles[len(kept):])
	s.Particles = kept
}
