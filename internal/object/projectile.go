package object

import (
	"math"

	"github.com/tomz197/spacerunner/internal/physics"
)

// ProjectileSpeed is how far a projectile travels along z per tick.
const ProjectileSpeed = 1.0

// ProjectileMuzzle is the z distance in front of the ship where projectiles appear.
const ProjectileMuzzle = 2.0

// Projectile is a bolt fired forward from the ship.
type Projectile struct {
	Body
	Offset float64 // Lateral offset it was fired with
}

// NewProjectile creates a projectile in front of origin, shifted by
// lateralOffset on x. The bolt is a thin cylinder lying along z.
func NewProjectile(origin physics.Vec3, lateralOffset float64) *Projectile {
	pos := origin
	pos.X += lateralOffset
	pos.Z += ProjectileMuzzle
	return &Projectile{
		Body: Body{
			Pos:  pos,
			Rot:  physics.Vec3{X: math.Pi / 2},
			Half: physics.Vec3{X: 0.075, Y: 0.075, Z: 0.75},
		},
		Offset: lateralOffset,
	}
}

// Advance moves the projectile forward by one tick.
func (p *Projectile) Advance() {
	p.Pos.Z += ProjectileSpeed
}
