package object

import (
	"math"
	"math/rand"

	"github.com/tomz197/spacerunner/internal/physics"
)

// Asteroid size range (diameter of the collision proxy).
const (
	AsteroidMinSize = 0.6
	AsteroidMaxSize = 1.4
)

// Asteroid is a rock drifting toward the ship.
type Asteroid struct {
	Body
	Size float64      // Diameter of the proxy box
	Spin physics.Vec3 // Added to Rot every tick
}

// NewAsteroid creates an asteroid of the given diameter at pos.
func NewAsteroid(pos physics.Vec3, size float64, spin physics.Vec3) *Asteroid {
	half := size / 2
	return &Asteroid{
		Body: Body{
			Pos:  pos,
			Half: physics.Vec3{X: half, Y: half, Z: half},
		},
		Size: size,
		Spin: spin,
	}
}

// newRandomAsteroid rolls the size, spawn point and spin of an asteroid.
func newRandomAsteroid(rng *rand.Rand) *Asteroid {
	size := rng.Float64()*(AsteroidMaxSize-AsteroidMinSize) + AsteroidMinSize
	spin := physics.Vec3{
		X: (rng.Float64() - 0.5) * 0.05,
		Y: (rng.Float64() - 0.5) * 0.05,
	}
	a := NewAsteroid(spawnPoint(rng), size, spin)
	a.Rot = physics.Vec3{
		X: rng.Float64() * math.Pi,
		Y: rng.Float64() * math.Pi,
	}
	return a
}

// Rotate advances the asteroid by its own angular increment.
func (a *Asteroid) Rotate() {
	a.Rot = a.Rot.Add(a.Spin)
}
