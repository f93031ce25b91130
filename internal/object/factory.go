package object

import (
	"math/rand"

	"github.com/tomz197/spacerunner/internal/physics"
)

// Spawn region for forward-scrolling entities.
const (
	SpawnZ     = 50.0
	SpawnWidth = 10.0 // x in [-5, 5)
	SpawnMinY  = 1.0
	SpawnMaxY  = 7.0
)

// spawnPoint picks a random point on the far spawn plane.
func spawnPoint(rng *rand.Rand) physics.Vec3 {
	return physics.Vec3{
		X: (rng.Float64() - 0.5) * SpawnWidth,
		Y: rng.Float64()*(SpawnMaxY-SpawnMinY) + SpawnMinY,
		Z: SpawnZ,
	}
}

// Factory creates entities with randomized placement. It is the default
// entity factory used by the engine; hosts that render entities attach
// their resources through a VisualFunc.
type Factory struct {
	rng     *rand.Rand
	visuals VisualFunc
}

// FactoryOption configures a Factory.
type FactoryOption func(*Factory)

// WithVisuals attaches a render resource to every created entity.
func WithVisuals(fn VisualFunc) FactoryOption {
	return func(f *Factory) {
		f.visuals = fn
	}
}

// NewFactory creates a factory drawing randomness from rng.
func NewFactory(rng *rand.Rand, opts ...FactoryOption) *Factory {
	f := &Factory{rng: rng}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

func (f *Factory) attach(class Class, b *Body) {
	if f.visuals != nil {
		b.Visual = f.visuals(class, b)
	}
}

// NewAsteroid creates an asteroid on the spawn plane.
func (f *Factory) NewAsteroid() *Asteroid {
	a := newRandomAsteroid(f.rng)
	f.attach(ClassAsteroid, &a.Body)
	return a
}

// NewCollectible creates a collectible gem on the spawn plane.
func (f *Factory) NewCollectible() *Collectible {
	c := &Collectible{Body: Body{
		Pos:  spawnPoint(f.rng),
		Half: physics.Vec3{X: 0.3, Y: 0.3, Z: 0.3},
	}}
	f.attach(ClassCollectible, &c.Body)
	return c
}

// NewPowerUp creates a power-up ring of the given kind on the spawn plane.
// The ring lies flat, so its proxy is wide on x/z and thin on y.
func (f *Factory) NewPowerUp(kind PowerUpKind) *PowerUp {
	p := &PowerUp{
		Body: Body{
			Pos:  spawnPoint(f.rng),
			Half: physics.Vec3{X: 0.5, Y: 0.1, Z: 0.5},
		},
		Kind: kind,
	}
	f.attach(ClassPowerUp, &p.Body)
	return p
}

// NewProjectile creates a projectile in front of origin.
func (f *Factory) NewProjectile(origin physics.Vec3, lateralOffset float64) *Projectile {
	p := NewProjectile(origin, lateralOffset)
	f.attach(ClassProjectile, &p.Body)
	return p
}

// NewExplosion creates a particle burst at the given position.
func (f *Factory) NewExplosion(at physics.Vec3) []*Particle {
	particles := newExplosion(f.rng, at)
	for _, p := range particles {
		f.attach(ClassParticle, &p.Body)
	}
	return particles
}

// NewStar creates a background star anywhere in the field.
func (f *Factory) NewStar() *Star {
	s := newRandomStar(f.rng)
	f.attach(ClassStar, &s.Body)
	return s
}

// NewShip creates the player ship and its trail.
func (f *Factory) NewShip() *Ship {
	s := NewShip()
	f.attach(ClassShip, &s.Body)
	for i := range s.Trail {
		f.attach(ClassTrail, &s.Trail[i].Body)
	}
	return s
}
