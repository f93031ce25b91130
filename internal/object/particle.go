package object

import (
	"math/rand"
	"sync"

	"github.com/tomz197/spacerunner/internal/physics"
)

// Explosion tuning.
const (
	ExplosionParticles = 15
	ParticleLife       = 30   // Ticks
	ParticleShrink     = 0.95 // Scale multiplier per tick
	particleMaxSpeed   = 0.15 // Per axis, per tick
)

// particlePool is a sync.Pool for reusing Particle objects to reduce allocations.
var particlePool = sync.Pool{
	New: func() any {
		return &Particle{}
	},
}

// Particle is a short-lived fragment of an explosion.
type Particle struct {
	Body
	Velocity physics.Vec3 // Added to Pos every tick
	Life     int          // Ticks remaining
	Scale    float64      // Cosmetic size multiplier
}

// NewParticle takes a particle from the pool and initializes it.
func NewParticle(pos, velocity physics.Vec3, life int) *Particle {
	p := particlePool.Get().(*Particle)
	*p = Particle{
		Body: Body{
			Pos:  pos,
			Half: physics.Vec3{X: 0.1, Y: 0.1, Z: 0.1},
		},
		Velocity: velocity,
		Life:     life,
		Scale:    1,
	}
	return p
}

// Step moves the particle, ages it by one tick and shrinks it.
// Returns true while the particle is still alive.
func (p *Particle) Step() bool {
	p.Pos = p.Pos.Add(p.Velocity)
	p.Life--
	p.Scale *= ParticleShrink
	return p.Life > 0
}

// Dispose releases the visual and returns the particle to the pool.
// The particle must not be used afterwards.
func (p *Particle) Dispose() {
	if p.IsDisposed() {
		return
	}
	p.Body.Dispose()
	particlePool.Put(p)
}

// newExplosion creates a burst of particles in random directions around at.
func newExplosion(rng *rand.Rand, at physics.Vec3) []*Particle {
	particles := make([]*Particle, 0, ExplosionParticles)
	for i := 0; i < ExplosionParticles; i++ {
		vel := physics.Vec3{
			X: rng.Float64() - 0.5,
			Y: rng.Float64() - 0.5,
			Z: rng.Float64() - 0.5,
		}.Scale(2 * particleMaxSpeed)
		particles = append(particles, NewParticle(at, vel, ParticleLife))
	}
	return particles
}
