package object

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tomz197/spacerunner/internal/physics"
)

type countingVisual struct {
	disposed int
}

func (v *countingVisual) Dispose() { v.disposed++ }

func TestBodyDisposeReleasesVisualOnce(t *testing.T) {
	v := &countingVisual{}
	b := &Body{Visual: v}

	b.Dispose()
	b.Dispose()

	assert.True(t, b.IsDisposed())
	assert.Equal(t, 1, v.disposed)
	assert.Nil(t, b.Visual)
}

func TestFactoryAttachesVisuals(t *testing.T) {
	var classes []Class
	f := NewFactory(rand.New(rand.NewSource(1)), WithVisuals(func(c Class, _ *Body) Visual {
		classes = append(classes, c)
		return &countingVisual{}
	}))

	f.NewAsteroid()
	f.NewPowerUp(PowerUpShield)
	ship := f.NewShip()

	require.Len(t, classes, 2+1+TrailLength)
	assert.Equal(t, ClassAsteroid, classes[0])
	assert.Equal(t, ClassPowerUp, classes[1])
	assert.Equal(t, ClassShip, classes[2])
	assert.Equal(t, ClassTrail, classes[3])

	ship.Dispose()
	assert.True(t, ship.IsDisposed())
	for i := range ship.Trail {
		assert.True(t, ship.Trail[i].IsDisposed(), "trail segment %d", i)
	}
}

func TestFactorySpawnRegion(t *testing.T) {
	f := NewFactory(rand.New(rand.NewSource(7)))
	for i := 0; i < 200; i++ {
		a := f.NewAsteroid()
		assert.Equal(t, SpawnZ, a.Pos.Z)
		assert.GreaterOrEqual(t, a.Pos.X, -SpawnWidth/2)
		assert.Less(t, a.Pos.X, SpawnWidth/2)
		assert.GreaterOrEqual(t, a.Pos.Y, SpawnMinY)
		assert.Less(t, a.Pos.Y, SpawnMaxY)
		assert.GreaterOrEqual(t, a.Size, AsteroidMinSize)
		assert.Less(t, a.Size, AsteroidMaxSize)
		assert.InDelta(t, a.Size/2, a.Half.X, 1e-12)
	}
}

func TestProjectileSpawnsAheadWithOffset(t *testing.T) {
	origin := physics.Vec3{X: 1, Y: 2, Z: 0}
	p := NewProjectile(origin, -0.5)
	assert.Equal(t, physics.Vec3{X: 0.5, Y: 2, Z: ProjectileMuzzle}, p.Pos)

	p.Advance()
	assert.Equal(t, ProjectileMuzzle+ProjectileSpeed, p.Pos.Z)
}

func TestParticleLifecycle(t *testing.T) {
	p := NewParticle(physics.Vec3{}, physics.Vec3{X: 0.1}, 2)
	assert.True(t, p.Step())
	assert.InDelta(t, 0.1, p.Pos.X, 1e-12)
	assert.InDelta(t, ParticleShrink, p.Scale, 1e-12)
	assert.False(t, p.Step())

	p.Dispose()
	assert.True(t, p.IsDisposed())
}

func TestExplosionSize(t *testing.T) {
	f := NewFactory(rand.New(rand.NewSource(3)))
	at := physics.Vec3{X: 1, Y: 1, Z: 20}
	parts := f.NewExplosion(at)
	require.Len(t, parts, ExplosionParticles)
	for _, p := range parts {
		assert.Equal(t, at, p.Pos)
		assert.Equal(t, ParticleLife, p.Life)
		assert.LessOrEqual(t, math.Abs(p.Velocity.X), particleMaxSpeed)
		assert.LessOrEqual(t, math.Abs(p.Velocity.Y), particleMaxSpeed)
		assert.LessOrEqual(t, math.Abs(p.Velocity.Z), particleMaxSpeed)
	}
}

func TestShipTrailFollows(t *testing.T) {
	s := NewShip()
	s.Pos = physics.Vec3{X: 3, Y: 4}
	s.SyncTrail()
	for i, seg := range s.Trail {
		assert.Equal(t, 3.0, seg.Pos.X)
		assert.InDelta(t, 3.9, seg.Pos.Y, 1e-12)
		assert.InDelta(t, -0.8-float64(i)*0.3, seg.Pos.Z, 1e-12)
	}
}

func TestStarRecycle(t *testing.T) {
	rng := rand.New(rand.NewSource(5))
	s := NewStar(physics.Vec3{Z: -11}, 2)
	s.Recycle(rng)
	assert.Equal(t, StarFieldZ, s.Pos.Z)
	assert.LessOrEqual(t, s.Pos.X, StarFieldX/2)
	assert.GreaterOrEqual(t, s.Pos.X, -StarFieldX/2)
}

func TestPowerUpKindNames(t *testing.T) {
	for _, k := range PowerUpKinds {
		parsed, err := ParsePowerUpKind(k.String())
		require.NoError(t, err)
		assert.Equal(t, k, parsed)
	}
	_, err := ParsePowerUpKind("laser")
	assert.Error(t, err)
	assert.False(t, PowerUpKind(42).Valid())
	assert.Equal(t, "PowerUpKind(42)", PowerUpKind(42).String())
}
