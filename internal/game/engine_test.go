package game

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tomz197/spacerunner/internal/object"
	"github.com/tomz197/spacerunner/internal/physics"
)

func TestNewRejectsInvalidConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.InitialLives = 0
	_, err := New(WithConfig(cfg))
	assert.Error(t, err)
}

func TestNewStartsInMenuWithStars(t *testing.T) {
	e := newTestEngine(t, DefaultConfig())
	assert.Equal(t, StateMenu, e.State())
	assert.Len(t, e.World().Stars, 200)
	assert.Nil(t, e.World().Ship)
}

func TestTickIgnoredOutsidePlaying(t *testing.T) {
	e := newTestEngine(t, DefaultConfig())
	e.tick(100)
	assert.Empty(t, e.World().Asteroids)
	assert.Equal(t, 0, e.Score())
}

func TestUnshieldedHitCostsOneLife(t *testing.T) {
	e := started(t, quietConfig())
	e.asteroidOnShip()
	e.tick(1)

	assert.Equal(t, 2, e.Lives())
	assert.True(t, e.Invulnerable())
	assert.Empty(t, e.World().Asteroids)
	assert.Equal(t, 1, e.factory.explosions)
	assert.Len(t, e.World().Particles, object.ExplosionParticles)
}

func TestShieldAbsorbsExactlyOneHit(t *testing.T) {
	e := started(t, quietConfig())
	applyPowerUp(&e.state, object.PowerUpShield)

	e.asteroidOnShip()
	e.tick(1)
	assert.Equal(t, 3, e.Lives())
	assert.False(t, e.Effects().Has(object.PowerUpShield))
	assert.False(t, e.Invulnerable())
	assert.Equal(t, 1, e.factory.explosions)

	e.asteroidOnShip()
	e.tick(1)
	assert.Equal(t, 2, e.Lives())
}

func TestInvulnerabilityWindow(t *testing.T) {
	cfg := quietConfig()
	e := started(t, cfg)

	e.asteroidOnShip()
	e.tick(1)
	require.Equal(t, 2, e.Lives())

	for i := 0; i < cfg.InvulnerableDuration; i++ {
		e.asteroidOnShip()
		e.tick(1)
		require.Equal(t, 2, e.Lives(), "life lost %d ticks into invulnerability", i+1)
	}

	e.asteroidOnShip()
	e.tick(1)
	assert.Equal(t, 1, e.Lives())
}

func TestLastLifeEndsRunImmediately(t *testing.T) {
	cfg := quietConfig()
	cfg.InitialLives = 1
	wallet := &fakeWallet{coins: 7}
	e := started(t, cfg, WithWallet(wallet))
	e.state.addScore(120)

	far := &object.Collectible{Body: object.Body{Pos: physics.Vec3{Z: 30}, Half: physics.Vec3{X: 0.3, Y: 0.3, Z: 0.3}}}
	e.state.Collectibles = append(e.state.Collectibles, far)
	e.asteroidOnShip()
	e.tick(1)

	assert.Equal(t, 0, e.Lives())
	assert.Equal(t, StateGameOver, e.State())
	assert.Equal(t, 30.0, far.Pos.Z, "collectibles must not move after game over")
	assert.Equal(t, cfg.InitialSpeed, e.Speed(), "speed must not ramp after game over")
	for _, p := range e.World().Particles {
		assert.Equal(t, object.ParticleLife, p.Life)
	}

	require.Len(t, e.sink.summaries, 1)
	sum := e.sink.summaries[0]
	assert.Equal(t, 120, sum.Score)
	assert.Equal(t, 12, sum.CoinsEarned)
	assert.Equal(t, 19, sum.Coins)
	assert.Equal(t, e.RunID().String(), sum.RunID)
	assert.Equal(t, StateGameOver, e.sink.states[len(e.sink.states)-1])

	e.tick(10)
	assert.Equal(t, 30.0, far.Pos.Z)
}

func TestGameOverLivesNeverNegative(t *testing.T) {
	cfg := quietConfig()
	cfg.InitialLives = 1
	e := started(t, cfg)
	e.asteroidOnShip()
	e.asteroidOnShip()
	e.tick(1)
	assert.Equal(t, 0, e.Lives())
	assert.Len(t, e.World().Asteroids, 1)
}

func TestScoringRules(t *testing.T) {
	e := started(t, quietConfig())
	ship := e.World().Ship.Pos

	gem := &object.Collectible{Body: object.Body{Pos: ship, Half: physics.Vec3{X: 0.3, Y: 0.3, Z: 0.3}}}
	ring := &object.PowerUp{Body: object.Body{Pos: ship, Half: physics.Vec3{X: 0.5, Y: 0.1, Z: 0.5}}, Kind: object.PowerUpTripleShot}
	passer := object.NewAsteroid(physics.Vec3{X: 4, Y: 5, Z: TrailingBoundary + 0.01}, 1, physics.Vec3{})
	e.state.Collectibles = append(e.state.Collectibles, gem)
	e.state.PowerUps = append(e.state.PowerUps, ring)
	e.state.Asteroids = append(e.state.Asteroids, passer)

	e.tick(1)

	assert.Equal(t, ScoreCollectible+ScorePowerUp+ScoreAsteroidPassed, e.Score())
	assert.True(t, gem.IsDisposed())
	assert.True(t, ring.IsDisposed())
	assert.True(t, passer.IsDisposed())
	assert.True(t, e.Effects().Has(object.PowerUpTripleShot))
	assert.Equal(t, 3, e.Lives())
}

func TestExitingEntitiesAreReleasedWithoutScore(t *testing.T) {
	e := started(t, quietConfig())
	gem := &object.Collectible{Body: object.Body{Pos: physics.Vec3{X: 4, Z: TrailingBoundary}}}
	ring := &object.PowerUp{Body: object.Body{Pos: physics.Vec3{X: 4, Z: TrailingBoundary}}}
	e.state.Collectibles = append(e.state.Collectibles, gem)
	e.state.PowerUps = append(e.state.PowerUps, ring)

	e.tick(1)

	assert.Zero(t, e.Score())
	assert.Empty(t, e.World().Collectibles)
	assert.Empty(t, e.World().PowerUps)
	assert.True(t, gem.IsDisposed())
	assert.True(t, ring.IsDisposed())
}

func TestProjectileDestroysOneAsteroid(t *testing.T) {
	e := started(t, quietConfig())
	target := physics.Vec3{X: 4, Y: 4, Z: 20}
	a1 := object.NewAsteroid(target, 1, physics.Vec3{})
	a2 := object.NewAsteroid(target, 1, physics.Vec3{})
	e.state.Asteroids = append(e.state.Asteroids, a1, a2)

	p := object.NewProjectile(physics.Vec3{X: target.X, Y: target.Y, Z: 20 - object.ProjectileMuzzle}, 0)
	e.state.Projectiles = append(e.state.Projectiles, p)

	e.tick(1)

	assert.Equal(t, ScoreAsteroidKill, e.Score())
	assert.Len(t, e.World().Asteroids, 1)
	assert.Empty(t, e.World().Projectiles)
	assert.True(t, p.IsDisposed())
	assert.True(t, a2.IsDisposed(), "the last asteroid is tested first")
	assert.False(t, a1.IsDisposed())
	assert.Equal(t, 1, e.factory.explosions)
}

func TestProjectileLeavesRange(t *testing.T) {
	e := started(t, quietConfig())
	p := object.NewProjectile(physics.Vec3{Z: ProjectileRange - object.ProjectileMuzzle}, 0)
	e.state.Projectiles = append(e.state.Projectiles, p)
	e.tick(1)
	assert.Empty(t, e.World().Projectiles)
	assert.True(t, p.IsDisposed())
}

func TestFireCooldown(t *testing.T) {
	cfg := quietConfig()
	e := started(t, cfg)

	assert.Equal(t, 1, e.Fire())
	assert.Equal(t, 0, e.Fire())
	assert.Len(t, e.World().Projectiles, 1)
	assert.Equal(t, cfg.NormalFireCooldown, e.state.Run.Weapon.Cooldown())

	e.tick(cfg.NormalFireCooldown - 1)
	assert.Equal(t, 0, e.Fire())
	assert.Equal(t, 1, e.state.Run.Weapon.Cooldown())
	e.tick(1)
	assert.Equal(t, 1, e.Fire())
}

func TestFireRequiresPlaying(t *testing.T) {
	e := newTestEngine(t, quietConfig())
	assert.Equal(t, 0, e.Fire())
	require.True(t, e.Start())
	require.True(t, e.TogglePause())
	assert.Equal(t, 0, e.Fire())
}

func TestTripleShotFromShipPosition(t *testing.T) {
	e := started(t, quietConfig())
	applyPowerUp(&e.state, object.PowerUpTripleShot)
	e.Tick(Controls{Right: true})
	at := e.World().Ship.Pos

	require.Equal(t, 3, e.Fire())
	require.Len(t, e.factory.projectiles, 3)
	for i, want := range []float64{-0.5, 0, 0.5} {
		p := e.factory.projectiles[i]
		assert.Equal(t, want, p.Offset)
		assert.InDelta(t, at.X+want, p.Pos.X, 1e-12)
		assert.Equal(t, at.Y, p.Pos.Y)
	}
}

func TestRapidFireCooldown(t *testing.T) {
	cfg := quietConfig()
	e := started(t, cfg)
	applyPowerUp(&e.state, object.PowerUpRapidFire)
	e.Fire()
	assert.Equal(t, cfg.RapidFireCooldown, e.state.Run.Weapon.Cooldown())
}

func TestSpeedRampsToMax(t *testing.T) {
	cfg := quietConfig()
	cfg.SpeedIncrement = 0.01
	e := started(t, cfg)
	e.tick(1)
	assert.InDelta(t, cfg.InitialSpeed+0.01, e.Speed(), 1e-12)
	e.tick(100)
	assert.Equal(t, cfg.MaxSpeed, e.Speed())
}

func TestSlowMotionSnapsBack(t *testing.T) {
	cfg := quietConfig()
	cfg.PowerUpDuration = 10
	e := started(t, cfg)
	e.state.addScore(1000)
	e.tick(5)
	before := e.Speed()

	applyPowerUp(&e.state, object.PowerUpSlowMotion)
	e.tick(cfg.PowerUpDuration - 1)
	assert.Equal(t, before, e.Speed(), "speed is frozen while slowed")
	assert.True(t, e.Effects().Has(object.PowerUpSlowMotion))

	e.tick(1)
	assert.False(t, e.Effects().Has(object.PowerUpSlowMotion))
	want := BaselineSpeed(cfg, 1000) + cfg.SpeedIncrement
	assert.InDelta(t, want, e.Speed(), 1e-12)
}

func TestPauseFreezesEverything(t *testing.T) {
	e := started(t, DefaultConfig())
	e.tick(50)
	require.True(t, e.TogglePause())
	assert.Equal(t, StatePaused, e.State())

	speed, ticks := e.Speed(), e.state.Run.Ticks
	asteroids := len(e.World().Asteroids)
	e.Tick(Controls{Left: true})
	e.tick(100)
	assert.Equal(t, speed, e.Speed())
	assert.Equal(t, ticks, e.state.Run.Ticks)
	assert.Len(t, e.World().Asteroids, asteroids)

	require.True(t, e.TogglePause())
	e.tick(1)
	assert.Equal(t, ticks+1, e.state.Run.Ticks)
}

func TestMenuRoundTripResetsRun(t *testing.T) {
	cfg := DefaultConfig()
	cfg.InitialLives = 50
	e := started(t, cfg)
	ship := e.World().Ship
	for range 400 {
		e.Tick(Controls{Up: true})
		e.Fire()
	}
	applyPowerUp(&e.state, object.PowerUpShield)
	require.NotEmpty(t, e.World().Asteroids)
	old := append([]*object.Asteroid(nil), e.World().Asteroids...)

	require.True(t, e.GoToMenu())
	assert.Equal(t, StateMenu, e.State())
	assert.True(t, ship.IsDisposed())
	for _, a := range old {
		assert.True(t, a.IsDisposed())
	}
	assert.Len(t, e.World().Stars, cfg.StarCount)

	require.True(t, e.Start())
	w := e.World()
	assert.Equal(t, 0, e.Score())
	assert.Equal(t, cfg.InitialLives, e.Lives())
	assert.Equal(t, cfg.InitialSpeed, e.Speed())
	assert.Empty(t, w.Asteroids)
	assert.Empty(t, w.Collectibles)
	assert.Empty(t, w.PowerUps)
	assert.Empty(t, w.Projectiles)
	assert.Empty(t, w.Particles)
	assert.Empty(t, e.Effects().Active())
	assert.NotSame(t, ship, w.Ship)
	assert.Equal(t, object.ShipStart, w.Ship.Pos)
	assert.Equal(t, 2, e.factory.ships)
}

func TestRestartOnlyFromGameOver(t *testing.T) {
	cfg := quietConfig()
	cfg.InitialLives = 1
	e := newTestEngine(t, cfg)
	assert.False(t, e.Restart())
	require.True(t, e.Start())
	assert.False(t, e.Start())
	assert.False(t, e.Restart())

	e.asteroidOnShip()
	e.tick(1)
	require.Equal(t, StateGameOver, e.State())
	assert.False(t, e.TogglePause())

	require.True(t, e.Restart())
	assert.Equal(t, StatePlaying, e.State())
	assert.Equal(t, 1, e.Lives())
	assert.Empty(t, e.World().Particles)
}

func TestHighScoreIsMaxAcrossRuns(t *testing.T) {
	e := started(t, quietConfig(), WithHighScore(30))
	assert.Equal(t, 30, e.HighScore())

	e.state.addScore(50)
	e.GoToMenu()
	e.Start()
	assert.Equal(t, 50, e.HighScore())

	e.state.addScore(20)
	assert.Equal(t, 50, e.HighScore())
	e.state.addScore(40)
	assert.Equal(t, 60, e.HighScore())
	e.tick(1)
	assert.Equal(t, 60, e.sink.highs[len(e.sink.highs)-1])
}

func TestSinkUpdatedOncePerTick(t *testing.T) {
	e := started(t, quietConfig())
	scores, highs := len(e.sink.scores), len(e.sink.highs)

	e.state.addScore(10)
	e.state.addScore(15)
	assert.Len(t, e.sink.scores, scores, "changes wait for the tick")
	assert.Len(t, e.sink.highs, highs)

	e.tick(1)
	require.Len(t, e.sink.scores, scores+1)
	assert.Equal(t, 25, e.sink.scores[scores])
	require.Len(t, e.sink.highs, highs+1)
	assert.Equal(t, 25, e.sink.highs[highs])

	e.tick(1)
	assert.Len(t, e.sink.scores, scores+1, "unchanged values are not resent")
}

func TestShipMovementClamped(t *testing.T) {
	cfg := quietConfig()
	e := started(t, cfg)
	for range 200 {
		e.Tick(Controls{Left: true, Up: true})
	}
	ship := e.World().Ship
	assert.Equal(t, -cfg.ShipMaxX, ship.Pos.X)
	assert.Equal(t, cfg.ShipMaxY, ship.Pos.Y)
	assert.InDelta(t, maxTilt, ship.Tilt, 1e-12)
	assert.Equal(t, ship.Pos.X, ship.Trail[0].Pos.X)

	for range 200 {
		e.Tick(Controls{Down: true})
	}
	assert.Equal(t, cfg.ShipMinY, ship.Pos.Y)
	assert.InDelta(t, 0, ship.Tilt, 1e-6)
}

func TestStarsWrap(t *testing.T) {
	e := started(t, quietConfig())
	st := object.NewStar(physics.Vec3{Z: TrailingBoundary + 0.01}, 0)
	e.state.Stars = append(e.state.Stars, st)
	e.tick(1)
	assert.Equal(t, object.StarFieldZ, st.Pos.Z)
	assert.False(t, st.IsDisposed())
}

func TestParticlesExpire(t *testing.T) {
	e := started(t, quietConfig())
	e.state.spawnExplosion(e.factory, &object.Body{Pos: physics.Vec3{Z: 5}})
	require.Len(t, e.World().Particles, object.ExplosionParticles)
	e.tick(object.ParticleLife - 1)
	assert.Len(t, e.World().Particles, object.ExplosionParticles)
	e.tick(1)
	assert.Empty(t, e.World().Particles)
}

// TestLongRunProperties plays seeded random runs and checks the ledger and
// engine invariants after every tick.
func TestLongRunProperties(t *testing.T) {
	for seed := int64(1); seed <= 5; seed++ {
		rng := rand.New(rand.NewSource(seed))
		e := started(t, DefaultConfig(), WithRand(rand.New(rand.NewSource(seed))), WithWallet(&fakeWallet{}))
		best := 0
		for run := 0; run < 3; run++ {
			lives, score := e.Lives(), e.Score()
			for i := 0; i < 3000 && e.State() == StatePlaying; i++ {
				e.Tick(Controls{
					Left:  rng.Intn(3) == 0,
					Right: rng.Intn(3) == 0,
					Up:    rng.Intn(4) == 0,
					Down:  rng.Intn(4) == 0,
				})
				if rng.Intn(5) == 0 {
					e.Fire()
				}
				require.NoError(t, e.CheckInvariants())
				require.GreaterOrEqual(t, e.Score(), score)
				require.LessOrEqual(t, e.Lives(), lives)
				require.GreaterOrEqual(t, lives-e.Lives(), 0)
				require.LessOrEqual(t, lives-e.Lives(), 1)
				lives, score = e.Lives(), e.Score()
				best = max(best, score)
				require.Equal(t, best, e.HighScore())
			}
			if e.State() == StateGameOver {
				require.True(t, e.Restart())
			} else {
				require.True(t, e.GoToMenu())
				require.True(t, e.Start())
			}
		}
	}
}

func TestNewPublishesInitialValues(t *testing.T) {
	e := newTestEngine(t, quietConfig(), WithHighScore(70), WithWallet(&fakeWallet{coins: 4}))
	assert.Equal(t, []int{0}, e.sink.scores)
	assert.Equal(t, []int{DefaultConfig().InitialLives}, e.sink.lives)
	assert.Equal(t, []int{70}, e.sink.highs)
	assert.Equal(t, []int{4}, e.sink.coins)
}
