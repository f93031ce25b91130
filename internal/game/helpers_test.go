package game

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tomz197/spacerunner/internal/object"
	"github.com/tomz197/spacerunner/internal/physics"
)

// quietConfig disables random spawning and the star field so tests place
// every entity themselves.
func quietConfig() Config {
	cfg := DefaultConfig()
	cfg.AsteroidSpawnBase = 1e9
	cfg.AsteroidSpawnMin = 1e9
	cfg.CollectibleSpawnRate = 1 << 30
	cfg.PowerUpSpawnRate = 1 << 30
	cfg.StarCount = 0
	return cfg
}

// recordingFactory wraps the default factory and counts what it builds.
type recordingFactory struct {
	*object.Factory
	projectiles []*object.Projectile
	explosions  int
	ships       int
}

func newRecordingFactory(seed int64) *recordingFactory {
	return &recordingFactory{Factory: object.NewFactory(rand.New(rand.NewSource(seed)))}
}

func (f *recordingFactory) NewProjectile(at physics.Vec3, off float64) *object.Projectile {
	p := f.Factory.NewProjectile(at, off)
	f.projectiles = append(f.projectiles, p)
	return p
}

func (f *recordingFactory) NewExplosion(at physics.Vec3) []*object.Particle {
	f.explosions++
	return f.Factory.NewExplosion(at)
}

func (f *recordingFactory) NewShip() *object.Ship {
	f.ships++
	return f.Factory.NewShip()
}

type recordingSink struct {
	scores    []int
	lives     []int
	highs     []int
	powerUps  [][]object.PowerUpKind
	coins     []int
	states    []GameState
	summaries []RunSummary
}

func (r *recordingSink) Score(v int)                     { r.scores = append(r.scores, v) }
func (r *recordingSink) Lives(v int)                     { r.lives = append(r.lives, v) }
func (r *recordingSink) HighScore(v int)                 { r.highs = append(r.highs, v) }
func (r *recordingSink) PowerUps(k []object.PowerUpKind) { r.powerUps = append(r.powerUps, k) }
func (r *recordingSink) Coins(v int)                     { r.coins = append(r.coins, v) }
func (r *recordingSink) State(s GameState)               { r.states = append(r.states, s) }
func (r *recordingSink) GameOver(s RunSummary)           { r.summaries = append(r.summaries, s) }

type fakeWallet struct {
	coins int
}

func (w *fakeWallet) AddCoins(score int) int {
	earned := score / 10
	w.coins += earned
	return earned
}

func (w *fakeWallet) Coins() int { return w.coins }

type testEngine struct {
	*Engine
	factory *recordingFactory
	sink    *recordingSink
}

func newTestEngine(t *testing.T, cfg Config, opts ...Option) *testEngine {
	t.Helper()
	f := newRecordingFactory(1)
	sink := &recordingSink{}
	opts = append([]Option{
		WithConfig(cfg),
		WithFactory(f),
		WithSink(sink),
		WithRand(rand.New(rand.NewSource(1))),
	}, opts...)
	e, err := New(opts...)
	require.NoError(t, err)
	return &testEngine{Engine: e, factory: f, sink: sink}
}

// started returns a playing engine.
func started(t *testing.T, cfg Config, opts ...Option) *testEngine {
	t.Helper()
	e := newTestEngine(t, cfg, opts...)
	require.True(t, e.Start())
	return e
}

// asteroidOnShip places an asteroid that will overlap the ship after one
// scroll step.
func (e *testEngine) asteroidOnShip() *object.Asteroid {
	pos := e.World().Ship.Pos
	pos.Z += 0.1
	a := object.NewAsteroid(pos, 1, physics.Vec3{})
	e.state.Asteroids = append(e.state.Asteroids, a)
	return a
}

func (e *testEngine) tick(n int) {
	for range n {
		e.Tick(Controls{})
	}
}
