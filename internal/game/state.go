package game

import "github.com/tomz197/spacerunner/internal/object"

// Field boundaries on the scroll axis.
const (
	TrailingBoundary = -10.0 // Forward-scrolling entities exit below this z
	ProjectileRange  = 60.0  // Projectiles exit above this z
)

// Score awards.
const (
	ScoreCollectible    = 10
	ScorePowerUp        = 5
	ScoreAsteroidKill   = 5
	ScoreAsteroidPassed = 1
)

// World owns every live entity. An entity is in at most one slice.
type World struct {
	Ship         *object.Ship
	Asteroids    []*object.Asteroid
	Collectibles []*object.Collectible
	PowerUps     []*object.PowerUp
	Projectiles  []*object.Projectile
	Particles    []*object.Particle
	Stars        []*object.Star
}

// clear disposes and drops every run entity. Stars persist between runs.
func (w *World) clear() {
	if w.Ship != nil {
		w.Ship.Dispose()
		w.Ship = nil
	}
	object.DisposeAll(w.Asteroids)
	object.DisposeAll(w.Collectibles)
	object.DisposeAll(w.PowerUps)
	object.DisposeAll(w.Projectiles)
	object.DisposeAll(w.Particles)
	w.Asteroids = nil
	w.Collectibles = nil
	w.PowerUps = nil
	w.Projectiles = nil
	w.Particles = nil
}

// RunState holds the per-run counters.
type RunState struct {
	Speed             float64
	Spawner           Spawner
	Weapon            Weapon
	Invulnerable      bool
	InvulnerableTimer int
	Ticks             int
}

// dirty marks which HUD values changed during a tick.
type dirty uint8

const (
	dirtyScore dirty = 1 << iota
	dirtyLives
	dirtyHighScore
	dirtyPowerUps
	dirtyCoins

	dirtyAll = dirtyScore | dirtyLives | dirtyHighScore | dirtyPowerUps | dirtyCoins
)

// State is everything the update stages read and write.
type State struct {
	World
	Run     RunState
	Ledger  Ledger
	Effects Effects
	Machine Machine

	cfg   Config
	dirty dirty
}

func newState(cfg Config) State {
	return State{
		Run:     RunState{Speed: cfg.InitialSpeed},
		Ledger:  NewLedger(cfg.InitialLives),
		Effects: NewEffects(cfg.PowerUpDuration),
		cfg:     cfg,
	}
}

func (s *State) mark(d dirty) {
	s.dirty |= d
}

// addScore credits n points and tracks the high score.
func (s *State) addScore(n int) {
	high := s.Ledger.HighScore()
	s.Ledger.AddScore(n)
	s.mark(dirtyScore)
	if s.Ledger.HighScore() != high {
		s.mark(dirtyHighScore)
	}
}

// spawnExplosion adds a particle burst at the given entity's position.
func (s *State) spawnExplosion(f Factory, at *object.Body) {
	s.Particles = append(s.Particles, f.NewExplosion(at.Pos)...)
}

// resetRun prepares a fresh run. High score survives.
func (s *State) resetRun() {
	s.World.clear()
	s.Run = RunState{Speed: s.cfg.InitialSpeed}
	s.Ledger.Reset(s.cfg.InitialLives)
	s.Effects.Clear()
	s.mark(dirtyAll)
}
