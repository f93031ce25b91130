// Package game is the simulation and game-state engine of the runner: it
// advances entities, spawns them on timers, resolves collisions, runs
// power-up timers and drives the menu/playing/paused/game-over machine.
package game

import (
	"errors"
	"fmt"
	"io"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/tomz197/spacerunner/internal/object"
)

// Engine runs one player's game. It is not safe for concurrent use; a
// single goroutine must drive Tick and the actions.
type Engine struct {
	state   State
	cfg     Config
	factory Factory
	sink    UISink
	wallet  Wallet
	rng     *rand.Rand
	logger  *log.Logger
	runID   uuid.UUID

	highScore int
}

// Option configures an Engine.
type Option func(*Engine)

// WithConfig replaces the default tuning.
func WithConfig(cfg Config) Option {
	return func(e *Engine) { e.cfg = cfg }
}

// WithFactory replaces the default entity factory.
func WithFactory(f Factory) Option {
	return func(e *Engine) { e.factory = f }
}

// WithSink routes display updates to sink.
func WithSink(sink UISink) Option {
	return func(e *Engine) { e.sink = sink }
}

// WithWallet credits coins to w when a run ends.
func WithWallet(w Wallet) Option {
	return func(e *Engine) { e.wallet = w }
}

// WithRand sets the random source used for spawning.
func WithRand(rng *rand.Rand) Option {
	return func(e *Engine) { e.rng = rng }
}

// WithLogger sets the parent logger.
func WithLogger(l *log.Logger) Option {
	return func(e *Engine) { e.logger = l }
}

// WithHighScore seeds the high score, e.g. from saved progress.
func WithHighScore(score int) Option {
	return func(e *Engine) { e.highScore = score }
}

// New creates an engine in StateMenu with the star field already populated.
func New(opts ...Option) (*Engine, error) {
	e := &Engine{cfg: DefaultConfig()}
	for _, opt := range opts {
		opt(e)
	}
	if err := e.cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid game config: %w", err)
	}
	if e.rng == nil {
		e.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if e.factory == nil {
		e.factory = object.NewFactory(e.rng)
	}
	if e.sink == nil {
		e.sink = NopSink{}
	}
	if e.logger == nil {
		e.logger = log.New(io.Discard)
	}
	e.logger = e.logger.With("component", "game")

	e.state = newState(e.cfg)
	e.state.Ledger.SeedHighScore(e.highScore)
	for range e.cfg.StarCount {
		e.state.Stars = append(e.state.Stars, e.factory.NewStar())
	}
	e.state.mark(dirtyAll)
	e.flush()
	return e, nil
}

// Tick advances the simulation by one frame. It does nothing unless the game
// is playing.
func (e *Engine) Tick(c Controls) {
	if e.state.Machine.State() != StatePlaying {
		return
	}
	s := &e.state
	s.Run.Ticks++

	s.Run.Weapon.Tick()
	moveShip(s, c)
	updateStars(s, e.rng)
	spawnEntities(s, e.factory, e.rng)
	tickEffects(s)

	if updateAsteroids(s, e.factory) {
		e.gameOver()
		return
	}
	updateCollectibles(s)
	updatePowerUps(s)
	updateProjectiles(s, e.factory)
	updateParticles(s)
	updateSpeed(s)

	e.flush()
	assertInvariants(e)
}

// Fire shoots from the ship's current position and returns the number of
// projectiles created.
func (e *Engine) Fire() int {
	s := &e.state
	if s.Machine.State() != StatePlaying || s.Ship == nil || s.Ship.IsDisposed() {
		return 0
	}
	shots := s.Run.Weapon.Fire(s.Ship.Pos, &s.Effects, e.cfg, e.factory)
	s.Projectiles = append(s.Projectiles, shots...)
	return len(shots)
}

// Start begins a run from the menu.
func (e *Engine) Start() bool {
	return e.beginRun(EventStart)
}

// Restart begins a new run after game over.
func (e *Engine) Restart() bool {
	return e.beginRun(EventRestart)
}

// TogglePause pauses a running game or resumes a paused one.
func (e *Engine) TogglePause() bool {
	switch e.state.Machine.State() {
	case StatePlaying:
		return e.transition(EventPause)
	case StatePaused:
		return e.transition(EventResume)
	}
	return false
}

// GoToMenu abandons the current run, clearing every entity.
func (e *Engine) GoToMenu() bool {
	if !e.transition(EventMenu) {
		return false
	}
	e.state.resetRun()
	e.flush()
	return true
}

func (e *Engine) beginRun(ev Event) bool {
	if _, ok := Next(e.state.Machine.State(), ev); !ok {
		return false
	}
	e.state.resetRun()
	e.state.Ship = e.factory.NewShip()
	e.runID = uuid.New()
	e.transition(ev)
	e.logger.Debug("run started", "run", e.runID)
	e.flush()
	return true
}

func (e *Engine) transition(ev Event) bool {
	from := e.state.Machine.State()
	if !e.state.Machine.Fire(ev) {
		return false
	}
	to := e.state.Machine.State()
	e.logger.Debug("state transition", "from", from, "to", to, "event", ev)
	e.sink.State(to)
	return true
}

func (e *Engine) gameOver() {
	s := &e.state
	e.transition(EventLivesExhausted)

	summary := RunSummary{
		RunID:     e.runID.String(),
		Score:     s.Ledger.Score(),
		HighScore: s.Ledger.HighScore(),
		Ticks:     s.Run.Ticks,
	}
	if e.wallet != nil {
		summary.CoinsEarned = e.wallet.AddCoins(summary.Score)
		summary.Coins = e.wallet.Coins()
		s.mark(dirtyCoins)
	}
	e.logger.Info("game over",
		"run", summary.RunID,
		"score", summary.Score,
		"high_score", summary.HighScore,
		"coins_earned", summary.CoinsEarned,
		"ticks", summary.Ticks)

	e.flush()
	e.sink.GameOver(summary)
}

// flush pushes every changed value to the sink.
func (e *Engine) flush() {
	s := &e.state
	d := s.dirty
	s.dirty = 0
	if d&dirtyScore != 0 {
		e.sink.Score(s.Ledger.Score())
	}
	if d&dirtyLives != 0 {
		e.sink.Lives(s.Ledger.Lives())
	}
	if d&dirtyHighScore != 0 {
		e.sink.HighScore(s.Ledger.HighScore())
	}
	if d&dirtyPowerUps != 0 {
		e.sink.PowerUps(s.Effects.Active())
	}
	if d&dirtyCoins != 0 && e.wallet != nil {
		e.sink.Coins(e.wallet.Coins())
	}
}

// State returns the current machine state.
func (e *Engine) State() GameState { return e.state.Machine.State() }

func (e *Engine) Score() int     { return e.state.Ledger.Score() }
func (e *Engine) Lives() int     { return e.state.Ledger.Lives() }
func (e *Engine) HighScore() int { return e.state.Ledger.HighScore() }
func (e *Engine) Speed() float64 { return e.state.Run.Speed }
func (e *Engine) Config() Config { return e.cfg }

// RunID identifies the current run in logs. It is the zero UUID before the
// first start.
func (e *Engine) RunID() uuid.UUID { return e.runID }

// Invulnerable reports whether the ship is ignoring asteroid hits.
func (e *Engine) Invulnerable() bool { return e.state.Run.Invulnerable }

// Effects exposes the active power-ups for display.
func (e *Engine) Effects() *Effects { return &e.state.Effects }

// World exposes the live entities for rendering. Callers must not add or
// remove entities.
func (e *Engine) World() *World { return &e.state.World }

// CheckInvariants returns every violated engine invariant joined together,
// or nil.
func (e *Engine) CheckInvariants() error {
	s := &e.state
	var errs []error
	if s.Ledger.Lives() < 0 {
		errs = append(errs, fmt.Errorf("negative lives: %d", s.Ledger.Lives()))
	}
	if s.Ledger.Score() < 0 {
		errs = append(errs, fmt.Errorf("negative score: %d", s.Ledger.Score()))
	}
	if s.Ledger.HighScore() < s.Ledger.Score() {
		errs = append(errs, fmt.Errorf("high score %d below score %d", s.Ledger.HighScore(), s.Ledger.Score()))
	}
	if s.Run.Speed < e.cfg.InitialSpeed || s.Run.Speed > e.cfg.MaxSpeed {
		errs = append(errs, fmt.Errorf("speed %v outside [%v, %v]", s.Run.Speed, e.cfg.InitialSpeed, e.cfg.MaxSpeed))
	}
	for _, k := range object.PowerUpKinds {
		if r := s.Effects.Remaining(k); r < 0 {
			errs = append(errs, fmt.Errorf("power-up %s has duration %d", k, r))
		}
	}
	if s.Run.Weapon.Cooldown() < 0 {
		errs = append(errs, fmt.Errorf("negative weapon cooldown: %d", s.Run.Weapon.Cooldown()))
	}
	if s.Ship != nil && s.Ship.IsDisposed() {
		errs = append(errs, errors.New("disposed ship still owned"))
	}
	errs = append(errs, disposedOwned("asteroid", s.Asteroids)...)
	errs = append(errs, disposedOwned("collectible", s.Collectibles)...)
	errs = append(errs, disposedOwned("power-up", s.PowerUps)...)
	errs = append(errs, disposedOwned("projectile", s.Projectiles)...)
	errs = append(errs, disposedOwned("particle", s.Particles)...)
	errs = append(errs, disposedOwned("star", s.Stars)...)
	return errors.Join(errs...)
}

func disposedOwned[T object.Disposable](name string, items []T) []error {
	var errs []error
	for i, it := range items {
		if it.IsDisposed() {
			errs = append(errs, fmt.Errorf("disposed %s still owned at index %d", name, i))
		}
	}
	return errs
}
