package game

import (
	"github.com/tomz197/spacerunner/internal/object"
	"github.com/tomz197/spacerunner/internal/physics"
)

// Factory creates the entities the engine simulates. Implementations may
// attach render resources, but must always return a usable entity.
type Factory interface {
	NewAsteroid() *object.Asteroid
	NewCollectible() *object.Collectible
	NewPowerUp(kind object.PowerUpKind) *object.PowerUp
	NewProjectile(at physics.Vec3, lateralOffset float64) *object.Projectile
	NewExplosion(at physics.Vec3) []*object.Particle
	NewStar() *object.Star
	NewShip() *object.Ship
}

// RunSummary describes a finished run.
type RunSummary struct {
	RunID       string
	Score       int
	HighScore   int
	CoinsEarned int
	Coins       int
	Ticks       int
}

// UISink receives display updates. Calls happen on the goroutine driving
// the engine and must not block.
type UISink interface {
	Score(score int)
	Lives(lives int)
	HighScore(score int)
	PowerUps(active []object.PowerUpKind)
	Coins(coins int)
	State(state GameState)
	GameOver(summary RunSummary)
}

// NopSink discards every update.
type NopSink struct{}

func (NopSink) Score(int)                     {}
func (NopSink) Lives(int)                     {}
func (NopSink) HighScore(int)                 {}
func (NopSink) PowerUps([]object.PowerUpKind) {}
func (NopSink) Coins(int)                     {}
func (NopSink) State(GameState)               {}
func (NopSink) GameOver(RunSummary)           {}

// Wallet converts a finished run's score into currency.
type Wallet interface {
	// AddCoins credits the coins earned for score and returns that amount.
	AddCoins(score int) int
	Coins() int
}

// Controls is the held-key snapshot sampled once per tick.
type Controls struct {
	Left, Right, Up, Down bool
}
