package game

import (
	"math"
	"math/rand"

	"github.com/tomz197/spacerunner/internal/object"
)

// Spawner counts ticks toward the next asteroid, collectible and power-up.
type Spawner struct {
	asteroid    int
	collectible int
	powerUp     int
}

// AsteroidSpawnThreshold returns the asteroid interval for the given score.
// It shrinks as the score grows and bottoms out at AsteroidSpawnMin.
func AsteroidSpawnThreshold(cfg Config, score int) float64 {
	return math.Max(cfg.AsteroidSpawnBase-float64(score)*0.01, cfg.AsteroidSpawnMin)
}

// spawnDue holds which classes are due this tick.
type spawnDue struct {
	asteroid, collectible, powerUp bool
}

// Tick advances all three counters and reports which of them passed their
// threshold. Counters that fire reset to zero.
func (sp *Spawner) Tick(cfg Config, score int) spawnDue {
	sp.asteroid++
	sp.collectible++
	sp.powerUp++

	var due spawnDue
	if float64(sp.asteroid) > AsteroidSpawnThreshold(cfg, score) {
		sp.asteroid = 0
		due.asteroid = true
	}
	if sp.collectible > cfg.CollectibleSpawnRate {
		sp.collectible = 0
		due.collectible = true
	}
	if sp.powerUp > cfg.PowerUpSpawnRate {
		sp.powerUp = 0
		due.powerUp = true
	}
	return due
}

// Counters returns the asteroid, collectible and power-up counters.
func (sp *Spawner) Counters() (asteroid, collectible, powerUp int) {
	return sp.asteroid, sp.collectible, sp.powerUp
}

// spawnEntities creates whatever is due this tick.
func spawnEntities(s *State, f Factory, rng *rand.Rand) {
	due := s.Run.Spawner.Tick(s.cfg, s.Ledger.Score())
	if due.asteroid {
		s.Asteroids = append(s.Asteroids, f.NewAsteroid())
	}
	if due.collectible {
		s.Collectibles = append(s.Collectibles, f.NewCollectible())
	}
	if due.powerUp {
		kind := object.PowerUpKinds[rng.Intn(object.NumPowerUpKinds)]
		s.PowerUps = append(s.PowerUps, f.NewPowerUp(kind))
	}
}
