package game

import (
	"slices"

	"github.com/tomz197/spacerunner/internal/object"
)

// Every pass walks its slice back to front so slices.Delete never shifts an
// entity that has not been visited yet.

// updateAsteroids moves asteroids, rewards the ones that slip past and
// resolves hits against the ship. It returns true when the run has just run
// out of lives; the caller must not run any further stage this tick.
func updateAsteroids(s *State, f Factory) bool {
	step := scroll(s.Run.Speed)
	for i := len(s.Asteroids) - 1; i >= 0; i-- {
		a := s.Asteroids[i]
		a.Pos.Z += step
		a.Rotate()

		if a.Pos.Z < TrailingBoundary {
			s.Asteroids = slices.Delete(s.Asteroids, i, i+1)
			a.Dispose()
			s.addScore(ScoreAsteroidPassed)
			continue
		}

		if s.Ship == nil || s.Run.Invulnerable || !s.Ship.Intersects(a) {
			continue
		}
		s.Asteroids = slices.Delete(s.Asteroids, i, i+1)
		if resolveAsteroidHit(s, f, a) {
			return true
		}
	}
	return false
}

// resolveAsteroidHit destroys a that has struck the ship. A shield absorbs
// the hit; otherwise a life is lost and the ship becomes briefly
// invulnerable. Returns true when no lives are left.
func resolveAsteroidHit(s *State, f Factory, a *object.Asteroid) bool {
	s.spawnExplosion(f, &a.Body)
	a.Dispose()

	if s.Effects.Remove(object.PowerUpShield) {
		s.mark(dirtyPowerUps)
		return false
	}

	exhausted := s.Ledger.LoseLife()
	s.mark(dirtyLives)
	if exhausted {
		return true
	}
	s.Run.Invulnerable = true
	s.Run.InvulnerableTimer = 0
	return false
}

func updateCollectibles(s *State) {
	step := scroll(s.Run.Speed)
	for i := len(s.Collectibles) - 1; i >= 0; i-- {
		c := s.Collectibles[i]
		c.Pos.Z += step
		c.Rot.Y += 0.05

		switch {
		case c.Pos.Z < TrailingBoundary:
		case s.Ship != nil && s.Ship.Intersects(c):
			s.addScore(ScoreCollectible)
		default:
			continue
		}
		s.Collectibles = slices.Delete(s.Collectibles, i, i+1)
		c.Dispose()
	}
}

func updatePowerUps(s *State) {
	step := scroll(s.Run.Speed)
	for i := len(s.PowerUps) - 1; i >= 0; i-- {
		p := s.PowerUps[i]
		p.Pos.Z += step
		p.Rot.Y += 0.03
		p.Rot.X += 0.02

		switch {
		case p.Pos.Z < TrailingBoundary:
		case s.Ship != nil && s.Ship.Intersects(p):
			applyPowerUp(s, p.Kind)
			s.addScore(ScorePowerUp)
		default:
			continue
		}
		s.PowerUps = slices.Delete(s.PowerUps, i, i+1)
		p.Dispose()
	}
}

// updateProjectiles moves projectiles and lets each destroy at most one
// asteroid.
func updateProjectiles(s *State, f Factory) {
	for i := len(s.Projectiles) - 1; i >= 0; i-- {
		p := s.Projectiles[i]
		p.Advance()

		if p.Pos.Z > ProjectileRange {
			s.Projectiles = slices.Delete(s.Projectiles, i, i+1)
			p.Dispose()
			continue
		}

		for j := len(s.Asteroids) - 1; j >= 0; j-- {
			a := s.Asteroids[j]
			if !p.Intersects(a) {
				continue
			}
			s.spawnExplosion(f, &a.Body)
			s.Asteroids = slices.Delete(s.Asteroids, j, j+1)
			a.Dispose()
			s.Projectiles = slices.Delete(s.Projectiles, i, i+1)
			p.Dispose()
			s.addScore(ScoreAsteroidKill)
			break
		}
	}
}
