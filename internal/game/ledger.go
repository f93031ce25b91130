package game

import (
	"math"

	"github.com/tomz197/spacerunner/internal/object"
	"github.com/tomz197/spacerunner/internal/physics"
)

// Ledger is the authoritative score and lives counter.
type Ledger struct {
	score     int
	lives     int
	highScore int
}

// NewLedger creates a ledger with the given lives.
func NewLedger(lives int) Ledger {
	return Ledger{lives: lives}
}

func (l *Ledger) Score() int     { return l.score }
func (l *Ledger) Lives() int     { return l.lives }
func (l *Ledger) HighScore() int { return l.highScore }

// AddScore adds n points. Negative amounts are ignored so the score never
// decreases within a run.
func (l *Ledger) AddScore(n int) {
	if n <= 0 {
		return
	}
	l.score += n
	l.highScore = max(l.highScore, l.score)
}

// LoseLife removes one life and reports whether the run is over.
func (l *Ledger) LoseLife() bool {
	if l.lives > 0 {
		l.lives--
	}
	return l.lives <= 0
}

// SeedHighScore raises the high score to at least score.
func (l *Ledger) SeedHighScore(score int) {
	l.highScore = max(l.highScore, score)
}

// Reset starts a new run. The high score is kept.
func (l *Ledger) Reset(lives int) {
	l.score = 0
	l.lives = lives
}

// BaselineSpeed is the speed a run would have reached from its score alone.
func BaselineSpeed(cfg Config, score int) float64 {
	return physics.Clamp(cfg.InitialSpeed+float64(score)*cfg.SpeedIncrement, cfg.InitialSpeed, cfg.MaxSpeed)
}

// updateSpeed ramps the scroll speed. SLOW_MOTION freezes the ramp.
func updateSpeed(s *State) {
	if s.Effects.Has(object.PowerUpSlowMotion) {
		return
	}
	s.Run.Speed = math.Min(s.Run.Speed+s.cfg.SpeedIncrement, s.cfg.MaxSpeed)
}
