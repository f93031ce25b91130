package client

import (
	"slices"

	"github.com/tomz197/spacerunner/internal/game"
	"github.com/tomz197/spacerunner/internal/object"
)

// HUD is the client's game.UISink. It keeps the last value of every
// display field and the summary of a run that has not been reported yet.
type HUD struct {
	score     int
	lives     int
	highScore int
	coins     int
	powerUps  []object.PowerUpKind
	state     game.GameState

	last    game.RunSummary
	hasLast bool
	pending bool
}

var _ game.UISink = (*HUD)(nil)

func (h *HUD) Score(score int)     { h.score = score }
func (h *HUD) Lives(lives int)     { h.lives = lives }
func (h *HUD) HighScore(score int) { h.highScore = score }
func (h *HUD) Coins(coins int)     { h.coins = coins }
func (h *HUD) State(s game.GameState) {
	h.state = s
}

// PowerUps keeps a copy of active.
func (h *HUD) PowerUps(active []object.PowerUpKind) {
	h.powerUps = slices.Clone(active)
}

// GameOver stores the summary for the game over screen and marks it for
// reporting.
func (h *HUD) GameOver(summary game.RunSummary) {
	h.last = summary
	h.hasLast = true
	h.pending = true
}

// takeFinished returns the summary of a run that ended since the last call.
func (h *HUD) takeFinished() (game.RunSummary, bool) {
	if !h.pending {
		return game.RunSummary{}, false
	}
	h.pending = false
	return h.last, true
}

// LastRun returns the summary of the most recent finished run.
func (h *HUD) LastRun() (game.RunSummary, bool) {
	return h.last, h.hasLast
}
