package client

import (
	"time"

	"github.com/tomz197/spacerunner/internal/game"
	"github.com/tomz197/spacerunner/internal/input"
)

// View is the screen the client shows on top of the engine state.
type View int

const (
	ViewGame     View = iota // Follows the engine: menu, playing, paused, game over
	ViewShop                 // Ship shop overlay
	ViewShutdown             // Server is shutting down
)

// screenKey identifies what is on screen; a change forces a full clear.
type screenKey struct {
	view     View
	state    game.GameState
	inactive bool
}

// ClientState holds per-connection frontend state. The engine owns the
// simulation; this only tracks what the terminal shows.
type ClientState struct {
	Input   input.Input
	View    View
	Running bool // Client loop running

	delta         time.Duration // Frame delta time
	shutdownTimer float64       // Countdown before auto-disconnect on shutdown
	isInactive    bool          // Whether the client is in inactive warning state
	prevScreen    screenKey
	firstFrame    bool

	shopSelected int    // Catalog index highlighted in the shop
	shopMessage  string // Result of the last shop action

	toast      string // Leaderboard news shown over the HUD
	toastUntil time.Time
}

// NewClientState creates a new initialized client state.
func NewClientState() *ClientState {
	return &ClientState{
		View:       ViewGame,
		Running:    true,
		firstFrame: true,
	}
}
