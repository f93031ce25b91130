// Package config centralizes the tunable parameters of the terminal frontend.
// Simulation tuning lives in game.Config.
package config

import "time"

// View resolution - the visible viewport in logical units.
// Actual rendering scales to fit terminal size.
const (
	ViewWidth  = 160 // Logical viewport width
	ViewHeight = 90  // Logical viewport height (in sub-pixels, so 45 terminal rows)
)

// Max render resolution. Larger terminals get a centered render area.
const (
	MaxTermWidth  = 200
	MaxTermHeight = 60
)

// Camera placement relative to the ship. The camera sits behind the ship
// and follows its height at half rate.
const (
	CameraZ      = -6.0
	CameraBaseY  = 2.5
	CameraFollow = 0.5
	CameraFocal  = 60.0
	CameraNear   = 0.5
)

// Player
const (
	PlayerBlinkFrequency = 10.0 // Hz, while invulnerable
	MaxUsernameLength    = 16   // Maximum display length for player usernames
)

// Leaderboard
const (
	LeaderboardSize = 5
)

// Shutdown
const (
	ShutdownDisplaySeconds = 10.0 // Seconds to show shutdown message before auto-disconnect
)

// Inactivity
const (
	InactivityWarnUser       = 90  // Seconds
	InactivityDisconnectUser = 120 // Seconds
)

// Client rendering. The engine advances one tick per frame.
const (
	ClientTargetFPS       = 60
	ClientTargetFrameTime = time.Second / ClientTargetFPS
)
