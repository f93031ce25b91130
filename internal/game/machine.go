package game

// GameState represents the current phase of the game.
type GameState int

const (
	StateMenu GameState = iota
	StatePlaying
	StatePaused
	StateGameOver
)

func (s GameState) String() string {
	switch s {
	case StateMenu:
		return "menu"
	case StatePlaying:
		return "playing"
	case StatePaused:
		return "paused"
	case StateGameOver:
		return "game_over"
	default:
		return "unknown"
	}
}

// Event is an input to the state machine.
type Event int

const (
	EventStart Event = iota
	EventPause
	EventResume
	EventLivesExhausted
	EventMenu
	EventRestart
)

func (e Event) String() string {
	switch e {
	case EventStart:
		return "start"
	case EventPause:
		return "pause"
	case EventResume:
		return "resume"
	case EventLivesExhausted:
		return "lives_exhausted"
	case EventMenu:
		return "menu"
	case EventRestart:
		return "restart"
	default:
		return "unknown"
	}
}

// Next returns the state reached from s on e. The second result is false
// when the transition is not legal, in which case s is returned unchanged.
func Next(s GameState, e Event) (GameState, bool) {
	switch {
	case e == EventMenu:
		return StateMenu, true
	case s == StateMenu && e == EventStart:
		return StatePlaying, true
	case s == StatePlaying && e == EventPause:
		return StatePaused, true
	case s == StatePaused && e == EventResume:
		return StatePlaying, true
	case s == StatePlaying && e == EventLivesExhausted:
		return StateGameOver, true
	case s == StateGameOver && e == EventRestart:
		return StatePlaying, true
	}
	return s, false
}

// Machine holds the current state. The zero value starts in StateMenu.
type Machine struct {
	state GameState
}

// State returns the current state.
func (m *Machine) State() GameState {
	return m.state
}

// Fire applies e and reports whether the state changed.
func (m *Machine) Fire(e Event) bool {
	next, ok := Next(m.state, e)
	if ok {
		m.state = next
	}
	return ok
}
