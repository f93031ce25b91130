package game

import "github.com/tomz197/spacerunner/internal/object"

// Effects tracks the remaining duration of every active power-up. Each kind
// has one slot, so a kind is either active once or not at all.
type Effects struct {
	duration  int
	remaining [object.NumPowerUpKinds]int
}

// NewEffects creates an empty set whose Apply grants duration ticks.
func NewEffects(duration int) Effects {
	return Effects{duration: duration}
}

// Apply activates kind for the full duration. Re-applying refreshes the
// timer; it never stacks.
func (e *Effects) Apply(kind object.PowerUpKind) {
	if !kind.Valid() {
		return
	}
	e.remaining[kind] = e.duration
}

// Has reports whether kind is active.
func (e *Effects) Has(kind object.PowerUpKind) bool {
	return kind.Valid() && e.remaining[kind] > 0
}

// Remaining returns the ticks left on kind, or 0 if it is not active.
func (e *Effects) Remaining(kind object.PowerUpKind) int {
	if !kind.Valid() {
		return 0
	}
	return e.remaining[kind]
}

// Remove deactivates kind and reports whether it was active.
func (e *Effects) Remove(kind object.PowerUpKind) bool {
	if !e.Has(kind) {
		return false
	}
	e.remaining[kind] = 0
	return true
}

// Clear deactivates everything.
func (e *Effects) Clear() {
	e.remaining = [object.NumPowerUpKinds]int{}
}

// Active returns the active kinds in declaration order.
func (e *Effects) Active() []object.PowerUpKind {
	var active []object.PowerUpKind
	for _, k := range object.PowerUpKinds {
		if e.remaining[k] > 0 {
			active = append(active, k)
		}
	}
	return active
}

// Tick counts every active effect down by one and returns the kinds that
// expired on this tick.
func (e *Effects) Tick() []object.PowerUpKind {
	var expired []object.PowerUpKind
	for _, k := range object.PowerUpKinds {
		if e.remaining[k] == 0 {
			continue
		}
		e.remaining[k]--
		if e.remaining[k] == 0 {
			expired = append(expired, k)
		}
	}
	return expired
}

// effectRule holds the state hooks of one power-up kind. SHIELD, RAPID_FIRE
// and TRIPLE_SHOT are read where they matter and need no hooks.
type effectRule struct {
	onApply  func(s *State)
	onExpire func(s *State)
}

var effectRules = [object.NumPowerUpKinds]effectRule{
	object.PowerUpSlowMotion: {
		// Speed is frozen while active and snaps to the score baseline after.
		onExpire: func(s *State) {
			s.Run.Speed = BaselineSpeed(s.cfg, s.Ledger.Score())
		},
	},
}

// applyPowerUp activates kind and runs its apply hook.
func applyPowerUp(s *State, kind object.PowerUpKind) {
	s.Effects.Apply(kind)
	if kind.Valid() {
		if fn := effectRules[kind].onApply; fn != nil {
			fn(s)
		}
	}
	s.mark(dirtyPowerUps)
}

// tickEffects advances every effect and runs the expiry hooks.
func tickEffects(s *State) {
	expired := s.Effects.Tick()
	for _, k := range expired {
		if fn := effectRules[k].onExpire; fn != nil {
			fn(s)
		}
	}
	if len(expired) > 0 {
		s.mark(dirtyPowerUps)
	}
}
