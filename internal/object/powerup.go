package object

import (
	"fmt"
	"strings"
)

// PowerUpKind is the closed set of timed effects a power-up can grant.
type PowerUpKind int

const (
	PowerUpShield PowerUpKind = iota
	PowerUpRapidFire
	PowerUpSlowMotion
	PowerUpTripleShot

	powerUpKindCount
)

// NumPowerUpKinds is the number of distinct power-up kinds.
const NumPowerUpKinds = int(powerUpKindCount)

// PowerUpKinds lists every kind in declaration order.
var PowerUpKinds = [NumPowerUpKinds]PowerUpKind{
	PowerUpShield,
	PowerUpRapidFire,
	PowerUpSlowMotion,
	PowerUpTripleShot,
}

var powerUpNames = [NumPowerUpKinds]string{
	PowerUpShield:     "shield",
	PowerUpRapidFire:  "rapid_fire",
	PowerUpSlowMotion: "slow_motion",
	PowerUpTripleShot: "triple_shot",
}

// Valid returns true if k is one of the declared kinds.
func (k PowerUpKind) Valid() bool {
	return k >= 0 && k < powerUpKindCount
}

func (k PowerUpKind) String() string {
	if !k.Valid() {
		return fmt.Sprintf("PowerUpKind(%d)", int(k))
	}
	return powerUpNames[k]
}

// ParsePowerUpKind converts a name such as "rapid_fire" back into a kind.
func ParsePowerUpKind(s string) (PowerUpKind, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for i, name := range powerUpNames {
		if name == s {
			return PowerUpKind(i), nil
		}
	}
	return 0, fmt.Errorf("unknown power-up kind %q", s)
}

// PowerUp is a floating pickup that grants a timed effect.
type PowerUp struct {
	Body
	Kind PowerUpKind
}

// Collectible is a floating gem worth a fixed amount of score.
type Collectible struct {
	Body
}
