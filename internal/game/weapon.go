package game

import (
	"github.com/tomz197/spacerunner/internal/object"
	"github.com/tomz197/spacerunner/internal/physics"
)

// tripleShotOffsets are the lateral offsets of a TRIPLE_SHOT volley.
var tripleShotOffsets = [...]float64{-0.5, 0, 0.5}

// Weapon gates firing behind a cooldown.
type Weapon struct {
	cooldown int
}

// Tick counts the cooldown down toward zero.
func (w *Weapon) Tick() {
	if w.cooldown > 0 {
		w.cooldown--
	}
}

// CanFire reports whether the cooldown has elapsed.
func (w *Weapon) CanFire() bool {
	return w.cooldown == 0
}

// Cooldown returns the ticks left until the next shot.
func (w *Weapon) Cooldown() int {
	return w.cooldown
}

// Fire creates projectiles at the given position. It returns nil and leaves
// the cooldown untouched while the weapon is cooling down.
func (w *Weapon) Fire(at physics.Vec3, fx *Effects, cfg Config, f Factory) []*object.Projectile {
	if !w.CanFire() {
		return nil
	}

	if fx.Has(object.PowerUpRapidFire) {
		w.cooldown = cfg.RapidFireCooldown
	} else {
		w.cooldown = cfg.NormalFireCooldown
	}

	if !fx.Has(object.PowerUpTripleShot) {
		return []*object.Projectile{f.NewProjectile(at, 0)}
	}
	shots := make([]*object.Projectile, 0, len(tripleShotOffsets))
	for _, off := range tripleShotOffsets {
		shots = append(shots, f.NewProjectile(at, off))
	}
	return shots
}
