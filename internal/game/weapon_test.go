package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tomz197/spacerunner/internal/object"
	"github.com/tomz197/spacerunner/internal/physics"
)

func TestWeaponCooldownGatesFire(t *testing.T) {
	cfg := DefaultConfig()
	f := newRecordingFactory(1)
	fx := NewEffects(cfg.PowerUpDuration)
	var w Weapon

	require.True(t, w.CanFire())
	require.Len(t, w.Fire(physics.Vec3{}, &fx, cfg, f), 1)

	for range 5 {
		assert.Nil(t, w.Fire(physics.Vec3{}, &fx, cfg, f))
		w.Tick()
	}
	assert.Equal(t, cfg.NormalFireCooldown-5, w.Cooldown())
	assert.Len(t, f.projectiles, 1)

	for range 100 {
		w.Tick()
	}
	assert.Zero(t, w.Cooldown())
}

func TestWeaponTripleShotOffsets(t *testing.T) {
	cfg := DefaultConfig()
	f := newRecordingFactory(1)
	fx := NewEffects(cfg.PowerUpDuration)
	fx.Apply(object.PowerUpShield)
	fx.Apply(object.PowerUpTripleShot)
	var w Weapon

	at := physics.Vec3{X: 1, Y: 3}
	shots := w.Fire(at, &fx, cfg, f)
	require.Len(t, shots, 3)
	for i, off := range tripleShotOffsets {
		assert.Equal(t, off, shots[i].Offset)
		assert.Equal(t, at.X+off, shots[i].Pos.X)
	}
	assert.Equal(t, cfg.NormalFireCooldown, w.Cooldown())
}
