package game

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tomz197/spacerunner/internal/object"
)

func TestAsteroidSpawnThreshold(t *testing.T) {
	cfg := DefaultConfig()
	tests := []struct {
		score int
		want  float64
	}{
		{0, cfg.AsteroidSpawnBase},
		{500, 25},
		{1500, cfg.AsteroidSpawnMin},
		{10000, cfg.AsteroidSpawnMin},
	}
	for _, tt := range tests {
		assert.InDelta(t, tt.want, AsteroidSpawnThreshold(cfg, tt.score), 1e-9, "score %d", tt.score)
	}
}

func TestSpawnerFiresAfterThresholdIsExceeded(t *testing.T) {
	cfg := DefaultConfig()
	var sp Spawner
	for i := 1; i <= int(cfg.AsteroidSpawnBase); i++ {
		assert.False(t, sp.Tick(cfg, 0).asteroid, "tick %d", i)
	}
	assert.True(t, sp.Tick(cfg, 0).asteroid)
	a, c, p := sp.Counters()
	assert.Equal(t, 0, a)
	assert.Equal(t, int(cfg.AsteroidSpawnBase)+1, c)
	assert.Equal(t, int(cfg.AsteroidSpawnBase)+1, p)
}

func TestSpawnEntitiesUsesFactory(t *testing.T) {
	cfg := DefaultConfig()
	cfg.AsteroidSpawnBase = 2
	cfg.AsteroidSpawnMin = 2
	cfg.CollectibleSpawnRate = 3
	cfg.PowerUpSpawnRate = 4
	s := newState(cfg)
	f := newRecordingFactory(2)
	rng := rand.New(rand.NewSource(2))

	for range 20 {
		spawnEntities(&s, f, rng)
	}
	assert.Len(t, s.Asteroids, 6)
	assert.Len(t, s.Collectibles, 5)
	assert.Len(t, s.PowerUps, 4)
	for _, p := range s.PowerUps {
		assert.True(t, p.Kind.Valid())
		assert.Equal(t, object.SpawnZ, p.Pos.Z)
	}
}
