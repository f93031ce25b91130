package game

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "game.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestDefaultConfigIsValid(t *testing.T) {
	assert.NoError(t, DefaultConfig().Validate())
}

func TestLoadConfigOverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
initial_lives = 5
max_speed = 0.6
powerup_duration = 300
`)
	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 5, cfg.InitialLives)
	assert.Equal(t, 0.6, cfg.MaxSpeed)
	assert.Equal(t, 300, cfg.PowerUpDuration)
	assert.Equal(t, DefaultConfig().InitialSpeed, cfg.InitialSpeed)
}

func TestLoadConfigRejectsUnknownKeys(t *testing.T) {
	path := writeConfig(t, "initial_live = 5\n")
	_, err := LoadConfig(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "initial_live")
}

func TestLoadConfigRejectsInvalidValues(t *testing.T) {
	path := writeConfig(t, "max_speed = 0.1\ninitial_lives = -1\n")
	_, err := LoadConfig(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "max_speed")
	assert.Contains(t, err.Error(), "initial_lives")
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.toml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
