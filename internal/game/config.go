package game

import (
	"errors"
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
)

// Config holds the tunables of a run. Durations and rates are in ticks.
type Config struct {
	InitialSpeed   float64 `toml:"initial_speed"`
	MaxSpeed       float64 `toml:"max_speed"`
	SpeedIncrement float64 `toml:"speed_increment"`
	InitialLives   int     `toml:"initial_lives"`

	ShipMoveSpeed float64 `toml:"ship_move_speed"`
	ShipMaxX      float64 `toml:"ship_max_x"`
	ShipMinY      float64 `toml:"ship_min_y"`
	ShipMaxY      float64 `toml:"ship_max_y"`

	AsteroidSpawnBase    float64 `toml:"asteroid_spawn_base"`
	AsteroidSpawnMin     float64 `toml:"asteroid_spawn_min"`
	CollectibleSpawnRate int     `toml:"collectible_spawn_rate"`
	PowerUpSpawnRate     int     `toml:"powerup_spawn_rate"`

	PowerUpDuration      int `toml:"powerup_duration"`
	InvulnerableDuration int `toml:"invulnerable_duration"`
	RapidFireCooldown    int `toml:"rapid_fire_cooldown"`
	NormalFireCooldown   int `toml:"normal_fire_cooldown"`

	StarCount int `toml:"star_count"`
}

// DefaultConfig returns the standard arcade tuning.
func DefaultConfig() Config {
	return Config{
		InitialSpeed:   0.15,
		MaxSpeed:       0.4,
		SpeedIncrement: 0.0001,
		InitialLives:   3,

		ShipMoveSpeed: 0.15,
		ShipMaxX:      6,
		ShipMinY:      0.5,
		ShipMaxY:      8,

		AsteroidSpawnBase:    30,
		AsteroidSpawnMin:     15,
		CollectibleSpawnRate: 180,
		PowerUpSpawnRate:     300,

		PowerUpDuration:      600,
		InvulnerableDuration: 120,
		RapidFireCooldown:    5,
		NormalFireCooldown:   12,

		StarCount: 200,
	}
}

// LoadConfig reads a TOML file on top of DefaultConfig. Keys that do not map
// to a field are rejected so typos do not silently fall back to defaults.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("decode config %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return Config{}, fmt.Errorf("config %s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate reports every tunable that is out of range.
func (c Config) Validate() error {
	var errs []error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			errs = append(errs, fmt.Errorf(format, args...))
		}
	}

	check(c.InitialSpeed > 0, "initial_speed must be positive, got %v", c.InitialSpeed)
	check(c.MaxSpeed >= c.InitialSpeed, "max_speed %v below initial_speed %v", c.MaxSpeed, c.InitialSpeed)
	check(c.SpeedIncrement >= 0, "speed_increment must not be negative, got %v", c.SpeedIncrement)
	check(c.InitialLives > 0, "initial_lives must be positive, got %d", c.InitialLives)

	check(c.ShipMoveSpeed > 0, "ship_move_speed must be positive, got %v", c.ShipMoveSpeed)
	check(c.ShipMaxX > 0, "ship_max_x must be positive, got %v", c.ShipMaxX)
	check(c.ShipMaxY > c.ShipMinY, "ship_max_y %v must exceed ship_min_y %v", c.ShipMaxY, c.ShipMinY)

	check(c.AsteroidSpawnMin > 0, "asteroid_spawn_min must be positive, got %v", c.AsteroidSpawnMin)
	check(c.AsteroidSpawnBase >= c.AsteroidSpawnMin, "asteroid_spawn_base %v below asteroid_spawn_min %v", c.AsteroidSpawnBase, c.AsteroidSpawnMin)
	check(c.CollectibleSpawnRate > 0, "collectible_spawn_rate must be positive, got %d", c.CollectibleSpawnRate)
	check(c.PowerUpSpawnRate > 0, "powerup_spawn_rate must be positive, got %d", c.PowerUpSpawnRate)

	check(c.PowerUpDuration > 0, "powerup_duration must be positive, got %d", c.PowerUpDuration)
	check(c.InvulnerableDuration >= 0, "invulnerable_duration must not be negative, got %d", c.InvulnerableDuration)
	check(c.RapidFireCooldown >= 0, "rapid_fire_cooldown must not be negative, got %d", c.RapidFireCooldown)
	check(c.NormalFireCooldown >= 0, "normal_fire_cooldown must not be negative, got %d", c.NormalFireCooldown)

	check(c.StarCount >= 0, "star_count must not be negative, got %d", c.StarCount)

	return errors.Join(errs...)
}
