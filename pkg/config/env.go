// pkg/config/env.go
package config

import (
	"fmt"
	"os"
	"strconv"
)

// Environment variables recognised by ApplyEnvironmentOverrides
const (
	EnvWorldWidth  = "SKIRMISH_WORLD_WIDTH"
	EnvWorldHeight = "SKIRMISH_WORLD_HEIGHT"
	EnvTickRate    = "SKIRMISH_TICK_RATE"
	EnvSeed        = "SKIRMISH_SEED"
	EnvFighters    = "SKIRMISH_FIGHTERS"
	EnvDebris      = "SKIRMISH_DEBRIS"
)

// ApplyEnvironmentOverrides overwrites configuration values with any
// SKIRMISH_* variables that are set. A malformed value is an error rather
// than being silently ignored.
func ApplyEnvironmentOverrides(cfg *ArenaConfig) error {
	if cfg == nil {
		return fmt.Errorf("%w: nil config", ErrInvalidConfig)
	}

	if err := overrideFloat(EnvWorldWidth, &cfg.World.Width); err != nil {
		return err
	}
	if err := overrideFloat(EnvWorldHeight, &cfg.World.Height); err != nil {
		return err
	}
	if err := overrideInt(EnvTickRate, &cfg.Simulation.TickRate); err != nil {
		return err
	}
	if err := overrideInt(EnvFighters, &cfg.Fighter.Count); err != nil {
		return err
	}
	if err := overrideInt(EnvDebris, &cfg.Debris.Count); err != nil {
		return err
	}

	if value, ok := os.LookupEnv(EnvSeed); ok {
		seed, err := strconv.ParseUint(value, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid %s value %q: %w", EnvSeed, value, err)
		}
		cfg.Simulation.Seed = seed
	}

	return nil
}

func overrideFloat(key string, target *float64) error {
	value, ok := os.LookupEnv(key)
	if !ok {
		return nil
	}
	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return fmt.Errorf("invalid %s value %q: %w", key, value, err)
	}
	*target = parsed
	return nil
}

func overrideInt(key string, target *int) error {
	value, ok := os.LookupEnv(key)
	if !ok {
		return nil
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fmt.Errorf("invalid %s value %q: %w", key, value, err)
	}
	*target = parsed
	return nil
}
