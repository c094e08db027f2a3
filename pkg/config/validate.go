package config

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidConfig is wrapped by every validation failure
var ErrInvalidConfig = errors.New("invalid config")

func invalid(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrInvalidConfig, fmt.Sprintf(format, args...))
}

func positive(name string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) || v <= 0 {
		return invalid("%s must be positive, got %v", name, v)
	}
	return nil
}

func nonNegative(name string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return invalid("%s must not be negative, got %v", name, v)
	}
	return nil
}

// Validate checks the configuration once at startup. The simulation never
// re-validates at runtime, so anything that could produce undefined
// behaviour later is rejected here.
func (c *ArenaConfig) Validate() error {
	if c == nil {
		return invalid("nil config")
	}

	checks := []error{
		positive("world.width", c.World.Width),
		positive("world.height", c.World.Height),
		positive("viewport.width", c.Viewport.Width),
		positive("viewport.height", c.Viewport.Height),
		positive("simulation.maxDelta", c.Simulation.MaxDelta),
	}
	for _, err := range checks {
		if err != nil {
			return err
		}
	}

	if c.Viewport.Width > c.World.Width || c.Viewport.Height > c.World.Height {
		return invalid("viewport %vx%v exceeds world %vx%v",
			c.Viewport.Width, c.Viewport.Height, c.World.Width, c.World.Height)
	}
	if c.Simulation.TickRate <= 0 {
		return invalid("simulation.tickRate must be positive, got %d", c.Simulation.TickRate)
	}

	if err := c.Player.validate("player"); err != nil {
		return err
	}
	if err := c.validateOpponent(); err != nil {
		return err
	}
	if err := c.validatePopulations(); err != nil {
		return err
	}
	if err := c.validateWeapons(); err != nil {
		return err
	}
	if err := c.validateAutopilot(); err != nil {
		return err
	}
	if err := c.validateWave(); err != nil {
		return err
	}

	return nonNegative("effects.explosionLife", c.Effects.ExplosionLife)
}

func (cc CraftConfig) validate(section string) error {
	checks := []error{
		positive(section+".radius", cc.Radius),
		positive(section+".maxHealth", cc.MaxHealth),
		nonNegative(section+".maxShield", cc.MaxShield),
		nonNegative(section+".shieldAbsorb", cc.ShieldAbsorb),
		nonNegative(section+".shieldRegen", cc.ShieldRegen),
		nonNegative(section+".thrust", cc.Thrust),
		positive(section+".maxSpeed", cc.MaxSpeed),
		nonNegative(section+".turnRate", cc.TurnRate),
		nonNegative(section+".fireDelay", cc.FireDelay),
		nonNegative(section+".nudgeThreshold", cc.NudgeThreshold),
		nonNegative(section+".nudgeAmount", cc.NudgeAmount),
	}
	for _, err := range checks {
		if err != nil {
			return err
		}
	}
	if cc.MaxShield > 0 && cc.ShieldAbsorb <= 0 {
		return invalid("%s.shieldAbsorb must be positive when the craft has a shield", section)
	}
	if cc.Friction <= 0 || cc.Friction > 1 {
		return invalid("%s.friction must be in (0, 1], got %v", section, cc.Friction)
	}
	if cc.BounceDampening < 0 || cc.BounceDampening > 1 {
		return invalid("%s.bounceDampening must be in [0, 1], got %v", section, cc.BounceDampening)
	}
	switch cc.Weapon {
	case "spread", "beam":
	default:
		return invalid("%s.weapon must be \"spread\" or \"beam\", got %q", section, cc.Weapon)
	}
	return nil
}

func (c *ArenaConfig) validateOpponent() error {
	if c.Opponent.Count < 0 {
		return invalid("opponent.count must not be negative, got %d", c.Opponent.Count)
	}
	if c.Opponent.Count == 0 {
		return nil
	}
	if err := c.Opponent.CraftConfig.validate("opponent"); err != nil {
		return err
	}
	return positive("opponent.engageRange", c.Opponent.EngageRange)
}

func (c *ArenaConfig) validatePopulations() error {
	counts := []struct {
		name string
		n    int
	}{
		{"fighter.count", c.Fighter.Count},
		{"debris.count", c.Debris.Count},
		{"drone.count", c.Drone.Count},
		{"civilian.count", c.Civilian.Count},
	}
	for _, count := range counts {
		if count.n < 0 {
			return invalid("%s must not be negative, got %d", count.name, count.n)
		}
	}

	checks := []error{
		positive("fighter.health", c.Fighter.Health),
		positive("fighter.radius", c.Fighter.Radius),
		nonNegative("fighter.speed", c.Fighter.Speed),
		nonNegative("fighter.separationRadius", c.Fighter.SeparationRadius),
		nonNegative("fighter.fireDelay", c.Fighter.FireDelay),
		positive("debris.radius", c.Debris.Radius),
		nonNegative("debris.minSpeed", c.Debris.MinSpeed),
		nonNegative("debris.splitThreshold", c.Debris.SplitThreshold),
		nonNegative("debris.bodyDamage", c.Debris.BodyDamage),
		positive("drone.health", c.Drone.Health),
		positive("drone.radius", c.Drone.Radius),
		nonNegative("drone.speed", c.Drone.Speed),
		positive("civilian.health", c.Civilian.Health),
		positive("civilian.radius", c.Civilian.Radius),
		nonNegative("civilian.speed", c.Civilian.Speed),
	}
	for _, err := range checks {
		if err != nil {
			return err
		}
	}
	if c.Debris.MaxSpeed < c.Debris.MinSpeed {
		return invalid("debris.maxSpeed %v below minSpeed %v", c.Debris.MaxSpeed, c.Debris.MinSpeed)
	}
	return nil
}

func (c *ArenaConfig) validateWeapons() error {
	projectiles := []struct {
		name string
		spec ProjectileConfig
	}{
		{"weapons.player", c.Weapons.Player},
		{"weapons.hostile", c.Weapons.Hostile},
	}
	for _, proj := range projectiles {
		name, p := proj.name, proj.spec
		checks := []error{
			positive(name+".speed", p.Speed),
			positive(name+".lifetime", p.Lifetime),
			nonNegative(name+".damage", p.Damage),
			nonNegative(name+".radius", p.Radius),
		}
		for _, err := range checks {
			if err != nil {
				return err
			}
		}
	}
	if c.Weapons.Spread.Count < 1 {
		return invalid("weapons.spread.count must be at least 1, got %d", c.Weapons.Spread.Count)
	}
	if err := positive("weapons.beam.length", c.Weapons.Beam.Length); err != nil {
		return err
	}
	return positive("weapons.beam.duration", c.Weapons.Beam.Duration)
}

func (c *ArenaConfig) validateAutopilot() error {
	ap := c.Autopilot
	if err := positive("autopilot.dodgeRadius", ap.DodgeRadius); err != nil {
		return err
	}
	if ap.TurnGain <= 0 || ap.TurnGain > 1 {
		return invalid("autopilot.turnGain must be in (0, 1], got %v", ap.TurnGain)
	}
	if ap.NearDistance > ap.FarDistance {
		return invalid("autopilot.nearDistance %v beyond farDistance %v", ap.NearDistance, ap.FarDistance)
	}
	return nonNegative("autopilot.fireCone", ap.FireCone)
}

func (c *ArenaConfig) validateWave() error {
	w := c.Wave
	checks := []error{
		nonNegative("wave.respawnDelay", w.RespawnDelay),
		nonNegative("wave.healthStep", w.HealthStep),
		nonNegative("wave.speedStep", w.SpeedStep),
		nonNegative("wave.fireDelayStep", w.FireDelayStep),
		positive("wave.minFireDelay", w.MinFireDelay),
	}
	for _, err := range checks {
		if err != nil {
			return err
		}
	}
	if w.FighterStep < 0 || w.DroneStep < 0 {
		return invalid("wave steps must not be negative")
	}
	return nil
}
