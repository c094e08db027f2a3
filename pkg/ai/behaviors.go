package ai

import (
	"math"
	"math/rand/v2"

	"github.com/opd-ai/go-skirmish/pkg/config"
	"github.com/opd-ai/go-skirmish/pkg/entity"
	"github.com/opd-ai/go-skirmish/pkg/physics"
)

// Steering is the per-tick order for a simple actor: it flies at Velocity,
// faces Heading, and fires along Aim when Fire is set.
type Steering struct {
	Velocity physics.Vector2D
	Heading  float64
	Fire     bool
	Aim      float64
}

// Fighter closes on the player until StopDistance and fires when the player
// is within FireRange.
func Fighter(f *entity.Fighter, player physics.Vector2D, cfg config.FighterConfig) Steering {
	s := Steering{Heading: f.Heading}
	toPlayer := player.Sub(f.Position)
	dist := toPlayer.Length()
	if dist > 0 {
		s.Heading = toPlayer.Angle()
	}
	if dist > cfg.StopDistance {
		s.Velocity = toPlayer.Normalize().Scale(f.Speed)
	}
	s.Aim = s.Heading
	s.Fire = dist <= cfg.FireRange && f.Gun.Ready()
	return s
}

// Opponent pilots the opposing craft: it turns onto the player, holds
// PreferredRange and fires its beam when aligned within EngageRange.
func Opponent(self *entity.Craft, player physics.Vector2D, cfg config.OpponentConfig, turnGain float64) Command {
	desired := self.Position.AngleTo(player)
	errAngle := physics.AngleDiff(self.Heading, desired)
	dist := self.Position.Distance(player)

	cmd := Command{Turn: TurnToward(self.Heading, desired, turnGain, self.TurnRate)}
	switch {
	case dist > cfg.PreferredRange:
		cmd.Thrust = 1
	case dist < cfg.PreferredRange*0.6:
		cmd.Thrust = -0.5
	}
	cmd.Fire = dist <= cfg.EngageRange && math.Abs(errAngle) <= cfg.AimCone && self.Gun.Ready()
	return cmd
}

// Wander keeps the current heading until the timer runs out, then picks a
// new random heading. It returns the heading and the refreshed timer.
func Wander(heading, timer, interval, step float64, rng *rand.Rand) (float64, float64) {
	timer -= step
	if timer > 0 {
		return heading, timer
	}
	if rng != nil {
		heading = rng.Float64() * 2 * math.Pi
	}
	return heading, interval
}

// Drone hunts the nearest civilian within HuntRange and wanders otherwise.
// It fires at the nearest damageable body within FireRange.
func Drone(d *entity.Drone, civilians []Target, player Target, cfg config.DroneConfig, step float64, rng *rand.Rand) (Steering, float64, entity.ID) {
	s := Steering{Heading: d.Heading}
	timer := d.WanderTimer
	var targetID entity.ID

	prey, ok := Nearest(d.Position, civilians)
	if ok && d.Position.Distance(prey.Position) <= cfg.HuntRange {
		targetID = prey.ID
		if d.Position.Distance(prey.Position) > 0 {
			s.Heading = d.Position.AngleTo(prey.Position)
		}
	} else {
		s.Heading, timer = Wander(d.Heading, timer, cfg.WanderInterval, step, rng)
	}
	s.Velocity = physics.FromAngle(s.Heading, d.Speed)

	candidates := civilians
	if player.ID != 0 {
		candidates = append(append([]Target(nil), civilians...), player)
	}
	if victim, ok := Nearest(d.Position, candidates); ok && d.Gun.Ready() &&
		d.Position.Distance(victim.Position) <= cfg.FireRange {
		s.Fire = true
		s.Aim = d.Position.AngleTo(victim.Position)
	}
	return s, timer, targetID
}

// Civilian flees the nearest drone inside FleeRange, otherwise wanders. An
// armed civilian shoots back at a drone within FireRange.
func Civilian(c *entity.Civilian, drones []Target, cfg config.CivilianConfig, step float64, rng *rand.Rand) (Steering, float64, bool) {
	s := Steering{Heading: c.Heading}
	timer := c.WanderTimer
	fleeing := false

	threat, ok := Nearest(c.Position, drones)
	dist := math.Inf(1)
	if ok {
		dist = c.Position.Distance(threat.Position)
	}
	if ok && dist <= cfg.FleeRange && dist > 0 {
		fleeing = true
		s.Heading = threat.Position.AngleTo(c.Position)
	} else {
		s.Heading, timer = Wander(c.Heading, timer, cfg.WanderInterval, step, rng)
	}
	s.Velocity = physics.FromAngle(s.Heading, c.Speed)

	if c.Armed && ok && dist <= cfg.FireRange && c.Gun.Ready() {
		s.Fire = true
		s.Aim = c.Position.AngleTo(threat.Position)
	}
	return s, timer, fleeing
}
