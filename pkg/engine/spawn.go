package engine

import (
	"math"

	"github.com/opd-ai/go-skirmish/pkg/entity"
	"github.com/opd-ai/go-skirmish/pkg/physics"
	"github.com/opd-ai/go-skirmish/pkg/wave"
)

// spawnAttempts bounds the search for a spawn point clear of the player
const spawnAttempts = 8

// spawnInitial fills the arena for wave one
func (a *Arena) spawnInitial() {
	a.spawnWave(a.director.Scaling())
}

// spawnWave issues the hostiles for a wave and tops the debris field and
// civilian population back up to their configured sizes.
func (a *Arena) spawnWave(s wave.Scaling) {
	for i := 0; i < s.Fighters; i++ {
		a.spawnFighter(s)
	}
	for i := 0; i < s.Drones; i++ {
		a.spawnDrone()
	}
	for i := 0; i < s.Opponents; i++ {
		a.spawnOpponent()
	}
	for n := a.store.Count(entity.KindDebris); n < a.cfg.Debris.Count; n++ {
		a.spawnDebris()
	}
	for n := a.store.Count(entity.KindCivilian); n < a.cfg.Civilian.Count; n++ {
		a.spawnCivilian()
	}
}

// edgePoint returns a random point margin outside one of the four world
// edges. Callers wrap it so the body enters from the opposite edge.
func (a *Arena) edgePoint(margin float64) physics.Vector2D {
	w, h := a.bounds.Width, a.bounds.Height
	switch a.rng.IntN(4) {
	case 0:
		return physics.Vector2D{X: a.rng.Float64() * w, Y: -margin}
	case 1:
		return physics.Vector2D{X: w + margin, Y: a.rng.Float64() * h}
	case 2:
		return physics.Vector2D{X: a.rng.Float64() * w, Y: h + margin}
	default:
		return physics.Vector2D{X: -margin, Y: a.rng.Float64() * h}
	}
}

// openPoint returns a random point in the world at least clearance away
// from the player, giving up after a few attempts.
func (a *Arena) openPoint(clearance float64) physics.Vector2D {
	var p physics.Vector2D
	for i := 0; i < spawnAttempts; i++ {
		p = physics.Vector2D{X: a.rng.Float64() * a.bounds.Width, Y: a.rng.Float64() * a.bounds.Height}
		if a.store.Player == nil || p.Distance(a.store.Player.Position) >= clearance {
			break
		}
	}
	return p
}

func (a *Arena) randomHeading() float64 {
	return a.rng.Float64() * 2 * math.Pi
}

func (a *Arena) spawnFighter(s wave.Scaling) {
	cfg := a.cfg.Fighter
	cooldown := a.rng.Float64() * s.FighterFireDelay
	pos := a.bounds.Wrap(a.edgePoint(cfg.EdgeMargin))
	a.store.AddFighter(entity.NewFighter(pos, cfg.Radius, s.FighterHealth, s.FighterSpeed, s.FighterFireDelay, cooldown))
}

func (a *Arena) spawnDebris() {
	cfg := a.cfg.Debris
	pos := a.openPoint(cfg.Radius + a.cfg.Player.Radius + a.cfg.Autopilot.DodgeRadius)
	speed := a.rng.Float64()*(cfg.MaxSpeed-cfg.MinSpeed) + cfg.MinSpeed
	spin := (a.rng.Float64()*2 - 1) * cfg.MaxSpin
	a.store.AddDebris(entity.NewDebris(pos, cfg.Radius, a.randomHeading(), speed, spin))
}

func (a *Arena) spawnDrone() {
	cfg := a.cfg.Drone
	pos := a.openPoint(cfg.FireRange)
	a.store.AddDrone(entity.NewDrone(pos, cfg.Radius, cfg.Health, cfg.Speed, cfg.FireDelay, a.randomHeading()))
}

func (a *Arena) spawnCivilian() {
	cfg := a.cfg.Civilian
	pos := a.openPoint(cfg.Radius + a.cfg.Player.Radius)
	a.store.AddCivilian(entity.NewCivilian(pos, cfg.Radius, cfg.Health, cfg.Speed, a.randomHeading(), cfg.ReturnFire, cfg.FireDelay))
}

func (a *Arena) spawnOpponent() {
	cfg := a.cfg.Opponent
	c := entity.NewCraft(entity.KindOpponent, cfg.CraftConfig, a.openPoint(cfg.EngageRange))
	if p := a.store.Player; p != nil {
		c.Heading = c.Position.AngleTo(p.Position)
	}
	c.Gun.Cooldown = cfg.FireDelay
	a.store.AddOpponent(c)
}
