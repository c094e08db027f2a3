package engine

import (
	"github.com/opd-ai/go-skirmish/pkg/ai"
	"github.com/opd-ai/go-skirmish/pkg/entity"
	"github.com/opd-ai/go-skirmish/pkg/physics"
)

// movementPhase integrates every body and applies its boundary policy:
// soft-bounce for piloted craft, wrap for everything autonomous. Fire
// cooldowns tick here so a gun that becomes ready can fire this tick.
func (a *Arena) movementPhase() {
	step := a.step
	store := a.store

	if !a.respawnPending {
		a.moveCraft(store.Player, a.playerCmd, true)
	}
	for i, c := range store.Opponents {
		if c.Active {
			a.moveCraft(c, a.opponentCmds[i], false)
		}
	}

	for i, f := range store.Fighters {
		if !f.Active {
			continue
		}
		s := a.steering.fighters[i]
		f.Heading = s.Heading
		f.Velocity = s.Velocity
		f.Integrate(step)
		f.Position = a.bounds.Wrap(f.Position)
		f.Gun.Tick(step)
	}

	for _, d := range store.Debris {
		if d.Active {
			d.Drift(step)
			d.Position = a.bounds.Wrap(d.Position)
		}
	}

	for i, d := range store.Drones {
		if d.Active {
			a.moveActor(&d.BaseEntity, &d.Gun, a.steering.drones[i])
		}
	}
	for i, c := range store.Civilians {
		if c.Active {
			a.moveActor(&c.BaseEntity, &c.Gun, a.steering.civilians[i])
		}
	}
}

// moveCraft flies a craft under cmd. The player's craft is nudged when it
// drifts to a near standstill.
func (a *Arena) moveCraft(c *entity.Craft, cmd ai.Command, nudge bool) {
	step := a.step
	c.ShieldActive = cmd.Shield && c.MaxShield > 0
	c.Move(step, cmd.Turn, cmd.Thrust, cmd.Accel)
	if nudge && !c.Thrusting {
		c.Velocity = physics.Nudge(c.Velocity, c.NudgeThreshold, c.NudgeAmount, a.rng.Float64)
	}
	a.bounds.SoftBounce(&c.Position, &c.Velocity, c.BounceDampening)
	c.RegenShield(step)
	c.Gun.Tick(step)
}

func (a *Arena) moveActor(base *entity.BaseEntity, gun *entity.Gun, s ai.Steering) {
	base.Heading = s.Heading
	base.Velocity = s.Velocity
	base.Integrate(a.step)
	base.Position = a.bounds.Wrap(base.Position)
	gun.Tick(a.step)
}
