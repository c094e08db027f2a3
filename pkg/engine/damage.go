package engine

import (
	"fmt"

	"github.com/opd-ai/go-skirmish/pkg/entity"
	"github.com/opd-ai/go-skirmish/pkg/event"
)

// strike is one application of damage
type strike struct {
	owner  entity.Owner
	damage float64
	credit bool // the player earns the kill reward
	text   bool // show the damage number
}

// hit applies a strike to a body and resolves its destruction
func (a *Arena) hit(b body, s strike) {
	store := a.store
	switch b.kind {
	case entity.KindPlayer:
		a.hitCraft(store.Player, s)
	case entity.KindOpponent:
		a.hitCraft(store.Opponents[b.idx], s)
	case entity.KindFighter:
		f := store.Fighters[b.idx]
		if a.hitHull(&f.BaseEntity, &f.Hull, entity.KindFighter, s) {
			a.destroyBody(&f.BaseEntity, entity.KindFighter, a.cfg.Fighter.Reward, s)
			if s.credit {
				a.label(f.Position, "Alien Down!", entity.ToneReward)
			}
		}
	case entity.KindDrone:
		d := store.Drones[b.idx]
		if a.hitHull(&d.BaseEntity, &d.Hull, entity.KindDrone, s) {
			a.destroyBody(&d.BaseEntity, entity.KindDrone, a.cfg.Drone.Reward, s)
			if s.credit {
				a.label(d.Position, fmt.Sprintf("+%d", a.cfg.Drone.Reward), entity.ToneReward)
			}
		}
	case entity.KindCivilian:
		c := store.Civilians[b.idx]
		if a.hitHull(&c.BaseEntity, &c.Hull, entity.KindCivilian, s) {
			a.destroyBody(&c.BaseEntity, entity.KindCivilian, 0, s)
			a.label(c.Position, "Civilian lost", entity.ToneAlert)
		}
	case entity.KindDebris:
		d := store.Debris[b.idx]
		a.emit(event.NewDamageEvent(a.eventTick(), d.ID, entity.KindDebris, s.owner, s.damage, false, 0))
		a.destroyDebris(d, s, 0)
	}
}

// hitHull damages a hull and reports whether it was destroyed
func (a *Arena) hitHull(e *entity.BaseEntity, hull *entity.Hull, kind entity.Kind, s strike) bool {
	res := hull.Damage(s.damage)
	a.emit(event.NewDamageEvent(a.eventTick(), e.ID, kind, s.owner, res.Dealt, false, hull.Health))
	if s.text && res.Dealt > 0 {
		a.label(e.Position, fmt.Sprintf("-%.0f", res.Dealt), entity.ToneDamage)
	}
	return res.Destroyed
}

// hitCraft applies a strike shield first. A lethal hit on the player schedules
// a respawn; the opposing craft is destroyed.
func (a *Arena) hitCraft(c *entity.Craft, s strike) {
	res := c.TakeHit(s.damage)
	if res.Absorbed {
		a.emit(event.NewDamageEvent(a.eventTick(), c.ID, c.Kind, s.owner, 0, true, c.Shield))
		return
	}
	a.emit(event.NewDamageEvent(a.eventTick(), c.ID, c.Kind, s.owner, res.Dealt, false, c.Health))
	if s.text && res.Dealt > 0 {
		a.label(c.Position, fmt.Sprintf("-%.0f", res.Dealt), entity.ToneDamage)
	}
	if !res.Destroyed {
		return
	}

	if c.Kind == entity.KindPlayer {
		if a.respawnPending {
			return
		}
		a.respawnPending = true
		a.explode(c.Position, a.cfg.Effects.ExplosionSize)
		a.label(c.Position, "Ship destroyed", entity.ToneAlert)
		return
	}
	a.destroyBody(&c.BaseEntity, c.Kind, a.cfg.Opponent.Reward, s)
	if s.credit {
		a.label(c.Position, fmt.Sprintf("+%d", a.cfg.Opponent.Reward), entity.ToneReward)
	}
}

// destroyBody removes a body from play with an explosion, crediting the
// player when the strike earns it
func (a *Arena) destroyBody(e *entity.BaseEntity, kind entity.Kind, reward int, s strike) {
	e.Deactivate()
	a.explode(e.Position, a.cfg.Effects.ExplosionSize)
	a.emit(event.NewDestroyedEvent(a.eventTick(), e.ID, kind, e.Position, 0))
	if s.credit {
		a.award(reward, kind)
	}
}

// destroyDebris breaks a rock up. Rocks above the split threshold leave two
// half-radius fragments at their last position; grace sets the fragments'
// contact grace period.
func (a *Arena) destroyDebris(d *entity.Debris, s strike, grace float64) {
	cfg := a.cfg.Debris
	d.Deactivate()

	children := d.Split(cfg.SplitThreshold, a.rng)
	for _, child := range children {
		child.Grace = grace
	}
	a.store.AddDebris(children...)

	a.explode(d.Position, d.Radius*a.cfg.Effects.DebrisBlastRate)
	a.emit(event.NewDestroyedEvent(a.eventTick(), d.ID, entity.KindDebris, d.Position, len(children)))

	if !s.credit {
		return
	}
	reward := cfg.RewardSmall
	if len(children) > 0 {
		reward = cfg.RewardSplit
	}
	a.award(reward, entity.KindDebris)
	a.label(d.Position, fmt.Sprintf("+%d", reward), entity.ToneReward)
}
