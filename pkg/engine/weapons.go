package engine

import (
	"github.com/opd-ai/go-skirmish/pkg/entity"
	"github.com/opd-ai/go-skirmish/pkg/event"
	"github.com/opd-ai/go-skirmish/pkg/physics"
)

// weaponPhase spawns this tick's shots, then advances every projectile and
// beam. Expiry only marks the transient; Compact drops it at tick end.
func (a *Arena) weaponPhase() {
	store := a.store

	if !a.respawnPending && a.playerCmd.Fire {
		a.fireCraft(store.Player)
	}
	for i, c := range store.Opponents {
		if c.Active && a.opponentCmds[i].Fire {
			a.fireCraft(c)
		}
	}

	for i, f := range store.Fighters {
		if f.Active && a.steering.fighters[i].Fire && f.Gun.Trigger() {
			a.fireSingle(entity.OwnerHostile, &f.BaseEntity, a.steering.fighters[i].Aim)
		}
	}
	for i, d := range store.Drones {
		if d.Active && a.steering.drones[i].Fire && d.Gun.Trigger() {
			a.fireSingle(entity.OwnerDrone, &d.BaseEntity, a.steering.drones[i].Aim)
		}
	}
	for i, c := range store.Civilians {
		if c.Active && c.Armed && a.steering.civilians[i].Fire && c.Gun.Trigger() {
			a.fireSingle(entity.OwnerCivilian, &c.BaseEntity, a.steering.civilians[i].Aim)
		}
	}

	for _, p := range store.Projectiles {
		p.Advance(a.step, a.bounds)
	}
	a.advanceBeams()
}

// fireCraft fires a craft's weapon if its gun is ready
func (a *Arena) fireCraft(c *entity.Craft) {
	if !c.Gun.Trigger() {
		return
	}
	owner, _ := entity.OwnerOf(c.Kind)
	nose := c.Nose()

	if c.Weapon == entity.WeaponBeam {
		a.store.AddBeam(entity.NewBeam(owner, c.ID, nose, c.Heading, a.cfg.Weapons.Beam))
		a.emit(event.NewWeaponEvent(a.eventTick(), c.ID, owner, true, 1))
		return
	}

	spec := a.cfg.Weapons.Hostile
	if c.Kind == entity.KindPlayer {
		spec = a.cfg.Weapons.Player
	}
	shots := a.spread.Fire(owner, c.ID, nose, c.Heading, spec)
	a.store.AddProjectiles(shots...)
	a.emit(event.NewWeaponEvent(a.eventTick(), c.ID, owner, false, len(shots)))
}

// fireSingle launches one hostile-spec projectile from the shooter's rim
func (a *Arena) fireSingle(owner entity.Owner, shooter *entity.BaseEntity, aim float64) {
	muzzle := shooter.Position.Add(physics.FromAngle(aim, shooter.Radius))
	a.store.AddProjectiles(entity.NewProjectile(owner, shooter.ID, muzzle, aim, a.cfg.Weapons.Hostile))
	a.emit(event.NewWeaponEvent(a.eventTick(), shooter.ID, owner, false, 1))
}

// advanceBeams re-anchors every beam on its shooter's nose and burns its
// duration. A beam whose shooter is gone expires with it.
func (a *Arena) advanceBeams() {
	for _, b := range a.store.Beams {
		if !b.Active {
			continue
		}
		shooter, ok := a.beamShooter(b.ShooterID)
		if !ok {
			b.Deactivate()
			continue
		}
		b.Follow(shooter.Nose(), shooter.Heading)
		b.Advance(a.step, a.bounds)
	}
}

func (a *Arena) beamShooter(id entity.ID) (*entity.Craft, bool) {
	if p := a.store.Player; p != nil && p.ID == id {
		return p, !a.respawnPending
	}
	for _, c := range a.store.Opponents {
		if c.ID == id && c.Active {
			return c, true
		}
	}
	return nil, false
}
