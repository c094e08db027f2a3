package engine

import (
	"cmp"
	"slices"

	"github.com/opd-ai/go-skirmish/pkg/entity"
	"github.com/opd-ai/go-skirmish/pkg/physics"
)

// indexPad grows the spatial index past the world edges so bodies sitting
// exactly on an edge still insert.
const indexPad = 128

// body addresses one collidable entity by kind and Store index
type body struct {
	kind entity.Kind
	idx  int
}

// targetRank fixes the order a projectile scans its candidates in. The
// first match wins, so this order is the tie-break between overlapping
// targets.
var targetRank = map[entity.Kind]int{
	entity.KindFighter:  0,
	entity.KindOpponent: 1,
	entity.KindDrone:    2,
	entity.KindDebris:   3,
	entity.KindPlayer:   4,
	entity.KindCivilian: 5,
}

func (a *Arena) indexBoundary() physics.Rect {
	return physics.Rect{
		Center: a.bounds.Center(),
		Width:  a.bounds.Width + 2*indexPad,
		Height: a.bounds.Height + 2*indexPad,
	}
}

// collisionPhase resolves separation first, then every damaging contact
func (a *Arena) collisionPhase() {
	a.buildIndex()
	a.separate()
	reach := a.buildIndex()
	a.resolveProjectiles(reach)
	a.resolveBeams(reach)
	a.resolveBodies(reach)
}

// buildIndex loads every live body into the quadtree and returns the
// largest body radius, which bounds how far a query must reach.
func (a *Arena) buildIndex() float64 {
	a.index.Clear()
	a.overflow = a.overflow[:0]
	reach := 0.0

	add := func(kind entity.Kind, idx int, e *entity.BaseEntity) {
		if !e.Active {
			return
		}
		if !a.index.Insert(e.Position, body{kind: kind, idx: idx}) {
			a.overflow = append(a.overflow, body{kind: kind, idx: idx})
		}
		reach = max(reach, e.Radius)
	}

	store := a.store
	for i, f := range store.Fighters {
		add(entity.KindFighter, i, &f.BaseEntity)
	}
	for i, c := range store.Opponents {
		add(entity.KindOpponent, i, &c.BaseEntity)
	}
	for i, d := range store.Drones {
		add(entity.KindDrone, i, &d.BaseEntity)
	}
	for i, d := range store.Debris {
		add(entity.KindDebris, i, &d.BaseEntity)
	}
	if !a.respawnPending {
		add(entity.KindPlayer, 0, &store.Player.BaseEntity)
	}
	for i, c := range store.Civilians {
		add(entity.KindCivilian, i, &c.BaseEntity)
	}
	return reach
}

// candidates returns the bodies whose centers fall in area, in target rank
// then Store order
func (a *Arena) candidates(area physics.Rect) []body {
	found := a.index.Query(area)
	found = append(found, a.overflow...)
	slices.SortFunc(found, func(x, y body) int {
		if c := cmp.Compare(targetRank[x.kind], targetRank[y.kind]); c != 0 {
			return c
		}
		return cmp.Compare(x.idx, y.idx)
	})
	return found
}

// bodyAt resolves a body to its entity, reporting false once it has left
// play this tick
func (a *Arena) bodyAt(b body) (*entity.BaseEntity, bool) {
	store := a.store
	var e *entity.BaseEntity
	switch b.kind {
	case entity.KindPlayer:
		if a.respawnPending {
			return nil, false
		}
		e = &store.Player.BaseEntity
	case entity.KindOpponent:
		e = &store.Opponents[b.idx].BaseEntity
	case entity.KindFighter:
		e = &store.Fighters[b.idx].BaseEntity
	case entity.KindDrone:
		e = &store.Drones[b.idx].BaseEntity
	case entity.KindCivilian:
		e = &store.Civilians[b.idx].BaseEntity
	case entity.KindDebris:
		e = &store.Debris[b.idx].BaseEntity
	default:
		return nil, false
	}
	return e, e.Active
}

// separate pushes overlapping fighters apart and keeps fighters clear of
// the opposing craft. These forces never damage.
func (a *Arena) separate() {
	cfg := a.cfg.Fighter
	fighters := a.store.Fighters

	for i, f := range fighters {
		if !f.Active {
			continue
		}
		for _, b := range a.index.Query(physics.SquareAround(f.Position, cfg.SeparationRadius)) {
			if b.kind != entity.KindFighter || b.idx <= i || !fighters[b.idx].Active {
				continue
			}
			other := fighters[b.idx]
			push := physics.SeparationPush(f.Position, other.Position, cfg.SeparationRadius, cfg.SeparationFactor*a.step)
			f.Position = f.Position.Add(push)
			other.Position = a.bounds.Wrap(other.Position.Sub(push))
		}

		for _, c := range a.store.Opponents {
			if c.Active {
				push := physics.SeparationPush(f.Position, c.Position, a.cfg.Opponent.CraftAvoidance, a.cfg.Opponent.AvoidanceFactor*a.step)
				f.Position = f.Position.Add(push)
			}
		}
		f.Position = a.bounds.Wrap(f.Position)
	}
}

// resolveProjectiles tests each projectile against the bodies its owner may
// damage. A projectile is spent on its first hit.
func (a *Arena) resolveProjectiles(reach float64) {
	shots := a.store.Projectiles
	for _, p := range shots {
		if !p.Active {
			continue
		}
		collider := p.GetCollider()
		for _, b := range a.candidates(physics.SquareAround(p.Position, p.Radius+reach)) {
			if !p.Owner.CanDamage(b.kind) {
				continue
			}
			target, ok := a.bodyAt(b)
			if !ok || !collider.Collides(target.GetCollider()) {
				continue
			}
			p.Deactivate()
			a.hit(b, strike{owner: p.Owner, damage: p.Damage, credit: p.Owner == entity.OwnerPlayer, text: true})
			break
		}
	}
}

// resolveBeams damages every body a beam's segment passes through this tick
func (a *Arena) resolveBeams(reach float64) {
	for _, beam := range a.store.Beams {
		if !beam.Active {
			continue
		}
		seg := beam.Segment()
		for _, b := range a.candidates(seg.Bounds(reach)) {
			if !beam.Owner.CanDamage(b.kind) {
				continue
			}
			target, ok := a.bodyAt(b)
			if !ok || target.ID == beam.ShooterID || !seg.Hits(target.GetCollider()) {
				continue
			}
			a.hit(b, strike{owner: beam.Owner, damage: beam.DamagePerTick * a.step, credit: beam.Owner == entity.OwnerPlayer})
		}
	}
}

// resolveBodies applies debris contacts to the piloted craft. The debris
// breaks up; its fragments ignore contacts for a grace period.
func (a *Arena) resolveBodies(reach float64) {
	crafts := make([]body, 0, 1+len(a.store.Opponents))
	crafts = append(crafts, body{kind: entity.KindPlayer})
	for i := range a.store.Opponents {
		crafts = append(crafts, body{kind: entity.KindOpponent, idx: i})
	}

	for _, cb := range crafts {
		craftBase, ok := a.bodyAt(cb)
		if !ok {
			continue
		}
		for _, b := range a.candidates(physics.SquareAround(craftBase.Position, craftBase.Radius+reach)) {
			if b.kind != entity.KindDebris {
				continue
			}
			d := a.store.Debris[b.idx]
			if !d.Active || d.Grace > 0 || !craftBase.GetCollider().Collides(d.GetCollider()) {
				continue
			}
			a.hit(cb, strike{owner: entity.OwnerHostile, damage: a.cfg.Debris.BodyDamage, text: true})
			a.destroyDebris(d, strike{}, a.cfg.Debris.GraceTicks)
			if _, alive := a.bodyAt(cb); !alive {
				break
			}
		}
	}
}
