// Package ai holds the steering behaviours. Every function here is a pure
// computation over read-only state; callers apply the returned commands.
package ai

import (
	"github.com/opd-ai/go-skirmish/pkg/entity"
	"github.com/opd-ai/go-skirmish/pkg/physics"
)

// Threat is a hazard the pilot steers away from
type Threat struct {
	Position physics.Vector2D
	Velocity physics.Vector2D
	Radius   float64
}

// Target is something a pilot may chase and shoot
type Target struct {
	ID       entity.ID
	Kind     entity.Kind
	Position physics.Vector2D
	Radius   float64
}

// View is the read-only slice of the world a pilot reasons about
type View struct {
	Threats  []Threat
	Targets  []Target // preferred targets
	Fallback []Target // used only when Targets is empty
}

// ViewFor collects what matters to the craft self: transients whose owner
// may damage it, debris, the nearest point of every hostile beam, the
// hostile bodies it should hunt and debris as a fallback target.
func ViewFor(self *entity.Craft, store *entity.Store) View {
	var v View

	for _, p := range store.Projectiles {
		if p.Active && p.Owner.CanDamage(self.Kind) {
			v.Threats = append(v.Threats, Threat{Position: p.Position, Velocity: p.Velocity, Radius: p.Radius})
		}
	}
	for _, b := range store.Beams {
		if !b.Active || !b.Owner.CanDamage(self.Kind) {
			continue
		}
		seg := b.Segment()
		closest := physics.ClosestPointOnSegment(self.Position, seg.A, seg.B)
		v.Threats = append(v.Threats, Threat{Position: closest})
	}
	for _, d := range store.Debris {
		if !d.Active {
			continue
		}
		v.Threats = append(v.Threats, Threat{Position: d.Position, Velocity: d.Velocity, Radius: d.Radius})
		v.Fallback = append(v.Fallback, Target{ID: d.ID, Kind: entity.KindDebris, Position: d.Position, Radius: d.Radius})
	}

	owner, ok := entity.OwnerOf(self.Kind)
	if !ok {
		return v
	}
	add := func(id entity.ID, kind entity.Kind, pos physics.Vector2D, radius float64) {
		if owner.CanDamage(kind) {
			v.Targets = append(v.Targets, Target{ID: id, Kind: kind, Position: pos, Radius: radius})
		}
	}
	for _, f := range store.Fighters {
		if f.Active {
			add(f.ID, entity.KindFighter, f.Position, f.Radius)
		}
	}
	for _, c := range store.Opponents {
		if c.Active && c != self {
			add(c.ID, entity.KindOpponent, c.Position, c.Radius)
		}
	}
	for _, d := range store.Drones {
		if d.Active {
			add(d.ID, entity.KindDrone, d.Position, d.Radius)
		}
	}
	if store.Player != nil && store.Player != self {
		p := store.Player
		add(p.ID, entity.KindPlayer, p.Position, p.Radius)
	}
	return v
}

// Nearest returns the target closest to from. Ties keep the earlier target.
func Nearest(from physics.Vector2D, targets []Target) (Target, bool) {
	best := -1
	bestDist := 0.0
	for i, t := range targets {
		d := from.DistanceSquared(t.Position)
		if best < 0 || d < bestDist {
			best, bestDist = i, d
		}
	}
	if best < 0 {
		return Target{}, false
	}
	return targets[best], true
}
