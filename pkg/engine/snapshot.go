// pkg/engine/snapshot.go
package engine

import (
	"github.com/opd-ai/go-skirmish/pkg/entity"
	"github.com/opd-ai/go-skirmish/pkg/physics"
	"github.com/opd-ai/go-skirmish/pkg/wave"
)

// Snapshot is a value copy of the arena for presentation. It shares no
// memory with the simulation.
type Snapshot struct {
	Tick      uint64
	Time      float64
	Score     int
	Wave      int
	WaveState wave.State
	Autopilot bool
	World     physics.Bounds
	View      physics.Rect // camera window in world coordinates

	Player      CraftState
	Opponents   []CraftState
	Fighters    []BodyState
	Debris      []DebrisState
	Drones      []BodyState
	Civilians   []BodyState
	Projectiles []ProjectileState
	Beams       []BeamState
	Explosions  []ExplosionState
	Texts       []TextState
}

// CraftState represents a snapshot of a piloted craft
type CraftState struct {
	ID           entity.ID
	Kind         entity.Kind
	Position     physics.Vector2D
	Velocity     physics.Vector2D
	Heading      float64
	Radius       float64
	Health       float64
	MaxHealth    float64
	Shield       float64
	MaxShield    float64
	ShieldActive bool
	Thrusting    bool
	Weapon       entity.WeaponKind
	Cooldown     float64
}

// BodyState represents a snapshot of a fighter, drone or civilian
type BodyState struct {
	ID        entity.ID
	Kind      entity.Kind
	Position  physics.Vector2D
	Velocity  physics.Vector2D
	Heading   float64
	Radius    float64
	Health    float64
	MaxHealth float64
}

// DebrisState represents a snapshot of a debris rock
type DebrisState struct {
	ID       entity.ID
	Position physics.Vector2D
	Velocity physics.Vector2D
	Radius   float64
	Rotation float64
}

// ProjectileState represents a snapshot of a projectile
type ProjectileState struct {
	ID       entity.ID
	Owner    entity.Owner
	Position physics.Vector2D
	Velocity physics.Vector2D
	Radius   float64
	Lifetime float64
}

// BeamState represents a snapshot of an active beam
type BeamState struct {
	ID       entity.ID
	Owner    entity.Owner
	Start    physics.Vector2D
	End      physics.Vector2D
	Lifetime float64
}

// ExplosionState represents a snapshot of an explosion
type ExplosionState struct {
	Position physics.Vector2D
	Size     float64
	Alpha    float64
}

// TextState represents a snapshot of a floating text
type TextState struct {
	Position physics.Vector2D
	Text     string
	Tone     entity.Tone
	Alpha    float64
}

// Snapshot copies every live entity
func (a *Arena) Snapshot() Snapshot {
	a.mu.RLock()
	defer a.mu.RUnlock()

	store := a.store
	snap := Snapshot{
		Tick:      a.tick,
		Time:      a.clock,
		Score:     a.score,
		Wave:      a.director.Wave(),
		WaveState: a.director.State(),
		Autopilot: a.intents.AutopilotEnabled,
		World:     a.bounds,
		View:      a.camera.View(),
		Player:    craftState(store.Player),
	}

	for _, c := range store.Opponents {
		if c.Active {
			snap.Opponents = append(snap.Opponents, craftState(c))
		}
	}
	for _, f := range store.Fighters {
		if f.Active {
			snap.Fighters = append(snap.Fighters, bodyState(&f.BaseEntity, &f.Hull, entity.KindFighter))
		}
	}
	for _, d := range store.Drones {
		if d.Active {
			snap.Drones = append(snap.Drones, bodyState(&d.BaseEntity, &d.Hull, entity.KindDrone))
		}
	}
	for _, c := range store.Civilians {
		if c.Active {
			snap.Civilians = append(snap.Civilians, bodyState(&c.BaseEntity, &c.Hull, entity.KindCivilian))
		}
	}
	for _, d := range store.Debris {
		if d.Active {
			snap.Debris = append(snap.Debris, DebrisState{
				ID:       d.ID,
				Position: d.Position,
				Velocity: d.Velocity,
				Radius:   d.Radius,
				Rotation: d.Rotation,
			})
		}
	}
	for _, p := range store.Projectiles {
		if p.Active {
			snap.Projectiles = append(snap.Projectiles, ProjectileState{
				ID:       p.ID,
				Owner:    p.Owner,
				Position: p.Position,
				Velocity: p.Velocity,
				Radius:   p.Radius,
				Lifetime: p.Lifetime,
			})
		}
	}
	for _, b := range store.Beams {
		if b.Active {
			seg := b.Segment()
			snap.Beams = append(snap.Beams, BeamState{ID: b.ID, Owner: b.Owner, Start: seg.A, End: seg.B, Lifetime: b.Lifetime})
		}
	}
	for _, e := range store.Explosions {
		if e.IsActive() {
			snap.Explosions = append(snap.Explosions, ExplosionState{Position: e.Position, Size: e.Size, Alpha: e.Alpha()})
		}
	}
	for _, t := range store.Texts {
		if t.IsActive() {
			snap.Texts = append(snap.Texts, TextState{Position: t.Position, Text: t.Text, Tone: t.Tone, Alpha: t.Alpha})
		}
	}
	return snap
}

func craftState(c *entity.Craft) CraftState {
	return CraftState{
		ID:           c.ID,
		Kind:         c.Kind,
		Position:     c.Position,
		Velocity:     c.Velocity,
		Heading:      c.Heading,
		Radius:       c.Radius,
		Health:       c.Health,
		MaxHealth:    c.MaxHealth,
		Shield:       c.Shield,
		MaxShield:    c.MaxShield,
		ShieldActive: c.ShieldActive,
		Thrusting:    c.Thrusting,
		Weapon:       c.Weapon,
		Cooldown:     c.Gun.Cooldown,
	}
}

func bodyState(e *entity.BaseEntity, hull *entity.Hull, kind entity.Kind) BodyState {
	return BodyState{
		ID:        e.ID,
		Kind:      kind,
		Position:  e.Position,
		Velocity:  e.Velocity,
		Heading:   e.Heading,
		Radius:    e.Radius,
		Health:    hull.Health,
		MaxHealth: hull.MaxHealth,
	}
}
