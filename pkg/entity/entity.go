// pkg/entity/entity.go
package entity

import (
	"github.com/EngoEngine/ecs"

	"github.com/opd-ai/go-skirmish/pkg/physics"
)

// ID is a unique identifier for an entity
type ID uint64

// NewID draws a fresh identity from the ecs id space. IDs are unique for the
// life of the process and never zero.
func NewID() ID {
	return ID(ecs.NewBasic().ID())
}

// Kind tags every entity variant
type Kind int

const (
	KindPlayer Kind = iota
	KindOpponent
	KindFighter
	KindDebris
	KindDrone
	KindCivilian
	KindProjectile
	KindBeam
	KindExplosion
	KindFloatingText
)

var kindNames = [...]string{
	KindPlayer:       "player",
	KindOpponent:     "opponent",
	KindFighter:      "fighter",
	KindDebris:       "debris",
	KindDrone:        "drone",
	KindCivilian:     "civilian",
	KindProjectile:   "projectile",
	KindBeam:         "beam",
	KindExplosion:    "explosion",
	KindFloatingText: "floating_text",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "unknown"
	}
	return kindNames[k]
}

// Entity is the read-only view shared by every simulated body
type Entity interface {
	GetID() ID
	GetKind() Kind
	GetPosition() physics.Vector2D
	GetCollider() physics.Circle
	IsActive() bool
}

// BaseEntity contains the kinematic state common to all entities
type BaseEntity struct {
	ID       ID
	Position physics.Vector2D
	Velocity physics.Vector2D
	Heading  float64
	Radius   float64
	Active   bool
}

func newBase(position physics.Vector2D, radius float64) BaseEntity {
	return BaseEntity{
		ID:       NewID(),
		Position: position,
		Radius:   radius,
		Active:   true,
	}
}

// GetID returns the entity's unique identifier
func (e *BaseEntity) GetID() ID {
	return e.ID
}

// GetPosition returns the entity's position
func (e *BaseEntity) GetPosition() physics.Vector2D {
	return e.Position
}

// GetCollider returns the entity's collision shape
func (e *BaseEntity) GetCollider() physics.Circle {
	return physics.Circle{
		Center: e.Position,
		Radius: e.Radius,
	}
}

// IsActive reports whether the entity is still part of the simulation
func (e *BaseEntity) IsActive() bool {
	return e.Active
}

// Deactivate marks the entity for removal at the next compaction
func (e *BaseEntity) Deactivate() {
	e.Active = false
}

// Integrate moves the entity along its velocity for step nominal ticks
func (e *BaseEntity) Integrate(step float64) {
	e.Position = e.Position.Add(e.Velocity.Scale(step))
}

// Nose returns the point on the collider's rim along the heading
func (e *BaseEntity) Nose() physics.Vector2D {
	return e.Position.Add(physics.FromAngle(e.Heading, e.Radius))
}
