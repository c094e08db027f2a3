package entity

import (
	"math"
	"math/rand/v2"

	"github.com/opd-ai/go-skirmish/pkg/physics"
)

// Fighter is a hostile swarm ship that chases the player
type Fighter struct {
	BaseEntity
	Hull
	Speed float64
	Gun   Gun
}

// NewFighter creates a fighter. The first shot is delayed by cooldown ticks.
func NewFighter(position physics.Vector2D, radius, health, speed, fireDelay, cooldown float64) *Fighter {
	return &Fighter{
		BaseEntity: newBase(position, radius),
		Hull:       NewHull(health),
		Speed:      speed,
		Gun:        Gun{Delay: fireDelay, Cooldown: math.Max(0, cooldown)},
	}
}

// GetKind returns KindFighter
func (f *Fighter) GetKind() Kind {
	return KindFighter
}

// Debris is a drifting rock. Any lethal hit destroys it and, above the split
// threshold, breaks it into two half-radius children.
type Debris struct {
	BaseEntity
	Speed    float64
	Spin     float64
	Rotation float64
	Grace    float64 // ticks during which body contacts are ignored
}

// NewDebris creates a rock drifting along heading at speed
func NewDebris(position physics.Vector2D, radius, heading, speed, spin float64) *Debris {
	d := &Debris{
		BaseEntity: newBase(position, radius),
		Speed:      speed,
		Spin:       spin,
	}
	d.Heading = heading
	d.Velocity = physics.FromAngle(heading, speed)
	return d
}

// GetKind returns KindDebris
func (d *Debris) GetKind() Kind {
	return KindDebris
}

// Drift advances position, rotation and the contact grace period
func (d *Debris) Drift(step float64) {
	d.Integrate(step)
	d.Rotation = physics.NormalizeAngle(d.Rotation + d.Spin*step)
	if d.Grace > 0 {
		d.Grace = math.Max(0, d.Grace-step)
	}
}

// Split returns the fragments left behind when the rock is destroyed: two
// half-radius children at the same position when Radius exceeds threshold,
// none otherwise. Children drift apart in opposite directions.
func (d *Debris) Split(threshold float64, rng *rand.Rand) []*Debris {
	if d.Radius <= threshold {
		return nil
	}
	heading := d.Heading
	if rng != nil {
		heading = rng.Float64() * 2 * math.Pi
	}
	children := make([]*Debris, 2)
	for i := range children {
		children[i] = NewDebris(d.Position, d.Radius/2, heading+float64(i)*math.Pi, d.Speed, d.Spin*float64(1-2*i))
	}
	return children
}

// Drone hunts civilians and fires on anything it is allowed to hurt
type Drone struct {
	BaseEntity
	Hull
	Speed       float64
	Gun         Gun
	WanderTimer float64
	TargetID    ID
}

// NewDrone creates a drone wandering along heading
func NewDrone(position physics.Vector2D, radius, health, speed, fireDelay, heading float64) *Drone {
	d := &Drone{
		BaseEntity: newBase(position, radius),
		Hull:       NewHull(health),
		Speed:      speed,
		Gun:        Gun{Delay: fireDelay, Cooldown: fireDelay},
	}
	d.Heading = heading
	d.Velocity = physics.FromAngle(heading, speed)
	return d
}

// GetKind returns KindDrone
func (d *Drone) GetKind() Kind {
	return KindDrone
}

// Civilian wanders, flees drones and may shoot back at them
type Civilian struct {
	BaseEntity
	Hull
	Speed       float64
	Gun         Gun
	Armed       bool
	WanderTimer float64
	Fleeing     bool
}

// NewCivilian creates a civilian wandering along heading
func NewCivilian(position physics.Vector2D, radius, health, speed, heading float64, armed bool, fireDelay float64) *Civilian {
	c := &Civilian{
		BaseEntity: newBase(position, radius),
		Hull:       NewHull(health),
		Speed:      speed,
		Gun:        Gun{Delay: fireDelay, Cooldown: fireDelay},
		Armed:      armed,
	}
	c.Heading = heading
	c.Velocity = physics.FromAngle(heading, speed)
	return c
}

// GetKind returns KindCivilian
func (c *Civilian) GetKind() Kind {
	return KindCivilian
}
