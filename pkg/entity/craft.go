// pkg/entity/craft.go
package entity

import (
	"math"

	"github.com/opd-ai/go-skirmish/pkg/config"
	"github.com/opd-ai/go-skirmish/pkg/physics"
)

// WeaponKind selects the weapon a craft carries
type WeaponKind int

const (
	WeaponSpread WeaponKind = iota
	WeaponBeam
)

// WeaponKindFromString converts a config weapon name, defaulting to spread
func WeaponKindFromString(s string) WeaponKind {
	if s == "beam" {
		return WeaponBeam
	}
	return WeaponSpread
}

func (w WeaponKind) String() string {
	if w == WeaponBeam {
		return "beam"
	}
	return "spread"
}

// Craft is a piloted ship: the player's craft or an opposing craft
type Craft struct {
	BaseEntity
	Hull
	Kind            Kind
	Shield          float64
	MaxShield       float64
	ShieldActive    bool
	ShieldAbsorb    float64
	ShieldRegen     float64
	Thrust          float64
	Friction        float64
	MaxSpeed        float64
	TurnRate        float64
	BounceDampening float64
	NudgeThreshold  float64
	NudgeAmount     float64
	Weapon          WeaponKind
	Gun             Gun
	Thrusting       bool
}

// NewCraft creates a craft of the given kind at full health and shield
func NewCraft(kind Kind, cfg config.CraftConfig, position physics.Vector2D) *Craft {
	return &Craft{
		BaseEntity:      newBase(position, cfg.Radius),
		Hull:            NewHull(cfg.MaxHealth),
		Kind:            kind,
		Shield:          cfg.MaxShield,
		MaxShield:       cfg.MaxShield,
		ShieldAbsorb:    cfg.ShieldAbsorb,
		ShieldRegen:     cfg.ShieldRegen,
		Thrust:          cfg.Thrust,
		Friction:        cfg.Friction,
		MaxSpeed:        cfg.MaxSpeed,
		TurnRate:        cfg.TurnRate,
		BounceDampening: cfg.BounceDampening,
		NudgeThreshold:  cfg.NudgeThreshold,
		NudgeAmount:     cfg.NudgeAmount,
		Weapon:          WeaponKindFromString(cfg.Weapon),
		Gun:             Gun{Delay: cfg.FireDelay},
	}
}

// GetKind returns KindPlayer or KindOpponent
func (c *Craft) GetKind() Kind {
	return c.Kind
}

// ShieldUp reports whether the next hit will be absorbed
func (c *Craft) ShieldUp() bool {
	return c.ShieldActive && c.Shield > 0
}

// TakeHit applies damage, shield first. While the shield is raised and has
// energy it absorbs the whole hit and loses ShieldAbsorb energy; health is
// untouched.
func (c *Craft) TakeHit(damage float64) HitResult {
	if c.ShieldUp() {
		c.Shield = math.Max(0, c.Shield-c.ShieldAbsorb)
		return HitResult{Absorbed: true}
	}
	return c.Hull.Damage(damage)
}

// RegenShield recharges shield energy while the shield is lowered
func (c *Craft) RegenShield(step float64) {
	if c.ShieldActive || step <= 0 || c.ShieldRegen <= 0 {
		return
	}
	c.Shield = math.Min(c.MaxShield, c.Shield+c.ShieldRegen*step)
}

// Move integrates one movement step under the craft's own limits. thrust
// scales the craft's forward acceleration; extra is an additional
// world-frame acceleration such as a dodge force.
func (c *Craft) Move(step, turn, thrust float64, extra physics.Vector2D) {
	accel := extra
	if thrust != 0 {
		accel = accel.Add(physics.FromAngle(c.Heading+turn*c.TurnRate*step, c.Thrust*thrust))
	}
	c.Thrusting = thrust > 0

	state := physics.MovementState{
		Position:  c.Position,
		Velocity:  c.Velocity,
		Heading:   c.Heading,
		MaxSpeed:  c.MaxSpeed,
		Friction:  c.Friction,
		Thrusting: thrust != 0,
	}
	physics.UpdateMovement(&state, step, accel, turn*c.TurnRate)
	c.Position = state.Position
	c.Velocity = state.Velocity
	c.Heading = state.Heading
}

// Respawn resets the craft at position with full health and shield
func (c *Craft) Respawn(position physics.Vector2D) {
	c.Position = position
	c.Velocity = physics.Vector2D{}
	c.Heading = 0
	c.Hull.Restore()
	c.Shield = c.MaxShield
	c.ShieldActive = false
	c.Gun.Cooldown = 0
	c.Thrusting = false
	c.Active = true
}
