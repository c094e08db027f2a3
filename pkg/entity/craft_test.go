package entity

import (
	"math"
	"testing"

	"github.com/opd-ai/go-skirmish/pkg/config"
	"github.com/opd-ai/go-skirmish/pkg/physics"
)

func newTestCraft() *Craft {
	return NewCraft(KindPlayer, config.DefaultConfig().Player, physics.Vector2D{X: 500, Y: 500})
}

func TestNewCraft(t *testing.T) {
	c := newTestCraft()
	if c.Health != 100 || c.MaxHealth != 100 {
		t.Errorf("health = %v/%v", c.Health, c.MaxHealth)
	}
	if c.Shield != 100 || c.ShieldActive {
		t.Errorf("shield = %v active=%v", c.Shield, c.ShieldActive)
	}
	if c.Radius != 20 || !c.Active || c.ID == 0 {
		t.Errorf("base = %+v", c.BaseEntity)
	}
	if c.Weapon != WeaponSpread {
		t.Errorf("weapon = %v", c.Weapon)
	}
}

func TestCraft_TakeHit(t *testing.T) {
	tests := []struct {
		name           string
		shieldActive   bool
		shield         float64
		health         float64
		damage         float64
		expectAbsorbed bool
		expectHealth   float64
		expectShield   float64
		expectDead     bool
	}{
		{"shield_absorbs_fully", true, 50, 100, 15, true, 100, 40, false},
		{"shield_floors_at_zero", true, 5, 100, 15, true, 100, 0, false},
		{"empty_shield_bypassed", true, 0, 100, 15, false, 85, 0, false},
		{"lowered_shield_ignored", false, 100, 100, 15, false, 85, 100, false},
		{"lethal_hit_clamps", false, 0, 10, 15, false, 0, 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestCraft()
			c.ShieldActive = tt.shieldActive
			c.Shield = tt.shield
			c.Health = tt.health

			res := c.TakeHit(tt.damage)
			if res.Absorbed != tt.expectAbsorbed {
				t.Errorf("Absorbed = %v, want %v", res.Absorbed, tt.expectAbsorbed)
			}
			if c.Health != tt.expectHealth {
				t.Errorf("Health = %v, want %v", c.Health, tt.expectHealth)
			}
			if c.Shield != tt.expectShield {
				t.Errorf("Shield = %v, want %v", c.Shield, tt.expectShield)
			}
			if res.Destroyed != tt.expectDead {
				t.Errorf("Destroyed = %v, want %v", res.Destroyed, tt.expectDead)
			}
		})
	}
}

func TestCraft_RegenShield(t *testing.T) {
	c := newTestCraft()
	c.Shield = 99.99
	c.RegenShield(1)
	if c.Shield != 100 {
		t.Errorf("Shield = %v, expected cap at 100", c.Shield)
	}

	c.Shield = 50
	c.ShieldActive = true
	c.RegenShield(10)
	if c.Shield != 50 {
		t.Errorf("raised shield regenerated to %v", c.Shield)
	}
}

func TestCraft_Move(t *testing.T) {
	t.Run("thrust_along_heading", func(t *testing.T) {
		c := newTestCraft()
		c.Move(1, 0, 1, physics.Vector2D{})
		if !almostEqual(c.Velocity.X, 0.02) || c.Velocity.Y != 0 {
			t.Errorf("Velocity = %v", c.Velocity)
		}
		if !c.Thrusting {
			t.Error("Thrusting should be set")
		}
	})

	t.Run("turn_without_thrust_applies_friction", func(t *testing.T) {
		c := newTestCraft()
		c.Velocity = physics.Vector2D{X: 1}
		c.Move(1, -1, 0, physics.Vector2D{})
		if !almostEqual(c.Heading, -math.Pi/90) {
			t.Errorf("Heading = %v", c.Heading)
		}
		if !almostEqual(c.Velocity.X, 0.99) {
			t.Errorf("Velocity = %v", c.Velocity)
		}
	})

	t.Run("dodge_without_thrust_applies_friction", func(t *testing.T) {
		c := newTestCraft()
		c.Velocity = physics.Vector2D{X: 1}
		c.Move(1, 0, 0, physics.Vector2D{Y: 0.1})
		if !almostEqual(c.Velocity.X, 0.99) || !almostEqual(c.Velocity.Y, 0.099) {
			t.Errorf("Velocity = %v, expected {0.99 0.099}", c.Velocity)
		}
	})

	t.Run("speed_capped", func(t *testing.T) {
		c := newTestCraft()
		c.Velocity = physics.Vector2D{X: 3}
		c.Move(1, 0, 1, physics.Vector2D{X: 5})
		if c.Velocity.Length() > c.MaxSpeed+epsilon {
			t.Errorf("speed %v above cap", c.Velocity.Length())
		}
	})
}

func TestCraft_Respawn(t *testing.T) {
	c := newTestCraft()
	c.Health = 0
	c.Shield = 3
	c.Velocity = physics.Vector2D{X: 2, Y: 2}
	c.Heading = 1.5
	c.Gun.Cooldown = 7

	center := physics.Vector2D{X: 2000, Y: 2000}
	c.Respawn(center)

	if c.Health != 100 || c.Shield != 100 {
		t.Errorf("health/shield = %v/%v", c.Health, c.Shield)
	}
	if c.Position != center || !c.Velocity.IsZero() || c.Heading != 0 {
		t.Errorf("kinematics not reset: %+v", c.BaseEntity)
	}
	if !c.Gun.Ready() {
		t.Error("gun should be ready after respawn")
	}
}

func TestWeaponKindFromString(t *testing.T) {
	if WeaponKindFromString("beam") != WeaponBeam {
		t.Error("beam not parsed")
	}
	if WeaponKindFromString("anything") != WeaponSpread {
		t.Error("unknown weapon should default to spread")
	}
}
