package entity

import "math"

// HitResult describes what a hit did
type HitResult struct {
	Absorbed  bool    // the shield took the hit
	Dealt     float64 // health actually removed
	Destroyed bool    // health reached zero
}

// Hull tracks health clamped to [0, MaxHealth]
type Hull struct {
	Health    float64
	MaxHealth float64
}

// NewHull returns a hull at full health
func NewHull(max float64) Hull {
	return Hull{Health: max, MaxHealth: max}
}

// Damage removes amount from health. Negative or NaN damage is ignored.
func (h *Hull) Damage(amount float64) HitResult {
	if !(amount > 0) {
		return HitResult{Destroyed: h.Health <= 0}
	}
	before := h.Health
	h.Health = math.Max(0, h.Health-amount)
	return HitResult{
		Dealt:     before - h.Health,
		Destroyed: h.Health <= 0,
	}
}

// Restore returns the hull to full health
func (h *Hull) Restore() {
	h.Health = h.MaxHealth
}

// Destroyed reports whether health is exhausted
func (h *Hull) Destroyed() bool {
	return h.Health <= 0
}

// Fraction returns health as a fraction of the maximum
func (h *Hull) Fraction() float64 {
	if h.MaxHealth <= 0 {
		return 0
	}
	return h.Health / h.MaxHealth
}

// Gun is a fire cooldown owned by the firing entity. Cooldown counts down in
// nominal ticks and resets to Delay whenever the gun fires.
type Gun struct {
	Delay    float64
	Cooldown float64
}

// Tick advances the cooldown, flooring it at zero
func (g *Gun) Tick(step float64) {
	if step <= 0 {
		return
	}
	g.Cooldown = math.Max(0, g.Cooldown-step)
}

// Ready reports whether the gun can fire this tick
func (g *Gun) Ready() bool {
	return g.Cooldown <= 0
}

// Trigger fires the gun if it is ready and reports whether it did
func (g *Gun) Trigger() bool {
	if !g.Ready() {
		return false
	}
	g.Cooldown = math.Max(0, g.Delay)
	return true
}
