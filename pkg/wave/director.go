// Package wave implements the director that notices a cleared arena and
// schedules the next, harder wave.
package wave

import (
	"math"

	"github.com/opd-ai/go-skirmish/pkg/config"
)

// State is the director's state
type State int

const (
	// Active means hostiles remain in the arena
	Active State = iota
	// Clearing means the arena is empty and a respawn is pending
	Clearing
)

func (s State) String() string {
	if s == Clearing {
		return "clearing"
	}
	return "active"
}

// Transition is what an Update call changed
type Transition int

const (
	None Transition = iota
	Cleared
	Advanced
)

// Scaling holds the population and difficulty parameters for one wave
type Scaling struct {
	Fighters         int
	Drones           int
	Opponents        int
	FighterHealth    float64
	FighterSpeed     float64
	FighterFireDelay float64
}

// BaseScaling derives wave one from the arena configuration
func BaseScaling(cfg *config.ArenaConfig) Scaling {
	return Scaling{
		Fighters:         cfg.Fighter.Count,
		Drones:           cfg.Drone.Count,
		Opponents:        cfg.Opponent.Count,
		FighterHealth:    cfg.Fighter.Health,
		FighterSpeed:     cfg.Fighter.Speed,
		FighterFireDelay: cfg.Fighter.FireDelay,
	}
}

// Next returns the scaling of the following wave. Every parameter moves
// monotonically toward a harder wave; fire delay never drops below the floor.
func (s Scaling) Next(cfg config.WaveConfig) Scaling {
	next := s
	next.Fighters = s.Fighters + cfg.FighterStep
	if cfg.MaxFighters > 0 && next.Fighters > cfg.MaxFighters {
		next.Fighters = max(cfg.MaxFighters, s.Fighters)
	}
	next.Drones = s.Drones + cfg.DroneStep
	if cfg.MaxDrones > 0 && next.Drones > cfg.MaxDrones {
		next.Drones = max(cfg.MaxDrones, s.Drones)
	}
	next.FighterHealth = s.FighterHealth + cfg.HealthStep
	next.FighterSpeed = s.FighterSpeed + cfg.SpeedStep
	next.FighterFireDelay = math.Min(s.FighterFireDelay, math.Max(cfg.MinFireDelay, s.FighterFireDelay-cfg.FireDelayStep))
	return next
}

// Director is a two-state machine driven by population counts only. Time
// is the simulation clock in seconds, so a pending respawn is a deadline
// checked every tick rather than a timer.
type Director struct {
	cfg      config.WaveConfig
	state    State
	wave     int
	pending  bool
	deadline float64
	scaling  Scaling
}

// NewDirector creates a director on wave one
func NewDirector(cfg config.WaveConfig, base Scaling) *Director {
	return &Director{cfg: cfg, wave: 1, scaling: base}
}

// Update observes the number of tracked hostiles at time now. It enters
// Clearing exactly once per empty arena and returns to Active once the
// respawn delay has elapsed, scaling the next wave.
func (d *Director) Update(now float64, hostiles int) Transition {
	switch d.state {
	case Active:
		if hostiles > 0 || d.pending {
			return None
		}
		d.state = Clearing
		d.pending = true
		d.deadline = now + math.Max(0, d.cfg.RespawnDelay)
		return Cleared
	case Clearing:
		if now < d.deadline {
			return None
		}
		d.scaling = d.scaling.Next(d.cfg)
		d.wave++
		d.state = Active
		d.pending = false
		return Advanced
	}
	return None
}

// Reset returns the director to wave one
func (d *Director) Reset(base Scaling) {
	*d = Director{cfg: d.cfg, wave: 1, scaling: base}
}

// State returns the current state
func (d *Director) State() State { return d.state }

// Wave returns the current wave number, starting at 1
func (d *Director) Wave() int { return d.wave }

// Pending reports whether a respawn is scheduled
func (d *Director) Pending() bool { return d.pending }

// Deadline returns the simulation time the pending respawn is due
func (d *Director) Deadline() float64 { return d.deadline }

// Scaling returns the parameters of the current wave
func (d *Director) Scaling() Scaling { return d.scaling }
