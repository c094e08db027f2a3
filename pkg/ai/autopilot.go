package ai

import (
	"math"

	"github.com/opd-ai/go-skirmish/pkg/config"
	"github.com/opd-ai/go-skirmish/pkg/entity"
	"github.com/opd-ai/go-skirmish/pkg/physics"
)

// Command is one tick of piloting for a craft
type Command struct {
	Turn     float64          // fraction of the craft's turn rate, in [-1, 1]
	Thrust   float64          // forward thrust multiplier; negative reverses
	Accel    physics.Vector2D // extra world-frame acceleration (dodging)
	Fire     bool
	Shield   bool
	Dodge    physics.Vector2D // raw dodge vector, magnitude at most 1
	TargetID entity.ID
}

// ManualInput is the raw pilot input routed through Assist
type ManualInput struct {
	Turn      int
	Thrusting bool
	Firing    bool
	Shield    bool
}

// Autopilot flies a craft by dodging threats and hunting the nearest target.
// It keeps no memory between ticks.
type Autopilot struct {
	cfg config.AutopilotConfig
}

// NewAutopilot creates an autopilot with the given tuning
func NewAutopilot(cfg config.AutopilotConfig) *Autopilot {
	return &Autopilot{cfg: cfg}
}

// DodgeVector sums a repulsion of weight 1-d/radius from every threat whose
// surface lies within radius of self, whatever its heading. The sum is
// bounded to magnitude 1.
func DodgeVector(self *entity.Craft, threats []Threat, radius float64) physics.Vector2D {
	if radius <= 0 {
		return physics.Vector2D{}
	}
	var sum physics.Vector2D
	for _, t := range threats {
		d := self.Position.Distance(t.Position) - t.Radius - self.Radius
		if d >= radius {
			continue
		}
		away := t.Position.Direction(self.Position)
		weight := 1 - math.Max(0, d)/radius
		sum = sum.Add(away.Scale(weight))
	}
	if sum.Length() > 1 {
		sum = sum.Normalize()
	}
	return sum
}

// TurnToward returns the turn command that closes gain of the angular error
// this tick, limited to the craft's turn rate.
func TurnToward(heading, desired, gain, turnRate float64) float64 {
	if turnRate <= 0 {
		return 0
	}
	turn := gain * physics.AngleDiff(heading, desired) / turnRate
	return math.Max(-1, math.Min(1, turn))
}

// Steer computes the autopilot command for self
func (a *Autopilot) Steer(self *entity.Craft, view View) Command {
	dodge := DodgeVector(self, view.Threats, a.cfg.DodgeRadius)
	dodgeMag := dodge.Length()

	cmd := Command{
		Dodge: dodge,
		Accel: dodge.Scale(self.Thrust * a.cfg.ThrustBoost),
	}

	if dodgeMag >= a.cfg.DodgeThreshold && dodgeMag > 0 {
		cmd.Shield = a.cfg.ShieldOnDodge
		return cmd
	}

	targets := view.Targets
	if len(targets) == 0 {
		targets = view.Fallback
	}
	target, ok := Nearest(self.Position, targets)
	if !ok {
		return cmd
	}
	cmd.TargetID = target.ID

	desired := self.Position.AngleTo(target.Position)
	errAngle := physics.AngleDiff(self.Heading, desired)
	cmd.Turn = TurnToward(self.Heading, desired, a.cfg.TurnGain, self.TurnRate)

	dist := self.Position.Distance(target.Position)
	switch {
	case dist > a.cfg.FarDistance:
		cmd.Thrust = a.cfg.ThrustBoost
	case dist > a.cfg.NearDistance:
		cmd.Thrust = a.cfg.MidThrust
	default:
		cmd.Thrust = -a.cfg.ReverseThrust
	}
	cmd.Thrust *= 1 - dodgeMag

	cmd.Fire = math.Abs(errAngle) <= a.cfg.FireCone && self.Gun.Ready()
	return cmd
}

// Assist routes manual input into a command. With ManualAssist enabled the
// dodge force still nudges the craft away from threats.
func (a *Autopilot) Assist(self *entity.Craft, view View, in ManualInput) Command {
	cmd := Command{
		Turn:   float64(clampTurn(in.Turn)),
		Fire:   in.Firing,
		Shield: in.Shield,
	}
	if in.Thrusting {
		cmd.Thrust = 1
	}
	if a.cfg.ManualAssist {
		cmd.Dodge = DodgeVector(self, view.Threats, a.cfg.DodgeRadius)
		cmd.Accel = cmd.Dodge.Scale(self.Thrust * a.cfg.AssistStrength)
	}
	return cmd
}

func clampTurn(turn int) int {
	switch {
	case turn < 0:
		return -1
	case turn > 0:
		return 1
	}
	return 0
}
