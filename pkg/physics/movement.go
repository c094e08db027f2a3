package physics

import "math"

// Bounds is the world rectangle spanning [0, Width] x [0, Height]
type Bounds struct {
	Width  float64
	Height float64
}

// Center returns the middle of the world
func (b Bounds) Center() Vector2D {
	return Vector2D{X: b.Width / 2, Y: b.Height / 2}
}

// Contains reports whether p lies inside the bounds, edges included
func (b Bounds) Contains(p Vector2D) bool {
	return p.X >= 0 && p.X <= b.Width && p.Y >= 0 && p.Y <= b.Height
}

// Clamp moves p onto the nearest point inside the bounds
func (b Bounds) Clamp(p Vector2D) Vector2D {
	return Vector2D{
		X: math.Max(0, math.Min(b.Width, p.X)),
		Y: math.Max(0, math.Min(b.Height, p.Y)),
	}
}

// Wrap moves a position that crossed one edge to the opposite edge
func (b Bounds) Wrap(p Vector2D) Vector2D {
	if p.X < 0 {
		p.X = b.Width
	} else if p.X > b.Width {
		p.X = 0
	}
	if p.Y < 0 {
		p.Y = b.Height
	} else if p.Y > b.Height {
		p.Y = 0
	}
	return p
}

// SoftBounce clamps pos into the bounds. A velocity component that pushed the
// body past an edge is negated and scaled by dampening.
func (b Bounds) SoftBounce(pos, vel *Vector2D, dampening float64) {
	if pos.X < 0 {
		pos.X = 0
		if vel.X < 0 {
			vel.X = -vel.X * dampening
		}
	} else if pos.X > b.Width {
		pos.X = b.Width
		if vel.X > 0 {
			vel.X = -vel.X * dampening
		}
	}
	if pos.Y < 0 {
		pos.Y = 0
		if vel.Y < 0 {
			vel.Y = -vel.Y * dampening
		}
	} else if pos.Y > b.Height {
		pos.Y = b.Height
		if vel.Y > 0 {
			vel.Y = -vel.Y * dampening
		}
	}
}

// MovementState tracks craft physics for one integration step
type MovementState struct {
	Position Vector2D
	Velocity Vector2D
	Heading  float64 // radians
	MaxSpeed float64
	Friction float64 // per-tick velocity retention when not thrusting

	Thrusting bool
}

// UpdateMovement turns the body, applies accel, decays velocity by friction
// unless the body is thrusting, caps speed and integrates position. step is
// the number of nominal ticks the update covers.
func UpdateMovement(state *MovementState, step float64, accel Vector2D, turn float64) {
	state.Heading = NormalizeAngle(state.Heading + turn*step)

	state.Velocity = state.Velocity.Add(accel.Scale(step))
	if !state.Thrusting {
		state.Velocity = ApplyFriction(state.Velocity, state.Friction, step)
	}

	state.Velocity = CapSpeed(state.Velocity, state.MaxSpeed)
	state.Position = state.Position.Add(state.Velocity.Scale(step))
}

// ApplyFriction decays velocity by friction for every nominal tick in step
func ApplyFriction(velocity Vector2D, friction, step float64) Vector2D {
	if friction <= 0 {
		return Vector2D{}
	}
	if friction >= 1 || step <= 0 {
		return velocity
	}
	return velocity.Scale(math.Pow(friction, step))
}

// CapSpeed rescales velocity when its magnitude exceeds max. A non-positive
// max leaves the velocity untouched.
func CapSpeed(velocity Vector2D, max float64) Vector2D {
	if max <= 0 {
		return velocity
	}
	return velocity.Limit(max)
}

// Nudge perturbs velocity components whose magnitude fell below threshold so
// a drifting body never settles into permanent stasis. rnd returns values in [0, 1).
func Nudge(velocity Vector2D, threshold, amount float64, rnd func() float64) Vector2D {
	if amount <= 0 || rnd == nil {
		return velocity
	}
	if math.Abs(velocity.X) < threshold {
		velocity.X += (rnd() - 0.5) * amount
	}
	if math.Abs(velocity.Y) < threshold {
		velocity.Y += (rnd() - 0.5) * amount
	}
	return velocity
}

// SeparationPush returns the displacement that moves a away from b when they
// are closer than radius. The push grows linearly with overlap depth and is
// scaled by factor. Coincident points produce no push.
func SeparationPush(a, b Vector2D, radius, factor float64) Vector2D {
	d := a.Distance(b)
	if d >= radius || factor <= 0 {
		return Vector2D{}
	}
	return b.Direction(a).Scale((radius - d) * factor)
}
