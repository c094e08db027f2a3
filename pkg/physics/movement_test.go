package physics

import (
	"math"
	"testing"
)

var testBounds = Bounds{Width: 4000, Height: 4000}

func TestBounds_Wrap(t *testing.T) {
	tests := []struct {
		name     string
		input    Vector2D
		expected Vector2D
	}{
		{"inside", Vector2D{X: 10, Y: 10}, Vector2D{X: 10, Y: 10}},
		{"past_left", Vector2D{X: -40, Y: 100}, Vector2D{X: 4000, Y: 100}},
		{"past_right", Vector2D{X: 4001, Y: 100}, Vector2D{X: 0, Y: 100}},
		{"past_top", Vector2D{X: 5, Y: -1}, Vector2D{X: 5, Y: 4000}},
		{"past_bottom", Vector2D{X: 5, Y: 4040}, Vector2D{X: 5, Y: 0}},
		{"corner", Vector2D{X: -1, Y: 4001}, Vector2D{X: 4000, Y: 0}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := testBounds.Wrap(tt.input)
			if got != tt.expected {
				t.Errorf("Wrap(%v) = %v, expected %v", tt.input, got, tt.expected)
			}
			if !testBounds.Contains(got) {
				t.Errorf("Wrap(%v) left the world: %v", tt.input, got)
			}
		})
	}
}

func TestBounds_SoftBounce(t *testing.T) {
	tests := []struct {
		name        string
		pos, vel    Vector2D
		expectedPos Vector2D
		expectedVel Vector2D
	}{
		{
			name:        "outward_left_is_reflected_and_damped",
			pos:         Vector2D{X: -2, Y: 50},
			vel:         Vector2D{X: -2, Y: 1},
			expectedPos: Vector2D{X: 0, Y: 50},
			expectedVel: Vector2D{X: 1.4, Y: 1},
		},
		{
			name:        "inward_velocity_kept",
			pos:         Vector2D{X: 4003, Y: 50},
			vel:         Vector2D{X: -1, Y: 0},
			expectedPos: Vector2D{X: 4000, Y: 50},
			expectedVel: Vector2D{X: -1, Y: 0},
		},
		{
			name:        "bottom_edge",
			pos:         Vector2D{X: 10, Y: 4010},
			vel:         Vector2D{X: 0, Y: 3},
			expectedPos: Vector2D{X: 10, Y: 4000},
			expectedVel: Vector2D{X: 0, Y: -2.1},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pos, vel := tt.pos, tt.vel
			testBounds.SoftBounce(&pos, &vel, 0.7)
			if !vecAlmostEqual(pos, tt.expectedPos) || !vecAlmostEqual(vel, tt.expectedVel) {
				t.Errorf("SoftBounce() = pos %v vel %v, expected pos %v vel %v", pos, vel, tt.expectedPos, tt.expectedVel)
			}
		})
	}
}

func TestUpdateMovement_ThrustCapsSpeed(t *testing.T) {
	state := MovementState{
		Position: Vector2D{X: 100, Y: 100},
		Velocity:  Vector2D{X: 2.99, Y: 0},
		MaxSpeed:  3,
		Friction:  0.99,
		Thrusting: true,
	}
	UpdateMovement(&state, 1, Vector2D{X: 1, Y: 0}, 0)

	if !almostEqual(state.Velocity.Length(), 3) {
		t.Errorf("speed = %v, expected cap of 3", state.Velocity.Length())
	}
	if !almostEqual(state.Position.X, 103) {
		t.Errorf("position.X = %v, expected 103", state.Position.X)
	}
}

func TestUpdateMovement_FrictionWhenIdle(t *testing.T) {
	state := MovementState{Velocity: Vector2D{X: 1, Y: 0}, MaxSpeed: 3, Friction: 0.99}
	UpdateMovement(&state, 1, Vector2D{}, math.Pi/90)

	if !almostEqual(state.Velocity.X, 0.99) {
		t.Errorf("velocity.X = %v, expected 0.99", state.Velocity.X)
	}
	if !almostEqual(state.Heading, math.Pi/90) {
		t.Errorf("heading = %v, expected %v", state.Heading, math.Pi/90)
	}
}

func TestUpdateMovement_FrictionWithoutThrust(t *testing.T) {
	tests := []struct {
		name      string
		thrusting bool
		expectX   float64
	}{
		{"coasting_under_push", false, 1.1 * 0.99},
		{"thrusting", true, 1.1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			state := MovementState{Velocity: Vector2D{X: 1}, MaxSpeed: 3, Friction: 0.99, Thrusting: tt.thrusting}
			UpdateMovement(&state, 1, Vector2D{X: 0.1}, 0)
			if !almostEqual(state.Velocity.X, tt.expectX) {
				t.Errorf("velocity.X = %v, expected %v", state.Velocity.X, tt.expectX)
			}
		})
	}
}

func TestApplyFriction_ScalesWithStep(t *testing.T) {
	got := ApplyFriction(Vector2D{X: 1}, 0.5, 2)
	if !almostEqual(got.X, 0.25) {
		t.Errorf("ApplyFriction() = %v, expected 0.25", got.X)
	}
	if got := ApplyFriction(Vector2D{X: 1}, 0.5, 0); got.X != 1 {
		t.Errorf("zero step should not decay, got %v", got.X)
	}
}

func TestNudge(t *testing.T) {
	rnd := func() float64 { return 1 }
	got := Nudge(Vector2D{X: 0, Y: 2}, 0.001, 0.02, rnd)
	if !almostEqual(got.X, 0.01) || got.Y != 2 {
		t.Errorf("Nudge() = %v, expected (0.01, 2)", got)
	}
	if got := Nudge(Vector2D{}, 0.001, 0, rnd); !got.IsZero() {
		t.Errorf("zero amount must not nudge, got %v", got)
	}
}

func TestSeparationPush(t *testing.T) {
	tests := []struct {
		name     string
		a, b     Vector2D
		expected Vector2D
	}{
		{"overlapping", Vector2D{X: 10, Y: 0}, Vector2D{X: 0, Y: 0}, Vector2D{X: 1.5, Y: 0}},
		{"outside_radius", Vector2D{X: 50, Y: 0}, Vector2D{X: 0, Y: 0}, Vector2D{}},
		{"coincident", Vector2D{X: 3, Y: 3}, Vector2D{X: 3, Y: 3}, Vector2D{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SeparationPush(tt.a, tt.b, 40, 0.05)
			if !vecAlmostEqual(got, tt.expected) {
				t.Errorf("SeparationPush() = %v, want %v", got, tt.expected)
			}
		})
	}
}
