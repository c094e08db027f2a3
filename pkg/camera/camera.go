// Package camera derives the view window onto the world from the player's
// position.
package camera

import (
	"math"

	"github.com/opd-ai/go-skirmish/pkg/physics"
)

// Camera is a viewport-sized window into the world. Origin is the world
// position of the window's top-left corner.
type Camera struct {
	Origin physics.Vector2D
	Width  float64
	Height float64
	world  physics.Bounds
}

// New creates a camera of the given size over world
func New(width, height float64, world physics.Bounds) *Camera {
	return &Camera{Width: width, Height: height, world: world}
}

// Follow centres the camera on target, clamped so the window never shows
// anything outside the world. A world smaller than the viewport pins the
// origin at zero on that axis.
func (c *Camera) Follow(target physics.Vector2D) {
	c.Origin = physics.Vector2D{
		X: clampAxis(target.X-c.Width/2, c.world.Width-c.Width),
		Y: clampAxis(target.Y-c.Height/2, c.world.Height-c.Height),
	}
}

func clampAxis(v, max float64) float64 {
	if max <= 0 || math.IsNaN(v) {
		return 0
	}
	return math.Max(0, math.Min(max, v))
}

// View returns the visible world rectangle
func (c *Camera) View() physics.Rect {
	return physics.Rect{
		Center: physics.Vector2D{X: c.Origin.X + c.Width/2, Y: c.Origin.Y + c.Height/2},
		Width:  c.Width,
		Height: c.Height,
	}
}

// WorldToScreen converts a world position to viewport coordinates
func (c *Camera) WorldToScreen(p physics.Vector2D) physics.Vector2D {
	return p.Sub(c.Origin)
}

// ScreenToWorld converts viewport coordinates to a world position
func (c *Camera) ScreenToWorld(p physics.Vector2D) physics.Vector2D {
	return p.Add(c.Origin)
}

// Visible reports whether a body of the given radius at p overlaps the
// viewport grown by margin on every side.
func (c *Camera) Visible(p physics.Vector2D, radius, margin float64) bool {
	pad := radius + margin
	return p.X+pad >= c.Origin.X &&
		p.X-pad <= c.Origin.X+c.Width &&
		p.Y+pad >= c.Origin.Y &&
		p.Y-pad <= c.Origin.Y+c.Height
}
