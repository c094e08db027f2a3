// pkg/render/engo/hud.go
package engo

import (
	"fmt"
	"image/color"

	"github.com/EngoEngine/ecs"
	"github.com/EngoEngine/engo"
	"github.com/EngoEngine/engo/common"

	"github.com/opd-ai/go-skirmish/pkg/engine"
	"github.com/opd-ai/go-skirmish/pkg/wave"
)

// HUD layout in screen pixels
const (
	hudMargin    = 10
	hudBarWidth  = 200
	hudBarHeight = 12
	hudBarGap    = 6
)

var (
	hudBackColor   = color.NRGBA{40, 40, 40, 200}
	hudHealthColor = color.NRGBA{220, 50, 50, 255}
	hudShieldColor = color.NRGBA{60, 160, 255, 255}
)

// HUDSystem draws the health and shield bars and the status line in
// screen space
type HUDSystem struct {
	system spriteSystem
	font   *common.Font

	healthBack, healthBar *sprite
	shieldBack, shieldBar *sprite
	status                *sprite

	statusText string
}

// NewHUDSystem creates the HUD entities. A nil font leaves out the status
// line.
func NewHUDSystem(system spriteSystem, font *common.Font) *HUDSystem {
	hud := &HUDSystem{system: system, font: font}

	y := float32(hudMargin)
	hud.healthBack = hud.panel(hudMargin, y, hudBarWidth, hudBackColor)
	hud.healthBar = hud.panel(hudMargin, y, hudBarWidth, hudHealthColor)
	y += hudBarHeight + hudBarGap
	hud.shieldBack = hud.panel(hudMargin, y, hudBarWidth, hudBackColor)
	hud.shieldBar = hud.panel(hudMargin, y, hudBarWidth, hudShieldColor)

	if font != nil {
		hud.status = hud.add(common.Text{Font: font}, color.White)
		hud.status.Position = engo.Point{X: hudMargin, Y: y + hudBarHeight + hudBarGap}
	}
	return hud
}

func (hud *HUDSystem) panel(x, y, width float32, c color.Color) *sprite {
	s := hud.add(common.Rectangle{}, c)
	s.Position = engo.Point{X: x, Y: y}
	s.Width = width
	s.Height = hudBarHeight
	return s
}

func (hud *HUDSystem) add(drawable common.Drawable, c color.Color) *sprite {
	s := &sprite{BasicEntity: ecs.NewBasic()}
	s.Drawable = drawable
	s.Color = c
	s.SetShader(common.HUDShader)
	s.SetZIndex(zHUD)
	hud.system.Add(&s.BasicEntity, &s.RenderComponent, &s.SpaceComponent)
	return s
}

// UpdateSnapshot resizes the bars and rewrites the status line
func (hud *HUDSystem) UpdateSnapshot(snap engine.Snapshot) {
	p := snap.Player
	hud.healthBar.Width = barFill(p.Health, p.MaxHealth, hudBarWidth)
	hud.shieldBar.Width = barFill(p.Shield, p.MaxShield, hudBarWidth)
	hud.shieldBack.Hidden = p.MaxShield <= 0
	hud.shieldBar.Hidden = p.MaxShield <= 0

	hud.statusText = statusLine(snap)
	if hud.status != nil {
		hud.status.Drawable = common.Text{Font: hud.font, Text: hud.statusText}
	}
}

// StatusText returns the last status line
func (hud *HUDSystem) StatusText() string {
	return hud.statusText
}

// barFill returns the filled width of a bar showing value out of max
func barFill(value, max float64, full float32) float32 {
	if max <= 0 || value <= 0 {
		return 0
	}
	if value >= max {
		return full
	}
	return full * float32(value/max)
}

func statusLine(snap engine.Snapshot) string {
	line := fmt.Sprintf("Score %d   Wave %d", snap.Score, snap.Wave)
	if snap.WaveState == wave.Clearing {
		line += " (cleared)"
	}
	if snap.Autopilot {
		line += "   AUTOPILOT"
	}
	return line
}
