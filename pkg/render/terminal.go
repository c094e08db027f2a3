package render

import (
	"context"
	"fmt"
	"math"

	"github.com/gdamore/tcell/v2"

	"github.com/opd-ai/go-skirmish/pkg/engine"
	"github.com/opd-ai/go-skirmish/pkg/entity"
	"github.com/opd-ai/go-skirmish/pkg/logging"
	"github.com/opd-ai/go-skirmish/pkg/physics"
)

// hudRows is the number of rows reserved below the playfield
const hudRows = 2

var (
	styleDefault   = tcell.StyleDefault.Background(tcell.ColorBlack).Foreground(tcell.ColorWhite)
	stylePlayer    = styleDefault.Foreground(tcell.ColorAqua).Bold(true)
	styleShielded  = styleDefault.Foreground(tcell.ColorBlack).Background(tcell.ColorAqua)
	styleOpponent  = styleDefault.Foreground(tcell.ColorOrangeRed).Bold(true)
	styleFighter   = styleDefault.Foreground(tcell.ColorRed)
	styleDebris    = styleDefault.Foreground(tcell.ColorSilver)
	styleDrone     = styleDefault.Foreground(tcell.ColorFuchsia)
	styleCivilian  = styleDefault.Foreground(tcell.ColorLime)
	styleExplosion = styleDefault.Foreground(tcell.ColorYellow).Bold(true)
	styleHUD       = styleDefault.Foreground(tcell.ColorLime)
	styleHelp      = styleDefault.Foreground(tcell.ColorGray)
	styleAlert     = styleDefault.Foreground(tcell.ColorYellow).Bold(true)

	ownerStyles = map[entity.Owner]tcell.Style{
		entity.OwnerPlayer:   styleDefault.Foreground(tcell.ColorAqua),
		entity.OwnerOpponent: styleDefault.Foreground(tcell.ColorOrangeRed),
		entity.OwnerHostile:  styleDefault.Foreground(tcell.ColorRed),
		entity.OwnerDrone:    styleDefault.Foreground(tcell.ColorFuchsia),
		entity.OwnerCivilian: styleDefault.Foreground(tcell.ColorLime),
	}

	toneStyles = map[entity.Tone]tcell.Style{
		entity.ToneInfo:   styleDefault,
		entity.ToneDamage: styleDefault.Foreground(tcell.ColorRed),
		entity.ToneReward: styleDefault.Foreground(tcell.ColorGold),
		entity.ToneAlert:  styleAlert,
	}

	// indexed by heading octant, starting east and turning clockwise on
	// screen (world y grows downwards)
	headingGlyphs = [8]rune{'>', '\\', 'v', '/', '<', '\\', '^', '/'}
)

// TerminalRenderer draws snapshots as characters on a tcell screen. The
// camera view is scaled to fill the screen above the HUD rows.
type TerminalRenderer struct {
	screen tcell.Screen
	logger *logging.Logger
	width  int
	height int
	view   physics.Rect
}

// NewTerminalRenderer creates a renderer over an initialized screen
func NewTerminalRenderer(screen tcell.Screen, logger *logging.Logger) *TerminalRenderer {
	if logger == nil {
		logger = logging.NewLogger()
	}
	screen.SetStyle(styleDefault)
	screen.HideCursor()
	return &TerminalRenderer{screen: screen, logger: logger}
}

// worldToScreen converts world coordinates to a playfield cell. ok is
// false when the point falls outside the playfield.
func (r *TerminalRenderer) worldToScreen(pos physics.Vector2D) (x, y int, ok bool) {
	if r.view.Width <= 0 || r.view.Height <= 0 || r.width <= 0 || r.height <= 0 {
		return 0, 0, false
	}
	left := r.view.Center.X - r.view.Width/2
	top := r.view.Center.Y - r.view.Height/2
	fx := math.Floor((pos.X - left) / r.view.Width * float64(r.width))
	fy := math.Floor((pos.Y - top) / r.view.Height * float64(r.height))
	if fx < 0 || fy < 0 || fx >= float64(r.width) || fy >= float64(r.height) {
		return 0, 0, false
	}
	return int(fx), int(fy), true
}

func (r *TerminalRenderer) plot(pos physics.Vector2D, ch rune, style tcell.Style) {
	if x, y, ok := r.worldToScreen(pos); ok {
		r.screen.SetContent(x, y, ch, nil, style)
	}
}

// Render implements engine.Sink
func (r *TerminalRenderer) Render(snap engine.Snapshot) error {
	cols, rows := r.screen.Size()
	r.width, r.height = cols, rows-hudRows
	r.view = snap.View
	r.screen.Clear()

	for _, d := range snap.Debris {
		ch := 'o'
		if d.Radius > 20 {
			ch = 'O'
		}
		r.plot(d.Position, ch, styleDebris)
	}
	for _, c := range snap.Civilians {
		r.plot(c.Position, 'c', styleCivilian)
	}
	for _, d := range snap.Drones {
		r.plot(d.Position, 'd', styleDrone)
	}
	for _, f := range snap.Fighters {
		r.plot(f.Position, 'F', styleFighter)
	}
	for _, c := range snap.Opponents {
		r.plot(c.Position, headingGlyph(c.Heading), styleOpponent)
	}
	for _, b := range snap.Beams {
		r.drawBeam(b)
	}
	for _, p := range snap.Projectiles {
		r.plot(p.Position, '.', ownerStyles[p.Owner])
	}
	for _, e := range snap.Explosions {
		r.plot(e.Position, '*', styleExplosion)
	}

	if snap.Player.Health > 0 {
		style := stylePlayer
		if snap.Player.ShieldActive {
			style = styleShielded
		}
		r.plot(snap.Player.Position, headingGlyph(snap.Player.Heading), style)
	}

	for _, t := range snap.Texts {
		r.drawText(t)
	}
	r.drawHUD(snap, cols, rows)

	r.screen.Show()
	return nil
}

func (r *TerminalRenderer) drawBeam(b engine.BeamState) {
	sx, sy := r.cellOf(b.Start)
	ex, ey := r.cellOf(b.End)
	steps := max(abs(ex-sx), abs(ey-sy), 1)
	style := ownerStyles[b.Owner]
	for i := 0; i <= steps; i++ {
		r.plot(b.Start.Add(b.End.Sub(b.Start).Scale(float64(i)/float64(steps))), '=', style)
	}
}

// cellOf is worldToScreen without the bounds test
func (r *TerminalRenderer) cellOf(pos physics.Vector2D) (int, int) {
	if r.view.Width <= 0 || r.view.Height <= 0 {
		return 0, 0
	}
	left := r.view.Center.X - r.view.Width/2
	top := r.view.Center.Y - r.view.Height/2
	return int((pos.X - left) / r.view.Width * float64(r.width)),
		int((pos.Y - top) / r.view.Height * float64(r.height))
}

func (r *TerminalRenderer) drawText(t engine.TextState) {
	x, y, ok := r.worldToScreen(t.Position)
	if !ok {
		return
	}
	style, found := toneStyles[t.Tone]
	if !found {
		style = styleDefault
	}
	if t.Alpha < 0.4 {
		style = style.Dim(true)
	}
	r.putString(x-len(t.Text)/2, y, t.Text, style, r.width)
}

func (r *TerminalRenderer) drawHUD(snap engine.Snapshot, cols, rows int) {
	if rows < hudRows {
		return
	}
	p := snap.Player
	status := fmt.Sprintf("SCORE %d  WAVE %d %s  HULL %.0f/%.0f  SHIELD %.0f/%.0f",
		snap.Score, snap.Wave, snap.WaveState, p.Health, p.MaxHealth, p.Shield, p.MaxShield)
	if snap.Autopilot {
		status += "  AUTOPILOT"
	}
	r.putString(0, rows-2, status, styleHUD, cols)
	r.putString(0, rows-1, "arrows turn/thrust  space fire  s shield  a autopilot  q quit", styleHelp, cols)
}

// putString writes text left to right, clipped to [0, limit)
func (r *TerminalRenderer) putString(x, y int, text string, style tcell.Style, limit int) {
	for _, ch := range text {
		if x >= limit {
			return
		}
		if x >= 0 {
			r.screen.SetContent(x, y, ch, nil, style)
		}
		x++
	}
}

// Close implements Renderer and restores the terminal
func (r *TerminalRenderer) Close() error {
	r.screen.Fini()
	r.logger.Debug(context.Background(), "terminal renderer closed")
	return nil
}

func headingGlyph(heading float64) rune {
	octant := int(math.Round(physics.NormalizeAngle(heading) / (math.Pi / 4)))
	return headingGlyphs[(octant%8+8)%8]
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
