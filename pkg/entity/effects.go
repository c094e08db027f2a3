package entity

import (
	"math"

	"github.com/opd-ai/go-skirmish/pkg/physics"
)

// Explosion is presentation-only feedback left where something died
type Explosion struct {
	ID       ID
	Position physics.Vector2D
	Size     float64
	Life     float64
	MaxLife  float64
}

// NewExplosion creates an explosion lasting life ticks
func NewExplosion(position physics.Vector2D, size, life float64) *Explosion {
	return &Explosion{ID: NewID(), Position: position, Size: size, Life: life, MaxLife: life}
}

// Alpha fades linearly from 1 to 0 over the explosion's life
func (e *Explosion) Alpha() float64 {
	if e.MaxLife <= 0 {
		return 0
	}
	return math.Max(0, e.Life/e.MaxLife)
}

// Advance ages the explosion
func (e *Explosion) Advance(step float64) {
	e.Life = math.Max(0, e.Life-math.Max(0, step))
}

// IsActive reports whether the explosion is still visible
func (e *Explosion) IsActive() bool {
	return e.Life > 0
}

// Tone hints how a floating text should be coloured
type Tone int

const (
	ToneInfo Tone = iota
	ToneDamage
	ToneReward
	ToneAlert
)

// FloatingText is a rising, fading label such as "-10" or "+150"
type FloatingText struct {
	ID       ID
	Position physics.Vector2D
	Text     string
	Tone     Tone
	Life     float64
	Alpha    float64
	Rise     float64
	Fade     float64
}

// NewFloatingText creates a label at position
func NewFloatingText(position physics.Vector2D, text string, tone Tone, life, rise, fade float64) *FloatingText {
	return &FloatingText{
		ID:       NewID(),
		Position: position,
		Text:     text,
		Tone:     tone,
		Life:     life,
		Alpha:    1,
		Rise:     rise,
		Fade:     fade,
	}
}

// Advance floats the label upward and fades it
func (ft *FloatingText) Advance(step float64) {
	if step <= 0 {
		return
	}
	ft.Position.Y -= ft.Rise * step
	ft.Alpha = math.Max(0, ft.Alpha-ft.Fade*step)
	ft.Life = math.Max(0, ft.Life-step)
}

// IsActive reports whether the label is still visible
func (ft *FloatingText) IsActive() bool {
	return ft.Life > 0 && ft.Alpha > 0
}
