// pkg/render/engo/assets.go
package engo

import (
	"bytes"
	"image/color"

	"github.com/EngoEngine/engo"
	"github.com/EngoEngine/engo/common"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/opd-ai/go-skirmish/pkg/entity"
)

// fontURL is the virtual path the embedded HUD font is registered under
const fontURL = "skirmish/goregular.ttf"

// AssetManager hands out the drawables and colours used for each kind of
// body. Shapes are engo primitives so nothing has to be uploaded before the
// window exists.
type AssetManager struct {
	shapes      map[entity.Kind]common.Drawable
	kindColors  map[entity.Kind]color.NRGBA
	ownerColors map[entity.Owner]color.NRGBA
	toneColors  map[entity.Tone]color.NRGBA

	font *common.Font
}

// NewAssetManager creates an asset manager with the built-in palette
func NewAssetManager() *AssetManager {
	craft := common.Triangle{TriangleType: common.TriangleIsosceles}
	round := common.Circle{}
	return &AssetManager{
		shapes: map[entity.Kind]common.Drawable{
			entity.KindPlayer:     craft,
			entity.KindOpponent:   craft,
			entity.KindFighter:    craft,
			entity.KindDebris:     common.Circle{BorderWidth: 2, BorderColor: color.NRGBA{90, 90, 90, 255}},
			entity.KindDrone:      common.Rectangle{},
			entity.KindCivilian:   round,
			entity.KindProjectile: round,
			entity.KindBeam:       common.Rectangle{},
			entity.KindExplosion:  round,
		},
		kindColors: map[entity.Kind]color.NRGBA{
			entity.KindPlayer:    {0, 220, 255, 255},
			entity.KindOpponent:  {255, 120, 0, 255},
			entity.KindFighter:   {230, 40, 40, 255},
			entity.KindDebris:    {150, 140, 130, 255},
			entity.KindDrone:     {200, 60, 220, 255},
			entity.KindCivilian:  {80, 220, 80, 255},
			entity.KindExplosion: {255, 200, 40, 255},
		},
		ownerColors: map[entity.Owner]color.NRGBA{
			entity.OwnerPlayer:   {120, 240, 255, 255},
			entity.OwnerOpponent: {255, 160, 60, 255},
			entity.OwnerHostile:  {255, 70, 70, 255},
			entity.OwnerDrone:    {230, 110, 240, 255},
			entity.OwnerCivilian: {140, 255, 140, 255},
		},
		toneColors: map[entity.Tone]color.NRGBA{
			entity.ToneInfo:   {255, 255, 255, 255},
			entity.ToneDamage: {255, 80, 80, 255},
			entity.ToneReward: {255, 215, 0, 255},
			entity.ToneAlert:  {255, 255, 0, 255},
		},
	}
}

// LoadFont registers the embedded Go font with engo and prepares it at the
// given size. Text is skipped when no font is loaded.
func (am *AssetManager) LoadFont(size float64) error {
	if err := engo.Files.LoadReaderData(fontURL, bytes.NewReader(goregular.TTF)); err != nil {
		return err
	}
	font := &common.Font{URL: fontURL, FG: color.White, Size: size}
	if err := font.CreatePreloaded(); err != nil {
		return err
	}
	am.font = font
	return nil
}

// Font returns the loaded font or nil
func (am *AssetManager) Font() *common.Font {
	return am.font
}

// Shape returns the drawable for a kind of body
func (am *AssetManager) Shape(kind entity.Kind) common.Drawable {
	if shape, ok := am.shapes[kind]; ok {
		return shape
	}
	return common.Rectangle{}
}

// KindColor returns the body colour for a kind
func (am *AssetManager) KindColor(kind entity.Kind) color.NRGBA {
	if c, ok := am.kindColors[kind]; ok {
		return c
	}
	return color.NRGBA{255, 255, 255, 255}
}

// OwnerColor returns the colour of projectiles and beams fired by owner
func (am *AssetManager) OwnerColor(owner entity.Owner) color.NRGBA {
	if c, ok := am.ownerColors[owner]; ok {
		return c
	}
	return color.NRGBA{255, 255, 255, 255}
}

// ToneColor returns the colour of a floating text, faded by alpha
func (am *AssetManager) ToneColor(tone entity.Tone, alpha float64) color.NRGBA {
	c, ok := am.toneColors[tone]
	if !ok {
		c = am.toneColors[entity.ToneInfo]
	}
	return fade(c, alpha)
}

// fade scales the colour's alpha channel by alpha clamped to [0, 1]
func fade(c color.NRGBA, alpha float64) color.NRGBA {
	switch {
	case alpha <= 0:
		c.A = 0
	case alpha < 1:
		c.A = uint8(float64(c.A) * alpha)
	}
	return c
}
