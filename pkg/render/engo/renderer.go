// pkg/render/engo/renderer.go
package engo

import (
	"image/color"
	"math"

	"github.com/EngoEngine/ecs"
	"github.com/EngoEngine/engo"
	"github.com/EngoEngine/engo/common"

	"github.com/opd-ai/go-skirmish/pkg/engine"
	"github.com/opd-ai/go-skirmish/pkg/entity"
	"github.com/opd-ai/go-skirmish/pkg/physics"
)

// Z layers, back to front
const (
	zDebris float32 = iota
	zBodies
	zShots
	zPlayer
	zEffects
	zHUD
)

// spriteSystem is the part of common.RenderSystem the renderer needs
type spriteSystem interface {
	Add(basic *ecs.BasicEntity, render *common.RenderComponent, space *common.SpaceComponent)
	Remove(basic ecs.BasicEntity)
}

// sprite is one drawable engo entity
type sprite struct {
	ecs.BasicEntity
	common.RenderComponent
	common.SpaceComponent
}

// EngoRenderer mirrors arena snapshots into engo render entities. Bodies
// are keyed by arena id; explosions and texts, which carry no id, are
// drawn from reusable pools.
type EngoRenderer struct {
	system spriteSystem
	assets *AssetManager

	sprites map[entity.ID]*sprite
	seen    map[entity.ID]bool

	explosions []*sprite
	texts      []*sprite
}

// NewEngoRenderer creates a renderer drawing through system
func NewEngoRenderer(system spriteSystem, assets *AssetManager) *EngoRenderer {
	return &EngoRenderer{
		system:  system,
		assets:  assets,
		sprites: make(map[entity.ID]*sprite),
		seen:    make(map[entity.ID]bool),
	}
}

// Render implements engine.Sink
func (r *EngoRenderer) Render(snap engine.Snapshot) error {
	clear(r.seen)

	for _, d := range snap.Debris {
		s := r.body(d.ID, entity.KindDebris, zDebris)
		r.place(s, d.Position, d.Radius, degrees(d.Rotation))
	}
	for _, b := range snap.Fighters {
		r.placeBody(b, zBodies)
	}
	for _, b := range snap.Drones {
		r.placeBody(b, zBodies)
	}
	for _, b := range snap.Civilians {
		r.placeBody(b, zBodies)
	}
	for _, c := range snap.Opponents {
		s := r.body(c.ID, entity.KindOpponent, zBodies)
		r.place(s, c.Position, c.Radius, craftRotation(c.Heading))
	}
	if p := snap.Player; p.Health > 0 {
		s := r.body(p.ID, entity.KindPlayer, zPlayer)
		r.place(s, p.Position, p.Radius, craftRotation(p.Heading))
		if p.ShieldActive {
			s.Color = color.NRGBA{255, 255, 255, 255}
		}
	}
	for _, p := range snap.Projectiles {
		s := r.body(p.ID, entity.KindProjectile, zShots)
		r.place(s, p.Position, p.Radius, 0)
		s.Color = r.assets.OwnerColor(p.Owner)
	}
	for _, b := range snap.Beams {
		r.placeBeam(b)
	}
	r.sweep()

	r.drawExplosions(snap.Explosions)
	r.drawTexts(snap.Texts)
	return nil
}

func (r *EngoRenderer) placeBody(b engine.BodyState, z float32) {
	s := r.body(b.ID, b.Kind, z)
	var rotation float32
	if b.Kind == entity.KindFighter {
		rotation = craftRotation(b.Heading)
	}
	r.place(s, b.Position, b.Radius, rotation)
}

func (r *EngoRenderer) placeBeam(b engine.BeamState) {
	s := r.body(b.ID, entity.KindBeam, zShots)
	s.Width = float32(b.Start.Distance(b.End))
	s.Height = 3
	s.Rotation = degrees(b.End.Sub(b.Start).Angle())
	s.Position = point(b.Start)
	s.Color = r.assets.OwnerColor(b.Owner)
}

// body returns the sprite for id, creating it on first sight
func (r *EngoRenderer) body(id entity.ID, kind entity.Kind, z float32) *sprite {
	r.seen[id] = true
	if s, ok := r.sprites[id]; ok {
		return s
	}
	s := r.newSprite(r.assets.Shape(kind), z)
	s.Color = r.assets.KindColor(kind)
	r.sprites[id] = s
	return s
}

func (r *EngoRenderer) newSprite(drawable common.Drawable, z float32) *sprite {
	s := &sprite{BasicEntity: ecs.NewBasic()}
	s.Drawable = drawable
	s.SetZIndex(z)
	r.system.Add(&s.BasicEntity, &s.RenderComponent, &s.SpaceComponent)
	return s
}

// place sizes s to a circle of radius around center, rotated in degrees
func (r *EngoRenderer) place(s *sprite, center physics.Vector2D, radius float64, rotation float32) {
	s.Width = float32(2 * radius)
	s.Height = float32(2 * radius)
	s.Rotation = rotation
	s.SetCenter(point(center))
}

// sweep drops sprites whose entity left the snapshot
func (r *EngoRenderer) sweep() {
	for id, s := range r.sprites {
		if !r.seen[id] {
			r.system.Remove(s.BasicEntity)
			delete(r.sprites, id)
		}
	}
}

func (r *EngoRenderer) drawExplosions(explosions []engine.ExplosionState) {
	for i, e := range explosions {
		s := r.pooled(&r.explosions, i, r.assets.Shape(entity.KindExplosion))
		r.place(s, e.Position, e.Size/2, 0)
		s.Color = fade(r.assets.KindColor(entity.KindExplosion), e.Alpha)
	}
	hideFrom(r.explosions, len(explosions))
}

func (r *EngoRenderer) drawTexts(texts []engine.TextState) {
	font := r.assets.Font()
	if font == nil {
		return
	}
	for i, t := range texts {
		s := r.pooled(&r.texts, i, common.Text{Font: font, Text: t.Text})
		s.Drawable = common.Text{Font: font, Text: t.Text}
		s.Width = float32(len(t.Text)) * float32(font.Size) * 0.6
		s.Height = float32(font.Size)
		s.Rotation = 0
		s.SetCenter(point(t.Position))
		s.Color = r.assets.ToneColor(t.Tone, t.Alpha)
	}
	hideFrom(r.texts, len(texts))
}

// pooled returns the i-th sprite of pool, growing it on demand, and makes
// it visible
func (r *EngoRenderer) pooled(pool *[]*sprite, i int, drawable common.Drawable) *sprite {
	for len(*pool) <= i {
		*pool = append(*pool, r.newSprite(drawable, zEffects))
	}
	s := (*pool)[i]
	s.Hidden = false
	return s
}

func hideFrom(pool []*sprite, n int) {
	for _, s := range pool[min(n, len(pool)):] {
		s.Hidden = true
	}
}

// Tracked returns how many arena bodies currently have a sprite
func (r *EngoRenderer) Tracked() int {
	return len(r.sprites)
}

// Close removes every sprite from the render system
func (r *EngoRenderer) Close() error {
	for id, s := range r.sprites {
		r.system.Remove(s.BasicEntity)
		delete(r.sprites, id)
	}
	for _, pool := range [][]*sprite{r.explosions, r.texts} {
		for _, s := range pool {
			r.system.Remove(s.BasicEntity)
		}
	}
	r.explosions, r.texts = nil, nil
	return nil
}

// craftRotation converts a heading in radians to the engo rotation of an
// upward-pointing triangle
func craftRotation(heading float64) float32 {
	return degrees(heading) + 90
}

func degrees(rad float64) float32 {
	return float32(rad * 180 / math.Pi)
}

func point(v physics.Vector2D) engo.Point {
	return engo.Point{X: float32(v.X), Y: float32(v.Y)}
}
