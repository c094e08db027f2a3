// pkg/entity/weapon.go
package entity

import (
	"math"

	"github.com/opd-ai/go-skirmish/pkg/config"
	"github.com/opd-ai/go-skirmish/pkg/physics"
)

// Projectile is a traveling shot with a lifetime in nominal ticks
type Projectile struct {
	BaseEntity
	Owner     Owner
	ShooterID ID
	Damage    float64
	Lifetime  float64
}

// NewProjectile creates a projectile at position moving along heading
func NewProjectile(owner Owner, shooterID ID, position physics.Vector2D, heading float64, spec config.ProjectileConfig) *Projectile {
	p := &Projectile{
		BaseEntity: newBase(position, spec.Radius),
		Owner:      owner,
		ShooterID:  shooterID,
		Damage:     spec.Damage,
		Lifetime:   spec.Lifetime,
	}
	p.Heading = heading
	p.Velocity = physics.FromAngle(heading, spec.Speed)
	return p
}

// GetKind returns KindProjectile
func (p *Projectile) GetKind() Kind {
	return KindProjectile
}

// Advance moves the projectile and burns lifetime. It expires once lifetime
// is spent or it leaves bounds; expiry has no side effects.
func (p *Projectile) Advance(step float64, bounds physics.Bounds) {
	if !p.Active {
		return
	}
	p.Integrate(step)
	p.Lifetime = math.Max(0, p.Lifetime-math.Max(0, step))
	if p.Lifetime <= 0 || !bounds.Contains(p.Position) {
		p.Deactivate()
	}
}

// Beam is a continuous weapon. It has no travel time: every tick it is
// active it is resolved as a segment from its owner's nose.
type Beam struct {
	BaseEntity
	Owner         Owner
	ShooterID     ID
	Length        float64
	Lifetime      float64
	DamagePerTick float64
}

// NewBeam creates a beam anchored at origin along heading
func NewBeam(owner Owner, shooterID ID, origin physics.Vector2D, heading float64, spec config.BeamConfig) *Beam {
	b := &Beam{
		BaseEntity:    newBase(origin, 0),
		Owner:         owner,
		ShooterID:     shooterID,
		Length:        spec.Length,
		Lifetime:      spec.Duration,
		DamagePerTick: spec.DamagePerTick,
	}
	b.Heading = heading
	return b
}

// GetKind returns KindBeam
func (b *Beam) GetKind() Kind {
	return KindBeam
}

// Segment returns the line the beam occupies this tick
func (b *Beam) Segment() physics.Segment {
	return physics.SegmentFromHeading(b.Position, b.Heading, b.Length)
}

// Follow re-anchors the beam on its owner's nose
func (b *Beam) Follow(origin physics.Vector2D, heading float64) {
	b.Position = origin
	b.Heading = heading
}

// Advance burns one step of the beam's active duration. A beam whose origin
// has left bounds expires like a projectile.
func (b *Beam) Advance(step float64, bounds physics.Bounds) {
	if !b.Active {
		return
	}
	b.Lifetime = math.Max(0, b.Lifetime-math.Max(0, step))
	if b.Lifetime <= 0 || !bounds.Contains(b.Position) {
		b.Deactivate()
	}
}

// Spread is a lateral muzzle pattern. Count projectiles are placed along the
// perpendicular of the heading, Spacing apart and centred on the nose. Each
// origin is pulled back along the heading by Retreat per unit of lateral
// offset so the volley does not overlap its own sprite.
type Spread struct {
	Count   int
	Spacing float64
	Retreat float64
}

// SpreadFromConfig builds a muzzle pattern, defaulting to a single barrel
func SpreadFromConfig(cfg config.SpreadConfig) Spread {
	if cfg.Count < 1 {
		cfg.Count = 1
	}
	return Spread{Count: cfg.Count, Spacing: cfg.Spacing, Retreat: cfg.Retreat}
}

// Origins returns the muzzle positions for a volley fired from nose
func (s Spread) Origins(nose physics.Vector2D, heading float64) []physics.Vector2D {
	n := s.Count
	if n < 1 {
		n = 1
	}
	forward := physics.FromAngle(heading, 1)
	lateral := forward.Perpendicular()
	origins := make([]physics.Vector2D, n)
	for i := range origins {
		offset := (float64(i) - float64(n-1)/2) * s.Spacing
		origins[i] = nose.
			Add(lateral.Scale(offset)).
			Sub(forward.Scale(math.Abs(offset) * s.Retreat))
	}
	return origins
}

// Fire spawns one projectile per muzzle origin, all along heading
func (s Spread) Fire(owner Owner, shooterID ID, nose physics.Vector2D, heading float64, spec config.ProjectileConfig) []*Projectile {
	origins := s.Origins(nose, heading)
	shots := make([]*Projectile, len(origins))
	for i, origin := range origins {
		shots[i] = NewProjectile(owner, shooterID, origin, heading, spec)
	}
	return shots
}
