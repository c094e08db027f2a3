// pkg/entity/store.go
package entity

// Store owns every live entity, grouped by kind. Removal during a tick only
// marks an entity inactive; Compact sweeps the marked entities once per tick
// so indices held by an in-progress loop stay valid. Loops that may append
// to the collection they iterate capture its length before starting.
type Store struct {
	Player      *Craft
	Opponents   []*Craft
	Fighters    []*Fighter
	Debris      []*Debris
	Drones      []*Drone
	Civilians   []*Civilian
	Projectiles []*Projectile
	Beams       []*Beam
	Explosions  []*Explosion
	Texts       []*FloatingText
}

// NewStore creates an empty store
func NewStore() *Store {
	return &Store{}
}

func ensureID(e *BaseEntity) {
	if e.ID == 0 {
		e.ID = NewID()
	}
}

// SetPlayer installs the player craft
func (s *Store) SetPlayer(c *Craft) {
	ensureID(&c.BaseEntity)
	c.Kind = KindPlayer
	s.Player = c
}

// AddOpponent appends an opposing craft
func (s *Store) AddOpponent(c *Craft) {
	ensureID(&c.BaseEntity)
	c.Kind = KindOpponent
	s.Opponents = append(s.Opponents, c)
}

// AddFighter appends a fighter
func (s *Store) AddFighter(f *Fighter) {
	ensureID(&f.BaseEntity)
	s.Fighters = append(s.Fighters, f)
}

// AddDebris appends one or more rocks
func (s *Store) AddDebris(rocks ...*Debris) {
	for _, d := range rocks {
		ensureID(&d.BaseEntity)
		s.Debris = append(s.Debris, d)
	}
}

// AddDrone appends a drone
func (s *Store) AddDrone(d *Drone) {
	ensureID(&d.BaseEntity)
	s.Drones = append(s.Drones, d)
}

// AddCivilian appends a civilian
func (s *Store) AddCivilian(c *Civilian) {
	ensureID(&c.BaseEntity)
	s.Civilians = append(s.Civilians, c)
}

// AddProjectiles appends projectiles
func (s *Store) AddProjectiles(shots ...*Projectile) {
	for _, p := range shots {
		ensureID(&p.BaseEntity)
		s.Projectiles = append(s.Projectiles, p)
	}
}

// AddBeam appends a beam
func (s *Store) AddBeam(b *Beam) {
	ensureID(&b.BaseEntity)
	s.Beams = append(s.Beams, b)
}

// AddExplosion appends an explosion
func (s *Store) AddExplosion(e *Explosion) {
	if e.ID == 0 {
		e.ID = NewID()
	}
	s.Explosions = append(s.Explosions, e)
}

// AddText appends a floating text
func (s *Store) AddText(ft *FloatingText) {
	if ft.ID == 0 {
		ft.ID = NewID()
	}
	s.Texts = append(s.Texts, ft)
}

// Remove marks the entity at idx of the kind's collection for removal. It is
// bounds-checked and idempotent: it reports true only when it deactivated a
// live entity. The player is never removed.
func (s *Store) Remove(kind Kind, idx int) bool {
	var base *BaseEntity
	switch kind {
	case KindOpponent:
		if idx >= 0 && idx < len(s.Opponents) {
			base = &s.Opponents[idx].BaseEntity
		}
	case KindFighter:
		if idx >= 0 && idx < len(s.Fighters) {
			base = &s.Fighters[idx].BaseEntity
		}
	case KindDebris:
		if idx >= 0 && idx < len(s.Debris) {
			base = &s.Debris[idx].BaseEntity
		}
	case KindDrone:
		if idx >= 0 && idx < len(s.Drones) {
			base = &s.Drones[idx].BaseEntity
		}
	case KindCivilian:
		if idx >= 0 && idx < len(s.Civilians) {
			base = &s.Civilians[idx].BaseEntity
		}
	case KindProjectile:
		if idx >= 0 && idx < len(s.Projectiles) {
			base = &s.Projectiles[idx].BaseEntity
		}
	case KindBeam:
		if idx >= 0 && idx < len(s.Beams) {
			base = &s.Beams[idx].BaseEntity
		}
	case KindExplosion:
		if idx >= 0 && idx < len(s.Explosions) && s.Explosions[idx].Life > 0 {
			s.Explosions[idx].Life = 0
			return true
		}
	case KindFloatingText:
		if idx >= 0 && idx < len(s.Texts) && s.Texts[idx].Life > 0 {
			s.Texts[idx].Life = 0
			return true
		}
	}
	if base == nil || !base.Active {
		return false
	}
	base.Deactivate()
	return true
}

type activeChecker interface {
	IsActive() bool
}

// compact filters items in place, keeping order, and clears the tail so the
// dropped pointers can be collected.
func compact[T activeChecker](items []T) ([]T, int) {
	kept := items[:0]
	for _, item := range items {
		if item.IsActive() {
			kept = append(kept, item)
		}
	}
	removed := len(items) - len(kept)
	var zero T
	for i := len(kept); i < len(items); i++ {
		items[i] = zero
	}
	return kept, removed
}

// Compact drops every inactive entity and returns how many were removed
func (s *Store) Compact() int {
	var total, n int
	s.Opponents, n = compact(s.Opponents)
	total += n
	s.Fighters, n = compact(s.Fighters)
	total += n
	s.Debris, n = compact(s.Debris)
	total += n
	s.Drones, n = compact(s.Drones)
	total += n
	s.Civilians, n = compact(s.Civilians)
	total += n
	s.Projectiles, n = compact(s.Projectiles)
	total += n
	s.Beams, n = compact(s.Beams)
	total += n
	s.Explosions, n = compact(s.Explosions)
	total += n
	s.Texts, n = compact(s.Texts)
	total += n
	return total
}

func countActive[T activeChecker](items []T) int {
	n := 0
	for _, item := range items {
		if item.IsActive() {
			n++
		}
	}
	return n
}

// Count returns the number of live entities of a kind
func (s *Store) Count(kind Kind) int {
	switch kind {
	case KindPlayer:
		if s.Player != nil {
			return 1
		}
		return 0
	case KindOpponent:
		return countActive(s.Opponents)
	case KindFighter:
		return countActive(s.Fighters)
	case KindDebris:
		return countActive(s.Debris)
	case KindDrone:
		return countActive(s.Drones)
	case KindCivilian:
		return countActive(s.Civilians)
	case KindProjectile:
		return countActive(s.Projectiles)
	case KindBeam:
		return countActive(s.Beams)
	case KindExplosion:
		return countActive(s.Explosions)
	case KindFloatingText:
		return countActive(s.Texts)
	}
	return 0
}

// Find looks up a live body by ID
func (s *Store) Find(id ID) (Entity, bool) {
	if s.Player != nil && s.Player.ID == id {
		return s.Player, true
	}
	for _, c := range s.Opponents {
		if c.ID == id && c.Active {
			return c, true
		}
	}
	for _, f := range s.Fighters {
		if f.ID == id && f.Active {
			return f, true
		}
	}
	for _, d := range s.Drones {
		if d.ID == id && d.Active {
			return d, true
		}
	}
	for _, c := range s.Civilians {
		if c.ID == id && c.Active {
			return c, true
		}
	}
	for _, d := range s.Debris {
		if d.ID == id && d.Active {
			return d, true
		}
	}
	return nil, false
}

// ClearPopulations removes every entity except the player
func (s *Store) ClearPopulations() {
	player := s.Player
	*s = Store{Player: player}
}
