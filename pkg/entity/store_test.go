package entity

import (
	"testing"

	"github.com/opd-ai/go-skirmish/pkg/config"
	"github.com/opd-ai/go-skirmish/pkg/physics"
)

func TestStore_AssignsIdentity(t *testing.T) {
	s := NewStore()
	f := &Fighter{BaseEntity: BaseEntity{Active: true}}
	s.AddFighter(f)
	if f.ID == 0 {
		t.Error("store should assign an id to entities without one")
	}

	d := NewDebris(physics.Vector2D{}, 10, 0, 1, 0)
	id := d.ID
	s.AddDebris(d)
	if d.ID != id {
		t.Error("store must keep an existing id")
	}
}

func TestStore_RemoveIsBoundsCheckedAndIdempotent(t *testing.T) {
	s := NewStore()
	for i := 0; i < 3; i++ {
		s.AddFighter(NewFighter(physics.Vector2D{X: float64(i)}, 20, 30, 1, 100, 0))
	}

	tests := []struct {
		name     string
		kind     Kind
		idx      int
		expected bool
	}{
		{"first_removal", KindFighter, 1, true},
		{"second_removal_same_index", KindFighter, 1, false},
		{"negative_index", KindFighter, -1, false},
		{"past_end", KindFighter, 3, false},
		{"empty_collection", KindDrone, 0, false},
		{"player_never_removed", KindPlayer, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := s.Remove(tt.kind, tt.idx); got != tt.expected {
				t.Errorf("Remove(%v, %d) = %v, want %v", tt.kind, tt.idx, got, tt.expected)
			}
		})
	}

	if s.Count(KindFighter) != 2 {
		t.Errorf("Count = %d, expected 2 live fighters", s.Count(KindFighter))
	}
	if len(s.Fighters) != 3 {
		t.Error("Remove must not shrink the collection before Compact")
	}
}

func TestStore_CompactKeepsOrder(t *testing.T) {
	s := NewStore()
	var ids []ID
	for i := 0; i < 5; i++ {
		d := NewDebris(physics.Vector2D{X: float64(i)}, 10, 0, 1, 0)
		ids = append(ids, d.ID)
		s.AddDebris(d)
	}
	s.Remove(KindDebris, 0)
	s.Remove(KindDebris, 3)
	s.AddProjectiles(&Projectile{BaseEntity: BaseEntity{Active: false}})
	s.AddExplosion(NewExplosion(physics.Vector2D{}, 40, 0))

	if removed := s.Compact(); removed != 4 {
		t.Errorf("Compact() removed %d, expected 4", removed)
	}
	want := []ID{ids[1], ids[2], ids[4]}
	if len(s.Debris) != len(want) {
		t.Fatalf("len(Debris) = %d", len(s.Debris))
	}
	for i, d := range s.Debris {
		if d.ID != want[i] {
			t.Errorf("Debris[%d] = %d, want %d", i, d.ID, want[i])
		}
	}
	if len(s.Projectiles) != 0 || len(s.Explosions) != 0 {
		t.Error("inactive transients should be swept")
	}
}

func TestStore_RemoveDuringIteration(t *testing.T) {
	s := NewStore()
	for i := 0; i < 4; i++ {
		s.AddDebris(NewDebris(physics.Vector2D{X: float64(i)}, 40, 0, 1, 0))
	}

	n := len(s.Debris)
	visited := 0
	for i := 0; i < n; i++ {
		visited++
		if s.Debris[i].Radius > 20 {
			s.Remove(KindDebris, i)
			s.AddDebris(s.Debris[i].Split(20, nil)...)
		}
	}
	if visited != 4 {
		t.Errorf("visited %d, expected 4", visited)
	}
	s.Compact()
	if len(s.Debris) != 8 {
		t.Errorf("expected 8 children after compaction, got %d", len(s.Debris))
	}
}

func TestStore_FindAndClear(t *testing.T) {
	s := NewStore()
	player := NewCraft(KindPlayer, config.DefaultConfig().Player, physics.Vector2D{})
	s.SetPlayer(player)
	civ := NewCivilian(physics.Vector2D{}, 12, 20, 1, 0, false, 100)
	s.AddCivilian(civ)

	if e, ok := s.Find(civ.ID); !ok || e.GetKind() != KindCivilian {
		t.Errorf("Find(civilian) = %v, %v", e, ok)
	}
	if e, ok := s.Find(player.ID); !ok || e.GetKind() != KindPlayer {
		t.Errorf("Find(player) = %v, %v", e, ok)
	}

	civ.Deactivate()
	if _, ok := s.Find(civ.ID); ok {
		t.Error("Find should skip inactive entities")
	}

	s.ClearPopulations()
	if s.Player != player || len(s.Civilians) != 0 {
		t.Error("ClearPopulations must keep only the player")
	}
}
