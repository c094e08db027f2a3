package wave

import (
	"testing"

	"github.com/opd-ai/go-skirmish/pkg/config"
)

func newDirector() *Director {
	cfg := config.DefaultConfig()
	return NewDirector(cfg.Wave, BaseScaling(cfg))
}

func TestDirector_SchedulesClearingOnce(t *testing.T) {
	d := newDirector()

	cleared := 0
	now := 0.0
	for i := 0; i < 60; i++ {
		now += 1.0 / 60
		if d.Update(now, 0) == Cleared {
			cleared++
		}
	}
	if cleared != 1 {
		t.Errorf("Cleared fired %d times, expected exactly once", cleared)
	}
	if d.State() != Clearing || !d.Pending() {
		t.Errorf("state = %v pending = %v", d.State(), d.Pending())
	}
}

func TestDirector_StaysActiveWithHostiles(t *testing.T) {
	d := newDirector()
	for i := 0; i < 10; i++ {
		if tr := d.Update(float64(i), 3); tr != None {
			t.Fatalf("unexpected transition %v", tr)
		}
	}
	if d.Wave() != 1 {
		t.Errorf("wave = %d", d.Wave())
	}
}

func TestDirector_AdvancesAfterDelay(t *testing.T) {
	d := newDirector()
	base := d.Scaling()

	if d.Update(10, 0) != Cleared {
		t.Fatal("expected Cleared")
	}
	if d.Deadline() != 11.5 {
		t.Errorf("deadline = %v, expected 11.5", d.Deadline())
	}
	if d.Update(11.4, 0) != None {
		t.Fatal("advanced before the delay elapsed")
	}
	if d.Update(11.5, 0) != Advanced {
		t.Fatal("expected Advanced at the deadline")
	}
	if d.Wave() != 2 || d.State() != Active || d.Pending() {
		t.Errorf("wave=%d state=%v pending=%v", d.Wave(), d.State(), d.Pending())
	}

	next := d.Scaling()
	if next.Fighters <= base.Fighters || next.FighterHealth <= base.FighterHealth || next.FighterSpeed <= base.FighterSpeed {
		t.Errorf("wave did not get harder: %+v -> %+v", base, next)
	}
	if next.FighterFireDelay >= base.FighterFireDelay {
		t.Errorf("fire delay did not drop: %v -> %v", base.FighterFireDelay, next.FighterFireDelay)
	}
}

func TestScaling_NextIsMonotoneAndFloored(t *testing.T) {
	cfg := config.DefaultConfig().Wave
	s := Scaling{Fighters: 295, Drones: 19, FighterHealth: 30, FighterSpeed: 1.2, FighterFireDelay: 33}

	for i := 0; i < 20; i++ {
		next := s.Next(cfg)
		if next.Fighters < s.Fighters || next.Drones < s.Drones {
			t.Fatalf("population shrank: %+v -> %+v", s, next)
		}
		if next.FighterFireDelay > s.FighterFireDelay {
			t.Fatalf("fire delay grew: %v -> %v", s.FighterFireDelay, next.FighterFireDelay)
		}
		s = next
	}
	if s.Fighters != cfg.MaxFighters || s.Drones != cfg.MaxDrones {
		t.Errorf("caps not applied: %+v", s)
	}
	if s.FighterFireDelay != cfg.MinFireDelay {
		t.Errorf("fire delay = %v, expected floor %v", s.FighterFireDelay, cfg.MinFireDelay)
	}
}

func TestDirector_Reset(t *testing.T) {
	d := newDirector()
	d.Update(0, 0)
	d.Update(5, 0)
	d.Reset(Scaling{Fighters: 1})
	if d.Wave() != 1 || d.State() != Active || d.Pending() || d.Scaling().Fighters != 1 {
		t.Errorf("Reset left state behind: wave=%d state=%v", d.Wave(), d.State())
	}
}
