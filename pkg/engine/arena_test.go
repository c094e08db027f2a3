// Package engine provides unit tests for arena.go
package engine

import (
	"context"
	"errors"
	"math"
	"sync"
	"testing"
	"time"

	"github.com/opd-ai/go-skirmish/pkg/config"
	"github.com/opd-ai/go-skirmish/pkg/event"
)

const frame = 1.0 / 60

// quietConfig is the default arena with every population emptied so tests
// can place entities by hand
func quietConfig() *config.ArenaConfig {
	cfg := config.DefaultConfig()
	cfg.Fighter.Count = 0
	cfg.Debris.Count = 0
	cfg.Drone.Count = 0
	cfg.Civilian.Count = 0
	cfg.Opponent.Count = 0
	return cfg
}

func newQuietArena(t *testing.T, mutate ...func(*config.ArenaConfig)) *Arena {
	t.Helper()
	cfg := quietConfig()
	for _, m := range mutate {
		m(cfg)
	}
	a, err := NewArena(cfg, WithoutInitialWave(), WithSeed(7))
	if err != nil {
		t.Fatalf("NewArena: %v", err)
	}
	return a
}

func TestNewArena_InitializesState(t *testing.T) {
	cfg := config.DefaultConfig()
	a, err := NewArena(cfg, WithSeed(42))
	if err != nil {
		t.Fatalf("NewArena: %v", err)
	}

	snap := a.Snapshot()
	center := cfg.World
	if snap.Player.Position.X != center.Width/2 || snap.Player.Position.Y != center.Height/2 {
		t.Errorf("player at %+v, expected world center", snap.Player.Position)
	}
	if snap.Player.Health != cfg.Player.MaxHealth {
		t.Errorf("player health = %v", snap.Player.Health)
	}
	if len(snap.Fighters) != cfg.Fighter.Count {
		t.Errorf("fighters = %d, expected %d", len(snap.Fighters), cfg.Fighter.Count)
	}
	if len(snap.Debris) != cfg.Debris.Count {
		t.Errorf("debris = %d, expected %d", len(snap.Debris), cfg.Debris.Count)
	}
	if len(snap.Opponents) != cfg.Opponent.Count {
		t.Errorf("opponents = %d, expected %d", len(snap.Opponents), cfg.Opponent.Count)
	}
	if snap.Wave != 1 || snap.Score != 0 || snap.Tick != 0 {
		t.Errorf("wave=%d score=%d tick=%d", snap.Wave, snap.Score, snap.Tick)
	}
}

func TestNewArena_RejectsInvalidConfig(t *testing.T) {
	tests := []struct {
		name string
		cfg  func() *config.ArenaConfig
	}{
		{"nil_config", func() *config.ArenaConfig { return nil }},
		{"negative_world", func() *config.ArenaConfig {
			cfg := config.DefaultConfig()
			cfg.World.Width = -1
			return cfg
		}},
		{"zero_tick_rate", func() *config.ArenaConfig {
			cfg := config.DefaultConfig()
			cfg.Simulation.TickRate = 0
			return cfg
		}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			a, err := NewArena(tc.cfg())
			if !errors.Is(err, config.ErrInvalidConfig) {
				t.Errorf("error = %v, expected ErrInvalidConfig", err)
			}
			if a != nil {
				t.Error("expected nil arena")
			}
		})
	}
}

func TestArena_PhaseOrder(t *testing.T) {
	a := newQuietArena(t)
	want := []string{"respawn", "intents", "movement", "weapons", "collision", "director", "effects"}
	got := a.Phases()
	if len(got) != len(want) {
		t.Fatalf("phases = %v, expected %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("phase %d = %s, expected %s", i, got[i], want[i])
		}
	}
}

func TestArena_ClampsDelta(t *testing.T) {
	tests := []struct {
		name string
		dt   float64
		want float64
	}{
		{"negative", -1, 0},
		{"nan", math.NaN(), 0},
		{"normal", frame, frame},
		{"stall", 10, 0.25},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			a := newQuietArena(t)
			a.Advance(tc.dt, Intents{})
			if got := a.Clock(); math.Abs(got-tc.want) > 1e-9 {
				t.Errorf("clock = %v, expected %v", got, tc.want)
			}
			if a.Tick() != 1 {
				t.Errorf("tick = %d, expected 1", a.Tick())
			}
		})
	}
}

func TestArena_TurnIntentIsClamped(t *testing.T) {
	a := newQuietArena(t)
	a.Advance(frame, Intents{Turn: 7})
	if got := a.PlayerCommand().Turn; got != 1 {
		t.Errorf("turn = %v, expected 1", got)
	}
	a.Advance(frame, Intents{Turn: -3})
	if got := a.PlayerCommand().Turn; got != -1 {
		t.Errorf("turn = %v, expected -1", got)
	}
}

func TestArena_PublishesTickEventsOnBus(t *testing.T) {
	bus := event.NewEventBus()
	var seen []event.Event
	bus.SubscribeAll(func(e event.Event) { seen = append(seen, e) })

	a, err := NewArena(quietConfig(), WithoutInitialWave(), WithEventBus(bus))
	if err != nil {
		t.Fatalf("NewArena: %v", err)
	}
	events := a.Advance(frame, Intents{})
	if len(events) == 0 {
		t.Fatal("expected the empty arena to report a cleared wave")
	}
	if len(seen) != len(events) {
		t.Errorf("bus saw %d events, tick returned %d", len(seen), len(events))
	}
}

func TestArena_EventsCarryTickNumber(t *testing.T) {
	a := newQuietArena(t)
	a.Advance(frame, Intents{})
	events := a.Advance(frame, Intents{Firing: true})
	if len(events) == 0 {
		t.Fatal("expected the player's volley to be reported")
	}
	for _, e := range events {
		tick, ok := e.GetSource().(uint64)
		if !ok {
			t.Fatalf("%s source = %T, expected the tick number", e.GetType(), e.GetSource())
		}
		if tick != a.Tick() {
			t.Errorf("%s source = %d, expected tick %d", e.GetType(), tick, a.Tick())
		}
	}
}

func TestArena_Reset(t *testing.T) {
	cfg := config.DefaultConfig()
	a, err := NewArena(cfg, WithSeed(3))
	if err != nil {
		t.Fatalf("NewArena: %v", err)
	}
	for i := 0; i < 30; i++ {
		a.Advance(frame, Intents{AutopilotEnabled: true})
	}
	a.score = 1234

	a.Reset()

	snap := a.Snapshot()
	if snap.Score != 0 || snap.Wave != 1 || snap.Tick != 0 {
		t.Errorf("score=%d wave=%d tick=%d after reset", snap.Score, snap.Wave, snap.Tick)
	}
	if snap.Player.Position != a.bounds.Center() || snap.Player.Health != cfg.Player.MaxHealth {
		t.Errorf("player not restored: %+v", snap.Player)
	}
	if len(snap.Fighters) != cfg.Fighter.Count || len(snap.Debris) != cfg.Debris.Count {
		t.Errorf("populations not regenerated: fighters=%d debris=%d", len(snap.Fighters), len(snap.Debris))
	}
	if len(snap.Projectiles) != 0 {
		t.Errorf("projectiles survived reset: %d", len(snap.Projectiles))
	}
}

func TestArena_SeedIsDeterministic(t *testing.T) {
	run := func() Snapshot {
		a, err := NewArena(config.DefaultConfig(), WithSeed(99))
		if err != nil {
			t.Fatalf("NewArena: %v", err)
		}
		for i := 0; i < 60; i++ {
			a.Advance(frame, Intents{AutopilotEnabled: true})
		}
		return a.Snapshot()
	}
	first, second := run(), run()
	if first.Score != second.Score || first.Player.Position != second.Player.Position {
		t.Errorf("runs diverged: %v/%+v vs %v/%+v", first.Score, first.Player.Position, second.Score, second.Player.Position)
	}
	if len(first.Fighters) != len(second.Fighters) || len(first.Debris) != len(second.Debris) {
		t.Errorf("populations diverged")
	}
}

// TestArena_ConcurrentSnapshots reads snapshots while another goroutine
// advances the arena; run with -race.
func TestArena_ConcurrentSnapshots(t *testing.T) {
	a, err := NewArena(config.DefaultConfig(), WithSeed(5))
	if err != nil {
		t.Fatalf("NewArena: %v", err)
	}

	var wg sync.WaitGroup
	done := make(chan struct{})

	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; i < 100; i++ {
			a.Advance(frame, Intents{AutopilotEnabled: true})
		}
		close(done)
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		for {
			select {
			case <-done:
				return
			default:
				snap := a.Snapshot()
				if snap.Player.Health < 0 {
					t.Errorf("negative health in snapshot")
					return
				}
			}
		}
	}()

	wg.Wait()
	if a.Tick() != 100 {
		t.Errorf("tick = %d, expected 100", a.Tick())
	}
}

type countingSink struct {
	renders int
	err     error
}

func (s *countingSink) Render(Snapshot) error {
	s.renders++
	return s.err
}

func TestRun_StopsWhenSourceQuits(t *testing.T) {
	a := newQuietArena(t)
	polls := 0
	source := IntentSourceFunc(func() (Intents, bool) {
		polls++
		return Intents{}, polls > 3
	})
	sink := &countingSink{}

	if err := Run(context.Background(), a, source, sink, 1000); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if sink.renders != 3 {
		t.Errorf("renders = %d, expected 3", sink.renders)
	}
	if a.Tick() != 3 {
		t.Errorf("tick = %d, expected 3", a.Tick())
	}
}

func TestRun_StopsOnCancel(t *testing.T) {
	a := newQuietArena(t)
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	source := IntentSourceFunc(func() (Intents, bool) { return Intents{}, false })
	err := Run(ctx, a, source, nil, 500)
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("error = %v, expected deadline exceeded", err)
	}
}

func TestRun_ReturnsSinkError(t *testing.T) {
	a := newQuietArena(t)
	sinkErr := errors.New("screen gone")
	source := IntentSourceFunc(func() (Intents, bool) { return Intents{}, false })

	err := Run(context.Background(), a, source, &countingSink{err: sinkErr}, 1000)
	if !errors.Is(err, sinkErr) {
		t.Errorf("error = %v, expected sink error", err)
	}
}

func TestRun_RejectsBadTickRate(t *testing.T) {
	a := newQuietArena(t)
	if err := Run(context.Background(), a, IntentSourceFunc(func() (Intents, bool) { return Intents{}, true }), nil, 0); !errors.Is(err, ErrInvalidTickRate) {
		t.Errorf("error = %v, expected ErrInvalidTickRate", err)
	}
}
