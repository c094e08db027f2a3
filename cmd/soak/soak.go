// cmd/soak/soak.go
package main

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/opd-ai/go-skirmish/pkg/config"
	"github.com/opd-ai/go-skirmish/pkg/engine"
	"github.com/opd-ai/go-skirmish/pkg/entity"
	"github.com/opd-ai/go-skirmish/pkg/event"
	"github.com/opd-ai/go-skirmish/pkg/logging"
	"github.com/opd-ai/go-skirmish/pkg/resource"
)

// options are the parsed command line settings
type options struct {
	arenas      int
	ticks       uint64
	seed        uint64
	maxMemoryMB int64
	healthAddr  string
}

// report summarizes one arena's run
type report struct {
	Seed         uint64
	Ticks        uint64
	Score        int
	Wave         int
	WavesCleared int
	Destroyed    map[entity.Kind]int
	Respawns     int
}

// waveStats accumulates what happened during the current wave
type waveStats struct {
	startTick uint64
	destroyed map[entity.Kind]int
	respawns  int
}

func newWaveStats(tick uint64) *waveStats {
	return &waveStats{startTick: tick, destroyed: make(map[entity.Kind]int)}
}

// soakArena plays one arena on autopilot for ticks ticks, logging a line
// for every cleared wave. progress is bumped once per tick.
func soakArena(ctx context.Context, cfg *config.ArenaConfig, seed, ticks uint64, logger *logging.Logger, progress *atomic.Uint64) (report, error) {
	arena, err := engine.NewArena(cfg, engine.WithSeed(seed), engine.WithLogger(logger))
	if err != nil {
		return report{}, err
	}

	rep := report{Seed: seed, Destroyed: make(map[entity.Kind]int)}
	current := newWaveStats(0)

	bus := arena.EventBus()
	bus.Subscribe(event.EntityDestroyed, func(e event.Event) {
		if d, ok := e.(*event.DestroyedEvent); ok {
			current.destroyed[d.Kind]++
			rep.Destroyed[d.Kind]++
		}
	})
	bus.Subscribe(event.Respawned, func(event.Event) {
		current.respawns++
		rep.Respawns++
	})
	bus.Subscribe(event.WaveCleared, func(e event.Event) {
		w, ok := e.(*event.WaveEvent)
		if !ok {
			return
		}
		rep.WavesCleared++
		logger.Info(ctx, "wave cleared",
			"seed", seed,
			"wave", w.Wave,
			"ticks", arena.Tick()-current.startTick,
			"fighters", current.destroyed[entity.KindFighter],
			"drones", current.destroyed[entity.KindDrone],
			"opponents", current.destroyed[entity.KindOpponent],
			"debris", current.destroyed[entity.KindDebris],
			"respawns", current.respawns,
			"score", arena.Score(),
		)
	})
	bus.Subscribe(event.WaveAdvanced, func(event.Event) {
		current = newWaveStats(arena.Tick())
	})

	dt := 1 / float64(cfg.Simulation.TickRate)
	in := engine.Intents{AutopilotEnabled: true}
	for arena.Tick() < ticks {
		select {
		case <-ctx.Done():
			rep.fill(arena)
			return rep, ctx.Err()
		default:
		}
		arena.Advance(dt, in)
		progress.Add(1)
	}

	rep.fill(arena)
	return rep, nil
}

func (r *report) fill(arena *engine.Arena) {
	r.Ticks = arena.Tick()
	r.Score = arena.Score()
	r.Wave = arena.Wave()
}

// soak runs opts.arenas arenas in parallel under manager. Arena i uses
// seed opts.seed+i, or the configured seed plus i when opts.seed is 0.
func soak(ctx context.Context, cfg *config.ArenaConfig, opts options, manager *resource.Manager, logger *logging.Logger, progress *atomic.Uint64) ([]report, error) {
	base := opts.seed
	if base == 0 {
		base = cfg.Simulation.Seed
	}

	var mu sync.Mutex
	reports := make([]report, 0, opts.arenas)
	for i := 0; i < opts.arenas; i++ {
		seed := base + uint64(i)
		err := manager.Go(ctx, fmt.Sprintf("arena-%d", seed), func(ctx context.Context) error {
			rep, err := soakArena(ctx, cfg, seed, opts.ticks, logger, progress)
			mu.Lock()
			reports = append(reports, rep)
			mu.Unlock()
			if err != nil {
				return err
			}
			logger.Info(ctx, "arena finished",
				"seed", rep.Seed,
				"ticks", rep.Ticks,
				"score", rep.Score,
				"wave", rep.Wave,
				"waves_cleared", rep.WavesCleared,
				"respawns", rep.Respawns,
			)
			return nil
		})
		if err != nil {
			return nil, logging.WrapError(err, "start arena", "seed", seed)
		}
	}

	if err := manager.Wait(context.WithoutCancel(ctx)); err != nil {
		return nil, err
	}
	if n := manager.Failures(); n > 0 {
		return reports, fmt.Errorf("%d of %d arenas failed", n, opts.arenas)
	}
	return reports, nil
}

// totals sums reports into one line of statistics
func totals(reports []report) (ticks uint64, score, cleared, respawns int) {
	for _, r := range reports {
		ticks += r.Ticks
		score += r.Score
		cleared += r.WavesCleared
		respawns += r.Respawns
	}
	return ticks, score, cleared, respawns
}
