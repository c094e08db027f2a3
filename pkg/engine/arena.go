// pkg/engine/arena.go
package engine

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"math"
	"math/rand/v2"
	"sync"

	"github.com/EngoEngine/ecs"

	"github.com/opd-ai/go-skirmish/pkg/ai"
	"github.com/opd-ai/go-skirmish/pkg/camera"
	"github.com/opd-ai/go-skirmish/pkg/config"
	"github.com/opd-ai/go-skirmish/pkg/entity"
	"github.com/opd-ai/go-skirmish/pkg/event"
	"github.com/opd-ai/go-skirmish/pkg/logging"
	"github.com/opd-ai/go-skirmish/pkg/physics"
	"github.com/opd-ai/go-skirmish/pkg/wave"
)

// Intents is the discrete input pushed into the arena each tick
type Intents struct {
	Turn             int // -1, 0 or 1; other values are clamped
	Thrusting        bool
	Firing           bool
	Shield           bool
	AutopilotEnabled bool
}

// TickEvents is everything a tick emitted, in emission order
type TickEvents []event.Event

// Count returns how many events of type t were emitted
func (te TickEvents) Count(t event.Type) int {
	n := 0
	for _, e := range te {
		if e.GetType() == t {
			n++
		}
	}
	return n
}

// OfType returns the events of type t
func (te TickEvents) OfType(t event.Type) []event.Event {
	var out []event.Event
	for _, e := range te {
		if e.GetType() == t {
			out = append(out, e)
		}
	}
	return out
}

// Option configures an Arena
type Option func(*Arena)

// WithSeed overrides the configured random seed
func WithSeed(seed uint64) Option {
	return func(a *Arena) { a.seed = seed }
}

// WithEventBus publishes every tick event on bus
func WithEventBus(bus *event.Bus) Option {
	return func(a *Arena) { a.bus = bus }
}

// WithoutInitialWave starts the arena with only the player craft
func WithoutInitialWave() Option {
	return func(a *Arena) { a.initialWave = false }
}

// WithLogger sets the logger used for lifecycle messages
func WithLogger(logger *logging.Logger) Option {
	return func(a *Arena) { a.logger = logger }
}

// Arena is the simulation core. All state is owned by the arena and mutated
// only inside Advance, one phase at a time.
type Arena struct {
	mu sync.RWMutex

	cfg       *config.ArenaConfig
	bounds    physics.Bounds
	store     *entity.Store
	world     *ecs.World
	bus       *event.Bus
	logger    *logging.Logger
	rng       *rand.Rand
	seed      uint64
	autopilot *ai.Autopilot
	director  *wave.Director
	camera    *camera.Camera
	spread    entity.Spread
	index     *physics.QuadTree[body]
	overflow  []body

	initialWave    bool
	respawnPending bool
	score          int
	tick           uint64
	clock          float64 // simulated seconds
	step           float64 // nominal ticks covered by the current substep
	substep        int

	intents      Intents
	playerCmd    ai.Command
	opponentCmds []ai.Command
	steering     steeringSet
	pending      TickEvents
}

// NewArena validates cfg and builds an arena with the player at the world
// center and, unless disabled, the first wave spawned.
func NewArena(cfg *config.ArenaConfig, opts ...Option) (*Arena, error) {
	if cfg == nil {
		return nil, fmt.Errorf("new arena: %w", config.ErrInvalidConfig)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("new arena: %w", err)
	}

	a := &Arena{
		cfg:         cfg,
		bounds:      physics.Bounds{Width: cfg.World.Width, Height: cfg.World.Height},
		store:       entity.NewStore(),
		seed:        cfg.Simulation.Seed,
		initialWave: true,
		autopilot:   ai.NewAutopilot(cfg.Autopilot),
		spread:      entity.SpreadFromConfig(cfg.Weapons.Spread),
	}
	for _, opt := range opts {
		opt(a)
	}
	if a.bus == nil {
		a.bus = event.NewEventBus()
	}
	if a.logger == nil {
		a.logger = logging.NewLoggerWithWriter(io.Discard, slog.LevelError, logging.FormatJSON)
	}

	a.rng = rand.New(rand.NewPCG(a.seed, a.seed^0x9e3779b97f4a7c15))
	a.camera = camera.New(cfg.Viewport.Width, cfg.Viewport.Height, a.bounds)
	a.director = wave.NewDirector(cfg.Wave, a.baseScaling())
	a.index = physics.NewQuadTree[body](a.indexBoundary(), 8)
	a.world = &ecs.World{}
	a.registerSystems()

	a.store.SetPlayer(entity.NewCraft(entity.KindPlayer, cfg.Player, a.bounds.Center()))
	if a.initialWave {
		a.spawnInitial()
	}
	a.camera.Follow(a.store.Player.Position)

	a.logger.Info(context.Background(), "arena created",
		"world_width", cfg.World.Width,
		"world_height", cfg.World.Height,
		"seed", a.seed,
		"fighters", a.store.Count(entity.KindFighter),
		"debris", a.store.Count(entity.KindDebris),
	)
	return a, nil
}

func (a *Arena) baseScaling() wave.Scaling {
	if !a.initialWave {
		return wave.Scaling{
			FighterHealth:    a.cfg.Fighter.Health,
			FighterSpeed:     a.cfg.Fighter.Speed,
			FighterFireDelay: a.cfg.Fighter.FireDelay,
		}
	}
	return wave.BaseScaling(a.cfg)
}

// Advance runs one tick covering dt seconds. Negative or NaN dt counts as
// zero; dt above the configured maximum is clamped. A dt longer than one
// nominal tick is simulated in equal substeps no longer than a tick.
func (a *Arena) Advance(dt float64, in Intents) TickEvents {
	a.mu.Lock()
	events := a.advance(dt, in)
	a.mu.Unlock()

	for _, e := range events {
		a.bus.Publish(e)
	}
	return events
}

func (a *Arena) advance(dt float64, in Intents) TickEvents {
	dt = a.clampDelta(dt)
	in.Turn = clampTurn(in.Turn)
	a.intents = in
	a.pending = nil

	// a long frame runs as several substeps of at most one nominal tick so
	// fast projectiles cannot skip over a body
	rate := float64(a.cfg.Simulation.TickRate)
	steps := max(1, int(math.Ceil(dt*rate-1e-9)))
	sub := dt / float64(steps)
	a.step = sub * rate
	for a.substep = 0; a.substep < steps; a.substep++ {
		a.clock += sub
		a.world.Update(float32(sub))
		a.store.Compact()
	}

	a.tick++
	return a.pending
}

func (a *Arena) clampDelta(dt float64) float64 {
	if math.IsNaN(dt) || dt < 0 {
		return 0
	}
	return math.Min(dt, a.cfg.Simulation.MaxDelta)
}

func clampTurn(turn int) int {
	switch {
	case turn < 0:
		return -1
	case turn > 0:
		return 1
	}
	return 0
}

// Reset restores score 0, wave 1 and the player at the world center, and
// regenerates the populations.
func (a *Arena) Reset() {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.store.ClearPopulations()
	a.store.Player.Respawn(a.bounds.Center())
	a.score = 0
	a.tick = 0
	a.clock = 0
	a.respawnPending = false
	a.playerCmd = ai.Command{}
	a.director.Reset(a.baseScaling())
	if a.initialWave {
		a.spawnInitial()
	}
	a.camera.Follow(a.store.Player.Position)

	a.logger.Info(context.Background(), "arena reset", "seed", a.seed)
}

// Store exposes the entity collections. Callers must not use it while
// another goroutine is advancing the arena.
func (a *Arena) Store() *entity.Store {
	return a.store
}

// Config returns the configuration the arena was built with
func (a *Arena) Config() *config.ArenaConfig {
	return a.cfg
}

// EventBus returns the bus tick events are published on
func (a *Arena) EventBus() *event.Bus {
	return a.bus
}

// Score returns the player's score
func (a *Arena) Score() int {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.score
}

// Tick returns the number of completed ticks
func (a *Arena) Tick() uint64 {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.tick
}

// Wave returns the current wave number
func (a *Arena) Wave() int {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.director.Wave()
}

// Clock returns the simulated time in seconds
func (a *Arena) Clock() float64 {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.clock
}

// PlayerCommand returns the piloting command applied to the player last tick
func (a *Arena) PlayerCommand() ai.Command {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.playerCmd
}

// eventTick is the source stamped on events: the number of the tick being
// advanced, as Tick will report it once Advance returns
func (a *Arena) eventTick() uint64 {
	return a.tick + 1
}

// emit queues an event for the end of the tick
func (a *Arena) emit(e event.Event) {
	a.pending = append(a.pending, e)
}

// explode leaves an explosion entity and queues its event
func (a *Arena) explode(pos physics.Vector2D, size float64) {
	fx := a.cfg.Effects
	a.store.AddExplosion(entity.NewExplosion(pos, size, fx.ExplosionLife))
	a.emit(event.NewExplosionEvent(a.eventTick(), pos, size))
}

// label leaves a floating text entity and queues its event
func (a *Arena) label(pos physics.Vector2D, text string, tone entity.Tone) {
	fx := a.cfg.Effects
	a.store.AddText(entity.NewFloatingText(pos, text, tone, fx.TextLife, fx.TextRise, fx.TextFade))
	a.emit(event.NewTextEvent(a.eventTick(), pos, text, tone))
}

// award adds delta to the score and queues a score event
func (a *Arena) award(delta int, reason entity.Kind) {
	if delta == 0 {
		return
	}
	a.score += delta
	a.emit(event.NewScoreEvent(a.eventTick(), delta, a.score, reason))
}
