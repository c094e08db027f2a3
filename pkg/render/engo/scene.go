// pkg/render/engo/scene.go
package engo

import (
	"context"
	"image/color"

	"github.com/EngoEngine/ecs"
	"github.com/EngoEngine/engo"
	"github.com/EngoEngine/engo/common"

	"github.com/opd-ai/go-skirmish/pkg/engine"
	"github.com/opd-ai/go-skirmish/pkg/event"
	"github.com/opd-ai/go-skirmish/pkg/logging"
)

// hudFontSize is the point size of HUD and floating text
const hudFontSize = 16

// GameScene runs an arena inside an engo window. Engo's frame loop drives
// the arena: each frame polls input, advances the arena by the frame time
// and mirrors the snapshot into render entities.
type GameScene struct {
	arena  *engine.Arena
	logger *logging.Logger
	assets *AssetManager

	renderer *EngoRenderer
	camera   *CameraSystem
	input    *InputSystem
	hud      *HUDSystem

	subscriptions []event.SubscriptionID
	quit          func()
}

// NewGameScene creates a new game scene
func NewGameScene(arena *engine.Arena, logger *logging.Logger) *GameScene {
	if logger == nil {
		logger = logging.NewLogger()
	}
	return &GameScene{
		arena:  arena,
		logger: logger,
		assets: NewAssetManager(),
		quit:   engo.Exit,
	}
}

// Type returns the scene type (required by Engo)
func (scene *GameScene) Type() string {
	return "GameScene"
}

// Preload loads the HUD font
func (scene *GameScene) Preload() {
	if err := scene.assets.LoadFont(hudFontSize); err != nil {
		scene.logger.Warn(context.Background(), "font unavailable, text disabled", "error", err.Error())
	}
}

// Setup is called when the scene starts (required by Engo)
func (scene *GameScene) Setup(u engo.Updater) {
	world, _ := u.(*ecs.World)

	common.SetBackground(color.Black)
	bounds := scene.arena.Config().World
	common.CameraBounds = engo.AABB{Max: engo.Point{X: float32(bounds.Width), Y: float32(bounds.Height)}}

	renderSystem := &common.RenderSystem{}
	world.AddSystem(renderSystem)

	SetupInputBindings()
	scene.attach(renderSystem)
	world.AddSystem(scene.camera)
	world.AddSystem(&arenaSystem{scene: scene})

	scene.logger.Info(context.Background(), "engo scene ready",
		"world_width", bounds.Width,
		"world_height", bounds.Height,
	)
}

// attach builds the presentation pieces over a sprite system and subscribes
// to arena events
func (scene *GameScene) attach(system spriteSystem) {
	scene.renderer = NewEngoRenderer(system, scene.assets)
	scene.camera = NewCameraSystem()
	scene.input = NewInputSystem()
	scene.hud = NewHUDSystem(system, scene.assets.Font())
	scene.subscribeToEvents()
}

// subscribeToEvents logs wave progress
func (scene *GameScene) subscribeToEvents() {
	bus := scene.arena.EventBus()
	ctx := context.Background()
	scene.subscriptions = append(scene.subscriptions,
		bus.Subscribe(event.WaveAdvanced, func(e event.Event) {
			if w, ok := e.(*event.WaveEvent); ok {
				scene.logger.Info(ctx, "wave started", "wave", w.Wave, "score", scene.arena.Score())
			}
		}),
		bus.Subscribe(event.Respawned, func(event.Event) {
			scene.logger.Debug(ctx, "player respawned")
		}),
	)
}

// step advances the arena one frame and redraws
func (scene *GameScene) step(dt float32) {
	intents, quit := scene.input.Poll()
	if quit {
		scene.quit()
		return
	}
	if scene.input.RestartRequested() {
		scene.arena.Reset()
	}

	scene.arena.Advance(float64(dt), intents)
	snap := scene.arena.Snapshot()

	if err := scene.renderer.Render(snap); err != nil {
		scene.logger.Error(context.Background(), "render failed", err)
	}
	scene.hud.UpdateSnapshot(snap)
	scene.camera.SetTarget(snap.View.Center)
}

// Exit is called when the scene is exiting (required by Engo)
func (scene *GameScene) Exit() {
	bus := scene.arena.EventBus()
	for _, id := range scene.subscriptions {
		bus.Unsubscribe(id)
	}
	scene.subscriptions = nil
	if scene.renderer != nil {
		scene.renderer.Close()
	}
	scene.logger.Info(context.Background(), "engo scene closed", "score", scene.arena.Score(), "wave", scene.arena.Wave())
}

// arenaSystem is the ecs system that steps the scene every frame
type arenaSystem struct {
	scene *GameScene
}

func (s *arenaSystem) Update(dt float32) { s.scene.step(dt) }

func (s *arenaSystem) Remove(ecs.BasicEntity) {}

// Options configures the engo window
type Options struct {
	Title      string
	Width      int
	Height     int
	Fullscreen bool
}

// Run opens a window and plays arena in it until the window closes
func Run(arena *engine.Arena, logger *logging.Logger, opts Options) {
	if opts.Title == "" {
		opts.Title = "Skirmish"
	}
	engo.Run(engo.RunOptions{
		Title:      opts.Title,
		Width:      opts.Width,
		Height:     opts.Height,
		Fullscreen: opts.Fullscreen,
		VSync:      true,
	}, NewGameScene(arena, logger))
}
