// cmd/skirmish/main.go
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/opd-ai/go-skirmish/pkg/config"
	"github.com/opd-ai/go-skirmish/pkg/engine"
	"github.com/opd-ai/go-skirmish/pkg/logging"
	"github.com/opd-ai/go-skirmish/pkg/render"
	engorender "github.com/opd-ai/go-skirmish/pkg/render/engo"
)

// Renderer names accepted by -renderer
const (
	rendererTerminal = "terminal"
	rendererEngo     = "engo"
	rendererNull     = "null"
)

// settings are the parsed command line flags
type settings struct {
	configPath string
	renderer   string
	seed       uint64
	logPath    string
	duration   time.Duration
	width      int
	height     int
	fullscreen bool
}

func main() {
	var s settings
	createDefault := flag.Bool("default", false, "Create default configuration file")
	flag.StringVar(&s.configPath, "config", "config.json", "Path to configuration file")
	flag.StringVar(&s.renderer, "renderer", rendererTerminal, "Renderer type: 'terminal', 'engo' or 'null'")
	flag.Uint64Var(&s.seed, "seed", 0, "Random seed (0 keeps the configured seed)")
	flag.StringVar(&s.logPath, "log", "skirmish.log", "Log file used while the terminal renderer owns the screen")
	flag.DurationVar(&s.duration, "duration", 0, "Stop after this long (0 runs until quit)")
	flag.IntVar(&s.width, "width", 1024, "Window width (Engo only)")
	flag.IntVar(&s.height, "height", 768, "Window height (Engo only)")
	flag.BoolVar(&s.fullscreen, "fullscreen", false, "Run in fullscreen mode (Engo only)")
	flag.Parse()

	ctx := logging.WithRunID(context.Background(), logging.GenerateRunID())

	if *createDefault {
		logger := logging.NewLogger()
		if err := config.SaveConfig(config.DefaultConfig(), s.configPath); err != nil {
			logger.Error(ctx, "Failed to create default configuration", err, "config_path", s.configPath)
			os.Exit(1)
		}
		logger.Info(ctx, "Created default configuration file", "config_path", s.configPath)
		return
	}

	logger, closeLog, err := openLogger(s)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer closeLog()

	if err := run(ctx, logger, s); err != nil {
		logger.Error(ctx, "Skirmish exited with error", err, "renderer", s.renderer)
		closeLog()
		os.Exit(1)
	}
}

// openLogger returns the process logger. The terminal renderer owns stderr,
// so in that mode logs go to a file.
func openLogger(s settings) (*logging.Logger, func(), error) {
	if s.renderer != rendererTerminal || s.logPath == "" {
		return logging.NewLogger(), func() {}, nil
	}
	f, err := os.OpenFile(s.logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	level := logging.ParseLevel(os.Getenv(logging.EnvLogLevel))
	logger := logging.NewLoggerWithWriter(f, level, os.Getenv(logging.EnvLogFormat))
	return logger, func() { f.Close() }, nil
}

// loadConfig reads path, falling back to the defaults when it does not
// exist, and applies SKIRMISH_* overrides
func loadConfig(ctx context.Context, logger *logging.Logger, path string) (*config.ArenaConfig, error) {
	var cfg *config.ArenaConfig
	if _, err := os.Stat(path); os.IsNotExist(err) {
		logger.Info(ctx, "Configuration file not found, using default configuration", "config_path", path)
		cfg = config.DefaultConfig()
	} else {
		cfg, err = config.LoadConfig(path)
		if err != nil {
			return nil, err
		}
	}
	if err := config.ApplyEnvironmentOverrides(cfg); err != nil {
		return nil, logging.WrapError(err, "apply environment overrides")
	}
	return cfg, nil
}

// newArena builds the arena described by s
func newArena(ctx context.Context, logger *logging.Logger, s settings) (*engine.Arena, error) {
	cfg, err := loadConfig(ctx, logger, s.configPath)
	if err != nil {
		return nil, logging.WrapError(err, "load configuration", "config_path", s.configPath)
	}
	opts := []engine.Option{engine.WithLogger(logger)}
	if s.seed != 0 {
		opts = append(opts, engine.WithSeed(s.seed))
	}
	return engine.NewArena(cfg, opts...)
}

func run(ctx context.Context, logger *logging.Logger, s settings) error {
	arena, err := newArena(ctx, logger, s)
	if err != nil {
		return err
	}

	switch s.renderer {
	case rendererEngo:
		engorender.Run(arena, logger, engorender.Options{
			Title:      "Skirmish",
			Width:      s.width,
			Height:     s.height,
			Fullscreen: s.fullscreen,
		})
		return nil
	case rendererTerminal, rendererNull:
	default:
		return fmt.Errorf("unknown renderer %q", s.renderer)
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()
	if s.duration > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.duration)
		defer cancel()
	}

	if s.renderer == rendererNull {
		return runHeadless(ctx, logger, arena)
	}
	return runTerminal(ctx, logger, arena)
}

// runHeadless plays on autopilot with snapshots going to the log
func runHeadless(ctx context.Context, logger *logging.Logger, arena *engine.Arena) error {
	sink := render.NewNullRenderer(logger)
	defer sink.Close()

	autopilot := engine.IntentSourceFunc(func() (engine.Intents, bool) {
		return engine.Intents{AutopilotEnabled: true}, false
	})
	logger.Info(ctx, "Starting headless arena")
	err := drive(ctx, arena, autopilot, sink)
	logger.Info(ctx, "Headless arena stopped",
		"frames", sink.Frames(),
		"score", arena.Score(),
		"wave", arena.Wave(),
	)
	return err
}

func runTerminal(ctx context.Context, logger *logging.Logger, arena *engine.Arena) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return logging.WrapError(err, "create terminal screen")
	}
	if err := screen.Init(); err != nil {
		return logging.WrapError(err, "initialize terminal screen")
	}

	renderer := render.NewTerminalRenderer(screen, logger)
	defer renderer.Close()

	input := render.NewTerminalInput(screen, render.DefaultKeyHold)
	input.Start(ctx)

	logger.Info(ctx, "Starting terminal arena")
	err = drive(ctx, arena, input, renderer)
	logger.Info(ctx, "Terminal arena stopped", "score", arena.Score(), "wave", arena.Wave())
	return err
}

// drive runs the real-time loop, treating a cancelled or expired context
// as a normal stop
func drive(ctx context.Context, arena *engine.Arena, source engine.IntentSource, sink engine.Sink) error {
	err := engine.Run(ctx, arena, source, sink, float64(arena.Config().Simulation.TickRate))
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return nil
	}
	return err
}
