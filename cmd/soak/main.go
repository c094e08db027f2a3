// cmd/soak/main.go
package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/opd-ai/go-skirmish/pkg/config"
	"github.com/opd-ai/go-skirmish/pkg/health"
	"github.com/opd-ai/go-skirmish/pkg/logging"
	"github.com/opd-ai/go-skirmish/pkg/resource"
)

// stallWindow is how long the tick counter may stand still before /ready
// reports the run as stalled
const stallWindow = 5 * time.Second

func main() {
	logger := logging.NewLogger()
	ctx := logging.WithRunID(context.Background(), logging.GenerateRunID())

	configPath := flag.String("config", "config.json", "Path to configuration file")
	createDefault := flag.Bool("default", false, "Create default configuration file")
	arenas := flag.Int("arenas", 1, "Number of arenas to run in parallel")
	ticks := flag.Uint64("ticks", 36000, "Ticks to run per arena")
	seed := flag.Uint64("seed", 0, "Base seed; arena i uses seed+i (0 keeps the configured seed)")
	healthAddr := flag.String("health", "", "Serve /health and /ready on this address, e.g. :8080")
	maxMemory := flag.Int64("max-memory", 512, "Memory limit in MB")
	flag.Parse()

	if *createDefault {
		if err := config.SaveConfig(config.DefaultConfig(), *configPath); err != nil {
			logger.Error(ctx, "Failed to create default configuration", err, "config_path", *configPath)
			os.Exit(1)
		}
		logger.Info(ctx, "Created default configuration file", "config_path", *configPath)
		return
	}

	cfg, err := loadConfig(ctx, logger, *configPath)
	if err != nil {
		logger.Error(ctx, "Failed to load configuration", err, "config_path", *configPath)
		os.Exit(1)
	}
	if *arenas < 1 {
		logger.Error(ctx, "Invalid arena count", errors.New("-arenas must be at least 1"), "arenas", *arenas)
		os.Exit(1)
	}

	opts := options{
		arenas:      *arenas,
		ticks:       *ticks,
		seed:        *seed,
		maxMemoryMB: *maxMemory,
		healthAddr:  *healthAddr,
	}
	if err := run(ctx, logger, cfg, opts); err != nil {
		logger.Error(ctx, "Soak run failed", err)
		os.Exit(1)
	}
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
	return cfg, cfg.Validate()
}

func run(ctx context.Context, logger *logging.Logger, cfg *config.ArenaConfig, opts options) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	manager := resource.NewManager(resource.Limits{
		MaxMemoryMB: opts.maxMemoryMB,
		MaxWorkers:  int64(opts.arenas),
	}, logger)
	if err := manager.Start(); err != nil {
		return err
	}

	var progress atomic.Uint64
	var healthServer *http.Server
	if opts.healthAddr != "" {
		healthServer = startHealthServer(ctx, logger, opts, manager, &progress)
	}

	logger.Info(ctx, "Starting soak run",
		"arenas", opts.arenas,
		"ticks", opts.ticks,
		"tick_rate", cfg.Simulation.TickRate,
	)
	started := time.Now()
	reports, err := soak(ctx, cfg, opts, manager, logger, &progress)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if healthServer != nil {
		if err := healthServer.Shutdown(shutdownCtx); err != nil {
			logger.Error(ctx, "Health check server shutdown failed", err)
		}
	}
	if err := manager.Shutdown(shutdownCtx); err != nil {
		logger.Warn(ctx, "Resource manager shutdown incomplete", "error", err.Error())
	}
	if err != nil {
		return err
	}

	total, score, cleared, respawns := totals(reports)
	elapsed := time.Since(started)
	logger.Info(ctx, "Soak run complete",
		"arenas", len(reports),
		"ticks", total,
		"score", score,
		"waves_cleared", cleared,
		"respawns", respawns,
		"elapsed", elapsed.Round(time.Millisecond).String(),
		"ticks_per_second", float64(total)/elapsed.Seconds(),
		"interrupted", ctx.Err() != nil,
	)
	return nil
}

func startHealthServer(ctx context.Context, logger *logging.Logger, opts options, manager *resource.Manager, progress *atomic.Uint64) *http.Server {
	checker := health.NewHealthChecker()
	checker.AddCheck(health.NewProgressCheck("arena", stallWindow, progress.Load))
	checker.AddCheck(health.NewMemoryHealthCheck(opts.maxMemoryMB, manager.MemoryUsage))
	checker.AddCheck(resource.NewHealthCheck(manager))

	server := &http.Server{
		Addr:         opts.healthAddr,
		Handler:      checker.Handler(),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 5 * time.Second,
	}
	go func() {
		logger.Info(ctx, "Starting health check server", "address", opts.healthAddr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error(ctx, "Health check server failed", err)
		}
	}()
	return server
}
