// pkg/resource/manager.go
package resource

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"github.com/opd-ai/go-skirmish/pkg/logging"
)

// ErrWorkerLimit is returned by Go when every worker slot is taken
var ErrWorkerLimit = errors.New("worker limit reached")

// Limits bounds what a Manager lets its workers use
type Limits struct {
	MaxMemoryMB     int64
	MaxWorkers      int64
	ShutdownTimeout time.Duration
	CheckInterval   time.Duration
}

// DefaultLimits returns limits suited to a batch of headless arenas
func DefaultLimits() Limits {
	return Limits{
		MaxMemoryMB:     512,
		MaxWorkers:      int64(4 * runtime.NumCPU()),
		ShutdownTimeout: 30 * time.Second,
		CheckInterval:   10 * time.Second,
	}
}

// Manager runs arena workers in tracked goroutines, recovers their panics
// and samples heap usage on an interval.
type Manager struct {
	limits Limits
	logger *logging.Logger

	workers  int64
	started  int64
	failures int64
	memoryMB int64

	ctx     context.Context
	cancel  context.CancelFunc
	done    chan struct{}
	mu      sync.Mutex
	running bool

	lastCheck atomic.Int64 // unix nanoseconds
}

// NewManager creates a manager. Zero limits fall back to DefaultLimits and
// a nil logger to logging.NewLogger.
func NewManager(limits Limits, logger *logging.Logger) *Manager {
	def := DefaultLimits()
	if limits.MaxMemoryMB <= 0 {
		limits.MaxMemoryMB = def.MaxMemoryMB
	}
	if limits.MaxWorkers <= 0 {
		limits.MaxWorkers = def.MaxWorkers
	}
	if limits.ShutdownTimeout <= 0 {
		limits.ShutdownTimeout = def.ShutdownTimeout
	}
	if limits.CheckInterval <= 0 {
		limits.CheckInterval = def.CheckInterval
	}
	if logger == nil {
		logger = logging.NewLogger()
	}

	ctx, cancel := context.WithCancel(context.Background())
	return &Manager{
		limits: limits,
		logger: logger,
		ctx:    ctx,
		cancel: cancel,
		done:   make(chan struct{}),
	}
}

// Start begins periodic memory sampling
func (m *Manager) Start() error {
	m.mu.Lock()
	if m.running {
		m.mu.Unlock()
		return fmt.Errorf("resource manager already running")
	}
	m.running = true
	m.mu.Unlock()

	go m.monitor()

	m.logger.Info(m.ctx, "resource manager started",
		"max_memory_mb", m.limits.MaxMemoryMB,
		"max_workers", m.limits.MaxWorkers,
		"check_interval", m.limits.CheckInterval.String(),
	)
	return nil
}

// Go runs fn in a tracked goroutine. A returned error or a panic counts as
// a failure and is logged under name.
func (m *Manager) Go(ctx context.Context, name string, fn func(context.Context) error) error {
	if n := atomic.AddInt64(&m.workers, 1); n > m.limits.MaxWorkers {
		atomic.AddInt64(&m.workers, -1)
		m.logger.Warn(ctx, "worker limit reached", "name", name, "limit", m.limits.MaxWorkers)
		return fmt.Errorf("start %s: %w (%d)", name, ErrWorkerLimit, m.limits.MaxWorkers)
	}
	atomic.AddInt64(&m.started, 1)

	go func() {
		defer atomic.AddInt64(&m.workers, -1)
		defer func() {
			if r := recover(); r != nil {
				atomic.AddInt64(&m.failures, 1)
				m.logger.Error(ctx, "worker panic", fmt.Errorf("panic: %v", r), "name", name)
			}
		}()

		if err := fn(ctx); err != nil && !errors.Is(err, context.Canceled) {
			atomic.AddInt64(&m.failures, 1)
			m.logger.Error(ctx, "worker failed", err, "name", name)
		}
	}()
	return nil
}

// Wait blocks until every worker has returned or ctx ends
func (m *Manager) Wait(ctx context.Context) error {
	ticker := time.NewTicker(10 * time.Millisecond)
	defer ticker.Stop()

	for {
		n := m.Workers()
		if n == 0 {
			return nil
		}
		select {
		case <-ticker.C:
		case <-ctx.Done():
			return fmt.Errorf("%d workers still running: %w", m.Workers(), ctx.Err())
		}
	}
}

// CheckMemoryUsage samples the heap and reports whether it is over the limit
func (m *Manager) CheckMemoryUsage() error {
	var ms runtime.MemStats
	runtime.ReadMemStats(&ms)

	current := int64(ms.Alloc / 1024 / 1024)
	atomic.StoreInt64(&m.memoryMB, current)
	m.lastCheck.Store(time.Now().UnixNano())

	if current > m.limits.MaxMemoryMB {
		return fmt.Errorf("memory usage %dMB exceeds limit %dMB", current, m.limits.MaxMemoryMB)
	}
	return nil
}

// Workers returns the number of running workers
func (m *Manager) Workers() int64 {
	return atomic.LoadInt64(&m.workers)
}

// Failures returns how many workers returned an error or panicked
func (m *Manager) Failures() int64 {
	return atomic.LoadInt64(&m.failures)
}

// MemoryUsage returns the last sampled heap size in MB
func (m *Manager) MemoryUsage() int64 {
	return atomic.LoadInt64(&m.memoryMB)
}

// Stats is a point-in-time view of the manager
type Stats struct {
	Workers     int64     `json:"workers"`
	MaxWorkers  int64     `json:"max_workers"`
	Started     int64     `json:"started"`
	Failures    int64     `json:"failures"`
	MemoryMB    int64     `json:"memory_mb"`
	MaxMemoryMB int64     `json:"max_memory_mb"`
	LastCheck   time.Time `json:"last_check"`
}

// Stats returns current usage
func (m *Manager) Stats() Stats {
	var last time.Time
	if ns := m.lastCheck.Load(); ns != 0 {
		last = time.Unix(0, ns)
	}
	return Stats{
		Workers:     m.Workers(),
		MaxWorkers:  m.limits.MaxWorkers,
		Started:     atomic.LoadInt64(&m.started),
		Failures:    m.Failures(),
		MemoryMB:    m.MemoryUsage(),
		MaxMemoryMB: m.limits.MaxMemoryMB,
		LastCheck:   last,
	}
}

// Shutdown stops sampling and waits up to the shutdown timeout for workers.
// Workers are not cancelled; cancel the context they were started with.
func (m *Manager) Shutdown(ctx context.Context) error {
	m.mu.Lock()
	wasRunning := m.running
	m.running = false
	m.mu.Unlock()

	m.cancel()

	shutdownCtx, cancel := context.WithTimeout(ctx, m.limits.ShutdownTimeout)
	defer cancel()

	if wasRunning {
		select {
		case <-m.done:
		case <-shutdownCtx.Done():
			m.logger.Warn(ctx, "resource monitor did not stop in time")
		}
	}

	if err := m.Wait(shutdownCtx); err != nil {
		m.logger.Warn(ctx, "shutdown timed out", "remaining", m.Workers())
		return err
	}
	m.logger.Info(ctx, "resource manager stopped", "started", atomic.LoadInt64(&m.started), "failures", m.Failures())
	return nil
}

func (m *Manager) monitor() {
	defer close(m.done)

	ticker := time.NewTicker(m.limits.CheckInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			m.check()
		case <-m.ctx.Done():
			return
		}
	}
}

func (m *Manager) check() {
	if err := m.CheckMemoryUsage(); err != nil {
		m.logger.Error(m.ctx, "memory limit exceeded", err, "limit_mb", m.limits.MaxMemoryMB)
	}
	m.logger.Debug(m.ctx, "resource usage",
		"workers", m.Workers(),
		"memory_mb", m.MemoryUsage(),
		"failures", m.Failures(),
	)
}
