// pkg/resource/health.go
package resource

import (
	"context"
	"fmt"
)

// HealthCheck reports a manager unhealthy once a worker has failed or the
// heap is over its limit.
type HealthCheck struct {
	manager *Manager
}

// NewHealthCheck creates a health check for m
func NewHealthCheck(m *Manager) *HealthCheck {
	return &HealthCheck{manager: m}
}

// Name returns the name of this health check.
func (h *HealthCheck) Name() string {
	return "workers"
}

// Check verifies worker failures and memory
func (h *HealthCheck) Check(ctx context.Context) error {
	stats := h.manager.Stats()
	if stats.Failures > 0 {
		return fmt.Errorf("%d of %d workers failed", stats.Failures, stats.Started)
	}
	if stats.MemoryMB > stats.MaxMemoryMB {
		return fmt.Errorf("memory usage %dMB exceeds limit %dMB", stats.MemoryMB, stats.MaxMemoryMB)
	}
	return nil
}
