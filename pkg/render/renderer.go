// pkg/render/renderer.go
package render

import (
	"context"

	"github.com/opd-ai/go-skirmish/pkg/engine"
	"github.com/opd-ai/go-skirmish/pkg/logging"
)

// Renderer is a presentation collaborator. It draws snapshots and owns
// whatever output device it was created with.
type Renderer interface {
	engine.Sink
	Close() error
}

// NullRenderer draws nothing. It logs a summary of every frame at debug
// level, which is useful for headless runs.
type NullRenderer struct {
	logger *logging.Logger
	frames int
}

// NewNullRenderer creates a NullRenderer. A nil logger falls back to
// logging.NewLogger.
func NewNullRenderer(logger *logging.Logger) *NullRenderer {
	if logger == nil {
		logger = logging.NewLogger()
	}
	return &NullRenderer{logger: logger}
}

// Render implements engine.Sink.
func (d *NullRenderer) Render(snap engine.Snapshot) error {
	d.frames++
	d.logger.Debug(context.Background(), "frame",
		"tick", snap.Tick,
		"score", snap.Score,
		"wave", snap.Wave,
		"wave_state", snap.WaveState.String(),
		"health", snap.Player.Health,
		"fighters", len(snap.Fighters),
		"debris", len(snap.Debris),
		"projectiles", len(snap.Projectiles),
	)
	return nil
}

// Frames returns how many snapshots have been rendered
func (d *NullRenderer) Frames() int {
	return d.frames
}

// Close implements Renderer.
func (d *NullRenderer) Close() error {
	d.logger.Debug(context.Background(), "null renderer closed", "frames", d.frames)
	return nil
}
