package engine

import (
	"context"
	"errors"
	"time"
)

// ErrInvalidTickRate is returned by Run for a non-positive tick rate
var ErrInvalidTickRate = errors.New("tick rate must be positive")

// IntentSource supplies the player's intents once per tick. quit reports
// that the player asked to leave.
type IntentSource interface {
	Poll() (in Intents, quit bool)
}

// Sink consumes a snapshot after every tick
type Sink interface {
	Render(snap Snapshot) error
}

// IntentSourceFunc adapts a function to IntentSource
type IntentSourceFunc func() (Intents, bool)

// Poll calls f
func (f IntentSourceFunc) Poll() (Intents, bool) { return f() }

// Run drives the arena in real time at tickRate ticks per second until ctx
// is cancelled, the source quits or the sink fails. Each tick advances by
// the wall-clock time since the previous one; Advance clamps long stalls.
func Run(ctx context.Context, arena *Arena, source IntentSource, sink Sink, tickRate float64) error {
	if tickRate <= 0 {
		return ErrInvalidTickRate
	}
	ticker := time.NewTicker(time.Duration(float64(time.Second) / tickRate))
	defer ticker.Stop()

	last := time.Now()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case now := <-ticker.C:
			in, quit := source.Poll()
			if quit {
				return nil
			}
			arena.Advance(now.Sub(last).Seconds(), in)
			last = now

			if sink == nil {
				continue
			}
			if err := sink.Render(arena.Snapshot()); err != nil {
				return err
			}
		}
	}
}
