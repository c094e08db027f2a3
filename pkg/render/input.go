package render

import (
	"context"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/opd-ai/go-skirmish/pkg/engine"
)

// DefaultKeyHold is how long a key press keeps its action held. Terminals
// report key repeats but never releases.
const DefaultKeyHold = 150 * time.Millisecond

// TerminalInput maps tcell key events to arena intents. It implements
// engine.IntentSource.
type TerminalInput struct {
	screen tcell.Screen
	events chan tcell.Event
	hold   time.Duration
	now    func() time.Time

	left, right, thrust, fire, shield time.Time

	autopilot bool
	quit      bool
}

// NewTerminalInput creates an input mapper. Call Start to begin reading
// events from the screen.
func NewTerminalInput(screen tcell.Screen, hold time.Duration) *TerminalInput {
	if hold <= 0 {
		hold = DefaultKeyHold
	}
	return &TerminalInput{
		screen: screen,
		events: make(chan tcell.Event, 100),
		hold:   hold,
		now:    time.Now,
	}
}

// Start pumps screen events into the mapper until the screen is finalized
// or ctx is cancelled
func (in *TerminalInput) Start(ctx context.Context) {
	go func() {
		for {
			ev := in.screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case in.events <- ev:
			case <-ctx.Done():
				return
			}
		}
	}()
}

// Poll implements engine.IntentSource
func (in *TerminalInput) Poll() (engine.Intents, bool) {
	for drained := false; !drained; {
		select {
		case ev := <-in.events:
			in.handle(ev)
		default:
			drained = true
		}
	}
	if in.quit {
		return engine.Intents{}, true
	}

	now := in.now()
	held := func(at time.Time) bool {
		return !at.IsZero() && now.Sub(at) < in.hold
	}

	intents := engine.Intents{
		Thrusting:        held(in.thrust),
		Firing:           held(in.fire),
		Shield:           held(in.shield),
		AutopilotEnabled: in.autopilot,
	}
	switch {
	case held(in.left) && held(in.right):
		if in.left.After(in.right) {
			intents.Turn = -1
		} else {
			intents.Turn = 1
		}
	case held(in.left):
		intents.Turn = -1
	case held(in.right):
		intents.Turn = 1
	}
	return intents, false
}

func (in *TerminalInput) handle(ev tcell.Event) {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		now := in.now()
		switch ev.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			in.quit = true
		case tcell.KeyLeft:
			in.left = now
		case tcell.KeyRight:
			in.right = now
		case tcell.KeyUp:
			in.thrust = now
		case tcell.KeyRune:
			switch ev.Rune() {
			case ' ':
				in.fire = now
			case 's', 'S':
				in.shield = now
			case 'a', 'A':
				in.autopilot = !in.autopilot
			case 'q', 'Q':
				in.quit = true
			}
		}
	case *tcell.EventResize:
		if in.screen != nil {
			in.screen.Sync()
		}
	}
}
