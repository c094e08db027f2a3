// pkg/render/engo/input.go
package engo

import (
	"github.com/EngoEngine/engo"

	"github.com/opd-ai/go-skirmish/pkg/engine"
)

// Button names registered by SetupInputBindings
const (
	buttonThrust    = "thrust"
	buttonTurnLeft  = "turnLeft"
	buttonTurnRight = "turnRight"
	buttonFire      = "fire"
	buttonShield    = "shield"
	buttonAutopilot = "autopilot"
	buttonRestart   = "restart"
	buttonQuit      = "quit"
	buttonZoomIn    = "zoomIn"
	buttonZoomOut   = "zoomOut"
	buttonResetZoom = "resetZoom"
)

// buttons reads named button state
type buttons interface {
	Down(name string) bool
	JustPressed(name string) bool
}

// engoButtons reads the global engo input manager
type engoButtons struct{}

func (engoButtons) Down(name string) bool        { return engo.Input.Button(name).Down() }
func (engoButtons) JustPressed(name string) bool { return engo.Input.Button(name).JustPressed() }

// InputSystem maps engo keyboard state to arena intents. It implements
// engine.IntentSource and is polled once per frame.
type InputSystem struct {
	buttons buttons

	autopilot bool
	restart   bool
}

// NewInputSystem creates a new input system
func NewInputSystem() *InputSystem {
	return &InputSystem{buttons: engoButtons{}}
}

// Poll implements engine.IntentSource
func (is *InputSystem) Poll() (engine.Intents, bool) {
	b := is.buttons
	if b.JustPressed(buttonQuit) {
		return engine.Intents{}, true
	}
	if b.JustPressed(buttonAutopilot) {
		is.autopilot = !is.autopilot
	}
	is.restart = b.JustPressed(buttonRestart)

	in := engine.Intents{
		Thrusting:        b.Down(buttonThrust),
		Firing:           b.Down(buttonFire),
		Shield:           b.Down(buttonShield),
		AutopilotEnabled: is.autopilot,
	}
	if b.Down(buttonTurnLeft) {
		in.Turn--
	}
	if b.Down(buttonTurnRight) {
		in.Turn++
	}
	return in, false
}

// RestartRequested reports whether the last Poll saw the restart key
func (is *InputSystem) RestartRequested() bool {
	return is.restart
}

// SetupInputBindings sets up the key bindings for the game. It must run
// after engo has started.
func SetupInputBindings() {
	engo.Input.RegisterButton(buttonThrust, engo.KeyW, engo.KeyArrowUp)
	engo.Input.RegisterButton(buttonTurnLeft, engo.KeyA, engo.KeyArrowLeft)
	engo.Input.RegisterButton(buttonTurnRight, engo.KeyD, engo.KeyArrowRight)
	engo.Input.RegisterButton(buttonFire, engo.KeySpace)
	engo.Input.RegisterButton(buttonShield, engo.KeyS, engo.KeyArrowDown)
	engo.Input.RegisterButton(buttonAutopilot, engo.KeyP)
	engo.Input.RegisterButton(buttonRestart, engo.KeyN)
	engo.Input.RegisterButton(buttonQuit, engo.KeyEscape)

	engo.Input.RegisterButton(buttonZoomIn, engo.KeyZ)
	engo.Input.RegisterButton(buttonZoomOut, engo.KeyX)
	engo.Input.RegisterButton(buttonResetZoom, engo.KeyR)
}
