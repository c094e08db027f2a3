// pkg/render/engo/camera.go
package engo

import (
	"github.com/EngoEngine/ecs"
	"github.com/EngoEngine/engo"
	"github.com/EngoEngine/engo/common"

	"github.com/opd-ai/go-skirmish/pkg/physics"
)

// CameraSystem moves the engo camera onto the arena's view centre. The
// arena camera already clamps the view to the world, so this system only
// smooths and zooms.
type CameraSystem struct {
	target    physics.Vector2D
	targetSet bool

	zoom    float32
	minZoom float32
	maxZoom float32

	followSpeed float32
	smoothing   bool

	currentPos physics.Vector2D

	buttons  buttons
	dispatch func(engo.Message)
}

// NewCameraSystem creates a new camera system
func NewCameraSystem() *CameraSystem {
	return &CameraSystem{
		zoom:        1.0,
		minZoom:     0.25,
		maxZoom:     3.0,
		followSpeed: 8.0,
		smoothing:   true,
		buttons:     engoButtons{},
		dispatch:    func(m engo.Message) { engo.Mailbox.Dispatch(m) },
	}
}

// Remove satisfies the ecs.System interface
func (cs *CameraSystem) Remove(basic ecs.BasicEntity) {}

// Update updates the camera position and zoom
func (cs *CameraSystem) Update(dt float32) {
	cs.handleZoomInput()
	if cs.targetSet {
		cs.updateCameraPosition(dt)
	}
	cs.applyCameraTransform()
}

func (cs *CameraSystem) handleZoomInput() {
	switch {
	case cs.buttons.Down(buttonZoomIn):
		cs.SetZoom(cs.zoom * 1.02)
	case cs.buttons.Down(buttonZoomOut):
		cs.SetZoom(cs.zoom * 0.98)
	}
	if cs.buttons.JustPressed(buttonResetZoom) {
		cs.SetZoom(1.0)
	}
}

// updateCameraPosition moves the camera toward the target. The blend is
// capped at 1 so a long frame never overshoots.
func (cs *CameraSystem) updateCameraPosition(dt float32) {
	if !cs.smoothing {
		cs.currentPos = cs.target
		return
	}
	blend := float64(min(cs.followSpeed*dt, 1))
	cs.currentPos = cs.currentPos.Add(cs.target.Sub(cs.currentPos).Scale(blend))
}

// applyCameraTransform sends the position and zoom to engo's camera. Engo
// measures zoom as distance, so the factor is inverted.
func (cs *CameraSystem) applyCameraTransform() {
	cs.dispatch(common.CameraMessage{Axis: common.XAxis, Value: float32(cs.currentPos.X)})
	cs.dispatch(common.CameraMessage{Axis: common.YAxis, Value: float32(cs.currentPos.Y)})
	cs.dispatch(common.CameraMessage{Axis: common.ZAxis, Value: 1 / cs.zoom})
}

// SetTarget sets the position the camera follows. The first target snaps
// the camera into place.
func (cs *CameraSystem) SetTarget(target physics.Vector2D) {
	if !cs.targetSet {
		cs.currentPos = target
	}
	cs.target = target
	cs.targetSet = true
}

// SetZoom sets the camera zoom level
func (cs *CameraSystem) SetZoom(zoom float32) {
	cs.zoom = cs.clampZoom(zoom)
}

// GetZoom returns the current zoom level
func (cs *CameraSystem) GetZoom() float32 {
	return cs.zoom
}

func (cs *CameraSystem) clampZoom(zoom float32) float32 {
	if zoom < cs.minZoom {
		return cs.minZoom
	}
	if zoom > cs.maxZoom {
		return cs.maxZoom
	}
	return zoom
}

// EnableSmoothing enables or disables camera smoothing
func (cs *CameraSystem) EnableSmoothing(enabled bool) {
	cs.smoothing = enabled
}

// GetCurrentPosition returns the current camera position
func (cs *CameraSystem) GetCurrentPosition() physics.Vector2D {
	return cs.currentPos
}
