// pkg/render/engo/camera_test.go
package engo

import (
	"math"
	"testing"

	"github.com/EngoEngine/engo"
	"github.com/EngoEngine/engo/common"

	"github.com/opd-ai/go-skirmish/pkg/physics"
)

func newTestCamera() (*CameraSystem, *fakeButtons, *[]common.CameraMessage) {
	cs := NewCameraSystem()
	b := newFakeButtons()
	sent := &[]common.CameraMessage{}
	cs.buttons = b
	cs.dispatch = func(m engo.Message) {
		if msg, ok := m.(common.CameraMessage); ok {
			*sent = append(*sent, msg)
		}
	}
	return cs, b, sent
}

func TestCameraSystem_FirstTargetSnaps(t *testing.T) {
	cs, _, _ := newTestCamera()
	target := physics.Vector2D{X: 400, Y: 300}
	cs.SetTarget(target)
	if cs.GetCurrentPosition() != target {
		t.Errorf("position = %+v, expected %+v", cs.GetCurrentPosition(), target)
	}
}

func TestCameraSystem_SmoothsTowardTarget(t *testing.T) {
	tests := []struct {
		name      string
		smoothing bool
		dt        float32
		wantX     float64
	}{
		{"smoothed_partial_step", true, 0.05, 40},
		{"long_frame_does_not_overshoot", true, 10, 100},
		{"unsmoothed_jumps", false, 0.05, 100},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cs, _, _ := newTestCamera()
			cs.EnableSmoothing(tc.smoothing)
			cs.SetTarget(physics.Vector2D{})
			cs.SetTarget(physics.Vector2D{X: 100})
			cs.Update(tc.dt)
			if got := cs.GetCurrentPosition().X; math.Abs(got-tc.wantX) > 1e-4 {
				t.Errorf("x = %v, expected %v", got, tc.wantX)
			}
		})
	}
}

func TestCameraSystem_DispatchesPositionAndZoom(t *testing.T) {
	cs, _, sent := newTestCamera()
	cs.SetTarget(physics.Vector2D{X: 250, Y: 125})
	cs.SetZoom(2)
	cs.Update(1.0 / 60)

	if len(*sent) != 3 {
		t.Fatalf("messages = %d, expected 3", len(*sent))
	}
	want := map[common.CameraAxis]float32{common.XAxis: 250, common.YAxis: 125, common.ZAxis: 0.5}
	for _, msg := range *sent {
		if msg.Value != want[msg.Axis] || msg.Incremental {
			t.Errorf("axis %v: value %v incremental %v", msg.Axis, msg.Value, msg.Incremental)
		}
	}
}

func TestCameraSystem_ZoomControls(t *testing.T) {
	cs, b, _ := newTestCamera()

	cs.SetZoom(100)
	if cs.GetZoom() != 3 {
		t.Errorf("zoom = %v, expected clamp to 3", cs.GetZoom())
	}
	cs.SetZoom(0)
	if cs.GetZoom() != 0.25 {
		t.Errorf("zoom = %v, expected clamp to 0.25", cs.GetZoom())
	}

	cs.SetZoom(1)
	b.down[buttonZoomIn] = true
	cs.Update(1.0 / 60)
	if cs.GetZoom() <= 1 {
		t.Errorf("zoom in left zoom at %v", cs.GetZoom())
	}

	b.down[buttonZoomIn] = false
	b.just[buttonResetZoom] = true
	cs.Update(1.0 / 60)
	if cs.GetZoom() != 1 {
		t.Errorf("reset zoom = %v", cs.GetZoom())
	}
}
