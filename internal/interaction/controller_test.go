package interaction

import (
	"testing"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"turntable/internal/config"
	"turntable/internal/input"
	"turntable/internal/logger"
	"turntable/internal/scene"
)

func newCamera(distance float32) *rl.Camera3D {
	return &rl.Camera3D{
		Position: rl.NewVector3(0, 0, distance),
		Target:   rl.NewVector3(0, 0, 0),
		Up:       rl.NewVector3(0, 1, 0),
		Fovy:     45,
	}
}

func ev(kind input.Kind, id int32, x, y float32, at float64) input.Event {
	return input.Event{Kind: kind, ID: id, Pos: rl.NewVector2(x, y), Time: at}
}

func TestControllerSpinDecaysToRest(t *testing.T) {
	obj := scene.NewNode("table")
	c := New(config.DefaultTuning(), obj, newCamera(6), logger.Discard())

	c.HandleEvent(ev(input.PointerDown, 1, 100, 100, 0))
	c.HandleEvent(ev(input.PointerMove, 1, 150, 100, 0.016))
	c.HandleEvent(ev(input.PointerUp, 1, 150, 100, 0.032))

	assert.InDelta(t, 0.2, obj.Rotation.Y, 1e-6)
	snap := c.Snapshot()
	require.Equal(t, Coasting, snap.Phase)
	assert.Greater(t, snap.Velocity.Yaw, float32(0))

	yaw := obj.Rotation.Y
	for i := 0; i < 60*120 && c.Snapshot().Phase == Coasting; i++ {
		c.Update(1.0 / 60)
		require.GreaterOrEqual(t, obj.Rotation.Y, yaw)
		yaw = obj.Rotation.Y
	}
	assert.Equal(t, Idle, c.Snapshot().Phase)
	assert.True(t, c.Snapshot().Velocity.IsZero())
	assert.Zero(t, obj.Rotation.X)
}

func TestControllerCancelActsAsUp(t *testing.T) {
	obj := scene.NewNode("table")
	c := New(config.DefaultTuning(), obj, newCamera(6), nil)
	c.HandleEvent(ev(input.PointerDown, 1, 0, 0, 0))
	c.HandleEvent(ev(input.PointerMove, 1, 20, 0, 0.016))
	c.HandleEvent(ev(input.PointerCancel, 1, 20, 0, 0.02))
	assert.Equal(t, Coasting, c.Snapshot().Phase)
	assert.Empty(t, c.Snapshot().Pointers)
}

func TestControllerPinchMovesCamera(t *testing.T) {
	cam := newCamera(6)
	c := New(config.DefaultTuning(), scene.NewNode("table"), cam, nil)

	c.HandleEvent(ev(input.PointerDown, 1, 0, 0, 0))
	c.HandleEvent(ev(input.PointerDown, 2, 100, 0, 0))
	c.HandleEvent(ev(input.PointerMove, 2, 60, 0, 0.016))

	assert.InDelta(t, 6.32, c.Snapshot().Zoom, 1e-5)
	assert.InDelta(t, 6.32, cam.Position.Z, 1e-5)
	assert.InDelta(t, 6.32, rl.Vector3Distance(cam.Position, cam.Target), 1e-5)
}

func TestControllerInitialZoomClamped(t *testing.T) {
	cam := newCamera(40)
	c := New(config.DefaultTuning(), nil, cam, nil)
	assert.Equal(t, float32(12), c.Snapshot().Zoom)
	assert.InDelta(t, 12, cam.Position.Z, 1e-5)

	tu := config.DefaultTuning()
	tu.MaxZoom = 8
	c.SetTuning(tu)
	assert.InDelta(t, 8, cam.Position.Z, 1e-5)
}

func TestControllerWheel(t *testing.T) {
	cam := newCamera(6)
	c := New(config.DefaultTuning(), nil, cam, nil)
	c.HandleEvent(input.Event{Kind: input.Wheel, DeltaY: 1e12})
	assert.Equal(t, float32(12), c.Snapshot().Zoom)
	c.HandleEvent(input.Event{Kind: input.Wheel, DeltaY: -1e12, Ctrl: true})
	assert.Equal(t, float32(2), c.Snapshot().Zoom)
	assert.InDelta(t, 2, cam.Position.Z, 1e-5)
}

func TestControllerDisableDuringDrag(t *testing.T) {
	obj := scene.NewNode("table")
	c := New(config.DefaultTuning(), obj, newCamera(6), nil)
	c.HandleEvent(ev(input.PointerDown, 1, 0, 0, 0))
	c.Disable()
	assert.False(t, c.Enabled())

	c.HandleEvent(ev(input.PointerMove, 1, 80, 0, 0.016))
	assert.Zero(t, obj.Rotation.Y)

	c.Enable()
	assert.True(t, c.Enabled())
	assert.Equal(t, Idle, c.Snapshot().Phase)
}

func TestControllerWithoutObject(t *testing.T) {
	c := New(config.DefaultTuning(), nil, nil, nil)
	c.HandleEvent(ev(input.PointerDown, 1, 0, 0, 0))
	c.HandleEvent(ev(input.PointerMove, 1, 80, 0, 0.016))
	c.HandleEvent(ev(input.PointerUp, 1, 80, 0, 0.02))
	c.Update(0.016)

	obj := scene.NewNode("late")
	c.SetObject(obj)
	c.Update(0.016)
	assert.Greater(t, obj.Rotation.Y, float32(0))
}

func TestControllerDispose(t *testing.T) {
	obj := scene.NewNode("table")
	tu := config.DefaultTuning()
	tu.InitialYawSpin = 1
	c := New(tu, obj, newCamera(6), nil)
	c.Dispose()
	c.Update(1)
	c.HandleEvent(ev(input.PointerDown, 1, 0, 0, 0))
	c.Enable()
	assert.Zero(t, obj.Rotation.Y)
	assert.False(t, c.Enabled())
}
