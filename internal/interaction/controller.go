package interaction

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"turntable/internal/config"
	"turntable/internal/input"
	"turntable/internal/logger"
	"turntable/internal/physics"
	"turntable/internal/scene"
)

// Controller applies a State to the primary object's rotation (X = pitch, Y = yaw) and
// to the camera's distance from its target.
type Controller struct {
	state    State
	tuning   config.Tuning
	object   *scene.Node
	camera   *rl.Camera3D
	log      logger.Logger
	disposed bool
}

// New returns an enabled controller. The initial zoom is the camera's current distance
// to its target, clamped into the configured range. object may be nil until the primary
// asset has loaded.
func New(t config.Tuning, object *scene.Node, camera *rl.Camera3D, log logger.Logger) *Controller {
	if log == nil {
		log = logger.Discard()
	}
	c := &Controller{
		tuning: t,
		object: object,
		camera: camera,
		log:    log.WithField("component", "interaction"),
	}
	var zoom float32
	if camera != nil {
		zoom = rl.Vector3Distance(camera.Position, camera.Target)
	}
	c.state = NewState(t, zoom)
	c.applyZoom()
	return c
}

// SetObject changes the node being rotated.
func (c *Controller) SetObject(object *scene.Node) {
	c.object = object
}

// SetTuning swaps the parameters, e.g. after a config reload. The zoom is re-clamped.
func (c *Controller) SetTuning(t config.Tuning) {
	c.tuning = t
	z := ClampZoom(c.state.Zoom, t.MinZoom, t.MaxZoom)
	if z != c.state.Zoom {
		c.state.Zoom = z
		c.applyZoom()
	}
}

// HandleEvent applies one pointer or wheel event.
func (c *Controller) HandleEvent(ev input.Event) {
	if c.disposed {
		return
	}
	before := c.state.Phase
	var d Delta
	switch ev.Kind {
	case input.PointerDown:
		d = c.state.PointerDown(c.tuning, ev.ID, ev.Pos, ev.Time)
	case input.PointerMove:
		d = c.state.PointerMove(c.tuning, ev.ID, ev.Pos, ev.Time)
	case input.PointerUp, input.PointerCancel:
		d = c.state.PointerUp(c.tuning, ev.ID, ev.Time)
	case input.Wheel:
		d = c.state.Wheel(c.tuning, ev.DeltaY, ev.Ctrl, ev.Mode)
	}
	c.apply(d)
	c.trace(before, ev.Kind.String())
}

// Update integrates coasting for dt seconds. Call once per frame after the frame's
// events have been handled.
func (c *Controller) Update(dt float32) {
	if c.disposed {
		return
	}
	before := c.state.Phase
	var pitch float32
	if c.object != nil {
		pitch = c.object.Rotation.X
	}
	c.apply(c.state.Integrate(c.tuning, dt, pitch))
	c.trace(before, "update")
}

// Enable resumes input handling. Coasting is not affected.
func (c *Controller) Enable() {
	if c.disposed {
		return
	}
	c.state.Enable()
}

// Disable ends any drag in progress and ignores input until Enable.
func (c *Controller) Disable() {
	before := c.state.Phase
	c.state.Disable()
	c.trace(before, "disable")
}

// Dispose stops the controller for good. The object keeps its last rotation.
func (c *Controller) Dispose() {
	c.state.Disable()
	c.state.Velocity = physics.Angular{}
	c.state.Phase = Idle
	c.disposed = true
}

// Enabled reports whether input is currently accepted.
func (c *Controller) Enabled() bool {
	return c.state.Enabled && !c.disposed
}

// Snapshot returns a copy of the current state.
func (c *Controller) Snapshot() State {
	return c.state.Clone()
}

func (c *Controller) apply(d Delta) {
	if c.object != nil && !d.Rotation.IsZero() {
		c.object.Rotation.Y += d.Rotation.Yaw
		c.object.Rotation.X += d.Rotation.Pitch
	}
	if d.Zoomed {
		c.applyZoom()
	}
}

// applyZoom moves the camera along its view axis to the state's zoom distance.
func (c *Controller) applyZoom() {
	if c.camera == nil || !(c.state.Zoom > 0) {
		return
	}
	back := rl.Vector3Subtract(c.camera.Position, c.camera.Target)
	if rl.Vector3Length(back) == 0 {
		back = rl.NewVector3(0, 0, 1)
	}
	back = rl.Vector3Scale(rl.Vector3Normalize(back), c.state.Zoom)
	c.camera.Position = rl.Vector3Add(c.camera.Target, back)
}

func (c *Controller) trace(before Phase, cause string) {
	if !c.tuning.Debug {
		return
	}
	after := c.state.Phase
	if after == before {
		return
	}
	c.log.Debugf("%s: %s -> %s yaw=%.3f pitch=%.3f zoom=%.2f",
		cause, before, after, c.state.Velocity.Yaw, c.state.Velocity.Pitch, c.state.Zoom)
}
