package placement

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"

	"turntable/internal/anchor"
	"turntable/internal/assets"
	"turntable/internal/input"
	"turntable/internal/logger"
	"turntable/internal/scene"
	"turntable/internal/sockets"
	"turntable/internal/tray"
)

// Objects resolves loaded assets by id.
type Objects interface {
	Asset(id string) (*assets.Asset, bool)
	Primary() (*assets.Asset, bool)
}

// Scene receives and releases clones.
type Scene interface {
	Add(n *scene.Node)
	Remove(n *scene.Node) bool
}

// Spinner is the rotation controller paused while a clone is dragged.
type Spinner interface {
	Enable()
	Disable()
}

// Slots finds the tray slot under a pointer.
type Slots interface {
	SlotAt(p rl.Vector2) (tray.Slot, bool)
}

// Controller runs at most one drag session at a time.
type Controller struct {
	objects Objects
	scene   Scene
	spinner Spinner
	slots   Slots
	camera  *rl.Camera3D
	sockets *sockets.Registry
	log     logger.Logger
	debug   bool

	session *Session
}

// New returns an idle controller. sockets may be nil.
func New(objects Objects, scn Scene, spinner Spinner, slots Slots, camera *rl.Camera3D,
	reg *sockets.Registry, log logger.Logger) *Controller {
	if log == nil {
		log = logger.Discard()
	}
	return &Controller{
		objects: objects,
		scene:   scn,
		spinner: spinner,
		slots:   slots,
		camera:  camera,
		sockets: reg,
		log:     log.WithField("component", "placement"),
	}
}

// SetDebug turns per-session diagnostics on or off.
func (c *Controller) SetDebug(on bool) {
	c.debug = on
}

// Active reports whether a drag session exists, including its return animation.
func (c *Controller) Active() bool {
	return c.session != nil
}

// Session returns the current session or nil.
func (c *Controller) Session() *Session {
	return c.session
}

// HandleEvent routes a pointer event and reports whether it was consumed. A press on
// a tray slot starts a session; every pointer event is consumed while one is active.
func (c *Controller) HandleEvent(ev input.Event, vp Viewport) bool {
	if ev.Kind == input.Wheel {
		return c.session != nil
	}
	if c.session == nil {
		if ev.Kind != input.PointerDown || c.slots == nil {
			return false
		}
		slot, ok := c.slots.SlotAt(ev.Pos)
		if !ok {
			return false
		}
		c.Begin(slot, ev.ID, ev.Pos, vp)
		return true
	}
	if ev.ID != c.session.PointerID {
		return true
	}
	switch ev.Kind {
	case input.PointerMove:
		c.Move(ev.Pos, vp)
	case input.PointerUp, input.PointerCancel:
		c.End(vp)
	}
	return true
}

// Begin starts dragging the asset behind slot. It does nothing and returns false when
// a session is already running or the asset has not loaded.
func (c *Controller) Begin(slot tray.Slot, pointer int32, pos rl.Vector2, vp Viewport) bool {
	if c.session != nil {
		return false
	}
	asset, ok := c.objects.Asset(slot.ID)
	if !ok || asset.Node == nil {
		if c.debug {
			c.log.Debugf("drag %s ignored: not loaded", slot.ID)
		}
		return false
	}
	clone, err := asset.Node.Clone()
	if err != nil {
		c.log.Warnf("drag %s: %v", slot.ID, err)
		return false
	}
	clone.Rotation = rl.Vector3Zero()
	clone.Visible = true
	clone.RenderOrder = CloneRenderOrder

	var sphere *anchor.Sphere
	primary, hasPrimary := c.objects.Primary()
	if hasPrimary && primary.Node != nil {
		sphere = anchor.ComputeBaseAnchor(primary.Node)
	}
	s := &Session{
		Clone:     clone,
		Plane:     PlacementPlane(*c.camera, sphere),
		Source:    slot,
		PointerID: pointer,
		TargetID:  slot.ID,
	}
	if f, ok := c.scaleFor(asset, primary); ok {
		s.ScaleFactor = &f
		clone.Scale = rl.Vector3Scale(clone.Scale, f)
	}

	c.spinner.Disable()
	clone.Position = ProjectPointer(*c.camera, pos, vp, s.Plane)
	c.scene.Add(clone)
	c.session = s

	if c.debug {
		scale := "none"
		if s.ScaleFactor != nil {
			scale = fmt.Sprintf("%.3f", *s.ScaleFactor)
		}
		c.log.Debugf("drag %s start scale=%s anchor=%t", slot.ID, scale, sphere != nil)
	}
	return true
}

// scaleFor resolves the clone's normalized scale against the primary object.
func (c *Controller) scaleFor(a, primary *assets.Asset) (float32, bool) {
	baseSize := float32(1)
	var baseRadius float32
	if primary != nil {
		if primary.Entry.Size != nil && *primary.Entry.Size > 0 {
			baseSize = *primary.Entry.Size
		}
		baseRadius = primary.Meta.BoundingRadius
	}
	return anchor.RelativeScale(a.Entry, baseSize, baseRadius, a.Meta.BoundingRadius)
}

// Move puts the clone under the pointer. Ignored once the clone is returning.
func (c *Controller) Move(pos rl.Vector2, vp Viewport) {
	if c.session == nil || c.session.Returning {
		return
	}
	c.session.Clone.Position = ProjectPointer(*c.camera, pos, vp, c.session.Plane)
}

// End releases the clone and starts its return to the slot it came from.
func (c *Controller) End(vp Viewport) {
	s := c.session
	if s == nil || s.Returning {
		return
	}
	target := ProjectPointer(*c.camera, s.Source.Center(), vp, s.Plane)
	s.startReturn(target)
	if c.debug {
		c.log.Debugf("drag %s released", s.TargetID)
	}
}

// Update advances the return animation by dt seconds. When it completes the clone is
// removed, the session cleared and rotation re-enabled.
func (c *Controller) Update(dt float32) {
	s := c.session
	if s == nil || !s.Returning {
		return
	}
	if !s.advance(dt) {
		return
	}
	c.scene.Remove(s.Clone)
	c.session = nil
	c.spinner.Enable()
	if c.debug {
		c.log.Debugf("drag %s returned", s.TargetID)
	}
}

// NearestSocket returns the socket closest to the dragged clone on any other object.
// It is informational only; releasing never attaches to it.
func (c *Controller) NearestSocket() (sockets.Record, float32, bool) {
	if c.session == nil || c.sockets == nil {
		return sockets.Record{}, 0, false
	}
	return c.sockets.Nearest(c.session.Clone.Position, c.session.TargetID)
}
