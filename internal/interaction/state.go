// Package interaction rotates and zooms the primary object from pointer and wheel input.
//
// State is a plain value driven by transition methods, so gestures can be replayed in
// tests without a window. Controller binds a State to the scene node and camera.
package interaction

import (
	"github.com/chewxy/math32"
	rl "github.com/gen2brain/raylib-go/raylib"

	"turntable/internal/config"
	"turntable/internal/input"
	"turntable/internal/physics"
)

// Phase is the rotation state machine's current state.
type Phase int

const (
	Idle Phase = iota
	Dragging
	// Pinching is a two-pointer gesture. It zooms and suspends rotation.
	Pinching
	Coasting
)

func (p Phase) String() string {
	switch p {
	case Idle:
		return "idle"
	case Dragging:
		return "dragging"
	case Pinching:
		return "pinching"
	case Coasting:
		return "coasting"
	}
	return "unknown"
}

// pixelToRadian converts pointer pixels into radians before acceleration and axis
// multipliers apply.
const pixelToRadian = 0.002

// minSampleInterval bounds the elapsed time used to turn a move into a velocity.
const minSampleInterval = 0.001

// Sample is a pointer's last known position and the time (seconds) it was taken.
type Sample struct {
	Pos  rl.Vector2
	Time float64
}

// Delta is what a transition asks the caller to apply: a rotation increment in
// radians and whether the zoom distance changed.
type Delta struct {
	Rotation physics.Angular
	Zoomed   bool
}

// State is the interaction state of the primary object.
type State struct {
	Phase    Phase
	Velocity physics.Angular
	Zoom     float32
	Enabled  bool
	Pointers map[int32]Sample

	primary   int32
	pinchDist float32
	moved     bool
	pinched   bool
	atRest    bool
	spinDir   float32
}

// NewState returns an enabled state at the given zoom distance. A non-zero
// InitialYawSpin starts the object coasting.
func NewState(t config.Tuning, zoom float32) State {
	s := State{
		Enabled:  true,
		Pointers: make(map[int32]Sample),
		spinDir:  1,
	}
	s.Zoom = ClampZoom(zoom, t.MinZoom, t.MaxZoom)
	if t.InitialYawSpin != 0 && finite(t.InitialYawSpin) {
		s.Velocity.Yaw = t.InitialYawSpin
		s.spinDir = math32.Copysign(1, t.InitialYawSpin)
		s.Phase = Coasting
	}
	return s
}

// IsDragging reports whether a one- or two-pointer gesture is in progress.
func (s *State) IsDragging() bool {
	return s.Phase == Dragging || s.Phase == Pinching
}

// IsCoasting reports whether the object is moving on residual velocity.
func (s *State) IsCoasting() bool {
	return s.Phase == Coasting
}

// PointerDown captures a pointer. The first pointer stops any coast and starts a drag,
// the second turns the drag into a pinch, and further pointers are ignored.
func (s *State) PointerDown(t config.Tuning, id int32, pos rl.Vector2, at float64) Delta {
	if !s.Enabled {
		return Delta{}
	}
	if s.Pointers == nil {
		s.Pointers = make(map[int32]Sample)
	}
	if _, ok := s.Pointers[id]; ok {
		s.Pointers[id] = Sample{Pos: pos, Time: at}
		return Delta{}
	}
	switch len(s.Pointers) {
	case 0:
		s.Pointers[id] = Sample{Pos: pos, Time: at}
		s.atRest = s.Phase == Idle
		s.pinched = false
		s.startDrag(id)
	case 1:
		s.Pointers[id] = Sample{Pos: pos, Time: at}
		s.pinched = true
		s.Phase = Pinching
		s.Velocity = physics.Angular{}
		s.pinchDist = s.pointerDistance()
	}
	return Delta{}
}

func (s *State) startDrag(id int32) {
	s.primary = id
	s.Phase = Dragging
	s.Velocity = physics.Angular{}
	s.moved = false
}

// PointerMove rotates by the screen delta while dragging, or zooms by the change in
// pointer distance while pinching.
func (s *State) PointerMove(t config.Tuning, id int32, pos rl.Vector2, at float64) Delta {
	last, ok := s.Pointers[id]
	if !ok {
		return Delta{}
	}
	s.Pointers[id] = Sample{Pos: pos, Time: at}

	switch s.Phase {
	case Dragging:
		if id != s.primary {
			return Delta{}
		}
		dx, dy := pos.X-last.Pos.X, pos.Y-last.Pos.Y
		if dx == 0 && dy == 0 {
			return Delta{}
		}
		k := t.SpinAcceleration * pixelToRadian
		inc := physics.Angular{
			Yaw:   dx * k * t.YAxisMultiplier,
			Pitch: dy * k * t.XAxisMultiplier,
		}
		elapsed := float32(at - last.Time)
		if !(elapsed >= minSampleInterval) {
			elapsed = minSampleInterval
		}
		s.Velocity = inc.Scale(1 / elapsed)
		if s.Velocity.Yaw != 0 {
			s.spinDir = math32.Copysign(1, s.Velocity.Yaw)
		}
		s.moved = true
		return Delta{Rotation: inc}
	case Pinching:
		d := s.pointerDistance()
		change := -(d - s.pinchDist) * t.ZoomSpeed * t.PinchZoomMultiplier
		s.pinchDist = d
		return Delta{Zoomed: s.addZoom(t, change)}
	}
	return Delta{}
}

// PointerUp releases a pointer; pointer cancel is handled the same way. Lifting one
// finger of a pinch resumes dragging with the other. Releasing the last pointer starts
// coasting, or stops the object when the release is slower than the floor. A
// single-pointer tap on a resting object nudges it with IdleSpinImpulse; a tap on a
// moving object stops it.
func (s *State) PointerUp(t config.Tuning, id int32, at float64) Delta {
	if _, ok := s.Pointers[id]; !ok {
		return Delta{}
	}
	delete(s.Pointers, id)

	if s.Phase == Pinching && len(s.Pointers) == 1 {
		for rest, sample := range s.Pointers {
			s.Pointers[rest] = Sample{Pos: sample.Pos, Time: at}
			s.startDrag(rest)
		}
		return Delta{}
	}
	if len(s.Pointers) > 0 || !s.IsDragging() {
		return Delta{}
	}
	s.release(t)
	return Delta{}
}

func (s *State) release(t config.Tuning) {
	if s.isTap() && t.IdleSpinImpulse > 0 && finite(t.IdleSpinImpulse) {
		s.Velocity = physics.Angular{Yaw: s.spinDir * t.IdleSpinImpulse}
		s.Phase = Coasting
		return
	}
	if !s.Velocity.Finite() || s.Velocity.Speed() < releaseFloor(t) {
		s.Velocity = physics.Angular{}
		s.Phase = Idle
		return
	}
	s.Phase = Coasting
}

// isTap reports whether the gesture being released was one pointer pressed on a
// resting object and lifted without moving.
func (s *State) isTap() bool {
	return s.Phase == Dragging && !s.moved && !s.pinched && s.atRest
}

// releaseFloor is the slowest release that still coasts.
func releaseFloor(t config.Tuning) float32 {
	if t.MinAngularSpeed > 0 {
		return t.MinAngularSpeed
	}
	return physics.StopSpeed
}

// Wheel zooms by deltaY pixels. A held ctrl key (trackpad pinch) or a line/page delta
// mode uses the pinch multiplier.
func (s *State) Wheel(t config.Tuning, deltaY float32, ctrl bool, mode input.DeltaMode) Delta {
	if !s.Enabled {
		return Delta{}
	}
	change := deltaY * t.ZoomSpeed
	if ctrl || mode != input.DeltaPixel {
		change *= t.PinchZoomMultiplier
	}
	return Delta{Zoomed: s.addZoom(t, change)}
}

// Integrate advances coasting by dt seconds and returns the rotation to apply.
// pitch is the object's current pitch, used by self-righting.
func (s *State) Integrate(t config.Tuning, dt float32, pitch float32) Delta {
	if s.Phase != Coasting || !(dt > 0) {
		return Delta{}
	}
	spin := physics.Spin{
		Friction:         t.SpinFriction,
		UprightStrength:  t.UprightStrength,
		UprightThreshold: t.UprightThreshold,
		Floor:            t.MinAngularSpeed,
	}
	v, stopped := spin.Step(s.Velocity, pitch, dt)
	s.Velocity = v
	if stopped {
		s.Phase = Idle
		return Delta{}
	}
	return Delta{Rotation: v.Scale(dt)}
}

// Disable ends any gesture and forgets captured pointers. Velocity is kept, so a
// moving object keeps coasting.
func (s *State) Disable() {
	s.Enabled = false
	for id := range s.Pointers {
		delete(s.Pointers, id)
	}
	if s.IsDragging() {
		if s.Velocity.IsZero() {
			s.Phase = Idle
		} else {
			s.Phase = Coasting
		}
	}
}

// Enable accepts input again.
func (s *State) Enable() {
	s.Enabled = true
}

// Clone returns a copy that shares no pointer map with s.
func (s *State) Clone() State {
	out := *s
	out.Pointers = make(map[int32]Sample, len(s.Pointers))
	for id, p := range s.Pointers {
		out.Pointers[id] = p
	}
	return out
}

// addZoom applies change to Zoom and clamps. A non-finite result is dropped.
func (s *State) addZoom(t config.Tuning, change float32) bool {
	next := s.Zoom + change
	if !finite(next) {
		return false
	}
	next = ClampZoom(next, t.MinZoom, t.MaxZoom)
	if next == s.Zoom {
		return false
	}
	s.Zoom = next
	return true
}

// ClampZoom clamps z into [lo, hi]. A non-finite bound leaves that side open and
// inverted bounds clamp nothing.
func ClampZoom(z, lo, hi float32) float32 {
	loOK, hiOK := finite(lo), finite(hi)
	if loOK && hiOK && lo > hi {
		return z
	}
	if loOK && z < lo {
		z = lo
	}
	if hiOK && z > hi {
		z = hi
	}
	return z
}

func (s *State) pointerDistance() float32 {
	var pts []rl.Vector2
	for _, p := range s.Pointers {
		pts = append(pts, p.Pos)
	}
	if len(pts) < 2 {
		return 0
	}
	return math32.Hypot(pts[0].X-pts[1].X, pts[0].Y-pts[1].Y)
}

func finite(v float32) bool {
	return !math32.IsNaN(v) && !math32.IsInf(v, 0)
}
