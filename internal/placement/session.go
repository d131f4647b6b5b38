package placement

import (
	"time"

	"github.com/gen2brain/raylib-go/easings"
	rl "github.com/gen2brain/raylib-go/raylib"

	"turntable/internal/scene"
	"turntable/internal/tray"
)

// ReturnDuration is how long a released clone takes to glide back to its tray slot.
const ReturnDuration = 250 * time.Millisecond

// CloneRenderOrder draws clones after, and on top of, the primary object.
const CloneRenderOrder = 10

// Session is one drag of an accessory out of the tray. The clone belongs to the
// session and leaves the scene when the session ends.
type Session struct {
	Clone       *scene.Node
	Plane       Plane
	Source      tray.Slot
	PointerID   int32
	TargetID    string
	ScaleFactor *float32
	Returning   bool

	from, to rl.Vector3
	elapsed  float32
}

// Progress is the eased return progress in [0, 1]; 0 until the clone is released.
func (s *Session) Progress() float32 {
	if !s.Returning {
		return 0
	}
	return ReturnEase(s.elapsed, float32(ReturnDuration.Seconds()))
}

// startReturn begins gliding the clone from its current position to target.
func (s *Session) startReturn(target rl.Vector3) {
	s.Returning = true
	s.from = s.Clone.Position
	s.to = target
	s.elapsed = 0
}

// advance moves the returning clone forward by dt seconds and reports completion.
func (s *Session) advance(dt float32) (done bool) {
	if dt > 0 {
		s.elapsed += dt
	}
	duration := float32(ReturnDuration.Seconds())
	s.Clone.Position = rl.Vector3Lerp(s.from, s.to, ReturnEase(s.elapsed, duration))
	return s.elapsed >= duration
}

// ReturnEase samples a cubic ease-out at elapsed seconds of a duration-second
// animation. The result is clamped to [0, 1].
func ReturnEase(elapsed, duration float32) float32 {
	if duration <= 0 || elapsed >= duration {
		return 1
	}
	if elapsed <= 0 {
		return 0
	}
	return easings.CubicOut(elapsed, 0, 1, duration)
}
