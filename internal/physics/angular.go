// Package physics integrates the turntable's angular velocity: friction decay,
// self-righting toward upright and an optional idle-spin floor.
package physics

import "github.com/chewxy/math32"

// Angular is an angular velocity (rad/s) or a rotation increment (rad) about the
// vertical axis (Yaw) and the horizontal screen axis (Pitch).
type Angular struct {
	Yaw   float32
	Pitch float32
}

// Speed is the magnitude of the vector.
func (a Angular) Speed() float32 {
	return math32.Hypot(a.Yaw, a.Pitch)
}

// Scale multiplies both components by k.
func (a Angular) Scale(k float32) Angular {
	return Angular{Yaw: a.Yaw * k, Pitch: a.Pitch * k}
}

// Add returns the component-wise sum.
func (a Angular) Add(b Angular) Angular {
	return Angular{Yaw: a.Yaw + b.Yaw, Pitch: a.Pitch + b.Pitch}
}

// IsZero reports whether both components are exactly zero.
func (a Angular) IsZero() bool {
	return a.Yaw == 0 && a.Pitch == 0
}

// Finite reports whether both components are finite numbers.
func (a Angular) Finite() bool {
	return finite(a.Yaw) && finite(a.Pitch)
}

func finite(v float32) bool {
	return !math32.IsNaN(v) && !math32.IsInf(v, 0)
}

// WrapAngle maps an angle to its shortest signed distance from zero, in [-Pi, Pi].
func WrapAngle(a float32) float32 {
	return math32.Remainder(a, 2*math32.Pi)
}
