package physics

import "github.com/chewxy/math32"

// StopSpeed is the speed (rad/s) below which a coasting object without a floor is
// considered stopped.
const StopSpeed = 1e-4

// settledPitch is how close to upright pitch must be before a righting object may stop.
const settledPitch = 1e-3

// DecayFactor is the fraction of velocity kept after dt seconds of friction.
// friction is clamped to [0, 1]: 0 never decays and 1 stops in a single step.
func DecayFactor(friction, dt float32) float32 {
	if dt <= 0 || friction <= 0 || math32.IsNaN(friction) {
		return 1
	}
	if friction >= 1 {
		return 0
	}
	return math32.Pow(1-friction, dt)
}

// Decay applies DecayFactor to both components.
func Decay(v Angular, friction, dt float32) Angular {
	return v.Scale(DecayFactor(friction, dt))
}

// Upright returns the pitch velocity after dt seconds of a critically damped spring that
// pulls pitch toward zero along the shortest way round.
func Upright(pitchVel, pitch, strength, dt float32) float32 {
	if strength <= 0 || dt <= 0 {
		return pitchVel
	}
	damping := 2 * math32.Sqrt(strength)
	pitchVel -= strength * WrapAngle(pitch) * dt
	return pitchVel * math32.Exp(-damping*dt)
}

// ApplyFloor raises a velocity slower than floor to exactly floor, keeping its direction.
// A zero velocity gets the floor on yaw.
func ApplyFloor(v Angular, floor float32) Angular {
	if floor <= 0 {
		return v
	}
	s := v.Speed()
	if s >= floor {
		return v
	}
	if s == 0 {
		return Angular{Yaw: floor}
	}
	return v.Scale(floor / s)
}

// Spin holds the coasting parameters.
type Spin struct {
	Friction         float32
	UprightStrength  float32
	UprightThreshold float32
	Floor            float32
}

// Step advances a coasting velocity by dt seconds. pitch is the object's current pitch
// in radians. Order: friction, then self-righting while slower than UprightThreshold,
// then the floor. stopped reports that the object came to rest; v is zero then.
func (s Spin) Step(v Angular, pitch, dt float32) (next Angular, stopped bool) {
	if dt <= 0 {
		return v, false
	}
	v = Decay(v, s.Friction, dt)
	righting := s.UprightStrength > 0 && v.Speed() < s.UprightThreshold
	if righting {
		v.Pitch = Upright(v.Pitch, pitch, s.UprightStrength, dt)
	}
	v = ApplyFloor(v, s.Floor)
	if !v.Finite() {
		return Angular{}, true
	}
	if s.Floor > 0 || v.Speed() >= StopSpeed {
		return v, false
	}
	if righting && math32.Abs(WrapAngle(pitch)) > settledPitch {
		return v, false
	}
	return Angular{}, true
}
