package graphics

// maxFrameDelta caps a single frame's delta so a stall (window drag, debugger) does not
// turn into one huge integration step.
const maxFrameDelta = 0.25

// Clock turns a monotonically increasing time into per-frame deltas.
type Clock struct {
	last    float64
	started bool
}

// Tick returns the seconds since the previous tick, 0 on the first tick. Time going
// backwards also yields 0.
func (c *Clock) Tick(now float64) float32 {
	if !c.started {
		c.started = true
		c.last = now
		return 0
	}
	dt := now - c.last
	c.last = now
	if dt <= 0 {
		return 0
	}
	if dt > maxFrameDelta {
		dt = maxFrameDelta
	}
	return float32(dt)
}
