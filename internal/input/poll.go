package input

import rl "github.com/gen2brain/raylib-go/raylib"

// MouseID is the pointer id used for the mouse when no touch points are reported.
const MouseID int32 = -1

// wheelPixelsPerNotch converts raylib wheel notches into pixel deltas.
const wheelPixelsPerNotch = 100

// Poller samples raylib input once per frame. Must be used on the window thread.
type Poller struct {
	prev []Pointer
}

// NewPoller returns a poller with no active pointers.
func NewPoller() *Poller {
	return &Poller{}
}

// Poll returns the events since the previous call. Losing window focus cancels every
// active pointer.
func (p *Poller) Poll() []Event {
	now := rl.GetTime()
	if !rl.IsWindowFocused() {
		evs := Cancel(p.prev, now)
		p.prev = nil
		return evs
	}
	cur := snapshot()
	evs := Diff(p.prev, cur, now)
	p.prev = cur

	if w := rl.GetMouseWheelMoveV(); w.Y != 0 {
		evs = append(evs, Event{
			Kind:   Wheel,
			ID:     MouseID,
			Pos:    rl.GetMousePosition(),
			Time:   now,
			DeltaY: -w.Y * wheelPixelsPerNotch,
			Ctrl:   rl.IsKeyDown(rl.KeyLeftControl) || rl.IsKeyDown(rl.KeyRightControl),
			Mode:   DeltaPixel,
		})
	}
	return evs
}

// snapshot lists the touch points, or the mouse when its left button is held.
func snapshot() []Pointer {
	if n := rl.GetTouchPointCount(); n > 0 {
		out := make([]Pointer, 0, n)
		for i := int32(0); i < n; i++ {
			out = append(out, Pointer{ID: rl.GetTouchPointId(i), Pos: rl.GetTouchPosition(i)})
		}
		return out
	}
	if rl.IsMouseButtonDown(rl.MouseButtonLeft) {
		return []Pointer{{ID: MouseID, Pos: rl.GetMousePosition()}}
	}
	return nil
}
