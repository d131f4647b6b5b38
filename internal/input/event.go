// Package input turns raylib mouse, touch and wheel polling into pointer events.
package input

import rl "github.com/gen2brain/raylib-go/raylib"

// Kind identifies an input event.
type Kind int

const (
	PointerDown Kind = iota
	PointerMove
	PointerUp
	PointerCancel
	Wheel
)

func (k Kind) String() string {
	switch k {
	case PointerDown:
		return "down"
	case PointerMove:
		return "move"
	case PointerUp:
		return "up"
	case PointerCancel:
		return "cancel"
	case Wheel:
		return "wheel"
	}
	return "unknown"
}

// DeltaMode is the unit of a wheel delta. Line and page deltas come from coarse
// scroll devices.
type DeltaMode int

const (
	DeltaPixel DeltaMode = iota
	DeltaLine
	DeltaPage
)

// Event is one pointer or wheel event. Pos is in window (client) pixels and Time in
// seconds since the window opened. DeltaY, Ctrl and Mode are set for Wheel only.
type Event struct {
	Kind   Kind
	ID     int32
	Pos    rl.Vector2
	Time   float64
	DeltaY float32
	Ctrl   bool
	Mode   DeltaMode
}

// Pointer is one active contact (mouse button or touch point) in a frame snapshot.
type Pointer struct {
	ID  int32
	Pos rl.Vector2
}

// Diff compares the pointers of two consecutive frames and returns the events that
// explain the change: releases first, then moves, then new contacts, each in snapshot
// order.
func Diff(prev, cur []Pointer, at float64) []Event {
	var out []Event
	for _, p := range prev {
		if _, ok := find(cur, p.ID); !ok {
			out = append(out, Event{Kind: PointerUp, ID: p.ID, Pos: p.Pos, Time: at})
		}
	}
	for _, c := range cur {
		if p, ok := find(prev, c.ID); ok && p.Pos != c.Pos {
			out = append(out, Event{Kind: PointerMove, ID: c.ID, Pos: c.Pos, Time: at})
		}
	}
	for _, c := range cur {
		if _, ok := find(prev, c.ID); !ok {
			out = append(out, Event{Kind: PointerDown, ID: c.ID, Pos: c.Pos, Time: at})
		}
	}
	return out
}

// Cancel returns a PointerCancel for every active pointer.
func Cancel(active []Pointer, at float64) []Event {
	out := make([]Event, 0, len(active))
	for _, p := range active {
		out = append(out, Event{Kind: PointerCancel, ID: p.ID, Pos: p.Pos, Time: at})
	}
	return out
}

func find(ps []Pointer, id int32) (Pointer, bool) {
	for _, p := range ps {
		if p.ID == id {
			return p, true
		}
	}
	return Pointer{}, false
}
