// Package tray lays out and draws the accessory strip along the bottom of the window.
package tray

import (
	rl "github.com/gen2brain/raylib-go/raylib"
)

const (
	slotSize    = 96
	slotGap     = 12
	bottomInset = 16
	labelSize   = 16
)

// Item is one accessory offered by the tray.
type Item struct {
	ID   string
	Name string
}

// Slot is an item placed on screen.
type Slot struct {
	ID   string
	Name string
	Rect rl.Rectangle
}

// Center is the middle of the slot in window pixels.
func (s Slot) Center() rl.Vector2 {
	return rl.NewVector2(s.Rect.X+s.Rect.Width/2, s.Rect.Y+s.Rect.Height/2)
}

// Contains reports whether p lies inside the slot, edges included.
func (s Slot) Contains(p rl.Vector2) bool {
	r := s.Rect
	return p.X >= r.X && p.X <= r.X+r.Width && p.Y >= r.Y && p.Y <= r.Y+r.Height
}

// Tray is the laid-out strip.
type Tray struct {
	Items []Item
	Slots []Slot
}

// New returns a tray laid out for a window of the given size.
func New(items []Item, width, height int32) *Tray {
	t := &Tray{Items: items}
	t.Layout(width, height)
	return t
}

// Layout centers the slots horizontally along the bottom edge. Call when the window
// is resized.
func (t *Tray) Layout(width, height int32) {
	n := len(t.Items)
	t.Slots = t.Slots[:0]
	if n == 0 {
		return
	}
	total := float32(n*slotSize + (n-1)*slotGap)
	x := (float32(width) - total) / 2
	y := float32(height) - slotSize - bottomInset
	for _, it := range t.Items {
		t.Slots = append(t.Slots, Slot{
			ID:   it.ID,
			Name: it.Name,
			Rect: rl.NewRectangle(x, y, slotSize, slotSize),
		})
		x += slotSize + slotGap
	}
}

// SlotAt returns the slot under p.
func (t *Tray) SlotAt(p rl.Vector2) (Slot, bool) {
	for _, s := range t.Slots {
		if s.Contains(p) {
			return s, true
		}
	}
	return Slot{}, false
}

// Draw renders the slots. loaded reports whether an item's asset is ready; slots
// still loading are dimmed. active is the ID being dragged, or "".
func (t *Tray) Draw(loaded func(id string) bool, active string) {
	for _, s := range t.Slots {
		bg := rl.NewColor(40, 40, 48, 220)
		fg := rl.RayWhite
		if !loaded(s.ID) {
			fg = rl.Gray
		}
		if s.ID == active {
			bg = rl.NewColor(70, 90, 140, 230)
		}
		rl.DrawRectangleRounded(s.Rect, 0.15, 6, bg)
		rl.DrawRectangleRoundedLinesEx(s.Rect, 0.15, 6, 2, rl.NewColor(120, 120, 130, 255))

		w := rl.MeasureText(s.Name, labelSize)
		c := s.Center()
		rl.DrawText(s.Name, int32(c.X)-w/2, int32(c.Y)-labelSize/2, labelSize, fg)
		if !loaded(s.ID) {
			rl.DrawText("loading", int32(c.X)-rl.MeasureText("loading", 10)/2, int32(s.Rect.Y+s.Rect.Height)-16, 10, rl.Gray)
		}
	}
}
