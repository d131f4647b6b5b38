// Package debug draws the diagnostic overlay: frame rate, memory, controller state and
// the most recent log lines.
package debug

import (
	"fmt"
	"runtime"

	rl "github.com/gen2brain/raylib-go/raylib"
)

const (
	fontSize   = 18
	padding    = 12
	lineHeight = fontSize + 4
	logLines   = 8
	// updateInterval: only refresh FPS/Mem text every N frames to reduce allocations.
	updateInterval = 30
)

// Status is the controller state shown by the overlay. The host fills it each frame.
type Status struct {
	Phase    string
	Yaw      float32
	Pitch    float32
	Zoom     float32
	Enabled  bool
	Drag     string
	Socket   string
	LogLines []string
}

// Debug holds the overlay's toggles and cached text. All overlays are off by default.
type Debug struct {
	ShowFPS      bool
	ShowMemAlloc bool
	ShowStatus   bool
	frameCount   uint32
	lastFpsText  string
	lastMemText  string
	lastMemStats runtime.MemStats
}

// New returns a Debug system with all overlays hidden.
func New() *Debug {
	return &Debug{}
}

// SetEnabled shows or hides every overlay at once.
func (d *Debug) SetEnabled(on bool) {
	d.ShowFPS = on
	d.ShowMemAlloc = on
	d.ShowStatus = on
}

// StatusLines formats s for display, one string per line.
func StatusLines(s Status) []string {
	input := "on"
	if !s.Enabled {
		input = "off"
	}
	lines := []string{
		fmt.Sprintf("phase: %s  input: %s", s.Phase, input),
		fmt.Sprintf("velocity: yaw %.3f pitch %.3f rad/s", s.Yaw, s.Pitch),
		fmt.Sprintf("zoom: %.2f", s.Zoom),
	}
	if s.Drag != "" {
		lines = append(lines, "drag: "+s.Drag)
	}
	if s.Socket != "" {
		lines = append(lines, "nearest socket: "+s.Socket)
	}
	logs := s.LogLines
	if len(logs) > logLines {
		logs = logs[len(logs)-logLines:]
	}
	return append(lines, logs...)
}

// Draw renders any enabled overlays. Call last in the 2D pass.
// FPS and memory are drawn top-right and refreshed every updateInterval frames.
// Status lines are drawn top-left.
func (d *Debug) Draw(s Status) {
	d.frameCount++
	update := d.frameCount%updateInterval == 0
	if (d.ShowFPS && d.lastFpsText == "") || (d.ShowMemAlloc && d.lastMemText == "") {
		update = true
	}

	screenW := int32(rl.GetScreenWidth())
	y := int32(padding)
	if d.ShowFPS {
		if update {
			d.lastFpsText = fmt.Sprintf("FPS: %d", rl.GetFPS())
		}
		drawRight(d.lastFpsText, screenW, y)
		y += lineHeight
	}
	if d.ShowMemAlloc {
		if update {
			runtime.ReadMemStats(&d.lastMemStats)
			mb := float64(d.lastMemStats.Alloc) / (1024 * 1024)
			d.lastMemText = fmt.Sprintf("Mem: %.2f MiB", mb)
		}
		drawRight(d.lastMemText, screenW, y)
	}

	if !d.ShowStatus {
		return
	}
	y = padding
	for _, line := range StatusLines(s) {
		rl.DrawText(line, padding, y, fontSize, rl.RayWhite)
		y += lineHeight
	}
}

func drawRight(text string, screenW, y int32) {
	if text == "" {
		return
	}
	w := rl.MeasureText(text, fontSize)
	rl.DrawText(text, screenW-w-padding, y, fontSize, rl.Green)
}
