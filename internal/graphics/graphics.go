package graphics

import rl "github.com/gen2brain/raylib-go/raylib"

// Window describes the window opened by Run.
type Window struct {
	Width     int32
	Height    int32
	Title     string
	TargetFPS int32
	// OnClose runs after the loop ends, while the GPU context still exists.
	OnClose func()
}

// Run opens the window and runs the main loop. Each frame it calls update with the
// seconds elapsed since the previous frame, then clears the screen and calls draw.
// The window is resizable; close it with the window button or ESC.
func Run(w Window, update func(dt float32), draw func()) {
	rl.SetConfigFlags(rl.FlagWindowResizable | rl.FlagMsaa4xHint)
	rl.InitWindow(w.Width, w.Height, w.Title)
	defer rl.CloseWindow()

	if w.TargetFPS > 0 {
		rl.SetTargetFPS(w.TargetFPS)
	}

	var clock Clock
	for !rl.WindowShouldClose() {
		update(clock.Tick(rl.GetTime()))

		rl.BeginDrawing()
		rl.ClearBackground(rl.NewColor(24, 24, 28, 255))
		draw()
		rl.EndDrawing()
	}
	if w.OnClose != nil {
		w.OnClose()
	}
}
