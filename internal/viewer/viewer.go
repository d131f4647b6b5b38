// Package viewer wires the scene, asset loading, tray and the two controllers into a
// per-frame loop.
package viewer

import (
	"context"
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"

	"turntable/internal/assets"
	"turntable/internal/config"
	"turntable/internal/debug"
	"turntable/internal/input"
	"turntable/internal/interaction"
	"turntable/internal/logger"
	"turntable/internal/placement"
	"turntable/internal/scene"
	"turntable/internal/sockets"
	"turntable/internal/tray"
)

// Viewer owns every per-frame component. All methods run on the window thread except
// Reload, which may be called from any goroutine.
type Viewer struct {
	cfg    config.Config
	log    *logger.Log
	scene  *scene.Scene
	lib    *assets.Library
	loader *assets.Loader
	tray   *tray.Tray
	spin   *interaction.Controller
	place  *placement.Controller
	debug  *debug.Debug

	viewport placement.Viewport
	reloads  chan config.Config
	cancel   context.CancelFunc
}

// New builds a viewer for a window of the given size. Nothing is loaded until Start.
func New(cfg config.Config, log *logger.Log, width, height int32) *Viewer {
	if log == nil {
		log = logger.Discard()
	}
	reg := sockets.New()
	scn := scene.New(cfg.Window.CameraDistance)
	lib := assets.NewLibrary(cfg.Primary, reg, log)

	var items []tray.Item
	for _, e := range cfg.Accessories() {
		items = append(items, tray.Item{ID: e.ID, Name: e.Name})
	}
	v := &Viewer{
		cfg:     cfg,
		log:     log,
		scene:   scn,
		lib:     lib,
		loader:  assets.NewLoader(0, log),
		tray:    tray.New(items, width, height),
		debug:   debug.New(),
		reloads: make(chan config.Config, 1),
		cancel:  func() {},
	}
	v.viewport = placement.Viewport{Width: float32(width), Height: float32(height)}
	v.spin = interaction.New(cfg.Tuning, nil, &scn.Camera, log)
	v.place = placement.New(lib, scn, v.spin, v.tray, &scn.Camera, reg, log)
	v.applyDebug(cfg.Tuning.Debug)
	return v
}

// Start begins loading the catalog in the background.
func (v *Viewer) Start(ctx context.Context) {
	ctx, v.cancel = context.WithCancel(ctx)
	if _, ok := v.cfg.Entry(v.cfg.Primary); !ok {
		v.log.Warnf("primary %q is not in the catalog", v.cfg.Primary)
	}
	v.loader.Load(ctx, v.cfg.Catalog)
}

// Close abandons pending loads and stops the controllers.
func (v *Viewer) Close() {
	v.cancel()
	v.loader.Wait()
	v.spin.Dispose()
}

// Reload queues a new configuration for the next frame. Only tuning is applied live;
// catalog changes need a restart.
func (v *Viewer) Reload(cfg config.Config) {
	select {
	case v.reloads <- cfg:
	default:
		// Replace a reload the main loop has not picked up yet.
		select {
		case <-v.reloads:
		default:
		}
		v.reloads <- cfg
	}
}

// Resize re-lays out the tray and the viewport.
func (v *Viewer) Resize(width, height int32) {
	v.viewport = placement.Viewport{Width: float32(width), Height: float32(height)}
	v.tray.Layout(width, height)
}

// Frame runs one frame: finished loads and reloads are applied, then events, then the
// controllers advance by dt seconds.
func (v *Viewer) Frame(events []input.Event, dt float32) {
	for _, r := range v.loader.Drain(v.lib) {
		if r.Err == nil && r.ID == v.lib.PrimaryID() {
			v.showPrimary(r.Asset)
		}
	}
	select {
	case cfg := <-v.reloads:
		v.applyTuning(cfg.Tuning)
	default:
	}

	for _, ev := range events {
		if v.place.HandleEvent(ev, v.viewport) {
			continue
		}
		v.spin.HandleEvent(ev)
	}
	v.spin.Update(dt)
	v.place.Update(dt)
}

func (v *Viewer) showPrimary(a *assets.Asset) {
	if old := v.scene.Find(a.ID); old != nil {
		v.scene.Remove(old)
	}
	v.scene.Add(a.Node)
	v.spin.SetObject(a.Node)
}

func (v *Viewer) applyTuning(t config.Tuning) {
	v.cfg.Tuning = t
	v.spin.SetTuning(t)
	v.applyDebug(t.Debug)
	v.log.Infof("tuning reloaded")
}

func (v *Viewer) applyDebug(on bool) {
	v.log.SetDebug(on)
	v.place.SetDebug(on)
	v.debug.SetEnabled(on)
}

// Draw renders the scene, the tray and the overlay. d draws mesh parts.
func (v *Viewer) Draw(d scene.Drawer) {
	v.scene.Draw(d)
	active := ""
	if s := v.place.Session(); s != nil {
		active = s.TargetID
	}
	v.tray.Draw(v.lib.Loaded, active)
	v.debug.Draw(v.Status())
}

// Status summarizes the controllers for the debug overlay.
func (v *Viewer) Status() debug.Status {
	snap := v.spin.Snapshot()
	st := debug.Status{
		Phase:    snap.Phase.String(),
		Yaw:      snap.Velocity.Yaw,
		Pitch:    snap.Velocity.Pitch,
		Zoom:     snap.Zoom,
		Enabled:  snap.Enabled,
		LogLines: v.log.Lines(),
	}
	if s := v.place.Session(); s != nil {
		st.Drag = fmt.Sprintf("%s returning=%t", s.TargetID, s.Returning)
		if s.ScaleFactor != nil {
			st.Drag += fmt.Sprintf(" scale=%.3f", *s.ScaleFactor)
		}
		if rec, dist, ok := v.place.NearestSocket(); ok {
			st.Socket = fmt.Sprintf("%s/%s %.2f", rec.ObjectID, rec.SocketID, dist)
		}
	}
	return st
}

// Unload frees the GPU resources the scene holds. Call while the window is open.
func (v *Viewer) Unload() {
	v.scene.Unload()
}

// Camera is the scene camera, for lighting.
func (v *Viewer) Camera() rl.Camera3D {
	return v.scene.Camera
}
