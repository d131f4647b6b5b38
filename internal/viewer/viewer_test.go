package viewer

import (
	"bytes"
	"context"
	"testing"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"turntable/internal/config"
	"turntable/internal/input"
	"turntable/internal/interaction"
	"turntable/internal/logger"
)

func startViewer(t *testing.T) *Viewer {
	t.Helper()
	cfg := config.Default()
	v := New(cfg, logger.Discard(), 1280, 800)
	v.Start(context.Background())
	t.Cleanup(v.Close)

	deadline := time.Now().Add(3 * time.Second)
	for time.Now().Before(deadline) {
		v.Frame(nil, 0)
		if _, ok := v.lib.Primary(); ok && v.lib.Loaded("lamp") {
			return v
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("assets did not load")
	return nil
}

func down(id int32, x, y float32, at float64) input.Event {
	return input.Event{Kind: input.PointerDown, ID: id, Pos: rl.NewVector2(x, y), Time: at}
}

func move(id int32, x, y float32, at float64) input.Event {
	return input.Event{Kind: input.PointerMove, ID: id, Pos: rl.NewVector2(x, y), Time: at}
}

func up(id int32, at float64) input.Event {
	return input.Event{Kind: input.PointerUp, ID: id, Time: at}
}

func TestPrimaryShownWhenLoaded(t *testing.T) {
	v := startViewer(t)
	p, _ := v.lib.Primary()
	assert.Same(t, p.Node, v.scene.Find("table"))
	assert.NotEmpty(t, v.lib.Sockets().ForObject("table"))
}

func TestCanvasDragSpinsPrimary(t *testing.T) {
	v := startViewer(t)
	p, _ := v.lib.Primary()

	v.Frame([]input.Event{down(1, 600, 300, 0), move(1, 650, 300, 0.016), up(1, 0.032)}, 1.0/60)
	assert.Greater(t, p.Node.Rotation.Y, float32(0.2))
	assert.Equal(t, interaction.Coasting, v.spin.Snapshot().Phase)
}

func TestTrayDragPausesRotation(t *testing.T) {
	v := startViewer(t)
	var lamp, crate rl.Vector2
	for _, s := range v.tray.Slots {
		switch s.ID {
		case "lamp":
			lamp = s.Center()
		case "crate":
			crate = s.Center()
		}
	}

	// The crate is still loading, so pressing it does nothing.
	roots := len(v.scene.Roots())
	v.Frame([]input.Event{down(1, crate.X, crate.Y, 0), up(1, 0.1)}, 1.0/60)
	assert.Len(t, v.scene.Roots(), roots)
	assert.Equal(t, interaction.Idle, v.spin.Snapshot().Phase)

	v.Frame([]input.Event{down(2, lamp.X, lamp.Y, 1)}, 1.0/60)
	require.NotNil(t, v.place.Session())
	assert.False(t, v.spin.Snapshot().Enabled)
	assert.Len(t, v.scene.Roots(), roots+1)

	v.Frame([]input.Event{move(2, 640, 400, 1.1), up(2, 1.2)}, 1.0/60)
	st := v.Status()
	assert.Contains(t, st.Drag, "lamp returning=true")

	for i := 0; i < 30; i++ {
		v.Frame(nil, 1.0/60)
	}
	assert.Nil(t, v.place.Session())
	assert.True(t, v.spin.Snapshot().Enabled)
	assert.Len(t, v.scene.Roots(), roots)
}

func TestReloadAppliesTuning(t *testing.T) {
	v := startViewer(t)
	cfg := config.Default()
	cfg.Tuning.MaxZoom = 3
	v.Reload(cfg)
	cfg.Tuning.MaxZoom = 4
	v.Reload(cfg)

	v.Frame(nil, 0)
	assert.Equal(t, float32(4), v.cfg.Tuning.MaxZoom)
	assert.Equal(t, float32(4), v.spin.Snapshot().Zoom)
}

func TestDebugFlagOffKeepsLogLevel(t *testing.T) {
	var buf bytes.Buffer
	log := logger.NewWriter(&buf, "debug")
	cfg := config.Default()
	cfg.Tuning.Debug = false
	v := New(cfg, log, 800, 600)

	log.Debugf("configured level")
	assert.Contains(t, buf.String(), "configured level")

	cfg.Tuning.Debug = true
	v.Reload(cfg)
	v.Frame(nil, 0)
	cfg.Tuning.Debug = false
	v.Reload(cfg)
	v.Frame(nil, 0)
	buf.Reset()
	log.Debugf("after reload")
	assert.Contains(t, buf.String(), "after reload")
}

func TestResize(t *testing.T) {
	v := New(config.Default(), nil, 800, 600)
	v.Resize(1600, 900)
	assert.Equal(t, float32(1600), v.viewport.Width)
	require.NotEmpty(t, v.tray.Slots)
	assert.Equal(t, float32(900-96-16), v.tray.Slots[0].Rect.Y)
}
