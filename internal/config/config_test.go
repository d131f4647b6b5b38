package config

import (
	"context"
	"math"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultTuning(t *testing.T) {
	d := DefaultTuning()
	assert.Equal(t, float32(2.0), d.SpinAcceleration)
	assert.Equal(t, float32(0.3), d.SpinFriction)
	assert.Equal(t, float32(0.2), d.IdleSpinImpulse)
	assert.Equal(t, float32(2), d.MinZoom)
	assert.Equal(t, float32(12), d.MaxZoom)
	assert.Equal(t, float32(0.002), d.ZoomSpeed)
	assert.Equal(t, float32(4), d.PinchZoomMultiplier)
	assert.Equal(t, float32(0.6), d.XAxisMultiplier)
	assert.Equal(t, float32(1.0), d.YAxisMultiplier)
	assert.Zero(t, d.MinAngularSpeed)
	assert.Zero(t, d.InitialYawSpin)
	assert.Zero(t, d.UprightStrength)
	assert.Zero(t, d.UprightThreshold)
	assert.False(t, d.Debug)
}

func TestDefaultCatalog(t *testing.T) {
	cfg := Default()
	primary, ok := cfg.Entry(cfg.Primary)
	require.True(t, ok)
	assert.Equal(t, KindBase, primary.Kind)

	acc := cfg.Accessories()
	require.NotEmpty(t, acc)
	for _, e := range acc {
		assert.Equal(t, KindAccessory, e.Kind)
	}
	_, ok = cfg.Entry("missing")
	assert.False(t, ok)
}

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default().Tuning, cfg.Tuning)
}

func TestLoadPartialKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "viewer.yaml")
	content := `
tuning:
  spin_friction: 0.5
  max_zoom: .inf
  zoom_speed: .nan
  debug: true
primary: lamp
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, float32(0.5), cfg.Tuning.SpinFriction)
	assert.True(t, math.IsInf(float64(cfg.Tuning.MaxZoom), 1))
	assert.Equal(t, float32(0.002), cfg.Tuning.ZoomSpeed)
	assert.Equal(t, float32(2.0), cfg.Tuning.SpinAcceleration)
	assert.True(t, cfg.Tuning.Debug)
	assert.Equal(t, "lamp", cfg.Primary)
	assert.NotEmpty(t, cfg.Catalog)
}

func TestLoadCatalogReplacesDefault(t *testing.T) {
	path := filepath.Join(t.TempDir(), "viewer.yaml")
	content := `
primary: box
catalog:
  - id: box
    name: Box
    kind: base
    size: 2
    parts:
      - mesh: cube
        scale: [1, 1, 1]
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Len(t, cfg.Catalog, 1)
	require.NotNil(t, cfg.Catalog[0].Size)
	assert.Equal(t, float32(2), *cfg.Catalog[0].Size)
	assert.Empty(t, cfg.Accessories())
}

func TestLoadInvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "viewer.yaml")
	require.NoError(t, os.WriteFile(path, []byte("tuning: [unclosed"), 0644))

	cfg, err := Load(path)
	assert.Error(t, err)
	assert.Equal(t, Default().Tuning, cfg.Tuning)
}

func TestSanitize(t *testing.T) {
	nan := float32(math.NaN())
	inf := float32(math.Inf(1))
	tu := DefaultTuning()
	tu.SpinAcceleration = nan
	tu.ZoomSpeed = inf
	tu.MinZoom = float32(math.Inf(-1))
	tu.SpinFriction = 3

	got := tu.Sanitize()
	assert.Equal(t, float32(2.0), got.SpinAcceleration)
	assert.Equal(t, float32(0.002), got.ZoomSpeed)
	assert.True(t, math.IsInf(float64(got.MinZoom), -1))
	assert.Equal(t, float32(1), got.SpinFriction)
}

func TestApplyEnv(t *testing.T) {
	t.Setenv(EnvDebug, "true")
	t.Setenv(EnvLogLevel, "debug")
	cfg := Default()
	cfg.ApplyEnv()
	assert.True(t, cfg.Tuning.Debug)
	assert.Equal(t, "debug", cfg.Log.Level)

	t.Setenv(EnvDebug, "maybe")
	cfg = Default()
	cfg.ApplyEnv()
	assert.False(t, cfg.Tuning.Debug)
}

func TestLoadEnvFile(t *testing.T) {
	assert.NoError(t, LoadEnv(filepath.Join(t.TempDir(), ".env")))

	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("TURNTABLE_CONFIG=custom/viewer.yaml\n"), 0644))
	t.Setenv(EnvConfigPath, "")
	os.Unsetenv(EnvConfigPath)
	require.NoError(t, LoadEnv(path))
	assert.Equal(t, "custom/viewer.yaml", PathFromEnv())
}

func TestPathFromEnvDefault(t *testing.T) {
	t.Setenv(EnvConfigPath, "  ")
	assert.Equal(t, DefaultPath, PathFromEnv())
}

func TestWatchReloadsOnWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "viewer.yaml")
	require.NoError(t, os.WriteFile(path, []byte("tuning:\n  spin_friction: 0.4\n"), 0644))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	got := make(chan Config, 4)
	require.NoError(t, Watch(ctx, path, func(c Config, err error) {
		if err == nil {
			got <- c
		}
	}))

	require.NoError(t, os.WriteFile(path, []byte("tuning:\n  spin_friction: 0.9\n"), 0644))
	select {
	case c := <-got:
		assert.Equal(t, float32(0.9), c.Tuning.SpinFriction)
	case <-time.After(3 * time.Second):
		t.Fatal("no reload after write")
	}
}
