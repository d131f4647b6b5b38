package config

import (
	"errors"
	"fmt"
	"io/fs"
	"math"
	"os"

	"gopkg.in/yaml.v3"
)

// DefaultPath is the viewer config file, relative to the process working directory.
const DefaultPath = "config/viewer.yaml"

// Tuning holds the numeric parameters of the interaction and placement controllers.
// Every field is optional in the file; missing fields keep the Default value.
type Tuning struct {
	SpinAcceleration    float32 `yaml:"spin_acceleration" json:"spin_acceleration"`
	SpinFriction        float32 `yaml:"spin_friction" json:"spin_friction"`
	IdleSpinImpulse     float32 `yaml:"idle_spin_impulse" json:"idle_spin_impulse"`
	MinZoom             float32 `yaml:"min_zoom" json:"min_zoom"`
	MaxZoom             float32 `yaml:"max_zoom" json:"max_zoom"`
	ZoomSpeed           float32 `yaml:"zoom_speed" json:"zoom_speed"`
	PinchZoomMultiplier float32 `yaml:"pinch_zoom_multiplier" json:"pinch_zoom_multiplier"`
	XAxisMultiplier     float32 `yaml:"x_axis_multiplier" json:"x_axis_multiplier"`
	YAxisMultiplier     float32 `yaml:"y_axis_multiplier" json:"y_axis_multiplier"`
	MinAngularSpeed     float32 `yaml:"min_angular_speed" json:"min_angular_speed"`
	InitialYawSpin      float32 `yaml:"initial_yaw_spin" json:"initial_yaw_spin"`
	UprightStrength     float32 `yaml:"upright_strength" json:"upright_strength"`
	UprightThreshold    float32 `yaml:"upright_threshold" json:"upright_threshold"`
	Debug               bool    `yaml:"debug" json:"debug"`
}

// WindowConfig holds window and camera startup settings.
type WindowConfig struct {
	Width          int32   `yaml:"width" json:"width"`
	Height         int32   `yaml:"height" json:"height"`
	Title          string  `yaml:"title" json:"title"`
	TargetFPS      int32   `yaml:"target_fps" json:"target_fps"`
	CameraDistance float32 `yaml:"camera_distance" json:"camera_distance"`
}

// LogConfig holds logger settings. An empty Dir logs to the console only.
type LogConfig struct {
	Level string `yaml:"level" json:"level"`
	Dir   string `yaml:"dir,omitempty" json:"dir,omitempty"`
}

// Part is one primitive of a catalog asset. Rotation is in degrees, Color is "#rrggbb".
type Part struct {
	Mesh     string     `yaml:"mesh" json:"mesh"`
	Position [3]float32 `yaml:"position" json:"position"`
	Rotation [3]float32 `yaml:"rotation,omitempty" json:"rotation,omitempty"`
	Scale    [3]float32 `yaml:"scale" json:"scale"`
	Color    string     `yaml:"color,omitempty" json:"color,omitempty"`
}

// Marker is an empty named node inside an asset (e.g. an attachment socket).
type Marker struct {
	Name     string     `yaml:"name" json:"name"`
	Position [3]float32 `yaml:"position" json:"position"`
}

// CatalogEntry describes one loadable asset. Kind is "base" or "accessory".
// Size is the declared relative scale unit; nil means undeclared.
// LoadDelayMs simulates a slow asset so the not-yet-loaded path can be exercised.
type CatalogEntry struct {
	ID          string   `yaml:"id" json:"id"`
	Name        string   `yaml:"name" json:"name"`
	Kind        string   `yaml:"kind" json:"kind"`
	Size        *float32 `yaml:"size,omitempty" json:"size,omitempty"`
	Parts       []Part   `yaml:"parts" json:"parts"`
	Markers     []Marker `yaml:"markers,omitempty" json:"markers,omitempty"`
	LoadDelayMs int      `yaml:"load_delay_ms,omitempty" json:"load_delay_ms,omitempty"`
}

// Config is the full viewer configuration.
type Config struct {
	Window  WindowConfig   `yaml:"window" json:"window"`
	Log     LogConfig      `yaml:"log" json:"log"`
	Tuning  Tuning         `yaml:"tuning" json:"tuning"`
	Primary string         `yaml:"primary" json:"primary"`
	Catalog []CatalogEntry `yaml:"catalog" json:"catalog"`
}

// DefaultTuning returns the stock controller parameters.
func DefaultTuning() Tuning {
	return Tuning{
		SpinAcceleration:    2.0,
		SpinFriction:        0.3,
		IdleSpinImpulse:     0.2,
		MinZoom:             2,
		MaxZoom:             12,
		ZoomSpeed:           0.002,
		PinchZoomMultiplier: 4,
		XAxisMultiplier:     0.6,
		YAxisMultiplier:     1.0,
		MinAngularSpeed:     0,
		InitialYawSpin:      0,
		UprightStrength:     0,
		UprightThreshold:    0,
		Debug:               false,
	}
}

// Default returns the built-in configuration, including a small demo catalog.
func Default() Config {
	return Config{
		Window: WindowConfig{
			Width:          1280,
			Height:         800,
			Title:          "turntable",
			TargetFPS:      60,
			CameraDistance: 6,
		},
		Log:     LogConfig{Level: "info", Dir: "logs"},
		Tuning:  DefaultTuning(),
		Primary: "table",
		Catalog: defaultCatalog(),
	}
}

// Load reads the YAML config at path on top of Default(). A missing file is not an
// error. A file that cannot be parsed yields Default() and the parse error.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("config: read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Default(), fmt.Errorf("config: parse %s: %w", path, err)
	}
	cfg.Tuning = cfg.Tuning.Sanitize()
	return cfg, nil
}

// Entry returns the catalog entry with the given id.
func (c *Config) Entry(id string) (CatalogEntry, bool) {
	for _, e := range c.Catalog {
		if e.ID == id {
			return e, true
		}
	}
	return CatalogEntry{}, false
}

// Accessories returns the catalog entries of kind "accessory", in file order.
func (c *Config) Accessories() []CatalogEntry {
	var out []CatalogEntry
	for _, e := range c.Catalog {
		if e.Kind == KindAccessory {
			out = append(out, e)
		}
	}
	return out
}

// Catalog kinds.
const (
	KindBase      = "base"
	KindAccessory = "accessory"
)

// Sanitize replaces NaN fields, and infinite fields other than the zoom clamps, with
// their defaults. Infinite zoom bounds are kept and mean "unclamped on that side".
func (t Tuning) Sanitize() Tuning {
	d := DefaultTuning()
	fix := func(v *float32, def float32, allowInf bool) {
		f := float64(*v)
		if math.IsNaN(f) || (!allowInf && math.IsInf(f, 0)) {
			*v = def
		}
	}
	fix(&t.SpinAcceleration, d.SpinAcceleration, false)
	fix(&t.SpinFriction, d.SpinFriction, false)
	fix(&t.IdleSpinImpulse, d.IdleSpinImpulse, false)
	fix(&t.MinZoom, d.MinZoom, true)
	fix(&t.MaxZoom, d.MaxZoom, true)
	fix(&t.ZoomSpeed, d.ZoomSpeed, false)
	fix(&t.PinchZoomMultiplier, d.PinchZoomMultiplier, false)
	fix(&t.XAxisMultiplier, d.XAxisMultiplier, false)
	fix(&t.YAxisMultiplier, d.YAxisMultiplier, false)
	fix(&t.MinAngularSpeed, d.MinAngularSpeed, false)
	fix(&t.InitialYawSpin, d.InitialYawSpin, false)
	fix(&t.UprightStrength, d.UprightStrength, false)
	fix(&t.UprightThreshold, d.UprightThreshold, false)
	if t.SpinFriction < 0 {
		t.SpinFriction = 0
	}
	if t.SpinFriction > 1 {
		t.SpinFriction = 1
	}
	return t
}

func size(v float32) *float32 { return &v }

func defaultCatalog() []CatalogEntry {
	return []CatalogEntry{
		{
			ID: "table", Name: "Table", Kind: KindBase, Size: size(1.0),
			Parts: []Part{
				{Mesh: "cube", Position: [3]float32{0, 0.45, 0}, Scale: [3]float32{2.4, 0.1, 1.4}, Color: "#8b5a2b"},
				{Mesh: "cylinder", Position: [3]float32{-1.05, -0.1, -0.55}, Scale: [3]float32{0.12, 1.0, 0.12}, Color: "#6b4423"},
				{Mesh: "cylinder", Position: [3]float32{1.05, -0.1, -0.55}, Scale: [3]float32{0.12, 1.0, 0.12}, Color: "#6b4423"},
				{Mesh: "cylinder", Position: [3]float32{-1.05, -0.1, 0.55}, Scale: [3]float32{0.12, 1.0, 0.12}, Color: "#6b4423"},
				{Mesh: "cylinder", Position: [3]float32{1.05, -0.1, 0.55}, Scale: [3]float32{0.12, 1.0, 0.12}, Color: "#6b4423"},
			},
			Markers: []Marker{
				{Name: "socket_top_left", Position: [3]float32{-0.6, 0.5, 0}},
				{Name: "socket_top_right", Position: [3]float32{0.6, 0.5, 0}},
			},
		},
		{
			ID: "lamp", Name: "Lamp", Kind: KindAccessory, Size: size(0.45),
			Parts: []Part{
				{Mesh: "cylinder", Position: [3]float32{0, -0.9, 0}, Scale: [3]float32{1.2, 0.2, 1.2}, Color: "#303030"},
				{Mesh: "cylinder", Position: [3]float32{0, 0, 0}, Scale: [3]float32{0.15, 1.6, 0.15}, Color: "#a0a0a0"},
				{Mesh: "cone", Position: [3]float32{0, 0.9, 0}, Scale: [3]float32{1.4, 0.8, 1.4}, Color: "#f2e6b8"},
			},
			Markers: []Marker{{Name: "socket_base", Position: [3]float32{0, -1, 0}}},
		},
		{
			ID: "vase", Name: "Vase", Kind: KindAccessory, Size: size(0.25),
			Parts: []Part{
				{Mesh: "sphere", Position: [3]float32{0, 0, 0}, Scale: [3]float32{8, 10, 8}, Color: "#3b6ea5"},
				{Mesh: "cylinder", Position: [3]float32{0, 6, 0}, Scale: [3]float32{3, 4, 3}, Color: "#3b6ea5"},
			},
			Markers: []Marker{{Name: "socket_base", Position: [3]float32{0, -5, 0}}},
		},
		{
			ID: "crate", Name: "Crate", Kind: KindAccessory, Size: size(0.3), LoadDelayMs: 4000,
			Parts: []Part{
				{Mesh: "cube", Scale: [3]float32{1, 1, 1}, Color: "#c8a165"},
			},
		},
		{
			ID: "sticker", Name: "Sticker", Kind: KindAccessory,
			Parts: []Part{
				{Mesh: "cube", Scale: [3]float32{0.6, 0.6, 0.05}, Color: "#e04f5f"},
			},
		},
	}
}
