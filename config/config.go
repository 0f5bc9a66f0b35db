// Package config provides configuration loading and access for the effect.
package config

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all tuning parameters for the morphing particle field.
type Config struct {
	Screen    ScreenConfig    `yaml:"screen"`
	Grid      GridConfig      `yaml:"grid"`
	Wave      WaveConfig      `yaml:"wave"`
	Sphere    SphereConfig    `yaml:"sphere"`
	Morph     MorphConfig     `yaml:"morph"`
	Palette   PaletteConfig   `yaml:"palette"`
	Points    PointsConfig    `yaml:"points"`
	Pointer   PointerConfig   `yaml:"pointer"`
	Camera    CameraConfig    `yaml:"camera"`
	Telemetry TelemetryConfig `yaml:"telemetry"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// ScreenConfig holds display settings.
type ScreenConfig struct {
	Width     int `yaml:"width"`
	Height    int `yaml:"height"`
	TargetFPS int `yaml:"target_fps"`
}

// GridConfig holds the particle grid dimensions.
type GridConfig struct {
	SegmentsX   int     `yaml:"segments_x"`
	SegmentsY   int     `yaml:"segments_y"`
	PlaneWidth  float64 `yaml:"plane_width"`
	PlaneHeight float64 `yaml:"plane_height"`
}

// HarmonicConfig describes one term of the wave elevation sum.
type HarmonicConfig struct {
	Amplitude float64 `yaml:"amplitude"`
	Frequency float64 `yaml:"frequency"`
	Phase     float64 `yaml:"phase"`
	TimeSpeed float64 `yaml:"time_speed"`
	Axis      string  `yaml:"axis"` // "x", "z", or "xz"
	Fn        string  `yaml:"fn"`   // "sin" or "cos"
}

// WaveConfig holds wave-topology parameters.
type WaveConfig struct {
	Harmonics        []HarmonicConfig `yaml:"harmonics"`
	ElevationNorm    float64          `yaml:"elevation_norm"`    // Size boost divisor
	ColorOffset      float64          `yaml:"color_offset"`      // Added to elevation before color mix
	ColorRange       float64          `yaml:"color_range"`       // Elevation span of the two-stop gradient
	HighlightCutoff  float64          `yaml:"highlight_cutoff"`  // Mix value above which highlight blends in
	Converge         bool             `yaml:"converge"`          // Pull particles toward center mid-transition
	ConvergeStrength float64          `yaml:"converge_strength"` // Convergence pull in world units
}

// SphereConfig holds sphere-topology parameters.
type SphereConfig struct {
	Radius         float64 `yaml:"radius"`
	NoiseScale     float64 `yaml:"noise_scale"`
	NoiseTimeSpeed float64 `yaml:"noise_time_speed"`
	NoiseMagnitude float64 `yaml:"noise_magnitude"`
	SizeMultiplier float64 `yaml:"size_multiplier"`
}

// MorphConfig holds transition smoothing and staggering parameters.
type MorphConfig struct {
	SmoothingFactor  float64 `yaml:"smoothing_factor"`  // Per-tick low-pass factor for scroll progress
	PointerSmoothing float64 `yaml:"pointer_smoothing"` // Independent factor for pointer NDC
	ScaleFactor      float64 `yaml:"scale_factor"`      // >1 so delayed particles still finish at smoothed=1
	DelayWindow      float64 `yaml:"delay_window"`      // Max per-particle transition delay
	TimeScale        float64 `yaml:"time_scale"`        // Elapsed clock multiplier
	TransitionWindow float64 `yaml:"transition_window"` // Scroll range in viewport heights
}

// PaletteConfig holds the three effect colors as 0..1 RGB triples.
type PaletteConfig struct {
	Deep      [3]float64 `yaml:"deep,flow"`
	Mid       [3]float64 `yaml:"mid,flow"`
	Highlight [3]float64 `yaml:"highlight,flow"`
}

// PointsConfig holds point sprite sizing and fading parameters.
type PointsConfig struct {
	BaseSize float64 `yaml:"base_size"` // Particle size in world units
	FogNear  float64 `yaml:"fog_near"`  // View depth where fog starts
	FogFar   float64 `yaml:"fog_far"`   // View depth where particles fully fade
}

// PointerConfig holds pointer repulsion parameters.
type PointerConfig struct {
	Repulsion bool    `yaml:"repulsion"`
	Radius    float64 `yaml:"radius"`    // Repulsion falloff radius in NDC units
	Magnitude float64 `yaml:"magnitude"` // Push distance in world units
}

// PoseConfig holds one camera endpoint pose.
type PoseConfig struct {
	Position [3]float64 `yaml:"position,flow"`
	Target   [3]float64 `yaml:"target,flow"`
	Up       [3]float64 `yaml:"up,flow"`
}

// CameraConfig holds projection and endpoint pose parameters.
type CameraConfig struct {
	FovDegrees    float64    `yaml:"fov_degrees"`
	Near          float64    `yaml:"near"`
	Far           float64    `yaml:"far"`
	WavePose      PoseConfig `yaml:"wave_pose"`
	SpherePose    PoseConfig `yaml:"sphere_pose"`
	SwayAmplitude float64    `yaml:"sway_amplitude"`
	SwaySpeed     float64    `yaml:"sway_speed"`
}

// TelemetryConfig holds telemetry parameters.
type TelemetryConfig struct {
	StatsWindow float64 `yaml:"stats_window"` // Seconds between stats records
	PerfWindow  int     `yaml:"perf_window"`  // Frames in the rolling perf window
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	ParticleCount int     // (SegmentsX+1)*(SegmentsY+1)
	ScreenW32     float32 // Screen.Width as float32
	ScreenH32     float32 // Screen.Height as float32
	Preset        string  // Active preset name ("" = defaults)
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults if path is empty.
// Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// MustInit is like Init but panics on error.
func MustInit(path string) {
	if err := Init(path); err != nil {
		panic(fmt.Sprintf("config: failed to initialize: %v", err))
	}
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Unmarshal into same struct - only overwrites fields present in file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	cfg.computeDerived()

	return cfg, nil
}

// Validate rejects configurations the engine cannot start with.
func (c *Config) Validate() error {
	if c.Grid.SegmentsX <= 0 || c.Grid.SegmentsY <= 0 {
		return fmt.Errorf("config: grid segments must be positive, got %dx%d",
			c.Grid.SegmentsX, c.Grid.SegmentsY)
	}
	if c.Grid.PlaneWidth <= 0 || c.Grid.PlaneHeight <= 0 {
		return fmt.Errorf("config: plane dimensions must be positive, got %.2fx%.2f",
			c.Grid.PlaneWidth, c.Grid.PlaneHeight)
	}
	if c.Sphere.Radius <= 0 {
		return fmt.Errorf("config: sphere radius must be positive, got %.2f", c.Sphere.Radius)
	}
	if c.Morph.SmoothingFactor <= 0 || c.Morph.SmoothingFactor > 1 {
		return fmt.Errorf("config: smoothing factor must be in (0,1], got %.3f",
			c.Morph.SmoothingFactor)
	}
	if c.Morph.ScaleFactor <= 1 {
		return fmt.Errorf("config: morph scale factor must be > 1, got %.3f",
			c.Morph.ScaleFactor)
	}
	if c.Morph.DelayWindow < 0 {
		return fmt.Errorf("config: delay window must be non-negative, got %.3f",
			c.Morph.DelayWindow)
	}
	if len(c.Wave.Harmonics) == 0 {
		return fmt.Errorf("config: wave harmonic table is empty")
	}
	for i, h := range c.Wave.Harmonics {
		switch h.Axis {
		case "x", "z", "xz":
		default:
			return fmt.Errorf("config: harmonic %d has unknown axis %q", i, h.Axis)
		}
		switch h.Fn {
		case "", "sin", "cos":
		default:
			return fmt.Errorf("config: harmonic %d has unknown fn %q", i, h.Fn)
		}
	}
	return nil
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() {
	c.Derived.ParticleCount = (c.Grid.SegmentsX + 1) * (c.Grid.SegmentsY + 1)
	c.Derived.ScreenW32 = float32(c.Screen.Width)
	c.Derived.ScreenH32 = float32(c.Screen.Height)
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
