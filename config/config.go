// Package config provides configuration loading and access for the simulation.
package config

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all simulation configuration parameters.
type Config struct {
	Screen    ScreenConfig    `yaml:"screen"`
	Swarm     SwarmConfig     `yaml:"swarm"`
	Noise     NoiseConfig     `yaml:"noise"`
	Field     FieldConfig     `yaml:"field"`
	Render    RenderConfig    `yaml:"render"`
	Probes    ProbesConfig    `yaml:"probes"`
	Camera    CameraConfig    `yaml:"camera"`
	Telemetry TelemetryConfig `yaml:"telemetry"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// ScreenConfig holds display settings.
type ScreenConfig struct {
	Width     int    `yaml:"width"`
	Height    int    `yaml:"height"`
	TargetFPS int    `yaml:"target_fps"`
	Title     string `yaml:"title"`
}

// SwarmConfig holds curve generation parameters.
type SwarmConfig struct {
	InstanceCount  int     `yaml:"instance_count"`
	HistoryLength  int     `yaml:"history_length"`
	RandomSeed     uint32  `yaml:"random_seed"`
	Spread         float64 `yaml:"spread"`
	StepWidth      float64 `yaml:"step_width"`
	NoiseFrequency float64 `yaml:"noise_frequency"`
	NoiseOffset    float64 `yaml:"noise_offset"`
	NoiseMotion    float64 `yaml:"noise_motion"` // Offset drift per second applied by the host loop
	Constraint     float64 `yaml:"constraint"`
}

// NoiseConfig holds noise table seeding.
type NoiseConfig struct {
	Seed int64 `yaml:"seed"`
}

// FieldConfig holds distance field shape and bake parameters.
type FieldConfig struct {
	Resolution    int                `yaml:"resolution"`
	Extent        float64            `yaml:"extent"`
	DistanceScale float64            `yaml:"distance_scale"`
	Shape         string             `yaml:"shape"` // "sphere", "box", or "torus"
	Sphere        SphereConfig       `yaml:"sphere"`
	Box           BoxConfig          `yaml:"box"`
	Torus         TorusConfig        `yaml:"torus"`
	Displacement  DisplacementConfig `yaml:"displacement"`
}

// SphereConfig holds sphere shape parameters.
type SphereConfig struct {
	Radius float64 `yaml:"radius"`
}

// BoxConfig holds box shape parameters.
// Dimensions are full edge lengths; the shape evaluator works in half extents.
type BoxConfig struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
	Depth  float64 `yaml:"depth"`
	Round  float64 `yaml:"round"`
}

// TorusConfig holds torus shape parameters.
type TorusConfig struct {
	Radius    float64 `yaml:"radius"`    // Ring radius
	Thickness float64 `yaml:"thickness"` // Tube radius
}

// DisplacementConfig holds surface displacement parameters.
// Amplitude 0 disables displacement.
type DisplacementConfig struct {
	Amplitude float64 `yaml:"amplitude"`
	Frequency float64 `yaml:"frequency"`
	Seed      int64   `yaml:"seed"`
}

// RenderConfig holds curve drawing settings.
type RenderConfig struct {
	Mode        string  `yaml:"mode"` // "ribbon" or "line"
	RibbonWidth float64 `yaml:"ribbon_width"`
	FadeTail    bool    `yaml:"fade_tail"`
	ShowGrid    bool    `yaml:"show_grid"`
}

// ProbesConfig holds flow probe settings.
type ProbesConfig struct {
	Enabled    bool    `yaml:"enabled"`
	Count      int     `yaml:"count"`
	Lifespan   float64 `yaml:"lifespan"`
	SpeedScale float64 `yaml:"speed_scale"`
}

// CameraConfig holds orbit camera settings. Yaw and pitch are in degrees.
type CameraConfig struct {
	Distance  float64 `yaml:"distance"`
	Yaw       float64 `yaml:"yaw"`
	Pitch     float64 `yaml:"pitch"`
	Fov       float64 `yaml:"fov"`
	Smoothing float64 `yaml:"smoothing"`
}

// TelemetryConfig holds telemetry parameters.
type TelemetryConfig struct {
	PerfWindow  int `yaml:"perf_window"`
	StatsWindow int `yaml:"stats_window"`
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	DT          float32 // Frame duration at the target FPS
	VertexCount int     // InstanceCount * HistoryLength
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

// MustInit is like Init but panics on error. Tests use it in init().
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
	// Start with embedded defaults
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	// Load user config if provided
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

	// Compute derived values
	cfg.computeDerived()

	return cfg, nil
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() {
	fps := c.Screen.TargetFPS
	if fps <= 0 {
		fps = 60
	}
	c.Derived.DT = 1.0 / float32(fps)
	c.Derived.VertexCount = c.Swarm.InstanceCount * c.Swarm.HistoryLength
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
