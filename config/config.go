// Package config provides configuration loading and access for the simulation.
package config

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/andrepology/pond-sub000/systems"
	"github.com/andrepology/pond-sub000/vec"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all simulation configuration parameters.
type Config struct {
	Screen    ScreenConfig    `yaml:"screen"`
	World     WorldConfig     `yaml:"world"`
	Physics   PhysicsConfig   `yaml:"physics"`
	Creature  CreatureConfig  `yaml:"creature"`
	Spine     SpineConfig     `yaml:"spine"`
	Behavior  BehaviorConfig  `yaml:"behavior"`
	Telemetry TelemetryConfig `yaml:"telemetry"`
}

// ScreenConfig holds display settings for the viewer.
type ScreenConfig struct {
	Width     int `yaml:"width"`
	Height    int `yaml:"height"`
	TargetFPS int `yaml:"target_fps"`
}

// WorldConfig describes the simulation volume and the starting population.
// Shape selects "sphere" (radius around the origin) or "box" (half extents
// around the origin).
type WorldConfig struct {
	Shape      string  `yaml:"shape"`
	Radius     float32 `yaml:"radius"`
	HalfWidth  float32 `yaml:"half_width"`
	HalfHeight float32 `yaml:"half_height"`
	HalfDepth  float32 `yaml:"half_depth"`
	Creatures  int     `yaml:"creatures"`
}

// PhysicsConfig holds simulation tick parameters.
type PhysicsConfig struct {
	DT float64 `yaml:"dt"`
}

// CreatureConfig holds locomotion tunables. Fields mirror systems.Params;
// see that type for units.
type CreatureConfig struct {
	MaxSpeed      float32 `yaml:"max_speed"`
	MinSpeed      float32 `yaml:"min_speed"`
	MaxSteerForce float32 `yaml:"max_steer_force"`
	Drag          float32 `yaml:"drag"`
	TurnDrag      float32 `yaml:"turn_drag"`

	SlowingRadius    float32 `yaml:"slowing_radius"`
	VisionDistance   float32 `yaml:"vision_distance"`
	ForwardDistance  float32 `yaml:"forward_distance"`
	WanderRadius     float32 `yaml:"wander_radius"`
	RandomDirChance  float32 `yaml:"random_dir_chance"`
	UpdateInterval   float32 `yaml:"update_interval"`
	ArrivalThreshold float32 `yaml:"arrival_threshold"`

	HeadingRate           float32 `yaml:"heading_rate"`
	HeadingSpeedThreshold float32 `yaml:"heading_speed_threshold"`
	BankScale             float32 `yaml:"bank_scale"`
	BankRate              float32 `yaml:"bank_rate"`
	MaxBank               float32 `yaml:"max_bank"`

	RestEaseRate   float32 `yaml:"rest_ease_rate"`
	RestSpeedScale float32 `yaml:"rest_speed_scale"`
	RestSteerScale float32 `yaml:"rest_steer_scale"`
}

// SpineConfig holds body chain tunables.
type SpineConfig struct {
	SegmentCount    int     `yaml:"segment_count"`
	SegmentSpacing  float32 `yaml:"segment_spacing"`
	SpacingFalloff  float32 `yaml:"spacing_falloff"`
	Responsiveness  float32 `yaml:"responsiveness"`
	Stiffness       float32 `yaml:"stiffness"`
	WaveAmplitude   float32 `yaml:"wave_amplitude"`
	WaveNumber      float32 `yaml:"wave_number"`
	TravelPhaseRate float32 `yaml:"travel_phase_rate"`
	IdlePhaseRate   float32 `yaml:"idle_phase_rate"`
	WaveSpeedFrac   float32 `yaml:"wave_speed_frac"`
}

// BehaviorConfig holds state machine tunables.
type BehaviorConfig struct {
	ApproachThreshold float32 `yaml:"approach_threshold"`
	EatDuration       float32 `yaml:"eat_duration"`
	RestDuration      float32 `yaml:"rest_duration"`
	RestCheckInterval float32 `yaml:"rest_check_interval"`
	RestChance        float32 `yaml:"rest_chance"`
	MinWanderRest     float32 `yaml:"min_wander_rest"`
	MaxWanderRest     float32 `yaml:"max_wander_rest"`
	GrowOnEat         bool    `yaml:"grow_on_eat"`
}

// TelemetryConfig holds telemetry parameters.
type TelemetryConfig struct {
	WindowTicks         int `yaml:"window_ticks"`
	PerfCollectorWindow int `yaml:"perf_collector_window"`
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

	return cfg, nil
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

// Params assembles the systems tuning from the loaded sections.
func (c *Config) Params() systems.Params {
	cr, sp, bh := c.Creature, c.Spine, c.Behavior
	return systems.Params{
		MaxSpeed:      cr.MaxSpeed,
		MinSpeed:      cr.MinSpeed,
		MaxSteerForce: cr.MaxSteerForce,
		Drag:          cr.Drag,
		TurnDrag:      cr.TurnDrag,

		SlowingRadius:    cr.SlowingRadius,
		VisionDistance:   cr.VisionDistance,
		ForwardDistance:  cr.ForwardDistance,
		WanderRadius:     cr.WanderRadius,
		RandomDirChance:  cr.RandomDirChance,
		UpdateInterval:   cr.UpdateInterval,
		ArrivalThreshold: cr.ArrivalThreshold,

		HeadingRate:           cr.HeadingRate,
		HeadingSpeedThreshold: cr.HeadingSpeedThreshold,
		BankScale:             cr.BankScale,
		BankRate:              cr.BankRate,
		MaxBank:               cr.MaxBank,

		RestEaseRate:   cr.RestEaseRate,
		RestSpeedScale: cr.RestSpeedScale,
		RestSteerScale: cr.RestSteerScale,

		ApproachThreshold: bh.ApproachThreshold,
		EatDuration:       bh.EatDuration,
		RestDuration:      bh.RestDuration,
		RestCheckInterval: bh.RestCheckInterval,
		RestChance:        bh.RestChance,
		MinWanderRest:     bh.MinWanderRest,
		MaxWanderRest:     bh.MaxWanderRest,
		GrowOnEat:         bh.GrowOnEat,

		SegmentCount:    sp.SegmentCount,
		SegmentSpacing:  sp.SegmentSpacing,
		SpacingFalloff:  sp.SpacingFalloff,
		Responsiveness:  sp.Responsiveness,
		Stiffness:       sp.Stiffness,
		WaveAmplitude:   sp.WaveAmplitude,
		WaveNumber:      sp.WaveNumber,
		TravelPhaseRate: sp.TravelPhaseRate,
		IdlePhaseRate:   sp.IdlePhaseRate,
		WaveSpeedFrac:   sp.WaveSpeedFrac,
	}
}

// Bounds constructs the configured simulation volume.
func (c *Config) Bounds() systems.Bounds {
	if c.World.Shape == "box" {
		return systems.BoxBounds{
			Min: vec.Vec3{X: -c.World.HalfWidth, Y: -c.World.HalfHeight, Z: -c.World.HalfDepth},
			Max: vec.Vec3{X: c.World.HalfWidth, Y: c.World.HalfHeight, Z: c.World.HalfDepth},
		}
	}
	return systems.NewSphereBounds(c.World.Radius)
}
