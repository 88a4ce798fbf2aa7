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
	Physics    PhysicsConfig    `yaml:"physics"`
	World      WorldConfig      `yaml:"world"`
	Creature   CreatureConfig   `yaml:"creature"`
	Behavior   BehaviorConfig   `yaml:"behavior"`
	Energy     EnergyConfig     `yaml:"energy"`
	Phase      PhaseConfig      `yaml:"phase"`
	Escalation EscalationConfig `yaml:"escalation"`
	Palette    []string         `yaml:"palette"`
	Parallel   ParallelConfig   `yaml:"parallel"`
	Telemetry  TelemetryConfig  `yaml:"telemetry"`
	AutoSpawn  AutoSpawnConfig  `yaml:"autospawn"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// PhysicsConfig holds the frame clock and ambient flow parameters.
type PhysicsConfig struct {
	DT         float64 `yaml:"dt"`          // Nominal time units per tick
	FlowRate   float64 `yaml:"flow_rate"`   // Flow field time advance per unit of dt
	FlowWeight float64 `yaml:"flow_weight"` // Scale of the flow vector added to acceleration
}

// WorldConfig holds spatial index parameters.
// The index root box is centered on the world origin.
type WorldConfig struct {
	HalfWidth       float64 `yaml:"half_width"`
	HalfHeight      float64 `yaml:"half_height"`
	IndexCapacity   int     `yaml:"index_capacity"`    // Points per quadtree node before subdivision
	QueryHalfExtent float64 `yaml:"query_half_extent"` // Neighbor query box half-size around a head
}

// CreatureConfig holds creature creation parameters.
type CreatureConfig struct {
	MinSegments    int     `yaml:"min_segments"` // Inclusive
	MaxSegments    int     `yaml:"max_segments"` // Exclusive
	SegmentLength  float64 `yaml:"segment_length"`
	MinSpeed       float64 `yaml:"min_speed"`
	SpeedRange     float64 `yaml:"speed_range"` // MaxSpeed = MinSpeed + rand*SpeedRange
	MaxForce       float64 `yaml:"max_force"`
	InitialEnergy  float64 `yaml:"initial_energy"`
	VelocityJitter float64 `yaml:"velocity_jitter"` // Initial velocity components in ±jitter/2
}

// BehaviorConfig holds flocking distances and weights.
type BehaviorConfig struct {
	NeighborDist     float64 `yaml:"neighbor_dist"`     // Align and cohesion radius
	FleeDist         float64 `yaml:"flee_dist"`         // Separate and flee radius
	ThreatRatio      float64 `yaml:"threat_ratio"`      // Other is a threat when its segments exceed self * ratio
	FleeSpeedFactor  float64 `yaml:"flee_speed_factor"` // Desired flee speed as a multiple of MaxSpeed
	SameColorWeight  float64 `yaml:"same_color_weight"`
	OtherColorWeight float64 `yaml:"other_color_weight"`
	SeparateWeight   float64 `yaml:"separate_weight"`
	AlignWeight      float64 `yaml:"align_weight"`
	CohesionWeight   float64 `yaml:"cohesion_weight"`
	FleeWeight       float64 `yaml:"flee_weight"`
}

// EnergyConfig holds metabolism parameters. Values are per tick.
type EnergyConfig struct {
	Decay        float64 `yaml:"decay"`         // Unconditional drain
	ClimaxDrain  float64 `yaml:"climax_drain"`  // Extra drain near the origin during climax
	ClimaxRadius float64 `yaml:"climax_radius"` // Distance from origin that counts as near
}

// PhaseConfig holds population thresholds for the phase machine.
type PhaseConfig struct {
	PopulationCap    int     `yaml:"population_cap"`     // Oldest creature is evicted above this
	ClimaxThreshold  int     `yaml:"climax_threshold"`   // Active flips to climax above this
	ClimaxSeekWeight float64 `yaml:"climax_seek_weight"` // Scale of the converge-to-origin force
}

// BloomConfig is a pair of bloom parameters handed to the renderer.
type BloomConfig struct {
	Strength float64 `yaml:"strength"`
	Radius   float64 `yaml:"radius"`
}

// EscalationConfig holds the visual intensity signalled outward per phase.
type EscalationConfig struct {
	Baseline BloomConfig `yaml:"baseline"`
	Climax   BloomConfig `yaml:"climax"`
}

// ParallelConfig holds worker pool settings for the steering phase.
type ParallelConfig struct {
	Threshold int `yaml:"threshold"` // Minimum population to fan out (0 = never)
	Workers   int `yaml:"workers"`   // 0 = GOMAXPROCS
}

// TelemetryConfig holds telemetry parameters.
type TelemetryConfig struct {
	StatsWindow float64 `yaml:"stats_window"` // Seconds of simulated time per stats window
	PerfWindow  int     `yaml:"perf_window"`  // Ticks averaged by the perf collector
}

// AutoSpawnConfig drives the headless pointer stand-in.
type AutoSpawnConfig struct {
	Rate   int     `yaml:"rate"`   // Spawns per tick while pressed
	Radius float64 `yaml:"radius"` // Cursor path amplitude
	Period int     `yaml:"period"` // Ticks per press/release cycle
	Duty   float64 `yaml:"duty"`   // Fraction of the period spent pressed
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	PaletteHex []uint32 // Palette resolved to RGB values
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

// Cfg returns the global configuration, loading embedded defaults on first use.
func Cfg() *Config {
	if global == nil {
		MustInit("")
	}
	return global
}

// Set replaces the global configuration. Intended for tests and tools.
func Set(cfg *Config) {
	global = cfg
}

// Default returns a fresh copy of the embedded defaults.
func Default() *Config {
	cfg, err := Load("")
	if err != nil {
		panic(fmt.Sprintf("config: embedded defaults are invalid: %v", err))
	}
	return cfg
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

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	cfg.computeDerived()

	return cfg, nil
}

// validate rejects configurations the simulation cannot run with.
func (c *Config) validate() error {
	if c.World.HalfWidth <= 0 || c.World.HalfHeight <= 0 {
		return fmt.Errorf("world: half extents must be positive, got %gx%g", c.World.HalfWidth, c.World.HalfHeight)
	}
	if c.Creature.MinSegments < 2 || c.Creature.MaxSegments <= c.Creature.MinSegments {
		return fmt.Errorf("creature: invalid segment range [%d,%d)", c.Creature.MinSegments, c.Creature.MaxSegments)
	}
	if c.Phase.PopulationCap < 1 {
		return fmt.Errorf("phase: population_cap must be at least 1, got %d", c.Phase.PopulationCap)
	}
	for _, name := range c.Palette {
		if _, ok := paletteNames[name]; !ok {
			return fmt.Errorf("palette: unknown color %q", name)
		}
	}
	return nil
}

// paletteNames maps palette entries to RGB values.
var paletteNames = map[string]uint32{
	"cyan":    0x00FFFF,
	"magenta": 0xFF00FF,
	"azure":   0x007FFF,
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() {
	if len(c.Palette) == 0 {
		c.Palette = []string{"cyan", "magenta", "azure"}
	}
	if c.World.IndexCapacity < 1 {
		c.World.IndexCapacity = 1
	}

	c.Derived.PaletteHex = make([]uint32, len(c.Palette))
	for i, name := range c.Palette {
		c.Derived.PaletteHex[i] = paletteNames[name]
	}
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
