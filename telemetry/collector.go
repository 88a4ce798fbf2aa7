package telemetry

import (
	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/gonum/stat"
)

// Collector accumulates events within time windows and produces WindowStats.
type Collector struct {
	windowDurationSec   float64
	windowDurationTicks int32
	dt                  float64

	// Current window tracking
	windowStartTick int32

	// Event counters for current window
	spawns      int
	evictions   int
	rejected    int
	depletions  int
	transitions int
}

// NewCollector creates a new stats collector.
// windowDurationSec: how long each stats window lasts in simulation time
// dt: time per tick (used for tick-to-time conversion)
func NewCollector(windowDurationSec, dt float64) *Collector {
	ticksPerWindow := int32(1)
	if dt > 0 {
		ticksPerWindow = int32(windowDurationSec / dt)
	}
	if ticksPerWindow < 1 {
		ticksPerWindow = 1
	}

	return &Collector{
		windowDurationSec:   windowDurationSec,
		windowDurationTicks: ticksPerWindow,
		dt:                  dt,
	}
}

// RecordSpawn records an accepted spawn.
func (c *Collector) RecordSpawn() {
	c.spawns++
}

// RecordEviction records a creature evicted by the population cap.
func (c *Collector) RecordEviction() {
	c.evictions++
}

// RecordRejected records a spawn request ignored outside the active phase.
func (c *Collector) RecordRejected() {
	c.rejected++
}

// RecordDepletion records a creature removed with no energy left.
func (c *Collector) RecordDepletion() {
	c.depletions++
}

// RecordTransition records a phase change.
func (c *Collector) RecordTransition() {
	c.transitions++
}

// ShouldFlush returns true if enough ticks have passed to flush the window.
func (c *Collector) ShouldFlush(currentTick int32) bool {
	return currentTick-c.windowStartTick >= c.windowDurationTicks
}

// Flush produces a WindowStats and resets counters for the next window.
func (c *Collector) Flush(currentTick int32, s Sample) WindowStats {
	energyMean, p10, p50, p90 := ComputeEnergyStats(s.Energies)
	speeds := make([]float64, len(s.Velocities))
	for i, v := range s.Velocities {
		speeds[i] = r2.Norm(v)
	}
	speedMean, speedStd := ComputeSpeedStats(speeds)

	var segmentsMean float64
	if len(s.Segments) > 0 {
		segmentsMean = stat.Mean(s.Segments, nil)
	}

	stats := WindowStats{
		WindowStartTick: c.windowStartTick,
		WindowEndTick:   currentTick,
		SimTime:         float64(currentTick) * c.dt,
		Phase:           s.Phase,

		Population: len(s.Energies),
		Cyan:       s.Colors["cyan"],
		Magenta:    s.Colors["magenta"],
		Azure:      s.Colors["azure"],

		Spawns:      c.spawns,
		Evictions:   c.evictions,
		Rejected:    c.rejected,
		Depletions:  c.depletions,
		Transitions: c.transitions,

		EnergyMean: energyMean,
		EnergyP10:  p10,
		EnergyP50:  p50,
		EnergyP90:  p90,

		SegmentsMean: segmentsMean,
		SpeedMean:    speedMean,
		SpeedStd:     speedStd,
		Polarization: ComputePolarization(s.Velocities),
		Spread:       ComputeSpread(s.Heads),

		IndexDepth: s.IndexDepth,
		IndexNodes: s.IndexNodes,
	}

	// Reset for next window
	c.windowStartTick = currentTick
	c.spawns = 0
	c.evictions = 0
	c.rejected = 0
	c.depletions = 0
	c.transitions = 0

	return stats
}

// WindowDurationTicks returns the number of ticks per window.
func (c *Collector) WindowDurationTicks() int32 {
	return c.windowDurationTicks
}
