package telemetry

import (
	"log/slog"
	"sort"

	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/gonum/stat"
)

// WindowStats holds aggregated statistics for a time window.
type WindowStats struct {
	WindowStartTick int32   `csv:"-"`
	WindowEndTick   int32   `csv:"window_end"`
	SimTime         float64 `csv:"sim_time"`
	Phase           string  `csv:"phase"`

	// Population at window end
	Population int `csv:"population"`
	Cyan       int `csv:"cyan"`
	Magenta    int `csv:"magenta"`
	Azure      int `csv:"azure"`

	// Events during window
	Spawns      int `csv:"spawns"`
	Evictions   int `csv:"evictions"`
	Rejected    int `csv:"rejected"`
	Depletions  int `csv:"depletions"`
	Transitions int `csv:"transitions"`

	// Energy distribution (normalized, sampled at window end)
	EnergyMean float64 `csv:"energy_mean"`
	EnergyP10  float64 `csv:"energy_p10"`
	EnergyP50  float64 `csv:"energy_p50"`
	EnergyP90  float64 `csv:"energy_p90"`

	// Kinematics
	SegmentsMean float64 `csv:"segments_mean"`
	SpeedMean    float64 `csv:"speed_mean"`
	SpeedStd     float64 `csv:"speed_std"`

	// Collective motion: 1 when every creature heads the same way
	Polarization float64 `csv:"polarization"`
	Spread       float64 `csv:"spread"` // Mean head distance from the population centroid

	// Spatial index shape at window end
	IndexDepth int `csv:"index_depth"`
	IndexNodes int `csv:"index_nodes"`
}

// Sample is the population state handed to Flush.
type Sample struct {
	Phase      string
	Energies   []float64
	Segments   []float64
	Heads      []r2.Vec
	Velocities []r2.Vec
	Colors     map[string]int
	IndexDepth int
	IndexNodes int
}

// ComputeEnergyStats calculates mean and empirical percentiles from energy values.
func ComputeEnergyStats(values []float64) (mean, p10, p50, p90 float64) {
	if len(values) == 0 {
		return 0, 0, 0, 0
	}

	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	mean = stat.Mean(sorted, nil)
	p10 = stat.Quantile(0.10, stat.Empirical, sorted, nil)
	p50 = stat.Quantile(0.50, stat.Empirical, sorted, nil)
	p90 = stat.Quantile(0.90, stat.Empirical, sorted, nil)

	return mean, p10, p50, p90
}

// ComputeSpeedStats returns the mean and population standard deviation.
func ComputeSpeedStats(values []float64) (mean, std float64) {
	if len(values) == 0 {
		return 0, 0
	}
	return stat.PopMeanStdDev(values, nil)
}

// ComputePolarization returns the length of the mean unit heading, in [0, 1].
// Creatures at rest carry no heading and are skipped.
func ComputePolarization(velocities []r2.Vec) float64 {
	var sum r2.Vec
	n := 0
	for _, v := range velocities {
		speed := r2.Norm(v)
		if speed == 0 {
			continue
		}
		sum = r2.Add(sum, r2.Scale(1/speed, v))
		n++
	}
	if n == 0 {
		return 0
	}
	return r2.Norm(sum) / float64(n)
}

// ComputeSpread returns the mean distance of heads from their centroid.
func ComputeSpread(heads []r2.Vec) float64 {
	if len(heads) == 0 {
		return 0
	}
	var centroid r2.Vec
	for _, h := range heads {
		centroid = r2.Add(centroid, h)
	}
	centroid = r2.Scale(1/float64(len(heads)), centroid)

	dists := make([]float64, len(heads))
	for i, h := range heads {
		dists[i] = r2.Norm(r2.Sub(h, centroid))
	}
	return stat.Mean(dists, nil)
}

// LogValue implements slog.LogValuer for structured logging.
func (s WindowStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("window_start", int(s.WindowStartTick)),
		slog.Int("window_end", int(s.WindowEndTick)),
		slog.Float64("sim_time", s.SimTime),
		slog.String("phase", s.Phase),
		slog.Int("population", s.Population),
		slog.Int("cyan", s.Cyan),
		slog.Int("magenta", s.Magenta),
		slog.Int("azure", s.Azure),
		slog.Int("spawns", s.Spawns),
		slog.Int("evictions", s.Evictions),
		slog.Int("rejected", s.Rejected),
		slog.Int("depletions", s.Depletions),
		slog.Int("transitions", s.Transitions),
		slog.Float64("energy_mean", s.EnergyMean),
		slog.Float64("energy_p10", s.EnergyP10),
		slog.Float64("energy_p50", s.EnergyP50),
		slog.Float64("energy_p90", s.EnergyP90),
		slog.Float64("segments_mean", s.SegmentsMean),
		slog.Float64("speed_mean", s.SpeedMean),
		slog.Float64("speed_std", s.SpeedStd),
		slog.Float64("polarization", s.Polarization),
		slog.Float64("spread", s.Spread),
		slog.Int("index_depth", s.IndexDepth),
		slog.Int("index_nodes", s.IndexNodes),
	)
}

// LogStats logs the window stats using slog.
func (s WindowStats) LogStats() {
	slog.Info("stats", "window", s)
}
