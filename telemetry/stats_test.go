package telemetry

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/spatial/r2"
)

func TestComputeEnergyStats(t *testing.T) {
	values := []float64{0.5, 0.1, 0.4, 0.2, 0.3}
	mean, p10, p50, p90 := ComputeEnergyStats(values)

	if math.Abs(mean-0.3) > 1e-9 {
		t.Errorf("mean = %v, want 0.3", mean)
	}
	if math.Abs(p50-0.3) > 1e-9 {
		t.Errorf("p50 = %v, want 0.3", p50)
	}
	if p10 > p50 || p50 > p90 {
		t.Errorf("percentiles out of order: p10=%v p50=%v p90=%v", p10, p50, p90)
	}
	if p10 < 0.1 || p90 > 0.5 {
		t.Errorf("percentiles outside sample range: p10=%v p90=%v", p10, p90)
	}

	// Input must not be reordered
	if values[0] != 0.5 {
		t.Error("ComputeEnergyStats sorted its input in place")
	}
}

func TestComputeEnergyStatsEmpty(t *testing.T) {
	mean, p10, p50, p90 := ComputeEnergyStats([]float64{})

	if mean != 0 || p10 != 0 || p50 != 0 || p90 != 0 {
		t.Error("empty slice should return all zeros")
	}
}

func TestComputeSpeedStats(t *testing.T) {
	tests := []struct {
		name     string
		values   []float64
		wantMean float64
		wantStd  float64
	}{
		{"empty", nil, 0, 0},
		{"constant", []float64{0.1, 0.1, 0.1}, 0.1, 0},
		{"spread", []float64{2, 4, 4, 4, 5, 5, 7, 9}, 5, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mean, std := ComputeSpeedStats(tt.values)
			if math.Abs(mean-tt.wantMean) > 1e-9 {
				t.Errorf("mean = %v, want %v", mean, tt.wantMean)
			}
			if math.Abs(std-tt.wantStd) > 1e-9 {
				t.Errorf("std = %v, want %v", std, tt.wantStd)
			}
		})
	}
}

func TestComputePolarization(t *testing.T) {
	tests := []struct {
		name string
		vels []r2.Vec
		want float64
	}{
		{"empty", nil, 0},
		{"at rest", []r2.Vec{{}, {}}, 0},
		{"aligned", []r2.Vec{{X: 0.1}, {X: 0.05}, {X: 2}}, 1},
		{"opposed", []r2.Vec{{X: 0.1}, {X: -0.1}}, 0},
		{"perpendicular", []r2.Vec{{X: 1}, {Y: 1}}, math.Sqrt2 / 2},
		{"rest ignored", []r2.Vec{{X: 1}, {}}, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ComputePolarization(tt.vels); math.Abs(got-tt.want) > 1e-12 {
				t.Errorf("ComputePolarization = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestComputeSpread(t *testing.T) {
	if got := ComputeSpread(nil); got != 0 {
		t.Errorf("ComputeSpread(nil) = %v, want 0", got)
	}

	heads := []r2.Vec{{X: 2, Y: 1}, {X: -2, Y: 1}, {X: 0, Y: 3}, {X: 0, Y: -1}}
	if got := ComputeSpread(heads); math.Abs(got-2) > 1e-12 {
		t.Errorf("ComputeSpread = %v, want 2", got)
	}
}
