package main

import (
	"testing"

	"gonum.org/v1/gonum/floats/scalar"

	"github.com/pthm-cable/abyss/config"
)

func TestParamVectorRoundTrip(t *testing.T) {
	pv := NewParamVector()
	def := pv.DefaultVector()

	got := pv.Denormalize(pv.Normalize(def))
	for i, spec := range pv.Specs {
		if !scalar.EqualWithinAbs(got[i], def[i], 1e-12) {
			t.Errorf("%s: round trip = %v, want %v", spec.Name, got[i], def[i])
		}
	}
}

func TestParamVectorClamp(t *testing.T) {
	pv := NewParamVector()

	low := make([]float64, pv.Dim())
	high := make([]float64, pv.Dim())
	for i := range low {
		low[i] = -100
		high[i] = 100
	}

	lo, hi := pv.Clamp(low), pv.Clamp(high)
	for i, spec := range pv.Specs {
		if lo[i] != spec.Min {
			t.Errorf("%s: clamp low = %v, want %v", spec.Name, lo[i], spec.Min)
		}
		if hi[i] != spec.Max {
			t.Errorf("%s: clamp high = %v, want %v", spec.Name, hi[i], spec.Max)
		}
	}
}

func TestDefaultsMatchEmbeddedConfig(t *testing.T) {
	pv := NewParamVector()
	got := pv.ExtractFromConfig(config.Default())

	for i, spec := range pv.Specs {
		if got[i] != spec.Default {
			t.Errorf("%s: config has %v, param default %v", spec.Name, got[i], spec.Default)
		}
	}
}

func TestApplyToConfig(t *testing.T) {
	pv := NewParamVector()
	cfg := config.Default()

	values := []float64{2, 0.5, 0.25, 3, 10}
	pv.ApplyToConfig(cfg, values)

	got := pv.ExtractFromConfig(cfg)
	want := []float64{2, 0.5, 0.25, 3, 4} // neighbor_dist clamped
	for i, spec := range pv.Specs {
		if got[i] != want[i] {
			t.Errorf("%s = %v, want %v", spec.Name, got[i], want[i])
		}
	}
}
