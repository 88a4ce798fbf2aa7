// Package main provides CMA-ES optimization for abyss flocking parameters.
package main

import (
	"github.com/pthm-cable/abyss/config"
)

// ParamSpec defines a single optimizable parameter.
type ParamSpec struct {
	Name    string  // Human-readable name
	Path    string  // Config path for logging
	Min     float64 // Lower bound
	Max     float64 // Upper bound
	Default float64 // Default value
}

// ParamVector holds the set of all optimizable parameters.
type ParamVector struct {
	Specs []ParamSpec
}

// NewParamVector creates the standard set of optimizable parameters.
func NewParamVector() *ParamVector {
	return &ParamVector{
		Specs: []ParamSpec{
			// Steering weights
			{Name: "separate_weight", Path: "behavior.separate_weight", Min: 0.5, Max: 3.0, Default: 1.5},
			{Name: "align_weight", Path: "behavior.align_weight", Min: 0.0, Max: 3.0, Default: 1.0},
			{Name: "cohesion_weight", Path: "behavior.cohesion_weight", Min: 0.0, Max: 3.0, Default: 1.0},
			{Name: "flee_weight", Path: "behavior.flee_weight", Min: 0.0, Max: 4.0, Default: 2.0},
			// Radius
			{Name: "neighbor_dist", Path: "behavior.neighbor_dist", Min: 0.5, Max: 4.0, Default: 2.0},
		},
	}
}

// Dim returns the number of parameters.
func (pv *ParamVector) Dim() int {
	return len(pv.Specs)
}

// DefaultVector returns the default parameter values as a slice.
func (pv *ParamVector) DefaultVector() []float64 {
	v := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		v[i] = spec.Default
	}
	return v
}

// Normalize converts raw parameter values to [0,1] range.
func (pv *ParamVector) Normalize(raw []float64) []float64 {
	normalized := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		normalized[i] = (raw[i] - spec.Min) / (spec.Max - spec.Min)
	}
	return normalized
}

// Denormalize converts [0,1] values back to raw parameter values.
func (pv *ParamVector) Denormalize(normalized []float64) []float64 {
	raw := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		raw[i] = spec.Min + normalized[i]*(spec.Max-spec.Min)
	}
	return raw
}

// Clamp ensures all values are within bounds.
func (pv *ParamVector) Clamp(v []float64) []float64 {
	clamped := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		val := v[i]
		if val < spec.Min {
			val = spec.Min
		}
		if val > spec.Max {
			val = spec.Max
		}
		clamped[i] = val
	}
	return clamped
}

// ApplyToConfig applies parameter values to a Config struct.
// Order must match Specs order.
func (pv *ParamVector) ApplyToConfig(cfg *config.Config, values []float64) {
	clamped := pv.Clamp(values)

	b := &cfg.Behavior
	b.SeparateWeight = clamped[0]
	b.AlignWeight = clamped[1]
	b.CohesionWeight = clamped[2]
	b.FleeWeight = clamped[3]
	b.NeighborDist = clamped[4]
}

// ExtractFromConfig extracts current parameter values from a Config struct.
func (pv *ParamVector) ExtractFromConfig(cfg *config.Config) []float64 {
	b := cfg.Behavior
	return []float64{
		b.SeparateWeight,
		b.AlignWeight,
		b.CohesionWeight,
		b.FleeWeight,
		b.NeighborDist,
	}
}
