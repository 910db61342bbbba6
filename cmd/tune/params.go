// Package main provides CMA-ES search for swarm parameters that
// produce well-formed, surface-hugging curve bundles.
package main

import (
	"github.com/pthm-cable/wisp/config"
)

// ParamSpec defines a single tunable parameter.
type ParamSpec struct {
	Name    string  // Human-readable name
	Path    string  // Config path for logging
	Min     float64 // Lower bound
	Max     float64 // Upper bound
	Default float64 // Default value
}

// ParamVector holds the set of all tunable parameters.
type ParamVector struct {
	Specs []ParamSpec
}

// NewParamVector creates the standard set of tunable parameters.
// Instance count, history length, and the field shape are held fixed;
// the search only moves the knobs that shape individual curves.
func NewParamVector() *ParamVector {
	return &ParamVector{
		Specs: []ParamSpec{
			{Name: "spread", Path: "swarm.spread", Min: 0.4, Max: 3.0, Default: 1.6},
			{Name: "step_width", Path: "swarm.step_width", Min: 0.01, Max: 0.12, Default: 0.045},
			{Name: "noise_frequency", Path: "swarm.noise_frequency", Min: 0.2, Max: 2.5, Default: 0.9},
			{Name: "constraint", Path: "swarm.constraint", Min: 0.1, Max: 0.95, Default: 0.65},
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
	cfg.Swarm.Spread = clamped[0]
	cfg.Swarm.StepWidth = clamped[1]
	cfg.Swarm.NoiseFrequency = clamped[2]
	cfg.Swarm.Constraint = clamped[3]
}

// ExtractFromConfig extracts current parameter values from a Config struct.
func (pv *ParamVector) ExtractFromConfig(cfg *config.Config) []float64 {
	return []float64{
		cfg.Swarm.Spread,
		cfg.Swarm.StepWidth,
		cfg.Swarm.NoiseFrequency,
		cfg.Swarm.Constraint,
	}
}
