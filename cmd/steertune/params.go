// Package main tunes steering parameters with Nelder-Mead, scoring
// candidates by time-to-target on a scripted feeding course.
package main

import (
	"github.com/andrepology/pond-sub000/config"
)

// ParamSpec defines a single tunable parameter.
type ParamSpec struct {
	Name string
	Min  float64
	Max  float64
}

// ParamVector holds the set of tunable steering parameters.
type ParamVector struct {
	Specs []ParamSpec
}

// NewParamVector creates the standard set of tunable parameters.
func NewParamVector() *ParamVector {
	return &ParamVector{
		Specs: []ParamSpec{
			{Name: "max_steer_force", Min: 20, Max: 200},
			{Name: "drag", Min: 0.1, Max: 2.0},
			{Name: "turn_drag", Min: 0.2, Max: 3.0},
			{Name: "heading_rate", Min: 1.0, Max: 12.0},
			{Name: "slowing_radius", Min: 20, Max: 100},
		},
	}
}

// Dim returns the number of parameters.
func (pv *ParamVector) Dim() int {
	return len(pv.Specs)
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

	cfg.Creature.MaxSteerForce = float32(clamped[0])
	cfg.Creature.Drag = float32(clamped[1])
	cfg.Creature.TurnDrag = float32(clamped[2])
	cfg.Creature.HeadingRate = float32(clamped[3])
	cfg.Creature.SlowingRadius = float32(clamped[4])
}

// ExtractFromConfig extracts current parameter values from a Config struct.
func (pv *ParamVector) ExtractFromConfig(cfg *config.Config) []float64 {
	return []float64{
		float64(cfg.Creature.MaxSteerForce),
		float64(cfg.Creature.Drag),
		float64(cfg.Creature.TurnDrag),
		float64(cfg.Creature.HeadingRate),
		float64(cfg.Creature.SlowingRadius),
	}
}
