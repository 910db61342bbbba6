// Package swarm implements the per-frame curve generation pipeline:
// stochastic spawn placement biased by a distance volume, curl-noise
// advection, and rotating-frame tangent/normal reconstruction over
// preallocated instance buffers.
package swarm

import (
	"errors"
	"fmt"

	"github.com/pthm-cable/wisp/vmath"
)

// ErrInvalidConfig flags parameter sets the pipeline cannot run with.
var ErrInvalidConfig = errors.New("invalid swarm config")

// DistanceField supplies baked surface guidance. Samples carry the
// unit direction toward the surface in xyz and the scaled unsigned
// distance in w.
type DistanceField interface {
	Sample(p vmath.Vec3) vmath.Vec4
}

// NoiseFunc returns three gradient-like components in xyz and the raw
// noise value in w. The pipeline treats it as an opaque smooth field.
type NoiseFunc func(p vmath.Vec3) vmath.Vec4

// Params controls one frame of curve generation. The host owns the
// struct and typically animates NoiseOffset between frames; the
// simulator never mutates it.
type Params struct {
	// InstanceCount is the number of independent curves.
	InstanceCount int
	// HistoryLength is the number of vertices per curve.
	HistoryLength int
	// RandomSeed feeds every hashed draw of the frame.
	RandomSeed uint32
	// Spread scales the spawn sphere.
	Spread float32
	// StepWidth is the advection step size.
	StepWidth float32
	// NoiseFrequency is the spatial frequency of the velocity noise.
	NoiseFrequency float32
	// NoiseOffset shifts the noise lookup, offsetting all three axes
	// equally. Animating it drifts the whole velocity field.
	NoiseOffset float32
	// Constraint in [0, 1] blends between free noise flow (0) and
	// maximal pull toward the distance field's surface (1).
	Constraint float32
}

// Validate checks the conditions enforced at the API boundary. The
// inner loops assume a validated parameter set.
func (p Params) Validate() error {
	if p.InstanceCount <= 0 {
		return fmt.Errorf("%w: instance count %d, want > 0", ErrInvalidConfig, p.InstanceCount)
	}
	if p.HistoryLength < 2 {
		return fmt.Errorf("%w: history length %d, want >= 2", ErrInvalidConfig, p.HistoryLength)
	}
	if p.Constraint < 0 || p.Constraint > 1 {
		return fmt.Errorf("%w: constraint %v outside [0, 1]", ErrInvalidConfig, p.Constraint)
	}
	return nil
}
