// Package components defines ECS components for the visualization.
package components

import "github.com/pthm-cable/wisp/vmath"

// Position represents an entity's world position.
type Position struct {
	X, Y, Z float32
}

// Vec3 returns the position as a vector.
func (p Position) Vec3() vmath.Vec3 { return vmath.Vec3{X: p.X, Y: p.Y, Z: p.Z} }

// FromVec3 builds a Position from a vector.
func FromVec3(v vmath.Vec3) Position { return Position{X: v.X, Y: v.Y, Z: v.Z} }

// Velocity represents an entity's velocity.
type Velocity struct {
	X, Y, Z float32
}

// Vec3 returns the velocity as a vector.
func (v Velocity) Vec3() vmath.Vec3 { return vmath.Vec3{X: v.X, Y: v.Y, Z: v.Z} }

// Probe carries a tracer through the flow field. Age counts up to
// Lifespan; expired probes respawn with a fresh seed.
type Probe struct {
	Age      float32
	Lifespan float32
	Seed     uint32
}

// Alpha returns the probe's fade weight, ramping in over the first
// tenth of life and out over the last third.
func (p *Probe) Alpha() float32 {
	if p.Lifespan <= 0 {
		return 0
	}
	t := p.Age / p.Lifespan
	if t < 0 {
		t = 0
	}
	if t > 1 {
		t = 1
	}
	switch {
	case t < 0.1:
		return t / 0.1
	case t > 2.0/3.0:
		return (1 - t) * 3
	default:
		return 1
	}
}

// Trail holds recent positions for probe rendering, oldest first.
type Trail struct {
	Points [16]Position
	Count  uint8
}

// Push appends p, dropping the oldest point once the buffer is full.
func (t *Trail) Push(p Position) {
	if t.Count < uint8(len(t.Points)) {
		t.Points[t.Count] = p
		t.Count++
		return
	}
	copy(t.Points[:], t.Points[1:])
	t.Points[len(t.Points)-1] = p
}

// Reset empties the trail.
func (t *Trail) Reset() {
	t.Count = 0
}
