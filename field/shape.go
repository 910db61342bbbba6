// Package field bakes signed-distance volumes and samples them with
// trilinear filtering. Baked texels hold the unit direction toward the
// nearest surface in xyz and the scaled unsigned distance in w, which
// is the guidance layout the swarm consumes.
package field

import (
	"math"

	opensimplex "github.com/ojrac/opensimplex-go"

	"github.com/pthm-cable/wisp/vmath"
)

// Shape is a signed distance function: negative inside, zero on the
// surface, positive outside.
type Shape interface {
	Distance(p vmath.Vec3) float32
}

// Sphere centered at the origin.
type Sphere struct {
	Radius float32
}

func (s Sphere) Distance(p vmath.Vec3) float32 {
	return p.Length() - s.Radius
}

// Box centered at the origin. Size holds the half extents per axis;
// Round > 0 rounds edges and corners.
type Box struct {
	Size  vmath.Vec3
	Round float32
}

func (b Box) Distance(p vmath.Vec3) float32 {
	qx := absf(p.X) - b.Size.X
	qy := absf(p.Y) - b.Size.Y
	qz := absf(p.Z) - b.Size.Z
	outside := vmath.Vec3{X: maxf(qx, 0), Y: maxf(qy, 0), Z: maxf(qz, 0)}.Length()
	inside := minf(maxf(qx, maxf(qy, qz)), 0)
	return outside + inside - b.Round
}

// Torus lying in the xz plane around the y axis. Radius is the ring
// radius, Thickness the tube radius.
type Torus struct {
	Radius    float32
	Thickness float32
}

func (t Torus) Distance(p vmath.Vec3) float32 {
	q := hypotf(p.X, p.Z) - t.Radius
	return hypotf(q, p.Y) - t.Thickness
}

// Displaced perturbs a shape's distance with simplex noise, turning
// clean primitives into lumpy organic surfaces. Amplitude 0 is the
// identity.
type Displaced struct {
	Shape     Shape
	Noise     opensimplex.Noise
	Amplitude float32
	Frequency float32
}

func (d Displaced) Distance(p vmath.Vec3) float32 {
	base := d.Shape.Distance(p)
	if d.Amplitude == 0 || d.Noise == nil {
		return base
	}
	n := d.Noise.Eval3(
		float64(p.X*d.Frequency),
		float64(p.Y*d.Frequency),
		float64(p.Z*d.Frequency),
	)
	return base + d.Amplitude*float32(n)
}

// Displace wraps s with seeded displacement noise. Amplitude 0 returns
// s unchanged.
func Displace(s Shape, seed int64, amplitude, frequency float32) Shape {
	if amplitude == 0 {
		return s
	}
	return Displaced{
		Shape:     s,
		Noise:     opensimplex.New(seed),
		Amplitude: amplitude,
		Frequency: frequency,
	}
}

func absf(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}

func minf(a, b float32) float32 {
	if a < b {
		return a
	}
	return b
}

func maxf(a, b float32) float32 {
	if a > b {
		return a
	}
	return b
}

func hypotf(a, b float32) float32 {
	return float32(math.Sqrt(float64(a*a + b*b)))
}
