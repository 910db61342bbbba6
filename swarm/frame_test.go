package swarm

import (
	"math"
	"testing"

	"github.com/pthm-cable/wisp/vmath"
)

// frameSim builds a bare simulator around a single instance with the
// given positions, ready for reconstructInstance. The frame stage
// never touches field or noise.
func frameSim(pts []vmath.Vec3) *Simulator {
	s := &Simulator{
		params: Params{InstanceCount: 1, HistoryLength: len(pts)},
	}
	s.alloc()
	for i, p := range pts {
		s.positions[i] = p.Vec4(1)
	}
	return s
}

func TestFramePairEqualsDifference(t *testing.T) {
	p0 := vmath.Vec3{X: 1, Y: 0, Z: 0}
	p1 := vmath.Vec3{X: 2, Y: 1, Z: 0}
	s := frameSim([]vmath.Vec3{p0, p1})
	s.reconstructInstance(0)

	want := p1.Sub(p0).Normalize()
	if got := s.tangents[0].XYZ(); got != want {
		t.Errorf("first tangent %v, want %v", got, want)
	}
	if got := s.tangents[1].XYZ(); got != want {
		t.Errorf("second tangent %v, want %v", got, want)
	}

	// The first normal keeps the raw magnitude of b cross t; with this
	// geometry that is well below unit length.
	b := want.Cross(p0.Normalize())
	n0 := b.Cross(want)
	if got := s.normals[0].XYZ(); got != n0 {
		t.Errorf("first normal %v, want %v", got, n0)
	}
	if l := n0.Length(); l > 0.9 {
		t.Fatalf("test geometry broken: first normal length %v should be well under 1", l)
	}
	// Later normals are unit length.
	if l := s.normals[1].XYZ().Length(); !approxf(l, 1, 1e-5) {
		t.Errorf("second normal length %v, want 1", l)
	}
}

func TestFrameCentralDifferenceTangent(t *testing.T) {
	pts := []vmath.Vec3{
		{X: 1, Y: 0, Z: 0},
		{X: 1.5, Y: 0.4, Z: 0.2},
		{X: 1.8, Y: 1.1, Z: 0.3},
		{X: 2.0, Y: 1.9, Z: 0.1},
	}
	s := frameSim(pts)
	s.reconstructInstance(0)

	for i := 1; i < len(pts)-1; i++ {
		want := pts[i+1].Sub(pts[i-1]).Normalize()
		if got := s.tangents[i].XYZ(); got != want {
			t.Errorf("interior tangent %d = %v, want central difference %v", i, got, want)
		}
	}
	last := len(pts) - 1
	want := pts[last].Sub(pts[last-1]).Normalize()
	if got := s.tangents[last].XYZ(); got != want {
		t.Errorf("last tangent %v, want forward difference %v", got, want)
	}
}

func TestFrameOrthonormalOnHelix(t *testing.T) {
	const n = 20
	pts := make([]vmath.Vec3, n)
	for i := range pts {
		th := float64(i) * 0.2
		pts[i] = vmath.Vec3{
			X: 2 * float32(math.Cos(th)),
			Y: 0.3 * float32(th),
			Z: 2 * float32(math.Sin(th)),
		}
	}
	s := frameSim(pts)
	s.reconstructInstance(0)

	for i := 1; i < n-1; i++ {
		tan := s.tangents[i].XYZ()
		nrm := s.normals[i].XYZ()
		if !approxf(tan.Length(), 1, 1e-4) {
			t.Errorf("vertex %d: tangent length %v", i, tan.Length())
		}
		if !approxf(nrm.Length(), 1, 1e-4) {
			t.Errorf("vertex %d: normal length %v", i, nrm.Length())
		}
		if dot := tan.Dot(nrm); dot < -1e-4 || dot > 1e-4 {
			t.Errorf("vertex %d: tangent.normal = %v, want 0", i, dot)
		}
	}
}

func TestFrameNoFlipsOnPlanarArc(t *testing.T) {
	const n = 24
	pts := make([]vmath.Vec3, n)
	for i := range pts {
		th := float64(i) * 0.15
		pts[i] = vmath.Vec3{
			X: 5 + 2*float32(math.Cos(th)),
			Y: 2 * float32(math.Sin(th)),
			Z: 0,
		}
	}
	s := frameSim(pts)
	s.reconstructInstance(0)

	for i := 1; i < n-1; i++ {
		a := s.normals[i].XYZ()
		b := s.normals[i+1].XYZ()
		if dot := a.Dot(b); dot <= 0 {
			t.Errorf("normals flipped between %d and %d: dot = %v", i, i+1, dot)
		}
	}
}

func TestFrameDegenerateStaysFinite(t *testing.T) {
	// A fully collapsed curve: every frame degenerates to zero through
	// the normalize guard instead of going NaN.
	p := vmath.Vec3{X: 5, Y: 5, Z: 5}
	s := frameSim([]vmath.Vec3{p, p, p, p})
	s.reconstructInstance(0)

	for i := 0; i < 4; i++ {
		for _, v := range []vmath.Vec4{s.tangents[i], s.normals[i]} {
			for _, c := range []float32{v.X, v.Y, v.Z, v.W} {
				if math.IsNaN(float64(c)) {
					t.Fatalf("vertex %d produced NaN frame %v", i, v)
				}
			}
			if v.XYZ() != (vmath.Vec3{}) {
				t.Errorf("vertex %d: degenerate frame %v, want zero", i, v)
			}
		}
	}
}

func approxf(a, b, eps float32) bool {
	d := a - b
	if d < 0 {
		d = -d
	}
	return d <= eps
}
