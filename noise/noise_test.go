package noise

import (
	"math"
	"testing"

	"github.com/pthm-cable/wisp/vmath"
)

// samplePoints spreads over several simplex cells, avoiding lattice
// points so the fast floor never sits exactly on a cell boundary.
func samplePoints() []vmath.Vec3 {
	var pts []vmath.Vec3
	for i := 0; i < 200; i++ {
		f := float32(i)
		pts = append(pts, vmath.Vec3{
			X: f*0.317 - 30.123,
			Y: f*0.271 + 4.567,
			Z: f*0.413 - 11.891,
		})
	}
	return pts
}

func TestDeterministic(t *testing.T) {
	a := New(42)
	b := New(42)

	for _, p := range samplePoints() {
		va, vb := a.Sample(p), b.Sample(p)
		if va != vb {
			t.Fatalf("same seed diverged at %v: %v vs %v", p, va, vb)
		}
	}
}

func TestSeedChangesField(t *testing.T) {
	a := New(1)
	b := New(2)

	differs := false
	for _, p := range samplePoints() {
		if a.Sample(p) != b.Sample(p) {
			differs = true
			break
		}
	}
	if !differs {
		t.Error("different seeds produced identical fields")
	}
}

func TestValueRange(t *testing.T) {
	n := New(7)

	var min, max float32 = 1, -1
	for _, p := range samplePoints() {
		v := n.Sample(p).W
		if v < -1.5 || v > 1.5 {
			t.Fatalf("value %v at %v outside expected range", v, p)
		}
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}
	// The field should actually vary, not sit near a constant.
	if max-min < 0.5 {
		t.Errorf("value spread %v too small (min=%v max=%v)", max-min, min, max)
	}
}

func TestAnalyticDerivatives(t *testing.T) {
	n := New(1234)

	const h = 1e-3
	const tol = 0.02
	axes := []vmath.Vec3{{X: h}, {Y: h}, {Z: h}}

	for _, p := range samplePoints() {
		s := n.Sample(p)
		analytic := [3]float32{s.X, s.Y, s.Z}
		for axis, d := range axes {
			hi := n.Sample(p.Add(d)).W
			lo := n.Sample(p.Sub(d)).W
			numeric := (hi - lo) / (2 * h)
			diff := float64(analytic[axis] - numeric)
			if math.Abs(diff) > tol {
				t.Fatalf("axis %d at %v: analytic %v vs central difference %v",
					axis, p, analytic[axis], numeric)
			}
		}
	}
}

func BenchmarkSample(b *testing.B) {
	n := New(42)
	p := vmath.Vec3{X: 1.3, Y: -2.7, Z: 0.9}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		p.X += 0.01
		_ = n.Sample(p)
	}
}
