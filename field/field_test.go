package field

import (
	"math"
	"testing"

	"github.com/pthm-cable/wisp/vmath"
)

func approx(a, b, eps float32) bool {
	d := a - b
	if d < 0 {
		d = -d
	}
	return d <= eps
}

func TestShapeDistances(t *testing.T) {
	sqrt2 := float32(math.Sqrt2)

	cases := []struct {
		name  string
		shape Shape
		p     vmath.Vec3
		want  float32
	}{
		{"sphere center", Sphere{Radius: 1}, vmath.Vec3{}, -1},
		{"sphere surface", Sphere{Radius: 1}, vmath.Vec3{X: 1}, 0},
		{"sphere outside", Sphere{Radius: 1}, vmath.Vec3{X: 2}, 1},
		{"box center", Box{Size: vmath.Vec3{X: 1, Y: 1, Z: 1}}, vmath.Vec3{}, -1},
		{"box face", Box{Size: vmath.Vec3{X: 1, Y: 1, Z: 1}}, vmath.Vec3{X: 2}, 1},
		{"box edge", Box{Size: vmath.Vec3{X: 1, Y: 1, Z: 1}}, vmath.Vec3{X: 2, Y: 2}, sqrt2},
		{"rounded box face", Box{Size: vmath.Vec3{X: 1, Y: 1, Z: 1}, Round: 0.25}, vmath.Vec3{X: 2}, 0.75},
		{"torus ring center", Torus{Radius: 2, Thickness: 0.5}, vmath.Vec3{X: 2}, -0.5},
		{"torus hole center", Torus{Radius: 2, Thickness: 0.5}, vmath.Vec3{}, 1.5},
		{"torus tube surface", Torus{Radius: 2, Thickness: 0.5}, vmath.Vec3{X: 2.5}, 0},
	}

	for _, tc := range cases {
		if got := tc.shape.Distance(tc.p); !approx(got, tc.want, 1e-5) {
			t.Errorf("%s: distance at %v = %v, want %v", tc.name, tc.p, got, tc.want)
		}
	}
}

func TestDisplaceZeroAmplitude(t *testing.T) {
	base := Sphere{Radius: 1}
	s := Displace(base, 42, 0, 1)

	p := vmath.Vec3{X: 0.5, Y: 1.5, Z: -0.25}
	if got, want := s.Distance(p), base.Distance(p); got != want {
		t.Errorf("zero amplitude changed distance: %v vs %v", got, want)
	}
}

func TestDisplaceDeterministic(t *testing.T) {
	a := Displace(Sphere{Radius: 1}, 7, 0.3, 2)
	b := Displace(Sphere{Radius: 1}, 7, 0.3, 2)
	c := Displace(Sphere{Radius: 1}, 8, 0.3, 2)

	p := vmath.Vec3{X: 0.8, Y: -0.3, Z: 0.4}
	if a.Distance(p) != b.Distance(p) {
		t.Error("same displacement seed produced different distances")
	}
	if a.Distance(p) == c.Distance(p) {
		t.Error("different displacement seeds produced identical distance")
	}

	// Displacement actually moves the surface somewhere.
	moved := false
	for i := 0; i < 20; i++ {
		q := vmath.Vec3{X: float32(i) * 0.17, Y: 0.3, Z: -0.6}
		if a.Distance(q) != (Sphere{Radius: 1}).Distance(q) {
			moved = true
			break
		}
	}
	if !moved {
		t.Error("displacement left every sampled distance unchanged")
	}
}

func TestVolumeTexelCenterExact(t *testing.T) {
	v := NewVolume(4, 4, 4, 2)
	want := vmath.Vec4{X: 0.1, Y: 0.2, Z: 0.3, W: 0.4}
	v.Set(1, 2, 3, want)

	got := v.Sample(v.Center(1, 2, 3))
	if got != want {
		t.Errorf("sample at texel center = %v, want %v", got, want)
	}
}

func TestVolumeMidpointAverage(t *testing.T) {
	v := NewVolume(4, 4, 4, 2)
	v.Set(0, 0, 0, vmath.Vec4{W: 1})
	v.Set(1, 0, 0, vmath.Vec4{W: 3})

	a := v.Center(0, 0, 0)
	b := v.Center(1, 0, 0)
	mid := vmath.Vec3{X: (a.X + b.X) / 2, Y: a.Y, Z: a.Z}

	got := v.Sample(mid)
	if !approx(got.W, 2, 1e-6) {
		t.Errorf("midpoint sample W = %v, want 2", got.W)
	}
}

func TestVolumeBorderClamp(t *testing.T) {
	v := NewVolume(4, 4, 4, 2)
	for k := 0; k < 4; k++ {
		for j := 0; j < 4; j++ {
			for i := 0; i < 4; i++ {
				v.Set(i, j, k, vmath.Vec4{W: float32(i + 10*j + 100*k)})
			}
		}
	}

	c := v.Center(3, 1, 2)
	far := vmath.Vec3{X: 100, Y: c.Y, Z: c.Z}
	if got, want := v.Sample(far), v.At(3, 1, 2); got != want {
		t.Errorf("sample beyond +x border = %v, want edge texel %v", got, want)
	}

	c = v.Center(0, 2, 1)
	far = vmath.Vec3{X: -100, Y: c.Y, Z: c.Z}
	if got, want := v.Sample(far), v.At(0, 2, 1); got != want {
		t.Errorf("sample beyond -x border = %v, want edge texel %v", got, want)
	}
}

func TestBakeSphere(t *testing.T) {
	v := Bake(Sphere{Radius: 1}, 16, 2, 1)

	// Outside texel: direction points back toward the origin and w is
	// the distance to the surface.
	p := v.Center(12, 8, 8)
	if p.Length() <= 1 {
		t.Fatalf("test texel unexpectedly inside sphere: %v", p)
	}
	tex := v.At(12, 8, 8)
	if !approx(tex.W, p.Length()-1, 1e-4) {
		t.Errorf("outside texel w = %v, want %v", tex.W, p.Length()-1)
	}
	toCenter := p.Normalize().Scale(-1)
	if dot := tex.XYZ().Dot(toCenter); dot < 0.999 {
		t.Errorf("outside texel direction %v not toward surface (dot %v)", tex.XYZ(), dot)
	}

	// Inside texel: direction points outward, toward the shell.
	p = v.Center(8, 8, 8)
	if p.Length() >= 1 {
		t.Fatalf("test texel unexpectedly outside sphere: %v", p)
	}
	tex = v.At(8, 8, 8)
	if !approx(tex.W, 1-p.Length(), 1e-4) {
		t.Errorf("inside texel w = %v, want %v", tex.W, 1-p.Length())
	}
	if dot := tex.XYZ().Dot(p.Normalize()); dot < 0.999 {
		t.Errorf("inside texel direction %v not toward surface (dot %v)", tex.XYZ(), dot)
	}
}

func TestBakeDistanceScale(t *testing.T) {
	a := Bake(Sphere{Radius: 1}, 8, 2, 1)
	b := Bake(Sphere{Radius: 1}, 8, 2, 2)

	ta := a.At(6, 4, 4)
	tb := b.At(6, 4, 4)
	if !approx(tb.W*2, ta.W, 1e-5) {
		t.Errorf("distance scale not applied: scale1 w=%v, scale2 w=%v", ta.W, tb.W)
	}
}

func BenchmarkVolumeSample(b *testing.B) {
	v := Bake(Sphere{Radius: 1}, 32, 2, 1)
	p := vmath.Vec3{X: 0.3, Y: -0.2, Z: 0.7}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		p.X = float32(i%100) * 0.03
		_ = v.Sample(p)
	}
}
