package field

import (
	"testing"

	"github.com/pthm-cable/wisp/config"
	"github.com/pthm-cable/wisp/vmath"
)

func TestFromConfigSphere(t *testing.T) {
	s, err := FromConfig(config.FieldConfig{
		Shape:  "sphere",
		Sphere: config.SphereConfig{Radius: 1.5},
	})
	if err != nil {
		t.Fatalf("FromConfig failed: %v", err)
	}
	got := s.Distance(vmath.Vec3{X: 2})
	if diff := got - 0.5; diff < -1e-6 || diff > 1e-6 {
		t.Errorf("sphere distance at (2,0,0) = %v, want 0.5", got)
	}
}

func TestFromConfigBoxHalvesExtents(t *testing.T) {
	s, err := FromConfig(config.FieldConfig{
		Shape: "box",
		Box:   config.BoxConfig{Width: 2, Height: 1, Depth: 4},
	})
	if err != nil {
		t.Fatalf("FromConfig failed: %v", err)
	}
	// Config dimensions are full edge lengths, so the face along +x
	// sits at x=1.
	got := s.Distance(vmath.Vec3{X: 1})
	if got < -1e-6 || got > 1e-6 {
		t.Errorf("box distance at (1,0,0) = %v, want 0", got)
	}
	got = s.Distance(vmath.Vec3{Z: 3})
	if diff := got - 1; diff < -1e-6 || diff > 1e-6 {
		t.Errorf("box distance at (0,0,3) = %v, want 1", got)
	}
}

func TestFromConfigTorus(t *testing.T) {
	s, err := FromConfig(config.FieldConfig{
		Shape: "torus",
		Torus: config.TorusConfig{Radius: 1, Thickness: 0.25},
	})
	if err != nil {
		t.Fatalf("FromConfig failed: %v", err)
	}
	got := s.Distance(vmath.Vec3{X: 1})
	if diff := got + 0.25; diff < -1e-6 || diff > 1e-6 {
		t.Errorf("torus distance on ring = %v, want -0.25", got)
	}
}

func TestFromConfigUnknownShape(t *testing.T) {
	if _, err := FromConfig(config.FieldConfig{Shape: "teapot"}); err == nil {
		t.Error("expected error for unknown shape, got nil")
	}
}

func TestFromConfigDisplacement(t *testing.T) {
	base := config.FieldConfig{
		Shape:  "sphere",
		Sphere: config.SphereConfig{Radius: 1},
	}
	displaced := base
	displaced.Displacement = config.DisplacementConfig{Amplitude: 0.3, Frequency: 2, Seed: 11}

	plain, err := FromConfig(base)
	if err != nil {
		t.Fatalf("FromConfig failed: %v", err)
	}
	bumpy, err := FromConfig(displaced)
	if err != nil {
		t.Fatalf("FromConfig failed: %v", err)
	}

	// The displaced surface must deviate from the clean one somewhere.
	probes := []vmath.Vec3{
		{X: 1.2}, {Y: 0.8}, {Z: 1.4}, {X: 0.5, Y: 0.5, Z: 0.5},
	}
	moved := false
	for _, p := range probes {
		if plain.Distance(p) != bumpy.Distance(p) {
			moved = true
			break
		}
	}
	if !moved {
		t.Error("displacement with amplitude 0.3 never changed the distance")
	}
}

func TestBakeFromConfig(t *testing.T) {
	v, err := BakeFromConfig(config.FieldConfig{
		Resolution:    8,
		Extent:        2,
		DistanceScale: 1,
		Shape:         "sphere",
		Sphere:        config.SphereConfig{Radius: 1},
	})
	if err != nil {
		t.Fatalf("BakeFromConfig failed: %v", err)
	}
	if v.W != 8 || v.H != 8 || v.D != 8 {
		t.Errorf("volume dims = %dx%dx%d, want 8x8x8", v.W, v.H, v.D)
	}
	// Far corner texel is outside the sphere, so w is positive.
	if tex := v.At(0, 0, 0); tex.W <= 0 {
		t.Errorf("corner texel w = %v, want > 0", tex.W)
	}
}

func TestBakeFromConfigBadShape(t *testing.T) {
	if _, err := BakeFromConfig(config.FieldConfig{Shape: "nope"}); err == nil {
		t.Error("expected error for unknown shape, got nil")
	}
}
