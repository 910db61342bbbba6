package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load(\"\") failed: %v", err)
	}

	if cfg.Screen.Width != 1600 {
		t.Errorf("expected width 1600, got %d", cfg.Screen.Width)
	}
	if cfg.Screen.TargetFPS != 60 {
		t.Errorf("expected target fps 60, got %d", cfg.Screen.TargetFPS)
	}

	if cfg.Swarm.InstanceCount != 1200 {
		t.Errorf("expected instance count 1200, got %d", cfg.Swarm.InstanceCount)
	}
	if cfg.Swarm.HistoryLength != 24 {
		t.Errorf("expected history length 24, got %d", cfg.Swarm.HistoryLength)
	}
	if cfg.Swarm.Constraint != 0.65 {
		t.Errorf("expected constraint 0.65, got %f", cfg.Swarm.Constraint)
	}

	if cfg.Field.Shape != "torus" {
		t.Errorf("expected shape torus, got %q", cfg.Field.Shape)
	}
	if cfg.Field.Resolution != 48 {
		t.Errorf("expected resolution 48, got %d", cfg.Field.Resolution)
	}
	if cfg.Field.Torus.Thickness != 0.35 {
		t.Errorf("expected torus thickness 0.35, got %f", cfg.Field.Torus.Thickness)
	}

	if cfg.Render.Mode != "ribbon" {
		t.Errorf("expected render mode ribbon, got %q", cfg.Render.Mode)
	}
	if !cfg.Render.FadeTail {
		t.Error("expected fade_tail to be true by default")
	}
	if cfg.Probes.Enabled {
		t.Error("expected probes disabled by default")
	}
}

func TestLoadDerived(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load(\"\") failed: %v", err)
	}

	wantDT := float32(1.0 / 60.0)
	if cfg.Derived.DT != wantDT {
		t.Errorf("expected derived dt %v, got %v", wantDT, cfg.Derived.DT)
	}
	want := cfg.Swarm.InstanceCount * cfg.Swarm.HistoryLength
	if cfg.Derived.VertexCount != want {
		t.Errorf("expected vertex count %d, got %d", want, cfg.Derived.VertexCount)
	}
}

func TestLoadOverride(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "override.yaml")

	// Partial file: untouched sections keep their defaults.
	yamlContent := `
swarm:
  instance_count: 64
  history_length: 8
  constraint: 1.0

field:
  shape: sphere
`
	if err := os.WriteFile(path, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load(%q) failed: %v", path, err)
	}

	if cfg.Swarm.InstanceCount != 64 {
		t.Errorf("expected instance count 64, got %d", cfg.Swarm.InstanceCount)
	}
	if cfg.Swarm.HistoryLength != 8 {
		t.Errorf("expected history length 8, got %d", cfg.Swarm.HistoryLength)
	}
	if cfg.Swarm.Constraint != 1.0 {
		t.Errorf("expected constraint 1.0, got %f", cfg.Swarm.Constraint)
	}
	if cfg.Field.Shape != "sphere" {
		t.Errorf("expected shape sphere, got %q", cfg.Field.Shape)
	}

	// Defaults survive where the file is silent.
	if cfg.Swarm.StepWidth != 0.045 {
		t.Errorf("expected step width 0.045, got %f", cfg.Swarm.StepWidth)
	}
	if cfg.Screen.Width != 1600 {
		t.Errorf("expected width 1600, got %d", cfg.Screen.Width)
	}
	if cfg.Derived.VertexCount != 64*8 {
		t.Errorf("expected vertex count %d, got %d", 64*8, cfg.Derived.VertexCount)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load("/nonexistent/path/config.yaml"); err == nil {
		t.Error("expected error for missing config file, got nil")
	}
}

func TestLoadInvalidYAML(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "bad.yaml")
	if err := os.WriteFile(path, []byte("swarm: [not a map"), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}
	if _, err := Load(path); err == nil {
		t.Error("expected error for invalid yaml, got nil")
	}
}

func TestWriteYAMLRoundTrip(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load(\"\") failed: %v", err)
	}
	cfg.Swarm.NoiseOffset = 12.5
	cfg.Field.Shape = "box"

	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "out.yaml")
	if err := cfg.WriteYAML(path); err != nil {
		t.Fatalf("WriteYAML failed: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("reloading written config failed: %v", err)
	}
	if loaded.Swarm.NoiseOffset != 12.5 {
		t.Errorf("expected noise offset 12.5, got %f", loaded.Swarm.NoiseOffset)
	}
	if loaded.Field.Shape != "box" {
		t.Errorf("expected shape box, got %q", loaded.Field.Shape)
	}
	if loaded.Swarm.InstanceCount != cfg.Swarm.InstanceCount {
		t.Errorf("expected instance count %d, got %d", cfg.Swarm.InstanceCount, loaded.Swarm.InstanceCount)
	}
}
