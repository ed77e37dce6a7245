package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/andrepology/pond-sub000/systems"
)

func TestLoadEmbeddedDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load with empty path: %v", err)
	}
	if cfg.Screen.Width <= 0 || cfg.Screen.Height <= 0 {
		t.Errorf("screen dimensions not set: %dx%d", cfg.Screen.Width, cfg.Screen.Height)
	}
	if cfg.Physics.DT <= 0 {
		t.Errorf("dt not set: %v", cfg.Physics.DT)
	}
	if cfg.Creature.MaxSpeed <= cfg.Creature.MinSpeed {
		t.Errorf("max_speed %v should exceed min_speed %v", cfg.Creature.MaxSpeed, cfg.Creature.MinSpeed)
	}
	if cfg.Spine.SegmentCount < 1 {
		t.Errorf("segment_count not set: %d", cfg.Spine.SegmentCount)
	}
	if cfg.World.Shape != "sphere" {
		t.Errorf("default shape = %q, want sphere", cfg.World.Shape)
	}
}

func TestLoadMergesOverrides(t *testing.T) {
	defaults, err := Load("")
	if err != nil {
		t.Fatalf("loading defaults: %v", err)
	}

	path := filepath.Join(t.TempDir(), "override.yaml")
	override := "creature:\n  max_speed: 123\nworld:\n  shape: box\n"
	if err := os.WriteFile(path, []byte(override), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load with override: %v", err)
	}
	if cfg.Creature.MaxSpeed != 123 {
		t.Errorf("max_speed = %v, want 123", cfg.Creature.MaxSpeed)
	}
	if cfg.World.Shape != "box" {
		t.Errorf("shape = %q, want box", cfg.World.Shape)
	}
	// Fields absent from the override keep their defaults.
	if cfg.Creature.Drag != defaults.Creature.Drag {
		t.Errorf("drag = %v, want default %v", cfg.Creature.Drag, defaults.Creature.Drag)
	}
	if cfg.Spine.SegmentCount != defaults.Spine.SegmentCount {
		t.Errorf("segment_count = %v, want default %v", cfg.Spine.SegmentCount, defaults.Spine.SegmentCount)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load("/nonexistent/config.yaml"); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestWriteYAMLRoundTrip(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	cfg.Creature.WanderRadius = 77

	path := filepath.Join(t.TempDir(), "snapshot.yaml")
	if err := cfg.WriteYAML(path); err != nil {
		t.Fatalf("WriteYAML: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("reloading snapshot: %v", err)
	}
	if loaded.Creature.WanderRadius != 77 {
		t.Errorf("wander_radius = %v, want 77", loaded.Creature.WanderRadius)
	}
}

func TestParamsMapping(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	cfg.Creature.MaxSteerForce = 42
	cfg.Behavior.EatDuration = 9
	cfg.Spine.WaveAmplitude = 3.5
	cfg.Behavior.GrowOnEat = false

	p := cfg.Params()
	if p.MaxSteerForce != 42 {
		t.Errorf("MaxSteerForce = %v, want 42", p.MaxSteerForce)
	}
	if p.EatDuration != 9 {
		t.Errorf("EatDuration = %v, want 9", p.EatDuration)
	}
	if p.WaveAmplitude != 3.5 {
		t.Errorf("WaveAmplitude = %v, want 3.5", p.WaveAmplitude)
	}
	if p.GrowOnEat {
		t.Error("GrowOnEat should be false")
	}
}

func TestBoundsSelection(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatal(err)
	}

	cfg.World.Shape = "sphere"
	cfg.World.Radius = 100
	if _, ok := cfg.Bounds().(systems.SphereBounds); !ok {
		t.Errorf("shape sphere produced %T", cfg.Bounds())
	}

	cfg.World.Shape = "box"
	cfg.World.HalfWidth = 50
	cfg.World.HalfHeight = 20
	cfg.World.HalfDepth = 40
	b, ok := cfg.Bounds().(systems.BoxBounds)
	if !ok {
		t.Fatalf("shape box produced %T", cfg.Bounds())
	}
	if b.Min.X != -50 || b.Max.Y != 20 || b.Min.Z != -40 {
		t.Errorf("box extents wrong: %+v", b)
	}
}
