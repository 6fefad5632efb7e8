package config

import (
	"os"
	"path/filepath"
	"testing"

	"go-midiscene/scene"
)

func TestLoadMissingReturnsDefaults(t *testing.T) {
	cfg, err := LoadFrom(filepath.Join(t.TempDir(), "nope.json"))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Scene.Capacity != scene.DefaultCapacity || cfg.Scene.Particles != scene.DefaultParticles {
		t.Errorf("scene defaults = %+v", cfg.Scene)
	}
	if cfg.UI.FPS != 30 || cfg.UI.Speed != 1.0 {
		t.Errorf("ui defaults = %+v", cfg.UI)
	}
}

func TestLoadPartialKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	data := `{"input": {"portName": "Digital Piano"}, "scene": {"setMode": "key", "key": 200}}`
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Input.PortName != "Digital Piano" {
		t.Errorf("portName = %q", cfg.Input.PortName)
	}
	if cfg.Scene.Capacity != scene.DefaultCapacity {
		t.Errorf("capacity = %d, want default", cfg.Scene.Capacity)
	}
	opts := cfg.SetOptions()
	if opts.Mode != scene.SetKey || opts.Key != 127 {
		t.Errorf("set options = %+v, want key mode clamped to 127", opts)
	}
}

func TestLoadRejectsUnknownSetMode(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	os.WriteFile(path, []byte(`{"scene": {"setMode": "rainbow"}}`), 0644)
	if _, err := LoadFrom(path); err == nil {
		t.Error("expected error for unknown set mode")
	}
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "config.json")
	cfg := DefaultConfig()
	cfg.Input.Serial = "/dev/ttyUSB0"
	cfg.Scene.Capacity = 64
	if err := cfg.SaveTo(path); err != nil {
		t.Fatal(err)
	}

	got, err := LoadFrom(path)
	if err != nil {
		t.Fatal(err)
	}
	if got.Input.Serial != "/dev/ttyUSB0" || got.SceneOptions().Capacity != 64 {
		t.Errorf("loaded %+v", got)
	}
}

func TestValidateClamps(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Scene.Capacity = -1
	cfg.UI.FPS = 1000
	cfg.UI.Speed = 0
	if err := cfg.Validate(); err != nil {
		t.Fatal(err)
	}
	if cfg.Scene.Capacity != scene.DefaultCapacity || cfg.UI.FPS != 30 || cfg.UI.Speed != 1 {
		t.Errorf("not clamped: %+v %+v", cfg.Scene, cfg.UI)
	}
}
