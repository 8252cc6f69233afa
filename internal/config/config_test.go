package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Frames != 200 {
		t.Errorf("expected 200 frames, got %d", cfg.Frames)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		t.Error("size should be positive")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestGetPreset(t *testing.T) {
	cfg := GetPreset("principal", "n1")
	if cfg == nil {
		t.Fatal("expected preset, got nil")
	}
	if cfg.Params["direction"] != 1 {
		t.Errorf("expected direction 1, got %f", cfg.Params["direction"])
	}
}

func TestGetPreset_NotFound(t *testing.T) {
	cfg := GetPreset("cylinder", "nonexistent")
	if cfg != nil {
		t.Error("expected nil for nonexistent preset")
	}

	cfg = GetPreset("nonexistent", "radial")
	if cfg != nil {
		t.Error("expected nil for nonexistent script")
	}
}

func TestListPresets(t *testing.T) {
	presets := ListPresets("torsion")
	if len(presets) != 3 || presets[0] != "coarse" {
		t.Errorf("expected sorted torsion presets, got %v", presets)
	}

	presets = ListPresets("nonexistent")
	if presets != nil {
		t.Error("expected nil for nonexistent script")
	}
}

func TestPresetsValidate(t *testing.T) {
	for script, presets := range Presets {
		for name, p := range presets {
			cfg := DefaultConfig()
			cfg.Overlay(p)
			if err := cfg.Validate(); err != nil {
				t.Errorf("%s/%s: %v", script, name, err)
			}
		}
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name  string
		apply func(*Config)
	}{
		{"zero width", func(c *Config) { c.Width = 0 }},
		{"zero fps", func(c *Config) { c.FPS = 0 }},
		{"no frames", func(c *Config) { c.Frames = 0 }},
		{"negative workers", func(c *Config) { c.Workers = -1 }},
		{"format", func(c *Config) { c.Format = "mp4" }},
		{"outer radius", func(c *Config) { c.SetParam("re", 0) }},
		{"height", func(c *Config) { c.SetParam("h", -1) }},
		{"direction", func(c *Config) { c.SetParam("direction", 4) }},
		{"grid", func(c *Config) { c.SetParam("nx", 1) }},
		{"poisson", func(c *Config) { c.SetParam("poisson", 0.6) }},
		{"wall ratio", func(c *Config) { c.SetParam("delta_stop", 1) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.apply(cfg)
			if err := cfg.Validate(); !errors.Is(err, ErrInvalid) {
				t.Errorf("expected ErrInvalid, got %v", err)
			}
		})
	}
}

func TestLoadSave(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mechlab.yaml")

	yml := "script: torsion\nwidth: 400\nparams:\n  subdiv: 2\n"
	if err := os.WriteFile(path, []byte(yml), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.Script != "torsion" || cfg.Width != 400 {
		t.Errorf("unexpected config: %+v", cfg)
	}
	if cfg.Height != DefaultHeight {
		t.Errorf("expected default height, got %d", cfg.Height)
	}
	if cfg.Param("subdiv", 3) != 2 || cfg.Param("seed", 1) != 1 {
		t.Errorf("unexpected params: %v", cfg.Params)
	}

	cfg.SetParam("seed", 7)
	if err := Save(path, cfg); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	back, err := Load(path)
	if err != nil {
		t.Fatalf("reload failed: %v", err)
	}
	if back.Params["seed"] != 7 {
		t.Errorf("expected seed 7 after reload, got %v", back.Params)
	}
}

func TestCloneIsDeep(t *testing.T) {
	cfg := DefaultConfig()
	cfg.SetParam("a", 0.5)

	c := cfg.Clone()
	c.SetParam("a", 0.1)

	if cfg.Params["a"] != 0.5 {
		t.Error("clone shares params with the original")
	}
}
