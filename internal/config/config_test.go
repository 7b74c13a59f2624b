package config

import (
	"errors"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Integrator != "verlet" {
		t.Errorf("expected integrator verlet, got %s", cfg.Integrator)
	}
	if len(cfg.Bodies) != 10 {
		t.Errorf("expected 10 bodies, got %d", len(cfg.Bodies))
	}
	if cfg.Tick <= 0 {
		t.Error("tick should be positive")
	}
	if !cfg.SimulatePhysics {
		t.Error("physics should be on by default")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config invalid: %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"no bodies", func(c *Config) { c.Bodies = nil }},
		{"unknown body", func(c *Config) { c.Bodies = []string{"sun", "vulcan"} }},
		{"placement", func(c *Config) { c.Placement = "random" }},
		{"time scale low", func(c *Config) { c.TimeScale = 1e-4 }},
		{"time scale high", func(c *Config) { c.TimeScale = 2e9 }},
		{"iterations zero", func(c *Config) { c.SolverIterations = 0 }},
		{"iterations high", func(c *Config) { c.SolverIterations = 70000 }},
		{"integrator", func(c *Config) { c.Integrator = "magic" }},
		{"tick", func(c *Config) { c.Tick = 0 }},
		{"steps", func(c *Config) { c.Steps = -1 }},
		{"sample", func(c *Config) { c.SampleEvery = 0 }},
		{"workers", func(c *Config) { c.Workers = -2 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			if err := cfg.Validate(); !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("expected ErrInvalidConfig, got %v", err)
			}
		})
	}
}

func TestSaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "orrery.yaml")
	cfg := GetPreset("earth-moon")
	if err := Save(path, cfg); err != nil {
		t.Fatal(err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if loaded.SolverIterations != 16 {
		t.Errorf("expected 16 iterations, got %d", loaded.SolverIterations)
	}
	if len(loaded.Bodies) != 3 || loaded.Bodies[2] != "moon" {
		t.Errorf("unexpected bodies %v", loaded.Bodies)
	}
	if !loaded.Start.Equal(cfg.Start) {
		t.Errorf("start %v, want %v", loaded.Start, cfg.Start)
	}
}

func TestLoad_Missing(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "none.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestGetPreset(t *testing.T) {
	cfg := GetPreset("analytic")
	if cfg == nil {
		t.Fatal("expected preset, got nil")
	}
	if cfg.SimulatePhysics {
		t.Error("analytic preset should not simulate physics")
	}

	cfg.Bodies[0] = "changed"
	if Presets["analytic"].Bodies[0] != "sun" {
		t.Error("GetPreset must return a copy")
	}
}

func TestGetPreset_NotFound(t *testing.T) {
	if cfg := GetPreset("nonexistent"); cfg != nil {
		t.Error("expected nil for nonexistent preset")
	}
}

func TestPresetsValid(t *testing.T) {
	names := ListPresets()
	if len(names) != len(Presets) {
		t.Fatalf("expected %d names, got %d", len(Presets), len(names))
	}
	for _, name := range names {
		if err := GetPreset(name).Validate(); err != nil {
			t.Errorf("preset %s: %v", name, err)
		}
	}
}

func TestApplyEnv(t *testing.T) {
	t.Setenv("ORRERY_TIME_SCALE", "3600")
	t.Setenv("ORRERY_BODIES", "sun, earth ,moon")
	t.Setenv("ORRERY_SIMULATE_PHYSICS", "false")
	t.Setenv("ORRERY_START", "2024-03-20T03:06:00Z")

	cfg := DefaultConfig()
	if err := ApplyEnv(cfg, NewEnv()); err != nil {
		t.Fatal(err)
	}

	if cfg.TimeScale != 3600 {
		t.Errorf("time scale %g", cfg.TimeScale)
	}
	if len(cfg.Bodies) != 3 || cfg.Bodies[1] != "earth" {
		t.Errorf("bodies %v", cfg.Bodies)
	}
	if cfg.SimulatePhysics {
		t.Error("expected physics off")
	}
	want := time.Date(2024, 3, 20, 3, 6, 0, 0, time.UTC)
	if !cfg.Start.Equal(want) {
		t.Errorf("start %v, want %v", cfg.Start, want)
	}
	if cfg.Integrator != DefaultIntegrator {
		t.Errorf("unset key changed integrator to %s", cfg.Integrator)
	}
}

func TestApplyEnv_BadStart(t *testing.T) {
	t.Setenv("ORRERY_START", "yesterday")
	if err := ApplyEnv(DefaultConfig(), NewEnv()); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("expected ErrInvalidConfig, got %v", err)
	}
}

func TestSimulatedSeconds(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Steps = 30
	cfg.Tick = 1.0 / 30
	cfg.TimeScale = 86400
	if got := cfg.SimulatedSeconds(); got < 86399.99 || got > 86400.01 {
		t.Errorf("expected one day, got %g", got)
	}
}
