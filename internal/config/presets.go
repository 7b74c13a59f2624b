package config

import (
	"sort"
	"time"

	"github.com/san-kum/orrery/internal/solar"
)

var j2000 = time.Date(2000, time.January, 1, 12, 0, 0, 0, time.UTC)

func preset(name string, bodies []string, timeScale float64, steps int) *Config {
	cfg := DefaultConfig()
	cfg.Name = name
	cfg.Bodies = append([]string(nil), bodies...)
	cfg.TimeScale = timeScale
	cfg.Steps = steps
	cfg.Start = j2000
	return cfg
}

// Presets are reproducible starting points, all beginning at J2000.
var Presets = map[string]*Config{
	// One year at one day per wall second.
	"classic": preset("classic", solar.Classic, 86400, 10_958),
	// One Mercury year at six hours per wall second.
	"inner": preset("inner", solar.Inner, 21600, 30_410),
	// Twelve Jupiter years at a year per wall second.
	"outer": func() *Config {
		c := preset("outer", solar.Outer, 31_557_600, 4330)
		c.SampleEvery = 10
		return c
	}(),
	"sun-earth": preset("sun-earth", []string{"sun", "earth"}, 86400, 10_958),
	// Three lunar months at an hour per wall second, with fine sub-steps.
	"earth-moon": func() *Config {
		c := preset("earth-moon", []string{"sun", "earth", "moon"}, 3600, 59_040)
		c.SolverIterations = 16
		c.SampleEvery = 120
		return c
	}(),
	// Pure Kepler motion: the classic set without mutual gravity.
	"analytic": func() *Config {
		c := preset("analytic", solar.Classic, 86400, 10_958)
		c.SimulatePhysics = false
		return c
	}(),
	// Default placement: perihelion on -Y with mean orbital speed.
	"perihelion": func() *Config {
		c := preset("perihelion", solar.Classic, 86400, 10_958)
		c.Placement = string(solar.Default)
		return c
	}(),
}

// GetPreset returns a copy of the named preset, or nil.
func GetPreset(name string) *Config {
	cfg, ok := Presets[name]
	if !ok {
		return nil
	}
	c := *cfg
	c.Bodies = append([]string(nil), cfg.Bodies...)
	return &c
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
