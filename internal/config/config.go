package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/orrery/internal/integrators"
	"github.com/san-kum/orrery/internal/orrery"
	"github.com/san-kum/orrery/internal/solar"
)

const (
	DefaultPreset      = "classic"
	DefaultIntegrator  = "verlet"
	DefaultTimeScale   = 86400.0
	DefaultTick        = 1.0 / 30
	DefaultSteps       = 10_950
	DefaultSampleEvery = 30
)

var ErrInvalidConfig = errors.New("config: invalid configuration")

type Config struct {
	Name             string    `yaml:"name,omitempty"`
	Bodies           []string  `yaml:"bodies"`
	Placement        string    `yaml:"placement"`
	Start            time.Time `yaml:"start,omitempty"`
	TimeScale        float64   `yaml:"time_scale"`
	SolverIterations int       `yaml:"solver_iterations"`
	SimulatePhysics  bool      `yaml:"simulate_physics"`
	Integrator       string    `yaml:"integrator"`
	Anchor           bool      `yaml:"anchor"`
	// Workers above one enables the parallel force backend.
	Workers     int     `yaml:"workers"`
	Tick        float64 `yaml:"tick"`
	Steps       int     `yaml:"steps"`
	SampleEvery int     `yaml:"sample_every"`
}

// DefaultConfig is the classic solar system advancing one day per second
// of wall-clock time.
func DefaultConfig() *Config {
	return &Config{
		Name:             DefaultPreset,
		Bodies:           append([]string(nil), solar.Classic...),
		Placement:        string(solar.Analytic),
		TimeScale:        DefaultTimeScale,
		SolverIterations: orrery.DefaultSolverIterations,
		SimulatePhysics:  true,
		Integrator:       DefaultIntegrator,
		Anchor:           true,
		Tick:             DefaultTick,
		Steps:            DefaultSteps,
		SampleEvery:      DefaultSampleEvery,
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// StartTime returns the configured start, or now when none is set.
func (c *Config) StartTime() time.Time {
	if c.Start.IsZero() {
		return time.Now().UTC()
	}
	return c.Start.UTC()
}

// SimulatedSeconds is the simulated time covered by a full run.
func (c *Config) SimulatedSeconds() float64 {
	return float64(c.Steps) * c.Tick * c.TimeScale
}

func (c *Config) Validate() error {
	if len(c.Bodies) == 0 {
		return fmt.Errorf("%w: no bodies", ErrInvalidConfig)
	}
	for _, name := range c.Bodies {
		if _, ok := solar.Lookup(name); !ok {
			return fmt.Errorf("%w: unknown body %q", ErrInvalidConfig, name)
		}
	}
	switch solar.Placement(c.Placement) {
	case solar.Analytic, solar.Default:
	default:
		return fmt.Errorf("%w: placement %q (want analytic or default)", ErrInvalidConfig, c.Placement)
	}
	if !(c.TimeScale >= orrery.TimeScaleMin && c.TimeScale <= orrery.TimeScaleMax) {
		return fmt.Errorf("%w: time_scale %g outside [%g, %g]", ErrInvalidConfig, c.TimeScale, orrery.TimeScaleMin, orrery.TimeScaleMax)
	}
	if c.SolverIterations < orrery.MinSolverIterations || c.SolverIterations > orrery.MaxSolverIterations {
		return fmt.Errorf("%w: solver_iterations %d outside [%d, %d]", ErrInvalidConfig, c.SolverIterations, orrery.MinSolverIterations, orrery.MaxSolverIterations)
	}
	if _, err := integrators.New(c.Integrator, c.Anchor, nil); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if !(c.Tick > 0) {
		return fmt.Errorf("%w: tick must be positive, got %g", ErrInvalidConfig, c.Tick)
	}
	if c.Steps < 0 {
		return fmt.Errorf("%w: steps must not be negative, got %d", ErrInvalidConfig, c.Steps)
	}
	if c.SampleEvery < 1 {
		return fmt.Errorf("%w: sample_every must be at least 1, got %d", ErrInvalidConfig, c.SampleEvery)
	}
	if c.Workers < 0 {
		return fmt.Errorf("%w: workers must not be negative, got %d", ErrInvalidConfig, c.Workers)
	}
	if !c.Start.IsZero() && (c.Start.Before(orrery.MinTime) || c.Start.After(orrery.MaxTime)) {
		return fmt.Errorf("%w: start %s outside the simulation clock range", ErrInvalidConfig, c.Start)
	}
	return nil
}
