package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const EnvPrefix = "ORRERY"

// NewEnv returns a viper instance reading ORRERY_* variables.
func NewEnv() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()
	return v
}

// ApplyEnv overlays any keys set in v onto cfg. Keys match the YAML names,
// so ORRERY_TIME_SCALE sets time_scale. Bodies are comma separated.
func ApplyEnv(cfg *Config, v *viper.Viper) error {
	if v.IsSet("bodies") {
		var names []string
		for _, n := range strings.Split(v.GetString("bodies"), ",") {
			if n = strings.TrimSpace(n); n != "" {
				names = append(names, n)
			}
		}
		cfg.Bodies = names
	}
	if v.IsSet("placement") {
		cfg.Placement = v.GetString("placement")
	}
	if v.IsSet("start") {
		t, err := time.Parse(time.RFC3339, v.GetString("start"))
		if err != nil {
			return fmt.Errorf("%w: start: %v", ErrInvalidConfig, err)
		}
		cfg.Start = t
	}
	if v.IsSet("time_scale") {
		cfg.TimeScale = v.GetFloat64("time_scale")
	}
	if v.IsSet("solver_iterations") {
		cfg.SolverIterations = v.GetInt("solver_iterations")
	}
	if v.IsSet("simulate_physics") {
		cfg.SimulatePhysics = v.GetBool("simulate_physics")
	}
	if v.IsSet("integrator") {
		cfg.Integrator = v.GetString("integrator")
	}
	if v.IsSet("anchor") {
		cfg.Anchor = v.GetBool("anchor")
	}
	if v.IsSet("workers") {
		cfg.Workers = v.GetInt("workers")
	}
	if v.IsSet("tick") {
		cfg.Tick = v.GetFloat64("tick")
	}
	if v.IsSet("steps") {
		cfg.Steps = v.GetInt("steps")
	}
	if v.IsSet("sample_every") {
		cfg.SampleEvery = v.GetInt("sample_every")
	}
	return nil
}
