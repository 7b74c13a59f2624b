package experiment

import (
	"fmt"
	"sort"

	"github.com/san-kum/orrery/internal/compute"
	"github.com/san-kum/orrery/internal/config"
	"github.com/san-kum/orrery/internal/integrators"
	"github.com/san-kum/orrery/internal/kepler"
	"github.com/san-kum/orrery/internal/metrics"
	"github.com/san-kum/orrery/internal/orrery"
	"github.com/san-kum/orrery/internal/solar"
)

// StabilityRadius is how far from the first body another may wander before a
// run counts as unstable.
const StabilityRadius = 1000 * kepler.AU

type Registry struct {
	backends map[string]func(workers int) compute.Backend
}

func NewRegistry() *Registry {
	r := &Registry{
		backends: make(map[string]func(int) compute.Backend),
	}

	r.backends["serial"] = func(int) compute.Backend { return compute.NewSerial() }
	r.backends["cpu"] = func(workers int) compute.Backend { return compute.NewCPU(workers) }

	return r
}

// Backend picks the parallel backend for more than one worker.
func (r *Registry) Backend(workers int) compute.Backend {
	if workers > 1 {
		return r.backends["cpu"](workers)
	}
	return r.backends["serial"](0)
}

func (r *Registry) GetIntegrator(name string, anchor bool, workers int) (integrators.Stepper, error) {
	return integrators.New(name, anchor, r.Backend(workers))
}

func (r *Registry) GetPreset(name string) (*config.Config, error) {
	cfg := config.GetPreset(name)
	if cfg == nil {
		return nil, fmt.Errorf("%w: %q (available: %v)", solar.ErrUnknownPreset, name, config.ListPresets())
	}
	return cfg, nil
}

func (r *Registry) ListIntegrators() []string { return integrators.Names() }

func (r *Registry) ListPresets() []string { return config.ListPresets() }

func (r *Registry) ListBackends() []string {
	names := make([]string, 0, len(r.backends))
	for name := range r.backends {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// DefaultMetrics returns the conservation metrics plus a radius drift for
// every orbiting body, measured from its parent or from the first body.
func (r *Registry) DefaultMetrics(bodies []string) []orrery.Metric {
	ms := []orrery.Metric{
		metrics.NewEnergyDrift(),
		metrics.NewMomentumDrift(),
		metrics.NewAngularMomentumDrift(),
		metrics.NewStability(StabilityRadius),
	}
	if len(bodies) < 2 {
		return ms
	}

	for _, name := range bodies[1:] {
		center := bodies[0]
		if e, ok := solar.Lookup(name); ok && e.Parent != "" {
			center = e.Parent
		}
		ms = append(ms, metrics.NewRadiusDrift(name, center))
	}
	return ms
}
