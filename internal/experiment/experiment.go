package experiment

import (
	"context"
	"errors"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	kitlog "github.com/go-kit/log"
	"github.com/go-kit/log/level"

	"github.com/san-kum/orrery/internal/config"
	"github.com/san-kum/orrery/internal/orrery"
	"github.com/san-kum/orrery/internal/solar"
)

var ErrNotSetup = errors.New("experiment: not set up")

// Result holds the snapshots sampled during a run and the final metric
// values.
type Result struct {
	Config      config.Config
	Samples     []orrery.Snapshot
	Metrics     map[string]float64
	Ticks       uint64
	ClockResets int
	Wall        time.Duration
}

// Times returns the simulated seconds of every sample since the first.
func (r *Result) Times() []float64 {
	out := make([]float64, len(r.Samples))
	if len(r.Samples) == 0 {
		return out
	}
	t0 := r.Samples[0].Time
	for i, s := range r.Samples {
		out[i] = s.Time.Sub(t0).Seconds()
	}
	return out
}

// Track returns the sampled positions of the named body, or nil.
func (r *Result) Track(name string) []mgl64.Vec3 {
	var out []mgl64.Vec3
	for _, s := range r.Samples {
		b, ok := s.Find(name)
		if !ok {
			return nil
		}
		out = append(out, b.Position)
	}
	return out
}

// RelativeTrack returns target positions relative to center.
func (r *Result) RelativeTrack(target, center string) []mgl64.Vec3 {
	t, c := r.Track(target), r.Track(center)
	if t == nil || c == nil {
		return nil
	}
	out := make([]mgl64.Vec3, len(t))
	for i := range t {
		out[i] = t[i].Sub(c[i])
	}
	return out
}

func (r *Result) BodyNames() []string {
	if len(r.Samples) == 0 {
		return nil
	}
	names := make([]string, len(r.Samples[0].Bodies))
	for i, b := range r.Samples[0].Bodies {
		names[i] = b.Name
	}
	return names
}

type Experiment struct {
	cfg    config.Config
	system *orrery.System
	logger kitlog.Logger
}

func New(cfg *config.Config, logger kitlog.Logger) *Experiment {
	if logger == nil {
		logger = kitlog.NewNopLogger()
	}
	c := *cfg
	c.Bodies = append([]string(nil), cfg.Bodies...)
	return &Experiment{cfg: c, logger: logger}
}

// Setup validates the configuration and builds the system it describes.
func (e *Experiment) Setup(reg *Registry) error {
	if err := e.cfg.Validate(); err != nil {
		return err
	}

	stepper, err := reg.GetIntegrator(e.cfg.Integrator, e.cfg.Anchor, e.cfg.Workers)
	if err != nil {
		return err
	}

	sys := orrery.New(
		orrery.WithStart(e.cfg.StartTime()),
		orrery.WithStepper(stepper),
		orrery.WithLogger(e.logger),
	)
	if err := sys.SetTimeScale(e.cfg.TimeScale); err != nil {
		return err
	}
	if err := sys.SetSolverIterations(e.cfg.SolverIterations); err != nil {
		return err
	}
	if err := solar.Load(sys, e.cfg.Bodies, solar.Placement(e.cfg.Placement)); err != nil {
		return err
	}
	sys.SetSimulatePhysics(e.cfg.SimulatePhysics)

	for _, m := range reg.DefaultMetrics(e.cfg.Bodies) {
		sys.AddMetric(m)
	}
	e.system = sys
	return nil
}

// System returns the underlying system for adding observers.
func (e *Experiment) System() *orrery.System {
	return e.system
}

// Run performs the configured number of updates, sampling a snapshot
// every SampleEvery updates and after the last one. A cancelled context
// stops the run and returns the partial result with the context error.
func (e *Experiment) Run(ctx context.Context) (*Result, error) {
	if e.system == nil {
		return nil, ErrNotSetup
	}

	sys := e.system
	steps, every := e.cfg.Steps, e.cfg.SampleEvery
	result := &Result{
		Config:  e.cfg,
		Samples: make([]orrery.Snapshot, 0, steps/every+2),
	}

	sys.ResetMetrics()
	sys.ObserveMetrics()
	result.Samples = append(result.Samples, sys.Snapshot())

	level.Info(e.logger).Log("msg", "run started", "preset", e.cfg.Name, "integrator", e.cfg.Integrator,
		"bodies", len(e.cfg.Bodies), "steps", steps, "start", sys.SimulationTime().Format(time.RFC3339))
	began := time.Now()

	finish := func() {
		result.Metrics = sys.MetricValues()
		result.Ticks = sys.Ticks()
		result.ClockResets = sys.ClockResets()
		result.Wall = time.Since(began)
	}

	for i := 0; i < steps; i++ {
		select {
		case <-ctx.Done():
			finish()
			level.Warn(e.logger).Log("msg", "run cancelled", "tick", sys.Ticks(), "err", ctx.Err())
			return result, ctx.Err()
		default:
		}

		sys.Update(e.cfg.Tick)

		if (i+1)%every == 0 || i == steps-1 {
			result.Samples = append(result.Samples, sys.Snapshot())
		}
	}

	finish()
	level.Info(e.logger).Log("msg", "run finished", "ticks", result.Ticks,
		"end", sys.SimulationTime().Format(time.RFC3339), "wall", result.Wall)
	return result, nil
}
