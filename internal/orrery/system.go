package orrery

import (
	"fmt"
	"time"

	kitlog "github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/san-kum/orrery/internal/body"
	"github.com/san-kum/orrery/internal/integrators"
	"github.com/san-kum/orrery/internal/kepler"
)

type System struct {
	bodies []*body.Body
	index  map[string]int

	simTime       time.Time
	orbitCalcDate time.Time

	timeScale        float64
	solverIterations int
	simulatePhysics  bool

	stepper integrators.Stepper
	// primed is false whenever accelerations may not match the current
	// positions, e.g. after an analytic recompute.
	primed bool

	logger    kitlog.Logger
	metrics   []Metric
	observers []Observer

	ticks       uint64
	clockResets int
}

type Option func(*System)

func WithStart(t time.Time) Option {
	return func(s *System) { s.simTime = t.UTC() }
}

func WithStepper(st integrators.Stepper) Option {
	return func(s *System) { s.stepper = st }
}

func WithLogger(l kitlog.Logger) Option {
	return func(s *System) { s.logger = l }
}

// New returns an empty system integrating from the current time with the
// default time scale and solver iterations.
func New(opts ...Option) *System {
	s := &System{
		index:            make(map[string]int),
		simTime:          time.Now().UTC(),
		timeScale:        DefaultTimeScale,
		solverIterations: DefaultSolverIterations,
		simulatePhysics:  true,
		stepper:          integrators.NewVerlet(true, nil),
		logger:           kitlog.NewNopLogger(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if !inRange(s.simTime) {
		s.simTime = MinTime
	}
	s.orbitCalcDate = s.simTime
	return s
}

// Update advances the system by deltaTime seconds of wall-clock time,
// scaled by the time scale. It never fails: a clock that would leave its
// representable range is reset to MinTime and the step is still taken.
func (s *System) Update(deltaTime float64) {
	dt := deltaTime * s.timeScale

	next, ok := advance(s.simTime, dt)
	if !ok {
		level.Warn(s.logger).Log("msg", "simulation clock out of range, resetting", "time", s.simTime.Format(time.RFC3339), "delta", dt)
		next = MinTime
		s.clockResets++
	}
	s.simTime = next

	switch {
	case !s.simulatePhysics:
		s.RecalculatePositions()
	case !isFinite(dt):
		// Nothing sensible to integrate; the clock reset above is the
		// whole effect of this update.
	case len(s.bodies) > 0:
		if !s.primed {
			s.stepper.Prime(s.bodies)
			s.primed = true
		}
		sub := dt / float64(s.solverIterations)
		for i := 0; i < s.solverIterations; i++ {
			s.stepper.Step(s.bodies, sub)
		}
	}

	s.ticks++
	s.ObserveMetrics()
	for _, o := range s.observers {
		o.OnUpdate(s)
	}
}

// RecalculatePositions places every body on its analytic orbit for the
// current simulation date.
//
// When a body's velocity changes, Acceleration is set to old minus new
// velocity. That value only hints at the size of the correction for
// display; it has the wrong units and is never fed to an integrator.
func (s *System) RecalculatePositions() {
	jd := kepler.JulianDate(s.simTime)
	for _, b := range s.bodies {
		sv := b.StateAt(jd)
		if b.Velocity != sv.Velocity {
			b.Acceleration = b.Velocity.Sub(sv.Velocity)
		}
		b.Position = sv.Position
		b.Velocity = sv.Velocity
	}
	s.orbitCalcDate = s.simTime
	s.primed = false
}

func (s *System) SimulationTime() time.Time { return s.simTime }

// SetSimulationTime moves the clock. In integrating mode the bodies are
// immediately re-seeded from their analytic orbits at the new date.
func (s *System) SetSimulationTime(t time.Time) error {
	t = t.UTC()
	if !inRange(t) {
		return fmt.Errorf("%w: simulation time %s outside [%s, %s]", ErrParameterBounds,
			t.Format(time.RFC3339), MinTime.Format(time.RFC3339), MaxTime.Format(time.RFC3339))
	}
	s.simTime = t
	if s.simulatePhysics {
		s.RecalculatePositions()
	}
	return nil
}

// JulianDate returns the simulation time as a Julian Date.
func (s *System) JulianDate() float64 { return kepler.JulianDate(s.simTime) }

func (s *System) OrbitCalculationDate() time.Time { return s.orbitCalcDate }

func (s *System) OrbitCalculationJD() float64 { return kepler.JulianDate(s.orbitCalcDate) }

func (s *System) TimeScale() float64 { return s.timeScale }

func (s *System) SetTimeScale(v float64) error {
	if !(v >= TimeScaleMin && v <= TimeScaleMax) {
		return fmt.Errorf("%w: time scale %g outside [%g, %g]", ErrParameterBounds, v, TimeScaleMin, TimeScaleMax)
	}
	s.timeScale = v
	return nil
}

func (s *System) SolverIterations() int { return s.solverIterations }

func (s *System) SetSolverIterations(n int) error {
	if n < MinSolverIterations || n > MaxSolverIterations {
		return fmt.Errorf("%w: solver iterations %d outside [%d, %d]", ErrParameterBounds, n, MinSolverIterations, MaxSolverIterations)
	}
	s.solverIterations = n
	return nil
}

func (s *System) SimulatePhysics() bool { return s.simulatePhysics }

func (s *System) SetSimulatePhysics(on bool) {
	if on == s.simulatePhysics {
		return
	}
	s.simulatePhysics = on
	if on {
		s.primed = false
	}
	level.Info(s.logger).Log("msg", "mode changed", "mode", s.Mode())
}

func (s *System) Mode() Mode {
	if s.simulatePhysics {
		return Integrating
	}
	return Analytic
}

func (s *System) Stepper() integrators.Stepper { return s.stepper }

func (s *System) SetStepper(st integrators.Stepper) {
	s.stepper = st
	s.primed = false
}

// AddBody appends b at whatever position it currently holds.
func (s *System) AddBody(b *body.Body) error {
	if b == nil {
		return ErrNilBody
	}
	if _, ok := s.index[b.Name]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicateBody, b.Name)
	}
	s.index[b.Name] = len(s.bodies)
	s.bodies = append(s.bodies, b)
	s.primed = false
	return nil
}

// AddBodyAt sets the body's position and appends it.
func (s *System) AddBodyAt(b *body.Body, position mgl64.Vec3) error {
	if b == nil {
		return ErrNilBody
	}
	b.Position = position
	return s.AddBody(b)
}

// AddBodyAtDefaultPosition places the body at its perihelion distance on
// the -Y axis moving along +X at its mean orbital speed, which gives a
// prograde orbit about the origin.
func (s *System) AddBodyAtDefaultPosition(b *body.Body) error {
	if b == nil {
		return ErrNilBody
	}
	orbit := b.OrbitData()
	b.Velocity = mgl64.Vec3{b.OrbitalSpeed(), 0, 0}
	return s.AddBodyAt(b, mgl64.Vec3{0, -orbit.PerihelionDistance(), 0})
}

// Bodies returns the bodies in insertion order. The slice is a copy; the
// bodies are not.
func (s *System) Bodies() []*body.Body {
	out := make([]*body.Body, len(s.bodies))
	copy(out, s.bodies)
	return out
}

func (s *System) Len() int { return len(s.bodies) }

func (s *System) Body(name string) (*body.Body, error) {
	i, ok := s.index[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownBody, name)
	}
	return s.bodies[i], nil
}

func (s *System) AddMetric(m Metric)     { s.metrics = append(s.metrics, m) }
func (s *System) AddObserver(o Observer) { s.observers = append(s.observers, o) }

func (s *System) ResetMetrics() {
	for _, m := range s.metrics {
		m.Reset()
	}
}

// ObserveMetrics feeds the current state to every metric without
// advancing the system. Call it after ResetMetrics to set the baseline.
func (s *System) ObserveMetrics() {
	for _, m := range s.metrics {
		m.Observe(s.bodies, s.simTime)
	}
}

// MetricValues returns the current value of every registered metric.
func (s *System) MetricValues() map[string]float64 {
	out := make(map[string]float64, len(s.metrics))
	for _, m := range s.metrics {
		out[m.Name()] = m.Value()
	}
	return out
}

func (s *System) Ticks() uint64 { return s.ticks }

// ClockResets counts how often the clock left its range and was reset.
func (s *System) ClockResets() int { return s.clockResets }

func (s *System) Snapshot() Snapshot {
	snap := Snapshot{
		Tick:             s.ticks,
		Time:             s.simTime,
		JulianDate:       s.JulianDate(),
		Mode:             s.Mode(),
		TimeScale:        s.timeScale,
		SolverIterations: s.solverIterations,
		Integrator:       s.stepper.Name(),
		ClockResets:      s.clockResets,
		Bodies:           make([]BodyState, len(s.bodies)),
	}
	for i, b := range s.bodies {
		bs := BodyState{
			Name:         b.Name,
			Mass:         b.Mass,
			Radius:       b.Radius,
			Position:     b.Position,
			Velocity:     b.Velocity,
			Acceleration: b.Acceleration,
			Elements:     b.CurrentOrbitData(),
		}
		if b.Parent != nil {
			bs.Parent = b.Parent.Name
		}
		snap.Bodies[i] = bs
	}
	return snap
}

func isFinite(x float64) bool {
	return x-x == 0
}
