package experiment

import (
	"context"
	"errors"
	"testing"
	"time"

	. "github.com/onsi/gomega"

	"github.com/san-kum/orrery/internal/body"
	"github.com/san-kum/orrery/internal/config"
	"github.com/san-kum/orrery/internal/kepler"
)

func sunEarth(steps int) *config.Config {
	cfg := config.GetPreset("sun-earth")
	cfg.Tick = 1
	cfg.TimeScale = 86400
	cfg.Steps = steps
	cfg.SampleEvery = 5
	return cfg
}

func TestRunSamplesYear(t *testing.T) {
	g := NewWithT(t)

	exp := New(sunEarth(365), nil)
	g.Expect(exp.Setup(NewRegistry())).To(Succeed())

	res, err := exp.Run(context.Background())
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(res.Samples).To(HaveLen(74))
	g.Expect(res.Ticks).To(Equal(uint64(365)))
	g.Expect(res.ClockResets).To(BeZero())
	g.Expect(res.BodyNames()).To(Equal([]string{"sun", "earth"}))

	times := res.Times()
	g.Expect(times[0]).To(BeZero())
	g.Expect(times[len(times)-1]).To(BeNumerically("~", 365*86400.0, 1e-3))

	for _, p := range res.RelativeTrack("earth", "sun") {
		g.Expect(p.Len() / kepler.AU).To(BeNumerically("~", 1.0, 0.02))
	}

	g.Expect(res.Metrics).To(HaveKey("radius_drift_earth"))
	g.Expect(res.Metrics["radius_drift_earth"]).To(And(BeNumerically(">", 0), BeNumerically("<", 0.05)))
	g.Expect(res.Metrics["energy_drift"]).To(BeNumerically("<", 1e-3))
	g.Expect(res.Metrics["stability"]).To(Equal(1.0))
}

type timeLog struct{ seen []time.Time }

func (l *timeLog) Name() string                         { return "time_log" }
func (l *timeLog) Observe(_ []*body.Body, at time.Time) { l.seen = append(l.seen, at) }
func (l *timeLog) Value() float64                       { return float64(len(l.seen)) }
func (l *timeLog) Reset()                               { l.seen = nil }

func TestRunObservesInitialState(t *testing.T) {
	g := NewWithT(t)

	exp := New(sunEarth(5), nil)
	g.Expect(exp.Setup(NewRegistry())).To(Succeed())
	log := &timeLog{}
	exp.System().AddMetric(log)

	res, err := exp.Run(context.Background())
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(log.seen).To(HaveLen(6))
	g.Expect(log.seen[0]).To(BeTemporally("==", res.Samples[0].Time))
	g.Expect(res.Metrics).To(HaveKeyWithValue("time_log", 6.0))
}

func TestRunRequiresSetup(t *testing.T) {
	g := NewWithT(t)

	_, err := New(sunEarth(1), nil).Run(context.Background())
	g.Expect(err).To(MatchError(ErrNotSetup))
}

func TestSetupRejectsInvalidConfig(t *testing.T) {
	g := NewWithT(t)

	cfg := sunEarth(1)
	cfg.TimeScale = 0
	err := New(cfg, nil).Setup(NewRegistry())
	g.Expect(errors.Is(err, config.ErrInvalidConfig)).To(BeTrue())
}

func TestRunCancelled(t *testing.T) {
	g := NewWithT(t)

	exp := New(sunEarth(100), nil)
	g.Expect(exp.Setup(NewRegistry())).To(Succeed())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	res, err := exp.Run(ctx)
	g.Expect(err).To(MatchError(context.Canceled))
	g.Expect(res.Samples).To(HaveLen(1))
	g.Expect(res.Ticks).To(BeZero())
}

func TestAnalyticRunFollowsModel(t *testing.T) {
	g := NewWithT(t)

	cfg := sunEarth(10)
	cfg.SimulatePhysics = false
	exp := New(cfg, nil)
	g.Expect(exp.Setup(NewRegistry())).To(Succeed())

	res, err := exp.Run(context.Background())
	g.Expect(err).NotTo(HaveOccurred())

	last := res.Samples[len(res.Samples)-1]
	earth, ok := last.Find("earth")
	g.Expect(ok).To(BeTrue())

	b, err := exp.System().Body("earth")
	g.Expect(err).NotTo(HaveOccurred())
	want := b.StateAt(kepler.JulianDate(last.Time)).Position
	g.Expect(earth.Position.Sub(want).Len()).To(BeNumerically("<", 1.0))
	g.Expect(last.Time.Sub(cfg.Start)).To(Equal(10 * 24 * time.Hour))
}

func TestCompare(t *testing.T) {
	g := NewWithT(t)

	names := []string{"verlet", "leapfrog", "rk4"}
	results, err := Compare(context.Background(), sunEarth(60), names, NewRegistry(), nil)
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(results).To(HaveLen(3))

	for i, res := range results {
		g.Expect(res.Config.Integrator).To(Equal(names[i]))
		g.Expect(res.Ticks).To(Equal(uint64(60)))
	}

	a := results[0].Track("earth")
	b := results[1].Track("earth")
	end := len(a) - 1
	g.Expect(a[end].Sub(b[end]).Len() / kepler.AU).To(BeNumerically("<", 1e-3))
}

func TestCompareUnknownIntegrator(t *testing.T) {
	g := NewWithT(t)

	_, err := Compare(context.Background(), sunEarth(1), []string{"verlet", "bogus"}, NewRegistry(), nil)
	g.Expect(err).To(HaveOccurred())
}

func TestDefaultMetrics(t *testing.T) {
	g := NewWithT(t)

	names := []string{}
	for _, m := range NewRegistry().DefaultMetrics([]string{"sun", "earth", "moon"}) {
		names = append(names, m.Name())
	}
	g.Expect(names).To(ContainElements("energy_drift", "momentum_drift", "stability", "radius_drift_earth", "radius_drift_moon"))
	g.Expect(NewRegistry().DefaultMetrics([]string{"sun"})).To(HaveLen(4))
}

func TestRegistryBackends(t *testing.T) {
	g := NewWithT(t)

	reg := NewRegistry()
	g.Expect(reg.ListBackends()).To(Equal([]string{"cpu", "serial"}))
	g.Expect(reg.Backend(4).Name()).NotTo(Equal(reg.Backend(1).Name()))

	_, err := reg.GetPreset("nope")
	g.Expect(err).To(HaveOccurred())
}
