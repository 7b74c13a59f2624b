package orrery_test

import (
	"math"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/orrery/internal/body"
	"github.com/san-kum/orrery/internal/kepler"
	"github.com/san-kum/orrery/internal/orrery"
)

var epoch = time.Date(2000, time.January, 1, 12, 0, 0, 0, time.UTC)

func newBody(name string, mass float64, orbit kepler.Elements, opts ...body.Option) *body.Body {
	b, err := body.New(name, body.Physical{Mass: mass}, orbit, opts...)
	Expect(err).NotTo(HaveOccurred())
	return b
}

func place(b *body.Body, pos, vel mgl64.Vec3) *body.Body {
	b.Position = pos
	b.Velocity = vel
	return b
}

type countingMetric struct {
	n     int
	times []time.Time
}

func (m *countingMetric) Name() string { return "count" }
func (m *countingMetric) Observe(_ []*body.Body, t time.Time) {
	m.n++
	m.times = append(m.times, t)
}
func (m *countingMetric) Value() float64 { return float64(m.n) }
func (m *countingMetric) Reset()         { m.n = 0 }

var _ = Describe("System", func() {
	var sys *orrery.System

	BeforeEach(func() {
		sys = orrery.New(orrery.WithStart(epoch))
	})

	Describe("defaults", func() {
		It("integrates at real time with eight sub-steps", func() {
			Expect(sys.TimeScale()).To(Equal(1.0))
			Expect(sys.SolverIterations()).To(Equal(8))
			Expect(sys.SimulatePhysics()).To(BeTrue())
			Expect(sys.Mode()).To(Equal(orrery.Integrating))
			Expect(sys.Stepper().Name()).To(Equal("verlet"))
			Expect(sys.SimulationTime()).To(BeTemporally("==", epoch))
		})
	})

	Describe("parameter bounds", func() {
		DescribeTable("rejects time scales out of range",
			func(v float64) {
				Expect(sys.SetTimeScale(v)).To(MatchError(orrery.ErrParameterBounds))
				Expect(sys.TimeScale()).To(Equal(1.0))
			},
			Entry("zero", 0.0),
			Entry("below minimum", 1e-4),
			Entry("above maximum", 2e9),
			Entry("negative", -5.0),
			Entry("NaN", math.NaN()),
		)

		It("accepts the range endpoints", func() {
			Expect(sys.SetTimeScale(orrery.TimeScaleMin)).To(Succeed())
			Expect(sys.SetTimeScale(orrery.TimeScaleMax)).To(Succeed())
			Expect(sys.TimeScale()).To(Equal(orrery.TimeScaleMax))
		})

		It("rejects solver iterations out of range", func() {
			Expect(sys.SetSolverIterations(0)).To(MatchError(orrery.ErrParameterBounds))
			Expect(sys.SetSolverIterations(65536)).To(MatchError(orrery.ErrParameterBounds))
			Expect(sys.SolverIterations()).To(Equal(8))
			Expect(sys.SetSolverIterations(1)).To(Succeed())
			Expect(sys.SolverIterations()).To(Equal(1))
		})

		It("rejects simulation times outside the clock range", func() {
			Expect(sys.SetSimulationTime(orrery.MinTime.Add(-time.Second))).To(MatchError(orrery.ErrParameterBounds))
			Expect(sys.SimulationTime()).To(BeTemporally("==", epoch))
		})
	})

	Describe("bodies", func() {
		It("keeps insertion order and rejects duplicates", func() {
			Expect(sys.AddBody(newBody("sun", kepler.SunMass, kepler.Elements{}))).To(Succeed())
			Expect(sys.AddBody(newBody("earth", 5.9722e24, kepler.Elements{}))).To(Succeed())
			Expect(sys.AddBody(newBody("earth", 1, kepler.Elements{}))).To(MatchError(orrery.ErrDuplicateBody))
			Expect(sys.AddBody(nil)).To(MatchError(orrery.ErrNilBody))

			names := []string{}
			for _, b := range sys.Bodies() {
				names = append(names, b.Name)
			}
			Expect(names).To(Equal([]string{"sun", "earth"}))

			_, err := sys.Body("mars")
			Expect(err).To(MatchError(orrery.ErrUnknownBody))
		})

		It("places a body at its default position", func() {
			b := newBody("mars", 6.4171e23, kepler.Elements{SemiMajorAxis: 227.9e9, Perihelion: 206.6e9, MeanSpeed: 24070})
			Expect(sys.AddBodyAtDefaultPosition(b)).To(Succeed())
			Expect(b.Position).To(Equal(mgl64.Vec3{0, -206.6e9, 0}))
			Expect(b.Velocity).To(Equal(mgl64.Vec3{24070, 0, 0}))
			Expect(b.Position.Cross(b.Velocity)[2]).To(BeNumerically(">", 0))
		})

		It("places a body at an explicit position", func() {
			b := newBody("probe", 1000, kepler.Elements{})
			Expect(sys.AddBodyAt(b, mgl64.Vec3{1, 2, 3})).To(Succeed())
			Expect(b.Position).To(Equal(mgl64.Vec3{1, 2, 3}))
			Expect(sys.Len()).To(Equal(1))
		})
	})

	Describe("integration", func() {
		It("conserves momentum for two bodies released from rest", func() {
			a := place(newBody("a", 1e24, kepler.Elements{}), mgl64.Vec3{}, mgl64.Vec3{})
			b := place(newBody("b", 5e23, kepler.Elements{}), mgl64.Vec3{1e9, 0, 0}, mgl64.Vec3{})
			Expect(sys.AddBody(a)).To(Succeed())
			Expect(sys.AddBody(b)).To(Succeed())
			Expect(sys.SetTimeScale(1000)).To(Succeed())

			for i := 0; i < 200; i++ {
				sys.Update(1)
			}

			p := a.Momentum().Add(b.Momentum())
			Expect(a.Velocity.Len()).To(BeNumerically(">", 0))
			Expect(p.Len()).To(BeNumerically("<", 1e-9*a.Momentum().Len()))
			Expect(b.Position[0]).To(BeNumerically("<", 1e9))
		})

		It("closes a circular orbit more tightly with more solver iterations", func() {
			const r = 1e11
			const central = 1e30
			v := math.Sqrt(kepler.G * central / r)
			period := 2 * math.Pi * r / v

			run := func(iterations int) (float64, float64) {
				s := orrery.New(orrery.WithStart(epoch))
				Expect(s.SetSolverIterations(iterations)).To(Succeed())
				Expect(s.SetTimeScale(period / 100)).To(Succeed())
				star := newBody("star", central, kepler.Elements{})
				planet := place(newBody("planet", 1, kepler.Elements{}), mgl64.Vec3{r, 0, 0}, mgl64.Vec3{0, v, 0})
				Expect(s.AddBody(star)).To(Succeed())
				Expect(s.AddBody(planet)).To(Succeed())

				maxDev := 0.0
				for i := 0; i < 100; i++ {
					s.Update(1)
					maxDev = math.Max(maxDev, math.Abs(planet.Position.Len()-r)/r)
				}
				return planet.Position.Sub(mgl64.Vec3{r, 0, 0}).Len() / r, maxDev
			}

			coarse, _ := run(1)
			fine, radial := run(8)
			Expect(fine).To(BeNumerically("<", coarse))
			Expect(radial).To(BeNumerically("<", 1e-3))
		})

		It("returns the Earth close to its start after one year", func() {
			sun := newBody("sun", 1.9885e30, kepler.Elements{})
			earth := place(newBody("earth", 5.9722e24, kepler.Elements{}), mgl64.Vec3{kepler.AU, 0, 0}, mgl64.Vec3{0, 29_765, 0})
			Expect(sys.AddBody(sun)).To(Succeed())
			Expect(sys.AddBody(earth)).To(Succeed())
			Expect(sys.SetTimeScale(86400)).To(Succeed())

			for i := 0; i < 1461; i++ {
				sys.Update(0.25)
			}

			Expect(sys.SimulationTime().Sub(epoch)).To(Equal(31_557_600 * time.Second))
			drift := earth.Position.Sub(mgl64.Vec3{kepler.AU, 0, 0}).Len()
			Expect(drift).To(BeNumerically("<", 0.03*kepler.AU))
		})

		It("primes accelerations after an analytic recompute", func() {
			sun := newBody("sun", kepler.SunMass, kepler.Elements{})
			earth := newBody("earth", 5.9722e24, kepler.Elements{SemiMajorAxis: kepler.AU})
			Expect(sys.AddBody(sun)).To(Succeed())
			Expect(sys.AddBody(earth)).To(Succeed())

			sys.RecalculatePositions()
			Expect(earth.Acceleration.Len()).To(BeNumerically(">", 1000))

			sys.Update(1)
			want := kepler.SunGM / (kepler.AU * kepler.AU)
			Expect(earth.Acceleration.Len()).To(BeNumerically("~", want, want*1e-6))
		})
	})

	Describe("analytic mode", func() {
		var earth *body.Body

		BeforeEach(func() {
			earth = newBody("earth", 5.9722e24, kepler.Elements{SemiMajorAxis: kepler.AU, Eccentricity: 0.0167}, body.WithProvider(func(jd float64) kepler.Elements {
				return kepler.Elements{
					SemiMajorAxis: kepler.AU,
					Eccentricity:  0.0167,
					MeanAnomaly:   kepler.NormalizeDegrees(360 * (jd - kepler.J2000) / 365.25),
				}
			}))
			Expect(sys.AddBody(newBody("sun", kepler.SunMass, kepler.Elements{}))).To(Succeed())
			Expect(sys.AddBody(earth)).To(Succeed())
		})

		It("is idempotent at a fixed time", func() {
			sys.RecalculatePositions()
			pos, vel := earth.Position, earth.Velocity
			sys.RecalculatePositions()
			Expect(earth.Position).To(Equal(pos))
			Expect(earth.Velocity).To(Equal(vel))
		})

		It("backfills acceleration with the velocity correction", func() {
			earth.Velocity = mgl64.Vec3{1, 2, 3}
			sys.RecalculatePositions()
			want := mgl64.Vec3{1, 2, 3}.Sub(earth.Velocity)
			Expect(earth.Acceleration).To(Equal(want))
		})

		It("follows the provider on every update", func() {
			sys.SetSimulatePhysics(false)
			Expect(sys.Mode()).To(Equal(orrery.Analytic))
			Expect(sys.SetTimeScale(86400)).To(Succeed())

			sys.Update(10)

			jd := kepler.JulianDate(sys.SimulationTime())
			want := earth.StateAt(jd)
			Expect(earth.Position).To(Equal(want.Position))
			Expect(earth.CurrentOrbitData().MeanAnomaly).To(BeNumerically("~", 360*10/365.25, 1e-6))
			Expect(sys.OrbitCalculationDate()).To(BeTemporally("==", sys.SimulationTime()))
		})

		It("re-seeds positions when the time is set while integrating", func() {
			t := epoch.Add(90 * 24 * time.Hour)
			Expect(sys.SetSimulationTime(t)).To(Succeed())
			Expect(sys.OrbitCalculationDate()).To(BeTemporally("==", t))
			Expect(earth.Position).To(Equal(earth.StateAt(kepler.JulianDate(t)).Position))
		})

		It("leaves positions alone when the time is set in analytic mode", func() {
			sys.SetSimulatePhysics(false)
			before := earth.Position
			Expect(sys.SetSimulationTime(epoch.Add(time.Hour))).To(Succeed())
			Expect(earth.Position).To(Equal(before))
			Expect(sys.OrbitCalculationDate()).To(BeTemporally("==", epoch))
		})
	})

	Describe("clock", func() {
		It("resets to the minimum when advancing past the maximum", func() {
			s := orrery.New(orrery.WithStart(orrery.MaxTime.Add(-time.Second)))
			s.Update(10)
			Expect(s.SimulationTime()).To(BeTemporally("==", orrery.MinTime))
			Expect(s.ClockResets()).To(Equal(1))

			s.Update(1)
			Expect(s.SimulationTime()).To(BeTemporally("==", orrery.MinTime.Add(time.Second)))
		})

		It("resets on a non-finite step without touching the bodies", func() {
			b := place(newBody("probe", 1, kepler.Elements{}), mgl64.Vec3{1, 0, 0}, mgl64.Vec3{0, 1, 0})
			Expect(sys.AddBody(b)).To(Succeed())
			sys.Update(math.Inf(1))
			Expect(sys.SimulationTime()).To(BeTemporally("==", orrery.MinTime))
			Expect(b.Position).To(Equal(mgl64.Vec3{1, 0, 0}))
		})

		It("keeps sub-second precision", func() {
			sys.Update(0.25)
			sys.Update(0.25)
			Expect(sys.SimulationTime()).To(BeTemporally("==", epoch.Add(500 * time.Millisecond)))
		})

		It("runs backwards with a negative step", func() {
			sys.Update(-3600)
			Expect(sys.SimulationTime()).To(BeTemporally("==", epoch.Add(-time.Hour)))
		})
	})

	Describe("observation", func() {
		It("feeds metrics and observers after each update", func() {
			m := &countingMetric{}
			calls := 0
			sys.AddMetric(m)
			sys.AddObserver(orrery.ObserverFunc(func(*orrery.System) { calls++ }))

			sys.Update(1)
			sys.Update(1)

			Expect(m.n).To(Equal(2))
			Expect(m.times[1]).To(BeTemporally("==", epoch.Add(2*time.Second)))
			Expect(calls).To(Equal(2))
			Expect(sys.MetricValues()).To(HaveKeyWithValue("count", 2.0))
			Expect(sys.Ticks()).To(Equal(uint64(2)))

			sys.ResetMetrics()
			Expect(m.Value()).To(BeZero())
		})

		It("observes the current state without advancing", func() {
			m := &countingMetric{}
			sys.AddMetric(m)

			sys.ObserveMetrics()
			sys.Update(1)

			Expect(m.n).To(Equal(2))
			Expect(m.times[0]).To(BeTemporally("==", epoch))
			Expect(sys.Ticks()).To(Equal(uint64(1)))
		})

		It("snapshots by value", func() {
			b := place(newBody("probe", 1, kepler.Elements{}), mgl64.Vec3{1, 0, 0}, mgl64.Vec3{})
			Expect(sys.AddBody(b)).To(Succeed())

			snap := sys.Snapshot()
			b.Position = mgl64.Vec3{9, 9, 9}

			got, ok := snap.Find("probe")
			Expect(ok).To(BeTrue())
			Expect(got.Position).To(Equal(mgl64.Vec3{1, 0, 0}))
			Expect(snap.Mode).To(Equal(orrery.Integrating))
			Expect(snap.JulianDate).To(BeNumerically("~", kepler.J2000, 1e-9))
		})
	})
})
