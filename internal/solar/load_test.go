package solar_test

import (
	"errors"
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	. "github.com/onsi/gomega"

	"github.com/san-kum/orrery/internal/kepler"
	"github.com/san-kum/orrery/internal/orrery"
	"github.com/san-kum/orrery/internal/solar"
)

var epoch = time.Date(2000, time.January, 1, 12, 0, 0, 0, time.UTC)

func TestLoadSolarSystem(t *testing.T) {
	g := NewWithT(t)
	sys := orrery.New(orrery.WithStart(epoch))

	g.Expect(solar.LoadSolarSystem(sys)).To(Succeed())
	g.Expect(sys.Len()).To(Equal(10))

	bodies := sys.Bodies()
	for i, name := range solar.Classic {
		g.Expect(bodies[i].Name).To(Equal(name))
	}

	g.Expect(bodies[0].Position).To(Equal(mgl64.Vec3{}))
	g.Expect(bodies[0].Velocity).To(Equal(mgl64.Vec3{}))
	g.Expect(sys.OrbitCalculationDate()).To(BeTemporally("==", epoch))

	for _, b := range bodies[1:] {
		el := b.CurrentOrbitData()
		r := b.Position.Len()
		g.Expect(r).To(BeNumerically(">=", el.SemiMajorAxis*(1-el.Eccentricity)*(1-1e-9)), b.Name)
		g.Expect(r).To(BeNumerically("<=", el.SemiMajorAxis*(1+el.Eccentricity)*(1+1e-9)), b.Name)
		g.Expect(b.Velocity.Len()).To(BeNumerically(">=", 0.95*el.MinSpeed), b.Name)
		g.Expect(b.Velocity.Len()).To(BeNumerically("<=", 1.05*el.MaxSpeed), b.Name)
	}

	earth, err := sys.Body("earth")
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(earth.Position.Len() / kepler.AU).To(BeNumerically("~", 0.9833, 0.001))
}

func TestEarthMoonPreset(t *testing.T) {
	g := NewWithT(t)
	sys := orrery.New(orrery.WithStart(epoch))

	names, err := solar.Preset("earth-moon")
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(solar.Load(sys, names, solar.Analytic)).To(Succeed())

	earth, _ := sys.Body("earth")
	moon, _ := sys.Body("moon")
	g.Expect(moon.Parent).To(BeIdenticalTo(earth))

	d := moon.Position.Sub(earth.Position).Len()
	g.Expect(d).To(BeNumerically(">", 356e6))
	g.Expect(d).To(BeNumerically("<", 407e6))

	rel := moon.Velocity.Sub(earth.Velocity).Len()
	g.Expect(rel).To(BeNumerically("~", 1022, 100))
}

func TestDefaultPlacement(t *testing.T) {
	g := NewWithT(t)
	sys := orrery.New(orrery.WithStart(epoch))
	g.Expect(solar.Load(sys, []string{"sun", "mars"}, solar.Default)).To(Succeed())

	mars, _ := sys.Body("mars")
	g.Expect(mars.Position).To(Equal(mgl64.Vec3{0, -206.6e9, 0}))
	g.Expect(mars.Velocity).To(Equal(mgl64.Vec3{24_070, 0, 0}))

	sun, _ := sys.Body("sun")
	g.Expect(sun.Position).To(Equal(mgl64.Vec3{}))
}

func TestBuildErrors(t *testing.T) {
	g := NewWithT(t)

	_, err := solar.Build([]string{"sun", "vulcan"})
	g.Expect(errors.Is(err, orrery.ErrUnknownBody)).To(BeTrue())

	_, err = solar.Build([]string{"moon", "earth"})
	g.Expect(err).To(HaveOccurred())

	_, err = solar.Preset("kuiper")
	g.Expect(err).To(MatchError(solar.ErrUnknownPreset))

	g.Expect(solar.Load(orrery.New(), solar.Classic, solar.Placement("random"))).NotTo(Succeed())
}

func TestIntegratedEarthTracksModel(t *testing.T) {
	g := NewWithT(t)
	sys := orrery.New(orrery.WithStart(epoch))
	g.Expect(solar.LoadSolarSystem(sys)).To(Succeed())
	g.Expect(sys.SetTimeScale(86400)).To(Succeed())

	for i := 0; i < 365; i++ {
		sys.Update(1)
	}

	earth, _ := sys.Body("earth")
	want := earth.StateAt(kepler.JulianDate(sys.SimulationTime())).Position
	g.Expect(earth.Position.Sub(want).Len()).To(BeNumerically("<", 0.01*kepler.AU))
}

func TestCatalog(t *testing.T) {
	g := NewWithT(t)
	entries := solar.Catalog()
	g.Expect(entries).To(HaveLen(11))

	for _, e := range entries {
		g.Expect(e.Physical.Mass).To(BeNumerically(">", 0), e.Name)
		if e.Name != "sun" {
			g.Expect(e.Model).NotTo(BeNil(), e.Name)
		}
	}
	g.Expect(solar.Segments("pluto")).To(Equal(1440))
	g.Expect(solar.Segments("saturn")).To(Equal(720))
	g.Expect(solar.Segments("ceres")).To(Equal(360))
	g.Expect(solar.PresetNames()).To(ContainElements("classic", "inner", "earth-moon"))
}
