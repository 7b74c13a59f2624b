package integrators

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/san-kum/orrery/internal/body"
	"github.com/san-kum/orrery/internal/kepler"
)

// eccentricPair puts a light body at periapsis of an e=0.9 orbit.
func eccentricPair(t *testing.T) ([]*body.Body, mgl64.Vec3, float64) {
	const (
		central = 1e30
		rp      = 1e10
		e       = 0.9
	)
	gm := kepler.G * central
	a := rp / (1 - e)
	vp := math.Sqrt(gm * (1 + e) / rp)
	start := mgl64.Vec3{rp, 0, 0}
	bodies := []*body.Body{
		mustBody(t, "star", central, mgl64.Vec3{}, mgl64.Vec3{}),
		mustBody(t, "comet", 1, start, mgl64.Vec3{0, vp, 0}),
	}
	return bodies, start, 2 * math.Pi * math.Sqrt(a*a*a/gm)
}

func TestRK45SubdividesEccentricOrbit(t *testing.T) {
	bodies, start, period := eccentricPair(t)
	s := NewRK45(true, nil)
	s.Prime(bodies)

	const steps = 20
	for i := 0; i < steps; i++ {
		s.Step(bodies, period/steps)
	}

	if got := bodies[1].Position.Sub(start).Len() / start.Len(); got > 1e-4 {
		t.Errorf("relative periapsis error after one orbit: %v", got)
	}
	if s.Accepted <= steps {
		t.Errorf("accepted %d sub-steps, want more than %d", s.Accepted, steps)
	}
}

func TestRK45BeatsRK4OnCoarseSteps(t *testing.T) {
	run := func(name string) float64 {
		bodies, start, period := eccentricPair(t)
		s, _ := New(name, true, nil)
		s.Prime(bodies)
		for i := 0; i < 20; i++ {
			s.Step(bodies, period/20)
		}
		return bodies[1].Position.Sub(start).Len()
	}

	if adaptive, fixed := run("rk45"), run("rk4"); adaptive >= fixed {
		t.Errorf("rk45 error %v not below rk4 error %v", adaptive, fixed)
	}
}

func TestRK45RemembersStepSize(t *testing.T) {
	bodies, period := circularPair(t, 1e11)
	s := NewRK45(true, nil)
	if s.StepSize() != 0 {
		t.Fatalf("step size before first step: %v", s.StepSize())
	}
	s.Prime(bodies)
	s.Step(bodies, period/100)

	if s.StepSize() <= 0 {
		t.Errorf("step size after first step: %v", s.StepSize())
	}
	if s.Accepted == 0 {
		t.Error("no accepted sub-steps")
	}
}

func TestRK45AccelerationPrimedAfterStep(t *testing.T) {
	bodies, period := circularPair(t, 1e11)
	s := NewRK45(true, nil)
	s.Step(bodies, period/50)

	r := bodies[1].Position.Len()
	want := kepler.G * 1e30 / (r * r)
	if got := bodies[1].Acceleration.Len(); math.Abs(got-want)/want > 1e-9 {
		t.Errorf("acceleration: got %v, want %v", got, want)
	}
}
