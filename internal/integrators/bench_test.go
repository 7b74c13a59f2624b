package integrators

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/san-kum/orrery/internal/body"
	"github.com/san-kum/orrery/internal/kepler"
)

func ringOfBodies(b *testing.B, n int) []*body.Body {
	bodies := make([]*body.Body, 0, n+1)
	bodies = append(bodies, mustBody(b, "star", kepler.SunMass, mgl64.Vec3{}, mgl64.Vec3{}))
	for i := 0; i < n; i++ {
		r := kepler.AU * float64(i+1)
		v := math.Sqrt(kepler.SunGM / r)
		angle := float64(i) * 0.7
		pos := mgl64.Vec3{r * math.Cos(angle), r * math.Sin(angle), 0}
		vel := mgl64.Vec3{-v * math.Sin(angle), v * math.Cos(angle), 0}
		bodies = append(bodies, mustBody(b, "p", 1e24, pos, vel))
	}
	return bodies
}

func benchmarkStepper(b *testing.B, name string) {
	bodies := ringOfBodies(b, 9)
	s, _ := New(name, true, nil)
	s.Prime(bodies)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		s.Step(bodies, 3600)
	}
}

func BenchmarkVerlet(b *testing.B)   { benchmarkStepper(b, "verlet") }
func BenchmarkLeapfrog(b *testing.B) { benchmarkStepper(b, "leapfrog") }
func BenchmarkEuler(b *testing.B)    { benchmarkStepper(b, "euler") }
func BenchmarkRK4(b *testing.B)      { benchmarkStepper(b, "rk4") }
func BenchmarkRK45(b *testing.B)     { benchmarkStepper(b, "rk45") }
