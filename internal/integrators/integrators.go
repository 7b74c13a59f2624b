// Package integrators advances a set of gravitating bodies by one time step.
//
// Every stepper re-evaluates pairwise forces from scratch on each step and
// writes the result into each body's Force accumulator. When Anchor is set
// the first body's position is held fixed; its velocity still responds to
// forces so momentum bookkeeping is unchanged.
package integrators

import (
	"errors"
	"fmt"
	"sort"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/san-kum/orrery/internal/body"
	"github.com/san-kum/orrery/internal/compute"
	"github.com/san-kum/orrery/internal/kepler"
)

var ErrUnknownIntegrator = errors.New("integrators: unknown integrator")

type Stepper interface {
	Name() string
	// Prime computes forces and sets accelerations from the current
	// positions without moving anything.
	Prime(bodies []*body.Body)
	Step(bodies []*body.Body, dt float64)
}

var factories = map[string]func(anchor bool, backend compute.Backend) Stepper{
	"verlet":   func(a bool, b compute.Backend) Stepper { return NewVerlet(a, b) },
	"leapfrog": func(a bool, b compute.Backend) Stepper { return NewLeapfrog(a, b) },
	"euler":    func(a bool, b compute.Backend) Stepper { return NewEuler(a, b) },
	"rk4":      func(a bool, b compute.Backend) Stepper { return NewRK4(a, b) },
	"rk45":     func(a bool, b compute.Backend) Stepper { return NewRK45(a, b) },
}

// New returns the named stepper. A nil backend means serial force
// evaluation.
func New(name string, anchor bool, backend compute.Backend) (Stepper, error) {
	f, ok := factories[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q (available: %v)", ErrUnknownIntegrator, name, Names())
	}
	return f(anchor, backend), nil
}

func Names() []string {
	names := make([]string, 0, len(factories))
	for n := range factories {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// forceField gathers body state into flat buffers for a backend.
type forceField struct {
	backend compute.Backend
	pos     []mgl64.Vec3
	mass    []float64
	out     []mgl64.Vec3
}

func newForceField(backend compute.Backend) forceField {
	if backend == nil {
		backend = compute.NewSerial()
	}
	return forceField{backend: backend}
}

func (f *forceField) ensure(n int) {
	if len(f.pos) != n {
		f.pos = make([]mgl64.Vec3, n)
		f.mass = make([]float64, n)
		f.out = make([]mgl64.Vec3, n)
	}
}

// apply recomputes every body's Force from the current positions.
func (f *forceField) apply(bodies []*body.Body) {
	f.ensure(len(bodies))
	for i, b := range bodies {
		f.pos[i] = b.Position
		f.mass[i] = b.Mass
	}
	f.backend.Forces(f.pos, f.mass, kepler.G, kepler.NearZero, f.out)
	for i, b := range bodies {
		b.ResetForce()
		b.AddForce(f.out[i])
	}
}

// accelerations evaluates F/m at arbitrary positions into acc.
func (f *forceField) accelerations(pos []mgl64.Vec3, mass []float64, acc []mgl64.Vec3) {
	f.backend.Forces(pos, mass, kepler.G, kepler.NearZero, acc)
	for i := range acc {
		acc[i] = acc[i].Mul(1 / mass[i])
	}
}

func (f *forceField) prime(bodies []*body.Body) {
	f.apply(bodies)
	for _, b := range bodies {
		b.Acceleration = b.Force.Mul(1 / b.Mass)
	}
}

func firstMovable(anchor bool) int {
	if anchor {
		return 1
	}
	return 0
}

// movable returns the bodies whose positions a stepper may change.
func movable(bodies []*body.Body, anchor bool) []*body.Body {
	if anchor && len(bodies) > 0 {
		return bodies[1:]
	}
	return bodies
}
