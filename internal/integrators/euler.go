package integrators

import (
	"github.com/san-kum/orrery/internal/body"
	"github.com/san-kum/orrery/internal/compute"
)

// Euler is semi-implicit (symplectic) Euler: kick with the current force,
// then drift with the new velocity. First order; kept for comparisons.
type Euler struct {
	Anchor bool
	forces forceField
}

func NewEuler(anchor bool, backend compute.Backend) *Euler {
	return &Euler{Anchor: anchor, forces: newForceField(backend)}
}

func (e *Euler) Name() string { return "euler" }

func (e *Euler) Prime(bodies []*body.Body) { e.forces.prime(bodies) }

func (e *Euler) Step(bodies []*body.Body, dt float64) {
	e.forces.prime(bodies)
	for _, b := range bodies {
		b.Velocity = b.Velocity.Add(b.Acceleration.Mul(dt))
	}
	for _, b := range movable(bodies, e.Anchor) {
		b.Position = b.Position.Add(b.Velocity.Mul(dt))
	}
}
