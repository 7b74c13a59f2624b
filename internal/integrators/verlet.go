package integrators

import (
	"github.com/san-kum/orrery/internal/body"
	"github.com/san-kum/orrery/internal/compute"
)

// Verlet is the velocity-Verlet scheme: drift with the previous
// acceleration, recompute forces, then average old and new accelerations
// into the velocity. It relies on Acceleration holding the value from the
// previous step; call Prime after positions are set externally.
type Verlet struct {
	Anchor bool
	forces forceField
}

func NewVerlet(anchor bool, backend compute.Backend) *Verlet {
	return &Verlet{Anchor: anchor, forces: newForceField(backend)}
}

func (v *Verlet) Name() string { return "verlet" }

func (v *Verlet) Prime(bodies []*body.Body) { v.forces.prime(bodies) }

func (v *Verlet) Step(bodies []*body.Body, dt float64) {
	v.UpdatePositions(bodies, dt)
	v.CalculateForces(bodies)
	v.UpdateVelocities(bodies, dt)
}

// UpdatePositions applies p += v·dt + ½·a·dt².
func (v *Verlet) UpdatePositions(bodies []*body.Body, dt float64) {
	halfDt2 := 0.5 * dt * dt
	for _, b := range movable(bodies, v.Anchor) {
		b.Position = b.Position.Add(b.Velocity.Mul(dt)).Add(b.Acceleration.Mul(halfDt2))
	}
}

func (v *Verlet) CalculateForces(bodies []*body.Body) {
	v.forces.apply(bodies)
}

// UpdateVelocities applies v += ½(a + a')·dt with a' = F/m and stores a'.
func (v *Verlet) UpdateVelocities(bodies []*body.Body, dt float64) {
	halfDt := 0.5 * dt
	for _, b := range bodies {
		next := b.Force.Mul(1 / b.Mass)
		b.Velocity = b.Velocity.Add(b.Acceleration.Add(next).Mul(halfDt))
		b.Acceleration = next
	}
}

// Leapfrog is the kick-drift-kick form. It produces the same trajectory
// as Verlet up to rounding.
type Leapfrog struct {
	Anchor bool
	forces forceField
}

func NewLeapfrog(anchor bool, backend compute.Backend) *Leapfrog {
	return &Leapfrog{Anchor: anchor, forces: newForceField(backend)}
}

func (l *Leapfrog) Name() string { return "leapfrog" }

func (l *Leapfrog) Prime(bodies []*body.Body) { l.forces.prime(bodies) }

func (l *Leapfrog) Step(bodies []*body.Body, dt float64) {
	halfDt := 0.5 * dt

	for _, b := range bodies {
		b.Velocity = b.Velocity.Add(b.Acceleration.Mul(halfDt))
	}
	for _, b := range movable(bodies, l.Anchor) {
		b.Position = b.Position.Add(b.Velocity.Mul(dt))
	}

	l.forces.apply(bodies)

	for _, b := range bodies {
		b.Acceleration = b.Force.Mul(1 / b.Mass)
		b.Velocity = b.Velocity.Add(b.Acceleration.Mul(halfDt))
	}
}
