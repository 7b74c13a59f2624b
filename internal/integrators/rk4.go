package integrators

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/san-kum/orrery/internal/body"
	"github.com/san-kum/orrery/internal/compute"
)

// RK4 is the classical fourth-order Runge-Kutta scheme on (p, v). Not
// symplectic: energy drifts slowly but steadily over many orbits.
type RK4 struct {
	Anchor bool
	forces forceField

	p0, v0, p, v []mgl64.Vec3
	mass         []float64
	k            [4][]mgl64.Vec3 // accelerations
	kv           [4][]mgl64.Vec3 // velocities
}

func NewRK4(anchor bool, backend compute.Backend) *RK4 {
	return &RK4{Anchor: anchor, forces: newForceField(backend)}
}

func (r *RK4) Name() string { return "rk4" }

func (r *RK4) Prime(bodies []*body.Body) { r.forces.prime(bodies) }

func (r *RK4) ensure(n int) {
	if len(r.p0) == n {
		return
	}
	r.p0 = make([]mgl64.Vec3, n)
	r.v0 = make([]mgl64.Vec3, n)
	r.p = make([]mgl64.Vec3, n)
	r.v = make([]mgl64.Vec3, n)
	r.mass = make([]float64, n)
	for s := range r.k {
		r.k[s] = make([]mgl64.Vec3, n)
		r.kv[s] = make([]mgl64.Vec3, n)
	}
}

func (r *RK4) Step(bodies []*body.Body, dt float64) {
	n := len(bodies)
	r.ensure(n)
	first := firstMovable(r.Anchor)

	for i, b := range bodies {
		r.p0[i] = b.Position
		r.v0[i] = b.Velocity
		r.mass[i] = b.Mass
	}

	weights := [4]float64{0, 0.5, 0.5, 1}
	for s := 0; s < 4; s++ {
		for i := 0; i < n; i++ {
			if s == 0 {
				r.p[i], r.v[i] = r.p0[i], r.v0[i]
			} else {
				h := weights[s] * dt
				r.v[i] = r.v0[i].Add(r.k[s-1][i].Mul(h))
				if i >= first {
					r.p[i] = r.p0[i].Add(r.kv[s-1][i].Mul(h))
				}
			}
			r.kv[s][i] = r.v[i]
		}
		r.forces.accelerations(r.p, r.mass, r.k[s])
	}

	sixth := dt / 6
	for i, b := range bodies {
		dv := r.k[0][i].Add(r.k[1][i].Mul(2)).Add(r.k[2][i].Mul(2)).Add(r.k[3][i])
		b.Velocity = r.v0[i].Add(dv.Mul(sixth))
		if i >= first {
			dp := r.kv[0][i].Add(r.kv[1][i].Mul(2)).Add(r.kv[2][i].Mul(2)).Add(r.kv[3][i])
			b.Position = r.p0[i].Add(dp.Mul(sixth))
		}
	}

	r.forces.prime(bodies)
}
