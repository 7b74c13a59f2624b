package integrators

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/san-kum/orrery/internal/body"
	"github.com/san-kum/orrery/internal/compute"
)

// Dormand-Prince tableau. The last row of dpA is also the fifth-order
// solution, so the seventh stage is evaluated at the new state.
var (
	dpA = [7][]float64{
		{},
		{1.0 / 5.0},
		{3.0 / 40.0, 9.0 / 40.0},
		{44.0 / 45.0, -56.0 / 15.0, 32.0 / 9.0},
		{19372.0 / 6561.0, -25360.0 / 2187.0, 64448.0 / 6561.0, -212.0 / 729.0},
		{9017.0 / 3168.0, -355.0 / 33.0, 46732.0 / 5247.0, 49.0 / 176.0, -5103.0 / 18656.0},
		{35.0 / 384.0, 0, 500.0 / 1113.0, 125.0 / 192.0, -2187.0 / 6784.0, 11.0 / 84.0},
	}

	// fifth minus fourth order weights
	dpE = [7]float64{
		35.0/384.0 - 5179.0/57600.0,
		0,
		500.0/1113.0 - 7571.0/16695.0,
		125.0/192.0 - 393.0/640.0,
		-2187.0/6784.0 + 92097.0/339200.0,
		11.0/84.0 - 187.0/2100.0,
		-1.0 / 40.0,
	}
)

const (
	DefaultRK45Tolerance = 1e-10

	// minimum sub-step as a fraction of the requested step
	rk45MinFraction = 1e-6
)

// RK45 is an embedded Dormand-Prince 5(4) scheme. Each Step covers dt with
// as many internal sub-steps as the error estimate demands, and remembers
// the last accepted sub-step size for the next call.
type RK45 struct {
	Anchor    bool
	Tolerance float64

	safety, minScale, maxScale float64

	forces forceField
	h      float64

	// Accepted and Rejected count sub-steps over the stepper's lifetime.
	Accepted, Rejected int

	p0, v0, p, v, pNew, vNew []mgl64.Vec3
	mass                     []float64
	ka, kv                   [7][]mgl64.Vec3
}

func NewRK45(anchor bool, backend compute.Backend) *RK45 {
	return &RK45{
		Anchor:    anchor,
		Tolerance: DefaultRK45Tolerance,
		safety:    0.9,
		minScale:  0.2,
		maxScale:  10.0,
		forces:    newForceField(backend),
	}
}

func (r *RK45) Name() string { return "rk45" }

func (r *RK45) Prime(bodies []*body.Body) { r.forces.prime(bodies) }

// StepSize returns the sub-step the next Step will try first, or zero
// before the first step.
func (r *RK45) StepSize() float64 { return r.h }

func (r *RK45) ensure(n int) {
	if len(r.p0) == n {
		return
	}
	r.p0 = make([]mgl64.Vec3, n)
	r.v0 = make([]mgl64.Vec3, n)
	r.p = make([]mgl64.Vec3, n)
	r.v = make([]mgl64.Vec3, n)
	r.pNew = make([]mgl64.Vec3, n)
	r.vNew = make([]mgl64.Vec3, n)
	r.mass = make([]float64, n)
	for s := range r.ka {
		r.ka[s] = make([]mgl64.Vec3, n)
		r.kv[s] = make([]mgl64.Vec3, n)
	}
}

func (r *RK45) Step(bodies []*body.Body, dt float64) {
	n := len(bodies)
	r.ensure(n)
	first := firstMovable(r.Anchor)

	for i, b := range bodies {
		r.p0[i] = b.Position
		r.v0[i] = b.Velocity
		r.mass[i] = b.Mass
	}

	// h, minH and remaining carry the sign of dt so backward steps work.
	h := r.h
	if h == 0 || math.IsNaN(h) || h*dt < 0 || math.Abs(h) > math.Abs(dt) {
		h = dt
	}
	minH := dt * rk45MinFraction
	remaining := dt

	for math.Abs(remaining) > math.Abs(dt)*1e-12 {
		if math.Abs(h) > math.Abs(remaining) {
			h = remaining
		}
		ratio := r.attempt(n, first, h)
		if math.IsNaN(ratio) {
			ratio = math.Inf(1)
		}

		if ratio <= 1 || math.Abs(h) <= math.Abs(minH) {
			copy(r.p0, r.pNew)
			copy(r.v0, r.vNew)
			remaining -= h
			r.Accepted++
			r.h = h * r.grow(ratio)
			h = r.h
			continue
		}

		r.Rejected++
		h *= math.Max(r.minScale, r.safety*math.Pow(ratio, -0.25))
		if math.Abs(h) < math.Abs(minH) {
			h = minH
		}
	}

	for i, b := range bodies {
		b.Velocity = r.v0[i]
		if i >= first {
			b.Position = r.p0[i]
		}
	}
	r.forces.prime(bodies)
}

func (r *RK45) grow(ratio float64) float64 {
	if ratio == 0 {
		return r.maxScale
	}
	return math.Max(r.minScale, math.Min(r.maxScale, r.safety*math.Pow(ratio, -0.2)))
}

// attempt takes one trial sub-step of size h from (p0, v0) into
// (pNew, vNew) and returns the error norm over the tolerance.
func (r *RK45) attempt(n, first int, h float64) float64 {
	for s := 0; s < 7; s++ {
		for i := 0; i < n; i++ {
			dp, dv := mgl64.Vec3{}, mgl64.Vec3{}
			for j, a := range dpA[s] {
				if a == 0 {
					continue
				}
				dp = dp.Add(r.kv[j][i].Mul(a))
				dv = dv.Add(r.ka[j][i].Mul(a))
			}
			r.v[i] = r.v0[i].Add(dv.Mul(h))
			r.p[i] = r.p0[i]
			if i >= first {
				r.p[i] = r.p[i].Add(dp.Mul(h))
			}
			r.kv[s][i] = r.v[i]
		}
		r.forces.accelerations(r.p, r.mass, r.ka[s])
		if s == 6 {
			copy(r.pNew, r.p)
			copy(r.vNew, r.v)
		}
	}

	errMax := 0.0
	for i := 0; i < n; i++ {
		ep, ev := mgl64.Vec3{}, mgl64.Vec3{}
		for s, e := range dpE {
			if e == 0 {
				continue
			}
			ep = ep.Add(r.kv[s][i].Mul(e * h))
			ev = ev.Add(r.ka[s][i].Mul(e * h))
		}
		if i >= first {
			scale := r.p0[i].Len() + r.v0[i].Mul(h).Len() + 1
			errMax = math.Max(errMax, ep.Len()/scale)
		}
		scale := r.v0[i].Len() + r.ka[0][i].Mul(h).Len() + 1e-10
		errMax = math.Max(errMax, ev.Len()/scale)
	}
	return errMax / r.Tolerance
}
