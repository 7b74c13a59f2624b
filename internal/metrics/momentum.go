package metrics

import (
	"math"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/san-kum/orrery/internal/body"
)

// MomentumDrift reports the largest change in total linear momentum,
// relative to Σ m|v| at the first observation.
type MomentumDrift struct {
	initial mgl64.Vec3
	scale   float64
	max     float64
	samples int
}

func NewMomentumDrift() *MomentumDrift { return &MomentumDrift{} }

func (m *MomentumDrift) Name() string { return "momentum_drift" }

func (m *MomentumDrift) Observe(bodies []*body.Body, _ time.Time) {
	p := Momentum(bodies)
	if m.samples == 0 {
		m.initial = p
		m.scale = momentumScale(bodies)
	}
	m.samples++
	if m.scale > 0 {
		m.max = math.Max(m.max, p.Sub(m.initial).Len()/m.scale)
	}
}

func (m *MomentumDrift) Value() float64 { return m.max }

func (m *MomentumDrift) Reset() { *m = MomentumDrift{} }

// AngularMomentumDrift is the rotational counterpart of MomentumDrift.
// It is only meaningful while no body is pinned in place.
type AngularMomentumDrift struct {
	initial mgl64.Vec3
	scale   float64
	max     float64
	samples int
}

func NewAngularMomentumDrift() *AngularMomentumDrift { return &AngularMomentumDrift{} }

func (a *AngularMomentumDrift) Name() string { return "angular_momentum_drift" }

func (a *AngularMomentumDrift) Observe(bodies []*body.Body, _ time.Time) {
	l := AngularMomentum(bodies)
	if a.samples == 0 {
		a.initial = l
		a.scale = angularScale(bodies)
	}
	a.samples++
	if a.scale > 0 {
		a.max = math.Max(a.max, l.Sub(a.initial).Len()/a.scale)
	}
}

func (a *AngularMomentumDrift) Value() float64 { return a.max }

func (a *AngularMomentumDrift) Reset() { *a = AngularMomentumDrift{} }
