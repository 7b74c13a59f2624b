package metrics

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/san-kum/orrery/internal/body"
	"github.com/san-kum/orrery/internal/kepler"
)

// TotalEnergy returns kinetic plus pairwise potential energy, with the
// same squared-distance floor the force loop uses.
func TotalEnergy(bodies []*body.Body) float64 {
	e := 0.0
	for i, bi := range bodies {
		e += bi.KineticEnergy()
		for _, bj := range bodies[i+1:] {
			d2 := bj.Position.Sub(bi.Position).LenSqr()
			if d2 < kepler.NearZero {
				d2 = kepler.NearZero
			}
			e -= kepler.G * bi.Mass * bj.Mass / math.Sqrt(d2)
		}
	}
	return e
}

func Momentum(bodies []*body.Body) mgl64.Vec3 {
	var p mgl64.Vec3
	for _, b := range bodies {
		p = p.Add(b.Momentum())
	}
	return p
}

// AngularMomentum is taken about the origin.
func AngularMomentum(bodies []*body.Body) mgl64.Vec3 {
	var l mgl64.Vec3
	for _, b := range bodies {
		l = l.Add(b.Position.Cross(b.Momentum()))
	}
	return l
}

// momentumScale is Σ m|v|, the natural size of a momentum error.
func momentumScale(bodies []*body.Body) float64 {
	s := 0.0
	for _, b := range bodies {
		s += b.Mass * b.Velocity.Len()
	}
	return s
}

func angularScale(bodies []*body.Body) float64 {
	s := 0.0
	for _, b := range bodies {
		s += b.Mass * b.Position.Len() * b.Velocity.Len()
	}
	return s
}
