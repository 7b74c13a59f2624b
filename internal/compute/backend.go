package compute

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Backend computes pairwise gravitational forces.
//
// Forces overwrites out[i] with the net force on body i. Squared
// separations below floor are raised to floor; coincident bodies exert
// no force on each other.
type Backend interface {
	Name() string
	Forces(pos []mgl64.Vec3, mass []float64, g, floor float64, out []mgl64.Vec3)
}

// pairForce returns the force body j exerts on body i.
func pairForce(pi, pj mgl64.Vec3, mi, mj, g, floor float64) (mgl64.Vec3, bool) {
	d := pj.Sub(pi)
	distSq := d.Dot(d)
	if distSq == 0 {
		return mgl64.Vec3{}, false
	}

	dir := d.Mul(1 / math.Sqrt(distSq))
	if distSq < floor {
		distSq = floor
	}
	return dir.Mul(g * mi * mj / distSq), true
}
