package kepler

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// StateVector is a position/velocity pair in the ecliptic frame.
type StateVector struct {
	Position mgl64.Vec3 `json:"position"`
	Velocity mgl64.Vec3 `json:"velocity"`
}

// Orientation returns the matrix rotating orbital-plane coordinates into
// the reference frame: Rz(Ω)·Rx(i)·Rz(ω).
func (el Elements) Orientation() mgl64.Mat3 {
	node := mgl64.Rotate3DZ(el.AscendingNode * radPerDeg)
	incl := mgl64.Rotate3DX(el.Inclination * radPerDeg)
	peri := mgl64.Rotate3DZ(el.PeriapsisArg * radPerDeg)
	return node.Mul3(incl).Mul3(peri)
}

// StateFromElements places a body on its ellipse at the stored mean
// anomaly. gm is the gravitational parameter of the central body.
func StateFromElements(el Elements, gm float64) StateVector {
	E := EccentricAnomaly(el.MeanAnomaly, el.Eccentricity)
	sinE, cosE := math.Sincos(E * radPerDeg)

	a := el.SemiMajorAxis
	e := el.Eccentricity
	b := math.Sqrt(1 - e*e)

	rot := el.Orientation()
	pos := rot.Mul3x1(mgl64.Vec3{a * (cosE - e), a * b * sinE, 0})

	r := a * (1 - e*cosE)
	if math.Abs(r) < NearZero {
		return StateVector{Position: pos}
	}

	v := math.Sqrt(gm*a) / r
	vel := rot.Mul3x1(mgl64.Vec3{-v * sinE, v * b * cosE, 0})

	return StateVector{Position: pos, Velocity: vel}
}

// PositionFromElements returns only the position part of StateFromElements.
func PositionFromElements(el Elements) mgl64.Vec3 {
	E := EccentricAnomaly(el.MeanAnomaly, el.Eccentricity)
	sinE, cosE := math.Sincos(E * radPerDeg)
	a, e := el.SemiMajorAxis, el.Eccentricity
	return el.Orientation().Mul3x1(mgl64.Vec3{a * (cosE - e), a * math.Sqrt(1-e*e) * sinE, 0})
}
