package kepler

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

const singular = 1e-11

// ElementsFromState recovers classical elements from a position/velocity
// pair (Vallado, RV2COE). Equatorial orbits report Ω = 0 and measure ω
// from the x axis; circular orbits report ω = 0 and measure the anomaly
// from the node. Only bound orbits yield a meaningful mean anomaly.
func ElementsFromState(r, v mgl64.Vec3, gm float64) Elements {
	h := r.Cross(v)
	n := mgl64.Vec3{0, 0, 1}.Cross(h)

	rMag := r.Len()
	vMag := v.Len()
	energy := vMag*vMag/2 - gm/rMag
	a := -gm / (2 * energy)

	eVec := r.Mul(vMag*vMag - gm/rMag).Sub(v.Mul(r.Dot(v))).Mul(1 / gm)
	e := eVec.Len()

	incl := math.Acos(clampUnit(h[2] / h.Len()))

	var node, argp, nu float64
	equatorial := n.Len() < singular*h.Len()
	circular := e < singular

	if !equatorial {
		node = math.Acos(clampUnit(n[0] / n.Len()))
		if n[1] < 0 {
			node = 2*math.Pi - node
		}
	}

	switch {
	case !circular && !equatorial:
		argp = math.Acos(clampUnit(n.Dot(eVec) / (n.Len() * e)))
		if eVec[2] < 0 {
			argp = 2*math.Pi - argp
		}
	case !circular:
		argp = math.Atan2(eVec[1], eVec[0])
		if h[2] < 0 {
			argp = -argp
		}
	}

	switch {
	case !circular:
		nu = math.Acos(clampUnit(eVec.Dot(r) / (e * rMag)))
		if r.Dot(v) < 0 {
			nu = 2*math.Pi - nu
		}
	case !equatorial:
		nu = math.Acos(clampUnit(n.Dot(r) / (n.Len() * rMag)))
		if r[2] < 0 {
			nu = 2*math.Pi - nu
		}
	default:
		nu = math.Atan2(r[1], r[0])
	}

	el := Elements{
		SemiMajorAxis: a,
		Eccentricity:  e,
		Inclination:   incl * degPerRad,
		AscendingNode: WrapDegrees(node * degPerRad),
		PeriapsisArg:  WrapDegrees(argp * degPerRad),
	}

	if e < 1 {
		E := 2 * math.Atan2(math.Sqrt(1-e)*math.Sin(nu/2), math.Sqrt(1+e)*math.Cos(nu/2))
		el.MeanAnomaly = WrapDegrees((E - e*math.Sin(E)) * degPerRad)
		el.Perihelion = a * (1 - e)
		el.Aphelion = a * (1 + e)
		el.SiderealOrbitPeriod = el.Period(gm) / 86400
		el.MeanSpeed = math.Sqrt(gm / a)
		el.MaxSpeed = math.Sqrt(gm / a * (1 + e) / (1 - e))
		el.MinSpeed = math.Sqrt(gm / a * (1 - e) / (1 + e))
	}

	return el
}

func clampUnit(x float64) float64 {
	return math.Max(-1, math.Min(1, x))
}
