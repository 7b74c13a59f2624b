package kepler

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/go-gl/mathgl/mgl64"
)

// OrbitVertices samples the full ellipse at evenly spaced eccentric
// anomalies and returns the points in render units. The path is open:
// segments points starting at periapsis, and drawing code joins the last
// point back to the first.
func OrbitVertices(el Elements, segments int) []mgl32.Vec3 {
	if segments < 1 {
		return nil
	}

	a, e := el.SemiMajorAxis, el.Eccentricity
	b := a * math.Sqrt(1-e*e)
	rot := el.Orientation()
	step := 360.0 / float64(segments)

	verts := make([]mgl32.Vec3, 0, segments)
	for k := 0; k < segments; k++ {
		sinE, cosE := math.Sincos(float64(k) * step * radPerDeg)
		p := rot.Mul3x1(mgl64.Vec3{a * (cosE - e), b * sinE, 0}).Mul(RenderScale)
		verts = append(verts, mgl32.Vec3{float32(p[0]), float32(p[1]), float32(p[2])})
	}
	return verts
}
