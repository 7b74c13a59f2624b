package kepler

import "math"

// Elements describes an orbit at some epoch. The first six fields are the
// classical elements; the rest is descriptive data carried for display.
type Elements struct {
	SemiMajorAxis float64 `json:"semi_major_axis" yaml:"semi_major_axis"`
	Eccentricity  float64 `json:"eccentricity" yaml:"eccentricity"`
	Inclination   float64 `json:"inclination" yaml:"inclination"`
	AscendingNode float64 `json:"ascending_node" yaml:"ascending_node"`
	PeriapsisArg  float64 `json:"periapsis_arg" yaml:"periapsis_arg"`
	MeanAnomaly   float64 `json:"mean_anomaly" yaml:"mean_anomaly"`

	SiderealOrbitPeriod    float64 `json:"sidereal_orbit_period,omitempty" yaml:"sidereal_orbit_period,omitempty"`       // days
	SiderealRotationPeriod float64 `json:"sidereal_rotation_period,omitempty" yaml:"sidereal_rotation_period,omitempty"` // hours
	Perihelion             float64 `json:"perihelion,omitempty" yaml:"perihelion,omitempty"`
	Aphelion               float64 `json:"aphelion,omitempty" yaml:"aphelion,omitempty"`
	MeanSpeed              float64 `json:"mean_speed,omitempty" yaml:"mean_speed,omitempty"`
	MaxSpeed               float64 `json:"max_speed,omitempty" yaml:"max_speed,omitempty"`
	MinSpeed               float64 `json:"min_speed,omitempty" yaml:"min_speed,omitempty"`
	AxialTilt              float64 `json:"axial_tilt,omitempty" yaml:"axial_tilt,omitempty"`
}

// Provider returns a body's osculating elements at a Julian Date.
type Provider func(jd float64) Elements

// PerihelionDistance returns the stored perihelion, falling back to a(1-e).
func (el Elements) PerihelionDistance() float64 {
	if el.Perihelion > 0 {
		return el.Perihelion
	}
	return el.SemiMajorAxis * (1 - el.Eccentricity)
}

// Period returns the two-body orbital period in seconds for the given GM.
func (el Elements) Period(gm float64) float64 {
	a := math.Abs(el.SemiMajorAxis)
	if gm <= 0 || a == 0 {
		return 0
	}
	return 2 * math.Pi * math.Sqrt(a*a*a/gm)
}

// IsBound reports whether the elements describe a closed ellipse.
func (el Elements) IsBound() bool {
	return el.SemiMajorAxis > 0 && el.Eccentricity >= 0 && el.Eccentricity < 1
}

// NormalizeDegrees maps an angle into (-180, 180].
func NormalizeDegrees(deg float64) float64 {
	d := math.Mod(deg, 360)
	if d <= -180 {
		d += 360
	} else if d > 180 {
		d -= 360
	}
	return d
}

// WrapDegrees maps an angle into [0, 360).
func WrapDegrees(deg float64) float64 {
	d := math.Mod(deg, 360)
	if d < 0 {
		d += 360
	}
	return d
}
