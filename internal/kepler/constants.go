package kepler

import "math"

const (
	// G is the Newtonian gravitational constant in m³·kg⁻¹·s⁻².
	G = 6.67430e-11

	// AU is the astronomical unit in metres.
	AU = 149_597_870_700.0

	SunMass = 1.9885e30
	SunGM   = G * SunMass

	// J2000 is the Julian Date of the J2000.0 epoch.
	J2000 = 2451545.0

	DaysPerCentury    = 36525.0
	DaysPerMillennium = 365250.0

	// NearZero is the floor applied to squared separations and orbital
	// radii before they are used as divisors.
	NearZero = 1e-3

	// RenderScale converts simulation metres to render units.
	RenderScale = 1e-6

	DefaultTolerance     = 1e-6
	DefaultMaxIterations = 8

	degPerRad = 180 / math.Pi
	radPerDeg = math.Pi / 180
)
