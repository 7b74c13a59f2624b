package kepler

import (
	"time"

	"github.com/soniakeys/meeus/v3/julian"
)

// JulianDate returns the Julian Date of t. The time zone is ignored and t
// is read as UTC.
func JulianDate(t time.Time) float64 {
	return julian.TimeToJD(t.UTC())
}

// TimeFromJulian converts a Julian Date back to a UTC time.
func TimeFromJulian(jd float64) time.Time {
	return julian.JDToTime(jd).UTC()
}

// JulianMillennia returns Julian millennia elapsed since J2000.
func JulianMillennia(jd float64) float64 {
	return (jd - J2000) / DaysPerMillennium
}

// JulianCenturies returns Julian centuries elapsed since J2000.
func JulianCenturies(jd float64) float64 {
	return (jd - J2000) / DaysPerCentury
}
