package ephemeris

import (
	"github.com/soniakeys/meeus/v3/base"

	"github.com/san-kum/orrery/internal/kepler"
)

// Series is a polynomial c0 + c1·t + c2·t² + … in some time argument.
type Series []float64

// At evaluates the polynomial with Horner's rule. An empty series is zero.
func (s Series) At(t float64) float64 {
	if len(s) == 0 {
		return 0
	}
	return base.Horner(t, s...)
}

// Arcsec builds an angle series whose constant term is in degrees and
// whose rates are given in arcseconds per unit time.
func Arcsec(deg float64, rates ...float64) Series {
	s := make(Series, 1, len(rates)+1)
	s[0] = deg
	for _, r := range rates {
		s = append(s, r/3600)
	}
	return s
}

// TimeArg maps a Julian Date to the time argument of a series.
type TimeArg func(jd float64) float64

var (
	Millennia TimeArg = kepler.JulianMillennia
	Centuries TimeArg = kepler.JulianCenturies
)

// lunarEpoch is 2000 Jan 0.0 TT.
const lunarEpoch = 2451543.5

// Days counts days from 2000 Jan 0.0.
func Days(jd float64) float64 {
	return jd - lunarEpoch
}
