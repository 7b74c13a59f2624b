// Package ephemeris evaluates mean orbital elements of solar-system bodies
// as polynomials in time.
//
// Mercury, Venus, Saturn, Uranus and Neptune use the Simon et al. (1994)
// mean element series in Julian millennia from J2000. Earth, Mars, Jupiter
// and Pluto use the JPL approximate elements in Julian centuries. The Moon
// uses geocentric mean elements in days from 2000 Jan 0.0.
//
// Every model exposes [MeanElements.Provider], which plugs straight into
// a body as its per-date elements source.
package ephemeris
