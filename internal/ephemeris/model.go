package ephemeris

import "github.com/san-kum/orrery/internal/kepler"

// MeanElements is a set of element series for one body.
//
// Planets give the mean longitude λ and the longitude of perihelion ϖ,
// from which ω = ϖ − Ω and M = λ − ϖ are derived. Bodies whose tables give
// ω and M directly set PeriapsisArg and MeanAnomaly instead.
type MeanElements struct {
	Time TimeArg

	// Scale converts the semi-major axis series to metres.
	Scale float64

	SemiMajorAxis Series
	Eccentricity  Series
	Inclination   Series
	AscendingNode Series

	MeanLongitude       Series
	PerihelionLongitude Series

	// MeanAnomalyTerms is added to λ − ϖ.
	MeanAnomalyTerms Series

	PeriapsisArg Series
	MeanAnomaly  Series
}

// At evaluates the classical elements at a Julian Date.
func (m MeanElements) At(jd float64) kepler.Elements {
	t := m.Time(jd)

	el := kepler.Elements{
		SemiMajorAxis: m.SemiMajorAxis.At(t) * m.Scale,
		Eccentricity:  m.Eccentricity.At(t),
		Inclination:   m.Inclination.At(t),
		AscendingNode: m.AscendingNode.At(t),
	}

	if m.MeanAnomaly != nil {
		el.PeriapsisArg = kepler.WrapDegrees(m.PeriapsisArg.At(t))
		el.MeanAnomaly = kepler.NormalizeDegrees(m.MeanAnomaly.At(t))
		return el
	}

	peri := m.PerihelionLongitude.At(t)
	el.PeriapsisArg = peri - el.AscendingNode
	el.MeanAnomaly = kepler.NormalizeDegrees(m.MeanLongitude.At(t) - peri + m.MeanAnomalyTerms.At(t))
	return el
}

// Provider returns an elements source that evaluates the series and keeps
// the descriptive orbit data (period, speeds, tilt) of base.
func (m MeanElements) Provider(base kepler.Elements) kepler.Provider {
	return func(jd float64) kepler.Elements {
		el := base
		cur := m.At(jd)
		el.SemiMajorAxis = cur.SemiMajorAxis
		el.Eccentricity = cur.Eccentricity
		el.Inclination = cur.Inclination
		el.AscendingNode = cur.AscendingNode
		el.PeriapsisArg = cur.PeriapsisArg
		el.MeanAnomaly = cur.MeanAnomaly
		return el
	}
}
