// Package solar builds the Sun, the planets, Pluto and the Moon and loads
// them into a system.
package solar

import (
	"github.com/san-kum/orrery/internal/body"
	"github.com/san-kum/orrery/internal/ephemeris"
	"github.com/san-kum/orrery/internal/kepler"
)

// Entry describes one catalogued body.
type Entry struct {
	Name        string
	Description string
	Physical    body.Physical
	Orbit       kepler.Elements
	Model       *ephemeris.MeanElements
	Parent      string
	// Segments is the number of samples used to draw the orbit.
	Segments int
}

var catalog = []Entry{
	{
		Name:        "sun",
		Description: "G-type main-sequence star at the centre of the system",
		Physical: body.Physical{
			Mass: 1.9885e30, EquatorialRadius: 6.9551e8, Radius: 6.96e8, Flattening: 9e-6,
			SurfaceArea: 6.07877e18, Volume: 1.40927e27, Density: 1409,
			SurfaceGravity: 274, EscapeVelocity: 617_700, EquatorialVelocity: 7284 / 3.6,
		},
		Orbit: kepler.Elements{SiderealRotationPeriod: 25.38 * 24, AxialTilt: 7.25},
	},
	{
		Name:        "mercury",
		Description: "smallest planet, closest to the Sun",
		Physical: body.Physical{
			Mass: 3.33022e23, EquatorialRadius: 2_439_700, PolarRadius: 2_439_700, Radius: 2_439_700,
			SurfaceArea: 7.48e13, Volume: 6.083e19, Density: 5427,
			SurfaceGravity: 3.7, EscapeVelocity: 4250, EquatorialVelocity: 3.026,
		},
		Orbit: kepler.Elements{
			SemiMajorAxis: 57.909e9, Eccentricity: 0.2056, Inclination: 7.004,
			AscendingNode: 48.33167, PeriapsisArg: 29.124279, MeanAnomaly: 174.795884,
			SiderealOrbitPeriod: 87.969, SiderealRotationPeriod: 1407.6,
			Perihelion: 46.0e9, Aphelion: 69.818e9,
			MeanSpeed: 47_360, MaxSpeed: 58_970, MinSpeed: 38_860, AxialTilt: 0.034,
		},
		Model:    &ephemeris.Mercury,
		Segments: 360,
	},
	{
		Name:        "venus",
		Description: "second planet, shrouded in sulphuric acid clouds",
		Physical: body.Physical{
			Mass: 4.8675e24, EquatorialRadius: 6_051_800, PolarRadius: 6_051_800, Radius: 6_051_800,
			SurfaceArea: 4.60e14, Volume: 9.38e20, Density: 5240,
			SurfaceGravity: 8.87, EscapeVelocity: 10_363, EquatorialVelocity: 1.81,
		},
		Orbit: kepler.Elements{
			SemiMajorAxis: 108.210e9, Eccentricity: 0.0068, Inclination: 3.395,
			AscendingNode: 76.67069, PeriapsisArg: 54.85229, MeanAnomaly: 50.115,
			SiderealOrbitPeriod: 224.701, SiderealRotationPeriod: 5832.6,
			Perihelion: 107.480e9, Aphelion: 108.941e9,
			MeanSpeed: 35_020, MaxSpeed: 35_260, MinSpeed: 34_780, AxialTilt: 177.36,
		},
		Model:    &ephemeris.Venus,
		Segments: 360,
	},
	{
		Name:        "earth",
		Description: "third planet, the only one known to host life",
		Physical: body.Physical{
			Mass: 5.9722e24, EquatorialRadius: 6_378_137, PolarRadius: 6_356_752, Radius: 6_371_000, Flattening: 0.003353,
			SurfaceArea: 5.10072e14, Volume: 1.08321e21, Density: 5514,
			SurfaceGravity: 9.80665, EscapeVelocity: 11_186, EquatorialVelocity: 465.1,
		},
		Orbit: kepler.Elements{
			SemiMajorAxis: 149.598e9, Eccentricity: 0.0167086, Inclination: 0.00005,
			AscendingNode: -11.26064, PeriapsisArg: 114.20783, MeanAnomaly: 358.617,
			SiderealOrbitPeriod: 365.256, SiderealRotationPeriod: 23.9345,
			Perihelion: 147.095e9, Aphelion: 152.100e9,
			MeanSpeed: 29_780, MaxSpeed: 30_290, MinSpeed: 29_290, AxialTilt: 23.44,
		},
		Model:    &ephemeris.EarthMoon,
		Segments: 360,
	},
	{
		Name:        "mars",
		Description: "fourth planet, cold iron-oxide desert",
		Physical: body.Physical{
			Mass: 6.4171e23, EquatorialRadius: 3_396_200, PolarRadius: 3_376_200, Radius: 3_389_500, Flattening: 0.00589,
			SurfaceArea: 1.4437e14, Volume: 1.6318e20, Density: 3933.5,
			SurfaceGravity: 3.72076, EscapeVelocity: 5027, EquatorialVelocity: 241.17,
		},
		Orbit: kepler.Elements{
			SemiMajorAxis: 227.9392e9, Eccentricity: 0.0934, Inclination: 1.850,
			AscendingNode: 49.558, PeriapsisArg: 286.502, MeanAnomaly: 19.412,
			SiderealOrbitPeriod: 686.980, SiderealRotationPeriod: 24.6229,
			Perihelion: 206.6e9, Aphelion: 249.2e9,
			MeanSpeed: 24_070, MaxSpeed: 26_500, MinSpeed: 21_970, AxialTilt: 25.19,
		},
		Model:    &ephemeris.Mars,
		Segments: 360,
	},
	{
		Name:        "jupiter",
		Description: "largest planet, a gas giant",
		Physical: body.Physical{
			Mass: 1.8982e27, EquatorialRadius: 71_492_000, PolarRadius: 66_854_000, Radius: 69_911_000, Flattening: 0.06487,
			SurfaceArea: 6.1419e16, Volume: 1.4313e24, Density: 1326,
			SurfaceGravity: 24.79, EscapeVelocity: 59_500, EquatorialVelocity: 12_600,
		},
		Orbit: kepler.Elements{
			SemiMajorAxis: 778.57e9, Eccentricity: 0.0489, Inclination: 1.303,
			AscendingNode: 100.464, PeriapsisArg: 273.867, MeanAnomaly: 20.020,
			SiderealOrbitPeriod: 4332.59, SiderealRotationPeriod: 9.9250,
			Perihelion: 740.52e9, Aphelion: 816.62e9,
			MeanSpeed: 13_060, MaxSpeed: 13_720, MinSpeed: 12_440, AxialTilt: 3.13,
		},
		Model:    &ephemeris.Jupiter,
		Segments: 720,
	},
	{
		Name:        "saturn",
		Description: "ringed gas giant",
		Physical: body.Physical{
			Mass: 5.6846e26, EquatorialRadius: 60_268_000, PolarRadius: 54_364_000, Radius: 58_232_000, Flattening: 0.09796,
			SurfaceArea: 4.272e16, Volume: 8.2713e23, Density: 687,
			SurfaceGravity: 10.44, EscapeVelocity: 35_500, EquatorialVelocity: 9870,
		},
		Orbit: kepler.Elements{
			SemiMajorAxis: 1432.041e9, Eccentricity: 0.0520, Inclination: 2.486,
			AscendingNode: 113.642, PeriapsisArg: 336.013, MeanAnomaly: 317.020,
			SiderealOrbitPeriod: 10_795.22, SiderealRotationPeriod: 10.656,
			Perihelion: 1357.554e9, Aphelion: 1506.527e9,
			MeanSpeed: 9670, MaxSpeed: 10_140, MinSpeed: 9120, AxialTilt: 26.73,
		},
		Model:    &ephemeris.Saturn,
		Segments: 720,
	},
	{
		Name:        "uranus",
		Description: "ice giant rolling on its side",
		Physical: body.Physical{
			Mass: 8.6813e25, EquatorialRadius: 25_559_000, PolarRadius: 24_973_000, Radius: 25_362_000, Flattening: 0.02293,
			SurfaceArea: 8.1156e15, Volume: 6.833e22, Density: 1270,
			SurfaceGravity: 8.87, EscapeVelocity: 21_300, EquatorialVelocity: 2590,
		},
		Orbit: kepler.Elements{
			SemiMajorAxis: 2867.043e9, Eccentricity: 0.0469, Inclination: 0.770,
			AscendingNode: 73.989821, PeriapsisArg: 96.541318, MeanAnomaly: 142.955717,
			SiderealOrbitPeriod: 30_685.4, SiderealRotationPeriod: 17.24,
			Perihelion: 2737.696e9, Aphelion: 3001.390e9,
			MeanSpeed: 6790, MaxSpeed: 7130, MinSpeed: 6490, AxialTilt: 97.77,
		},
		Model:    &ephemeris.Uranus,
		Segments: 720,
	},
	{
		Name:        "neptune",
		Description: "outermost planet, an ice giant",
		Physical: body.Physical{
			Mass: 1.0243e26, EquatorialRadius: 24_764_000, PolarRadius: 24_341_000, Radius: 24_632_000, Flattening: 0.0171,
			SurfaceArea: 7.6408e15, Volume: 6.254e22, Density: 1638,
			SurfaceGravity: 11.15, EscapeVelocity: 23_500, EquatorialVelocity: 2680,
		},
		Orbit: kepler.Elements{
			SemiMajorAxis: 4514.953e9, Eccentricity: 0.0097, Inclination: 1.770,
			AscendingNode: 131.7794310, PeriapsisArg: 265.646853, MeanAnomaly: 267.767281,
			SiderealOrbitPeriod: 60_189, SiderealRotationPeriod: 16.11,
			Perihelion: 4471.050e9, Aphelion: 4558.857e9,
			MeanSpeed: 5450, MaxSpeed: 5470, MinSpeed: 5370, AxialTilt: 28.32,
		},
		Model:    &ephemeris.Neptune,
		Segments: 720,
	},
	{
		Name:        "pluto",
		Description: "dwarf planet in the Kuiper belt",
		Physical: body.Physical{
			Mass: 1.303e22, EquatorialRadius: 1_188_000, PolarRadius: 1_188_000, Radius: 1_188_000,
			SurfaceArea: 1.77e13, Volume: 7.0e18, Density: 1860,
			SurfaceGravity: 0.617, EscapeVelocity: 1210, EquatorialVelocity: 47.18 / 3.6,
		},
		Orbit: kepler.Elements{
			SemiMajorAxis: 5869.656e9, Eccentricity: 0.2444, Inclination: 17.160,
			AscendingNode: 110.30347, PeriapsisArg: 113.76329, MeanAnomaly: 14.53,
			SiderealOrbitPeriod: 90_560, SiderealRotationPeriod: 153.292,
			Perihelion: 4434.987e9, Aphelion: 7304.326e9,
			MeanSpeed: 4640, MaxSpeed: 6100, MinSpeed: 3710, AxialTilt: 122.53,
		},
		Model:    &ephemeris.Pluto,
		Segments: 1440,
	},
	{
		Name:        "moon",
		Description: "Earth's only natural satellite",
		Physical: body.Physical{
			Mass: 7.342e22, EquatorialRadius: 1_738_100, PolarRadius: 1_736_000, Radius: 1_737_400, Flattening: 0.0012,
			SurfaceArea: 3.793e13, Volume: 2.1958e19, Density: 3344,
			SurfaceGravity: 1.62, EscapeVelocity: 2380, EquatorialVelocity: 4.627,
		},
		Orbit: kepler.Elements{
			SemiMajorAxis: 384.399e6, Eccentricity: 0.0549, Inclination: 5.145,
			AscendingNode: 125.08, PeriapsisArg: 318.15, MeanAnomaly: 115.3654,
			SiderealOrbitPeriod: 27.321661, SiderealRotationPeriod: 655.72,
			Perihelion: 362.6e6, Aphelion: 405.4e6,
			MeanSpeed: 1022, MaxSpeed: 1082, MinSpeed: 970, AxialTilt: 6.687,
		},
		Model:    &ephemeris.Moon,
		Parent:   "earth",
		Segments: 360,
	},
}

// Catalog returns every known body, Sun first.
func Catalog() []Entry {
	out := make([]Entry, len(catalog))
	copy(out, catalog)
	return out
}

func Lookup(name string) (Entry, bool) {
	for _, e := range catalog {
		if e.Name == name {
			return e, true
		}
	}
	return Entry{}, false
}

// Segments returns the orbit sample count for a body, 360 if unknown.
func Segments(name string) int {
	if e, ok := Lookup(name); ok && e.Segments > 0 {
		return e.Segments
	}
	return 360
}
