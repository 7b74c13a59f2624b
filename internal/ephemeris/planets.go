package ephemeris

import "github.com/san-kum/orrery/internal/kepler"

var Mercury = MeanElements{
	Time:                Millennia,
	Scale:               kepler.AU,
	SemiMajorAxis:       Series{0.3870983098},
	Eccentricity:        Series{0.2056317526, 0.0002040653, -28349e-10, -1805e-10, 23e-10, -2e-10},
	Inclination:         Arcsec(7.00498625, -214.25629, 0.28977, 0.15421, -0.00169, -0.00002),
	AscendingNode:       Arcsec(48.33089304, -4515.21727, -31.79892, -0.71933, 0.01242),
	MeanLongitude:       Arcsec(252.25090552, 5381016286.88982, -1.92789, 0.00639),
	PerihelionLongitude: Arcsec(77.45611904, 5719.11590, -4.83016, -0.02464, -0.00016, 0.00004),
}

var Venus = MeanElements{
	Time:                Millennia,
	Scale:               kepler.AU,
	SemiMajorAxis:       Series{0.7233298200},
	Eccentricity:        Series{0.0067719164, -0.0004776521, 98127e-10, 4639e-10, 123e-10, -3e-10},
	Inclination:         Arcsec(3.39466189, -30.84437, -11.67836, 0.03338, 0.00269, 0.00004),
	AscendingNode:       Arcsec(76.67992019, -10008.48154, -51.32614, -0.58910, -0.04665),
	MeanLongitude:       Arcsec(181.97980085, 2106641364.33548, 0.59381, -0.00627),
	PerihelionLongitude: Arcsec(131.56370300, 175.48640, -498.48184, -20.50042, -0.72432, 0.00224),
}

// EarthMoon is the Earth-Moon barycenter.
var EarthMoon = MeanElements{
	Time:                Centuries,
	Scale:               kepler.AU,
	SemiMajorAxis:       Series{1.00000261, 0.00000562},
	Eccentricity:        Series{0.01671123, -0.00004392},
	Inclination:         Series{-0.00001531, -0.01294668},
	AscendingNode:       Series{0, 0},
	MeanLongitude:       Series{100.46457166, 35999.37306329},
	PerihelionLongitude: Series{102.93768193, 0.32327364},
}

var Mars = MeanElements{
	Time:                Centuries,
	Scale:               kepler.AU,
	SemiMajorAxis:       Series{1.52371034, 0.00001847},
	Eccentricity:        Series{0.09339410, 0.00007882},
	Inclination:         Series{1.84969142, -0.00813131},
	AscendingNode:       Series{49.55953891, -0.29257343},
	MeanLongitude:       Series{-4.55343205, 19140.30268499},
	PerihelionLongitude: Series{-23.94362959, 0.44441088},
}

var Jupiter = MeanElements{
	Time:                Centuries,
	Scale:               kepler.AU,
	SemiMajorAxis:       Series{5.20288700, -0.00011607},
	Eccentricity:        Series{0.04838624, -0.00013253},
	Inclination:         Series{1.30439695, -0.00183714},
	AscendingNode:       Series{100.47390909, 0.20469106},
	MeanLongitude:       Series{34.39644051, 3034.74612775},
	PerihelionLongitude: Series{14.72847983, 0.21252668},
}

var Saturn = MeanElements{
	Time:                Millennia,
	Scale:               kepler.AU,
	SemiMajorAxis:       Series{9.5549091915, -0.0000213896, 444e-10, 670e-10, 110e-10, -7e-10, -1e-10},
	Eccentricity:        Series{0.0555481426, -0.0034664062, -0.0000643639, 33956e-10, -219e-10, -3e-10, 6e-10},
	Inclination:         Arcsec(2.48887878, 91.85195, -17.66225, 0.06105, 0.02638, -0.00152, -0.00012),
	AscendingNode:       Arcsec(113.66550252, -9240.19942, -66.23743, 1.72778, 0.26990, 0.03610, -0.00248),
	MeanLongitude:       Arcsec(50.07744430, 43996098.55732, 75.61614, -0.16618, -0.11484, -0.01452, 0.00083),
	PerihelionLongitude: Arcsec(93.05723748, 20395.49439, 190.25952, 17.68303, 1.23148, 0.10310, 0.00702),
}

var Uranus = MeanElements{
	Time:                Millennia,
	Scale:               kepler.AU,
	SemiMajorAxis:       Series{19.2184460618, -3716e-10, 979e-10},
	Eccentricity:        Series{0.0463812221, -0.0002729293, 0.0000078913, 2447e-10, -171e-10},
	Inclination:         Arcsec(0.77319689, -60.72723, 1.25759, 0.05808, 0.00031),
	AscendingNode:       Arcsec(74.00595701, 2669.15033, 145.93964, 0.42917, -0.09120),
	MeanLongitude:       Arcsec(314.05500511, 15424811.93933, -1.75083, 0.02156),
	PerihelionLongitude: Arcsec(173.00529106, 3215.56238, -34.09288, 1.48909, 0.06600),
}

var Neptune = MeanElements{
	Time:                Millennia,
	Scale:               kepler.AU,
	SemiMajorAxis:       Series{30.1103868694, -16635e-10, 686e-10},
	Eccentricity:        Series{0.0094557470, 0.0000603263, 0, -483e-10},
	Inclination:         Arcsec(1.76995259, 8.12333, 0.08135, -0.00046),
	AscendingNode:       Arcsec(131.78405702, -221.94322, -0.78728, -0.28070, 0.00049),
	MeanLongitude:       Arcsec(304.34866548, 7865503.20744, 0.21103, -0.00895),
	PerihelionLongitude: Arcsec(48.12027554, 1050.71912, 27.39717),
}

var Pluto = MeanElements{
	Time:                Centuries,
	Scale:               kepler.AU,
	SemiMajorAxis:       Series{39.48686035, 0.00449751},
	Eccentricity:        Series{0.24885238, 0.00006016},
	Inclination:         Series{17.14104260, 0.00000501},
	AscendingNode:       Series{110.30167986, -0.00809981},
	MeanLongitude:       Series{238.96535011, 145.18042903},
	PerihelionLongitude: Series{224.09702598, -0.00968827},
	MeanAnomalyTerms:    Series{0, 0, -0.01262724},
}

// Moon elements are geocentric, referred to the ecliptic of date.
var Moon = MeanElements{
	Time:          Days,
	Scale:         1,
	SemiMajorAxis: Series{384_400e3},
	Eccentricity:  Series{0.054900},
	Inclination:   Series{5.1454},
	AscendingNode: Series{125.1228, -0.0529538083},
	PeriapsisArg:  Series{318.0634, 0.1643573223},
	MeanAnomaly:   Series{115.3654, 13.0649929509},
}
