package kepler

import "math"

// SolveEccentricAnomaly solves M = E - e·sin(E) for E, with M and E in
// degrees. The Newton iteration stops once a correction is no larger than
// tol or after maxIter corrections; it never reports failure, the last
// iterate is returned as is.
func SolveEccentricAnomaly(meanAnomaly, e, tol float64, maxIter int) float64 {
	eDeg := e * degPerRad
	E := meanAnomaly + eDeg*math.Sin(meanAnomaly*radPerDeg)

	for i := 0; i < maxIter; i++ {
		dM := meanAnomaly - (E - eDeg*math.Sin(E*radPerDeg))
		dE := dM / (1 - e*math.Cos(E*radPerDeg))
		E += dE
		if math.Abs(dE) <= tol {
			break
		}
	}
	return E
}

// EccentricAnomaly solves Kepler's equation with the default tolerance and
// iteration cap.
func EccentricAnomaly(meanAnomaly, e float64) float64 {
	return SolveEccentricAnomaly(meanAnomaly, e, DefaultTolerance, DefaultMaxIterations)
}

// TrueAnomaly converts an eccentric anomaly (degrees) to the true anomaly.
func TrueAnomaly(eccentricAnomaly, e float64) float64 {
	E := eccentricAnomaly * radPerDeg
	nu := 2 * math.Atan2(math.Sqrt(1+e)*math.Sin(E/2), math.Sqrt(1-e)*math.Cos(E/2))
	return nu * degPerRad
}
