// Package kepler implements the two-body orbit model used to seed, reseed
// and draw the simulated bodies.
//
// Angles are in degrees throughout, matching the published element
// tables; lengths are in metres and speeds in metres per second.
//
//   - [Elements]: classical orbital elements plus descriptive orbit data
//   - [SolveEccentricAnomaly]: Newton-Raphson solution of Kepler's equation
//   - [StateFromElements]: elements to heliocentric ecliptic position/velocity
//   - [OrbitVertices]: sampled orbit path in render units
//   - [ElementsFromState]: position/velocity back to elements
//
// # Time
//
// Element providers are evaluated at a Julian Date. [JulianDate] and
// [TimeFromJulian] convert between time.Time and JD.
package kepler
