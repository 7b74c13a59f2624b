// Package analysis extracts periods and error growth from sampled orbits.
//
//   - [PowerSpectrum] and [DominantPeriod]: FFT of a sampled coordinate
//   - [Crossings] and [SectionPeriod]: sidereal period from crossings of
//     the +X half plane
//   - [Divergence]: exponential growth rate of the separation of two tracks
//   - [PlotXY]: top-down ASCII plot of a track
//
// Tracks are positions relative to the central body, sampled at the times
// given alongside them.
package analysis
