// Package compute provides force evaluation backends for the integrators.
//
// The serial path walks every unordered pair once and applies equal and
// opposite forces. The parallel path splits rows across goroutines with
// per-worker accumulators:
//
//	backend := compute.NewCPU(4)
//	backend.Forces(positions, masses, kepler.G, kepler.NearZero, forces)
//
// A backend reuses its scratch buffers and must not be shared between
// concurrently stepping simulations.
package compute
