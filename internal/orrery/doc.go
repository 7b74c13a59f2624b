// Package orrery runs a simulated solar system.
//
// A [System] owns an ordered list of bodies, a simulation clock and one of
// two update modes:
//
//   - Integrating: bodies move under mutual gravity, advanced by a
//     [integrators.Stepper] in a fixed number of sub-steps per update
//   - Analytic: every body is placed on its Keplerian orbit for the
//     current simulation date
//
// Switching modes is instantaneous and keeps the current state as the
// starting point of the other mode.
//
// # Example
//
//	sys := orrery.New(orrery.WithStart(time.Now()))
//	_ = sys.SetTimeScale(86400)
//	solar.Load(sys, solar.Classic, solar.Analytic)
//	for range ticker.C {
//		sys.Update(1.0 / 60)
//	}
//
// # Thread Safety
//
// System is NOT thread-safe. Readers on other goroutines should consume
// [System.Snapshot] values produced by the goroutine that calls Update.
package orrery
