package metrics

import (
	"math"
	"time"

	"github.com/san-kum/orrery/internal/body"
)

// Energy reports the mean total energy over all observations.
type Energy struct {
	sum float64
	n   int
}

func NewEnergy() *Energy { return &Energy{} }

func (e *Energy) Name() string { return "energy" }

func (e *Energy) Observe(bodies []*body.Body, _ time.Time) {
	e.sum += TotalEnergy(bodies)
	e.n++
}

func (e *Energy) Value() float64 {
	if e.n == 0 {
		return 0
	}
	return e.sum / float64(e.n)
}

func (e *Energy) Reset() { *e = Energy{} }

// EnergyDrift reports the largest relative departure of total energy from
// its first observed value. A system with zero initial energy never
// drifts.
type EnergyDrift struct {
	initial, last float64
	max           float64
	samples       int
}

func NewEnergyDrift() *EnergyDrift { return &EnergyDrift{} }

func (e *EnergyDrift) Name() string { return "energy_drift" }

func (e *EnergyDrift) Observe(bodies []*body.Body, _ time.Time) {
	e.last = TotalEnergy(bodies)
	if e.samples == 0 {
		e.initial = e.last
	}
	e.samples++
	e.max = math.Max(e.max, e.Current())
}

func (e *EnergyDrift) Value() float64 { return e.max }

// Current returns the relative drift at the latest observation.
func (e *EnergyDrift) Current() float64 {
	if e.initial == 0 {
		return 0
	}
	return math.Abs((e.last - e.initial) / e.initial)
}

func (e *EnergyDrift) Reset() { *e = EnergyDrift{} }
