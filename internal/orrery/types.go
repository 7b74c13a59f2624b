package orrery

import (
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/san-kum/orrery/internal/body"
	"github.com/san-kum/orrery/internal/kepler"
)

const (
	TimeScaleMin = 1e-3
	TimeScaleMax = 1e9

	MinSolverIterations = 1
	MaxSolverIterations = 65535

	DefaultTimeScale        = 1.0
	DefaultSolverIterations = 8
)

type Mode string

const (
	Integrating Mode = "integrating"
	Analytic    Mode = "analytic"
)

// Metric accumulates a scalar over the updates of a system.
type Metric interface {
	Name() string
	Observe(bodies []*body.Body, t time.Time)
	Value() float64
	Reset()
}

// Observer is notified after every update.
type Observer interface {
	OnUpdate(s *System)
}

type ObserverFunc func(s *System)

func (f ObserverFunc) OnUpdate(s *System) { f(s) }

// BodyState is a value copy of one body's public state.
type BodyState struct {
	Name         string          `json:"name"`
	Parent       string          `json:"parent,omitempty"`
	Mass         float64         `json:"mass"`
	Radius       float64         `json:"radius"`
	Position     mgl64.Vec3      `json:"position"`
	Velocity     mgl64.Vec3      `json:"velocity"`
	Acceleration mgl64.Vec3      `json:"acceleration"`
	Elements     kepler.Elements `json:"elements"`
}

// Snapshot is a value copy of a system between updates.
type Snapshot struct {
	Tick             uint64      `json:"tick"`
	Time             time.Time   `json:"time"`
	JulianDate       float64     `json:"jd"`
	Mode             Mode        `json:"mode"`
	TimeScale        float64     `json:"time_scale"`
	SolverIterations int         `json:"solver_iterations"`
	Integrator       string      `json:"integrator"`
	ClockResets      int         `json:"clock_resets"`
	Bodies           []BodyState `json:"bodies"`
}

// Find returns the named body state.
func (s Snapshot) Find(name string) (BodyState, bool) {
	for _, b := range s.Bodies {
		if b.Name == name {
			return b, true
		}
	}
	return BodyState{}, false
}
