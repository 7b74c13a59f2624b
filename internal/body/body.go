// Package body defines a simulated celestial body: its physical constants,
// its kinematic state and where its orbital elements come from.
package body

import (
	"errors"
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/san-kum/orrery/internal/kepler"
)

var ErrInvalidMass = errors.New("body: mass must be positive")

// Physical holds constants that never change during a simulation.
type Physical struct {
	Mass               float64 `json:"mass"` // kg
	EquatorialRadius   float64 `json:"equatorial_radius,omitempty"`
	PolarRadius        float64 `json:"polar_radius,omitempty"`
	Radius             float64 `json:"radius"` // mean, m
	Flattening         float64 `json:"flattening,omitempty"`
	SurfaceArea        float64 `json:"surface_area,omitempty"` // m²
	Volume             float64 `json:"volume,omitempty"`       // m³
	Density            float64 `json:"density,omitempty"`      // kg/m³
	SurfaceGravity     float64 `json:"surface_gravity,omitempty"`
	EscapeVelocity     float64 `json:"escape_velocity,omitempty"`
	EquatorialVelocity float64 `json:"equatorial_velocity,omitempty"`
}

// Body is a point mass with kinematic state. Position, Velocity,
// Acceleration and Force are mutated by the simulation that owns the body
// and may be read freely between updates.
type Body struct {
	Name        string
	Description string
	Physical

	Position     mgl64.Vec3
	Velocity     mgl64.Vec3
	Acceleration mgl64.Vec3
	Force        mgl64.Vec3

	// Parent is the central body the elements are relative to. Nil means
	// the Sun at the origin.
	Parent *Body

	orbit    kepler.Elements
	current  kepler.Elements
	provider kepler.Provider
}

type Option func(*Body)

func WithDescription(d string) Option {
	return func(b *Body) { b.Description = d }
}

// WithProvider makes the body's elements a function of date instead of the
// fixed J2000 set.
func WithProvider(p kepler.Provider) Option {
	return func(b *Body) { b.provider = p }
}

func WithParent(parent *Body) Option {
	return func(b *Body) { b.Parent = parent }
}

// New creates a body with the given constants and J2000 orbit data.
func New(name string, phys Physical, orbit kepler.Elements, opts ...Option) (*Body, error) {
	if !(phys.Mass > 0) {
		return nil, fmt.Errorf("%w: %s has mass %g", ErrInvalidMass, name, phys.Mass)
	}

	b := &Body{
		Name:     name,
		Physical: phys,
		orbit:    orbit,
		current:  orbit,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b, nil
}

// OrbitData returns the fixed reference elements.
func (b *Body) OrbitData() kepler.Elements { return b.orbit }

// CurrentOrbitData returns the elements from the most recent evaluation.
func (b *Body) CurrentOrbitData() kepler.Elements { return b.current }

func (b *Body) HasProvider() bool { return b.provider != nil }

func (b *Body) OrbitalSpeed() float64 { return b.orbit.MeanSpeed }

// CentralGM returns the gravitational parameter the body orbits.
func (b *Body) CentralGM() float64 {
	if b.Parent != nil {
		return kepler.G * b.Parent.Mass
	}
	return kepler.SunGM
}

// ElementsAt evaluates the body's elements at jd and stores them as the
// current orbit data.
func (b *Body) ElementsAt(jd float64) kepler.Elements {
	if b.provider != nil {
		b.current = b.provider(jd)
	} else {
		b.current = b.orbit
	}
	return b.current
}

// StateAt returns the analytic heliocentric state at jd, including the
// parent's own motion for satellites.
func (b *Body) StateAt(jd float64) kepler.StateVector {
	sv := kepler.StateFromElements(b.ElementsAt(jd), b.CentralGM())
	if b.Parent != nil {
		ps := b.Parent.StateAt(jd)
		sv.Position = sv.Position.Add(ps.Position)
		sv.Velocity = sv.Velocity.Add(ps.Velocity)
	}
	return sv
}

// AddForce accumulates f into the force for the current step.
func (b *Body) AddForce(f mgl64.Vec3) {
	b.Force = b.Force.Add(f)
}

func (b *Body) ResetForce() {
	b.Force = mgl64.Vec3{}
}

// KineticEnergy returns ½mv².
func (b *Body) KineticEnergy() float64 {
	return 0.5 * b.Mass * b.Velocity.LenSqr()
}

// Momentum returns m·v.
func (b *Body) Momentum() mgl64.Vec3 {
	return b.Velocity.Mul(b.Mass)
}

// OrbitPath samples the current orbit in render units, relative to the
// parent's position when the body has one.
func (b *Body) OrbitPath(segments int) []mgl32.Vec3 {
	verts := kepler.OrbitVertices(b.current, segments)
	if b.Parent == nil {
		return verts
	}
	off := b.Parent.Position.Mul(kepler.RenderScale)
	for i := range verts {
		verts[i][0] += float32(off[0])
		verts[i][1] += float32(off[1])
		verts[i][2] += float32(off[2])
	}
	return verts
}

func (b *Body) String() string {
	return fmt.Sprintf("%s(m=%.4g kg, r=%.4g m)", b.Name, b.Mass, b.Position.Len())
}
