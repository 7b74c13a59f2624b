package solar

import (
	"errors"
	"fmt"
	"sort"

	"github.com/san-kum/orrery/internal/body"
	"github.com/san-kum/orrery/internal/orrery"
)

var ErrUnknownPreset = errors.New("solar: unknown preset")

type Placement string

const (
	// Analytic seeds every body from its element model at the system's
	// current date.
	Analytic Placement = "analytic"
	// Default puts every orbiting body at perihelion on -Y with its mean
	// orbital speed along +X.
	Default Placement = "default"
)

var (
	Classic = []string{"sun", "mercury", "venus", "earth", "mars", "jupiter", "saturn", "uranus", "neptune", "pluto"}
	Inner   = []string{"sun", "mercury", "venus", "earth", "mars"}
	Outer   = []string{"sun", "jupiter", "saturn", "uranus", "neptune", "pluto"}
)

var presets = map[string][]string{
	"classic":    Classic,
	"inner":      Inner,
	"outer":      Outer,
	"sun-earth":  {"sun", "earth"},
	"earth-moon": {"sun", "earth", "moon"},
	"full":       append(append([]string{}, Classic...), "moon"),
}

// Preset returns the body names of a named set.
func Preset(name string) ([]string, error) {
	names, ok := presets[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownPreset, name)
	}
	return append([]string(nil), names...), nil
}

func PresetNames() []string {
	out := make([]string, 0, len(presets))
	for n := range presets {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}

// Build creates bodies for the given names in order. A satellite must be
// listed after its parent.
func Build(names []string) ([]*body.Body, error) {
	built := make(map[string]*body.Body, len(names))
	out := make([]*body.Body, 0, len(names))

	for _, name := range names {
		e, ok := Lookup(name)
		if !ok {
			return nil, fmt.Errorf("%w: %s", orrery.ErrUnknownBody, name)
		}

		opts := []body.Option{body.WithDescription(e.Description)}
		if e.Model != nil {
			opts = append(opts, body.WithProvider(e.Model.Provider(e.Orbit)))
		}
		if e.Parent != "" {
			parent, ok := built[e.Parent]
			if !ok {
				return nil, fmt.Errorf("solar: %s needs %s loaded before it", name, e.Parent)
			}
			opts = append(opts, body.WithParent(parent))
		}

		b, err := body.New(e.Name, e.Physical, e.Orbit, opts...)
		if err != nil {
			return nil, err
		}
		built[name] = b
		out = append(out, b)
	}
	return out, nil
}

// Load adds the named bodies to sys and places them.
func Load(sys *orrery.System, names []string, placement Placement) error {
	if placement != Analytic && placement != Default {
		return fmt.Errorf("solar: unknown placement %q", placement)
	}

	bodies, err := Build(names)
	if err != nil {
		return err
	}

	for _, b := range bodies {
		switch {
		case placement == Analytic || b.OrbitData().SemiMajorAxis == 0:
			err = sys.AddBody(b)
		default:
			err = sys.AddBodyAtDefaultPosition(b)
			if err == nil && b.Parent != nil {
				b.Position = b.Position.Add(b.Parent.Position)
				b.Velocity = b.Velocity.Add(b.Parent.Velocity)
			}
		}
		if err != nil {
			return err
		}
	}

	if placement == Analytic {
		sys.RecalculatePositions()
	}
	return nil
}

// LoadSolarSystem loads the Sun, the eight planets and Pluto at their
// analytic positions for the system's current date.
func LoadSolarSystem(sys *orrery.System) error {
	return Load(sys, Classic, Analytic)
}
