package metrics

import (
	"math"
	"sort"
	"time"

	"github.com/san-kum/orrery/internal/body"
)

// Stability is the fraction of observations in which every body stayed
// finite and within a radius of the first body. Bodies that leave are
// remembered with the simulation time they were first seen outside.
type Stability struct {
	radius   float64
	bad, obs int
	escaped  map[string]time.Time
}

func NewStability(radius float64) *Stability {
	return &Stability{radius: radius, escaped: map[string]time.Time{}}
}

func (s *Stability) Name() string { return "stability" }

func (s *Stability) Observe(bodies []*body.Body, at time.Time) {
	s.obs++
	if len(bodies) == 0 {
		return
	}
	center := bodies[0].Position
	ok := true
	for _, b := range bodies {
		r := b.Position.Sub(center).Len()
		if r <= s.radius && !math.IsNaN(r) {
			continue
		}
		ok = false
		if _, seen := s.escaped[b.Name]; !seen {
			s.escaped[b.Name] = at
		}
	}
	if !ok {
		s.bad++
	}
}

func (s *Stability) Value() float64 {
	if s.obs == 0 {
		return 1
	}
	return float64(s.obs-s.bad) / float64(s.obs)
}

// Escaped lists the bodies ever seen outside the radius, by name.
func (s *Stability) Escaped() []string {
	out := make([]string, 0, len(s.escaped))
	for n := range s.escaped {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}

// EscapedAt returns when name first left the radius.
func (s *Stability) EscapedAt(name string) (time.Time, bool) {
	t, ok := s.escaped[name]
	return t, ok
}

func (s *Stability) Reset() {
	s.bad, s.obs = 0, 0
	s.escaped = map[string]time.Time{}
}
