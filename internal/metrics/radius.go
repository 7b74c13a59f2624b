package metrics

import (
	"math"
	"time"

	"github.com/san-kum/orrery/internal/body"
)

// RadiusDrift tracks the distance between two named bodies and reports
// the largest relative departure from the first observed distance. For a
// circular orbit this is the integrator's radial error.
type RadiusDrift struct {
	target, center string
	initial        float64
	max            float64
	last           float64
}

func NewRadiusDrift(target, center string) *RadiusDrift {
	return &RadiusDrift{target: target, center: center}
}

func (r *RadiusDrift) Name() string { return "radius_drift_" + r.target }

func (r *RadiusDrift) Observe(bodies []*body.Body, _ time.Time) {
	var tb, cb *body.Body
	for _, b := range bodies {
		switch b.Name {
		case r.target:
			tb = b
		case r.center:
			cb = b
		}
	}
	if tb == nil || cb == nil {
		return
	}

	d := tb.Position.Sub(cb.Position).Len()
	r.last = d
	if r.initial == 0 {
		r.initial = d
		return
	}
	r.max = math.Max(r.max, math.Abs(d-r.initial)/r.initial)
}

func (r *RadiusDrift) Value() float64 { return r.max }

// Distance returns the most recently observed separation.
func (r *RadiusDrift) Distance() float64 { return r.last }

func (r *RadiusDrift) Reset() {
	r.initial = 0
	r.max = 0
	r.last = 0
}
