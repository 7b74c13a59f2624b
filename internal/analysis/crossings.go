package analysis

import (
	"errors"

	"github.com/go-gl/mathgl/mgl64"
)

var ErrTooFewCrossings = errors.New("analysis: fewer than two section crossings")

// Crossings returns the interpolated times at which a prograde track
// passes from y<0 to y>=0 while x>0.
func Crossings(track []mgl64.Vec3, times []float64) []float64 {
	n := min(len(track), len(times))
	var out []float64

	for i := 1; i < n; i++ {
		prev, curr := track[i-1], track[i]
		if !(prev.Y() < 0 && curr.Y() >= 0) {
			continue
		}
		frac := -prev.Y() / (curr.Y() - prev.Y())
		if prev.X()+frac*(curr.X()-prev.X()) <= 0 {
			continue
		}
		out = append(out, times[i-1]+frac*(times[i]-times[i-1]))
	}
	return out
}

// SectionPeriod is the mean interval between successive crossings.
func SectionPeriod(track []mgl64.Vec3, times []float64) (float64, error) {
	c := Crossings(track, times)
	if len(c) < 2 {
		return 0, ErrTooFewCrossings
	}
	return (c[len(c)-1] - c[0]) / float64(len(c)-1), nil
}
