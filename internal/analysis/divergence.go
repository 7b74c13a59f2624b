package analysis

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Separation returns |a_i - b_i| for the common length of both tracks.
func Separation(a, b []mgl64.Vec3) []float64 {
	n := min(len(a), len(b))
	out := make([]float64, n)
	for i := 0; i < n; i++ {
		out[i] = a[i].Sub(b[i]).Len()
	}
	return out
}

// Divergence fits ln|a-b| against time by least squares and returns the
// slope, the exponential growth rate of the separation per unit time.
// Samples with zero separation are skipped. A positive rate means the two
// tracks drift apart exponentially.
func Divergence(a, b []mgl64.Vec3, times []float64) float64 {
	sep := Separation(a, b)

	var sx, sy, sxx, sxy float64
	count := 0
	for i, d := range sep {
		if i >= len(times) || d == 0 {
			continue
		}
		x, y := times[i], math.Log(d)
		sx += x
		sy += y
		sxx += x * x
		sxy += x * y
		count++
	}

	if count < 2 {
		return 0
	}
	n := float64(count)
	den := n*sxx - sx*sx
	if den == 0 {
		return 0
	}
	return (n*sxy - sx*sy) / den
}
