package analysis

import (
	"errors"
	"math/cmplx"

	"github.com/mjibson/go-dsp/fft"
)

var (
	ErrShortSignal = errors.New("analysis: signal too short")
	ErrFlatSignal  = errors.New("analysis: signal has no periodic component")
)

// PowerSpectrum returns |X_k|²/n for k in [0, n/2] after removing the mean.
func PowerSpectrum(data []float64) []float64 {
	n := len(data)
	if n == 0 {
		return nil
	}

	mean := 0.0
	for _, v := range data {
		mean += v
	}
	mean /= float64(n)

	centered := make([]float64, n)
	for i, v := range data {
		centered[i] = v - mean
	}

	bins := fft.FFTReal(centered)
	ps := make([]float64, n/2+1)
	for k := range ps {
		a := cmplx.Abs(bins[k])
		ps[k] = a * a / float64(n)
	}
	return ps
}

// DominantPeriod returns the period of the strongest non-constant
// frequency in data sampled every dt, refined by parabolic interpolation
// between neighbouring bins.
func DominantPeriod(data []float64, dt float64) (float64, error) {
	n := len(data)
	if n < 4 {
		return 0, ErrShortSignal
	}

	ps := PowerSpectrum(data)
	peak := 1
	for k := 2; k < len(ps); k++ {
		if ps[k] > ps[peak] {
			peak = k
		}
	}
	if ps[peak] == 0 {
		return 0, ErrFlatSignal
	}

	bin := float64(peak)
	if peak+1 < len(ps) {
		a, b, c := ps[peak-1], ps[peak], ps[peak+1]
		if den := a - 2*b + c; den != 0 {
			bin += 0.5 * (a - c) / den
		}
	}
	return float64(n) * dt / bin, nil
}
