package dsp

import (
	"math"
	"math/cmplx"

	"gonum.org/v1/gonum/dsp/fourier"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// DominantFrequency estimates the frequency (Hz) of the largest bin in the
// magnitude spectrum of x sampled every dt seconds. The DC bin is included,
// so callers should pass zero-mean signals.
func DominantFrequency(x []float64, dt float64) float64 {
	if len(x) < 2 {
		return 0
	}
	coeffs := fourier.NewFFT(len(x)).Coefficients(nil, x)
	mags := make([]float64, len(coeffs))
	for i, c := range coeffs {
		mags[i] = cmplx.Abs(c)
	}
	return float64(floats.MaxIdx(mags)) / float64(len(x)) / dt
}

// PopStdDev is the population (ddof=0) standard deviation of x.
func PopStdDev(x []float64) float64 {
	if len(x) == 0 {
		return math.NaN()
	}
	_, sd := stat.PopMeanStdDev(x, nil)
	return sd
}

// Autocov is the normalized autocovariance between x[i1:i2] and x[i2:i3].
// The two windows must be the same length with at least two samples.
// NaN is returned when the windows are invalid or either one is flat.
func Autocov(x []float64, i1, i2, i3 int) float64 {
	if i1 < 0 || i3 > len(x) || i2-i1 < 2 || i3-i2 != i2-i1 {
		return math.NaN()
	}
	a, b := x[i1:i2], x[i2:i3]
	sa, sb := stat.StdDev(a, nil), stat.StdDev(b, nil)
	if sa == 0 || sb == 0 {
		return math.NaN()
	}
	return stat.Covariance(a, b, nil) / (sa * sb)
}
