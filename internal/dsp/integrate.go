package dsp

import (
	"gonum.org/v1/gonum/stat"
)

// Detrend removes the least-squares line from x.
func Detrend(x []float64) []float64 {
	out := make([]float64, len(x))
	if len(x) < 2 {
		return out
	}
	idx := make([]float64, len(x))
	for i := range idx {
		idx[i] = float64(i)
	}
	alpha, beta := stat.LinearRegression(idx, x, nil, false)
	for i, v := range x {
		out[i] = v - (alpha + beta*idx[i])
	}
	return out
}

// CumTrapz integrates x with the trapezoid rule using spacing dx. The first
// output sample is zero, so the result has the same length as x.
func CumTrapz(x []float64, dx float64) []float64 {
	out := make([]float64, len(x))
	for i := 1; i < len(x); i++ {
		out[i] = out[i-1] + dx*(x[i]+x[i-1])/2
	}
	return out
}
