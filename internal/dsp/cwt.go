package dsp

import (
	"fmt"
	"math"
)

// The gaus1 mother wavelet is sampled on [-5, 5] with 2^10 points and
// integrated once, mirroring pywt.integrate_wavelet(precision=10).
const (
	gaus1Lower  = -5.0
	gaus1Upper  = 5.0
	gaus1Points = 1 << 10
)

var gaus1Integral, gaus1Step = integrateGaus1()

func integrateGaus1() ([]float64, float64) {
	step := (gaus1Upper - gaus1Lower) / float64(gaus1Points-1)
	// The grid spacing is taken from the first two samples, not the nominal
	// step, so that kernel indices land where PyWavelets puts them.
	dx := (gaus1Lower + step) - gaus1Lower
	norm := math.Sqrt(math.Sqrt(math.Pi / 2))
	out := make([]float64, gaus1Points)
	var acc float64
	for i := range out {
		x := gaus1Lower + float64(i)*step
		acc += -2 * x * math.Exp(-x*x) / norm
		out[i] = acc * dx
	}
	return out, dx
}

// CWTGaus1 returns the continuous wavelet transform of data at a single
// scale using the first derivative of a Gaussian. The output has the same
// length as data. Up to sign and scaling it is the derivative of data
// smoothed at the given scale.
func CWTGaus1(data []float64, scale float64) ([]float64, error) {
	if !(scale > 0) || math.IsInf(scale, 0) {
		return nil, fmt.Errorf("wavelet scale must be positive and finite, got %f", scale)
	}
	if len(data) == 0 {
		return nil, nil
	}

	count := int(math.Ceil(scale*(gaus1Upper-gaus1Lower) + 1))
	kernel := make([]float64, 0, count)
	for k := 0; k < count; k++ {
		j := int(float64(k) / (scale * gaus1Step))
		if j >= len(gaus1Integral) {
			break
		}
		kernel = append(kernel, gaus1Integral[j])
	}
	reverse(kernel)

	conv := convolve(data, kernel)
	coef := make([]float64, len(conv)-1)
	root := math.Sqrt(scale)
	for i := range coef {
		coef[i] = -root * (conv[i+1] - conv[i])
	}

	d := float64(len(coef)-len(data)) / 2
	if d <= 0 {
		return coef, nil
	}
	lo := int(math.Floor(d))
	hi := len(coef) - int(math.Ceil(d))
	out := make([]float64, hi-lo)
	copy(out, coef[lo:hi])
	return out, nil
}

// convolve is the full discrete linear convolution of a and b.
func convolve(a, b []float64) []float64 {
	if len(a) == 0 || len(b) == 0 {
		return nil
	}
	out := make([]float64, len(a)+len(b)-1)
	for i, av := range a {
		for j, bv := range b {
			out[i+j] += av * bv
		}
	}
	return out
}

// ScaleForFrequency maps a target frequency (Hz) to the gaus1 wavelet scale
// at sampling period dt: round(0.4 / (2 * freq * dt)) - 1. The 0.4 term is
// the gaus1 centre frequency.
func ScaleForFrequency(freq, dt float64) float64 {
	return math.RoundToEven(0.4/(2*freq*dt)) - 1
}
