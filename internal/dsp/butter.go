package dsp

import (
	"fmt"
	"math"
	"math/cmplx"
)

// Section is one biquad in SciPy "sos" layout: b0, b1, b2, a0, a1, a2.
// a0 is always 1.
type Section [6]float64

// bilinearRate is twice the design sample rate. Designs use a normalized
// sample rate of 2 so that a cutoff of 1.0 is Nyquist.
const bilinearRate = 4.0

// ButterLowpass designs a digital Butterworth low-pass filter of the given
// order. wn is the cutoff normalized to Nyquist and must lie in (0, 1).
func ButterLowpass(order int, wn float64) ([]Section, error) {
	if order < 1 {
		return nil, fmt.Errorf("filter order must be >= 1, got %d", order)
	}
	if !(wn > 0 && wn < 1) {
		return nil, fmt.Errorf("normalized cutoff must be in (0, 1), got %f", wn)
	}

	warped := bilinearRate * math.Tan(math.Pi*wn/2)
	fs2 := complex(bilinearRate, 0)

	analog := make([]complex128, order)
	digital := make([]complex128, order)
	den := complex(1, 0)
	for k := 0; k < order; k++ {
		theta := math.Pi * float64(2*(k+1)+order-1) / float64(2*order)
		p := complex(warped, 0) * cmplx.Exp(complex(0, theta))
		analog[k] = p
		digital[k] = (fs2 + p) / (fs2 - p)
		den *= fs2 - p
	}
	gain := math.Pow(warped, float64(order)) * real(1/den)

	sections := make([]Section, 0, (order+1)/2)
	// Poles k and order-1-k are conjugates; an odd order leaves one real pole.
	if order%2 == 1 {
		p := real(digital[order/2])
		sections = append(sections, Section{1, 1, 0, 1, -p, 0})
	}
	for k := 0; k < order/2; k++ {
		p := digital[k]
		sections = append(sections, Section{1, 2, 1, 1, -2 * real(p), real(p)*real(p) + imag(p)*imag(p)})
	}
	for i := 0; i < 3; i++ {
		sections[0][i] *= gain
	}
	return sections, nil
}

// sosSteadyState returns the per-section delay states for a unit step input
// at steady state, matching scipy.signal.sosfilt_zi.
func sosSteadyState(sos []Section) [][2]float64 {
	zi := make([][2]float64, len(sos))
	scale := 1.0
	for i, s := range sos {
		g := (s[0] + s[1] + s[2]) / (s[3] + s[4] + s[5])
		z1 := s[2] - s[5]*g
		z0 := s[1] - s[4]*g + z1
		zi[i] = [2]float64{scale * z0, scale * z1}
		scale *= g
	}
	return zi
}

// SOSFilt runs x through the cascaded sections in transposed direct form II,
// starting from the delay state zi scaled by x0.
func SOSFilt(sos []Section, x []float64, zi [][2]float64, x0 float64) []float64 {
	state := make([][2]float64, len(sos))
	for i := range state {
		if zi != nil {
			state[i] = [2]float64{zi[i][0] * x0, zi[i][1] * x0}
		}
	}
	out := make([]float64, len(x))
	for n, v := range x {
		for i, s := range sos {
			y := s[0]*v + state[i][0]
			state[i][0] = s[1]*v - s[4]*y + state[i][1]
			state[i][1] = s[2]*v - s[5]*y
			v = y
		}
		out[n] = v
	}
	return out
}

// SOSFiltFilt applies the sections forward and backward for zero phase
// distortion. Edges are handled with odd extension and steady-state initial
// conditions, as scipy.signal.sosfiltfilt does. Signals shorter than the
// default pad length are padded with len(x)-1 samples instead.
func SOSFiltFilt(sos []Section, x []float64) []float64 {
	n := len(x)
	if n == 0 {
		return nil
	}

	zb, za := 0, 0
	for _, s := range sos {
		if s[2] == 0 {
			zb++
		}
		if s[5] == 0 {
			za++
		}
	}
	padlen := 3 * (2*len(sos) + 1 - min(zb, za))
	if padlen > n-1 {
		padlen = n - 1
	}

	ext := make([]float64, 0, n+2*padlen)
	for i := padlen; i >= 1; i-- {
		ext = append(ext, 2*x[0]-x[i])
	}
	ext = append(ext, x...)
	for i := n - 2; i >= n-1-padlen; i-- {
		ext = append(ext, 2*x[n-1]-x[i])
	}

	zi := sosSteadyState(sos)
	y := SOSFilt(sos, ext, zi, ext[0])
	reverse(y)
	y = SOSFilt(sos, y, zi, y[0])
	reverse(y)

	out := make([]float64, n)
	copy(out, y[padlen:padlen+n])
	return out
}

func reverse(x []float64) {
	for i, j := 0, len(x)-1; i < j; i, j = i+1, j-1 {
		x[i], x[j] = x[j], x[i]
	}
}
