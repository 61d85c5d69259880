package dsp

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestButterLowpassSecondOrder(t *testing.T) {
	// scipy.signal.butter(2, 0.5): b = [0.29289322, 0.58578644, 0.29289322], a = [1, 0, 0.17157288]
	sos, err := ButterLowpass(2, 0.5)
	require.NoError(t, err)
	require.Len(t, sos, 1)

	want := Section{0.29289322, 0.58578644, 0.29289322, 1, 0, 0.17157288}
	for i := range want {
		assert.InDelta(t, want[i], sos[0][i], 1e-7, "coefficient %d", i)
	}
}

func TestButterLowpassFourthOrder(t *testing.T) {
	// scipy.signal.butter(4, 0.8):
	// b = [0.43284664, 1.73138658, 2.59707987, 1.73138658, 0.43284664]
	// a = [1, 2.36951301, 2.31398841, 1.05466541, 0.18737949]
	sos, err := ButterLowpass(4, 0.8)
	require.NoError(t, err)
	require.Len(t, sos, 2)

	b := polyMul(sos[0][:3], sos[1][:3])
	a := polyMul(sos[0][3:], sos[1][3:])
	assert.InDeltaSlice(t, []float64{0.43284664, 1.73138658, 2.59707987, 1.73138658, 0.43284664}, b, 1e-8)
	assert.InDeltaSlice(t, []float64{1, 2.36951301, 2.31398841, 1.05466541, 0.18737949}, a, 1e-8)
}

func polyMul(p, q []float64) []float64 {
	out := make([]float64, len(p)+len(q)-1)
	for i, pv := range p {
		for j, qv := range q {
			out[i+j] += pv * qv
		}
	}
	return out
}

func TestButterLowpassUnityDCGain(t *testing.T) {
	for _, order := range []int{1, 2, 3, 4, 5} {
		sos, err := ButterLowpass(order, 0.8)
		require.NoError(t, err)
		assert.Len(t, sos, (order+1)/2)

		gain := 1.0
		for _, s := range sos {
			gain *= (s[0] + s[1] + s[2]) / (s[3] + s[4] + s[5])
		}
		assert.InDelta(t, 1.0, gain, 1e-9, "order %d", order)
	}
}

func TestButterLowpassRejectsBadArguments(t *testing.T) {
	testCases := []struct {
		name  string
		order int
		wn    float64
	}{
		{"zero_order", 0, 0.5},
		{"cutoff_at_nyquist", 4, 1.0},
		{"cutoff_above_nyquist", 4, 1.6},
		{"zero_cutoff", 4, 0},
		{"nan_cutoff", 4, math.NaN()},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ButterLowpass(tc.order, tc.wn)
			assert.Error(t, err)
		})
	}
}

func TestSOSFiltFiltConstant(t *testing.T) {
	sos, err := ButterLowpass(4, 0.8)
	require.NoError(t, err)

	x := make([]float64, 200)
	for i := range x {
		x[i] = 0.98
	}
	y := SOSFiltFilt(sos, x)
	require.Len(t, y, len(x))
	for i, v := range y {
		assert.InDelta(t, 0.98, v, 1e-9, "sample %d", i)
	}
}

func TestSOSFiltFiltMatchesSciPy(t *testing.T) {
	// scipy.signal.sosfiltfilt(butter(4, 0.8, output="sos"), x) with
	// x[i] = sin(0.3*i) + 0.5*cos(1.9*i) + 0.02*i.
	x := make([]float64, 40)
	for i := range x {
		fi := float64(i)
		x[i] = math.Sin(0.3*fi) + 0.5*math.Cos(1.9*fi) + 0.02*fi
	}
	sos, err := ButterLowpass(4, 0.8)
	require.NoError(t, err)

	y := SOSFiltFilt(sos, x)
	require.Len(t, y, len(x))
	want := map[int]float64{
		0:  0.4991326527002694,
		1:  0.1330672193808597,
		5:  0.5842301410761812,
		10: 0.8293900123197794,
		20: 0.5968158588002094,
		30: 1.4628153453486266,
		38: -0.6660056165512283,
		39: 0.1569677436572239,
	}
	for i, w := range want {
		assert.InDelta(t, w, y[i], 1e-9, "sample %d", i)
	}
}

func TestSOSFiltFiltAttenuatesHighFrequency(t *testing.T) {
	// 50 Hz sampling, 2 Hz cutoff: 1 Hz passes, 20 Hz is removed.
	sos, err := ButterLowpass(4, 2*2.0/50.0)
	require.NoError(t, err)

	n := 500
	x := make([]float64, n)
	slow := make([]float64, n)
	for i := range x {
		ti := float64(i) / 50
		slow[i] = math.Sin(2 * math.Pi * 1 * ti)
		x[i] = slow[i] + 0.5*math.Sin(2*math.Pi*20*ti)
	}
	y := SOSFiltFilt(sos, x)
	for i := 100; i < 400; i++ {
		assert.InDelta(t, slow[i], y[i], 0.05, "sample %d", i)
	}
}

func TestSOSFiltFiltShortSignal(t *testing.T) {
	sos, err := ButterLowpass(4, 0.5)
	require.NoError(t, err)

	assert.Nil(t, SOSFiltFilt(sos, nil))
	y := SOSFiltFilt(sos, []float64{1, 2, 3, 4, 5})
	assert.Len(t, y, 5)
}
