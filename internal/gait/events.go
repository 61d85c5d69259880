package gait

import (
	"fmt"
	"math"

	"github.com/banshee-data/gait.report/internal/dsp"
)

// Wavelet scale relations from Caramia et al. (2019). The baseline scale
// targets 1.25 Hz; the adaptive relations map the estimated step frequency
// to the optimal IC and FC detection frequencies.
const (
	baselineFrequency = 1.25
	icFreqSlope       = 0.69
	icFreqIntercept   = 0.34
	fcFreqSlope       = 3.6
	fcFreqIntercept   = -4.5
)

// Events holds the contacts detected in one bout as absolute sample
// indices. Each list is in time order; the two lists are independent.
type Events struct {
	IC []int
	FC []int

	ICScale float64
	FCScale float64
	// StepFrequency is the estimated step frequency in Hz, or NaN when the
	// adaptive scale relation is disabled.
	StepFrequency float64
}

// boutSignals are the intermediate vertical signals of one bout.
type boutSignals struct {
	Detrended []float64 // detrended acceleration, g
	Filtered  []float64 // low-pass filtered acceleration, g
	Velocity  []float64 // integrated filtered acceleration, g*s
}

// eventDetector carries the per-recording state of event detection: the
// filter design, the baseline scale and the peak polarity.
type eventDetector struct {
	cfg       Config
	dt        float64
	sos       []dsp.Section
	baseScale float64
	polarity  float64
}

// newEventDetector prepares detection for a recording sampled every dt
// seconds. polarity is the sign applied to wavelet coefficients before peak
// picking so that peaks always correspond to heel-strike deceleration.
func newEventDetector(cfg Config, dt, polarity float64) (*eventDetector, error) {
	sos, err := dsp.ButterLowpass(cfg.FilterOrder, 2*cfg.FilterCutoff*dt)
	if err != nil {
		return nil, fmt.Errorf("%w: low-pass filter at %.2f Hz with %.2f Hz sampling: %v",
			ErrInvalidConfig, cfg.FilterCutoff, 1/dt, err)
	}
	base := dsp.ScaleForFrequency(baselineFrequency, dt)
	if base < 1 {
		return nil, fmt.Errorf("%w: sampling rate %.2f Hz too low for wavelet event detection",
			ErrInvalidInput, 1/dt)
	}
	return &eventDetector{cfg: cfg, dt: dt, sos: sos, baseScale: base, polarity: polarity}, nil
}

// DetectEvents finds initial and final contacts in one bout of raw vertical
// acceleration. offset is the absolute index of the bout's first sample and
// polarity is minus the sign of the recording's mean vertical acceleration.
func DetectEvents(vertAccel []float64, offset int, dt, polarity float64, cfg Config) (Events, error) {
	det, err := newEventDetector(cfg, dt, polarity)
	if err != nil {
		return Events{}, err
	}
	_, ev, err := det.detect(vertAccel, offset)
	return ev, err
}

func (d *eventDetector) detect(vertAccel []float64, offset int) (boutSignals, Events, error) {
	var sig boutSignals
	sig.Detrended = dsp.Detrend(vertAccel)
	sig.Filtered = dsp.SOSFiltFilt(d.sos, sig.Detrended)
	sig.Velocity = dsp.CumTrapz(sig.Filtered, d.dt)

	ev := Events{ICScale: d.baseScale, FCScale: d.baseScale, StepFrequency: math.NaN()}
	if d.cfg.UseCWTScaleRelation {
		coef, err := dsp.CWTGaus1(sig.Velocity, d.baseScale)
		if err != nil {
			return sig, ev, err
		}
		ev.StepFrequency = dsp.DominantFrequency(coef, d.dt)
		ev.ICScale = d.adaptiveScale(icFreqSlope*ev.StepFrequency + icFreqIntercept)
		ev.FCScale = d.adaptiveScale(fcFreqSlope*ev.StepFrequency + fcFreqIntercept)
	}

	coefIC, err := dsp.CWTGaus1(sig.Velocity, ev.ICScale)
	if err != nil {
		return sig, ev, err
	}
	ev.IC = d.peaks(coefIC, offset)

	coefFC, err := dsp.CWTGaus1(coefIC, ev.FCScale)
	if err != nil {
		return sig, ev, err
	}
	ev.FC = d.peaks(coefFC, offset)

	return sig, ev, nil
}

// adaptiveScale converts a target frequency to a scale, falling back to the
// baseline scale when the frequency relation yields no usable scale (for
// example a negative FC frequency at very slow cadence).
func (d *eventDetector) adaptiveScale(freq float64) float64 {
	if !(freq > 0) {
		return d.baseScale
	}
	s := dsp.ScaleForFrequency(freq, d.dt)
	if s < 1 || math.IsInf(s, 0) || math.IsNaN(s) {
		return d.baseScale
	}
	return s
}

// peaks picks coefficient extrema in the heel-strike direction whose
// prominence is at least half the coefficients' standard deviation.
func (d *eventDetector) peaks(coef []float64, offset int) []int {
	if len(coef) == 0 {
		return nil
	}
	signed := make([]float64, len(coef))
	for i, v := range coef {
		signed[i] = d.polarity * v
	}
	idx := dsp.FindPeaksProminence(signed, 0.5*dsp.PopStdDev(coef))
	for i := range idx {
		idx[i] += offset
	}
	return idx
}
