package gait

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/banshee-data/gait.report/internal/monitoring"
	"github.com/banshee-data/gait.report/internal/units"
)

// dtSamples is the number of leading timestamps used to estimate the
// sampling period.
const dtSamples = 500

// Window is a half-open sample range [Start, Stop) of a recording.
type Window struct {
	Start int
	Stop  int
}

// Recording is the input of the gait pipeline.
type Recording struct {
	Time  []float64    // unix seconds, uniformly sampled
	Accel [][3]float64 // g
	Gyro  [][3]float64 // deg/s, optional; carried but not used for events

	// Height is the subject height in metres, or leg length when
	// Config.LegLength is set. Nil omits spatial metrics.
	Height *float64

	// Days splits the recording into independently processed windows.
	// Nil treats the whole recording as one day.
	Days []Window
}

// BoutTrace exposes the intermediate signals of one processed bout.
type BoutTrace struct {
	Day   int
	Bout  int
	Start int // absolute index of the first sample
	DT    float64

	Detrended []float64
	Filtered  []float64
	Velocity  []float64

	Events  Events
	Strides []Stride
}

// BoutObserver receives a trace of every processed bout. It is called
// synchronously from Predict and must not retain the slices past the call
// if it mutates them.
type BoutObserver interface {
	ObserveBout(trace BoutTrace)
}

// Gait runs the gait pipeline.
type Gait struct {
	cfg        Config
	classifier Classifier
	observer   BoutObserver
}

// New creates a gait processor using classifier to find walking samples.
func New(cfg Config, classifier Classifier) *Gait {
	return &Gait{cfg: cfg, classifier: classifier}
}

// SetObserver installs a bout observer. Passing nil removes it.
func (g *Gait) SetObserver(o BoutObserver) {
	g.observer = o
}

// Config returns the processor configuration.
func (g *Gait) Config() Config { return g.cfg }

// Predict extracts gait events and metrics from rec. Bouts within a day and
// days within the recording are processed in order. Any input, configuration
// or segmentation error aborts the whole recording.
func (g *Gait) Predict(rec Recording) (*Result, error) {
	if err := g.cfg.Validate(); err != nil {
		return nil, err
	}
	if g.classifier == nil {
		return nil, fmt.Errorf("%w: no gait classifier", ErrInvalidConfig)
	}
	if err := rec.validate(); err != nil {
		return nil, err
	}

	dt := samplingPeriod(rec.Time)
	if !(dt > 0) || math.IsInf(dt, 0) {
		return nil, fmt.Errorf("%w: sampling period must be positive, got %v", ErrInvalidInput, dt)
	}

	legLength := g.legLength(rec.Height)

	labels, err := g.classifier.Classify(rec.Accel, 1/dt)
	if err != nil {
		return nil, fmt.Errorf("classify gait: %w", err)
	}
	if len(labels) != len(rec.Time) {
		return nil, fmt.Errorf("%w: %d gait labels for %d samples", ErrInvalidInput, len(labels), len(rec.Time))
	}

	vAxis, polarity := verticalAxis(rec.Accel)
	det, err := newEventDetector(g.cfg, dt, polarity)
	if err != nil {
		return nil, err
	}

	days := rec.Days
	if days == nil {
		days = []Window{{Start: 0, Stop: len(rec.Time)}}
	}

	res := &Result{DT: dt, VerticalAxis: vAxis}
	for iday, day := range days {
		bouts, err := SegmentBouts(labels[day.Start:day.Stop], dt, g.cfg.MinBoutTime, g.cfg.MaxBoutSeparationTime)
		if err != nil {
			return nil, fmt.Errorf("day %d: %w", iday+1, err)
		}

		for ibout, b := range bouts {
			start, stop := day.Start+b.Start, day.Start+b.Stop

			vert := make([]float64, stop-start)
			for i := range vert {
				vert[i] = rec.Accel[start+i][vAxis]
			}

			sig, ev, err := det.detect(vert, start)
			if err != nil {
				return nil, fmt.Errorf("day %d bout %d: %w", iday+1, ibout+1, err)
			}

			strides := BuildStrides(ev.IC, ev.FC, dt, g.cfg)
			cycleMetrics(strides, sig.Detrended, sig.Velocity, start, dt)
			ComputeParams(strides, dt, legLength)

			br := BoutResult{
				Day:       iday + 1,
				Bout:      ibout + 1,
				Start:     start,
				Stop:      stop,
				StartTime: rec.Time[start],
				Duration:  float64(b.Len()) * dt,
				Steps:     countValid(strides),
				Events:    ev,
				Strides:   strides,
			}
			res.Bouts = append(res.Bouts, br)

			if g.observer != nil {
				g.observer.ObserveBout(BoutTrace{
					Day:       br.Day,
					Bout:      br.Bout,
					Start:     start,
					DT:        dt,
					Detrended: sig.Detrended,
					Filtered:  sig.Filtered,
					Velocity:  sig.Velocity,
					Events:    ev,
					Strides:   strides,
				})
			}
		}
	}

	monitoring.Logf("gait: %d day(s), %d bout(s), %d stride(s) at %.1f Hz",
		len(days), len(res.Bouts), res.NumStrides(), 1/dt)
	return res, nil
}

// legLength resolves the leg length used for spatial metrics, or nil when
// no height was supplied.
func (g *Gait) legLength(height *float64) *float64 {
	if height == nil {
		monitoring.Warnf("height not provided, not computing spatial metrics")
		return nil
	}
	l := *height
	if !g.cfg.LegLength {
		l = units.LegLength(*height, g.cfg.HeightFactor)
	}
	return &l
}

func (rec Recording) validate() error {
	n := len(rec.Time)
	if n < 2 {
		return fmt.Errorf("%w: need at least 2 timestamps, got %d", ErrInvalidInput, n)
	}
	if len(rec.Accel) != n {
		return fmt.Errorf("%w: %d acceleration samples for %d timestamps", ErrInvalidInput, len(rec.Accel), n)
	}
	if rec.Gyro != nil && len(rec.Gyro) != n {
		return fmt.Errorf("%w: %d gyroscope samples for %d timestamps", ErrInvalidInput, len(rec.Gyro), n)
	}
	if rec.Height != nil && !(*rec.Height > 0) {
		return fmt.Errorf("%w: height must be positive, got %v", ErrInvalidInput, *rec.Height)
	}
	for i, d := range rec.Days {
		if d.Start < 0 || d.Stop > n || d.Start >= d.Stop {
			return fmt.Errorf("%w: day %d window [%d, %d) outside [0, %d)", ErrInvalidInput, i+1, d.Start, d.Stop, n)
		}
	}
	return nil
}

// samplingPeriod is the mean timestamp delta over the first dtSamples
// samples.
func samplingPeriod(t []float64) float64 {
	m := min(len(t), dtSamples)
	diffs := make([]float64, m-1)
	for i := range diffs {
		diffs[i] = t[i+1] - t[i]
	}
	return stat.Mean(diffs, nil)
}

// verticalAxis picks the axis with the largest absolute mean acceleration
// and returns it with minus the sign of that mean.
func verticalAxis(accel [][3]float64) (int, float64) {
	var mean [3]float64
	for _, a := range accel {
		for j := range mean {
			mean[j] += a[j]
		}
	}
	axis := 0
	for j := range mean {
		mean[j] /= float64(len(accel))
		if math.Abs(mean[j]) > math.Abs(mean[axis]) {
			axis = j
		}
	}
	if mean[axis] < 0 {
		return axis, 1
	}
	return axis, -1
}
