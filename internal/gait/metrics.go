package gait

import (
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/banshee-data/gait.report/internal/dsp"
	"github.com/banshee-data/gait.report/internal/units"
)

// cycleMetrics fills the signal-derived fields of a bout's strides: the
// vertical excursion per valid cycle and the step/stride regularity of the
// detrended vertical acceleration. accel and vel are the bout's signals and
// offset is the absolute index of their first sample.
func cycleMetrics(strides []Stride, accel, vel []float64, offset int, dt float64) {
	pos := dsp.CumTrapz(vel, dt)
	n := len(strides)

	for i := range strides {
		s := &strides[i]

		s.DeltaH = math.NaN()
		if s.ValidCycle {
			i1 := s.IC - offset
			i2 := strides[i+1].IC - offset
			s.DeltaH = (floats.Max(pos[i1:i2]) - floats.Min(pos[i1:i2])) * units.StandardGravity
		}

		s.Params[StepRegularityV] = math.NaN()
		if i+1 < n {
			s.Params[StepRegularityV] = regularity(accel, s.IC-offset, strides[i+1].IC-offset)
		}
		s.Params[StrideRegularityV] = math.NaN()
		if i+2 < n {
			s.Params[StrideRegularityV] = regularity(accel, s.IC-offset, strides[i+2].IC-offset)
		}
		s.Params[AutocorrelationSymmetryV] = math.Abs(s.Params[StepRegularityV] - s.Params[StrideRegularityV])
	}
}

// regularity compares accel[i1:i2] with the following window of the same
// length, assuming constant cadence. It is NaN when that window runs past
// the end of the bout.
func regularity(accel []float64, i1, i2 int) float64 {
	i3 := 2*i2 - i1
	if i3 > len(accel) {
		return math.NaN()
	}
	return dsp.Autocov(accel, i1, i2, i3)
}

// ComputeParams derives the timing, spatial and asymmetry parameters of the
// strides of a single bout. Parameters needing strides ahead are NaN for the
// last one or two strides. Spatial parameters need legLength (m); when it is
// nil they are left NaN.
//
// Regularity parameters are owned by the cycle metrics and left untouched.
func ComputeParams(strides []Stride, dt float64, legLength *float64) {
	n := len(strides)
	nan := math.NaN()

	for k := range strides {
		s := &strides[k]
		p := &s.Params

		p[StanceTime] = float64(s.FC-s.IC) * dt
		p[InitialDoubleSupport] = float64(s.FCOppFoot-s.IC) * dt

		p[StepTime], p[TerminalDoubleSupport], p[SingleSupport] = nan, nan, nan
		if k+1 < n {
			next := strides[k+1]
			p[StepTime] = float64(next.IC-s.IC) * dt
			p[TerminalDoubleSupport] = float64(next.FCOppFoot-next.IC) * dt
			p[SingleSupport] = float64(next.IC-s.FCOppFoot) * dt
		}

		p[StrideTime], p[SwingTime] = nan, nan
		if k+2 < n {
			p[StrideTime] = float64(strides[k+2].IC-s.IC) * dt
			p[SwingTime] = float64(strides[k+2].IC-s.FC) * dt
		}

		p[DoubleSupport] = p[InitialDoubleSupport] + p[TerminalDoubleSupport]
		p[Cadence] = 60 / p[StepTime]

		p[StepLength] = nan
		if legLength != nil {
			dh := s.DeltaH
			p[StepLength] = 2 * math.Sqrt(2*(*legLength)*dh-dh*dh)
		}
	}

	for k := range strides {
		p := &strides[k].Params
		p[StrideLength], p[GaitSpeed] = nan, nan
		if legLength != nil && k+1 < n {
			p[StrideLength] = p[StepLength] + strides[k+1].Params[StepLength]
			p[GaitSpeed] = p[StrideLength] / p[StrideTime]
		}
	}

	for k := range strides {
		s := &strides[k]
		for j := 0; j < NumAsymmetryParams; j++ {
			s.Asymmetry[j] = nan
			if k+1 < n {
				s.Asymmetry[j] = math.Abs(strides[k+1].Params[j] - s.Params[j])
			}
		}
	}
}
