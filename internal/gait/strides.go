package gait

import "math"

// Stride is one accepted initial contact together with the final contacts
// that follow it: the opposite foot's (first) and the same foot's (second).
// Indices are absolute samples. Parameter fields are filled in by the
// metrics stage and are NaN where undefined.
type Stride struct {
	IC        int
	FC        int
	FCOppFoot int

	// ValidCycle is set when the IC two strides ahead falls within the
	// maximum stride time.
	ValidCycle bool

	// DeltaH is the vertical excursion (m) of the lumbar sensor over the
	// step starting at IC, NaN when ValidCycle is false.
	DeltaH float64

	Params    [NumParams]float64
	Asymmetry [NumAsymmetryParams]float64
}

func newStride(ic, fc, fcOpp int) Stride {
	s := Stride{IC: ic, FC: fc, FCOppFoot: fcOpp, DeltaH: math.NaN()}
	for i := range s.Params {
		s.Params[i] = math.NaN()
	}
	for i := range s.Asymmetry {
		s.Asymmetry[i] = math.NaN()
	}
	return s
}

// BuildStrides pairs each IC with the FCs after it. An IC is kept only when
// exactly one FC falls inside the loading window and at least two fall inside
// the stance window; the first is the opposite foot's FC and the second the
// same foot's. ic and fc must each be in time order.
//
// Every stride except the last two is then marked as a valid cycle when the
// IC two strides ahead occurs within cfg.MaxStrideTime.
func BuildStrides(ic, fc []int, dt float64, cfg Config) []Stride {
	loading := cfg.LoadingForwardTime()
	stance := cfg.StanceForwardTime()

	var strides []Stride
	for _, curr := range ic {
		currTime := float64(curr) * dt

		var forward []int
		nLoading, nStance := 0, 0
		for _, f := range fc {
			ft := float64(f) * dt
			if ft <= currTime {
				continue
			}
			forward = append(forward, f)
			if ft < currTime+loading {
				nLoading++
			}
			if ft < currTime+stance {
				nStance++
			}
		}

		if nLoading != 1 || nStance < 2 {
			continue
		}
		strides = append(strides, newStride(curr, forward[1], forward[0]))
	}

	markValidCycles(strides, dt, cfg.MaxStrideTime)
	return strides
}

func markValidCycles(strides []Stride, dt, maxStrideTime float64) {
	for i := range strides {
		strides[i].ValidCycle = i+2 < len(strides) &&
			float64(strides[i+2].IC-strides[i].IC)*dt < maxStrideTime
	}
}

// countValid is the number of valid cycles, reported as the bout's steps.
func countValid(strides []Stride) int {
	n := 0
	for _, s := range strides {
		if s.ValidCycle {
			n++
		}
	}
	return n
}
