package gait

// Param identifies a per-stride gait parameter.
type Param int

// The first NumAsymmetryParams parameters also have an asymmetry column.
const (
	StrideTime Param = iota
	StanceTime
	SwingTime
	StepTime
	InitialDoubleSupport
	TerminalDoubleSupport
	DoubleSupport
	SingleSupport
	StepLength
	StrideLength
	GaitSpeed
	Cadence
	StepRegularityV
	StrideRegularityV
	AutocorrelationSymmetryV

	NumParams
)

// NumAsymmetryParams is the number of basic parameters with an asymmetry
// counterpart: StrideTime through StrideLength.
const NumAsymmetryParams = int(StrideLength) + 1

var paramNames = [NumParams]string{
	StrideTime:               "stride time",
	StanceTime:               "stance time",
	SwingTime:                "swing time",
	StepTime:                 "step time",
	InitialDoubleSupport:     "initial double support",
	TerminalDoubleSupport:    "terminal double support",
	DoubleSupport:            "double support",
	SingleSupport:            "single support",
	StepLength:               "step length",
	StrideLength:             "stride length",
	GaitSpeed:                "gait speed",
	Cadence:                  "cadence",
	StepRegularityV:          "step regularity - V",
	StrideRegularityV:        "stride regularity - V",
	AutocorrelationSymmetryV: "autocorrelation symmetry - V",
}

func (p Param) String() string {
	if p < 0 || p >= NumParams {
		return "unknown"
	}
	return paramNames[p]
}

// Column is the result table key of the parameter.
func (p Param) Column() string { return "PARAM:" + p.String() }

// AsymmetryColumn is the result table key of the parameter's asymmetry.
func (p Param) AsymmetryColumn() string { return "PARAM:" + p.String() + " asymmetry" }

// HasAsymmetry reports whether the parameter has an asymmetry column.
func (p Param) HasAsymmetry() bool { return p >= 0 && int(p) < NumAsymmetryParams }

// ParseParam resolves a parameter by its name, e.g. "cadence".
func ParseParam(name string) (Param, bool) {
	for i, n := range paramNames {
		if n == name {
			return Param(i), true
		}
	}
	return 0, false
}
