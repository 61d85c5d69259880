package gait

// Bookkeeping and event column keys of the result table.
const (
	ColDayN         = "Day N"
	ColBoutN        = "Bout N"
	ColBoutStart    = "Bout Start"
	ColBoutDuration = "Bout Duration"
	ColBoutSteps    = "Bout Steps"
	ColIC           = "IC"
	ColFC           = "FC"
	ColFCOppFoot    = "FC opp foot"
	ColValidCycle   = "valid cycle"
	ColDeltaH       = "delta h"
)

// BoutResult is the outcome of one gait bout.
type BoutResult struct {
	Day  int // 1-based day window index
	Bout int // 1-based bout index within the day

	// Start and Stop are absolute sample indices, [Start, Stop).
	Start int
	Stop  int

	StartTime float64 // timestamp of the first sample, unix seconds
	Duration  float64 // seconds
	Steps     int     // number of valid cycles

	Events  Events
	Strides []Stride
}

// Result holds every bout of a recording in time order.
type Result struct {
	DT           float64 // sampling period, seconds
	VerticalAxis int
	Bouts        []BoutResult
}

// NumStrides is the total number of strides over all bouts.
func (r *Result) NumStrides() int {
	n := 0
	for _, b := range r.Bouts {
		n += len(b.Strides)
	}
	return n
}

// Keys lists every result table column in table order.
func Keys() []string {
	keys := []string{
		ColDayN, ColBoutN, ColBoutStart, ColBoutDuration, ColBoutSteps,
		ColIC, ColFC, ColFCOppFoot, ColValidCycle, ColDeltaH,
	}
	for p := Param(0); p < NumParams; p++ {
		keys = append(keys, p.Column())
	}
	for p := Param(0); p.HasAsymmetry(); p++ {
		keys = append(keys, p.AsymmetryColumn())
	}
	return keys
}

// Columns flattens the result into the named-column table: one row per
// stride, every key from Keys present, all columns of equal length. Boolean
// columns hold 1 or 0.
func (r *Result) Columns() map[string][]float64 {
	n := r.NumStrides()
	cols := make(map[string][]float64, len(Keys()))
	for _, k := range Keys() {
		cols[k] = make([]float64, 0, n)
	}

	for _, b := range r.Bouts {
		for _, s := range b.Strides {
			cols[ColDayN] = append(cols[ColDayN], float64(b.Day))
			cols[ColBoutN] = append(cols[ColBoutN], float64(b.Bout))
			cols[ColBoutStart] = append(cols[ColBoutStart], b.StartTime)
			cols[ColBoutDuration] = append(cols[ColBoutDuration], b.Duration)
			cols[ColBoutSteps] = append(cols[ColBoutSteps], float64(b.Steps))
			cols[ColIC] = append(cols[ColIC], float64(s.IC))
			cols[ColFC] = append(cols[ColFC], float64(s.FC))
			cols[ColFCOppFoot] = append(cols[ColFCOppFoot], float64(s.FCOppFoot))
			valid := 0.0
			if s.ValidCycle {
				valid = 1
			}
			cols[ColValidCycle] = append(cols[ColValidCycle], valid)
			cols[ColDeltaH] = append(cols[ColDeltaH], s.DeltaH)

			for p := Param(0); p < NumParams; p++ {
				cols[p.Column()] = append(cols[p.Column()], s.Params[p])
			}
			for p := Param(0); p.HasAsymmetry(); p++ {
				cols[p.AsymmetryColumn()] = append(cols[p.AsymmetryColumn()], s.Asymmetry[p])
			}
		}
	}
	return cols
}
