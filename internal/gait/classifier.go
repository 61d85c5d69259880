package gait

import "fmt"

// Classifier labels each acceleration sample as walking (true) or not.
// fs is the sampling frequency in Hz.
type Classifier interface {
	Classify(accel [][3]float64, fs float64) ([]bool, error)
}

// LabelClassifier replays labels produced ahead of time, for example by an
// offline model whose output was stored alongside the recording.
type LabelClassifier []bool

// Classify returns a copy of the stored labels.
func (l LabelClassifier) Classify(accel [][3]float64, _ float64) ([]bool, error) {
	if len(l) != len(accel) {
		return nil, fmt.Errorf("%w: %d labels for %d samples", ErrInvalidInput, len(l), len(accel))
	}
	out := make([]bool, len(l))
	copy(out, l)
	return out, nil
}
