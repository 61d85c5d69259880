package gait

import "fmt"

// Bout is a half-open sample range [Start, Stop) of sustained walking,
// relative to the labels it was segmented from.
type Bout struct {
	Start int
	Stop  int
}

// Len is the number of samples in the bout.
func (b Bout) Len() int { return b.Stop - b.Start }

// SegmentBouts converts per-sample walking labels into bouts. Runs separated
// by less than maxSeparation seconds are merged, transitively, and merged
// bouts lasting no longer than minBoutTime seconds are dropped. Bouts are
// returned in time order and never overlap.
//
// A run that reaches the final label is closed at len(labels)-1.
func SegmentBouts(labels []bool, dt, minBoutTime, maxSeparation float64) ([]Bout, error) {
	starts, stops := boutEdges(labels)
	return mergeBouts(starts, stops, dt, minBoutTime, maxSeparation)
}

// boutEdges finds the first sample of every walking run and the first
// sample after it.
func boutEdges(labels []bool) (starts, stops []int) {
	n := len(labels)
	if n == 0 {
		return nil, nil
	}
	if labels[0] {
		starts = append(starts, 0)
	}
	for i := 1; i < n; i++ {
		switch {
		case labels[i] && !labels[i-1]:
			starts = append(starts, i)
		case !labels[i] && labels[i-1]:
			stops = append(stops, i)
		}
	}
	if labels[n-1] {
		stops = append(stops, n-1)
	}
	return starts, stops
}

func mergeBouts(starts, stops []int, dt, minBoutTime, maxSeparation float64) ([]Bout, error) {
	if len(starts) != len(stops) {
		return nil, fmt.Errorf("%w: %d starts, %d stops", ErrBoutMismatch, len(starts), len(stops))
	}

	var bouts []Bout
	for nb := 0; nb < len(starts); {
		ncb := 0
		for nb+ncb+1 < len(starts) && float64(starts[nb+ncb+1]-stops[nb+ncb])*dt < maxSeparation {
			ncb++
		}
		if float64(stops[nb+ncb]-starts[nb])*dt > minBoutTime {
			bouts = append(bouts, Bout{Start: starts[nb], Stop: stops[nb+ncb]})
		}
		nb += ncb + 1
	}
	return bouts, nil
}
