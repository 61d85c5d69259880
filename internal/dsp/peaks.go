package dsp

// LocalMaxima returns the indices of strict local maxima in x. Flat peaks
// report their middle sample (rounded down). End points are never peaks.
func LocalMaxima(x []float64) []int {
	var peaks []int
	iMax := len(x) - 1
	for i := 1; i < iMax; i++ {
		if x[i-1] < x[i] {
			ahead := i + 1
			for ahead < iMax && x[ahead] == x[i] {
				ahead++
			}
			if x[ahead] < x[i] {
				peaks = append(peaks, (i+ahead-1)/2)
				i = ahead
			}
		}
	}
	return peaks
}

// Prominences computes the topographic prominence of each peak: the height
// of the peak above the higher of the two minima found before the signal
// rises above the peak on either side.
func Prominences(x []float64, peaks []int) []float64 {
	out := make([]float64, len(peaks))
	for n, p := range peaks {
		leftMin := x[p]
		for i := p; i >= 0 && x[i] <= x[p]; i-- {
			if x[i] < leftMin {
				leftMin = x[i]
			}
		}
		rightMin := x[p]
		for i := p; i < len(x) && x[i] <= x[p]; i++ {
			if x[i] < rightMin {
				rightMin = x[i]
			}
		}
		out[n] = x[p] - max(leftMin, rightMin)
	}
	return out
}

// FindPeaksProminence returns local maxima whose prominence is at least
// minProminence.
func FindPeaksProminence(x []float64, minProminence float64) []int {
	peaks := LocalMaxima(x)
	prom := Prominences(x, peaks)
	var out []int
	for i, p := range peaks {
		if prom[i] >= minProminence {
			out = append(out, p)
		}
	}
	return out
}
