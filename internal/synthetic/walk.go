// Package synthetic generates deterministic lumbar accelerometer recordings
// of walking for development mode and tests.
package synthetic

import (
	"math"

	"github.com/banshee-data/gait.report/internal/gait"
)

// Span is a walking period in seconds from the start of the recording.
type Span struct {
	Start float64
	End   float64
}

// WalkConfig describes a synthetic recording.
type WalkConfig struct {
	SampleRate    float64 // Hz
	Duration      float64 // seconds
	StartTime     float64 // unix seconds of the first sample
	Walking       []Span
	StepFrequency float64 // Hz
	Amplitude     float64 // vertical oscillation, g
	VerticalAxis  int
	// Inverted mounts the sensor upside down, flipping the sign of gravity
	// and of the vertical oscillation.
	Inverted bool
}

// DefaultWalk is one minute at 50 Hz with a single 30 s walking bout at
// 1.8 steps per second.
func DefaultWalk() WalkConfig {
	return WalkConfig{
		SampleRate:    50,
		Duration:      60,
		StartTime:     1700000000,
		Walking:       []Span{{Start: 10, End: 40}},
		StepFrequency: 1.8,
		Amplitude:     0.3,
		VerticalAxis:  2,
	}
}

// Walk renders the recording together with its ground-truth walking labels.
// Outside walking spans the sensor is still, reading gravity only.
func Walk(cfg WalkConfig) (gait.Recording, []bool) {
	n := int(math.Round(cfg.Duration * cfg.SampleRate))
	rec := gait.Recording{
		Time:  make([]float64, n),
		Accel: make([][3]float64, n),
		Gyro:  make([][3]float64, n),
	}
	labels := make([]bool, n)

	sign := 1.0
	if cfg.Inverted {
		sign = -1
	}
	lateral := (cfg.VerticalAxis + 1) % 3
	forward := (cfg.VerticalAxis + 2) % 3
	w := 2 * math.Pi * cfg.StepFrequency

	for i := 0; i < n; i++ {
		t := float64(i) / cfg.SampleRate
		rec.Time[i] = cfg.StartTime + t
		rec.Accel[i][cfg.VerticalAxis] = sign

		for _, s := range cfg.Walking {
			if t < s.Start || t >= s.End {
				continue
			}
			labels[i] = true
			tw := t - s.Start
			rec.Accel[i][cfg.VerticalAxis] += sign * cfg.Amplitude * math.Sin(w*tw)
			rec.Accel[i][lateral] = 0.05 * math.Sin(w*tw/2)
			rec.Accel[i][forward] = 0.1 * math.Cos(w*tw)
			rec.Gyro[i][lateral] = 10 * math.Sin(w*tw/2)
		}
	}
	return rec, labels
}
