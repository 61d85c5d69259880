package gait

import (
	"fmt"
	"math"

	"github.com/banshee-data/gait.report/internal/units"
)

// Config holds the tunable parameters of the gait pipeline. Times are in
// seconds.
type Config struct {
	// UseCWTScaleRelation derives the IC and FC wavelet scales from the
	// estimated step frequency instead of using the fixed baseline scale.
	UseCWTScaleRelation bool `json:"use_cwt_scale_relation"`

	MinBoutTime           float64 `json:"min_bout_time"`            // bouts must last longer than this
	MaxBoutSeparationTime float64 `json:"max_bout_separation_time"` // bouts closer than this are merged

	// MaxStrideTime bounds a plausible stride. LoadingFactor*MaxStrideTime
	// bounds initial double support and MaxStrideTime/2 plus that bounds
	// stance.
	MaxStrideTime float64 `json:"max_stride_time"`
	LoadingFactor float64 `json:"loading_factor"`

	// HeightFactor converts subject height to leg length. Ignored when
	// LegLength is true, in which case the supplied value is leg length.
	HeightFactor float64 `json:"height_factor"`
	LegLength    bool    `json:"leg_length"`

	FilterOrder  int     `json:"filter_order"`
	FilterCutoff float64 `json:"filter_cutoff_hz"`
}

// DefaultConfig returns the published defaults.
func DefaultConfig() Config {
	return Config{
		UseCWTScaleRelation:   true,
		MinBoutTime:           5.0,
		MaxBoutSeparationTime: 0.5,
		MaxStrideTime:         2.25,
		LoadingFactor:         0.2,
		HeightFactor:          units.DefaultHeightFactor,
		LegLength:             false,
		FilterOrder:           4,
		FilterCutoff:          20.0,
	}
}

// LoadingForwardTime is the longest plausible initial double support.
func (c Config) LoadingForwardTime() float64 {
	return c.LoadingFactor * c.MaxStrideTime
}

// StanceForwardTime is the longest plausible stance.
func (c Config) StanceForwardTime() float64 {
	return c.MaxStrideTime/2 + c.LoadingForwardTime()
}

// Validate checks that the configuration values are usable.
func (c Config) Validate() error {
	checks := []struct {
		name string
		v    float64
		ok   bool
	}{
		{"min_bout_time", c.MinBoutTime, c.MinBoutTime >= 0},
		{"max_bout_separation_time", c.MaxBoutSeparationTime, c.MaxBoutSeparationTime >= 0},
		{"max_stride_time", c.MaxStrideTime, c.MaxStrideTime > 0},
		{"loading_factor", c.LoadingFactor, c.LoadingFactor > 0},
		{"height_factor", c.HeightFactor, c.HeightFactor > 0},
		{"filter_cutoff", c.FilterCutoff, c.FilterCutoff > 0},
	}
	for _, chk := range checks {
		if !chk.ok || math.IsInf(chk.v, 0) {
			return fmt.Errorf("%w: %s out of range: %v", ErrInvalidConfig, chk.name, chk.v)
		}
	}
	if c.FilterOrder < 1 {
		return fmt.Errorf("%w: filter_order must be >= 1, got %d", ErrInvalidConfig, c.FilterOrder)
	}
	return nil
}
