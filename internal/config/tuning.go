package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/banshee-data/gait.report/internal/gait"
)

// DefaultConfigPath is the path to the canonical gait tuning defaults file.
const DefaultConfigPath = "config/gait.defaults.json"

// GaitTuning is the on-disk schema of the gait pipeline parameters. Fields
// left out of the JSON fall back to the pipeline defaults, so partial files
// are safe.
type GaitTuning struct {
	// Event detection
	UseCWTScaleRelation *bool    `json:"use_cwt_scale_relation,omitempty"`
	FilterOrder         *int     `json:"filter_order,omitempty"`
	FilterCutoffHz      *float64 `json:"filter_cutoff_hz,omitempty"`

	// Bout segmentation, seconds
	MinBoutTime           *float64 `json:"min_bout_time,omitempty"`
	MaxBoutSeparationTime *float64 `json:"max_bout_separation_time,omitempty"`

	// Stride building
	MaxStrideTime *float64 `json:"max_stride_time,omitempty"`
	LoadingFactor *float64 `json:"loading_factor,omitempty"`

	// Spatial metrics
	HeightFactor *float64 `json:"height_factor,omitempty"`
	LegLength    *bool    `json:"leg_length,omitempty"`
}

func ptrFloat64(v float64) *float64 { return &v }
func ptrBool(v bool) *bool          { return &v }
func ptrInt(v int) *int             { return &v }

// DefaultGaitTuning returns a tuning with every field set from
// gait.DefaultConfig.
func DefaultGaitTuning() *GaitTuning {
	d := gait.DefaultConfig()
	return &GaitTuning{
		UseCWTScaleRelation:   ptrBool(d.UseCWTScaleRelation),
		FilterOrder:           ptrInt(d.FilterOrder),
		FilterCutoffHz:        ptrFloat64(d.FilterCutoff),
		MinBoutTime:           ptrFloat64(d.MinBoutTime),
		MaxBoutSeparationTime: ptrFloat64(d.MaxBoutSeparationTime),
		MaxStrideTime:         ptrFloat64(d.MaxStrideTime),
		LoadingFactor:         ptrFloat64(d.LoadingFactor),
		HeightFactor:          ptrFloat64(d.HeightFactor),
		LegLength:             ptrBool(d.LegLength),
	}
}

// LoadGaitTuning loads a GaitTuning from a JSON file.
// The file must have a .json extension and be at most 1MB.
func LoadGaitTuning(path string) (*GaitTuning, error) {
	cleanPath := filepath.Clean(path)
	if ext := filepath.Ext(cleanPath); ext != ".json" {
		return nil, fmt.Errorf("config file must have .json extension, got %q", ext)
	}

	fileInfo, err := os.Stat(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to stat config file: %w", err)
	}
	const maxFileSize = 1 * 1024 * 1024 // 1MB
	if fileInfo.Size() > maxFileSize {
		return nil, fmt.Errorf("config file too large: %d bytes (max %d)", fileInfo.Size(), maxFileSize)
	}

	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := &GaitTuning{}
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// MustLoadDefaultTuning loads the canonical defaults from DefaultConfigPath,
// searching the current directory and its parents. Panics if the file cannot
// be loaded; intended for test setup.
func MustLoadDefaultTuning() *GaitTuning {
	candidates := []string{
		DefaultConfigPath,
		"../" + DefaultConfigPath,
		"../../" + DefaultConfigPath, // from internal/config/
		"../../../" + DefaultConfigPath,
	}
	for _, path := range candidates {
		if cfg, err := LoadGaitTuning(path); err == nil {
			return cfg
		}
	}
	panic("cannot find " + DefaultConfigPath + " - run tests from repository root")
}

// Validate checks the values that are set. Cross-field constraints that
// depend on the sampling rate, such as the filter cutoff against Nyquist,
// are checked when the pipeline runs.
func (c *GaitTuning) Validate() error {
	return c.ToGaitConfig().Validate()
}

// GetUseCWTScaleRelation returns use_cwt_scale_relation or the default.
func (c *GaitTuning) GetUseCWTScaleRelation() bool {
	if c.UseCWTScaleRelation == nil {
		return gait.DefaultConfig().UseCWTScaleRelation
	}
	return *c.UseCWTScaleRelation
}

// GetFilterOrder returns filter_order or the default.
func (c *GaitTuning) GetFilterOrder() int {
	if c.FilterOrder == nil {
		return gait.DefaultConfig().FilterOrder
	}
	return *c.FilterOrder
}

// GetFilterCutoffHz returns filter_cutoff_hz or the default.
func (c *GaitTuning) GetFilterCutoffHz() float64 {
	if c.FilterCutoffHz == nil {
		return gait.DefaultConfig().FilterCutoff
	}
	return *c.FilterCutoffHz
}

// GetMinBoutTime returns min_bout_time or the default.
func (c *GaitTuning) GetMinBoutTime() float64 {
	if c.MinBoutTime == nil {
		return gait.DefaultConfig().MinBoutTime
	}
	return *c.MinBoutTime
}

// GetMaxBoutSeparationTime returns max_bout_separation_time or the default.
func (c *GaitTuning) GetMaxBoutSeparationTime() float64 {
	if c.MaxBoutSeparationTime == nil {
		return gait.DefaultConfig().MaxBoutSeparationTime
	}
	return *c.MaxBoutSeparationTime
}

// GetMaxStrideTime returns max_stride_time or the default.
func (c *GaitTuning) GetMaxStrideTime() float64 {
	if c.MaxStrideTime == nil {
		return gait.DefaultConfig().MaxStrideTime
	}
	return *c.MaxStrideTime
}

// GetLoadingFactor returns loading_factor or the default.
func (c *GaitTuning) GetLoadingFactor() float64 {
	if c.LoadingFactor == nil {
		return gait.DefaultConfig().LoadingFactor
	}
	return *c.LoadingFactor
}

// GetHeightFactor returns height_factor or the default.
func (c *GaitTuning) GetHeightFactor() float64 {
	if c.HeightFactor == nil {
		return gait.DefaultConfig().HeightFactor
	}
	return *c.HeightFactor
}

// GetLegLength returns leg_length or the default.
func (c *GaitTuning) GetLegLength() bool {
	if c.LegLength == nil {
		return gait.DefaultConfig().LegLength
	}
	return *c.LegLength
}

// ToGaitConfig resolves the tuning into the processor configuration.
func (c *GaitTuning) ToGaitConfig() gait.Config {
	return gait.Config{
		UseCWTScaleRelation:   c.GetUseCWTScaleRelation(),
		MinBoutTime:           c.GetMinBoutTime(),
		MaxBoutSeparationTime: c.GetMaxBoutSeparationTime(),
		MaxStrideTime:         c.GetMaxStrideTime(),
		LoadingFactor:         c.GetLoadingFactor(),
		HeightFactor:          c.GetHeightFactor(),
		LegLength:             c.GetLegLength(),
		FilterOrder:           c.GetFilterOrder(),
		FilterCutoff:          c.GetFilterCutoffHz(),
	}
}
