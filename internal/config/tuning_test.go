package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/banshee-data/gait.report/internal/gait"
)

func writeConfig(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	return path
}

func TestDefaultsFileMatchesPipelineDefaults(t *testing.T) {
	cfg := MustLoadDefaultTuning()
	assert.Equal(t, gait.DefaultConfig(), cfg.ToGaitConfig())
	assert.Equal(t, DefaultGaitTuning(), cfg)
}

func TestEmptyTuningUsesDefaults(t *testing.T) {
	cfg := &GaitTuning{}
	assert.Equal(t, gait.DefaultConfig(), cfg.ToGaitConfig())
	assert.NoError(t, cfg.Validate())
}

func TestLoadGaitTuningPartial(t *testing.T) {
	path := writeConfig(t, "partial.json", `{
  "min_bout_time": 10,
  "use_cwt_scale_relation": false,
  "leg_length": true
}`)

	cfg, err := LoadGaitTuning(path)
	require.NoError(t, err)

	got := cfg.ToGaitConfig()
	want := gait.DefaultConfig()
	want.MinBoutTime = 10
	want.UseCWTScaleRelation = false
	want.LegLength = true
	assert.Equal(t, want, got)
	assert.Nil(t, cfg.MaxStrideTime)
}

func TestLoadGaitTuningErrors(t *testing.T) {
	testCases := []struct {
		name     string
		file     string
		body     string
		wantGait bool
	}{
		{"wrong_extension", "tuning.yaml", `{}`, false},
		{"bad_json", "bad.json", `{"min_bout_time": }`, false},
		{"negative_bout_time", "neg.json", `{"min_bout_time": -1}`, true},
		{"zero_stride_time", "zero.json", `{"max_stride_time": 0}`, true},
		{"zero_filter_order", "order.json", `{"filter_order": 0}`, true},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := LoadGaitTuning(writeConfig(t, tc.file, tc.body))
			require.Error(t, err)
			assert.Equal(t, tc.wantGait, errors.Is(err, gait.ErrInvalidConfig), "got %v", err)
		})
	}
}

func TestLoadGaitTuningMissingFile(t *testing.T) {
	_, err := LoadGaitTuning(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}

func TestLoadGaitTuningTooLarge(t *testing.T) {
	big := make([]byte, 1024*1024+1)
	for i := range big {
		big[i] = ' '
	}
	path := filepath.Join(t.TempDir(), "big.json")
	require.NoError(t, os.WriteFile(path, big, 0644))

	_, err := LoadGaitTuning(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "too large")
}
