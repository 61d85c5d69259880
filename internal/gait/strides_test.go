package gait

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildStrides(t *testing.T) {
	cfg := DefaultConfig()
	ic := []int{100, 200, 300, 400, 500}
	fc := []int{110, 190, 210, 290, 310, 390, 410, 490, 510, 590}

	strides := BuildStrides(ic, fc, 0.01, cfg)
	require.Len(t, strides, 5)

	wantValid := []bool{true, true, true, false, false}
	for i, s := range strides {
		assert.Equal(t, ic[i], s.IC, "stride %d IC", i)
		assert.Equal(t, ic[i]+10, s.FCOppFoot, "stride %d FC opp foot", i)
		assert.Equal(t, ic[i]+90, s.FC, "stride %d FC", i)
		assert.Equal(t, wantValid[i], s.ValidCycle, "stride %d valid cycle", i)
		assert.True(t, math.IsNaN(s.DeltaH))
	}
	assert.Equal(t, 3, countValid(strides))
}

func TestBuildStridesRejects(t *testing.T) {
	cfg := DefaultConfig()

	testCases := []struct {
		name string
		ic   []int
		fc   []int
	}{
		{"two_fcs_in_loading", []int{100}, []int{110, 120, 200}},
		{"no_fc_in_loading", []int{100}, []int{160, 200}},
		{"one_fc_in_stance", []int{100}, []int{110, 300}},
		{"no_fc_after_ic", []int{100}, []int{50, 90}},
		{"no_fcs", []int{100, 200}, nil},
		{"fc_at_ic_ignored", []int{100}, []int{100, 190}},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Empty(t, BuildStrides(tc.ic, tc.fc, 0.01, cfg))
		})
	}
}

func TestBuildStridesInvariants(t *testing.T) {
	cfg := DefaultConfig()
	dt := 0.01
	ic := []int{20, 75, 131, 184, 240, 290, 350, 600, 655}
	fc := []int{33, 88, 90, 145, 199, 252, 306, 365, 410, 612, 668, 720}

	strides := BuildStrides(ic, fc, dt, cfg)
	require.NotEmpty(t, strides)

	maxAhead := cfg.StanceForwardTime() / dt
	for i, s := range strides {
		assert.Greater(t, s.FCOppFoot, s.IC, "stride %d", i)
		assert.Greater(t, s.FC, s.FCOppFoot, "stride %d", i)
		assert.Less(t, float64(s.FC-s.IC), maxAhead, "stride %d", i)
	}
	for i := len(strides) - 2; i < len(strides); i++ {
		if i >= 0 {
			assert.False(t, strides[i].ValidCycle, "stride %d", i)
		}
	}
}

func TestMarkValidCyclesGap(t *testing.T) {
	strides := []Stride{
		newStride(0, 0, 0), newStride(50, 0, 0), newStride(100, 0, 0),
		newStride(400, 0, 0), newStride(450, 0, 0), newStride(500, 0, 0),
	}
	markValidCycles(strides, 0.01, 2.25)

	var got []bool
	for _, s := range strides {
		got = append(got, s.ValidCycle)
	}
	assert.Equal(t, []bool{true, false, false, true, false, false}, got)
}
