package gait

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// labelRuns builds n labels with the half-open ranges set to true.
func labelRuns(n int, runs ...[2]int) []bool {
	labels := make([]bool, n)
	for _, r := range runs {
		for i := r[0]; i < r[1]; i++ {
			labels[i] = true
		}
	}
	return labels
}

func TestSegmentBouts(t *testing.T) {
	walking := labelRuns(1000,
		[2]int{0, 90}, [2]int{150, 160}, [2]int{165, 180}, [2]int{200, 210},
		[2]int{225, 240}, [2]int{400, 760}, [2]int{770, 780}, [2]int{990, 1000},
	)

	testCases := []struct {
		name   string
		labels []bool
		dt     float64
		minB   float64
		maxSep float64
		want   []Bout
	}{
		{
			name:   "merge_nearby_runs",
			labels: walking,
			dt:     0.02, minB: 1.5, maxSep: 0.5,
			want: []Bout{{0, 90}, {150, 240}, {400, 780}},
		},
		{
			name:   "short_bouts_dropped",
			labels: walking,
			dt:     0.01, minB: 2, maxSep: 0.5,
			want: []Bout{{400, 780}},
		},
		{
			name:   "trailing_run_closed_at_last_sample",
			labels: walking,
			dt:     0.01, minB: 0.05, maxSep: 1.5,
			want: []Bout{{0, 240}, {400, 780}, {990, 999}},
		},
		{
			name:   "no_merging",
			labels: walking,
			dt:     0.01, minB: 0.05, maxSep: 0.04,
			want: []Bout{
				{0, 90}, {150, 160}, {165, 180}, {200, 210}, {225, 240},
				{400, 760}, {770, 780}, {990, 999},
			},
		},
		{
			name:   "all_false",
			labels: make([]bool, 100),
			dt:     0.01, minB: 0, maxSep: 0.5,
			want: nil,
		},
		{
			name:   "all_true",
			labels: labelRuns(100, [2]int{0, 100}),
			dt:     0.01, minB: 0.5, maxSep: 0.5,
			want: []Bout{{0, 99}},
		},
		{
			name:   "empty",
			labels: nil,
			dt:     0.01, minB: 0, maxSep: 0.5,
			want: nil,
		},
		{
			name:   "duration_must_exceed_minimum",
			labels: labelRuns(100, [2]int{10, 60}),
			dt:     0.02, minB: 1, maxSep: 0.5,
			want: nil,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := SegmentBouts(tc.labels, tc.dt, tc.minB, tc.maxSep)
			require.NoError(t, err)
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Errorf("SegmentBouts mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestSegmentBoutsOrdered(t *testing.T) {
	labels := labelRuns(2000,
		[2]int{5, 300}, [2]int{320, 330}, [2]int{900, 1500}, [2]int{1600, 2000},
	)
	bouts, err := SegmentBouts(labels, 0.01, 0.5, 0.5)
	require.NoError(t, err)
	require.NotEmpty(t, bouts)

	for i, b := range bouts {
		assert.Less(t, b.Start, b.Stop, "bout %d", i)
		assert.GreaterOrEqual(t, b.Start, 0)
		assert.Less(t, b.Stop, len(labels))
		if i > 0 {
			assert.Greater(t, b.Start, bouts[i-1].Stop, "bout %d overlaps", i)
		}
	}
}

func TestMergeBoutsMismatch(t *testing.T) {
	_, err := mergeBouts([]int{0, 10}, []int{5}, 0.01, 0, 1)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrBoutMismatch))
}

func TestBoutLen(t *testing.T) {
	assert.Equal(t, 380, Bout{Start: 400, Stop: 780}.Len())
}
