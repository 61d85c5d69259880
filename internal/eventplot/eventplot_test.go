package eventplot

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/banshee-data/gait.report/internal/gait"
	"github.com/banshee-data/gait.report/internal/synthetic"
)

func sineTrace() gait.BoutTrace {
	n := 200
	tr := gait.BoutTrace{Day: 1, Bout: 2, Start: 1000, DT: 0.02}
	tr.Filtered = make([]float64, n)
	tr.Velocity = make([]float64, n)
	for i := range tr.Filtered {
		tr.Filtered[i] = 0.3 * math.Sin(2*math.Pi*float64(i)/28)
		tr.Velocity[i] = 0.05 * (1 - math.Cos(2*math.Pi*float64(i)/28))
	}
	tr.Events.IC = []int{1007, 1035, 1063, 5000}
	tr.Events.FC = []int{1014, 1042}
	return tr
}

func TestRender(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bout.png")
	require.NoError(t, Render(sineTrace(), path))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Positive(t, info.Size())
}

func TestRenderEmpty(t *testing.T) {
	err := Render(gait.BoutTrace{}, filepath.Join(t.TempDir(), "empty.png"))
	assert.Error(t, err)
}

func TestEventPointsSkipsOutOfRange(t *testing.T) {
	tr := sineTrace()
	pts := eventPoints(tr, tr.Events.IC)
	require.Len(t, pts, 3)
	assert.InDelta(t, 0.14, pts[0].X, 1e-12)
	assert.Equal(t, tr.Filtered[7], pts[0].Y)
}

func TestPlotterObservesPipeline(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "plots")
	p, err := New(dir)
	require.NoError(t, err)

	rec, labels := synthetic.Walk(synthetic.DefaultWalk())
	g := gait.New(gait.DefaultConfig(), gait.LabelClassifier(labels))
	g.SetObserver(p)

	res, err := g.Predict(rec)
	require.NoError(t, err)
	require.NoError(t, p.Err())

	files := p.Files()
	require.Len(t, files, len(res.Bouts))
	assert.Equal(t, filepath.Join(dir, "day_01_bout_001.png"), files[0])
	_, err = os.Stat(files[0])
	assert.NoError(t, err)
}

func TestPlotterRecordsError(t *testing.T) {
	p, err := New(t.TempDir())
	require.NoError(t, err)

	p.ObserveBout(gait.BoutTrace{Day: 1, Bout: 1})
	assert.Error(t, p.Err())
	assert.Empty(t, p.Files())
}
