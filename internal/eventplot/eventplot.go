// Package eventplot renders per-bout diagnostic plots of the vertical
// signals and detected gait events.
package eventplot

import (
	"fmt"
	"image/color"
	"os"
	"path/filepath"
	"sync"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/banshee-data/gait.report/internal/gait"
	"github.com/banshee-data/gait.report/internal/monitoring"
)

var (
	filteredColor = color.RGBA{R: 40, G: 40, B: 40, A: 255}
	velocityColor = color.RGBA{R: 120, G: 120, B: 200, A: 255}
	icColor       = color.RGBA{R: 220, G: 50, B: 47, A: 255}
	fcColor       = color.RGBA{R: 38, G: 139, B: 210, A: 255}
)

// Plotter writes one PNG per observed bout. It implements
// gait.BoutObserver.
type Plotter struct {
	mu        sync.Mutex
	outputDir string
	files     []string
	err       error
}

// New creates a plotter writing into outputDir, creating it if needed.
func New(outputDir string) (*Plotter, error) {
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output dir: %w", err)
	}
	return &Plotter{outputDir: outputDir}, nil
}

// ObserveBout renders the bout. Failures are logged and the first one is
// kept for Err.
func (p *Plotter) ObserveBout(tr gait.BoutTrace) {
	path := filepath.Join(p.outputDir, fmt.Sprintf("day_%02d_bout_%03d.png", tr.Day, tr.Bout))
	err := Render(tr, path)

	p.mu.Lock()
	defer p.mu.Unlock()
	if err != nil {
		monitoring.Logf("eventplot: day %d bout %d: %v", tr.Day, tr.Bout, err)
		if p.err == nil {
			p.err = err
		}
		return
	}
	p.files = append(p.files, path)
}

// Files lists the plots written so far.
func (p *Plotter) Files() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]string(nil), p.files...)
}

// Err returns the first rendering error, if any.
func (p *Plotter) Err() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.err
}

// Render draws the filtered vertical acceleration and velocity of one bout
// with its ICs and FCs marked, and saves it to path.
func Render(tr gait.BoutTrace, path string) error {
	if len(tr.Filtered) == 0 {
		return fmt.Errorf("empty bout")
	}

	p := plot.New()
	p.Title.Text = fmt.Sprintf("Day %d - Bout %d", tr.Day, tr.Bout)
	p.X.Label.Text = "Time (s)"
	p.Y.Label.Text = "Vertical acceleration (g)"

	accel := make(plotter.XYs, len(tr.Filtered))
	for i, v := range tr.Filtered {
		accel[i] = plotter.XY{X: float64(i) * tr.DT, Y: v}
	}
	accelLine, err := plotter.NewLine(accel)
	if err != nil {
		return err
	}
	accelLine.Color = filteredColor
	accelLine.Width = vg.Points(1)
	p.Add(accelLine)
	p.Legend.Add("filtered", accelLine)

	if len(tr.Velocity) == len(tr.Filtered) {
		vel := make(plotter.XYs, len(tr.Velocity))
		for i, v := range tr.Velocity {
			vel[i] = plotter.XY{X: float64(i) * tr.DT, Y: v}
		}
		velLine, err := plotter.NewLine(vel)
		if err != nil {
			return err
		}
		velLine.Color = velocityColor
		velLine.Width = vg.Points(0.5)
		p.Add(velLine)
		p.Legend.Add("velocity (g*s)", velLine)
	}

	for _, ev := range []struct {
		label string
		idx   []int
		color color.Color
		shape draw.GlyphDrawer
	}{
		{"IC", tr.Events.IC, icColor, draw.CircleGlyph{}},
		{"FC", tr.Events.FC, fcColor, draw.TriangleGlyph{}},
	} {
		pts := eventPoints(tr, ev.idx)
		if len(pts) == 0 {
			continue
		}
		sc, err := plotter.NewScatter(pts)
		if err != nil {
			return err
		}
		sc.GlyphStyle.Color = ev.color
		sc.GlyphStyle.Shape = ev.shape
		sc.GlyphStyle.Radius = vg.Points(3)
		p.Add(sc)
		p.Legend.Add(ev.label, sc)
	}

	p.Legend.Top = true
	p.Legend.Left = false
	p.Legend.XOffs = -10
	p.Legend.YOffs = -10

	if err := p.Save(14*vg.Inch, 6*vg.Inch, path); err != nil {
		return fmt.Errorf("save bout plot: %w", err)
	}
	return nil
}

// eventPoints places absolute event indices on the filtered signal.
func eventPoints(tr gait.BoutTrace, idx []int) plotter.XYs {
	pts := make(plotter.XYs, 0, len(idx))
	for _, abs := range idx {
		i := abs - tr.Start
		if i < 0 || i >= len(tr.Filtered) {
			continue
		}
		pts = append(pts, plotter.XY{X: float64(i) * tr.DT, Y: tr.Filtered[i]})
	}
	return pts
}
