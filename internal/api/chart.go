package api

import (
	"bytes"
	"fmt"
	"math"
	"net/http"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/banshee-data/gait.report/internal/gait"
	"github.com/banshee-data/gait.report/internal/httputil"
)

const defaultChartParam = "cadence"

// runChart renders one parameter of a run per stride as an HTML line chart.
// Strides without a value are left as gaps.
func (s *Server) runChart(w http.ResponseWriter, r *http.Request, runID string) {
	name := r.URL.Query().Get("param")
	if name == "" {
		name = defaultChartParam
	}
	param, ok := gait.ParseParam(name)
	if !ok {
		httputil.BadRequest(w, fmt.Sprintf("unknown param %q", name))
		return
	}

	cols, err := s.store.LoadRunColumns(runID)
	if err != nil {
		writeStoreError(w, err)
		return
	}

	var buf bytes.Buffer
	if err := paramChart(runID, param, cols).Render(&buf); err != nil {
		httputil.InternalServerError(w, fmt.Sprintf("failed to render chart: %v", err))
		return
	}
	httputil.WriteHTML(w, &buf)
}

func paramChart(runID string, param gait.Param, cols map[string][]float64) *charts.Line {
	values := cols[param.Column()]
	strides := make([]int, len(values))
	for i := range strides {
		strides[i] = i
	}

	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{PageTitle: "Gait " + param.String(), Width: "1200px", Height: "600px"}),
		charts.WithTitleOpts(opts.Title{Title: param.String(), Subtitle: fmt.Sprintf("run=%s strides=%d", runID, len(values))}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithXAxisOpts(opts.XAxis{Name: "Stride", NameLocation: "middle", NameGap: 25}),
		charts.WithYAxisOpts(opts.YAxis{Name: param.String(), NameLocation: "middle", NameGap: 40}),
	)
	line.SetXAxis(strides)
	line.AddSeries(param.String(), lineData(values))
	if param.HasAsymmetry() {
		line.AddSeries(param.String()+" asymmetry", lineData(cols[param.AsymmetryColumn()]))
	}
	return line
}

// lineData marks non-finite values with "-", the ECharts missing-value
// placeholder.
func lineData(values []float64) []opts.LineData {
	data := make([]opts.LineData, len(values))
	for i, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			data[i] = opts.LineData{Value: "-"}
			continue
		}
		data[i] = opts.LineData{Value: v}
	}
	return data
}
