package chart

import (
	"fmt"
	"io"
	"math"
	"strconv"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"

	"go-trade-dashboard/internal/model"
	"go-trade-dashboard/internal/pipeline"
)

// WriteHTML renders the artifact as a standalone echarts page. The KPI line,
// when given, is shown as the chart subtitle.
func WriteHTML(a *model.Artifact, kpi *model.KPI, w io.Writer) error {
	if a == nil || a.Kind == model.ChartStatistics {
		return ErrNotPlottable
	}

	title := opts.Title{Title: a.Title, Subtitle: a.Subtitle}
	if kpi != nil {
		title.Subtitle = fmt.Sprintf("%s\nMax %s | Min %s | Average %s", a.Subtitle, kpi.MaxText, kpi.MinText, kpi.AvgText)
	}
	global := []charts.GlobalOpts{
		charts.WithTitleOpts(title),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(false)}),
		charts.WithInitializationOpts(opts.Initialization{
			PageTitle: a.Title,
			Width:     "100%",
			Height:    "450px",
		}),
		charts.WithGridOpts(opts.Grid{Top: "90px"}),
	}

	var chart components.Charter
	switch {
	case a.Box != nil:
		chart = boxChart(a, global)
	case a.Histogram != nil:
		chart = histogramChart(a, global)
	case a.Discrete:
		chart = barChart(a, global)
	case a.Connected:
		chart = lineChart(a, global)
	case len(a.Points) > 0:
		chart = scatterChart(a, global)
	default:
		return ErrNotPlottable
	}

	page := components.NewPage()
	page.PageTitle = a.Title
	page.AddCharts(chart)
	if err := page.Render(w); err != nil {
		return fmt.Errorf("failed to render html: %w", err)
	}
	return nil
}

func axes(a *model.Artifact) []charts.GlobalOpts {
	return []charts.GlobalOpts{
		charts.WithXAxisOpts(opts.XAxis{Name: a.XLabel}),
		charts.WithYAxisOpts(opts.YAxis{Name: a.YLabel}),
	}
}

func xLabels(points []model.Point) []string {
	labels := make([]string, len(points))
	for i, pt := range points {
		if pt.Label != "" {
			labels[i] = pt.Label
		} else {
			labels[i] = strconv.FormatFloat(pt.X, 'f', -1, 64)
		}
	}
	return labels
}

func lineChart(a *model.Artifact, global []charts.GlobalOpts) *charts.Line {
	line := charts.NewLine()
	line.SetGlobalOptions(append(global, axes(a)...)...)

	data := make([]opts.LineData, len(a.Points))
	for i, pt := range a.Points {
		data[i] = opts.LineData{Value: pt.Y}
	}

	seriesOpts := []charts.SeriesOpts{
		charts.WithLineChartOpts(opts.LineChart{ShowSymbol: opts.Bool(a.Markers)}),
	}
	if a.Filled {
		seriesOpts = append(seriesOpts,
			charts.WithAreaStyleOpts(opts.AreaStyle{Color: "tomato", Opacity: 0.4}),
			charts.WithItemStyleOpts(opts.ItemStyle{Color: "darkred"}),
		)
	}
	line.SetXAxis(xLabels(a.Points)).AddSeries("Value", data, seriesOpts...)
	return line
}

func barChart(a *model.Artifact, global []charts.GlobalOpts) *charts.Bar {
	bar := charts.NewBar()
	bar.SetGlobalOptions(append(global, axes(a)...)...)

	data := make([]opts.BarData, len(a.Points))
	for i, pt := range a.Points {
		data[i] = opts.BarData{Value: pt.Y}
	}
	bar.SetXAxis(xLabels(a.Points)).AddSeries("Value", data,
		charts.WithItemStyleOpts(opts.ItemStyle{Color: "skyblue"}),
	)
	return bar
}

func scatterChart(a *model.Artifact, global []charts.GlobalOpts) *charts.Scatter {
	scatter := charts.NewScatter()
	scatter.SetGlobalOptions(append(global,
		charts.WithXAxisOpts(opts.XAxis{Name: a.XLabel, Type: "value", Scale: opts.Bool(true)}),
		charts.WithYAxisOpts(opts.YAxis{Name: a.YLabel, Scale: opts.Bool(true)}),
	)...)

	data := make([]opts.ScatterData, len(a.Points))
	for i, pt := range a.Points {
		data[i] = opts.ScatterData{Value: []interface{}{pt.X, pt.Y}, SymbolSize: 8}
	}
	scatter.AddSeries("Value", data)
	return scatter
}

func boxChart(a *model.Artifact, global []charts.GlobalOpts) *charts.BoxPlot {
	b := a.Box
	box := charts.NewBoxPlot()
	box.SetGlobalOptions(append(global, axes(a)...)...)
	box.SetXAxis([]string{a.YLabel}).AddSeries("Value",
		[]opts.BoxPlotData{{Value: []float64{b.WhiskerLow, b.Q1, b.Median, b.Q3, b.WhiskerHigh}}},
		charts.WithItemStyleOpts(opts.ItemStyle{Color: "lightgreen", BorderColor: "black"}),
	)

	if len(b.Outliers) > 0 {
		outliers := charts.NewScatter()
		data := make([]opts.ScatterData, len(b.Outliers))
		for i, v := range b.Outliers {
			data[i] = opts.ScatterData{Value: []interface{}{a.YLabel, v}}
		}
		outliers.AddSeries("Outliers", data)
		box.Overlap(outliers)
	}
	return box
}

// histogramChart draws bin counts as bars; the density is sampled at bin centres.
func histogramChart(a *model.Artifact, global []charts.GlobalOpts) *charts.Bar {
	h := a.Histogram
	bar := charts.NewBar()
	bar.SetGlobalOptions(append(global, axes(a)...)...)

	labels := make([]string, len(h.Bins))
	counts := make([]opts.BarData, len(h.Bins))
	for i, b := range h.Bins {
		labels[i] = fmt.Sprintf("%s - %s", pipeline.FormatKPI(b.Low), pipeline.FormatKPI(b.High))
		counts[i] = opts.BarData{Value: b.Count}
	}
	bar.SetXAxis(labels).AddSeries("Frequency", counts,
		charts.WithBarChartOpts(opts.BarChart{BarCategoryGap: "0%"}),
	)

	if len(h.Density) > 0 {
		density := charts.NewLine()
		data := make([]opts.LineData, len(h.Bins))
		for i, b := range h.Bins {
			data[i] = opts.LineData{Value: densityAt(h.Density, (b.Low+b.High)/2)}
		}
		density.SetXAxis(labels).AddSeries("Density", data,
			charts.WithLineChartOpts(opts.LineChart{Smooth: opts.Bool(true), ShowSymbol: opts.Bool(false)}),
		)
		bar.Overlap(density)
	}
	return bar
}

// densityAt returns the curve value at the grid point nearest to x.
func densityAt(curve []model.Point, x float64) float64 {
	best := curve[0]
	for _, pt := range curve[1:] {
		if math.Abs(pt.X-x) < math.Abs(best.X-x) {
			best = pt
		}
	}
	return best.Y
}
