package chart

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/google/uuid"
	"gonum.org/v1/gonum/stat"

	"go-trade-dashboard/internal/logger"
	"go-trade-dashboard/internal/model"
	"go-trade-dashboard/internal/pipeline"
)

var (
	// ErrUnknownKind is returned for a kind with no renderer.
	ErrUnknownKind = errors.New("unknown chart kind")
	// ErrKindDisabled is returned for a kind this deployment does not expose.
	ErrKindDisabled = errors.New("chart kind is not enabled")
)

// RenderFunc turns a non-empty subset into one artifact.
type RenderFunc func(subset model.Subset) (*model.Artifact, error)

var renderers = map[model.ChartKind]RenderFunc{
	model.ChartLine:       renderLine,
	model.ChartBar:        renderBar,
	model.ChartScatter:    renderScatter,
	model.ChartBoxPlot:    renderBoxPlot,
	model.ChartHistogram:  renderHistogram,
	model.ChartArea:       renderArea,
	model.ChartStatistics: renderStatistics,
}

// Dispatch renders subset as the given kind. An empty subset yields
// pipeline.ErrNoData and nothing is rendered.
func Dispatch(subset model.Subset, kind model.ChartKind) (*model.Artifact, error) {
	render, ok := renderers[kind]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownKind, kind)
	}
	if subset.Empty() {
		return nil, pipeline.ErrNoData
	}

	a, err := render(subset)
	if err != nil {
		return nil, fmt.Errorf("failed to render %s: %w", kind.Label(), err)
	}
	a.ID = uuid.New().String()
	a.Kind = kind
	a.Subtitle = fmt.Sprintf("%s for: %s", kind.Label(), subset.Label())
	logger.Debugf("📊 rendered %s (%d rows)", kind, len(subset.Records))
	return a, nil
}

// Dispatcher limits Dispatch to a configured set of kinds.
type Dispatcher struct {
	kinds   []model.ChartKind
	enabled map[model.ChartKind]bool
}

// NewDispatcher enables kinds; none means all of them.
func NewDispatcher(kinds []model.ChartKind) *Dispatcher {
	if len(kinds) == 0 {
		kinds = model.AllChartKinds
	}
	d := &Dispatcher{enabled: make(map[model.ChartKind]bool, len(kinds))}
	for _, k := range kinds {
		if !d.enabled[k] {
			d.enabled[k] = true
			d.kinds = append(d.kinds, k)
		}
	}
	return d
}

// Kinds returns the enabled kinds in configured order.
func (d *Dispatcher) Kinds() []model.ChartKind {
	return append([]model.ChartKind(nil), d.kinds...)
}

// Enabled reports whether kind is exposed.
func (d *Dispatcher) Enabled(kind model.ChartKind) bool { return d.enabled[kind] }

func (d *Dispatcher) Dispatch(subset model.Subset, kind model.ChartKind) (*model.Artifact, error) {
	if _, ok := renderers[kind]; !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownKind, kind)
	}
	if !d.enabled[kind] {
		return nil, fmt.Errorf("%w: %s", ErrKindDisabled, kind.Label())
	}
	return Dispatch(subset, kind)
}

// CompareBars renders one bar per indicator for a single year.
func CompareBars(values []model.IndicatorValue) (*model.Artifact, error) {
	if len(values) == 0 {
		return nil, pipeline.ErrNoData
	}
	a := &model.Artifact{
		ID:       uuid.New().String(),
		Kind:     model.ChartBar,
		Title:    fmt.Sprintf("Indicator Comparison (%d)", values[0].Year),
		XLabel:   "Indicator",
		YLabel:   "Value",
		Discrete: true,
	}
	for i, v := range values {
		a.Points = append(a.Points, model.Point{X: float64(i), Y: v.Value, Label: v.IndicatorName})
	}
	return a, nil
}

// ------------------- Renderers -------------------

func yearValuePoints(subset model.Subset) []model.Point {
	points := make([]model.Point, len(subset.Records))
	for i, rec := range subset.Records {
		points[i] = model.Point{X: float64(rec.Year), Y: rec.Value}
	}
	return points
}

// yearlyMeans collapses the subset to one point per year, averaging the
// values of every selected indicator in that year. Years stay ascending.
func yearlyMeans(subset model.Subset) []model.Point {
	var points []model.Point
	var group []float64
	flush := func(year int) {
		if len(group) > 0 {
			points = append(points, model.Point{X: float64(year), Y: stat.Mean(group, nil)})
			group = group[:0]
		}
	}
	for i, rec := range subset.Records {
		if i > 0 && rec.Year != subset.Records[i-1].Year {
			flush(subset.Records[i-1].Year)
		}
		group = append(group, rec.Value)
	}
	if n := len(subset.Records); n > 0 {
		flush(subset.Records[n-1].Year)
	}
	return points
}

func renderLine(subset model.Subset) (*model.Artifact, error) {
	return &model.Artifact{
		Title:     "Trend Over Time",
		XLabel:    "Year",
		YLabel:    "Value",
		Points:    yearlyMeans(subset),
		Connected: true,
		Markers:   true,
	}, nil
}

func renderBar(subset model.Subset) (*model.Artifact, error) {
	points := yearlyMeans(subset)
	for i := range points {
		points[i].Label = strconv.Itoa(int(points[i].X))
		points[i].X = float64(i)
	}
	return &model.Artifact{
		Title:    "Value Each Year",
		XLabel:   "Year",
		YLabel:   "Value",
		Points:   points,
		Discrete: true,
	}, nil
}

func renderScatter(subset model.Subset) (*model.Artifact, error) {
	return &model.Artifact{
		Title:   "Scatter Plot",
		XLabel:  "Year",
		YLabel:  "Value",
		Points:  yearValuePoints(subset),
		Markers: true,
	}, nil
}

func renderBoxPlot(subset model.Subset) (*model.Artifact, error) {
	box, err := pipeline.BoxStats(subset.Values())
	if err != nil {
		return nil, err
	}
	return &model.Artifact{
		Title:  "Value Distribution",
		YLabel: "Value",
		Box:    box,
	}, nil
}

func renderHistogram(subset model.Subset) (*model.Artifact, error) {
	h, err := pipeline.Histogram(subset.Values(), pipeline.HistogramBins)
	if err != nil {
		return nil, err
	}
	return &model.Artifact{
		Title:     "Value Frequency Distribution",
		XLabel:    "Value",
		YLabel:    "Frequency",
		Histogram: h,
	}, nil
}

func renderArea(subset model.Subset) (*model.Artifact, error) {
	return &model.Artifact{
		Title:     "Trend Over Time (Area)",
		XLabel:    "Year",
		YLabel:    "Value",
		Points:    yearlyMeans(subset),
		Connected: true,
		Markers:   true,
		Filled:    true,
	}, nil
}

func renderStatistics(subset model.Subset) (*model.Artifact, error) {
	summary, err := pipeline.Describe(subset.Values())
	if err != nil {
		return nil, err
	}
	rows := make([]model.DataPoint, len(subset.Records))
	for i, rec := range subset.Records {
		rows[i] = model.DataPoint{
			Year:          rec.Year,
			Value:         pipeline.FormatKPI(rec.Value),
			IndicatorCode: rec.IndicatorCode,
		}
	}
	return &model.Artifact{
		Title:   "Basic Statistics",
		Summary: summary,
		Rows:    rows,
	}, nil
}
