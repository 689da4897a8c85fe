package model

import (
	"fmt"
	"strings"
)

// ChartKind tags one of the dashboard visualizations.
type ChartKind string

const (
	ChartLine       ChartKind = "line"
	ChartBar        ChartKind = "bar"
	ChartScatter    ChartKind = "scatter"
	ChartBoxPlot    ChartKind = "boxplot"
	ChartHistogram  ChartKind = "histogram"
	ChartArea       ChartKind = "area"
	ChartStatistics ChartKind = "statistics"
)

// AllChartKinds in the order the sidebar lists them.
var AllChartKinds = []ChartKind{
	ChartLine, ChartBar, ChartScatter, ChartBoxPlot, ChartHistogram, ChartArea, ChartStatistics,
}

var chartLabels = map[ChartKind]string{
	ChartLine:       "Line Chart",
	ChartBar:        "Bar Chart",
	ChartScatter:    "Scatter Plot",
	ChartBoxPlot:    "Box Plot",
	ChartHistogram:  "Histogram",
	ChartArea:       "Area Chart",
	ChartStatistics: "Statistics",
}

// Label returns the human readable name shown in the chart chooser.
func (k ChartKind) Label() string {
	if l, ok := chartLabels[k]; ok {
		return l
	}
	return string(k)
}

// ParseChartKind accepts either a tag ("boxplot") or a chooser label ("Box Plot").
func ParseChartKind(s string) (ChartKind, error) {
	norm := strings.ToLower(strings.TrimSpace(s))
	norm = strings.NewReplacer(" ", "", "_", "", "-", "").Replace(norm)
	norm = strings.TrimSuffix(norm, "chart")
	norm = strings.TrimSuffix(norm, "plot")

	switch norm {
	case "line":
		return ChartLine, nil
	case "bar":
		return ChartBar, nil
	case "scatter":
		return ChartScatter, nil
	case "box":
		return ChartBoxPlot, nil
	case "histogram", "hist":
		return ChartHistogram, nil
	case "area":
		return ChartArea, nil
	case "statistics", "stats":
		return ChartStatistics, nil
	}
	return "", fmt.Errorf("unknown chart kind: %q", s)
}

// Point is one (x, y) sample; Label carries the categorical x label when the axis is discrete.
type Point struct {
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	Label string  `json:"label,omitempty"`
}

// BoxStats is the five-number summary plus IQR fences.
type BoxStats struct {
	Min         float64   `json:"min"`
	Q1          float64   `json:"q1"`
	Median      float64   `json:"median"`
	Q3          float64   `json:"q3"`
	Max         float64   `json:"max"`
	IQR         float64   `json:"iqr"`
	LowerFence  float64   `json:"lower_fence"`
	UpperFence  float64   `json:"upper_fence"`
	WhiskerLow  float64   `json:"whisker_low"`
	WhiskerHigh float64   `json:"whisker_high"`
	Outliers    []float64 `json:"outliers"`
}

// Bin is one equal-width histogram bucket [Low, High).
type Bin struct {
	Low   float64 `json:"low"`
	High  float64 `json:"high"`
	Count int     `json:"count"`
}

// Histogram holds the bins and a density curve scaled to bin counts.
type Histogram struct {
	Bins     []Bin   `json:"bins"`
	BinWidth float64 `json:"bin_width"`
	Density  []Point `json:"density,omitempty"` // empty when a kernel estimate is undefined
}

// Summary is the descriptive statistics table.
type Summary struct {
	Count int      `json:"count"`
	Mean  float64  `json:"mean"`
	Std   *float64 `json:"std"` // nil when Count < 2
	Min   float64  `json:"min"`
	P25   float64  `json:"p25"`
	P50   float64  `json:"p50"`
	P75   float64  `json:"p75"`
	Max   float64  `json:"max"`
}

// Rows returns the summary as (statistic, value) pairs in describe order.
func (s Summary) Rows() [][2]string {
	f := func(v float64) string { return fmt.Sprintf("%.2f", v) }
	std := "NaN"
	if s.Std != nil {
		std = f(*s.Std)
	}
	return [][2]string{
		{"count", fmt.Sprintf("%d", s.Count)},
		{"mean", f(s.Mean)},
		{"std", std},
		{"min", f(s.Min)},
		{"25%", f(s.P25)},
		{"50%", f(s.P50)},
		{"75%", f(s.P75)},
		{"max", f(s.Max)},
	}
}

// DataPoint is one row of the Statistics view's raw data table.
type DataPoint struct {
	Year          int    `json:"year"`
	Value         string `json:"value"` // formatted to two decimals
	IndicatorCode string `json:"indicator_code"`
}

// Artifact is a backend-independent description of one rendered view.
type Artifact struct {
	ID        string      `json:"id"`
	Kind      ChartKind   `json:"kind"`
	Title     string      `json:"title"`
	Subtitle  string      `json:"subtitle,omitempty"`
	XLabel    string      `json:"x_label,omitempty"`
	YLabel    string      `json:"y_label,omitempty"`
	Points    []Point     `json:"points,omitempty"`
	Connected bool        `json:"connected,omitempty"`
	Markers   bool        `json:"markers,omitempty"`
	Filled    bool        `json:"filled,omitempty"`
	Discrete  bool        `json:"discrete,omitempty"` // x axis is categorical
	Box       *BoxStats   `json:"box,omitempty"`
	Histogram *Histogram  `json:"histogram,omitempty"`
	Summary   *Summary    `json:"summary,omitempty"`
	Rows      []DataPoint `json:"rows,omitempty"`
}
