package pipeline

import (
	"fmt"
	"math"
	"sort"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"

	"go-trade-dashboard/internal/model"
)

const (
	// HistogramBins is the fixed bin count of the Histogram view.
	HistogramBins = 10
	// DensityGridSize is the number of points on the kernel density curve.
	DensityGridSize = 200
	whiskerFactor   = 1.5
)

var kpiPrinter = message.NewPrinter(language.English)

// ------------------- KPIs -------------------

// ComputeKPI returns max, min and mean of the subset's values, each also
// formatted with thousands separators and two decimals.
func ComputeKPI(subset model.Subset) (*model.KPI, error) {
	if subset.Empty() {
		return nil, ErrNoData
	}
	vals := subset.Values()
	kpi := &model.KPI{
		Max:  vals[0],
		Min:  vals[0],
		Mean: stat.Mean(vals, nil),
	}
	for _, v := range vals[1:] {
		kpi.Max = math.Max(kpi.Max, v)
		kpi.Min = math.Min(kpi.Min, v)
	}
	kpi.MaxText = FormatKPI(kpi.Max)
	kpi.MinText = FormatKPI(kpi.Min)
	kpi.AvgText = FormatKPI(kpi.Mean)
	return kpi, nil
}

// FormatKPI renders v like 1,234,567.89.
func FormatKPI(v float64) string {
	return kpiPrinter.Sprintf("%.2f", v)
}

// ------------------- Descriptive statistics -------------------

// Describe computes count, mean, sample std, min, quartiles and max.
func Describe(values []float64) (*model.Summary, error) {
	if len(values) == 0 {
		return nil, ErrNoData
	}
	sorted := sortedCopy(values)
	s := &model.Summary{
		Count: len(sorted),
		Mean:  stat.Mean(sorted, nil),
		Min:   sorted[0],
		P25:   Percentile(sorted, 0.25),
		P50:   Percentile(sorted, 0.50),
		P75:   Percentile(sorted, 0.75),
		Max:   sorted[len(sorted)-1],
	}
	if len(sorted) > 1 {
		std := stat.StdDev(sorted, nil)
		s.Std = &std
	}
	return s, nil
}

// Percentile uses linear interpolation between closest ranks at position
// (n-1)*p. sorted must be ascending and non-empty.
func Percentile(sorted []float64, p float64) float64 {
	n := len(sorted)
	if n == 1 {
		return sorted[0]
	}
	pos := float64(n-1) * p
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	if lo == hi {
		return sorted[lo]
	}
	frac := pos - float64(lo)
	return sorted[lo] + (sorted[hi]-sorted[lo])*frac
}

// BoxStats computes the five-number summary with whiskers at 1.5×IQR.
func BoxStats(values []float64) (*model.BoxStats, error) {
	if len(values) == 0 {
		return nil, ErrNoData
	}
	sorted := sortedCopy(values)
	b := &model.BoxStats{
		Min:    sorted[0],
		Q1:     Percentile(sorted, 0.25),
		Median: Percentile(sorted, 0.50),
		Q3:     Percentile(sorted, 0.75),
		Max:    sorted[len(sorted)-1],
	}
	b.IQR = b.Q3 - b.Q1
	b.LowerFence = b.Q1 - whiskerFactor*b.IQR
	b.UpperFence = b.Q3 + whiskerFactor*b.IQR

	b.WhiskerLow, b.WhiskerHigh = b.Q1, b.Q3
	for _, v := range sorted {
		if v >= b.LowerFence {
			b.WhiskerLow = math.Min(v, b.Q1)
			break
		}
	}
	for i := len(sorted) - 1; i >= 0; i-- {
		if sorted[i] <= b.UpperFence {
			b.WhiskerHigh = math.Max(sorted[i], b.Q3)
			break
		}
	}

	b.Outliers = []float64{}
	for _, v := range sorted {
		if v < b.LowerFence || v > b.UpperFence {
			b.Outliers = append(b.Outliers, v)
		}
	}
	return b, nil
}

// ------------------- Histogram -------------------

// Histogram buckets values into equal-width bins between min and max (the
// last bin includes max) and overlays a Gaussian kernel density estimate
// scaled to counts. The density is omitted when fewer than two distinct values exist.
func Histogram(values []float64, bins int) (*model.Histogram, error) {
	if len(values) == 0 {
		return nil, ErrNoData
	}
	if bins < 1 {
		return nil, fmt.Errorf("histogram needs at least one bin, got %d", bins)
	}
	sorted := sortedCopy(values)
	lo, hi := sorted[0], sorted[len(sorted)-1]
	if lo == hi {
		lo, hi = lo-0.5, hi+0.5
	}
	width := (hi - lo) / float64(bins)

	h := &model.Histogram{Bins: make([]model.Bin, bins), BinWidth: width}
	for i := range h.Bins {
		h.Bins[i].Low = lo + float64(i)*width
		h.Bins[i].High = lo + float64(i+1)*width
	}
	h.Bins[bins-1].High = hi
	for _, v := range sorted {
		idx := int((v - lo) / width)
		if idx >= bins {
			idx = bins - 1
		}
		if idx < 0 {
			idx = 0
		}
		h.Bins[idx].Count++
	}

	h.Density = kernelDensity(sorted, width)
	return h, nil
}

// kernelDensity evaluates a Gaussian KDE (Scott's bandwidth) over [min, max],
// scaled by n*binWidth so it overlays the bin counts.
func kernelDensity(sorted []float64, binWidth float64) []model.Point {
	n := len(sorted)
	if n < 2 {
		return nil
	}
	std := stat.StdDev(sorted, nil)
	if std == 0 || math.IsNaN(std) {
		return nil
	}
	bw := std * math.Pow(float64(n), -1.0/5.0)
	kernels := make([]distuv.Normal, n)
	for i, x := range sorted {
		kernels[i] = distuv.Normal{Mu: x, Sigma: bw}
	}

	lo, hi := sorted[0], sorted[n-1]
	step := (hi - lo) / float64(DensityGridSize-1)
	scale := float64(n) * binWidth
	points := make([]model.Point, DensityGridSize)
	for i := range points {
		x := lo + float64(i)*step
		var d float64
		for _, k := range kernels {
			d += k.Prob(x)
		}
		points[i] = model.Point{X: x, Y: d / float64(n) * scale}
	}
	return points
}

func sortedCopy(values []float64) []float64 {
	out := append([]float64(nil), values...)
	sort.Float64s(out)
	return out
}
