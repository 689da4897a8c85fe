package chart

import (
	"fmt"
	"io"
	"math"

	gochart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"go-trade-dashboard/internal/model"
	"go-trade-dashboard/internal/pipeline"
)

const (
	sparklineWidth  = 240
	sparklineHeight = 48
)

// WriteSparkline draws a small axis-less SVG trend of the subset's values by year.
func WriteSparkline(subset model.Subset, w io.Writer) error {
	if subset.Empty() {
		return pipeline.ErrNoData
	}

	xs := make([]float64, len(subset.Records))
	ys := make([]float64, len(subset.Records))
	for i, rec := range subset.Records {
		xs[i] = float64(rec.Year)
		ys[i] = rec.Value
	}
	// a single point needs a second one to span the x range
	if len(xs) == 1 {
		xs = append(xs, xs[0]+1)
		ys = append(ys, ys[0])
	}

	ch := gochart.Chart{
		Width:      sparklineWidth,
		Height:     sparklineHeight,
		Background: gochart.Style{Padding: gochart.Box{Top: 4, Left: 4, Right: 4, Bottom: 4}},
		XAxis:      gochart.XAxis{Style: gochart.Hidden()},
		YAxis:      gochart.YAxis{Style: gochart.Hidden()},
		Series: []gochart.Series{
			gochart.ContinuousSeries{
				Name:    subset.Label(),
				XValues: xs,
				YValues: ys,
				Style: gochart.Style{
					StrokeColor: drawing.Color{R: 139, G: 0, B: 0, A: 255},
					StrokeWidth: 1.5,
					FillColor:   drawing.Color{R: 255, G: 99, B: 71, A: 102},
				},
			},
		},
	}
	// flat series: give the y axis a non-zero span
	if lo, hi := minMax(ys); lo == hi {
		ch.YAxis.Range = &gochart.ContinuousRange{Min: lo - 1, Max: hi + 1}
	}
	if err := ch.Render(gochart.SVG, w); err != nil {
		return fmt.Errorf("failed to render sparkline: %w", err)
	}
	return nil
}

func minMax(vs []float64) (float64, float64) {
	lo, hi := vs[0], vs[0]
	for _, v := range vs[1:] {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	return lo, hi
}
