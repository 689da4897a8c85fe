package chart

import (
	"errors"
	"fmt"
	"image/color"
	"io"
	"strings"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"go-trade-dashboard/internal/model"
)

// ErrNotPlottable is returned for artifacts that are tables, not figures.
var ErrNotPlottable = errors.New("artifact has no figure")

var (
	colorDefault    = color.RGBA{R: 31, G: 119, B: 180, A: 255}
	colorSkyBlue    = color.RGBA{R: 135, G: 206, B: 235, A: 255}
	colorLightGreen = color.RGBA{R: 144, G: 238, B: 144, A: 255}
	colorTomato     = color.NRGBA{R: 255, G: 99, B: 71, A: 102}
	colorDarkRed    = color.RGBA{R: 139, G: 0, B: 0, A: 255}
	colorHistFill   = color.NRGBA{R: 31, G: 119, B: 180, A: 191}
)

// ImageFormats are the formats WriteImage accepts.
var ImageFormats = []string{"png", "svg"}

// FigureSize returns the figure size in inches for kind; the box plot is narrower.
func FigureSize(kind model.ChartKind, width, height float64) (float64, float64) {
	if kind == model.ChartBoxPlot {
		return width * 0.6, height
	}
	return width, height
}

// WriteImage draws the artifact with gonum/plot and encodes it as png or svg.
// width and height are in inches.
func WriteImage(a *model.Artifact, format string, w io.Writer, width, height float64) error {
	format = strings.ToLower(format)
	if format != "png" && format != "svg" {
		return fmt.Errorf("unsupported image format: %q", format)
	}

	p, err := buildPlot(a)
	if err != nil {
		return err
	}

	wt, err := p.WriterTo(vg.Length(width)*vg.Inch, vg.Length(height)*vg.Inch, format)
	if err != nil {
		return fmt.Errorf("failed to create %s canvas: %w", format, err)
	}
	if _, err := wt.WriteTo(w); err != nil {
		return fmt.Errorf("failed to write %s: %w", format, err)
	}
	return nil
}

func buildPlot(a *model.Artifact) (*plot.Plot, error) {
	if a == nil {
		return nil, ErrNotPlottable
	}
	p := plot.New()
	p.Title.Text = a.Title
	p.Title.TextStyle.Font.Size = vg.Points(14)
	p.X.Label.Text = a.XLabel
	p.Y.Label.Text = a.YLabel

	var err error
	switch {
	case a.Kind == model.ChartStatistics:
		return nil, fmt.Errorf("%s: %w", a.Kind.Label(), ErrNotPlottable)
	case a.Box != nil:
		err = addBox(p, a.Box)
	case a.Histogram != nil:
		err = addHistogram(p, a.Histogram)
	case a.Discrete:
		err = addBars(p, a.Points)
	case a.Filled:
		err = addArea(p, a.Points)
	case a.Connected:
		err = addLine(p, a.Points)
	case len(a.Points) > 0:
		err = addScatter(p, a.Points)
	default:
		return nil, ErrNotPlottable
	}
	if err != nil {
		return nil, fmt.Errorf("failed to plot %s: %w", a.Title, err)
	}
	return p, nil
}

func toXYs(points []model.Point) plotter.XYs {
	xys := make(plotter.XYs, len(points))
	for i, pt := range points {
		xys[i] = plotter.XY{X: pt.X, Y: pt.Y}
	}
	return xys
}

func addLine(p *plot.Plot, points []model.Point) error {
	line, glyphs, err := plotter.NewLinePoints(toXYs(points))
	if err != nil {
		return err
	}
	line.Color = colorDefault
	line.Width = vg.Points(1.5)
	glyphs.Shape = draw.CircleGlyph{}
	glyphs.Color = colorDefault
	glyphs.Radius = vg.Points(3)

	p.Add(plotter.NewGrid(), line, glyphs)
	return nil
}

func addScatter(p *plot.Plot, points []model.Point) error {
	scatter, err := plotter.NewScatter(toXYs(points))
	if err != nil {
		return err
	}
	scatter.GlyphStyle.Shape = draw.CircleGlyph{}
	scatter.GlyphStyle.Color = colorDefault
	scatter.GlyphStyle.Radius = vg.Points(3)

	p.Add(plotter.NewGrid(), scatter)
	return nil
}

func addBars(p *plot.Plot, points []model.Point) error {
	values := make(plotter.Values, len(points))
	labels := make([]string, len(points))
	for i, pt := range points {
		values[i] = pt.Y
		labels[i] = pt.Label
	}
	bars, err := plotter.NewBarChart(values, vg.Points(20))
	if err != nil {
		return err
	}
	bars.Color = colorSkyBlue
	bars.LineStyle.Width = vg.Length(0)

	p.Add(bars)
	p.NominalX(labels...)
	return nil
}

// addArea fills between the line and y=0, then draws the line on top.
func addArea(p *plot.Plot, points []model.Point) error {
	xys := toXYs(points)
	outline := make(plotter.XYs, 0, len(xys)+2)
	outline = append(outline, plotter.XY{X: xys[0].X, Y: 0})
	outline = append(outline, xys...)
	outline = append(outline, plotter.XY{X: xys[len(xys)-1].X, Y: 0})

	fill, err := plotter.NewPolygon(outline)
	if err != nil {
		return err
	}
	fill.Color = colorTomato
	fill.LineStyle.Width = vg.Length(0)

	line, glyphs, err := plotter.NewLinePoints(xys)
	if err != nil {
		return err
	}
	line.Color = colorDarkRed
	line.Width = vg.Points(0.8)
	glyphs.Shape = draw.CircleGlyph{}
	glyphs.Color = colorDarkRed
	glyphs.Radius = vg.Points(1.5)

	p.Add(plotter.NewGrid(), fill, line, glyphs)
	return nil
}

// addBox draws a box plot using the precomputed quartiles and whiskers.
func addBox(p *plot.Plot, b *model.BoxStats) error {
	values := make(plotter.Values, 0, 5+len(b.Outliers))
	values = append(values, b.WhiskerLow, b.Q1, b.Median, b.Q3, b.WhiskerHigh)
	values = append(values, b.Outliers...)

	box, err := plotter.NewBoxPlot(vg.Points(60), 0, values)
	if err != nil {
		return err
	}
	box.Median = b.Median
	box.Quartile1 = b.Q1
	box.Quartile3 = b.Q3
	box.AdjLow = b.WhiskerLow
	box.AdjHigh = b.WhiskerHigh
	box.Min = b.Min
	box.Max = b.Max
	box.Outside = box.Outside[:0]
	for i, v := range box.Values {
		if v < b.LowerFence || v > b.UpperFence {
			box.Outside = append(box.Outside, i)
		}
	}
	box.FillColor = colorLightGreen

	p.Add(box)
	p.HideX()
	return nil
}

func addHistogram(p *plot.Plot, h *model.Histogram) error {
	bins := make([]plotter.HistogramBin, len(h.Bins))
	for i, b := range h.Bins {
		bins[i] = plotter.HistogramBin{Min: b.Low, Max: b.High, Weight: float64(b.Count)}
	}
	hist := &plotter.Histogram{
		Bins:      bins,
		Width:     h.BinWidth,
		FillColor: colorHistFill,
		LineStyle: plotter.DefaultLineStyle,
	}
	p.Add(plotter.NewGrid(), hist)

	if len(h.Density) > 0 {
		kde, err := plotter.NewLine(toXYs(h.Density))
		if err != nil {
			return err
		}
		kde.Color = colorDefault
		kde.Width = vg.Points(1.5)
		p.Add(kde)
	}
	return nil
}
