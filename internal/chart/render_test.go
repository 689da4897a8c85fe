package chart

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-trade-dashboard/internal/model"
	"go-trade-dashboard/internal/pipeline"
)

var pngMagic = []byte("\x89PNG")

func TestWriteImageEveryPlottableKind(t *testing.T) {
	subset := subsetOf(3, 9, 4, 12, 15, 2, 40)
	for _, kind := range model.AllChartKinds {
		if kind == model.ChartStatistics {
			continue
		}
		t.Run(string(kind), func(t *testing.T) {
			a, err := Dispatch(subset, kind)
			require.NoError(t, err)

			w, h := FigureSize(kind, 10, 4)
			var png bytes.Buffer
			require.NoError(t, WriteImage(a, "png", &png, w, h))
			assert.True(t, bytes.HasPrefix(png.Bytes(), pngMagic))

			var svg bytes.Buffer
			require.NoError(t, WriteImage(a, "svg", &svg, w, h))
			assert.Contains(t, svg.String(), "<svg")
		})
	}
}

func TestWriteImageSinglePoint(t *testing.T) {
	for _, kind := range []model.ChartKind{model.ChartLine, model.ChartArea, model.ChartHistogram, model.ChartBoxPlot} {
		a, err := Dispatch(subsetOf(7), kind)
		require.NoError(t, err)
		var buf bytes.Buffer
		assert.NoError(t, WriteImage(a, "png", &buf, 10, 4), kind)
	}
}

func TestWriteImageRejects(t *testing.T) {
	a, err := Dispatch(subsetOf(1, 2), model.ChartStatistics)
	require.NoError(t, err)
	assert.ErrorIs(t, WriteImage(a, "png", &bytes.Buffer{}, 10, 4), ErrNotPlottable)

	line, err := Dispatch(subsetOf(1, 2), model.ChartLine)
	require.NoError(t, err)
	assert.Error(t, WriteImage(line, "gif", &bytes.Buffer{}, 10, 4))
}

func TestFigureSize(t *testing.T) {
	w, h := FigureSize(model.ChartBoxPlot, 10, 4)
	assert.Equal(t, 6.0, w)
	assert.Equal(t, 4.0, h)
}

func TestWriteHTML(t *testing.T) {
	subset := subsetOf(10, 20, 30)
	kpi, err := pipeline.ComputeKPI(subset)
	require.NoError(t, err)

	for _, kind := range []model.ChartKind{model.ChartLine, model.ChartBar, model.ChartScatter, model.ChartBoxPlot, model.ChartHistogram, model.ChartArea} {
		a, err := Dispatch(subset, kind)
		require.NoError(t, err)

		var buf bytes.Buffer
		require.NoError(t, WriteHTML(a, kpi, &buf), kind)
		assert.Contains(t, buf.String(), "echarts")
		assert.Contains(t, buf.String(), a.Title)
	}

	stats, err := Dispatch(subset, model.ChartStatistics)
	require.NoError(t, err)
	assert.ErrorIs(t, WriteHTML(stats, kpi, &bytes.Buffer{}), ErrNotPlottable)
}

func TestWriteSparkline(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteSparkline(subsetOf(1, 3, 2), &buf))
	assert.Contains(t, buf.String(), "<svg")

	buf.Reset()
	require.NoError(t, WriteSparkline(subsetOf(5), &buf), "single flat point")

	assert.ErrorIs(t, WriteSparkline(model.Subset{}, &buf), pipeline.ErrNoData)
}
