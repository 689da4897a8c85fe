package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-trade-dashboard/internal/config"
	"go-trade-dashboard/internal/model"
)

const sample = "Country Name,Country ISO3,Year,Indicator Name,Indicator Code,Value\n" +
	"#country+name,#country+code,#date+year,#indicator+name,#indicator+code,#indicator+value+num\n" +
	"Sri Lanka,LKA,2020,\"Merchandise exports (current US$)\",TX.VAL.MRCH.CD.WT,120\n" +
	"Sri Lanka,LKA,2019,\"Merchandise exports (current US$)\",TX.VAL.MRCH.CD.WT,100\n" +
	"Sri Lanka,LKA,2021,\"Merchandise exports (current US$)\",TX.VAL.MRCH.CD.WT,90\n"

func runCLI(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	dir := t.TempDir()
	file := filepath.Join(dir, "trade.csv")
	require.NoError(t, os.WriteFile(file, []byte(sample), 0o644))

	cfg := &config.Config{
		DataFile:      file,
		OutputDir:     filepath.Join(dir, "out"),
		ChartKinds:    model.AllChartKinds,
		ChartWidthIn:  6,
		ChartHeightIn: 3,
	}
	var out bytes.Buffer
	cmd := newRootCmd(&cli{cfg: cfg})
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), cfg.OutputDir, err
}

func writtenPath(t *testing.T, out string) string {
	t.Helper()
	const marker = "✅ wrote "
	i := strings.Index(out, marker)
	require.GreaterOrEqual(t, i, 0, out)
	rest := out[i+len(marker):]
	return rest[:strings.Index(rest, " (")]
}

func TestIndicatorsTable(t *testing.T) {
	out, _, err := runCLI(t, "indicators")
	require.NoError(t, err)
	assert.Contains(t, out, "Merchandise exports (current US$)")
	assert.Contains(t, out, "2019-2021")
}

func TestStatsPrintsKPIs(t *testing.T) {
	out, _, err := runCLI(t, "stats", "--indicator", "Merchandise exports (current US$)")
	require.NoError(t, err)
	assert.Contains(t, out, "120.00")
	assert.Contains(t, out, "90.00")
	assert.Contains(t, out, "103.33")
}

func TestStatsUnknownIndicator(t *testing.T) {
	_, _, err := runCLI(t, "stats", "-i", "Nope")
	assert.Error(t, err)
}

func TestExportWritesCSVUnderRunDir(t *testing.T) {
	out, outDir, err := runCLI(t, "export", "-f", "csv")
	require.NoError(t, err)

	path := writtenPath(t, out)
	assert.True(t, strings.HasPrefix(path, outDir))
	assert.Equal(t, "Merchandise_exports__current_US___data.csv", filepath.Base(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "Year,Indicator Name,Indicator Code,Value\n2019,"))
}

func TestRenderSVG(t *testing.T) {
	out, _, err := runCLI(t, "render", "--chart", "Box Plot", "--format", "svg")
	require.NoError(t, err)

	path := writtenPath(t, out)
	assert.True(t, strings.HasSuffix(path, "_boxplot.svg"))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "<svg")
}

func TestRenderStatisticsNotPlottable(t *testing.T) {
	_, _, err := runCLI(t, "render", "--chart", "statistics", "--format", "png")
	assert.Error(t, err)
}
