package handler_test

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-trade-dashboard/internal/api"
	"go-trade-dashboard/internal/api/handler"
	"go-trade-dashboard/internal/chart"
	"go-trade-dashboard/internal/model"
	"go-trade-dashboard/internal/pipeline"
	"go-trade-dashboard/pkg/router"
)

const (
	exportsName = "Merchandise exports (current US$)"
	tradeName   = "Merchandise trade (% of GDP)"
)

const fixture = "Year,Indicator Name,Indicator Code,Value\n" +
	"#date+year,#indicator+name,#indicator+code,#indicator+value+num\n" +
	"2019,Merchandise exports (current US$),TX.VAL.MRCH.CD.WT,100\n" +
	"2020,Merchandise exports (current US$),TX.VAL.MRCH.CD.WT,120\n" +
	"2020,Merchandise trade (% of GDP),TG.VAL.TOTL.GD.ZS,41.5\n" +
	"2021,Merchandise trade (% of GDP),TG.VAL.TOTL.GD.ZS,n/a\n" +
	"2020,Other,OTH,5\n"

func newServer(t *testing.T, content string, kinds ...model.ChartKind) *router.Router {
	t.Helper()
	path := filepath.Join(t.TempDir(), "trade.csv")
	if content != "" {
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}

	h := &handler.DashboardHandler{
		Service:       pipeline.NewService(path, nil),
		Charts:        chart.NewDispatcher(kinds),
		Title:         "Sri Lanka Trade Indicator Analysis",
		ChartWidthIn:  10,
		ChartHeightIn: 4,
	}
	r := router.New()
	api.RegisterRoutes(r, h)
	return r
}

func get(t *testing.T, r http.Handler, path string, query url.Values) *httptest.ResponseRecorder {
	t.Helper()
	target := path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), v), rec.Body.String())
}

func TestAbout(t *testing.T) {
	r := newServer(t, fixture, model.ChartLine, model.ChartBar)
	rec := get(t, r, "/api/v1/about", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var about model.AboutInfo
	decode(t, rec, &about)
	assert.Equal(t, []model.ChartKind{model.ChartLine, model.ChartBar}, about.ChartKinds)
	assert.Equal(t, "Sri Lanka Trade Indicator Analysis", about.Title)
}

func TestListIndicators(t *testing.T) {
	rec := get(t, newServer(t, fixture), "/api/v1/indicators", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Indicators []string `json:"indicators"`
		Count      int      `json:"count"`
	}
	decode(t, rec, &body)
	assert.Equal(t, []string{exportsName, tradeName, "Other"}, body.Indicators)
	assert.Equal(t, 3, body.Count)
}

func TestDashboardScenario(t *testing.T) {
	q := url.Values{"indicator": {exportsName}, "chart": {"Line Chart"}, "raw": {"true"}}
	rec := get(t, newServer(t, fixture), "/api/v1/dashboard", q)
	require.Equal(t, http.StatusOK, rec.Code)

	var view model.DashboardView
	decode(t, rec, &view)
	require.NotNil(t, view.KPI)
	assert.Equal(t, "120.00", view.KPI.MaxText)
	assert.Equal(t, "100.00", view.KPI.MinText)
	assert.Equal(t, "110.00", view.KPI.AvgText)
	require.NotNil(t, view.Artifact)
	assert.Equal(t, model.ChartLine, view.Artifact.Kind)
	assert.Equal(t, "Merchandise_exports__current_US___data.csv", view.ExportName)
	require.Len(t, view.Records, 2)
	assert.Equal(t, 2019, view.Records[0].Year)
	assert.Empty(t, view.Warning)
}

func TestDashboardNoDataIsAWarning(t *testing.T) {
	q := url.Values{"indicator": {"Not in the file"}, "chart": {"histogram"}}
	rec := get(t, newServer(t, fixture), "/api/v1/dashboard", q)
	require.Equal(t, http.StatusOK, rec.Code)

	var view model.DashboardView
	decode(t, rec, &view)
	assert.Nil(t, view.KPI)
	assert.Nil(t, view.Artifact)
	assert.Equal(t, "No data for the selected indicator.", view.Warning)
}

func TestDashboardDefaultsToFirstIndicator(t *testing.T) {
	rec := get(t, newServer(t, fixture), "/api/v1/dashboard", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var view model.DashboardView
	decode(t, rec, &view)
	assert.Equal(t, []string{exportsName}, view.Indicators)
	assert.Equal(t, model.ChartLine, view.Chart)
}

func TestDashboardLoaderErrors(t *testing.T) {
	cases := []struct {
		name    string
		content string
		status  int
		kind    string
	}{
		{"missing file", "", http.StatusNotFound, "NotFound"},
		{"schema", "Indicator Name,Indicator Code\n#,#\nA,B\n", http.StatusUnprocessableEntity, "SchemaError"},
		{"parse", "Year,Indicator Name,Indicator Code,Value\n#,#,#,#\n2019,A,A1,x\n", http.StatusUnprocessableEntity, "ParseError"},
		{"empty", "Year,Indicator Name,Indicator Code,Value\n", http.StatusUnprocessableEntity, "Empty"},
		{"malformed", "Year,Indicator Name,Indicator Code,Value\n#,#,#,#\n2019,A,A1,1,9\n", http.StatusInternalServerError, "LoadError"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := get(t, newServer(t, tc.content), "/api/v1/dashboard", url.Values{"indicator": {"A"}})
			assert.Equal(t, tc.status, rec.Code)

			var body model.ErrorResponse
			decode(t, rec, &body)
			assert.Equal(t, tc.kind, body.Kind)
			assert.NotContains(t, rec.Body.String(), "artifact")
		})
	}
}

func TestDashboardRejectsDisabledKind(t *testing.T) {
	r := newServer(t, fixture, model.ChartLine)
	rec := get(t, r, "/api/v1/dashboard", url.Values{"indicator": {exportsName}, "chart": {"bar"}})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = get(t, r, "/api/v1/dashboard", url.Values{"chart": {"pie"}})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetChartFormats(t *testing.T) {
	r := newServer(t, fixture)
	q := url.Values{"indicator": {exportsName}}

	rec := get(t, r, "/api/v1/charts/bar", q)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "image/png", rec.Header().Get("Content-Type"))
	assert.True(t, bytes.HasPrefix(rec.Body.Bytes(), []byte("\x89PNG")))

	q.Set("format", "svg")
	rec = get(t, r, "/api/v1/charts/boxplot", q)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "<svg")

	q.Set("format", "html")
	rec = get(t, r, "/api/v1/charts/area", q)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "echarts")

	q.Set("format", "json")
	rec = get(t, r, "/api/v1/charts/statistics", q)
	require.Equal(t, http.StatusOK, rec.Code)
	var a model.Artifact
	decode(t, rec, &a)
	require.NotNil(t, a.Summary)
	assert.Equal(t, 2, a.Summary.Count)

	q.Set("format", "png")
	rec = get(t, r, "/api/v1/charts/statistics", q)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = get(t, r, "/api/v1/charts/line", url.Values{"indicator": {"Nope"}})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestSparkline(t *testing.T) {
	rec := get(t, newServer(t, fixture), "/api/v1/sparkline", url.Values{"indicator": {tradeName}})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "image/svg+xml", rec.Header().Get("Content-Type"))
}

func TestCompareIndicators(t *testing.T) {
	r := newServer(t, fixture)
	q := url.Values{"indicator": {exportsName, tradeName}, "year": {"2020"}}

	rec := get(t, r, "/api/v1/compare", q)
	require.Equal(t, http.StatusOK, rec.Code)
	var body struct {
		Values []model.IndicatorValue `json:"values"`
	}
	decode(t, rec, &body)
	require.Len(t, body.Values, 2)
	assert.Equal(t, 41.5, body.Values[1].Value)

	q.Set("year", "later")
	assert.Equal(t, http.StatusBadRequest, get(t, r, "/api/v1/compare", q).Code)
	q.Set("year", "1960")
	assert.Equal(t, http.StatusNotFound, get(t, r, "/api/v1/compare", q).Code)
}

func TestExportCSV(t *testing.T) {
	rec := get(t, newServer(t, fixture), "/api/v1/export", url.Values{"indicator": {tradeName}})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, `attachment; filename="Merchandise_trade____of_GDP__data.csv"`, rec.Header().Get("Content-Disposition"))

	rows, err := csv.NewReader(rec.Body).ReadAll()
	require.NoError(t, err)
	assert.Equal(t, [][]string{
		{"Year", "Indicator Name", "Indicator Code", "Value"},
		{"2020", tradeName, "TG.VAL.TOTL.GD.ZS", "41.5"},
	}, rows)
}

func TestExportOtherFormats(t *testing.T) {
	r := newServer(t, fixture)
	q := url.Values{"indicator": {exportsName}, "format": {"xlsx"}}

	rec := get(t, r, "/api/v1/export", q)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "_data.xlsx")

	q.Set("format", "parquet")
	rec = get(t, r, "/api/v1/export", q)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, bytes.HasPrefix(rec.Body.Bytes(), []byte("PAR1")))

	q.Set("format", "json")
	assert.Equal(t, http.StatusBadRequest, get(t, r, "/api/v1/export", q).Code)
}

func TestListLoads(t *testing.T) {
	r := newServer(t, fixture)
	get(t, r, "/api/v1/indicators", nil)
	get(t, r, "/api/v1/indicators", nil)

	rec := get(t, r, "/api/v1/loads", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var body struct {
		Summary pipeline.UsageMetrics `json:"summary"`
	}
	decode(t, rec, &body)
	assert.EqualValues(t, 2, body.Summary.Loads)
	assert.EqualValues(t, 1, body.Summary.CacheHits)
}

func TestReload(t *testing.T) {
	r := newServer(t, fixture)
	get(t, r, "/api/v1/indicators", nil)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v1/reload", nil))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var body struct {
		Records    int    `json:"records"`
		Indicators int    `json:"indicators"`
		Signature  string `json:"signature"`
	}
	decode(t, rec, &body)
	assert.Equal(t, 4, body.Records)
	assert.Equal(t, 3, body.Indicators)
	assert.Len(t, body.Signature, 64)

	var loads struct {
		Summary pipeline.UsageMetrics `json:"summary"`
	}
	decode(t, get(t, r, "/api/v1/loads", nil), &loads)
	assert.EqualValues(t, 2, loads.Summary.Loads)
	assert.EqualValues(t, 0, loads.Summary.CacheHits)
}

func TestReloadMissingFile(t *testing.T) {
	r := newServer(t, "")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v1/reload", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
