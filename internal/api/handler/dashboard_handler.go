package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"path"
	"strconv"
	"strings"

	"go-trade-dashboard/internal/chart"
	"go-trade-dashboard/internal/logger"
	"go-trade-dashboard/internal/model"
	"go-trade-dashboard/internal/pipeline"
	"go-trade-dashboard/internal/store"
)

const noDataWarning = "No data for the selected indicator."

// DashboardHandler serves the dashboard API for one data file.
type DashboardHandler struct {
	Service       *pipeline.Service
	Charts        *chart.Dispatcher
	Title         string
	ChartWidthIn  float64
	ChartHeightIn float64
}

// About describes the dashboard
// @Summary Dashboard description
// @Description Title, data file, key indicators and the chart kinds this deployment exposes
// @Tags dashboard
// @Produce json
// @Success 200 {object} model.AboutInfo
// @Router /about [get]
func (h *DashboardHandler) About(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, model.AboutInfo{
		Title:         h.Title,
		DataFile:      h.Service.DataFile,
		KeyIndicators: h.Service.KeyIndicators,
		ChartKinds:    h.Charts.Kinds(),
	})
}

// ListIndicators lists the selectable indicators
// @Summary List indicators
// @Description Distinct indicator names in the loaded dataset, sorted
// @Tags dashboard
// @Produce json
// @Success 200 {object} map[string]interface{} "indicators and count"
// @Failure 404 {object} model.ErrorResponse "Data file not found"
// @Failure 422 {object} model.ErrorResponse "Data file unusable"
// @Failure 500 {object} model.ErrorResponse "Load error"
// @Router /indicators [get]
func (h *DashboardHandler) ListIndicators(w http.ResponseWriter, r *http.Request) {
	names, err := h.Service.Indicators()
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"indicators": names,
		"count":      len(names),
	})
}

// ListYears lists the years available for the selected indicators
// @Summary List years
// @Tags dashboard
// @Produce json
// @Param indicator query []string false "Indicator name (repeatable)" collectionFormat(multi)
// @Success 200 {object} map[string]interface{} "years"
// @Failure 404 {object} model.ErrorResponse "Data file not found"
// @Router /years [get]
func (h *DashboardHandler) ListYears(w http.ResponseWriter, r *http.Request) {
	subset, ok := h.selectFromQuery(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"indicators": subset.Indicators,
		"years":      pipeline.Years(subset),
	})
}

// GetDashboard runs one render pass
// @Summary Render the dashboard
// @Description KPIs and one chart artifact for the selected indicators. An indicator without rows yields a warning and no KPIs.
// @Tags dashboard
// @Produce json
// @Param indicator query []string false "Indicator name (repeatable), defaults to the first indicator" collectionFormat(multi)
// @Param chart query string false "Chart kind, e.g. line or \"Box Plot\""
// @Param raw query bool false "Include the subset rows"
// @Success 200 {object} model.DashboardView
// @Failure 400 {object} model.ErrorResponse "Invalid chart kind"
// @Failure 404 {object} model.ErrorResponse "Data file not found"
// @Failure 422 {object} model.ErrorResponse "Data file unusable"
// @Failure 500 {object} model.ErrorResponse "Load error"
// @Router /dashboard [get]
func (h *DashboardHandler) GetDashboard(w http.ResponseWriter, r *http.Request) {
	req, err := h.parseRequest(r.URL.Query().Get("chart"), r)
	if err != nil {
		writeError(w, err)
		return
	}

	subset, ok := h.selectFromQuery(w, r)
	if !ok {
		return
	}

	view := model.DashboardView{
		Title:      h.Title,
		Indicators: subset.Indicators,
		Chart:      req.Chart,
	}
	if subset.Empty() {
		view.Warning = noDataWarning
		writeJSON(w, http.StatusOK, view)
		return
	}

	if view.KPI, err = pipeline.ComputeKPI(subset); err != nil {
		writeError(w, err)
		return
	}
	artifact, err := h.Charts.Dispatch(subset, req.Chart)
	if err != nil {
		writeError(w, err)
		return
	}
	view.Artifact = artifact
	view.ExportName = pipeline.ExportFileName(subset.Label())
	if req.Raw {
		view.Records = subset.Records
	}
	writeJSON(w, http.StatusOK, view)
}

// GetChart renders one chart as an image or page
// @Summary Render a chart
// @Tags charts
// @Produce png
// @Produce image/svg+xml
// @Produce html
// @Produce json
// @Param kind path string true "Chart kind"
// @Param indicator query []string false "Indicator name (repeatable)" collectionFormat(multi)
// @Param format query string false "png (default), svg, html or json"
// @Success 200 {file} file
// @Failure 400 {object} model.ErrorResponse "Invalid chart kind or format"
// @Failure 404 {object} model.ErrorResponse "No data"
// @Router /charts/{kind} [get]
func (h *DashboardHandler) GetChart(w http.ResponseWriter, r *http.Request) {
	req, err := h.parseRequest(path.Base(r.URL.Path), r)
	if err != nil {
		writeError(w, err)
		return
	}
	subset, ok := h.selectFromQuery(w, r)
	if !ok {
		return
	}
	artifact, err := h.Charts.Dispatch(subset, req.Chart)
	if err != nil {
		writeError(w, err)
		return
	}

	format := strings.ToLower(r.URL.Query().Get("format"))
	if format == "" {
		format = "png"
	}
	var buf bytes.Buffer
	switch format {
	case "json":
		writeJSON(w, http.StatusOK, artifact)
		return
	case "html":
		kpi, _ := pipeline.ComputeKPI(subset)
		err = chart.WriteHTML(artifact, kpi, &buf)
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
	case "png", "svg":
		width, height := chart.FigureSize(req.Chart, h.ChartWidthIn, h.ChartHeightIn)
		err = chart.WriteImage(artifact, format, &buf, width, height)
		w.Header().Set("Content-Type", imageContentType(format))
	default:
		writeJSON(w, http.StatusBadRequest, model.ErrorResponse{Error: "unsupported format: " + format, Kind: "BadRequest"})
		return
	}
	if err != nil {
		w.Header().Del("Content-Type")
		writeError(w, err)
		return
	}
	w.Write(buf.Bytes())
}

// GetSparkline renders a small trend line
// @Summary Indicator sparkline
// @Tags charts
// @Produce image/svg+xml
// @Param indicator query []string false "Indicator name (repeatable)" collectionFormat(multi)
// @Success 200 {file} file
// @Failure 404 {object} model.ErrorResponse "No data"
// @Router /sparkline [get]
func (h *DashboardHandler) GetSparkline(w http.ResponseWriter, r *http.Request) {
	subset, ok := h.selectFromQuery(w, r)
	if !ok {
		return
	}
	var buf bytes.Buffer
	if err := chart.WriteSparkline(subset, &buf); err != nil {
		writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "image/svg+xml")
	w.Write(buf.Bytes())
}

// CompareIndicators compares several indicators in one year
// @Summary Year comparison
// @Description One value per selected indicator for the given year, as a bar artifact
// @Tags charts
// @Produce json
// @Param indicator query []string true "Indicator name (repeatable)" collectionFormat(multi)
// @Param year query int true "Year"
// @Success 200 {object} map[string]interface{} "values and artifact"
// @Failure 400 {object} model.ErrorResponse "Missing or invalid year"
// @Failure 404 {object} model.ErrorResponse "No data for that year"
// @Router /compare [get]
func (h *DashboardHandler) CompareIndicators(w http.ResponseWriter, r *http.Request) {
	year, err := strconv.Atoi(r.URL.Query().Get("year"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, model.ErrorResponse{Error: "year must be an integer", Kind: "BadRequest"})
		return
	}
	names, err := h.indicatorNames(r)
	if err != nil {
		writeError(w, err)
		return
	}
	values, err := h.Service.Compare(names, year)
	if err != nil {
		writeError(w, err)
		return
	}
	artifact, err := chart.CompareBars(values)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"year":     year,
		"values":   values,
		"artifact": artifact,
	})
}

// ExportIndicator downloads the selected rows
// @Summary Download data
// @Description Year, Indicator Name, Indicator Code and Value of the selected rows
// @Tags export
// @Produce text/csv
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Produce application/vnd.apache.parquet
// @Param indicator query []string false "Indicator name (repeatable)" collectionFormat(multi)
// @Param format query string false "csv (default), xlsx or parquet"
// @Success 200 {file} file
// @Failure 400 {object} model.ErrorResponse "Unsupported format"
// @Failure 404 {object} model.ErrorResponse "No data"
// @Router /export [get]
func (h *DashboardHandler) ExportIndicator(w http.ResponseWriter, r *http.Request) {
	format := strings.ToLower(r.URL.Query().Get("format"))
	if format == "" {
		format = pipeline.FormatCSV
	}
	contentType, ok := exportContentTypes[format]
	if !ok {
		writeJSON(w, http.StatusBadRequest, model.ErrorResponse{Error: "unsupported format: " + format, Kind: "BadRequest"})
		return
	}

	subset, ok := h.selectFromQuery(w, r)
	if !ok {
		return
	}
	result, data, err := h.Service.Export(subset, format)
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", result.FileName))
	w.Write(data)
}

// ListLoads shows loader and export activity
// @Summary Load and export log
// @Tags monitoring
// @Produce json
// @Param limit query int false "Maximum events per list (default 100)"
// @Success 200 {object} map[string]interface{} "summary, loads and exports"
// @Failure 500 {object} model.ErrorResponse "Store error"
// @Router /loads [get]
func (h *DashboardHandler) ListLoads(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	loads, err := store.ListLoadEvents(limit)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, model.ErrorResponse{Error: "failed to list load events", Kind: "StoreError"})
		return
	}
	exports, err := store.ListExports(limit)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, model.ErrorResponse{Error: "failed to list exports", Kind: "StoreError"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"summary": h.Service.Tracker().Snapshot(),
		"loads":   loads,
		"exports": exports,
	})
}

// Reload re-reads the data file, bypassing the dataset cache
// @Summary Reload data file
// @Tags monitoring
// @Produce json
// @Success 200 {object} map[string]interface{} "records, indicators and signature"
// @Failure 404 {object} model.ErrorResponse "Data file not found"
// @Failure 422 {object} model.ErrorResponse "Schema, parse or empty file"
// @Router /reload [post]
func (h *DashboardHandler) Reload(w http.ResponseWriter, r *http.Request) {
	ds, err := h.Service.Reload()
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"records":    ds.Len(),
		"indicators": len(pipeline.Indicators(ds)),
		"signature":  ds.Signature,
	})
}

// ------------------- helpers -------------------

var exportContentTypes = map[string]string{
	pipeline.FormatCSV:     "text/csv; charset=utf-8",
	pipeline.FormatXLSX:    "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
	pipeline.FormatParquet: "application/vnd.apache.parquet",
}

func imageContentType(format string) string {
	if format == "svg" {
		return "image/svg+xml"
	}
	return "image/png"
}

// parseRequest resolves the chart kind (default: first enabled) and the raw toggle.
func (h *DashboardHandler) parseRequest(kind string, r *http.Request) (model.DashboardRequest, error) {
	req := model.DashboardRequest{Raw: r.URL.Query().Get("raw") == "true"}
	if strings.TrimSpace(kind) == "" {
		req.Chart = h.Charts.Kinds()[0]
		return req, nil
	}
	k, err := model.ParseChartKind(kind)
	if err != nil {
		return req, fmt.Errorf("%w: %v", chart.ErrUnknownKind, err)
	}
	req.Chart = k
	return req, nil
}

// indicatorNames returns the requested indicators, or the first available one.
func (h *DashboardHandler) indicatorNames(r *http.Request) ([]string, error) {
	var names []string
	for _, n := range r.URL.Query()["indicator"] {
		if n = strings.TrimSpace(n); n != "" {
			names = append(names, n)
		}
	}
	if len(names) > 0 {
		return names, nil
	}
	all, err := h.Service.Indicators()
	if err != nil {
		return nil, err
	}
	if len(all) == 0 {
		return nil, pipeline.ErrNoData
	}
	return all[:1], nil
}

func (h *DashboardHandler) selectFromQuery(w http.ResponseWriter, r *http.Request) (model.Subset, bool) {
	names, err := h.indicatorNames(r)
	if err != nil {
		writeError(w, err)
		return model.Subset{}, false
	}
	subset, err := h.Service.Select(names...)
	if err != nil {
		writeError(w, err)
		return model.Subset{}, false
	}
	return subset, true
}

// writeError maps domain errors onto HTTP status codes.
func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	kind := pipeline.KindName(err)
	switch {
	case errors.Is(err, pipeline.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, pipeline.ErrSchema),
		errors.Is(err, pipeline.ErrParse),
		errors.Is(err, pipeline.ErrEmpty),
		errors.Is(err, pipeline.ErrNoKeyIndicators):
		status = http.StatusUnprocessableEntity
	case errors.Is(err, pipeline.ErrNoData):
		status = http.StatusNotFound
	case errors.Is(err, chart.ErrUnknownKind), errors.Is(err, chart.ErrKindDisabled), errors.Is(err, chart.ErrNotPlottable):
		status = http.StatusBadRequest
		kind = "BadRequest"
	}
	if kind == "" {
		kind = "LoadError"
	}
	if status >= http.StatusInternalServerError {
		logger.Errorf("❌ request failed: %v", err)
	}
	writeJSON(w, status, model.ErrorResponse{Error: err.Error(), Kind: kind})
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
