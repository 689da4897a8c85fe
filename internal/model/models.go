package model

// DashboardRequest is what one user interaction supplies
type DashboardRequest struct {
	Indicators []string  `json:"indicators"`
	Chart      ChartKind `json:"chart"`
	Raw        bool      `json:"raw"` // include the subset rows
}

// DashboardView is the response for GET /api/v1/dashboard
type DashboardView struct {
	Title      string    `json:"title"`
	Indicators []string  `json:"indicators"`
	Chart      ChartKind `json:"chart"`
	KPI        *KPI      `json:"kpi"`
	Artifact   *Artifact `json:"artifact,omitempty"`
	Warning    string    `json:"warning,omitempty"`
	Records    []Record  `json:"records,omitempty"`
	ExportName string    `json:"export_name,omitempty"`
}

// AboutInfo is the sidebar description of the dashboard
type AboutInfo struct {
	Title         string      `json:"title"`
	DataFile      string      `json:"data_file"`
	KeyIndicators []string    `json:"key_indicators"`
	ChartKinds    []ChartKind `json:"chart_kinds"`
}

// ErrorResponse is the JSON body of every failed request
type ErrorResponse struct {
	Error string `json:"error"`
	Kind  string `json:"kind,omitempty"`
}
