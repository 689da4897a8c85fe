package model

import "time"

// KPI holds the headline numbers shown above every chart
type KPI struct {
	Max     float64 `json:"max"`
	Min     float64 `json:"min"`
	Mean    float64 `json:"mean"`
	MaxText string  `json:"max_text"`
	MinText string  `json:"min_text"`
	AvgText string  `json:"avg_text"`
}

// ExportResult represents the result of an export operation
type ExportResult struct {
	ID          string    `json:"id"`
	Indicator   string    `json:"indicator"`
	Format      string    `json:"format"` // "csv", "xlsx", "parquet"
	FileName    string    `json:"file_name"`
	RecordCount int       `json:"record_count"`
	Bytes       int       `json:"bytes"`
	Timestamp   time.Time `json:"timestamp"`
}
