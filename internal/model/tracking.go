package model

import "time"

// LoadReport describes one Loader invocation, including how many rows coercion dropped
type LoadReport struct {
	ID           string        `json:"id"`
	Path         string        `json:"path"`
	Signature    string        `json:"signature"`
	RowsRead     int           `json:"rows_read"`     // data rows after the metadata row
	RowsRetained int           `json:"rows_retained"` // rows with both Year and Value parsed
	DroppedYear  int           `json:"dropped_year"`  // dropped because Year did not parse
	DroppedValue int           `json:"dropped_value"` // dropped because Value did not parse
	CacheHit     bool          `json:"cache_hit"`
	Status       string        `json:"status"` // "loaded", "failed"
	Error        string        `json:"error,omitempty"`
	Duration     time.Duration `json:"duration"`
	CreatedAt    time.Time     `json:"created_at"`
}
