package pipeline

import (
	"sync"
	"time"

	"go-trade-dashboard/internal/logger"
	"go-trade-dashboard/internal/model"
	"go-trade-dashboard/internal/store"
)

// UsageMetrics summarizes loader and export activity since startup.
type UsageMetrics struct {
	Loads        int64             `json:"loads"`
	CacheHits    int64             `json:"cache_hits"`
	FailedLoads  int64             `json:"failed_loads"`
	Exports      int64             `json:"exports"`
	ExportBytes  int64             `json:"export_bytes"`
	LastLoad     *model.LoadReport `json:"last_load,omitempty"`
	LastError    string            `json:"last_error,omitempty"`
	LastActivity *time.Time        `json:"last_activity,omitempty"`
}

// Tracker counts loads and exports and persists each one to the store.
type Tracker struct {
	mu      sync.RWMutex
	metrics UsageMetrics
}

func NewTracker() *Tracker {
	return &Tracker{}
}

// RecordLoad counts one loader invocation and saves it.
func (t *Tracker) RecordLoad(r model.LoadReport) {
	t.mu.Lock()
	t.metrics.Loads++
	if r.CacheHit {
		t.metrics.CacheHits++
	}
	if r.Status == "failed" {
		t.metrics.FailedLoads++
		t.metrics.LastError = r.Error
	}
	last := r
	t.metrics.LastLoad = &last
	t.touch()
	t.mu.Unlock()

	if err := store.SaveLoadEvent(r); err != nil {
		logger.Warnf("⚠️ failed to save load event %s: %v", r.ID, err)
	}
}

// RecordExport counts one export and saves it.
func (t *Tracker) RecordExport(e model.ExportResult) {
	t.mu.Lock()
	t.metrics.Exports++
	t.metrics.ExportBytes += int64(e.Bytes)
	t.touch()
	t.mu.Unlock()

	if err := store.SaveExport(e); err != nil {
		logger.Warnf("⚠️ failed to save export %s: %v", e.ID, err)
	}
}

// Snapshot returns a copy of the current counters.
func (t *Tracker) Snapshot() UsageMetrics {
	t.mu.RLock()
	defer t.mu.RUnlock()
	m := t.metrics
	if m.LastLoad != nil {
		last := *m.LastLoad
		m.LastLoad = &last
	}
	if m.LastActivity != nil {
		at := *m.LastActivity
		m.LastActivity = &at
	}
	return m
}

// touch must be called with mu held.
func (t *Tracker) touch() {
	now := time.Now().UTC()
	t.metrics.LastActivity = &now
}
