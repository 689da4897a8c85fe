package store

import (
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"go-trade-dashboard/internal/model"
)

var db *sql.DB

// InitDB opens the sqlite log of loads and exports. Until it is called every
// store function is a no-op.
func InitDB(dbPath string) error {
	conn, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return fmt.Errorf("failed to open store: %w", err)
	}
	// one connection keeps an in-memory database alive and shared
	conn.SetMaxOpenConns(1)

	loadTable := `
	CREATE TABLE IF NOT EXISTS load_events (
		id TEXT PRIMARY KEY,
		path TEXT,
		signature TEXT,
		rows_read INTEGER,
		rows_retained INTEGER,
		dropped_year INTEGER,
		dropped_value INTEGER,
		cache_hit BOOLEAN,
		status TEXT,
		error_message TEXT,
		duration_ms INTEGER,
		created_at DATETIME
	);
	`
	exportTable := `
	CREATE TABLE IF NOT EXISTS exports (
		id TEXT PRIMARY KEY,
		indicator TEXT,
		format TEXT,
		file_name TEXT,
		record_count INTEGER,
		bytes INTEGER,
		created_at DATETIME
	);
	`

	if _, err := conn.Exec(loadTable); err != nil {
		conn.Close()
		return fmt.Errorf("failed to create load_events table: %w", err)
	}
	if _, err := conn.Exec(exportTable); err != nil {
		conn.Close()
		return fmt.Errorf("failed to create exports table: %w", err)
	}

	db = conn
	return nil
}

// Close releases the connection.
func Close() error {
	if db == nil {
		return nil
	}
	err := db.Close()
	db = nil
	return err
}

// SaveLoadEvent records one loader invocation
func SaveLoadEvent(r model.LoadReport) error {
	if db == nil {
		return nil
	}
	_, err := db.Exec(`INSERT INTO load_events
		(id, path, signature, rows_read, rows_retained, dropped_year, dropped_value, cache_hit, status, error_message, duration_ms, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.ID, r.Path, r.Signature, r.RowsRead, r.RowsRetained, r.DroppedYear, r.DroppedValue,
		r.CacheHit, r.Status, r.Error, r.Duration.Milliseconds(), r.CreatedAt.UTC())
	return err
}

// ListLoadEvents returns the most recent load events first
func ListLoadEvents(limit int) ([]model.LoadReport, error) {
	if db == nil {
		return nil, nil
	}
	if limit <= 0 {
		limit = 100
	}
	rows, err := db.Query(`SELECT id, path, signature, rows_read, rows_retained, dropped_year, dropped_value,
		cache_hit, status, error_message, duration_ms, created_at
		FROM load_events ORDER BY created_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []model.LoadReport
	for rows.Next() {
		var r model.LoadReport
		var durationMs int64
		if err := rows.Scan(&r.ID, &r.Path, &r.Signature, &r.RowsRead, &r.RowsRetained, &r.DroppedYear,
			&r.DroppedValue, &r.CacheHit, &r.Status, &r.Error, &durationMs, &r.CreatedAt); err != nil {
			return nil, err
		}
		r.Duration = time.Duration(durationMs) * time.Millisecond
		events = append(events, r)
	}
	return events, rows.Err()
}

// SaveExport records one download
func SaveExport(e model.ExportResult) error {
	if db == nil {
		return nil
	}
	_, err := db.Exec(`INSERT INTO exports (id, indicator, format, file_name, record_count, bytes, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		e.ID, e.Indicator, e.Format, e.FileName, e.RecordCount, e.Bytes, e.Timestamp.UTC())
	return err
}

// ListExports returns the most recent exports first
func ListExports(limit int) ([]model.ExportResult, error) {
	if db == nil {
		return nil, nil
	}
	if limit <= 0 {
		limit = 100
	}
	rows, err := db.Query(`SELECT id, indicator, format, file_name, record_count, bytes, created_at
		FROM exports ORDER BY created_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var exports []model.ExportResult
	for rows.Next() {
		var e model.ExportResult
		if err := rows.Scan(&e.ID, &e.Indicator, &e.Format, &e.FileName, &e.RecordCount, &e.Bytes, &e.Timestamp); err != nil {
			return nil, err
		}
		exports = append(exports, e)
	}
	return exports, rows.Err()
}
