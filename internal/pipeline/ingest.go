package pipeline

import (
	"bytes"
	"crypto/sha256"
	"encoding/csv"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"time"

	"github.com/google/uuid"

	"go-trade-dashboard/internal/logger"
	"go-trade-dashboard/internal/model"
)

var utf8BOM = []byte("\xef\xbb\xbf")

// ------------------- Loading -------------------

// Load reads the indicator CSV at path into a cleaned Dataset.
func Load(path string) (*model.Dataset, error) {
	ds, _, err := LoadWithReport(path)
	return ds, err
}

// LoadWithReport is Load plus a report of how many rows coercion dropped.
// The report is filled in on failure too.
func LoadWithReport(path string) (*model.Dataset, model.LoadReport, error) {
	start := time.Now()
	report := model.LoadReport{
		ID:        uuid.New().String(),
		Path:      path,
		CreatedAt: start.UTC(),
	}

	content, err := readFile(path)
	if err != nil {
		finishReport(&report, start, err)
		return nil, report, err
	}

	ds, err := decode(path, content, &report)
	finishReport(&report, start, err)
	if err != nil {
		return nil, report, err
	}
	return ds, report, nil
}

func readFile(path string) ([]byte, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, failure(ErrNotFound, path, nil)
		}
		return nil, failure(ErrLoad, path, fmt.Errorf("failed to read data file: %w", err))
	}
	return content, nil
}

func signature(content []byte) string {
	sum := sha256.Sum256(content)
	return hex.EncodeToString(sum[:])
}

// decode parses file content; the first row after the header is metadata and is skipped.
func decode(path string, content []byte, report *model.LoadReport) (*model.Dataset, error) {
	report.Signature = signature(content)

	content = bytes.TrimPrefix(content, utf8BOM)
	if len(bytes.TrimSpace(content)) == 0 {
		return nil, failure(ErrEmpty, path, errors.New("file has no content"))
	}

	csvReader := csv.NewReader(bytes.NewReader(content))
	csvReader.LazyQuotes = true
	csvReader.FieldsPerRecord = -1

	headers, err := csvReader.Read()
	if err == io.EOF {
		return nil, failure(ErrEmpty, path, errors.New("file has no header row"))
	} else if err != nil {
		return nil, failure(ErrLoad, path, fmt.Errorf("failed to read CSV header: %w", err))
	}

	schema, err := newSchema(headers)
	if err != nil {
		return nil, failure(ErrSchema, path, err)
	}

	// metadata (HXL tag) row
	if _, err := csvReader.Read(); err == io.EOF {
		return nil, failure(ErrEmpty, path, errors.New("file has no data rows"))
	} else if err != nil {
		return nil, failure(ErrLoad, path, fmt.Errorf("failed to read metadata row: %w", err))
	}

	var (
		records   []model.Record
		yearFails int
		valFails  int
	)
	for {
		row, err := csvReader.Read()
		if err == io.EOF {
			break
		} else if err != nil {
			return nil, failure(ErrLoad, path, fmt.Errorf("CSV read error: %w", err))
		}
		if len(row) > len(schema.columns) {
			line, _ := csvReader.FieldPos(0)
			return nil, failure(ErrLoad, path,
				fmt.Errorf("line %d: expected %d fields, saw %d", line, len(schema.columns), len(row)))
		}

		report.RowsRead++
		rec, yearOK, valueOK := schema.coerce(row)
		if !valueOK {
			valFails++
		}
		switch {
		case !yearOK:
			yearFails++
			report.DroppedYear++
		case !valueOK:
			report.DroppedValue++
		default:
			records = append(records, rec)
		}
	}

	report.RowsRetained = len(records)
	if report.RowsRead == 0 {
		return nil, failure(ErrEmpty, path, errors.New("file has no data rows"))
	}
	if yearFails == report.RowsRead {
		return nil, failure(ErrParse, path, fmt.Errorf("column %q: no value could be parsed as a year", model.ColumnYear))
	}
	if valFails == report.RowsRead {
		return nil, failure(ErrParse, path, fmt.Errorf("column %q: no value could be parsed as a number", model.ColumnValue))
	}
	if len(records) == 0 {
		return nil, failure(ErrEmpty, path, errors.New("no rows left after dropping invalid Year/Value"))
	}

	if report.DroppedYear+report.DroppedValue > 0 {
		logger.Warnf("⚠️ %s: dropped %d rows with invalid Year, %d with invalid Value",
			path, report.DroppedYear, report.DroppedValue)
	}
	logger.Infof("📄 CSV ingestion done: %d of %d records kept from %s", len(records), report.RowsRead, path)

	return &model.Dataset{
		Path:      path,
		Signature: report.Signature,
		Columns:   schema.columns,
		Records:   records,
	}, nil
}

func finishReport(report *model.LoadReport, start time.Time, err error) {
	report.Duration = time.Since(start)
	if err != nil {
		report.Status = "failed"
		report.Error = err.Error()
		return
	}
	report.Status = "loaded"
}
