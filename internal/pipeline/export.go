package pipeline

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/memory"
	"github.com/apache/arrow-go/v18/parquet"
	"github.com/apache/arrow-go/v18/parquet/compress"
	"github.com/apache/arrow-go/v18/parquet/pqarrow"
	"github.com/xuri/excelize/v2"

	"go-trade-dashboard/internal/model"
)

// Export formats.
const (
	FormatCSV     = "csv"
	FormatXLSX    = "xlsx"
	FormatParquet = "parquet"
)

const fileStemLimit = 50

// ExportFormats lists the supported download formats.
var ExportFormats = []string{FormatCSV, FormatXLSX, FormatParquet}

// ------------------- File names -------------------

// ExportFileName derives the CSV download name: every character that is not a
// letter or digit becomes '_', the stem is cut to 50 characters, "_data.csv" is appended.
func ExportFileName(indicator string) string {
	return ExportFileNameFor(indicator, FormatCSV)
}

// ExportFileNameFor is ExportFileName for any export format.
func ExportFileNameFor(indicator, format string) string {
	stem := []rune(strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsNumber(r) {
			return r
		}
		return '_'
	}, indicator))
	if len(stem) > fileStemLimit {
		stem = stem[:fileStemLimit]
	}
	return string(stem) + "_data." + format
}

// ------------------- Serializers -------------------

// Export serializes the subset in the given format.
func Export(subset model.Subset, format string) ([]byte, error) {
	switch strings.ToLower(format) {
	case FormatCSV, "":
		return ToDownloadableText(subset)
	case FormatXLSX:
		return ToXLSX(subset)
	case FormatParquet:
		return ToParquet(subset)
	default:
		return nil, fmt.Errorf("unsupported export format: %q", format)
	}
}

// ToDownloadableText writes the subset as CSV with columns Year, Indicator
// Name, Indicator Code, Value and no index column.
func ToDownloadableText(subset model.Subset) ([]byte, error) {
	if subset.Empty() {
		return nil, ErrNoData
	}
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(model.ExportColumns); err != nil {
		return nil, fmt.Errorf("failed to write CSV header: %w", err)
	}
	for _, rec := range subset.Records {
		row := []string{strconv.Itoa(rec.Year), rec.IndicatorName, rec.IndicatorCode, formatValue(rec.Value)}
		if err := w.Write(row); err != nil {
			return nil, fmt.Errorf("failed to write CSV row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("failed to flush CSV: %w", err)
	}
	return buf.Bytes(), nil
}

// formatValue keeps a trailing ".0" on whole numbers so values read back as floats.
func formatValue(v float64) string {
	if v == math.Trunc(v) && math.Abs(v) < 1e16 {
		return strconv.FormatFloat(v, 'f', 1, 64)
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// ToXLSX writes the subset to a single-sheet workbook.
func ToXLSX(subset model.Subset) ([]byte, error) {
	if subset.Empty() {
		return nil, ErrNoData
	}
	const sheet = "Data"
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, fmt.Errorf("failed to name sheet: %w", err)
	}
	for i, header := range model.ExportColumns {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, header)
	}
	for i, rec := range subset.Records {
		row := i + 2
		f.SetCellValue(sheet, fmt.Sprintf("A%d", row), rec.Year)
		f.SetCellValue(sheet, fmt.Sprintf("B%d", row), rec.IndicatorName)
		f.SetCellValue(sheet, fmt.Sprintf("C%d", row), rec.IndicatorCode)
		f.SetCellValue(sheet, fmt.Sprintf("D%d", row), rec.Value)
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

var exportSchema = arrow.NewSchema([]arrow.Field{
	{Name: model.ColumnYear, Type: arrow.PrimitiveTypes.Int64},
	{Name: model.ColumnIndicatorName, Type: arrow.BinaryTypes.String},
	{Name: model.ColumnIndicatorCode, Type: arrow.BinaryTypes.String},
	{Name: model.ColumnValue, Type: arrow.PrimitiveTypes.Float64},
}, nil)

// ToParquet writes the subset as a Snappy-compressed Parquet file.
func ToParquet(subset model.Subset) ([]byte, error) {
	if subset.Empty() {
		return nil, ErrNoData
	}

	b := array.NewRecordBuilder(memory.NewGoAllocator(), exportSchema)
	defer b.Release()
	for _, rec := range subset.Records {
		b.Field(0).(*array.Int64Builder).Append(int64(rec.Year))
		b.Field(1).(*array.StringBuilder).Append(rec.IndicatorName)
		b.Field(2).(*array.StringBuilder).Append(rec.IndicatorCode)
		b.Field(3).(*array.Float64Builder).Append(rec.Value)
	}
	record := b.NewRecord()
	defer record.Release()

	table := array.NewTableFromRecords(exportSchema, []arrow.Record{record})
	defer table.Release()

	var buf bytes.Buffer
	props := parquet.NewWriterProperties(parquet.WithCompression(compress.Codecs.Snappy))
	arrowProps := pqarrow.NewArrowWriterProperties(pqarrow.WithStoreSchema())

	writer, err := pqarrow.NewFileWriter(exportSchema, &buf, props, arrowProps)
	if err != nil {
		return nil, fmt.Errorf("failed to create parquet writer: %w", err)
	}
	if err := writer.WriteTable(table, table.NumRows()); err != nil {
		writer.Close()
		return nil, fmt.Errorf("failed to write table to parquet: %w", err)
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("failed to close parquet writer: %w", err)
	}
	return buf.Bytes(), nil
}
