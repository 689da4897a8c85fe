package pipeline

import (
	"fmt"
	"strings"

	"go-trade-dashboard/internal/model"
	"go-trade-dashboard/pkg/utils"
)

// schema maps the cleaned header onto the columns the dashboard needs.
type schema struct {
	columns []string
	year    int
	value   int
	name    int
	code    int
}

// newSchema cleans the header and fails if any required column is missing.
func newSchema(headers []string) (*schema, error) {
	s := &schema{columns: make([]string, len(headers))}
	index := make(map[string]int, len(headers))
	for i, h := range headers {
		clean := utils.CleanHeader(h)
		s.columns[i] = clean
		if _, dup := index[clean]; !dup {
			index[clean] = i
		}
	}

	var missing []string
	for _, col := range model.RequiredColumns {
		if _, ok := index[col]; !ok {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("missing required column(s): %s", strings.Join(missing, ", "))
	}

	s.year = index[model.ColumnYear]
	s.value = index[model.ColumnValue]
	s.name = index[model.ColumnIndicatorName]
	s.code = index[model.ColumnIndicatorCode]
	return s, nil
}

// coerce converts one data row. Short rows read missing cells as blank.
func (s *schema) coerce(row []string) (rec model.Record, yearOK, valueOK bool) {
	cell := func(i int) string {
		if i < len(row) {
			return row[i]
		}
		return ""
	}

	rec.Year, yearOK = utils.ParseYear(cell(s.year))
	rec.Value, valueOK = utils.ParseNumber(cell(s.value))
	rec.IndicatorName = cell(s.name)
	rec.IndicatorCode = cell(s.code)

	for i, col := range s.columns {
		if i == s.year || i == s.value || i == s.name || i == s.code {
			continue
		}
		if rec.Extra == nil {
			rec.Extra = make(map[string]string, len(s.columns)-4)
		}
		rec.Extra[col] = cell(i)
	}
	return rec, yearOK, valueOK
}
