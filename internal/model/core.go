package model

// Column names the loader requires in the CSV header.
const (
	ColumnYear          = "Year"
	ColumnValue         = "Value"
	ColumnIndicatorName = "Indicator Name"
	ColumnIndicatorCode = "Indicator Code"
)

// RequiredColumns lists the header columns every input file must carry.
var RequiredColumns = []string{ColumnYear, ColumnValue, ColumnIndicatorName, ColumnIndicatorCode}

// ExportColumns is the column order of every downloadable file.
var ExportColumns = []string{ColumnYear, ColumnIndicatorName, ColumnIndicatorCode, ColumnValue}

// Record represents a single cleaned row of the indicator table
type Record struct {
	Year          int               `json:"year"`
	Value         float64           `json:"value"`
	IndicatorName string            `json:"indicator_name"`
	IndicatorCode string            `json:"indicator_code"`
	Extra         map[string]string `json:"extra,omitempty"` // any other column, by header name
}

// Dataset is the cleaned table loaded from one file version.
// It is never mutated after the loader returns it.
type Dataset struct {
	Path      string   `json:"path"`
	Signature string   `json:"signature"` // sha256 of the file content
	Columns   []string `json:"columns"`   // header order, cleaned
	Records   []Record `json:"records"`
}

// Len returns the number of retained records.
func (d *Dataset) Len() int {
	if d == nil {
		return 0
	}
	return len(d.Records)
}

// Subset is the slice of a Dataset matching the selected indicator(s), sorted by Year.
type Subset struct {
	Indicators []string `json:"indicators"`
	Records    []Record `json:"records"`
}

// Empty reports whether the selection matched nothing.
func (s Subset) Empty() bool { return len(s.Records) == 0 }

// Values returns the Value column in subset order.
func (s Subset) Values() []float64 {
	vals := make([]float64, len(s.Records))
	for i, r := range s.Records {
		vals[i] = r.Value
	}
	return vals
}

// Label returns a display label for the selection.
func (s Subset) Label() string {
	switch len(s.Indicators) {
	case 0:
		return ""
	case 1:
		return s.Indicators[0]
	default:
		label := s.Indicators[0]
		for _, name := range s.Indicators[1:] {
			label += ", " + name
		}
		return label
	}
}

// IndicatorValue is one indicator's value for a single year (year comparison view).
type IndicatorValue struct {
	IndicatorName string  `json:"indicator_name"`
	IndicatorCode string  `json:"indicator_code"`
	Year          int     `json:"year"`
	Value         float64 `json:"value"`
}
