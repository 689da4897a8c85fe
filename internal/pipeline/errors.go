package pipeline

import (
	"errors"
	"fmt"
)

// Loader failures. All are terminal for a render pass.
var (
	ErrNotFound = errors.New("data file not found")
	ErrEmpty    = errors.New("data file is empty")
	ErrSchema   = errors.New("data file schema mismatch")
	ErrParse    = errors.New("data file has no parseable values")
	ErrLoad     = errors.New("data file could not be loaded")
)

var (
	// ErrNoData is returned when a selection matched no rows. Callers warn, they do not fail.
	ErrNoData = errors.New("no data available for the selected indicator")
	// ErrNoKeyIndicators means none of the configured key indicators occur in the dataset.
	ErrNoKeyIndicators = errors.New("none of the key indicators are present in the data")
)

// LoadFailure carries the kind of a loader failure plus the file and underlying cause.
type LoadFailure struct {
	Kind error // one of the Err* sentinels above
	Path string
	Err  error
}

func (e *LoadFailure) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %v", e.Path, e.Kind)
	}
	return fmt.Sprintf("%s: %v: %v", e.Path, e.Kind, e.Err)
}

// Is lets errors.Is(err, ErrSchema) match a failure of that kind.
func (e *LoadFailure) Is(target error) bool { return target == e.Kind }

func (e *LoadFailure) Unwrap() error { return e.Err }

func failure(kind error, path string, cause error) error {
	return &LoadFailure{Kind: kind, Path: path, Err: cause}
}

// KindName returns the short name of a loader failure ("NotFound", "SchemaError", ...).
func KindName(err error) string {
	switch {
	case errors.Is(err, ErrNotFound):
		return "NotFound"
	case errors.Is(err, ErrEmpty):
		return "Empty"
	case errors.Is(err, ErrSchema):
		return "SchemaError"
	case errors.Is(err, ErrParse):
		return "ParseError"
	case errors.Is(err, ErrNoKeyIndicators):
		return "NoKeyIndicators"
	case errors.Is(err, ErrNoData):
		return "NoData"
	case errors.Is(err, ErrLoad):
		return "LoadError"
	default:
		return ""
	}
}
