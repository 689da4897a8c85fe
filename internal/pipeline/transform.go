package pipeline

import (
	"fmt"
	"sort"

	"go-trade-dashboard/internal/logger"
	"go-trade-dashboard/internal/model"
)

// ------------------- Selection -------------------

// SelectIndicator returns the rows whose Indicator Name is one of names,
// stably sorted by Year. An empty result is valid.
func SelectIndicator(ds *model.Dataset, names ...string) model.Subset {
	subset := model.Subset{Indicators: append([]string(nil), names...)}
	if ds == nil || len(names) == 0 {
		return subset
	}

	wanted := make(map[string]bool, len(names))
	for _, n := range names {
		wanted[n] = true
	}
	for _, rec := range ds.Records {
		if wanted[rec.IndicatorName] {
			subset.Records = append(subset.Records, rec)
		}
	}
	sort.SliceStable(subset.Records, func(i, j int) bool {
		return subset.Records[i].Year < subset.Records[j].Year
	})

	logger.Debugf("🔎 selected %d rows for %d indicator(s)", len(subset.Records), len(names))
	return subset
}

// Indicators lists the distinct indicator names, sorted.
func Indicators(ds *model.Dataset) []string {
	if ds == nil {
		return nil
	}
	seen := make(map[string]bool)
	var names []string
	for _, rec := range ds.Records {
		if !seen[rec.IndicatorName] {
			seen[rec.IndicatorName] = true
			names = append(names, rec.IndicatorName)
		}
	}
	sort.Strings(names)
	return names
}

// Years lists the distinct years of a subset in ascending order.
func Years(subset model.Subset) []int {
	seen := make(map[int]bool)
	var years []int
	for _, rec := range subset.Records {
		if !seen[rec.Year] {
			seen[rec.Year] = true
			years = append(years, rec.Year)
		}
	}
	sort.Ints(years)
	return years
}

// CompareYear picks one value per indicator for the given year, the first row
// in file order. Indicators without a row for that year are left out.
func CompareYear(ds *model.Dataset, names []string, year int) ([]model.IndicatorValue, error) {
	if ds == nil {
		return nil, ErrNoData
	}
	var out []model.IndicatorValue
	done := make(map[string]bool, len(names))
	for _, name := range names {
		if done[name] {
			continue
		}
		for _, rec := range ds.Records {
			if rec.IndicatorName == name && rec.Year == year {
				out = append(out, model.IndicatorValue{
					IndicatorName: rec.IndicatorName,
					IndicatorCode: rec.IndicatorCode,
					Year:          rec.Year,
					Value:         rec.Value,
				})
				done[name] = true
				break
			}
		}
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("year %d: %w", year, ErrNoData)
	}
	return out, nil
}

// RestrictToKeyIndicators keeps only rows of the given indicators. An empty
// key list means no restriction. The input dataset is not modified.
func RestrictToKeyIndicators(ds *model.Dataset, keys []string) (*model.Dataset, error) {
	if len(keys) == 0 {
		return ds, nil
	}
	keep := make(map[string]bool, len(keys))
	for _, k := range keys {
		keep[k] = true
	}

	out := &model.Dataset{Path: ds.Path, Signature: ds.Signature, Columns: ds.Columns}
	for _, rec := range ds.Records {
		if keep[rec.IndicatorName] {
			out.Records = append(out.Records, rec)
		}
	}
	if len(out.Records) == 0 {
		return nil, fmt.Errorf("%s: %w", ds.Path, ErrNoKeyIndicators)
	}
	return out, nil
}
