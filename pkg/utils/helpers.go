package utils

import (
	"math"
	"strconv"
	"strings"
)

// ParseNumber parses a numeric cell. Blank, non-numeric, NaN and Inf cells are not numbers.
func ParseNumber(s string) (float64, bool) {
	// Trim whitespace first
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// ParseYear accepts "2019" and the float form "2019.0"; anything with a fraction is rejected.
func ParseYear(s string) (int, bool) {
	s = strings.TrimSpace(s)
	if i, err := strconv.Atoi(s); err == nil {
		return i, true
	}
	f, ok := ParseNumber(s)
	if !ok || f != math.Trunc(f) || math.Abs(f) > math.MaxInt32 {
		return 0, false
	}
	return int(f), true
}

// CleanHeader trims whitespace and stray quotes from a header cell.
func CleanHeader(h string) string {
	h = strings.TrimPrefix(h, "\ufeff")
	h = strings.TrimSpace(h)
	h = strings.ReplaceAll(h, `"`, "")
	h = strings.ReplaceAll(h, "'", "")
	return strings.TrimSpace(h)
}
