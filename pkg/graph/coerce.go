package graph

import (
	"math"
	"strings"

	"github.com/spf13/cast"
)

// stringValue reads a cell as a string, falling back to def for unbound
// columns and missing or empty cells
func stringValue(row []any, idx int, def string) string {
	if idx < 0 || idx >= len(row) || row[idx] == nil {
		return def
	}
	s, err := cast.ToStringE(row[idx])
	if err != nil || s == "" {
		return def
	}
	return s
}

// numberValue reads a cell as a non-negative number, falling back to def for
// unbound columns and missing, non-numeric or non-finite cells
func numberValue(row []any, idx int, def float64) float64 {
	if idx < 0 || idx >= len(row) || row[idx] == nil {
		return def
	}
	cell := row[idx]
	if s, ok := cell.(string); ok {
		s = strings.TrimSpace(s)
		if s == "" {
			return def
		}
		cell = s
	}
	v, err := cast.ToFloat64E(cell)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return def
	}
	return math.Max(0, v)
}
