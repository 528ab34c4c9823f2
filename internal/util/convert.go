package util

import (
	"strconv"
	"time"
)

// ToInt64 safely converts a decoded document value to int64.
// Handles the numeric types the bson decoder produces plus strings.
// Returns 0 for nil or unsupported types.
func ToInt64(v any) int64 {
	if v == nil {
		return 0
	}
	switch n := v.(type) {
	case int64:
		return n
	case int32:
		return int64(n)
	case int:
		return int64(n)
	case float64:
		return int64(n)
	case string:
		i, _ := strconv.ParseInt(n, 10, 64)
		return i
	default:
		return 0
	}
}

// ToFloat64 safely converts a decoded document value to float64.
// Returns 0 for nil or unsupported types.
func ToFloat64(v any) float64 {
	if v == nil {
		return 0
	}
	switch n := v.(type) {
	case float64:
		return n
	case float32:
		return float64(n)
	case int64:
		return float64(n)
	case int32:
		return float64(n)
	case int:
		return float64(n)
	case string:
		f, _ := strconv.ParseFloat(n, 64)
		return f
	default:
		return 0
	}
}

// EpochSeconds coerces a stored timestamp to epoch seconds. Depending on
// the writer version the field is either a plain number or a datetime
// value. Returns 0 when the value is absent or unreadable.
func EpochSeconds(v any) float64 {
	switch t := v.(type) {
	case time.Time:
		if t.IsZero() {
			return 0
		}
		return float64(t.UnixMilli()) / 1000
	case nil:
		return 0
	default:
		return ToFloat64(v)
	}
}
