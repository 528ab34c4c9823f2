package util

import (
	"fmt"
	"time"
)

// FormatNumber formats an int64 with K/M suffix for readability.
// Examples: 500 -> "500", 1500 -> "1.5K", 1500000 -> "1.5M"
func FormatNumber(n int64) string {
	if n < 1000 {
		return fmt.Sprintf("%d", n)
	}
	if n < 1000000 {
		return fmt.Sprintf("%.1fK", float64(n)/1000)
	}
	return fmt.Sprintf("%.1fM", float64(n)/1000000)
}

// FormatMinutes renders a duration in minutes as "<H>h <M>m" when it is
// an hour or longer, "<M>m" otherwise. Examples: 45 -> "45m", 95 -> "1h 35m"
func FormatMinutes(minutes float64) string {
	if minutes >= 60 {
		return fmt.Sprintf("%dh %dm", int(minutes)/60, int(minutes)%60)
	}
	return fmt.Sprintf("%dm", int(minutes))
}

// FormatEpoch formats epoch seconds as "2006-01-02 15:04:05" in UTC.
// Returns "-" for non-positive timestamps.
func FormatEpoch(ts float64) string {
	if ts <= 0 {
		return "-"
	}
	return time.Unix(int64(ts), 0).UTC().Format("2006-01-02 15:04:05")
}

// FormatEpochDate formats epoch seconds as an ISO date in UTC.
// Returns "-" for non-positive timestamps.
func FormatEpochDate(ts float64) string {
	if ts <= 0 {
		return "-"
	}
	return time.Unix(int64(ts), 0).UTC().Format("2006-01-02")
}
