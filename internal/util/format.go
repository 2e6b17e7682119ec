package util

import (
	"fmt"
	"time"
)

// Helper functions
func FormatHours(h float64) string {
	return fmt.Sprintf("%.1fh", h)
}

// FormatElapsed renders an optional elapsed value; nil means no open run
// preceded the row.
func FormatElapsed(h *float64) string {
	if h == nil {
		return "-"
	}
	return FormatHours(*h)
}

func FormatDuration(d time.Duration) string {
	hours := int(d.Hours())
	minutes := int(d.Minutes()) % 60

	if hours > 0 {
		return fmt.Sprintf("%dh %dm", hours, minutes)
	}
	return fmt.Sprintf("%dm", minutes)
}
