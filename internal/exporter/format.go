package exporter

import (
	"fmt"
)

// formatFloat formats a monetary value for CSV output with exactly two
// decimal places, so 13.4 appears as 13.40.
func formatFloat(f float64) string {
	return fmt.Sprintf("%.2f", f)
}

// formatInt formats an integer for CSV output.
func formatInt(i int) string {
	return fmt.Sprintf("%d", i)
}
