// Package renderer formats portfolio reports as markdown documents, suitable
// for a terminal renderer or a plain pager.
package renderer

import (
	"fmt"
	"math"
)

// cell formats a float series cell, printing missing values as a dash.
func cell(v float64) string {
	if math.IsNaN(v) {
		return "-"
	}
	return fmt.Sprintf("%.2f", v)
}

// percentCell formats a float ratio as a percentage, dash when missing.
func percentCell(v float64) string {
	if math.IsNaN(v) {
		return "-"
	}
	return fmt.Sprintf("%+.2f%%", v*100)
}
