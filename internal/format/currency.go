// Package format renders amounts for display.
package format

import (
	"math"

	"github.com/dustin/go-humanize"
)

// WholeDollars formats amount as a whole-dollar currency string with thousands separators
// (e.g., "-$1,238"). Halves round away from zero.
func WholeDollars(amount float64) string {
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		return "$0"
	}
	rounded := math.Round(amount)
	sign := ""
	if rounded < 0 {
		sign = "-"
		rounded = -rounded
	}
	// int64 cannot hold every whole float64; larger values go through Commaf.
	if rounded >= math.MaxInt64 {
		return sign + "$" + humanize.Commaf(rounded)
	}
	return sign + "$" + humanize.Comma(int64(rounded))
}
