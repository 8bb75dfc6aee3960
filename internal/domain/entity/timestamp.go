package entity

import (
	"fmt"
	"math"
)

// FormatTimestamp renders elapsed seconds as zero-padded HH:MM:SS, flooring
// sub-second remainders.
func FormatTimestamp(seconds float64) string {
	if seconds < 0 {
		seconds = 0
	}
	total := int(math.Floor(seconds))
	h := total / 3600
	m := (total % 3600) / 60
	s := total % 60
	return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
}
