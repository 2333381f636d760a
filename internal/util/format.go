// Package util holds the display helpers shared by the terminal client.
package util

import "fmt"

var sizeUnits = []string{"KiB", "MiB", "GiB", "TiB"}

// FormatSize renders a byte count in binary units with one decimal.
// Negative counts render as zero.
func FormatSize(bytes int64) string {
	if bytes < 0 {
		bytes = 0
	}
	if bytes < 1024 {
		return fmt.Sprintf("%d B", bytes)
	}

	v := float64(bytes) / 1024
	for _, unit := range sizeUnits {
		if v < 1024 {
			return fmt.Sprintf("%.1f %s", v, unit)
		}
		v /= 1024
	}
	return fmt.Sprintf("%.1f PiB", v)
}

// FormatCount renders a count with K/M/B suffixes past a thousand.
func FormatCount(n int64) string {
	switch {
	case n >= 1_000_000_000:
		return fmt.Sprintf("%.1fB", float64(n)/1_000_000_000)
	case n >= 1_000_000:
		return fmt.Sprintf("%.1fM", float64(n)/1_000_000)
	case n >= 1000:
		return fmt.Sprintf("%.1fK", float64(n)/1000)
	default:
		return fmt.Sprintf("%d", n)
	}
}

// Percent returns part as a percentage of total, 0 when total is zero.
func Percent(part, total int64) float64 {
	if total == 0 {
		return 0
	}
	return 100 * float64(part) / float64(total)
}

// TruncateString caps a string at maxLen runes, marking the cut with an
// ellipsis when there is room for one.
func TruncateString(s string, maxLen int) string {
	runes := []rune(s)
	switch {
	case maxLen <= 0:
		return ""
	case len(runes) <= maxLen:
		return s
	case maxLen <= 3:
		return string(runes[:maxLen])
	}
	return string(runes[:maxLen-3]) + "..."
}
