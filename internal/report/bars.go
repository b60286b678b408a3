package report

import (
	"math"
	"strings"
)

const (
	barWidth   = 30
	sparkChars = "▁▂▃▄▅▆▇█"
)

var partialBlocks = []rune("▏▎▍▌▋▊▉")

// bar renders value relative to maxValue as a horizontal bar of at most width
// cells, using eighth blocks for the remainder.
func bar(value, maxValue float64, width int) string {
	if maxValue <= 0 || value <= 0 || width <= 0 {
		return ""
	}
	cells := math.Min(value/maxValue, 1) * float64(width)
	full := int(cells)
	var b strings.Builder
	b.WriteString(strings.Repeat("█", full))
	if eighths := int((cells - float64(full)) * 8); eighths > 0 && full < width {
		b.WriteRune(partialBlocks[eighths-1])
	}
	return b.String()
}

// Sparkline renders a single-line sparkline for the values.
func Sparkline(values []float64) string {
	if len(values) == 0 {
		return ""
	}
	levels := []rune(sparkChars)
	minVal, maxVal := values[0], values[0]
	for _, v := range values[1:] {
		minVal = math.Min(minVal, v)
		maxVal = math.Max(maxVal, v)
	}
	if math.Abs(maxVal-minVal) < 1e-9 {
		return strings.Repeat(string(levels[len(levels)/2]), len(values))
	}
	var b strings.Builder
	for _, v := range values {
		pos := (v - minVal) / (maxVal - minVal)
		idx := int(math.Round(pos * float64(len(levels)-1)))
		if idx < 0 {
			idx = 0
		}
		if idx >= len(levels) {
			idx = len(levels) - 1
		}
		b.WriteRune(levels[idx])
	}
	return b.String()
}
