package report

import (
	"fmt"
	"io"
	"math"
	"os"

	"golang.org/x/term"
)

const (
	colorReset = "\x1b[0m"

	hueSaturation = 0.7
	hueLightness  = 0.5
)

// ShouldUseColor reports whether ANSI color should be written to w. NO_COLOR
// always wins; force enables color for non-terminal writers.
func ShouldUseColor(w io.Writer, force bool) bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	if force {
		return true
	}
	file, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(file.Fd()))
}

// HueRGB converts a hue in degrees to RGB at fixed saturation and lightness.
func HueRGB(hue float64) (r, g, b uint8) {
	h := math.Mod(hue, 360)
	if h < 0 {
		h += 360
	}
	c := (1 - math.Abs(2*hueLightness-1)) * hueSaturation
	x := c * (1 - math.Abs(math.Mod(h/60, 2)-1))
	m := hueLightness - c/2

	var rf, gf, bf float64
	switch {
	case h < 60:
		rf, gf, bf = c, x, 0
	case h < 120:
		rf, gf, bf = x, c, 0
	case h < 180:
		rf, gf, bf = 0, c, x
	case h < 240:
		rf, gf, bf = 0, x, c
	case h < 300:
		rf, gf, bf = x, 0, c
	default:
		rf, gf, bf = c, 0, x
	}
	return toByte(rf + m), toByte(gf + m), toByte(bf + m)
}

// HueHex returns the hue as a #rrggbb color.
func HueHex(hue float64) string {
	r, g, b := HueRGB(hue)
	return fmt.Sprintf("#%02x%02x%02x", r, g, b)
}

func colorize(value string, hue float64) string {
	r, g, b := HueRGB(hue)
	return fmt.Sprintf("\x1b[38;2;%d;%d;%dm%s%s", r, g, b, value, colorReset)
}

func toByte(v float64) uint8 {
	return uint8(math.Round(math.Max(0, math.Min(1, v)) * 255))
}
