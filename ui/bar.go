package ui

import "math"

var eighths = []rune{' ', '▏', '▎', '▍', '▌', '▋', '▊', '▉'}

// Bar renders value (0..1) as a horizontal bar of width cells using
// eighth-block runes for the partially filled cell.
func Bar(width int, value float64) []rune {
	if width < 1 {
		return nil
	}
	value = math.Max(0, math.Min(1, value))

	runes := make([]rune, width)
	progress := int(math.Round(float64(width*8) * value))
	idx := 0
	for ; idx < progress/8; idx++ {
		runes[idx] = '█'
	}
	if progress%8 > 0 {
		runes[idx] = eighths[progress%8]
		idx++
	}
	for ; idx < width; idx++ {
		runes[idx] = ' '
	}
	return runes
}
