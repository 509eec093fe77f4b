package formatter

import (
	"fmt"
	"strings"
)

const (
	filledBlock = "█"
	emptyBlock  = "░"
)

// RenderProgress renders an elapsed-percentage bar like [████░░░░]  45%.
// pct is in [0, 100]; out-of-range values are clamped. Periods near their end
// are colored to stand out: red from 90%, yellow from 66%.
func RenderProgress(pct float64, width int) string {
	pct = clampPct(pct)
	if width < 2 {
		width = 2
	}

	filled := int(pct / 100 * float64(width))
	if filled > width {
		filled = width
	}
	bar := strings.Repeat(filledBlock, filled) + strings.Repeat(emptyBlock, width-filled)

	style := StyleGreen
	switch {
	case pct >= 90:
		style = StyleRed
	case pct >= 66:
		style = StyleYellow
	}
	return fmt.Sprintf("[%s] %s", style.Render(bar), fmt.Sprintf("%5.1f%%", pct))
}

// RenderCompactBar renders just the blocks, without brackets or percentage.
func RenderCompactBar(pct float64, width int) string {
	pct = clampPct(pct)
	if width < 1 {
		width = 1
	}
	filled := int(pct / 100 * float64(width))
	return StyleBlue.Render(strings.Repeat(filledBlock, filled)) +
		StyleDim.Render(strings.Repeat(emptyBlock, width-filled))
}

func clampPct(pct float64) float64 {
	switch {
	case pct < 0:
		return 0
	case pct > 100:
		return 100
	}
	return pct
}
