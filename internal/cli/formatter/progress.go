package formatter

import (
	"fmt"
	"strings"
)

const (
	filledBlock = "█"
	emptyBlock  = "░"
)

// RenderProgress renders a progress bar like [████░░░░] 45%.
// The bar is colored based on percentage: green >66%, yellow 33-66%, red <33%.
func RenderProgress(pct float64, width int) string {
	pct, width = clampBar(pct, width)

	filled := int(pct * float64(width))
	if filled > width {
		filled = width
	}
	bar := strings.Repeat(filledBlock, filled) + strings.Repeat(emptyBlock, width-filled)

	style := StyleGreen
	if pct < 0.33 {
		style = StyleRed
	} else if pct < 0.66 {
		style = StyleYellow
	}

	return fmt.Sprintf("[%s] %3.0f%%", style.Render(bar), pct*100)
}

// RenderMasteryBar renders a three-segment bar: known cards green, somewhat
// yellow, the rest as empty blocks. Segment widths are proportional to the
// counts and always sum to width.
func RenderMasteryBar(known, somewhat, total, width int) string {
	_, width = clampBar(0, width)
	if total <= 0 {
		return StyleDim.Render(strings.Repeat(emptyBlock, width))
	}
	k := known * width / total
	s := (known+somewhat)*width/total - k
	rest := width - k - s

	return StyleGreen.Render(strings.Repeat(filledBlock, k)) +
		StyleYellow.Render(strings.Repeat(filledBlock, s)) +
		StyleDim.Render(strings.Repeat(emptyBlock, rest))
}

func clampBar(pct float64, width int) (float64, int) {
	if pct < 0 {
		pct = 0
	}
	if pct > 1 {
		pct = 1
	}
	if width < 2 {
		width = 2
	}
	return pct, width
}
