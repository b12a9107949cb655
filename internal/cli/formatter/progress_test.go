package formatter

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
)

func TestRenderProgress(t *testing.T) {
	tests := []struct {
		name  string
		pct   float64
		width int
		want  string
	}{
		{"empty", 0, 4, "[░░░░]   0%"},
		{"half", 0.5, 4, "[██░░]  50%"},
		{"full", 1, 4, "[████] 100%"},
		{"over 100% clamps", 1.5, 4, "[████] 100%"},
		{"negative clamps", -0.5, 4, "[░░░░]   0%"},
		{"tiny width clamps to 2", 0.5, 1, "[█░]  50%"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, stripANSI(RenderProgress(tt.pct, tt.width)))
		})
	}
}

func TestRenderMasteryBar_SegmentsSumToWidth(t *testing.T) {
	for total := 1; total <= 9; total++ {
		for known := 0; known <= total; known++ {
			for somewhat := 0; known+somewhat <= total; somewhat++ {
				bar := stripANSI(RenderMasteryBar(known, somewhat, total, 10))
				assert.Equal(t, 10, lipgloss.Width(bar), "known=%d somewhat=%d total=%d", known, somewhat, total)
			}
		}
	}
}

func TestRenderMasteryBar_Proportions(t *testing.T) {
	bar := stripANSI(RenderMasteryBar(2, 1, 4, 8))
	assert.Equal(t, strings.Repeat(filledBlock, 6)+strings.Repeat(emptyBlock, 2), bar)

	empty := stripANSI(RenderMasteryBar(0, 0, 0, 5))
	assert.Equal(t, strings.Repeat(emptyBlock, 5), empty)
}
