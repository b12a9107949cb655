package formatter

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRenderTable_Alignment(t *testing.T) {
	out := stripANSI(RenderTable(
		[]string{"NAME", "N"},
		[][]string{{"a", "1"}, {"longer", "22"}},
	))
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	assert.Len(t, lines, 4)
	assert.Equal(t, "NAME    N", lines[0])
	assert.Equal(t, "──────  ──", lines[1])
	assert.Equal(t, "a       1", lines[2])
	assert.Equal(t, "longer  22", lines[3])
}

func TestRenderTableAligned_RightColumn(t *testing.T) {
	out := stripANSI(RenderTableAligned(
		[]string{"NAME", "CARDS"},
		[][]string{{"a", "1"}, {"b", "120"}},
		[]int{1},
	))
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	assert.Equal(t, "a         1", lines[2])
	assert.Equal(t, "b       120", lines[3])
}

func TestRenderTable_EmptyHeaders(t *testing.T) {
	assert.Empty(t, RenderTable(nil, [][]string{{"x"}}))
}

func TestRenderTable_ShortRowsPadded(t *testing.T) {
	out := stripANSI(RenderTable([]string{"A", "B"}, [][]string{{"x"}}))
	assert.Contains(t, out, "x")
}
