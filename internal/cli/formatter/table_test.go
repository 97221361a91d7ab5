package formatter

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTable_AlignsColumns(t *testing.T) {
	out := NewTable("TITLE", "RATE").
		AlignRight(1).
		Row("Booking API", "450 kr/h").
		Row("Logo", StyleGreen.Render("1 200 kr/h")).
		String()

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 4)
	assert.Contains(t, lines[0], "TITLE")
	assert.Contains(t, lines[1], "─")

	// Right-aligned cells end in the same visible column.
	assert.Equal(t, lipgloss.Width(lines[2]), lipgloss.Width(lines[3]))
	assert.True(t, strings.HasSuffix(lines[2], "450 kr/h"))
}

func TestTable_MissingCells(t *testing.T) {
	tbl := NewTable("A", "B", "C").Row("only")
	assert.Equal(t, 1, tbl.Len())
	assert.Contains(t, tbl.String(), "only")
}

func TestRenderTable_Empty(t *testing.T) {
	assert.Empty(t, RenderTable(nil, nil))
}
