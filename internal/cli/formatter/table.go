package formatter

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const colGap = 2

// Table is an aligned text table with a header separator line. Widths are
// measured with lipgloss so styled cells line up.
type Table struct {
	headers []string
	rows    [][]string
	right   map[int]bool
}

// NewTable starts a table with the given column headers.
func NewTable(headers ...string) *Table {
	return &Table{headers: headers, right: map[int]bool{}}
}

// AlignRight right-aligns the given column indexes, for amounts and hours.
func (t *Table) AlignRight(cols ...int) *Table {
	for _, c := range cols {
		t.right[c] = true
	}
	return t
}

// Row appends a row. Missing cells render empty; extra cells are dropped.
func (t *Table) Row(cells ...string) *Table {
	t.rows = append(t.rows, cells)
	return t
}

// Len reports the number of data rows.
func (t *Table) Len() int { return len(t.rows) }

func (t *Table) widths() []int {
	widths := make([]int, len(t.headers))
	for i, h := range t.headers {
		widths[i] = lipgloss.Width(h)
	}
	for _, row := range t.rows {
		for i := 0; i < len(widths) && i < len(row); i++ {
			if w := lipgloss.Width(row[i]); w > widths[i] {
				widths[i] = w
			}
		}
	}
	return widths
}

func (t *Table) String() string {
	if len(t.headers) == 0 {
		return ""
	}
	widths := t.widths()
	last := len(widths) - 1

	var b strings.Builder
	cell := func(i int, styled string) {
		pad := widths[i] - lipgloss.Width(styled)
		if pad < 0 {
			pad = 0
		}
		if t.right[i] {
			b.WriteString(strings.Repeat(" ", pad) + styled)
		} else {
			b.WriteString(styled)
			if i < last {
				b.WriteString(strings.Repeat(" ", pad))
			}
		}
		if i < last {
			b.WriteString(strings.Repeat(" ", colGap))
		}
	}

	for i, h := range t.headers {
		cell(i, StyleHeader.Render(h))
	}
	b.WriteString("\n")
	for i, w := range widths {
		b.WriteString(StyleDim.Render(strings.Repeat("─", w)))
		if i < last {
			b.WriteString(strings.Repeat(" ", colGap))
		}
	}
	b.WriteString("\n")
	for _, row := range t.rows {
		for i := range widths {
			v := ""
			if i < len(row) {
				v = row[i]
			}
			cell(i, v)
		}
		b.WriteString("\n")
	}
	return b.String()
}

// RenderTable renders headers and rows with default alignment.
func RenderTable(headers []string, rows [][]string) string {
	t := NewTable(headers...)
	for _, r := range rows {
		t.Row(r...)
	}
	return t.String()
}
