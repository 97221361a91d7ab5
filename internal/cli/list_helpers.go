package cli

import (
	"strings"

	"github.com/alexanderramin/fleksjobb/internal/cli/formatter"
	"github.com/charmbracelet/lipgloss"
)

// listCursor tracks the selected row of a list view.
type listCursor struct {
	pos int
}

// move handles the up/down keys for a list of n rows and reports whether
// the key was consumed.
func (c *listCursor) move(key string, n int) bool {
	switch key {
	case "up", "k":
		if c.pos > 0 {
			c.pos--
		}
		return true
	case "down", "j":
		if c.pos < n-1 {
			c.pos++
		}
		return true
	}
	return false
}

// clamp keeps the cursor inside a list that may have shrunk after a reload.
func (c *listCursor) clamp(n int) {
	if c.pos >= n {
		c.pos = n - 1
	}
	if c.pos < 0 {
		c.pos = 0
	}
}

// marker returns the row prefix and name style for row i.
func (c listCursor) marker(i int) (string, lipgloss.Style) {
	if i == c.pos {
		return formatter.StyleGreen.Render("▸ "), formatter.StyleBold
	}
	return "  ", formatter.StyleFg
}

// padRight pads a string to a minimum width, truncating if needed.
func padRight(s string, width int) string {
	if len([]rune(s)) > width {
		return string([]rune(s)[:width-1]) + "…"
	}
	return s + strings.Repeat(" ", width-len([]rune(s)))
}

func loadingText(what string) string {
	return "\n  " + formatter.Dim("Loading "+what+"...")
}

func errorText(err error) string {
	return "\n  " + formatter.StyleRed.Render("Error: "+describeError(err))
}

func emptyText(msg string) string {
	return "  " + formatter.Dim(msg) + "\n"
}
