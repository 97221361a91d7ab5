package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/fleksjobb/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

// Palette. Each color has a light-background and a dark-background
// variant; lipgloss picks one from the terminal.
var (
	ColorGreen  = lipgloss.AdaptiveColor{Light: "#2e7d32", Dark: "#8ec07c"}
	ColorYellow = lipgloss.AdaptiveColor{Light: "#b26a00", Dark: "#fabd2f"}
	ColorRed    = lipgloss.AdaptiveColor{Light: "#c62828", Dark: "#fb4934"}
	ColorBlue   = lipgloss.AdaptiveColor{Light: "#1565c0", Dark: "#83a598"}
	ColorPurple = lipgloss.AdaptiveColor{Light: "#6a1b9a", Dark: "#d3869b"}
	ColorDim    = lipgloss.AdaptiveColor{Light: "#757575", Dark: "#928374"}
	ColorFg     = lipgloss.AdaptiveColor{Light: "#212121", Dark: "#ebdbb2"}
	ColorHeader = lipgloss.AdaptiveColor{Light: "#ba2d0b", Dark: "#fe8019"}
)

var (
	StyleGreen  = fg(ColorGreen)
	StyleYellow = fg(ColorYellow)
	StyleRed    = fg(ColorRed)
	StyleBlue   = fg(ColorBlue)
	StylePurple = fg(ColorPurple)
	StyleDim    = fg(ColorDim)
	StyleFg     = fg(ColorFg)
	StyleHeader = fg(ColorHeader).Bold(true)
	StyleBold   = fg(ColorFg).Bold(true)
)

func fg(c lipgloss.TerminalColor) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(c)
}

// RoleBadge labels an account role; a signed-out session shows as guest.
func RoleBadge(r domain.Role) string {
	switch r {
	case domain.RoleStudent:
		return StyleBlue.Render("student")
	case domain.RoleEmployer:
		return StylePurple.Render("employer")
	default:
		return StyleDim.Render("guest")
	}
}

// Header renders an upper-cased section title over a rule of equal width.
func Header(text string) string {
	upper := strings.ToUpper(text)
	rule := strings.Repeat("─", lipgloss.Width(upper))
	return fmt.Sprintf("%s\n%s", StyleHeader.Render(upper), StyleDim.Render(rule))
}

func Dim(text string) string  { return StyleDim.Render(text) }
func Bold(text string) string { return StyleBold.Render(text) }
