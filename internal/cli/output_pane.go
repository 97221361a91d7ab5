package cli

import (
	"fmt"

	"github.com/alexanderramin/fleksjobb/internal/cli/formatter"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
)

// outputPane holds text printed by a command-bar command (help, whoami,
// errors). It covers the active view until the next non-scroll key.
type outputPane struct {
	text string
	vp   viewport.Model
}

func newOutputPane() outputPane {
	vp := viewport.New(0, 0)
	vp.MouseWheelEnabled = true
	vp.MouseWheelDelta = 3
	// Letter keys stay free to dismiss the pane or reach global shortcuts.
	vp.KeyMap = viewport.KeyMap{
		PageDown:     key.NewBinding(key.WithKeys("pgdown")),
		PageUp:       key.NewBinding(key.WithKeys("pgup")),
		HalfPageUp:   key.NewBinding(key.WithKeys("ctrl+u")),
		HalfPageDown: key.NewBinding(key.WithKeys("ctrl+d")),
		Up:           key.NewBinding(key.WithKeys("up")),
		Down:         key.NewBinding(key.WithKeys("down")),
	}
	return outputPane{vp: vp}
}

func (p *outputPane) visible() bool { return p.text != "" }

func (p *outputPane) show(text string, width, height int) {
	p.text = text
	p.vp.SetContent(text)
	p.resize(width, height)
	p.vp.GotoTop()
}

func (p *outputPane) clear() { p.text = "" }

func (p *outputPane) resize(width, height int) {
	p.vp.Width = width
	p.vp.Height = height
}

func (p *outputPane) update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	p.vp, cmd = p.vp.Update(msg)
	return cmd
}

func (p *outputPane) scrollable() bool {
	return p.visible() && p.vp.TotalLineCount() > p.vp.Height
}

func (p *outputPane) View() string {
	if p.vp.Height <= 0 {
		return p.text
	}
	return p.vp.View()
}

// position is the status-bar marker for the scroll offset.
func (p *outputPane) position() string {
	switch {
	case p.vp.AtTop():
		return formatter.Dim("[TOP]")
	case p.vp.AtBottom():
		return formatter.Dim("[END]")
	default:
		return formatter.Dim(fmt.Sprintf("[%d%%]", int(p.vp.ScrollPercent()*100)))
	}
}

func isScrollKey(msg tea.KeyMsg) bool {
	switch msg.Type {
	case tea.KeyUp, tea.KeyDown, tea.KeyPgUp, tea.KeyPgDown,
		tea.KeyHome, tea.KeyEnd, tea.KeyCtrlU, tea.KeyCtrlD:
		return true
	}
	return false
}
