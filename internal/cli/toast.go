package cli

import (
	"strings"
	"time"

	"github.com/alexanderramin/fleksjobb/internal/cli/formatter"
	"github.com/alexanderramin/fleksjobb/internal/form"
	tea "github.com/charmbracelet/bubbletea"
)

const maxToasts = 3

type toast struct {
	id     int
	notice form.Notice
}

// toastArea shows the most recent notices above the status bar. Each
// notice dismisses itself after ttl.
type toastArea struct {
	items  []toast
	nextID int
	ttl    time.Duration
}

func (t *toastArea) add(n form.Notice) tea.Cmd {
	t.nextID++
	id := t.nextID
	t.items = append(t.items, toast{id: id, notice: n})
	if len(t.items) > maxToasts {
		t.items = t.items[len(t.items)-maxToasts:]
	}
	if t.ttl <= 0 {
		return nil
	}
	return tea.Tick(t.ttl, func(time.Time) tea.Msg { return toastExpiredMsg{id: id} })
}

func (t *toastArea) expire(id int) {
	for i, it := range t.items {
		if it.id == id {
			t.items = append(t.items[:i], t.items[i+1:]...)
			return
		}
	}
}

func (t *toastArea) notices() []form.Notice {
	out := make([]form.Notice, len(t.items))
	for i, it := range t.items {
		out[i] = it.notice
	}
	return out
}

func (t *toastArea) View() string {
	if len(t.items) == 0 {
		return ""
	}
	lines := make([]string, 0, len(t.items))
	for _, it := range t.items {
		lines = append(lines, renderNotice(it.notice))
	}
	return strings.Join(lines, "\n")
}

func renderNotice(n form.Notice) string {
	var line string
	switch n.Kind {
	case form.NoticeSuccess:
		line = formatter.StyleGreen.Render("✔ " + n.Title)
	case form.NoticeError:
		line = formatter.StyleRed.Render("✖ " + n.Title)
	default:
		line = formatter.StyleBlue.Render("• " + n.Title)
	}
	if n.Description != "" {
		line += "  " + formatter.Dim(n.Description)
	}
	return line
}
