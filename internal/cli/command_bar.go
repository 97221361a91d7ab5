package cli

import (
	"fmt"
	"sort"
	"strings"

	"github.com/alexanderramin/fleksjobb/internal/cli/formatter"
	"github.com/alexanderramin/fleksjobb/internal/domain"
	"github.com/alexanderramin/fleksjobb/internal/route"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// commandBar is the persistent text input at the bottom of the TUI.
// It handles command entry, autocomplete suggestions, and history navigation.
type commandBar struct {
	input   textinput.Model
	state   *SharedState
	focused bool

	// history
	history    []string
	historyIdx int
}

func newCommandBar(state *SharedState) commandBar {
	ti := textinput.New()
	ti.Prompt = ""
	ti.ShowSuggestions = true
	ti.CharLimit = 200
	ti.KeyMap.NextSuggestion = key.NewBinding(key.WithKeys("ctrl+n"))
	ti.KeyMap.PrevSuggestion = key.NewBinding(key.WithKeys("ctrl+p"))

	return commandBar{
		input: ti,
		state: state,
	}
}

// Focus gives focus to the command bar.
func (c *commandBar) Focus() {
	c.focused = true
	c.input.Focus()
}

// Blur removes focus from the command bar.
func (c *commandBar) Blur() {
	c.focused = false
	c.input.Blur()
}

// Focused returns whether the command bar has focus.
func (c *commandBar) Focused() bool {
	return c.focused
}

// SetWidth updates the input width for terminal resizing.
func (c *commandBar) SetWidth(w int) {
	c.input.Width = w - len("fleksjobb > ") - 1
}

// Update handles key messages when the command bar is focused.
func (c *commandBar) Update(msg tea.KeyMsg) tea.Cmd {
	switch msg.Type {
	case tea.KeyEnter:
		input := strings.TrimSpace(c.input.Value())
		c.input.Reset()
		c.input.SetSuggestions(nil)
		if input == "" {
			return nil
		}
		c.addHistory(input)
		return c.executeCommand(input)

	case tea.KeyUp:
		c.historyUp()
		return nil

	case tea.KeyDown:
		c.historyDown()
		return nil

	case tea.KeyEsc:
		c.Blur()
		return nil

	default:
		var cmd tea.Cmd
		c.input, cmd = c.input.Update(msg)
		c.updateSuggestions()
		return cmd
	}
}

// UpdateNonKey handles non-key messages (e.g., cursor blink).
func (c *commandBar) UpdateNonKey(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	c.input, cmd = c.input.Update(msg)
	return cmd
}

// View renders the command bar.
func (c *commandBar) View() string {
	prefix := formatter.StylePurple.Render("fleksjobb") + " " + formatter.Dim("❯") + " "
	if !c.focused {
		return prefix + formatter.Dim("press : to type a command")
	}
	return prefix + c.input.View()
}

// ── commands ─────────────────────────────────────────────────────────────────

// shortcuts maps single-word commands to the routes they open.
var shortcuts = map[string]route.Route{
	"home":      route.Home,
	"dashboard": route.Home,
	"jobs":      route.Jobs,
	"post":      route.PostJob,
	"active":    route.ActiveJobs,
	"report":    route.Report,
	"reviews":   route.Reviews,
	"payments":  route.Payments,
	"team":      route.Team,
	"login":     route.Login,
	"register":  route.Register,
	"messages":  route.Messages,
}

// executeCommand dispatches a text command and returns a tea.Cmd.
// Commands may return cmdOutputMsg for display, navigation messages
// for view transitions, or quitMsg for exit.
func (c *commandBar) executeCommand(input string) tea.Cmd {
	parts := strings.Fields(input)
	if len(parts) == 0 {
		return nil
	}
	cmd := strings.ToLower(parts[0])
	args := parts[1:]

	if strings.HasPrefix(cmd, "/") {
		c.Blur()
		return navigate(route.Route(parts[0]))
	}
	if to, ok := shortcuts[cmd]; ok {
		c.Blur()
		return navigate(to)
	}

	switch cmd {
	case "goto", "go":
		if len(args) != 1 {
			return outputCmd(formatter.StyleRed.Render("usage: goto /route"))
		}
		c.Blur()
		return navigate(route.Route(args[0]))
	case "reports":
		if !c.state.Session.Authenticated() {
			return outputCmd(formatter.StyleRed.Render(errSignInRequired.Error()))
		}
		c.Blur()
		return pushView(newReportsView(c.state))
	case "logout":
		c.Blur()
		return func() tea.Msg { return signOutMsg{} }
	case "whoami":
		return outputCmd(whoami(c.state.Session))
	case "help":
		return outputCmd(helpText(c.state.Session))
	case "quit", "exit":
		return func() tea.Msg { return quitMsg{} }
	}
	return outputCmd(formatter.StyleRed.Render(fmt.Sprintf("unknown command %q, type help for a list", cmd)))
}

func whoami(s domain.Session) string {
	if !s.Authenticated() {
		return "\n  " + formatter.Dim("Not signed in.")
	}
	return fmt.Sprintf("\n  %s %s  %s", formatter.Bold(s.Name), formatter.RoleBadge(s.Role), formatter.TruncID(s.UserID))
}

func helpText(s domain.Session) string {
	var b strings.Builder
	b.WriteString("\n" + formatter.Header("Commands") + "\n\n")
	rows := [][2]string{
		{"goto /route", "open any route, e.g. goto /active-jobs"},
		{"home", "your dashboard"},
		{"jobs", "browse open jobs"},
		{"active", "jobs in progress"},
		{"payments", "payments overview"},
		{"reviews", "your reviews"},
		{"report", "report a problem"},
		{"reports", "reports you filed"},
	}
	if s.IsEmployer() {
		rows = append(rows,
			[2]string{"post", "post a new job"},
			[2]string{"team", "manage your team"},
		)
	}
	if s.Authenticated() {
		rows = append(rows, [2]string{"logout", "sign out"})
	} else {
		rows = append(rows,
			[2]string{"login", "sign in"},
			[2]string{"register", "create an account"},
		)
	}
	rows = append(rows, [2]string{"quit", "exit fleksjobb"})
	for _, r := range rows {
		b.WriteString("  " + formatter.StyleGreen.Render(padRight(r[0], 14)) + formatter.Dim(r[1]) + "\n")
	}
	return b.String()
}

// ── history ──────────────────────────────────────────────────────────────────

func (c *commandBar) addHistory(line string) {
	if line == "" {
		return
	}
	c.history = append(c.history, line)
	c.historyIdx = len(c.history)
}

func (c *commandBar) historyUp() {
	if c.historyIdx > 0 {
		c.historyIdx--
		c.input.SetValue(c.history[c.historyIdx])
		c.input.CursorEnd()
	}
}

func (c *commandBar) historyDown() {
	if c.historyIdx < len(c.history)-1 {
		c.historyIdx++
		c.input.SetValue(c.history[c.historyIdx])
		c.input.CursorEnd()
	} else {
		c.historyIdx = len(c.history)
		c.input.SetValue("")
	}
}

// ── suggestions ──────────────────────────────────────────────────────────────

func commandNames() []string {
	names := []string{"goto", "reports", "logout", "whoami", "help", "quit"}
	for name := range shortcuts {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// routeSuggestions lists the routes that need no id.
func routeSuggestions() []string {
	var out []string
	for _, r := range route.Patterns {
		if !strings.Contains(string(r), ":") {
			out = append(out, string(r))
		}
	}
	return out
}

func (c *commandBar) updateSuggestions() {
	text := c.input.Value()
	if text == "" {
		c.input.SetSuggestions(nil)
		return
	}

	parts := strings.Fields(text)
	trailingSpace := strings.HasSuffix(text, " ")

	if len(parts) == 1 && !trailingSpace {
		if strings.HasPrefix(parts[0], "/") {
			c.input.SetSuggestions(filterSuggestions(routeSuggestions(), parts[0]))
			return
		}
		c.input.SetSuggestions(filterSuggestions(commandNames(), parts[0]))
		return
	}

	cmd := strings.ToLower(parts[0])
	if (cmd == "goto" || cmd == "go") && len(parts) <= 2 {
		prefix := ""
		if len(parts) == 2 {
			prefix = parts[1]
		}
		var full []string
		for _, r := range filterSuggestions(routeSuggestions(), prefix) {
			full = append(full, cmd+" "+r)
		}
		c.input.SetSuggestions(full)
		return
	}

	c.input.SetSuggestions(nil)
}

func filterSuggestions(candidates []string, prefix string) []string {
	var out []string
	lp := strings.ToLower(prefix)
	for _, s := range candidates {
		if strings.HasPrefix(strings.ToLower(s), lp) {
			out = append(out, s)
		}
	}
	return out
}
