package cli

import (
	"errors"
	"strings"

	"github.com/alexanderramin/fleksjobb/internal/cli/formatter"
	"github.com/alexanderramin/fleksjobb/internal/domain"
	"github.com/alexanderramin/fleksjobb/internal/form"
	"github.com/alexanderramin/fleksjobb/internal/route"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// Keys the app handles before the active view sees them. Views that
// capture input (forms, confirmations, a focused filter) only lose ctrl+c.
var globalKeys = struct {
	ForceQuit, Quit, Command, Help, Back key.Binding
}{
	ForceQuit: key.NewBinding(key.WithKeys("ctrl+c")),
	Quit:      key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "quit")),
	Command:   key.NewBinding(key.WithKeys(":"), key.WithHelp(":", "command")),
	Help:      key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
	Back:      key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
}

// appModel is the root bubbletea model: a stack of views under a header
// with breadcrumbs, then toasts, a status bar and the command bar.
type appModel struct {
	state     *SharedState
	viewStack []View
	cmdBar    commandBar
	toasts    toastArea
	output    outputPane
	quitting  bool
}

func newAppModel(app *App, sess domain.Session) appModel {
	state := &SharedState{App: app, Session: sess}
	m := appModel{
		state:  state,
		cmdBar: newCommandBar(state),
		toasts: toastArea{ttl: app.Config.ToastTTL},
		output: newOutputPane(),
	}

	home, err := resolveRoute(state, route.Home)
	if err != nil {
		home = newLoginView(state)
	}
	m.viewStack = []View{home}
	return m
}

func (m *appModel) activeView() View {
	if len(m.viewStack) == 0 {
		return nil
	}
	return m.viewStack[len(m.viewStack)-1]
}

// forward delivers msg to the top view and stores the result.
func (m *appModel) forward(msg tea.Msg) tea.Cmd {
	v := m.activeView()
	if v == nil {
		return nil
	}
	updated, cmd := v.Update(msg)
	m.viewStack[len(m.viewStack)-1] = updated.(View)
	return cmd
}

// popTo closes and removes every view above index i.
func (m *appModel) popTo(i int) {
	for j := len(m.viewStack) - 1; j > i; j-- {
		closeView(m.viewStack[j])
	}
	m.viewStack = m.viewStack[:i+1]
}

func (m *appModel) push(v View) tea.Cmd {
	m.viewStack = append(m.viewStack, v)
	return v.Init()
}

// swapTop closes the top view and puts v in its place.
func (m *appModel) swapTop(v View) tea.Cmd {
	if len(m.viewStack) == 0 {
		return m.push(v)
	}
	closeView(m.activeView())
	m.viewStack[len(m.viewStack)-1] = v
	return v.Init()
}

func (m *appModel) back() {
	if len(m.viewStack) > 1 {
		m.popTo(len(m.viewStack) - 2)
	}
}

// resetStack closes every view and starts over with v.
func (m *appModel) resetStack(v View) tea.Cmd {
	m.popTo(-1)
	m.output.clear()
	return m.push(v)
}

func (m *appModel) quit() tea.Cmd {
	m.quitting = true
	m.popTo(-1)
	return tea.Quit
}

func (m appModel) Init() tea.Cmd {
	if v := m.activeView(); v != nil {
		return v.Init()
	}
	return nil
}

func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.state.Width, m.state.Height = msg.Width, msg.Height
		m.cmdBar.SetWidth(msg.Width)
		if m.output.visible() {
			m.output.resize(msg.Width, m.state.ContentHeight())
		}
		cmd := m.forward(msg)
		return m, cmd

	case tea.KeyMsg:
		cmd := m.handleKey(msg)
		return m, cmd

	case tea.MouseMsg:
		if m.output.visible() {
			cmd := m.output.update(msg)
			return m, cmd
		}

	case pushViewMsg:
		m.cmdBar.Blur()
		m.output.clear()
		cmd := m.push(msg.view)
		return m, cmd

	case popViewMsg:
		m.back()
		return m, nil

	case navigateMsg:
		m.cmdBar.Blur()
		m.output.clear()
		cmd := m.navigate(msg)
		return m, cmd

	case refreshViewMsg:
		// Every view reloads, not just the top, so a list under a form
		// reflects what the form changed.
		cmds := make([]tea.Cmd, 0, len(m.viewStack))
		for i, v := range m.viewStack {
			updated, cmd := v.Update(msg)
			m.viewStack[i] = updated.(View)
			cmds = append(cmds, cmd)
		}
		return m, tea.Batch(cmds...)

	case cmdOutputMsg:
		m.output.show(msg.output, m.state.Width, m.state.ContentHeight())
		return m, nil

	case wizardCompleteMsg:
		m.back()
		m.output.clear()
		return m, tea.Batch(msg.nextCmd, refresh())

	case noticeMsg:
		cmd := m.toasts.add(msg.notice)
		return m, cmd

	case toastExpiredMsg:
		m.toasts.expire(msg.id)
		return m, nil

	case signInMsg:
		m.state.SignIn(msg.session)
		return m, nil

	case signOutMsg:
		m.state.SignOut()
		cmd := m.resetStack(newLoginView(m.state))
		return m, cmd

	case effectsMsg:
		// In order: a sign-in must land before the navigation that needs it.
		cmds := make([]tea.Cmd, 0, len(msg.msgs))
		var model tea.Model = m
		for _, inner := range msg.msgs {
			var cmd tea.Cmd
			model, cmd = model.Update(inner)
			cmds = append(cmds, cmd)
		}
		return model, tea.Batch(cmds...)

	case quitMsg:
		cmd := m.quit()
		return m, cmd
	}

	// Everything else (blink, spinner ticks, loaded data) goes to the
	// command bar when it is focused and to the top view.
	var cmds []tea.Cmd
	if m.cmdBar.Focused() {
		cmds = append(cmds, m.cmdBar.UpdateNonKey(msg))
	}
	cmds = append(cmds, m.forward(msg))
	return m, tea.Batch(cmds...)
}

// navigate shows the view for msg.to. A view already on the stack for the
// same route is revealed and refreshed; otherwise the route is resolved and
// the new view is pushed, or replaces the top view when msg.replace is set.
func (m *appModel) navigate(msg navigateMsg) tea.Cmd {
	target := msg.to
	if target == route.Home {
		target = route.DashboardFor(m.state.Session)
	}
	for i := len(m.viewStack) - 1; i >= 0; i-- {
		if m.viewStack[i].Route() == target {
			m.popTo(i)
			return refresh()
		}
	}

	v, err := resolveRoute(m.state, target)
	if err != nil {
		toast := m.toasts.add(form.Notice{Kind: form.NoticeError, Title: "Cannot open " + string(msg.to), Description: describeError(err)})
		if errors.Is(err, errSignInRequired) {
			return tea.Batch(toast, m.push(newLoginView(m.state)))
		}
		return toast
	}
	if msg.replace {
		return m.swapTop(v)
	}
	return m.push(v)
}

func (m *appModel) handleKey(msg tea.KeyMsg) tea.Cmd {
	if key.Matches(msg, globalKeys.ForceQuit) {
		return m.quit()
	}

	if m.cmdBar.Focused() {
		if msg.Type == tea.KeyEnter {
			m.output.clear()
		}
		return m.cmdBar.Update(msg)
	}

	if m.output.visible() {
		if isScrollKey(msg) {
			return m.output.update(msg)
		}
		m.output.clear()
	}

	if viewCapturesInput(m.activeView()) {
		return m.forward(msg)
	}

	switch {
	case key.Matches(msg, globalKeys.Command):
		m.cmdBar.Focus()
		return nil
	case key.Matches(msg, globalKeys.Quit):
		return m.quit()
	case key.Matches(msg, globalKeys.Help):
		return outputCmd(helpText(m.state.Session))
	case key.Matches(msg, globalKeys.Back):
		m.back()
		return nil
	}
	return m.forward(msg)
}

func (m appModel) View() string {
	if m.quitting {
		return ""
	}

	sections := []string{m.renderHeader()}
	switch {
	case m.output.visible():
		sections = append(sections, m.output.View())
	case m.activeView() != nil:
		sections = append(sections, m.activeView().View())
	}
	if t := m.toasts.View(); t != "" {
		sections = append(sections, t)
	}
	sections = append(sections, m.renderStatusBar(), m.cmdBar.View())

	out := strings.Join(sections, "\n")
	// The alt-screen renderer diffs by line, so short frames would leave
	// stale rows behind.
	if lines := strings.Count(out, "\n") + 1; lines < m.state.Height {
		out += strings.Repeat("\n", m.state.Height-lines)
	}
	return out
}

func (m *appModel) rule() string {
	return formatter.Dim(strings.Repeat("─", max(m.state.Width, 20)))
}

// renderHeader is "fleksjobb › Dashboard › Job" plus who is signed in.
func (m *appModel) renderHeader() string {
	var b strings.Builder
	b.WriteString(formatter.StylePurple.Render("fleksjobb"))

	crumbs := make([]string, 0, len(m.viewStack))
	for _, v := range m.viewStack {
		if t := v.Title(); t != "" {
			crumbs = append(crumbs, t)
		}
	}
	if len(crumbs) > 0 {
		b.WriteString(" " + formatter.Dim("› "+strings.Join(crumbs, " › ")))
	}

	if sess := m.state.Session; sess.Authenticated() {
		b.WriteString("  " + formatter.Dim("[") + formatter.StyleGreen.Render(sess.Name) +
			" " + formatter.RoleBadge(sess.Role) + formatter.Dim("]"))
	} else {
		b.WriteString("  " + formatter.Dim("[guest]"))
	}
	return b.String() + "\n" + m.rule()
}

func (m *appModel) renderStatusBar() string {
	var hints []string
	hint := func(b key.Binding) {
		hints = append(hints, formatter.Dim(b.Help().Key+": "+b.Help().Desc))
	}

	switch {
	case m.output.scrollable():
		hints = append(hints, m.output.position(), formatter.Dim("↑↓ pgup/pgdn: scroll"), formatter.Dim("esc: dismiss"))
	case !m.output.visible() && m.activeView() != nil:
		for _, b := range m.activeView().ShortHelp() {
			hint(b)
		}
	}

	if !m.cmdBar.Focused() && !m.output.visible() && !viewCapturesInput(m.activeView()) {
		if len(m.viewStack) > 1 {
			hint(globalKeys.Back)
		}
		hint(globalKeys.Command)
	}
	return m.rule() + "\n" + strings.Join(hints, "  ")
}

// viewCapturesInput reports whether v takes every key itself, including
// q, : and esc.
func viewCapturesInput(v View) bool {
	if v == nil {
		return false
	}
	switch v.ID() {
	case ViewLogin, ViewForm, ViewConfirm:
		return true
	}
	if t, ok := v.(interface{ Typing() bool }); ok {
		return t.Typing()
	}
	return false
}
