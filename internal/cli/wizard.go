package cli

import (
	"context"

	"github.com/alexanderramin/fleksjobb/internal/cli/formatter"
	"github.com/alexanderramin/fleksjobb/internal/domain"
	"github.com/alexanderramin/fleksjobb/internal/form"
	"github.com/alexanderramin/fleksjobb/internal/route"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// fleksjobbHuhTheme returns a huh theme using the Gruvbox palette.
func fleksjobbHuhTheme() *huh.Theme {
	t := huh.ThemeBase()

	// Focused state: orange accent
	t.Focused.Title = lipgloss.NewStyle().Foreground(formatter.ColorHeader).Bold(true)
	t.Focused.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorGreen)
	t.Focused.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.FocusedButton = lipgloss.NewStyle().Foreground(formatter.ColorFg).Background(formatter.ColorHeader).Padding(0, 1)
	t.Focused.BlurredButton = lipgloss.NewStyle().Foreground(formatter.ColorDim).Padding(0, 1)
	t.Focused.TextInput.Cursor = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.TextInput.Placeholder = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Focused.Description = lipgloss.NewStyle().Foreground(formatter.ColorRed)
	t.Focused.ErrorMessage = lipgloss.NewStyle().Foreground(formatter.ColorRed)
	t.Focused.ErrorIndicator = lipgloss.NewStyle().Foreground(formatter.ColorRed)

	// Blurred state: dimmed
	t.Blurred.Title = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.Description = lipgloss.NewStyle().Foreground(formatter.ColorRed)

	return t
}

// wizardSelectCategory creates a one-question form picking a job category.
// The empty option clears the filter.
func wizardSelectCategory(result *string) *huh.Form {
	opts := []huh.Option[string]{huh.NewOption("All categories", "")}
	for _, c := range domain.JobCategories {
		opts = append(opts, huh.NewOption(c, c))
	}
	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Category").
				Options(opts...).
				Value(result),
		),
	).WithTheme(fleksjobbHuhTheme()).WithShowHelp(false)
}

// ── wizard view ──────────────────────────────────────────────────────────────

// wizardView wraps a huh.Form as a View on the navigation stack.
// When the form completes, it sends a wizardCompleteMsg carrying the
// done callback's command.
type wizardView struct {
	state    *SharedState
	form     *huh.Form
	titleStr string
	done     func() tea.Cmd
}

func newWizardView(state *SharedState, title string, form *huh.Form, done func() tea.Cmd) *wizardView {
	return &wizardView{
		state:    state,
		form:     form,
		titleStr: title,
		done:     done,
	}
}

func (v *wizardView) Init() tea.Cmd {
	return v.form.Init()
}

func (v *wizardView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	// Escape cancels the wizard.
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc {
		return v, func() tea.Msg { return wizardCompleteMsg{} }
	}

	f, cmd := v.form.Update(msg)
	if hf, ok := f.(*huh.Form); ok {
		v.form = hf
	}

	if v.form.State == huh.StateCompleted {
		var doneCmd tea.Cmd
		if v.done != nil {
			doneCmd = v.done()
		}
		return v, func() tea.Msg {
			return wizardCompleteMsg{nextCmd: tea.Batch(cmd, doneCmd)}
		}
	}

	return v, cmd
}

func (v *wizardView) View() string {
	return "\n" + v.form.View()
}

func (v *wizardView) ID() ViewID         { return ViewForm }
func (v *wizardView) Title() string      { return v.titleStr }
func (v *wizardView) Route() route.Route { return "" }
func (v *wizardView) ShortHelp() []key.Binding {
	return []key.Binding{
		key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "select")),
		key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
	}
}

// startWizardCmd creates a tea.Cmd that pushes a wizardView.
func startWizardCmd(state *SharedState, title string, form *huh.Form, done func() tea.Cmd) tea.Cmd {
	return pushView(newWizardView(state, title, form, done))
}

// ── confirmation ─────────────────────────────────────────────────────────────

// confirmSpec describes a destructive action awaiting a yes.
type confirmSpec struct {
	title   string
	prompt  string
	detail  string
	success string
	next    route.Route // shown after success in place of the current view
	run     func(ctx context.Context) error
}

// confirmView asks before a destructive action. There is no undo, so
// only y or enter proceeds and anything else backs out.
type confirmView struct {
	state *SharedState
	spec  confirmSpec
	err   error
}

func confirmCmd(state *SharedState, spec confirmSpec) tea.Cmd {
	return pushView(&confirmView{state: state, spec: spec})
}

func (v *confirmView) ID() ViewID         { return ViewConfirm }
func (v *confirmView) Title() string      { return v.spec.title }
func (v *confirmView) Route() route.Route { return "" }
func (v *confirmView) Init() tea.Cmd      { return nil }

func (v *confirmView) ShortHelp() []key.Binding {
	return []key.Binding{
		key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "confirm")),
		key.NewBinding(key.WithKeys("n", "esc"), key.WithHelp("n/esc", "cancel")),
	}
}

func (v *confirmView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return v, nil
	}
	switch keyMsg.String() {
	case "y", "Y", "enter":
		if err := v.spec.run(context.Background()); err != nil {
			v.err = err
			return v, notifyError(err)
		}
		next := notify(form.NoticeSuccess, v.spec.success, "")
		if v.spec.next != "" {
			to := v.spec.next
			next = tea.Batch(next, func() tea.Msg { return navigateMsg{to: to, replace: true} })
		}
		return v, func() tea.Msg { return wizardCompleteMsg{nextCmd: next} }
	case "n", "N", "esc":
		return v, popView()
	}
	return v, nil
}

func (v *confirmView) View() string {
	body := formatter.StyleYellow.Render("⚠ "+v.spec.prompt) + "\n"
	if v.spec.detail != "" {
		body += "\n" + formatter.Dim(v.spec.detail) + "\n"
	}
	body += "\n" + formatter.Dim("This cannot be undone.") + "\n\n" +
		formatter.Bold("[y]") + " yes   " + formatter.Bold("[n]") + " no"
	if v.err != nil {
		body += "\n\n" + formatter.StyleRed.Render("Error: "+describeError(v.err))
	}
	return "\n" + formatter.RenderBox(v.spec.title, body) + "\n"
}
