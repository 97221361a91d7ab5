package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/alexanderramin/fleksjobb/internal/cli/formatter"
	"github.com/alexanderramin/fleksjobb/internal/domain"
	"github.com/alexanderramin/fleksjobb/internal/repository"
	"github.com/alexanderramin/fleksjobb/internal/route"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

type jobsLoadedMsg struct {
	jobs []*domain.Job
	err  error
}

// jobListView browses open jobs. '/' edits a free-text query, 'c' picks a
// category and 'r' toggles remote-only.
type jobListView struct {
	state   *SharedState
	filter  repository.JobFilter
	query   textinput.Model
	typing  bool
	loading bool
	err     error
	jobs    []*domain.Job
	cursor  listCursor

	category string // bound to the category picker
}

func newJobListView(state *SharedState) *jobListView {
	ti := textinput.New()
	ti.Prompt = "/ "
	ti.Placeholder = "search title, description or skills"
	ti.CharLimit = 80
	return &jobListView{state: state, query: ti, loading: true}
}

func (v *jobListView) ID() ViewID         { return ViewJobList }
func (v *jobListView) Title() string      { return "Jobs" }
func (v *jobListView) Route() route.Route { return route.Jobs }

// Typing reports whether the search box has focus.
func (v *jobListView) Typing() bool { return v.typing }

func (v *jobListView) ShortHelp() []key.Binding {
	if v.typing {
		return []key.Binding{
			key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "search")),
			key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "clear")),
		}
	}
	return []key.Binding{
		key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "details")),
		key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search")),
		key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "category")),
		key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "remote only")),
		key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
	}
}

func (v *jobListView) Init() tea.Cmd {
	return v.loadData()
}

func (v *jobListView) loadData() tea.Cmd {
	app, f := v.state.App, v.filter
	return func() tea.Msg {
		jobs, err := app.Jobs.ListOpen(context.Background(), f)
		return jobsLoadedMsg{jobs: jobs, err: err}
	}
}

func (v *jobListView) reload() tea.Cmd {
	v.loading = true
	v.err = nil
	return v.loadData()
}

func (v *jobListView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case jobsLoadedMsg:
		v.loading = false
		v.err = msg.err
		v.jobs = msg.jobs
		v.cursor.clamp(len(v.jobs))
		return v, nil

	case refreshViewMsg:
		return v, v.reload()

	case tea.KeyMsg:
		if v.typing {
			return v, v.updateQuery(msg)
		}
		if v.cursor.move(msg.String(), len(v.jobs)) {
			return v, nil
		}
		switch msg.String() {
		case "enter":
			if v.cursor.pos < len(v.jobs) {
				return v, navigate(route.JobDetail.With(v.jobs[v.cursor.pos].ID))
			}
		case "/":
			v.typing = true
			return v, v.query.Focus()
		case "c":
			v.category = v.filter.Category
			return v, startWizardCmd(v.state, "Category", wizardSelectCategory(&v.category), func() tea.Cmd {
				v.filter.Category = v.category
				return v.reload()
			})
		case "r":
			v.filter.RemoteOnly = !v.filter.RemoteOnly
			return v, v.reload()
		}
		return v, nil
	}

	if v.typing {
		var cmd tea.Cmd
		v.query, cmd = v.query.Update(msg)
		return v, cmd
	}
	return v, nil
}

func (v *jobListView) updateQuery(msg tea.KeyMsg) tea.Cmd {
	switch msg.Type {
	case tea.KeyEnter:
		v.typing = false
		v.query.Blur()
		v.filter.Query = strings.TrimSpace(v.query.Value())
		return v.reload()
	case tea.KeyEsc:
		v.typing = false
		v.query.Blur()
		v.query.SetValue("")
		if v.filter.Query == "" {
			return nil
		}
		v.filter.Query = ""
		return v.reload()
	}
	var cmd tea.Cmd
	v.query, cmd = v.query.Update(msg)
	return cmd
}

func (v *jobListView) View() string {
	var b strings.Builder
	b.WriteString("\n")
	if v.typing {
		b.WriteString("  " + v.query.View() + "\n\n")
	} else if s := v.filterSummary(); s != "" {
		b.WriteString("  " + formatter.Dim(s) + "\n\n")
	}

	switch {
	case v.loading:
		b.WriteString(loadingText("jobs"))
		return b.String()
	case v.err != nil:
		b.WriteString(errorText(v.err))
		return b.String()
	case len(v.jobs) == 0:
		b.WriteString(emptyText("No open jobs match your filters."))
		return b.String()
	}

	tbl := formatter.NewTable("", "TITLE", "CATEGORY", "RATE", "HOURS", "LOCATION", "DEADLINE").AlignRight(3, 4)
	for i, j := range v.jobs {
		prefix, style := v.cursor.marker(i)
		loc := j.Location
		if j.Remote {
			loc += " (remote)"
		}
		tbl.Row(prefix, style.Render(padRight(j.Title, 32)), formatter.CategoryBadge(j.Category),
			formatter.Rate(j.HourlyRate), fmt.Sprintf("%d", j.EstimatedHours), loc,
			formatter.DeadlineStyled(j.Deadline))
	}
	b.WriteString(tbl.String())
	b.WriteString("\n  " + formatter.Dim(fmt.Sprintf("%d open jobs", len(v.jobs))))
	return b.String()
}

func (v *jobListView) filterSummary() string {
	var parts []string
	if v.filter.Query != "" {
		parts = append(parts, fmt.Sprintf("search %q", v.filter.Query))
	}
	if v.filter.Category != "" {
		parts = append(parts, "category "+v.filter.Category)
	}
	if v.filter.RemoteOnly {
		parts = append(parts, "remote only")
	}
	if len(parts) == 0 {
		return ""
	}
	return "Filtered by " + strings.Join(parts, ", ")
}
