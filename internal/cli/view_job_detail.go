package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/alexanderramin/fleksjobb/internal/cli/formatter"
	"github.com/alexanderramin/fleksjobb/internal/domain"
	"github.com/alexanderramin/fleksjobb/internal/route"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type jobDetailLoadedMsg struct {
	job      *domain.Job
	employer *domain.User
	err      error
}

// jobDetailView shows one listing. The available actions depend on who
// is looking: students apply, the owning employer edits, reviews
// applicants or deletes, and both parties of a running job can open it.
type jobDetailView struct {
	state    *SharedState
	jobID    string
	loading  bool
	err      error
	job      *domain.Job
	employer *domain.User
}

func newJobDetailView(state *SharedState, jobID string) *jobDetailView {
	return &jobDetailView{state: state, jobID: jobID, loading: true}
}

func (v *jobDetailView) ID() ViewID         { return ViewJobDetail }
func (v *jobDetailView) Route() route.Route { return route.JobDetail.With(v.jobID) }

func (v *jobDetailView) Title() string {
	if v.job != nil {
		return truncTitle(v.job.Title)
	}
	return "Job"
}

func (v *jobDetailView) owner() bool {
	return v.job != nil && v.state.Session.IsEmployer() && v.job.EmployerID == v.state.Session.UserID
}

func (v *jobDetailView) participant() bool {
	if v.job == nil || !v.state.Session.Authenticated() {
		return false
	}
	uid := v.state.Session.UserID
	return v.job.EmployerID == uid || v.job.AssignedStudentID == uid
}

func (v *jobDetailView) ShortHelp() []key.Binding {
	var keys []key.Binding
	if v.job != nil {
		switch {
		case v.owner() && v.job.Editable():
			keys = append(keys,
				key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "applicants")),
				key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit")),
				key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete")),
			)
		case v.job.Editable() && !v.state.Session.IsEmployer():
			keys = append(keys, key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "apply")))
		}
		if v.participant() && v.job.Status != domain.JobOpen {
			keys = append(keys, key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "manage")))
		}
	}
	return append(keys,
		key.NewBinding(key.WithKeys("R"), key.WithHelp("R", "report")),
		key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
	)
}

func (v *jobDetailView) Init() tea.Cmd {
	return v.loadData()
}

func (v *jobDetailView) loadData() tea.Cmd {
	app, id := v.state.App, v.jobID
	return func() tea.Msg {
		ctx := context.Background()
		job, err := app.Jobs.Get(ctx, id)
		if err != nil {
			return jobDetailLoadedMsg{err: err}
		}
		employer, err := app.Accounts.GetUser(ctx, job.EmployerID)
		if err != nil {
			return jobDetailLoadedMsg{err: err}
		}
		return jobDetailLoadedMsg{job: job, employer: employer}
	}
}

func (v *jobDetailView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case jobDetailLoadedMsg:
		v.loading = false
		v.err = msg.err
		if msg.err == nil {
			v.job, v.employer = msg.job, msg.employer
		}
		return v, nil

	case refreshViewMsg:
		v.err = nil
		return v, v.loadData()

	case tea.KeyMsg:
		if v.job == nil {
			return v, nil
		}
		return v, v.handleKey(msg.String())
	}
	return v, nil
}

func (v *jobDetailView) handleKey(k string) tea.Cmd {
	sess := v.state.Session
	switch k {
	case "a":
		if !v.job.Editable() || sess.IsEmployer() {
			return nil
		}
		if !sess.Authenticated() {
			return navigate(route.Login)
		}
		return pushView(newApplyView(v.state, v.job))
	case "e":
		if v.owner() && v.job.Editable() {
			return navigate(route.EditJob.With(v.job.ID))
		}
	case "p":
		if v.owner() {
			return navigate(route.Applicants.With(v.job.ID))
		}
	case "d":
		if v.owner() && v.job.Editable() {
			app, job := v.state.App, v.job
			return confirmCmd(v.state, confirmSpec{
				title:   "Delete job",
				prompt:  fmt.Sprintf("Delete %q?", job.Title),
				detail:  "The listing and its pending applications are removed.",
				success: "Job deleted",
				next:    route.Home,
				run: func(ctx context.Context) error {
					return app.Jobs.Delete(ctx, sess, job.ID)
				},
			})
		}
	case "m":
		if v.participant() && v.job.Status != domain.JobOpen {
			return navigate(route.ActiveJob.With(v.job.ID))
		}
	case "R":
		if !sess.Authenticated() {
			return navigate(route.Login)
		}
		return pushView(newReportView(v.state, v.job.ID))
	}
	return nil
}

func (v *jobDetailView) View() string {
	if v.loading {
		return loadingText("job")
	}
	if v.err != nil {
		return errorText(v.err)
	}
	j := v.job

	var b strings.Builder
	b.WriteString("\n  " + formatter.Bold(j.Title) + "  " + formatter.JobStatusPill(j.Status) + "\n")
	b.WriteString("  " + formatter.Dim("Posted by "+v.employer.Name+" · "+formatter.HumanTimestamp(j.CreatedAt)) + "\n\n")

	loc := j.Location
	if j.Remote {
		loc += formatter.StyleGreen.Render(" · remote")
	}
	facts := []string{
		detailLine("Category", formatter.CategoryBadge(j.Category)),
		detailLine("Rate", formatter.Rate(j.HourlyRate)),
		detailLine("Estimate", fmt.Sprintf("%d hours", j.EstimatedHours)),
		detailLine("Budget", formatter.Money(j.BudgetNOK())),
		detailLine("Location", loc),
		detailLine("Deadline", formatter.Date(j.Deadline)+"  "+formatter.DeadlineStyled(j.Deadline)),
		detailLine("Skills", strings.Join(j.Skills, ", ")),
	}
	if j.Status != domain.JobOpen {
		facts = append(facts, detailLine("Progress", formatter.RenderProgress(j.ProgressPct(), 16)))
	}
	b.WriteString(strings.Join(facts, "\n") + "\n\n")

	width := v.state.Width - 4
	if width < 40 {
		width = 72
	}
	b.WriteString(lipgloss.NewStyle().Width(width).PaddingLeft(2).Render(j.Description) + "\n")

	if !v.state.Session.Authenticated() && j.Editable() {
		b.WriteString("\n  " + formatter.Dim("Sign in as a student to apply."))
	}
	return b.String()
}

// detailLine renders one label/value line of a detail view.
func detailLine(label, value string) string {
	return "  " + formatter.Dim(padRight(label, 10)) + value
}

// truncTitle keeps breadcrumbs short.
func truncTitle(s string) string {
	if len([]rune(s)) <= 24 {
		return s
	}
	return padRight(s, 24)
}
