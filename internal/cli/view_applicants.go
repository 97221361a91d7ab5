package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/alexanderramin/fleksjobb/internal/cli/formatter"
	"github.com/alexanderramin/fleksjobb/internal/domain"
	"github.com/alexanderramin/fleksjobb/internal/form"
	"github.com/alexanderramin/fleksjobb/internal/route"
	"github.com/alexanderramin/fleksjobb/internal/service"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type applicantsLoadedMsg struct {
	job        *domain.Job
	applicants []*service.Applicant
	err        error
}

// acceptedMsg reports a successful accept so the view can hand over to
// the active job screen.
type acceptedMsg struct {
	job *domain.Job
	err error
}

// applicantsView lists the applications for one of the employer's jobs.
// Accepting assigns the student and closes the listing; rejecting asks
// for confirmation first.
type applicantsView struct {
	state      *SharedState
	jobID      string
	loading    bool
	err        error
	job        *domain.Job
	applicants []*service.Applicant
	cursor     listCursor
}

func newApplicantsView(state *SharedState, jobID string) *applicantsView {
	return &applicantsView{state: state, jobID: jobID, loading: true}
}

func (v *applicantsView) ID() ViewID         { return ViewApplicants }
func (v *applicantsView) Title() string      { return "Applicants" }
func (v *applicantsView) Route() route.Route { return route.Applicants.With(v.jobID) }

func (v *applicantsView) ShortHelp() []key.Binding {
	return []key.Binding{
		key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "accept")),
		key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "reject")),
		key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
	}
}

func (v *applicantsView) Init() tea.Cmd {
	return v.loadData()
}

func (v *applicantsView) loadData() tea.Cmd {
	app, sess, id := v.state.App, v.state.Session, v.jobID
	return func() tea.Msg {
		ctx := context.Background()
		job, err := app.Jobs.Get(ctx, id)
		if err != nil {
			return applicantsLoadedMsg{err: err}
		}
		list, err := app.Applications.ListForJob(ctx, sess, id)
		return applicantsLoadedMsg{job: job, applicants: list, err: err}
	}
}

func (v *applicantsView) selected() *service.Applicant {
	if v.cursor.pos < len(v.applicants) {
		return v.applicants[v.cursor.pos]
	}
	return nil
}

func (v *applicantsView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case applicantsLoadedMsg:
		v.loading = false
		v.err = msg.err
		v.job, v.applicants = msg.job, msg.applicants
		v.cursor.clamp(len(v.applicants))
		return v, nil

	case acceptedMsg:
		if msg.err != nil {
			return v, notifyError(msg.err)
		}
		return v, tea.Batch(
			notify(form.NoticeSuccess, "Student hired", msg.job.Title+" is now in progress"),
			func() tea.Msg { return navigateMsg{to: route.ActiveJob.With(msg.job.ID), replace: true} },
			refresh(),
		)

	case refreshViewMsg:
		return v, v.loadData()

	case tea.KeyMsg:
		if v.cursor.move(msg.String(), len(v.applicants)) {
			return v, nil
		}
		a := v.selected()
		if a == nil || a.Application.Status != domain.ApplicationPending {
			return v, nil
		}
		app, sess := v.state.App, v.state.Session
		switch msg.String() {
		case "a":
			id := a.Application.ID
			return v, func() tea.Msg {
				job, err := app.Applications.Accept(context.Background(), sess, id)
				return acceptedMsg{job: job, err: err}
			}
		case "x":
			id := a.Application.ID
			return v, confirmCmd(v.state, confirmSpec{
				title:   "Reject applicant",
				prompt:  fmt.Sprintf("Reject %s?", a.Student.Name),
				success: "Application rejected",
				run: func(ctx context.Context) error {
					return app.Applications.Reject(ctx, sess, id)
				},
			})
		}
	}
	return v, nil
}

func (v *applicantsView) View() string {
	if v.loading {
		return loadingText("applicants")
	}
	if v.err != nil {
		return errorText(v.err)
	}

	var b strings.Builder
	b.WriteString("\n  " + formatter.Bold(v.job.Title) + "  " + formatter.JobStatusPill(v.job.Status) + "\n\n")
	if len(v.applicants) == 0 {
		b.WriteString(emptyText("No applications yet."))
		return b.String()
	}

	for i, a := range v.applicants {
		prefix, style := v.cursor.marker(i)
		b.WriteString(fmt.Sprintf("%s%s %s  %s\n", prefix,
			style.Render(padRight(a.Student.Name, 24)),
			formatter.ApplicationStatusPill(a.Application.Status),
			formatter.Dim(fmt.Sprintf("%dh/week · %s", a.Application.HoursPerWeek, formatter.HumanTimestamp(a.Application.CreatedAt)))))
	}

	if a := v.selected(); a != nil {
		s := a.Student
		var lines []string
		lines = append(lines, detailLine("Email", s.Email))
		if s.University != "" {
			lines = append(lines, detailLine("Studies", fmt.Sprintf("%s, %s (%d)", s.StudyProgram, s.University, s.GraduationYear)))
		}
		width := v.state.Width - 6
		if width < 40 {
			width = 72
		}
		letter := lipgloss.NewStyle().Width(width).PaddingLeft(2).Render(a.Application.CoverLetter)
		b.WriteString("\n" + strings.Join(lines, "\n") + "\n\n" + letter + "\n")
	}
	return b.String()
}
