package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/alexanderramin/fleksjobb/internal/cli/formatter"
	"github.com/alexanderramin/fleksjobb/internal/domain"
	"github.com/alexanderramin/fleksjobb/internal/route"
	"github.com/alexanderramin/fleksjobb/internal/service"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// ── messages ─────────────────────────────────────────────────────────────────

// dashboardLoadedMsg carries one of the two dashboards, matching the role
// the view was opened for.
type dashboardLoadedMsg struct {
	student  *service.StudentDashboard
	employer *service.EmployerDashboard
	err      error
}

// dashRow is one selectable line; enter navigates to its route.
type dashRow struct {
	section string
	text    string
	to      route.Route
}

// ── view ─────────────────────────────────────────────────────────────────────

// dashboardView is the landing screen for a signed-in account. Students
// see their applications, active jobs and earnings; employers see their
// open listings, active contracts, pending change requests and
// outstanding payments.
type dashboardView struct {
	state   *SharedState
	role    domain.Role
	loading bool
	err     error

	student  *service.StudentDashboard
	employer *service.EmployerDashboard
	rows     []dashRow
	cursor   listCursor
}

func newDashboardView(state *SharedState, role domain.Role) *dashboardView {
	return &dashboardView{state: state, role: role, loading: true}
}

func (v *dashboardView) ID() ViewID {
	if v.role == domain.RoleEmployer {
		return ViewEmployerDashboard
	}
	return ViewStudentDashboard
}

func (v *dashboardView) Title() string { return "Dashboard" }

func (v *dashboardView) Route() route.Route {
	if v.role == domain.RoleEmployer {
		return route.EmployerDashboard
	}
	return route.StudentDashboard
}

func (v *dashboardView) ShortHelp() []key.Binding {
	keys := []key.Binding{
		key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "open")),
		key.NewBinding(key.WithKeys("b"), key.WithHelp("b", "browse jobs")),
		key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "active")),
	}
	if v.role == domain.RoleEmployer {
		keys = append(keys,
			key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "post job")),
			key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "team")),
		)
	}
	return append(keys,
		key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "payments")),
		key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
		key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "quit")),
	)
}

func (v *dashboardView) Init() tea.Cmd {
	return v.loadData()
}

// ── data loading ─────────────────────────────────────────────────────────────

func (v *dashboardView) loadData() tea.Cmd {
	app, sess, role := v.state.App, v.state.Session, v.role
	return func() tea.Msg {
		ctx := context.Background()
		if role == domain.RoleEmployer {
			d, err := app.Dashboards.Employer(ctx, sess)
			return dashboardLoadedMsg{employer: d, err: err}
		}
		d, err := app.Dashboards.Student(ctx, sess)
		return dashboardLoadedMsg{student: d, err: err}
	}
}

func (v *dashboardView) buildRows() {
	v.rows = nil
	switch {
	case v.student != nil:
		for _, j := range v.student.ActiveJobs {
			v.rows = append(v.rows, dashRow{
				section: "ACTIVE JOBS",
				text: fmt.Sprintf("%s %s  %s",
					padRight(j.Title, 28),
					formatter.RenderProgress(j.ProgressPct(), 10),
					formatter.DeadlineStyled(j.Deadline)),
				to: route.ActiveJob.With(j.ID),
			})
		}
		for _, a := range v.student.Applications {
			v.rows = append(v.rows, dashRow{
				section: "APPLICATIONS",
				text: fmt.Sprintf("%s %s  %s",
					padRight(a.JobTitle, 28),
					formatter.ApplicationStatusPill(a.Application.Status),
					formatter.Dim(formatter.HumanTimestamp(a.Application.CreatedAt))),
				to: route.JobDetail.With(a.Application.JobID),
			})
		}
	case v.employer != nil:
		titles := make(map[string]string, len(v.employer.ActiveJobs))
		for _, j := range v.employer.ActiveJobs {
			titles[j.ID] = j.Title
		}
		for _, c := range v.employer.PendingChanges {
			v.rows = append(v.rows, dashRow{
				section: "CHANGE REQUESTS",
				text: fmt.Sprintf("%s %s → %s",
					padRight(titles[c.JobID], 28),
					formatter.StyleYellow.Render(string(c.Kind)),
					c.ProposedValue),
				to: route.ActiveJob.With(c.JobID),
			})
		}
		for _, s := range v.employer.OpenJobs {
			v.rows = append(v.rows, dashRow{
				section: "OPEN JOBS",
				text: fmt.Sprintf("%s %s  %s",
					padRight(s.Job.Title, 28),
					formatter.StyleBlue.Render(fmt.Sprintf("%2d applicants", s.Applicants)),
					formatter.DeadlineStyled(s.Job.Deadline)),
				to: route.JobDetail.With(s.Job.ID),
			})
		}
		for _, j := range v.employer.ActiveJobs {
			v.rows = append(v.rows, dashRow{
				section: "ACTIVE JOBS",
				text: fmt.Sprintf("%s %s  %s",
					padRight(j.Title, 28),
					formatter.RenderProgress(j.ProgressPct(), 10),
					formatter.Dim(formatter.Money(j.EarnedNOK()))),
				to: route.ActiveJob.With(j.ID),
			})
		}
	}
	v.cursor.clamp(len(v.rows))
}

// ── update ───────────────────────────────────────────────────────────────────

func (v *dashboardView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case dashboardLoadedMsg:
		v.loading = false
		v.err = msg.err
		if msg.err != nil {
			return v, nil
		}
		v.student, v.employer = msg.student, msg.employer
		v.buildRows()
		return v, nil

	case refreshViewMsg:
		v.loading = true
		v.err = nil
		return v, v.loadData()

	case tea.KeyMsg:
		if v.cursor.move(msg.String(), len(v.rows)) {
			return v, nil
		}
		switch msg.String() {
		case "enter":
			if v.cursor.pos < len(v.rows) {
				return v, navigate(v.rows[v.cursor.pos].to)
			}
		case "b":
			return v, navigate(route.Jobs)
		case "a":
			return v, navigate(route.ActiveJobs)
		case "p":
			return v, navigate(route.Payments)
		case "v":
			return v, navigate(route.Reviews)
		case "R":
			return v, navigate(route.Report)
		case "n":
			if v.role == domain.RoleEmployer {
				return v, navigate(route.PostJob)
			}
		case "t":
			if v.role == domain.RoleEmployer {
				return v, navigate(route.Team)
			}
		case "r":
			v.loading = true
			v.err = nil
			return v, v.loadData()
		}
	}
	return v, nil
}

// ── view rendering ───────────────────────────────────────────────────────────

const dashStatsWidth = 30

func (v *dashboardView) View() string {
	if v.loading {
		return loadingText("dashboard")
	}
	if v.err != nil {
		return errorText(v.err)
	}

	list := v.renderRows()
	stats := v.renderStats()
	if v.state.Width < 100 {
		return "\n" + stats + "\n" + list
	}
	listWidth := v.state.Width - dashStatsWidth - 6
	return "\n" + lipgloss.JoinHorizontal(lipgloss.Top,
		lipgloss.NewStyle().Width(listWidth).Render(list),
		"  ",
		lipgloss.NewStyle().Width(dashStatsWidth).Render(stats),
	)
}

func (v *dashboardView) renderRows() string {
	var b strings.Builder
	if len(v.rows) == 0 {
		if v.role == domain.RoleEmployer {
			b.WriteString(emptyText("Nothing here yet. Press 'n' to post your first job."))
		} else {
			b.WriteString(emptyText("Nothing here yet. Press 'b' to browse open jobs."))
		}
		return b.String()
	}
	section := ""
	for i, r := range v.rows {
		if r.section != section {
			if section != "" {
				b.WriteString("\n")
			}
			section = r.section
			b.WriteString("  " + formatter.Header(section) + "\n")
		}
		prefix, style := v.cursor.marker(i)
		b.WriteString(prefix + style.Render(r.text) + "\n")
	}
	return b.String()
}

func (v *dashboardView) renderStats() string {
	var lines []string
	switch {
	case v.student != nil:
		d := v.student
		lines = []string{
			fmt.Sprintf("Active     %d", len(d.ActiveJobs)),
			fmt.Sprintf("Completed  %d", d.Completed),
			"Earned     " + formatter.StyleGreen.Render(formatter.Money(d.EarnedNOK)),
			"Pending    " + formatter.StyleYellow.Render(formatter.Money(d.PendingNOK)),
			"Rating     " + formatter.Stars(d.Rating) + formatter.Dim(fmt.Sprintf(" (%d)", d.ReviewCount)),
		}
	case v.employer != nil:
		d := v.employer
		lines = []string{
			fmt.Sprintf("Open jobs    %d", len(d.OpenJobs)),
			fmt.Sprintf("Active       %d", len(d.ActiveJobs)),
			fmt.Sprintf("Changes      %d", len(d.PendingChanges)),
			"Outstanding  " + formatter.StyleYellow.Render(formatter.Money(d.OutstandingNOK)),
		}
	}
	return formatter.RenderBox(v.state.Session.Name, strings.Join(lines, "\n"))
}
