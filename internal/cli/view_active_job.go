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
)

// ── active job list ──────────────────────────────────────────────────────────

type activeJobsLoadedMsg struct {
	jobs []*domain.Job
	err  error
}

// activeJobsView lists the session's running contracts.
type activeJobsView struct {
	state   *SharedState
	loading bool
	err     error
	jobs    []*domain.Job
	cursor  listCursor
}

func newActiveJobsView(state *SharedState) *activeJobsView {
	return &activeJobsView{state: state, loading: true}
}

func (v *activeJobsView) ID() ViewID         { return ViewActiveJobs }
func (v *activeJobsView) Title() string      { return "Active jobs" }
func (v *activeJobsView) Route() route.Route { return route.ActiveJobs }

func (v *activeJobsView) ShortHelp() []key.Binding {
	return []key.Binding{
		key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "manage")),
		key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
	}
}

func (v *activeJobsView) Init() tea.Cmd {
	return v.loadData()
}

func (v *activeJobsView) loadData() tea.Cmd {
	app, sess := v.state.App, v.state.Session
	return func() tea.Msg {
		jobs, err := app.ActiveJobs.ListActive(context.Background(), sess)
		return activeJobsLoadedMsg{jobs: jobs, err: err}
	}
}

func (v *activeJobsView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case activeJobsLoadedMsg:
		v.loading = false
		v.err = msg.err
		v.jobs = msg.jobs
		v.cursor.clamp(len(v.jobs))
	case refreshViewMsg:
		return v, v.loadData()
	case tea.KeyMsg:
		if v.cursor.move(msg.String(), len(v.jobs)) {
			return v, nil
		}
		if msg.String() == "enter" && v.cursor.pos < len(v.jobs) {
			return v, navigate(route.ActiveJob.With(v.jobs[v.cursor.pos].ID))
		}
	}
	return v, nil
}

func (v *activeJobsView) View() string {
	if v.loading {
		return loadingText("active jobs")
	}
	if v.err != nil {
		return errorText(v.err)
	}
	if len(v.jobs) == 0 {
		return "\n" + emptyText("No active jobs right now.")
	}
	tbl := formatter.NewTable("", "TITLE", "PROGRESS", "LOGGED", "EARNED", "DEADLINE").AlignRight(3, 4)
	for i, j := range v.jobs {
		prefix, style := v.cursor.marker(i)
		tbl.Row(prefix, style.Render(padRight(j.Title, 30)),
			formatter.RenderProgress(j.ProgressPct(), 12),
			formatter.Hours(j.HoursLogged)+" / "+fmt.Sprintf("%dh", j.EstimatedHours),
			formatter.Money(j.EarnedNOK()),
			formatter.DeadlineStyled(j.Deadline))
	}
	return "\n" + tbl.String()
}

// ── active job ───────────────────────────────────────────────────────────────

type activeJobLoadedMsg struct {
	job *service.ActiveJob
	err error
}

// activeJobView manages one running contract: logging hours, proposing
// and answering change requests, completing or cancelling the job and
// reviewing the other party once it is done.
type activeJobView struct {
	state   *SharedState
	jobID   string
	loading bool
	err     error
	data    *service.ActiveJob
	pending []*domain.ChangeRequest // awaiting an answer from this session
	cursor  listCursor
}

func newActiveJobView(state *SharedState, jobID string) *activeJobView {
	return &activeJobView{state: state, jobID: jobID, loading: true}
}

func (v *activeJobView) ID() ViewID         { return ViewActiveJob }
func (v *activeJobView) Route() route.Route { return route.ActiveJob.With(v.jobID) }

func (v *activeJobView) Title() string {
	if v.data != nil {
		return truncTitle(v.data.Job.Title)
	}
	return "Active job"
}

func (v *activeJobView) running() bool {
	return v.data != nil && v.data.Job.Status == domain.JobInProgress
}

func (v *activeJobView) isEmployer() bool {
	return v.data != nil && v.data.Job.EmployerID == v.state.Session.UserID
}

func (v *activeJobView) ShortHelp() []key.Binding {
	var keys []key.Binding
	if v.running() {
		if !v.isEmployer() {
			keys = append(keys, key.NewBinding(key.WithKeys("l"), key.WithHelp("l", "log hours")))
		}
		keys = append(keys, key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "request change")))
		if len(v.pending) > 0 {
			keys = append(keys,
				key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "approve")),
				key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "decline")),
			)
		}
		if v.isEmployer() {
			keys = append(keys,
				key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "complete")),
				key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "cancel job")),
			)
		}
	}
	if v.data != nil && v.data.Job.Status == domain.JobCompleted {
		keys = append(keys, key.NewBinding(key.WithKeys("v"), key.WithHelp("v", "review")))
	}
	return append(keys, key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")))
}

func (v *activeJobView) Init() tea.Cmd {
	return v.loadData()
}

func (v *activeJobView) loadData() tea.Cmd {
	app, sess, id := v.state.App, v.state.Session, v.jobID
	return func() tea.Msg {
		aj, err := app.ActiveJobs.Get(context.Background(), sess, id)
		return activeJobLoadedMsg{job: aj, err: err}
	}
}

// resolvedMsg reports the answer to a change request.
type resolvedMsg struct {
	change *domain.ChangeRequest
	err    error
}

func (v *activeJobView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case activeJobLoadedMsg:
		v.loading = false
		v.err = msg.err
		v.data = msg.job
		v.pending = nil
		if v.data != nil {
			for _, c := range v.data.ChangeRequests {
				if c.Status == domain.ChangePending && c.RequestedBy != v.state.Session.UserID {
					v.pending = append(v.pending, c)
				}
			}
		}
		v.cursor.clamp(len(v.pending))
		return v, nil

	case resolvedMsg:
		if msg.err != nil {
			return v, notifyError(msg.err)
		}
		title := "Change declined"
		if msg.change.Status == domain.ChangeApproved {
			title = "Change approved"
		}
		return v, tea.Batch(notify(form.NoticeSuccess, title, string(msg.change.Kind)+" → "+msg.change.ProposedValue), refresh())

	case refreshViewMsg:
		return v, v.loadData()

	case tea.KeyMsg:
		if v.data == nil {
			return v, nil
		}
		if v.cursor.move(msg.String(), len(v.pending)) {
			return v, nil
		}
		return v, v.handleKey(msg.String())
	}
	return v, nil
}

func (v *activeJobView) handleKey(k string) tea.Cmd {
	app, sess, job := v.state.App, v.state.Session, v.data.Job
	switch k {
	case "l":
		if v.running() && !v.isEmployer() {
			return pushView(newLogHoursView(v.state, job))
		}
	case "c":
		if v.running() {
			return pushView(newChangeRequestView(v.state, job))
		}
	case "y", "n":
		if !v.running() || v.cursor.pos >= len(v.pending) {
			return nil
		}
		id, approve := v.pending[v.cursor.pos].ID, k == "y"
		return func() tea.Msg {
			c, err := app.ActiveJobs.ResolveChange(context.Background(), sess, id, approve)
			return resolvedMsg{change: c, err: err}
		}
	case "f":
		if v.running() && v.isEmployer() {
			return confirmCmd(v.state, confirmSpec{
				title:   "Complete job",
				prompt:  fmt.Sprintf("Mark %q as completed?", job.Title),
				detail:  fmt.Sprintf("A payment of %s is created for %s logged.", formatter.Money(job.EarnedNOK()), formatter.Hours(job.HoursLogged)),
				success: "Job completed",
				run: func(ctx context.Context) error {
					_, err := app.ActiveJobs.Complete(ctx, sess, job.ID)
					return err
				},
			})
		}
	case "x":
		if v.running() && v.isEmployer() {
			return confirmCmd(v.state, confirmSpec{
				title:   "Cancel job",
				prompt:  fmt.Sprintf("Cancel the contract for %q?", job.Title),
				detail:  "Logged hours stay on record but no payment is created.",
				success: "Job cancelled",
				run: func(ctx context.Context) error {
					return app.ActiveJobs.Cancel(ctx, sess, job.ID)
				},
			})
		}
	case "v":
		if job.Status == domain.JobCompleted {
			return pushView(newReviewView(v.state, job))
		}
	case "R":
		return pushView(newReportView(v.state, job.ID))
	case "p":
		return navigate(route.Payments)
	}
	return nil
}

func (v *activeJobView) View() string {
	if v.loading {
		return loadingText("job")
	}
	if v.err != nil {
		return errorText(v.err)
	}
	d := v.data
	j := d.Job

	var b strings.Builder
	b.WriteString("\n  " + formatter.Bold(j.Title) + "  " + formatter.JobStatusPill(j.Status) + "\n\n")
	b.WriteString(detailLine("Student", d.Student.Name) + "\n")
	b.WriteString(detailLine("Employer", d.Employer.Name) + "\n")
	b.WriteString(detailLine("Rate", formatter.Rate(j.HourlyRate)) + "\n")
	b.WriteString(detailLine("Deadline", formatter.Date(j.Deadline)+"  "+formatter.DeadlineStyled(j.Deadline)) + "\n")
	b.WriteString(detailLine("Progress", formatter.RenderProgress(j.ProgressPct(), 20)) + "\n")
	b.WriteString(detailLine("Logged", fmt.Sprintf("%s of %dh · %s earned",
		formatter.Hours(j.HoursLogged), j.EstimatedHours, formatter.Money(j.EarnedNOK()))) + "\n")
	if d.Payment != nil {
		b.WriteString(detailLine("Payment", formatter.Money(d.Payment.AmountNOK)+" "+formatter.PaymentStatusPill(d.Payment.Status)) + "\n")
	}

	if len(d.ChangeRequests) > 0 {
		b.WriteString("\n  " + formatter.Header("CHANGE REQUESTS") + "\n")
		for _, c := range d.ChangeRequests {
			prefix := "  "
			for i, p := range v.pending {
				if p.ID == c.ID {
					prefix, _ = v.cursor.marker(i)
				}
			}
			b.WriteString(fmt.Sprintf("%s%s %s → %s  %s\n", prefix,
				formatter.ChangeStatusPill(c.Status),
				formatter.Bold(string(c.Kind)), c.ProposedValue,
				formatter.Dim(c.Reason)))
		}
	}

	if len(d.WorkLogs) > 0 {
		b.WriteString("\n  " + formatter.Header("WORK LOG") + "\n")
		tbl := formatter.NewTable("WHEN", "HOURS", "NOTE").AlignRight(1)
		for _, w := range d.WorkLogs {
			tbl.Row(formatter.HumanTimestamp(w.LoggedAt), formatter.Hours(w.Hours), w.Note)
		}
		b.WriteString(tbl.String())
	}
	return b.String()
}
