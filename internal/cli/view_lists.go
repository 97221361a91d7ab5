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

// ── reports ──────────────────────────────────────────────────────────────────

type reportsLoadedMsg struct {
	reports []*domain.Report
	err     error
}

// reportsView lists the reports the session has filed.
type reportsView struct {
	state   *SharedState
	loading bool
	err     error
	reports []*domain.Report
}

func newReportsView(state *SharedState) *reportsView {
	return &reportsView{state: state, loading: true}
}

func (v *reportsView) ID() ViewID         { return ViewReports }
func (v *reportsView) Title() string      { return "My reports" }
func (v *reportsView) Route() route.Route { return "" }

func (v *reportsView) ShortHelp() []key.Binding {
	return []key.Binding{
		key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "new report")),
		key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
	}
}

func (v *reportsView) Init() tea.Cmd { return v.loadData() }

func (v *reportsView) loadData() tea.Cmd {
	app, sess := v.state.App, v.state.Session
	return func() tea.Msg {
		list, err := app.Reports.ListMine(context.Background(), sess)
		return reportsLoadedMsg{reports: list, err: err}
	}
}

func (v *reportsView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case reportsLoadedMsg:
		v.loading = false
		v.err = msg.err
		v.reports = msg.reports
	case refreshViewMsg:
		return v, v.loadData()
	case tea.KeyMsg:
		if msg.String() == "n" {
			return v, navigate(route.Report)
		}
	}
	return v, nil
}

func (v *reportsView) View() string {
	if v.loading {
		return loadingText("reports")
	}
	if v.err != nil {
		return errorText(v.err)
	}
	if len(v.reports) == 0 {
		return "\n" + emptyText("You have not filed any reports.")
	}
	tbl := formatter.NewTable("FILED", "CATEGORY", "SUBJECT", "JOB")
	for _, r := range v.reports {
		job := "-"
		if r.JobID != nil {
			job = formatter.ShortID(*r.JobID)
		}
		tbl.Row(formatter.HumanTimestamp(r.CreatedAt), string(r.Category), r.Subject, job)
	}
	return "\n" + tbl.String()
}

// ── reviews ──────────────────────────────────────────────────────────────────

type reviewsLoadedMsg struct {
	summary *service.ReviewSummary
	err     error
}

// reviewsView shows the reviews other users left for the session.
type reviewsView struct {
	state   *SharedState
	loading bool
	err     error
	summary *service.ReviewSummary
}

func newReviewsView(state *SharedState) *reviewsView {
	return &reviewsView{state: state, loading: true}
}

func (v *reviewsView) ID() ViewID         { return ViewReviews }
func (v *reviewsView) Title() string      { return "Reviews" }
func (v *reviewsView) Route() route.Route { return route.Reviews }

func (v *reviewsView) ShortHelp() []key.Binding {
	return []key.Binding{key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back"))}
}

func (v *reviewsView) Init() tea.Cmd { return v.loadData() }

func (v *reviewsView) loadData() tea.Cmd {
	app, uid := v.state.App, v.state.Session.UserID
	return func() tea.Msg {
		s, err := app.Reviews.ListForUser(context.Background(), uid)
		return reviewsLoadedMsg{summary: s, err: err}
	}
}

func (v *reviewsView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case reviewsLoadedMsg:
		v.loading = false
		v.err = msg.err
		v.summary = msg.summary
	case refreshViewMsg:
		return v, v.loadData()
	}
	return v, nil
}

func (v *reviewsView) View() string {
	if v.loading {
		return loadingText("reviews")
	}
	if v.err != nil {
		return errorText(v.err)
	}
	s := v.summary
	if len(s.Reviews) == 0 {
		return "\n" + emptyText("No reviews yet.")
	}
	var b strings.Builder
	b.WriteString(fmt.Sprintf("\n  %s %s\n\n", formatter.Stars(s.Average),
		formatter.Dim(fmt.Sprintf("%.1f from %d reviews", s.Average, len(s.Reviews)))))
	for _, r := range s.Reviews {
		b.WriteString("  " + formatter.Stars(float64(r.Rating)) + "  " + formatter.Dim(formatter.HumanTimestamp(r.CreatedAt)) + "\n")
		b.WriteString("  " + r.Comment + "\n\n")
	}
	return b.String()
}

// ── payments ─────────────────────────────────────────────────────────────────

type paymentsLoadedMsg struct {
	payments []*domain.Payment
	err      error
}

type paidMsg struct {
	payment *domain.Payment
	err     error
}

// paymentsView lists payments owed to a student or by an employer.
// Employers settle a pending payment with 'm'.
type paymentsView struct {
	state    *SharedState
	loading  bool
	err      error
	payments []*domain.Payment
	cursor   listCursor
}

func newPaymentsView(state *SharedState) *paymentsView {
	return &paymentsView{state: state, loading: true}
}

func (v *paymentsView) ID() ViewID         { return ViewPayments }
func (v *paymentsView) Title() string      { return "Payments" }
func (v *paymentsView) Route() route.Route { return route.Payments }

func (v *paymentsView) ShortHelp() []key.Binding {
	keys := []key.Binding{}
	if v.state.Session.IsEmployer() {
		keys = append(keys, key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "mark paid")))
	}
	return append(keys, key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")))
}

func (v *paymentsView) Init() tea.Cmd { return v.loadData() }

func (v *paymentsView) loadData() tea.Cmd {
	app, sess := v.state.App, v.state.Session
	return func() tea.Msg {
		list, err := app.Payments.ListMine(context.Background(), sess)
		return paymentsLoadedMsg{payments: list, err: err}
	}
}

func (v *paymentsView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case paymentsLoadedMsg:
		v.loading = false
		v.err = msg.err
		v.payments = msg.payments
		v.cursor.clamp(len(v.payments))
	case paidMsg:
		if msg.err != nil {
			return v, notifyError(msg.err)
		}
		return v, tea.Batch(notify(form.NoticeSuccess, "Payment settled", formatter.Money(msg.payment.AmountNOK)), refresh())
	case refreshViewMsg:
		return v, v.loadData()
	case tea.KeyMsg:
		if v.cursor.move(msg.String(), len(v.payments)) {
			return v, nil
		}
		if msg.String() == "m" && v.state.Session.IsEmployer() && v.cursor.pos < len(v.payments) {
			p := v.payments[v.cursor.pos]
			if p.Status != domain.PaymentPending {
				return v, nil
			}
			app, sess := v.state.App, v.state.Session
			return v, func() tea.Msg {
				paid, err := app.Payments.MarkPaid(context.Background(), sess, p.ID)
				return paidMsg{payment: paid, err: err}
			}
		}
	}
	return v, nil
}

func (v *paymentsView) View() string {
	if v.loading {
		return loadingText("payments")
	}
	if v.err != nil {
		return errorText(v.err)
	}
	if len(v.payments) == 0 {
		return "\n" + emptyText("No payments yet.")
	}
	total := 0
	tbl := formatter.NewTable("", "CREATED", "AMOUNT", "STATUS", "PAID").AlignRight(2)
	for i, p := range v.payments {
		prefix, _ := v.cursor.marker(i)
		paid := "-"
		if p.PaidAt != nil {
			paid = formatter.Date(*p.PaidAt)
		} else {
			total += p.AmountNOK
		}
		tbl.Row(prefix, formatter.Date(p.CreatedAt), formatter.Money(p.AmountNOK), formatter.PaymentStatusPill(p.Status), paid)
	}
	return "\n" + tbl.String() + "\n  " + formatter.Dim("Outstanding: ") + formatter.StyleYellow.Render(formatter.Money(total))
}

// ── team ─────────────────────────────────────────────────────────────────────

type teamLoadedMsg struct {
	members []*domain.TeamMember
	err     error
}

// teamView lists the employer's company team.
type teamView struct {
	state   *SharedState
	loading bool
	err     error
	members []*domain.TeamMember
	cursor  listCursor
}

func newTeamView(state *SharedState) *teamView {
	return &teamView{state: state, loading: true}
}

func (v *teamView) ID() ViewID         { return ViewTeam }
func (v *teamView) Title() string      { return "Team" }
func (v *teamView) Route() route.Route { return route.Team }

func (v *teamView) ShortHelp() []key.Binding {
	return []key.Binding{
		key.NewBinding(key.WithKeys("i"), key.WithHelp("i", "invite")),
		key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "remove")),
		key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
	}
}

func (v *teamView) Init() tea.Cmd { return v.loadData() }

func (v *teamView) loadData() tea.Cmd {
	app, sess := v.state.App, v.state.Session
	return func() tea.Msg {
		list, err := app.Team.List(context.Background(), sess)
		return teamLoadedMsg{members: list, err: err}
	}
}

func (v *teamView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case teamLoadedMsg:
		v.loading = false
		v.err = msg.err
		v.members = msg.members
		v.cursor.clamp(len(v.members))
	case refreshViewMsg:
		return v, v.loadData()
	case tea.KeyMsg:
		if v.cursor.move(msg.String(), len(v.members)) {
			return v, nil
		}
		switch msg.String() {
		case "i":
			return v, pushView(newTeamInviteView(v.state))
		case "d":
			if v.cursor.pos >= len(v.members) {
				return v, nil
			}
			m := v.members[v.cursor.pos]
			app, sess := v.state.App, v.state.Session
			return v, confirmCmd(v.state, confirmSpec{
				title:   "Remove member",
				prompt:  fmt.Sprintf("Remove %s from the team?", m.Name),
				detail:  m.Email,
				success: "Team member removed",
				run: func(ctx context.Context) error {
					return app.Team.Remove(ctx, sess, m.ID)
				},
			})
		}
	}
	return v, nil
}

func (v *teamView) View() string {
	if v.loading {
		return loadingText("team")
	}
	if v.err != nil {
		return errorText(v.err)
	}
	if len(v.members) == 0 {
		return "\n" + emptyText("No team members yet. Press 'i' to invite someone.")
	}
	tbl := formatter.NewTable("", "NAME", "EMAIL", "ROLE", "INVITED")
	for i, m := range v.members {
		prefix, style := v.cursor.marker(i)
		tbl.Row(prefix, style.Render(m.Name), m.Email, string(m.Role), formatter.HumanTimestamp(m.InvitedAt))
	}
	return "\n" + tbl.String()
}
