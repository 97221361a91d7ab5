package cli

import (
	"context"
	"testing"

	"github.com/alexanderramin/fleksjobb/internal/domain"
	"github.com/alexanderramin/fleksjobb/internal/form"
	"github.com/alexanderramin/fleksjobb/internal/route"
	"github.com/alexanderramin/fleksjobb/internal/testutil"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTUI_VisitorStartsOnLogin(t *testing.T) {
	e := newTestEnv(t)
	d := NewTestDriver(t, e.app, domain.Session{})

	assert.Equal(t, ViewLogin, d.ActiveViewID())
	assert.Equal(t, 1, d.ViewStackLen())
	assert.Contains(t, d.View(), "[guest]")
	assert.Contains(t, d.View(), feideNotice)
}

func TestTUI_StudentDashboardLoadsOnStartup(t *testing.T) {
	e := newTestEnv(t)
	emp := e.employer(t, "Ola Nordmann")
	stu := e.student(t, "Kari Nordmann")
	e.job(t, emp, "Build a booking page", testutil.WithAssignedStudent(stu.ID))

	d := NewTestDriver(t, e.app, domain.NewSession(stu))

	assert.Equal(t, ViewStudentDashboard, d.ActiveViewID())
	view := d.View()
	assert.NotContains(t, view, "Loading")
	assert.Contains(t, view, "ACTIVE JOBS")
	assert.Contains(t, view, "Build a booking page")
}

func TestTUI_EmployerDashboardShowsApplicantCounts(t *testing.T) {
	e := newTestEnv(t)
	emp := e.employer(t, "Ola Nordmann")
	job := e.job(t, emp, "Migrate the data warehouse")
	e.application(t, job, e.student(t, "Kari Nordmann"))
	e.application(t, job, e.student(t, "Lars Hansen"))

	d := NewTestDriver(t, e.app, domain.NewSession(emp))

	assert.Equal(t, ViewEmployerDashboard, d.ActiveViewID())
	view := d.View()
	assert.Contains(t, view, "OPEN JOBS")
	assert.Contains(t, view, "Migrate the data warehouse")
}

func TestTUI_QuitWithQ(t *testing.T) {
	e := newTestEnv(t)
	d := NewTestDriver(t, e.app, domain.NewSession(e.student(t, "Kari Nordmann")))

	d.PressKey('q')

	assert.True(t, d.IsQuitting())
}

func TestTUI_QOnLoginIsTyped(t *testing.T) {
	e := newTestEnv(t)
	d := NewTestDriver(t, e.app, domain.Session{})

	d.PressKey('q')

	assert.False(t, d.IsQuitting())
	assert.Equal(t, ViewLogin, d.ActiveViewID())
}

func TestTUI_QuitWithCtrlC(t *testing.T) {
	e := newTestEnv(t)
	d := NewTestDriver(t, e.app, domain.Session{})

	d.PressCtrlC()

	assert.True(t, d.IsQuitting())
}

func TestTUI_CommandBarFocusBlur(t *testing.T) {
	e := newTestEnv(t)
	d := NewTestDriver(t, e.app, domain.NewSession(e.student(t, "Kari Nordmann")))

	assert.False(t, d.CmdBarFocused())

	d.PressKey(':')
	assert.True(t, d.CmdBarFocused())

	d.PressEsc()
	assert.False(t, d.CmdBarFocused())
}

func TestTUI_DashboardToJobsAndBack(t *testing.T) {
	e := newTestEnv(t)
	emp := e.employer(t, "Ola Nordmann")
	e.job(t, emp, "Write integration tests", testutil.WithCategory("testing"))
	d := NewTestDriver(t, e.app, domain.NewSession(e.student(t, "Kari Nordmann")))

	d.PressKey('b')

	assert.Equal(t, ViewJobList, d.ActiveViewID())
	assert.Equal(t, 2, d.ViewStackLen())
	assert.Contains(t, d.View(), "Write integration tests")

	d.PressEsc()

	assert.Equal(t, ViewStudentDashboard, d.ActiveViewID())
	assert.Equal(t, 1, d.ViewStackLen())
}

func TestTUI_GotoRouteToken(t *testing.T) {
	e := newTestEnv(t)
	d := NewTestDriver(t, e.app, domain.NewSession(e.student(t, "Kari Nordmann")))

	d.Command("goto /active-jobs")

	assert.Equal(t, ViewActiveJobs, d.ActiveViewID())
	assert.False(t, d.CmdBarFocused())
}

func TestTUI_NavigatingToOpenRouteRevealsIt(t *testing.T) {
	e := newTestEnv(t)
	d := NewTestDriver(t, e.app, domain.NewSession(e.student(t, "Kari Nordmann")))

	d.Command("jobs")
	d.Command("payments")
	require.Equal(t, []ViewID{ViewStudentDashboard, ViewJobList, ViewPayments}, d.ViewStackIDs())

	d.Command("home")

	assert.Equal(t, []ViewID{ViewStudentDashboard}, d.ViewStackIDs())
}

func TestTUI_WrongRoleRouteShowsError(t *testing.T) {
	e := newTestEnv(t)
	d := NewTestDriver(t, e.app, domain.NewSession(e.student(t, "Kari Nordmann")))

	d.Command("post")

	assert.Equal(t, ViewStudentDashboard, d.ActiveViewID())
	notices := d.Notices()
	require.NotEmpty(t, notices)
	last := notices[len(notices)-1]
	assert.Equal(t, form.NoticeError, last.Kind)
	assert.Contains(t, last.Title, string(route.PostJob))
	assert.Equal(t, errWrongRole.Error(), last.Description)
}

func TestTUI_VisitorIsSentToLoginForPrivateRoutes(t *testing.T) {
	e := newTestEnv(t)
	d := NewTestDriver(t, e.app, domain.Session{})

	d.PressCtrl(tea.KeyCtrlJ)
	require.Equal(t, ViewJobList, d.ActiveViewID())

	d.Command("goto /payments")

	assert.Equal(t, ViewLogin, d.ActiveViewID())
	notices := d.Notices()
	require.NotEmpty(t, notices)
	assert.Equal(t, errSignInRequired.Error(), notices[len(notices)-1].Description)
}

func TestTUI_MessagesRouteIsUnavailable(t *testing.T) {
	e := newTestEnv(t)
	d := NewTestDriver(t, e.app, domain.NewSession(e.student(t, "Kari Nordmann")))

	d.Command("messages")

	assert.Equal(t, ViewStudentDashboard, d.ActiveViewID())
	notices := d.Notices()
	require.NotEmpty(t, notices)
	assert.Contains(t, notices[len(notices)-1].Description, "not available")
}

func TestTUI_UnknownCommand(t *testing.T) {
	e := newTestEnv(t)
	d := NewTestDriver(t, e.app, domain.NewSession(e.student(t, "Kari Nordmann")))

	d.Command("frobnicate")

	assert.Contains(t, d.LastOutput(), `unknown command "frobnicate"`)
}

func TestTUI_HelpListsEmployerCommands(t *testing.T) {
	e := newTestEnv(t)
	d := NewTestDriver(t, e.app, domain.NewSession(e.employer(t, "Ola Nordmann")))

	d.Command("help")

	out := d.LastOutput()
	assert.Contains(t, out, "goto /route")
	assert.Contains(t, out, "post")
	assert.Contains(t, out, "logout")
}

func TestTUI_WhoAmI(t *testing.T) {
	e := newTestEnv(t)
	d := NewTestDriver(t, e.app, domain.NewSession(e.student(t, "Kari Nordmann")))

	d.Command("whoami")

	assert.Contains(t, d.LastOutput(), "Kari Nordmann")
}

func TestTUI_LogoutReturnsToLogin(t *testing.T) {
	e := newTestEnv(t)
	d := NewTestDriver(t, e.app, domain.NewSession(e.student(t, "Kari Nordmann")))
	d.Command("jobs")

	d.Command("logout")

	assert.False(t, d.Session().Authenticated())
	assert.Equal(t, []ViewID{ViewLogin}, d.ViewStackIDs())
}

func TestTUI_JobListSearch(t *testing.T) {
	e := newTestEnv(t)
	emp := e.employer(t, "Ola Nordmann")
	e.job(t, emp, "Design a new logo", testutil.WithCategory("design"))
	e.job(t, emp, "Fix the payment service", testutil.WithSkills("go", "postgres"))
	d := NewTestDriver(t, e.app, domain.Session{})
	d.PressCtrl(tea.KeyCtrlJ)

	d.PressKey('/')
	d.Type("logo")
	d.PressEnter()

	view := d.View()
	assert.Contains(t, view, "Design a new logo")
	assert.NotContains(t, view, "Fix the payment service")

	d.PressKey('/')
	d.PressEsc()

	assert.Contains(t, d.View(), "Fix the payment service")
	assert.Equal(t, ViewJobList, d.ActiveViewID())
}

func TestTUI_JobDetailFromList(t *testing.T) {
	e := newTestEnv(t)
	emp := e.employer(t, "Ola Nordmann")
	e.job(t, emp, "Set up CI pipelines", testutil.WithCategory("devops"), testutil.WithRemote(true))
	d := NewTestDriver(t, e.app, domain.NewSession(e.student(t, "Kari Nordmann")))
	d.PressKey('b')

	d.PressEnter()

	assert.Equal(t, ViewJobDetail, d.ActiveViewID())
	view := d.View()
	assert.Contains(t, view, "Set up CI pipelines")
	assert.Contains(t, view, "Ola Nordmann")
	assert.Contains(t, view, "remote")
}

func TestTUI_DeleteJobRequiresConfirmation(t *testing.T) {
	e := newTestEnv(t)
	emp := e.employer(t, "Ola Nordmann")
	job := e.job(t, emp, "Refactor the admin panel")
	d := NewTestDriver(t, e.app, domain.NewSession(emp))
	d.Command("goto " + route.JobDetail.With(job.ID).String())
	require.Equal(t, ViewJobDetail, d.ActiveViewID())

	d.PressKey('d')
	require.Equal(t, ViewConfirm, d.ActiveViewID())
	assert.Contains(t, d.View(), "This cannot be undone.")

	d.PressKey('n')
	assert.Equal(t, ViewJobDetail, d.ActiveViewID())
	_, err := e.jobs.GetByID(context.Background(), job.ID)
	require.NoError(t, err)

	d.PressKey('d')
	d.PressKey('y')

	assert.Equal(t, []ViewID{ViewEmployerDashboard}, d.ViewStackIDs())
	_, err = e.jobs.GetByID(context.Background(), job.ID)
	assert.Error(t, err)
	notices := d.Notices()
	require.NotEmpty(t, notices)
	assert.Equal(t, "Job deleted", notices[len(notices)-1].Title)
}

func TestTUI_OtherEmployerCannotDelete(t *testing.T) {
	e := newTestEnv(t)
	owner := e.employer(t, "Ola Nordmann")
	other := e.employer(t, "Silje Berg")
	job := e.job(t, owner, "Refactor the admin panel")
	d := NewTestDriver(t, e.app, domain.NewSession(other))
	d.Command("goto " + route.JobDetail.With(job.ID).String())

	d.PressKey('d')

	assert.Equal(t, ViewJobDetail, d.ActiveViewID())
}

func TestTUI_EditJobForbiddenForOtherEmployer(t *testing.T) {
	e := newTestEnv(t)
	owner := e.employer(t, "Ola Nordmann")
	other := e.employer(t, "Silje Berg")
	job := e.job(t, owner, "Refactor the admin panel")
	d := NewTestDriver(t, e.app, domain.NewSession(other))

	d.Command("goto " + route.EditJob.With(job.ID).String())

	assert.Equal(t, ViewEmployerDashboard, d.ActiveViewID())
	notices := d.Notices()
	require.NotEmpty(t, notices)
	assert.Equal(t, form.NoticeError, notices[len(notices)-1].Kind)
}

func TestTUI_AcceptApplicantOpensActiveJob(t *testing.T) {
	e := newTestEnv(t)
	emp := e.employer(t, "Ola Nordmann")
	stu := e.student(t, "Kari Nordmann")
	job := e.job(t, emp, "Build a booking page")
	e.application(t, job, stu)
	d := NewTestDriver(t, e.app, domain.NewSession(emp))
	d.Command("goto " + route.Applicants.With(job.ID).String())
	require.Equal(t, ViewApplicants, d.ActiveViewID())
	assert.Contains(t, d.View(), "Kari Nordmann")

	d.PressKey('a')

	assert.Equal(t, ViewActiveJob, d.ActiveViewID())
	got, err := e.jobs.GetByID(context.Background(), job.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.JobInProgress, got.Status)
	assert.Equal(t, stu.ID, got.AssignedStudentID)
}

func TestTUI_CancelActiveJob(t *testing.T) {
	e := newTestEnv(t)
	emp := e.employer(t, "Ola Nordmann")
	stu := e.student(t, "Kari Nordmann")
	job := e.job(t, emp, "Build a booking page", testutil.WithAssignedStudent(stu.ID))
	d := NewTestDriver(t, e.app, domain.NewSession(emp))
	d.Command("goto " + route.ActiveJob.With(job.ID).String())
	require.Equal(t, ViewActiveJob, d.ActiveViewID())

	d.PressKey('x')
	require.Equal(t, ViewConfirm, d.ActiveViewID())
	d.PressKey('y')

	assert.Equal(t, ViewActiveJob, d.ActiveViewID())
	got, err := e.jobs.GetByID(context.Background(), job.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.JobCancelled, got.Status)
}

func TestTUI_StudentCannotCompleteJob(t *testing.T) {
	e := newTestEnv(t)
	emp := e.employer(t, "Ola Nordmann")
	stu := e.student(t, "Kari Nordmann")
	job := e.job(t, emp, "Build a booking page", testutil.WithAssignedStudent(stu.ID))
	d := NewTestDriver(t, e.app, domain.NewSession(stu))
	d.Command("goto " + route.ActiveJob.With(job.ID).String())

	d.PressKey('f')

	assert.Equal(t, ViewActiveJob, d.ActiveViewID())
}
