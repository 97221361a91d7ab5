package cli

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/alexanderramin/fleksjobb/internal/config"
	"github.com/alexanderramin/fleksjobb/internal/db"
	"github.com/alexanderramin/fleksjobb/internal/domain"
	"github.com/alexanderramin/fleksjobb/internal/orgregistry"
	"github.com/alexanderramin/fleksjobb/internal/repository"
	"github.com/alexanderramin/fleksjobb/internal/service"
	"github.com/alexanderramin/fleksjobb/internal/testutil"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const testPassword = "secret123"

// testEnv is a full App over an in-memory DB, plus the repositories the
// fixtures write to directly.
type testEnv struct {
	app       *App
	users     *repository.SQLiteUserRepo
	companies *repository.SQLiteCompanyRepo
	jobs      *repository.SQLiteJobRepo
	apps      *repository.SQLiteApplicationRepo
	hash      string
}

// newTestEnv wires every service without latency or toast expiry, so
// submissions settle inside a single driver step.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	database := testutil.NewTestDB(t)

	users := repository.NewSQLiteUserRepo(database)
	companies := repository.NewSQLiteCompanyRepo(database)
	jobs := repository.NewSQLiteJobRepo(database)
	applications := repository.NewSQLiteApplicationRepo(database)
	changes := repository.NewSQLiteChangeRequestRepo(database)
	reports := repository.NewSQLiteReportRepo(database)
	reviews := repository.NewSQLiteReviewRepo(database)
	team := repository.NewSQLiteTeamRepo(database)
	workLogs := repository.NewSQLiteWorkLogRepo(database)
	payments := repository.NewSQLitePaymentRepo(database)
	uow := db.NewSQLiteUnitOfWork(database)

	hash, err := bcrypt.GenerateFromPassword([]byte(testPassword), bcrypt.MinCost)
	require.NoError(t, err)

	app := &App{
		Accounts:     service.NewAccountService(users, companies, orgregistry.Default(), uow),
		Jobs:         service.NewJobService(jobs),
		Applications: service.NewApplicationService(applications, jobs, users, uow),
		ActiveJobs:   service.NewActiveJobService(jobs, users, workLogs, changes, payments, uow),
		Reports:      service.NewReportService(reports, jobs),
		Reviews:      service.NewReviewService(reviews, jobs),
		Team:         service.NewTeamService(team),
		Payments:     service.NewPaymentService(payments),
		Dashboards:   service.NewDashboardService(jobs, applications, changes, payments, reviews),
		Import:       service.NewImportService(uow),
		Config:       config.Config{DBPath: ":memory:"},
	}

	return &testEnv{
		app:       app,
		users:     users,
		companies: companies,
		jobs:      jobs,
		apps:      applications,
		hash:      string(hash),
	}
}

// student stores a student account that can sign in with testPassword.
func (e *testEnv) student(t *testing.T, name string) *domain.User {
	t.Helper()
	u := testutil.NewTestStudent(name, testutil.WithPasswordHash(e.hash))
	require.NoError(t, e.users.Create(context.Background(), u))
	return u
}

// employer stores an employer of Tech Solutions AS.
func (e *testEnv) employer(t *testing.T, name string) *domain.User {
	t.Helper()
	ctx := context.Background()
	c, err := e.companies.GetByOrgNumber(ctx, "123456789")
	if err != nil {
		c = testutil.NewTestCompany("123456789", "Tech Solutions AS")
		require.NoError(t, e.companies.Create(ctx, c))
	}
	u := testutil.NewTestEmployer(name, testutil.WithCompany(c.ID), testutil.WithPasswordHash(e.hash))
	require.NoError(t, e.users.Create(ctx, u))
	return u
}

func (e *testEnv) job(t *testing.T, employer *domain.User, title string, opts ...testutil.JobOption) *domain.Job {
	t.Helper()
	j := testutil.NewTestJob(employer.ID, title, opts...)
	j.CompanyID = employer.CompanyID
	require.NoError(t, e.jobs.Create(context.Background(), j))
	return j
}

func (e *testEnv) application(t *testing.T, job *domain.Job, student *domain.User) *domain.Application {
	t.Helper()
	a := testutil.NewTestApplication(job.ID, student.ID)
	require.NoError(t, e.apps.Create(context.Background(), a))
	return a
}

// executeCmd runs a cobra command and captures stdout/stderr.
func executeCmd(t *testing.T, app *App, args ...string) (string, error) {
	t.Helper()
	root := NewRootCmd(app)
	buf := new(bytes.Buffer)
	root.SetOut(buf)
	root.SetErr(buf)
	root.SetArgs(args)
	err := root.Execute()
	return buf.String(), err
}

func futureDate(days int) string {
	return time.Now().AddDate(0, 0, days).Format("2006-01-02")
}
