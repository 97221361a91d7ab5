package service

import (
	"context"
	"database/sql"
	"sync"
	"testing"
	"time"

	"github.com/alexanderramin/fleksjobb/internal/contract"
	"github.com/alexanderramin/fleksjobb/internal/domain"
	"github.com/alexanderramin/fleksjobb/internal/orgregistry"
	"github.com/alexanderramin/fleksjobb/internal/repository"
	"github.com/alexanderramin/fleksjobb/internal/testutil"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type testRepos struct {
	users        *repository.SQLiteUserRepo
	companies    *repository.SQLiteCompanyRepo
	jobs         *repository.SQLiteJobRepo
	applications *repository.SQLiteApplicationRepo
	changes      *repository.SQLiteChangeRequestRepo
	reports      *repository.SQLiteReportRepo
	reviews      *repository.SQLiteReviewRepo
	team         *repository.SQLiteTeamRepo
	workLogs     *repository.SQLiteWorkLogRepo
	payments     *repository.SQLitePaymentRepo
}

func setupRepos(t *testing.T) (*sql.DB, testRepos) {
	t.Helper()
	database := testutil.NewTestDB(t)
	return database, testRepos{
		users:        repository.NewSQLiteUserRepo(database),
		companies:    repository.NewSQLiteCompanyRepo(database),
		jobs:         repository.NewSQLiteJobRepo(database),
		applications: repository.NewSQLiteApplicationRepo(database),
		changes:      repository.NewSQLiteChangeRequestRepo(database),
		reports:      repository.NewSQLiteReportRepo(database),
		reviews:      repository.NewSQLiteReviewRepo(database),
		team:         repository.NewSQLiteTeamRepo(database),
		workLogs:     repository.NewSQLiteWorkLogRepo(database),
		payments:     repository.NewSQLitePaymentRepo(database),
	}
}

type testEnv struct {
	repos testRepos
	obs   *recordingObserver

	accounts     AccountService
	jobs         JobService
	applications ApplicationService
	active       ActiveJobService
	reports      ReportService
	reviews      ReviewService
	team         TeamService
	payments     PaymentService
	dashboards   DashboardService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	database, r := setupRepos(t)
	uow := testutil.NewTestUoW(database)
	obs := &recordingObserver{}

	accounts := NewAccountService(r.users, r.companies, orgregistry.Default(), uow, obs)
	accounts.(*accountService).cost = bcrypt.MinCost

	return &testEnv{
		repos:        r,
		obs:          obs,
		accounts:     accounts,
		jobs:         NewJobService(r.jobs, obs),
		applications: NewApplicationService(r.applications, r.jobs, r.users, uow, obs),
		active:       NewActiveJobService(r.jobs, r.users, r.workLogs, r.changes, r.payments, uow, obs),
		reports:      NewReportService(r.reports, r.jobs, obs),
		reviews:      NewReviewService(r.reviews, r.jobs, obs),
		team:         NewTeamService(r.team, obs),
		payments:     NewPaymentService(r.payments, obs),
		dashboards:   NewDashboardService(r.jobs, r.applications, r.changes, r.payments, r.reviews),
	}
}

func (e *testEnv) student(t *testing.T, name string) domain.Session {
	t.Helper()
	u := testutil.NewTestStudent(name)
	require.NoError(t, e.repos.users.Create(context.Background(), u))
	return domain.NewSession(u)
}

func (e *testEnv) employer(t *testing.T, name string) domain.Session {
	t.Helper()
	c := testutil.NewTestCompany("123456789", "Tech Solutions AS")
	if existing, err := e.repos.companies.GetByOrgNumber(context.Background(), c.OrgNumber); err == nil {
		c = existing
	} else {
		require.NoError(t, e.repos.companies.Create(context.Background(), c))
	}
	u := testutil.NewTestEmployer(name, testutil.WithCompany(c.ID))
	require.NoError(t, e.repos.users.Create(context.Background(), u))
	return domain.NewSession(u)
}

func (e *testEnv) job(t *testing.T, emp domain.Session, title string, opts ...testutil.JobOption) *domain.Job {
	t.Helper()
	j := testutil.NewTestJob(emp.UserID, title, opts...)
	require.NoError(t, e.repos.jobs.Create(context.Background(), j))
	return j
}

// activeJob creates a job already assigned to stu.
func (e *testEnv) activeJob(t *testing.T, emp, stu domain.Session, title string) *domain.Job {
	t.Helper()
	return e.job(t, emp, title, testutil.WithAssignedStudent(stu.UserID), testutil.WithRate(400), testutil.WithEstimate(20))
}

func jobRequest(title string) contract.JobRequest {
	return contract.JobRequest{
		Title:          title,
		Description:    "Build and document a small internal tool for the team.",
		Category:       "development",
		Location:       "Bergen",
		HourlyRate:     350,
		EstimatedHours: 40,
		Deadline:       time.Now().UTC().AddDate(0, 2, 0).Truncate(24 * time.Hour),
		Skills:         []string{"go", "sqlite"},
	}
}

type recordingObserver struct {
	mu     sync.Mutex
	events []UseCaseEvent
}

func (r *recordingObserver) ObserveUseCase(_ context.Context, e UseCaseEvent) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
}

func (r *recordingObserver) last() UseCaseEvent {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.events) == 0 {
		return UseCaseEvent{}
	}
	return r.events[len(r.events)-1]
}
