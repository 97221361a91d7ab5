package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alexanderramin/fleksjobb/internal/db"
	"github.com/alexanderramin/fleksjobb/internal/domain"
	"github.com/alexanderramin/fleksjobb/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReportRepo(t *testing.T) {
	database := testutil.NewTestDB(t)
	stu := createStudent(t, NewSQLiteUserRepo(database))
	repo := NewSQLiteReportRepo(database)
	ctx := context.Background()
	ts := time.Now().UTC().Truncate(time.Second)

	require.NoError(t, repo.Create(ctx, &domain.Report{
		ID: "r1", ReporterID: stu.ID, Category: domain.ReportFraud,
		Subject: "Fake listing", Description: "The company does not exist.", CreatedAt: ts,
	}))

	list, err := repo.ListByReporter(ctx, stu.ID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Nil(t, list[0].JobID)
	assert.Equal(t, domain.ReportFraud, list[0].Category)
}

func TestReviewRepo_OnePerAuthorPerJob(t *testing.T) {
	database := testutil.NewTestDB(t)
	users := NewSQLiteUserRepo(database)
	emp := createEmployer(t, users)
	stu := createStudent(t, users)
	job := testutil.NewTestJob(emp.ID, "Done job", testutil.WithJobStatus(domain.JobCompleted))
	require.NoError(t, NewSQLiteJobRepo(database).Create(context.Background(), job))

	repo := NewSQLiteReviewRepo(database)
	ctx := context.Background()
	ts := time.Now().UTC().Truncate(time.Second)
	rev := &domain.Review{ID: "rv1", JobID: job.ID, AuthorID: emp.ID, SubjectID: stu.ID, Rating: 5, Comment: "Excellent work", CreatedAt: ts}
	require.NoError(t, repo.Create(ctx, rev))

	dup := *rev
	dup.ID = "rv2"
	assert.ErrorIs(t, repo.Create(ctx, &dup), ErrConflict)

	about, err := repo.ListBySubject(ctx, stu.ID)
	require.NoError(t, err)
	assert.Equal(t, []*domain.Review{rev}, about)

	forJob, err := repo.ListByJob(ctx, job.ID)
	require.NoError(t, err)
	assert.Len(t, forJob, 1)
}

func TestTeamRepo(t *testing.T) {
	database := testutil.NewTestDB(t)
	companies := NewSQLiteCompanyRepo(database)
	ctx := context.Background()
	c := testutil.NewTestCompany("123456789", "Tech Solutions AS")
	require.NoError(t, companies.Create(ctx, c))

	repo := NewSQLiteTeamRepo(database)
	ts := time.Now().UTC().Truncate(time.Second)
	m := &domain.TeamMember{ID: "m1", CompanyID: c.ID, Name: "Per", Email: "per@tech.no", Role: domain.TeamRecruiter, InvitedAt: ts}
	require.NoError(t, repo.Create(ctx, m))

	dup := *m
	dup.ID = "m2"
	dup.Email = "PER@tech.no"
	assert.ErrorIs(t, repo.Create(ctx, &dup), ErrConflict)

	got, err := repo.GetByID(ctx, "m1")
	require.NoError(t, err)
	assert.Equal(t, m, got)

	require.NoError(t, repo.Delete(ctx, "m1"))
	list, err := repo.ListByCompany(ctx, c.ID)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestWorkLogAndPaymentRepos(t *testing.T) {
	database := testutil.NewTestDB(t)
	users := NewSQLiteUserRepo(database)
	emp := createEmployer(t, users)
	stu := createStudent(t, users)
	job := testutil.NewTestJob(emp.ID, "Active", testutil.WithAssignedStudent(stu.ID))
	ctx := context.Background()
	require.NoError(t, NewSQLiteJobRepo(database).Create(ctx, job))
	ts := time.Now().UTC().Truncate(time.Second)

	logs := NewSQLiteWorkLogRepo(database)
	require.NoError(t, logs.Create(ctx, &domain.WorkLog{ID: "w1", JobID: job.ID, StudentID: stu.ID, Hours: 1.5, LoggedAt: ts}))
	require.NoError(t, logs.Create(ctx, &domain.WorkLog{ID: "w2", JobID: job.ID, StudentID: stu.ID, Hours: 3, Note: "API", LoggedAt: ts.Add(time.Hour)}))
	list, err := logs.ListByJob(ctx, job.ID)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "w2", list[0].ID)

	payments := NewSQLitePaymentRepo(database)
	p := &domain.Payment{ID: "p1", JobID: job.ID, StudentID: stu.ID, EmployerID: emp.ID, AmountNOK: 1800, Status: domain.PaymentPending, CreatedAt: ts}
	require.NoError(t, payments.Create(ctx, p))
	dup := *p
	dup.ID = "p2"
	assert.ErrorIs(t, payments.Create(ctx, &dup), ErrConflict, "one payment per job")

	p.MarkPaid(ts)
	require.NoError(t, payments.Update(ctx, p))
	got, err := payments.GetByJob(ctx, job.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.PaymentPaid, got.Status)

	byStudent, err := payments.ListByStudent(ctx, stu.ID)
	require.NoError(t, err)
	assert.Len(t, byStudent, 1)
	byEmployer, err := payments.ListByEmployer(ctx, emp.ID)
	require.NoError(t, err)
	assert.Len(t, byEmployer, 1)
	_, err = payments.GetByID(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestTxScopedRepos_RollBackTogether(t *testing.T) {
	database := testutil.NewTestDB(t)
	users := NewSQLiteUserRepo(database)
	emp := createEmployer(t, users)
	uow := testutil.NewTestUoW(database)
	ctx := context.Background()

	job := testutil.NewTestJob(emp.ID, "Never saved")
	boom := errors.New("boom")
	err := uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		if err := NewSQLiteJobRepo(tx).Create(ctx, job); err != nil {
			return err
		}
		return boom
	})
	require.ErrorIs(t, err, boom)

	_, err = NewSQLiteJobRepo(database).GetByID(ctx, job.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}
