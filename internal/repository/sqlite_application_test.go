package repository

import (
	"context"
	"testing"
	"time"

	"github.com/alexanderramin/fleksjobb/internal/domain"
	"github.com/alexanderramin/fleksjobb/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplicationRepo(t *testing.T) {
	db := testutil.NewTestDB(t)
	users := NewSQLiteUserRepo(db)
	emp := createEmployer(t, users)
	stu := createStudent(t, users)
	job := testutil.NewTestJob(emp.ID, "Fix the CI pipeline")
	require.NoError(t, NewSQLiteJobRepo(db).Create(context.Background(), job))

	repo := NewSQLiteApplicationRepo(db)
	ctx := context.Background()

	a := testutil.NewTestApplication(job.ID, stu.ID)
	require.NoError(t, repo.Create(ctx, a))
	assert.ErrorIs(t, repo.Create(ctx, testutil.NewTestApplication(job.ID, stu.ID)), ErrConflict,
		"one application per student per job")

	n, err := repo.CountByJob(ctx, job.ID, domain.ApplicationPending)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	require.NoError(t, a.Decide(domain.ApplicationAccepted, time.Now().UTC().Truncate(time.Second)))
	require.NoError(t, repo.Update(ctx, a))

	got, err := repo.GetByID(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.ApplicationAccepted, got.Status)

	mine, err := repo.ListByStudent(ctx, stu.ID)
	require.NoError(t, err)
	assert.Len(t, mine, 1)

	forJob, err := repo.ListByJob(ctx, job.ID)
	require.NoError(t, err)
	assert.Len(t, forJob, 1)

	n, err = repo.CountByJob(ctx, job.ID, domain.ApplicationPending)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestChangeRequestRepo_PendingForEmployer(t *testing.T) {
	db := testutil.NewTestDB(t)
	users := NewSQLiteUserRepo(db)
	emp := createEmployer(t, users)
	other := createEmployer(t, users)
	stu := createStudent(t, users)
	jobs := NewSQLiteJobRepo(db)
	ctx := context.Background()

	mine := testutil.NewTestJob(emp.ID, "Mine", testutil.WithAssignedStudent(stu.ID))
	theirs := testutil.NewTestJob(other.ID, "Theirs", testutil.WithAssignedStudent(stu.ID))
	require.NoError(t, jobs.Create(ctx, mine))
	require.NoError(t, jobs.Create(ctx, theirs))

	repo := NewSQLiteChangeRequestRepo(db)
	ts := time.Now().UTC().Truncate(time.Second)
	newCR := func(id, jobID string) *domain.ChangeRequest {
		return &domain.ChangeRequest{
			ID: id, JobID: jobID, RequestedBy: stu.ID, Kind: domain.ChangeHours,
			ProposedValue: "30", Reason: "More testing needed", Status: domain.ChangePending, CreatedAt: ts,
		}
	}
	require.NoError(t, repo.Create(ctx, newCR("cr1", mine.ID)))
	require.NoError(t, repo.Create(ctx, newCR("cr2", mine.ID)))
	require.NoError(t, repo.Create(ctx, newCR("cr3", theirs.ID)))

	cr, err := repo.GetByID(ctx, "cr2")
	require.NoError(t, err)
	require.NoError(t, cr.Resolve(false, ts))
	require.NoError(t, repo.Update(ctx, cr))

	pending, err := repo.ListPendingForEmployer(ctx, emp.ID)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, "cr1", pending[0].ID)

	all, err := repo.ListByJob(ctx, mine.ID)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	got, err := repo.GetByID(ctx, "cr2")
	require.NoError(t, err)
	assert.Equal(t, domain.ChangeDeclined, got.Status)
	require.NotNil(t, got.ResolvedAt)
	assert.Equal(t, ts, *got.ResolvedAt)
}
