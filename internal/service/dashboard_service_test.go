package service

import (
	"context"
	"testing"

	"github.com/alexanderramin/fleksjobb/internal/contract"
	"github.com/alexanderramin/fleksjobb/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDashboard_Student(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	emp := env.employer(t, "Ola Hansen")
	stu := env.student(t, "Kari Nordmann")

	open := env.job(t, emp, "Design a logo")
	_, err := env.applications.Apply(ctx, stu, open.ID, coverLetter)
	require.NoError(t, err)

	active := env.activeJob(t, emp, stu, "Data migration")
	_, err = env.active.LogHours(ctx, stu, active.ID, contract.LogHoursRequest{Hours: 4})
	require.NoError(t, err)

	done := env.activeJob(t, emp, stu, "Landing page")
	_, err = env.active.LogHours(ctx, stu, done.ID, contract.LogHoursRequest{Hours: 3})
	require.NoError(t, err)
	p, err := env.active.Complete(ctx, emp, done.ID)
	require.NoError(t, err)
	_, err = env.payments.MarkPaid(ctx, emp, p.ID)
	require.NoError(t, err)

	d, err := env.dashboards.Student(ctx, stu)
	require.NoError(t, err)
	require.Len(t, d.Applications, 1)
	assert.Equal(t, "Design a logo", d.Applications[0].JobTitle)
	require.Len(t, d.ActiveJobs, 1)
	assert.InDelta(t, 20.0, d.ActiveJobs[0].ProgressPct(), 0.001)
	assert.Equal(t, 1, d.Completed)
	assert.Equal(t, 1200, d.EarnedNOK)
	assert.Zero(t, d.PendingNOK)

	_, err = env.dashboards.Student(ctx, emp)
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestDashboard_Employer(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	emp := env.employer(t, "Ola Hansen")
	kari := env.student(t, "Kari Nordmann")
	lars := env.student(t, "Lars Berg")

	open := env.job(t, emp, "Design a logo")
	for _, s := range []domain.Session{kari, lars} {
		_, err := env.applications.Apply(ctx, s, open.ID, coverLetter)
		require.NoError(t, err)
	}
	env.job(t, emp, "Quiet listing")

	active := env.activeJob(t, emp, kari, "Data migration")
	_, err := env.active.RequestChange(ctx, kari, active.ID, contract.ChangeRequestInput{
		Kind: domain.ChangeRate, ProposedValue: "450", Reason: "Scope grew to include reporting.",
	})
	require.NoError(t, err)
	_, err = env.active.RequestChange(ctx, emp, active.ID, contract.ChangeRequestInput{
		Kind: domain.ChangeScope, ProposedValue: "Add CSV export", Reason: "Finance asked for an export.",
	})
	require.NoError(t, err)

	finished := env.activeJob(t, emp, lars, "Landing page")
	_, err = env.active.LogHours(ctx, lars, finished.ID, contract.LogHoursRequest{Hours: 5})
	require.NoError(t, err)
	_, err = env.active.Complete(ctx, emp, finished.ID)
	require.NoError(t, err)

	d, err := env.dashboards.Employer(ctx, emp)
	require.NoError(t, err)

	counts := map[string]int{}
	for _, js := range d.OpenJobs {
		counts[js.Job.Title] = js.Applicants
	}
	assert.Equal(t, map[string]int{"Design a logo": 2, "Quiet listing": 0}, counts)
	assert.Len(t, d.ActiveJobs, 1)
	require.Len(t, d.PendingChanges, 1, "only requests raised by the student await the employer")
	assert.Equal(t, domain.ChangeRate, d.PendingChanges[0].Kind)
	assert.Len(t, d.Outstanding, 1)
	assert.Equal(t, 2000, d.OutstandingNOK)
}
