package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)

func TestJobIsTerminal(t *testing.T) {
	cases := []struct {
		status   JobStatus
		terminal bool
	}{
		{JobOpen, false},
		{JobInProgress, false},
		{JobCompleted, true},
		{JobCancelled, true},
	}
	for _, tc := range cases {
		j := &Job{Status: tc.status}
		assert.Equal(t, tc.terminal, j.IsTerminal(), "status=%s", tc.status)
	}
}

func TestAssign_FromOpen(t *testing.T) {
	j := &Job{Status: JobOpen}
	require.NoError(t, j.Assign("stu-1", testNow))
	assert.Equal(t, JobInProgress, j.Status)
	assert.Equal(t, "stu-1", j.AssignedStudentID)
	assert.Equal(t, testNow, j.UpdatedAt)
}

func TestAssign_AlreadyInProgress(t *testing.T) {
	j := &Job{Title: "API work", Status: JobInProgress, AssignedStudentID: "stu-1"}
	err := j.Assign("stu-2", testNow)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "only open jobs")
	assert.Equal(t, "stu-1", j.AssignedStudentID)
}

func TestLogHours(t *testing.T) {
	j := &Job{Status: JobInProgress, EstimatedHours: 10}
	require.NoError(t, j.LogHours(2.5, testNow))
	require.NoError(t, j.LogHours(1, testNow))
	assert.InDelta(t, 3.5, j.HoursLogged, 0.001)
	assert.InDelta(t, 35.0, j.ProgressPct(), 0.001)
}

func TestLogHours_RejectsOpenJob(t *testing.T) {
	j := &Job{Status: JobOpen}
	err := j.LogHours(1, testNow)
	require.Error(t, err)
	assert.Zero(t, j.HoursLogged)
}

func TestLogHours_RejectsNonPositive(t *testing.T) {
	j := &Job{Status: JobInProgress}
	assert.Error(t, j.LogHours(0, testNow))
	assert.Error(t, j.LogHours(-1, testNow))
}

func TestComplete(t *testing.T) {
	j := &Job{Status: JobInProgress}
	require.NoError(t, j.Complete(testNow))
	assert.Equal(t, JobCompleted, j.Status)
	require.NotNil(t, j.CompletedAt)
	assert.Equal(t, testNow, *j.CompletedAt)

	later := testNow.Add(time.Hour)
	require.NoError(t, j.Complete(later))
	assert.Equal(t, testNow, *j.CompletedAt, "second completion keeps the original timestamp")
}

func TestComplete_FromOpen(t *testing.T) {
	j := &Job{Status: JobOpen}
	assert.Error(t, j.Complete(testNow))
}

func TestCancel(t *testing.T) {
	j := &Job{Status: JobOpen}
	require.NoError(t, j.Cancel(testNow))
	assert.Equal(t, JobCancelled, j.Status)
	require.NoError(t, j.Cancel(testNow), "cancelling twice is a no-op")

	done := &Job{Title: "Done", Status: JobCompleted}
	err := done.Cancel(testNow)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already completed")
}

func TestProgressPct(t *testing.T) {
	cases := []struct {
		done, total, want float64
	}{
		{0, 10, 0},
		{5, 10, 50},
		{10, 10, 100},
		{15, 10, 100},
		{3, 0, 0},
		{-2, 10, 0},
	}
	for _, tc := range cases {
		assert.InDelta(t, tc.want, ProgressPct(tc.done, tc.total), 0.001, "done=%v total=%v", tc.done, tc.total)
	}
}

func TestEarnedAndBudget(t *testing.T) {
	j := &Job{HourlyRate: 250, EstimatedHours: 20, HoursLogged: 4.5}
	assert.Equal(t, 1125, j.EarnedNOK())
	assert.Equal(t, 5000, j.BudgetNOK())
}

func TestValidJobCategory(t *testing.T) {
	assert.True(t, ValidJobCategory("development"))
	assert.True(t, ValidJobCategory("devops"))
	assert.False(t, ValidJobCategory("marketing"))
	assert.False(t, ValidJobCategory(""))
}
