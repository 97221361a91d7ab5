package domain

import (
	"fmt"
	"math"
	"time"
)

type Job struct {
	ID          string
	EmployerID  string
	CompanyID   string
	Title       string
	Description string
	Category    string
	Location    string
	Remote      bool
	Skills      []string

	HourlyRate     int // NOK
	EstimatedHours int
	HoursLogged    float64
	Deadline       time.Time

	Status            JobStatus
	AssignedStudentID string

	CompletedAt *time.Time
	CancelledAt *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// IsTerminal reports whether the job can no longer change state.
func (j *Job) IsTerminal() bool {
	return j.Status == JobCompleted || j.Status == JobCancelled
}

// Editable reports whether the listing fields may still be changed.
// Only open listings can be edited; active contracts go through change requests.
func (j *Job) Editable() bool {
	return j.Status == JobOpen
}

// Assign hands an open job to a student and moves it to in_progress.
func (j *Job) Assign(studentID string, now time.Time) error {
	if j.Status != JobOpen {
		return fmt.Errorf("job %q is %s, only open jobs can be assigned", j.Title, j.Status)
	}
	j.AssignedStudentID = studentID
	j.Status = JobInProgress
	j.UpdatedAt = now
	return nil
}

// LogHours adds worked hours to an in-progress job.
func (j *Job) LogHours(hours float64, now time.Time) error {
	if j.Status != JobInProgress {
		return fmt.Errorf("cannot log hours on a %s job", j.Status)
	}
	if hours <= 0 {
		return fmt.Errorf("hours must be positive, got %v", hours)
	}
	j.HoursLogged += hours
	j.UpdatedAt = now
	return nil
}

// Complete closes an in-progress job.
func (j *Job) Complete(now time.Time) error {
	if j.Status == JobCompleted {
		return nil
	}
	if j.Status != JobInProgress {
		return fmt.Errorf("cannot complete a %s job", j.Status)
	}
	j.Status = JobCompleted
	j.CompletedAt = &now
	j.UpdatedAt = now
	return nil
}

// Cancel cancels an open or in-progress job. Cancelling twice is a no-op.
func (j *Job) Cancel(now time.Time) error {
	if j.Status == JobCancelled {
		return nil
	}
	if j.Status == JobCompleted {
		return fmt.Errorf("job %q is already completed", j.Title)
	}
	j.Status = JobCancelled
	j.CancelledAt = &now
	j.UpdatedAt = now
	return nil
}

// ProgressPct returns logged hours as a percentage of the estimate,
// clamped to [0, 100]. A job without an estimate reports 0.
func (j *Job) ProgressPct() float64 {
	return ProgressPct(j.HoursLogged, float64(j.EstimatedHours))
}

// EarnedNOK returns the amount owed for the hours logged so far,
// rounded to the nearest krone.
func (j *Job) EarnedNOK() int {
	return int(math.Round(j.HoursLogged * float64(j.HourlyRate)))
}

// BudgetNOK is the estimated total cost of the job.
func (j *Job) BudgetNOK() int {
	return j.EstimatedHours * j.HourlyRate
}

// ProgressPct computes done/total as a percentage clamped to [0, 100].
func ProgressPct(done, total float64) float64 {
	if total <= 0 || done <= 0 {
		return 0
	}
	pct := done / total * 100
	if pct > 100 {
		return 100
	}
	return pct
}
