package testutil

import (
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	"github.com/alexanderramin/fleksjobb/internal/domain"
	"github.com/google/uuid"
)

var emailCounter atomic.Int64

// Timestamps are stored with second precision, so fixtures use the same.
func now() time.Time {
	return time.Now().UTC().Truncate(time.Second)
}

func uniqueEmail(name string) string {
	local := strings.ToLower(strings.Join(strings.Fields(name), "."))
	return fmt.Sprintf("%s%d@example.no", local, emailCounter.Add(1))
}

// User options
type UserOption func(*domain.User)

func WithEmail(email string) UserOption {
	return func(u *domain.User) {
		u.Email = email
	}
}

func WithCompany(companyID string) UserOption {
	return func(u *domain.User) {
		u.CompanyID = companyID
	}
}

func WithPasswordHash(hash string) UserOption {
	return func(u *domain.User) {
		u.PasswordHash = hash
	}
}

func NewTestStudent(name string, opts ...UserOption) *domain.User {
	ts := now()
	u := &domain.User{
		ID:             uuid.New().String(),
		Role:           domain.RoleStudent,
		Name:           name,
		Email:          uniqueEmail(name),
		Phone:          "+47 12345678",
		University:     "NTNU",
		StudyProgram:   "Informatics",
		GraduationYear: 2027,
		CreatedAt:      ts,
		UpdatedAt:      ts,
	}
	for _, opt := range opts {
		opt(u)
	}
	return u
}

func NewTestEmployer(name string, opts ...UserOption) *domain.User {
	ts := now()
	u := &domain.User{
		ID:           uuid.New().String(),
		Role:         domain.RoleEmployer,
		Name:         name,
		Email:        uniqueEmail(name),
		Phone:        "+47 98765432",
		ContactTitle: "CTO",
		CreatedAt:    ts,
		UpdatedAt:    ts,
	}
	for _, opt := range opts {
		opt(u)
	}
	return u
}

func NewTestCompany(orgNumber, name string) *domain.Company {
	return &domain.Company{
		ID:        uuid.New().String(),
		OrgNumber: orgNumber,
		Name:      name,
		Verified:  true,
		CreatedAt: now(),
	}
}

// Job options
type JobOption func(*domain.Job)

func WithJobStatus(s domain.JobStatus) JobOption {
	return func(j *domain.Job) {
		j.Status = s
	}
}

func WithCategory(c string) JobOption {
	return func(j *domain.Job) {
		j.Category = c
	}
}

func WithRemote(remote bool) JobOption {
	return func(j *domain.Job) {
		j.Remote = remote
	}
}

func WithRate(nok int) JobOption {
	return func(j *domain.Job) {
		j.HourlyRate = nok
	}
}

func WithEstimate(hours int) JobOption {
	return func(j *domain.Job) {
		j.EstimatedHours = hours
	}
}

func WithSkills(skills ...string) JobOption {
	return func(j *domain.Job) {
		j.Skills = skills
	}
}

func WithDeadline(d time.Time) JobOption {
	return func(j *domain.Job) {
		j.Deadline = d
	}
}

// WithAssignedStudent puts the job in progress for the given student.
func WithAssignedStudent(studentID string) JobOption {
	return func(j *domain.Job) {
		j.AssignedStudentID = studentID
		j.Status = domain.JobInProgress
	}
}

func WithCreatedAt(t time.Time) JobOption {
	return func(j *domain.Job) {
		j.CreatedAt = t
		j.UpdatedAt = t
	}
}

func NewTestJob(employerID, title string, opts ...JobOption) *domain.Job {
	ts := now()
	j := &domain.Job{
		ID:             uuid.New().String(),
		EmployerID:     employerID,
		Title:          title,
		Description:    "A well specified piece of work for a student.",
		Category:       "development",
		Location:       "Oslo",
		Skills:         []string{"go"},
		HourlyRate:     400,
		EstimatedHours: 20,
		Deadline:       time.Date(ts.Year()+1, 1, 15, 0, 0, 0, 0, time.UTC),
		Status:         domain.JobOpen,
		CreatedAt:      ts,
		UpdatedAt:      ts,
	}
	for _, opt := range opts {
		opt(j)
	}
	return j
}

func NewTestApplication(jobID, studentID string) *domain.Application {
	ts := now()
	return &domain.Application{
		ID:           uuid.New().String(),
		JobID:        jobID,
		StudentID:    studentID,
		CoverLetter:  "I would love to help with this job.",
		HoursPerWeek: 10,
		Status:       domain.ApplicationPending,
		CreatedAt:    ts,
		UpdatedAt:    ts,
	}
}
