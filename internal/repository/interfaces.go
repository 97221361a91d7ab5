package repository

import (
	"context"

	"github.com/alexanderramin/fleksjobb/internal/domain"
)

// JobFilter narrows ListOpen-style queries. Zero values mean "any".
type JobFilter struct {
	Status     domain.JobStatus
	Category   string
	Query      string // matched against title, description and skills
	RemoteOnly bool
	Limit      int
}

type UserRepo interface {
	Create(ctx context.Context, u *domain.User) error
	GetByID(ctx context.Context, id string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	Update(ctx context.Context, u *domain.User) error
}

type CompanyRepo interface {
	Create(ctx context.Context, c *domain.Company) error
	GetByID(ctx context.Context, id string) (*domain.Company, error)
	GetByOrgNumber(ctx context.Context, orgNumber string) (*domain.Company, error)
	Update(ctx context.Context, c *domain.Company) error
}

type JobRepo interface {
	Create(ctx context.Context, j *domain.Job) error
	GetByID(ctx context.Context, id string) (*domain.Job, error)
	List(ctx context.Context, f JobFilter) ([]*domain.Job, error)
	ListByEmployer(ctx context.Context, employerID string) ([]*domain.Job, error)
	ListByStudent(ctx context.Context, studentID string) ([]*domain.Job, error)
	Update(ctx context.Context, j *domain.Job) error
	Delete(ctx context.Context, id string) error
}

type ApplicationRepo interface {
	Create(ctx context.Context, a *domain.Application) error
	GetByID(ctx context.Context, id string) (*domain.Application, error)
	ListByJob(ctx context.Context, jobID string) ([]*domain.Application, error)
	ListByStudent(ctx context.Context, studentID string) ([]*domain.Application, error)
	CountByJob(ctx context.Context, jobID string, status domain.ApplicationStatus) (int, error)
	Update(ctx context.Context, a *domain.Application) error
}

type ChangeRequestRepo interface {
	Create(ctx context.Context, c *domain.ChangeRequest) error
	GetByID(ctx context.Context, id string) (*domain.ChangeRequest, error)
	ListByJob(ctx context.Context, jobID string) ([]*domain.ChangeRequest, error)
	ListPendingForEmployer(ctx context.Context, employerID string) ([]*domain.ChangeRequest, error)
	Update(ctx context.Context, c *domain.ChangeRequest) error
}

type ReportRepo interface {
	Create(ctx context.Context, r *domain.Report) error
	ListByReporter(ctx context.Context, reporterID string) ([]*domain.Report, error)
}

type ReviewRepo interface {
	Create(ctx context.Context, r *domain.Review) error
	ListBySubject(ctx context.Context, subjectID string) ([]*domain.Review, error)
	ListByJob(ctx context.Context, jobID string) ([]*domain.Review, error)
}

type TeamRepo interface {
	Create(ctx context.Context, m *domain.TeamMember) error
	GetByID(ctx context.Context, id string) (*domain.TeamMember, error)
	ListByCompany(ctx context.Context, companyID string) ([]*domain.TeamMember, error)
	Delete(ctx context.Context, id string) error
}

type WorkLogRepo interface {
	Create(ctx context.Context, w *domain.WorkLog) error
	ListByJob(ctx context.Context, jobID string) ([]*domain.WorkLog, error)
}

type PaymentRepo interface {
	Create(ctx context.Context, p *domain.Payment) error
	GetByID(ctx context.Context, id string) (*domain.Payment, error)
	GetByJob(ctx context.Context, jobID string) (*domain.Payment, error)
	ListByStudent(ctx context.Context, studentID string) ([]*domain.Payment, error)
	ListByEmployer(ctx context.Context, employerID string) ([]*domain.Payment, error)
	Update(ctx context.Context, p *domain.Payment) error
}
