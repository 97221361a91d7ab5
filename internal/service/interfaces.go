package service

import (
	"context"

	"github.com/alexanderramin/fleksjobb/internal/contract"
	"github.com/alexanderramin/fleksjobb/internal/domain"
	"github.com/alexanderramin/fleksjobb/internal/orgregistry"
	"github.com/alexanderramin/fleksjobb/internal/repository"
)

// OrgVerifier resolves an organisation number to a registered company.
// *orgregistry.Registry satisfies it.
type OrgVerifier interface {
	Lookup(ctx context.Context, orgNumber string) (orgregistry.Organisation, error)
}

type AccountService interface {
	Register(ctx context.Context, req contract.RegisterRequest) (domain.Session, error)
	VerifyOrg(ctx context.Context, orgNumber string) (orgregistry.Organisation, error)
	Login(ctx context.Context, req contract.LoginRequest) (domain.Session, error)
	SessionByEmail(ctx context.Context, email string) (domain.Session, error)
	GetUser(ctx context.Context, id string) (*domain.User, error)
}

type JobService interface {
	Post(ctx context.Context, sess domain.Session, req contract.JobRequest) (*domain.Job, error)
	Edit(ctx context.Context, sess domain.Session, jobID string, req contract.JobRequest) (*domain.Job, error)
	Get(ctx context.Context, id string) (*domain.Job, error)
	ListOpen(ctx context.Context, f repository.JobFilter) ([]*domain.Job, error)
	ListByEmployer(ctx context.Context, sess domain.Session) ([]*domain.Job, error)
	ListByStudent(ctx context.Context, sess domain.Session) ([]*domain.Job, error)
	Delete(ctx context.Context, sess domain.Session, jobID string) error
}

type ApplicationService interface {
	Apply(ctx context.Context, sess domain.Session, jobID string, req contract.ApplicationRequest) (*domain.Application, error)
	ListForJob(ctx context.Context, sess domain.Session, jobID string) ([]*Applicant, error)
	ListMine(ctx context.Context, sess domain.Session) ([]*domain.Application, error)
	Accept(ctx context.Context, sess domain.Session, applicationID string) (*domain.Job, error)
	Reject(ctx context.Context, sess domain.Session, applicationID string) error
	Withdraw(ctx context.Context, sess domain.Session, applicationID string) error
}

type ActiveJobService interface {
	Get(ctx context.Context, sess domain.Session, jobID string) (*ActiveJob, error)
	ListActive(ctx context.Context, sess domain.Session) ([]*domain.Job, error)
	LogHours(ctx context.Context, sess domain.Session, jobID string, req contract.LogHoursRequest) (*domain.Job, error)
	RequestChange(ctx context.Context, sess domain.Session, jobID string, req contract.ChangeRequestInput) (*domain.ChangeRequest, error)
	ResolveChange(ctx context.Context, sess domain.Session, changeID string, approve bool) (*domain.ChangeRequest, error)
	Complete(ctx context.Context, sess domain.Session, jobID string) (*domain.Payment, error)
	Cancel(ctx context.Context, sess domain.Session, jobID string) error
}

type ReportService interface {
	Submit(ctx context.Context, sess domain.Session, req contract.ReportRequest) (*domain.Report, error)
	ListMine(ctx context.Context, sess domain.Session) ([]*domain.Report, error)
}

type ReviewService interface {
	Submit(ctx context.Context, sess domain.Session, jobID string, req contract.ReviewRequest) (*domain.Review, error)
	ListForUser(ctx context.Context, userID string) (*ReviewSummary, error)
}

type TeamService interface {
	Invite(ctx context.Context, sess domain.Session, req contract.TeamInviteRequest) (*domain.TeamMember, error)
	List(ctx context.Context, sess domain.Session) ([]*domain.TeamMember, error)
	Remove(ctx context.Context, sess domain.Session, memberID string) error
}

type PaymentService interface {
	ListMine(ctx context.Context, sess domain.Session) ([]*domain.Payment, error)
	MarkPaid(ctx context.Context, sess domain.Session, paymentID string) (*domain.Payment, error)
}

type DashboardService interface {
	Student(ctx context.Context, sess domain.Session) (*StudentDashboard, error)
	Employer(ctx context.Context, sess domain.Session) (*EmployerDashboard, error)
}

// Applicant pairs an application with the student who sent it.
type Applicant struct {
	Application *domain.Application
	Student     *domain.User
}

// ActiveJob is the detail shown on the active job screen.
type ActiveJob struct {
	Job            *domain.Job
	Student        *domain.User
	Employer       *domain.User
	WorkLogs       []*domain.WorkLog
	ChangeRequests []*domain.ChangeRequest
	Payment        *domain.Payment
}

// PendingChanges counts change requests still awaiting an answer.
func (a *ActiveJob) PendingChanges() int {
	n := 0
	for _, c := range a.ChangeRequests {
		if c.Status == domain.ChangePending {
			n++
		}
	}
	return n
}

type ReviewSummary struct {
	Reviews []*domain.Review
	Average float64
}
