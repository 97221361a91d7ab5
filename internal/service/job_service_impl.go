package service

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/fleksjobb/internal/contract"
	"github.com/alexanderramin/fleksjobb/internal/domain"
	"github.com/alexanderramin/fleksjobb/internal/repository"
	"github.com/google/uuid"
)

type jobService struct {
	jobs     repository.JobRepo
	observer UseCaseObserver
}

func NewJobService(jobs repository.JobRepo, observers ...UseCaseObserver) JobService {
	return &jobService{jobs: jobs, observer: useCaseObserverOrNoop(observers)}
}

func (s *jobService) Post(ctx context.Context, sess domain.Session, req contract.JobRequest) (j *domain.Job, err error) {
	done := startUseCase(ctx, s.observer, "job.post", map[string]any{"category": req.Category})
	defer func() { done(err) }()

	if err := requireEmployer(sess); err != nil {
		return nil, err
	}
	ts := now()
	j = &domain.Job{
		ID:         uuid.New().String(),
		EmployerID: sess.UserID,
		CompanyID:  sess.CompanyID,
		Status:     domain.JobOpen,
		CreatedAt:  ts,
	}
	applyJobRequest(j, req, ts)
	if err := s.jobs.Create(ctx, j); err != nil {
		return nil, err
	}
	return j, nil
}

func applyJobRequest(j *domain.Job, req contract.JobRequest, ts time.Time) {
	j.Title = req.Title
	j.Description = req.Description
	j.Category = req.Category
	j.Location = req.Location
	j.Remote = req.Remote
	j.HourlyRate = req.HourlyRate
	j.EstimatedHours = req.EstimatedHours
	j.Deadline = req.Deadline
	j.Skills = append([]string(nil), req.Skills...)
	j.UpdatedAt = ts
}

// Edit replaces the listing fields of an open job owned by the session.
func (s *jobService) Edit(ctx context.Context, sess domain.Session, jobID string, req contract.JobRequest) (j *domain.Job, err error) {
	done := startUseCase(ctx, s.observer, "job.edit", map[string]any{"job_id": jobID})
	defer func() { done(err) }()

	j, err = ownedJob(ctx, s.jobs, sess, jobID)
	if err != nil {
		return nil, err
	}
	if !j.Editable() {
		return nil, invalidState(fmt.Errorf("job %q is %s, only open jobs can be edited", j.Title, j.Status))
	}
	applyJobRequest(j, req, now())
	if err := s.jobs.Update(ctx, j); err != nil {
		return nil, err
	}
	return j, nil
}

func (s *jobService) Get(ctx context.Context, id string) (*domain.Job, error) {
	return s.jobs.GetByID(ctx, id)
}

// ListOpen lists open jobs. The status in f is always forced to open.
func (s *jobService) ListOpen(ctx context.Context, f repository.JobFilter) ([]*domain.Job, error) {
	f.Status = domain.JobOpen
	return s.jobs.List(ctx, f)
}

func (s *jobService) ListByEmployer(ctx context.Context, sess domain.Session) ([]*domain.Job, error) {
	if err := requireEmployer(sess); err != nil {
		return nil, err
	}
	return s.jobs.ListByEmployer(ctx, sess.UserID)
}

func (s *jobService) ListByStudent(ctx context.Context, sess domain.Session) ([]*domain.Job, error) {
	if err := requireStudent(sess); err != nil {
		return nil, err
	}
	return s.jobs.ListByStudent(ctx, sess.UserID)
}

// Delete removes an open listing. Jobs with an assigned student must be
// cancelled instead so the contract history survives.
func (s *jobService) Delete(ctx context.Context, sess domain.Session, jobID string) (err error) {
	done := startUseCase(ctx, s.observer, "job.delete", map[string]any{"job_id": jobID})
	defer func() { done(err) }()

	j, err := ownedJob(ctx, s.jobs, sess, jobID)
	if err != nil {
		return err
	}
	if j.Status != domain.JobOpen {
		return invalidState(fmt.Errorf("job %q is %s, cancel it instead", j.Title, j.Status))
	}
	return s.jobs.Delete(ctx, j.ID)
}
