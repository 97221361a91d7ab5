package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/alexanderramin/fleksjobb/internal/contract"
	"github.com/alexanderramin/fleksjobb/internal/db"
	"github.com/alexanderramin/fleksjobb/internal/domain"
	"github.com/alexanderramin/fleksjobb/internal/repository"
	"github.com/google/uuid"
)

type applicationService struct {
	applications repository.ApplicationRepo
	jobs         repository.JobRepo
	users        repository.UserRepo
	uow          db.UnitOfWork
	observer     UseCaseObserver
}

func NewApplicationService(
	applications repository.ApplicationRepo,
	jobs repository.JobRepo,
	users repository.UserRepo,
	uow db.UnitOfWork,
	observers ...UseCaseObserver,
) ApplicationService {
	return &applicationService{
		applications: applications,
		jobs:         jobs,
		users:        users,
		uow:          uow,
		observer:     useCaseObserverOrNoop(observers),
	}
}

func (s *applicationService) Apply(ctx context.Context, sess domain.Session, jobID string, req contract.ApplicationRequest) (a *domain.Application, err error) {
	done := startUseCase(ctx, s.observer, "application.apply", map[string]any{"job_id": jobID})
	defer func() { done(err) }()

	if err := requireStudent(sess); err != nil {
		return nil, err
	}
	j, err := s.jobs.GetByID(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if j.Status != domain.JobOpen {
		return nil, invalidState(fmt.Errorf("job %q is no longer taking applications", j.Title))
	}
	ts := now()
	a = &domain.Application{
		ID:           uuid.New().String(),
		JobID:        j.ID,
		StudentID:    sess.UserID,
		CoverLetter:  req.CoverLetter,
		HoursPerWeek: req.HoursPerWeek,
		Status:       domain.ApplicationPending,
		CreatedAt:    ts,
		UpdatedAt:    ts,
	}
	if err := s.applications.Create(ctx, a); err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return nil, invalidState(fmt.Errorf("you have already applied to %q", j.Title))
		}
		return nil, err
	}
	return a, nil
}

func (s *applicationService) ListForJob(ctx context.Context, sess domain.Session, jobID string) ([]*Applicant, error) {
	if _, err := ownedJob(ctx, s.jobs, sess, jobID); err != nil {
		return nil, err
	}
	apps, err := s.applications.ListByJob(ctx, jobID)
	if err != nil {
		return nil, err
	}
	out := make([]*Applicant, 0, len(apps))
	for _, a := range apps {
		u, err := s.users.GetByID(ctx, a.StudentID)
		if err != nil {
			return nil, err
		}
		out = append(out, &Applicant{Application: a, Student: u})
	}
	return out, nil
}

func (s *applicationService) ListMine(ctx context.Context, sess domain.Session) ([]*domain.Application, error) {
	if err := requireStudent(sess); err != nil {
		return nil, err
	}
	return s.applications.ListByStudent(ctx, sess.UserID)
}

// Accept assigns the applicant to the job and rejects every other pending
// application for it in the same transaction.
func (s *applicationService) Accept(ctx context.Context, sess domain.Session, applicationID string) (j *domain.Job, err error) {
	done := startUseCase(ctx, s.observer, "application.accept", map[string]any{"application_id": applicationID})
	defer func() { done(err) }()

	if err := requireEmployer(sess); err != nil {
		return nil, err
	}
	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txApps := repository.NewSQLiteApplicationRepo(tx)
		txJobs := repository.NewSQLiteJobRepo(tx)

		a, err := txApps.GetByID(ctx, applicationID)
		if err != nil {
			return err
		}
		j, err = ownedJob(ctx, txJobs, sess, a.JobID)
		if err != nil {
			return err
		}
		ts := now()
		if err := a.Decide(domain.ApplicationAccepted, ts); err != nil {
			return invalidState(err)
		}
		if err := j.Assign(a.StudentID, ts); err != nil {
			return invalidState(err)
		}
		if err := txApps.Update(ctx, a); err != nil {
			return err
		}
		if err := txJobs.Update(ctx, j); err != nil {
			return err
		}

		others, err := txApps.ListByJob(ctx, j.ID)
		if err != nil {
			return err
		}
		for _, o := range others {
			if o.ID == a.ID || o.Status != domain.ApplicationPending {
				continue
			}
			if err := o.Decide(domain.ApplicationRejected, ts); err != nil {
				return err
			}
			if err := txApps.Update(ctx, o); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return j, nil
}

func (s *applicationService) Reject(ctx context.Context, sess domain.Session, applicationID string) (err error) {
	done := startUseCase(ctx, s.observer, "application.reject", map[string]any{"application_id": applicationID})
	defer func() { done(err) }()

	a, err := s.applications.GetByID(ctx, applicationID)
	if err != nil {
		return err
	}
	if _, err := ownedJob(ctx, s.jobs, sess, a.JobID); err != nil {
		return err
	}
	if err := a.Decide(domain.ApplicationRejected, now()); err != nil {
		return invalidState(err)
	}
	return s.applications.Update(ctx, a)
}

func (s *applicationService) Withdraw(ctx context.Context, sess domain.Session, applicationID string) (err error) {
	done := startUseCase(ctx, s.observer, "application.withdraw", map[string]any{"application_id": applicationID})
	defer func() { done(err) }()

	if err := requireStudent(sess); err != nil {
		return err
	}
	a, err := s.applications.GetByID(ctx, applicationID)
	if err != nil {
		return err
	}
	if a.StudentID != sess.UserID {
		return fmt.Errorf("%w: application belongs to another student", ErrForbidden)
	}
	if err := a.Withdraw(now()); err != nil {
		return invalidState(err)
	}
	return s.applications.Update(ctx, a)
}
