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

type activeJobService struct {
	jobs     repository.JobRepo
	users    repository.UserRepo
	workLogs repository.WorkLogRepo
	changes  repository.ChangeRequestRepo
	payments repository.PaymentRepo
	uow      db.UnitOfWork
	observer UseCaseObserver
}

func NewActiveJobService(
	jobs repository.JobRepo,
	users repository.UserRepo,
	workLogs repository.WorkLogRepo,
	changes repository.ChangeRequestRepo,
	payments repository.PaymentRepo,
	uow db.UnitOfWork,
	observers ...UseCaseObserver,
) ActiveJobService {
	return &activeJobService{
		jobs:     jobs,
		users:    users,
		workLogs: workLogs,
		changes:  changes,
		payments: payments,
		uow:      uow,
		observer: useCaseObserverOrNoop(observers),
	}
}

func (s *activeJobService) Get(ctx context.Context, sess domain.Session, jobID string) (*ActiveJob, error) {
	j, err := participantJob(ctx, s.jobs, sess, jobID)
	if err != nil {
		return nil, err
	}
	if j.AssignedStudentID == "" {
		return nil, invalidState(fmt.Errorf("job %q has no assigned student yet", j.Title))
	}
	out := &ActiveJob{Job: j}
	if out.Student, err = s.users.GetByID(ctx, j.AssignedStudentID); err != nil {
		return nil, err
	}
	if out.Employer, err = s.users.GetByID(ctx, j.EmployerID); err != nil {
		return nil, err
	}
	if out.WorkLogs, err = s.workLogs.ListByJob(ctx, j.ID); err != nil {
		return nil, err
	}
	if out.ChangeRequests, err = s.changes.ListByJob(ctx, j.ID); err != nil {
		return nil, err
	}
	p, err := s.payments.GetByJob(ctx, j.ID)
	switch {
	case err == nil:
		out.Payment = p
	case !errors.Is(err, repository.ErrNotFound):
		return nil, err
	}
	return out, nil
}

// ListActive returns the session's in-progress jobs.
func (s *activeJobService) ListActive(ctx context.Context, sess domain.Session) ([]*domain.Job, error) {
	var (
		jobs []*domain.Job
		err  error
	)
	switch {
	case sess.IsStudent():
		jobs, err = s.jobs.ListByStudent(ctx, sess.UserID)
	case sess.IsEmployer():
		jobs, err = s.jobs.ListByEmployer(ctx, sess.UserID)
	default:
		return nil, requireAuth(sess)
	}
	if err != nil {
		return nil, err
	}
	return filterStatus(jobs, domain.JobInProgress), nil
}

// LogHours records worked hours from the assigned student and advances
// the job's progress.
func (s *activeJobService) LogHours(ctx context.Context, sess domain.Session, jobID string, req contract.LogHoursRequest) (j *domain.Job, err error) {
	done := startUseCase(ctx, s.observer, "active_job.log_hours", map[string]any{"job_id": jobID, "hours": req.Hours})
	defer func() { done(err) }()

	if err := requireStudent(sess); err != nil {
		return nil, err
	}
	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txJobs := repository.NewSQLiteJobRepo(tx)
		j, err = participantJob(ctx, txJobs, sess, jobID)
		if err != nil {
			return err
		}
		ts := now()
		if err := j.LogHours(req.Hours, ts); err != nil {
			return invalidState(err)
		}
		if err := txJobs.Update(ctx, j); err != nil {
			return err
		}
		return repository.NewSQLiteWorkLogRepo(tx).Create(ctx, &domain.WorkLog{
			ID:        uuid.New().String(),
			JobID:     j.ID,
			StudentID: sess.UserID,
			Hours:     req.Hours,
			Note:      req.Note,
			LoggedAt:  ts,
		})
	})
	if err != nil {
		return nil, err
	}
	return j, nil
}

func (s *activeJobService) RequestChange(ctx context.Context, sess domain.Session, jobID string, req contract.ChangeRequestInput) (cr *domain.ChangeRequest, err error) {
	done := startUseCase(ctx, s.observer, "active_job.request_change", map[string]any{"job_id": jobID, "kind": string(req.Kind)})
	defer func() { done(err) }()

	j, err := participantJob(ctx, s.jobs, sess, jobID)
	if err != nil {
		return nil, err
	}
	if j.Status != domain.JobInProgress {
		return nil, invalidState(fmt.Errorf("changes can only be requested on active jobs, %q is %s", j.Title, j.Status))
	}
	cr = &domain.ChangeRequest{
		ID:            uuid.New().String(),
		JobID:         j.ID,
		RequestedBy:   sess.UserID,
		Kind:          req.Kind,
		ProposedValue: req.ProposedValue,
		Reason:        req.Reason,
		Status:        domain.ChangePending,
		CreatedAt:     now(),
	}
	if err := s.changes.Create(ctx, cr); err != nil {
		return nil, err
	}
	return cr, nil
}

// ResolveChange answers a pending request. Only the party that did not
// raise it may answer; an approval is written into the job's terms.
func (s *activeJobService) ResolveChange(ctx context.Context, sess domain.Session, changeID string, approve bool) (cr *domain.ChangeRequest, err error) {
	done := startUseCase(ctx, s.observer, "active_job.resolve_change", map[string]any{"change_id": changeID, "approve": approve})
	defer func() { done(err) }()

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txChanges := repository.NewSQLiteChangeRequestRepo(tx)
		txJobs := repository.NewSQLiteJobRepo(tx)

		cr, err = txChanges.GetByID(ctx, changeID)
		if err != nil {
			return err
		}
		j, err := participantJob(ctx, txJobs, sess, cr.JobID)
		if err != nil {
			return err
		}
		if cr.RequestedBy == sess.UserID {
			return fmt.Errorf("%w: the other party must answer your own request", ErrForbidden)
		}
		if j.Status != domain.JobInProgress {
			return invalidState(fmt.Errorf("job %q is %s", j.Title, j.Status))
		}
		ts := now()
		if err := cr.Resolve(approve, ts); err != nil {
			return invalidState(err)
		}
		if approve {
			if err := cr.ApplyTo(j, ts); err != nil {
				return invalidState(err)
			}
			if err := txJobs.Update(ctx, j); err != nil {
				return err
			}
		}
		return txChanges.Update(ctx, cr)
	})
	if err != nil {
		return nil, err
	}
	return cr, nil
}

// Complete closes the job and creates a pending payment for the hours
// logged. Completing an already completed job returns its payment.
func (s *activeJobService) Complete(ctx context.Context, sess domain.Session, jobID string) (p *domain.Payment, err error) {
	done := startUseCase(ctx, s.observer, "active_job.complete", map[string]any{"job_id": jobID})
	defer func() { done(err) }()

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txJobs := repository.NewSQLiteJobRepo(tx)
		txPayments := repository.NewSQLitePaymentRepo(tx)

		j, err := ownedJob(ctx, txJobs, sess, jobID)
		if err != nil {
			return err
		}
		if j.Status == domain.JobCompleted {
			p, err = txPayments.GetByJob(ctx, j.ID)
			return err
		}
		ts := now()
		if err := j.Complete(ts); err != nil {
			return invalidState(err)
		}
		if err := txJobs.Update(ctx, j); err != nil {
			return err
		}
		p = &domain.Payment{
			ID:         uuid.New().String(),
			JobID:      j.ID,
			StudentID:  j.AssignedStudentID,
			EmployerID: j.EmployerID,
			AmountNOK:  j.EarnedNOK(),
			Status:     domain.PaymentPending,
			CreatedAt:  ts,
		}
		return txPayments.Create(ctx, p)
	})
	if err != nil {
		return nil, err
	}
	return p, nil
}

// Cancel ends an open or active job without payment.
func (s *activeJobService) Cancel(ctx context.Context, sess domain.Session, jobID string) (err error) {
	done := startUseCase(ctx, s.observer, "active_job.cancel", map[string]any{"job_id": jobID})
	defer func() { done(err) }()

	j, err := ownedJob(ctx, s.jobs, sess, jobID)
	if err != nil {
		return err
	}
	if err := j.Cancel(now()); err != nil {
		return invalidState(err)
	}
	return s.jobs.Update(ctx, j)
}
