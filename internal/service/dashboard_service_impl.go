package service

import (
	"context"

	"github.com/alexanderramin/fleksjobb/internal/domain"
	"github.com/alexanderramin/fleksjobb/internal/repository"
	"golang.org/x/sync/errgroup"
)

// StudentDashboard is the student landing screen.
type StudentDashboard struct {
	Applications []*ApplicationSummary
	ActiveJobs   []*domain.Job
	Completed    int
	EarnedNOK    int // paid out
	PendingNOK   int // completed but not yet paid
	Rating       float64
	ReviewCount  int
}

// ApplicationSummary is an application with its job title for listing.
type ApplicationSummary struct {
	Application *domain.Application
	JobTitle    string
}

// EmployerDashboard is the employer landing screen.
type EmployerDashboard struct {
	OpenJobs       []*JobSummary
	ActiveJobs     []*domain.Job
	PendingChanges []*domain.ChangeRequest
	Outstanding    []*domain.Payment
	OutstandingNOK int
}

// JobSummary is an open listing with its number of pending applicants.
type JobSummary struct {
	Job        *domain.Job
	Applicants int
}

type dashboardService struct {
	jobs         repository.JobRepo
	applications repository.ApplicationRepo
	changes      repository.ChangeRequestRepo
	payments     repository.PaymentRepo
	reviews      repository.ReviewRepo
}

func NewDashboardService(
	jobs repository.JobRepo,
	applications repository.ApplicationRepo,
	changes repository.ChangeRequestRepo,
	payments repository.PaymentRepo,
	reviews repository.ReviewRepo,
) DashboardService {
	return &dashboardService{
		jobs:         jobs,
		applications: applications,
		changes:      changes,
		payments:     payments,
		reviews:      reviews,
	}
}

func (s *dashboardService) Student(ctx context.Context, sess domain.Session) (*StudentDashboard, error) {
	if err := requireStudent(sess); err != nil {
		return nil, err
	}
	var (
		apps     []*domain.Application
		jobs     []*domain.Job
		payments []*domain.Payment
		reviews  []*domain.Review
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		apps, err = s.applications.ListByStudent(gctx, sess.UserID)
		return err
	})
	g.Go(func() (err error) {
		jobs, err = s.jobs.ListByStudent(gctx, sess.UserID)
		return err
	})
	g.Go(func() (err error) {
		payments, err = s.payments.ListByStudent(gctx, sess.UserID)
		return err
	})
	g.Go(func() (err error) {
		reviews, err = s.reviews.ListBySubject(gctx, sess.UserID)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	d := &StudentDashboard{
		ActiveJobs:  filterStatus(jobs, domain.JobInProgress),
		Completed:   len(filterStatus(jobs, domain.JobCompleted)),
		Rating:      domain.AverageRating(reviews),
		ReviewCount: len(reviews),
	}
	for _, p := range payments {
		if p.Status == domain.PaymentPaid {
			d.EarnedNOK += p.AmountNOK
		} else {
			d.PendingNOK += p.AmountNOK
		}
	}
	titles := make(map[string]string, len(jobs))
	for _, j := range jobs {
		titles[j.ID] = j.Title
	}
	for _, a := range apps {
		title, ok := titles[a.JobID]
		if !ok {
			j, err := s.jobs.GetByID(ctx, a.JobID)
			if err != nil {
				return nil, err
			}
			title = j.Title
			titles[a.JobID] = title
		}
		d.Applications = append(d.Applications, &ApplicationSummary{Application: a, JobTitle: title})
	}
	return d, nil
}

func (s *dashboardService) Employer(ctx context.Context, sess domain.Session) (*EmployerDashboard, error) {
	if err := requireEmployer(sess); err != nil {
		return nil, err
	}
	var (
		jobs     []*domain.Job
		changes  []*domain.ChangeRequest
		payments []*domain.Payment
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		jobs, err = s.jobs.ListByEmployer(gctx, sess.UserID)
		return err
	})
	g.Go(func() (err error) {
		changes, err = s.changes.ListPendingForEmployer(gctx, sess.UserID)
		return err
	})
	g.Go(func() (err error) {
		payments, err = s.payments.ListByEmployer(gctx, sess.UserID)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	d := &EmployerDashboard{ActiveJobs: filterStatus(jobs, domain.JobInProgress)}
	for _, c := range changes {
		// The employer answers what the student asked for.
		if c.RequestedBy != sess.UserID {
			d.PendingChanges = append(d.PendingChanges, c)
		}
	}
	for _, p := range payments {
		if p.Status == domain.PaymentPending {
			d.Outstanding = append(d.Outstanding, p)
			d.OutstandingNOK += p.AmountNOK
		}
	}

	open := filterStatus(jobs, domain.JobOpen)
	d.OpenJobs = make([]*JobSummary, len(open))
	g, gctx = errgroup.WithContext(ctx)
	g.SetLimit(4)
	for i, j := range open {
		g.Go(func() error {
			n, err := s.applications.CountByJob(gctx, j.ID, domain.ApplicationPending)
			if err != nil {
				return err
			}
			d.OpenJobs[i] = &JobSummary{Job: j, Applicants: n}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return d, nil
}
