package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/alexanderramin/fleksjobb/internal/contract"
	"github.com/alexanderramin/fleksjobb/internal/domain"
	"github.com/alexanderramin/fleksjobb/internal/form"
	"github.com/alexanderramin/fleksjobb/internal/repository"
	"github.com/google/uuid"
)

type reportService struct {
	reports  repository.ReportRepo
	jobs     repository.JobRepo
	observer UseCaseObserver
}

func NewReportService(reports repository.ReportRepo, jobs repository.JobRepo, observers ...UseCaseObserver) ReportService {
	return &reportService{reports: reports, jobs: jobs, observer: useCaseObserverOrNoop(observers)}
}

// Submit files a report. A job reference, when given, must name an
// existing job.
func (s *reportService) Submit(ctx context.Context, sess domain.Session, req contract.ReportRequest) (r *domain.Report, err error) {
	done := startUseCase(ctx, s.observer, "report.submit", map[string]any{"category": string(req.Category)})
	defer func() { done(err) }()

	if err := requireAuth(sess); err != nil {
		return nil, err
	}
	r = &domain.Report{
		ID:          uuid.New().String(),
		ReporterID:  sess.UserID,
		Category:    req.Category,
		Subject:     req.Subject,
		Description: req.Description,
		CreatedAt:   now(),
	}
	if req.JobID != "" {
		if _, err := s.jobs.GetByID(ctx, req.JobID); err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return nil, form.NewValidationError(contract.FieldJobID, "No job with this reference")
			}
			return nil, err
		}
		id := req.JobID
		r.JobID = &id
	}
	if err := s.reports.Create(ctx, r); err != nil {
		return nil, err
	}
	return r, nil
}

func (s *reportService) ListMine(ctx context.Context, sess domain.Session) ([]*domain.Report, error) {
	if err := requireAuth(sess); err != nil {
		return nil, err
	}
	return s.reports.ListByReporter(ctx, sess.UserID)
}

type reviewService struct {
	reviews  repository.ReviewRepo
	jobs     repository.JobRepo
	observer UseCaseObserver
}

func NewReviewService(reviews repository.ReviewRepo, jobs repository.JobRepo, observers ...UseCaseObserver) ReviewService {
	return &reviewService{reviews: reviews, jobs: jobs, observer: useCaseObserverOrNoop(observers)}
}

// Submit reviews the other party of a completed job. Each participant
// may review a job once.
func (s *reviewService) Submit(ctx context.Context, sess domain.Session, jobID string, req contract.ReviewRequest) (r *domain.Review, err error) {
	done := startUseCase(ctx, s.observer, "review.submit", map[string]any{"job_id": jobID, "rating": req.Rating})
	defer func() { done(err) }()

	j, err := participantJob(ctx, s.jobs, sess, jobID)
	if err != nil {
		return nil, err
	}
	if j.Status != domain.JobCompleted {
		return nil, invalidState(fmt.Errorf("job %q is %s, only completed jobs can be reviewed", j.Title, j.Status))
	}
	r = &domain.Review{
		ID:        uuid.New().String(),
		JobID:     j.ID,
		AuthorID:  sess.UserID,
		SubjectID: counterpart(j, sess.UserID),
		Rating:    req.Rating,
		Comment:   req.Comment,
		CreatedAt: now(),
	}
	if err := s.reviews.Create(ctx, r); err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return nil, invalidState(fmt.Errorf("you have already reviewed %q", j.Title))
		}
		return nil, err
	}
	return r, nil
}

func (s *reviewService) ListForUser(ctx context.Context, userID string) (*ReviewSummary, error) {
	reviews, err := s.reviews.ListBySubject(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &ReviewSummary{Reviews: reviews, Average: domain.AverageRating(reviews)}, nil
}
