package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/alexanderramin/fleksjobb/internal/db"
	"github.com/alexanderramin/fleksjobb/internal/domain"
)

// SQLiteReportRepo implements ReportRepo using a SQLite database.
type SQLiteReportRepo struct {
	db db.DBTX
}

func NewSQLiteReportRepo(db db.DBTX) *SQLiteReportRepo {
	return &SQLiteReportRepo{db: db}
}

func (r *SQLiteReportRepo) Create(ctx context.Context, rep *domain.Report) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO reports (id, reporter_id, category, subject, description, job_id, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		rep.ID, rep.ReporterID, string(rep.Category), rep.Subject, rep.Description,
		nullableStringPtr(rep.JobID), formatTime(rep.CreatedAt))
	if err != nil {
		return fmt.Errorf("inserting report: %w", err)
	}
	return nil
}

func (r *SQLiteReportRepo) ListByReporter(ctx context.Context, reporterID string) ([]*domain.Report, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, reporter_id, category, subject, description, job_id, created_at
		FROM reports WHERE reporter_id = ? ORDER BY created_at DESC, id`, reporterID)
	if err != nil {
		return nil, fmt.Errorf("listing reports: %w", err)
	}
	return collect(rows, "reports", scanReport)
}

func scanReport(s scanner) (*domain.Report, error) {
	var rep domain.Report
	var category, createdAt string
	var jobID sql.NullString
	err := s.Scan(&rep.ID, &rep.ReporterID, &category, &rep.Subject, &rep.Description, &jobID, &createdAt)
	if err != nil {
		return nil, notFound(err, "report")
	}
	rep.Category = domain.ReportCategory(category)
	if jobID.Valid {
		rep.JobID = &jobID.String
	}
	if rep.CreatedAt, err = parseTime(createdAt, "report created_at"); err != nil {
		return nil, err
	}
	return &rep, nil
}

// SQLiteReviewRepo implements ReviewRepo using a SQLite database.
type SQLiteReviewRepo struct {
	db db.DBTX
}

func NewSQLiteReviewRepo(db db.DBTX) *SQLiteReviewRepo {
	return &SQLiteReviewRepo{db: db}
}

const reviewColumns = `id, job_id, author_id, subject_id, rating, comment, created_at`

func (r *SQLiteReviewRepo) Create(ctx context.Context, rev *domain.Review) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO reviews (`+reviewColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		rev.ID, rev.JobID, rev.AuthorID, rev.SubjectID, rev.Rating, rev.Comment, formatTime(rev.CreatedAt))
	if isUniqueViolation(err) {
		return fmt.Errorf("review for job %s: %w", rev.JobID, ErrConflict)
	}
	if err != nil {
		return fmt.Errorf("inserting review: %w", err)
	}
	return nil
}

func (r *SQLiteReviewRepo) ListBySubject(ctx context.Context, subjectID string) ([]*domain.Review, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+reviewColumns+` FROM reviews WHERE subject_id = ? ORDER BY created_at DESC, id`, subjectID)
	if err != nil {
		return nil, fmt.Errorf("listing reviews by subject: %w", err)
	}
	return collect(rows, "reviews", scanReview)
}

func (r *SQLiteReviewRepo) ListByJob(ctx context.Context, jobID string) ([]*domain.Review, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+reviewColumns+` FROM reviews WHERE job_id = ? ORDER BY created_at, id`, jobID)
	if err != nil {
		return nil, fmt.Errorf("listing reviews by job: %w", err)
	}
	return collect(rows, "reviews", scanReview)
}

func scanReview(s scanner) (*domain.Review, error) {
	var rev domain.Review
	var createdAt string
	err := s.Scan(&rev.ID, &rev.JobID, &rev.AuthorID, &rev.SubjectID, &rev.Rating, &rev.Comment, &createdAt)
	if err != nil {
		return nil, notFound(err, "review")
	}
	if rev.CreatedAt, err = parseTime(createdAt, "review created_at"); err != nil {
		return nil, err
	}
	return &rev, nil
}
