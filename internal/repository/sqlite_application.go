package repository

import (
	"context"
	"fmt"

	"github.com/alexanderramin/fleksjobb/internal/db"
	"github.com/alexanderramin/fleksjobb/internal/domain"
)

// SQLiteApplicationRepo implements ApplicationRepo using a SQLite database.
type SQLiteApplicationRepo struct {
	db db.DBTX
}

func NewSQLiteApplicationRepo(db db.DBTX) *SQLiteApplicationRepo {
	return &SQLiteApplicationRepo{db: db}
}

const applicationColumns = `id, job_id, student_id, cover_letter, hours_per_week, status, created_at, updated_at`

func (r *SQLiteApplicationRepo) Create(ctx context.Context, a *domain.Application) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO applications (`+applicationColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		a.ID, a.JobID, a.StudentID, a.CoverLetter, a.HoursPerWeek, string(a.Status),
		formatTime(a.CreatedAt), formatTime(a.UpdatedAt))
	if isUniqueViolation(err) {
		return fmt.Errorf("application for job %s: %w", a.JobID, ErrConflict)
	}
	if err != nil {
		return fmt.Errorf("inserting application: %w", err)
	}
	return nil
}

func (r *SQLiteApplicationRepo) GetByID(ctx context.Context, id string) (*domain.Application, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+applicationColumns+` FROM applications WHERE id = ?`, id)
	return scanApplication(row)
}

func (r *SQLiteApplicationRepo) ListByJob(ctx context.Context, jobID string) ([]*domain.Application, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+applicationColumns+` FROM applications WHERE job_id = ? ORDER BY created_at, id`, jobID)
	if err != nil {
		return nil, fmt.Errorf("listing applications by job: %w", err)
	}
	return collect(rows, "applications", scanApplication)
}

func (r *SQLiteApplicationRepo) ListByStudent(ctx context.Context, studentID string) ([]*domain.Application, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+applicationColumns+` FROM applications WHERE student_id = ? ORDER BY created_at DESC, id`, studentID)
	if err != nil {
		return nil, fmt.Errorf("listing applications by student: %w", err)
	}
	return collect(rows, "applications", scanApplication)
}

func (r *SQLiteApplicationRepo) CountByJob(ctx context.Context, jobID string, status domain.ApplicationStatus) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM applications WHERE job_id = ? AND status = ?`, jobID, string(status)).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("counting applications: %w", err)
	}
	return n, nil
}

func (r *SQLiteApplicationRepo) Update(ctx context.Context, a *domain.Application) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE applications SET status = ?, cover_letter = ?, hours_per_week = ?, updated_at = ? WHERE id = ?`,
		string(a.Status), a.CoverLetter, a.HoursPerWeek, formatTime(a.UpdatedAt), a.ID)
	if err != nil {
		return fmt.Errorf("updating application: %w", err)
	}
	return requireAffected(res, "application")
}

func scanApplication(s scanner) (*domain.Application, error) {
	var a domain.Application
	var status, createdAt, updatedAt string
	err := s.Scan(&a.ID, &a.JobID, &a.StudentID, &a.CoverLetter, &a.HoursPerWeek, &status, &createdAt, &updatedAt)
	if err != nil {
		return nil, notFound(err, "application")
	}
	a.Status = domain.ApplicationStatus(status)
	if a.CreatedAt, err = parseTime(createdAt, "application created_at"); err != nil {
		return nil, err
	}
	if a.UpdatedAt, err = parseTime(updatedAt, "application updated_at"); err != nil {
		return nil, err
	}
	return &a, nil
}
