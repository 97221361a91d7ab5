package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/alexanderramin/fleksjobb/internal/db"
	"github.com/alexanderramin/fleksjobb/internal/domain"
)

// SQLiteWorkLogRepo implements WorkLogRepo using a SQLite database.
type SQLiteWorkLogRepo struct {
	db db.DBTX
}

func NewSQLiteWorkLogRepo(db db.DBTX) *SQLiteWorkLogRepo {
	return &SQLiteWorkLogRepo{db: db}
}

func (r *SQLiteWorkLogRepo) Create(ctx context.Context, w *domain.WorkLog) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO work_logs (id, job_id, student_id, hours, note, logged_at) VALUES (?, ?, ?, ?, ?, ?)`,
		w.ID, w.JobID, w.StudentID, w.Hours, w.Note, formatTime(w.LoggedAt))
	if err != nil {
		return fmt.Errorf("inserting work log: %w", err)
	}
	return nil
}

func (r *SQLiteWorkLogRepo) ListByJob(ctx context.Context, jobID string) ([]*domain.WorkLog, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, job_id, student_id, hours, note, logged_at FROM work_logs
		WHERE job_id = ? ORDER BY logged_at DESC, id`, jobID)
	if err != nil {
		return nil, fmt.Errorf("listing work logs: %w", err)
	}
	return collect(rows, "work logs", func(s scanner) (*domain.WorkLog, error) {
		var w domain.WorkLog
		var loggedAt string
		if err := s.Scan(&w.ID, &w.JobID, &w.StudentID, &w.Hours, &w.Note, &loggedAt); err != nil {
			return nil, notFound(err, "work log")
		}
		var err error
		if w.LoggedAt, err = parseTime(loggedAt, "work log logged_at"); err != nil {
			return nil, err
		}
		return &w, nil
	})
}

// SQLitePaymentRepo implements PaymentRepo using a SQLite database.
type SQLitePaymentRepo struct {
	db db.DBTX
}

func NewSQLitePaymentRepo(db db.DBTX) *SQLitePaymentRepo {
	return &SQLitePaymentRepo{db: db}
}

const paymentColumns = `id, job_id, student_id, employer_id, amount_nok, status, created_at, paid_at`

func (r *SQLitePaymentRepo) Create(ctx context.Context, p *domain.Payment) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO payments (`+paymentColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		p.ID, p.JobID, p.StudentID, p.EmployerID, p.AmountNOK, string(p.Status),
		formatTime(p.CreatedAt), nullableTimeToString(p.PaidAt, time.RFC3339))
	if isUniqueViolation(err) {
		return fmt.Errorf("payment for job %s: %w", p.JobID, ErrConflict)
	}
	if err != nil {
		return fmt.Errorf("inserting payment: %w", err)
	}
	return nil
}

func (r *SQLitePaymentRepo) GetByID(ctx context.Context, id string) (*domain.Payment, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+paymentColumns+` FROM payments WHERE id = ?`, id)
	return scanPayment(row)
}

func (r *SQLitePaymentRepo) GetByJob(ctx context.Context, jobID string) (*domain.Payment, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+paymentColumns+` FROM payments WHERE job_id = ?`, jobID)
	return scanPayment(row)
}

func (r *SQLitePaymentRepo) ListByStudent(ctx context.Context, studentID string) ([]*domain.Payment, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+paymentColumns+` FROM payments WHERE student_id = ? ORDER BY created_at DESC, id`, studentID)
	if err != nil {
		return nil, fmt.Errorf("listing payments by student: %w", err)
	}
	return collect(rows, "payments", scanPayment)
}

func (r *SQLitePaymentRepo) ListByEmployer(ctx context.Context, employerID string) ([]*domain.Payment, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+paymentColumns+` FROM payments WHERE employer_id = ? ORDER BY created_at DESC, id`, employerID)
	if err != nil {
		return nil, fmt.Errorf("listing payments by employer: %w", err)
	}
	return collect(rows, "payments", scanPayment)
}

func (r *SQLitePaymentRepo) Update(ctx context.Context, p *domain.Payment) error {
	res, err := r.db.ExecContext(ctx, `UPDATE payments SET status = ?, paid_at = ? WHERE id = ?`,
		string(p.Status), nullableTimeToString(p.PaidAt, time.RFC3339), p.ID)
	if err != nil {
		return fmt.Errorf("updating payment: %w", err)
	}
	return requireAffected(res, "payment")
}

func scanPayment(s scanner) (*domain.Payment, error) {
	var p domain.Payment
	var status, createdAt string
	var paidAt sql.NullString
	err := s.Scan(&p.ID, &p.JobID, &p.StudentID, &p.EmployerID, &p.AmountNOK, &status, &createdAt, &paidAt)
	if err != nil {
		return nil, notFound(err, "payment")
	}
	p.Status = domain.PaymentStatus(status)
	p.PaidAt = parseNullableTime(paidAt, time.RFC3339)
	if p.CreatedAt, err = parseTime(createdAt, "payment created_at"); err != nil {
		return nil, err
	}
	return &p, nil
}
