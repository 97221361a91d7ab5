package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/alexanderramin/fleksjobb/internal/db"
	"github.com/alexanderramin/fleksjobb/internal/domain"
)

// SQLiteChangeRequestRepo implements ChangeRequestRepo using a SQLite database.
type SQLiteChangeRequestRepo struct {
	db db.DBTX
}

func NewSQLiteChangeRequestRepo(db db.DBTX) *SQLiteChangeRequestRepo {
	return &SQLiteChangeRequestRepo{db: db}
}

const changeRequestColumns = `id, job_id, requested_by, kind, proposed_value, reason, status, created_at, resolved_at`

func (r *SQLiteChangeRequestRepo) Create(ctx context.Context, c *domain.ChangeRequest) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO change_requests (`+changeRequestColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		c.ID, c.JobID, c.RequestedBy, string(c.Kind), c.ProposedValue, c.Reason, string(c.Status),
		formatTime(c.CreatedAt), nullableTimeToString(c.ResolvedAt, time.RFC3339))
	if err != nil {
		return fmt.Errorf("inserting change request: %w", err)
	}
	return nil
}

func (r *SQLiteChangeRequestRepo) GetByID(ctx context.Context, id string) (*domain.ChangeRequest, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+changeRequestColumns+` FROM change_requests WHERE id = ?`, id)
	return scanChangeRequest(row)
}

func (r *SQLiteChangeRequestRepo) ListByJob(ctx context.Context, jobID string) ([]*domain.ChangeRequest, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+changeRequestColumns+` FROM change_requests WHERE job_id = ? ORDER BY created_at DESC, id`, jobID)
	if err != nil {
		return nil, fmt.Errorf("listing change requests: %w", err)
	}
	return collect(rows, "change requests", scanChangeRequest)
}

// ListPendingForEmployer returns pending requests on any of the employer's jobs.
func (r *SQLiteChangeRequestRepo) ListPendingForEmployer(ctx context.Context, employerID string) ([]*domain.ChangeRequest, error) {
	query := `SELECT c.id, c.job_id, c.requested_by, c.kind, c.proposed_value, c.reason, c.status, c.created_at, c.resolved_at
		FROM change_requests c
		JOIN jobs j ON j.id = c.job_id
		WHERE j.employer_id = ? AND c.status = 'pending'
		ORDER BY c.created_at, c.id`
	rows, err := r.db.QueryContext(ctx, query, employerID)
	if err != nil {
		return nil, fmt.Errorf("listing pending change requests: %w", err)
	}
	return collect(rows, "change requests", scanChangeRequest)
}

func (r *SQLiteChangeRequestRepo) Update(ctx context.Context, c *domain.ChangeRequest) error {
	res, err := r.db.ExecContext(ctx, `UPDATE change_requests SET status = ?, resolved_at = ? WHERE id = ?`,
		string(c.Status), nullableTimeToString(c.ResolvedAt, time.RFC3339), c.ID)
	if err != nil {
		return fmt.Errorf("updating change request: %w", err)
	}
	return requireAffected(res, "change request")
}

func scanChangeRequest(s scanner) (*domain.ChangeRequest, error) {
	var c domain.ChangeRequest
	var kind, status, createdAt string
	var resolvedAt sql.NullString
	err := s.Scan(&c.ID, &c.JobID, &c.RequestedBy, &kind, &c.ProposedValue, &c.Reason, &status, &createdAt, &resolvedAt)
	if err != nil {
		return nil, notFound(err, "change request")
	}
	c.Kind = domain.ChangeKind(kind)
	c.Status = domain.ChangeStatus(status)
	c.ResolvedAt = parseNullableTime(resolvedAt, time.RFC3339)
	if c.CreatedAt, err = parseTime(createdAt, "change request created_at"); err != nil {
		return nil, err
	}
	return &c, nil
}
