package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/fleksjobb/internal/db"
	"github.com/alexanderramin/fleksjobb/internal/domain"
)

// SQLiteJobRepo implements JobRepo using a SQLite database.
type SQLiteJobRepo struct {
	db db.DBTX
}

func NewSQLiteJobRepo(db db.DBTX) *SQLiteJobRepo {
	return &SQLiteJobRepo{db: db}
}

const jobColumns = `id, employer_id, company_id, title, description, category, location, remote, skills,
	hourly_rate, estimated_hours, hours_logged, deadline, status, assigned_student_id,
	completed_at, cancelled_at, created_at, updated_at`

func (r *SQLiteJobRepo) Create(ctx context.Context, j *domain.Job) error {
	query := `INSERT INTO jobs (` + jobColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		j.ID, j.EmployerID, nullableString(j.CompanyID), j.Title, j.Description, j.Category,
		j.Location, boolToInt(j.Remote), joinSkills(j.Skills),
		j.HourlyRate, j.EstimatedHours, j.HoursLogged, j.Deadline.Format(dateLayout),
		string(j.Status), nullableString(j.AssignedStudentID),
		nullableTimeToString(j.CompletedAt, time.RFC3339), nullableTimeToString(j.CancelledAt, time.RFC3339),
		formatTime(j.CreatedAt), formatTime(j.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("inserting job: %w", err)
	}
	return nil
}

func (r *SQLiteJobRepo) GetByID(ctx context.Context, id string) (*domain.Job, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+jobColumns+` FROM jobs WHERE id = ?`, id)
	return scanJob(row)
}

// List returns jobs matching f, newest first.
func (r *SQLiteJobRepo) List(ctx context.Context, f JobFilter) ([]*domain.Job, error) {
	var where []string
	var args []any
	if f.Status != "" {
		where = append(where, "status = ?")
		args = append(args, string(f.Status))
	}
	if f.Category != "" {
		where = append(where, "category = ?")
		args = append(args, f.Category)
	}
	if f.RemoteOnly {
		where = append(where, "remote = 1")
	}
	if q := strings.TrimSpace(f.Query); q != "" {
		where = append(where, "(title LIKE ? OR description LIKE ? OR skills LIKE ?)")
		like := "%" + q + "%"
		args = append(args, like, like, like)
	}

	query := `SELECT ` + jobColumns + ` FROM jobs`
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY created_at DESC, id"
	if f.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, f.Limit)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing jobs: %w", err)
	}
	return collect(rows, "jobs", scanJob)
}

func (r *SQLiteJobRepo) ListByEmployer(ctx context.Context, employerID string) ([]*domain.Job, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+jobColumns+` FROM jobs WHERE employer_id = ? ORDER BY created_at DESC, id`, employerID)
	if err != nil {
		return nil, fmt.Errorf("listing jobs by employer: %w", err)
	}
	return collect(rows, "jobs", scanJob)
}

func (r *SQLiteJobRepo) ListByStudent(ctx context.Context, studentID string) ([]*domain.Job, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+jobColumns+` FROM jobs WHERE assigned_student_id = ? ORDER BY deadline, id`, studentID)
	if err != nil {
		return nil, fmt.Errorf("listing jobs by student: %w", err)
	}
	return collect(rows, "jobs", scanJob)
}

func (r *SQLiteJobRepo) Update(ctx context.Context, j *domain.Job) error {
	query := `UPDATE jobs SET title = ?, description = ?, category = ?, location = ?, remote = ?, skills = ?,
		hourly_rate = ?, estimated_hours = ?, hours_logged = ?, deadline = ?, status = ?,
		assigned_student_id = ?, completed_at = ?, cancelled_at = ?, updated_at = ?
		WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query,
		j.Title, j.Description, j.Category, j.Location, boolToInt(j.Remote), joinSkills(j.Skills),
		j.HourlyRate, j.EstimatedHours, j.HoursLogged, j.Deadline.Format(dateLayout), string(j.Status),
		nullableString(j.AssignedStudentID),
		nullableTimeToString(j.CompletedAt, time.RFC3339), nullableTimeToString(j.CancelledAt, time.RFC3339),
		formatTime(j.UpdatedAt),
		j.ID,
	)
	if err != nil {
		return fmt.Errorf("updating job: %w", err)
	}
	return requireAffected(res, "job")
}

func (r *SQLiteJobRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM jobs WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting job: %w", err)
	}
	return requireAffected(res, "job")
}

func scanJob(s scanner) (*domain.Job, error) {
	var j domain.Job
	var companyID, studentID, completedAt, cancelledAt sql.NullString
	var remote int
	var skills, deadline, status, createdAt, updatedAt string
	err := s.Scan(&j.ID, &j.EmployerID, &companyID, &j.Title, &j.Description, &j.Category,
		&j.Location, &remote, &skills, &j.HourlyRate, &j.EstimatedHours, &j.HoursLogged,
		&deadline, &status, &studentID, &completedAt, &cancelledAt, &createdAt, &updatedAt)
	if err != nil {
		return nil, notFound(err, "job")
	}
	j.CompanyID = companyID.String
	j.AssignedStudentID = studentID.String
	j.Remote = intToBool(remote)
	j.Skills = splitSkills(skills)
	j.Status = domain.JobStatus(status)
	j.CompletedAt = parseNullableTime(completedAt, time.RFC3339)
	j.CancelledAt = parseNullableTime(cancelledAt, time.RFC3339)

	if j.Deadline, err = time.Parse(dateLayout, deadline); err != nil {
		return nil, fmt.Errorf("parsing job deadline %q: %w", deadline, err)
	}
	if j.CreatedAt, err = parseTime(createdAt, "job created_at"); err != nil {
		return nil, err
	}
	if j.UpdatedAt, err = parseTime(updatedAt, "job updated_at"); err != nil {
		return nil, err
	}
	return &j, nil
}
