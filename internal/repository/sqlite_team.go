package repository

import (
	"context"
	"fmt"

	"github.com/alexanderramin/fleksjobb/internal/db"
	"github.com/alexanderramin/fleksjobb/internal/domain"
)

// SQLiteTeamRepo implements TeamRepo using a SQLite database.
type SQLiteTeamRepo struct {
	db db.DBTX
}

func NewSQLiteTeamRepo(db db.DBTX) *SQLiteTeamRepo {
	return &SQLiteTeamRepo{db: db}
}

func (r *SQLiteTeamRepo) Create(ctx context.Context, m *domain.TeamMember) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO team_members (id, company_id, name, email, role, invited_at) VALUES (?, ?, ?, ?, ?, ?)`,
		m.ID, m.CompanyID, m.Name, m.Email, string(m.Role), formatTime(m.InvitedAt))
	if isUniqueViolation(err) {
		return fmt.Errorf("team member %s: %w", m.Email, ErrConflict)
	}
	if err != nil {
		return fmt.Errorf("inserting team member: %w", err)
	}
	return nil
}

func (r *SQLiteTeamRepo) GetByID(ctx context.Context, id string) (*domain.TeamMember, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, company_id, name, email, role, invited_at FROM team_members WHERE id = ?`, id)
	return scanTeamMember(row)
}

func (r *SQLiteTeamRepo) ListByCompany(ctx context.Context, companyID string) ([]*domain.TeamMember, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, company_id, name, email, role, invited_at FROM team_members
		WHERE company_id = ? ORDER BY invited_at, id`, companyID)
	if err != nil {
		return nil, fmt.Errorf("listing team members: %w", err)
	}
	return collect(rows, "team members", scanTeamMember)
}

func (r *SQLiteTeamRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM team_members WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting team member: %w", err)
	}
	return requireAffected(res, "team member")
}

func scanTeamMember(s scanner) (*domain.TeamMember, error) {
	var m domain.TeamMember
	var role, invitedAt string
	if err := s.Scan(&m.ID, &m.CompanyID, &m.Name, &m.Email, &role, &invitedAt); err != nil {
		return nil, notFound(err, "team member")
	}
	m.Role = domain.TeamRole(role)
	var err error
	if m.InvitedAt, err = parseTime(invitedAt, "team member invited_at"); err != nil {
		return nil, err
	}
	return &m, nil
}
