package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/alexanderramin/fleksjobb/internal/db"
	"github.com/alexanderramin/fleksjobb/internal/domain"
)

// SQLiteUserRepo implements UserRepo using a SQLite database.
type SQLiteUserRepo struct {
	db db.DBTX
}

func NewSQLiteUserRepo(db db.DBTX) *SQLiteUserRepo {
	return &SQLiteUserRepo{db: db}
}

const userColumns = `id, role, name, email, phone, password_hash, university, study_program,
	graduation_year, company_id, contact_title, created_at, updated_at`

func (r *SQLiteUserRepo) Create(ctx context.Context, u *domain.User) error {
	query := `INSERT INTO users (` + userColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		u.ID, string(u.Role), u.Name, strings.TrimSpace(u.Email), u.Phone, u.PasswordHash,
		u.University, u.StudyProgram, u.GraduationYear,
		nullableString(u.CompanyID), u.ContactTitle,
		formatTime(u.CreatedAt), formatTime(u.UpdatedAt),
	)
	if isUniqueViolation(err) {
		return fmt.Errorf("user with email %s: %w", u.Email, ErrConflict)
	}
	if err != nil {
		return fmt.Errorf("inserting user: %w", err)
	}
	return nil
}

func (r *SQLiteUserRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE id = ?`, id)
	return scanUser(row)
}

// GetByEmail matches case-insensitively.
func (r *SQLiteUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE email = ? COLLATE NOCASE`,
		strings.TrimSpace(email))
	return scanUser(row)
}

func (r *SQLiteUserRepo) Update(ctx context.Context, u *domain.User) error {
	query := `UPDATE users SET name = ?, phone = ?, password_hash = ?, university = ?, study_program = ?,
		graduation_year = ?, company_id = ?, contact_title = ?, updated_at = ?
		WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query,
		u.Name, u.Phone, u.PasswordHash, u.University, u.StudyProgram,
		u.GraduationYear, nullableString(u.CompanyID), u.ContactTitle, formatTime(u.UpdatedAt),
		u.ID,
	)
	if err != nil {
		return fmt.Errorf("updating user: %w", err)
	}
	return requireAffected(res, "user")
}

func scanUser(s scanner) (*domain.User, error) {
	var u domain.User
	var role, createdAt, updatedAt string
	var companyID sql.NullString
	err := s.Scan(&u.ID, &role, &u.Name, &u.Email, &u.Phone, &u.PasswordHash,
		&u.University, &u.StudyProgram, &u.GraduationYear, &companyID, &u.ContactTitle,
		&createdAt, &updatedAt)
	if err != nil {
		return nil, notFound(err, "user")
	}
	u.Role = domain.Role(role)
	u.CompanyID = companyID.String
	if u.CreatedAt, err = parseTime(createdAt, "user created_at"); err != nil {
		return nil, err
	}
	if u.UpdatedAt, err = parseTime(updatedAt, "user updated_at"); err != nil {
		return nil, err
	}
	return &u, nil
}

// requireAffected reports ErrNotFound when an UPDATE or DELETE matched nothing.
func requireAffected(res sql.Result, what string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking %s rows affected: %w", what, err)
	}
	if n == 0 {
		return fmt.Errorf("%s: %w", what, ErrNotFound)
	}
	return nil
}

// SQLiteCompanyRepo implements CompanyRepo using a SQLite database.
type SQLiteCompanyRepo struct {
	db db.DBTX
}

func NewSQLiteCompanyRepo(db db.DBTX) *SQLiteCompanyRepo {
	return &SQLiteCompanyRepo{db: db}
}

func (r *SQLiteCompanyRepo) Create(ctx context.Context, c *domain.Company) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO companies (id, org_number, name, verified, created_at) VALUES (?, ?, ?, ?, ?)`,
		c.ID, c.OrgNumber, c.Name, boolToInt(c.Verified), formatTime(c.CreatedAt))
	if isUniqueViolation(err) {
		return fmt.Errorf("company %s: %w", c.OrgNumber, ErrConflict)
	}
	if err != nil {
		return fmt.Errorf("inserting company: %w", err)
	}
	return nil
}

func (r *SQLiteCompanyRepo) GetByID(ctx context.Context, id string) (*domain.Company, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, org_number, name, verified, created_at FROM companies WHERE id = ?`, id)
	return scanCompany(row)
}

func (r *SQLiteCompanyRepo) GetByOrgNumber(ctx context.Context, orgNumber string) (*domain.Company, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, org_number, name, verified, created_at FROM companies WHERE org_number = ?`, orgNumber)
	return scanCompany(row)
}

func (r *SQLiteCompanyRepo) Update(ctx context.Context, c *domain.Company) error {
	res, err := r.db.ExecContext(ctx, `UPDATE companies SET name = ?, verified = ? WHERE id = ?`,
		c.Name, boolToInt(c.Verified), c.ID)
	if err != nil {
		return fmt.Errorf("updating company: %w", err)
	}
	return requireAffected(res, "company")
}

func scanCompany(s scanner) (*domain.Company, error) {
	var c domain.Company
	var verified int
	var createdAt string
	if err := s.Scan(&c.ID, &c.OrgNumber, &c.Name, &verified, &createdAt); err != nil {
		return nil, notFound(err, "company")
	}
	c.Verified = intToBool(verified)
	var err error
	if c.CreatedAt, err = parseTime(createdAt, "company created_at"); err != nil {
		return nil, err
	}
	return &c, nil
}
