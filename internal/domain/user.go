package domain

import (
	"fmt"
	"regexp"
	"time"
)

var orgNumberPattern = regexp.MustCompile(`^[0-9]{9}$`)

type User struct {
	ID           string
	Role         Role
	Name         string
	Email        string
	Phone        string
	PasswordHash string

	// Student profile
	University     string
	StudyProgram   string
	GraduationYear int

	// Employer profile
	CompanyID    string
	ContactTitle string

	CreatedAt time.Time
	UpdatedAt time.Time
}

type Company struct {
	ID        string
	OrgNumber string
	Name      string
	Verified  bool
	CreatedAt time.Time
}

// ValidateOrgNumber checks that s is a Norwegian organisation number:
// exactly nine digits, no spaces.
func ValidateOrgNumber(s string) error {
	if s == "" {
		return fmt.Errorf("organisation number is required")
	}
	if !orgNumberPattern.MatchString(s) {
		return fmt.Errorf("organisation number %q must be exactly 9 digits", s)
	}
	return nil
}

// Session is the authenticated context handed explicitly to every view
// and service call. The zero value is an anonymous visitor.
type Session struct {
	UserID    string
	Role      Role
	Name      string
	CompanyID string
}

// NewSession builds a session for the given user.
func NewSession(u *User) Session {
	return Session{
		UserID:    u.ID,
		Role:      u.Role,
		Name:      u.Name,
		CompanyID: u.CompanyID,
	}
}

func (s Session) Authenticated() bool { return s.UserID != "" }
func (s Session) IsStudent() bool     { return s.Authenticated() && s.Role == RoleStudent }
func (s Session) IsEmployer() bool    { return s.Authenticated() && s.Role == RoleEmployer }
