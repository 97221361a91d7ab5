package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/fleksjobb/internal/contract"
	"github.com/alexanderramin/fleksjobb/internal/db"
	"github.com/alexanderramin/fleksjobb/internal/domain"
	"github.com/alexanderramin/fleksjobb/internal/form"
	"github.com/alexanderramin/fleksjobb/internal/orgregistry"
	"github.com/alexanderramin/fleksjobb/internal/repository"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type accountService struct {
	users     repository.UserRepo
	companies repository.CompanyRepo
	orgs      OrgVerifier
	uow       db.UnitOfWork
	observer  UseCaseObserver
	cost      int
}

func NewAccountService(
	users repository.UserRepo,
	companies repository.CompanyRepo,
	orgs OrgVerifier,
	uow db.UnitOfWork,
	observers ...UseCaseObserver,
) AccountService {
	return &accountService{
		users:     users,
		companies: companies,
		orgs:      orgs,
		uow:       uow,
		observer:  useCaseObserverOrNoop(observers),
		cost:      bcrypt.DefaultCost,
	}
}

func (s *accountService) Register(ctx context.Context, req contract.RegisterRequest) (sess domain.Session, err error) {
	done := startUseCase(ctx, s.observer, "account.register", map[string]any{"role": string(req.Role)})
	defer func() { done(err) }()

	if req.Role != domain.RoleStudent && req.Role != domain.RoleEmployer {
		return domain.Session{}, form.NewValidationError(contract.FieldRole, "Choose student or employer")
	}
	if _, err := s.users.GetByEmail(ctx, req.Email); err == nil {
		return domain.Session{}, form.NewValidationError(contract.FieldEmail, "An account with this email already exists")
	} else if !errors.Is(err, repository.ErrNotFound) {
		return domain.Session{}, err
	}

	var org orgregistry.Organisation
	if req.Role == domain.RoleEmployer {
		org, err = s.VerifyOrg(ctx, req.OrgNumber)
		if err != nil {
			return domain.Session{}, err
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.cost)
	if errors.Is(err, bcrypt.ErrPasswordTooLong) {
		return domain.Session{}, form.NewValidationError(contract.FieldPassword, "Password is too long (at most 72 bytes)")
	}
	if err != nil {
		return domain.Session{}, fmt.Errorf("hashing password: %w", err)
	}

	ts := now()
	u := &domain.User{
		ID:           uuid.New().String(),
		Role:         req.Role,
		Name:         req.Name,
		Email:        req.Email,
		Phone:        req.Phone,
		PasswordHash: string(hash),
		CreatedAt:    ts,
		UpdatedAt:    ts,
	}
	switch req.Role {
	case domain.RoleStudent:
		u.University = req.University
		u.StudyProgram = req.StudyProgram
		u.GraduationYear = req.GraduationYear
	case domain.RoleEmployer:
		u.ContactTitle = req.ContactTitle
	}

	return db.Within(ctx, s.uow, func(ctx context.Context, tx db.DBTX) (domain.Session, error) {
		if req.Role == domain.RoleEmployer {
			company, err := companyFor(ctx, repository.NewSQLiteCompanyRepo(tx), org, ts)
			if err != nil {
				return domain.Session{}, err
			}
			u.CompanyID = company.ID
		}
		err := repository.NewSQLiteUserRepo(tx).Create(ctx, u)
		if errors.Is(err, repository.ErrConflict) {
			return domain.Session{}, form.NewValidationError(contract.FieldEmail, "An account with this email already exists")
		}
		if err != nil {
			return domain.Session{}, err
		}
		return domain.NewSession(u), nil
	})
}

// companyFor returns the company registered under org, creating it on
// first use. The stored name always comes from the registry.
func companyFor(ctx context.Context, companies repository.CompanyRepo, org orgregistry.Organisation, ts time.Time) (*domain.Company, error) {
	c, err := companies.GetByOrgNumber(ctx, org.OrgNumber)
	if err == nil {
		return c, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}
	c = &domain.Company{
		ID:        uuid.New().String(),
		OrgNumber: org.OrgNumber,
		Name:      org.Name,
		Verified:  true,
		CreatedAt: ts,
	}
	if err := companies.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// VerifyOrg looks an organisation number up in the registry. Unknown
// numbers come back as a validation error on the org number field.
func (s *accountService) VerifyOrg(ctx context.Context, orgNumber string) (orgregistry.Organisation, error) {
	if err := domain.ValidateOrgNumber(orgNumber); err != nil {
		return orgregistry.Organisation{}, form.NewValidationError(contract.FieldOrgNumber, "Organisation number must be 9 digits")
	}
	org, err := s.orgs.Lookup(ctx, orgNumber)
	if errors.Is(err, orgregistry.ErrOrgNotFound) {
		return orgregistry.Organisation{}, form.NewValidationError(contract.FieldOrgNumber,
			"Organisation number not found in the registry")
	}
	if err != nil {
		return orgregistry.Organisation{}, fmt.Errorf("verifying organisation %s: %w", orgNumber, err)
	}
	return org, nil
}

func (s *accountService) Login(ctx context.Context, req contract.LoginRequest) (sess domain.Session, err error) {
	done := startUseCase(ctx, s.observer, "account.login", nil)
	defer func() { done(err) }()

	u, err := s.users.GetByEmail(ctx, req.Email)
	if errors.Is(err, repository.ErrNotFound) {
		return domain.Session{}, ErrInvalidCredentials
	}
	if err != nil {
		return domain.Session{}, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.Password)); err != nil {
		return domain.Session{}, ErrInvalidCredentials
	}
	return domain.NewSession(u), nil
}

// SessionByEmail resolves a session without a password. Subcommands use
// it for the account named by FLEKSJOBB_USER.
func (s *accountService) SessionByEmail(ctx context.Context, email string) (domain.Session, error) {
	u, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return domain.Session{}, fmt.Errorf("user %s: %w", email, err)
	}
	return domain.NewSession(u), nil
}

func (s *accountService) GetUser(ctx context.Context, id string) (*domain.User, error) {
	return s.users.GetByID(ctx, id)
}
