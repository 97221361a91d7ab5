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

type teamService struct {
	team     repository.TeamRepo
	observer UseCaseObserver
}

func NewTeamService(team repository.TeamRepo, observers ...UseCaseObserver) TeamService {
	return &teamService{team: team, observer: useCaseObserverOrNoop(observers)}
}

func requireCompany(sess domain.Session) error {
	if err := requireEmployer(sess); err != nil {
		return err
	}
	if sess.CompanyID == "" {
		return fmt.Errorf("%w: your account is not linked to a company", ErrForbidden)
	}
	return nil
}

func (s *teamService) Invite(ctx context.Context, sess domain.Session, req contract.TeamInviteRequest) (m *domain.TeamMember, err error) {
	done := startUseCase(ctx, s.observer, "team.invite", map[string]any{"role": string(req.Role)})
	defer func() { done(err) }()

	if err := requireCompany(sess); err != nil {
		return nil, err
	}
	m = &domain.TeamMember{
		ID:        uuid.New().String(),
		CompanyID: sess.CompanyID,
		Name:      req.Name,
		Email:     req.Email,
		Role:      req.Role,
		InvitedAt: now(),
	}
	if err := s.team.Create(ctx, m); err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return nil, form.NewValidationError(contract.FieldEmail, "This person is already on the team")
		}
		return nil, err
	}
	return m, nil
}

func (s *teamService) List(ctx context.Context, sess domain.Session) ([]*domain.TeamMember, error) {
	if err := requireCompany(sess); err != nil {
		return nil, err
	}
	return s.team.ListByCompany(ctx, sess.CompanyID)
}

func (s *teamService) Remove(ctx context.Context, sess domain.Session, memberID string) (err error) {
	done := startUseCase(ctx, s.observer, "team.remove", map[string]any{"member_id": memberID})
	defer func() { done(err) }()

	if err := requireCompany(sess); err != nil {
		return err
	}
	m, err := s.team.GetByID(ctx, memberID)
	if err != nil {
		return err
	}
	if m.CompanyID != sess.CompanyID {
		return fmt.Errorf("%w: %s is on another company's team", ErrForbidden, m.Name)
	}
	return s.team.Delete(ctx, m.ID)
}

type paymentService struct {
	payments repository.PaymentRepo
	observer UseCaseObserver
}

func NewPaymentService(payments repository.PaymentRepo, observers ...UseCaseObserver) PaymentService {
	return &paymentService{payments: payments, observer: useCaseObserverOrNoop(observers)}
}

// ListMine lists payments owed to a student or owed by an employer.
func (s *paymentService) ListMine(ctx context.Context, sess domain.Session) ([]*domain.Payment, error) {
	switch {
	case sess.IsStudent():
		return s.payments.ListByStudent(ctx, sess.UserID)
	case sess.IsEmployer():
		return s.payments.ListByEmployer(ctx, sess.UserID)
	}
	return nil, requireAuth(sess)
}

// MarkPaid settles a payment. Only the paying employer may do it.
func (s *paymentService) MarkPaid(ctx context.Context, sess domain.Session, paymentID string) (p *domain.Payment, err error) {
	done := startUseCase(ctx, s.observer, "payment.mark_paid", map[string]any{"payment_id": paymentID})
	defer func() { done(err) }()

	if err := requireEmployer(sess); err != nil {
		return nil, err
	}
	p, err = s.payments.GetByID(ctx, paymentID)
	if err != nil {
		return nil, err
	}
	if p.EmployerID != sess.UserID {
		return nil, fmt.Errorf("%w: payment belongs to another employer", ErrForbidden)
	}
	p.MarkPaid(now())
	if err := s.payments.Update(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}
