package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/alexanderramin/fleksjobb/internal/contract"
	"github.com/alexanderramin/fleksjobb/internal/domain"
	"github.com/alexanderramin/fleksjobb/internal/form"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func studentRegistration(email string) contract.RegisterRequest {
	return contract.RegisterRequest{
		Role:           domain.RoleStudent,
		Name:           "Kari Nordmann",
		Email:          email,
		Phone:          "+47 12345678",
		Password:       "correct horse",
		University:     "NTNU",
		StudyProgram:   "Informatics",
		GraduationYear: 2027,
	}
}

func employerRegistration(email, orgNumber string) contract.RegisterRequest {
	return contract.RegisterRequest{
		Role:         domain.RoleEmployer,
		Name:         "Ola Hansen",
		Email:        email,
		Phone:        "+47 98765432",
		Password:     "correct horse",
		OrgNumber:    orgNumber,
		CompanyName:  "typed by the user",
		ContactTitle: "CTO",
	}
}

func TestRegister_Student(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	sess, err := env.accounts.Register(ctx, studentRegistration("kari@example.no"))
	require.NoError(t, err)
	assert.True(t, sess.IsStudent())
	assert.Equal(t, "Kari Nordmann", sess.Name)

	u, err := env.accounts.GetUser(ctx, sess.UserID)
	require.NoError(t, err)
	assert.Equal(t, "NTNU", u.University)
	assert.NotEqual(t, "correct horse", u.PasswordHash)
	assert.Empty(t, u.CompanyID)

	assert.Equal(t, "account.register", env.obs.last().Name)
	assert.Equal(t, OutcomeOK, env.obs.last().Outcome)
}

func TestRegister_EmployerUsesRegistryName(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	sess, err := env.accounts.Register(ctx, employerRegistration("ola@example.no", "123456789"))
	require.NoError(t, err)
	require.True(t, sess.IsEmployer())
	require.NotEmpty(t, sess.CompanyID)

	c, err := env.repos.companies.GetByID(ctx, sess.CompanyID)
	require.NoError(t, err)
	assert.Equal(t, "Tech Solutions AS", c.Name)
	assert.True(t, c.Verified)

	// A colleague registering with the same org number joins the same company.
	second, err := env.accounts.Register(ctx, employerRegistration("kollega@example.no", "123456789"))
	require.NoError(t, err)
	assert.Equal(t, sess.CompanyID, second.CompanyID)
}

func TestRegister_UnknownOrgNumber(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.accounts.Register(context.Background(), employerRegistration("ola@example.no", "000000000"))
	require.Error(t, err)
	assert.ErrorIs(t, err, form.ErrValidationFailed)

	var verr *form.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Contains(t, verr.Fields, contract.FieldOrgNumber)

	_, err = env.repos.users.GetByEmail(context.Background(), "ola@example.no")
	assert.Error(t, err, "no user is stored on failure")
	assert.Equal(t, OutcomeRejected, env.obs.last().Outcome)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.accounts.Register(ctx, studentRegistration("kari@example.no"))
	require.NoError(t, err)

	_, err = env.accounts.Register(ctx, studentRegistration("KARI@example.no"))
	var verr *form.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Contains(t, verr.Fields, contract.FieldEmail)
}

func TestRegister_PasswordOverBcryptLimit(t *testing.T) {
	env := newTestEnv(t)

	req := studentRegistration("kari@example.no")
	req.Password = strings.Repeat("æ", 40)
	_, err := env.accounts.Register(context.Background(), req)
	require.Error(t, err)
	assert.ErrorIs(t, err, form.ErrValidationFailed)

	var verr *form.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "Password is too long (at most 72 bytes)", verr.Fields[contract.FieldPassword])
	assert.Equal(t, OutcomeRejected, env.obs.last().Outcome)
}

func TestVerifyOrg(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	org, err := env.accounts.VerifyOrg(ctx, "123456789")
	require.NoError(t, err)
	assert.Equal(t, "Tech Solutions AS", org.Name)

	_, err = env.accounts.VerifyOrg(ctx, "000000000")
	assert.ErrorIs(t, err, form.ErrValidationFailed)

	_, err = env.accounts.VerifyOrg(ctx, "12345")
	assert.ErrorIs(t, err, form.ErrValidationFailed)
}

func TestLogin(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	registered, err := env.accounts.Register(ctx, studentRegistration("kari@example.no"))
	require.NoError(t, err)

	sess, err := env.accounts.Login(ctx, contract.LoginRequest{Email: "kari@example.no", Password: "correct horse"})
	require.NoError(t, err)
	assert.Equal(t, registered, sess)

	_, err = env.accounts.Login(ctx, contract.LoginRequest{Email: "kari@example.no", Password: "wrong password"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = env.accounts.Login(ctx, contract.LoginRequest{Email: "nobody@example.no", Password: "correct horse"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestSessionByEmail(t *testing.T) {
	env := newTestEnv(t)
	stu := env.student(t, "Kari Nordmann")
	u, err := env.repos.users.GetByID(context.Background(), stu.UserID)
	require.NoError(t, err)

	sess, err := env.accounts.SessionByEmail(context.Background(), u.Email)
	require.NoError(t, err)
	assert.Equal(t, stu, sess)

	_, err = env.accounts.SessionByEmail(context.Background(), "ghost@example.no")
	assert.Error(t, err)
}
