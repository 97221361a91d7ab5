package cli

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/alexanderramin/fleksjobb/internal/domain"
	"github.com/alexanderramin/fleksjobb/internal/form"
	"github.com/alexanderramin/fleksjobb/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- Root command ---

func TestRootCmd_NonInteractiveShowsHelp(t *testing.T) {
	e := newTestEnv(t)

	out, err := executeCmd(t, e.app)

	require.NoError(t, err)
	assert.Contains(t, out, "fleksjobb connects students with employers")
	assert.Contains(t, out, "jobs")
	assert.Contains(t, out, "register")
}

func TestRootCmd_UnknownUser(t *testing.T) {
	e := newTestEnv(t)

	_, err := executeCmd(t, e.app, "report", "--as", "nobody@example.no", "--list")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "acting as nobody@example.no")
}

func TestRootCmd_DefaultUserFromConfig(t *testing.T) {
	e := newTestEnv(t)
	stu := e.student(t, "Kari Nordmann")
	e.app.Config.User = stu.Email

	_, err := executeCmd(t, e.app, "report", "--list")

	require.NoError(t, err)
}

// --- org verify ---

func TestOrgVerify_Known(t *testing.T) {
	e := newTestEnv(t)

	out, err := executeCmd(t, e.app, "org", "verify", "123456789")

	require.NoError(t, err)
	assert.Contains(t, out, "Tech Solutions AS")
	assert.Contains(t, out, "Oslo")
}

func TestOrgVerify_Unknown(t *testing.T) {
	e := newTestEnv(t)

	_, err := executeCmd(t, e.app, "org", "verify", "000000000")

	require.Error(t, err)
}

func TestOrgVerify_BadFormat(t *testing.T) {
	e := newTestEnv(t)

	_, err := executeCmd(t, e.app, "org", "verify", "12345")

	require.Error(t, err)
	assert.ErrorIs(t, err, form.ErrValidationFailed)
}

// --- register ---

func TestRegister_Student(t *testing.T) {
	e := newTestEnv(t)

	out, err := executeCmd(t, e.app, "register",
		"--role", "student",
		"--name", "Kari Nordmann",
		"--email", "kari@student.ntnu.no",
		"--phone", "+47 12345678",
		"--password", testPassword,
		"--university", "NTNU",
		"--study-program", "Informatics",
		"--graduation-year", "2027",
		"--accept-terms",
	)

	require.NoError(t, err)
	assert.Contains(t, out, "Account created")
	assert.Contains(t, out, "/student/dashboard")

	u, err := e.users.GetByEmail(context.Background(), "kari@student.ntnu.no")
	require.NoError(t, err)
	assert.Equal(t, domain.RoleStudent, u.Role)
	assert.Equal(t, "NTNU", u.University)
}

func TestRegister_EmployerVerifiesOrganisation(t *testing.T) {
	e := newTestEnv(t)

	out, err := executeCmd(t, e.app, "register",
		"--role", "employer",
		"--name", "Ola Hansen",
		"--email", "ola@techsolutions.no",
		"--phone", "+47 98765432",
		"--password", testPassword,
		"--org-number", "123456789",
		"--contact-title", "CTO",
		"--accept-terms",
	)

	require.NoError(t, err)
	assert.Contains(t, out, "/employer/dashboard")

	u, err := e.users.GetByEmail(context.Background(), "ola@techsolutions.no")
	require.NoError(t, err)
	c, err := e.companies.GetByID(context.Background(), u.CompanyID)
	require.NoError(t, err)
	assert.Equal(t, "Tech Solutions AS", c.Name)
}

func TestRegister_UnknownOrganisationIsRejected(t *testing.T) {
	e := newTestEnv(t)

	out, err := executeCmd(t, e.app, "register",
		"--role", "employer",
		"--name", "Ola Hansen",
		"--email", "ola@example.no",
		"--phone", "+47 98765432",
		"--password", testPassword,
		"--org-number", "000000000",
		"--contact-title", "CTO",
		"--accept-terms",
	)

	require.ErrorIs(t, err, form.ErrValidationFailed)
	assert.Contains(t, out, "Verify the organisation number before continuing")
	_, err = e.users.GetByEmail(context.Background(), "ola@example.no")
	assert.Error(t, err)
}

func TestRegister_MissingFieldsListed(t *testing.T) {
	e := newTestEnv(t)

	out, err := executeCmd(t, e.app, "register", "--role", "student", "--email", "kari@student.ntnu.no")

	require.ErrorIs(t, err, form.ErrValidationFailed)
	assert.Contains(t, out, "Please fix the highlighted fields")
	assert.Contains(t, out, "You must accept the terms of use")
}

// --- jobs ---

func TestJobsList_FiltersByCategory(t *testing.T) {
	e := newTestEnv(t)
	emp := e.employer(t, "Ola Hansen")
	e.job(t, emp, "Design a new logo", testutil.WithCategory("design"))
	e.job(t, emp, "Fix the payment service")

	out, err := executeCmd(t, e.app, "jobs", "list", "--category", "design")

	require.NoError(t, err)
	assert.Contains(t, out, "Design a new logo")
	assert.NotContains(t, out, "Fix the payment service")
}

func TestJobsList_Empty(t *testing.T) {
	e := newTestEnv(t)

	out, err := executeCmd(t, e.app, "jobs", "list")

	require.NoError(t, err)
	assert.Contains(t, out, "No jobs found.")
}

func TestJobsList_MineForEmployer(t *testing.T) {
	e := newTestEnv(t)
	emp := e.employer(t, "Ola Hansen")
	other := e.employer(t, "Silje Bakken")
	e.job(t, emp, "Build a booking API")
	e.job(t, other, "Clean up the data lake")

	out, err := executeCmd(t, e.app, "jobs", "list", "--mine", "--as", emp.Email)

	require.NoError(t, err)
	assert.Contains(t, out, "Build a booking API")
	assert.NotContains(t, out, "Clean up the data lake")
}

func TestJobsShow_ByPrefix(t *testing.T) {
	e := newTestEnv(t)
	emp := e.employer(t, "Ola Hansen")
	job := e.job(t, emp, "Build a booking API", testutil.WithRemote(true))

	out, err := executeCmd(t, e.app, "jobs", "show", job.ID[:8])

	require.NoError(t, err)
	assert.Contains(t, out, "Build a booking API")
	assert.Contains(t, out, "Ola Hansen")
	assert.Contains(t, out, "(remote)")
}

func TestJobsShow_NotFound(t *testing.T) {
	e := newTestEnv(t)

	_, err := executeCmd(t, e.app, "jobs", "show", "does-not-exist")

	require.Error(t, err)
}

func TestJobsPost(t *testing.T) {
	e := newTestEnv(t)
	emp := e.employer(t, "Ola Hansen")

	out, err := executeCmd(t, e.app, "jobs", "post", "--as", emp.Email,
		"--title", "Build a booking API",
		"--description", "Design and implement a small REST API for bookings.",
		"--category", "development",
		"--location", "Oslo",
		"--rate", "450",
		"--hours", "40",
		"--deadline", futureDate(45),
		"--skill", "go,postgres",
	)

	require.NoError(t, err)
	assert.Contains(t, out, "Job posted")
	assert.Contains(t, out, "Job ID: ")

	jobs, err := e.jobs.ListByEmployer(context.Background(), emp.ID)
	require.NoError(t, err)
	require.Len(t, jobs, 1)
	assert.Equal(t, []string{"go", "postgres"}, jobs[0].Skills)
	assert.Equal(t, 450, jobs[0].HourlyRate)
}

func TestJobsPost_StudentForbidden(t *testing.T) {
	e := newTestEnv(t)
	stu := e.student(t, "Kari Nordmann")

	_, err := executeCmd(t, e.app, "jobs", "post", "--as", stu.Email,
		"--title", "Build a booking API",
		"--description", "Design and implement a small REST API for bookings.",
		"--category", "development",
		"--location", "Oslo",
		"--rate", "450",
		"--hours", "40",
		"--deadline", futureDate(45),
		"--skill", "go",
	)

	require.Error(t, err)
}

func TestJobsPost_RequiresSession(t *testing.T) {
	e := newTestEnv(t)

	_, err := executeCmd(t, e.app, "jobs", "post", "--title", "Anything")

	require.ErrorIs(t, err, errSignInRequired)
}

func TestJobsApply(t *testing.T) {
	e := newTestEnv(t)
	emp := e.employer(t, "Ola Hansen")
	stu := e.student(t, "Kari Nordmann")
	job := e.job(t, emp, "Build a booking API")

	out, err := executeCmd(t, e.app, "jobs", "apply", job.ID, "--as", stu.Email,
		"--cover-letter", "I have built two REST APIs in Go during my studies.",
		"--hours-per-week", "15",
	)

	require.NoError(t, err)
	assert.Contains(t, out, "/jobs/"+job.ID)
	apps, err := e.apps.ListByJob(context.Background(), job.ID)
	require.NoError(t, err)
	require.Len(t, apps, 1)
	assert.Equal(t, 15, apps[0].HoursPerWeek)
}

// --- report ---

func TestReport_SubmitAndList(t *testing.T) {
	e := newTestEnv(t)
	stu := e.student(t, "Kari Nordmann")

	out, err := executeCmd(t, e.app, "report", "--as", stu.Email,
		"--category", "payment",
		"--subject", "Payment is late",
		"--description", "The employer has not paid for the job finished last month.",
	)
	require.NoError(t, err)
	assert.Contains(t, out, "Report submitted")

	out, err = executeCmd(t, e.app, "report", "--as", stu.Email, "--list")
	require.NoError(t, err)
	assert.Contains(t, out, "Payment is late")
	assert.Contains(t, out, "payment")
}

func TestReport_InvalidCategory(t *testing.T) {
	e := newTestEnv(t)
	stu := e.student(t, "Kari Nordmann")

	out, err := executeCmd(t, e.app, "report", "--as", stu.Email,
		"--category", "spam",
		"--subject", "Payment is late",
		"--description", "The employer has not paid for the job finished last month.",
	)

	require.ErrorIs(t, err, form.ErrValidationFailed)
	assert.Contains(t, out, "Category")
}

// --- seed ---

func TestSeed_Demo(t *testing.T) {
	e := newTestEnv(t)

	out, err := executeCmd(t, e.app, "seed")
	require.NoError(t, err)
	assert.Contains(t, out, "Seeded 2 companies, 4 users")

	out, err = executeCmd(t, e.app, "jobs", "list", "-q", "booking")
	require.NoError(t, err)
	assert.Contains(t, out, "Build a booking API")
}

func TestSeed_FromFile(t *testing.T) {
	e := newTestEnv(t)
	path := filepath.Join(t.TempDir(), "market.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`companies:
  - ref: nordlys
    org_number: "912345678"
    name: Nordlys Digital AS
users:
  - ref: ingrid
    role: employer
    name: Ingrid Solberg
    email: ingrid@nordlys.no
    phone: "+47 90000000"
    password: fleksjobb123
    company_ref: nordlys
    contact_title: CEO
jobs:
  - ref: aurora
    employer_ref: ingrid
    title: Aurora forecast widget
    description: Build a small widget that shows tonight's aurora forecast for Tromsø.
    category: development
    location: Tromsø
    skills: [javascript]
    hourly_rate: 400
    estimated_hours: 12
    deadline_in_days: 20
`), 0o644))

	out, err := executeCmd(t, e.app, "seed", path)

	require.NoError(t, err)
	assert.Contains(t, out, "Seeded 1 companies, 1 users, 1 jobs")
	u, err := e.users.GetByEmail(context.Background(), "ingrid@nordlys.no")
	require.NoError(t, err)
	assert.Equal(t, domain.RoleEmployer, u.Role)
}

func TestSeed_MissingFile(t *testing.T) {
	e := newTestEnv(t)

	_, err := executeCmd(t, e.app, "seed", filepath.Join(t.TempDir(), "nope.yaml"))

	require.Error(t, err)
}
