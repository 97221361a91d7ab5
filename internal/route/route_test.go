package route

import (
	"testing"

	"github.com/alexanderramin/fleksjobb/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestWith(t *testing.T) {
	assert.Equal(t, Route("/jobs/abc"), JobDetail.With("abc"))
	assert.Equal(t, Route("/jobs/abc/edit"), EditJob.With("abc"))
	assert.Equal(t, ActiveJobs, ActiveJobs.With("ignored"))
}

func TestMatch(t *testing.T) {
	cases := []struct {
		path    string
		pattern Route
		id      string
		ok      bool
	}{
		{"/", Home, "", true},
		{"/employer/dashboard", EmployerDashboard, "", true},
		{"/active-jobs/", ActiveJobs, "", true},
		{"/jobs/42", JobDetail, "42", true},
		{"/jobs/42/applicants", Applicants, "42", true},
		{"/jobs/42/edit", EditJob, "42", true},
		{"/jobs//edit", "", "", false},
		{"/nowhere", "", "", false},
		{"", "", "", false},
	}
	for _, tc := range cases {
		p, id, ok := Match(tc.path)
		assert.Equal(t, tc.ok, ok, "path=%q", tc.path)
		assert.Equal(t, tc.pattern, p, "path=%q", tc.path)
		assert.Equal(t, tc.id, id, "path=%q", tc.path)
	}
}

func TestDashboardFor(t *testing.T) {
	assert.Equal(t, Login, DashboardFor(domain.Session{}))
	assert.Equal(t, StudentDashboard, DashboardFor(domain.Session{UserID: "u", Role: domain.RoleStudent}))
	assert.Equal(t, EmployerDashboard, DashboardFor(domain.Session{UserID: "u", Role: domain.RoleEmployer}))
}
