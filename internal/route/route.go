// Package route defines the navigation tokens exchanged between views.
// Routes are opaque strings; parametrised routes carry a single ":id"
// segment that With fills in and Match extracts.
package route

import (
	"strings"

	"github.com/alexanderramin/fleksjobb/internal/domain"
)

type Route string

const (
	Home              Route = "/"
	Login             Route = "/login"
	Register          Route = "/register"
	Jobs              Route = "/jobs"
	JobDetail         Route = "/jobs/:id"
	EditJob           Route = "/jobs/:id/edit"
	Applicants        Route = "/jobs/:id/applicants"
	StudentDashboard  Route = "/student/dashboard"
	EmployerDashboard Route = "/employer/dashboard"
	ActiveJobs        Route = "/active-jobs"
	ActiveJob         Route = "/active-jobs/:id"
	PostJob           Route = "/post-job"
	Report            Route = "/report"
	Reviews           Route = "/reviews"
	Payments          Route = "/payments"
	Team              Route = "/team"
	Messages          Route = "/messages"
)

const param = ":id"

// Patterns lists every known route in match order.
var Patterns = []Route{
	Home, Login, Register, Jobs, JobDetail, EditJob, Applicants,
	StudentDashboard, EmployerDashboard, ActiveJobs, ActiveJob,
	PostJob, Report, Reviews, Payments, Team, Messages,
}

// With substitutes id for the ":id" segment. Routes without a parameter
// are returned unchanged.
func (r Route) With(id string) Route {
	return Route(strings.Replace(string(r), param, id, 1))
}

func (r Route) String() string { return string(r) }

// Match resolves a concrete path to its pattern and parameter.
// Trailing slashes are ignored except for the root.
func Match(path string) (pattern Route, id string, ok bool) {
	path = strings.TrimSpace(path)
	if path == "" {
		return "", "", false
	}
	if len(path) > 1 {
		path = strings.TrimRight(path, "/")
	}
	segs := strings.Split(path, "/")
	for _, p := range Patterns {
		psegs := strings.Split(string(p), "/")
		if len(psegs) != len(segs) {
			continue
		}
		matched := true
		var got string
		for i, ps := range psegs {
			if ps == param {
				if segs[i] == "" {
					matched = false
					break
				}
				got = segs[i]
				continue
			}
			if ps != segs[i] {
				matched = false
				break
			}
		}
		if matched {
			return p, got, true
		}
	}
	return "", "", false
}

// DashboardFor returns the landing route for a session.
func DashboardFor(s domain.Session) Route {
	switch {
	case s.IsEmployer():
		return EmployerDashboard
	case s.IsStudent():
		return StudentDashboard
	default:
		return Login
	}
}
