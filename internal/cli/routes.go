package cli

import (
	"errors"
	"fmt"

	"github.com/alexanderramin/fleksjobb/internal/domain"
	"github.com/alexanderramin/fleksjobb/internal/route"
)

var (
	errSignInRequired = errors.New("sign in to continue")
	errWrongRole      = errors.New("not available for your account type")
	errUnavailable    = errors.New("not available in the terminal client")
)

// routeEntry maps a route pattern to the view that renders it.
// An empty role admits any signed-in account.
type routeEntry struct {
	public bool
	role   domain.Role
	open   func(s *SharedState, id string) (View, error)
}

// always adapts a constructor that cannot fail.
func always(fn func(s *SharedState, id string) View) func(*SharedState, string) (View, error) {
	return func(s *SharedState, id string) (View, error) { return fn(s, id), nil }
}

// routeTable is the single place routes are resolved to views.
func routeTable() map[route.Route]routeEntry {
	return map[route.Route]routeEntry{
		route.Login:             {public: true, open: always(func(s *SharedState, _ string) View { return newLoginView(s) })},
		route.Register:          {public: true, open: always(func(s *SharedState, _ string) View { return newRegisterView(s) })},
		route.Jobs:              {public: true, open: always(func(s *SharedState, _ string) View { return newJobListView(s) })},
		route.JobDetail:         {public: true, open: always(func(s *SharedState, id string) View { return newJobDetailView(s, id) })},
		route.EditJob:           {role: domain.RoleEmployer, open: newEditJobView},
		route.Applicants:        {role: domain.RoleEmployer, open: always(func(s *SharedState, id string) View { return newApplicantsView(s, id) })},
		route.StudentDashboard:  {role: domain.RoleStudent, open: always(func(s *SharedState, _ string) View { return newDashboardView(s, domain.RoleStudent) })},
		route.EmployerDashboard: {role: domain.RoleEmployer, open: always(func(s *SharedState, _ string) View { return newDashboardView(s, domain.RoleEmployer) })},
		route.ActiveJobs:        {open: always(func(s *SharedState, _ string) View { return newActiveJobsView(s) })},
		route.ActiveJob:         {open: always(func(s *SharedState, id string) View { return newActiveJobView(s, id) })},
		route.PostJob:           {role: domain.RoleEmployer, open: always(func(s *SharedState, _ string) View { return newPostJobView(s) })},
		route.Report:            {open: always(func(s *SharedState, _ string) View { return newReportView(s, "") })},
		route.Reviews:           {open: always(func(s *SharedState, _ string) View { return newReviewsView(s) })},
		route.Payments:          {open: always(func(s *SharedState, _ string) View { return newPaymentsView(s) })},
		route.Team:              {role: domain.RoleEmployer, open: always(func(s *SharedState, _ string) View { return newTeamView(s) })},
	}
}

// resolveRoute builds the view for a concrete route, enforcing sign-in and
// role requirements against the current session. The home route resolves
// to the session's dashboard, or the login screen for visitors.
func resolveRoute(s *SharedState, to route.Route) (View, error) {
	pattern, id, ok := route.Match(string(to))
	if !ok {
		return nil, fmt.Errorf("unknown route %q", to)
	}
	if pattern == route.Home {
		pattern = route.DashboardFor(s.Session)
	}
	if pattern == route.Messages {
		return nil, fmt.Errorf("messages: %w", errUnavailable)
	}
	entry, ok := routeTable()[pattern]
	if !ok {
		return nil, fmt.Errorf("unknown route %q", to)
	}
	if !entry.public {
		if !s.Session.Authenticated() {
			return nil, errSignInRequired
		}
		if entry.role != "" && s.Session.Role != entry.role {
			return nil, errWrongRole
		}
	}
	return entry.open(s, id)
}
