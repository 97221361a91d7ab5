package importer

import (
	"cmp"
	"fmt"

	"github.com/alexanderramin/fleksjobb/internal/domain"
)

var (
	validRoles       = map[string]bool{"student": true, "employer": true}
	validJobStatuses = map[string]bool{"open": true, "in_progress": true, "completed": true, "cancelled": true}
	validAppStatuses = map[string]bool{"pending": true, "accepted": true, "rejected": true, "withdrawn": true}
)

// ValidateImportSchema checks the seed file before conversion and
// returns every problem found.
func ValidateImportSchema(schema *ImportSchema) []error {
	var errs []error

	companyRefs := make(map[string]bool)
	errs = append(errs, validateCompanies(schema.Companies, companyRefs)...)

	roles := make(map[string]string)
	errs = append(errs, validateUsers(schema.Users, companyRefs, roles)...)

	jobRefs := make(map[string]bool)
	errs = append(errs, validateJobs(schema.Jobs, roles, jobRefs)...)

	errs = append(errs, validateApplications(schema.Applications, roles, jobRefs)...)

	return errs
}

func validateCompanies(companies []CompanyImport, refs map[string]bool) []error {
	var errs []error
	for i, c := range companies {
		prefix := fmt.Sprintf("companies[%d]", i)
		errs = append(errs, checkRef(prefix, c.Ref, refs)...)
		if err := domain.ValidateOrgNumber(c.OrgNumber); err != nil {
			errs = append(errs, fmt.Errorf("%s.org_number: %w", prefix, err))
		}
		if c.Name == "" {
			errs = append(errs, fmt.Errorf("%s.name is required", prefix))
		}
	}
	return errs
}

func validateUsers(users []UserImport, companyRefs map[string]bool, roles map[string]string) []error {
	var errs []error
	refs := make(map[string]bool)
	emails := make(map[string]bool)
	for i, u := range users {
		prefix := fmt.Sprintf("users[%d]", i)
		errs = append(errs, checkRef(prefix, u.Ref, refs)...)
		if !validRoles[u.Role] {
			errs = append(errs, fmt.Errorf("%s.role: invalid value %q", prefix, u.Role))
		} else if u.Ref != "" {
			roles[u.Ref] = u.Role
		}
		if u.Name == "" {
			errs = append(errs, fmt.Errorf("%s.name is required", prefix))
		}
		if u.Email == "" {
			errs = append(errs, fmt.Errorf("%s.email is required", prefix))
		} else if emails[u.Email] {
			errs = append(errs, fmt.Errorf("%s.email: duplicate email %q", prefix, u.Email))
		} else {
			emails[u.Email] = true
		}
		if len(u.Password) < 8 {
			errs = append(errs, fmt.Errorf("%s.password must be at least 8 characters", prefix))
		}
		if u.Role == "employer" && !companyRefs[u.CompanyRef] {
			errs = append(errs, fmt.Errorf("%s.company_ref: ref %q not found in companies", prefix, u.CompanyRef))
		}
	}
	return errs
}

func validateJobs(jobs []JobImport, roles map[string]string, refs map[string]bool) []error {
	var errs []error
	for i, j := range jobs {
		prefix := fmt.Sprintf("jobs[%d]", i)
		errs = append(errs, checkRef(prefix, j.Ref, refs)...)
		if roles[j.EmployerRef] != "employer" {
			errs = append(errs, fmt.Errorf("%s.employer_ref: %q is not an employer", prefix, j.EmployerRef))
		}
		if j.Title == "" {
			errs = append(errs, fmt.Errorf("%s.title is required", prefix))
		}
		if !domain.ValidJobCategory(j.Category) {
			errs = append(errs, fmt.Errorf("%s.category: invalid value %q", prefix, j.Category))
		}
		if j.HourlyRate <= 0 {
			errs = append(errs, fmt.Errorf("%s.hourly_rate must be positive", prefix))
		}
		if j.EstimatedHours <= 0 {
			errs = append(errs, fmt.Errorf("%s.estimated_hours must be positive", prefix))
		}
		if j.HoursLogged < 0 {
			errs = append(errs, fmt.Errorf("%s.hours_logged must not be negative", prefix))
		}

		status := cmp.Or(j.Status, string(domain.JobOpen))
		if !validJobStatuses[status] {
			errs = append(errs, fmt.Errorf("%s.status: invalid value %q", prefix, j.Status))
			continue
		}
		assigned := status == "in_progress" || status == "completed"
		switch {
		case assigned && roles[j.StudentRef] != "student":
			errs = append(errs, fmt.Errorf("%s.student_ref: a %s job needs a student, got %q", prefix, status, j.StudentRef))
		case !assigned && j.StudentRef != "":
			errs = append(errs, fmt.Errorf("%s.student_ref: a %s job has no student", prefix, status))
		}
	}
	return errs
}

func validateApplications(apps []ApplicationImport, roles map[string]string, jobRefs map[string]bool) []error {
	var errs []error
	seen := make(map[string]bool)
	for i, a := range apps {
		prefix := fmt.Sprintf("applications[%d]", i)
		if !jobRefs[a.JobRef] {
			errs = append(errs, fmt.Errorf("%s.job_ref: ref %q not found in jobs", prefix, a.JobRef))
		}
		if roles[a.StudentRef] != "student" {
			errs = append(errs, fmt.Errorf("%s.student_ref: %q is not a student", prefix, a.StudentRef))
		}
		key := a.JobRef + "/" + a.StudentRef
		if seen[key] {
			errs = append(errs, fmt.Errorf("%s: %q already applied to %q", prefix, a.StudentRef, a.JobRef))
		}
		seen[key] = true
		if a.Status != "" && !validAppStatuses[a.Status] {
			errs = append(errs, fmt.Errorf("%s.status: invalid value %q", prefix, a.Status))
		}
	}
	return errs
}

func checkRef(prefix, ref string, refs map[string]bool) []error {
	switch {
	case ref == "":
		return []error{fmt.Errorf("%s.ref is required", prefix)}
	case refs[ref]:
		return []error{fmt.Errorf("%s.ref: duplicate ref %q", prefix, ref)}
	}
	refs[ref] = true
	return nil
}
