package contract

import (
	"github.com/alexanderramin/fleksjobb/internal/domain"
	"github.com/alexanderramin/fleksjobb/internal/form"
)

const (
	FieldRole            = "role"
	FieldName            = "name"
	FieldEmail           = "email"
	FieldPassword        = "password"
	FieldPasswordConfirm = "password_confirm"
	FieldPhone           = "phone"
	FieldUniversity      = "university"
	FieldStudyProgram    = "study_program"
	FieldGraduationYear  = "graduation_year"
	FieldOrgNumber       = "org_number"
	FieldCompanyName     = "company_name"
	FieldOrgVerified     = "org_verified"
	FieldContactTitle    = "contact_title"
	FieldAcceptTerms     = "accept_terms"
)

func isStudent(v form.Values) bool  { return v.String(FieldRole) == string(domain.RoleStudent) }
func isEmployer(v form.Values) bool { return v.String(FieldRole) == string(domain.RoleEmployer) }

// RegistrationAccountFields are collected on the first wizard step.
var RegistrationAccountFields = []string{
	FieldRole, FieldName, FieldEmail, FieldPhone, FieldPassword, FieldPasswordConfirm,
}

// RegistrationSchema covers both registration branches. Student fields
// apply only to role "student", company fields only to role "employer".
// An employer must verify the organisation number before submitting.
var RegistrationSchema = form.NewSchema("registration",
	form.Text(FieldRole, "Role", "required,oneof=student employer"),
	form.Text(FieldName, "Full name", "required,min=2,max=60"),
	form.Text(FieldEmail, "Email", "required,email,max=120"),
	form.Text(FieldPhone, "Phone", "required,phone"),
	form.Text(FieldPassword, "Password", "required,min=8,max=72,maxbytes=72"),
	form.Text(FieldPasswordConfirm, "Password confirmation", "required"),

	form.Text(FieldUniversity, "University", "required,min=2,max=100").OnlyWhen(isStudent),
	form.Text(FieldStudyProgram, "Study program", "required,min=2,max=80").OnlyWhen(isStudent),
	form.Int(FieldGraduationYear, "Graduation year", "required,min=2000,max=2040").OnlyWhen(isStudent),

	form.Text(FieldOrgNumber, "Organisation number", "required,orgnr").OnlyWhen(isEmployer),
	form.Bool(FieldOrgVerified, "Organisation", "required").
		OnlyWhen(isEmployer).
		Message("required", "Verify the organisation number before continuing"),
	form.Text(FieldCompanyName, "Company name", "required,max=120").OnlyWhen(isEmployer),
	form.Text(FieldContactTitle, "Job title", "required,min=2,max=60").OnlyWhen(isEmployer),

	form.Bool(FieldAcceptTerms, "Terms", "required").Message("required", "You must accept the terms of use"),
).Check(func(v form.Values) form.Errors {
	if v.String(FieldPassword) != v.String(FieldPasswordConfirm) {
		return form.Errors{FieldPasswordConfirm: "Passwords do not match"}
	}
	return nil
})

type RegisterRequest struct {
	Role     domain.Role
	Name     string
	Email    string
	Phone    string
	Password string

	University     string
	StudyProgram   string
	GraduationYear int

	OrgNumber    string
	CompanyName  string
	ContactTitle string
}

// DecodeRegistration maps validated registration values to a request.
func DecodeRegistration(v form.Values) RegisterRequest {
	return RegisterRequest{
		Role:           domain.Role(v.String(FieldRole)),
		Name:           v.String(FieldName),
		Email:          v.String(FieldEmail),
		Phone:          v.String(FieldPhone),
		Password:       v.String(FieldPassword),
		University:     v.String(FieldUniversity),
		StudyProgram:   v.String(FieldStudyProgram),
		GraduationYear: v.Int(FieldGraduationYear),
		OrgNumber:      v.String(FieldOrgNumber),
		CompanyName:    v.String(FieldCompanyName),
		ContactTitle:   v.String(FieldContactTitle),
	}
}

// OrgVerifySchema is the standalone verification step.
var OrgVerifySchema = form.NewSchema("org-verify",
	form.Text(FieldOrgNumber, "Organisation number", "required,orgnr"),
)

// LoginSchema identifies a local account by email.
var LoginSchema = form.NewSchema("login",
	form.Text(FieldEmail, "Email", "required,email"),
	form.Text(FieldPassword, "Password", "required"),
)

type LoginRequest struct {
	Email    string
	Password string
}

func DecodeLogin(v form.Values) LoginRequest {
	return LoginRequest{Email: v.String(FieldEmail), Password: v.String(FieldPassword)}
}
