package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/alexanderramin/fleksjobb/internal/cli/formatter"
	"github.com/alexanderramin/fleksjobb/internal/contract"
	"github.com/alexanderramin/fleksjobb/internal/domain"
	"github.com/alexanderramin/fleksjobb/internal/form"
	"github.com/alexanderramin/fleksjobb/internal/route"
	"github.com/alexanderramin/fleksjobb/internal/service"
	"github.com/charmbracelet/huh"
)

// feideNotice stands in for the identity provider button of the web client.
const feideNotice = "Feide login is available in the web client only."

// ── account ──────────────────────────────────────────────────────────────────

func newLoginView(s *SharedState) View {
	return newFormView(s, ViewLogin, formSpec{
		title:   "Sign in",
		route:   route.Login,
		schema:  contract.LoginSchema,
		initial: contract.LoginSchema.Defaults(),
		success: "Signed in",
		intro:   formatter.Header("Sign in to fleksjobb"),
		links:   map[string]route.Route{"ctrl+r": route.Register, "ctrl+j": route.Jobs},
		footer: func(*formView) string {
			return "  " + formatter.Dim(feideNotice) + "\n  " +
				formatter.Dim("ctrl+r create an account · ctrl+j browse jobs")
		},
		action: func(ctx context.Context, data form.Values, fx *effectQueue) (form.Receipt, error) {
			sess, err := s.App.Accounts.Login(ctx, contract.DecodeLogin(data))
			if err != nil {
				return form.Receipt{}, err
			}
			fx.push(signInMsg{session: sess})
			return form.Receipt{
				Next:    route.DashboardFor(sess),
				Message: "Welcome back, " + sess.Name,
			}, nil
		},
	})
}

// newRegisterView builds the registration wizard. The student and
// employer groups are hidden until the matching role is picked, and an
// employer's organisation number is looked up as soon as it is entered.
func newRegisterView(s *SharedState) View {
	initial := contract.RegistrationSchema.Defaults()
	initial[contract.FieldRole] = string(domain.RoleStudent)

	return newFormView(s, ViewForm, formSpec{
		title:   "Register",
		route:   route.Register,
		schema:  contract.RegistrationSchema,
		initial: initial,
		success: "Account created",
		intro:   formatter.Header("Create your fleksjobb account"),
		links:   map[string]route.Route{"ctrl+l": route.Login},
		layout:  registrationLayout,
		footer:  registrationFooter,
		action: func(ctx context.Context, data form.Values, fx *effectQueue) (form.Receipt, error) {
			sess, err := s.App.Accounts.Register(ctx, contract.DecodeRegistration(data))
			if err != nil {
				return form.Receipt{}, err
			}
			fx.push(signInMsg{session: sess})
			return form.Receipt{
				Next:    route.DashboardFor(sess),
				Message: "Welcome to fleksjobb, " + sess.Name,
			}, nil
		},
	})
}

func registrationLayout(v *formView) *huh.Form {
	role := v.bind.text(contract.FieldRole)
	pick := func(names ...string) []huh.Field {
		out := make([]huh.Field, 0, len(names))
		for _, n := range names {
			if f, ok := v.spec.schema.Field(n); ok {
				out = append(out, v.field(f))
			}
		}
		return out
	}

	account := pick(contract.RegistrationAccountFields...)
	student := pick(contract.FieldUniversity, contract.FieldStudyProgram, contract.FieldGraduationYear)
	employer := append([]huh.Field{orgNumberField(v)}, pick(contract.FieldContactTitle)...)

	return huh.NewForm(
		huh.NewGroup(account...).Title("Account"),
		huh.NewGroup(student...).Title("Studies").
			WithHideFunc(func() bool { return *role != string(domain.RoleStudent) }),
		huh.NewGroup(employer...).Title("Company").
			WithHideFunc(func() bool { return *role != string(domain.RoleEmployer) }),
		huh.NewGroup(pick(contract.FieldAcceptTerms)...).Title("Terms"),
	)
}

// orgNumberField verifies the number against the registry whenever the
// field is validated, filling in the company name on a match. A failed
// lookup clears any earlier verification.
func orgNumberField(v *formView) huh.Field {
	f, _ := v.spec.schema.Field(contract.FieldOrgNumber)
	in := huh.NewInput().
		Title(f.Label).
		Placeholder("9 digits").
		Value(v.bind.text(contract.FieldOrgNumber)).
		Validate(func(raw string) error {
			if err := fieldValidator.ValidateField(context.Background(), f, raw); err != nil {
				v.setValue(contract.FieldOrgVerified, false)
				return err
			}
			return verifyOrg(v, raw)
		})
	if msg := v.errs[contract.FieldOrgNumber]; msg != "" {
		in = in.Description(msg)
	} else if msg := v.errs[contract.FieldOrgVerified]; msg != "" {
		in = in.Description(msg)
	}
	return in
}

func verifyOrg(v *formView, orgNumber string) error {
	org, err := v.state.App.Accounts.VerifyOrg(context.Background(), orgNumber)
	if err != nil {
		v.setValue(contract.FieldOrgVerified, false)
		v.setValue(contract.FieldCompanyName, "")
		return errors.New(describeError(err))
	}
	v.setValue(contract.FieldOrgVerified, true)
	v.setValue(contract.FieldCompanyName, org.Name)
	return nil
}

func registrationFooter(v *formView) string {
	if *v.bind.text(contract.FieldRole) != string(domain.RoleEmployer) {
		return "  " + formatter.Dim(feideNotice)
	}
	if *v.bind.flag(contract.FieldOrgVerified) {
		return "  " + formatter.StyleGreen.Render("✔ Verified: "+*v.bind.text(contract.FieldCompanyName))
	}
	return "  " + formatter.Dim("Organisation not verified yet")
}

// ── jobs ─────────────────────────────────────────────────────────────────────

func newPostJobView(s *SharedState) View {
	return newFormView(s, ViewForm, formSpec{
		title:   "Post job",
		route:   route.PostJob,
		schema:  contract.PostJobSchema,
		initial: contract.PostJobSchema.Defaults(),
		next:    route.Home,
		success: "Job posted",
		intro:   formatter.Header("Post a new job"),
		action: func(ctx context.Context, data form.Values, _ *effectQueue) (form.Receipt, error) {
			job, err := s.App.Jobs.Post(ctx, s.Session, contract.DecodeJob(data))
			if err != nil {
				return form.Receipt{}, err
			}
			return form.Receipt{
				Next:    route.JobDetail.With(job.ID),
				Message: fmt.Sprintf("%q is now open for applications", job.Title),
			}, nil
		},
	})
}

// newEditJobView prefills the job form from the stored listing. Only the
// owning employer may edit, and only while the job is open.
func newEditJobView(s *SharedState, jobID string) (View, error) {
	job, err := s.App.Jobs.Get(context.Background(), jobID)
	if err != nil {
		return nil, err
	}
	if job.EmployerID != s.Session.UserID {
		return nil, fmt.Errorf("%w: job %q belongs to another employer", service.ErrForbidden, job.Title)
	}
	if !job.Editable() {
		return nil, fmt.Errorf("%w: job is %s, only open jobs can be edited", service.ErrInvalidState, job.Status)
	}
	detail := route.JobDetail.With(job.ID)
	return newFormView(s, ViewForm, formSpec{
		title:   "Edit",
		route:   route.EditJob.With(job.ID),
		schema:  contract.EditJobSchema,
		initial: contract.JobValues(job),
		next:    detail,
		success: "Job updated",
		intro:   formatter.Header("Edit " + job.Title),
		action: func(ctx context.Context, data form.Values, _ *effectQueue) (form.Receipt, error) {
			if _, err := s.App.Jobs.Edit(ctx, s.Session, job.ID, contract.DecodeJob(data)); err != nil {
				return form.Receipt{}, err
			}
			return form.Receipt{Next: detail}, nil
		},
	}), nil
}

func newApplyView(s *SharedState, job *domain.Job) View {
	return newFormView(s, ViewForm, formSpec{
		title:   "Apply",
		schema:  contract.ApplicationSchema,
		initial: contract.ApplicationSchema.Defaults(),
		next:    route.JobDetail.With(job.ID),
		success: "Application sent",
		intro: formatter.Header("Apply for "+job.Title) + "\n  " +
			formatter.Dim(formatter.Rate(job.HourlyRate)+" · "+fmt.Sprintf("%d hours estimated", job.EstimatedHours)),
		action: func(ctx context.Context, data form.Values, _ *effectQueue) (form.Receipt, error) {
			if _, err := s.App.Applications.Apply(ctx, s.Session, job.ID, contract.DecodeApplication(data)); err != nil {
				return form.Receipt{}, err
			}
			return form.Receipt{Message: "The employer will get back to you"}, nil
		},
	})
}

// ── active job ───────────────────────────────────────────────────────────────

func newLogHoursView(s *SharedState, job *domain.Job) View {
	return newFormView(s, ViewForm, formSpec{
		title:   "Log hours",
		schema:  contract.LogHoursSchema,
		initial: contract.LogHoursSchema.Defaults(),
		next:    route.ActiveJob.With(job.ID),
		success: "Hours logged",
		intro:   formatter.Header("Log hours on " + job.Title),
		action: func(ctx context.Context, data form.Values, _ *effectQueue) (form.Receipt, error) {
			req := contract.DecodeLogHours(data)
			updated, err := s.App.ActiveJobs.LogHours(ctx, s.Session, job.ID, req)
			if err != nil {
				return form.Receipt{}, err
			}
			return form.Receipt{Message: fmt.Sprintf("%s logged, %.0f%% of the estimate",
				formatter.Hours(req.Hours), updated.ProgressPct())}, nil
		},
	})
}

func newChangeRequestView(s *SharedState, job *domain.Job) View {
	initial := contract.ChangeRequestSchema.Defaults()
	initial[contract.FieldKind] = string(domain.ChangeDeadline)
	return newFormView(s, ViewForm, formSpec{
		title:   "Request change",
		schema:  contract.ChangeRequestSchema,
		initial: initial,
		next:    route.ActiveJob.With(job.ID),
		success: "Change requested",
		intro: formatter.Header("Request a change to "+job.Title) + "\n  " +
			formatter.Dim("Deadline as YYYY-MM-DD, hours and rate as whole numbers, scope as free text."),
		action: func(ctx context.Context, data form.Values, _ *effectQueue) (form.Receipt, error) {
			if _, err := s.App.ActiveJobs.RequestChange(ctx, s.Session, job.ID, contract.DecodeChangeRequest(data)); err != nil {
				return form.Receipt{}, err
			}
			return form.Receipt{Message: "The other party has been asked to respond"}, nil
		},
	})
}

func newReviewView(s *SharedState, job *domain.Job) View {
	return newFormView(s, ViewForm, formSpec{
		title:   "Review",
		schema:  contract.ReviewSchema,
		initial: contract.ReviewSchema.Defaults(),
		next:    route.ActiveJob.With(job.ID),
		success: "Review submitted",
		intro:   formatter.Header("Review " + job.Title),
		action: func(ctx context.Context, data form.Values, _ *effectQueue) (form.Receipt, error) {
			if _, err := s.App.Reviews.Submit(ctx, s.Session, job.ID, contract.DecodeReview(data)); err != nil {
				return form.Receipt{}, err
			}
			return form.Receipt{Message: "Thanks for your feedback"}, nil
		},
	})
}

// ── reports and team ─────────────────────────────────────────────────────────

// newReportView opens the report form, optionally tied to a job.
func newReportView(s *SharedState, jobID string) View {
	initial := contract.ReportSchema.Defaults()
	initial[contract.FieldCategory] = string(domain.ReportOther)
	initial[contract.FieldJobID] = jobID
	return newFormView(s, ViewForm, formSpec{
		title:   "Report",
		route:   route.Report,
		schema:  contract.ReportSchema,
		initial: initial,
		next:    route.Home,
		success: "Report submitted",
		intro:   formatter.Header("Report a problem"),
		action: func(ctx context.Context, data form.Values, _ *effectQueue) (form.Receipt, error) {
			if _, err := s.App.Reports.Submit(ctx, s.Session, contract.DecodeReport(data)); err != nil {
				return form.Receipt{}, err
			}
			return form.Receipt{Message: "Our team will look into it"}, nil
		},
	})
}

func newTeamInviteView(s *SharedState) View {
	initial := contract.TeamInviteSchema.Defaults()
	initial[contract.FieldTeamRole] = string(domain.TeamRecruiter)
	return newFormView(s, ViewForm, formSpec{
		title:   "Invite",
		schema:  contract.TeamInviteSchema,
		initial: initial,
		next:    route.Team,
		success: "Invitation sent",
		intro:   formatter.Header("Invite a team member"),
		action: func(ctx context.Context, data form.Values, _ *effectQueue) (form.Receipt, error) {
			m, err := s.App.Team.Invite(ctx, s.Session, contract.DecodeTeamInvite(data))
			if err != nil {
				return form.Receipt{}, err
			}
			return form.Receipt{Message: m.Email + " was invited as " + string(m.Role)}, nil
		},
	})
}
