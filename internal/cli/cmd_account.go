package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/alexanderramin/fleksjobb/internal/cli/formatter"
	"github.com/alexanderramin/fleksjobb/internal/contract"
	"github.com/alexanderramin/fleksjobb/internal/domain"
	"github.com/alexanderramin/fleksjobb/internal/form"
	"github.com/alexanderramin/fleksjobb/internal/route"
	"github.com/spf13/cobra"
)

func newOrgCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "org",
		Short: "Organisation registry lookups",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "verify <org-number>",
		Short: "Look up a 9-digit organisation number",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			org, err := app.Accounts.VerifyOrg(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s %s\n", formatter.StyleGreen.Render("✔"), formatter.Bold(org.Name))
			if org.Municipality != "" {
				fmt.Fprintln(out, formatter.Dim(org.OrgNumber+" · "+org.Municipality))
			}
			return nil
		},
	})

	return cmd
}

func newRegisterCmd(app *App) *cobra.Command {
	var (
		role, name, email, phone, password       string
		university, program, orgNumber, jobTitle string
		gradYear                                 int
		acceptTerms                              bool
	)

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create a student or employer account",
		Example: `  fleksjobb register --role student --name "Kari Nordmann" --email kari@student.ntnu.no \
    --phone "+47 12345678" --password secret123 --university NTNU \
    --study-program Informatics --graduation-year 2027 --accept-terms`,
		RunE: func(cmd *cobra.Command, args []string) error {
			values := contract.RegistrationSchema.Defaults()
			values[contract.FieldRole] = role
			values[contract.FieldName] = name
			values[contract.FieldEmail] = email
			values[contract.FieldPhone] = phone
			values[contract.FieldPassword] = password
			values[contract.FieldPasswordConfirm] = password
			values[contract.FieldUniversity] = university
			values[contract.FieldStudyProgram] = program
			if gradYear != 0 {
				values[contract.FieldGraduationYear] = strconv.Itoa(gradYear)
			}
			values[contract.FieldOrgNumber] = orgNumber
			values[contract.FieldContactTitle] = jobTitle
			values[contract.FieldAcceptTerms] = acceptTerms

			if domain.Role(role) == domain.RoleEmployer && orgNumber != "" {
				verifyRegistrationOrg(cmd.Context(), app, values)
			}

			return submitForm(cmd, app, contract.RegistrationSchema, values, "Account created",
				func(ctx context.Context, data form.Values) (form.Receipt, error) {
					sess, err := app.Accounts.Register(ctx, contract.DecodeRegistration(data))
					if err != nil {
						return form.Receipt{}, err
					}
					return form.Receipt{
						Next:    route.DashboardFor(sess),
						Message: "Use --as " + data.String(contract.FieldEmail) + " to act as this account",
					}, nil
				})
		},
	}

	f := cmd.Flags()
	f.StringVar(&role, "role", "", "student or employer")
	f.StringVar(&name, "name", "", "Full name")
	f.StringVar(&email, "email", "", "Email address")
	f.StringVar(&phone, "phone", "", `Phone, e.g. "+47 12345678"`)
	f.StringVar(&password, "password", "", "Password (8-72 characters)")
	f.StringVar(&university, "university", "", "University (students)")
	f.StringVar(&program, "study-program", "", "Study program (students)")
	f.IntVar(&gradYear, "graduation-year", 0, "Expected graduation year (students)")
	f.StringVar(&orgNumber, "org-number", "", "Organisation number (employers)")
	f.StringVar(&jobTitle, "contact-title", "", "Your job title (employers)")
	f.BoolVar(&acceptTerms, "accept-terms", false, "Accept the terms of use")

	return cmd
}

// verifyRegistrationOrg fills in the company from the registry. A failed
// lookup leaves the form unverified so validation reports it.
func verifyRegistrationOrg(ctx context.Context, app *App, values form.Values) {
	org, err := app.Accounts.VerifyOrg(ctx, values.String(contract.FieldOrgNumber))
	if err != nil {
		return
	}
	values[contract.FieldCompanyName] = org.Name
	values[contract.FieldOrgVerified] = true
}

func newReportCmd(app *App, as *string) *cobra.Command {
	var category, subject, description, jobID string
	var list bool

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Report a problem to the fleksjobb team",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			sess, err := requireSession(ctx, app, *as)
			if err != nil {
				return err
			}

			if list {
				reports, err := app.Reports.ListMine(ctx, sess)
				if err != nil {
					return err
				}
				tbl := formatter.NewTable("FILED", "CATEGORY", "SUBJECT")
				for _, r := range reports {
					tbl.Row(formatter.Date(r.CreatedAt), string(r.Category), r.Subject)
				}
				fmt.Fprint(cmd.OutOrStdout(), tbl.String())
				return nil
			}

			values := form.Values{
				contract.FieldCategory:    category,
				contract.FieldSubject:     subject,
				contract.FieldDescription: description,
				contract.FieldJobID:       jobID,
			}
			return submitForm(cmd, app, contract.ReportSchema, values, "Report submitted",
				func(ctx context.Context, data form.Values) (form.Receipt, error) {
					if _, err := app.Reports.Submit(ctx, sess, contract.DecodeReport(data)); err != nil {
						return form.Receipt{}, err
					}
					return form.Receipt{Next: route.DashboardFor(sess)}, nil
				})
		},
	}

	cmd.Flags().StringVar(&category, "category", "other", "fraud, harassment, payment, quality or other")
	cmd.Flags().StringVar(&subject, "subject", "", "Short summary")
	cmd.Flags().StringVar(&description, "description", "", "What happened")
	cmd.Flags().StringVar(&jobID, "job", "", "Related job ID")
	cmd.Flags().BoolVar(&list, "list", false, "List the reports you have filed")

	return cmd
}
