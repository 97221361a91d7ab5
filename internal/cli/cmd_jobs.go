package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/alexanderramin/fleksjobb/internal/cli/formatter"
	"github.com/alexanderramin/fleksjobb/internal/contract"
	"github.com/alexanderramin/fleksjobb/internal/domain"
	"github.com/alexanderramin/fleksjobb/internal/form"
	"github.com/alexanderramin/fleksjobb/internal/repository"
	"github.com/alexanderramin/fleksjobb/internal/route"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

func newJobsCmd(app *App, as *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "jobs",
		Short: "Browse, post and apply for jobs",
	}

	cmd.AddCommand(
		newJobsListCmd(app, as),
		newJobsShowCmd(app),
		newJobsPostCmd(app, as),
		newJobsApplyCmd(app, as),
	)

	return cmd
}

func newJobsListCmd(app *App, as *string) *cobra.Command {
	var f repository.JobFilter
	var mine bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List open jobs",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			var (
				jobs []*domain.Job
				err  error
			)
			if mine {
				sess, serr := requireSession(ctx, app, *as)
				if serr != nil {
					return serr
				}
				if sess.IsEmployer() {
					jobs, err = app.Jobs.ListByEmployer(ctx, sess)
				} else {
					jobs, err = app.Jobs.ListByStudent(ctx, sess)
				}
			} else {
				jobs, err = app.Jobs.ListOpen(ctx, f)
			}
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(jobs) == 0 {
				fmt.Fprintln(out, formatter.Dim("No jobs found."))
				return nil
			}
			tbl := formatter.NewTable("ID", "TITLE", "CATEGORY", "RATE", "HOURS", "STATUS", "DEADLINE").AlignRight(3, 4)
			for _, j := range jobs {
				tbl.Row(formatter.ShortID(j.ID), j.Title, j.Category, formatter.Rate(j.HourlyRate),
					strconv.Itoa(j.EstimatedHours), formatter.JobStatusPill(j.Status), formatter.Date(j.Deadline))
			}
			fmt.Fprint(out, tbl.String())
			return nil
		},
	}

	jobFilterFlags(cmd.Flags(), &f)
	cmd.Flags().BoolVar(&mine, "mine", false, "List your own jobs instead of open ones")

	return cmd
}

// jobFilterFlags binds the open-job search flags to f.
func jobFilterFlags(fs *pflag.FlagSet, f *repository.JobFilter) {
	fs.StringVar(&f.Category, "category", "", "Only jobs in this category")
	fs.StringVarP(&f.Query, "query", "q", "", "Search title, description and skills")
	fs.BoolVar(&f.RemoteOnly, "remote", false, "Only remote jobs")
	fs.IntVar(&f.Limit, "limit", 0, "Maximum number of jobs (0 = all)")
}

func newJobsShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show <job-id>",
		Short: "Show a job",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id, err := resolveJobID(ctx, app, args[0])
			if err != nil {
				return err
			}
			j, err := app.Jobs.Get(ctx, id)
			if err != nil {
				return err
			}
			employer, err := app.Accounts.GetUser(ctx, j.EmployerID)
			if err != nil {
				return err
			}

			lines := []string{
				formatter.Bold(j.Title) + "  " + formatter.JobStatusPill(j.Status),
				formatter.Dim("Posted by " + employer.Name + " · " + formatter.HumanTimestamp(j.CreatedAt)),
				"",
				"Category  " + j.Category,
				"Rate      " + formatter.Rate(j.HourlyRate),
				"Estimate  " + fmt.Sprintf("%d hours (%s)", j.EstimatedHours, formatter.Money(j.BudgetNOK())),
				"Location  " + j.Location + remoteSuffix(j.Remote),
				"Deadline  " + formatter.Date(j.Deadline) + " " + formatter.DeadlineStyled(j.Deadline),
				"Skills    " + strings.Join(j.Skills, ", "),
				"",
				j.Description,
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.RenderBox(formatter.ShortID(j.ID), strings.Join(lines, "\n")))
			return nil
		},
	}
}

func remoteSuffix(remote bool) string {
	if remote {
		return " (remote)"
	}
	return ""
}

func newJobsPostCmd(app *App, as *string) *cobra.Command {
	var title, description, category, location, deadline string
	var skills []string
	var rate, hours int
	var remote bool

	cmd := &cobra.Command{
		Use:   "post",
		Short: "Post a new job (employers)",
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := requireSession(cmd.Context(), app, *as)
			if err != nil {
				return err
			}
			values := form.Values{
				contract.FieldTitle:          title,
				contract.FieldDescription:    description,
				contract.FieldCategory:       category,
				contract.FieldLocation:       location,
				contract.FieldRemote:         remote,
				contract.FieldHourlyRate:     strconv.Itoa(rate),
				contract.FieldEstimatedHours: strconv.Itoa(hours),
				contract.FieldDeadline:       deadline,
				contract.FieldSkills:         skills,
			}
			var posted string
			err = submitForm(cmd, app, contract.PostJobSchema, values, "Job posted", func(ctx context.Context, data form.Values) (form.Receipt, error) {
				job, err := app.Jobs.Post(ctx, sess, contract.DecodeJob(data))
				if err != nil {
					return form.Receipt{}, err
				}
				posted = job.ID
				return form.Receipt{Next: route.JobDetail.With(job.ID), Message: job.Title}, nil
			})
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.Dim("Job ID: "+posted))
			return nil
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "Job title")
	cmd.Flags().StringVar(&description, "description", "", "What the job involves")
	cmd.Flags().StringVar(&category, "category", "", "One of: "+strings.Join(domain.JobCategories, ", "))
	cmd.Flags().StringVar(&location, "location", "", "Where the work happens")
	cmd.Flags().BoolVar(&remote, "remote", false, "Work can be done remotely")
	cmd.Flags().IntVar(&rate, "rate", 0, "Hourly rate in NOK")
	cmd.Flags().IntVar(&hours, "hours", 0, "Estimated hours")
	cmd.Flags().StringVar(&deadline, "deadline", "", "Deadline (YYYY-MM-DD)")
	cmd.Flags().StringSliceVar(&skills, "skill", nil, "Required skill (repeatable or comma separated)")

	return cmd
}

func newJobsApplyCmd(app *App, as *string) *cobra.Command {
	var letter string
	var perWeek int

	cmd := &cobra.Command{
		Use:   "apply <job-id>",
		Short: "Apply for a job (students)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			sess, err := requireSession(ctx, app, *as)
			if err != nil {
				return err
			}
			id, err := resolveJobID(ctx, app, args[0])
			if err != nil {
				return err
			}
			values := form.Values{
				contract.FieldCoverLetter:  letter,
				contract.FieldHoursPerWeek: strconv.Itoa(perWeek),
			}
			err = submitForm(cmd, app, contract.ApplicationSchema, values, "Application sent", func(ctx context.Context, data form.Values) (form.Receipt, error) {
				if _, err := app.Applications.Apply(ctx, sess, id, contract.DecodeApplication(data)); err != nil {
					return form.Receipt{}, err
				}
				return form.Receipt{Next: route.JobDetail.With(id)}, nil
			})
			return err
		},
	}

	cmd.Flags().StringVar(&letter, "cover-letter", "", "Why you are a good fit")
	cmd.Flags().IntVar(&perWeek, "hours-per-week", 0, "Hours per week you can work")

	return cmd
}

// resolveJobID accepts a full job ID or a unique prefix of an open job's
// ID, as printed by "jobs list".
func resolveJobID(ctx context.Context, app *App, input string) (string, error) {
	if input == "" {
		return "", fmt.Errorf("job ID is required")
	}
	if _, err := app.Jobs.Get(ctx, input); err == nil {
		return input, nil
	} else if !errors.Is(err, repository.ErrNotFound) {
		return "", err
	}

	jobs, err := app.Jobs.ListOpen(ctx, repository.JobFilter{})
	if err != nil {
		return "", err
	}
	var matches []string
	for _, j := range jobs {
		if strings.HasPrefix(j.ID, input) {
			matches = append(matches, j.ID)
		}
	}

	switch len(matches) {
	case 0:
		return "", fmt.Errorf("job not found: %q", input)
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("job ID prefix %q is ambiguous (%d matches)", input, len(matches))
	}
}
