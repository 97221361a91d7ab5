package cli

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/alexanderramin/fleksjobb/internal/config"
	"github.com/alexanderramin/fleksjobb/internal/domain"
	"github.com/alexanderramin/fleksjobb/internal/service"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

// App holds references to all service interfaces used by the TUI and the
// subcommands.
type App struct {
	Accounts     service.AccountService
	Jobs         service.JobService
	Applications service.ApplicationService
	ActiveJobs   service.ActiveJobService
	Reports      service.ReportService
	Reviews      service.ReviewService
	Team         service.TeamService
	Payments     service.PaymentService
	Dashboards   service.DashboardService
	Import       service.ImportService

	Config config.Config
	Logger *slog.Logger

	// IsInteractive reports whether stdin is a terminal. Nil means no.
	IsInteractive func() bool
}

func (a *App) logger() *slog.Logger {
	if a.Logger != nil {
		return a.Logger
	}
	return slog.New(slog.DiscardHandler)
}

func (a *App) interactive() bool {
	return a.IsInteractive != nil && a.IsInteractive()
}

// NewRootCmd creates the top-level "fleksjobb" command and registers all
// subcommands against the provided App. Run without a subcommand on a
// terminal, it starts the TUI.
func NewRootCmd(app *App) *cobra.Command {
	var as string

	root := &cobra.Command{
		Use:   "fleksjobb",
		Short: "Flexible IT jobs for students, in the terminal",
		Long: `fleksjobb connects students with employers for flexible IT jobs.

Without a subcommand it opens the interactive terminal client. The
subcommands cover the same forms for scripting and quick lookups.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !app.interactive() {
				return cmd.Help()
			}
			sess, err := sessionFor(cmd.Context(), app, as)
			if err != nil {
				return err
			}
			return runTUI(app, sess)
		},
	}
	root.PersistentFlags().StringVar(&as, "as", "", "Act as the account with this email (default $FLEKSJOBB_USER)")

	root.AddCommand(
		newTUICmd(app, &as),
		newJobsCmd(app, &as),
		newReportCmd(app, &as),
		newOrgCmd(app),
		newRegisterCmd(app),
		newSeedCmd(app),
	)

	return root
}

// sessionFor resolves the acting account. An empty email falls back to
// the configured default user, and no user at all is a visitor session.
func sessionFor(ctx context.Context, app *App, email string) (domain.Session, error) {
	if email == "" {
		email = app.Config.User
	}
	if email == "" {
		return domain.Session{}, nil
	}
	sess, err := app.Accounts.SessionByEmail(ctx, email)
	if err != nil {
		return domain.Session{}, fmt.Errorf("acting as %s: %w", email, err)
	}
	return sess, nil
}

// requireSession is sessionFor for subcommands that need an account.
func requireSession(ctx context.Context, app *App, email string) (domain.Session, error) {
	sess, err := sessionFor(ctx, app, email)
	if err != nil {
		return sess, err
	}
	if !sess.Authenticated() {
		return sess, fmt.Errorf("%w: pass --as <email> or set FLEKSJOBB_USER", errSignInRequired)
	}
	return sess, nil
}

func newTUICmd(app *App, as *string) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Open the interactive terminal client",
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := sessionFor(cmd.Context(), app, *as)
			if err != nil {
				return err
			}
			return runTUI(app, sess)
		},
	}
}

func runTUI(app *App, sess domain.Session) error {
	app.logger().Info("tui started", "user_id", sess.UserID, "role", string(sess.Role))
	p := tea.NewProgram(newAppModel(app, sess), tea.WithAltScreen(), tea.WithMouseCellMotion())
	_, err := p.Run()
	return err
}
