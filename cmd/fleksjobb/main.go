package main

import (
	"fmt"
	"os"

	"github.com/alexanderramin/fleksjobb/internal/cli"
	"github.com/alexanderramin/fleksjobb/internal/config"
	"github.com/alexanderramin/fleksjobb/internal/db"
	"github.com/alexanderramin/fleksjobb/internal/orgregistry"
	"github.com/alexanderramin/fleksjobb/internal/repository"
	"github.com/alexanderramin/fleksjobb/internal/service"
	"github.com/mattn/go-isatty"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load(".env")
	if err != nil {
		return err
	}

	logger, closeLog, err := cfg.OpenLogger()
	if err != nil {
		return err
	}
	defer closeLog.Close()

	// Open database
	database, err := db.OpenDB(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	// Wire repositories
	userRepo := repository.NewSQLiteUserRepo(database)
	companyRepo := repository.NewSQLiteCompanyRepo(database)
	jobRepo := repository.NewSQLiteJobRepo(database)
	applicationRepo := repository.NewSQLiteApplicationRepo(database)
	changeRepo := repository.NewSQLiteChangeRequestRepo(database)
	reportRepo := repository.NewSQLiteReportRepo(database)
	reviewRepo := repository.NewSQLiteReviewRepo(database)
	teamRepo := repository.NewSQLiteTeamRepo(database)
	workLogRepo := repository.NewSQLiteWorkLogRepo(database)
	paymentRepo := repository.NewSQLitePaymentRepo(database)

	// Wire unit of work for transactional operations
	uow := db.NewSQLiteUnitOfWork(database)

	obs := service.NewSlogUseCaseObserver(logger)

	app := &cli.App{
		Accounts:     service.NewAccountService(userRepo, companyRepo, orgregistry.Default(), uow, obs),
		Jobs:         service.NewJobService(jobRepo, obs),
		Applications: service.NewApplicationService(applicationRepo, jobRepo, userRepo, uow, obs),
		ActiveJobs:   service.NewActiveJobService(jobRepo, userRepo, workLogRepo, changeRepo, paymentRepo, uow, obs),
		Reports:      service.NewReportService(reportRepo, jobRepo, obs),
		Reviews:      service.NewReviewService(reviewRepo, jobRepo, obs),
		Team:         service.NewTeamService(teamRepo, obs),
		Payments:     service.NewPaymentService(paymentRepo, obs),
		Dashboards:   service.NewDashboardService(jobRepo, applicationRepo, changeRepo, paymentRepo, reviewRepo),
		Import:       service.NewImportService(uow, obs),

		Config: cfg,
		Logger: logger,
	}

	// Detect interactive terminal for the TUI entrypoint.
	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	// Execute root command
	rootCmd := cli.NewRootCmd(app)
	return rootCmd.Execute()
}
