package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/alexanderramin/csfplan/internal/cli"
	"github.com/alexanderramin/csfplan/internal/config"
	"github.com/alexanderramin/csfplan/internal/db"
	"github.com/alexanderramin/csfplan/internal/repository"
	"github.com/alexanderramin/csfplan/internal/service"
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
	logger := cfg.Logger(os.Stderr)

	database, err := db.OpenDB(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()
	logger.Debug("database opened", "path", cfg.DBPath)

	// Wire repositories
	taxonomyRepo := repository.NewSQLiteTaxonomyRepo(database)
	profileRepo := repository.NewSQLiteProfileRepo(database)
	assessmentRepo := repository.NewSQLiteAssessmentRepo(database)
	depRepo := repository.NewSQLiteDependencyRepo(database)

	uow := db.NewSQLiteUnitOfWork(database)

	observers := []service.UseCaseObserver{service.NewSlogUseCaseObserver(logger)}
	if cfg.LogFile != "" {
		logFile, err := cfg.OpenLogFile()
		if err != nil {
			return err
		}
		defer logFile.Close()
		observers = append(observers, service.NewLogUseCaseObserver(logFile))
	}

	app := &cli.App{
		Catalog:      service.NewCatalogService(taxonomyRepo, uow, observers...),
		Profiles:     service.NewProfileService(profileRepo, uow),
		Assessments:  service.NewAssessmentService(assessmentRepo, profileRepo, taxonomyRepo),
		Dependencies: service.NewDependencyService(depRepo, taxonomyRepo),
		Import:       service.NewImportService(taxonomyRepo, uow),
		Gaps:         service.NewGapAnalysisService(taxonomyRepo, profileRepo, assessmentRepo, observers...),
		Matrix:       service.NewPriorityMatrixService(taxonomyRepo, profileRepo, assessmentRepo, cfg.HourlyRate, observers...),
		NextActions:  service.NewNextActionsService(taxonomyRepo, profileRepo, assessmentRepo, depRepo, observers...),

		DefaultCapacity: cfg.DefaultCapacity,
		DefaultHorizon:  cfg.DefaultHorizon,
	}

	// Forms only run on a real terminal.
	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	return cli.NewRootCmd(app).ExecuteContext(ctx)
}
