package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/phrazzld/dailyplan-api/internal/config"
	"github.com/phrazzld/dailyplan-api/internal/platform/gemini"
	"github.com/phrazzld/dailyplan-api/internal/platform/postgres"
	"github.com/phrazzld/dailyplan-api/internal/service"
	"github.com/phrazzld/dailyplan-api/internal/service/auth"
)

// application holds the shared dependencies of the server and closes them
// on shutdown.
type application struct {
	config *config.Config
	logger *slog.Logger
	db     *sql.DB

	jwtService  auth.JWTService
	userService service.UserService
	planService service.PlanService
}

// newApplication wires stores, services and the task generator.
func newApplication(cfg *config.Config, logger *slog.Logger, db *sql.DB) (*application, error) {
	app := &application{
		config: cfg,
		logger: logger,
		db:     db,
	}

	var err error
	app.jwtService, err = auth.NewJWTService(cfg.Auth)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize JWT service: %w", err)
	}
	logger.Info("JWT authentication service initialized",
		"token_lifetime_minutes", cfg.Auth.TokenLifetimeMinutes)

	userStore := postgres.NewPostgresUserStore(db, logger)
	planStore := postgres.NewPostgresPlanStore(db, logger)

	app.userService, err = service.NewUserService(userStore, auth.NewBcryptHasher(cfg.Auth.BCryptCost), logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create user service: %w", err)
	}

	generator, err := gemini.NewGenerator(
		logger.With("component", "task_generator"),
		cfg.LLM,
		nil,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize task generator: %w", err)
	}

	app.planService, err = service.NewPlanService(
		planStore,
		service.NewSQLPlanTxRunner(db, planStore),
		generator,
		logger,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create plan service: %w", err)
	}

	logger.Info("application initialized",
		"generation_available", app.planService.GenerationAvailable())
	return app, nil
}

// Run serves HTTP until ctx is canceled, then releases resources.
func (app *application) Run(ctx context.Context) error {
	defer app.cleanup()

	if err := app.startHTTPServer(ctx, app.setupRouter()); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// cleanup closes the database connection.
func (app *application) cleanup() {
	if app.db != nil {
		closeDB(app.db, app.logger)
	}
	app.logger.Info("application shutdown completed")
}

func closeDB(db *sql.DB, logger *slog.Logger) {
	if err := db.Close(); err != nil {
		logger.Error("error closing database connection", "error", err)
	}
}
