// Package main implements the entry point for the daily plan API server,
// which stores users' dated task lists and turns free-form paragraphs into
// tasks through the Gemini API.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/phrazzld/dailyplan-api/internal/config"
	"github.com/phrazzld/dailyplan-api/internal/platform/logger"
	"github.com/phrazzld/dailyplan-api/internal/platform/postgres"
)

func main() {
	migrateCmd := flag.String("migrate", "", "run a migration command (up, down, status, version, reset) and exit")
	configFile := flag.String("config", "", "path to a config file")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, config.Options{ConfigFile: *configFile, EnvFile: ".env"}, *migrateCmd); err != nil {
		log.Fatalf("dailyplan-api: %v", err)
	}
}

// run loads configuration, connects to the database and either executes a
// migration command or serves HTTP until ctx is canceled.
func run(ctx context.Context, opts config.Options, migrateCmd string) error {
	cfg, err := config.LoadWithOptions(opts)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	appLogger, err := logger.Setup(cfg.Server)
	if err != nil {
		return fmt.Errorf("failed to set up logger: %w", err)
	}

	appLogger.Info("server configuration loaded",
		"port", cfg.Server.Port,
		"log_level", cfg.Server.LogLevel,
		"llm_transport", cfg.LLM.Transport)
	appLogger.Debug("generation credential", "present", cfg.LLM.GeminiAPIKey != "")

	db, err := postgres.Open(ctx, cfg.Database.URL, appLogger)
	if err != nil {
		return err
	}

	if migrateCmd != "" {
		defer closeDB(db, appLogger)
		return handleMigrations(ctx, db, migrateCmd, appLogger)
	}

	app, err := newApplication(cfg, appLogger, db)
	if err != nil {
		closeDB(db, appLogger)
		return fmt.Errorf("failed to initialize application: %w", err)
	}
	return app.Run(ctx)
}
