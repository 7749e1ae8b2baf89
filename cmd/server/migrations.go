package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/phrazzld/dailyplan-api/internal/platform/postgres"
)

// handleMigrations runs one goose command against the embedded migrations.
func handleMigrations(ctx context.Context, db *sql.DB, command string, log *slog.Logger) error {
	switch command {
	case postgres.MigrateUp, postgres.MigrateDown, postgres.MigrateStatus,
		postgres.MigrateVersion, postgres.MigrateReset:
	default:
		return fmt.Errorf("unknown migration command %q", command)
	}

	log.Info("executing migrations", "command", command)
	if err := postgres.Migrate(ctx, db, command, log); err != nil {
		return fmt.Errorf("migration %q failed: %w", command, err)
	}
	return nil
}
