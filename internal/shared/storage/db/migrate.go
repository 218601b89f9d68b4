package db

import (
	"context"
	"database/sql"
	"embed"
	"fmt"

	"github.com/pressly/goose/v3"
)

//go:embed migrations/*.sql
var migrationFiles embed.FS

const migrationsDir = "migrations"

// RunMigrations applies embedded goose migrations. A nil database is a no-op so
// the in-memory repository can run without Postgres.
func RunMigrations(ctx context.Context, database *sql.DB) error {
	return migrate(ctx, database, "up")
}

// RollbackMigration reverts the most recent migration.
func RollbackMigration(ctx context.Context, database *sql.DB) error {
	return migrate(ctx, database, "down")
}

func migrate(ctx context.Context, database *sql.DB, direction string) error {
	if database == nil {
		return nil
	}
	goose.SetBaseFS(migrationFiles)
	if err := goose.SetDialect("postgres"); err != nil {
		return err
	}
	switch direction {
	case "up":
		return goose.UpContext(ctx, database, migrationsDir)
	case "down":
		return goose.DownContext(ctx, database, migrationsDir)
	default:
		return fmt.Errorf("unknown migration direction %q", direction)
	}
}
