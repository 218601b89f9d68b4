package main

// Run database migrations:
//   go run ./cmd/migrate [up|down]

import (
	"context"
	"errors"
	"flag"
	"log"
	"os"

	"resume-builder/internal/shared/config"
	"resume-builder/internal/shared/storage/db"
)

func main() {
	flag.Parse()
	direction := "up"
	if flag.NArg() > 0 {
		direction = flag.Arg(0)
	}

	// Migrations never call the generator, so a missing token is fine here.
	cfg, err := config.Load()
	if err != nil && !errors.Is(err, config.ErrMissingAPIToken) {
		log.Printf("config error: %v", err)
		os.Exit(1)
	}
	if cfg.DatabaseURL == "" {
		log.Printf("DATABASE_URL is required")
		os.Exit(1)
	}
	ctx := context.Background()

	opts := db.OptionsFromEnv(db.MigrateOptions())
	sqlDB, err := db.Connect(ctx, cfg.DatabaseURL, opts)
	if err != nil {
		log.Printf("failed to connect database: %v", err)
		os.Exit(1)
	}
	defer sqlDB.Close()

	switch direction {
	case "up":
		err = db.RunMigrations(ctx, sqlDB)
	case "down":
		err = db.RollbackMigration(ctx, sqlDB)
	default:
		log.Printf("unknown direction %q (want up or down)", direction)
		os.Exit(2)
	}
	if err != nil {
		log.Printf("failed to run migrations %s: %v", direction, err)
		os.Exit(1)
	}
}
