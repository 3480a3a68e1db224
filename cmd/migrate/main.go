package main

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"titans-lacrosse/config"
	"titans-lacrosse/migrations"
	"titans-lacrosse/packages/logging"

	"go.uber.org/zap"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		return
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration:", err)
	}

	logger, err := logging.New(logging.Config{Level: cfg.Log.Level, Format: cfg.Log.Format})
	if err != nil {
		log.Fatal("Failed to build logger:", err)
	}
	defer logger.Sync()

	db, err := config.ConnectDatabase(cfg.Database, logger)
	if err != nil {
		logger.Fatal("failed to connect to database", zap.Error(err))
	}

	migrator, err := migrations.NewMigrator(db, logging.Component(logger, "migrations"))
	if err != nil {
		logger.Fatal("failed to create migrator", zap.Error(err))
	}
	for _, migration := range migrations.All() {
		migrator.AddMigration(migration)
	}

	command := os.Args[1]

	switch command {
	case "migrate":
		if err := migrator.Migrate(); err != nil {
			logger.Fatal("migration failed", zap.Error(err))
		}
	case "rollback":
		steps := 1
		if len(os.Args) > 2 {
			if s, err := strconv.Atoi(os.Args[2]); err == nil {
				steps = s
			}
		}
		if err := migrator.Rollback(steps); err != nil {
			logger.Fatal("rollback failed", zap.Error(err))
		}
	case "status":
		showStatus(migrator)
	case "pending":
		showPending(migrator)
	default:
		fmt.Printf("Unknown command: %s\n", command)
		printUsage()
	}
}

func printUsage() {
	fmt.Println("Usage:")
	fmt.Println("  go run ./cmd/migrate migrate          - Run pending migrations")
	fmt.Println("  go run ./cmd/migrate rollback [steps] - Rollback migrations (default: 1)")
	fmt.Println("  go run ./cmd/migrate status           - Show migration status")
	fmt.Println("  go run ./cmd/migrate pending          - List migrations not yet run")
}

func showStatus(migrator *migrations.Migrator) {
	records, err := migrator.Status()
	if err != nil {
		log.Fatal("Failed to read migration status:", err)
	}

	if len(records) == 0 {
		fmt.Println("No migrations have been run yet.")
		return
	}

	fmt.Println("Migration Status:")
	fmt.Println("Batch | Name")
	fmt.Println("------|-----")

	for _, migration := range records {
		fmt.Printf("%-5d | %s\n", migration.Batch, migration.Name)
	}
}

func showPending(migrator *migrations.Migrator) {
	pending, err := migrator.Pending()
	if err != nil {
		log.Fatal("Failed to list pending migrations:", err)
	}

	if len(pending) == 0 {
		fmt.Println("Nothing to migrate.")
		return
	}

	for _, name := range pending {
		fmt.Println(name)
	}
}
