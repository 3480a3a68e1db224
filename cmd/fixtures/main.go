package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"titans-lacrosse/config"
	"titans-lacrosse/fixtures"
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

	ctx := context.Background()
	fixtureManager := fixtures.NewFixtures(db, logging.Component(logger, "fixtures"))

	command := os.Args[1]

	switch command {
	case "generate":
		if err := fixtureManager.GenerateTestData(ctx); err != nil {
			log.Fatal("Failed to generate fixtures:", err)
		}
		fmt.Println("Fixtures generated successfully!")
	case "clear":
		if err := fixtureManager.ClearAllData(ctx); err != nil {
			log.Fatal("Failed to clear fixtures:", err)
		}
		fmt.Println("All fixture data cleared!")
	case "regenerate":
		fmt.Println("Clearing existing data...")
		if err := fixtureManager.ClearAllData(ctx); err != nil {
			log.Fatal("Failed to clear fixtures:", err)
		}
		fmt.Println("Generating new fixtures...")
		if err := fixtureManager.GenerateTestData(ctx); err != nil {
			log.Fatal("Failed to generate fixtures:", err)
		}
		fmt.Println("Fixtures regenerated successfully!")
	case "create-admin":
		if len(os.Args) < 5 {
			printUsage()
			os.Exit(1)
		}
		user, err := fixtureManager.CreateAdmin(ctx, os.Args[2], os.Args[3], os.Args[4])
		if err != nil {
			log.Fatal("Failed to create admin:", err)
		}
		fmt.Printf("Admin %s created (id %d)\n", user.Email, user.ID)
	default:
		fmt.Printf("Unknown command: %s\n", command)
		printUsage()
	}
}

func printUsage() {
	fmt.Println("Usage:")
	fmt.Println("  go run ./cmd/fixtures generate                            - Generate a season of teams, games, results and players")
	fmt.Println("  go run ./cmd/fixtures clear                               - Clear all club data (accounts are kept)")
	fmt.Println("  go run ./cmd/fixtures regenerate                          - Clear and regenerate all data")
	fmt.Println("  go run ./cmd/fixtures create-admin <email> <user> <pass>  - Create an admin account")
}
