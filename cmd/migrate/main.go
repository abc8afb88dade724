package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"trivia-api/internal/config"
	"trivia-api/internal/database"
	"trivia-api/internal/logger"

	"go.uber.org/zap"
)

func main() {
	direction := flag.String("direction", string(database.Up), "migration direction: up or down")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Printf("Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Initialize(cfg.Logger); err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()
	log := logger.Get()

	dir := database.Direction(*direction)
	if dir != database.Up && dir != database.Down {
		log.Fatal("Unknown migration direction", zap.String("direction", *direction))
	}

	ctx := context.Background()
	db, err := database.NewSQLXDB(ctx, cfg.DB, cfg.GetDSN())
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	if err := database.RunMigrations(ctx, db.DB, cfg.DB.Driver, dir); err != nil {
		log.Fatal("Failed to run migrations", zap.String("direction", string(dir)), zap.Error(err))
	}
	log.Info("Migrations complete", zap.String("direction", string(dir)), zap.String("driver", cfg.DB.Driver))
}
