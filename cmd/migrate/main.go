package main

import (
	"context"
	"flag"
	"log"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/P3chys/scholarshub-api/internal/catalog"
	"github.com/P3chys/scholarshub-api/internal/config"
	"github.com/P3chys/scholarshub-api/internal/database"
	"github.com/P3chys/scholarshub-api/internal/logger"
	"github.com/P3chys/scholarshub-api/internal/repository"
	"github.com/P3chys/scholarshub-api/internal/services"
)

func main() {
	seed := flag.Bool("seed", false, "import the sample resources into an empty collection")
	flag.Parse()

	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	cfg := config.Load()

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	ctx := context.Background()

	db, err := database.Connect(cfg.DatabaseURL, false, logr)
	if err != nil {
		logr.Fatal("failed to connect to database", zap.Error(err))
	}

	if err := database.RunMigrations(db, logr); err != nil {
		logr.Fatal("migration failed", zap.Error(err))
	}

	accounts := services.NewAccountService(repository.NewGormAccountRepository(db), nil, logr)
	if err := database.SeedAdmin(ctx, accounts, cfg); err != nil {
		logr.Fatal("failed to seed admin", zap.Error(err))
	}

	if *seed {
		c := catalog.Default()
		if cfg.CatalogFile != "" {
			if c, err = catalog.Load(cfg.CatalogFile); err != nil {
				logr.Fatal("failed to load catalog", zap.Error(err))
			}
		}

		repo := repository.NewGormResourceRepository(db)
		resources := services.NewResourceService(c, repo, nil, logr, cfg.ResourceIDOrigin)
		if _, err := database.SeedResources(ctx, repo, resources, catalog.SampleResources(), logr); err != nil {
			logr.Fatal("failed to seed resources", zap.Error(err))
		}
	}

	logr.Info("migration completed")
}
