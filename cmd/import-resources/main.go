package main

import (
	"context"
	"flag"
	"log"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/P3chys/scholarshub-api/internal/apperrors"
	"github.com/P3chys/scholarshub-api/internal/catalog"
	"github.com/P3chys/scholarshub-api/internal/config"
	"github.com/P3chys/scholarshub-api/internal/database"
	"github.com/P3chys/scholarshub-api/internal/logger"
	"github.com/P3chys/scholarshub-api/internal/repository"
	"github.com/P3chys/scholarshub-api/internal/services"
)

func main() {
	file := flag.String("file", "resources.yaml", "YAML file with a top-level resources list")
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

	c := catalog.Default()
	if cfg.CatalogFile != "" {
		if c, err = catalog.Load(cfg.CatalogFile); err != nil {
			logr.Fatal("failed to load catalog", zap.Error(err))
		}
	}

	records, err := catalog.LoadResources(*file)
	if err != nil {
		logr.Fatal("failed to read resources", zap.Error(err))
	}

	db, err := database.Connect(cfg.DatabaseURL, false, logr)
	if err != nil {
		logr.Fatal("failed to connect to database", zap.Error(err))
	}
	if err := database.RunMigrations(db, logr); err != nil {
		logr.Fatal("failed to run migrations", zap.Error(err))
	}

	resources := services.NewResourceService(c, repository.NewGormResourceRepository(db), nil, logr, cfg.ResourceIDOrigin)

	ctx := context.Background()
	imported, skipped := 0, 0
	for i, r := range records {
		created, err := resources.Import(ctx, r)
		switch {
		case err == nil:
			imported++
			logr.Debug("imported resource", zap.String("resource_id", created.ID))
		case apperrors.IsValidation(err) || apperrors.IsConflict(err):
			skipped++
			logr.Warn("skipping resource",
				zap.Int("index", i),
				zap.String("resource_id", r.ID),
				zap.String("title", r.Title),
				zap.Error(err),
			)
		default:
			logr.Fatal("import failed", zap.Int("index", i), zap.Error(err))
		}
	}

	logr.Info("import completed",
		zap.String("file", *file),
		zap.Int("imported", imported),
		zap.Int("skipped", skipped),
	)
}
