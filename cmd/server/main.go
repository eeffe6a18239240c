package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"github.com/P3chys/scholarshub-api/internal/catalog"
	"github.com/P3chys/scholarshub-api/internal/config"
	"github.com/P3chys/scholarshub-api/internal/database"
	"github.com/P3chys/scholarshub-api/internal/logger"
	"github.com/P3chys/scholarshub-api/internal/middleware"
	"github.com/P3chys/scholarshub-api/internal/repository"
	"github.com/P3chys/scholarshub-api/internal/router"
	"github.com/P3chys/scholarshub-api/internal/services"
	"github.com/P3chys/scholarshub-api/internal/session"
)

const shutdownTimeout = 10 * time.Second

func main() {
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

	if err := run(cfg, logr); err != nil {
		logr.Fatal("server stopped", zap.Error(err))
	}
}

func run(cfg *config.Config, logr *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	c, err := loadCatalog(cfg, logr)
	if err != nil {
		return err
	}

	var (
		db           *gorm.DB
		resourceRepo repository.ResourceRepository
		accountRepo  repository.AccountRepository
	)
	switch cfg.StorageDriver {
	case config.StoragePostgres:
		db, err = database.Connect(cfg.DatabaseURL, cfg.Env != config.EnvProduction, logr)
		if err != nil {
			return err
		}
		if sqlDB, err := db.DB(); err == nil {
			defer sqlDB.Close()
		}
		if err := database.RunMigrations(db, logr); err != nil {
			return err
		}
		resourceRepo = repository.NewGormResourceRepository(db)
		accountRepo = repository.NewGormAccountRepository(db)
	case config.StorageMemory:
		resourceRepo = repository.NewMemoryResourceRepository()
		accountRepo = repository.NewMemoryAccountRepository()
	default:
		return fmt.Errorf("unknown storage driver %q", cfg.StorageDriver)
	}

	var (
		rdb     *redis.Client
		store   session.Store
		limiter *middleware.RateLimiter
	)
	switch cfg.SessionStore {
	case config.SessionRedis:
		rdb, err = connectRedis(ctx, cfg.RedisURL)
		if err != nil {
			return err
		}
		defer rdb.Close()
		store = session.NewRedisStore(rdb)
		limiter = middleware.NewRedisRateLimiter(rdb)
	case config.SessionMemory:
		store = session.NewMemoryStore()
		limiter = middleware.NewMemoryRateLimiter()
	default:
		return fmt.Errorf("unknown session store %q", cfg.SessionStore)
	}

	validate := validator.New()
	accounts := services.NewAccountService(accountRepo, validate, logr)
	resources := services.NewResourceService(c, resourceRepo, validate, logr, cfg.ResourceIDOrigin)

	if err := database.SeedAdmin(ctx, accounts, cfg); err != nil {
		return fmt.Errorf("failed to seed admin: %w", err)
	}
	if cfg.SeedFixtures {
		if _, err := database.SeedResources(ctx, resourceRepo, resources, catalog.SampleResources(), logr); err != nil {
			logr.Warn("failed to seed sample resources", zap.Error(err))
		}
	}

	engine, err := router.Setup(cfg, router.Dependencies{
		Accounts:   accounts,
		Sessions:   services.NewSessionService(accounts, store, cfg, logr),
		Browse:     services.NewBrowseService(c, resourceRepo, logr),
		Resources:  resources,
		Moderation: services.NewModerationService(resourceRepo, logr),
		Limiter:    limiter,
		DB:         db,
		Redis:      rdb,
		Logger:     logr,
	})
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logr.Info("server starting",
			zap.String("addr", srv.Addr),
			zap.String("env", cfg.Env),
			zap.String("storage", cfg.StorageDriver),
			zap.String("sessions", cfg.SessionStore),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logr.Info("shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

func loadCatalog(cfg *config.Config, logr *zap.Logger) (*catalog.Catalog, error) {
	if cfg.CatalogFile == "" {
		return catalog.Default(), nil
	}

	c, err := catalog.Load(cfg.CatalogFile)
	if err != nil {
		return nil, err
	}
	logr.Info("catalog loaded",
		zap.String("file", cfg.CatalogFile),
		zap.Int("departments", len(c.Departments())),
		zap.Int("subjects", len(c.Subjects())),
	)
	return c, nil
}

func connectRedis(ctx context.Context, url string) (*redis.Client, error) {
	opt, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}

	client := redis.NewClient(opt)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	return client, nil
}
