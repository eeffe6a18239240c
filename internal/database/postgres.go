package database

import (
	"fmt"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/P3chys/scholarshub-api/internal/models"
)

// Connect opens the Postgres database. SQL statements are logged only when
// debug is set.
func Connect(dsn string, debug bool, log *zap.Logger) (*gorm.DB, error) {
	db, err := Open(postgres.Open(dsn), debug)
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database instance: %w", err)
	}

	// Set connection pool settings
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)

	log.Info("database connected")
	return db, nil
}

// Open wraps gorm.Open with the project's logger settings. Driver errors
// are translated so unique violations match gorm.ErrDuplicatedKey.
func Open(dialector gorm.Dialector, debug bool) (*gorm.DB, error) {
	level := logger.Warn
	if debug {
		level = logger.Info
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:         logger.Default.LogMode(level),
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return db, nil
}

func RunMigrations(db *gorm.DB, log *zap.Logger) error {
	log.Info("running migrations")
	if err := db.AutoMigrate(&models.Resource{}, &models.Account{}); err != nil {
		return fmt.Errorf("failed to migrate: %w", err)
	}
	return nil
}
