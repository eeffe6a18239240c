package database

import (
	"context"

	"go.uber.org/zap"

	"github.com/P3chys/scholarshub-api/internal/config"
	"github.com/P3chys/scholarshub-api/internal/models"
	"github.com/P3chys/scholarshub-api/internal/repository"
	"github.com/P3chys/scholarshub-api/internal/services"
)

// SeedAdmin creates the configured admin account if no admin exists.
func SeedAdmin(ctx context.Context, accounts *services.AccountService, cfg *config.Config) error {
	_, err := accounts.SeedAdmin(ctx, cfg.AdminEmail, cfg.AdminPassword, cfg.AdminName)
	return err
}

// SeedResources imports fixtures into an empty collection. The fixtures are
// given oldest first, so the last one ends up at the head.
func SeedResources(ctx context.Context, repo repository.ResourceRepository, resources *services.ResourceService, fixtures []models.Resource, log *zap.Logger) (int, error) {
	existing, err := repo.Snapshot(ctx)
	if err != nil {
		return 0, err
	}
	if len(existing) > 0 {
		log.Debug("resources already present, skipping seed", zap.Int("count", len(existing)))
		return 0, nil
	}

	for _, r := range fixtures {
		if _, err := resources.Import(ctx, r); err != nil {
			return 0, err
		}
	}

	log.Info("seeded resources", zap.Int("count", len(fixtures)))
	return len(fixtures), nil
}
