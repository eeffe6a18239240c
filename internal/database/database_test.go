package database

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"

	"github.com/P3chys/scholarshub-api/internal/catalog"
	"github.com/P3chys/scholarshub-api/internal/config"
	"github.com/P3chys/scholarshub-api/internal/models"
	"github.com/P3chys/scholarshub-api/internal/repository"
	"github.com/P3chys/scholarshub-api/internal/services"
)

func TestMigrateAndSeed(t *testing.T) {
	ctx := context.Background()
	log := zap.NewNop()

	db, err := Open(sqlite.Open(":memory:"), false)
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, RunMigrations(db, log))

	accounts := services.NewAccountService(repository.NewGormAccountRepository(db), nil, log)
	cfg := &config.Config{AdminEmail: "admin@college.edu", AdminPassword: "AdminPassword123!", AdminName: "Admin Controller"}
	require.NoError(t, SeedAdmin(ctx, accounts, cfg))
	require.NoError(t, SeedAdmin(ctx, accounts, cfg))

	admin, err := accounts.Authenticate(ctx, "admin@college.edu", "AdminPassword123!")
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, admin.Role)

	repo := repository.NewGormResourceRepository(db)
	resources := services.NewResourceService(catalog.Default(), repo, nil, log, "hub")

	n, err := SeedResources(ctx, repo, resources, catalog.SampleResources(), log)
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	n, err = SeedResources(ctx, repo, resources, catalog.SampleResources(), log)
	require.NoError(t, err)
	assert.Zero(t, n)

	snapshot, err := repo.Snapshot(ctx)
	require.NoError(t, err)
	require.Len(t, snapshot, 3)
	assert.Equal(t, "res1", snapshot[0].ID)
	assert.Equal(t, "res3", snapshot[2].ID)
}
