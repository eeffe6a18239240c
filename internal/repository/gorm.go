package repository

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/P3chys/scholarshub-api/internal/apperrors"
	"github.com/P3chys/scholarshub-api/internal/models"
)

type GormResourceRepository struct {
	db *gorm.DB
}

func NewGormResourceRepository(db *gorm.DB) *GormResourceRepository {
	return &GormResourceRepository{db: db}
}

// insertAttempts bounds retries when a concurrent insert takes the same seq.
const insertAttempts = 5

// Insert assigns the next seq inside a transaction. Two writers can read the
// same MAX(seq); the loser hits the unique index and retries. The db must be
// opened with TranslateError so the violation surfaces as ErrDuplicatedKey.
func (g *GormResourceRepository) Insert(ctx context.Context, r models.Resource) (models.Resource, error) {
	var err error
	for attempt := 0; attempt < insertAttempts; attempt++ {
		err = g.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			var count int64
			if err := tx.Model(&models.Resource{}).Where("id = ?", r.ID).Count(&count).Error; err != nil {
				return err
			}
			if count > 0 {
				return errDuplicateResource(r.ID)
			}

			var maxSeq int64
			if err := tx.Model(&models.Resource{}).Select("COALESCE(MAX(seq), 0)").Scan(&maxSeq).Error; err != nil {
				return err
			}
			r.Seq = maxSeq + 1

			return tx.Create(&r).Error
		})
		if !errors.Is(err, gorm.ErrDuplicatedKey) {
			break
		}
	}
	if err != nil {
		return models.Resource{}, wrapDB(err, "failed to insert resource")
	}
	return r, nil
}

// UpdateStatus is a compare-and-set on status = pending, so two moderators
// racing on the same resource cannot both win.
func (g *GormResourceRepository) UpdateStatus(ctx context.Context, id string, status models.ResourceStatus) (models.Resource, error) {
	if !status.Terminal() {
		_, err := checkTransition(models.StatusPending, status)
		return models.Resource{}, err
	}

	db := g.db.WithContext(ctx)
	result := db.Model(&models.Resource{}).
		Where("id = ? AND status = ?", id, models.StatusPending).
		Update("status", status)
	if result.Error != nil {
		return models.Resource{}, wrapDB(result.Error, "failed to update resource status")
	}

	current, err := g.Get(ctx, id)
	if err != nil {
		return models.Resource{}, err
	}
	if result.RowsAffected == 1 {
		return current, nil
	}

	if _, err := checkTransition(current.Status, status); err != nil {
		return models.Resource{}, err
	}
	return current, nil
}

func (g *GormResourceRepository) Get(ctx context.Context, id string) (models.Resource, error) {
	var r models.Resource
	if err := g.db.WithContext(ctx).First(&r, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Resource{}, errResourceNotFound()
		}
		return models.Resource{}, wrapDB(err, "failed to fetch resource")
	}
	return r, nil
}

func (g *GormResourceRepository) Snapshot(ctx context.Context) ([]models.Resource, error) {
	resources := []models.Resource{}
	if err := g.db.WithContext(ctx).Order("seq desc").Find(&resources).Error; err != nil {
		return nil, wrapDB(err, "failed to fetch resources")
	}
	return resources, nil
}

func (g *GormResourceRepository) IncrementDownloads(ctx context.Context, id string) (models.Resource, error) {
	result := g.db.WithContext(ctx).Model(&models.Resource{}).
		Where("id = ?", id).
		Update("download_count", gorm.Expr("download_count + 1"))
	if result.Error != nil {
		return models.Resource{}, wrapDB(result.Error, "failed to count download")
	}
	if result.RowsAffected == 0 {
		return models.Resource{}, errResourceNotFound()
	}
	return g.Get(ctx, id)
}

type GormAccountRepository struct {
	db *gorm.DB
}

func NewGormAccountRepository(db *gorm.DB) *GormAccountRepository {
	return &GormAccountRepository{db: db}
}

func (g *GormAccountRepository) Create(ctx context.Context, a *models.Account) error {
	if _, err := g.FindByEmail(ctx, a.Email); err == nil {
		return apperrors.Clone(apperrors.ErrConflict, "email already exists")
	} else if !apperrors.IsNotFound(err) {
		return err
	}

	a.Email = strings.ToLower(a.Email)
	if err := g.db.WithContext(ctx).Create(a).Error; err != nil {
		return wrapDB(err, "failed to create account")
	}
	return nil
}

func (g *GormAccountRepository) FindByID(ctx context.Context, id string) (models.Account, error) {
	return g.findOne(ctx, "id = ?", id)
}

func (g *GormAccountRepository) FindByEmail(ctx context.Context, email string) (models.Account, error) {
	return g.findOne(ctx, "email = ?", strings.ToLower(email))
}

func (g *GormAccountRepository) CountByRole(ctx context.Context, role models.UserRole) (int64, error) {
	var count int64
	if err := g.db.WithContext(ctx).Model(&models.Account{}).Where("role = ?", role).Count(&count).Error; err != nil {
		return 0, wrapDB(err, "failed to count accounts")
	}
	return count, nil
}

func (g *GormAccountRepository) findOne(ctx context.Context, query string, arg string) (models.Account, error) {
	var a models.Account
	if err := g.db.WithContext(ctx).Where(query, arg).First(&a).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Account{}, errAccountNotFound()
		}
		return models.Account{}, wrapDB(err, "failed to fetch account")
	}
	return a, nil
}

// wrapDB passes typed errors through and wraps driver errors as internal.
func wrapDB(err error, message string) error {
	var appErr *apperrors.Error
	if errors.As(err, &appErr) {
		return appErr
	}
	return apperrors.Wrap(apperrors.ErrInternal, err, message)
}
