// Package repository owns the resource collection and the account directory.
// Each store has an in-memory implementation and a gorm implementation.
package repository

import (
	"context"

	"github.com/P3chys/scholarshub-api/internal/apperrors"
	"github.com/P3chys/scholarshub-api/internal/models"
)

// ResourceRepository is the single source of truth for resources. Reads are
// full snapshots ordered most-recent-first.
type ResourceRepository interface {
	// Insert places r at the head of the collection.
	Insert(ctx context.Context, r models.Resource) (models.Resource, error)
	// UpdateStatus moves a pending resource to a terminal status.
	UpdateStatus(ctx context.Context, id string, status models.ResourceStatus) (models.Resource, error)
	Get(ctx context.Context, id string) (models.Resource, error)
	Snapshot(ctx context.Context) ([]models.Resource, error)
	IncrementDownloads(ctx context.Context, id string) (models.Resource, error)
}

type AccountRepository interface {
	Create(ctx context.Context, a *models.Account) error
	FindByID(ctx context.Context, id string) (models.Account, error)
	FindByEmail(ctx context.Context, email string) (models.Account, error)
	CountByRole(ctx context.Context, role models.UserRole) (int64, error)
}

func errResourceNotFound() error {
	return apperrors.Clone(apperrors.ErrNotFound, "resource not found")
}

func errAccountNotFound() error {
	return apperrors.Clone(apperrors.ErrNotFound, "account not found")
}

func errDuplicateResource(id string) error {
	return apperrors.Clone(apperrors.ErrConflict, "resource "+id+" already exists")
}

// checkTransition decides an update against the current status. It returns
// apply=false with a nil error when the update is an idempotent repeat.
func checkTransition(current, next models.ResourceStatus) (apply bool, err error) {
	if !next.Terminal() {
		return false, apperrors.Clone(apperrors.ErrValidation, "status must be approved or rejected")
	}
	switch {
	case current == models.StatusPending:
		return true, nil
	case current == next:
		return false, nil
	default:
		return false, apperrors.Clone(apperrors.ErrInvalidTransition, "resource already "+string(current))
	}
}
