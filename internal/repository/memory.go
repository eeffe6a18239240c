package repository

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/P3chys/scholarshub-api/internal/apperrors"
	"github.com/P3chys/scholarshub-api/internal/models"
)

type MemoryResourceRepository struct {
	mu        sync.RWMutex
	resources []models.Resource // head is most recent
	seq       int64
}

func NewMemoryResourceRepository() *MemoryResourceRepository {
	return &MemoryResourceRepository{}
}

func (m *MemoryResourceRepository) Insert(_ context.Context, r models.Resource) (models.Resource, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.indexOf(r.ID) >= 0 {
		return models.Resource{}, errDuplicateResource(r.ID)
	}

	m.seq++
	r.Seq = m.seq
	if r.CreatedAt.IsZero() {
		r.CreatedAt = time.Now()
	}

	m.resources = append([]models.Resource{r}, m.resources...)
	return r, nil
}

func (m *MemoryResourceRepository) UpdateStatus(_ context.Context, id string, status models.ResourceStatus) (models.Resource, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	i := m.indexOf(id)
	if i < 0 {
		return models.Resource{}, errResourceNotFound()
	}

	apply, err := checkTransition(m.resources[i].Status, status)
	if err != nil {
		return models.Resource{}, err
	}
	if apply {
		m.resources[i].Status = status
	}
	return m.resources[i], nil
}

func (m *MemoryResourceRepository) Get(_ context.Context, id string) (models.Resource, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	i := m.indexOf(id)
	if i < 0 {
		return models.Resource{}, errResourceNotFound()
	}
	return m.resources[i], nil
}

func (m *MemoryResourceRepository) Snapshot(_ context.Context) ([]models.Resource, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return append([]models.Resource{}, m.resources...), nil
}

func (m *MemoryResourceRepository) IncrementDownloads(_ context.Context, id string) (models.Resource, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	i := m.indexOf(id)
	if i < 0 {
		return models.Resource{}, errResourceNotFound()
	}
	m.resources[i].DownloadCount++
	return m.resources[i], nil
}

func (m *MemoryResourceRepository) indexOf(id string) int {
	for i := range m.resources {
		if m.resources[i].ID == id {
			return i
		}
	}
	return -1
}

type MemoryAccountRepository struct {
	mu       sync.RWMutex
	accounts map[string]models.Account
}

func NewMemoryAccountRepository() *MemoryAccountRepository {
	return &MemoryAccountRepository{accounts: make(map[string]models.Account)}
}

func (m *MemoryAccountRepository) Create(_ context.Context, a *models.Account) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, existing := range m.accounts {
		if strings.EqualFold(existing.Email, a.Email) {
			return apperrors.Clone(apperrors.ErrConflict, "email already exists")
		}
	}

	// BeforeCreate is a gorm hook; call it for parity.
	if err := a.BeforeCreate(nil); err != nil {
		return err
	}
	now := time.Now()
	a.CreatedAt = now
	a.UpdatedAt = now
	m.accounts[a.ID] = *a
	return nil
}

func (m *MemoryAccountRepository) FindByID(_ context.Context, id string) (models.Account, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	a, ok := m.accounts[id]
	if !ok {
		return models.Account{}, errAccountNotFound()
	}
	return a, nil
}

func (m *MemoryAccountRepository) FindByEmail(_ context.Context, email string) (models.Account, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, a := range m.accounts {
		if strings.EqualFold(a.Email, email) {
			return a, nil
		}
	}
	return models.Account{}, errAccountNotFound()
}

func (m *MemoryAccountRepository) CountByRole(_ context.Context, role models.UserRole) (int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var n int64
	for _, a := range m.accounts {
		if a.Role == role {
			n++
		}
	}
	return n, nil
}
