package services

import (
	"context"

	"go.uber.org/zap"

	"github.com/P3chys/scholarshub-api/internal/apperrors"
	"github.com/P3chys/scholarshub-api/internal/catalog"
	"github.com/P3chys/scholarshub-api/internal/models"
	"github.com/P3chys/scholarshub-api/internal/repository"
	"github.com/P3chys/scholarshub-api/internal/session"
)

// BrowseService serves the student-facing, read-only views.
type BrowseService struct {
	catalog *catalog.Catalog
	repo    repository.ResourceRepository
	logger  *zap.Logger
}

func NewBrowseService(c *catalog.Catalog, repo repository.ResourceRepository, logger *zap.Logger) *BrowseService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &BrowseService{catalog: c, repo: repo, logger: logger}
}

func (s *BrowseService) Departments() []models.Department {
	return s.catalog.Departments()
}

func (s *BrowseService) DepartmentsForYear(year int) []models.Department {
	return DepartmentsForYear(s.catalog, year)
}

func (s *BrowseService) Department(id string) (models.Department, error) {
	d, ok := s.catalog.Department(id)
	if !ok {
		return models.Department{}, apperrors.Clone(apperrors.ErrNotFound, "department not found")
	}
	return d, nil
}

func (s *BrowseService) Subject(id string) (models.Subject, error) {
	subject, ok := s.catalog.Subject(id)
	if !ok {
		return models.Subject{}, apperrors.Clone(apperrors.ErrNotFound, "subject not found")
	}
	return subject, nil
}

func (s *BrowseService) Subjects(department string, semester int) []models.Subject {
	return SubjectsFor(s.catalog, department, semester)
}

func (s *BrowseService) SubjectsForYear(year int, department string) []models.Subject {
	return SubjectsForYear(s.catalog, year, department)
}

// SubjectResources lists approved resources for a subject tab. A subject
// with no matches, known or not, is an empty list.
func (s *BrowseService) SubjectResources(ctx context.Context, subjectID string, t models.ResourceType) ([]models.Resource, error) {
	if !t.Valid() {
		return nil, apperrors.Clone(apperrors.ErrValidation, "unknown resource type")
	}

	snapshot, err := s.repo.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return ResourcesFor(snapshot, subjectID, t), nil
}

func (s *BrowseService) Recent(ctx context.Context, limit int) ([]models.Resource, error) {
	snapshot, err := s.repo.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return RecentApproved(snapshot, limit), nil
}

// Resource returns one resource. Only admins can see resources that are not
// approved; everyone else gets not found.
func (s *BrowseService) Resource(ctx context.Context, sess *session.Context, id string) (models.Resource, error) {
	r, err := s.repo.Get(ctx, id)
	if err != nil {
		return models.Resource{}, err
	}
	if r.Status != models.StatusApproved {
		if _, err := sess.RequireAdmin(); err != nil {
			return models.Resource{}, apperrors.Clone(apperrors.ErrNotFound, "resource not found")
		}
	}
	return r, nil
}

// Download counts a download of an approved resource and returns it.
func (s *BrowseService) Download(ctx context.Context, sess *session.Context, id string) (models.Resource, error) {
	r, err := s.Resource(ctx, sess, id)
	if err != nil {
		return models.Resource{}, err
	}
	if r.Status != models.StatusApproved {
		return models.Resource{}, apperrors.Clone(apperrors.ErrConflict, "resource is not published")
	}

	r, err = s.repo.IncrementDownloads(ctx, id)
	if err != nil {
		return models.Resource{}, err
	}
	s.logger.Debug("resource downloaded", zap.String("resource_id", id), zap.Int64("download_count", r.DownloadCount))
	return r, nil
}
