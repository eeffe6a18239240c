package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/P3chys/scholarshub-api/internal/apperrors"
	"github.com/P3chys/scholarshub-api/internal/catalog"
	"github.com/P3chys/scholarshub-api/internal/models"
	"github.com/P3chys/scholarshub-api/internal/repository"
	"github.com/P3chys/scholarshub-api/internal/session"
	"github.com/P3chys/scholarshub-api/internal/utils"
)

const maxIDAttempts = 3

// SubmitResourceRequest is an upload as sent by a contributor. Department,
// semester and year are optional; when present they must agree with the
// subject.
type SubmitResourceRequest struct {
	Title      string              `json:"title" validate:"required,max=255"`
	Type       models.ResourceType `json:"type" validate:"required"`
	SubjectID  string              `json:"subject_id" validate:"required"`
	Department string              `json:"department"`
	Semester   int                 `json:"semester" validate:"omitempty,min=1,max=8"`
	Year       int                 `json:"year" validate:"omitempty,min=1,max=4"`
	FileURL    string              `json:"file_url" validate:"max=500"`
}

type ResourceService struct {
	catalog   *catalog.Catalog
	repo      repository.ResourceRepository
	validator *validator.Validate
	logger    *zap.Logger
	origin    string
	now       func() time.Time
}

func NewResourceService(c *catalog.Catalog, repo repository.ResourceRepository, validate *validator.Validate, logger *zap.Logger, origin string) *ResourceService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ResourceService{
		catalog:   c,
		repo:      repo,
		validator: validate,
		logger:    logger,
		origin:    origin,
		now:       time.Now,
	}
}

// Submit builds a pending resource from req and inserts it at the head of the
// collection. Any authenticated user may submit.
func (s *ResourceService) Submit(ctx context.Context, sess *session.Context, req SubmitResourceRequest) (models.Resource, error) {
	user, err := sess.RequireUser()
	if err != nil {
		return models.Resource{}, err
	}

	req.Title = strings.TrimSpace(req.Title)
	req.SubjectID = strings.TrimSpace(req.SubjectID)
	req.Department = strings.TrimSpace(req.Department)
	if err := s.validator.Struct(req); err != nil {
		return models.Resource{}, apperrors.Wrap(apperrors.ErrValidation, err, "invalid resource payload")
	}

	r := models.Resource{
		Title:         req.Title,
		Type:          req.Type,
		Year:          req.Year,
		Department:    req.Department,
		Semester:      req.Semester,
		SubjectID:     req.SubjectID,
		Author:        user.Name,
		UploadedBy:    user.ID,
		UploadDate:    s.now().Format(models.DateLayout),
		DownloadCount: 0,
		FileURL:       req.FileURL,
		Status:        models.StatusPending,
	}
	r, err = Normalize(s.catalog, r)
	if err != nil {
		return models.Resource{}, err
	}

	for attempt := 1; ; attempt++ {
		r.ID = utils.NewResourceID(s.origin)
		created, err := s.repo.Insert(ctx, r)
		if err == nil {
			s.logger.Info("resource submitted",
				zap.String("resource_id", created.ID),
				zap.String("subject_id", created.SubjectID),
				zap.String("type", string(created.Type)),
				zap.String("uploaded_by", user.ID),
			)
			return created, nil
		}
		if !apperrors.IsConflict(err) || attempt >= maxIDAttempts {
			return models.Resource{}, err
		}
	}
}

// Import inserts a pre-built resource, for seeding and bulk imports. The
// record is validated like a submission but keeps its id and status.
func (s *ResourceService) Import(ctx context.Context, r models.Resource) (models.Resource, error) {
	if strings.TrimSpace(r.ID) == "" {
		r.ID = utils.NewResourceID(s.origin)
	}
	if r.Status == "" {
		r.Status = models.StatusPending
	}
	if r.UploadDate == "" {
		r.UploadDate = s.now().Format(models.DateLayout)
	}

	r, err := Normalize(s.catalog, r)
	if err != nil {
		return models.Resource{}, err
	}
	return s.repo.Insert(ctx, r)
}

// Normalize checks a resource against the catalog and fills the fields that
// derive from its subject: department, semester, year and subject name.
func Normalize(c *catalog.Catalog, r models.Resource) (models.Resource, error) {
	invalid := func(format string, args ...any) (models.Resource, error) {
		return models.Resource{}, apperrors.Clone(apperrors.ErrValidation, fmt.Sprintf(format, args...))
	}

	if strings.TrimSpace(r.Title) == "" {
		return invalid("title is required")
	}
	if !r.Type.Valid() {
		return invalid("unknown resource type %q", r.Type)
	}
	if r.DownloadCount < 0 {
		return invalid("download count cannot be negative")
	}
	switch r.Status {
	case models.StatusPending, models.StatusApproved, models.StatusRejected:
	default:
		return invalid("unknown status %q", r.Status)
	}
	if _, err := time.Parse(models.DateLayout, r.UploadDate); err != nil {
		return invalid("upload date must be YYYY-MM-DD")
	}

	subject, ok := c.Subject(r.SubjectID)
	if !ok {
		return invalid("unknown subject %q", r.SubjectID)
	}
	if _, ok := c.Department(subject.Department); !ok {
		return invalid("unknown department %q", subject.Department)
	}
	if r.Department != "" && r.Department != subject.Department {
		return invalid("subject %s is not offered by department %s", subject.ID, r.Department)
	}
	if r.Semester != 0 && r.Semester != subject.Semester {
		return invalid("subject %s is taught in semester %d, not %d", subject.ID, subject.Semester, r.Semester)
	}
	year := models.YearForSemester(subject.Semester)
	if r.Year != 0 && r.Year != year {
		return invalid("semester %d belongs to year %d, not %d", subject.Semester, year, r.Year)
	}

	r.Department = subject.Department
	r.Semester = subject.Semester
	r.Year = year
	r.Subject = subject.Name
	return r, nil
}
