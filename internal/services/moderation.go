package services

import (
	"context"

	"go.uber.org/zap"

	"github.com/P3chys/scholarshub-api/internal/models"
	"github.com/P3chys/scholarshub-api/internal/repository"
	"github.com/P3chys/scholarshub-api/internal/session"
)

// ModerationSummary backs the admin dashboard counters.
type ModerationSummary struct {
	Pending        int   `json:"pending"`
	Moderated      int   `json:"moderated"`
	TotalResources int   `json:"total_resources"`
	TotalDownloads int64 `json:"total_downloads"`
}

// ModerationService exposes the review queue. Every method requires an admin
// session.
type ModerationService struct {
	repo   repository.ResourceRepository
	logger *zap.Logger
}

func NewModerationService(repo repository.ResourceRepository, logger *zap.Logger) *ModerationService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ModerationService{repo: repo, logger: logger}
}

func (s *ModerationService) ListPending(ctx context.Context, sess *session.Context) ([]models.Resource, error) {
	pending, _, err := s.partition(ctx, sess)
	return pending, err
}

// ListHistory returns every resource that has left the pending state.
func (s *ModerationService) ListHistory(ctx context.Context, sess *session.Context) ([]models.Resource, error) {
	_, history, err := s.partition(ctx, sess)
	return history, err
}

func (s *ModerationService) Approve(ctx context.Context, sess *session.Context, id string) (models.Resource, error) {
	return s.decide(ctx, sess, id, models.StatusApproved)
}

func (s *ModerationService) Reject(ctx context.Context, sess *session.Context, id string) (models.Resource, error) {
	return s.decide(ctx, sess, id, models.StatusRejected)
}

// Summary counts downloads over the whole collection, not only approved
// resources.
func (s *ModerationService) Summary(ctx context.Context, sess *session.Context) (ModerationSummary, error) {
	if _, err := sess.RequireAdmin(); err != nil {
		return ModerationSummary{}, err
	}

	snapshot, err := s.repo.Snapshot(ctx)
	if err != nil {
		return ModerationSummary{}, err
	}

	pending, history := PartitionByStatus(snapshot)
	summary := ModerationSummary{
		Pending:        len(pending),
		Moderated:      len(history),
		TotalResources: len(snapshot),
	}
	for _, r := range snapshot {
		summary.TotalDownloads += r.DownloadCount
	}
	return summary, nil
}

func (s *ModerationService) partition(ctx context.Context, sess *session.Context) ([]models.Resource, []models.Resource, error) {
	if _, err := sess.RequireAdmin(); err != nil {
		return nil, nil, err
	}

	snapshot, err := s.repo.Snapshot(ctx)
	if err != nil {
		return nil, nil, err
	}
	pending, history := PartitionByStatus(snapshot)
	return pending, history, nil
}

func (s *ModerationService) decide(ctx context.Context, sess *session.Context, id string, status models.ResourceStatus) (models.Resource, error) {
	moderator, err := sess.RequireAdmin()
	if err != nil {
		return models.Resource{}, err
	}

	r, err := s.repo.UpdateStatus(ctx, id, status)
	if err != nil {
		s.logger.Warn("moderation failed",
			zap.String("resource_id", id),
			zap.String("status", string(status)),
			zap.String("moderator", moderator.ID),
			zap.Error(err),
		)
		return models.Resource{}, err
	}

	s.logger.Info("resource moderated",
		zap.String("resource_id", id),
		zap.String("status", string(r.Status)),
		zap.String("moderator", moderator.ID),
	)
	return r, nil
}
