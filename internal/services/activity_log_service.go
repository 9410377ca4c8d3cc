package services

import (
	"context"
	"encoding/json"

	"github.com/stwalsh4118/rentdesk/internal/logger"
	"github.com/stwalsh4118/rentdesk/internal/models"
	"github.com/stwalsh4118/rentdesk/internal/repository"
	"gorm.io/datatypes"
)

// ActivityLogService records and reads the audit trail.
type ActivityLogService interface {
	Recorder

	List(ctx context.Context, userID uint, p repository.Pagination) (repository.Page[models.ActivityLog], error)
	Get(ctx context.Context, id uint) (*models.ActivityLog, error)
	Delete(ctx context.Context, id uint) error
}

type activityLogService struct {
	repo repository.ActivityLogRepository
	log  *logger.Logger
}

// NewActivityLogService creates a new ActivityLogService.
func NewActivityLogService(repo repository.ActivityLogRepository, log *logger.Logger) ActivityLogService {
	return &activityLogService{repo: repo, log: log}
}

// Record stores an audit entry. The action it describes has already been
// committed, so a failure here is logged and not returned.
func (s *activityLogService) Record(ctx context.Context, actor Actor, action string, details map[string]interface{}) {
	entry := &models.ActivityLog{UserID: actor.userRef(), Action: action}

	if len(details) > 0 {
		raw, err := json.Marshal(details)
		if err != nil {
			s.log.Error("Failed to encode activity details", err, map[string]interface{}{"action": action})
		} else {
			entry.Details = datatypes.JSON(raw)
		}
	}

	if err := s.repo.Create(ctx, entry); err != nil {
		s.log.Error("Failed to record activity", err, map[string]interface{}{
			"action":  action,
			"user_id": actor.UserID,
		})
		return
	}

	s.log.Debug("Activity recorded", map[string]interface{}{
		"action":  action,
		"user_id": actor.UserID,
	})
}

func (s *activityLogService) List(ctx context.Context, userID uint, p repository.Pagination) (repository.Page[models.ActivityLog], error) {
	page, err := s.repo.List(ctx, userID, p)
	return page, repoError("activity log", err)
}

func (s *activityLogService) Get(ctx context.Context, id uint) (*models.ActivityLog, error) {
	entry, err := s.repo.Get(ctx, id)
	return entry, repoError("activity log", err)
}

func (s *activityLogService) Delete(ctx context.Context, id uint) error {
	return repoError("activity log", s.repo.Delete(ctx, id))
}
