package repository

import (
	"context"

	"github.com/stwalsh4118/rentdesk/internal/database"
	"github.com/stwalsh4118/rentdesk/internal/models"
)

// ActivityLogRepository stores the audit trail of administrative actions.
// Entries are append-only apart from explicit deletion.
type ActivityLogRepository interface {
	// List returns entries newest first. A zero userID lists everyone's.
	List(ctx context.Context, userID uint, p Pagination) (Page[models.ActivityLog], error)
	Get(ctx context.Context, id uint) (*models.ActivityLog, error)
	Create(ctx context.Context, entry *models.ActivityLog) error
	Delete(ctx context.Context, id uint) error
}

type activityLogRepository struct {
	crud[models.ActivityLog]
}

// NewActivityLogRepository creates a new ActivityLogRepository.
func NewActivityLogRepository(db *database.Database) ActivityLogRepository {
	return &activityLogRepository{
		crud: newCRUD[models.ActivityLog](db.DB, "activity log", "activity_logs.timestamp DESC, activity_logs.id DESC", "User"),
	}
}

func (r *activityLogRepository) List(ctx context.Context, userID uint, p Pagination) (Page[models.ActivityLog], error) {
	var where *models.ActivityLog
	if userID != 0 {
		where = &models.ActivityLog{UserID: &userID}
	}
	return r.list(ctx, where, p)
}

func (r *activityLogRepository) Get(ctx context.Context, id uint) (*models.ActivityLog, error) {
	return r.get(ctx, id)
}

func (r *activityLogRepository) Create(ctx context.Context, entry *models.ActivityLog) error {
	return r.create(ctx, entry)
}

func (r *activityLogRepository) Delete(ctx context.Context, id uint) error {
	return r.delete(ctx, id)
}
