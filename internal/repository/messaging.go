package repository

import (
	"context"
	"fmt"

	"github.com/stwalsh4118/rentdesk/internal/database"
	"github.com/stwalsh4118/rentdesk/internal/models"
)

// NotificationRepository defines data access for notifications.
type NotificationRepository interface {
	// List returns notifications, newest first. A zero userID lists everyone's.
	List(ctx context.Context, userID uint, p Pagination) (Page[models.Notification], error)
	Get(ctx context.Context, id uint) (*models.Notification, error)
	Create(ctx context.Context, n *models.Notification) error
	Update(ctx context.Context, n *models.Notification) error
	Delete(ctx context.Context, id uint) error

	// MarkRead sets read on one notification. Marking an already read
	// notification succeeds.
	MarkRead(ctx context.Context, id uint) error

	// MarkAllRead sets read on every unread notification of a user and
	// returns how many changed.
	MarkAllRead(ctx context.Context, userID uint) (int64, error)

	CountUnread(ctx context.Context, userID uint) (int64, error)
}

type notificationRepository struct {
	crud[models.Notification]
	db *database.Database
}

// NewNotificationRepository creates a new NotificationRepository.
func NewNotificationRepository(db *database.Database) NotificationRepository {
	return &notificationRepository{
		crud: newCRUD[models.Notification](db.DB, "notification", "created_at DESC, id DESC"),
		db:   db,
	}
}

func (r *notificationRepository) List(ctx context.Context, userID uint, p Pagination) (Page[models.Notification], error) {
	return r.list(ctx, &models.Notification{UserID: userID}, p)
}

func (r *notificationRepository) Get(ctx context.Context, id uint) (*models.Notification, error) {
	return r.get(ctx, id)
}

func (r *notificationRepository) Create(ctx context.Context, n *models.Notification) error {
	return r.create(ctx, n)
}

func (r *notificationRepository) Update(ctx context.Context, n *models.Notification) error {
	return r.update(ctx, n)
}

func (r *notificationRepository) Delete(ctx context.Context, id uint) error {
	return r.delete(ctx, id)
}

func (r *notificationRepository) MarkRead(ctx context.Context, id uint) error {
	// UPDATE reports matched rows on postgres and sqlite, so an already read
	// notification still counts as one
	res := r.db.DB.WithContext(ctx).Model(&models.Notification{}).Where("id = ?", id).Update("read", true)
	if res.Error != nil {
		return fmt.Errorf("failed to mark notification %d read: %w", id, translateError(res.Error))
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *notificationRepository) MarkAllRead(ctx context.Context, userID uint) (int64, error) {
	res := r.db.DB.WithContext(ctx).
		Model(&models.Notification{}).
		Where("user_id = ? AND read = ?", userID, false).
		Update("read", true)
	if res.Error != nil {
		return 0, fmt.Errorf("failed to mark notifications of user %d read: %w", userID, translateError(res.Error))
	}
	return res.RowsAffected, nil
}

func (r *notificationRepository) CountUnread(ctx context.Context, userID uint) (int64, error) {
	var n int64
	err := r.db.DB.WithContext(ctx).
		Model(&models.Notification{}).
		Where("user_id = ? AND read = ?", userID, false).
		Count(&n).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count unread notifications of user %d: %w", userID, translateError(err))
	}
	return n, nil
}

// SupportMessageRepository defines data access for support messages.
type SupportMessageRepository interface {
	List(ctx context.Context, p Pagination) (Page[models.SupportMessage], error)

	// Inbox lists messages received by a user, newest first.
	Inbox(ctx context.Context, userID uint, p Pagination) (Page[models.SupportMessage], error)

	// Outbox lists messages sent by a user, newest first.
	Outbox(ctx context.Context, userID uint, p Pagination) (Page[models.SupportMessage], error)

	Get(ctx context.Context, id uint) (*models.SupportMessage, error)
	Create(ctx context.Context, m *models.SupportMessage) error
	Update(ctx context.Context, m *models.SupportMessage) error
	Delete(ctx context.Context, id uint) error
}

type supportMessageRepository struct {
	crud[models.SupportMessage]
}

// NewSupportMessageRepository creates a new SupportMessageRepository.
func NewSupportMessageRepository(db *database.Database) SupportMessageRepository {
	return &supportMessageRepository{
		crud: newCRUD[models.SupportMessage](db.DB, "support message", "sent_at DESC, id DESC", "Sender", "Recipient"),
	}
}

func (r *supportMessageRepository) List(ctx context.Context, p Pagination) (Page[models.SupportMessage], error) {
	return r.list(ctx, nil, p)
}

func (r *supportMessageRepository) Inbox(ctx context.Context, userID uint, p Pagination) (Page[models.SupportMessage], error) {
	return r.list(ctx, &models.SupportMessage{RecipientID: userID}, p)
}

func (r *supportMessageRepository) Outbox(ctx context.Context, userID uint, p Pagination) (Page[models.SupportMessage], error) {
	return r.list(ctx, &models.SupportMessage{SenderID: userID}, p)
}

func (r *supportMessageRepository) Get(ctx context.Context, id uint) (*models.SupportMessage, error) {
	return r.get(ctx, id)
}

func (r *supportMessageRepository) Create(ctx context.Context, m *models.SupportMessage) error {
	return r.create(ctx, m)
}

func (r *supportMessageRepository) Update(ctx context.Context, m *models.SupportMessage) error {
	return r.update(ctx, m)
}

func (r *supportMessageRepository) Delete(ctx context.Context, id uint) error {
	return r.delete(ctx, id)
}
