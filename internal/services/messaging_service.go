package services

import (
	"context"
	"strings"

	"github.com/stwalsh4118/rentdesk/internal/logger"
	"github.com/stwalsh4118/rentdesk/internal/models"
	"github.com/stwalsh4118/rentdesk/internal/repository"
)

// NotificationService manages per-user notifications. Users only see and
// acknowledge their own notifications; superusers see everyone's.
type NotificationService interface {
	// List returns the actor's notifications. A superuser may pass another
	// userID, or zero for all users.
	List(ctx context.Context, actor Actor, userID uint, p repository.Pagination) (repository.Page[models.Notification], error)
	Get(ctx context.Context, actor Actor, id uint) (*models.Notification, error)
	Create(ctx context.Context, actor Actor, n *models.Notification) error
	Update(ctx context.Context, actor Actor, n *models.Notification) error
	Delete(ctx context.Context, actor Actor, id uint) error

	// MarkRead sets the read flag. Marking an already read notification
	// succeeds without change.
	MarkRead(ctx context.Context, actor Actor, id uint) (*models.Notification, error)

	// MarkAllRead marks every unread notification of the actor as read.
	MarkAllRead(ctx context.Context, actor Actor) (int64, error)

	UnreadCount(ctx context.Context, actor Actor) (int64, error)
}

type notificationService struct {
	repo  repository.NotificationRepository
	users repository.UserRepository
	audit Recorder
	log   *logger.Logger
}

// NewNotificationService creates a new NotificationService.
func NewNotificationService(repo repository.NotificationRepository, users repository.UserRepository, audit Recorder, log *logger.Logger) NotificationService {
	return &notificationService{repo: repo, users: users, audit: audit, log: log}
}

// owned loads a notification and checks that actor may touch it.
func (s *notificationService) owned(ctx context.Context, actor Actor, id uint) (*models.Notification, error) {
	n, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, repoError("notification", err)
	}
	if !actor.IsSuperuser && n.UserID != actor.UserID {
		// hide other users' notifications
		return nil, repoError("notification", repository.ErrNotFound)
	}
	return n, nil
}

func (s *notificationService) List(ctx context.Context, actor Actor, userID uint, p repository.Pagination) (repository.Page[models.Notification], error) {
	if !actor.IsSuperuser {
		userID = actor.UserID
	}
	page, err := s.repo.List(ctx, userID, p)
	return page, repoError("notification", err)
}

func (s *notificationService) Get(ctx context.Context, actor Actor, id uint) (*models.Notification, error) {
	return s.owned(ctx, actor, id)
}

func (s *notificationService) Create(ctx context.Context, actor Actor, n *models.Notification) error {
	if strings.TrimSpace(n.Message) == "" {
		return invalid("message is required")
	}
	if n.UserID == 0 {
		return invalid("user is required")
	}
	if _, err := s.users.Get(ctx, n.UserID); err != nil {
		return repoError("user", err)
	}

	if err := s.repo.Create(ctx, n); err != nil {
		return repoError("notification", err)
	}

	s.log.Info("Notification created", map[string]interface{}{
		"notification_id": n.ID,
		"user_id":         n.UserID,
		"created_by":      actor.UserID,
	})
	s.audit.Record(ctx, actor, "Created notification", map[string]interface{}{
		"notification_id": n.ID,
		"user_id":         n.UserID,
	})
	return nil
}

func (s *notificationService) Update(ctx context.Context, actor Actor, n *models.Notification) error {
	if strings.TrimSpace(n.Message) == "" {
		return invalid("message is required")
	}
	existing, err := s.owned(ctx, actor, n.ID)
	if err != nil {
		return err
	}
	n.CreatedAt = existing.CreatedAt
	if !actor.IsSuperuser {
		n.UserID = existing.UserID
	}
	if err := s.repo.Update(ctx, n); err != nil {
		return repoError("notification", err)
	}

	s.audit.Record(ctx, actor, "Updated notification", map[string]interface{}{
		"notification_id": n.ID,
		"user_id":         n.UserID,
	})
	return nil
}

func (s *notificationService) Delete(ctx context.Context, actor Actor, id uint) error {
	if _, err := s.owned(ctx, actor, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return repoError("notification", err)
	}

	s.audit.Record(ctx, actor, "Deleted notification", map[string]interface{}{"notification_id": id})
	return nil
}

func (s *notificationService) MarkRead(ctx context.Context, actor Actor, id uint) (*models.Notification, error) {
	n, err := s.owned(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	if n.Read {
		return n, nil
	}
	if err := s.repo.MarkRead(ctx, id); err != nil {
		return nil, repoError("notification", err)
	}
	n.MarkRead()
	return n, nil
}

func (s *notificationService) MarkAllRead(ctx context.Context, actor Actor) (int64, error) {
	n, err := s.repo.MarkAllRead(ctx, actor.UserID)
	if err != nil {
		return 0, repoError("notification", err)
	}
	s.log.Debug("Notifications marked read", map[string]interface{}{"user_id": actor.UserID, "count": n})
	return n, nil
}

func (s *notificationService) UnreadCount(ctx context.Context, actor Actor) (int64, error) {
	n, err := s.repo.CountUnread(ctx, actor.UserID)
	return n, repoError("notification", err)
}

// SupportMessageService carries messages between users.
type SupportMessageService interface {
	// Send delivers a message from the actor to m.RecipientID.
	Send(ctx context.Context, actor Actor, m *models.SupportMessage) error

	Inbox(ctx context.Context, actor Actor, p repository.Pagination) (repository.Page[models.SupportMessage], error)
	Outbox(ctx context.Context, actor Actor, p repository.Pagination) (repository.Page[models.SupportMessage], error)

	// Get returns a message the actor sent or received.
	Get(ctx context.Context, actor Actor, id uint) (*models.SupportMessage, error)

	// MarkRead is allowed for the recipient only. It is idempotent.
	MarkRead(ctx context.Context, actor Actor, id uint) (*models.SupportMessage, error)

	List(ctx context.Context, p repository.Pagination) (repository.Page[models.SupportMessage], error)
	Update(ctx context.Context, actor Actor, m *models.SupportMessage) error
	Delete(ctx context.Context, actor Actor, id uint) error
}

type supportMessageService struct {
	repo  repository.SupportMessageRepository
	users repository.UserRepository
	audit Recorder
	log   *logger.Logger
}

// NewSupportMessageService creates a new SupportMessageService.
func NewSupportMessageService(repo repository.SupportMessageRepository, users repository.UserRepository, audit Recorder, log *logger.Logger) SupportMessageService {
	return &supportMessageService{repo: repo, users: users, audit: audit, log: log}
}

func validateMessage(m *models.SupportMessage) error {
	switch {
	case m.RecipientID == 0:
		return invalid("recipient is required")
	case strings.TrimSpace(m.Subject) == "":
		return invalid("subject is required")
	case strings.TrimSpace(m.Message) == "":
		return invalid("message is required")
	}
	return nil
}

func (s *supportMessageService) Send(ctx context.Context, actor Actor, m *models.SupportMessage) error {
	if err := validateMessage(m); err != nil {
		return err
	}
	if m.RecipientID == actor.UserID {
		return invalid("cannot send a message to yourself")
	}
	if _, err := s.users.Get(ctx, m.RecipientID); err != nil {
		return repoError("recipient", err)
	}

	m.SenderID = actor.UserID
	m.Read = false
	if err := s.repo.Create(ctx, m); err != nil {
		return repoError("support message", err)
	}

	s.log.Info("Support message sent", map[string]interface{}{
		"message_id":   m.ID,
		"sender_id":    m.SenderID,
		"recipient_id": m.RecipientID,
	})
	return nil
}

func (s *supportMessageService) Inbox(ctx context.Context, actor Actor, p repository.Pagination) (repository.Page[models.SupportMessage], error) {
	page, err := s.repo.Inbox(ctx, actor.UserID, p)
	return page, repoError("support message", err)
}

func (s *supportMessageService) Outbox(ctx context.Context, actor Actor, p repository.Pagination) (repository.Page[models.SupportMessage], error) {
	page, err := s.repo.Outbox(ctx, actor.UserID, p)
	return page, repoError("support message", err)
}

func (s *supportMessageService) Get(ctx context.Context, actor Actor, id uint) (*models.SupportMessage, error) {
	m, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, repoError("support message", err)
	}
	if !actor.IsSuperuser && m.SenderID != actor.UserID && m.RecipientID != actor.UserID {
		return nil, repoError("support message", repository.ErrNotFound)
	}
	return m, nil
}

func (s *supportMessageService) MarkRead(ctx context.Context, actor Actor, id uint) (*models.SupportMessage, error) {
	m, err := s.Get(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	if m.RecipientID != actor.UserID && !actor.IsSuperuser {
		return nil, ErrForbidden
	}
	if m.Read {
		return m, nil
	}

	m.MarkRead()
	if err := s.repo.Update(ctx, m); err != nil {
		return nil, repoError("support message", err)
	}
	return m, nil
}

func (s *supportMessageService) List(ctx context.Context, p repository.Pagination) (repository.Page[models.SupportMessage], error) {
	page, err := s.repo.List(ctx, p)
	return page, repoError("support message", err)
}

func (s *supportMessageService) Update(ctx context.Context, actor Actor, m *models.SupportMessage) error {
	if err := validateMessage(m); err != nil {
		return err
	}
	existing, err := s.repo.Get(ctx, m.ID)
	if err != nil {
		return repoError("support message", err)
	}
	m.SentAt = existing.SentAt
	if m.SenderID == 0 {
		m.SenderID = existing.SenderID
	}

	if err := s.repo.Update(ctx, m); err != nil {
		return repoError("support message", err)
	}
	s.audit.Record(ctx, actor, "Updated support message", map[string]interface{}{"message_id": m.ID})
	return nil
}

func (s *supportMessageService) Delete(ctx context.Context, actor Actor, id uint) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return repoError("support message", err)
	}
	s.audit.Record(ctx, actor, "Deleted support message", map[string]interface{}{"message_id": id})
	return nil
}
