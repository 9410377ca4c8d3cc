package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/stwalsh4118/rentdesk/internal/models"
	"github.com/stwalsh4118/rentdesk/internal/services"
)

// MessagingHandler handles notifications and support messages.
type MessagingHandler struct {
	notifications services.NotificationService
	messages      services.SupportMessageService
}

// NewMessagingHandler creates a new MessagingHandler.
func NewMessagingHandler(notifications services.NotificationService, messages services.SupportMessageService) *MessagingHandler {
	return &MessagingHandler{notifications: notifications, messages: messages}
}

// NotificationRequest is the body of notification create and update requests.
type NotificationRequest struct {
	UserID  uint   `json:"user_id" binding:"required"`
	Message string `json:"message" binding:"required"`
	Read    bool   `json:"read"`
}

// NotificationQuery selects whose notifications to list. Only superusers
// may look at other users.
type NotificationQuery struct {
	UserID uint `form:"user_id"`
}

// SupportMessageRequest is the body of send and update requests.
type SupportMessageRequest struct {
	RecipientID uint   `json:"recipient_id" binding:"required"`
	Subject     string `json:"subject" binding:"required,max=255"`
	Message     string `json:"message" binding:"required"`
	Read        bool   `json:"read"`
}

// ListNotifications handles GET /api/v1/notifications.
func (h *MessagingHandler) ListNotifications(c *gin.Context) {
	p, ok := pagination(c)
	if !ok {
		return
	}
	var q NotificationQuery
	if !bindQuery(c, &q) {
		return
	}
	page, err := h.notifications.List(c.Request.Context(), actorFrom(c), q.UserID, p)
	if err != nil {
		respondError(c, err, "list notifications")
		return
	}
	c.JSON(http.StatusOK, page)
}

// GetNotification handles GET /api/v1/notifications/:id.
func (h *MessagingHandler) GetNotification(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	n, err := h.notifications.Get(c.Request.Context(), actorFrom(c), id)
	if err != nil {
		respondError(c, err, "get notification")
		return
	}
	c.JSON(http.StatusOK, n)
}

// CreateNotification handles POST /api/v1/notifications.
func (h *MessagingHandler) CreateNotification(c *gin.Context) {
	var req NotificationRequest
	if !bindJSON(c, &req) {
		return
	}
	n := &models.Notification{UserID: req.UserID, Message: req.Message, Read: req.Read}
	if err := h.notifications.Create(c.Request.Context(), actorFrom(c), n); err != nil {
		respondError(c, err, "create notification")
		return
	}
	c.JSON(http.StatusCreated, n)
}

// UpdateNotification handles PUT /api/v1/notifications/:id.
func (h *MessagingHandler) UpdateNotification(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req NotificationRequest
	if !bindJSON(c, &req) {
		return
	}
	n := &models.Notification{ID: id, UserID: req.UserID, Message: req.Message, Read: req.Read}
	if err := h.notifications.Update(c.Request.Context(), actorFrom(c), n); err != nil {
		respondError(c, err, "update notification")
		return
	}
	c.JSON(http.StatusOK, n)
}

// DeleteNotification handles DELETE /api/v1/notifications/:id.
func (h *MessagingHandler) DeleteNotification(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.notifications.Delete(c.Request.Context(), actorFrom(c), id); err != nil {
		respondError(c, err, "delete notification")
		return
	}
	c.Status(http.StatusNoContent)
}

// MarkNotificationRead handles POST /api/v1/notifications/:id/read.
func (h *MessagingHandler) MarkNotificationRead(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	n, err := h.notifications.MarkRead(c.Request.Context(), actorFrom(c), id)
	if err != nil {
		respondError(c, err, "mark notification read")
		return
	}
	c.JSON(http.StatusOK, n)
}

// MarkAllNotificationsRead handles POST /api/v1/notifications/read-all.
func (h *MessagingHandler) MarkAllNotificationsRead(c *gin.Context) {
	n, err := h.notifications.MarkAllRead(c.Request.Context(), actorFrom(c))
	if err != nil {
		respondError(c, err, "mark notifications read")
		return
	}
	c.JSON(http.StatusOK, CountResponse{Count: n})
}

// UnreadNotifications handles GET /api/v1/notifications/unread-count.
func (h *MessagingHandler) UnreadNotifications(c *gin.Context) {
	n, err := h.notifications.UnreadCount(c.Request.Context(), actorFrom(c))
	if err != nil {
		respondError(c, err, "count notifications")
		return
	}
	c.JSON(http.StatusOK, CountResponse{Count: n})
}

// SendMessage handles POST /api/v1/support-messages.
func (h *MessagingHandler) SendMessage(c *gin.Context) {
	var req SupportMessageRequest
	if !bindJSON(c, &req) {
		return
	}
	m := &models.SupportMessage{RecipientID: req.RecipientID, Subject: req.Subject, Message: req.Message}
	if err := h.messages.Send(c.Request.Context(), actorFrom(c), m); err != nil {
		respondError(c, err, "send support message")
		return
	}
	c.JSON(http.StatusCreated, m)
}

// Inbox handles GET /api/v1/support-messages/inbox.
func (h *MessagingHandler) Inbox(c *gin.Context) {
	p, ok := pagination(c)
	if !ok {
		return
	}
	page, err := h.messages.Inbox(c.Request.Context(), actorFrom(c), p)
	if err != nil {
		respondError(c, err, "list inbox")
		return
	}
	c.JSON(http.StatusOK, page)
}

// Outbox handles GET /api/v1/support-messages/outbox.
func (h *MessagingHandler) Outbox(c *gin.Context) {
	p, ok := pagination(c)
	if !ok {
		return
	}
	page, err := h.messages.Outbox(c.Request.Context(), actorFrom(c), p)
	if err != nil {
		respondError(c, err, "list outbox")
		return
	}
	c.JSON(http.StatusOK, page)
}

// GetMessage handles GET /api/v1/support-messages/:id.
func (h *MessagingHandler) GetMessage(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	m, err := h.messages.Get(c.Request.Context(), actorFrom(c), id)
	if err != nil {
		respondError(c, err, "get support message")
		return
	}
	c.JSON(http.StatusOK, m)
}

// MarkMessageRead handles POST /api/v1/support-messages/:id/read.
func (h *MessagingHandler) MarkMessageRead(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	m, err := h.messages.MarkRead(c.Request.Context(), actorFrom(c), id)
	if err != nil {
		respondError(c, err, "mark support message read")
		return
	}
	c.JSON(http.StatusOK, m)
}

// ListMessages handles GET /api/v1/support-messages, every message of
// every user.
func (h *MessagingHandler) ListMessages(c *gin.Context) {
	p, ok := pagination(c)
	if !ok {
		return
	}
	page, err := h.messages.List(c.Request.Context(), p)
	if err != nil {
		respondError(c, err, "list support messages")
		return
	}
	c.JSON(http.StatusOK, page)
}

// UpdateMessage handles PUT /api/v1/support-messages/:id.
func (h *MessagingHandler) UpdateMessage(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req SupportMessageRequest
	if !bindJSON(c, &req) {
		return
	}
	m := &models.SupportMessage{ID: id, RecipientID: req.RecipientID, Subject: req.Subject, Message: req.Message, Read: req.Read}
	if err := h.messages.Update(c.Request.Context(), actorFrom(c), m); err != nil {
		respondError(c, err, "update support message")
		return
	}
	c.JSON(http.StatusOK, m)
}

// DeleteMessage handles DELETE /api/v1/support-messages/:id.
func (h *MessagingHandler) DeleteMessage(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.messages.Delete(c.Request.Context(), actorFrom(c), id); err != nil {
		respondError(c, err, "delete support message")
		return
	}
	c.Status(http.StatusNoContent)
}
