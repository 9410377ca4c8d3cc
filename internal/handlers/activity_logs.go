package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/stwalsh4118/rentdesk/internal/services"
)

// ActivityLogHandler exposes the audit trail.
type ActivityLogHandler struct {
	logs services.ActivityLogService
}

// NewActivityLogHandler creates a new ActivityLogHandler.
func NewActivityLogHandler(logs services.ActivityLogService) *ActivityLogHandler {
	return &ActivityLogHandler{logs: logs}
}

// ActivityLogQuery filters the audit trail by user.
type ActivityLogQuery struct {
	UserID uint `form:"user_id"`
}

// List handles GET /api/v1/activity-logs, newest first.
func (h *ActivityLogHandler) List(c *gin.Context) {
	p, ok := pagination(c)
	if !ok {
		return
	}
	var q ActivityLogQuery
	if !bindQuery(c, &q) {
		return
	}
	page, err := h.logs.List(c.Request.Context(), q.UserID, p)
	if err != nil {
		respondError(c, err, "list activity logs")
		return
	}
	c.JSON(http.StatusOK, page)
}

// Get handles GET /api/v1/activity-logs/:id.
func (h *ActivityLogHandler) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	entry, err := h.logs.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err, "get activity log")
		return
	}
	c.JSON(http.StatusOK, entry)
}

// Delete handles DELETE /api/v1/activity-logs/:id.
func (h *ActivityLogHandler) Delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.logs.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err, "delete activity log")
		return
	}
	c.Status(http.StatusNoContent)
}
