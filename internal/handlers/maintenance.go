package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/stwalsh4118/rentdesk/internal/models"
	"github.com/stwalsh4118/rentdesk/internal/repository"
	"github.com/stwalsh4118/rentdesk/internal/services"
)

// MaintenanceHandler handles maintenance requests and their reviews.
type MaintenanceHandler struct {
	maintenance services.MaintenanceService
}

// NewMaintenanceHandler creates a new MaintenanceHandler.
func NewMaintenanceHandler(maintenance services.MaintenanceService) *MaintenanceHandler {
	return &MaintenanceHandler{maintenance: maintenance}
}

// MaintenanceRequestBody is the body of maintenance request create and
// update requests. Status, notes and completion date are ignored when a
// tenant files a request.
type MaintenanceRequestBody struct {
	UnitID         uint                     `json:"unit_id" binding:"required"`
	Description    string                   `json:"description" binding:"required"`
	Status         models.MaintenanceStatus `json:"status" binding:"omitempty,oneof=pending in_progress completed rejected"`
	CompletionDate models.Date              `json:"completion_date"`
	Notes          string                   `json:"notes"`
}

func (r MaintenanceRequestBody) model(id uint) *models.MaintenanceRequest {
	return &models.MaintenanceRequest{
		ID:             id,
		UnitID:         r.UnitID,
		Description:    r.Description,
		Status:         r.Status,
		CompletionDate: r.CompletionDate,
		Notes:          r.Notes,
	}
}

// MaintenanceQuery filters the maintenance request list.
type MaintenanceQuery struct {
	UnitID        uint   `form:"unit_id"`
	BuildingID    uint   `form:"building_id"`
	RequestedByID uint   `form:"requested_by_id"`
	Status        string `form:"status" binding:"omitempty,oneof=pending in_progress completed rejected"`
}

// ReviewRequest is the body of review create and update requests.
type ReviewRequest struct {
	MaintenanceRequestID uint   `json:"maintenance_request_id" binding:"required"`
	Rating               uint8  `json:"rating"`
	Feedback             string `json:"feedback"`
}

func (r ReviewRequest) model(id uint) *models.MaintenanceReview {
	return &models.MaintenanceReview{
		ID:                   id,
		MaintenanceRequestID: r.MaintenanceRequestID,
		Rating:               r.Rating,
		Feedback:             r.Feedback,
	}
}

// List handles GET /api/v1/maintenance-requests.
func (h *MaintenanceHandler) List(c *gin.Context) {
	p, ok := pagination(c)
	if !ok {
		return
	}
	var q MaintenanceQuery
	if !bindQuery(c, &q) {
		return
	}
	f := repository.MaintenanceFilter{
		UnitID:        q.UnitID,
		BuildingID:    q.BuildingID,
		RequestedByID: q.RequestedByID,
		Status:        models.MaintenanceStatus(q.Status),
	}
	h.list(c, f, p)
}

// Mine handles GET /api/v1/maintenance-requests/mine, the requests filed
// by the signed-in user.
func (h *MaintenanceHandler) Mine(c *gin.Context) {
	p, ok := pagination(c)
	if !ok {
		return
	}
	h.list(c, repository.MaintenanceFilter{RequestedByID: actorFrom(c).UserID}, p)
}

func (h *MaintenanceHandler) list(c *gin.Context, f repository.MaintenanceFilter, p repository.Pagination) {
	page, err := h.maintenance.List(c.Request.Context(), f, p)
	if err != nil {
		respondError(c, err, "list maintenance requests")
		return
	}
	c.JSON(http.StatusOK, page)
}

// Get handles GET /api/v1/maintenance-requests/:id.
func (h *MaintenanceHandler) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	m, err := h.maintenance.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err, "get maintenance request")
		return
	}
	c.JSON(http.StatusOK, m)
}

// Create handles POST /api/v1/maintenance-requests.
func (h *MaintenanceHandler) Create(c *gin.Context) {
	var req MaintenanceRequestBody
	if !bindJSON(c, &req) {
		return
	}
	m := req.model(0)
	if err := h.maintenance.Create(c.Request.Context(), actorFrom(c), m); err != nil {
		respondError(c, err, "create maintenance request")
		return
	}
	c.JSON(http.StatusCreated, m)
}

// Update handles PUT /api/v1/maintenance-requests/:id.
func (h *MaintenanceHandler) Update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req MaintenanceRequestBody
	if !bindJSON(c, &req) {
		return
	}
	m := req.model(id)
	if err := h.maintenance.Update(c.Request.Context(), actorFrom(c), m); err != nil {
		respondError(c, err, "update maintenance request")
		return
	}
	c.JSON(http.StatusOK, m)
}

// Delete handles DELETE /api/v1/maintenance-requests/:id.
func (h *MaintenanceHandler) Delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.maintenance.Delete(c.Request.Context(), actorFrom(c), id); err != nil {
		respondError(c, err, "delete maintenance request")
		return
	}
	c.Status(http.StatusNoContent)
}

// ListReviews handles GET /api/v1/maintenance-reviews.
func (h *MaintenanceHandler) ListReviews(c *gin.Context) {
	p, ok := pagination(c)
	if !ok {
		return
	}
	page, err := h.maintenance.ListReviews(c.Request.Context(), p)
	if err != nil {
		respondError(c, err, "list maintenance reviews")
		return
	}
	c.JSON(http.StatusOK, page)
}

// GetReview handles GET /api/v1/maintenance-reviews/:id.
func (h *MaintenanceHandler) GetReview(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	rv, err := h.maintenance.GetReview(c.Request.Context(), id)
	if err != nil {
		respondError(c, err, "get maintenance review")
		return
	}
	c.JSON(http.StatusOK, rv)
}

// CreateReview handles POST /api/v1/maintenance-reviews.
func (h *MaintenanceHandler) CreateReview(c *gin.Context) {
	var req ReviewRequest
	if !bindJSON(c, &req) {
		return
	}
	rv := req.model(0)
	if err := h.maintenance.CreateReview(c.Request.Context(), actorFrom(c), rv); err != nil {
		respondError(c, err, "create maintenance review")
		return
	}
	c.JSON(http.StatusCreated, rv)
}

// UpdateReview handles PUT /api/v1/maintenance-reviews/:id.
func (h *MaintenanceHandler) UpdateReview(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req ReviewRequest
	if !bindJSON(c, &req) {
		return
	}
	rv := req.model(id)
	if err := h.maintenance.UpdateReview(c.Request.Context(), actorFrom(c), rv); err != nil {
		respondError(c, err, "update maintenance review")
		return
	}
	c.JSON(http.StatusOK, rv)
}

// DeleteReview handles DELETE /api/v1/maintenance-reviews/:id.
func (h *MaintenanceHandler) DeleteReview(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.maintenance.DeleteReview(c.Request.Context(), actorFrom(c), id); err != nil {
		respondError(c, err, "delete maintenance review")
		return
	}
	c.Status(http.StatusNoContent)
}
