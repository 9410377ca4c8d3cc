package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/stwalsh4118/rentdesk/internal/models"
	"github.com/stwalsh4118/rentdesk/internal/services"
)

// TenantHandler handles tenant records.
type TenantHandler struct {
	tenants services.TenantService
}

// NewTenantHandler creates a new TenantHandler.
func NewTenantHandler(tenants services.TenantService) *TenantHandler {
	return &TenantHandler{tenants: tenants}
}

// TenantRequest is the body of tenant create and update requests.
type TenantRequest struct {
	UserID      uint              `json:"user_id" binding:"required"`
	TenantType  models.TenantType `json:"tenant_type" binding:"required,oneof=individual company"`
	NationalID  string            `json:"national_id" binding:"required,max=20"`
	CompanyName string            `json:"company_name" binding:"max=100"`
	Address     string            `json:"address" binding:"required,max=255"`
	Notes       string            `json:"notes"`
}

func (r TenantRequest) model(id uint) *models.Tenant {
	return &models.Tenant{
		ID:          id,
		UserID:      r.UserID,
		TenantType:  r.TenantType,
		NationalID:  r.NationalID,
		CompanyName: r.CompanyName,
		Address:     r.Address,
		Notes:       r.Notes,
	}
}

// List handles GET /api/v1/tenants.
func (h *TenantHandler) List(c *gin.Context) {
	p, ok := pagination(c)
	if !ok {
		return
	}
	page, err := h.tenants.List(c.Request.Context(), p)
	if err != nil {
		respondError(c, err, "list tenants")
		return
	}
	c.JSON(http.StatusOK, page)
}

// Get handles GET /api/v1/tenants/:id.
func (h *TenantHandler) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	t, err := h.tenants.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err, "get tenant")
		return
	}
	c.JSON(http.StatusOK, t)
}

// Create handles POST /api/v1/tenants.
func (h *TenantHandler) Create(c *gin.Context) {
	var req TenantRequest
	if !bindJSON(c, &req) {
		return
	}
	t := req.model(0)
	if err := h.tenants.Create(c.Request.Context(), actorFrom(c), t); err != nil {
		respondError(c, err, "create tenant")
		return
	}
	c.JSON(http.StatusCreated, t)
}

// Update handles PUT /api/v1/tenants/:id.
func (h *TenantHandler) Update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req TenantRequest
	if !bindJSON(c, &req) {
		return
	}
	t := req.model(id)
	if err := h.tenants.Update(c.Request.Context(), actorFrom(c), t); err != nil {
		respondError(c, err, "update tenant")
		return
	}
	c.JSON(http.StatusOK, t)
}

// Delete handles DELETE /api/v1/tenants/:id.
func (h *TenantHandler) Delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.tenants.Delete(c.Request.Context(), actorFrom(c), id); err != nil {
		respondError(c, err, "delete tenant")
		return
	}
	c.Status(http.StatusNoContent)
}
