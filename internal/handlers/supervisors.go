package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/stwalsh4118/rentdesk/internal/models"
	"github.com/stwalsh4118/rentdesk/internal/services"
)

// SupervisorHandler handles supervisors and the permission catalogue.
type SupervisorHandler struct {
	supervisors services.SupervisorService
	permissions services.PermissionService
}

// NewSupervisorHandler creates a new SupervisorHandler.
func NewSupervisorHandler(supervisors services.SupervisorService, permissions services.PermissionService) *SupervisorHandler {
	return &SupervisorHandler{supervisors: supervisors, permissions: permissions}
}

// SupervisorRequest is the body of supervisor create requests.
type SupervisorRequest struct {
	UserID        uint   `json:"user_id" binding:"required"`
	BuildingID    uint   `json:"building_id" binding:"required"`
	PermissionIDs []uint `json:"permission_ids"`
}

// SupervisorUpdateRequest moves a supervisor. Omitting permission_ids
// keeps the current permission set.
type SupervisorUpdateRequest struct {
	BuildingID    uint   `json:"building_id" binding:"required"`
	PermissionIDs []uint `json:"permission_ids"`
}

// PermissionSetRequest replaces the permission set of a supervisor.
type PermissionSetRequest struct {
	PermissionIDs []uint `json:"permission_ids"`
}

// PermissionRequest is the body of permission create and update requests.
type PermissionRequest struct {
	Name        string `json:"name" binding:"required,max=50"`
	Description string `json:"description"`
}

// ListSupervisors handles GET /api/v1/supervisors.
func (h *SupervisorHandler) ListSupervisors(c *gin.Context) {
	p, ok := pagination(c)
	if !ok {
		return
	}
	page, err := h.supervisors.List(c.Request.Context(), p)
	if err != nil {
		respondError(c, err, "list supervisors")
		return
	}
	c.JSON(http.StatusOK, page)
}

// GetSupervisor handles GET /api/v1/supervisors/:id.
func (h *SupervisorHandler) GetSupervisor(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	sv, err := h.supervisors.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err, "get supervisor")
		return
	}
	c.JSON(http.StatusOK, sv)
}

// CreateSupervisor handles POST /api/v1/supervisors.
func (h *SupervisorHandler) CreateSupervisor(c *gin.Context) {
	var req SupervisorRequest
	if !bindJSON(c, &req) {
		return
	}
	sv := &models.Supervisor{UserID: req.UserID, BuildingID: req.BuildingID}
	created, err := h.supervisors.Create(c.Request.Context(), actorFrom(c), sv, req.PermissionIDs)
	if err != nil {
		respondError(c, err, "create supervisor")
		return
	}
	c.JSON(http.StatusCreated, created)
}

// UpdateSupervisor handles PUT /api/v1/supervisors/:id.
func (h *SupervisorHandler) UpdateSupervisor(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req SupervisorUpdateRequest
	if !bindJSON(c, &req) {
		return
	}
	sv := &models.Supervisor{ID: id, BuildingID: req.BuildingID}
	updated, err := h.supervisors.Update(c.Request.Context(), actorFrom(c), sv, req.PermissionIDs)
	if err != nil {
		respondError(c, err, "update supervisor")
		return
	}
	c.JSON(http.StatusOK, updated)
}

// SetSupervisorPermissions handles PUT /api/v1/supervisors/:id/permissions.
func (h *SupervisorHandler) SetSupervisorPermissions(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req PermissionSetRequest
	if !bindJSON(c, &req) {
		return
	}
	ids := req.PermissionIDs
	if ids == nil {
		ids = []uint{}
	}
	sv, err := h.supervisors.SetPermissions(c.Request.Context(), actorFrom(c), id, ids)
	if err != nil {
		respondError(c, err, "set supervisor permissions")
		return
	}
	c.JSON(http.StatusOK, sv)
}

// DeleteSupervisor handles DELETE /api/v1/supervisors/:id.
func (h *SupervisorHandler) DeleteSupervisor(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.supervisors.Delete(c.Request.Context(), actorFrom(c), id); err != nil {
		respondError(c, err, "delete supervisor")
		return
	}
	c.Status(http.StatusNoContent)
}

// ListPermissions handles GET /api/v1/supervisor-permissions.
func (h *SupervisorHandler) ListPermissions(c *gin.Context) {
	p, ok := pagination(c)
	if !ok {
		return
	}
	page, err := h.permissions.List(c.Request.Context(), p)
	if err != nil {
		respondError(c, err, "list permissions")
		return
	}
	c.JSON(http.StatusOK, page)
}

// GetPermission handles GET /api/v1/supervisor-permissions/:id.
func (h *SupervisorHandler) GetPermission(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	sp, err := h.permissions.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err, "get permission")
		return
	}
	c.JSON(http.StatusOK, sp)
}

// CreatePermission handles POST /api/v1/supervisor-permissions.
func (h *SupervisorHandler) CreatePermission(c *gin.Context) {
	var req PermissionRequest
	if !bindJSON(c, &req) {
		return
	}
	sp := &models.SupervisorPermission{Name: req.Name, Description: req.Description}
	if err := h.permissions.Create(c.Request.Context(), actorFrom(c), sp); err != nil {
		respondError(c, err, "create permission")
		return
	}
	c.JSON(http.StatusCreated, sp)
}

// UpdatePermission handles PUT /api/v1/supervisor-permissions/:id.
func (h *SupervisorHandler) UpdatePermission(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req PermissionRequest
	if !bindJSON(c, &req) {
		return
	}
	sp := &models.SupervisorPermission{ID: id, Name: req.Name, Description: req.Description}
	if err := h.permissions.Update(c.Request.Context(), actorFrom(c), sp); err != nil {
		respondError(c, err, "update permission")
		return
	}
	c.JSON(http.StatusOK, sp)
}

// DeletePermission handles DELETE /api/v1/supervisor-permissions/:id.
func (h *SupervisorHandler) DeletePermission(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.permissions.Delete(c.Request.Context(), actorFrom(c), id); err != nil {
		respondError(c, err, "delete permission")
		return
	}
	c.Status(http.StatusNoContent)
}
