package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/stwalsh4118/rentdesk/internal/models"
	"github.com/stwalsh4118/rentdesk/internal/repository"
	"github.com/stwalsh4118/rentdesk/internal/services"
)

// BuildingHandler handles buildings, unit types and units.
type BuildingHandler struct {
	buildings services.BuildingService
	unitTypes services.UnitTypeService
	units     services.UnitService
}

// NewBuildingHandler creates a new BuildingHandler.
func NewBuildingHandler(buildings services.BuildingService, unitTypes services.UnitTypeService, units services.UnitService) *BuildingHandler {
	return &BuildingHandler{buildings: buildings, unitTypes: unitTypes, units: units}
}

// BuildingRequest is the body of building create and update requests.
type BuildingRequest struct {
	Name       string `json:"name" binding:"required,max=100"`
	Location   string `json:"location" binding:"required"`
	TotalUnits uint   `json:"total_units"`
}

func (r BuildingRequest) model(id uint) *models.Building {
	return &models.Building{ID: id, Name: r.Name, Location: r.Location, TotalUnits: r.TotalUnits}
}

// UnitTypeRequest is the body of unit type create and update requests.
type UnitTypeRequest struct {
	Name        string `json:"name" binding:"required,max=50"`
	Description string `json:"description"`
}

// UnitRequest is the body of unit create and update requests.
type UnitRequest struct {
	BuildingID  uint              `json:"building_id" binding:"required"`
	UnitNumber  string            `json:"unit_number" binding:"required,max=10"`
	UnitTypeID  *uint             `json:"unit_type_id"`
	Size        float64           `json:"size" binding:"min=0"`
	FloorNumber uint              `json:"floor_number"`
	RentPrice   float64           `json:"rent_price" binding:"min=0"`
	Status      models.UnitStatus `json:"status" binding:"omitempty,oneof=available rented maintenance"`
	Description string            `json:"description"`
}

func (r UnitRequest) model(id uint) *models.Unit {
	return &models.Unit{
		ID:          id,
		BuildingID:  r.BuildingID,
		UnitNumber:  r.UnitNumber,
		UnitTypeID:  r.UnitTypeID,
		Size:        r.Size,
		FloorNumber: r.FloorNumber,
		RentPrice:   r.RentPrice,
		Status:      r.Status,
		Description: r.Description,
	}
}

// UnitQuery filters the unit list.
type UnitQuery struct {
	BuildingID uint   `form:"building_id"`
	Status     string `form:"status"`
}

// ListBuildings handles GET /api/v1/buildings.
func (h *BuildingHandler) ListBuildings(c *gin.Context) {
	p, ok := pagination(c)
	if !ok {
		return
	}
	page, err := h.buildings.List(c.Request.Context(), p)
	if err != nil {
		respondError(c, err, "list buildings")
		return
	}
	c.JSON(http.StatusOK, page)
}

// GetBuilding handles GET /api/v1/buildings/:id.
func (h *BuildingHandler) GetBuilding(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	b, err := h.buildings.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err, "get building")
		return
	}
	c.JSON(http.StatusOK, b)
}

// CreateBuilding handles POST /api/v1/buildings.
func (h *BuildingHandler) CreateBuilding(c *gin.Context) {
	var req BuildingRequest
	if !bindJSON(c, &req) {
		return
	}
	b := req.model(0)
	if err := h.buildings.Create(c.Request.Context(), actorFrom(c), b); err != nil {
		respondError(c, err, "create building")
		return
	}
	c.JSON(http.StatusCreated, b)
}

// UpdateBuilding handles PUT /api/v1/buildings/:id.
func (h *BuildingHandler) UpdateBuilding(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req BuildingRequest
	if !bindJSON(c, &req) {
		return
	}
	b := req.model(id)
	if err := h.buildings.Update(c.Request.Context(), actorFrom(c), b); err != nil {
		respondError(c, err, "update building")
		return
	}
	c.JSON(http.StatusOK, b)
}

// DeleteBuilding handles DELETE /api/v1/buildings/:id. Units, leases and
// everything below them are removed with the building.
func (h *BuildingHandler) DeleteBuilding(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.buildings.Delete(c.Request.Context(), actorFrom(c), id); err != nil {
		respondError(c, err, "delete building")
		return
	}
	c.Status(http.StatusNoContent)
}

// ListUnitTypes handles GET /api/v1/unit-types.
func (h *BuildingHandler) ListUnitTypes(c *gin.Context) {
	p, ok := pagination(c)
	if !ok {
		return
	}
	page, err := h.unitTypes.List(c.Request.Context(), p)
	if err != nil {
		respondError(c, err, "list unit types")
		return
	}
	c.JSON(http.StatusOK, page)
}

// GetUnitType handles GET /api/v1/unit-types/:id.
func (h *BuildingHandler) GetUnitType(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	t, err := h.unitTypes.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err, "get unit type")
		return
	}
	c.JSON(http.StatusOK, t)
}

// CreateUnitType handles POST /api/v1/unit-types.
func (h *BuildingHandler) CreateUnitType(c *gin.Context) {
	var req UnitTypeRequest
	if !bindJSON(c, &req) {
		return
	}
	t := &models.UnitType{Name: req.Name, Description: req.Description}
	if err := h.unitTypes.Create(c.Request.Context(), actorFrom(c), t); err != nil {
		respondError(c, err, "create unit type")
		return
	}
	c.JSON(http.StatusCreated, t)
}

// UpdateUnitType handles PUT /api/v1/unit-types/:id.
func (h *BuildingHandler) UpdateUnitType(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req UnitTypeRequest
	if !bindJSON(c, &req) {
		return
	}
	t := &models.UnitType{ID: id, Name: req.Name, Description: req.Description}
	if err := h.unitTypes.Update(c.Request.Context(), actorFrom(c), t); err != nil {
		respondError(c, err, "update unit type")
		return
	}
	c.JSON(http.StatusOK, t)
}

// DeleteUnitType handles DELETE /api/v1/unit-types/:id. Units of the type
// keep existing without one.
func (h *BuildingHandler) DeleteUnitType(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.unitTypes.Delete(c.Request.Context(), actorFrom(c), id); err != nil {
		respondError(c, err, "delete unit type")
		return
	}
	c.Status(http.StatusNoContent)
}

// ListUnits handles GET /api/v1/units.
func (h *BuildingHandler) ListUnits(c *gin.Context) {
	p, ok := pagination(c)
	if !ok {
		return
	}
	var q UnitQuery
	if !bindQuery(c, &q) {
		return
	}
	f := repository.UnitFilter{BuildingID: q.BuildingID, Status: models.UnitStatus(q.Status)}
	page, err := h.units.List(c.Request.Context(), f, p)
	if err != nil {
		respondError(c, err, "list units")
		return
	}
	c.JSON(http.StatusOK, page)
}

// GetUnit handles GET /api/v1/units/:id.
func (h *BuildingHandler) GetUnit(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	u, err := h.units.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err, "get unit")
		return
	}
	c.JSON(http.StatusOK, u)
}

// CreateUnit handles POST /api/v1/units.
func (h *BuildingHandler) CreateUnit(c *gin.Context) {
	var req UnitRequest
	if !bindJSON(c, &req) {
		return
	}
	u := req.model(0)
	if err := h.units.Create(c.Request.Context(), actorFrom(c), u); err != nil {
		respondError(c, err, "create unit")
		return
	}
	c.JSON(http.StatusCreated, u)
}

// UpdateUnit handles PUT /api/v1/units/:id.
func (h *BuildingHandler) UpdateUnit(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req UnitRequest
	if !bindJSON(c, &req) {
		return
	}
	u := req.model(id)
	if err := h.units.Update(c.Request.Context(), actorFrom(c), u); err != nil {
		respondError(c, err, "update unit")
		return
	}
	c.JSON(http.StatusOK, u)
}

// DeleteUnit handles DELETE /api/v1/units/:id.
func (h *BuildingHandler) DeleteUnit(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.units.Delete(c.Request.Context(), actorFrom(c), id); err != nil {
		respondError(c, err, "delete unit")
		return
	}
	c.Status(http.StatusNoContent)
}
