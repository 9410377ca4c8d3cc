package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/stwalsh4118/rentdesk/internal/models"
	"github.com/stwalsh4118/rentdesk/internal/repository"
	"github.com/stwalsh4118/rentdesk/internal/services"
)

// LeaseHandler handles leases and the payments recorded against them.
type LeaseHandler struct {
	leases   services.LeaseService
	payments services.PaymentService
}

// NewLeaseHandler creates a new LeaseHandler.
func NewLeaseHandler(leases services.LeaseService, payments services.PaymentService) *LeaseHandler {
	return &LeaseHandler{leases: leases, payments: payments}
}

// LeaseRequest is the body of lease create and update requests. A zero
// monthly rent is filled from the unit's rent price.
type LeaseRequest struct {
	ContractNumber string             `json:"contract_number" binding:"required,max=20"`
	UnitID         uint               `json:"unit_id" binding:"required"`
	TenantID       uint               `json:"tenant_id" binding:"required"`
	StartDate      models.Date        `json:"start_date"`
	EndDate        models.Date        `json:"end_date"`
	MonthlyRent    float64            `json:"monthly_rent" binding:"min=0"`
	Deposit        float64            `json:"deposit" binding:"min=0"`
	Status         models.LeaseStatus `json:"status" binding:"omitempty,oneof=active expired suspended"`
	IsActive       *bool              `json:"is_active"`
	ContractFile   string             `json:"contract_file" binding:"max=255"`
}

func (r LeaseRequest) model(id uint) *models.Lease {
	active := true
	if r.IsActive != nil {
		active = *r.IsActive
	}
	return &models.Lease{
		ID:             id,
		ContractNumber: r.ContractNumber,
		UnitID:         r.UnitID,
		TenantID:       r.TenantID,
		StartDate:      r.StartDate,
		EndDate:        r.EndDate,
		MonthlyRent:    r.MonthlyRent,
		Deposit:        r.Deposit,
		Status:         r.Status,
		IsActive:       active,
		ContractFile:   r.ContractFile,
	}
}

// LeaseQuery filters the lease list.
type LeaseQuery struct {
	TenantID   uint   `form:"tenant_id"`
	UnitID     uint   `form:"unit_id"`
	BuildingID uint   `form:"building_id"`
	Status     string `form:"status" binding:"omitempty,oneof=active expired suspended"`
}

func (q LeaseQuery) filter() repository.LeaseFilter {
	return repository.LeaseFilter{
		TenantID:   q.TenantID,
		UnitID:     q.UnitID,
		BuildingID: q.BuildingID,
		Status:     models.LeaseStatus(q.Status),
	}
}

// PaymentRequest is the body of payment create and update requests.
type PaymentRequest struct {
	LeaseID       uint                 `json:"lease_id" binding:"required"`
	Date          models.Date          `json:"date"`
	Amount        float64              `json:"amount"`
	PaymentMethod models.PaymentMethod `json:"payment_method" binding:"required,oneof=cash bank_transfer card"`
	Notes         string               `json:"notes"`
}

func (r PaymentRequest) model(id uint) *models.Payment {
	return &models.Payment{
		ID:            id,
		LeaseID:       r.LeaseID,
		Date:          r.Date,
		Amount:        r.Amount,
		PaymentMethod: r.PaymentMethod,
		Notes:         r.Notes,
	}
}

// PaymentQuery filters the payment list.
type PaymentQuery struct {
	LeaseID  uint `form:"lease_id"`
	TenantID uint `form:"tenant_id"`
}

// PaymentTotalResponse is the sum of a lease's payments.
type PaymentTotalResponse struct {
	LeaseID uint    `json:"lease_id"`
	Total   float64 `json:"total"`
}

// ListLeases handles GET /api/v1/leases.
func (h *LeaseHandler) ListLeases(c *gin.Context) {
	p, ok := pagination(c)
	if !ok {
		return
	}
	var q LeaseQuery
	if !bindQuery(c, &q) {
		return
	}
	page, err := h.leases.List(c.Request.Context(), q.filter(), p)
	if err != nil {
		respondError(c, err, "list leases")
		return
	}
	c.JSON(http.StatusOK, page)
}

// GetLease handles GET /api/v1/leases/:id.
func (h *LeaseHandler) GetLease(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	l, err := h.leases.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err, "get lease")
		return
	}
	c.JSON(http.StatusOK, l)
}

// CreateLease handles POST /api/v1/leases.
func (h *LeaseHandler) CreateLease(c *gin.Context) {
	var req LeaseRequest
	if !bindJSON(c, &req) {
		return
	}
	l := req.model(0)
	if err := h.leases.Create(c.Request.Context(), actorFrom(c), l); err != nil {
		respondError(c, err, "create lease")
		return
	}
	h.respondLease(c, http.StatusCreated, l.ID)
}

// UpdateLease handles PUT /api/v1/leases/:id.
func (h *LeaseHandler) UpdateLease(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req LeaseRequest
	if !bindJSON(c, &req) {
		return
	}
	l := req.model(id)
	if err := h.leases.Update(c.Request.Context(), actorFrom(c), l); err != nil {
		respondError(c, err, "update lease")
		return
	}
	h.respondLease(c, http.StatusOK, id)
}

// respondLease writes the stored lease with its derived values.
func (h *LeaseHandler) respondLease(c *gin.Context, status int, id uint) {
	view, err := h.leases.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err, "get lease")
		return
	}
	c.JSON(status, view)
}

// DeleteLease handles DELETE /api/v1/leases/:id.
func (h *LeaseHandler) DeleteLease(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.leases.Delete(c.Request.Context(), actorFrom(c), id); err != nil {
		respondError(c, err, "delete lease")
		return
	}
	c.Status(http.StatusNoContent)
}

// ExpireLeases handles POST /api/v1/leases/expire.
func (h *LeaseHandler) ExpireLeases(c *gin.Context) {
	n, err := h.leases.ExpireOverdue(c.Request.Context(), actorFrom(c))
	if err != nil {
		respondError(c, err, "expire leases")
		return
	}
	c.JSON(http.StatusOK, CountResponse{Count: n})
}

// ListPayments handles GET /api/v1/payments.
func (h *LeaseHandler) ListPayments(c *gin.Context) {
	p, ok := pagination(c)
	if !ok {
		return
	}
	var q PaymentQuery
	if !bindQuery(c, &q) {
		return
	}
	f := repository.PaymentFilter{LeaseID: q.LeaseID, TenantID: q.TenantID}
	page, err := h.payments.List(c.Request.Context(), f, p)
	if err != nil {
		respondError(c, err, "list payments")
		return
	}
	c.JSON(http.StatusOK, page)
}

// GetPayment handles GET /api/v1/payments/:id.
func (h *LeaseHandler) GetPayment(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	pay, err := h.payments.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err, "get payment")
		return
	}
	c.JSON(http.StatusOK, pay)
}

// CreatePayment handles POST /api/v1/payments.
func (h *LeaseHandler) CreatePayment(c *gin.Context) {
	var req PaymentRequest
	if !bindJSON(c, &req) {
		return
	}
	pay := req.model(0)
	if err := h.payments.Create(c.Request.Context(), actorFrom(c), pay); err != nil {
		respondError(c, err, "create payment")
		return
	}
	c.JSON(http.StatusCreated, pay)
}

// UpdatePayment handles PUT /api/v1/payments/:id.
func (h *LeaseHandler) UpdatePayment(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req PaymentRequest
	if !bindJSON(c, &req) {
		return
	}
	pay := req.model(id)
	if err := h.payments.Update(c.Request.Context(), actorFrom(c), pay); err != nil {
		respondError(c, err, "update payment")
		return
	}
	c.JSON(http.StatusOK, pay)
}

// DeletePayment handles DELETE /api/v1/payments/:id.
func (h *LeaseHandler) DeletePayment(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.payments.Delete(c.Request.Context(), actorFrom(c), id); err != nil {
		respondError(c, err, "delete payment")
		return
	}
	c.Status(http.StatusNoContent)
}

// LeasePaymentTotal handles GET /api/v1/leases/:id/payments/total.
func (h *LeaseHandler) LeasePaymentTotal(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if _, err := h.leases.Get(c.Request.Context(), id); err != nil {
		respondError(c, err, "get lease")
		return
	}
	total, err := h.payments.TotalForLease(c.Request.Context(), id)
	if err != nil {
		respondError(c, err, "sum payments")
		return
	}
	c.JSON(http.StatusOK, PaymentTotalResponse{LeaseID: id, Total: total})
}
