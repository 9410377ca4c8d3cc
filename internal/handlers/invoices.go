package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/stwalsh4118/rentdesk/internal/models"
	"github.com/stwalsh4118/rentdesk/internal/repository"
	"github.com/stwalsh4118/rentdesk/internal/services"
)

// InvoiceHandler handles invoices.
type InvoiceHandler struct {
	invoices services.InvoiceService
}

// NewInvoiceHandler creates a new InvoiceHandler.
func NewInvoiceHandler(invoices services.InvoiceService) *InvoiceHandler {
	return &InvoiceHandler{invoices: invoices}
}

// InvoiceRequest is the body of invoice create and update requests.
type InvoiceRequest struct {
	LeaseID       uint                 `json:"lease_id" binding:"required"`
	InvoiceNumber string               `json:"invoice_number" binding:"required,max=20"`
	IssueDate     models.Date          `json:"issue_date"`
	DueDate       models.Date          `json:"due_date"`
	TotalAmount   float64              `json:"total_amount"`
	VAT           float64              `json:"vat" binding:"min=0"`
	Status        models.InvoiceStatus `json:"status" binding:"omitempty,oneof=unpaid paid overdue"`
}

func (r InvoiceRequest) model(id uint) *models.Invoice {
	return &models.Invoice{
		ID:            id,
		LeaseID:       r.LeaseID,
		InvoiceNumber: r.InvoiceNumber,
		IssueDate:     r.IssueDate,
		DueDate:       r.DueDate,
		TotalAmount:   r.TotalAmount,
		VAT:           r.VAT,
		Status:        r.Status,
	}
}

// InvoiceQuery filters the invoice list. Overdue selects unpaid invoices
// past their due date.
type InvoiceQuery struct {
	LeaseID    uint   `form:"lease_id"`
	TenantID   uint   `form:"tenant_id"`
	BuildingID uint   `form:"building_id"`
	Status     string `form:"status" binding:"omitempty,oneof=unpaid paid overdue"`
	Overdue    bool   `form:"overdue"`
}

func (q InvoiceQuery) filter() repository.InvoiceFilter {
	return repository.InvoiceFilter{
		LeaseID:    q.LeaseID,
		TenantID:   q.TenantID,
		BuildingID: q.BuildingID,
		Status:     models.InvoiceStatus(q.Status),
		Overdue:    q.Overdue,
	}
}

// List handles GET /api/v1/invoices.
func (h *InvoiceHandler) List(c *gin.Context) {
	p, ok := pagination(c)
	if !ok {
		return
	}
	var q InvoiceQuery
	if !bindQuery(c, &q) {
		return
	}
	page, err := h.invoices.List(c.Request.Context(), q.filter(), p)
	if err != nil {
		respondError(c, err, "list invoices")
		return
	}
	c.JSON(http.StatusOK, page)
}

// Get handles GET /api/v1/invoices/:id.
func (h *InvoiceHandler) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	inv, err := h.invoices.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err, "get invoice")
		return
	}
	c.JSON(http.StatusOK, inv)
}

// Create handles POST /api/v1/invoices.
func (h *InvoiceHandler) Create(c *gin.Context) {
	var req InvoiceRequest
	if !bindJSON(c, &req) {
		return
	}
	inv := req.model(0)
	if err := h.invoices.Create(c.Request.Context(), actorFrom(c), inv); err != nil {
		respondError(c, err, "create invoice")
		return
	}
	h.respond(c, http.StatusCreated, inv.ID)
}

// Update handles PUT /api/v1/invoices/:id.
func (h *InvoiceHandler) Update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req InvoiceRequest
	if !bindJSON(c, &req) {
		return
	}
	if err := h.invoices.Update(c.Request.Context(), actorFrom(c), req.model(id)); err != nil {
		respondError(c, err, "update invoice")
		return
	}
	h.respond(c, http.StatusOK, id)
}

func (h *InvoiceHandler) respond(c *gin.Context, status int, id uint) {
	view, err := h.invoices.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err, "get invoice")
		return
	}
	c.JSON(status, view)
}

// Delete handles DELETE /api/v1/invoices/:id.
func (h *InvoiceHandler) Delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.invoices.Delete(c.Request.Context(), actorFrom(c), id); err != nil {
		respondError(c, err, "delete invoice")
		return
	}
	c.Status(http.StatusNoContent)
}

// MarkPaid handles POST /api/v1/invoices/:id/mark-paid.
func (h *InvoiceHandler) MarkPaid(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	inv, err := h.invoices.MarkPaid(c.Request.Context(), actorFrom(c), id)
	if err != nil {
		respondError(c, err, "mark invoice paid")
		return
	}
	c.JSON(http.StatusOK, inv)
}
