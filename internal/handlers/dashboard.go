package handlers

import (
	"bytes"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stwalsh4118/rentdesk/internal/middleware"
	"github.com/stwalsh4118/rentdesk/internal/services"
)

// DashboardHandler serves the overview pages and the spreadsheet exports.
type DashboardHandler struct {
	dashboards services.DashboardService
	reports    services.ReportService
}

// NewDashboardHandler creates a new DashboardHandler.
func NewDashboardHandler(dashboards services.DashboardService, reports services.ReportService) *DashboardHandler {
	return &DashboardHandler{dashboards: dashboards, reports: reports}
}

// SupervisorDashboardQuery picks the building. Supervisors always see
// their own building and may omit it.
type SupervisorDashboardQuery struct {
	BuildingID uint `form:"building_id"`
}

// Supervisor handles GET /api/v1/dashboard/supervisor.
func (h *DashboardHandler) Supervisor(c *gin.Context) {
	var q SupervisorDashboardQuery
	if !bindQuery(c, &q) {
		return
	}
	d, err := h.dashboards.Supervisor(c.Request.Context(), actorFrom(c), q.BuildingID)
	if err != nil {
		respondError(c, err, "load supervisor dashboard")
		return
	}
	c.JSON(http.StatusOK, d)
}

// Tenant handles GET /api/v1/dashboard/tenant.
func (h *DashboardHandler) Tenant(c *gin.Context) {
	d, err := h.dashboards.Tenant(c.Request.Context(), actorFrom(c))
	if err != nil {
		respondError(c, err, "load tenant dashboard")
		return
	}
	c.JSON(http.StatusOK, d)
}

// LeaseReport handles GET /api/v1/reports/leases.xlsx. It accepts the
// lease list filters.
func (h *DashboardHandler) LeaseReport(c *gin.Context) {
	var q LeaseQuery
	if !bindQuery(c, &q) {
		return
	}
	var buf bytes.Buffer
	n, err := h.reports.Leases(c.Request.Context(), q.filter(), &buf)
	if err != nil {
		respondError(c, err, "build lease report")
		return
	}
	h.sendWorkbook(c, "leases", n, &buf)
}

// InvoiceReport handles GET /api/v1/reports/invoices.xlsx. It accepts the
// invoice list filters.
func (h *DashboardHandler) InvoiceReport(c *gin.Context) {
	var q InvoiceQuery
	if !bindQuery(c, &q) {
		return
	}
	var buf bytes.Buffer
	n, err := h.reports.Invoices(c.Request.Context(), q.filter(), &buf)
	if err != nil {
		respondError(c, err, "build invoice report")
		return
	}
	h.sendWorkbook(c, "invoices", n, &buf)
}

func (h *DashboardHandler) sendWorkbook(c *gin.Context, name string, rows int, buf *bytes.Buffer) {
	filename := fmt.Sprintf("%s-%s.xlsx", name, time.Now().Format("20060102"))
	if log := middleware.GetLogger(c); log != nil {
		log.Info("Report generated", map[string]interface{}{
			"report": name,
			"rows":   rows,
			"bytes":  buf.Len(),
		})
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, services.XLSXContentType, buf.Bytes())
}
