package services

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/stwalsh4118/rentdesk/internal/logger"
	"github.com/stwalsh4118/rentdesk/internal/models"
	"github.com/stwalsh4118/rentdesk/internal/repository"
	"github.com/xuri/excelize/v2"
)

// XLSXContentType is the media type of generated reports.
const XLSXContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ReportService exports records as spreadsheets.
type ReportService interface {
	// Leases writes an xlsx workbook of the leases matching f to w.
	Leases(ctx context.Context, f repository.LeaseFilter, w io.Writer) (int, error)

	// Invoices writes an xlsx workbook of the invoices matching f to w.
	Invoices(ctx context.Context, f repository.InvoiceFilter, w io.Writer) (int, error)
}

type reportService struct {
	leases   repository.LeaseRepository
	invoices repository.InvoiceRepository
	log      *logger.Logger
	now      Clock
}

// NewReportService creates a new ReportService.
func NewReportService(leases repository.LeaseRepository, invoices repository.InvoiceRepository, log *logger.Logger) ReportService {
	return &reportService{leases: leases, invoices: invoices, log: log}
}

// column is one spreadsheet column.
type column struct {
	header string
	width  float64
}

var leaseColumns = []column{
	{"Contract", 14}, {"Building", 20}, {"Unit", 10}, {"Tenant", 24},
	{"Start Date", 12}, {"End Date", 12}, {"Monthly Rent", 14}, {"Deposit", 12},
	{"Status", 12}, {"Remaining Days", 15},
}

var invoiceColumns = []column{
	{"Invoice", 14}, {"Contract", 14}, {"Issue Date", 12}, {"Due Date", 12},
	{"Total", 12}, {"VAT %", 8}, {"VAT Amount", 12}, {"Grand Total", 14},
	{"Status", 12},
}

func (s *reportService) Leases(ctx context.Context, f repository.LeaseFilter, w io.Writer) (int, error) {
	leases, err := s.leases.ListAll(ctx, f)
	if err != nil {
		return 0, repoError("lease", err)
	}

	today := s.now.today()
	rows := make([][]interface{}, 0, len(leases))
	for _, l := range leases {
		rows = append(rows, []interface{}{
			l.ContractNumber,
			buildingName(l.Unit),
			unitNumber(l.Unit),
			TenantName(l.Tenant),
			l.StartDate.String(),
			l.EndDate.String(),
			l.MonthlyRent,
			l.Deposit,
			string(l.Status),
			l.RemainingDays(today),
		})
	}

	if err := writeWorkbook(w, "Leases", leaseColumns, rows); err != nil {
		return 0, err
	}
	s.log.Info("Lease report generated", map[string]interface{}{"rows": len(rows)})
	return len(rows), nil
}

func (s *reportService) Invoices(ctx context.Context, f repository.InvoiceFilter, w io.Writer) (int, error) {
	today := s.now.today()
	invoices, err := s.invoices.ListAll(ctx, overdueOn(f, today))
	if err != nil {
		return 0, repoError("invoice", err)
	}

	rows := make([][]interface{}, 0, len(invoices))
	for _, inv := range invoices {
		contract := ""
		if inv.Lease != nil {
			contract = inv.Lease.ContractNumber
		}
		rows = append(rows, []interface{}{
			inv.InvoiceNumber,
			contract,
			inv.IssueDate.String(),
			inv.DueDate.String(),
			inv.TotalAmount,
			inv.VAT,
			inv.VATAmount(),
			inv.GrandTotal(),
			string(inv.EffectiveStatus(today)),
		})
	}

	if err := writeWorkbook(w, "Invoices", invoiceColumns, rows); err != nil {
		return 0, err
	}
	s.log.Info("Invoice report generated", map[string]interface{}{"rows": len(rows)})
	return len(rows), nil
}

// TenantName is the display name of a tenant: the company for companies,
// otherwise the user's full name or username.
func TenantName(t *models.Tenant) string {
	if t == nil {
		return ""
	}
	if t.TenantType == models.TenantCompany && t.CompanyName != "" {
		return t.CompanyName
	}
	if t.User == nil {
		return t.NationalID
	}
	if name := strings.TrimSpace(t.User.FirstName + " " + t.User.LastName); name != "" {
		return name
	}
	return t.User.Username
}

func buildingName(u *models.Unit) string {
	if u == nil || u.Building == nil {
		return ""
	}
	return u.Building.Name
}

func unitNumber(u *models.Unit) string {
	if u == nil {
		return ""
	}
	return u.UnitNumber
}

func writeWorkbook(w io.Writer, sheet string, columns []column, rows [][]interface{}) error {
	f := excelize.NewFile()
	defer f.Close()

	if _, err := f.NewSheet(sheet); err != nil {
		return fmt.Errorf("failed to create sheet: %w", err)
	}
	f.DeleteSheet("Sheet1")
	f.SetActiveSheet(0)

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{
			Type:    "pattern",
			Color:   []string{"#E6F3FF"},
			Pattern: 1,
		},
		Border: []excelize.Border{
			{Type: "left", Color: "000000", Style: 1},
			{Type: "top", Color: "000000", Style: 1},
			{Type: "bottom", Color: "000000", Style: 1},
			{Type: "right", Color: "000000", Style: 1},
		},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return fmt.Errorf("failed to create header style: %w", err)
	}

	header := make([]interface{}, 0, len(columns))
	for i, c := range columns {
		header = append(header, c.header)
		name, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return fmt.Errorf("failed to convert column number: %w", err)
		}
		if err := f.SetColWidth(sheet, name, name, c.width); err != nil {
			return fmt.Errorf("failed to set column width: %w", err)
		}
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	last, err := excelize.CoordinatesToCellName(len(columns), 1)
	if err != nil {
		return fmt.Errorf("failed to convert coordinates: %w", err)
	}
	if err := f.SetCellStyle(sheet, "A1", last, headerStyle); err != nil {
		return fmt.Errorf("failed to set header style: %w", err)
	}

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("failed to convert coordinates: %w", err)
		}
		row := row
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("failed to write row %d: %w", i+2, err)
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}
