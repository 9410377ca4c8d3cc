package services

import (
	"context"
	"strings"

	"github.com/stwalsh4118/rentdesk/internal/logger"
	"github.com/stwalsh4118/rentdesk/internal/models"
	"github.com/stwalsh4118/rentdesk/internal/repository"
)

// InvoiceView is an invoice with its overdue state as of today.
type InvoiceView struct {
	models.Invoice
	IsOverdue       bool                 `json:"is_overdue"`
	EffectiveStatus models.InvoiceStatus `json:"effective_status"`
	VATAmount       float64              `json:"vat_amount"`
	GrandTotal      float64              `json:"grand_total"`
}

// ViewInvoice derives the date-dependent values of inv as of today.
func ViewInvoice(inv models.Invoice, today models.Date) InvoiceView {
	return InvoiceView{
		Invoice:         inv,
		IsOverdue:       inv.IsOverdue(today),
		EffectiveStatus: inv.EffectiveStatus(today),
		VATAmount:       inv.VATAmount(),
		GrandTotal:      inv.GrandTotal(),
	}
}

// InvoiceService manages invoices.
type InvoiceService interface {
	List(ctx context.Context, f repository.InvoiceFilter, p repository.Pagination) (repository.Page[InvoiceView], error)
	Get(ctx context.Context, id uint) (*InvoiceView, error)
	Create(ctx context.Context, actor Actor, inv *models.Invoice) error
	Update(ctx context.Context, actor Actor, inv *models.Invoice) error
	Delete(ctx context.Context, actor Actor, id uint) error

	// MarkPaid overwrites the stored status with paid. It does not look at
	// the current status or at recorded payments.
	MarkPaid(ctx context.Context, actor Actor, id uint) (*InvoiceView, error)
}

type invoiceService struct {
	repo   repository.InvoiceRepository
	leases repository.LeaseRepository
	audit  Recorder
	log    *logger.Logger
	now    Clock
}

// NewInvoiceService creates a new InvoiceService.
func NewInvoiceService(repo repository.InvoiceRepository, leases repository.LeaseRepository, audit Recorder, log *logger.Logger) InvoiceService {
	return &invoiceService{repo: repo, leases: leases, audit: audit, log: log}
}

func validateInvoice(inv *models.Invoice) error {
	inv.InvoiceNumber = strings.TrimSpace(inv.InvoiceNumber)
	if inv.Status == "" {
		inv.Status = models.InvoiceUnpaid
	}
	switch {
	case inv.InvoiceNumber == "":
		return invalid("invoice number is required")
	case inv.LeaseID == 0:
		return invalid("lease is required")
	case inv.IssueDate.IsZero() || inv.DueDate.IsZero():
		return invalid("issue and due dates are required")
	case inv.DueDate.Before(inv.IssueDate):
		return ErrInvalidInvoiceDates
	case inv.TotalAmount < 0:
		return invalid("total amount must not be negative")
	case inv.VAT < 0 || inv.VAT > 100:
		return invalid("vat must be a percentage between 0 and 100")
	case !inv.Status.Valid():
		return invalid("unknown invoice status %q", inv.Status)
	}
	return nil
}

// overdueOn pins an overdue filter without a date to today.
func overdueOn(f repository.InvoiceFilter, today models.Date) repository.InvoiceFilter {
	if f.Overdue && f.OverdueOn.IsZero() {
		f.OverdueOn = today
	}
	return f
}

func (s *invoiceService) List(ctx context.Context, f repository.InvoiceFilter, p repository.Pagination) (repository.Page[InvoiceView], error) {
	if f.Status != "" && !f.Status.Valid() {
		return repository.Page[InvoiceView]{}, invalid("unknown invoice status %q", f.Status)
	}
	today := s.now.today()
	page, err := s.repo.List(ctx, overdueOn(f, today), p)
	if err != nil {
		return repository.Page[InvoiceView]{}, repoError("invoice", err)
	}

	out := repository.Page[InvoiceView]{Total: page.Total, Page: page.Page, PerPage: page.PerPage}
	out.Items = make([]InvoiceView, 0, len(page.Items))
	for _, inv := range page.Items {
		out.Items = append(out.Items, ViewInvoice(inv, today))
	}
	return out, nil
}

func (s *invoiceService) Get(ctx context.Context, id uint) (*InvoiceView, error) {
	inv, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, repoError("invoice", err)
	}
	v := ViewInvoice(*inv, s.now.today())
	return &v, nil
}

func (s *invoiceService) Create(ctx context.Context, actor Actor, inv *models.Invoice) error {
	if err := validateInvoice(inv); err != nil {
		return err
	}
	if _, err := s.leases.Get(ctx, inv.LeaseID); err != nil {
		return repoError("lease", err)
	}
	if err := s.repo.Create(ctx, inv); err != nil {
		return repoError("invoice", err)
	}

	s.log.Info("Invoice created", map[string]interface{}{
		"invoice_id":     inv.ID,
		"invoice_number": inv.InvoiceNumber,
		"lease_id":       inv.LeaseID,
	})
	s.audit.Record(ctx, actor, "Created invoice", map[string]interface{}{
		"invoice_id":     inv.ID,
		"invoice_number": inv.InvoiceNumber,
	})
	return nil
}

func (s *invoiceService) Update(ctx context.Context, actor Actor, inv *models.Invoice) error {
	if err := validateInvoice(inv); err != nil {
		return err
	}
	existing, err := s.repo.Get(ctx, inv.ID)
	if err != nil {
		return repoError("invoice", err)
	}
	inv.CreatedAt = existing.CreatedAt

	if err := s.repo.Update(ctx, inv); err != nil {
		return repoError("invoice", err)
	}
	s.audit.Record(ctx, actor, "Updated invoice", map[string]interface{}{"invoice_id": inv.ID, "status": inv.Status})
	return nil
}

func (s *invoiceService) Delete(ctx context.Context, actor Actor, id uint) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return repoError("invoice", err)
	}
	s.audit.Record(ctx, actor, "Deleted invoice", map[string]interface{}{"invoice_id": id})
	return nil
}

func (s *invoiceService) MarkPaid(ctx context.Context, actor Actor, id uint) (*InvoiceView, error) {
	if err := s.repo.SetStatus(ctx, id, models.InvoicePaid); err != nil {
		return nil, repoError("invoice", err)
	}

	s.log.Info("Invoice marked paid", map[string]interface{}{"invoice_id": id})
	s.audit.Record(ctx, actor, "Marked invoice paid", map[string]interface{}{"invoice_id": id})
	return s.Get(ctx, id)
}
