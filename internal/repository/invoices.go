package repository

import (
	"context"
	"fmt"

	"github.com/stwalsh4118/rentdesk/internal/database"
	"github.com/stwalsh4118/rentdesk/internal/models"
	"gorm.io/gorm"
)

// InvoiceFilter narrows invoice lists. Zero fields are ignored.
// OverdueOn, when set, keeps only invoices due before that date and not paid.
type InvoiceFilter struct {
	LeaseID    uint
	TenantID   uint
	BuildingID uint
	Status     models.InvoiceStatus
	// Overdue asks for invoices past due on OverdueOn. Services fill an
	// empty OverdueOn with today.
	Overdue   bool
	OverdueOn models.Date
}

// InvoiceRepository defines data access for invoices.
type InvoiceRepository interface {
	List(ctx context.Context, f InvoiceFilter, p Pagination) (Page[models.Invoice], error)
	ListAll(ctx context.Context, f InvoiceFilter) ([]models.Invoice, error)
	Get(ctx context.Context, id uint) (*models.Invoice, error)
	Create(ctx context.Context, inv *models.Invoice) error
	Update(ctx context.Context, inv *models.Invoice) error
	Delete(ctx context.Context, id uint) error

	// SetStatus overwrites the stored status without reading the row first.
	SetStatus(ctx context.Context, id uint, status models.InvoiceStatus) error
}

type invoiceRepository struct {
	crud[models.Invoice]
	db *database.Database
}

// NewInvoiceRepository creates a new InvoiceRepository.
func NewInvoiceRepository(db *database.Database) InvoiceRepository {
	return &invoiceRepository{
		crud: newCRUD[models.Invoice](db.DB, "invoice", "issue_date DESC, id DESC", "Lease"),
		db:   db,
	}
}

func (f InvoiceFilter) where() *models.Invoice {
	return &models.Invoice{LeaseID: f.LeaseID, Status: f.Status}
}

func (f InvoiceFilter) scope() Scope {
	return func(q *gorm.DB) *gorm.DB {
		if f.TenantID != 0 {
			q = q.Where("lease_id IN (SELECT id FROM leases WHERE tenant_id = ?)", f.TenantID)
		}
		if f.BuildingID != 0 {
			q = q.Where("lease_id IN (SELECT leases.id FROM leases JOIN units ON units.id = leases.unit_id WHERE units.building_id = ?)", f.BuildingID)
		}
		if !f.OverdueOn.IsZero() {
			q = q.Where("due_date < ? AND status <> ?", f.OverdueOn, models.InvoicePaid)
		}
		return q
	}
}

func (r *invoiceRepository) List(ctx context.Context, f InvoiceFilter, p Pagination) (Page[models.Invoice], error) {
	return r.list(ctx, f.where(), p, f.scope())
}

func (r *invoiceRepository) ListAll(ctx context.Context, f InvoiceFilter) ([]models.Invoice, error) {
	return r.all(ctx, f.where(), f.scope())
}

func (r *invoiceRepository) Get(ctx context.Context, id uint) (*models.Invoice, error) {
	return r.get(ctx, id)
}

func (r *invoiceRepository) Create(ctx context.Context, inv *models.Invoice) error {
	return r.create(ctx, inv)
}

func (r *invoiceRepository) Update(ctx context.Context, inv *models.Invoice) error {
	return r.update(ctx, inv)
}

func (r *invoiceRepository) Delete(ctx context.Context, id uint) error {
	return r.delete(ctx, id)
}

func (r *invoiceRepository) SetStatus(ctx context.Context, id uint, status models.InvoiceStatus) error {
	res := r.db.DB.WithContext(ctx).Model(&models.Invoice{ID: id}).Update("status", status)
	if res.Error != nil {
		return fmt.Errorf("failed to set status of invoice %d: %w", id, translateError(res.Error))
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
