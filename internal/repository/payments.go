package repository

import (
	"context"
	"fmt"

	"github.com/stwalsh4118/rentdesk/internal/database"
	"github.com/stwalsh4118/rentdesk/internal/models"
	"gorm.io/gorm"
)

// PaymentFilter narrows payment lists. Zero fields are ignored.
type PaymentFilter struct {
	LeaseID  uint
	TenantID uint
}

// PaymentRepository defines data access for payments.
type PaymentRepository interface {
	List(ctx context.Context, f PaymentFilter, p Pagination) (Page[models.Payment], error)
	Get(ctx context.Context, id uint) (*models.Payment, error)
	Create(ctx context.Context, pay *models.Payment) error
	Update(ctx context.Context, pay *models.Payment) error
	Delete(ctx context.Context, id uint) error

	// SumByLease totals the amounts recorded against a lease.
	SumByLease(ctx context.Context, leaseID uint) (float64, error)
}

type paymentRepository struct {
	crud[models.Payment]
	db *database.Database
}

// NewPaymentRepository creates a new PaymentRepository.
func NewPaymentRepository(db *database.Database) PaymentRepository {
	return &paymentRepository{
		crud: newCRUD[models.Payment](db.DB, "payment", "payment_date DESC, id DESC", "Lease"),
		db:   db,
	}
}

func (f PaymentFilter) scope() Scope {
	return func(q *gorm.DB) *gorm.DB {
		if f.TenantID != 0 {
			q = q.Where("lease_id IN (SELECT id FROM leases WHERE tenant_id = ?)", f.TenantID)
		}
		return q
	}
}

func (r *paymentRepository) List(ctx context.Context, f PaymentFilter, p Pagination) (Page[models.Payment], error) {
	return r.list(ctx, &models.Payment{LeaseID: f.LeaseID}, p, f.scope())
}

func (r *paymentRepository) Get(ctx context.Context, id uint) (*models.Payment, error) {
	return r.get(ctx, id)
}

func (r *paymentRepository) Create(ctx context.Context, pay *models.Payment) error {
	return r.create(ctx, pay)
}

func (r *paymentRepository) Update(ctx context.Context, pay *models.Payment) error {
	return r.update(ctx, pay)
}

func (r *paymentRepository) Delete(ctx context.Context, id uint) error {
	return r.delete(ctx, id)
}

func (r *paymentRepository) SumByLease(ctx context.Context, leaseID uint) (float64, error) {
	var total float64
	err := r.db.DB.WithContext(ctx).
		Model(&models.Payment{}).
		Select("COALESCE(SUM(amount), 0)").
		Where("lease_id = ?", leaseID).
		Scan(&total).Error
	if err != nil {
		return 0, fmt.Errorf("failed to sum payments of lease %d: %w", leaseID, translateError(err))
	}
	return total, nil
}
