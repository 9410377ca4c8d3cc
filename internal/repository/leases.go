package repository

import (
	"context"
	"fmt"

	"github.com/stwalsh4118/rentdesk/internal/database"
	"github.com/stwalsh4118/rentdesk/internal/models"
	"gorm.io/gorm"
)

// LeaseFilter narrows lease lists. Zero fields are ignored.
type LeaseFilter struct {
	TenantID   uint
	UnitID     uint
	BuildingID uint
	Status     models.LeaseStatus
}

// LeaseRepository defines data access for leases.
type LeaseRepository interface {
	List(ctx context.Context, f LeaseFilter, p Pagination) (Page[models.Lease], error)

	// ListAll returns every lease matching f, for exports and dashboards.
	ListAll(ctx context.Context, f LeaseFilter) ([]models.Lease, error)

	Get(ctx context.Context, id uint) (*models.Lease, error)

	// FindActiveByUnit returns the active lease on a unit, or ErrNotFound.
	FindActiveByUnit(ctx context.Context, unitID uint) (*models.Lease, error)

	Create(ctx context.Context, l *models.Lease) error
	Update(ctx context.Context, l *models.Lease) error
	Delete(ctx context.Context, id uint) error

	// ExpireEnded sets status expired and is_active false on every active
	// lease whose end date is before today. It returns the number of leases
	// changed.
	ExpireEnded(ctx context.Context, today models.Date) (int64, error)
}

type leaseRepository struct {
	crud[models.Lease]
	db *database.Database
}

// NewLeaseRepository creates a new LeaseRepository.
func NewLeaseRepository(db *database.Database) LeaseRepository {
	return &leaseRepository{
		crud: newCRUD[models.Lease](db.DB, "lease", "start_date DESC, id DESC", "Unit", "Unit.Building", "Tenant", "Tenant.User"),
		db:   db,
	}
}

func (f LeaseFilter) scope() Scope {
	return func(q *gorm.DB) *gorm.DB {
		if f.BuildingID != 0 {
			q = q.Where("unit_id IN (SELECT id FROM units WHERE building_id = ?)", f.BuildingID)
		}
		return q
	}
}

func (f LeaseFilter) where() *models.Lease {
	return &models.Lease{TenantID: f.TenantID, UnitID: f.UnitID, Status: f.Status}
}

func (r *leaseRepository) List(ctx context.Context, f LeaseFilter, p Pagination) (Page[models.Lease], error) {
	return r.list(ctx, f.where(), p, f.scope())
}

func (r *leaseRepository) ListAll(ctx context.Context, f LeaseFilter) ([]models.Lease, error) {
	return r.all(ctx, f.where(), f.scope())
}

func (r *leaseRepository) Get(ctx context.Context, id uint) (*models.Lease, error) {
	return r.get(ctx, id)
}

func (r *leaseRepository) FindActiveByUnit(ctx context.Context, unitID uint) (*models.Lease, error) {
	return r.first(ctx, "unit_id = ? AND status = ?", unitID, models.LeaseActive)
}

func (r *leaseRepository) Create(ctx context.Context, l *models.Lease) error {
	return r.create(ctx, l)
}

func (r *leaseRepository) Update(ctx context.Context, l *models.Lease) error {
	return r.update(ctx, l)
}

func (r *leaseRepository) Delete(ctx context.Context, id uint) error {
	return r.delete(ctx, id)
}

func (r *leaseRepository) ExpireEnded(ctx context.Context, today models.Date) (int64, error) {
	res := r.db.DB.WithContext(ctx).
		Model(&models.Lease{}).
		Where("status = ? AND end_date < ?", models.LeaseActive, today).
		Updates(map[string]interface{}{
			"status":    models.LeaseExpired,
			"is_active": false,
		})
	if res.Error != nil {
		return 0, fmt.Errorf("failed to expire leases: %w", translateError(res.Error))
	}
	return res.RowsAffected, nil
}
