package repository

import (
	"context"

	"github.com/stwalsh4118/rentdesk/internal/database"
	"github.com/stwalsh4118/rentdesk/internal/models"
	"gorm.io/gorm"
)

// MaintenanceFilter narrows maintenance request lists. Zero fields are ignored.
type MaintenanceFilter struct {
	UnitID        uint
	BuildingID    uint
	RequestedByID uint
	Status        models.MaintenanceStatus
}

// MaintenanceRequestRepository defines data access for maintenance requests.
type MaintenanceRequestRepository interface {
	List(ctx context.Context, f MaintenanceFilter, p Pagination) (Page[models.MaintenanceRequest], error)
	ListAll(ctx context.Context, f MaintenanceFilter) ([]models.MaintenanceRequest, error)
	Get(ctx context.Context, id uint) (*models.MaintenanceRequest, error)
	Create(ctx context.Context, m *models.MaintenanceRequest) error
	Update(ctx context.Context, m *models.MaintenanceRequest) error
	Delete(ctx context.Context, id uint) error
}

type maintenanceRequestRepository struct {
	crud[models.MaintenanceRequest]
}

// NewMaintenanceRequestRepository creates a new MaintenanceRequestRepository.
func NewMaintenanceRequestRepository(db *database.Database) MaintenanceRequestRepository {
	return &maintenanceRequestRepository{
		crud: newCRUD[models.MaintenanceRequest](db.DB, "maintenance request", "request_date DESC, id DESC", "Unit"),
	}
}

func (f MaintenanceFilter) where() *models.MaintenanceRequest {
	return &models.MaintenanceRequest{UnitID: f.UnitID, Status: f.Status}
}

func (f MaintenanceFilter) scope() Scope {
	return func(q *gorm.DB) *gorm.DB {
		if f.BuildingID != 0 {
			q = q.Where("unit_id IN (SELECT id FROM units WHERE building_id = ?)", f.BuildingID)
		}
		if f.RequestedByID != 0 {
			q = q.Where("requested_by_id = ?", f.RequestedByID)
		}
		return q
	}
}

func (r *maintenanceRequestRepository) List(ctx context.Context, f MaintenanceFilter, p Pagination) (Page[models.MaintenanceRequest], error) {
	return r.list(ctx, f.where(), p, f.scope())
}

func (r *maintenanceRequestRepository) ListAll(ctx context.Context, f MaintenanceFilter) ([]models.MaintenanceRequest, error) {
	return r.all(ctx, f.where(), f.scope())
}

func (r *maintenanceRequestRepository) Get(ctx context.Context, id uint) (*models.MaintenanceRequest, error) {
	return r.get(ctx, id)
}

func (r *maintenanceRequestRepository) Create(ctx context.Context, m *models.MaintenanceRequest) error {
	return r.create(ctx, m)
}

func (r *maintenanceRequestRepository) Update(ctx context.Context, m *models.MaintenanceRequest) error {
	return r.update(ctx, m)
}

func (r *maintenanceRequestRepository) Delete(ctx context.Context, id uint) error {
	return r.delete(ctx, id)
}

// MaintenanceReviewRepository defines data access for maintenance reviews.
type MaintenanceReviewRepository interface {
	List(ctx context.Context, p Pagination) (Page[models.MaintenanceReview], error)
	Get(ctx context.Context, id uint) (*models.MaintenanceReview, error)

	// GetByRequest returns the review of a request, or ErrNotFound.
	GetByRequest(ctx context.Context, requestID uint) (*models.MaintenanceReview, error)

	Create(ctx context.Context, rv *models.MaintenanceReview) error
	Update(ctx context.Context, rv *models.MaintenanceReview) error
	Delete(ctx context.Context, id uint) error
}

type maintenanceReviewRepository struct {
	crud[models.MaintenanceReview]
}

// NewMaintenanceReviewRepository creates a new MaintenanceReviewRepository.
func NewMaintenanceReviewRepository(db *database.Database) MaintenanceReviewRepository {
	return &maintenanceReviewRepository{
		crud: newCRUD[models.MaintenanceReview](db.DB, "maintenance review", "created_at DESC, id DESC", "MaintenanceRequest"),
	}
}

func (r *maintenanceReviewRepository) List(ctx context.Context, p Pagination) (Page[models.MaintenanceReview], error) {
	return r.list(ctx, nil, p)
}

func (r *maintenanceReviewRepository) Get(ctx context.Context, id uint) (*models.MaintenanceReview, error) {
	return r.get(ctx, id)
}

func (r *maintenanceReviewRepository) GetByRequest(ctx context.Context, requestID uint) (*models.MaintenanceReview, error) {
	return r.first(ctx, "maintenance_request_id = ?", requestID)
}

func (r *maintenanceReviewRepository) Create(ctx context.Context, rv *models.MaintenanceReview) error {
	return r.create(ctx, rv)
}

func (r *maintenanceReviewRepository) Update(ctx context.Context, rv *models.MaintenanceReview) error {
	return r.update(ctx, rv)
}

func (r *maintenanceReviewRepository) Delete(ctx context.Context, id uint) error {
	return r.delete(ctx, id)
}
